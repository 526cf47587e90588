package builder

import (
	"github.com/shopspring/decimal"

	"github.com/mkuiper/qif/ledger"
)

// processTransfer handles transactions whose two sides are both asset
// sides. Sub-dispatch priority: auto-expense cash synthesis, then
// security holdings, then portfolio accounts, then the category class.
func (b *Builder) processTransfer(t *ledger.Transaction) {
	fromAcct, fromIsAcct := t.From.(*ledger.Account)
	toAcct, toIsAcct := t.To.(*ledger.Account)
	fromHolding, fromIsHolding := t.From.(*ledger.Holding)
	toHolding, toIsHolding := t.To.(*ledger.Holding)

	switch {
	case fromIsAcct && fromAcct.IsAutoExpense() && toIsAcct:
		b.processCashExpenseReturn(fromAcct, toAcct, t)
		return
	case toIsAcct && toAcct.IsAutoExpense() && fromIsAcct:
		b.processCashExpense(fromAcct, toAcct, t)
		return

	case fromIsHolding && toIsHolding:
		b.portfolio.processTransferBetweenSecurities(fromHolding, toHolding, t)
		return
	case fromIsHolding && toIsAcct:
		b.portfolio.processTransferFromSecurity(fromHolding, toAcct, t)
		return
	case toIsHolding && fromIsAcct:
		b.portfolio.processTransferToSecurity(fromAcct, toHolding, t)
		return

	case fromIsAcct && toIsAcct && (fromAcct.IsPortfolio() || toAcct.IsPortfolio()):
		b.portfolio.processPortfolioTransfer(fromAcct, toAcct, t)
		return
	}

	if !fromIsAcct || !toIsAcct {
		b.logger.Errorf("qif: unsupported transfer sides %T -> %T; transaction skipped", t.From, t.To)
		return
	}

	switch t.Category.Class {
	case ledger.CatCashBack:
		b.processCashBack(fromAcct, toAcct, t)
	case ledger.CatInterest, ledger.CatLoyaltyBonus:
		b.processInterest(fromAcct, toAcct, t)
	case ledger.CatLoanInterestEarned, ledger.CatRentalIncome, ledger.CatRoomRentalIncome:
		b.processParentAttributed(toAcct, t, t.Amount)
	case ledger.CatWriteOff, ledger.CatLoanInterestCharged:
		b.processParentAttributed(toAcct, t, t.Amount.Neg())
	default:
		b.processStandardTransfer(fromAcct, toAcct, t)
	}
}

// processStandardTransfer emits the two-leg transfer: one leg per account,
// each referencing the other as its category target, amounts negated on
// the debit leg.
func (b *Builder) processStandardTransfer(from, to *ledger.Account, t *ledger.Transaction) {
	qFrom := b.mustAccount(from)
	qTo := b.mustAccount(to)
	classes := b.classes(t.Tags)

	credit := b.newEvent(t)
	credit.SetAmount(t.Amount)
	credit.SetPayeeText(b.transferPayee("from", from.Name))
	credit.SetAccount(qFrom, classes...)
	qTo.AddEvent(credit)

	debit := b.newEvent(t)
	debit.SetAmount(t.Amount.Neg())
	debit.SetPayeeText(b.transferPayee("to", to.Name))
	debit.SetAccount(qTo, classes...)
	qFrom.AddEvent(debit)
}

// processCashExpense synthesizes the single leg of a withdrawal into an
// auto-expense cash account: the funding account records an expense to
// the cash account's configured payee and category.
func (b *Builder) processCashExpense(from, cash *ledger.Account, t *ledger.Transaction) {
	qa := b.mustAccount(from)

	ev := b.newEvent(t)
	ev.SetAmount(t.Amount.Neg())
	ev.SetPayee(b.file.RegisterPayee(cash.AutoExpense.Payee.Name))
	ev.SetCategory(b.category(cash.AutoExpense.Category))
	qa.AddEvent(ev)
}

// processCashExpenseReturn mirrors processCashExpense for cash paid back
// out of the auto-expense account.
func (b *Builder) processCashExpenseReturn(cash, to *ledger.Account, t *ledger.Transaction) {
	qa := b.mustAccount(to)

	ev := b.newEvent(t)
	ev.SetAmount(t.Amount)
	ev.SetPayee(b.file.RegisterPayee(cash.AutoExpense.Payee.Name))
	ev.SetCategory(b.category(cash.AutoExpense.Category))
	qa.AddEvent(ev)
}

// processInterest synthesizes interest and loyalty-bonus events. The
// simple single-posting form applies when the transaction is recursive
// with no extra detail; otherwise a multi-split form itemizes the gross
// interest and the extra-detail offsets. Interest paid away to another
// account gets a transfer split, plus an explicit balancing leg on the
// receiving account for dialects that do not link transfer splits.
func (b *Builder) processInterest(holder, to *ledger.Account, t *ledger.Transaction) {
	qHolder := b.mustAccount(holder)

	if t.IsRecursive() && !t.HasExtraDetail() {
		ev := b.newEvent(t)
		ev.SetAmount(t.Amount)
		ev.SetPayee(b.file.RegisterPayee(b.interestPayee(holder)))
		ev.SetCategory(b.category(t.Category), b.classes(t.Tags)...)
		qHolder.AddEvent(ev)
		return
	}

	recursive := t.IsRecursive()

	ev := b.newEvent(t)
	ev.SetPayee(b.file.RegisterPayee(b.interestPayee(holder)))
	if recursive {
		ev.SetAmount(t.Amount)
	} else {
		ev.SetAmount(decimal.Zero)
	}
	ev.AddSplitCategory(b.category(t.Category), t.GrossAmount(), "", b.classes(t.Tags)...)
	b.addExtraDetailSplits(ev, t, true)
	if !recursive {
		qTo := b.mustAccount(to)
		ev.AddSplitAccount(qTo, t.Amount.Neg(), "")
	}
	qHolder.AddEvent(ev)

	if !recursive && !b.dialect.LinkedTransfers {
		qTo := b.mustAccount(to)
		credit := b.newEvent(t)
		credit.SetAmount(t.Amount)
		credit.SetPayeeText(b.transferPayee("from", holder.Name))
		credit.SetAccount(qHolder)
		qTo.AddEvent(credit)
	}
}

func (b *Builder) interestPayee(holder *ledger.Account) string {
	if holder.Parent != nil {
		return holder.Parent.Name
	}
	return holder.Name
}

// processCashBack synthesizes a cash-back award: a single-account split
// event on the awarding account. An award paid into a different account
// gets a transfer split, with the explicit balancing leg written only for
// dialects that do not link transfer splits.
func (b *Builder) processCashBack(from, to *ledger.Account, t *ledger.Transaction) {
	qFrom := b.mustAccount(from)

	ev := b.newEvent(t)
	ev.SetPayee(b.file.RegisterPayee(b.interestPayee(from)))
	if t.IsRecursive() {
		ev.SetAmount(t.Amount)
		ev.AddSplitCategory(b.category(t.Category), t.Amount, "", b.classes(t.Tags)...)
		qFrom.AddEvent(ev)
		return
	}

	qTo := b.mustAccount(to)
	ev.SetAmount(decimal.Zero)
	ev.AddSplitCategory(b.category(t.Category), t.Amount, "", b.classes(t.Tags)...)
	ev.AddSplitAccount(qTo, t.Amount.Neg(), "")
	qFrom.AddEvent(ev)

	if !b.dialect.LinkedTransfers {
		credit := b.newEvent(t)
		credit.SetAmount(t.Amount)
		credit.SetPayeeText(b.transferPayee("from", from.Name))
		credit.SetAccount(qFrom)
		qTo.AddEvent(credit)
	}
}

// processParentAttributed recurses a loan or rental category back into a
// standard payee event on the credit-side account, attributed to that
// account's parent payee.
func (b *Builder) processParentAttributed(acct *ledger.Account, t *ledger.Transaction, amount decimal.Decimal) {
	payee := acct.Parent
	if payee == nil {
		payee = &ledger.Payee{Name: acct.Name}
	}

	qa := b.mustAccount(acct)
	ev := b.newEvent(t)
	ev.SetAmount(amount)
	ev.SetPayee(b.file.RegisterPayee(payee.Name))
	ev.SetCategory(b.category(t.Category), b.classes(t.Tags)...)
	qa.AddEvent(ev)
}
