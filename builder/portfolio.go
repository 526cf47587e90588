package builder

import (
	"github.com/shopspring/decimal"

	"github.com/mkuiper/qif"
	"github.com/mkuiper/qif/ledger"
)

// portfolioBuilder synthesizes investment records. Each routine decides,
// per dialect, whether a linked X form replaces a separate transfer pair,
// whether a zero-quantity trade needs a synthetic one-unit share
// adjustment, and whether a cash holding-account proxy stands in for
// direct category postings on the investment account.
//
// The numeric inputs (resulting units, delta cost, portfolio cash delta)
// come from the ledger's analysis collaborator and are never recomputed
// here.
type portfolioBuilder struct {
	b *Builder
}

var one = decimal.NewFromInt(1)

func (p *portfolioBuilder) security(s *ledger.Security) *qif.Security {
	return p.b.registerSecurity(s)
}

// holdingAccount returns the cash proxy account staging investment cash
// movements for dialects without direct category postings. The account is
// synthesized and may never appear in the source ledger.
func (p *portfolioBuilder) holdingAccount(port *ledger.Account) *qif.Account {
	return p.b.file.RegisterAccount(port.Name+" Holding", qif.AccountCash)
}

// newPortfolioEvent builds an investment event carrying the transaction's
// incidental fields.
func (p *portfolioBuilder) newPortfolioEvent(t *ledger.Transaction, action qif.Action) *qif.PortfolioEvent {
	ev := qif.NewPortfolioEvent(t.Date, action)
	if t.Memo != "" {
		ev.SetMemo(t.Memo)
	}
	if t.Reconciled {
		ev.SetCleared(true)
	}
	return ev
}

// shareAdjust emits a one-unit ShrsIn or ShrsOut for the security.
func (p *portfolioBuilder) shareAdjust(qPort *qif.Account, sec *qif.Security, t *ledger.Transaction, action qif.Action) {
	ev := p.newPortfolioEvent(t, action)
	ev.SetSecurity(sec)
	ev.SetQuantity(one)
	qPort.AddEvent(ev)
}

// zeroShareGuard wraps a trade that the dialect cannot express with a
// zero quantity: a one-unit ShrsIn before, and the returned closure emits
// the balancing ShrsOut after. The guard is a no-op when not needed.
func (p *portfolioBuilder) zeroShareGuard(qPort *qif.Account, sec *qif.Security, t *ledger.Transaction, needed bool) func() {
	if !needed {
		return func() {}
	}
	p.shareAdjust(qPort, sec, t, qif.ActionShrsIn)
	return func() { p.shareAdjust(qPort, sec, t, qif.ActionShrsOut) }
}

// processSecurityIncome posts income received directly into a holding:
// units granted arrive as ShrsIn, pure cash income as MiscInc (or through
// the holding account proxy).
func (p *portfolioBuilder) processSecurityIncome(h *ledger.Holding, payee *ledger.Payee, t *ledger.Transaction) {
	qPort := p.b.mustAccount(h.Portfolio)
	sec := p.security(h.Security)

	if !t.Units.IsZero() {
		ev := p.newPortfolioEvent(t, qif.ActionShrsIn)
		ev.SetSecurity(sec)
		ev.SetQuantity(t.Units)
		ev.SetAmount(t.Amount)
		ev.SetPayee(p.b.file.RegisterPayee(payee.Name))
		qPort.AddEvent(ev)
		return
	}

	if p.b.dialect.HoldingAccount {
		p.throughHoldingAccount(h.Portfolio, payee, t, t.Amount)
		return
	}

	ev := p.newPortfolioEvent(t, qif.ActionMiscInc)
	ev.SetSecurity(sec)
	ev.SetAmount(t.Amount)
	ev.SetPayee(p.b.file.RegisterPayee(payee.Name))
	ev.SetCategory(p.b.category(t.Category))
	qPort.AddEvent(ev)
}

// processSecurityExpense mirrors processSecurityIncome for fees and other
// expenses charged against a holding.
func (p *portfolioBuilder) processSecurityExpense(h *ledger.Holding, payee *ledger.Payee, t *ledger.Transaction) {
	qPort := p.b.mustAccount(h.Portfolio)
	sec := p.security(h.Security)

	if !t.Units.IsZero() {
		ev := p.newPortfolioEvent(t, qif.ActionShrsOut)
		ev.SetSecurity(sec)
		ev.SetQuantity(t.Units)
		ev.SetAmount(t.Amount)
		ev.SetPayee(p.b.file.RegisterPayee(payee.Name))
		qPort.AddEvent(ev)
		return
	}

	if p.b.dialect.HoldingAccount {
		p.throughHoldingAccount(h.Portfolio, payee, t, t.Amount.Neg())
		return
	}

	ev := p.newPortfolioEvent(t, qif.ActionMiscExp)
	ev.SetSecurity(sec)
	ev.SetAmount(t.Amount)
	ev.SetPayee(p.b.file.RegisterPayee(payee.Name))
	ev.SetCategory(p.b.category(t.Category))
	qPort.AddEvent(ev)
}

// processPortfolioIncome posts cash income at portfolio level.
func (p *portfolioBuilder) processPortfolioIncome(port *ledger.Account, payee *ledger.Payee, t *ledger.Transaction) {
	if p.b.dialect.HoldingAccount {
		p.throughHoldingAccount(port, payee, t, t.Amount)
		return
	}

	qPort := p.b.mustAccount(port)
	ev := p.newPortfolioEvent(t, qif.ActionMiscInc)
	ev.SetAmount(t.Amount)
	ev.SetPayee(p.b.file.RegisterPayee(payee.Name))
	ev.SetCategory(p.b.category(t.Category))
	qPort.AddEvent(ev)
}

// processPortfolioExpense posts cash expense at portfolio level.
func (p *portfolioBuilder) processPortfolioExpense(port *ledger.Account, payee *ledger.Payee, t *ledger.Transaction) {
	if p.b.dialect.HoldingAccount {
		p.throughHoldingAccount(port, payee, t, t.Amount.Neg())
		return
	}

	qPort := p.b.mustAccount(port)
	ev := p.newPortfolioEvent(t, qif.ActionMiscExp)
	ev.SetAmount(t.Amount)
	ev.SetPayee(p.b.file.RegisterPayee(payee.Name))
	ev.SetCategory(p.b.category(t.Category))
	qPort.AddEvent(ev)
}

// throughHoldingAccount stages a category posting in the cash proxy
// account and transfers the money into (positive amount) or out of
// (negative amount) the portfolio.
func (p *portfolioBuilder) throughHoldingAccount(port *ledger.Account, payee *ledger.Payee, t *ledger.Transaction, amount decimal.Decimal) {
	qPort := p.b.mustAccount(port)
	hold := p.holdingAccount(port)

	post := p.b.newEvent(t)
	post.SetAmount(amount)
	post.SetPayee(p.b.file.RegisterPayee(payee.Name))
	post.SetCategory(p.b.category(t.Category), p.b.classes(t.Tags)...)
	hold.AddEvent(post)

	if amount.Sign() >= 0 {
		leg := p.b.newEvent(t)
		leg.SetAmount(amount.Neg())
		leg.SetPayeeText(p.b.transferPayee("to", qPort.Name()))
		leg.SetAccount(qPort)
		hold.AddEvent(leg)

		xin := p.newPortfolioEvent(t, qif.ActionXIn)
		xin.SetAmount(amount)
		xin.SetTransferAccount(hold, amount)
		qPort.AddEvent(xin)
		return
	}

	out := amount.Neg()

	leg := p.b.newEvent(t)
	leg.SetAmount(out)
	leg.SetPayeeText(p.b.transferPayee("from", qPort.Name()))
	leg.SetAccount(qPort)
	hold.AddEvent(leg)

	xout := p.newPortfolioEvent(t, qif.ActionXOut)
	xout.SetAmount(out)
	xout.SetTransferAccount(hold, out)
	qPort.AddEvent(xout)
}

// processTransferToSecurity handles money moving from a cash account into
// a holding: a purchase.
func (p *portfolioBuilder) processTransferToSecurity(from *ledger.Account, h *ledger.Holding, t *ledger.Transaction) {
	switch t.Category.Class {
	case ledger.CatTransfer, ledger.CatExpense, ledger.CatStockRightsIssue:
		p.processBuy(from, h, t)
	default:
		p.b.logger.Errorf("qif: unsupported category class %d for transfer to security; transaction skipped", t.Category.Class)
	}
}

// processBuy emits the purchase. With linked transfers a single BuyX
// carries the funding account; otherwise the cash arrives as an XIn pair
// with the funding account's own leg, followed by a plain Buy. A
// zero-quantity purchase is wrapped in the one-unit guard when the
// dialect cannot trade zero shares.
func (p *portfolioBuilder) processBuy(from *ledger.Account, h *ledger.Holding, t *ledger.Transaction) {
	qPort := p.b.mustAccount(h.Portfolio)
	qFrom := p.b.mustAccount(from)
	sec := p.security(h.Security)

	done := p.zeroShareGuard(qPort, sec, t, t.Units.IsZero() && !p.b.dialect.ZeroShareTrades)
	defer done()

	if p.b.dialect.LinkedTransfers {
		ev := p.newPortfolioEvent(t, qif.ActionBuyX)
		p.fillTrade(ev, sec, t)
		ev.SetTransferAccount(qFrom, t.Amount)
		qPort.AddEvent(ev)
		return
	}

	xin := p.newPortfolioEvent(t, qif.ActionXIn)
	xin.SetAmount(t.Amount)
	xin.SetTransferAccount(qFrom, t.Amount)
	qPort.AddEvent(xin)

	buy := p.newPortfolioEvent(t, qif.ActionBuy)
	p.fillTrade(buy, sec, t)
	qPort.AddEvent(buy)

	leg := p.b.newEvent(t)
	leg.SetAmount(t.Amount.Neg())
	leg.SetPayeeText(p.b.transferPayee("to", qPort.Name()))
	leg.SetAccount(qPort)
	qFrom.AddEvent(leg)
}

func (p *portfolioBuilder) fillTrade(ev *qif.PortfolioEvent, sec *qif.Security, t *ledger.Transaction) {
	ev.SetSecurity(sec)
	if !t.Units.IsZero() {
		ev.SetQuantity(t.Units)
	}
	if !t.Price.IsZero() {
		ev.SetPrice(t.Price)
	}
	if !t.Commission.IsZero() {
		ev.SetCommission(t.Commission)
	}
	ev.SetAmount(t.Amount)
}

// processTransferFromSecurity handles money leaving a holding towards a
// cash account, dispatching on the category class.
func (p *portfolioBuilder) processTransferFromSecurity(h *ledger.Holding, to *ledger.Account, t *ledger.Transaction) {
	switch t.Category.Class {
	case ledger.CatDividend:
		p.processDividend(h, to, t)
	case ledger.CatPortfolioXfer:
		p.processCashOut(h.Portfolio, to, t)
	case ledger.CatTransfer, ledger.CatStockRightsIssue:
		p.processSell(h, to, t)
	default:
		p.b.logger.Errorf("qif: unsupported category class %d for transfer from security; transaction skipped", t.Category.Class)
	}
}

// processSell emits the disposal. The one-unit guard applies when the
// trade itself has zero quantity, e.g. a rights sale.
func (p *portfolioBuilder) processSell(h *ledger.Holding, to *ledger.Account, t *ledger.Transaction) {
	qPort := p.b.mustAccount(h.Portfolio)
	qTo := p.b.mustAccount(to)
	sec := p.security(h.Security)

	done := p.zeroShareGuard(qPort, sec, t, t.Units.IsZero() && !p.b.dialect.ZeroShareTrades)
	defer done()

	if p.b.dialect.LinkedTransfers {
		ev := p.newPortfolioEvent(t, qif.ActionSellX)
		p.fillTrade(ev, sec, t)
		ev.SetTransferAccount(qTo, t.Amount)
		qPort.AddEvent(ev)
		return
	}

	sell := p.newPortfolioEvent(t, qif.ActionSell)
	p.fillTrade(sell, sec, t)
	qPort.AddEvent(sell)

	xout := p.newPortfolioEvent(t, qif.ActionXOut)
	xout.SetAmount(t.Amount)
	xout.SetTransferAccount(qTo, t.Amount)
	qPort.AddEvent(xout)

	leg := p.b.newEvent(t)
	leg.SetAmount(t.Amount)
	leg.SetPayeeText(p.b.transferPayee("from", qPort.Name()))
	leg.SetAccount(qPort)
	qTo.AddEvent(leg)
}

// processDividend emits a cash dividend paid away to an account.
func (p *portfolioBuilder) processDividend(h *ledger.Holding, to *ledger.Account, t *ledger.Transaction) {
	qPort := p.b.mustAccount(h.Portfolio)
	qTo := p.b.mustAccount(to)
	sec := p.security(h.Security)

	if p.b.dialect.LinkedTransfers {
		ev := p.newPortfolioEvent(t, qif.ActionDivX)
		ev.SetSecurity(sec)
		ev.SetAmount(t.Amount)
		ev.SetTransferAccount(qTo, t.Amount)
		qPort.AddEvent(ev)
	} else {
		div := p.newPortfolioEvent(t, qif.ActionDiv)
		div.SetSecurity(sec)
		div.SetAmount(t.Amount)
		qPort.AddEvent(div)

		xout := p.newPortfolioEvent(t, qif.ActionXOut)
		xout.SetAmount(t.Amount)
		xout.SetTransferAccount(qTo, t.Amount)
		qPort.AddEvent(xout)

		leg := p.b.newEvent(t)
		leg.SetAmount(t.Amount)
		leg.SetPayeeText(p.b.transferPayee("from", qPort.Name()))
		leg.SetAccount(qPort)
		qTo.AddEvent(leg)
	}

	if !t.TaxCredit.IsZero() {
		p.processDividendTaxCredit(qPort, sec, t)
	}
}

// processDividendTaxCredit records the tax credit attached to a dividend:
// a single MiscIncX when the dialect supports it, otherwise an offsetting
// MiscInc/MiscExp pair against the TaxMan.
func (p *portfolioBuilder) processDividendTaxCredit(qPort *qif.Account, sec *qif.Security, t *ledger.Transaction) {
	taxMan := p.b.file.RegisterPayee(TaxManPayee)
	taxCat := p.b.file.RegisterCategory(TaxCreditCategory, false)

	if p.b.dialect.MiscIncX {
		ev := p.newPortfolioEvent(t, qif.ActionMiscIncX)
		ev.SetSecurity(sec)
		ev.SetAmount(t.TaxCredit)
		ev.SetPayee(taxMan)
		ev.SetTransferCategory(taxCat, t.TaxCredit)
		qPort.AddEvent(ev)
		return
	}

	inc := p.newPortfolioEvent(t, qif.ActionMiscInc)
	inc.SetSecurity(sec)
	inc.SetAmount(t.TaxCredit)
	inc.SetPayee(taxMan)
	inc.SetCategory(taxCat)
	qPort.AddEvent(inc)

	exp := p.newPortfolioEvent(t, qif.ActionMiscExp)
	exp.SetSecurity(sec)
	exp.SetAmount(t.TaxCredit)
	exp.SetPayee(taxMan)
	exp.SetCategory(taxCat)
	qPort.AddEvent(exp)
}

// processTransferBetweenSecurities handles holding-to-holding
// transactions, dispatching on the category class. An unrecognized class
// is logged and the transaction skipped.
func (p *portfolioBuilder) processTransferBetweenSecurities(from, to *ledger.Holding, t *ledger.Transaction) {
	switch t.Category.Class {
	case ledger.CatStockSplit:
		p.processStockSplit(from, t)
	case ledger.CatUnitsAdjust:
		p.processUnitsAdjust(from, to, t)
	case ledger.CatDividend:
		p.processStockDividend(from, to, t)
	case ledger.CatStockDeMerger:
		p.processDeMerger(from, to, t)
	case ledger.CatStockTakeover:
		p.processTakeover(from, to, t)
	case ledger.CatSecurityReplace:
		p.processSecurityReplace(from, to, t)
	case ledger.CatTransfer:
		p.processHoldingTransfer(from, to, t)
	default:
		p.b.logger.Errorf("qif: unsupported category class %d for transfer between securities; transaction skipped", t.Category.Class)
	}
}

// processStockSplit emits a StkSplit; the quantity line carries the split
// ratio scaled by ten, per the Quicken convention.
func (p *portfolioBuilder) processStockSplit(h *ledger.Holding, t *ledger.Transaction) {
	qPort := p.b.mustAccount(h.Portfolio)

	ev := p.newPortfolioEvent(t, qif.ActionStkSplit)
	ev.SetSecurity(p.security(h.Security))
	ev.SetRatio(t.Dilution.Mul(decimal.NewFromInt(10)))
	qPort.AddEvent(ev)
}

// processUnitsAdjust reconciles a units discrepancy: units leave the from
// holding and arrive at the to holding; a recursive adjustment is a plain
// ShrsIn.
func (p *portfolioBuilder) processUnitsAdjust(from, to *ledger.Holding, t *ledger.Transaction) {
	if from == to {
		qPort := p.b.mustAccount(from.Portfolio)
		ev := p.newPortfolioEvent(t, qif.ActionShrsIn)
		ev.SetSecurity(p.security(from.Security))
		ev.SetQuantity(t.Units)
		qPort.AddEvent(ev)
		return
	}
	p.processHoldingTransfer(from, to, t)
}

// processStockDividend handles a dividend: reinvested into the same
// holding as a ReinvDiv, or units of another security as a ShrsIn.
func (p *portfolioBuilder) processStockDividend(from, to *ledger.Holding, t *ledger.Transaction) {
	qPort := p.b.mustAccount(from.Portfolio)

	if from.Portfolio == to.Portfolio && from.Security == to.Security {
		ev := p.newPortfolioEvent(t, qif.ActionReinvDiv)
		ev.SetSecurity(p.security(from.Security))
		ev.SetQuantity(t.Units)
		ev.SetAmount(t.Amount)
		qPort.AddEvent(ev)

		if !t.TaxCredit.IsZero() {
			p.processDividendTaxCredit(qPort, p.security(from.Security), t)
		}
		return
	}

	ev := p.newPortfolioEvent(t, qif.ActionShrsIn)
	ev.SetSecurity(p.security(to.Security))
	ev.SetQuantity(t.Units)
	ev.SetAmount(t.Amount)
	p.b.mustAccount(to.Portfolio).AddEvent(ev)
}

// processDeMerger reduces the parent's cost by the residual cost movement
// and brings in the child's shares at that cost. Without return-of-capital
// support the reduction is expressed as a Sell wrapped in the one-unit
// guard when the parent's resulting units are zero.
func (p *portfolioBuilder) processDeMerger(from, to *ledger.Holding, t *ledger.Transaction) {
	qPort := p.b.mustAccount(from.Portfolio)
	parent := p.security(from.Security)
	child := p.security(to.Security)

	costOut := p.b.analysis.DeltaCost(from, t).Neg()

	if p.b.dialect.ReturnOfCapital {
		ev := p.newPortfolioEvent(t, qif.ActionRtrnCap)
		ev.SetSecurity(parent)
		ev.SetAmount(costOut)
		qPort.AddEvent(ev)
	} else {
		resulting := p.b.analysis.UnitsAfter(from, t)
		done := p.zeroShareGuard(qPort, parent, t, resulting.IsZero() && !p.b.dialect.ZeroShareTrades)
		sell := p.newPortfolioEvent(t, qif.ActionSell)
		sell.SetSecurity(parent)
		sell.SetAmount(costOut)
		qPort.AddEvent(sell)
		done()
	}

	in := p.newPortfolioEvent(t, qif.ActionShrsIn)
	in.SetSecurity(child)
	in.SetQuantity(t.Units)
	in.SetAmount(costOut)
	qPort.AddEvent(in)
}

// processTakeover removes the old holding, brings in the acquirer's
// shares at the carried cost, and pays any cash component away.
func (p *portfolioBuilder) processTakeover(from, to *ledger.Holding, t *ledger.Transaction) {
	qPort := p.b.mustAccount(from.Portfolio)

	out := p.newPortfolioEvent(t, qif.ActionShrsOut)
	out.SetSecurity(p.security(from.Security))
	out.SetQuantity(t.Units)
	qPort.AddEvent(out)

	in := p.newPortfolioEvent(t, qif.ActionShrsIn)
	in.SetSecurity(p.security(to.Security))
	in.SetQuantity(p.b.analysis.UnitsAfter(to, t))
	in.SetAmount(p.b.analysis.DeltaCost(to, t))
	p.b.mustAccount(to.Portfolio).AddEvent(in)

	if !t.ReturnedCash.IsZero() && t.ReturnedCashAccount != nil {
		qCash := p.b.mustAccount(t.ReturnedCashAccount)

		xout := p.newPortfolioEvent(t, qif.ActionXOut)
		xout.SetAmount(t.ReturnedCash)
		xout.SetTransferAccount(qCash, t.ReturnedCash)
		qPort.AddEvent(xout)

		leg := p.b.newEvent(t)
		leg.SetAmount(t.ReturnedCash)
		leg.SetPayeeText(p.b.transferPayee("from", qPort.Name()))
		leg.SetAccount(qPort)
		qCash.AddEvent(leg)
	}
}

// processSecurityReplace swaps one security for another, carrying the
// cost across.
func (p *portfolioBuilder) processSecurityReplace(from, to *ledger.Holding, t *ledger.Transaction) {
	qPort := p.b.mustAccount(from.Portfolio)
	cost := p.b.analysis.DeltaCost(to, t)

	out := p.newPortfolioEvent(t, qif.ActionShrsOut)
	out.SetSecurity(p.security(from.Security))
	out.SetQuantity(t.Units)
	qPort.AddEvent(out)

	in := p.newPortfolioEvent(t, qif.ActionShrsIn)
	in.SetSecurity(p.security(to.Security))
	in.SetQuantity(p.b.analysis.UnitsAfter(to, t))
	in.SetAmount(cost)
	p.b.mustAccount(to.Portfolio).AddEvent(in)
}

// processHoldingTransfer moves units between portfolios.
func (p *portfolioBuilder) processHoldingTransfer(from, to *ledger.Holding, t *ledger.Transaction) {
	out := p.newPortfolioEvent(t, qif.ActionShrsOut)
	out.SetSecurity(p.security(from.Security))
	out.SetQuantity(t.Units)
	p.b.mustAccount(from.Portfolio).AddEvent(out)

	in := p.newPortfolioEvent(t, qif.ActionShrsIn)
	in.SetSecurity(p.security(to.Security))
	in.SetQuantity(t.Units)
	p.b.mustAccount(to.Portfolio).AddEvent(in)
}

// processPortfolioTransfer moves cash between a portfolio and another
// account (or a second portfolio). With linked transfers the XIn/XOut
// records embed the counterparty; otherwise plain Cash records plus the
// counterparty's own transfer leg are written.
func (p *portfolioBuilder) processPortfolioTransfer(from, to *ledger.Account, t *ledger.Transaction) {
	if from.IsPortfolio() {
		p.processCashOut(from, to, t)
		return
	}
	p.processCashIn(from, to, t)
}

// processCashOut pays cash out of a portfolio into another account. The
// amount moved is the portfolio's cash delta as computed by the analysis
// layer, not the raw transaction amount.
func (p *portfolioBuilder) processCashOut(port, to *ledger.Account, t *ledger.Transaction) {
	qPort := p.b.mustAccount(port)
	qTo := p.b.mustAccount(to)
	out := p.b.analysis.CashDelta(port, t).Neg()

	if to.IsPortfolio() {
		xout := p.newPortfolioEvent(t, qif.ActionXOut)
		xout.SetAmount(out)
		xout.SetTransferAccount(qTo, out)
		qPort.AddEvent(xout)

		in := p.b.analysis.CashDelta(to, t)
		xin := p.newPortfolioEvent(t, qif.ActionXIn)
		xin.SetAmount(in)
		xin.SetTransferAccount(qPort, in)
		qTo.AddEvent(xin)
		return
	}

	if p.b.dialect.LinkedTransfers {
		xout := p.newPortfolioEvent(t, qif.ActionXOut)
		xout.SetAmount(out)
		xout.SetTransferAccount(qTo, out)
		qPort.AddEvent(xout)
		return
	}

	cash := p.newPortfolioEvent(t, qif.ActionCash)
	cash.SetAmount(out.Neg())
	cash.SetAccount(qTo)
	qPort.AddEvent(cash)

	leg := p.b.newEvent(t)
	leg.SetAmount(out)
	leg.SetPayeeText(p.b.transferPayee("from", qPort.Name()))
	leg.SetAccount(qPort)
	qTo.AddEvent(leg)
}

// processCashIn brings cash from another account into a portfolio, again
// consuming the analysis layer's cash delta for the portfolio.
func (p *portfolioBuilder) processCashIn(from, port *ledger.Account, t *ledger.Transaction) {
	qPort := p.b.mustAccount(port)
	qFrom := p.b.mustAccount(from)
	in := p.b.analysis.CashDelta(port, t)

	if p.b.dialect.LinkedTransfers {
		xin := p.newPortfolioEvent(t, qif.ActionXIn)
		xin.SetAmount(in)
		xin.SetTransferAccount(qFrom, in)
		qPort.AddEvent(xin)
		return
	}

	cash := p.newPortfolioEvent(t, qif.ActionCash)
	cash.SetAmount(in)
	cash.SetAccount(qFrom)
	qPort.AddEvent(cash)

	leg := p.b.newEvent(t)
	leg.SetAmount(in.Neg())
	leg.SetPayeeText(p.b.transferPayee("to", qPort.Name()))
	leg.SetAccount(qPort)
	qFrom.AddEvent(leg)
}
