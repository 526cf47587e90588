// Package builder translates a source ledger into a populated QIF entity
// registry. For every ledger transaction it decides the category of
// economic event and emits correctly balanced postings into the per-account
// event lists, branching on the capabilities of the target dialect.
//
// Unsupported transaction shapes are logged and skipped so that a
// best-effort export never aborts on one malformed transaction; only
// unconstructable entities (an account of an unknown class) abort the
// build.
package builder

import (
	"fmt"
	"log"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mkuiper/qif"
	"github.com/mkuiper/qif/ledger"
)

// Well-known names used for synthesized postings.
const (
	TaxManPayee           = "TaxMan"
	TaxCreditCategory     = "Taxes:TaxCredit"
	NatInsuranceCategory  = "Taxes:NatInsurance"
	DeemedBenefitCategory = "Taxes:DeemedBenefit"
	CharityCategory       = "Charity:CharityDonation"
	OpeningCategory       = "Opening Balance"
	OpeningPayee          = "Opening Balance"
)

// Logger receives skip-and-continue diagnostics.
type Logger interface {
	Errorf(format string, args ...any)
}

type stdLogger struct{}

func (stdLogger) Errorf(format string, args ...any) {
	log.Printf("ERROR "+format, args...)
}

// Builder consumes ledger transactions and emits QIF records into its
// registry. It holds explicit references to the registry, the dialect and
// the analysis collaborator; there is no ambient state.
type Builder struct {
	file     *qif.File
	dialect  *qif.Dialect
	src      *ledger.Ledger
	analysis ledger.Analysis
	logger   Logger
	lastDate time.Time

	portfolio *portfolioBuilder
}

// Option configures a Builder.
type Option func(*Builder)

// WithLogger replaces the default standard-library logger.
func WithLogger(l Logger) Option {
	return func(b *Builder) { b.logger = l }
}

// Build translates every transaction dated on or before lastDate into QIF
// records and returns the sorted registry.
func Build(src *ledger.Ledger, analysis ledger.Analysis, d *qif.Dialect, lastDate time.Time, opts ...Option) (*qif.File, error) {
	b := &Builder{
		file:     qif.NewFile(d),
		dialect:  d,
		src:      src,
		analysis: analysis,
		logger:   stdLogger{},
		lastDate: lastDate,
	}
	b.portfolio = &portfolioBuilder{b: b}

	for _, opt := range opts {
		opt(b)
	}

	if err := b.run(); err != nil {
		return nil, err
	}
	return b.file, nil
}

func (b *Builder) run() error {
	for _, t := range b.src.Tags() {
		c := b.file.RegisterClass(t.Name)
		if t.Desc != "" {
			c.SetDesc(t.Desc)
		}
	}

	for _, c := range b.src.Categories() {
		qc := b.file.RegisterCategory(c.Name, c.IsIncome())
		if c.Desc != "" {
			qc.SetDesc(c.Desc)
		}
	}

	for _, s := range b.src.Securities() {
		b.registerSecurity(s)
	}
	for _, p := range b.src.Prices() {
		if p.Date.After(b.lastDate) {
			continue
		}
		b.registerSecurity(p.Security).AddPrice(p.Date, p.Value)
	}

	for _, a := range b.src.Accounts() {
		if _, err := b.registerAccount(a); err != nil {
			return err
		}
	}

	for _, t := range b.src.Transactions() {
		if t.Date.After(b.lastDate) {
			continue
		}
		b.processEvent(t)
	}

	b.file.SortAll()
	return nil
}

// accountType maps the domain account class to the dialect account-type
// string. An unrecognized class is a programming error and fatal.
func accountType(c ledger.AccountClass) (string, error) {
	switch c {
	case ledger.ClassChecking, ledger.ClassSavings:
		return qif.AccountBank, nil
	case ledger.ClassCash:
		return qif.AccountCash, nil
	case ledger.ClassCreditCard:
		return qif.AccountCreditCard, nil
	case ledger.ClassAsset:
		return qif.AccountAsset, nil
	case ledger.ClassLoan, ledger.ClassLiability:
		return qif.AccountLiability, nil
	case ledger.ClassPortfolio:
		return qif.AccountInvestment, nil
	}
	return "", fmt.Errorf("unsupported account class %d", c)
}

func securityType(c ledger.SecurityClass) string {
	switch c {
	case ledger.SecBond:
		return qif.SecurityBond
	case ledger.SecUnitTrust:
		return qif.SecurityUnitTrust
	case ledger.SecOption:
		return qif.SecurityOption
	case ledger.SecShare:
		return qif.SecurityShare
	}
	return qif.SecurityOther
}

func (b *Builder) registerSecurity(s *ledger.Security) *qif.Security {
	return b.file.RegisterSecurity(s.Name, s.Symbol, securityType(s.Class))
}

// registerAccount registers the account and, on first registration,
// synthesizes its opening-balance event.
func (b *Builder) registerAccount(a *ledger.Account) (*qif.Account, error) {
	if qa, ok := b.file.LookupAccount(a.Name); ok {
		return qa, nil
	}

	typ, err := accountType(a.Class)
	if err != nil {
		return nil, fmt.Errorf("account %q: %w", a.Name, err)
	}

	qa := b.file.RegisterAccount(a.Name, typ)
	if a.Desc != "" {
		qa.SetDesc(a.Desc)
	}

	if !a.OpeningBalance.IsZero() {
		b.addOpeningBalance(qa, a)
	}
	return qa, nil
}

func (b *Builder) addOpeningBalance(qa *qif.Account, a *ledger.Account) {
	if qa.IsInvestment() {
		ev := qif.NewPortfolioEvent(a.OpeningDate, qif.ActionXIn)
		ev.SetAmount(a.OpeningBalance)
		ev.SetPayeeText(OpeningPayee)
		ev.SetTransferAccount(qa, a.OpeningBalance)
		qa.AddEvent(ev)
		return
	}

	ev := qif.NewEvent(a.OpeningDate)
	ev.SetAmount(a.OpeningBalance)
	if b.dialect.SelfOpeningBalance {
		ev.SetPayeeText(OpeningPayee)
		ev.SetAccount(qa)
	} else {
		ev.SetPayee(b.file.RegisterPayee(OpeningPayee))
		ev.SetCategory(b.file.RegisterCategory(OpeningCategory, true))
	}
	qa.AddEvent(ev)
}

// mustAccount registers a ledger account whose class has already been
// validated during the account pass. Referenced accounts always appear in
// the ledger's account list first, so a failure here indicates a
// programming error; it is logged and a Bank-typed placeholder returned.
func (b *Builder) mustAccount(a *ledger.Account) *qif.Account {
	qa, err := b.registerAccount(a)
	if err != nil {
		b.logger.Errorf("qif: %v", err)
		return b.file.RegisterAccount(a.Name, qif.AccountBank)
	}
	return qa
}

func (b *Builder) category(c *ledger.Category) *qif.Category {
	return b.file.RegisterCategory(c.Name, c.IsIncome())
}

func (b *Builder) classes(tags []*ledger.Tag) []*qif.Class {
	if len(tags) == 0 {
		return nil
	}
	out := make([]*qif.Class, 0, len(tags))
	for _, t := range tags {
		out = append(out, b.file.RegisterClass(t.Name))
	}
	return out
}

// transferPayee synthesizes the payee text of a transfer leg.
func (b *Builder) transferPayee(direction, other string) string {
	if b.dialect.VerboseTransferPayee {
		return "Transfer " + direction + " " + other
	}
	return "Transfer"
}

// processEvent is the top-level dispatch: payee events go through the
// debit/credit payee paths, everything else is a transfer.
func (b *Builder) processEvent(t *ledger.Transaction) {
	if t.Category == nil {
		b.logger.Errorf("qif: transaction on %s has no category; skipped", t.Date.Format("2006-01-02"))
		return
	}

	switch {
	case isPayee(t.To):
		b.processDebitPayee(t)
	case isPayee(t.From):
		b.processCreditPayee(t)
	default:
		b.processTransfer(t)
	}
}

func isPayee(p ledger.Party) bool {
	_, ok := p.(*ledger.Payee)
	return ok
}

// processDebitPayee handles money paid from an asset side to a payee.
func (b *Builder) processDebitPayee(t *ledger.Transaction) {
	payee := t.To.(*ledger.Payee)

	switch from := t.From.(type) {
	case *ledger.Account:
		switch {
		case from.IsAutoExpense():
			b.processCashPayment(from, payee, t)
		case from.IsPortfolio():
			b.portfolio.processPortfolioExpense(from, payee, t)
		case t.HasExtraDetail():
			b.processDetailedDebit(from, payee, t)
		default:
			b.standardEvent(from, payee, t, t.Amount.Neg())
		}
	case *ledger.Holding:
		b.portfolio.processSecurityExpense(from, payee, t)
	default:
		b.logger.Errorf("qif: unsupported debit side %T; transaction skipped", t.From)
	}
}

// processCreditPayee handles money received from a payee into an asset
// side.
func (b *Builder) processCreditPayee(t *ledger.Transaction) {
	payee := t.From.(*ledger.Payee)

	switch to := t.To.(type) {
	case *ledger.Account:
		switch {
		case to.IsAutoExpense():
			b.processCashReceipt(to, payee, t)
		case to.IsPortfolio():
			b.portfolio.processPortfolioIncome(to, payee, t)
		case t.HasExtraDetail():
			b.processDetailedCredit(to, payee, t)
		default:
			b.standardEvent(to, payee, t, t.Amount)
		}
	case *ledger.Holding:
		b.portfolio.processSecurityIncome(to, payee, t)
	default:
		b.logger.Errorf("qif: unsupported credit side %T; transaction skipped", t.To)
	}
}

// standardEvent emits the single-category posting: credit postings record
// the amount as-is, debit postings the negated amount.
func (b *Builder) standardEvent(acct *ledger.Account, payee *ledger.Payee, t *ledger.Transaction, amount decimal.Decimal) {
	qa := b.mustAccount(acct)

	ev := b.newEvent(t)
	ev.SetAmount(amount)
	ev.SetPayee(b.file.RegisterPayee(payee.Name))
	ev.SetCategory(b.category(t.Category), b.classes(t.Tags)...)
	qa.AddEvent(ev)
}

// newEvent builds an event carrying the transaction's incidental fields.
func (b *Builder) newEvent(t *ledger.Transaction) *qif.Event {
	ev := qif.NewEvent(t.Date)
	if t.Memo != "" {
		ev.SetMemo(t.Memo)
	}
	if t.Reference != "" {
		ev.SetReference(t.Reference)
	}
	if t.Reconciled {
		ev.SetCleared(true)
	}
	return ev
}

// processDetailedDebit itemizes an expense with extra detail: the main
// split carries the negated gross amount, each extra-detail component an
// offsetting positive split directed at its well-known category. The
// split legs sum to the negated headline amount.
func (b *Builder) processDetailedDebit(acct *ledger.Account, payee *ledger.Payee, t *ledger.Transaction) {
	qa := b.mustAccount(acct)

	ev := b.newEvent(t)
	ev.SetAmount(t.Amount.Neg())
	ev.SetPayee(b.file.RegisterPayee(payee.Name))
	ev.AddSplitCategory(b.category(t.Category), t.GrossAmount().Neg(), "", b.classes(t.Tags)...)
	b.addExtraDetailSplits(ev, t, false)
	qa.AddEvent(ev)
}

// processDetailedCredit itemizes income with extra detail: the main split
// carries the gross amount, each extra-detail component a negated
// offsetting split.
func (b *Builder) processDetailedCredit(acct *ledger.Account, payee *ledger.Payee, t *ledger.Transaction) {
	qa := b.mustAccount(acct)

	ev := b.newEvent(t)
	ev.SetAmount(t.Amount)
	ev.SetPayee(b.file.RegisterPayee(payee.Name))
	ev.AddSplitCategory(b.category(t.Category), t.GrossAmount(), "", b.classes(t.Tags)...)
	b.addExtraDetailSplits(ev, t, true)
	qa.AddEvent(ev)
}

// addExtraDetailSplits appends one offsetting split per present
// extra-detail amount. For credit events the offsets are negative, for
// debit events positive.
func (b *Builder) addExtraDetailSplits(ev *qif.Event, t *ledger.Transaction, credit bool) {
	add := func(name string, v decimal.Decimal) {
		if v.IsZero() {
			return
		}
		if credit {
			v = v.Neg()
		}
		ev.AddSplitCategory(b.file.RegisterCategory(name, false), v, "")
	}

	add(TaxCreditCategory, t.TaxCredit)
	add(NatInsuranceCategory, t.NatInsurance)
	add(DeemedBenefitCategory, t.DeemedBenefit)
	add(CharityCategory, t.CharityDonation)
}

// processCashPayment reclassifies an auto-expense cash drawdown spent at a
// payee: one zero-sum event recovering the auto category and charging the
// payee's category.
func (b *Builder) processCashPayment(cash *ledger.Account, payee *ledger.Payee, t *ledger.Transaction) {
	qa := b.mustAccount(cash)

	ev := b.newEvent(t)
	ev.SetAmount(decimal.Zero)
	ev.SetPayee(b.file.RegisterPayee(payee.Name))
	ev.AddSplitCategory(b.category(cash.AutoExpense.Category), t.Amount, "")
	ev.AddSplitCategory(b.category(t.Category), t.Amount.Neg(), "", b.classes(t.Tags)...)
	qa.AddEvent(ev)
}

// processCashReceipt mirrors processCashPayment for money received into an
// auto-expense cash account.
func (b *Builder) processCashReceipt(cash *ledger.Account, payee *ledger.Payee, t *ledger.Transaction) {
	qa := b.mustAccount(cash)

	ev := b.newEvent(t)
	ev.SetAmount(decimal.Zero)
	ev.SetPayee(b.file.RegisterPayee(payee.Name))
	ev.AddSplitCategory(b.category(t.Category), t.Amount, "", b.classes(t.Tags)...)
	ev.AddSplitCategory(b.category(cash.AutoExpense.Category), t.Amount.Neg(), "")
	qa.AddEvent(ev)
}
