package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// Party is one side of a transaction: a payee, an account, or a security
// holding within a portfolio.
type Party interface {
	PartyName() string
}

// Payee is a counterparty with no sub-state.
type Payee struct {
	Name string
}

// PartyName implements Party.
func (p *Payee) PartyName() string { return p.Name }

// AccountClass is the domain subtype of an account.
type AccountClass int

const (
	ClassChecking AccountClass = iota
	ClassSavings
	ClassCash
	ClassCreditCard
	ClassLoan
	ClassAsset
	ClassLiability
	ClassPortfolio
)

// AutoExpense configures a cash account that auto-posts reconciling
// entries to a fixed payee/category pair.
type AutoExpense struct {
	Payee    *Payee
	Category *Category
}

// Account is a source-ledger account.
type Account struct {
	Name  string
	Desc  string
	Class AccountClass

	// Parent is the owning institution, used when loan or rental income
	// is attributed to a payee.
	Parent *Payee

	// AutoExpense is non-nil for petty-cash accounts that expense their
	// movements automatically.
	AutoExpense *AutoExpense

	OpeningBalance decimal.Decimal
	OpeningDate    time.Time
}

// PartyName implements Party.
func (a *Account) PartyName() string { return a.Name }

// IsAutoExpense reports whether the account is an auto-expensing cash
// account.
func (a *Account) IsAutoExpense() bool {
	return a.Class == ClassCash && a.AutoExpense != nil
}

// IsPortfolio reports whether the account holds securities.
func (a *Account) IsPortfolio() bool { return a.Class == ClassPortfolio }

// Holding is one security position within a portfolio account.
type Holding struct {
	Portfolio *Account
	Security  *Security
}

// PartyName implements Party.
func (h *Holding) PartyName() string {
	return h.Portfolio.Name + ":" + h.Security.Name
}

// Tag is a transaction tag, exported as a QIF class.
type Tag struct {
	Name string
	Desc string
}
