// Package ledger defines the read-only accessor contracts through which
// the QIF builder consumes a source ledger: accounts, payees, categories,
// tags, securities, prices and transactions, plus the Analysis interface
// supplying computed per-transaction deltas.
//
// The package deliberately performs no business-rule validation; computed
// amounts are trusted as given. A small in-memory implementation is
// provided so that exports and tests can assemble a ledger directly.
package ledger

import (
	"golang.org/x/exp/slices"
)

// Ledger is an in-memory source ledger. Collections are kept in
// registration order; Transactions returns them date-sorted.
type Ledger struct {
	accounts     []*Account
	payees       []*Payee
	categories   []*Category
	tags         []*Tag
	securities   []*Security
	prices       []*Price
	transactions []*Transaction
}

// New returns an empty ledger.
func New() *Ledger {
	return &Ledger{}
}

// AddAccount registers an account.
func (l *Ledger) AddAccount(a *Account) *Account {
	l.accounts = append(l.accounts, a)
	return a
}

// AddPayee registers a payee.
func (l *Ledger) AddPayee(p *Payee) *Payee {
	l.payees = append(l.payees, p)
	return p
}

// AddCategory registers a category.
func (l *Ledger) AddCategory(c *Category) *Category {
	l.categories = append(l.categories, c)
	return c
}

// AddTag registers a tag.
func (l *Ledger) AddTag(t *Tag) *Tag {
	l.tags = append(l.tags, t)
	return t
}

// AddSecurity registers a security.
func (l *Ledger) AddSecurity(s *Security) *Security {
	l.securities = append(l.securities, s)
	return s
}

// AddPrice registers a price point.
func (l *Ledger) AddPrice(p *Price) *Price {
	l.prices = append(l.prices, p)
	return p
}

// AddTransaction registers a transaction.
func (l *Ledger) AddTransaction(t *Transaction) *Transaction {
	l.transactions = append(l.transactions, t)
	return t
}

// Accounts returns all accounts.
func (l *Ledger) Accounts() []*Account { return l.accounts }

// Payees returns all payees.
func (l *Ledger) Payees() []*Payee { return l.payees }

// Categories returns all categories.
func (l *Ledger) Categories() []*Category { return l.categories }

// Tags returns all tags.
func (l *Ledger) Tags() []*Tag { return l.tags }

// Securities returns all securities.
func (l *Ledger) Securities() []*Security { return l.securities }

// Prices returns all price points.
func (l *Ledger) Prices() []*Price { return l.prices }

// Transactions returns all transactions in date order. The sort is stable
// so same-day transactions keep registration order.
func (l *Ledger) Transactions() []*Transaction {
	out := make([]*Transaction, len(l.transactions))
	copy(out, l.transactions)
	slices.SortStableFunc(out, func(a, b *Transaction) int {
		return a.Date.Compare(b.Date)
	})
	return out
}
