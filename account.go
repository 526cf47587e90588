package qif

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Dialect account-type strings.
const (
	AccountBank       = "Bank"
	AccountCash       = "Cash"
	AccountCreditCard = "CCard"
	AccountInvestment = "Invst"
	AccountAsset      = "Oth A"
	AccountLiability  = "Oth L"
)

// EventRecord is implemented by both cash and investment transaction
// records held in an account's ledger.
type EventRecord interface {
	// When returns the event date, used for sorting.
	When() time.Time

	// FormatRecord renders the full record including the terminator.
	FormatRecord(d *Dialect, b *strings.Builder)
}

// Account is a registered QIF account and the owner of its event ledger
// for the file.
type Account struct {
	name        string
	desc        string
	typ         string
	creditLimit decimal.Decimal
	hasLimit    bool
	events      []EventRecord
}

// Name returns the unique display name.
func (a *Account) Name() string { return a.name }

// Desc returns the optional description.
func (a *Account) Desc() string { return a.desc }

// Type returns the dialect account-type string, e.g. "Bank".
func (a *Account) Type() string { return a.typ }

// IsInvestment reports whether events on this account are investment
// records.
func (a *Account) IsInvestment() bool { return a.typ == AccountInvestment }

// SetDesc sets the optional description.
func (a *Account) SetDesc(desc string) { a.desc = desc }

// SetCreditLimit sets the optional credit limit.
func (a *Account) SetCreditLimit(v decimal.Decimal) {
	a.creditLimit = v
	a.hasLimit = true
}

// CreditLimit returns the credit limit and whether one is set.
func (a *Account) CreditLimit() (decimal.Decimal, bool) {
	return a.creditLimit, a.hasLimit
}

// AddEvent appends an event to the account's ledger.
func (a *Account) AddEvent(e EventRecord) {
	a.events = append(a.events, e)
}

// Events returns the account's events. After File.SortAll they are in
// date order.
func (a *Account) Events() []EventRecord { return a.events }

// record builds the account-definition record.
func (a *Account) record() *Record[AccountLineType] {
	r := NewRecord[AccountLineType]()
	r.Set(AcctLineName, NewStringLine(a.name))
	if a.desc != "" {
		r.Set(AcctLineDesc, NewStringLine(a.desc))
	}
	r.Set(AcctLineType, NewStringLine(a.typ))
	if a.hasLimit {
		r.Set(AcctLineCreditLimit, NewMoneyLine(a.creditLimit))
	}
	return r
}

// FormatRecord renders the account-definition record.
func (a *Account) FormatRecord(d *Dialect, b *strings.Builder) {
	a.record().Format(d, b)
}
