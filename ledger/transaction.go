package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is one source-ledger transaction. Amount is always
// non-negative; money flows from From to To. Optional amounts are zero
// when absent.
type Transaction struct {
	Date     time.Time
	From     Party
	To       Party
	Amount   decimal.Decimal
	Category *Category
	Tags     []*Tag

	Memo       string
	Reference  string
	Reconciled bool

	// Extra detail: side amounts itemized alongside the headline amount.
	TaxCredit       decimal.Decimal
	NatInsurance    decimal.Decimal
	DeemedBenefit   decimal.Decimal
	CharityDonation decimal.Decimal

	// Investment detail.
	Units      decimal.Decimal
	Dilution   decimal.Decimal
	Price      decimal.Decimal
	Commission decimal.Decimal

	// Cash component of a takeover, paid to a separate account.
	ReturnedCash        decimal.Decimal
	ReturnedCashAccount *Account
}

// HasExtraDetail reports whether any extra-detail amount is present.
func (t *Transaction) HasExtraDetail() bool {
	return !t.TaxCredit.IsZero() ||
		!t.NatInsurance.IsZero() ||
		!t.DeemedBenefit.IsZero() ||
		!t.CharityDonation.IsZero()
}

// GrossAmount returns the headline amount plus all extra-detail amounts.
func (t *Transaction) GrossAmount() decimal.Decimal {
	return t.Amount.
		Add(t.TaxCredit).
		Add(t.NatInsurance).
		Add(t.DeemedBenefit).
		Add(t.CharityDonation)
}

// IsRecursive reports whether both sides are the same party, e.g.
// interest paid into the account that earned it.
func (t *Transaction) IsRecursive() bool {
	return t.From != nil && t.From == t.To
}
