package qif

// Dialect describes the capabilities of a QIF variant. The builder and the
// portfolio builder branch on these flags when deciding how to expand a
// ledger transaction into QIF records, and the writer uses them for quoting
// rules. A Dialect is immutable; the predefined values below must not be
// modified at runtime.
type Dialect struct {
	// Name identifies the dialect, e.g. "Quicken2004".
	Name string

	// SelfOpeningBalance records an account's opening balance as a transfer
	// referencing the account itself. When false, a synthetic
	// "Opening Balance" income category is used instead.
	SelfOpeningBalance bool

	// VerboseTransferPayee appends "from <account>"/"to <account>" to the
	// "Transfer" payee text on transfer legs.
	VerboseTransferPayee bool

	// LinkedTransfers enables the X-form investment actions (BuyX, SellX,
	// DivX, XIn, XOut) that embed a transfer target in a single record.
	// When false, a plain action plus a separate transfer pair is written.
	LinkedTransfers bool

	// ZeroShareTrades allows trades that leave (or operate on) a holding of
	// zero units. When false, a balancing ShrsIn/ShrsOut of one unit is
	// synthesized around the trade.
	ZeroShareTrades bool

	// ReturnOfCapital enables the RtrnCap action. When false, a capital
	// return is expressed as a Sell.
	ReturnOfCapital bool

	// HoldingAccount posts investment income and expenses through a
	// synthetic cash proxy account instead of directly as a category line
	// on the investment account.
	HoldingAccount bool

	// MiscIncX records the tax credit of a reinvested dividend as a single
	// MiscIncX record. When false, separate cash entries are written.
	MiscIncX bool

	// QuotedPrices wraps the price value of a price row in double quotes.
	QuotedPrices bool

	// BaseYear is the century pivot for two-digit years. Zero means 1970.
	BaseYear int
}

// DefaultBaseYear is the century pivot used when Dialect.BaseYear is zero.
const DefaultBaseYear = 1970

func (d *Dialect) baseYear() int {
	if d.BaseYear == 0 {
		return DefaultBaseYear
	}
	return d.BaseYear
}

// Predefined dialects. Quicken2004 is the richest variant and the default
// for writing; the others restrict capabilities to match the quirks of the
// respective importer.
var (
	Quicken2004 = &Dialect{
		Name:                 "Quicken2004",
		SelfOpeningBalance:   true,
		VerboseTransferPayee: true,
		LinkedTransfers:      true,
		ReturnOfCapital:      true,
		MiscIncX:             true,
		QuotedPrices:         true,
	}

	MSMoney = &Dialect{
		Name:           "MSMoney",
		HoldingAccount: true,
	}

	MoneyDance = &Dialect{
		Name:                 "MoneyDance",
		VerboseTransferPayee: true,
		LinkedTransfers:      true,
		ZeroShareTrades:      true,
		ReturnOfCapital:      true,
	}

	AceMoney = &Dialect{
		Name:               "AceMoney",
		SelfOpeningBalance: true,
		LinkedTransfers:    true,
		QuotedPrices:       true,
	}
)

var dialects = []*Dialect{Quicken2004, MSMoney, MoneyDance, AceMoney}

// Dialects returns all predefined dialects.
func Dialects() []*Dialect {
	out := make([]*Dialect, len(dialects))
	copy(out, dialects)
	return out
}

// ForName returns the predefined dialect with the given name.
func ForName(name string) (*Dialect, bool) {
	for _, d := range dialects {
		if d.Name == name {
			return d, true
		}
	}
	return nil, false
}
