package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// SecurityClass is the domain subtype of a security.
type SecurityClass int

const (
	SecShare SecurityClass = iota
	SecBond
	SecUnitTrust
	SecOption
	SecOther
)

// Security is a source-ledger security.
type Security struct {
	Name   string
	Symbol string
	Class  SecurityClass
}

// Price is one quoted price of a security on a date.
type Price struct {
	Security *Security
	Date     time.Time
	Value    decimal.Decimal
}
