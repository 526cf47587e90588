package qif

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Dialect security-type strings.
const (
	SecurityShare     = "Share"
	SecurityBond      = "Bond"
	SecurityUnitTrust = "Unit/Inv. Trust"
	SecurityOption    = "Option"
	SecurityOther     = "Other"
)

// Security is a registered security together with its price history.
type Security struct {
	name   string
	symbol string
	typ    string
	prices []*Price
}

// Name returns the unique display name.
func (s *Security) Name() string { return s.name }

// Symbol returns the ticker symbol.
func (s *Security) Symbol() string { return s.symbol }

// Type returns the dialect security-type string.
func (s *Security) Type() string { return s.typ }

// AddPrice registers a price point, deduplicated by date: registering a
// second price for the same date returns the existing one.
func (s *Security) AddPrice(date time.Time, value decimal.Decimal) *Price {
	for _, p := range s.prices {
		if p.date.Equal(date) {
			return p
		}
	}
	p := &Price{security: s, date: date, value: value}
	s.prices = append(s.prices, p)
	return p
}

// Prices returns the price points. After File.SortAll they are in date
// order.
func (s *Security) Prices() []*Price { return s.prices }

func (s *Security) record() *Record[SecurityLineType] {
	r := NewRecord[SecurityLineType]()
	r.Set(SecLineName, NewStringLine(s.name))
	if s.symbol != "" {
		r.Set(SecLineSymbol, NewStringLine(s.symbol))
	}
	if s.typ != "" {
		r.Set(SecLineType, NewStringLine(s.typ))
	}
	return r
}

// FormatRecord renders the security record.
func (s *Security) FormatRecord(d *Dialect, b *strings.Builder) {
	s.record().Format(d, b)
}

// Price is one price point of a security; its identity is (security, date).
type Price struct {
	security *Security
	date     time.Time
	value    decimal.Decimal
}

// Security returns the owning security.
func (p *Price) Security() *Security { return p.security }

// When returns the price date.
func (p *Price) When() time.Time { return p.date }

// Value returns the price.
func (p *Price) Value() decimal.Decimal { return p.value }

// FormatRecord renders the CSV price row. The price value is quote-escaped
// only for dialects that require it.
func (p *Price) FormatRecord(d *Dialect, b *strings.Builder) {
	b.WriteByte('"')
	b.WriteString(p.security.Symbol())
	b.WriteString(`",`)
	if d.QuotedPrices {
		b.WriteByte('"')
		b.WriteString(FormatUnits(p.value))
		b.WriteByte('"')
	} else {
		b.WriteString(FormatUnits(p.value))
	}
	b.WriteString(`,"`)
	b.WriteString(FormatDate(p.date))
	b.WriteString("\"\n")
	b.WriteString(EndOfItem)
	b.WriteByte('\n')
}
