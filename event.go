package qif

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Event is one cash transaction record on a non-investment account.
type Event struct {
	rec  *Record[EventLineType]
	date time.Time
}

// NewEvent returns an event dated at the given day.
func NewEvent(date time.Time) *Event {
	e := &Event{rec: NewRecord[EventLineType](), date: date}
	e.rec.Set(EvtLineDate, NewDateLine(date))
	return e
}

// When returns the event date.
func (e *Event) When() time.Time { return e.date }

// Record exposes the underlying record, mainly for tests and the parser.
func (e *Event) Record() *Record[EventLineType] { return e.rec }

// SetAmount sets the headline amount.
func (e *Event) SetAmount(v decimal.Decimal) {
	e.rec.Set(EvtLineAmount, NewMoneyLine(v))
}

// Amount returns the headline amount, or zero if unset.
func (e *Event) Amount() decimal.Decimal {
	if l, ok := e.rec.Get(EvtLineAmount); ok {
		return l.Amount()
	}
	return decimal.Zero
}

// SetCleared marks the event reconciled.
func (e *Event) SetCleared(cleared bool) {
	e.rec.Set(EvtLineCleared, NewFlagLine(cleared))
}

// SetReference sets the cheque/reference number.
func (e *Event) SetReference(ref string) {
	e.rec.Set(EvtLineReference, NewStringLine(ref))
}

// SetPayee references a registered payee.
func (e *Event) SetPayee(p *Payee) {
	e.rec.Set(EvtLinePayee, NewPayeeLine(p))
}

// SetPayeeText sets free payee text, used for synthesized payees such as
// transfer descriptions.
func (e *Event) SetPayeeText(text string) {
	e.rec.Set(EvtLinePayee, NewStringLine(text))
}

// SetMemo sets the memo text.
func (e *Event) SetMemo(memo string) {
	e.rec.Set(EvtLineMemo, NewStringLine(memo))
}

// SetAddress sets the address text.
func (e *Event) SetAddress(addr string) {
	e.rec.Set(EvtLineAddress, NewStringLine(addr))
}

// SetCategory sets the category line.
func (e *Event) SetCategory(c *Category, classes ...*Class) {
	e.rec.Set(EvtLineCategory, NewCategoryLine(c, classes...))
}

// SetAccount sets the category line to a transfer target.
func (e *Event) SetAccount(a *Account, classes ...*Class) {
	e.rec.Set(EvtLineCategory, NewAccountLine(a, classes...))
}

// SetCategoryAccount sets the combined category-and-account line.
func (e *Event) SetCategoryAccount(c *Category, a *Account, classes ...*Class) {
	e.rec.Set(EvtLineCategory, NewCategoryAccountLine(c, a, classes...))
}

// SetSplitLine attaches a pre-built category or account line as the
// category of a new split leg.
func (e *Event) setSplit(target *Line, amount decimal.Decimal, memo string) {
	s := NewRecord[EventLineType]()
	s.Set(EvtLineSplitCategory, target)
	if memo != "" {
		s.Set(EvtLineSplitMemo, NewStringLine(memo))
	}
	s.Set(EvtLineSplitAmount, NewMoneyLine(amount))
	e.rec.AddSplit(s)
}

// AddSplitCategory appends a split leg allocated to a category.
func (e *Event) AddSplitCategory(c *Category, amount decimal.Decimal, memo string, classes ...*Class) {
	e.setSplit(NewCategoryLine(c, classes...), amount, memo)
}

// AddSplitAccount appends a split leg transferring to an account.
func (e *Event) AddSplitAccount(a *Account, amount decimal.Decimal, memo string, classes ...*Class) {
	e.setSplit(NewAccountLine(a, classes...), amount, memo)
}

// Splits returns the split sub-records.
func (e *Event) Splits() []*Record[EventLineType] { return e.rec.Splits() }

// SplitTotal returns the arithmetic sum of the split legs' amounts.
func (e *Event) SplitTotal() decimal.Decimal {
	total := decimal.Zero
	for _, s := range e.rec.Splits() {
		if l, ok := s.Get(EvtLineSplitAmount); ok {
			total = total.Add(l.Amount())
		}
	}
	return total
}

// FormatRecord renders the event record including splits and terminator.
func (e *Event) FormatRecord(d *Dialect, b *strings.Builder) {
	e.rec.Format(d, b)
}
