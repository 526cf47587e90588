package qif

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Action is an investment action verb. The X forms embed a transfer target
// and are only valid for dialects with linked-transfer support.
type Action string

const (
	ActionBuy      Action = "Buy"
	ActionBuyX     Action = "BuyX"
	ActionSell     Action = "Sell"
	ActionSellX    Action = "SellX"
	ActionDiv      Action = "Div"
	ActionDivX     Action = "DivX"
	ActionReinvDiv Action = "ReinvDiv"
	ActionShrsIn   Action = "ShrsIn"
	ActionShrsOut  Action = "ShrsOut"
	ActionStkSplit Action = "StkSplit"
	ActionXIn      Action = "XIn"
	ActionXOut     Action = "XOut"
	ActionMiscInc  Action = "MiscInc"
	ActionMiscIncX Action = "MiscIncX"
	ActionMiscExp  Action = "MiscExp"
	ActionMiscExpX Action = "MiscExpX"
	ActionRtrnCap  Action = "RtrnCap"
	ActionRtrnCapX Action = "RtrnCapX"
	ActionCash     Action = "Cash"
)

// Linked returns the X form of the action, embedding a transfer target.
func (a Action) Linked() Action {
	switch a {
	case ActionBuy:
		return ActionBuyX
	case ActionSell:
		return ActionSellX
	case ActionDiv:
		return ActionDivX
	case ActionMiscInc:
		return ActionMiscIncX
	case ActionMiscExp:
		return ActionMiscExpX
	case ActionRtrnCap:
		return ActionRtrnCapX
	}
	return a
}

// PortfolioEvent is one investment transaction record on an investment
// account.
type PortfolioEvent struct {
	rec  *Record[PortfolioLineType]
	date time.Time
}

// NewPortfolioEvent returns an investment event with the given action.
func NewPortfolioEvent(date time.Time, action Action) *PortfolioEvent {
	e := &PortfolioEvent{rec: NewRecord[PortfolioLineType](), date: date}
	e.rec.Set(PortLineDate, NewDateLine(date))
	e.rec.Set(PortLineAction, NewStringLine(string(action)))
	return e
}

// When returns the event date.
func (e *PortfolioEvent) When() time.Time { return e.date }

// Record exposes the underlying record.
func (e *PortfolioEvent) Record() *Record[PortfolioLineType] { return e.rec }

// Action returns the action verb.
func (e *PortfolioEvent) Action() Action {
	if l, ok := e.rec.Get(PortLineAction); ok {
		return Action(l.Text())
	}
	return ""
}

// SetSecurity references the traded security.
func (e *PortfolioEvent) SetSecurity(s *Security) {
	e.rec.Set(PortLineSecurity, NewSecurityLine(s))
}

// SetPrice sets the unit price.
func (e *PortfolioEvent) SetPrice(v decimal.Decimal) {
	e.rec.Set(PortLinePrice, NewPriceLine(v))
}

// SetQuantity sets the unit quantity.
func (e *PortfolioEvent) SetQuantity(v decimal.Decimal) {
	e.rec.Set(PortLineQuantity, NewUnitsLine(v))
}

// SetRatio sets the quantity line to a split ratio.
func (e *PortfolioEvent) SetRatio(v decimal.Decimal) {
	e.rec.Set(PortLineQuantity, NewRatioLine(v))
}

// SetAmount sets the headline amount.
func (e *PortfolioEvent) SetAmount(v decimal.Decimal) {
	e.rec.Set(PortLineAmount, NewMoneyLine(v))
}

// Amount returns the headline amount, or zero if unset.
func (e *PortfolioEvent) Amount() decimal.Decimal {
	if l, ok := e.rec.Get(PortLineAmount); ok {
		return l.Amount()
	}
	return decimal.Zero
}

// SetCleared marks the event reconciled.
func (e *PortfolioEvent) SetCleared(cleared bool) {
	e.rec.Set(PortLineCleared, NewFlagLine(cleared))
}

// SetPayee references a registered payee.
func (e *PortfolioEvent) SetPayee(p *Payee) {
	e.rec.Set(PortLinePayee, NewPayeeLine(p))
}

// SetPayeeText sets free payee text.
func (e *PortfolioEvent) SetPayeeText(text string) {
	e.rec.Set(PortLinePayee, NewStringLine(text))
}

// SetMemo sets the memo text.
func (e *PortfolioEvent) SetMemo(memo string) {
	e.rec.Set(PortLineMemo, NewStringLine(memo))
}

// SetCommission sets the commission amount.
func (e *PortfolioEvent) SetCommission(v decimal.Decimal) {
	e.rec.Set(PortLineCommission, NewMoneyLine(v))
}

// SetCategory sets the category line of a MiscInc/MiscExp record.
func (e *PortfolioEvent) SetCategory(c *Category, classes ...*Class) {
	e.rec.Set(PortLineTransferAccount, NewCategoryLine(c, classes...))
}

// SetAccount sets the transfer target without a transfer amount.
func (e *PortfolioEvent) SetAccount(a *Account, classes ...*Class) {
	e.rec.Set(PortLineTransferAccount, NewAccountLine(a, classes...))
}

// SetTransferAccount sets the linked-transfer target and amount of an
// X-form action.
func (e *PortfolioEvent) SetTransferAccount(a *Account, amount decimal.Decimal, classes ...*Class) {
	e.rec.Set(PortLineTransferAccount, NewAccountLine(a, classes...))
	e.rec.Set(PortLineTransferAmount, NewMoneyLine(amount))
}

// SetTransferCategory sets the linked category target and amount, used by
// MiscIncX/MiscExpX records.
func (e *PortfolioEvent) SetTransferCategory(c *Category, amount decimal.Decimal, classes ...*Class) {
	e.rec.Set(PortLineTransferAccount, NewCategoryLine(c, classes...))
	e.rec.Set(PortLineTransferAmount, NewMoneyLine(amount))
}

// FormatRecord renders the investment record including terminator.
func (e *PortfolioEvent) FormatRecord(d *Dialect, b *strings.Builder) {
	e.rec.Format(d, b)
}
