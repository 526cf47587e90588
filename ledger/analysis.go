package ledger

import (
	"github.com/shopspring/decimal"
)

// Analysis supplies the computed deltas the QIF builder consumes. The
// builder never recomputes these; implementations typically delegate to
// the ledger's analysis buckets.
type Analysis interface {
	// UnitsAfter returns the resulting units of the holding once the
	// transaction has been applied.
	UnitsAfter(h *Holding, t *Transaction) decimal.Decimal

	// DeltaCost returns the residual cost movement of the holding caused
	// by the transaction. Positive for cost added, negative for cost
	// removed.
	DeltaCost(h *Holding, t *Transaction) decimal.Decimal

	// CashDelta returns the cash movement of the portfolio account caused
	// by the transaction.
	CashDelta(p *Account, t *Transaction) decimal.Decimal
}

// Positions is a minimal Analysis implementation that replays the
// ledger's transactions in date order, tracking units and cost per
// holding. It is sufficient for exports of ledgers assembled in memory.
type Positions struct {
	ledger *Ledger
}

// NewPositions returns an Analysis over the given ledger.
func NewPositions(l *Ledger) *Positions {
	return &Positions{ledger: l}
}

// UnitsAfter implements Analysis by summing unit movements up to and
// including the transaction.
func (p *Positions) UnitsAfter(h *Holding, t *Transaction) decimal.Decimal {
	units := decimal.Zero
	for _, tx := range p.ledger.Transactions() {
		units = units.Add(unitsDelta(h, tx))
		if tx == t {
			break
		}
	}
	return units
}

// DeltaCost implements Analysis: consideration added on acquisitions,
// removed on disposals.
func (p *Positions) DeltaCost(h *Holding, t *Transaction) decimal.Decimal {
	if to, ok := t.To.(*Holding); ok && sameHolding(to, h) {
		return t.Amount
	}
	if from, ok := t.From.(*Holding); ok && sameHolding(from, h) {
		return t.Amount.Neg()
	}
	return decimal.Zero
}

// CashDelta implements Analysis: cash in minus cash out for the portfolio
// account. A movement on one of the portfolio's holdings is attributed to
// the portfolio itself, so money leaving a holding towards a cash account
// counts as cash paid out of the portfolio.
func (p *Positions) CashDelta(acct *Account, t *Transaction) decimal.Decimal {
	if to, ok := t.To.(*Account); ok && to == acct {
		return t.Amount
	}
	if from, ok := t.From.(*Account); ok && from == acct {
		return t.Amount.Neg()
	}
	if to, ok := t.To.(*Holding); ok && to.Portfolio == acct {
		return t.Amount
	}
	if from, ok := t.From.(*Holding); ok && from.Portfolio == acct {
		return t.Amount.Neg()
	}
	return decimal.Zero
}

func sameHolding(a, b *Holding) bool {
	return a.Portfolio == b.Portfolio && a.Security == b.Security
}

func unitsDelta(h *Holding, t *Transaction) decimal.Decimal {
	if to, ok := t.To.(*Holding); ok && sameHolding(to, h) {
		return t.Units
	}
	if from, ok := t.From.(*Holding); ok && sameHolding(from, h) {
		return t.Units.Neg()
	}
	return decimal.Zero
}
