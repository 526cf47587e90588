package ledger

// CategoryClass describes the economic nature of a transaction category.
// The builder's dispatch branches on it.
type CategoryClass int

const (
	CatExpense CategoryClass = iota
	CatIncome
	CatTransfer
	CatInterest
	CatLoyaltyBonus
	CatCashBack
	CatLoanInterestEarned
	CatLoanInterestCharged
	CatRentalIncome
	CatRoomRentalIncome
	CatWriteOff
	CatDividend
	CatStockSplit
	CatUnitsAdjust
	CatStockDeMerger
	CatStockTakeover
	CatSecurityReplace
	CatPortfolioXfer
	CatStockRightsIssue
	CatOpeningBalance
)

// Category is a source-ledger transaction category. Name is the full
// two-level name, e.g. "Income:Interest".
type Category struct {
	Name  string
	Desc  string
	Class CategoryClass
}

// IsIncome reports whether postings to the category represent income.
func (c *Category) IsIncome() bool {
	switch c.Class {
	case CatIncome, CatInterest, CatLoyaltyBonus, CatCashBack,
		CatLoanInterestEarned, CatRentalIncome, CatRoomRentalIncome,
		CatDividend, CatOpeningBalance:
		return true
	}
	return false
}
