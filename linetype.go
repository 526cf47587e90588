package qif

// LineType is implemented by the per-record line-type enums. The ordinal
// defines serialization order: a record's lines are written in increasing
// ordinal order regardless of the order they were set in.
type LineType interface {
	comparable

	// Tag returns the one or two character field prefix on the wire.
	Tag() string

	// Ordinal returns the position of the line type within its record kind.
	Ordinal() int
}

// AccountLineType enumerates the fields of an account record.
type AccountLineType int

const (
	AcctLineName AccountLineType = iota
	AcctLineDesc
	AcctLineType
	AcctLineCreditLimit
)

func (t AccountLineType) Ordinal() int { return int(t) }

func (t AccountLineType) Tag() string {
	switch t {
	case AcctLineName:
		return "N"
	case AcctLineDesc:
		return "D"
	case AcctLineType:
		return "T"
	case AcctLineCreditLimit:
		return "L"
	}
	return ""
}

// CategoryLineType enumerates the fields of a category record.
type CategoryLineType int

const (
	CatLineName CategoryLineType = iota
	CatLineDesc
	CatLineIncome
	CatLineExpense
)

func (t CategoryLineType) Ordinal() int { return int(t) }

func (t CategoryLineType) Tag() string {
	switch t {
	case CatLineName:
		return "N"
	case CatLineDesc:
		return "D"
	case CatLineIncome:
		return "I"
	case CatLineExpense:
		return "E"
	}
	return ""
}

// ClassLineType enumerates the fields of a class record.
type ClassLineType int

const (
	ClassLineName ClassLineType = iota
	ClassLineDesc
)

func (t ClassLineType) Ordinal() int { return int(t) }

func (t ClassLineType) Tag() string {
	switch t {
	case ClassLineName:
		return "N"
	case ClassLineDesc:
		return "D"
	}
	return ""
}

// SecurityLineType enumerates the fields of a security record.
type SecurityLineType int

const (
	SecLineName SecurityLineType = iota
	SecLineSymbol
	SecLineType
)

func (t SecurityLineType) Ordinal() int { return int(t) }

func (t SecurityLineType) Tag() string {
	switch t {
	case SecLineName:
		return "N"
	case SecLineSymbol:
		return "S"
	case SecLineType:
		return "T"
	}
	return ""
}

// EventLineType enumerates the fields of a cash transaction record. The
// split line types (SplitCategory, SplitMemo, SplitAmount) only appear in
// split sub-records.
type EventLineType int

const (
	EvtLineDate EventLineType = iota
	EvtLineAmount
	EvtLineCleared
	EvtLineReference
	EvtLinePayee
	EvtLineMemo
	EvtLineAddress
	EvtLineCategory
	EvtLineSplitCategory
	EvtLineSplitMemo
	EvtLineSplitAmount
)

func (t EventLineType) Ordinal() int { return int(t) }

func (t EventLineType) Tag() string {
	switch t {
	case EvtLineDate:
		return "D"
	case EvtLineAmount:
		return "T"
	case EvtLineCleared:
		return "C"
	case EvtLineReference:
		return "N"
	case EvtLinePayee:
		return "P"
	case EvtLineMemo:
		return "M"
	case EvtLineAddress:
		return "A"
	case EvtLineCategory:
		return "L"
	case EvtLineSplitCategory:
		return "S"
	case EvtLineSplitMemo:
		return "E"
	case EvtLineSplitAmount:
		return "$"
	}
	return ""
}

// PortfolioLineType enumerates the fields of an investment transaction
// record.
type PortfolioLineType int

const (
	PortLineDate PortfolioLineType = iota
	PortLineAction
	PortLineSecurity
	PortLinePrice
	PortLineQuantity
	PortLineAmount
	PortLineCleared
	PortLinePayee
	PortLineMemo
	PortLineCommission
	PortLineTransferAccount
	PortLineTransferAmount
)

func (t PortfolioLineType) Ordinal() int { return int(t) }

func (t PortfolioLineType) Tag() string {
	switch t {
	case PortLineDate:
		return "D"
	case PortLineAction:
		return "N"
	case PortLineSecurity:
		return "Y"
	case PortLinePrice:
		return "I"
	case PortLineQuantity:
		return "Q"
	case PortLineAmount:
		return "T"
	case PortLineCleared:
		return "C"
	case PortLinePayee:
		return "P"
	case PortLineMemo:
		return "M"
	case PortLineCommission:
		return "O"
	case PortLineTransferAccount:
		return "L"
	case PortLineTransferAmount:
		return "$"
	}
	return ""
}
