package qif

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineKind discriminates the payload held by a Line.
type LineKind int

const (
	KindString LineKind = iota
	KindMoney
	KindDate
	KindFlag
	KindPrice
	KindUnits
	KindRate
	KindRatio
	KindSecurity
	KindAccount
	KindPayee
	KindCategory
	KindCategoryAccount
)

// Line is a single tagged field of a record, a tagged union over the
// payload kinds of QIF field lines. A Line is immutable after construction.
type Line struct {
	kind     LineKind
	str      string
	dec      decimal.Decimal
	date     time.Time
	flag     bool
	security *Security
	account  *Account
	payee    *Payee
	category *Category
	classes  []*Class
}

// NewStringLine returns a line holding free text.
func NewStringLine(text string) *Line {
	return &Line{kind: KindString, str: text}
}

// NewMoneyLine returns a line holding a monetary amount.
func NewMoneyLine(v decimal.Decimal) *Line {
	return &Line{kind: KindMoney, dec: v}
}

// NewDateLine returns a line holding a date.
func NewDateLine(t time.Time) *Line {
	return &Line{kind: KindDate, date: t}
}

// NewFlagLine returns a reconciled/cleared flag line.
func NewFlagLine(set bool) *Line {
	return &Line{kind: KindFlag, flag: set}
}

// NewPriceLine returns a line holding a security price.
func NewPriceLine(v decimal.Decimal) *Line {
	return &Line{kind: KindPrice, dec: v}
}

// NewUnitsLine returns a line holding a unit quantity.
func NewUnitsLine(v decimal.Decimal) *Line {
	return &Line{kind: KindUnits, dec: v}
}

// NewRateLine returns a line holding a percentage rate.
func NewRateLine(v decimal.Decimal) *Line {
	return &Line{kind: KindRate, dec: v}
}

// NewRatioLine returns a line holding a split ratio.
func NewRatioLine(v decimal.Decimal) *Line {
	return &Line{kind: KindRatio, dec: v}
}

// NewSecurityLine returns a line referencing a security by name.
func NewSecurityLine(s *Security) *Line {
	return &Line{kind: KindSecurity, security: s}
}

// NewAccountLine returns a line referencing an account as a transfer
// target, with an optional class list.
func NewAccountLine(a *Account, classes ...*Class) *Line {
	return &Line{kind: KindAccount, account: a, classes: classes}
}

// NewPayeeLine returns a line referencing a payee.
func NewPayeeLine(p *Payee) *Line {
	return &Line{kind: KindPayee, payee: p}
}

// NewCategoryLine returns a line referencing a category, with an optional
// class list.
func NewCategoryLine(c *Category, classes ...*Class) *Line {
	return &Line{kind: KindCategory, category: c, classes: classes}
}

// NewCategoryAccountLine returns a combined line referencing a category and
// a linked account.
func NewCategoryAccountLine(c *Category, a *Account, classes ...*Class) *Line {
	return &Line{kind: KindCategoryAccount, category: c, account: a, classes: classes}
}

// Kind returns the payload kind.
func (l *Line) Kind() LineKind { return l.kind }

// Text returns the free-text payload of a string line.
func (l *Line) Text() string { return l.str }

// Amount returns the decimal payload of a money, price, units, rate or
// ratio line.
func (l *Line) Amount() decimal.Decimal { return l.dec }

// Date returns the date payload of a date line.
func (l *Line) Date() time.Time { return l.date }

// Flag returns whether a flag line is set.
func (l *Line) Flag() bool { return l.flag }

// Security returns the referenced security, or nil.
func (l *Line) Security() *Security { return l.security }

// Account returns the referenced account, or nil.
func (l *Line) Account() *Account { return l.account }

// Payee returns the referenced payee, or nil.
func (l *Line) Payee() *Payee { return l.payee }

// Category returns the referenced category, or nil.
func (l *Line) Category() *Category { return l.category }

// Classes returns the class references of a category or account line.
func (l *Line) Classes() []*Class { return l.classes }

// Format renders the line's payload as wire text, without the field tag.
func (l *Line) Format(d *Dialect) string {
	switch l.kind {
	case KindString:
		return l.str
	case KindMoney:
		return FormatMoney(l.dec)
	case KindDate:
		return FormatDate(l.date)
	case KindFlag:
		if l.flag {
			return "X"
		}
		return ""
	case KindPrice, KindUnits, KindRatio:
		return FormatUnits(l.dec)
	case KindRate:
		return FormatRate(l.dec)
	case KindSecurity:
		return l.security.Name()
	case KindAccount:
		return "[" + l.account.Name() + "]" + formatClassList(l.classes)
	case KindPayee:
		return l.payee.Name()
	case KindCategory:
		return l.category.Name() + formatClassList(l.classes)
	case KindCategoryAccount:
		return l.category.Name() + TransferIndicator +
			"[" + l.account.Name() + "]" + formatClassList(l.classes)
	}
	return ""
}

// Equal reports structural equality: same kind and same payload, with
// entity references compared by name.
func (l *Line) Equal(o *Line) bool {
	if l == nil || o == nil {
		return l == o
	}
	if l.kind != o.kind {
		return false
	}

	switch l.kind {
	case KindString:
		return l.str == o.str
	case KindMoney, KindPrice, KindUnits, KindRate, KindRatio:
		return l.dec.Equal(o.dec)
	case KindDate:
		return l.date.Equal(o.date)
	case KindFlag:
		return l.flag == o.flag
	case KindSecurity:
		return l.security.Name() == o.security.Name()
	case KindPayee:
		return l.payee.Name() == o.payee.Name()
	case KindAccount:
		return l.account.Name() == o.account.Name() && sameClasses(l.classes, o.classes)
	case KindCategory:
		return l.category.Name() == o.category.Name() && sameClasses(l.classes, o.classes)
	case KindCategoryAccount:
		return l.category.Name() == o.category.Name() &&
			l.account.Name() == o.account.Name() &&
			sameClasses(l.classes, o.classes)
	}
	return false
}

func sameClasses(a, b []*Class) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Name() != b[i].Name() {
			return false
		}
	}
	return true
}
