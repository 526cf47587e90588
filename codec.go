package qif

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Wire-format separators. The category separator splits a parent category
// from its child, the class indicator introduces the hyphen-joined class
// list on category and account lines, and the transfer indicator joins a
// category with a linked account on a combined line.
const (
	CategorySeparator = ":"
	ClassIndicator    = "/"
	ClassSeparator    = "-"
	TransferIndicator = "!"

	dateLayout = "02/01/06"
)

// FormatMoney renders a monetary amount with two decimal places.
func FormatMoney(v decimal.Decimal) string {
	return v.StringFixed(2)
}

// ParseMoney parses a monetary amount. Thousands separators are tolerated.
func ParseMoney(text string) (decimal.Decimal, error) {
	text = strings.ReplaceAll(strings.TrimSpace(text), ",", "")
	v, err := decimal.NewFromString(text)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", text, err)
	}
	return v, nil
}

// FormatUnits renders a unit quantity (or price, or ratio) in its shortest
// exact form.
func FormatUnits(v decimal.Decimal) string {
	return v.String()
}

// FormatRate renders a percentage rate with a trailing percent sign.
func FormatRate(v decimal.Decimal) string {
	return v.String() + "%"
}

// ParseRate parses a percentage rate, with or without the percent sign.
func ParseRate(text string) (decimal.Decimal, error) {
	return ParseMoney(strings.TrimSuffix(strings.TrimSpace(text), "%"))
}

// FormatDate renders a date as dd/MM/yy.
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// ParseDate parses a dd/MM/yy date. The two-digit year is resolved against
// the century pivot: the result always falls within [baseYear, baseYear+99].
func ParseDate(text string, baseYear int) (time.Time, error) {
	if baseYear == 0 {
		baseYear = DefaultBaseYear
	}

	parts := strings.Split(strings.TrimSpace(text), "/")
	if len(parts) != 3 {
		return time.Time{}, fmt.Errorf("invalid date %q", text)
	}

	day, err := strconv.Atoi(parts[0])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", text, err)
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", text, err)
	}
	year, err := strconv.Atoi(parts[2])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", text, err)
	}

	if year < 100 {
		century := baseYear - baseYear%100
		year += century
		if year < baseYear {
			year += 100
		}
	}

	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, fmt.Errorf("invalid date %q", text)
	}

	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), nil
}

// formatClassList renders the optional class suffix of a category or
// account line: "/Class" for one class, further classes hyphen-joined.
func formatClassList(classes []*Class) string {
	if len(classes) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(ClassIndicator)
	for i, c := range classes {
		if i > 0 {
			b.WriteString(ClassSeparator)
		}
		b.WriteString(c.Name())
	}
	return b.String()
}

// splitClassList splits the class suffix off a category or account line
// and returns the remaining text plus the class names in order.
func splitClassList(text string) (string, []string) {
	idx := strings.Index(text, ClassIndicator)
	if idx < 0 {
		return text, nil
	}

	names := strings.Split(text[idx+1:], ClassSeparator)
	out := names[:0]
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			out = append(out, n)
		}
	}
	return text[:idx], out
}

// isAccountRef reports whether the text (with any class suffix already
// stripped) is a bracketed account reference.
func isAccountRef(text string) bool {
	return strings.HasPrefix(text, "[") && strings.HasSuffix(text, "]")
}
