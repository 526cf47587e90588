package parser

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/alecthomas/assert/v2"
	"github.com/shopspring/decimal"

	"github.com/mkuiper/qif"
	"github.com/mkuiper/qif/writer"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParseCategorySection(t *testing.T) {
	input := strings.Join([]string{
		"!Type:Cat",
		"NGroceries",
		"E",
		"^",
		"NSalary",
		"I",
		"^",
		"NFood:Eating Out",
		"DRestaurants and takeaways",
		"E",
		"^",
	}, "\n")

	f, err := ParseString(qif.Quicken2004, input)
	assert.NoError(t, err)

	groceries, ok := f.LookupCategory("Groceries")
	assert.True(t, ok)
	assert.True(t, groceries.IsExpense())

	salary, ok := f.LookupCategory("Salary")
	assert.True(t, ok)
	assert.True(t, salary.IsIncome())

	child, ok := f.LookupCategory("Food:Eating Out")
	assert.True(t, ok)
	assert.Equal(t, "Restaurants and takeaways", child.Desc())

	// The parent is materialized implicitly.
	_, ok = f.LookupCategory("Food")
	assert.True(t, ok)
}

func TestParseClassSection(t *testing.T) {
	input := "!Type:Class\nNHome\nDHousehold spending\n^\n"

	f, err := ParseString(qif.Quicken2004, input)
	assert.NoError(t, err)

	c, ok := f.LookupClass("Home")
	assert.True(t, ok)
	assert.Equal(t, "Household spending", c.Desc())
}

func TestParseAccountsAndEvents(t *testing.T) {
	input := strings.Join([]string{
		"!Account",
		"NChecking",
		"DEveryday account",
		"TBank",
		"^",
		"!Type:Bank",
		"D01/03/04",
		"T-100.00",
		"N1234",
		"PTesco",
		"MWeekly shop",
		"LGroceries",
		"^",
		"D02/03/04",
		"T50.00",
		"CX",
		"PTransfer from Savings",
		"L[Savings]",
		"^",
	}, "\n")

	f, err := ParseString(qif.Quicken2004, input)
	assert.NoError(t, err)

	a, ok := f.LookupAccount("Checking")
	assert.True(t, ok)
	assert.Equal(t, "Everyday account", a.Desc())
	assert.Equal(t, 2, len(a.Events()))

	ev := a.Events()[0].(*qif.Event)
	assert.True(t, ev.When().Equal(day(2004, 3, 1)))
	assert.True(t, ev.Amount().Equal(decimal.NewFromInt(-100)))

	l, ok := ev.Record().Get(qif.EvtLinePayee)
	assert.True(t, ok)
	assert.Equal(t, qif.KindPayee, l.Kind())
	assert.Equal(t, "Tesco", l.Payee().Name())

	// The transfer leg keeps its payee as free text and registers the
	// target account.
	transfer := a.Events()[1].(*qif.Event)
	l, ok = transfer.Record().Get(qif.EvtLinePayee)
	assert.True(t, ok)
	assert.Equal(t, qif.KindString, l.Kind())

	_, ok = f.LookupAccount("Savings")
	assert.True(t, ok)
	_, ok = f.LookupPayee("Transfer from Savings")
	assert.False(t, ok)
}

func TestParseSplits(t *testing.T) {
	input := strings.Join([]string{
		"!Type:Bank",
		"D01/03/04",
		"T0.00",
		"PCash",
		"SAuto",
		"$10.00",
		"SGroceries",
		"ETop-up",
		"$-10.00",
		"^",
	}, "\n")

	f, err := ParseString(qif.Quicken2004, input)
	assert.NoError(t, err)

	a, ok := f.LookupAccount("Bank")
	assert.True(t, ok)
	ev := a.Events()[0].(*qif.Event)

	assert.Equal(t, 2, len(ev.Splits()))
	assert.True(t, ev.SplitTotal().IsZero())

	memo, ok := ev.Splits()[1].Get(qif.EvtLineSplitMemo)
	assert.True(t, ok)
	assert.Equal(t, "Top-up", memo.Text())
}

func TestParseInvestmentEvents(t *testing.T) {
	input := strings.Join([]string{
		"!Account",
		"NPortfolio",
		"TInvst",
		"^",
		"!Type:Invst",
		"D01/03/04",
		"NBuyX",
		"YAcme Corp",
		"I2.50",
		"Q100",
		"T250.00",
		"O5.00",
		"L[Checking]",
		"$250.00",
		"^",
		"D02/03/04",
		"NStkSplit",
		"YAcme Corp",
		"Q20",
		"^",
	}, "\n")

	f, err := ParseString(qif.Quicken2004, input)
	assert.NoError(t, err)

	a, ok := f.LookupAccount("Portfolio")
	assert.True(t, ok)
	assert.True(t, a.IsInvestment())
	assert.Equal(t, 2, len(a.Events()))

	buy := a.Events()[0].(*qif.PortfolioEvent)
	assert.Equal(t, qif.ActionBuyX, buy.Action())
	assert.True(t, buy.Amount().Equal(decimal.NewFromInt(250)))

	sec, ok := buy.Record().Get(qif.PortLineSecurity)
	assert.True(t, ok)
	assert.Equal(t, "Acme Corp", sec.Security().Name())

	target, ok := buy.Record().Get(qif.PortLineTransferAccount)
	assert.True(t, ok)
	assert.Equal(t, qif.KindAccount, target.Kind())

	split := a.Events()[1].(*qif.PortfolioEvent)
	q, ok := split.Record().Get(qif.PortLineQuantity)
	assert.True(t, ok)
	assert.Equal(t, qif.KindRatio, q.Kind())
}

func TestParseSecuritiesAndPrices(t *testing.T) {
	input := strings.Join([]string{
		"!Type:Security",
		"NAcme Corp",
		"SACME",
		"TShare",
		"^",
		"!Type:Prices",
		`"ACME","2.5","01/03/04"`,
		"^",
		"!Type:Prices",
		`"ACME",2.75,"02/03/04"`,
		"^",
	}, "\n")

	f, err := ParseString(qif.Quicken2004, input)
	assert.NoError(t, err)

	s, ok := f.LookupSymbol("ACME")
	assert.True(t, ok)
	assert.Equal(t, "Acme Corp", s.Name())
	assert.Equal(t, 2, len(s.Prices()))
	assert.True(t, s.Prices()[0].Value().Equal(decimal.RequireFromString("2.5")))
}

func TestParseUnknownTagsIgnored(t *testing.T) {
	input := "!Type:Bank\nD01/03/04\nT-1.00\nZmystery field\nPShop\n^\n"

	f, err := ParseString(qif.Quicken2004, input)
	assert.NoError(t, err)

	a, _ := f.LookupAccount("Bank")
	assert.Equal(t, 1, len(a.Events()))
}

func TestParseUnknownSectionsSkipped(t *testing.T) {
	input := strings.Join([]string{
		"!Type:Memorized",
		"T-10.00",
		"PIgnored",
		"^",
		"!Type:Budget",
		"Nalso ignored",
		"^",
		"!Type:Cat",
		"NGroceries",
		"E",
		"^",
	}, "\n")

	f, err := ParseString(qif.Quicken2004, input)
	assert.NoError(t, err)

	_, ok := f.LookupCategory("Groceries")
	assert.True(t, ok)
	assert.Equal(t, 0, len(f.Accounts()))
	assert.Equal(t, 0, len(f.Payees()))
}

func TestParseCRLFAndBlankLines(t *testing.T) {
	input := "!Type:Cat\r\n\r\nNGroceries\r\nE\r\n^\r\n"

	f, err := ParseString(qif.Quicken2004, input)
	assert.NoError(t, err)

	_, ok := f.LookupCategory("Groceries")
	assert.True(t, ok)
}

func TestParseMissingFinalTerminator(t *testing.T) {
	input := "!Type:Cat\nNGroceries\nE"

	f, err := ParseString(qif.Quicken2004, input)
	assert.NoError(t, err)

	_, ok := f.LookupCategory("Groceries")
	assert.True(t, ok)
}

func TestParseErrorCarriesPosition(t *testing.T) {
	input := "!Type:Bank\nD01/03/04\nTnot-a-number\n^\n"

	_, err := ParseString(qif.Quicken2004, input, WithFilename("test.qif"))
	assert.Error(t, err)

	pe, ok := err.(*ParseError)
	assert.True(t, ok)
	assert.Equal(t, "test.qif", pe.Filename)
	assert.Equal(t, 3, pe.Line)
	assert.True(t, strings.HasPrefix(pe.Error(), "test.qif:3: "))
}

func TestParseEventWithoutDate(t *testing.T) {
	input := "!Type:Bank\nT-1.00\nPShop\n^\n"

	_, err := ParseString(qif.Quicken2004, input)
	assert.Error(t, err)
}

func TestParseBaseYearFromDialect(t *testing.T) {
	d := &qif.Dialect{Name: "pivot", BaseYear: 1930}

	f, err := ParseString(d, "!Type:Bank\nD01/03/35\nT1.00\nPShop\n^\n")
	assert.NoError(t, err)

	a, _ := f.LookupAccount("Bank")
	assert.True(t, a.Events()[0].When().Equal(day(1935, 3, 1)))
}

// TestRoundTrip checks that parsing a canonical file and rewriting it
// reproduces the input byte for byte.
func TestRoundTrip(t *testing.T) {
	input := strings.Join([]string{
		"!Type:Class",
		"NHome",
		"^",
		"!Type:Cat",
		"NGroceries",
		"E",
		"^",
		"NInterest",
		"I",
		"^",
		"!Account",
		"NChecking",
		"TBank",
		"^",
		"NPortfolio",
		"TInvst",
		"^",
		"NSavings",
		"TBank",
		"^",
		"!Type:Security",
		"NAcme Corp",
		"SACME",
		"TShare",
		"^",
		"!Account",
		"NChecking",
		"TBank",
		"^",
		"!Type:Bank",
		"D01/03/04",
		"T-100.00",
		"PTesco",
		"LGroceries/Home",
		"^",
		"D02/03/04",
		"T50.00",
		"PTransfer from Savings",
		"L[Savings]",
		"^",
		"!Account",
		"NPortfolio",
		"TInvst",
		"^",
		"!Type:Invst",
		"D01/03/04",
		"NBuyX",
		"YAcme Corp",
		"I2.5",
		"Q100",
		"T250.00",
		"O5.00",
		"L[Checking]",
		"$250.00",
		"^",
		"!Type:Prices",
		`"ACME","2.5","01/03/04"`,
		"^",
		"",
	}, "\n")

	f, err := ParseString(qif.Quicken2004, input)
	assert.NoError(t, err)

	var buf bytes.Buffer
	assert.NoError(t, writer.New().Write(context.Background(), f, &buf))
	assert.Equal(t, input, buf.String())
}

func TestParseInvestmentPayeeRegistration(t *testing.T) {
	input := strings.Join([]string{
		"!Account",
		"NPortfolio",
		"TInvst",
		"^",
		"!Type:Invst",
		"D01/03/04",
		"NMiscInc",
		"YAcme Corp",
		"T10.00",
		"PTaxMan",
		"LTaxes:TaxCredit",
		"$10.00",
		"^",
		"D02/03/04",
		"NXIn",
		"T500.00",
		"POpening Balance",
		"L[Portfolio]",
		"$500.00",
		"^",
	}, "\n")

	f, err := ParseString(qif.Quicken2004, input)
	assert.NoError(t, err)

	// A payee against a plain category names a counterparty; a payee on a
	// transfer record stays free text.
	_, ok := f.LookupPayee("TaxMan")
	assert.True(t, ok)
	_, ok = f.LookupPayee("Opening Balance")
	assert.False(t, ok)

	a, _ := f.LookupAccount("Portfolio")
	events := a.Events()
	assert.Equal(t, 2, len(events))

	l, ok := events[0].(*qif.PortfolioEvent).Record().Get(qif.PortLinePayee)
	assert.True(t, ok)
	assert.Equal(t, qif.KindPayee, l.Kind())
	l, ok = events[1].(*qif.PortfolioEvent).Record().Get(qif.PortLinePayee)
	assert.True(t, ok)
	assert.Equal(t, qif.KindString, l.Kind())
}
