package builder

import (
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/mkuiper/qif"
	"github.com/mkuiper/qif/ledger"
)

type portfolioFixture struct {
	src       *ledger.Ledger
	portfolio *ledger.Account
	checking  *ledger.Account
	acme      *ledger.Security
	holding   *ledger.Holding
	transfer  *ledger.Category
}

func newPortfolioFixture() *portfolioFixture {
	src := ledger.New()
	fx := &portfolioFixture{
		src:       src,
		portfolio: src.AddAccount(&ledger.Account{Name: "Portfolio", Class: ledger.ClassPortfolio}),
		checking:  src.AddAccount(&ledger.Account{Name: "Checking", Class: ledger.ClassChecking}),
		acme:      src.AddSecurity(&ledger.Security{Name: "Acme Corp", Symbol: "ACME", Class: ledger.SecShare}),
		transfer:  src.AddCategory(&ledger.Category{Name: "Transfer", Class: ledger.CatTransfer}),
	}
	fx.holding = &ledger.Holding{Portfolio: fx.portfolio, Security: fx.acme}
	return fx
}

func TestBuyLinked(t *testing.T) {
	fx := newPortfolioFixture()
	fx.src.AddTransaction(&ledger.Transaction{
		Date:       day(2004, 3, 1),
		From:       fx.checking,
		To:         fx.holding,
		Amount:     money("250.00"),
		Category:   fx.transfer,
		Units:      money("100"),
		Price:      money("2.5"),
		Commission: money("5.00"),
	})

	f := build(t, fx.src, qif.Quicken2004)

	// One BuyX carrying the funding account; no separate leg on Checking.
	events := accountEvents(t, f, "Portfolio")
	assert.Equal(t, 1, len(events))
	assert.Equal(t,
		"D01/03/04\nNBuyX\nYAcme Corp\nI2.5\nQ100\nT250.00\nO5.00\nL[Checking]\n$250.00\n^\n",
		render(f, events[0]))
	assert.Equal(t, 0, len(accountEvents(t, f, "Checking")))
}

func TestBuyUnlinked(t *testing.T) {
	fx := newPortfolioFixture()
	fx.src.AddTransaction(&ledger.Transaction{
		Date:     day(2004, 3, 1),
		From:     fx.checking,
		To:       fx.holding,
		Amount:   money("250.00"),
		Category: fx.transfer,
		Units:    money("100"),
		Price:    money("2.5"),
	})

	f := build(t, fx.src, qif.MSMoney)

	events := accountEvents(t, f, "Portfolio")
	assert.Equal(t, 2, len(events))
	assert.Equal(t, "D01/03/04\nNXIn\nT250.00\nL[Checking]\n$250.00\n^\n", render(f, events[0]))
	assert.Equal(t, "D01/03/04\nNBuy\nYAcme Corp\nI2.5\nQ100\nT250.00\n^\n", render(f, events[1]))

	legs := accountEvents(t, f, "Checking")
	assert.Equal(t, 1, len(legs))
	assert.Equal(t, "D01/03/04\nT-250.00\nPTransfer\nL[Portfolio]\n^\n", render(f, legs[0]))
}

func TestBuyZeroShareGuard(t *testing.T) {
	fx := newPortfolioFixture()
	fx.src.AddTransaction(&ledger.Transaction{
		Date:     day(2004, 3, 1),
		From:     fx.checking,
		To:       fx.holding,
		Amount:   money("250.00"),
		Category: fx.transfer,
	})

	f := build(t, fx.src, qif.Quicken2004)

	// A zero-quantity trade is bracketed by a one-unit ShrsIn and ShrsOut.
	events := accountEvents(t, f, "Portfolio")
	assert.Equal(t, 3, len(events))
	assert.Equal(t, "D01/03/04\nNShrsIn\nYAcme Corp\nQ1\n^\n", render(f, events[0]))
	assert.Equal(t, qif.ActionBuyX, events[1].(*qif.PortfolioEvent).Action())
	assert.Equal(t, "D01/03/04\nNShrsOut\nYAcme Corp\nQ1\n^\n", render(f, events[2]))
}

func TestBuyZeroSharesAllowed(t *testing.T) {
	fx := newPortfolioFixture()
	fx.src.AddTransaction(&ledger.Transaction{
		Date:     day(2004, 3, 1),
		From:     fx.checking,
		To:       fx.holding,
		Amount:   money("250.00"),
		Category: fx.transfer,
	})

	f := build(t, fx.src, qif.MoneyDance)

	assert.Equal(t, 1, len(accountEvents(t, f, "Portfolio")))
}

func TestSellLinked(t *testing.T) {
	fx := newPortfolioFixture()
	fx.src.AddTransaction(&ledger.Transaction{
		Date:     day(2004, 3, 1),
		From:     fx.holding,
		To:       fx.checking,
		Amount:   money("300.00"),
		Category: fx.transfer,
		Units:    money("100"),
		Price:    money("3"),
	})

	f := build(t, fx.src, qif.Quicken2004)

	events := accountEvents(t, f, "Portfolio")
	assert.Equal(t, 1, len(events))
	assert.Equal(t,
		"D01/03/04\nNSellX\nYAcme Corp\nI3\nQ100\nT300.00\nL[Checking]\n$300.00\n^\n",
		render(f, events[0]))
}

func TestSellUnlinked(t *testing.T) {
	fx := newPortfolioFixture()
	fx.src.AddTransaction(&ledger.Transaction{
		Date:     day(2004, 3, 1),
		From:     fx.holding,
		To:       fx.checking,
		Amount:   money("300.00"),
		Category: fx.transfer,
		Units:    money("100"),
	})

	f := build(t, fx.src, qif.MSMoney)

	events := accountEvents(t, f, "Portfolio")
	assert.Equal(t, 2, len(events))
	assert.Equal(t, qif.ActionSell, events[0].(*qif.PortfolioEvent).Action())
	assert.Equal(t, "D01/03/04\nNXOut\nT300.00\nL[Checking]\n$300.00\n^\n", render(f, events[1]))

	legs := accountEvents(t, f, "Checking")
	assert.Equal(t, "D01/03/04\nT300.00\nPTransfer\nL[Portfolio]\n^\n", render(f, legs[0]))
}

func TestDividendLinkedWithTaxCredit(t *testing.T) {
	fx := newPortfolioFixture()
	div := fx.src.AddCategory(&ledger.Category{Name: "Income:Dividend", Class: ledger.CatDividend})
	fx.src.AddTransaction(&ledger.Transaction{
		Date:      day(2004, 3, 1),
		From:      fx.holding,
		To:        fx.checking,
		Amount:    money("90.00"),
		Category:  div,
		TaxCredit: money("10.00"),
	})

	f := build(t, fx.src, qif.Quicken2004)

	events := accountEvents(t, f, "Portfolio")
	assert.Equal(t, 2, len(events))
	assert.Equal(t, "D01/03/04\nNDivX\nYAcme Corp\nT90.00\nL[Checking]\n$90.00\n^\n", render(f, events[0]))
	assert.Equal(t,
		"D01/03/04\nNMiscIncX\nYAcme Corp\nT10.00\nPTaxMan\nLTaxes:TaxCredit\n$10.00\n^\n",
		render(f, events[1]))
}

func TestDividendUnlinkedWithTaxCredit(t *testing.T) {
	fx := newPortfolioFixture()
	div := fx.src.AddCategory(&ledger.Category{Name: "Income:Dividend", Class: ledger.CatDividend})
	fx.src.AddTransaction(&ledger.Transaction{
		Date:      day(2004, 3, 1),
		From:      fx.holding,
		To:        fx.checking,
		Amount:    money("90.00"),
		Category:  div,
		TaxCredit: money("10.00"),
	})

	f := build(t, fx.src, qif.MSMoney)

	// Div plus its own transfer pair, then the MiscInc/MiscExp pair
	// standing in for MiscIncX.
	events := accountEvents(t, f, "Portfolio")
	assert.Equal(t, 4, len(events))
	assert.Equal(t, qif.ActionDiv, events[0].(*qif.PortfolioEvent).Action())
	assert.Equal(t, qif.ActionXOut, events[1].(*qif.PortfolioEvent).Action())
	assert.Equal(t, qif.ActionMiscInc, events[2].(*qif.PortfolioEvent).Action())
	assert.Equal(t, qif.ActionMiscExp, events[3].(*qif.PortfolioEvent).Action())

	legs := accountEvents(t, f, "Checking")
	assert.Equal(t, 1, len(legs))
	assert.Equal(t, "D01/03/04\nT90.00\nPTransfer\nL[Portfolio]\n^\n", render(f, legs[0]))
}

func TestReinvestedDividend(t *testing.T) {
	fx := newPortfolioFixture()
	div := fx.src.AddCategory(&ledger.Category{Name: "Income:Dividend", Class: ledger.CatDividend})
	fx.src.AddTransaction(&ledger.Transaction{
		Date:     day(2004, 3, 1),
		From:     fx.holding,
		To:       &ledger.Holding{Portfolio: fx.portfolio, Security: fx.acme},
		Amount:   money("25.00"),
		Category: div,
		Units:    money("10"),
	})

	f := build(t, fx.src, qif.Quicken2004)

	events := accountEvents(t, f, "Portfolio")
	assert.Equal(t, 1, len(events))
	assert.Equal(t, "D01/03/04\nNReinvDiv\nYAcme Corp\nQ10\nT25.00\n^\n", render(f, events[0]))
}

func TestStockSplitRatio(t *testing.T) {
	fx := newPortfolioFixture()
	split := fx.src.AddCategory(&ledger.Category{Name: "Stock Split", Class: ledger.CatStockSplit})
	fx.src.AddTransaction(&ledger.Transaction{
		Date:     day(2004, 3, 2),
		From:     fx.holding,
		To:       fx.holding,
		Category: split,
		Dilution: money("2"),
	})

	f := build(t, fx.src, qif.Quicken2004)

	// The ratio is scaled by ten on the wire: a 2-for-1 split writes Q20.
	events := accountEvents(t, f, "Portfolio")
	assert.Equal(t, 1, len(events))
	assert.Equal(t, "D02/03/04\nNStkSplit\nYAcme Corp\nQ20\n^\n", render(f, events[0]))
}

func TestDeMergerReturnOfCapital(t *testing.T) {
	fx := newPortfolioFixture()
	spinco := fx.src.AddSecurity(&ledger.Security{Name: "SpinCo", Symbol: "SPN", Class: ledger.SecShare})
	demerger := fx.src.AddCategory(&ledger.Category{Name: "DeMerger", Class: ledger.CatStockDeMerger})

	fx.src.AddTransaction(&ledger.Transaction{
		Date:     day(2004, 4, 1),
		From:     fx.holding,
		To:       &ledger.Holding{Portfolio: fx.portfolio, Security: spinco},
		Amount:   money("60.00"),
		Category: demerger,
		Units:    money("30"),
	})

	f := build(t, fx.src, qif.Quicken2004)

	events := accountEvents(t, f, "Portfolio")
	assert.Equal(t, 2, len(events))
	assert.Equal(t, "D01/04/04\nNRtrnCap\nYAcme Corp\nT60.00\n^\n", render(f, events[0]))
	assert.Equal(t, "D01/04/04\nNShrsIn\nYSpinCo\nQ30\nT60.00\n^\n", render(f, events[1]))
}

func TestDeMergerWithoutReturnOfCapital(t *testing.T) {
	fx := newPortfolioFixture()
	spinco := fx.src.AddSecurity(&ledger.Security{Name: "SpinCo", Symbol: "SPN", Class: ledger.SecShare})
	demerger := fx.src.AddCategory(&ledger.Category{Name: "DeMerger", Class: ledger.CatStockDeMerger})

	fx.src.AddTransaction(&ledger.Transaction{
		Date:     day(2004, 4, 1),
		From:     fx.holding,
		To:       &ledger.Holding{Portfolio: fx.portfolio, Security: spinco},
		Amount:   money("60.00"),
		Category: demerger,
		Units:    money("30"),
	})

	f := build(t, fx.src, qif.MSMoney)

	// Without RtrnCap the cost reduction is expressed as a Sell.
	events := accountEvents(t, f, "Portfolio")
	assert.Equal(t, 2, len(events))
	assert.Equal(t, "D01/04/04\nNSell\nYAcme Corp\nT60.00\n^\n", render(f, events[0]))
	assert.Equal(t, "D01/04/04\nNShrsIn\nYSpinCo\nQ30\nT60.00\n^\n", render(f, events[1]))
}

func TestTakeoverWithReturnedCash(t *testing.T) {
	fx := newPortfolioFixture()
	acquirer := fx.src.AddSecurity(&ledger.Security{Name: "BigCo", Symbol: "BIG", Class: ledger.SecShare})
	takeover := fx.src.AddCategory(&ledger.Category{Name: "Takeover", Class: ledger.CatStockTakeover})

	fx.src.AddTransaction(&ledger.Transaction{
		Date:                day(2004, 5, 1),
		From:                fx.holding,
		To:                  &ledger.Holding{Portfolio: fx.portfolio, Security: acquirer},
		Amount:              money("500.00"),
		Category:            takeover,
		Units:               money("100"),
		ReturnedCash:        money("75.00"),
		ReturnedCashAccount: fx.checking,
	})

	f := build(t, fx.src, qif.Quicken2004)

	events := accountEvents(t, f, "Portfolio")
	assert.Equal(t, 3, len(events))
	assert.Equal(t, "D01/05/04\nNShrsOut\nYAcme Corp\nQ100\n^\n", render(f, events[0]))
	assert.Equal(t, "D01/05/04\nNShrsIn\nYBigCo\nQ100\nT500.00\n^\n", render(f, events[1]))
	assert.Equal(t, "D01/05/04\nNXOut\nT75.00\nL[Checking]\n$75.00\n^\n", render(f, events[2]))

	legs := accountEvents(t, f, "Checking")
	assert.Equal(t, "D01/05/04\nT75.00\nPTransfer from Portfolio\nL[Portfolio]\n^\n", render(f, legs[0]))
}

func TestHoldingTransferBetweenPortfolios(t *testing.T) {
	fx := newPortfolioFixture()
	isa := fx.src.AddAccount(&ledger.Account{Name: "ISA", Class: ledger.ClassPortfolio})

	fx.src.AddTransaction(&ledger.Transaction{
		Date:     day(2004, 6, 1),
		From:     fx.holding,
		To:       &ledger.Holding{Portfolio: isa, Security: fx.acme},
		Category: fx.transfer,
		Units:    money("50"),
	})

	f := build(t, fx.src, qif.Quicken2004)

	out := accountEvents(t, f, "Portfolio")
	assert.Equal(t, "D01/06/04\nNShrsOut\nYAcme Corp\nQ50\n^\n", render(f, out[0]))

	in := accountEvents(t, f, "ISA")
	assert.Equal(t, "D01/06/04\nNShrsIn\nYAcme Corp\nQ50\n^\n", render(f, in[0]))
}

func TestPortfolioCashInLinked(t *testing.T) {
	fx := newPortfolioFixture()
	fx.src.AddTransaction(&ledger.Transaction{
		Date:     day(2004, 7, 1),
		From:     fx.checking,
		To:       fx.portfolio,
		Amount:   money("1000.00"),
		Category: fx.transfer,
	})

	f := build(t, fx.src, qif.Quicken2004)

	events := accountEvents(t, f, "Portfolio")
	assert.Equal(t, 1, len(events))
	assert.Equal(t, "D01/07/04\nNXIn\nT1000.00\nL[Checking]\n$1000.00\n^\n", render(f, events[0]))
	assert.Equal(t, 0, len(accountEvents(t, f, "Checking")))
}

func TestPortfolioCashOutUnlinked(t *testing.T) {
	fx := newPortfolioFixture()
	fx.src.AddTransaction(&ledger.Transaction{
		Date:     day(2004, 7, 1),
		From:     fx.portfolio,
		To:       fx.checking,
		Amount:   money("200.00"),
		Category: fx.transfer,
	})

	f := build(t, fx.src, qif.MSMoney)

	events := accountEvents(t, f, "Portfolio")
	assert.Equal(t, 1, len(events))
	assert.Equal(t, "D01/07/04\nNCash\nT-200.00\nL[Checking]\n^\n", render(f, events[0]))

	legs := accountEvents(t, f, "Checking")
	assert.Equal(t, "D01/07/04\nT200.00\nPTransfer\nL[Portfolio]\n^\n", render(f, legs[0]))
}

func TestSecurityIncomeAsShares(t *testing.T) {
	fx := newPortfolioFixture()
	broker := fx.src.AddPayee(&ledger.Payee{Name: "Broker"})
	bonus := fx.src.AddCategory(&ledger.Category{Name: "Income:Bonus Shares", Class: ledger.CatIncome})

	fx.src.AddTransaction(&ledger.Transaction{
		Date:     day(2004, 8, 1),
		From:     broker,
		To:       fx.holding,
		Amount:   money("120.00"),
		Category: bonus,
		Units:    money("40"),
	})

	f := build(t, fx.src, qif.Quicken2004)

	events := accountEvents(t, f, "Portfolio")
	assert.Equal(t, "D01/08/04\nNShrsIn\nYAcme Corp\nQ40\nT120.00\nPBroker\n^\n", render(f, events[0]))
}

func TestSecurityCashIncomeDirect(t *testing.T) {
	fx := newPortfolioFixture()
	broker := fx.src.AddPayee(&ledger.Payee{Name: "Broker"})
	fees := fx.src.AddCategory(&ledger.Category{Name: "Income:Rebate", Class: ledger.CatIncome})

	fx.src.AddTransaction(&ledger.Transaction{
		Date:     day(2004, 8, 1),
		From:     broker,
		To:       fx.holding,
		Amount:   money("12.00"),
		Category: fees,
	})

	f := build(t, fx.src, qif.Quicken2004)

	events := accountEvents(t, f, "Portfolio")
	assert.Equal(t,
		"D01/08/04\nNMiscInc\nYAcme Corp\nT12.00\nPBroker\nLIncome:Rebate\n^\n",
		render(f, events[0]))
}

func TestSecurityCashIncomeThroughHoldingAccount(t *testing.T) {
	fx := newPortfolioFixture()
	broker := fx.src.AddPayee(&ledger.Payee{Name: "Broker"})
	fees := fx.src.AddCategory(&ledger.Category{Name: "Income:Rebate", Class: ledger.CatIncome})

	fx.src.AddTransaction(&ledger.Transaction{
		Date:     day(2004, 8, 1),
		From:     broker,
		To:       fx.holding,
		Amount:   money("12.00"),
		Category: fees,
	})

	f := build(t, fx.src, qif.MSMoney)

	// The cash proxy stages the category posting and pipes the money into
	// the portfolio.
	hold := accountEvents(t, f, "Portfolio Holding")
	assert.Equal(t, 2, len(hold))
	assert.Equal(t, "D01/08/04\nT12.00\nPBroker\nLIncome:Rebate\n^\n", render(f, hold[0]))
	assert.Equal(t, "D01/08/04\nT-12.00\nPTransfer\nL[Portfolio]\n^\n", render(f, hold[1]))

	events := accountEvents(t, f, "Portfolio")
	assert.Equal(t, 1, len(events))
	assert.Equal(t, "D01/08/04\nNXIn\nT12.00\nL[Portfolio Holding]\n$12.00\n^\n", render(f, events[0]))
}

func TestSecurityExpenseDirect(t *testing.T) {
	fx := newPortfolioFixture()
	broker := fx.src.AddPayee(&ledger.Payee{Name: "Broker"})
	fees := fx.src.AddCategory(&ledger.Category{Name: "Expenses:Fees", Class: ledger.CatExpense})

	fx.src.AddTransaction(&ledger.Transaction{
		Date:     day(2004, 8, 2),
		From:     fx.holding,
		To:       broker,
		Amount:   money("3.00"),
		Category: fees,
	})

	f := build(t, fx.src, qif.Quicken2004)

	events := accountEvents(t, f, "Portfolio")
	assert.Equal(t,
		"D02/08/04\nNMiscExp\nYAcme Corp\nT3.00\nPBroker\nLExpenses:Fees\n^\n",
		render(f, events[0]))
}

func TestOpeningBalanceInvestment(t *testing.T) {
	src := ledger.New()
	src.AddAccount(&ledger.Account{
		Name:           "Portfolio",
		Class:          ledger.ClassPortfolio,
		OpeningBalance: money("500.00"),
		OpeningDate:    day(2000, 1, 1),
	})

	f := build(t, src, qif.Quicken2004)

	events := accountEvents(t, f, "Portfolio")
	assert.Equal(t, 1, len(events))
	assert.Equal(t,
		"D01/01/00\nNXIn\nT500.00\nPOpening Balance\nL[Portfolio]\n$500.00\n^\n",
		render(f, events[0]))
}

func TestUnsupportedHoldingCategorySkipped(t *testing.T) {
	fx := newPortfolioFixture()
	weird := fx.src.AddCategory(&ledger.Category{Name: "Weird", Class: ledger.CatWriteOff})

	fx.src.AddTransaction(&ledger.Transaction{
		Date:     day(2004, 9, 1),
		From:     fx.checking,
		To:       fx.holding,
		Amount:   money("1.00"),
		Category: weird,
	})

	logger := &testLogger{}
	f := build(t, fx.src, qif.Quicken2004, WithLogger(logger))

	assert.Equal(t, 0, len(accountEvents(t, f, "Portfolio")))
	assert.Equal(t, 1, len(logger.msgs))
	assert.True(t, strings.Contains(logger.msgs[0], "skipped"))
}

// nomineeTrust is a transaction side outside the built-in party kinds.
type nomineeTrust struct{}

func (nomineeTrust) PartyName() string { return "Nominee Trust" }

func TestTransferFromUnknownPartySkipped(t *testing.T) {
	fx := newPortfolioFixture()
	fx.src.AddTransaction(&ledger.Transaction{
		Date:     day(2004, 5, 1),
		From:     nomineeTrust{},
		To:       fx.portfolio,
		Amount:   money("100.00"),
		Category: fx.transfer,
	})

	logger := &testLogger{}
	f := build(t, fx.src, qif.Quicken2004, WithLogger(logger))

	assert.Equal(t, 0, len(accountEvents(t, f, "Portfolio")))
	assert.Equal(t, 1, len(logger.msgs))
	assert.True(t, strings.Contains(logger.msgs[0], "skipped"))
}
