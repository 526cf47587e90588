// Large QIF File Generator
//
// Generates a large QIF file for performance testing and profiling. It
// populates a registry with randomized accounts, categories, payees and
// transactions and serializes it to stdout.
//
// Usage:
//
//	go run main.go > large.qif
//	go run main.go 50000 > large.qif  # Specify number of transactions
package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mkuiper/qif"
	"github.com/mkuiper/qif/loader"
)

const defaultTransactions = 10000

var (
	categories = []string{
		"Food:Groceries",
		"Food:Restaurant",
		"Housing:Rent",
		"Housing:Utilities",
		"Transport:Fuel",
		"Transport:Transit",
		"Shopping:Clothing",
		"Shopping:Electronics",
		"Entertainment:Movies",
		"Health:Pharmacy",
	}

	incomeCategories = []string{
		"Income:Salary",
		"Income:Bonus",
		"Income:Interest",
	}

	payees = []string{
		"Tesco",
		"Sainsbury's",
		"Amazon",
		"Transport for London",
		"British Gas",
		"Thames Water",
		"Netflix",
		"Boots",
		"Acme Corp Payroll",
	}

	classes = []string{"Home", "Work", "Holiday"}
)

func main() {
	n := defaultTransactions
	if len(os.Args) > 1 {
		v, err := strconv.Atoi(os.Args[1])
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid transaction count %q\n", os.Args[1])
			os.Exit(1)
		}
		n = v
	}

	rng := rand.New(rand.NewSource(42))
	f := qif.NewFile(qif.Quicken2004)

	checking := f.RegisterAccount("Checking", qif.AccountBank)
	savings := f.RegisterAccount("Savings", qif.AccountBank)
	card := f.RegisterAccount("Visa", qif.AccountCreditCard)
	accounts := []*qif.Account{checking, savings, card}

	for _, name := range classes {
		f.RegisterClass(name)
	}
	for _, name := range categories {
		f.RegisterCategory(name, false)
	}
	for _, name := range incomeCategories {
		f.RegisterCategory(name, true)
	}

	start := time.Date(2001, time.January, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		date := start.AddDate(0, 0, i/10)
		acct := accounts[rng.Intn(len(accounts))]

		ev := qif.NewEvent(date)
		amount := decimal.NewFromInt(int64(rng.Intn(20000))).Div(decimal.NewFromInt(100))

		if rng.Intn(10) == 0 {
			cat, _ := f.LookupCategory(incomeCategories[rng.Intn(len(incomeCategories))])
			ev.SetAmount(amount)
			ev.SetCategory(cat)
		} else {
			cat, _ := f.LookupCategory(categories[rng.Intn(len(categories))])
			ev.SetAmount(amount.Neg())
			if rng.Intn(4) == 0 {
				cls, _ := f.LookupClass(classes[rng.Intn(len(classes))])
				ev.SetCategory(cat, cls)
			} else {
				ev.SetCategory(cat)
			}
		}

		ev.SetPayee(f.RegisterPayee(payees[rng.Intn(len(payees))]))
		if rng.Intn(5) == 0 {
			ev.SetMemo(fmt.Sprintf("memo %d", i))
		}
		if rng.Intn(3) == 0 {
			ev.SetCleared(true)
		}

		acct.AddEvent(ev)
	}

	f.SortAll()

	if err := loader.New().Save(context.Background(), f, loader.Stdin); err != nil {
		fmt.Fprintf(os.Stderr, "write failed: %v\n", err)
		os.Exit(1)
	}
}
