package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/fintrack"
	"github.com/etnz/fintrack/date"
	"github.com/etnz/fintrack/renderer"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

// errUsage marks invalid user input.
var errUsage = errors.New("invalid input")

// addCmd records an income or an expense, depending on kind.
type addCmd struct {
	kind     fintrack.Kind
	amount   string
	category string
	currency string
	date     string
	force    bool
}

func (c *addCmd) Name() string { return string(c.kind) }
func (c *addCmd) Synopsis() string {
	if c.kind == fintrack.Expense {
		return "record money spent"
	}
	return "record money received"
}
func (c *addCmd) Usage() string {
	if c.kind == fintrack.Expense {
		return `expense -a <amount> -c <category> [-cur <currency>] [-d <date>] [-force]

  Records an expense. Amounts in another currency are converted to ` + fintrack.BaseCurrency + `.
  An expense larger than the available balance is rejected unless -force is set.
`
	}
	return `income -a <amount> -c <category> [-cur <currency>] [-d <date>]

  Records an income. Amounts in another currency are converted to ` + fintrack.BaseCurrency + `.
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.amount, "a", "", "Amount")
	f.StringVar(&c.category, "c", "", "Category, e.g. Salary or Food")
	f.StringVar(&c.currency, "cur", fintrack.BaseCurrency, "Currency of the amount")
	f.StringVar(&c.date, "d", date.Today().String(), "Transaction date (YYYY-MM-DD)")
	if c.kind == fintrack.Expense {
		f.BoolVar(&c.force, "force", false, "Record the expense even if it exceeds the available balance")
	}
}

// parseTransaction validates the user input and builds the transaction.
func parseTransaction(kind fintrack.Kind, amount, category, currency, day string) (fintrack.Transaction, error) {
	value, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil {
		return fintrack.Transaction{}, fmt.Errorf("%w: amount must be a number, got %q", errUsage, amount)
	}
	category = strings.TrimSpace(category)
	if category == "" || strings.TrimSpace(day) == "" {
		return fintrack.Transaction{}, fmt.Errorf("%w: please fill all fields", errUsage)
	}
	on, err := date.Parse(strings.TrimSpace(day))
	if err != nil {
		return fintrack.Transaction{}, fmt.Errorf("%w: date must be in YYYY-MM-DD format: %w", errUsage, err)
	}
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" {
		currency = fintrack.BaseCurrency
	}
	if !fintrack.KnownCurrency(currency) {
		return fintrack.Transaction{}, fmt.Errorf("%w: unknown currency %q", errUsage, currency)
	}
	return fintrack.NewTransaction(value, category, kind, currency, on), nil
}

func (c *addCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	tx, err := parseTransaction(c.kind, c.amount, c.category, c.currency, c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		f.Usage()
		return subcommands.ExitUsageError
	}

	ledger, err := OpenLedger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	if !c.force {
		// tx comes back in the base currency, so Add does not look the rate up again.
		tx, err = ledger.Affordable(ctx, tx)
		if err != nil {
			if errors.Is(err, fintrack.ErrInsufficientFunds) {
				fmt.Fprintf(os.Stderr, "Insufficient Funds: cannot add this expense: %v\n", err)
			} else {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
			return subcommands.ExitFailure
		}
	}

	if err := ledger.Add(ctx, tx); err != nil {
		fmt.Fprintf(os.Stderr, "Error adding transaction: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Fprintf(stdout, "Transaction added successfully to %s\n", ledgerPath())
	printMarkdown(renderer.Summary(ledger.Summary()))
	return subcommands.ExitSuccess
}
