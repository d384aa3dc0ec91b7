package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/fintrack"
	"github.com/etnz/fintrack/renderer"
	"github.com/google/subcommands"
)

// txCmd lists the recorded transactions.
type txCmd struct {
	kind     string
	category string
	first    int
	last     int
}

func (*txCmd) Name() string     { return "tx" }
func (*txCmd) Synopsis() string { return "list the recorded transactions" }
func (*txCmd) Usage() string {
	return `pft tx [-type income|expense] [-c <category>] [-head <n> | -tail <n>]

  Lists the transactions in the order they were recorded, amounts in ` + fintrack.BaseCurrency + `.
  Filters apply before -head and -tail.
`
}

func (c *txCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.kind, "type", "", "Only list transactions of this type (income or expense).")
	f.StringVar(&c.category, "c", "", "Only list transactions of this category (case insensitive).")
	f.IntVar(&c.first, "head", 0, "Only list the first N transactions.")
	f.IntVar(&c.last, "tail", 0, "Only list the last N transactions.")
}

// keep reports whether tx passes the -type and -c filters.
func (c *txCmd) keep(tx fintrack.Transaction, kind fintrack.Kind) bool {
	if kind != "" && tx.Kind != kind {
		return false
	}
	return c.category == "" || strings.EqualFold(tx.Category, strings.TrimSpace(c.category))
}

func (c *txCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.first > 0 && c.last > 0 {
		fmt.Fprintln(os.Stderr, "Error: -head and -tail cannot be combined.")
		return subcommands.ExitUsageError
	}
	var kind fintrack.Kind
	if c.kind != "" {
		k, err := fintrack.ParseKind(c.kind)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
		kind = k
	}

	ledger, err := OpenLedger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	var listed []fintrack.Transaction
	for _, tx := range ledger.Transactions() {
		if c.keep(tx, kind) {
			listed = append(listed, tx)
		}
	}
	switch {
	case c.first > 0 && len(listed) > c.first:
		listed = listed[:c.first]
	case c.last > 0 && len(listed) > c.last:
		listed = listed[len(listed)-c.last:]
	}

	printMarkdown(renderer.Transactions(listed))
	return subcommands.ExitSuccess
}
