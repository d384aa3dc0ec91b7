package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/fintrack/renderer"
	"github.com/google/subcommands"
)

// summaryCmd holds the flags for the 'summary' subcommand.
type summaryCmd struct{}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display the balance and the expenses per category" }
func (*summaryCmd) Usage() string {
	return `pft summary

  Displays the available balance, the total spending and the expenses summary.
`
}

func (*summaryCmd) SetFlags(*flag.FlagSet) {}

func (*summaryCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := OpenLedger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.Summary(ledger.Summary()))
	return subcommands.ExitSuccess
}

// chartCmd displays the spending chart.
type chartCmd struct{}

func (*chartCmd) Name() string     { return "chart" }
func (*chartCmd) Synopsis() string { return "display the share of each expense category" }
func (*chartCmd) Usage() string {
	return `pft chart

  Displays the spendings chart: the share of the total spending of each category.
`
}

func (*chartCmd) SetFlags(*flag.FlagSet) {}

func (*chartCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := OpenLedger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.Chart(ledger.Summary()))
	return subcommands.ExitSuccess
}
