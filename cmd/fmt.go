package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/fintrack"
	"github.com/google/subcommands"
)

type fmtCmd struct{}

func (*fmtCmd) Name() string { return "fmt" }
func (*fmtCmd) Synopsis() string {
	return "validates and formats the ledger file into a canonical form"
}
func (*fmtCmd) Usage() string {
	return `pft fmt

  Reads all transactions and writes them back in the canonical, indented JSON
  format. A ledger file that cannot be read is reported and left untouched.
`
}

func (*fmtCmd) SetFlags(*flag.FlagSet) {}

func (*fmtCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if _, err := loadStrict(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	ledger, err := OpenLedger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if err := ledger.Save(); err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting ledger %q: %v\n", ledgerPath(), err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(os.Stderr, "Formatted %d transactions in %q\n", ledger.Len(), ledgerPath())
	return subcommands.ExitSuccess
}

// loadStrict reads the ledger file, failing on malformed content.
func loadStrict() ([]fintrack.Transaction, error) {
	return fintrack.NewStore(ledgerPath()).Load()
}
