package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type fmtCmd struct{}

func (*fmtCmd) Name() string { return "fmt" }
func (*fmtCmd) Synopsis() string {
	return "validates and formats the ledger file into a canonical form"
}
func (*fmtCmd) Usage() string {
	return `fin fmt

  Validates and formats the ledger file. This command reads all entries,
  validates them, sorts them by date, and writes them back in a canonical
  JSONL format.

Usage Examples:
# Rewrites the default ledger file in-place.
$ fin fmt
`
}

func (*fmtCmd) SetFlags(*flag.FlagSet) {}

func (p *fmtCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if *databaseURL != "" {
		return fail(fmt.Errorf("fmt only applies to the ledger file, not to a database"))
	}

	ledger, err := DecodeLedger()
	if err != nil {
		return fail(err)
	}
	if err := EncodeLedger(ledger); err != nil {
		return fail(err)
	}

	fmt.Fprintf(os.Stderr, "Formatted %s\n", *ledgerFile)
	return subcommands.ExitSuccess
}
