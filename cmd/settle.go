package cmd

import (
	"context"
	"flag"
	"fmt"
	"strconv"

	"github.com/google/subcommands"

	"github.com/finco/finco"
)

type settleCmd struct{}

func (*settleCmd) Name() string     { return "settle" }
func (*settleCmd) Synopsis() string { return "mark pending entries as settled" }
func (*settleCmd) Usage() string {
	return `fin settle <id>...

  Marks pending entries as settled: the cash has actually moved and the
  entry now counts in balances and cash flow. Settling an already settled
  entry is an error.

Usage Examples:
$ fin settle 42 43
`
}

func (*settleCmd) SetFlags(*flag.FlagSet) {}

func (p *settleCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ids, err := parseIDs(f.Args())
	if err != nil {
		return fail(err)
	}

	store, persist, err := openStore(ctx)
	if err != nil {
		return fail(err)
	}
	for _, id := range ids {
		e, err := store.Settle(ctx, id)
		if err != nil {
			return fail(err)
		}
		fmt.Printf("Settled entry %d: %s %s %s\n", e.ID, e.Date, e.Direction, e.Amount)
	}
	if err := persist(); err != nil {
		return fail(err)
	}
	return subcommands.ExitSuccess
}

type statusCmd struct {
	status string
}

func (*statusCmd) Name() string     { return "status" }
func (*statusCmd) Synopsis() string { return "set the settlement status of entries" }
func (*statusCmd) Usage() string {
	return `fin status -s <pending|settled|void> <id>...

  Sets the status unconditionally, in any direction: reopen a settled
  entry, void a mistake, restore a voided one. Void entries stay in the
  ledger for audit but are excluded from every computation.

Usage Examples:
# Void entry 42.
$ fin status -s void 42
`
}

func (p *statusCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.status, "s", "", "Target status: pending, settled or void.")
}

func (p *statusCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	status, err := finco.ParseStatus(p.status)
	if err != nil {
		return fail(err)
	}
	ids, err := parseIDs(f.Args())
	if err != nil {
		return fail(err)
	}

	store, persist, err := openStore(ctx)
	if err != nil {
		return fail(err)
	}
	for _, id := range ids {
		e, err := store.SetStatus(ctx, id, status)
		if err != nil {
			return fail(err)
		}
		fmt.Printf("Entry %d is now %s\n", e.ID, e.Status)
	}
	if err := persist(); err != nil {
		return fail(err)
	}
	return subcommands.ExitSuccess
}

// parseIDs parses positional arguments into entry ids, requiring at least
// one.
func parseIDs(args []string) ([]int64, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("at least one entry id is required")
	}
	ids := make([]int64, 0, len(args))
	for _, arg := range args {
		id, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid entry id %q", arg)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
