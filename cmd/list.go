package cmd

import (
	"context"
	"flag"
	"time"

	"github.com/google/subcommands"

	"github.com/finco/finco"
	"github.com/finco/finco/renderer"
)

type listCmd struct {
	direction      string
	category       string
	classification string
	status         string
	label          string
	year           int
	month          int
	limit          int
	all            bool
}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "list ledger entries" }
func (*listCmd) Usage() string {
	return `fin list [-y <year>] [-m <month>] [-dir <in|out>] [-s <status>] [-c <classification>] [-l <label>] [-n <limit>] [-all]

  Lists entries matching the filters, ordered by date. Void entries are
  hidden unless -all is given.

Usage Examples:
# Everything still pending this year.
$ fin list -y 2025 -s pending

# All April movements with a supplier.
$ fin list -y 2025 -m 4 -l acme
`
}

func (p *listCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.direction, "dir", "", "Only this direction: in or out.")
	f.StringVar(&p.category, "cat", "", "Only this category.")
	f.StringVar(&p.classification, "c", "", "Only this classification.")
	f.StringVar(&p.status, "s", "", "Only this status: pending, settled or void.")
	f.StringVar(&p.label, "l", "", "Only labels containing this text.")
	f.IntVar(&p.year, "y", 0, "Only this year.")
	f.IntVar(&p.month, "m", 0, "Only this month (1-12), requires -y.")
	f.IntVar(&p.limit, "n", 0, "Show at most n entries.")
	f.BoolVar(&p.all, "all", false, "Include void entries.")
}

func (p *listCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	filter := finco.EntryFilter{
		Classification: p.classification,
		Label:          p.label,
		Year:           p.year,
		Month:          time.Month(p.month),
		Limit:          p.limit,
		ExcludeVoid:    !p.all,
	}
	var err error
	switch p.direction {
	case "":
	case "in":
		filter.Direction = finco.Inflow
	case "out":
		filter.Direction = finco.Outflow
	default:
		if filter.Direction, err = finco.ParseDirection(p.direction); err != nil {
			return fail(err)
		}
	}
	if p.category != "" {
		if filter.Category, err = finco.ParseCategory(p.category); err != nil {
			return fail(err)
		}
	}
	if p.status != "" {
		if filter.Status, err = finco.ParseStatus(p.status); err != nil {
			return fail(err)
		}
		// An explicit status request wins over the void default.
		filter.ExcludeVoid = false
	}

	store, _, err := openStore(ctx)
	if err != nil {
		return fail(err)
	}
	entries, err := store.ListEntries(ctx, filter)
	if err != nil {
		return fail(err)
	}

	printMarkdown(renderer.Entries(entries))
	return subcommands.ExitSuccess
}
