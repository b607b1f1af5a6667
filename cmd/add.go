package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"github.com/finco/finco"
)

type addCmd struct {
	date           string
	direction      string
	category       string
	classification string
	label          string
	amount         string
	status         string
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "record a new entry in the ledger" }
func (*addCmd) Usage() string {
	return `fin add -dir <in|out> -a <amount> [-d <date>] [-cat <category>] [-c <classification>] [-l <label>] [-s <status>]

  Records a movement. New entries start pending: they are expected cash,
  not cash that has moved. Use 'fin settle' once the money actually moves.

Usage Examples:
# A payable to a supplier, due on a date.
$ fin add -dir out -a 1534.20 -d 2025-04-10 -c "MATÉRIA-PRIMA" -l "ACME Corp"

# A receivable recorded as already settled.
$ fin add -dir in -a 2500 -c "VENDA DE PRODUTOS" -s settled
`
}

func (p *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.date, "d", "", "Entry date (YYYY-MM-DD). Defaults to today.")
	f.StringVar(&p.direction, "dir", "", "Direction: in (inflow) or out (outflow).")
	f.StringVar(&p.category, "cat", string(finco.Operational), "Category: operational, investment or financial.")
	f.StringVar(&p.classification, "c", "", "Classification name.")
	f.StringVar(&p.label, "l", "", "Counterparty or free-text label.")
	f.StringVar(&p.amount, "a", "", "Amount, non-negative decimal.")
	f.StringVar(&p.status, "s", string(finco.Pending), "Status: pending, settled or void.")
}

func (p *addCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	e, err := p.entry()
	if err != nil {
		return fail(err)
	}

	store, persist, err := openStore(ctx)
	if err != nil {
		return fail(err)
	}

	created, err := store.CreateEntry(ctx, e)
	if err != nil {
		return fail(err)
	}
	if err := persist(); err != nil {
		return fail(err)
	}

	fmt.Printf("Created entry %d: %s %s %s (%s)\n",
		created.ID, created.Date, created.Direction, created.Amount, created.Status)
	return subcommands.ExitSuccess
}

func (p *addCmd) entry() (finco.Entry, error) {
	var e finco.Entry
	var err error

	e.Date = finco.Today()
	if p.date != "" {
		if e.Date, err = finco.ParseDate(p.date); err != nil {
			return e, err
		}
	}

	switch p.direction {
	case "in":
		e.Direction = finco.Inflow
	case "out":
		e.Direction = finco.Outflow
	default:
		if e.Direction, err = finco.ParseDirection(p.direction); err != nil {
			return e, err
		}
	}

	if e.Category, err = finco.ParseCategory(p.category); err != nil {
		return e, err
	}
	if e.Status, err = finco.ParseStatus(p.status); err != nil {
		return e, err
	}
	if e.Amount, err = finco.ParseMoney(p.amount); err != nil {
		return e, err
	}
	e.Classification = p.classification
	e.Label = p.label
	return e, nil
}
