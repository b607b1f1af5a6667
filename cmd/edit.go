package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"github.com/finco/finco"
)

type editCmd struct {
	id             int64
	date           string
	direction      string
	category       string
	classification string
	label          string
	amount         string
	status         string
}

func (*editCmd) Name() string     { return "edit" }
func (*editCmd) Synopsis() string { return "modify fields of an existing entry" }
func (*editCmd) Usage() string {
	return `fin edit -id <id> [-d <date>] [-dir <in|out>] [-cat <category>] [-c <classification>] [-l <label>] [-a <amount>] [-s <status>]

  Modifies only the fields given; the others keep their value.

Usage Examples:
# Fix the amount of entry 42.
$ fin edit -id 42 -a 1620.00
`
}

func (p *editCmd) SetFlags(f *flag.FlagSet) {
	f.Int64Var(&p.id, "id", 0, "Entry to modify.")
	f.StringVar(&p.date, "d", "", "New date (YYYY-MM-DD).")
	f.StringVar(&p.direction, "dir", "", "New direction: in or out.")
	f.StringVar(&p.category, "cat", "", "New category.")
	f.StringVar(&p.classification, "c", "", "New classification name.")
	f.StringVar(&p.label, "l", "", "New label.")
	f.StringVar(&p.amount, "a", "", "New amount.")
	f.StringVar(&p.status, "s", "", "New status.")
}

func (p *editCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if p.id == 0 {
		return fail(fmt.Errorf("flag -id is required"))
	}

	var u finco.EntryUpdate
	// Only flags the user actually set become part of the update, so an empty
	// -l clears the label while an absent one keeps it.
	var err error
	f.Visit(func(fl *flag.Flag) {
		if err != nil {
			return
		}
		switch fl.Name {
		case "d":
			var d finco.Date
			if d, err = finco.ParseDate(p.date); err == nil {
				u.Date = &d
			}
		case "dir":
			var dir finco.Direction
			switch p.direction {
			case "in":
				dir = finco.Inflow
			case "out":
				dir = finco.Outflow
			default:
				dir, err = finco.ParseDirection(p.direction)
			}
			if err == nil {
				u.Direction = &dir
			}
		case "cat":
			var c finco.Category
			if c, err = finco.ParseCategory(p.category); err == nil {
				u.Category = &c
			}
		case "c":
			u.Classification = &p.classification
		case "l":
			u.Label = &p.label
		case "a":
			var m finco.Money
			if m, err = finco.ParseMoney(p.amount); err == nil {
				u.Amount = &m
			}
		case "s":
			var s finco.Status
			if s, err = finco.ParseStatus(p.status); err == nil {
				u.Status = &s
			}
		}
	})
	if err != nil {
		return fail(err)
	}

	store, persist, err := openStore(ctx)
	if err != nil {
		return fail(err)
	}
	e, err := store.UpdateEntry(ctx, p.id, u)
	if err != nil {
		return fail(err)
	}
	if err := persist(); err != nil {
		return fail(err)
	}

	fmt.Printf("Updated entry %d: %s %s %s (%s)\n", e.ID, e.Date, e.Direction, e.Amount, e.Status)
	return subcommands.ExitSuccess
}

type deleteCmd struct{}

func (*deleteCmd) Name() string     { return "delete" }
func (*deleteCmd) Synopsis() string { return "remove entries from the ledger" }
func (*deleteCmd) Usage() string {
	return `fin delete <id>...

  Removes entries permanently. Prefer 'fin status -s void' to keep the
  entry for audit while excluding it from every computation.
`
}

func (*deleteCmd) SetFlags(*flag.FlagSet) {}

func (p *deleteCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ids, err := parseIDs(f.Args())
	if err != nil {
		return fail(err)
	}

	store, persist, err := openStore(ctx)
	if err != nil {
		return fail(err)
	}
	for _, id := range ids {
		if err := store.DeleteEntry(ctx, id); err != nil {
			return fail(err)
		}
		fmt.Printf("Deleted entry %d\n", id)
	}
	if err := persist(); err != nil {
		return fail(err)
	}
	return subcommands.ExitSuccess
}
