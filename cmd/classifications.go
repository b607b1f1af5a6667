package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"github.com/finco/finco"
	"github.com/finco/finco/renderer"
)

type classificationsCmd struct {
	typ      string
	add      string
	del      string
	category string
}

func (*classificationsCmd) Name() string     { return "classifications" }
func (*classificationsCmd) Synopsis() string { return "list and manage classifications" }
func (*classificationsCmd) Usage() string {
	return `fin classifications [-t <type>] [-add <name> -type <type> [-cat <category>]] [-del <name>]

  Without flags, lists the known classifications. With -add or -del,
  creates or removes one. Deleting a classification does not touch the
  entries that reference it; their classification name dangles.

Usage Examples:
# List the fixed costs.
$ fin classifications -t fixed_cost

# Declare a new variable cost.
$ fin classifications -add "USINAGEM" -t variable_cost
`
}

func (p *classificationsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.typ, "t", "", "Classification type, for listing or for -add.")
	f.StringVar(&p.add, "add", "", "Classification name to create or update.")
	f.StringVar(&p.del, "del", "", "Classification name to delete.")
	f.StringVar(&p.category, "cat", string(finco.Operational), "Default category, for -add.")
}

func (p *classificationsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, persist, err := openStore(ctx)
	if err != nil {
		return fail(err)
	}

	switch {
	case p.add != "":
		t, err := finco.ParseClassificationType(p.typ)
		if err != nil {
			return fail(err)
		}
		cat, err := finco.ParseCategory(p.category)
		if err != nil {
			return fail(err)
		}
		c := finco.Classification{Name: p.add, Type: t, Category: cat}
		if err := store.SaveClassification(ctx, c); err != nil {
			return fail(err)
		}
		if err := persist(); err != nil {
			return fail(err)
		}
		fmt.Printf("Saved classification %s (%s)\n", finco.NormalizeClassificationName(p.add), t)

	case p.del != "":
		if err := store.DeleteClassification(ctx, p.del); err != nil {
			return fail(err)
		}
		if err := persist(); err != nil {
			return fail(err)
		}
		fmt.Printf("Deleted classification %s\n", finco.NormalizeClassificationName(p.del))

	default:
		var t finco.ClassificationType
		if p.typ != "" {
			if t, err = finco.ParseClassificationType(p.typ); err != nil {
				return fail(err)
			}
		}
		classifications, err := store.ListClassifications(ctx, t)
		if err != nil {
			return fail(err)
		}
		printMarkdown(renderer.Classifications(classifications))
	}
	return subcommands.ExitSuccess
}
