package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"github.com/finco/finco"
	"github.com/finco/finco/renderer"
)

type configCmd struct {
	set   string
	value string
}

func (*configCmd) Name() string     { return "config" }
func (*configCmd) Synopsis() string { return "show or change the cash band thresholds" }
func (*configCmd) Usage() string {
	return `fin config [-set <minimum|return_point|maximum> -v <amount>]

  Without flags, shows the configured cash band. With -set, changes one
  threshold; a change that would break minimum < return point < maximum
  is refused and the band keeps its previous values.

Usage Examples:
# Raise the upper threshold.
$ fin config -set maximum -v 400000
`
}

func (p *configCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.set, "set", "", "Threshold to change: minimum, return_point or maximum.")
	f.StringVar(&p.value, "v", "", "New threshold amount.")
}

func (p *configCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, persist, err := openStore(ctx)
	if err != nil {
		return fail(err)
	}

	if p.set != "" {
		key, err := finco.ParseThresholdKey(p.set)
		if err != nil {
			return fail(err)
		}
		value, err := finco.ParseMoney(p.value)
		if err != nil {
			return fail(err)
		}
		if err := store.SetThreshold(ctx, key, value); err != nil {
			return fail(err)
		}
		if err := persist(); err != nil {
			return fail(err)
		}
		fmt.Printf("Set %s to %s\n", key, value)
	}

	thresholds, err := store.Thresholds(ctx)
	if err != nil {
		return fail(err)
	}
	printMarkdown(renderer.Thresholds(thresholds))
	return subcommands.ExitSuccess
}
