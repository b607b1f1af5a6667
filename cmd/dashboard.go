package cmd

import (
	"context"
	"flag"
	"time"

	"github.com/google/subcommands"

	"github.com/finco/finco"
	"github.com/finco/finco/renderer"
)

// period carries the year/month flags shared by the report commands.
type period struct {
	year  int
	month int
}

func (p *period) setFlags(f *flag.FlagSet) {
	today := finco.Today()
	f.IntVar(&p.year, "y", today.Year(), "Report year.")
	f.IntVar(&p.month, "m", int(today.Month()), "Report month (1-12).")
}

type dashboardCmd struct {
	period
}

func (*dashboardCmd) Name() string     { return "dashboard" }
func (*dashboardCmd) Synopsis() string { return "show the treasury dashboard" }
func (*dashboardCmd) Usage() string {
	return `fin dashboard [-y <year>] [-m <month>]

  Shows the current balance and its position in the cash band, the monthly
  inflow/outflow series of the year, the spending breakdowns and the top
  rankings. Sections that cannot be computed are listed at the bottom, the
  others still render.

Usage Examples:
$ fin dashboard -y 2025 -m 4
`
}

func (p *dashboardCmd) SetFlags(f *flag.FlagSet) { p.setFlags(f) }

func (p *dashboardCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, _, err := openStore(ctx)
	if err != nil {
		return fail(err)
	}

	d := finco.NewDashboard(ctx, store, p.year, time.Month(p.month))
	printMarkdown(renderer.RenderDashboard(d))

	if err := d.Err(); err != nil {
		logger.Warn().Err(err).Msg("some dashboard sections failed")
	}
	return subcommands.ExitSuccess
}

type cashflowCmd struct {
	period
}

func (*cashflowCmd) Name() string     { return "cashflow" }
func (*cashflowCmd) Synopsis() string { return "show the cash flow statement of a month" }
func (*cashflowCmd) Usage() string {
	return `fin cashflow [-y <year>] [-m <month>]

  Shows the settled movements of a month with their running balance, the
  opening balance carried from all prior settlements, the inflow and
  outflow totals and the closing balance.

Usage Examples:
$ fin cashflow -y 2025 -m 4
`
}

func (p *cashflowCmd) SetFlags(f *flag.FlagSet) { p.setFlags(f) }

func (p *cashflowCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, _, err := openStore(ctx)
	if err != nil {
		return fail(err)
	}
	cf, err := finco.MonthlyCashFlow(ctx, store, p.year, time.Month(p.month))
	if err != nil {
		return fail(err)
	}

	printMarkdown(renderer.RenderCashFlow(cf))
	return subcommands.ExitSuccess
}

type annualCmd struct {
	year int
}

func (*annualCmd) Name() string     { return "annual" }
func (*annualCmd) Synopsis() string { return "show the annual report of a year" }
func (*annualCmd) Usage() string {
	return `fin annual [-y <year>]

  Shows the year totals, the monthly inflow/outflow series, the month-by-
  month matrix per classification type and the top rankings.

Usage Examples:
$ fin annual -y 2025
`
}

func (p *annualCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&p.year, "y", finco.Today().Year(), "Report year.")
}

func (p *annualCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, _, err := openStore(ctx)
	if err != nil {
		return fail(err)
	}
	report, err := finco.NewAnnualReport(ctx, store, p.year)
	if err != nil {
		return fail(err)
	}

	printMarkdown(renderer.RenderAnnual(report))
	return subcommands.ExitSuccess
}
