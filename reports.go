package finco

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Dashboard is the month-scoped management view: current cash position and
// band status, the year's monthly flows and rankings, the month's category
// breakdown, and the pending alerts.
//
// Sections are computed independently. A failed store read leaves its section
// zero and lands in Errors; the other sections still render.
type Dashboard struct {
	Year      int
	Month     time.Month
	Timestamp time.Time

	Balance Money
	Band    Band

	Monthly            []MonthlyFlow
	TypeBreakdown      *Aggregation
	TopSuppliers       []Group
	TopClients         []Group
	TopClassifications []Group
	Categories         *Aggregation

	TodayInflows  Money
	TodayOutflows Money

	PendingInflows  Money
	PendingOutflows Money
	OverdueCount    int
	DueTodayCount   int
	DueSoonCount    int

	Errors []error
}

// Err returns all section failures joined, nil when every section computed.
func (d *Dashboard) Err() error { return errors.Join(d.Errors...) }

// NewDashboard assembles the dashboard for a month. Store reads are issued
// per section; a failed read is recorded and the assembly continues.
func NewDashboard(ctx context.Context, store EntryStore, year int, month time.Month) *Dashboard {
	d := &Dashboard{Year: year, Month: month, Timestamp: time.Now()}

	fail := func(section string, err error) {
		d.Errors = append(d.Errors, fmt.Errorf("%s: %w", section, err))
	}

	// Cash position and band.
	all, err := store.ListEntries(ctx, EntryFilter{})
	if err != nil {
		fail("balance", err)
	} else {
		d.Balance = CurrentBalance(all)
		thresholds, err := store.Thresholds(ctx)
		if err != nil {
			fail("band", err)
		} else if band, err := EvaluateBand(d.Balance, thresholds); err != nil {
			fail("band", err)
		} else {
			d.Band = band
		}
	}

	// Year-scoped series and rankings.
	yearEntries, err := store.ListEntries(ctx, EntryFilter{Year: year, ExcludeVoid: true})
	if err != nil {
		fail("year series", err)
	} else {
		d.Monthly = MonthlyFlows(yearEntries, year)
		d.TopSuppliers = CounterpartyRanking(yearEntries, Outflow).Top(TopN)
		d.TopClients = CounterpartyRanking(yearEntries, Inflow).Top(TopN)
		d.TopClassifications = ClassificationRanking(yearEntries).Top(TopN)

		classifications, err := store.ListClassifications(ctx, "")
		if err != nil {
			fail("type breakdown", err)
		} else {
			d.TypeBreakdown = OutflowTypeBreakdown(yearEntries, NewRegistry(classifications))
		}
	}

	// Month-scoped category breakdown.
	monthEntries, err := store.ListEntries(ctx, EntryFilter{Year: year, Month: month, ExcludeVoid: true})
	if err != nil {
		fail("categories", err)
	} else {
		d.Categories = CategoryBreakdown(monthEntries)
	}

	// Today's settled movements.
	today := Today()
	settledToday, err := store.ListEntries(ctx, EntryFilter{Status: Settled, Dates: NewRange(today, today)})
	if err != nil {
		fail("today", err)
	} else {
		d.TodayInflows, d.TodayOutflows = M(0), M(0)
		for _, e := range settledToday {
			if e.Direction == Inflow {
				d.TodayInflows = d.TodayInflows.Add(e.Amount)
			} else {
				d.TodayOutflows = d.TodayOutflows.Add(e.Amount)
			}
		}
	}

	// Pending alerts: every open movement counts in the totals, and the ones
	// coming due are bucketed as overdue, due today or due within seven days.
	pending, err := store.ListEntries(ctx, EntryFilter{Status: Pending})
	if err != nil {
		fail("pending", err)
	} else {
		d.PendingInflows, d.PendingOutflows = M(0), M(0)
		dueSoon := today.Add(7)
		for _, e := range pending {
			if e.Direction == Inflow {
				d.PendingInflows = d.PendingInflows.Add(e.Amount)
			} else {
				d.PendingOutflows = d.PendingOutflows.Add(e.Amount)
			}
			switch {
			case e.Date.Before(today):
				d.OverdueCount++
			case e.Date == today:
				d.DueTodayCount++
			case !e.Date.After(dueSoon):
				d.DueSoonCount++
			}
		}
	}

	return d
}

// MonthlyCashFlow builds the cash flow statement for a month, with the
// opening balance carried from all settled movements before the month. The
// statement therefore opens exactly where the previous month closed.
func MonthlyCashFlow(ctx context.Context, store EntryStore, year int, month time.Month) (*CashFlow, error) {
	entries, err := store.ListEntries(ctx, EntryFilter{Status: Settled})
	if err != nil {
		return nil, err
	}
	period := MonthRange(year, month)
	opening := OpeningBalance(entries, period.From)
	return NewCashFlow(entries, opening, period), nil
}

// TypeRow is one classification type's monthly outflow evolution.
type TypeRow struct {
	Type   ClassificationType
	Months [12]Money
	Total  Money
}

// TypeMonthlyMatrix reduces a year's outflows into one row per allow-listed
// classification type, with a column per month. Types outside
// OutflowTypeAllowList are dropped, as in the pie breakdown.
func TypeMonthlyMatrix(entries []Entry, year int, reg *Registry) []TypeRow {
	rows := make([]TypeRow, len(OutflowTypeAllowList))
	index := make(map[ClassificationType]int, len(OutflowTypeAllowList))
	for i, t := range OutflowTypeAllowList {
		rows[i].Type = t
		rows[i].Total = M(0)
		for m := range rows[i].Months {
			rows[i].Months[m] = M(0)
		}
		index[t] = i
	}
	for _, e := range entries {
		if e.Status == Void || e.Direction != Outflow || e.Date.Year() != year {
			continue
		}
		t, ok := reg.TypeOf(e.Classification)
		if !ok {
			continue
		}
		i, allowed := index[t]
		if !allowed {
			continue
		}
		m := int(e.Date.Month()) - 1
		rows[i].Months[m] = rows[i].Months[m].Add(e.Amount)
		rows[i].Total = rows[i].Total.Add(e.Amount)
	}
	return rows
}

// AnnualReport is the year-end view: totals, monthly flows, the outflow
// evolution per classification type and the year's rankings.
type AnnualReport struct {
	Year      int
	Timestamp time.Time

	Inflows  Money
	Outflows Money

	Monthly    []MonthlyFlow
	TypeMatrix []TypeRow

	TopSuppliers       []Group
	TopClients         []Group
	TopClassifications []Group
}

// Result returns the year's net result, Inflows - Outflows.
func (r *AnnualReport) Result() Money { return r.Inflows.Sub(r.Outflows) }

// EvolutionRow is one month of the year's evolution: the month's flows, its
// net result and the result accumulated since january.
type EvolutionRow struct {
	MonthlyFlow
	Cumulative Money
}

// Evolution returns the monthly series with a running cumulative result.
func (r *AnnualReport) Evolution() []EvolutionRow {
	rows := make([]EvolutionRow, 0, len(r.Monthly))
	cumulative := M(0)
	for _, f := range r.Monthly {
		cumulative = cumulative.Add(f.Net())
		rows = append(rows, EvolutionRow{MonthlyFlow: f, Cumulative: cumulative})
	}
	return rows
}

// MonthlyMean returns the mean monthly result, averaged over the months with
// movement only. A year without movement yields zero.
func (r *AnnualReport) MonthlyMean() Money {
	active := 0
	for _, f := range r.Monthly {
		if !f.Inflows.IsZero() || !f.Outflows.IsZero() {
			active++
		}
	}
	if active == 0 {
		return M(0)
	}
	return M(r.Result().Decimal().Div(decimal.NewFromInt(int64(active))))
}

// NewAnnualReport assembles the year report from the store.
func NewAnnualReport(ctx context.Context, store EntryStore, year int) (*AnnualReport, error) {
	entries, err := store.ListEntries(ctx, EntryFilter{Year: year, ExcludeVoid: true})
	if err != nil {
		return nil, err
	}
	classifications, err := store.ListClassifications(ctx, "")
	if err != nil {
		return nil, err
	}
	reg := NewRegistry(classifications)

	r := &AnnualReport{
		Year:      year,
		Timestamp: time.Now(),
		Inflows:   M(0),
		Outflows:  M(0),
	}
	for _, e := range entries {
		if e.Direction == Inflow {
			r.Inflows = r.Inflows.Add(e.Amount)
		} else {
			r.Outflows = r.Outflows.Add(e.Amount)
		}
	}
	r.Monthly = MonthlyFlows(entries, year)
	r.TypeMatrix = TypeMonthlyMatrix(entries, year, reg)
	r.TopSuppliers = CounterpartyRanking(entries, Outflow).Top(TopN)
	r.TopClients = CounterpartyRanking(entries, Inflow).Top(TopN)
	r.TopClassifications = ClassificationRanking(entries).Top(TopN)
	return r, nil
}
