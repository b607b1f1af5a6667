package renderer

import (
	"strings"
	"testing"

	"github.com/finco/finco"
)

func testCashFlow(t *testing.T) *finco.CashFlow {
	t.Helper()
	entries := []finco.Entry{
		{ID: 1, Date: finco.NewDate(2025, 1, 5), Direction: finco.Inflow, Category: finco.Operational, Label: "ACME Corp", Amount: finco.M(1000), Status: finco.Settled},
		{ID: 2, Date: finco.NewDate(2025, 1, 10), Direction: finco.Outflow, Category: finco.Operational, Label: "Trans Beta", Amount: finco.M(400), Status: finco.Settled},
	}
	return finco.NewCashFlow(entries, finco.M(0), finco.MonthRange(2025, 1))
}

func TestRenderCashFlow(t *testing.T) {
	got := RenderCashFlow(testCashFlow(t))

	if strings.HasPrefix(got, "error ") {
		t.Fatalf("RenderCashFlow() failed: %s", got)
	}
	for _, want := range []string{"# Cash Flow", "ACME Corp", "Trans Beta", "Closing balance"} {
		if !strings.Contains(got, want) {
			t.Errorf("RenderCashFlow() output misses %q:\n%s", want, got)
		}
	}
}

func TestRenderDashboard(t *testing.T) {
	band, err := finco.EvaluateBand(finco.M(150_000), finco.DefaultThresholds())
	if err != nil {
		t.Fatalf("EvaluateBand() error = %v", err)
	}
	d := &finco.Dashboard{
		Year:          2025,
		Month:         1,
		Balance:       finco.M(150_000),
		Band:          band,
		Monthly:       finco.MonthlyFlows(nil, 2025),
		TypeBreakdown: finco.OutflowTypeBreakdown(nil, finco.NewRegistry(nil)),
		Categories:    finco.CategoryBreakdown(nil),
	}

	got := RenderDashboard(d)
	if strings.HasPrefix(got, "error ") {
		t.Fatalf("RenderDashboard() failed: %s", got)
	}
	for _, want := range []string{"# Dashboard January 2025", "WITHIN", "Due within 7 days", "Top Suppliers", "December"} {
		if !strings.Contains(got, want) {
			t.Errorf("RenderDashboard() output misses %q:\n%s", want, got)
		}
	}
}

func TestRenderDashboard_NilSections(t *testing.T) {
	// A dashboard with failed sections still renders, listing the failures.
	d := &finco.Dashboard{Year: 2025, Month: 1}
	d.Errors = append(d.Errors, errTest("band: store unavailable"))

	got := RenderDashboard(d)
	if strings.HasPrefix(got, "error ") {
		t.Fatalf("RenderDashboard() failed: %s", got)
	}
	if !strings.Contains(got, "Incomplete Sections") || !strings.Contains(got, "store unavailable") {
		t.Errorf("RenderDashboard() output misses the failures:\n%s", got)
	}
}

type errTest string

func (e errTest) Error() string { return string(e) }

func TestRenderAnnual(t *testing.T) {
	entries := []finco.Entry{
		{ID: 1, Date: finco.NewDate(2025, 1, 5), Direction: finco.Inflow, Category: finco.Operational, Amount: finco.M(230_000), Status: finco.Settled},
		{ID: 2, Date: finco.NewDate(2025, 1, 10), Direction: finco.Outflow, Category: finco.Operational, Amount: finco.M(50_000), Status: finco.Settled},
	}
	r := &finco.AnnualReport{
		Year:       2025,
		Inflows:    finco.M(230_000),
		Outflows:   finco.M(50_000),
		Monthly:    finco.MonthlyFlows(entries, 2025),
		TypeMatrix: finco.TypeMonthlyMatrix(entries, 2025, finco.NewRegistry(nil)),
	}

	got := RenderAnnual(r)
	if strings.HasPrefix(got, "error ") {
		t.Fatalf("RenderAnnual() failed: %s", got)
	}
	for _, want := range []string{"# Annual Report 2025", "Result", "Monthly mean", "Cumulative", "FIXED_COST", "Top Classifications"} {
		if !strings.Contains(got, want) {
			t.Errorf("RenderAnnual() output misses %q:\n%s", want, got)
		}
	}
}

func TestEntries(t *testing.T) {
	got := Entries([]finco.Entry{
		{ID: 1, Date: finco.NewDate(2025, 1, 5), Direction: finco.Inflow, Category: finco.Operational, Label: "ACME Corp", Amount: finco.M(1000), Status: finco.Settled},
	})
	if !strings.Contains(got, "ACME Corp") || !strings.Contains(got, "SETTLED") {
		t.Errorf("Entries() output incomplete:\n%s", got)
	}
}
