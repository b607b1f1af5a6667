package finco

import (
	"sort"
	"strings"
	"time"
)

// TopN is the ranking size used by the dashboard and reports.
const TopN = 10

// Unclassified is the placeholder bucket for entries without a
// classification in the classification ranking. It is deliberately the only
// grouping with a placeholder: the counterparty rankings drop unlabeled
// entries instead.
const Unclassified = "Unclassified"

// Group is one bucket of an aggregation.
type Group struct {
	Key   string
	Sum   Money
	Count int
	Share Percent // share of the aggregation total
}

// Aggregation is a full reduction of a filtered entry set: every group with
// its sum and share, in first-seen order. The sum of all group sums equals
// Total; truncating to a top-N is a view on top of it, never a re-reduction.
type Aggregation struct {
	Groups []Group
	Total  Money
}

// Aggregate groups entries by the given key function and sums their amounts.
// The key function may refuse an entry by returning ok=false; refused entries
// count neither in a group nor in the total. Void entries never count.
// Groups appear in first-seen order.
func Aggregate(entries []Entry, key func(Entry) (string, bool)) *Aggregation {
	agg := &Aggregation{Total: M(0)}
	index := make(map[string]int)
	for _, e := range entries {
		if e.Status == Void {
			continue
		}
		k, ok := key(e)
		if !ok {
			continue
		}
		i, seen := index[k]
		if !seen {
			i = len(agg.Groups)
			index[k] = i
			agg.Groups = append(agg.Groups, Group{Key: k, Sum: M(0)})
		}
		agg.Groups[i].Sum = agg.Groups[i].Sum.Add(e.Amount)
		agg.Groups[i].Count++
		agg.Total = agg.Total.Add(e.Amount)
	}
	for i := range agg.Groups {
		agg.Groups[i].Share = agg.Groups[i].Sum.PercentOf(agg.Total)
	}
	return agg
}

// Ranked returns the groups sorted by descending sum. The sort is stable, so
// ties keep their first-seen order and re-running on the same input yields
// the same ranking.
func (a *Aggregation) Ranked() []Group {
	ranked := make([]Group, len(a.Groups))
	copy(ranked, a.Groups)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Sum.GreaterThan(ranked[j].Sum)
	})
	return ranked
}

// Top returns the n highest-sum groups. The Total still covers every group,
// truncation is display only.
func (a *Aggregation) Top(n int) []Group {
	ranked := a.Ranked()
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// MonthlyFlow is one month's inflow and outflow totals.
type MonthlyFlow struct {
	Month    time.Month
	Inflows  Money
	Outflows Money
}

// Net returns the month's result, inflows minus outflows.
func (f MonthlyFlow) Net() Money { return f.Inflows.Sub(f.Outflows) }

// MonthlyFlows reduces a year's entries into a fixed twelve-bucket series,
// zero-filled for months with no activity. Void entries are skipped, entries
// of other years are ignored.
func MonthlyFlows(entries []Entry, year int) []MonthlyFlow {
	flows := make([]MonthlyFlow, 12)
	for i := range flows {
		flows[i] = MonthlyFlow{Month: time.Month(i + 1), Inflows: M(0), Outflows: M(0)}
	}
	for _, e := range entries {
		if e.Status == Void || e.Date.Year() != year {
			continue
		}
		f := &flows[e.Date.Month()-1]
		if e.Direction == Inflow {
			f.Inflows = f.Inflows.Add(e.Amount)
		} else {
			f.Outflows = f.Outflows.Add(e.Amount)
		}
	}
	return flows
}

// OutflowTypeAllowList is the fixed set of classification types shown in the
// spending breakdowns. Outflows whose classification type is not in the list
// are dropped from the breakdown, not merged into an "other" bucket, so the
// breakdown total can be below the raw outflow total.
var OutflowTypeAllowList = []ClassificationType{
	FixedCost, VariableCost, FixedExpense, VariableExpense, Tax,
}

// OutflowTypeBreakdown groups outflows by classification type, restricted to
// OutflowTypeAllowList. Entries without a resolvable classification are
// dropped as well.
func OutflowTypeBreakdown(entries []Entry, reg *Registry) *Aggregation {
	allowed := make(map[ClassificationType]bool, len(OutflowTypeAllowList))
	for _, t := range OutflowTypeAllowList {
		allowed[t] = true
	}
	return Aggregate(entries, func(e Entry) (string, bool) {
		if e.Direction != Outflow {
			return "", false
		}
		t, ok := reg.TypeOf(e.Classification)
		if !ok || !allowed[t] {
			return "", false
		}
		return string(t), true
	})
}

// CounterpartyRanking groups entries of one direction by their counterparty
// label. Unlabeled entries are dropped from this grouping.
func CounterpartyRanking(entries []Entry, dir Direction) *Aggregation {
	return Aggregate(entries, func(e Entry) (string, bool) {
		if e.Direction != dir {
			return "", false
		}
		label := strings.TrimSpace(e.Label)
		if label == "" {
			return "", false
		}
		return label, true
	})
}

// ClassificationRanking groups outflows by classification name. Entries
// without a classification land in the Unclassified bucket.
func ClassificationRanking(entries []Entry) *Aggregation {
	return Aggregate(entries, func(e Entry) (string, bool) {
		if e.Direction != Outflow {
			return "", false
		}
		name := NormalizeClassificationName(e.Classification)
		if name == "" {
			name = Unclassified
		}
		return name, true
	})
}

// CategoryBreakdown groups outflows by category, with each category's share
// of the filtered outflow total. The caller scopes the snapshot to the month
// of interest.
func CategoryBreakdown(entries []Entry) *Aggregation {
	return Aggregate(entries, func(e Entry) (string, bool) {
		if e.Direction != Outflow {
			return "", false
		}
		return string(e.Category), true
	})
}
