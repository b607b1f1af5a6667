package finco

// CashFlowRow is one settled movement in a cash flow statement, with the
// running balance after applying it.
type CashFlowRow struct {
	Entry   Entry
	Balance Money
}

// CashFlow is a chronological statement of settled movements over a period.
//
// Only settled entries count: pending entries are expectations, void entries
// are invalidated. Closing always equals Opening + Inflows - Outflows, and an
// empty period closes at its opening balance.
type CashFlow struct {
	On       Range
	Opening  Money
	Rows     []CashFlowRow
	Inflows  Money
	Outflows Money
	Closing  Money
}

// NewCashFlow builds the statement for the period from an entry snapshot.
// Entries outside the period or not settled are ignored; the caller provides
// the opening balance, usually via OpeningBalance.
func NewCashFlow(entries []Entry, opening Money, on Range) *CashFlow {
	var settled []Entry
	for _, e := range entries {
		if e.Status != Settled {
			continue
		}
		if !on.IsZero() && !on.Contains(e.Date) {
			continue
		}
		settled = append(settled, e)
	}
	SortEntries(settled)

	cf := &CashFlow{On: on, Opening: opening, Inflows: M(0), Outflows: M(0)}
	balance := opening
	for _, e := range settled {
		balance = balance.Add(e.Signed())
		cf.Rows = append(cf.Rows, CashFlowRow{Entry: e, Balance: balance})
		if e.Direction == Inflow {
			cf.Inflows = cf.Inflows.Add(e.Amount)
		} else {
			cf.Outflows = cf.Outflows.Add(e.Amount)
		}
	}
	cf.Closing = balance
	return cf
}

// Net returns the period's net movement, Inflows - Outflows.
func (cf *CashFlow) Net() Money { return cf.Inflows.Sub(cf.Outflows) }

// OpeningBalance returns the cash position at the start of the given day:
// the sum of all settled movements strictly before it. Chaining months with
// it makes each month open exactly where the previous one closed.
func OpeningBalance(entries []Entry, day Date) Money {
	balance := M(0)
	for _, e := range entries {
		if e.Status != Settled {
			continue
		}
		if !e.Date.Before(day) {
			continue
		}
		balance = balance.Add(e.Signed())
	}
	return balance
}

// CurrentBalance returns the running balance over all settled entries.
func CurrentBalance(entries []Entry) Money {
	balance := M(0)
	for _, e := range entries {
		if e.Status != Settled {
			continue
		}
		balance = balance.Add(e.Signed())
	}
	return balance
}
