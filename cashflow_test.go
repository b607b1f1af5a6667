package finco

import "testing"

func TestNewCashFlow(t *testing.T) {
	entries := []Entry{
		{ID: 1, Date: NewDate(2025, 1, 5), Direction: Inflow, Category: Operational, Amount: M(1000), Status: Settled},
		{ID: 2, Date: NewDate(2025, 1, 10), Direction: Outflow, Category: Operational, Amount: M(400), Status: Settled},
		{ID: 3, Date: NewDate(2025, 1, 12), Direction: Outflow, Category: Operational, Amount: M(9999), Status: Pending},
		{ID: 4, Date: NewDate(2025, 1, 15), Direction: Outflow, Category: Operational, Amount: M(9999), Status: Void},
	}

	cf := NewCashFlow(entries, M(0), MonthRange(2025, 1))

	if len(cf.Rows) != 2 {
		t.Fatalf("NewCashFlow() produced %d rows, want 2 (pending and void excluded)", len(cf.Rows))
	}
	if !cf.Rows[0].Balance.Equal(M(1000)) {
		t.Errorf("row 0 balance = %v, want %v", cf.Rows[0].Balance, M(1000))
	}
	if !cf.Rows[1].Balance.Equal(M(600)) {
		t.Errorf("row 1 balance = %v, want %v", cf.Rows[1].Balance, M(600))
	}
	if !cf.Inflows.Equal(M(1000)) || !cf.Outflows.Equal(M(400)) {
		t.Errorf("totals = in %v out %v, want in %v out %v", cf.Inflows, cf.Outflows, M(1000), M(400))
	}
	if !cf.Closing.Equal(M(600)) {
		t.Errorf("closing = %v, want %v", cf.Closing, M(600))
	}
	if !cf.Closing.Equal(cf.Opening.Add(cf.Inflows).Sub(cf.Outflows)) {
		t.Errorf("closing %v != opening %v + inflows %v - outflows %v", cf.Closing, cf.Opening, cf.Inflows, cf.Outflows)
	}
}

func TestNewCashFlow_Empty(t *testing.T) {
	cf := NewCashFlow(nil, M(500), MonthRange(2025, 1))

	if len(cf.Rows) != 0 {
		t.Fatalf("NewCashFlow(nil) produced %d rows, want 0", len(cf.Rows))
	}
	if !cf.Closing.Equal(M(500)) {
		t.Errorf("closing = %v, want opening %v", cf.Closing, M(500))
	}
	if !cf.Inflows.IsZero() || !cf.Outflows.IsZero() {
		t.Errorf("totals = in %v out %v, want zero", cf.Inflows, cf.Outflows)
	}
}

func TestNewCashFlow_UnsortedInput(t *testing.T) {
	// The reconciler sorts by (date, id) itself, input order is irrelevant.
	entries := []Entry{
		{ID: 2, Date: NewDate(2025, 1, 10), Direction: Outflow, Category: Operational, Amount: M(400), Status: Settled},
		{ID: 1, Date: NewDate(2025, 1, 5), Direction: Inflow, Category: Operational, Amount: M(1000), Status: Settled},
	}
	cf := NewCashFlow(entries, M(0), MonthRange(2025, 1))

	if cf.Rows[0].Entry.ID != 1 || cf.Rows[1].Entry.ID != 2 {
		t.Errorf("rows order = [%d %d], want [1 2]", cf.Rows[0].Entry.ID, cf.Rows[1].Entry.ID)
	}
}

func TestCashFlow_Chaining(t *testing.T) {
	entries := []Entry{
		{ID: 1, Date: NewDate(2025, 1, 5), Direction: Inflow, Category: Operational, Amount: M(1000), Status: Settled},
		{ID: 2, Date: NewDate(2025, 1, 28), Direction: Outflow, Category: Operational, Amount: M(300), Status: Settled},
		{ID: 3, Date: NewDate(2025, 2, 3), Direction: Outflow, Category: Operational, Amount: M(200), Status: Settled},
		{ID: 4, Date: NewDate(2025, 2, 20), Direction: Inflow, Category: Operational, Amount: M(150), Status: Settled},
	}

	jan := NewCashFlow(entries, M(0), MonthRange(2025, 1))
	feb := NewCashFlow(entries, jan.Closing, MonthRange(2025, 2))
	whole := NewCashFlow(entries, M(0), NewRange(NewDate(2025, 1, 1), NewDate(2025, 2, 28)))

	// February opens exactly where January closed.
	if !feb.Opening.Equal(jan.Closing) {
		t.Errorf("feb opening = %v, want jan closing %v", feb.Opening, jan.Closing)
	}
	// Chained closing equals the single-run closing over both months.
	if !feb.Closing.Equal(whole.Closing) {
		t.Errorf("chained closing = %v, want %v", feb.Closing, whole.Closing)
	}

	// OpeningBalance reproduces the chained opening from the raw snapshot.
	if got := OpeningBalance(entries, NewDate(2025, 2, 1)); !got.Equal(jan.Closing) {
		t.Errorf("OpeningBalance(2025-02-01) = %v, want %v", got, jan.Closing)
	}
}

func TestCurrentBalance(t *testing.T) {
	entries := []Entry{
		{ID: 1, Date: NewDate(2025, 1, 5), Direction: Inflow, Category: Operational, Amount: M(1000), Status: Settled},
		{ID: 2, Date: NewDate(2025, 1, 10), Direction: Outflow, Category: Operational, Amount: M(400), Status: Settled},
		{ID: 3, Date: NewDate(2025, 1, 12), Direction: Inflow, Category: Operational, Amount: M(9999), Status: Pending},
	}
	if got := CurrentBalance(entries); !got.Equal(M(600)) {
		t.Errorf("CurrentBalance() = %v, want %v", got, M(600))
	}
}
