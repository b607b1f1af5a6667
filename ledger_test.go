package finco

import (
	"context"
	"errors"
	"testing"
)

func newTestLedger(t *testing.T, entries ...Entry) *Ledger {
	t.Helper()
	ctx := context.Background()
	l := NewLedger()
	for _, e := range entries {
		if _, err := l.CreateEntry(ctx, e); err != nil {
			t.Fatalf("CreateEntry(%v) error = %v", e, err)
		}
	}
	return l
}

func TestLedger_Settle(t *testing.T) {
	ctx := context.Background()
	l := newTestLedger(t,
		Entry{Date: NewDate(2025, 1, 5), Direction: Inflow, Category: Operational, Amount: M(1000)},
	)

	e, err := l.Settle(ctx, 1)
	if err != nil {
		t.Fatalf("Settle(1) error = %v", err)
	}
	if e.Status != Settled {
		t.Errorf("Settle(1) status = %v, want %v", e.Status, Settled)
	}

	// Settling twice is an error, by design not idempotent.
	if _, err := l.Settle(ctx, 1); !errors.Is(err, ErrAlreadySettled) {
		t.Errorf("Settle(1) again error = %v, want ErrAlreadySettled", err)
	}

	if _, err := l.Settle(ctx, 99); !errors.Is(err, ErrNotFound) {
		t.Errorf("Settle(99) error = %v, want ErrNotFound", err)
	}
}

func TestLedger_SetStatus(t *testing.T) {
	ctx := context.Background()
	l := newTestLedger(t,
		Entry{Date: NewDate(2025, 1, 5), Direction: Inflow, Category: Operational, Amount: M(1000)},
	)

	// The three-way toggle allows any transition, including unsettling.
	steps := []Status{Settled, Pending, Void, Settled}
	for _, s := range steps {
		e, err := l.SetStatus(ctx, 1, s)
		if err != nil {
			t.Fatalf("SetStatus(1, %v) error = %v", s, err)
		}
		if e.Status != s {
			t.Errorf("SetStatus(1, %v) status = %v", s, e.Status)
		}
	}

	if _, err := l.SetStatus(ctx, 1, "MAYBE"); !errors.Is(err, ErrValidation) {
		t.Errorf("SetStatus(1, MAYBE) error = %v, want ErrValidation", err)
	}
	if _, err := l.SetStatus(ctx, 99, Void); !errors.Is(err, ErrNotFound) {
		t.Errorf("SetStatus(99) error = %v, want ErrNotFound", err)
	}
}

func TestLedger_ListEntries(t *testing.T) {
	ctx := context.Background()
	l := newTestLedger(t,
		Entry{Date: NewDate(2025, 1, 5), Direction: Inflow, Category: Operational, Label: "ACME Corp", Amount: M(1000), Status: Settled},
		Entry{Date: NewDate(2025, 1, 10), Direction: Outflow, Category: Operational, Classification: "FRETES", Amount: M(400), Status: Pending},
		Entry{Date: NewDate(2025, 2, 1), Direction: Outflow, Category: Financial, Amount: M(50), Status: Void},
		Entry{Date: NewDate(2024, 12, 31), Direction: Inflow, Category: Operational, Amount: M(10), Status: Settled},
	)

	tests := []struct {
		name    string
		filter  EntryFilter
		wantIDs []int64
	}{
		{"all, ordered by date then id", EntryFilter{}, []int64{4, 1, 2, 3}},
		{"by year", EntryFilter{Year: 2025}, []int64{1, 2, 3}},
		{"by year and month", EntryFilter{Year: 2025, Month: 1}, []int64{1, 2}},
		{"by direction", EntryFilter{Direction: Outflow}, []int64{2, 3}},
		{"by status", EntryFilter{Status: Pending}, []int64{2}},
		{"exclude void", EntryFilter{Year: 2025, ExcludeVoid: true}, []int64{1, 2}},
		{"by classification", EntryFilter{Classification: "fretes"}, []int64{2}},
		{"by label substring", EntryFilter{Label: "acme"}, []int64{1}},
		{"by range", EntryFilter{Dates: NewRange(NewDate(2025, 1, 6), NewDate(2025, 2, 28))}, []int64{2, 3}},
		{"with limit", EntryFilter{Limit: 2}, []int64{4, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := l.ListEntries(ctx, tt.filter)
			if err != nil {
				t.Fatalf("ListEntries() error = %v", err)
			}
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("ListEntries() returned %d entries, want %d", len(got), len(tt.wantIDs))
			}
			for i, want := range tt.wantIDs {
				if got[i].ID != want {
					t.Errorf("ListEntries()[%d].ID = %d, want %d", i, got[i].ID, want)
				}
			}
		})
	}
}

func TestLedger_UpdateEntry(t *testing.T) {
	ctx := context.Background()
	l := newTestLedger(t,
		Entry{Date: NewDate(2025, 1, 5), Direction: Inflow, Category: Operational, Amount: M(1000)},
	)

	amount := M(1200)
	label := "ACME Corp"
	e, err := l.UpdateEntry(ctx, 1, EntryUpdate{Amount: &amount, Label: &label})
	if err != nil {
		t.Fatalf("UpdateEntry(1) error = %v", err)
	}
	if !e.Amount.Equal(amount) || e.Label != label {
		t.Errorf("UpdateEntry(1) = %+v, want amount %v label %q", e, amount, label)
	}
	if e.Direction != Inflow {
		t.Errorf("UpdateEntry(1) touched direction, got %v", e.Direction)
	}

	bad := M(-5)
	if _, err := l.UpdateEntry(ctx, 1, EntryUpdate{Amount: &bad}); !errors.Is(err, ErrValidation) {
		t.Errorf("UpdateEntry(1, negative) error = %v, want ErrValidation", err)
	}
	if _, err := l.UpdateEntry(ctx, 99, EntryUpdate{}); !errors.Is(err, ErrNotFound) {
		t.Errorf("UpdateEntry(99) error = %v, want ErrNotFound", err)
	}
}

func TestLedger_DeleteEntry(t *testing.T) {
	ctx := context.Background()
	l := newTestLedger(t,
		Entry{Date: NewDate(2025, 1, 5), Direction: Inflow, Category: Operational, Amount: M(1000)},
	)

	if err := l.DeleteEntry(ctx, 1); err != nil {
		t.Fatalf("DeleteEntry(1) error = %v", err)
	}
	if _, err := l.GetEntry(ctx, 1); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetEntry(1) after delete error = %v, want ErrNotFound", err)
	}
}

func TestLedger_SetThreshold(t *testing.T) {
	ctx := context.Background()
	l := NewLedger()

	// The default band is 55000 < 100000 < 355000.
	if err := l.SetThreshold(ctx, ThresholdMinimum, M(60_000)); err != nil {
		t.Fatalf("SetThreshold(minimum) error = %v", err)
	}
	got, err := l.Thresholds(ctx)
	if err != nil {
		t.Fatalf("Thresholds() error = %v", err)
	}
	if !got.Minimum.Equal(M(60_000)) {
		t.Errorf("Thresholds().Minimum = %v, want %v", got.Minimum, M(60_000))
	}

	// A write breaking the ordering is refused and leaves the band untouched.
	if err := l.SetThreshold(ctx, ThresholdMinimum, M(200_000)); !errors.Is(err, ErrInvalidThresholds) {
		t.Fatalf("SetThreshold(minimum above return point) error = %v, want ErrInvalidThresholds", err)
	}
	got, _ = l.Thresholds(ctx)
	if !got.Minimum.Equal(M(60_000)) {
		t.Errorf("Thresholds().Minimum after refused write = %v, want %v", got.Minimum, M(60_000))
	}

	if err := l.SetThreshold(ctx, "MEDIAN", M(1)); !errors.Is(err, ErrValidation) {
		t.Errorf("SetThreshold(MEDIAN) error = %v, want ErrValidation", err)
	}
}

func TestLedger_DeleteClassification(t *testing.T) {
	ctx := context.Background()
	l := newTestLedger(t,
		Entry{Date: NewDate(2025, 1, 10), Direction: Outflow, Category: Operational, Classification: "FRETES", Amount: M(400)},
	)

	if err := l.DeleteClassification(ctx, "fretes"); err != nil {
		t.Fatalf("DeleteClassification(fretes) error = %v", err)
	}
	if err := l.DeleteClassification(ctx, "FRETES"); !errors.Is(err, ErrNotFound) {
		t.Errorf("DeleteClassification(FRETES) again error = %v, want ErrNotFound", err)
	}

	// The referencing entry keeps its dangling classification name.
	e, err := l.GetEntry(ctx, 1)
	if err != nil {
		t.Fatalf("GetEntry(1) error = %v", err)
	}
	if e.Classification != "FRETES" {
		t.Errorf("entry classification = %q, want dangling %q", e.Classification, "FRETES")
	}
}

func TestLedger_SeededClassifications(t *testing.T) {
	ctx := context.Background()
	l := NewLedger()

	all, err := l.ListClassifications(ctx, "")
	if err != nil {
		t.Fatalf("ListClassifications() error = %v", err)
	}
	if len(all) != len(DefaultClassifications()) {
		t.Errorf("ListClassifications() returned %d, want %d", len(all), len(DefaultClassifications()))
	}

	taxes, err := l.ListClassifications(ctx, Tax)
	if err != nil {
		t.Fatalf("ListClassifications(Tax) error = %v", err)
	}
	for _, c := range taxes {
		if c.Type != Tax {
			t.Errorf("ListClassifications(Tax) returned %q of type %v", c.Name, c.Type)
		}
	}
}
