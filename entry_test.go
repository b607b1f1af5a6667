package finco

import (
	"errors"
	"testing"
)

func TestParseDirection(t *testing.T) {
	tests := []struct {
		input string
		want  Direction
		err   bool
	}{
		{"INFLOW", Inflow, false},
		{"outflow", Outflow, false},
		{" Inflow ", Inflow, false},
		{"ENTRADA", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDirection(tt.input)
			if (err != nil) != tt.err {
				t.Fatalf("ParseDirection(%q) error = %v, wantErr %v", tt.input, err, tt.err)
			}
			if err != nil && !errors.Is(err, ErrValidation) {
				t.Errorf("ParseDirection(%q) error = %v, want ErrValidation", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseDirection(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		input string
		want  Status
		err   bool
	}{
		{"PENDING", Pending, false},
		{"settled", Settled, false},
		{"Void", Void, false},
		{"BAIXADA", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseStatus(tt.input)
			if (err != nil) != tt.err {
				t.Fatalf("ParseStatus(%q) error = %v, wantErr %v", tt.input, err, tt.err)
			}
			if got != tt.want {
				t.Errorf("ParseStatus(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestEntry_Signed(t *testing.T) {
	in := Entry{Direction: Inflow, Amount: M(100)}
	out := Entry{Direction: Outflow, Amount: M(40)}

	if got := in.Signed(); !got.Equal(M(100)) {
		t.Errorf("Signed() = %v, want %v", got, M(100))
	}
	if got := out.Signed(); !got.Equal(M(-40)) {
		t.Errorf("Signed() = %v, want %v", got, M(-40))
	}
}

func TestEntry_Validate(t *testing.T) {
	valid := Entry{
		Date:      NewDate(2025, 1, 5),
		Direction: Inflow,
		Category:  Operational,
		Amount:    M(1000),
		Status:    Pending,
	}

	tests := []struct {
		name   string
		mutate func(e Entry) Entry
		err    bool
	}{
		{"valid", func(e Entry) Entry { return e }, false},
		{"zero amount is fine", func(e Entry) Entry { e.Amount = M(0); return e }, false},
		{"missing date", func(e Entry) Entry { e.Date = Date{}; return e }, true},
		{"unknown direction", func(e Entry) Entry { e.Direction = "SIDEWAYS"; return e }, true},
		{"unknown category", func(e Entry) Entry { e.Category = "PERSONAL"; return e }, true},
		{"unknown status", func(e Entry) Entry { e.Status = "MAYBE"; return e }, true},
		{"negative amount", func(e Entry) Entry { e.Amount = M(-1); return e }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.mutate(valid).Validate()
			if (err != nil) != tt.err {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.err)
			}
			if err != nil && !errors.Is(err, ErrValidation) {
				t.Errorf("Validate() error = %v, want ErrValidation", err)
			}
		})
	}
}

func TestSortEntries(t *testing.T) {
	entries := []Entry{
		{ID: 3, Date: NewDate(2025, 1, 10)},
		{ID: 1, Date: NewDate(2025, 1, 10)},
		{ID: 2, Date: NewDate(2025, 1, 5)},
	}
	SortEntries(entries)

	wantIDs := []int64{2, 1, 3}
	for i, want := range wantIDs {
		if entries[i].ID != want {
			t.Errorf("entries[%d].ID = %d, want %d", i, entries[i].ID, want)
		}
	}
}
