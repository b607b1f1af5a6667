package finco

import (
	"errors"
	"testing"
)

func TestEvaluateBand(t *testing.T) {
	band := Thresholds{Minimum: M(1000), ReturnPoint: M(3000), Maximum: M(5000)}

	tests := []struct {
		name     string
		balance  Money
		wantPos  float64
		wantStat BandStatus
	}{
		{"below the band, clamped", M(600), 0, BelowBand},
		{"negative balance", M(-100), 0, BelowBand},
		{"at the minimum", M(1000), 0, WithinBand},
		{"at the return point", M(3000), 0.5, WithinBand},
		{"at the maximum", M(5000), 1, WithinBand},
		{"above the band, clamped", M(6000), 1, AboveBand},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EvaluateBand(tt.balance, band)
			if err != nil {
				t.Fatalf("EvaluateBand(%v) error = %v", tt.balance, err)
			}
			if got.Position != tt.wantPos {
				t.Errorf("EvaluateBand(%v) position = %v, want %v", tt.balance, got.Position, tt.wantPos)
			}
			if got.Status != tt.wantStat {
				t.Errorf("EvaluateBand(%v) status = %v, want %v", tt.balance, got.Status, tt.wantStat)
			}
		})
	}
}

func TestEvaluateBand_InvalidThresholds(t *testing.T) {
	tests := []struct {
		name string
		band Thresholds
	}{
		{"return point below minimum", Thresholds{Minimum: M(3000), ReturnPoint: M(2000), Maximum: M(5000)}},
		{"return point above maximum", Thresholds{Minimum: M(1000), ReturnPoint: M(6000), Maximum: M(5000)}},
		{"zero width", Thresholds{Minimum: M(1000), ReturnPoint: M(1000), Maximum: M(1000)}},
		{"negative minimum", Thresholds{Minimum: M(-1), ReturnPoint: M(1000), Maximum: M(5000)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := EvaluateBand(M(2000), tt.band); !errors.Is(err, ErrInvalidThresholds) {
				t.Errorf("EvaluateBand() error = %v, want ErrInvalidThresholds", err)
			}
		})
	}
}

func TestEvaluateBand_Monotonic(t *testing.T) {
	band := DefaultThresholds()

	prev := -1.0
	for balance := -50_000; balance <= 450_000; balance += 10_000 {
		got, err := EvaluateBand(M(balance), band)
		if err != nil {
			t.Fatalf("EvaluateBand(%d) error = %v", balance, err)
		}
		if got.Position < prev {
			t.Fatalf("EvaluateBand(%d) position = %v, decreased from %v", balance, got.Position, prev)
		}
		prev = got.Position
	}
}

func TestThresholds_With(t *testing.T) {
	band := DefaultThresholds()
	got := band.With(ThresholdMaximum, M(500_000))

	if !got.Maximum.Equal(M(500_000)) {
		t.Errorf("With(maximum) = %v, want %v", got.Maximum, M(500_000))
	}
	if !band.Maximum.Equal(M(355_000)) {
		t.Errorf("With() mutated the receiver, maximum = %v", band.Maximum)
	}
}
