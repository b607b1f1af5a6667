package finco

import (
	"fmt"
	"strings"
)

// Thresholds is the Miller-Orr cash band: the minimum balance the operation
// tolerates, the point cash should return to, and the ceiling above which
// cash sits idle.
type Thresholds struct {
	Minimum     Money
	ReturnPoint Money
	Maximum     Money
}

// DefaultThresholds returns the band shipped with a fresh ledger.
func DefaultThresholds() Thresholds {
	return Thresholds{
		Minimum:     M(55_000),
		ReturnPoint: M(100_000),
		Maximum:     M(355_000),
	}
}

// Validate checks the band ordering invariant minimum < return point < maximum.
func (t Thresholds) Validate() error {
	if t.Minimum.IsNegative() {
		return fmt.Errorf("%w: minimum %s is negative", ErrInvalidThresholds, t.Minimum)
	}
	if !t.Minimum.LessThan(t.ReturnPoint) {
		return fmt.Errorf("%w: minimum %s must be below return point %s", ErrInvalidThresholds, t.Minimum, t.ReturnPoint)
	}
	if !t.ReturnPoint.LessThan(t.Maximum) {
		return fmt.Errorf("%w: return point %s must be below maximum %s", ErrInvalidThresholds, t.ReturnPoint, t.Maximum)
	}
	return nil
}

// With returns a copy of the band with one value replaced.
func (t Thresholds) With(key ThresholdKey, value Money) Thresholds {
	switch key {
	case ThresholdMinimum:
		t.Minimum = value
	case ThresholdReturnPoint:
		t.ReturnPoint = value
	case ThresholdMaximum:
		t.Maximum = value
	}
	return t
}

// Value returns the band value named by key.
func (t Thresholds) Value(key ThresholdKey) Money {
	switch key {
	case ThresholdMinimum:
		return t.Minimum
	case ThresholdReturnPoint:
		return t.ReturnPoint
	default:
		return t.Maximum
	}
}

// ThresholdKey names one of the three band values.
type ThresholdKey string

const (
	ThresholdMinimum     ThresholdKey = "MINIMUM"
	ThresholdReturnPoint ThresholdKey = "RETURN_POINT"
	ThresholdMaximum     ThresholdKey = "MAXIMUM"
)

// ThresholdKeys lists the band keys in band order.
var ThresholdKeys = []ThresholdKey{ThresholdMinimum, ThresholdReturnPoint, ThresholdMaximum}

// ParseThresholdKey parses a string into a ThresholdKey.
func ParseThresholdKey(s string) (ThresholdKey, error) {
	k := ThresholdKey(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range ThresholdKeys {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: unknown threshold %q", ErrValidation, s)
}

// BandStatus tells where a balance sits relative to the band.
type BandStatus string

const (
	BelowBand  BandStatus = "BELOW"
	WithinBand BandStatus = "WITHIN"
	AboveBand  BandStatus = "ABOVE"
)

// Band is the evaluation of a cash balance against a Miller-Orr band.
type Band struct {
	Balance    Money
	Thresholds Thresholds
	// Position is the balance's place inside the band, 0 at the minimum and
	// 1 at the maximum, clamped to [0, 1].
	Position float64
	Status   BandStatus
}

// PositionPercent returns the band position as a percentage.
func (b Band) PositionPercent() Percent { return Percent(b.Position * 100) }

// EvaluateBand places a balance inside a band. The band is re-validated
// before computing: a non-positive width has no defined position.
func EvaluateBand(balance Money, t Thresholds) (Band, error) {
	if err := t.Validate(); err != nil {
		return Band{}, err
	}
	b := Band{Balance: balance, Thresholds: t}

	switch {
	case balance.LessThan(t.Minimum):
		b.Position = 0
		b.Status = BelowBand
	case balance.GreaterThan(t.Maximum):
		b.Position = 1
		b.Status = AboveBand
	default:
		width := t.Maximum.Sub(t.Minimum)
		b.Position = balance.Sub(t.Minimum).Decimal().Div(width.Decimal()).InexactFloat64()
		b.Status = WithinBand
	}
	return b, nil
}
