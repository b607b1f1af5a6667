package finco

import (
	"encoding/json"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// ReportingCurrency is the currency all Finco amounts are kept in.
const ReportingCurrency = "BRL"

// Money represents a monetary value as an exact decimal.
//
// Amounts are never binary floats: running balances accumulate hundreds of
// entries and must not drift.
type Money struct {
	value decimal.Decimal // as major unit value
	cur   string
}

// M builds a Money in the reporting currency.
func M[T float32 | float64 | int | int32 | int64 | decimal.Decimal](value T) Money {
	return Money{value: newDecimal(value), cur: ReportingCurrency}
}

// ParseMoney parses a decimal string (e.g. "1234.56") into a Money.
func ParseMoney(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, err
	}
	return Money{value: d, cur: ReportingCurrency}, nil
}

func newDecimal(v any) decimal.Decimal {
	switch x := v.(type) {
	case decimal.Decimal:
		return x
	case float32:
		return decimal.NewFromFloat32(x)
	case float64:
		return decimal.NewFromFloat(x)
	case int:
		return decimal.NewFromInt(int64(x))
	case int32:
		return decimal.NewFromInt32(x)
	case int64:
		return decimal.NewFromInt(x)
	default:
		panic("unsupported decimal source")
	}
}

// currency returns the money's currency, never nil.
func (m Money) currency() money.Currency {
	cur := m.cur
	if cur == "" {
		cur = ReportingCurrency
	}
	return *money.New(0, cur).Currency()
}

// String returns the formatted representation of the money value (e.g. "R$1.234,56").
func (m Money) String() string {
	cur := m.currency()
	dec := m.value.Shift(int32(cur.Fraction))
	return cur.Formatter().Format(dec.IntPart())
}

// SignedString returns the string representation of the money value with a sign.
// Zero is represented as "-".
func (m Money) SignedString() string {
	if m.value.IsZero() {
		return "-"
	}
	if m.value.IsPositive() {
		return "+" + m.String()
	}
	return m.String()
}

func (m Money) Currency() string            { return m.currency().Code }
func (m Money) Equal(n Money) bool          { return m.value.Equal(n.value) }
func (m Money) IsZero() bool                { return m.value.IsZero() }
func (m Money) IsPositive() bool            { return m.value.IsPositive() }
func (m Money) IsNegative() bool            { return m.value.IsNegative() }
func (m Money) LessThan(n Money) bool       { return m.value.LessThan(n.value) }
func (m Money) GreaterThan(n Money) bool    { return m.value.GreaterThan(n.value) }
func (m Money) Neg() Money                  { return Money{value: m.value.Neg(), cur: m.cur} }
func (m Money) Add(n Money) Money           { return Money{value: m.value.Add(n.value), cur: cur(m, n)} }
func (m Money) Sub(n Money) Money           { return Money{value: m.value.Sub(n.value), cur: cur(m, n)} }
func (m Money) Decimal() decimal.Decimal    { return m.value }

// PercentOf returns which percentage of total m represents.
// A zero total yields 0%, never a division by zero.
func (m Money) PercentOf(total Money) Percent {
	if total.IsZero() {
		return 0
	}
	ratio := m.value.Div(total.value)
	return Percent(ratio.Mul(decimal.NewFromInt(100)).InexactFloat64())
}

// MarshalJSON encodes the amount as a plain decimal string.
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.value.String())
}

// UnmarshalJSON decodes a decimal string into a reporting-currency amount.
func (m *Money) UnmarshalJSON(bytes []byte) error {
	var str string
	if err := json.Unmarshal(bytes, &str); err != nil {
		return err
	}
	parsed, err := ParseMoney(str)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

var _ json.Marshaler = (*Money)(nil)
var _ json.Unmarshaler = (*Money)(nil)

// makes the "" currency totally weak.
func cur(a, b Money) string {
	if a.cur == "" {
		return b.cur
	}
	return a.cur
}
