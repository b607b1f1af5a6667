package finco

import "time"

// Range represents a range of dates, boundaries included.
type Range struct{ From, To Date }

// NewRange creates a new date range. If 'from' is after 'to', they are swapped.
func NewRange(from, to Date) Range {
	if from.After(to) {
		from, to = to, from
	}
	return Range{From: from, To: to}
}

// MonthRange returns the range covering a whole calendar month.
func MonthRange(year int, month time.Month) Range {
	first := NewDate(year, month, 1)
	return Range{From: first, To: first.EndOfMonth()}
}

// YearRange returns the range covering a whole calendar year.
func YearRange(year int) Range {
	return Range{From: NewDate(year, time.January, 1), To: NewDate(year, time.December, 31)}
}

// Contains return true if date is included in the range (boundaries included).
func (r Range) Contains(date Date) bool { return !date.Before(r.From) && !date.After(r.To) }

// IsZero returns true when neither boundary is set.
func (r Range) IsZero() bool { return r.From.IsZero() && r.To.IsZero() }
