package finco

import (
	"fmt"
	"sort"
	"strings"
)

// Direction tells whether an entry moves cash in or out.
type Direction string

const (
	Inflow  Direction = "INFLOW"
	Outflow Direction = "OUTFLOW"
)

// ParseDirection parses a string into a Direction. Unknown values are
// rejected, never silently defaulted.
func ParseDirection(s string) (Direction, error) {
	switch Direction(strings.ToUpper(strings.TrimSpace(s))) {
	case Inflow:
		return Inflow, nil
	case Outflow:
		return Outflow, nil
	default:
		return "", fmt.Errorf("%w: unknown direction %q", ErrValidation, s)
	}
}

// Category is the economic nature of an entry.
type Category string

const (
	Operational Category = "OPERATIONAL"
	Investment  Category = "INVESTMENT"
	Financial   Category = "FINANCIAL"
)

// Categories lists all categories in display order.
var Categories = []Category{Operational, Investment, Financial}

// ParseCategory parses a string into a Category.
func ParseCategory(s string) (Category, error) {
	switch Category(strings.ToUpper(strings.TrimSpace(s))) {
	case Operational:
		return Operational, nil
	case Investment:
		return Investment, nil
	case Financial:
		return Financial, nil
	default:
		return "", fmt.Errorf("%w: unknown category %q", ErrValidation, s)
	}
}

// Status is the settlement situation of an entry.
//
// Pending entries are expected movements (receivable/payable), settled
// entries are cash that has actually moved, void entries are administratively
// invalidated but retained for audit. Void entries are excluded from every
// balance and aggregation computation.
type Status string

const (
	Pending Status = "PENDING"
	Settled Status = "SETTLED"
	Void    Status = "VOID"
)

// ParseStatus parses a string into a Status.
func ParseStatus(s string) (Status, error) {
	switch Status(strings.ToUpper(strings.TrimSpace(s))) {
	case Pending:
		return Pending, nil
	case Settled:
		return Settled, nil
	case Void:
		return Void, nil
	default:
		return "", fmt.Errorf("%w: unknown status %q", ErrValidation, s)
	}
}

// Entry is a single financial movement record (receivable or payable).
type Entry struct {
	ID             int64     // unique, assigned by the store
	Date           Date      // calendar day, no time component
	Direction      Direction // INFLOW or OUTFLOW
	Category       Category  // OPERATIONAL, INVESTMENT or FINANCIAL
	Classification string    // classification name; may dangle after a classification is deleted
	Label          string    // counterparty or free-text description, optional
	Amount         Money     // non-negative
	Status         Status    // settlement situation
}

// Signed returns the entry's contribution to a balance: +Amount for an
// inflow, -Amount for an outflow.
func (e Entry) Signed() Money {
	if e.Direction == Outflow {
		return e.Amount.Neg()
	}
	return e.Amount
}

// Validate checks the entry fields the engine relies on.
func (e Entry) Validate() error {
	if e.Date.IsZero() {
		return fmt.Errorf("%w: entry date is required", ErrValidation)
	}
	if _, err := ParseDirection(string(e.Direction)); err != nil {
		return err
	}
	if _, err := ParseCategory(string(e.Category)); err != nil {
		return err
	}
	if _, err := ParseStatus(string(e.Status)); err != nil {
		return err
	}
	if e.Amount.IsNegative() {
		return fmt.Errorf("%w: amount must not be negative, got %s", ErrValidation, e.Amount)
	}
	return nil
}

// SortEntries sorts entries chronologically, ties broken by id, so that any
// scan over them is deterministic.
func SortEntries(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Date != entries[j].Date {
			return entries[i].Date.Before(entries[j].Date)
		}
		return entries[i].ID < entries[j].ID
	})
}
