package finco

import (
	"context"
	"strings"
	"time"
)

// EntryFilter selects a subset of entries. Zero-valued fields do not filter.
type EntryFilter struct {
	Direction      Direction  // exact match
	Category       Category   // exact match
	Classification string     // exact match on normalized name
	Status         Status     // exact match
	ExcludeVoid    bool       // skip VOID entries regardless of Status
	Year           int        // calendar year
	Month          time.Month // calendar month, requires Year to be meaningful
	Day            int        // day of month
	Label          string     // case-insensitive substring of the label
	Dates          Range      // inclusive date range
	Limit          int        // result-size cap, 0 means unlimited
}

// Matches reports whether the entry passes the filter, ignoring Limit.
func (f EntryFilter) Matches(e Entry) bool {
	if f.Direction != "" && e.Direction != f.Direction {
		return false
	}
	if f.Category != "" && e.Category != f.Category {
		return false
	}
	if f.Classification != "" && NormalizeClassificationName(e.Classification) != NormalizeClassificationName(f.Classification) {
		return false
	}
	if f.Status != "" && e.Status != f.Status {
		return false
	}
	if f.ExcludeVoid && e.Status == Void {
		return false
	}
	if f.Year != 0 && e.Date.Year() != f.Year {
		return false
	}
	if f.Month != 0 && e.Date.Month() != f.Month {
		return false
	}
	if f.Day != 0 && e.Date.Day() != f.Day {
		return false
	}
	if f.Label != "" && !strings.Contains(strings.ToUpper(e.Label), strings.ToUpper(f.Label)) {
		return false
	}
	if !f.Dates.IsZero() && !f.Dates.Contains(e.Date) {
		return false
	}
	return true
}

// EntryUpdate is a partial entry modification. Nil fields are left untouched.
type EntryUpdate struct {
	Date           *Date
	Direction      *Direction
	Category       *Category
	Classification *string
	Label          *string
	Amount         *Money
	Status         *Status
}

// EntryStore is the engine's collaborator for durable entry, classification
// and configuration access. The engine reads request-scoped snapshots from it
// and never mutates them in place.
//
// Write operations must be serialized per entry by the implementation; a
// store using optimistic concurrency reports a lost race with ErrConflict.
type EntryStore interface {
	// ListEntries returns entries matching the filter ordered by (date, id).
	ListEntries(ctx context.Context, f EntryFilter) ([]Entry, error)
	GetEntry(ctx context.Context, id int64) (Entry, error)
	CreateEntry(ctx context.Context, e Entry) (Entry, error)
	UpdateEntry(ctx context.Context, id int64, u EntryUpdate) (Entry, error)
	DeleteEntry(ctx context.Context, id int64) error

	// Settle marks a pending entry as settled. It fails with
	// ErrAlreadySettled when the entry is already settled and with
	// ErrNotFound when it does not exist.
	Settle(ctx context.Context, id int64) (Entry, error)
	// SetStatus writes the situation unconditionally (three-way toggle).
	SetStatus(ctx context.Context, id int64, s Status) (Entry, error)

	// ListClassifications returns classifications, optionally restricted to a
	// type, ordered by name.
	ListClassifications(ctx context.Context, t ClassificationType) ([]Classification, error)
	SaveClassification(ctx context.Context, c Classification) error
	// DeleteClassification removes a classification without touching the
	// entries that reference it; their classification name dangles.
	DeleteClassification(ctx context.Context, name string) error

	// Thresholds returns the configured Miller-Orr band.
	Thresholds(ctx context.Context) (Thresholds, error)
	// SetThreshold updates one band value, re-validating the three-way
	// ordering invariant before writing.
	SetThreshold(ctx context.Context, key ThresholdKey, value Money) error
}
