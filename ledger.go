package finco

import (
	"context"
	"fmt"
	"sync"
)

// Ledger is the in-memory EntryStore backing the CLI. It holds entries,
// classifications and the cash band thresholds, and persists as a JSONL
// stream (see encode.go).
//
// A fresh ledger starts with the default classification seed and the default
// Miller-Orr band. All methods are safe for concurrent use; writes are
// serialized by an internal lock, so the ErrConflict path of EntryStore never
// triggers here.
type Ledger struct {
	mu              sync.RWMutex
	entries         []Entry
	classifications map[string]Classification
	thresholds      Thresholds
	nextID          int64
}

// NewLedger creates a ledger seeded with the default classifications and
// thresholds.
func NewLedger() *Ledger {
	l := &Ledger{
		classifications: make(map[string]Classification),
		thresholds:      DefaultThresholds(),
		nextID:          1,
	}
	for _, c := range DefaultClassifications() {
		c.Name = NormalizeClassificationName(c.Name)
		l.classifications[c.Name] = c
	}
	return l
}

var _ EntryStore = (*Ledger)(nil)

// ListEntries returns the matching entries ordered by (date, id).
func (l *Ledger) ListEntries(_ context.Context, f EntryFilter) ([]Entry, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var out []Entry
	for _, e := range l.entries {
		if f.Matches(e) {
			out = append(out, e)
		}
	}
	SortEntries(out)
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (l *Ledger) GetEntry(_ context.Context, id int64) (Entry, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	i, ok := l.index(id)
	if !ok {
		return Entry{}, fmt.Errorf("entry %d: %w", id, ErrNotFound)
	}
	return l.entries[i], nil
}

// CreateEntry validates and stores a new entry, assigning its id.
// An empty status defaults to pending.
func (l *Ledger) CreateEntry(_ context.Context, e Entry) (Entry, error) {
	if e.Status == "" {
		e.Status = Pending
	}
	e.Classification = NormalizeClassificationName(e.Classification)
	if err := e.Validate(); err != nil {
		return Entry{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	e.ID = l.nextID
	l.nextID++
	l.entries = append(l.entries, e)
	return e, nil
}

func (l *Ledger) UpdateEntry(_ context.Context, id int64, u EntryUpdate) (Entry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	i, ok := l.index(id)
	if !ok {
		return Entry{}, fmt.Errorf("entry %d: %w", id, ErrNotFound)
	}
	e := l.entries[i]
	if u.Date != nil {
		e.Date = *u.Date
	}
	if u.Direction != nil {
		e.Direction = *u.Direction
	}
	if u.Category != nil {
		e.Category = *u.Category
	}
	if u.Classification != nil {
		e.Classification = NormalizeClassificationName(*u.Classification)
	}
	if u.Label != nil {
		e.Label = *u.Label
	}
	if u.Amount != nil {
		e.Amount = *u.Amount
	}
	if u.Status != nil {
		e.Status = *u.Status
	}
	if err := e.Validate(); err != nil {
		return Entry{}, err
	}
	l.entries[i] = e
	return e, nil
}

func (l *Ledger) DeleteEntry(_ context.Context, id int64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	i, ok := l.index(id)
	if !ok {
		return fmt.Errorf("entry %d: %w", id, ErrNotFound)
	}
	l.entries = append(l.entries[:i], l.entries[i+1:]...)
	return nil
}

// Settle marks a pending entry as settled.
func (l *Ledger) Settle(_ context.Context, id int64) (Entry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	i, ok := l.index(id)
	if !ok {
		return Entry{}, fmt.Errorf("entry %d: %w", id, ErrNotFound)
	}
	e := l.entries[i]
	if e.Status == Settled {
		return e, fmt.Errorf("entry %d: %w", id, ErrAlreadySettled)
	}
	e.Status = Settled
	l.entries[i] = e
	return e, nil
}

// SetStatus writes the situation unconditionally.
func (l *Ledger) SetStatus(_ context.Context, id int64, s Status) (Entry, error) {
	if _, err := ParseStatus(string(s)); err != nil {
		return Entry{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	i, ok := l.index(id)
	if !ok {
		return Entry{}, fmt.Errorf("entry %d: %w", id, ErrNotFound)
	}
	e := l.entries[i]
	e.Status = s
	l.entries[i] = e
	return e, nil
}

// ListClassifications returns classifications ordered by name, optionally
// restricted to one type.
func (l *Ledger) ListClassifications(_ context.Context, t ClassificationType) ([]Classification, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	reg := NewRegistry(l.classificationList())
	var out []Classification
	for _, name := range reg.Names() {
		c, _ := reg.Resolve(name)
		if t != "" && c.Type != t {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (l *Ledger) SaveClassification(_ context.Context, c Classification) error {
	c.Name = NormalizeClassificationName(c.Name)
	if err := c.Validate(); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.classifications[c.Name] = c
	return nil
}

// DeleteClassification removes a classification. Entries keep their dangling
// classification name.
func (l *Ledger) DeleteClassification(_ context.Context, name string) error {
	name = NormalizeClassificationName(name)

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.classifications[name]; !ok {
		return fmt.Errorf("classification %q: %w", name, ErrNotFound)
	}
	delete(l.classifications, name)
	return nil
}

func (l *Ledger) Thresholds(_ context.Context) (Thresholds, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.thresholds, nil
}

// SetThreshold updates one band value, refusing a write that would break the
// minimum < return point < maximum ordering.
func (l *Ledger) SetThreshold(_ context.Context, key ThresholdKey, value Money) error {
	if _, err := ParseThresholdKey(string(key)); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	next := l.thresholds.With(key, value)
	if err := next.Validate(); err != nil {
		return err
	}
	l.thresholds = next
	return nil
}

// index returns the position of the entry with this id. Callers hold the lock.
func (l *Ledger) index(id int64) (int, bool) {
	for i := range l.entries {
		if l.entries[i].ID == id {
			return i, true
		}
	}
	return 0, false
}

// classificationList returns the classifications unordered. Callers hold the lock.
func (l *Ledger) classificationList() []Classification {
	out := make([]Classification, 0, len(l.classifications))
	for _, c := range l.classifications {
		out = append(out, c)
	}
	return out
}
