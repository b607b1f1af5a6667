package finco

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// ImportCandidate is a normalized movement produced by a document-import
// collaborator (fiscal XML, spreadsheet). It carries the provenance fields
// used for deduplication and is never persisted as-is: it is promoted to a
// pending Entry or discarded.
type ImportCandidate struct {
	Date           Date
	Direction      Direction
	Label          string // counterparty as named by the source document
	Amount         Money
	DocumentNumber string // fiscal document number
	SourceKey      string // stable key from the source, e.g. the NFe access key
}

// Fingerprint returns the candidate's dedup key. The source key wins when
// present; otherwise the document number and counterparty identify the
// movement.
func (c ImportCandidate) Fingerprint() string {
	if c.SourceKey != "" {
		return c.SourceKey
	}
	return fmt.Sprintf("NF:%s|%s", c.DocumentNumber, strings.ToUpper(strings.TrimSpace(c.Label)))
}

// EntryLabel returns the label the promoted entry carries. The document
// number is appended so that re-importing the same document is recognizable
// in a plain entry listing.
func (c ImportCandidate) EntryLabel() string {
	label := strings.TrimSpace(c.Label)
	if c.DocumentNumber == "" {
		return label
	}
	return label + " - NF " + c.DocumentNumber
}

// Validate checks the candidate fields needed to promote it.
func (c ImportCandidate) Validate() error {
	if c.Date.IsZero() {
		return fmt.Errorf("%w: candidate date is required", ErrValidation)
	}
	if _, err := ParseDirection(string(c.Direction)); err != nil {
		return err
	}
	if c.Amount.IsNegative() {
		return fmt.Errorf("%w: amount must not be negative, got %s", ErrValidation, c.Amount)
	}
	return nil
}

// ImportError is a per-candidate failure. Batches never abort on one bad
// candidate; the failures travel alongside the successes.
type ImportError struct {
	Index     int
	Candidate ImportCandidate
	Err       error
}

func (e ImportError) Error() string {
	return fmt.Sprintf("candidate %d (NF %s): %v", e.Index, e.Candidate.DocumentNumber, e.Err)
}

func (e ImportError) Unwrap() error { return e.Err }

// ImportResult is the outcome of reconciling a candidate batch.
type ImportResult struct {
	Batch   string            // batch identifier, for audit logs
	Created []Entry           // promoted entries, pending, not yet persisted
	Updated []Entry           // entries refreshed by a merge; empty for document feeds, which only create or ignore
	Ignored []ImportCandidate // already present, by fingerprint or label
	Errors  []ImportError
	Months  []Date // first day of each month touched by a created entry
}

// ReconcileImport merges a batch of candidates against the existing entries.
// Candidates whose fingerprint or promoted label already exists, among the
// current entries or earlier in the same batch, are ignored. The rest are
// promoted to pending entries tagged with the given classification and
// category. Malformed candidates are collected as per-item errors.
func ReconcileImport(candidates []ImportCandidate, existing []Entry, classification string, category Category) *ImportResult {
	res := &ImportResult{Batch: uuid.NewString()}

	seen := make(map[string]bool, len(existing)+len(candidates))
	for _, e := range existing {
		seen[strings.ToUpper(strings.TrimSpace(e.Label))] = true
	}

	months := make(map[Date]bool)
	for i, c := range candidates {
		if err := c.Validate(); err != nil {
			res.Errors = append(res.Errors, ImportError{Index: i, Candidate: c, Err: err})
			continue
		}
		label := c.EntryLabel()
		if seen[c.Fingerprint()] || seen[strings.ToUpper(label)] {
			res.Ignored = append(res.Ignored, c)
			continue
		}
		seen[c.Fingerprint()] = true
		seen[strings.ToUpper(label)] = true

		res.Created = append(res.Created, Entry{
			Date:           c.Date,
			Direction:      c.Direction,
			Category:       category,
			Classification: NormalizeClassificationName(classification),
			Label:          label,
			Amount:         c.Amount,
			Status:         Pending,
		})
		months[c.Date.StartOfMonth()] = true
	}

	for m := range months {
		res.Months = append(res.Months, m)
	}
	sort.Slice(res.Months, func(i, j int) bool { return res.Months[i].Before(res.Months[j]) })
	return res
}
