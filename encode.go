package finco

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"sort"
)

// The ledger file is a JSONL stream, human-readable and git-friendly. Each
// line is one record, identified by its "record" property:
//
//	{"record":"thresholds", ...}      the Miller-Orr band
//	{"record":"classification", ...}  one classification
//	{"record":"entry", ...}           one entry
//
// Records may appear in any order; EncodeLedger writes thresholds first,
// then classifications by name, then entries by (date, id).

type recordType string

const (
	recEntry          recordType = "entry"
	recClassification recordType = "classification"
	recThresholds     recordType = "thresholds"
)

// jentry is the wire shape of an entry line.
type jentry struct {
	Record         recordType `json:"record"`
	ID             int64      `json:"id"`
	Date           Date       `json:"date"`
	Direction      Direction  `json:"direction"`
	Category       Category   `json:"category"`
	Classification string     `json:"classification,omitempty"`
	Label          string     `json:"label,omitempty"`
	Amount         Money      `json:"amount"`
	Status         Status     `json:"status"`
}

// jclassification is the wire shape of a classification line.
type jclassification struct {
	Record   recordType         `json:"record"`
	Name     string             `json:"name"`
	Type     ClassificationType `json:"type"`
	Category Category           `json:"category"`
}

// jthresholds is the wire shape of the band line.
type jthresholds struct {
	Record      recordType `json:"record"`
	Minimum     Money      `json:"minimum"`
	ReturnPoint Money      `json:"returnPoint"`
	Maximum     Money      `json:"maximum"`
}

// DecodeLedger reads a JSONL stream into a Ledger. A stream without
// classification records keeps the default seed; a stream without a
// thresholds record keeps the default band.
func DecodeLedger(r io.Reader) (*Ledger, error) {
	ledger := NewLedger()
	classifications := make(map[string]Classification)

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		lineBytes := scanner.Bytes()
		if len(lineBytes) == 0 {
			continue // Skip empty lines
		}

		var identifier struct {
			Record recordType `json:"record"`
		}
		if err := json.Unmarshal(lineBytes, &identifier); err != nil {
			return nil, fmt.Errorf("line %d: could not identify record in %q: %w", line, string(lineBytes), err)
		}

		switch identifier.Record {
		case recEntry:
			var je jentry
			if err := json.Unmarshal(lineBytes, &je); err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			e := Entry{
				ID:             je.ID,
				Date:           je.Date,
				Direction:      je.Direction,
				Category:       je.Category,
				Classification: NormalizeClassificationName(je.Classification),
				Label:          je.Label,
				Amount:         je.Amount,
				Status:         je.Status,
			}
			if err := e.Validate(); err != nil {
				return nil, fmt.Errorf("line %d: entry %d: %w", line, e.ID, err)
			}
			ledger.entries = append(ledger.entries, e)
			if e.ID >= ledger.nextID {
				ledger.nextID = e.ID + 1
			}
		case recClassification:
			var jc jclassification
			if err := json.Unmarshal(lineBytes, &jc); err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			c := Classification{Name: NormalizeClassificationName(jc.Name), Type: jc.Type, Category: jc.Category}
			if err := c.Validate(); err != nil {
				return nil, fmt.Errorf("line %d: classification %q: %w", line, jc.Name, err)
			}
			classifications[c.Name] = c
		case recThresholds:
			var jt jthresholds
			if err := json.Unmarshal(lineBytes, &jt); err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			t := Thresholds{Minimum: jt.Minimum, ReturnPoint: jt.ReturnPoint, Maximum: jt.Maximum}
			if err := t.Validate(); err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			ledger.thresholds = t
		default:
			return nil, fmt.Errorf("line %d: unknown record type %q", line, identifier.Record)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading from input: %w", err)
	}

	// Classification records, when present, replace the default seed.
	if len(classifications) > 0 {
		ledger.classifications = classifications
	}
	SortEntries(ledger.entries)
	return ledger, nil
}

func encodeEntry(w io.Writer, e Entry) error {
	var jw jsonObjectWriter
	jw.Append("record", recEntry).
		Append("id", e.ID).
		Append("date", e.Date).
		Append("direction", e.Direction).
		Append("category", e.Category).
		Optional("classification", e.Classification).
		Optional("label", e.Label).
		Append("amount", e.Amount).
		Append("status", e.Status)
	data, err := jw.MarshalJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal entry %d: %w", e.ID, err)
	}
	_, err = w.Write(append(data, '\n'))
	return err
}

// EncodeLedger persists the ledger to an io.Writer in JSONL format, in a
// canonical order so that diffs stay small.
func EncodeLedger(w io.Writer, ledger *Ledger) error {
	ledger.mu.RLock()
	defer ledger.mu.RUnlock()

	jt := jthresholds{
		Record:      recThresholds,
		Minimum:     ledger.thresholds.Minimum,
		ReturnPoint: ledger.thresholds.ReturnPoint,
		Maximum:     ledger.thresholds.Maximum,
	}
	data, err := json.Marshal(jt)
	if err != nil {
		return fmt.Errorf("failed to marshal thresholds: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write thresholds: %w", err)
	}

	names := make([]string, 0, len(ledger.classifications))
	for name := range ledger.classifications {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		c := ledger.classifications[name]
		jc := jclassification{Record: recClassification, Name: c.Name, Type: c.Type, Category: c.Category}
		data, err := json.Marshal(jc)
		if err != nil {
			return fmt.Errorf("failed to marshal classification %q: %w", c.Name, err)
		}
		if _, err := w.Write(append(data, '\n')); err != nil {
			return fmt.Errorf("failed to write classification %q: %w", c.Name, err)
		}
	}

	entries := make([]Entry, len(ledger.entries))
	copy(entries, ledger.entries)
	SortEntries(entries)
	for _, e := range entries {
		if err := encodeEntry(w, e); err != nil {
			return err
		}
	}
	return nil
}
