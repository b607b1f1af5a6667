package finco

import (
	"errors"
	"testing"
)

func TestReconcileImport(t *testing.T) {
	candidates := []ImportCandidate{
		{Date: NewDate(2025, 4, 2), Direction: Outflow, Label: "ACME Corp", Amount: M(1500), DocumentNumber: "123"},
		{Date: NewDate(2025, 5, 9), Direction: Outflow, Label: "Beta Ltda", Amount: M(800), DocumentNumber: "124"},
	}

	res := ReconcileImport(candidates, nil, "FORNECEDORES", Operational)

	if len(res.Created) != 2 || len(res.Ignored) != 0 || len(res.Errors) != 0 {
		t.Fatalf("ReconcileImport() = created %d ignored %d errors %d, want 2/0/0",
			len(res.Created), len(res.Ignored), len(res.Errors))
	}
	if res.Batch == "" {
		t.Error("Batch id is empty")
	}

	e := res.Created[0]
	if e.Status != Pending {
		t.Errorf("created status = %v, want %v", e.Status, Pending)
	}
	if e.Label != "ACME Corp - NF 123" {
		t.Errorf("created label = %q, want %q", e.Label, "ACME Corp - NF 123")
	}
	if e.Classification != "FORNECEDORES" || e.Category != Operational {
		t.Errorf("created tagging = %q/%v, want FORNECEDORES/%v", e.Classification, e.Category, Operational)
	}

	wantMonths := []Date{NewDate(2025, 4, 1), NewDate(2025, 5, 1)}
	if len(res.Months) != len(wantMonths) {
		t.Fatalf("Months = %v, want %v", res.Months, wantMonths)
	}
	for i, want := range wantMonths {
		if res.Months[i] != want {
			t.Errorf("Months[%d] = %v, want %v", i, res.Months[i], want)
		}
	}
}

func TestReconcileImport_DedupWithinBatch(t *testing.T) {
	c := ImportCandidate{Date: NewDate(2025, 4, 2), Direction: Outflow, Label: "ACME Corp", Amount: M(1500), DocumentNumber: "123"}

	res := ReconcileImport([]ImportCandidate{c, c}, nil, "FORNECEDORES", Operational)

	if len(res.Created) != 1 || len(res.Ignored) != 1 {
		t.Errorf("ReconcileImport() = created %d ignored %d, want 1/1", len(res.Created), len(res.Ignored))
	}
}

func TestReconcileImport_DedupAgainstExisting(t *testing.T) {
	existing := []Entry{
		{ID: 7, Date: NewDate(2025, 4, 2), Direction: Outflow, Category: Operational,
			Label: "ACME Corp - NF 123", Amount: M(1500), Status: Settled},
	}
	candidates := []ImportCandidate{
		{Date: NewDate(2025, 4, 2), Direction: Outflow, Label: "ACME Corp", Amount: M(1500), DocumentNumber: "123"},
		{Date: NewDate(2025, 4, 3), Direction: Outflow, Label: "ACME Corp", Amount: M(900), DocumentNumber: "125"},
	}

	res := ReconcileImport(candidates, existing, "FORNECEDORES", Operational)

	if len(res.Created) != 1 || len(res.Ignored) != 1 {
		t.Fatalf("ReconcileImport() = created %d ignored %d, want 1/1", len(res.Created), len(res.Ignored))
	}
	if res.Created[0].Label != "ACME Corp - NF 125" {
		t.Errorf("created label = %q, want the new document", res.Created[0].Label)
	}
}

func TestReconcileImport_PerItemErrors(t *testing.T) {
	candidates := []ImportCandidate{
		{Direction: Outflow, Label: "No Date", Amount: M(10), DocumentNumber: "1"},
		{Date: NewDate(2025, 4, 2), Direction: "SIDEWAYS", Label: "Bad Dir", Amount: M(10), DocumentNumber: "2"},
		{Date: NewDate(2025, 4, 3), Direction: Outflow, Label: "Fine", Amount: M(10), DocumentNumber: "3"},
	}

	res := ReconcileImport(candidates, nil, "FORNECEDORES", Operational)

	// One malformed candidate never blocks the rest of the batch.
	if len(res.Created) != 1 {
		t.Fatalf("Created = %d, want 1", len(res.Created))
	}
	if len(res.Errors) != 2 {
		t.Fatalf("Errors = %d, want 2", len(res.Errors))
	}
	for _, ie := range res.Errors {
		if !errors.Is(ie, ErrValidation) {
			t.Errorf("error %v does not wrap ErrValidation", ie)
		}
	}
	if res.Errors[0].Index != 0 || res.Errors[1].Index != 1 {
		t.Errorf("error indices = [%d %d], want [0 1]", res.Errors[0].Index, res.Errors[1].Index)
	}
}

func TestImportCandidate_Fingerprint(t *testing.T) {
	withKey := ImportCandidate{SourceKey: "35250112345678000199550010000001231000000010", DocumentNumber: "123", Label: "ACME"}
	if got := withKey.Fingerprint(); got != withKey.SourceKey {
		t.Errorf("Fingerprint() = %q, want the source key", got)
	}

	noKey := ImportCandidate{DocumentNumber: "123", Label: " acme "}
	if got := noKey.Fingerprint(); got != "NF:123|ACME" {
		t.Errorf("Fingerprint() = %q, want %q", got, "NF:123|ACME")
	}
}
