// Package finco implements the ledger reconciliation and aggregation engine
// of the Finco financial system.
//
// The package tracks financial entries (receivables and payables) for a small
// organization and derives cash-position signals from them: settlement
// lifecycle rules, running cash balances, Miller-Orr cash-band evaluation,
// and the grouping and ranking computations behind dashboards and reports.
//
// All computations are pure functions over immutable entry snapshots read
// from an EntryStore. The engine never persists data itself and never parses
// source documents; it only reconciles and classifies already-normalized
// entries.
package finco
