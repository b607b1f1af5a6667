// Package pgstore is the Postgres-backed EntryStore, used when the ledger
// outgrows a single JSONL file.
//
// Entry writes use optimistic concurrency: every entry row carries a version
// counter, and an update that loses the race reports finco.ErrConflict.
package pgstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect import
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/finco/finco"
)

const (
	tableEntries         = "entries"
	tableClassifications = "classifications"
	tableConfig          = "config"
)

var dialect = goqu.Dialect("postgres")

// Store implements finco.EntryStore on a Postgres pool.
type Store struct {
	pool *pgxpool.Pool
	log  zerolog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the query logger.
func WithLogger(log zerolog.Logger) Option {
	return func(s *Store) { s.log = log }
}

// New creates a store on an existing pool.
func New(pool *pgxpool.Pool, options ...Option) (*Store, error) {
	if pool == nil {
		return nil, errors.New("pgstore: nil pool")
	}
	s := &Store{pool: pool, log: zerolog.Nop()}
	for _, option := range options {
		option(s)
	}
	return s, nil
}

var _ finco.EntryStore = (*Store)(nil)

// Statements run one by one; pgx's extended protocol takes a single
// statement per Exec.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS entries (
	id             BIGSERIAL PRIMARY KEY,
	date           DATE         NOT NULL,
	direction      TEXT         NOT NULL,
	category       TEXT         NOT NULL,
	classification TEXT         NOT NULL DEFAULT '',
	label          TEXT         NOT NULL DEFAULT '',
	amount         NUMERIC      NOT NULL CHECK (amount >= 0),
	status         TEXT         NOT NULL,
	version        BIGINT       NOT NULL DEFAULT 1
)`,
	`CREATE INDEX IF NOT EXISTS entries_date_idx ON entries (date)`,
	`CREATE TABLE IF NOT EXISTS classifications (
	name     TEXT PRIMARY KEY,
	type     TEXT NOT NULL,
	category TEXT NOT NULL
)`,
	`CREATE TABLE IF NOT EXISTS config (
	key   TEXT PRIMARY KEY,
	value NUMERIC NOT NULL
)`,
}

// EnsureSchema creates the tables when missing and seeds the default
// classifications and thresholds on a fresh database.
func (s *Store) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("pgstore: create schema: %w", err)
		}
	}

	var classifications int64
	if err := s.pool.QueryRow(ctx, "SELECT count(*) FROM "+tableClassifications).Scan(&classifications); err != nil {
		return err
	}
	if classifications == 0 {
		for _, c := range finco.DefaultClassifications() {
			if err := s.SaveClassification(ctx, c); err != nil {
				return err
			}
		}
	}

	var config int64
	if err := s.pool.QueryRow(ctx, "SELECT count(*) FROM "+tableConfig).Scan(&config); err != nil {
		return err
	}
	if config == 0 {
		t := finco.DefaultThresholds()
		for _, key := range finco.ThresholdKeys {
			if err := s.writeThreshold(ctx, key, t.Value(key)); err != nil {
				return err
			}
		}
	}
	return nil
}

// entryColumns selects the entry fields, amount cast to text to keep the
// decimal exact.
func entryColumns() []any {
	return []any{
		goqu.C("id"), goqu.C("date"), goqu.C("direction"), goqu.C("category"),
		goqu.C("classification"), goqu.C("label"), goqu.L("amount::text"), goqu.C("status"),
	}
}

func scanEntry(row pgx.Row) (finco.Entry, error) {
	var e finco.Entry
	var day time.Time
	var direction, category, status, amount string
	if err := row.Scan(&e.ID, &day, &direction, &category, &e.Classification, &e.Label, &amount, &status); err != nil {
		return finco.Entry{}, err
	}
	e.Date = finco.NewDate(day.Date())
	e.Direction = finco.Direction(direction)
	e.Category = finco.Category(category)
	e.Status = finco.Status(status)
	m, err := finco.ParseMoney(amount)
	if err != nil {
		return finco.Entry{}, fmt.Errorf("pgstore: invalid amount %q for entry %d: %w", amount, e.ID, err)
	}
	e.Amount = m
	return e, nil
}

// buildListQuery translates an EntryFilter into the select statement.
func buildListQuery(f finco.EntryFilter) (string, []interface{}, error) {
	q := dialect.From(tableEntries).Select(entryColumns()...)

	if f.Direction != "" {
		q = q.Where(goqu.C("direction").Eq(string(f.Direction)))
	}
	if f.Category != "" {
		q = q.Where(goqu.C("category").Eq(string(f.Category)))
	}
	if f.Classification != "" {
		q = q.Where(goqu.C("classification").Eq(finco.NormalizeClassificationName(f.Classification)))
	}
	if f.Status != "" {
		q = q.Where(goqu.C("status").Eq(string(f.Status)))
	}
	if f.ExcludeVoid {
		q = q.Where(goqu.C("status").Neq(string(finco.Void)))
	}
	if f.Year != 0 {
		q = q.Where(goqu.L("date_part('year', date)").Eq(f.Year))
	}
	if f.Month != 0 {
		q = q.Where(goqu.L("date_part('month', date)").Eq(int(f.Month)))
	}
	if f.Day != 0 {
		q = q.Where(goqu.L("date_part('day', date)").Eq(f.Day))
	}
	if f.Label != "" {
		q = q.Where(goqu.C("label").ILike("%" + f.Label + "%"))
	}
	if !f.Dates.IsZero() {
		q = q.Where(
			goqu.C("date").Gte(f.Dates.From.String()),
			goqu.C("date").Lte(f.Dates.To.String()),
		)
	}
	q = q.Order(goqu.C("date").Asc(), goqu.C("id").Asc())
	if f.Limit > 0 {
		q = q.Limit(uint(f.Limit))
	}
	return q.ToSQL()
}

// ListEntries returns the matching entries ordered by (date, id).
func (s *Store) ListEntries(ctx context.Context, f finco.EntryFilter) ([]finco.Entry, error) {
	sql, args, err := buildListQuery(f)
	if err != nil {
		return nil, fmt.Errorf("pgstore: build list query: %w", err)
	}
	s.log.Debug().Str("sql", sql).Msg("list entries")

	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("pgstore: list entries: %w", err)
	}
	defer rows.Close()

	var out []finco.Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *Store) GetEntry(ctx context.Context, id int64) (finco.Entry, error) {
	sql, args, err := dialect.From(tableEntries).Select(entryColumns()...).
		Where(goqu.C("id").Eq(id)).ToSQL()
	if err != nil {
		return finco.Entry{}, err
	}
	e, err := scanEntry(s.pool.QueryRow(ctx, sql, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return finco.Entry{}, fmt.Errorf("entry %d: %w", id, finco.ErrNotFound)
	}
	return e, err
}

// CreateEntry validates and inserts a new entry, returning it with its
// assigned id.
func (s *Store) CreateEntry(ctx context.Context, e finco.Entry) (finco.Entry, error) {
	if e.Status == "" {
		e.Status = finco.Pending
	}
	e.Classification = finco.NormalizeClassificationName(e.Classification)
	if err := e.Validate(); err != nil {
		return finco.Entry{}, err
	}

	sql, args, err := dialect.Insert(tableEntries).Rows(goqu.Record{
		"date":           e.Date.String(),
		"direction":      string(e.Direction),
		"category":       string(e.Category),
		"classification": e.Classification,
		"label":          e.Label,
		"amount":         e.Amount.Decimal().String(),
		"status":         string(e.Status),
	}).Returning(goqu.C("id")).ToSQL()
	if err != nil {
		return finco.Entry{}, err
	}
	s.log.Debug().Str("sql", sql).Msg("create entry")

	if err := s.pool.QueryRow(ctx, sql, args...).Scan(&e.ID); err != nil {
		return finco.Entry{}, fmt.Errorf("pgstore: create entry: %w", err)
	}
	return e, nil
}

// UpdateEntry applies a partial update. A concurrent writer between the read
// and the versioned write surfaces as ErrConflict.
func (s *Store) UpdateEntry(ctx context.Context, id int64, u finco.EntryUpdate) (finco.Entry, error) {
	e, version, err := s.getVersioned(ctx, id)
	if err != nil {
		return finco.Entry{}, err
	}

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
		e.Classification = finco.NormalizeClassificationName(*u.Classification)
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
		return finco.Entry{}, err
	}

	sql, args, err := dialect.Update(tableEntries).Set(goqu.Record{
		"date":           e.Date.String(),
		"direction":      string(e.Direction),
		"category":       string(e.Category),
		"classification": e.Classification,
		"label":          e.Label,
		"amount":         e.Amount.Decimal().String(),
		"status":         string(e.Status),
		"version":        version + 1,
	}).Where(goqu.C("id").Eq(id), goqu.C("version").Eq(version)).ToSQL()
	if err != nil {
		return finco.Entry{}, err
	}
	tag, err := s.pool.Exec(ctx, sql, args...)
	if err != nil {
		return finco.Entry{}, fmt.Errorf("pgstore: update entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		s.log.Info().Int64("id", id).Msg("update lost the version race")
		return finco.Entry{}, fmt.Errorf("entry %d: %w", id, finco.ErrConflict)
	}
	return e, nil
}

func (s *Store) DeleteEntry(ctx context.Context, id int64) error {
	sql, args, err := dialect.Delete(tableEntries).Where(goqu.C("id").Eq(id)).ToSQL()
	if err != nil {
		return err
	}
	tag, err := s.pool.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("pgstore: delete entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("entry %d: %w", id, finco.ErrNotFound)
	}
	return nil
}

// Settle marks a pending entry as settled.
func (s *Store) Settle(ctx context.Context, id int64) (finco.Entry, error) {
	e, version, err := s.getVersioned(ctx, id)
	if err != nil {
		return finco.Entry{}, err
	}
	if e.Status == finco.Settled {
		return e, fmt.Errorf("entry %d: %w", id, finco.ErrAlreadySettled)
	}
	return s.writeStatus(ctx, e, version, finco.Settled)
}

// SetStatus writes the situation unconditionally.
func (s *Store) SetStatus(ctx context.Context, id int64, status finco.Status) (finco.Entry, error) {
	if _, err := finco.ParseStatus(string(status)); err != nil {
		return finco.Entry{}, err
	}
	e, version, err := s.getVersioned(ctx, id)
	if err != nil {
		return finco.Entry{}, err
	}
	return s.writeStatus(ctx, e, version, status)
}

func (s *Store) writeStatus(ctx context.Context, e finco.Entry, version int64, status finco.Status) (finco.Entry, error) {
	sql, args, err := dialect.Update(tableEntries).Set(goqu.Record{
		"status":  string(status),
		"version": version + 1,
	}).Where(goqu.C("id").Eq(e.ID), goqu.C("version").Eq(version)).ToSQL()
	if err != nil {
		return finco.Entry{}, err
	}
	tag, err := s.pool.Exec(ctx, sql, args...)
	if err != nil {
		return finco.Entry{}, fmt.Errorf("pgstore: set status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		s.log.Info().Int64("id", e.ID).Msg("status write lost the version race")
		return finco.Entry{}, fmt.Errorf("entry %d: %w", e.ID, finco.ErrConflict)
	}
	e.Status = status
	return e, nil
}

func (s *Store) getVersioned(ctx context.Context, id int64) (finco.Entry, int64, error) {
	cols := append(entryColumns(), goqu.C("version"))
	sql, args, err := dialect.From(tableEntries).Select(cols...).
		Where(goqu.C("id").Eq(id)).ToSQL()
	if err != nil {
		return finco.Entry{}, 0, err
	}

	var e finco.Entry
	var day time.Time
	var direction, category, status, amount string
	var version int64
	err = s.pool.QueryRow(ctx, sql, args...).
		Scan(&e.ID, &day, &direction, &category, &e.Classification, &e.Label, &amount, &status, &version)
	if errors.Is(err, pgx.ErrNoRows) {
		return finco.Entry{}, 0, fmt.Errorf("entry %d: %w", id, finco.ErrNotFound)
	}
	if err != nil {
		return finco.Entry{}, 0, err
	}
	e.Date = finco.NewDate(day.Date())
	e.Direction = finco.Direction(direction)
	e.Category = finco.Category(category)
	e.Status = finco.Status(status)
	m, err := finco.ParseMoney(amount)
	if err != nil {
		return finco.Entry{}, 0, err
	}
	e.Amount = m
	return e, version, nil
}

// ListClassifications returns classifications ordered by name, optionally
// restricted to one type.
func (s *Store) ListClassifications(ctx context.Context, t finco.ClassificationType) ([]finco.Classification, error) {
	q := dialect.From(tableClassifications).
		Select(goqu.C("name"), goqu.C("type"), goqu.C("category")).
		Order(goqu.C("name").Asc())
	if t != "" {
		q = q.Where(goqu.C("type").Eq(string(t)))
	}
	sql, args, err := q.ToSQL()
	if err != nil {
		return nil, err
	}
	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("pgstore: list classifications: %w", err)
	}
	defer rows.Close()

	var out []finco.Classification
	for rows.Next() {
		var c finco.Classification
		var typ, category string
		if err := rows.Scan(&c.Name, &typ, &category); err != nil {
			return nil, err
		}
		c.Type = finco.ClassificationType(typ)
		c.Category = finco.Category(category)
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *Store) SaveClassification(ctx context.Context, c finco.Classification) error {
	c.Name = finco.NormalizeClassificationName(c.Name)
	if err := c.Validate(); err != nil {
		return err
	}
	sql, args, err := dialect.Insert(tableClassifications).Rows(goqu.Record{
		"name":     c.Name,
		"type":     string(c.Type),
		"category": string(c.Category),
	}).OnConflict(goqu.DoUpdate("name", goqu.Record{
		"type":     string(c.Type),
		"category": string(c.Category),
	})).ToSQL()
	if err != nil {
		return err
	}
	if _, err := s.pool.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("pgstore: save classification: %w", err)
	}
	return nil
}

// DeleteClassification removes a classification. Entries keep their dangling
// classification name.
func (s *Store) DeleteClassification(ctx context.Context, name string) error {
	name = finco.NormalizeClassificationName(name)
	sql, args, err := dialect.Delete(tableClassifications).
		Where(goqu.C("name").Eq(name)).ToSQL()
	if err != nil {
		return err
	}
	tag, err := s.pool.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("pgstore: delete classification: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("classification %q: %w", name, finco.ErrNotFound)
	}
	return nil
}

// Thresholds reads the Miller-Orr band from the config table.
func (s *Store) Thresholds(ctx context.Context) (finco.Thresholds, error) {
	sql, args, err := dialect.From(tableConfig).
		Select(goqu.C("key"), goqu.L("value::text")).ToSQL()
	if err != nil {
		return finco.Thresholds{}, err
	}
	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return finco.Thresholds{}, fmt.Errorf("pgstore: read thresholds: %w", err)
	}
	defer rows.Close()

	t := finco.DefaultThresholds()
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return finco.Thresholds{}, err
		}
		k, err := finco.ParseThresholdKey(key)
		if err != nil {
			continue // unrelated config row
		}
		m, err := finco.ParseMoney(value)
		if err != nil {
			return finco.Thresholds{}, fmt.Errorf("pgstore: invalid threshold %s=%q: %w", key, value, err)
		}
		t = t.With(k, m)
	}
	return t, rows.Err()
}

// SetThreshold updates one band value, refusing a write that would break the
// minimum < return point < maximum ordering.
func (s *Store) SetThreshold(ctx context.Context, key finco.ThresholdKey, value finco.Money) error {
	if _, err := finco.ParseThresholdKey(string(key)); err != nil {
		return err
	}
	current, err := s.Thresholds(ctx)
	if err != nil {
		return err
	}
	if err := current.With(key, value).Validate(); err != nil {
		return err
	}
	return s.writeThreshold(ctx, key, value)
}

func (s *Store) writeThreshold(ctx context.Context, key finco.ThresholdKey, value finco.Money) error {
	sql, args, err := dialect.Insert(tableConfig).Rows(goqu.Record{
		"key":   string(key),
		"value": value.Decimal().String(),
	}).OnConflict(goqu.DoUpdate("key", goqu.Record{
		"value": value.Decimal().String(),
	})).ToSQL()
	if err != nil {
		return err
	}
	if _, err := s.pool.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("pgstore: write threshold: %w", err)
	}
	return nil
}
