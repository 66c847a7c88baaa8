// Package index persists the bindings made by analysis runs in SQLite, so
// that runs can be listed and their symbols queried afterwards.
package index

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/funvibe/cadenza/internal/report"
)

const driverName = "sqlite"

// Run is one recorded analysis run.
type Run struct {
	ID         uuid.UUID
	RecordedAt time.Time
	Bindings   int
}

// Store is a symbol index backed by a SQLite file.
type Store struct {
	db  *sql.DB
	log *zap.Logger
	now func() time.Time
}

type Option func(*Store)

func WithLogger(log *zap.Logger) Option {
	return func(s *Store) { s.log = log }
}

// Open opens or creates the index at path and applies pending migrations.
func Open(ctx context.Context, path string, opts ...Option) (*Store, error) {
	db, err := sql.Open(driverName, path)
	if err != nil {
		return nil, fmt.Errorf("opening index %s: %w", path, err)
	}
	// A single connection keeps pragmas and in-memory databases consistent.
	db.SetMaxOpenConns(1)

	s := &Store{db: db, log: zap.NewNop(), now: time.Now}
	for _, opt := range opts {
		opt(s)
	}

	if _, err := db.ExecContext(ctx, `PRAGMA foreign_keys = ON`); err != nil {
		db.Close()
		return nil, fmt.Errorf("opening index %s: %w", path, err)
	}

	source, err := fs.Sub(migrations, "migrations")
	if err != nil {
		db.Close()
		return nil, err
	}
	if err := s.migrate(ctx, source); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating index %s: %w", path, err)
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Record stores the bindings of one run. Recording the same run twice is
// an error.
func (s *Store) Record(ctx context.Context, runID uuid.UUID, bindings []report.Binding) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO runs (run_id, recorded_at) VALUES (?, ?)`,
		runID.String(), s.now().UnixNano()); err != nil {
		return fmt.Errorf("recording run %s: %w", runID, err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO bindings (run_id, seq, name, kind, type, scope_level) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, b := range bindings {
		if _, err := stmt.ExecContext(ctx, runID.String(), b.Seq, b.Name, b.Kind, b.Type, b.ScopeLevel); err != nil {
			return fmt.Errorf("recording binding %q: %w", b.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	s.log.Debug("Recorded run", zap.Stringer("run_id", runID), zap.Int("bindings", len(bindings)))
	return nil
}

// Bindings returns the bindings of a run in binding order.
func (s *Store) Bindings(ctx context.Context, runID uuid.UUID) ([]report.Binding, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT seq, name, kind, type, scope_level FROM bindings WHERE run_id = ? ORDER BY seq`,
		runID.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []report.Binding
	for rows.Next() {
		var b report.Binding
		if err := rows.Scan(&b.Seq, &b.Name, &b.Kind, &b.Type, &b.ScopeLevel); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// Runs lists every recorded run, oldest first.
func (s *Store) Runs(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT r.run_id, r.recorded_at, COUNT(b.seq)
		FROM runs r LEFT JOIN bindings b ON b.run_id = r.run_id
		GROUP BY r.run_id, r.recorded_at
		ORDER BY r.recorded_at, r.run_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var (
			id    string
			nanos int64
			run   Run
		)
		if err := rows.Scan(&id, &nanos, &run.Bindings); err != nil {
			return nil, err
		}
		if run.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("run %q: %w", id, err)
		}
		run.RecordedAt = time.Unix(0, nanos)
		out = append(out, run)
	}
	return out, rows.Err()
}

// Lookup returns every binding of name across all runs, newest run first.
func (s *Store) Lookup(ctx context.Context, name string) ([]report.Binding, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT b.seq, b.name, b.kind, b.type, b.scope_level
		FROM bindings b JOIN runs r ON r.run_id = b.run_id
		WHERE b.name = ?
		ORDER BY r.recorded_at DESC, b.seq`, name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []report.Binding
	for rows.Next() {
		var b report.Binding
		if err := rows.Scan(&b.Seq, &b.Name, &b.Kind, &b.Type, &b.ScopeLevel); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (s *Store) userVersion(ctx context.Context) (int, error) {
	var v int
	if err := s.db.QueryRowContext(ctx, `PRAGMA user_version`).Scan(&v); err != nil {
		return 0, err
	}
	return v, nil
}

func (s *Store) execTrans(ctx context.Context, stmt string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, stmt); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}
