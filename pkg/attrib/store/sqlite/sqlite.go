package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cognicore/attrib/pkg/attrib/internalerr"
	"github.com/cognicore/attrib/pkg/attrib/store"
)

// sqliteStore implements the Store interface using SQLite
// timeLayout is fixed width so started_at sorts lexically in time order.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

type sqliteStore struct {
	db *sql.DB
}

// OpenSQLite opens a SQLite database with WAL mode enabled and creates the
// schema when missing.
func OpenSQLite(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}

	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	started_at TEXT NOT NULL,
	folder TEXT,
	works TEXT,
	translators TEXT,
	min_words INTEGER,
	splits INTEGER,
	repeats INTEGER,
	seed INTEGER
);

CREATE TABLE IF NOT EXISTS outcomes (
	run_id TEXT NOT NULL,
	seq INTEGER NOT NULL,
	extractor_set TEXT NOT NULL,
	dimension TEXT NOT NULL,
	precision REAL,
	recall REAL,
	f1 REAL,
	samples INTEGER,
	features INTEGER,
	folds INTEGER,
	error TEXT,
	PRIMARY KEY(run_id, seq),
	FOREIGN KEY(run_id) REFERENCES runs(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_outcomes_set ON outcomes(extractor_set, dimension);
`

	_, err := db.ExecContext(ctx, schema)
	return err
}

// SaveRun inserts or replaces a run
func (s *sqliteStore) SaveRun(ctx context.Context, r store.Run) error {
	if r.ID == "" {
		return fmt.Errorf("%w: run id is required", internalerr.ErrInvalidInput)
	}
	works, err := json.Marshal(r.Works)
	if err != nil {
		return err
	}
	translators, err := json.Marshal(r.Translators)
	if err != nil {
		return err
	}

	const stmt = `
INSERT INTO runs (id, started_at, folder, works, translators, min_words, splits, repeats, seed)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	started_at=excluded.started_at,
	folder=excluded.folder,
	works=excluded.works,
	translators=excluded.translators,
	min_words=excluded.min_words,
	splits=excluded.splits,
	repeats=excluded.repeats,
	seed=excluded.seed;
`
	_, err = s.db.ExecContext(ctx, stmt,
		r.ID,
		r.StartedAt.UTC().Format(timeLayout),
		r.Folder,
		string(works),
		string(translators),
		r.MinWords,
		r.Splits,
		r.Repeats,
		r.Seed,
	)
	return err
}

// GetRun retrieves a run by ID
func (s *sqliteStore) GetRun(ctx context.Context, id string) (store.Run, bool, error) {
	row := s.db.QueryRowContext(ctx, `
SELECT id, started_at, folder, works, translators, min_words, splits, repeats, seed
FROM runs WHERE id = ?`, id)
	r, err := scanRun(row)
	if err == sql.ErrNoRows {
		return store.Run{}, false, nil
	}
	if err != nil {
		return store.Run{}, false, err
	}
	return r, true, nil
}

// RecentRuns returns up to k runs, newest first.
func (s *sqliteStore) RecentRuns(ctx context.Context, k int) ([]store.Run, error) {
	if k <= 0 {
		k = 10
	}
	rows, err := s.db.QueryContext(ctx, `
SELECT id, started_at, folder, works, translators, min_words, splits, repeats, seed
FROM runs ORDER BY started_at DESC, id DESC LIMIT ?`, k)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []store.Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (store.Run, error) {
	var (
		r           store.Run
		startedAt   string
		works       string
		translators string
	)
	if err := sc.Scan(&r.ID, &startedAt, &r.Folder, &works, &translators, &r.MinWords, &r.Splits, &r.Repeats, &r.Seed); err != nil {
		return store.Run{}, err
	}
	t, err := time.Parse(timeLayout, startedAt)
	if err != nil {
		return store.Run{}, fmt.Errorf("parse started_at: %w", err)
	}
	r.StartedAt = t
	if err := json.Unmarshal([]byte(works), &r.Works); err != nil {
		return store.Run{}, fmt.Errorf("decode works: %w", err)
	}
	if err := json.Unmarshal([]byte(translators), &r.Translators); err != nil {
		return store.Run{}, fmt.Errorf("decode translators: %w", err)
	}
	return r, nil
}

// SaveOutcome inserts or replaces an outcome of an existing run
func (s *sqliteStore) SaveOutcome(ctx context.Context, o store.Outcome) error {
	const stmt = `
INSERT INTO outcomes (run_id, seq, extractor_set, dimension, precision, recall, f1, samples, features, folds, error)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(run_id, seq) DO UPDATE SET
	extractor_set=excluded.extractor_set,
	dimension=excluded.dimension,
	precision=excluded.precision,
	recall=excluded.recall,
	f1=excluded.f1,
	samples=excluded.samples,
	features=excluded.features,
	folds=excluded.folds,
	error=excluded.error;
`
	_, err := s.db.ExecContext(ctx, stmt,
		o.RunID, o.Seq, o.Set, o.Dimension,
		o.Precision, o.Recall, o.F1,
		o.Samples, o.Features, o.Folds, o.Err,
	)
	return err
}

// Outcomes returns the outcomes of a run in evaluation order
func (s *sqliteStore) Outcomes(ctx context.Context, runID string) ([]store.Outcome, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT run_id, seq, extractor_set, dimension, precision, recall, f1, samples, features, folds, error
FROM outcomes WHERE run_id = ? ORDER BY seq`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []store.Outcome
	for rows.Next() {
		var o store.Outcome
		if err := rows.Scan(&o.RunID, &o.Seq, &o.Set, &o.Dimension, &o.Precision, &o.Recall, &o.F1,
			&o.Samples, &o.Features, &o.Folds, &o.Err); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}
