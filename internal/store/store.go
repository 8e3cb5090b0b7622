// Package store persists a decoded waveform to SQLite so traces can be
// examined with plain SQL (joins against test logs, aggregate edge counts,
// and so on). The waveform itself never reads back from the database; the
// export is one-way.
package store

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/psurply/dwfv/internal/wave"
)

// Store is the SQLite data access layer for exported waveforms.
type Store struct {
	db *sql.DB
}

// NewStore opens a SQLite database at dbPath with WAL mode enabled.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=30000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Migrate creates the schema. Idempotent.
func (s *Store) Migrate() error {
	_, err := s.db.Exec(schemaDDL)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

const schemaDDL = `
CREATE TABLE IF NOT EXISTS trace (
  id              INTEGER PRIMARY KEY CHECK (id = 1),
  timescale       TEXT NOT NULL,
  end_time        INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS scopes (
  id              INTEGER PRIMARY KEY,
  parent_id       INTEGER REFERENCES scopes(id),
  name            TEXT NOT NULL,
  path            TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS signals (
  id              INTEGER PRIMARY KEY,
  scope_id        INTEGER NOT NULL REFERENCES scopes(id),
  code            TEXT NOT NULL,
  name            TEXT NOT NULL,
  path            TEXT NOT NULL,
  width           INTEGER NOT NULL,
  edge_count      INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS edges (
  signal_id       INTEGER NOT NULL REFERENCES signals(id),
  time            INTEGER NOT NULL,
  value           TEXT NOT NULL,
  PRIMARY KEY (signal_id, time)
);

CREATE INDEX IF NOT EXISTS idx_edges_time ON edges(time);
CREATE INDEX IF NOT EXISTS idx_signals_name ON signals(name);
`

// Export writes the full waveform in a single transaction: the scope tree
// first (parents before children), then signals, then edges. Edge values
// are stored in the fixed-width hex rendering.
func (s *Store) Export(w *wave.Waveform) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("export: begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		`INSERT OR REPLACE INTO trace (id, timescale, end_time) VALUES (1, ?, ?)`,
		w.Timescale().String(), w.End(),
	); err != nil {
		return fmt.Errorf("export: trace row: %w", err)
	}

	insertEdge, err := tx.Prepare(
		`INSERT OR REPLACE INTO edges (signal_id, time, value) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("export: prepare edges: %w", err)
	}
	defer insertEdge.Close()

	scopeIDs := make(map[*wave.Scope]int64)
	exportErr := error(nil)
	w.Root().Walk(func(sc *wave.Scope, _ int) bool {
		var parent any
		if sc.Parent() != nil {
			parent = scopeIDs[sc.Parent()]
		}
		res, err := tx.Exec(
			`INSERT INTO scopes (parent_id, name, path) VALUES (?, ?, ?)`,
			parent, sc.Name, sc.Path(),
		)
		if err != nil {
			exportErr = fmt.Errorf("export: scope %q: %w", sc.Path(), err)
			return false
		}
		id, err := res.LastInsertId()
		if err != nil {
			exportErr = fmt.Errorf("export: scope %q: %w", sc.Path(), err)
			return false
		}
		scopeIDs[sc] = id

		for _, sig := range sc.Signals() {
			res, err := tx.Exec(
				`INSERT INTO signals (scope_id, code, name, path, width, edge_count)
				 VALUES (?, ?, ?, ?, ?, ?)`,
				id, sig.Code, sig.Name, sig.Path(), sig.Width, sig.EdgeCount(),
			)
			if err != nil {
				exportErr = fmt.Errorf("export: signal %q: %w", sig.Path(), err)
				return false
			}
			sigID, err := res.LastInsertId()
			if err != nil {
				exportErr = fmt.Errorf("export: signal %q: %w", sig.Path(), err)
				return false
			}
			for _, e := range sig.Edges() {
				if _, err := insertEdge.Exec(sigID, e.Time, e.Value.Hex()); err != nil {
					exportErr = fmt.Errorf("export: edge %s@%d: %w", sig.Path(), e.Time, err)
					return false
				}
			}
		}
		return true
	})
	if exportErr != nil {
		return exportErr
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("export: commit: %w", err)
	}
	return nil
}

// CountEdges returns the number of exported edges for a signal path, or the
// total across all signals when path is empty.
func (s *Store) CountEdges(path string) (int64, error) {
	var (
		n   int64
		err error
	)
	if path == "" {
		err = s.db.QueryRow(`SELECT COUNT(*) FROM edges`).Scan(&n)
	} else {
		err = s.db.QueryRow(
			`SELECT COUNT(*) FROM edges e
			 JOIN signals s ON s.id = e.signal_id WHERE s.path = ?`, path).Scan(&n)
	}
	if err != nil {
		return 0, fmt.Errorf("count edges: %w", err)
	}
	return n, nil
}

// SignalWidth returns the declared width of an exported signal by path.
func (s *Store) SignalWidth(path string) (int, error) {
	var w int
	err := s.db.QueryRow(`SELECT width FROM signals WHERE path = ?`, path).Scan(&w)
	if err != nil {
		return 0, fmt.Errorf("signal width: %w", err)
	}
	return w, nil
}
