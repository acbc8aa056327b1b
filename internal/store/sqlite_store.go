package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	_ "github.com/asg017/sqlite-vec-go-bindings/ncruces"
	"github.com/google/uuid"
	_ "github.com/ncruces/go-sqlite3/driver"
)

// SQLiteStore is the SQLite-backed data store.
// Safe for concurrent use; sweeps save runs from several goroutines.
type SQLiteStore struct {
	mu sync.RWMutex
	db *sql.DB
}

// schema defines the run and scene tables.
const schema = `
CREATE TABLE IF NOT EXISTS runs (
    id TEXT PRIMARY KEY,
    corpus TEXT NOT NULL,
    rule TEXT NOT NULL,
    params TEXT NOT NULL DEFAULT '{}',
    scene_count INTEGER NOT NULL DEFAULT 0,
    act_budget INTEGER NOT NULL DEFAULT 0,
    created_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_runs_corpus ON runs(corpus, created_at);

-- Scenes of a run, in stream order
-- Note: No foreign keys - DeleteRun removes scenes in the same transaction
CREATE TABLE IF NOT EXISTS scenes (
    run_id TEXT NOT NULL,
    seq INTEGER NOT NULL,
    act INTEGER NOT NULL DEFAULT -1,
    location TEXT NOT NULL DEFAULT '',
    locations TEXT NOT NULL DEFAULT '[]',
    characters TEXT NOT NULL DEFAULT '[]',
    content TEXT NOT NULL,
    summary TEXT NOT NULL,
    lines INTEGER NOT NULL DEFAULT 0,
    PRIMARY KEY (run_id, seq)
);
`

// NewSQLiteStore creates a new in-memory SQLite store.
func NewSQLiteStore() (*SQLiteStore, error) {
	return NewSQLiteStoreWithDSN(":memory:")
}

// NewSQLiteStoreWithDSN creates a store with a specific data source name.
// Use ":memory:" for in-memory or a file path for persistent storage.
func NewSQLiteStoreWithDSN(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// One connection keeps ":memory:" databases alive and shared.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// =============================================================================
// Run CRUD
// =============================================================================

// CreateRun stores a run and its scenes in one transaction. A missing ID or
// timestamp is generated.
func (s *SQLiteStore) CreateRun(run *Run, scenes []*SceneRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prepareRun(run, scenes)

	params, err := json.Marshal(run.Params)
	if err != nil {
		return fmt.Errorf("failed to marshal params: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`
		INSERT INTO runs (id, corpus, rule, params, scene_count, act_budget, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, run.ID, run.Corpus, run.Rule, string(params), run.SceneCount, run.ActBudget, run.CreatedAt); err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO scenes (run_id, seq, act, location, locations, characters, content, summary, lines)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, rec := range scenes {
		locations, err := json.Marshal(nonNil(rec.Locations))
		if err != nil {
			return fmt.Errorf("failed to marshal locations: %w", err)
		}
		characters, err := json.Marshal(nonNil(rec.Characters))
		if err != nil {
			return fmt.Errorf("failed to marshal characters: %w", err)
		}
		content, err := json.Marshal(rec.Content)
		if err != nil {
			return fmt.Errorf("failed to marshal content: %w", err)
		}
		if _, err := stmt.Exec(rec.RunID, rec.Seq, rec.Act, rec.Location, string(locations),
			string(characters), string(content), rec.Summary, rec.Lines); err != nil {
			return fmt.Errorf("failed to insert scene %d: %w", rec.Seq, err)
		}
	}

	return tx.Commit()
}

// GetRun retrieves a run by ID. It returns nil, nil when the run is unknown.
func (s *SQLiteStore) GetRun(id string) (*Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(`
		SELECT id, corpus, rule, params, scene_count, act_budget, created_at
		FROM runs WHERE id = ?
	`, id)

	run, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return run, nil
}

// ListRuns returns runs oldest first, optionally filtered by corpus.
func (s *SQLiteStore) ListRuns(corpus string) ([]*Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var rows *sql.Rows
	var err error

	if corpus != "" {
		rows, err = s.db.Query(`
			SELECT id, corpus, rule, params, scene_count, act_budget, created_at
			FROM runs WHERE corpus = ? ORDER BY created_at, id
		`, corpus)
	} else {
		rows, err = s.db.Query(`
			SELECT id, corpus, rule, params, scene_count, act_budget, created_at
			FROM runs ORDER BY created_at, id
		`)
	}

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

// DeleteRun removes a run and its scenes.
func (s *SQLiteStore) DeleteRun(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM scenes WHERE run_id = ?", id); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM runs WHERE id = ?", id); err != nil {
		return err
	}
	return tx.Commit()
}

// CountRuns returns the total number of runs.
func (s *SQLiteStore) CountRuns() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM runs").Scan(&count)
	return count, err
}

// =============================================================================
// Scenes
// =============================================================================

// ListScenes returns the scenes of a run in stream order.
func (s *SQLiteStore) ListScenes(runID string) ([]*SceneRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT run_id, seq, act, location, locations, characters, content, summary, lines
		FROM scenes WHERE run_id = ? ORDER BY seq
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var scenes []*SceneRecord
	for rows.Next() {
		var rec SceneRecord
		var locations, characters, content string

		if err := rows.Scan(
			&rec.RunID, &rec.Seq, &rec.Act, &rec.Location, &locations,
			&characters, &content, &rec.Summary, &rec.Lines,
		); err != nil {
			return nil, err
		}

		if err := json.Unmarshal([]byte(locations), &rec.Locations); err != nil {
			return nil, fmt.Errorf("scene %d locations: %w", rec.Seq, err)
		}
		if len(rec.Locations) == 0 {
			rec.Locations = nil
		}
		if err := json.Unmarshal([]byte(characters), &rec.Characters); err != nil {
			return nil, fmt.Errorf("scene %d characters: %w", rec.Seq, err)
		}
		if err := json.Unmarshal([]byte(content), &rec.Content); err != nil {
			return nil, fmt.Errorf("scene %d content: %w", rec.Seq, err)
		}

		scenes = append(scenes, &rec)
	}

	return scenes, rows.Err()
}

// AssignActs records the act of every scene of a run. acts[i] is the act of
// scene i, as returned by act.Index.
func (s *SQLiteStore) AssignActs(runID string, budget int, acts []int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int
	err := s.db.QueryRow("SELECT scene_count FROM runs WHERE id = ?", runID).Scan(&count)
	if err == sql.ErrNoRows {
		return fmt.Errorf("run %s not found", runID)
	}
	if err != nil {
		return err
	}
	if count != len(acts) {
		return fmt.Errorf("run %s has %d scenes, got %d act assignments", runID, count, len(acts))
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare("UPDATE scenes SET act = ? WHERE run_id = ? AND seq = ?")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for seq, a := range acts {
		if _, err := stmt.Exec(a, runID, seq); err != nil {
			return err
		}
	}
	if _, err := tx.Exec("UPDATE runs SET act_budget = ? WHERE id = ?", budget, runID); err != nil {
		return err
	}
	return tx.Commit()
}

// =============================================================================
// Helpers
// =============================================================================

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*Run, error) {
	var run Run
	var params string

	if err := row.Scan(
		&run.ID, &run.Corpus, &run.Rule, &params,
		&run.SceneCount, &run.ActBudget, &run.CreatedAt,
	); err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(params), &run.Params); err != nil || run.Params == nil {
		run.Params = map[string]int{}
	}
	return &run, nil
}

func prepareRun(run *Run, scenes []*SceneRecord) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt == 0 {
		run.CreatedAt = time.Now().UnixMilli()
	}
	if run.Params == nil {
		run.Params = map[string]int{}
	}
	run.SceneCount = len(scenes)
	for _, rec := range scenes {
		rec.RunID = run.ID
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// Compile-time interface check
var _ Storer = (*SQLiteStore)(nil)
