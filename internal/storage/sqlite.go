// Package storage provides SQLite-based persistence for finished runs.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// timeLayout is how created_at is stored; lexical order matches time order.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// Store manages the SQLite database connection for the run log.
type Store struct {
	db *sql.DB
}

// Run is one finished session.
type Run struct {
	ID        string
	Variant   string
	MaxDepth  int
	Levels    int
	Descents  int
	Ascents   int
	Denied    int // Descents refused away from the screen
	Duration  time.Duration
	Seed      int64
	CreatedAt time.Time
}

// VariantStats contains aggregated statistics for a variant.
type VariantStats struct {
	Variant       string
	Runs          int
	DeepestDepth  int
	AvgDepth      float64
	TotalDescents int64
	TotalPlayed   time.Duration
	LastPlayed    time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			variant TEXT NOT NULL,
			max_depth INTEGER NOT NULL DEFAULT 0,
			levels INTEGER NOT NULL DEFAULT 0,
			descents INTEGER NOT NULL DEFAULT 0,
			ascents INTEGER NOT NULL DEFAULT 0,
			denied INTEGER NOT NULL DEFAULT 0,
			duration_secs REAL NOT NULL DEFAULT 0,
			seed INTEGER NOT NULL DEFAULT 0,
			created_at TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_runs_variant ON runs(variant);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(variant, max_depth DESC, duration_secs ASC);
		CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at DESC);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return err
	}
	return s.addColumn("runs", "denied", "INTEGER NOT NULL DEFAULT 0")
}

// addColumn adds a column to logs created before it existed.
func (s *Store) addColumn(table, column, decl string) error {
	rows, err := s.db.Query(`SELECT name FROM pragma_table_info(?)`, table)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return err
		}
		if name == column {
			return nil
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}
	rows.Close()

	_, err = s.db.Exec(fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", table, column, decl))
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun records a finished run and returns its ID.
// A random UUID is assigned when r.ID is empty, and the current time when
// r.CreatedAt is zero.
func (s *Store) SaveRun(r Run) (string, error) {
	if r.Variant == "" {
		return "", errors.New("storage: run has no variant")
	}
	if r.ID == "" {
		r.ID = uuid.NewString()
	} else if _, err := uuid.Parse(r.ID); err != nil {
		return "", fmt.Errorf("storage: invalid run id %q: %w", r.ID, err)
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}

	_, err := s.db.Exec(
		`INSERT INTO runs
		 (id, variant, max_depth, levels, descents, ascents, denied, duration_secs, seed, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID,
		r.Variant,
		r.MaxDepth,
		r.Levels,
		r.Descents,
		r.Ascents,
		r.Denied,
		r.Duration.Seconds(),
		r.Seed,
		r.CreatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save run: %w", err)
	}

	return r.ID, nil
}

const runColumns = `id, variant, max_depth, levels, descents, ascents, denied, duration_secs, seed, created_at`

// TopRuns retrieves the best N runs for the given variant, deepest first and
// fastest among equals. An empty variant covers all variants.
func (s *Store) TopRuns(variant string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE ? = '' OR variant = ?
		 ORDER BY max_depth DESC, duration_secs ASC, created_at ASC
		 LIMIT ?`,
		variant, variant, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	return scanRuns(rows)
}

// RecentRuns retrieves the most recent runs across all variants.
func (s *Store) RecentRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 ORDER BY created_at DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query recent runs: %w", err)
	}
	return scanRuns(rows)
}

// RunByID retrieves a run by its ID. Returns nil if it does not exist.
func (s *Store) RunByID(id string) (*Run, error) {
	rows, err := s.db.Query(`SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run: %w", err)
	}
	runs, err := scanRuns(rows)
	if err != nil || len(runs) == 0 {
		return nil, err
	}
	return &runs[0], nil
}

func scanRuns(rows *sql.Rows) ([]Run, error) {
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var secs float64
		var createdAt string
		if err := rows.Scan(&r.ID, &r.Variant, &r.MaxDepth, &r.Levels, &r.Descents, &r.Ascents, &r.Denied, &secs, &r.Seed, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Duration = time.Duration(secs * float64(time.Second))
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

func parseTime(v string) time.Time {
	t, err := time.Parse(timeLayout, v)
	if err != nil {
		return time.Time{}
	}
	return t
}

// DeepestDepth returns the deepest level reached in the given variant.
// Returns 0 if no runs exist.
func (s *Store) DeepestDepth(variant string) (int, error) {
	var depth sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(max_depth) FROM runs WHERE variant = ?",
		variant,
	).Scan(&depth)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query deepest depth: %w", err)
	}

	if !depth.Valid {
		return 0, nil
	}

	return int(depth.Int64), nil
}

// ClearRuns deletes all runs for the given variant and returns how many
// were removed.
func (s *Store) ClearRuns(variant string) (int64, error) {
	res, err := s.db.Exec("DELETE FROM runs WHERE variant = ?", variant)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot count cleared runs: %w", err)
	}
	return n, nil
}

// VariantStats retrieves aggregated statistics for a specific variant.
func (s *Store) VariantStats(variant string) (*VariantStats, error) {
	stats := &VariantStats{Variant: variant}

	var secs float64
	var lastPlayed sql.NullString
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(max_depth), 0), COALESCE(AVG(max_depth), 0),
		        COALESCE(SUM(descents), 0), COALESCE(SUM(duration_secs), 0), MAX(created_at)
		 FROM runs WHERE variant = ?`,
		variant,
	).Scan(&stats.Runs, &stats.DeepestDepth, &stats.AvgDepth, &stats.TotalDescents, &secs, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get variant stats: %w", err)
	}

	stats.TotalPlayed = time.Duration(secs * float64(time.Second))
	if lastPlayed.Valid {
		stats.LastPlayed = parseTime(lastPlayed.String)
	}

	return stats, nil
}

// AllVariantStats retrieves statistics for every variant that has been played.
func (s *Store) AllVariantStats() (map[string]*VariantStats, error) {
	rows, err := s.db.Query(
		`SELECT variant, COUNT(*), MAX(max_depth), AVG(max_depth), SUM(descents), SUM(duration_secs), MAX(created_at)
		 FROM runs
		 GROUP BY variant`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all variant stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*VariantStats)
	for rows.Next() {
		var vs VariantStats
		var secs float64
		var lastPlayed string
		if err := rows.Scan(&vs.Variant, &vs.Runs, &vs.DeepestDepth, &vs.AvgDepth, &vs.TotalDescents, &secs, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		vs.TotalPlayed = time.Duration(secs * float64(time.Second))
		vs.LastPlayed = parseTime(lastPlayed)
		stats[vs.Variant] = &vs
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}
