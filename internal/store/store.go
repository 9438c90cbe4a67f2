// Package store persists batch-run trial results in a SQLite database,
// one row per completed trial.
package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"vsearch/internal/search"
)

const runsDDL = `CREATE TABLE IF NOT EXISTS runs (
  id TEXT PRIMARY KEY,
  condition TEXT,
  seed INTEGER,
  target_present INTEGER,
  found INTEGER,
  correct INTEGER,
  iterations INTEGER,
  num_items INTEGER,
  num_attended INTEGER,
  num_eye_movements INTEGER,
  num_auto_rejections INTEGER,
  created_at TEXT
)`

const runsIndexDDL = `CREATE INDEX IF NOT EXISTS idx_runs_condition ON runs(condition)`

// Store wraps the results database.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) a results database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening results database: %w", err)
	}
	// SQLite doesn't support concurrent writes
	db.SetMaxOpenConns(1)

	for _, ddl := range []string{runsDDL, runsIndexDDL} {
		if _, err := db.Exec(ddl); err != nil {
			db.Close()
			return nil, fmt.Errorf("initializing results schema: %w", err)
		}
	}
	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// InsertRun records one completed trial under a condition label. A fresh run
// id is generated and returned.
func (s *Store) InsertRun(condition string, seed int64, res search.Result) (string, error) {
	id := uuid.NewString()
	_, err := s.db.Exec(`INSERT INTO runs
  (id, condition, seed, target_present, found, correct, iterations,
   num_items, num_attended, num_eye_movements, num_auto_rejections, created_at)
  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, condition, seed,
		boolToInt(res.TargetPresent), boolToInt(res.Found), boolToInt(res.Correct),
		res.Iterations, res.NumItems, res.NumAttended, res.NumEyeMovements, res.NumAutoRejections,
		time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return "", fmt.Errorf("inserting run: %w", err)
	}
	return id, nil
}

// Summary aggregates all recorded runs of one condition.
type Summary struct {
	Condition      string  `json:"condition"`
	Runs           int     `json:"runs"`
	Accuracy       float64 `json:"accuracy"`
	FoundRate      float64 `json:"found_rate"`
	MeanIterations float64 `json:"mean_iterations"`
	MeanAttended   float64 `json:"mean_attended"`
}

// Summarize computes the aggregate statistics for a condition.
func (s *Store) Summarize(condition string) (Summary, error) {
	row := s.db.QueryRow(`SELECT COUNT(*),
  COALESCE(AVG(correct), 0), COALESCE(AVG(found), 0),
  COALESCE(AVG(iterations), 0), COALESCE(AVG(num_attended), 0)
  FROM runs WHERE condition = ?`, condition)

	sum := Summary{Condition: condition}
	if err := row.Scan(&sum.Runs, &sum.Accuracy, &sum.FoundRate, &sum.MeanIterations, &sum.MeanAttended); err != nil {
		return Summary{}, fmt.Errorf("summarizing condition %q: %w", condition, err)
	}
	return sum, nil
}

// Conditions lists the distinct condition labels recorded so far.
func (s *Store) Conditions() ([]string, error) {
	rows, err := s.db.Query(`SELECT DISTINCT condition FROM runs ORDER BY condition`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
