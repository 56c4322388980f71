// Package store keeps a history of solved runs in a SQLite database
// (pure-Go modernc.org/sqlite driver, no cgo).
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	_ "modernc.org/sqlite"

	"github.com/katalvlaran/kmst"
	"github.com/katalvlaran/kmst/core"
)

// ErrNotFound is returned by GetRun for an unknown run id.
var ErrNotFound = errors.New("store: run not found")

// Run is one persisted solution.
type Run struct {
	RunID          string
	Network        string // kmst.NetworkID of the solved node set
	K              int
	N              int
	Status         kmst.Status
	Cost           float64
	Gap            float64 // NaN when the solver reported none
	Bound          float64
	Nodes          []int
	Edges          []core.Arc
	CandidateEdges int
	SolverNodes    int
	Elapsed        time.Duration
	CreatedAt      time.Time
}

// Store wraps the database handle.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens (creating if needed) the database at path and applies the
// schema. Use ":memory:" for a throwaway store.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// One connection keeps ":memory:" databases alive across calls.
	db.SetMaxOpenConns(1)

	s := &Store{db: db, now: time.Now}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return s, nil
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		run_id TEXT PRIMARY KEY,
		network TEXT NOT NULL DEFAULT '',
		k INTEGER NOT NULL,
		n INTEGER NOT NULL,
		status TEXT NOT NULL,
		cost REAL NOT NULL,
		gap REAL,
		bound REAL,
		nodes JSON NOT NULL,
		edges JSON NOT NULL,
		candidate_edges INTEGER NOT NULL DEFAULT 0,
		solver_nodes INTEGER NOT NULL DEFAULT 0,
		elapsed_ns INTEGER NOT NULL DEFAULT 0,
		created_at INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_k ON runs(k);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return err
	}

	// Databases written before runs were keyed by network lack the column.
	var has int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM pragma_table_info('runs') WHERE name = 'network'`).Scan(&has)
	if err != nil {
		return err
	}
	if has == 0 {
		if _, err = s.db.Exec(`ALTER TABLE runs ADD COLUMN network TEXT NOT NULL DEFAULT ''`); err != nil {
			return err
		}
	}
	_, err = s.db.Exec(`CREATE INDEX IF NOT EXISTS idx_runs_network_k ON runs(network, k)`)

	return err
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveSolution inserts sol; saving the same run id twice replaces the row.
func (s *Store) SaveSolution(ctx context.Context, sol *kmst.Solution) error {
	if sol == nil || sol.RunID == "" {
		return fmt.Errorf("store: solution without run id")
	}
	nodes, err := json.Marshal(orEmpty(sol.Nodes))
	if err != nil {
		return fmt.Errorf("failed to marshal nodes: %w", err)
	}
	edges, err := json.Marshal(orEmpty(sol.Edges))
	if err != nil {
		return fmt.Errorf("failed to marshal edges: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO runs
			(run_id, network, k, n, status, cost, gap, bound, nodes, edges,
			 candidate_edges, solver_nodes, elapsed_ns, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sol.RunID, sol.Network, sol.K, sol.N, string(sol.Status), sol.Cost,
		nullFloat(sol.Gap), nullFloat(sol.Bound), string(nodes), string(edges),
		sol.CandidateEdges, sol.SolverNodes, int64(sol.Elapsed), s.now().UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("failed to save run %s: %w", sol.RunID, err)
	}

	return nil
}

const selectRun = `
	SELECT run_id, network, k, n, status, cost, gap, bound, nodes, edges,
	       candidate_edges, solver_nodes, elapsed_ns, created_at
	FROM runs`

// GetRun loads one run by id.
func (s *Store) GetRun(ctx context.Context, id string) (*Run, error) {
	row := s.db.QueryRowContext(ctx, selectRun+` WHERE run_id = ?`, id)
	r, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}

	return r, nil
}

// ListRuns returns the most recent runs first; limit ≤ 0 returns all.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]*Run, error) {
	query := selectRun + ` ORDER BY created_at DESC, rowid DESC`
	args := []interface{}{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	return s.query(ctx, query, args...)
}

// CostCurve returns, for every k stored for network, the cheapest
// non-infeasible run. An empty network selects the network of the most
// recent run; an empty store yields an empty curve.
func (s *Store) CostCurve(ctx context.Context, network string) ([]*Run, error) {
	if network == "" {
		err := s.db.QueryRowContext(ctx, `SELECT network FROM runs ORDER BY created_at DESC, rowid DESC LIMIT 1`).
			Scan(&network)
		if err == sql.ErrNoRows {
			return []*Run{}, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to find latest network: %w", err)
		}
	}
	runs, err := s.query(ctx, selectRun+` WHERE network = ? AND status != ? ORDER BY k ASC, cost ASC, created_at ASC`,
		network, string(kmst.StatusInfeasible))
	if err != nil {
		return nil, err
	}

	curve := make([]*Run, 0, len(runs))
	for _, r := range runs {
		if len(curve) == 0 || curve[len(curve)-1].K != r.K {
			curve = append(curve, r)
		}
	}

	return curve, nil
}

func (s *Store) query(ctx context.Context, query string, args ...interface{}) ([]*Run, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}

	return runs, rows.Err()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRun(sc scanner) (*Run, error) {
	var (
		r            Run
		status       string
		gap, bound   sql.NullFloat64
		nodes, edges string
		elapsed, ts  int64
	)
	err := sc.Scan(&r.RunID, &r.Network, &r.K, &r.N, &status, &r.Cost, &gap, &bound, &nodes, &edges,
		&r.CandidateEdges, &r.SolverNodes, &elapsed, &ts)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}

		return nil, fmt.Errorf("failed to scan run: %w", err)
	}
	if err := json.Unmarshal([]byte(nodes), &r.Nodes); err != nil {
		return nil, fmt.Errorf("failed to unmarshal nodes of %s: %w", r.RunID, err)
	}
	if err := json.Unmarshal([]byte(edges), &r.Edges); err != nil {
		return nil, fmt.Errorf("failed to unmarshal edges of %s: %w", r.RunID, err)
	}
	r.Status = kmst.Status(status)
	r.Gap = fromNull(gap)
	r.Bound = fromNull(bound)
	r.Elapsed = time.Duration(elapsed)
	r.CreatedAt = time.Unix(0, ts)

	return &r, nil
}

func nullFloat(f float64) sql.NullFloat64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return sql.NullFloat64{}
	}

	return sql.NullFloat64{Float64: f, Valid: true}
}

func fromNull(f sql.NullFloat64) float64 {
	if !f.Valid {
		return math.NaN()
	}

	return f.Float64
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}

	return s
}
