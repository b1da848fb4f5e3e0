package storage

import (
	"fmt"
	"time"
)

// Run outcomes.
const (
	OutcomeCompleted = "completed" // ran the requested number of steps
	OutcomeGameOver  = "game_over"
	OutcomeAborted   = "aborted"
)

// RunRecord is the summary of one headless or interactive simulation run.
type RunRecord struct {
	ID              int64
	GameID          string
	Seed            int64
	Ticks           uint64
	Score           int
	BodiesRemaining int
	StateHash       uint64
	Outcome         string
	CreatedAt       time.Time
}

// SaveRun records a simulation run. Returns the ID of the inserted record.
func (s *Store) SaveRun(run RunRecord) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO runs (game_id, seed, ticks, score, bodies_remaining, state_hash, outcome)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.GameID,
		run.Seed,
		int64(run.Ticks), //#nosec G115 -- tick counts stay far below 2^63
		run.Score,
		run.BodiesRemaining,
		fmt.Sprintf("%016x", run.StateHash),
		run.Outcome,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RecentRuns retrieves the most recent runs, newest first.
// An empty gameID returns runs for every game.
func (s *Store) RecentRuns(gameID string, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, game_id, seed, ticks, score, bodies_remaining, state_hash, outcome, created_at
		 FROM runs
		 WHERE ? = '' OR game_id = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		gameID, gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		var r RunRecord
		var ticks int64
		var hash string
		var createdAt any
		if err := rows.Scan(&r.ID, &r.GameID, &r.Seed, &ticks, &r.Score, &r.BodiesRemaining, &hash, &r.Outcome, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Ticks = uint64(ticks) //#nosec G115 -- stored from a uint64
		if hash != "" {
			if _, err := fmt.Sscanf(hash, "%x", &r.StateHash); err != nil {
				return nil, fmt.Errorf("storage: bad state hash %q: %w", hash, err)
			}
		}
		r.CreatedAt = parseTimestamp(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}
