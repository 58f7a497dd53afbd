package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"codehealth/internal/gitdata"
)

// ChurnStore caches churn snapshots keyed by HEAD and period so
// repeated runs against an unchanged repository skip the git log pass.
type ChurnStore struct {
	db *DB
}

// NewChurnStore creates a store backed by db.
func NewChurnStore(db *DB) *ChurnStore {
	return &ChurnStore{db: db}
}

// Get returns the cached snapshot for head and periodDays, or nil when
// no entry exists.
func (s *ChurnStore) Get(head string, periodDays int) (*gitdata.Snapshot, error) {
	var payload string
	err := s.db.conn.QueryRow(
		"SELECT payload FROM churn_snapshots WHERE head = ? AND period_days = ?",
		head, periodDays,
	).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query churn snapshot: %w", err)
	}

	snap := &gitdata.Snapshot{}
	if err := json.Unmarshal([]byte(payload), snap); err != nil {
		return nil, fmt.Errorf("failed to decode churn snapshot: %w", err)
	}
	return snap, nil
}

// Put stores a snapshot, replacing any existing entry for the same
// HEAD and period.
func (s *ChurnStore) Put(snap *gitdata.Snapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to encode churn snapshot: %w", err)
	}

	return s.db.WithTx(func(tx *sql.Tx) error {
		_, err := tx.Exec(
			`INSERT OR REPLACE INTO churn_snapshots (head, period_days, created_at, payload)
			 VALUES (?, ?, ?, ?)`,
			snap.Head, snap.PeriodDays, time.Now().UTC().Format(time.RFC3339), string(payload),
		)
		return err
	})
}

// RecordRun stores summary metadata for a completed analysis run.
func (s *ChurnStore) RecordRun(runID, head string, fileCount, warningCount int) error {
	return s.db.WithTx(func(tx *sql.Tx) error {
		_, err := tx.Exec(
			`INSERT INTO analysis_runs (run_id, head, created_at, file_count, warning_count)
			 VALUES (?, ?, ?, ?, ?)`,
			runID, head, time.Now().UTC().Format(time.RFC3339), fileCount, warningCount,
		)
		return err
	})
}
