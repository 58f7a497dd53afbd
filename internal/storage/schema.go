package storage

import (
	"database/sql"
	"fmt"

	"codehealth/internal/logging"
)

const currentSchemaVersion = 1

func (db *DB) initializeSchema() error {
	return db.WithTx(func(tx *sql.Tx) error {
		statements := []string{
			`CREATE TABLE IF NOT EXISTS schema_version (
				version INTEGER NOT NULL
			)`,
			`CREATE TABLE IF NOT EXISTS churn_snapshots (
				head TEXT NOT NULL,
				period_days INTEGER NOT NULL,
				created_at TEXT NOT NULL,
				payload TEXT NOT NULL,
				PRIMARY KEY (head, period_days)
			)`,
			`CREATE TABLE IF NOT EXISTS analysis_runs (
				run_id TEXT PRIMARY KEY,
				head TEXT NOT NULL,
				created_at TEXT NOT NULL,
				file_count INTEGER NOT NULL,
				warning_count INTEGER NOT NULL
			)`,
		}
		for _, stmt := range statements {
			if _, err := tx.Exec(stmt); err != nil {
				return fmt.Errorf("failed to create table: %w", err)
			}
		}
		if _, err := tx.Exec("INSERT INTO schema_version (version) VALUES (?)", currentSchemaVersion); err != nil {
			return fmt.Errorf("failed to set schema version: %w", err)
		}
		return nil
	})
}

func (db *DB) runMigrations() error {
	var version int
	err := db.conn.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&version)
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	if version == currentSchemaVersion {
		return nil
	}

	db.logger.Info("migrating cache database", logging.Fields{
		"fromVersion": version,
		"toVersion":   currentSchemaVersion,
	})

	// Migrations are applied sequentially as the schema evolves.
	return nil
}
