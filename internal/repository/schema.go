package repository

import (
	"context"
	"fmt"
)

// schema is applied statement by statement; every statement is idempotent.
var schema = []string{
	`CREATE EXTENSION IF NOT EXISTS vector`,
	`CREATE TABLE IF NOT EXISTS room_history (
		room_type    TEXT PRIMARY KEY,
		count        BIGINT NOT NULL DEFAULT 0,
		last_seen_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS analysis_logs (
		id              TEXT PRIMARY KEY,
		room_type       TEXT NOT NULL,
		room_confidence DOUBLE PRECISION NOT NULL,
		scores          JSONB NOT NULL,
		score_vector    vector(5) NOT NULL,
		labels          JSONB NOT NULL DEFAULT '[]',
		recommendations JSONB NOT NULL DEFAULT '[]',
		total_detected  INTEGER NOT NULL,
		admitted        INTEGER NOT NULL,
		took_ms         BIGINT NOT NULL,
		created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_analysis_logs_room_type ON analysis_logs (room_type)`,
	`CREATE TABLE IF NOT EXISTS item_feedback (
		id          BIGSERIAL PRIMARY KEY,
		analysis_id TEXT NOT NULL REFERENCES analysis_logs (id) ON DELETE CASCADE,
		label       TEXT NOT NULL,
		action      TEXT NOT NULL,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_item_feedback_label ON item_feedback (label, action)`,
}

// EnsureSchema creates the history tables when missing
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	for i, stmt := range schema {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema statement %d: %w", i, err)
		}
	}
	return nil
}
