package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/8kvgxvbj2w-byte/Photo-Prep-App/internal/model"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pgvector/pgvector-go"
)

// PostgresRepository handles database operations
type PostgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(dsn string, maxConn, maxIdleConn int) (*PostgresRepository, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(maxConn)
	db.SetMaxIdleConns(maxIdleConn)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(2 * time.Minute)

	// Test connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresRepository{db: db}, nil
}

// NewPostgresRepositoryFromDB wraps an existing connection
func NewPostgresRepositoryFromDB(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Close closes the database connection
func (r *PostgresRepository) Close() error {
	return r.db.Close()
}

// IncrementRoomHistory bumps the counter of a room type
func (r *PostgresRepository) IncrementRoomHistory(ctx context.Context, room model.RoomType) error {
	query := `
		INSERT INTO room_history (room_type, count, last_seen_at)
		VALUES ($1, 1, NOW())
		ON CONFLICT (room_type)
		DO UPDATE SET count = room_history.count + 1, last_seen_at = NOW()
	`
	if _, err := r.db.ExecContext(ctx, query, room); err != nil {
		return fmt.Errorf("failed to update room history: %w", err)
	}
	return nil
}

// RoomHistory returns room counters, most frequent first
func (r *PostgresRepository) RoomHistory(ctx context.Context) ([]model.RoomHistoryEntry, error) {
	query := `
		SELECT room_type, count, last_seen_at
		FROM room_history
		ORDER BY count DESC, room_type
	`
	entries := []model.RoomHistoryEntry{}
	if err := r.db.SelectContext(ctx, &entries, query); err != nil {
		return nil, fmt.Errorf("failed to fetch room history: %w", err)
	}
	return entries, nil
}

// LogAnalysis stores one processed photo
func (r *PostgresRepository) LogAnalysis(ctx context.Context, record *model.AnalysisRecord) error {
	query := `
		INSERT INTO analysis_logs (
			id, room_type, room_confidence, scores, score_vector, labels,
			recommendations, total_detected, admitted, took_ms, created_at
		) VALUES (
			:id, :room_type, :room_confidence, :scores, :score_vector, :labels,
			:recommendations, :total_detected, :admitted, :took_ms, :created_at
		)
	`
	if _, err := r.db.NamedExecContext(ctx, query, record); err != nil {
		return fmt.Errorf("failed to log analysis: %w", err)
	}
	return nil
}

const analysisColumns = `
	id, room_type, room_confidence, scores, score_vector, labels,
	recommendations, total_detected, admitted, took_ms, created_at
`

// GetAnalysis retrieves a single analysis by its ID
func (r *PostgresRepository) GetAnalysis(ctx context.Context, id string) (*model.AnalysisRecord, error) {
	var record model.AnalysisRecord
	query := `SELECT ` + analysisColumns + ` FROM analysis_logs WHERE id = $1`

	err := r.db.GetContext(ctx, &record, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get analysis: %w", err)
	}
	return &record, nil
}

// SimilarAnalyses returns the analyses whose room scoreboard is nearest to
// vector by L2 distance, using the pgvector <-> operator.
func (r *PostgresRepository) SimilarAnalyses(ctx context.Context, vector []float32, excludeID string, limit int) ([]model.AnalysisRecord, error) {
	query := `
		SELECT ` + analysisColumns + `,
			score_vector <-> $1 AS distance
		FROM analysis_logs
		WHERE id <> $2
		ORDER BY distance, created_at
		LIMIT $3
	`
	records := []model.AnalysisRecord{}
	err := r.db.SelectContext(ctx, &records, query, pgvector.NewVector(vector), excludeID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch similar analyses: %w", err)
	}
	return records, nil
}

// LogFeedback logs what the user did with a recommended item
func (r *PostgresRepository) LogFeedback(ctx context.Context, analysisID, label, action string) error {
	query := `
		INSERT INTO item_feedback (analysis_id, label, action)
		VALUES ($1, $2, $3)
	`
	_, err := r.db.ExecContext(ctx, query, analysisID, label, action)
	if err != nil {
		return fmt.Errorf("failed to log feedback: %w", err)
	}
	return nil
}

// FeedbackSummary aggregates feedback per label and action
func (r *PostgresRepository) FeedbackSummary(ctx context.Context) ([]model.FeedbackCount, error) {
	query := `
		SELECT label, action, COUNT(*) AS count
		FROM item_feedback
		GROUP BY label, action
		ORDER BY count DESC, label, action
	`
	counts := []model.FeedbackCount{}
	if err := r.db.SelectContext(ctx, &counts, query); err != nil {
		return nil, fmt.Errorf("failed to fetch feedback summary: %w", err)
	}
	return counts, nil
}
