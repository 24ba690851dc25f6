package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/pgvector/pgvector-go"
)

// AnalysisRecord is one processed photo as kept in the history store
type AnalysisRecord struct {
	ID              string              `json:"id" db:"id"`
	RoomType        RoomType            `json:"room_type" db:"room_type"`
	RoomConfidence  float64             `json:"room_confidence" db:"room_confidence"`
	Scores          RoomScores          `json:"scores" db:"scores"`
	ScoreVector     pgvector.Vector     `json:"-" db:"score_vector"`
	Labels          JSONArray           `json:"labels" db:"labels"`
	Recommendations JSONRecommendations `json:"recommendations" db:"recommendations"`
	TotalDetected   int                 `json:"total_detected" db:"total_detected"`
	Admitted        int                 `json:"admitted" db:"admitted"`
	TookMs          int64               `json:"took_ms" db:"took_ms"`
	Distance        *float64            `json:"distance,omitempty" db:"distance"` // set by similarity queries
	CreatedAt       time.Time           `json:"created_at" db:"created_at"`
}

// RoomHistoryEntry counts how often a room type has been detected
type RoomHistoryEntry struct {
	RoomType   RoomType  `json:"room_type" db:"room_type"`
	Count      int64     `json:"count" db:"count"`
	LastSeenAt time.Time `json:"last_seen_at" db:"last_seen_at"`
}

// FeedbackCount aggregates user feedback per label and action
type FeedbackCount struct {
	Label  string `json:"label" db:"label"`
	Action string `json:"action" db:"action"`
	Count  int64  `json:"count" db:"count"`
}

// JSONArray represents a JSON array field
type JSONArray []string

// Value implements driver.Valuer interface
func (j JSONArray) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

// Scan implements sql.Scanner interface
func (j *JSONArray) Scan(value interface{}) error {
	return scanJSON(value, j)
}

// RoomScores is a per-room scoreboard stored as a JSON object
type RoomScores map[RoomType]float64

// Value implements driver.Valuer interface
func (s RoomScores) Value() (driver.Value, error) {
	if s == nil {
		return nil, nil
	}
	return json.Marshal(s)
}

// Scan implements sql.Scanner interface
func (s *RoomScores) Scan(value interface{}) error {
	return scanJSON(value, s)
}

// JSONRecommendations stores a recommendation list as a JSON array
type JSONRecommendations []Recommendation

// Value implements driver.Valuer interface
func (r JSONRecommendations) Value() (driver.Value, error) {
	if r == nil {
		return nil, nil
	}
	return json.Marshal(r)
}

// Scan implements sql.Scanner interface
func (r *JSONRecommendations) Scan(value interface{}) error {
	return scanJSON(value, r)
}

func scanJSON(value interface{}, dest interface{}) error {
	switch v := value.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, dest)
	case string:
		return json.Unmarshal([]byte(v), dest)
	default:
		return fmt.Errorf("cannot scan %T into %T", value, dest)
	}
}
