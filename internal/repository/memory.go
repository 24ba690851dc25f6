package repository

import (
	"context"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/8kvgxvbj2w-byte/Photo-Prep-App/internal/model"
)

// MemoryRepository keeps history in process memory. Used for local runs,
// the CLI and tests.
type MemoryRepository struct {
	mu       sync.RWMutex
	rooms    map[model.RoomType]*model.RoomHistoryEntry
	analyses map[string]*model.AnalysisRecord
	order    []string
	feedback map[feedbackKey]int64
}

type feedbackKey struct {
	label  string
	action string
}

// NewMemoryRepository creates an empty in-memory repository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		rooms:    make(map[model.RoomType]*model.RoomHistoryEntry),
		analyses: make(map[string]*model.AnalysisRecord),
		feedback: make(map[feedbackKey]int64),
	}
}

// IncrementRoomHistory bumps the counter of a room type
func (r *MemoryRepository) IncrementRoomHistory(ctx context.Context, room model.RoomType) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.rooms[room]
	if !ok {
		entry = &model.RoomHistoryEntry{RoomType: room}
		r.rooms[room] = entry
	}
	entry.Count++
	entry.LastSeenAt = time.Now().UTC()
	return nil
}

// RoomHistory returns room counters, most frequent first
func (r *MemoryRepository) RoomHistory(ctx context.Context) ([]model.RoomHistoryEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := make([]model.RoomHistoryEntry, 0, len(r.rooms))
	for _, e := range r.rooms {
		entries = append(entries, *e)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].RoomType < entries[j].RoomType
	})
	return entries, nil
}

// LogAnalysis stores a copy of the record
func (r *MemoryRepository) LogAnalysis(ctx context.Context, record *model.AnalysisRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *record
	if _, exists := r.analyses[record.ID]; !exists {
		r.order = append(r.order, record.ID)
	}
	r.analyses[record.ID] = &stored
	return nil
}

// GetAnalysis returns the record with the given ID, or nil when unknown
func (r *MemoryRepository) GetAnalysis(ctx context.Context, id string) (*model.AnalysisRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.analyses[id]
	if !ok {
		return nil, nil
	}
	out := *record
	return &out, nil
}

// SimilarAnalyses returns the records nearest to vector by L2 distance,
// skipping excludeID. Ties keep insertion order.
func (r *MemoryRepository) SimilarAnalyses(ctx context.Context, vector []float32, excludeID string, limit int) ([]model.AnalysisRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	results := make([]model.AnalysisRecord, 0, len(r.order))
	for _, id := range r.order {
		if id == excludeID {
			continue
		}
		record := *r.analyses[id]
		d := l2Distance(vector, record.ScoreVector.Slice())
		record.Distance = &d
		results = append(results, record)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return *results[i].Distance < *results[j].Distance
	})

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// LogFeedback counts one user action on a label
func (r *MemoryRepository) LogFeedback(ctx context.Context, analysisID, label, action string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.feedback[feedbackKey{label: label, action: action}]++
	return nil
}

// FeedbackSummary returns feedback counts, most frequent first
func (r *MemoryRepository) FeedbackSummary(ctx context.Context) ([]model.FeedbackCount, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	counts := make([]model.FeedbackCount, 0, len(r.feedback))
	for k, n := range r.feedback {
		counts = append(counts, model.FeedbackCount{Label: k.label, Action: k.action, Count: n})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		if counts[i].Label != counts[j].Label {
			return counts[i].Label < counts[j].Label
		}
		return counts[i].Action < counts[j].Action
	})
	return counts, nil
}

// Close is a no-op
func (r *MemoryRepository) Close() error {
	return nil
}

// l2Distance treats missing trailing components as zero
func l2Distance(a, b []float32) float64 {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		var x, y float64
		if i < len(a) {
			x = float64(a[i])
		}
		if i < len(b) {
			y = float64(b[i])
		}
		sum += (x - y) * (x - y)
	}
	return math.Sqrt(sum)
}
