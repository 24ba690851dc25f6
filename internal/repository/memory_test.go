package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/8kvgxvbj2w-byte/Photo-Prep-App/internal/model"
	"github.com/pgvector/pgvector-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(id string, vec ...float32) *model.AnalysisRecord {
	return &model.AnalysisRecord{
		ID:          id,
		RoomType:    model.RoomGeneral,
		ScoreVector: pgvector.NewVector(vec),
	}
}

func TestMemoryRepository_RoomHistory(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	require.NoError(t, repo.IncrementRoomHistory(ctx, model.RoomKitchen))
	require.NoError(t, repo.IncrementRoomHistory(ctx, model.RoomBathroom))
	require.NoError(t, repo.IncrementRoomHistory(ctx, model.RoomKitchen))
	require.NoError(t, repo.IncrementRoomHistory(ctx, model.RoomBedroom))

	entries, err := repo.RoomHistory(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, model.RoomKitchen, entries[0].RoomType)
	assert.Equal(t, int64(2), entries[0].Count)
	assert.False(t, entries[0].LastSeenAt.IsZero())
	// Equal counts are ordered by name
	assert.Equal(t, model.RoomBathroom, entries[1].RoomType)
	assert.Equal(t, model.RoomBedroom, entries[2].RoomType)
}

func TestMemoryRepository_GetAnalysis(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	in := record("a", 1, 2, 3, 4, 5)
	require.NoError(t, repo.LogAnalysis(ctx, in))

	// Stored value is a copy
	in.RoomType = model.RoomKitchen

	got, err := repo.GetAnalysis(ctx, "a")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, model.RoomGeneral, got.RoomType)

	missing, err := repo.GetAnalysis(ctx, "b")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestMemoryRepository_SimilarAnalyses(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	require.NoError(t, repo.LogAnalysis(ctx, record("query", 7, 0, 0, 0, 0)))
	require.NoError(t, repo.LogAnalysis(ctx, record("far", 0, 7, 0, 0, 0)))
	require.NoError(t, repo.LogAnalysis(ctx, record("near", 5, 0, 0, 0, 0)))
	require.NoError(t, repo.LogAnalysis(ctx, record("exact", 7, 0, 0, 0, 0)))

	tests := []struct {
		name  string
		limit int
		want  []string
	}{
		{name: "All", limit: 10, want: []string{"exact", "near", "far"}},
		{name: "Limited", limit: 2, want: []string{"exact", "near"}},
		{name: "No limit", limit: 0, want: []string{"exact", "near", "far"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.SimilarAnalyses(ctx, []float32{7, 0, 0, 0, 0}, "query", tt.limit)
			require.NoError(t, err)

			ids := make([]string, len(got))
			for i, r := range got {
				ids[i] = r.ID
				require.NotNil(t, r.Distance)
			}
			assert.Equal(t, tt.want, ids)
		})
	}

	got, err := repo.SimilarAnalyses(ctx, []float32{7, 0, 0, 0, 0}, "query", 1)
	require.NoError(t, err)
	assert.Equal(t, 0.0, *got[0].Distance)
}

func TestMemoryRepository_Feedback(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	for _, fb := range []struct{ label, action string }{
		{"cup", "kept"},
		{"bottle", "removed"},
		{"cup", "removed"},
		{"bottle", "removed"},
		{"cup", "removed"},
	} {
		require.NoError(t, repo.LogFeedback(ctx, "a", fb.label, fb.action))
	}

	summary, err := repo.FeedbackSummary(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.FeedbackCount{
		{Label: "bottle", Action: "removed", Count: 2},
		{Label: "cup", Action: "removed", Count: 2},
		{Label: "cup", Action: "kept", Count: 1},
	}, summary)
}

func TestMemoryRepository_ConcurrentWrites(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = repo.IncrementRoomHistory(ctx, model.RoomKitchen)
			_ = repo.LogAnalysis(ctx, record(fmt.Sprintf("id-%d", i), float32(i)))
		}(i)
	}
	wg.Wait()

	entries, err := repo.RoomHistory(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(50), entries[0].Count)

	similar, err := repo.SimilarAnalyses(ctx, []float32{0}, "", 100)
	require.NoError(t, err)
	assert.Len(t, similar, 50)
}

func TestL2Distance(t *testing.T) {
	assert.Equal(t, 5.0, l2Distance([]float32{3, 4}, []float32{0, 0}))
	assert.Equal(t, 5.0, l2Distance([]float32{3, 4}, nil))
	assert.Equal(t, 0.0, l2Distance(nil, nil))
}
