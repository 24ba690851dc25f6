package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/8kvgxvbj2w-byte/Photo-Prep-App/internal/model"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"github.com/pkg/errors"
)

// Default number of neighbours returned by SimilarAnalyses
const DefaultSimilarLimit = 5

// HistoryStore persists analyses, room counts and item feedback.
// GetAnalysis returns (nil, nil) when the ID is unknown.
type HistoryStore interface {
	IncrementRoomHistory(ctx context.Context, room model.RoomType) error
	RoomHistory(ctx context.Context) ([]model.RoomHistoryEntry, error)
	LogAnalysis(ctx context.Context, record *model.AnalysisRecord) error
	GetAnalysis(ctx context.Context, id string) (*model.AnalysisRecord, error)
	SimilarAnalyses(ctx context.Context, vector []float32, excludeID string, limit int) ([]model.AnalysisRecord, error)
	LogFeedback(ctx context.Context, analysisID, label, action string) error
	FeedbackSummary(ctx context.Context) ([]model.FeedbackCount, error)
}

// ErrAnalysisNotFound is returned when an analysis ID is unknown
var ErrAnalysisNotFound = errors.New("analysis not found")

// AnalysisService runs the classify-then-recommend pipeline and records usage
type AnalysisService struct {
	store        HistoryStore
	classifier   *RoomClassifier
	engine       *RecommendationEngine
	similarLimit int
	logger       *slog.Logger
}

// NewAnalysisService creates a new analysis service
func NewAnalysisService(
	store HistoryStore,
	classifier *RoomClassifier,
	engine *RecommendationEngine,
	similarLimit int,
	logger *slog.Logger,
) *AnalysisService {
	if similarLimit <= 0 {
		similarLimit = DefaultSimilarLimit
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &AnalysisService{
		store:        store,
		classifier:   classifier,
		engine:       engine,
		similarLimit: similarLimit,
		logger:       logger,
	}
}

// AnalysisEventCallback is called for streaming analysis events
type AnalysisEventCallback func(event string, data any) error

// MaxBatchSize caps the number of photos in one batch request
const MaxBatchSize = 50

// Analyze classifies the photo on all detections, recommends on the admitted
// ones and records the result. History failures are logged, not returned.
func (s *AnalysisService) Analyze(ctx context.Context, req *model.AnalyzeRequest) (*model.AnalyzeResponse, error) {
	return s.AnalyzeStream(ctx, req, nil)
}

// AnalyzeStream is Analyze with progress events: "room" once the photo is
// classified and "recommendations" once the list is built. A callback error
// aborts the analysis.
func (s *AnalysisService) AnalyzeStream(ctx context.Context, req *model.AnalyzeRequest, callback AnalysisEventCallback) (*model.AnalyzeResponse, error) {
	startTime := time.Now()
	emit := func(event string, data any) error {
		if callback == nil {
			return nil
		}
		return callback(event, data)
	}

	if err := model.ValidateDetections(req.Detections); err != nil {
		return nil, err
	}

	room := s.classifier.Classify(req.Detections)
	if err := emit("room", room); err != nil {
		return nil, err
	}

	var minConfidence *float64
	if req.Options != nil {
		minConfidence = req.Options.MinConfidence
	}
	eval, err := s.engine.Evaluate(req.Detections, room.Type, minConfidence)
	if err != nil {
		return nil, err
	}
	if err := emit("recommendations", eval.Recommendations); err != nil {
		return nil, err
	}

	took := time.Since(startTime).Milliseconds()
	resp := &model.AnalyzeResponse{
		AnalysisID:      uuid.NewString(),
		Room:            room,
		Recommendations: eval.Recommendations,
		TotalDetected:   len(req.Detections),
		Admitted:        eval.Admitted,
		Took:            took,
	}

	s.logger.Debug("photoprep: analysis complete",
		"analysis_id", resp.AnalysisID,
		"room", room.Type,
		"confidence", room.Confidence,
		"detected", resp.TotalDetected,
		"admitted", resp.Admitted,
		"recommendations", len(resp.Recommendations),
	)

	s.record(ctx, req.Detections, resp)

	return resp, nil
}

// AnalyzeBatch analyzes several photos independently. Results keep the
// request order; a failed photo leaves a nil slot and an error message.
func (s *AnalysisService) AnalyzeBatch(ctx context.Context, reqs []model.AnalyzeRequest) ([]*model.AnalyzeResponse, []string) {
	results := make([]*model.AnalyzeResponse, len(reqs))
	var errs []string

	for i := range reqs {
		resp, err := s.Analyze(ctx, &reqs[i])
		if err != nil {
			errs = append(errs, fmt.Sprintf("photos[%d]: %v", i, err))
			continue
		}
		results[i] = resp
	}

	return results, errs
}

// Classify scores the detections without recommending anything
func (s *AnalysisService) Classify(objects []model.DetectedObject) (model.RoomClassification, error) {
	if err := model.ValidateDetections(objects); err != nil {
		return model.RoomClassification{}, err
	}
	return s.classifier.Classify(objects), nil
}

// Recommend runs the recommendation stage for an already known room.
// An empty room name classifies the detections first.
func (s *AnalysisService) Recommend(objects []model.DetectedObject, roomName string, opts *model.AnalyzeOptions) (*model.RecommendResponse, error) {
	if err := model.ValidateDetections(objects); err != nil {
		return nil, err
	}

	room, err := model.ParseRoomType(roomName)
	if err != nil {
		return nil, err
	}
	if roomName == "" {
		room = s.classifier.Classify(objects).Type
	}

	var minConfidence *float64
	if opts != nil {
		minConfidence = opts.MinConfidence
	}
	eval, err := s.engine.Evaluate(objects, room, minConfidence)
	if err != nil {
		return nil, err
	}

	return &model.RecommendResponse{
		RoomType:        room,
		Recommendations: eval.Recommendations,
	}, nil
}

// record writes the analysis to the history store
func (s *AnalysisService) record(ctx context.Context, objects []model.DetectedObject, resp *model.AnalyzeResponse) {
	if s.store == nil {
		return
	}

	if resp.Room.Type != model.RoomGeneral {
		if err := s.store.IncrementRoomHistory(ctx, resp.Room.Type); err != nil {
			s.logger.Warn("photoprep: failed to update room history", "room", resp.Room.Type, "error", err)
		}
	}

	labels := make(model.JSONArray, len(objects))
	for i, obj := range objects {
		labels[i] = obj.Label
	}

	record := &model.AnalysisRecord{
		ID:              resp.AnalysisID,
		RoomType:        resp.Room.Type,
		RoomConfidence:  resp.Room.Confidence,
		Scores:          model.RoomScores(resp.Room.Scores),
		Labels:          labels,
		Recommendations: model.JSONRecommendations(resp.Recommendations),
		TotalDetected:   resp.TotalDetected,
		Admitted:        resp.Admitted,
		TookMs:          resp.Took,
		ScoreVector:     pgvector.NewVector(resp.Room.ScoreVector()),
		CreatedAt:       time.Now().UTC(),
	}

	if err := s.store.LogAnalysis(ctx, record); err != nil {
		s.logger.Warn("photoprep: failed to log analysis", "analysis_id", resp.AnalysisID, "error", err)
	}
}

// GetAnalysis returns a recorded analysis
func (s *AnalysisService) GetAnalysis(ctx context.Context, id string) (*model.AnalysisRecord, error) {
	record, err := s.store.GetAnalysis(ctx, id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, errors.Wrapf(ErrAnalysisNotFound, "id %s", id)
	}
	return record, nil
}

// SimilarAnalyses returns past analyses whose room scoreboard is closest to
// the given analysis, nearest first.
func (s *AnalysisService) SimilarAnalyses(ctx context.Context, id string) ([]model.AnalysisRecord, error) {
	record, err := s.GetAnalysis(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.store.SimilarAnalyses(ctx, record.ScoreVector.Slice(), record.ID, s.similarLimit)
}

// RoomHistory returns per-room detection counts and their total
func (s *AnalysisService) RoomHistory(ctx context.Context) ([]model.RoomHistoryEntry, int64, error) {
	rooms, err := s.store.RoomHistory(ctx)
	if err != nil {
		return nil, 0, err
	}
	var total int64
	for _, r := range rooms {
		total += r.Count
	}
	return rooms, total, nil
}

// LogFeedback records what the user did with a recommended item
func (s *AnalysisService) LogFeedback(ctx context.Context, analysisID, label, action string) error {
	if _, err := s.GetAnalysis(ctx, analysisID); err != nil {
		return err
	}
	return s.store.LogFeedback(ctx, analysisID, label, action)
}

// FeedbackSummary aggregates feedback per label and action
func (s *AnalysisService) FeedbackSummary(ctx context.Context) ([]model.FeedbackCount, error) {
	return s.store.FeedbackSummary(ctx)
}
