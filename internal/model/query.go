package model

// AnalyzeRequest represents a full analysis request for one photo
type AnalyzeRequest struct {
	Detections []DetectedObject `json:"detections" binding:"required"`
	Options    *AnalyzeOptions  `json:"options,omitempty"`
}

// AnalyzeOptions tunes the recommendation stage for a single request
type AnalyzeOptions struct {
	MinConfidence *float64 `json:"min_confidence,omitempty"`
}

// AnalyzeResponse represents the result of a full analysis
type AnalyzeResponse struct {
	AnalysisID      string             `json:"analysis_id" yaml:"analysis_id"`
	Room            RoomClassification `json:"room" yaml:"room"`
	Recommendations []Recommendation   `json:"recommendations" yaml:"recommendations"`
	TotalDetected   int                `json:"total_detected" yaml:"total_detected"`
	Admitted        int                `json:"admitted" yaml:"admitted"`
	Took            int64              `json:"took_ms" yaml:"took_ms"`
}

// AnalyzeBatchRequest analyzes several photos of one listing at once
type AnalyzeBatchRequest struct {
	Photos []AnalyzeRequest `json:"photos" binding:"required"`
}

// AnalyzeBatchResponse reports per-photo results of a batch analysis.
// Results keep the request order; failed photos are null.
type AnalyzeBatchResponse struct {
	Results []*AnalyzeResponse `json:"results"`
	Success int                `json:"success"`
	Failed  int                `json:"failed"`
	Errors  []string           `json:"errors,omitempty"`
}

// ClassifyRequest represents a room classification request
type ClassifyRequest struct {
	Detections []DetectedObject `json:"detections" binding:"required"`
}

// RecommendRequest represents a recommendation request for an already classified room
type RecommendRequest struct {
	Detections []DetectedObject `json:"detections" binding:"required"`
	RoomType   string           `json:"room_type"`
	Options    *AnalyzeOptions  `json:"options,omitempty"`
}

// RecommendResponse represents the recommendation list for one photo
type RecommendResponse struct {
	RoomType        RoomType         `json:"room_type"`
	Recommendations []Recommendation `json:"recommendations"`
}

// SimilarAnalysesResponse lists past analyses closest to a given one
type SimilarAnalysesResponse struct {
	AnalysisID string           `json:"analysis_id"`
	Results    []AnalysisRecord `json:"results"`
}

// RoomHistoryResponse lists room detection counts
type RoomHistoryResponse struct {
	Rooms []RoomHistoryEntry `json:"rooms"`
	Total int64              `json:"total"`
}

// FeedbackRequest represents user feedback on a recommended item
type FeedbackRequest struct {
	AnalysisID string `json:"analysis_id" binding:"required"`
	Label      string `json:"label" binding:"required"`
	Action     string `json:"action" binding:"required"` // removed, kept, dismissed
}

// FeedbackResponse represents feedback response
type FeedbackResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// FeedbackSummaryResponse aggregates feedback counts
type FeedbackSummaryResponse struct {
	Items []FeedbackCount `json:"items"`
}
