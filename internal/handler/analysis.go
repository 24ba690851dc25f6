package handler

import (
	"fmt"
	"net/http"

	"github.com/8kvgxvbj2w-byte/Photo-Prep-App/internal/model"
	"github.com/8kvgxvbj2w-byte/Photo-Prep-App/internal/service"

	"github.com/gin-gonic/gin"
)

// AnalysisHandler handles photo analysis HTTP requests
type AnalysisHandler struct {
	analysisService *service.AnalysisService
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(analysisService *service.AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{
		analysisService: analysisService,
	}
}

// Analyze handles POST /api/v1/analyze
func (h *AnalysisHandler) Analyze(c *gin.Context) {
	var req model.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	if !validMinConfidence(req.Options) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "options.min_confidence must be within [0,1]"})
		return
	}

	response, err := h.analysisService.Analyze(c.Request.Context(), &req)
	if err != nil {
		respondError(c, "Analysis failed", err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// AnalyzeStream handles POST /api/v1/analyze/stream - SSE streaming analysis
func (h *AnalysisHandler) AnalyzeStream(c *gin.Context) {
	var req model.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	if !validMinConfidence(req.Options) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "options.min_confidence must be within [0,1]"})
		return
	}

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Streaming not supported"})
		return
	}
	setSSEHeaders(c)

	sendSSE(c, "start", map[string]any{"detections": len(req.Detections)})
	flusher.Flush()

	response, err := h.analysisService.AnalyzeStream(c.Request.Context(), &req, func(event string, data any) error {
		sendSSE(c, event, data)
		flusher.Flush()
		return c.Request.Context().Err()
	})
	if err != nil {
		sendSSE(c, "error", map[string]any{"error": err.Error()})
		flusher.Flush()
		return
	}

	sendSSE(c, "result", response)
	sendSSE(c, "done", nil)
	flusher.Flush()
}

// AnalyzeBatch handles POST /api/v1/analyze/batch
func (h *AnalysisHandler) AnalyzeBatch(c *gin.Context) {
	var req model.AnalyzeBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if len(req.Photos) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No photos provided"})
		return
	}
	if len(req.Photos) > service.MaxBatchSize {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("Too many photos: %d, at most %d per batch", len(req.Photos), service.MaxBatchSize),
		})
		return
	}
	for i := range req.Photos {
		if !validMinConfidence(req.Photos[i].Options) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": fmt.Sprintf("photos[%d].options.min_confidence must be within [0,1]", i),
			})
			return
		}
	}

	results, errs := h.analysisService.AnalyzeBatch(c.Request.Context(), req.Photos)

	response := model.AnalyzeBatchResponse{
		Results: results,
		Success: len(req.Photos) - len(errs),
		Failed:  len(errs),
		Errors:  errs,
	}

	if len(errs) > 0 {
		c.JSON(http.StatusPartialContent, response)
	} else {
		c.JSON(http.StatusOK, response)
	}
}

// Classify handles POST /api/v1/classify
func (h *AnalysisHandler) Classify(c *gin.Context) {
	var req model.ClassifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	room, err := h.analysisService.Classify(req.Detections)
	if err != nil {
		respondError(c, "Classification failed", err)
		return
	}

	c.JSON(http.StatusOK, room)
}

// Recommend handles POST /api/v1/recommend
func (h *AnalysisHandler) Recommend(c *gin.Context) {
	var req model.RecommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	if !validMinConfidence(req.Options) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "options.min_confidence must be within [0,1]"})
		return
	}

	response, err := h.analysisService.Recommend(req.Detections, req.RoomType, req.Options)
	if err != nil {
		respondError(c, "Recommendation failed", err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func validMinConfidence(opts *model.AnalyzeOptions) bool {
	if opts == nil || opts.MinConfidence == nil {
		return true
	}
	v := *opts.MinConfidence
	return v >= 0 && v <= 1
}
