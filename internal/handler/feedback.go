package handler

import (
	"net/http"

	"github.com/8kvgxvbj2w-byte/Photo-Prep-App/internal/model"
	"github.com/8kvgxvbj2w-byte/Photo-Prep-App/internal/service"

	"github.com/gin-gonic/gin"
)

// FeedbackHandler handles feedback-related HTTP requests
type FeedbackHandler struct {
	analysisService *service.AnalysisService
}

// NewFeedbackHandler creates a new feedback handler
func NewFeedbackHandler(analysisService *service.AnalysisService) *FeedbackHandler {
	return &FeedbackHandler{
		analysisService: analysisService,
	}
}

var validActions = map[string]bool{
	"removed":   true,
	"kept":      true,
	"dismissed": true,
}

// Submit handles POST /api/v1/feedback
func (h *FeedbackHandler) Submit(c *gin.Context) {
	var req model.FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if !validActions[req.Action] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid action. Must be one of: removed, kept, dismissed"})
		return
	}

	err := h.analysisService.LogFeedback(c.Request.Context(), req.AnalysisID, req.Label, req.Action)
	if err != nil {
		respondError(c, "Failed to log feedback", err)
		return
	}

	c.JSON(http.StatusOK, model.FeedbackResponse{
		Success: true,
		Message: "Feedback logged successfully",
	})
}

// Summary handles GET /api/v1/feedback/summary
func (h *FeedbackHandler) Summary(c *gin.Context) {
	items, err := h.analysisService.FeedbackSummary(c.Request.Context())
	if err != nil {
		respondError(c, "Failed to get feedback summary", err)
		return
	}

	c.JSON(http.StatusOK, model.FeedbackSummaryResponse{Items: items})
}
