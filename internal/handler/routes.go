package handler

import (
	"github.com/8kvgxvbj2w-byte/Photo-Prep-App/internal/service"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the API endpoints on the given group
func RegisterRoutes(apiV1 *gin.RouterGroup, analysisService *service.AnalysisService) {
	analysisHandler := NewAnalysisHandler(analysisService)
	historyHandler := NewHistoryHandler(analysisService)
	feedbackHandler := NewFeedbackHandler(analysisService)

	// Analysis endpoints
	apiV1.POST("/analyze", analysisHandler.Analyze)
	apiV1.POST("/analyze/stream", analysisHandler.AnalyzeStream)
	apiV1.POST("/analyze/batch", analysisHandler.AnalyzeBatch)
	apiV1.POST("/classify", analysisHandler.Classify)
	apiV1.POST("/recommend", analysisHandler.Recommend)

	// History endpoints
	apiV1.GET("/rooms/history", historyHandler.RoomHistory)
	apiV1.GET("/analyses/:id", historyHandler.GetAnalysis)
	apiV1.GET("/analyses/:id/similar", historyHandler.SimilarAnalyses)

	// Feedback endpoints
	apiV1.POST("/feedback", feedbackHandler.Submit)
	apiV1.GET("/feedback/summary", feedbackHandler.Summary)
}
