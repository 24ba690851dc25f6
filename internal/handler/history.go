package handler

import (
	"net/http"
	"strings"

	"github.com/8kvgxvbj2w-byte/Photo-Prep-App/internal/model"
	"github.com/8kvgxvbj2w-byte/Photo-Prep-App/internal/service"

	"github.com/gin-gonic/gin"
)

// HistoryHandler serves recorded analyses and room statistics
type HistoryHandler struct {
	analysisService *service.AnalysisService
}

// NewHistoryHandler creates a new history handler
func NewHistoryHandler(analysisService *service.AnalysisService) *HistoryHandler {
	return &HistoryHandler{
		analysisService: analysisService,
	}
}

// RoomHistory handles GET /api/v1/rooms/history
func (h *HistoryHandler) RoomHistory(c *gin.Context) {
	rooms, total, err := h.analysisService.RoomHistory(c.Request.Context())
	if err != nil {
		respondError(c, "Failed to get room history", err)
		return
	}

	c.JSON(http.StatusOK, model.RoomHistoryResponse{
		Rooms: rooms,
		Total: total,
	})
}

// GetAnalysis handles GET /api/v1/analyses/:id
func (h *HistoryHandler) GetAnalysis(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid analysis ID"})
		return
	}

	record, err := h.analysisService.GetAnalysis(c.Request.Context(), id)
	if err != nil {
		respondError(c, "Failed to get analysis", err)
		return
	}

	c.JSON(http.StatusOK, record)
}

// SimilarAnalyses handles GET /api/v1/analyses/:id/similar
func (h *HistoryHandler) SimilarAnalyses(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid analysis ID"})
		return
	}

	results, err := h.analysisService.SimilarAnalyses(c.Request.Context(), id)
	if err != nil {
		respondError(c, "Failed to find similar analyses", err)
		return
	}

	c.JSON(http.StatusOK, model.SimilarAnalysesResponse{
		AnalysisID: id,
		Results:    results,
	})
}
