package handler

import (
	"errors"
	"net/http"

	"github.com/8kvgxvbj2w-byte/Photo-Prep-App/internal/model"
	"github.com/8kvgxvbj2w-byte/Photo-Prep-App/internal/service"

	"github.com/gin-gonic/gin"
)

// statusFor maps service errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, model.ErrInvalidDetection), errors.Is(err, model.ErrUnknownRoomType):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrAnalysisNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err with a status derived from its kind
func respondError(c *gin.Context, prefix string, err error) {
	c.JSON(statusFor(err), gin.H{"error": prefix + ": " + err.Error()})
}
