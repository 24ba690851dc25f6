package main

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

// setupStaticFiles serves the built frontend from webDir when it exists.
// Unknown /api paths always get a JSON 404.
func setupStaticFiles(router *gin.Engine, webDir string, logger *slog.Logger) {
	index := filepath.Join(webDir, "index.html")
	_, err := os.Stat(index)
	hasFrontend := err == nil

	if hasFrontend {
		logger.Info("photoprep: serving frontend", "dir", webDir)
		router.Static("/static", filepath.Join(webDir, "static"))
		router.StaticFile("/", index)
	} else {
		logger.Info("photoprep: no frontend found, API only", "dir", webDir)
	}

	router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api") {
			c.JSON(http.StatusNotFound, gin.H{"error": "API endpoint not found"})
			return
		}
		if !hasFrontend {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}
		// SPA routing
		c.File(index)
	})
}
