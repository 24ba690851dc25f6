package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/8kvgxvbj2w-byte/Photo-Prep-App/internal/config"
	"github.com/8kvgxvbj2w-byte/Photo-Prep-App/internal/handler"
	"github.com/8kvgxvbj2w-byte/Photo-Prep-App/internal/logging"
	"github.com/8kvgxvbj2w-byte/Photo-Prep-App/internal/repository"
	"github.com/8kvgxvbj2w-byte/Photo-Prep-App/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

const shutdownTimeout = 10 * time.Second

// historyStore is what the server needs from a history backend
type historyStore interface {
	service.HistoryStore
	Close() error
}

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("photoprep: failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := logging.Setup(cfg.Logging)
	logger.Info("photoprep: starting",
		"version", Version,
		"build_time", BuildTime,
		"git_commit", GitCommit,
	)

	// Set Gin mode
	gin.SetMode(cfg.Server.GinMode)

	store, err := openHistoryStore(cfg, logger)
	if err != nil {
		logger.Error("photoprep: failed to open history store", "backend", cfg.History.Backend, "error", err)
		os.Exit(1)
	}
	defer store.Close()

	// Initialize services
	rules := service.DefaultRuleSet()
	classifier := service.NewRoomClassifier(rules, cfg.Engine.RoomScoreFloor, cfg.Engine.RoomMarginRatio)
	engine := service.NewRecommendationEngine(rules,
		service.NewConfidenceFilter(rules, cfg.Engine.MinConfidence, cfg.Engine.PriorityConfidence))
	analysisService := service.NewAnalysisService(store, classifier, engine, cfg.History.SimilarLimit, logger)

	logger.Info("photoprep: services initialized",
		"rules_version", rules.Version,
		"min_confidence", cfg.Engine.MinConfidence,
		"priority_confidence", cfg.Engine.PriorityConfidence,
	)

	// Setup Gin router
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(logger))

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = config.SplitList(cfg.Server.AllowedOrigins)
	corsConfig.AllowMethods = config.SplitList(cfg.Server.AllowedMethods)
	corsConfig.AllowHeaders = config.SplitList(cfg.Server.AllowedHeaders)
	router.Use(cors.New(corsConfig))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":          "healthy",
			"service":         "photo-prep",
			"history_backend": cfg.History.Backend,
			"rules_version":   rules.Version,
			"version":         Version,
		})
	})

	// Version endpoint
	router.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"version":    Version,
			"build_time": BuildTime,
			"git_commit": GitCommit,
		})
	})

	handler.RegisterRoutes(router.Group("/api/v1"), analysisService)

	setupStaticFiles(router, cfg.Server.WebDir, logger)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		logger.Info("photoprep: listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("photoprep: server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("photoprep: shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("photoprep: forced shutdown", "error", err)
	}
	logger.Info("photoprep: server stopped")
}

func openHistoryStore(cfg *config.Config, logger *slog.Logger) (historyStore, error) {
	if cfg.History.Backend != config.HistoryPostgres {
		logger.Info("photoprep: using in-memory history")
		return repository.NewMemoryRepository(), nil
	}

	repo, err := repository.NewPostgresRepository(
		cfg.GetPostgreSQLDSN(),
		cfg.PostgreSQL.MaxConnections,
		cfg.PostgreSQL.MaxIdleConnections,
	)
	if err != nil {
		return nil, err
	}

	if cfg.History.AutoMigrate {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := repo.EnsureSchema(ctx); err != nil {
			repo.Close()
			return nil, err
		}
	}

	logger.Info("photoprep: connected to PostgreSQL", "auto_migrate", cfg.History.AutoMigrate)
	return repo, nil
}

// requestLogger logs one line per request through slog
func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("photoprep: request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"took_ms", time.Since(start).Milliseconds(),
		)
	}
}
