package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// History backends
const (
	HistoryMemory   = "memory"
	HistoryPostgres = "postgres"
)

// Config holds all configuration for the application
type Config struct {
	PostgreSQL PostgreSQLConfig
	Server     ServerConfig
	Engine     EngineConfig
	History    HistoryConfig
	Logging    LoggingConfig
}

// PostgreSQLConfig holds PostgreSQL database configuration
type PostgreSQLConfig struct {
	DSN                string // full connection string, preferred when set
	Host               string
	Port               int
	User               string
	Password           string
	Database           string
	SSLMode            string
	MaxConnections     int
	MaxIdleConnections int
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port           int
	Host           string
	GinMode        string
	AllowedOrigins string
	AllowedMethods string
	AllowedHeaders string
	WebDir         string
}

// EngineConfig holds classifier and admission thresholds
type EngineConfig struct {
	MinConfidence      float64
	PriorityConfidence float64
	RoomScoreFloor     float64
	RoomMarginRatio    float64
}

// HistoryConfig selects where analyses and room counts are kept
type HistoryConfig struct {
	Backend      string
	SimilarLimit int
	AutoMigrate  bool
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string
	Format string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (optional)
	_ = godotenv.Load()

	cfg := &Config{
		PostgreSQL: PostgreSQLConfig{
			DSN:                getEnv("DATABASE_URL", getEnv("POSTGRESQL_URI", getEnv("PG_DSN", ""))),
			Host:               getEnv("PG_HOST", "localhost"),
			Port:               getEnvAsInt("PG_PORT", 5432),
			User:               getEnv("PG_USER", "postgres"),
			Password:           getEnv("PG_PASSWORD", ""),
			Database:           getEnv("PG_DATABASE", "photo_prep"),
			SSLMode:            getEnv("PG_SSLMODE", "disable"),
			MaxConnections:     getEnvAsInt("PG_MAX_CONNECTIONS", 25),
			MaxIdleConnections: getEnvAsInt("PG_MAX_IDLE_CONNECTIONS", 5),
		},
		Server: ServerConfig{
			Port:           getEnvAsInt("SERVER_PORT", 8080),
			Host:           getEnv("SERVER_HOST", "0.0.0.0"),
			GinMode:        getEnv("GIN_MODE", "release"),
			AllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
			AllowedMethods: getEnv("CORS_ALLOWED_METHODS", "GET,POST,OPTIONS"),
			AllowedHeaders: getEnv("CORS_ALLOWED_HEADERS", "Content-Type,Authorization"),
			WebDir:         getEnv("WEB_DIR", "./web"),
		},
		Engine: EngineConfig{
			MinConfidence:      getEnvAsFloat("ENGINE_MIN_CONFIDENCE", 0.15),
			PriorityConfidence: getEnvAsFloat("ENGINE_PRIORITY_CONFIDENCE", 0.12),
			RoomScoreFloor:     getEnvAsFloat("ENGINE_ROOM_SCORE_FLOOR", 5),
			RoomMarginRatio:    getEnvAsFloat("ENGINE_ROOM_MARGIN_RATIO", 1.5),
		},
		History: HistoryConfig{
			Backend:      strings.ToLower(getEnv("HISTORY_BACKEND", HistoryMemory)),
			SimilarLimit: getEnvAsInt("HISTORY_SIMILAR_LIMIT", 5),
			AutoMigrate:  getEnvAsBool("HISTORY_AUTO_MIGRATE", true),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate rejects settings the engine cannot work with
func (c *Config) Validate() error {
	if c.Engine.MinConfidence < 0 || c.Engine.MinConfidence > 1 {
		return fmt.Errorf("ENGINE_MIN_CONFIDENCE must be within [0,1], got %v", c.Engine.MinConfidence)
	}
	if c.Engine.PriorityConfidence < 0 || c.Engine.PriorityConfidence > c.Engine.MinConfidence {
		return fmt.Errorf("ENGINE_PRIORITY_CONFIDENCE must be within [0,%v], got %v", c.Engine.MinConfidence, c.Engine.PriorityConfidence)
	}
	if c.Engine.RoomScoreFloor <= 0 {
		return fmt.Errorf("ENGINE_ROOM_SCORE_FLOOR must be positive, got %v", c.Engine.RoomScoreFloor)
	}
	if c.Engine.RoomMarginRatio < 1 {
		return fmt.Errorf("ENGINE_ROOM_MARGIN_RATIO must be at least 1, got %v", c.Engine.RoomMarginRatio)
	}
	switch c.History.Backend {
	case HistoryMemory, HistoryPostgres:
	default:
		return fmt.Errorf("HISTORY_BACKEND must be %q or %q, got %q", HistoryMemory, HistoryPostgres, c.History.Backend)
	}
	if c.History.SimilarLimit <= 0 {
		return fmt.Errorf("HISTORY_SIMILAR_LIMIT must be positive, got %d", c.History.SimilarLimit)
	}
	return nil
}

// GetPostgreSQLDSN returns PostgreSQL connection string
func (c *Config) GetPostgreSQLDSN() string {
	if c.PostgreSQL.DSN != "" {
		return c.PostgreSQL.DSN
	}

	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.PostgreSQL.Host,
		c.PostgreSQL.Port,
		c.PostgreSQL.User,
		c.PostgreSQL.Password,
		c.PostgreSQL.Database,
		c.PostgreSQL.SSLMode,
	)
}

// SplitList splits a comma separated setting, dropping blanks
func SplitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Helper functions

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer value for %s, using default %d", key, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Printf("Warning: Invalid float value for %s, using default %f", key, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid boolean value for %s, using default %t", key, defaultValue)
		return defaultValue
	}
	return value
}
