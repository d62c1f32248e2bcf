// Package config loads tasker settings from the environment.
package config

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMySQL  = "mysql"
)

// Config holds application configuration.
type Config struct {
	// Storage
	TaskFile     string
	Backend      string
	DSN          string
	SnapshotPath string

	// Web
	Port string

	// Logging
	LogLevel  string
	LogFormat string
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		TaskFile:     getEnv("TASKER_FILE", "my_tasks.txt"),
		Backend:      strings.ToLower(getEnv("TASKER_BACKEND", BackendFile)),
		DSN:          getEnv("TASKER_DSN", ".tasker/tasker.db"),
		SnapshotPath: getEnv("TASKER_SNAPSHOT", ""),
		Port:         getEnv("TASKER_PORT", "8000"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		LogFormat:    getEnv("LOG_FORMAT", "text"),
	}

	return cfg, nil
}

// IsDatabase reports whether tasks live in a SQL database.
func (c *Config) IsDatabase() bool {
	return c.Backend == BackendSQLite || c.Backend == BackendMySQL
}

// NewLogger builds the process logger. Logs go to w (normally stderr) so that
// stdout only carries command output.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(c.LogLevel)}
	if strings.EqualFold(c.LogFormat, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
