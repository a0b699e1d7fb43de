package logging

import (
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
)

var (
	// Global logger instance
	Logger *zap.Logger
	Sugar  *zap.SugaredLogger
)

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // "debug", "info", "warn", "error"
	Format string // "json", "console"
}

// Initialize sets up the global logger based on environment variables
func Initialize() error {
	config := LogConfig{
		Level:  getEnvOrDefault("LOG_LEVEL", "info"),
		Format: getEnvOrDefault("LOG_FORMAT", "console"),
	}

	return InitializeWithConfig(config)
}

// InitializeWithConfig sets up the global logger with provided configuration
func InitializeWithConfig(config LogConfig) error {
	var zapConfig zap.Config

	switch strings.ToLower(config.Format) {
	case "json":
		zapConfig = zap.NewProductionConfig()
	default:
		zapConfig = zap.NewDevelopmentConfig()
	}

	level, err := zap.ParseAtomicLevel(strings.ToLower(config.Level))
	if err != nil {
		level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	zapConfig.Level = level

	logger, err := zapConfig.Build(zap.AddStacktrace(zap.ErrorLevel))
	if err != nil {
		return err
	}

	Logger = logger
	Sugar = logger.Sugar()

	return nil
}

// Sync flushes any buffered log entries. Sync can fail on some terminals,
// which is not critical, so the error is ignored.
func Sync() {
	if Logger != nil {
		_ = Logger.Sync()
	}
}

// LogPipelineStage logs a conversion stage transition with structured fields
func LogPipelineStage(taskID, stage string, fields ...zap.Field) {
	if Logger == nil {
		return
	}

	baseFields := []zap.Field{
		zap.String("component", "pipeline"),
		zap.String("task_id", taskID),
		zap.String("stage", stage),
	}

	Logger.Info("Pipeline stage", append(baseFields, fields...)...)
}

// LogTTSRequest logs one synthesis round trip
func LogTTSRequest(language string, chars, audioBytes int, elapsed time.Duration) {
	if Logger == nil {
		return
	}

	Logger.Debug("TTS request",
		zap.String("component", "tts"),
		zap.String("language", language),
		zap.Int("chars", chars),
		zap.Int("audio_bytes", audioBytes),
		zap.Duration("elapsed", elapsed),
	)
}

// LogError logs errors with context
func LogError(err error, message string, fields ...zap.Field) {
	if Logger == nil {
		return
	}

	Logger.Error(message, append([]zap.Field{zap.Error(err)}, fields...)...)
}

// getEnvOrDefault gets environment variable or returns default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
