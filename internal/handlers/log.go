package handlers

import (
	"context"

	"github.com/serroba/short-links/internal/diagnostics"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogSinkHandler receives diagnostic events and writes them to the local logger.
type LogSinkHandler struct {
	logger *zap.Logger
}

// NewLogSinkHandler creates a new sink handler.
func NewLogSinkHandler(logger *zap.Logger) *LogSinkHandler {
	return &LogSinkHandler{logger: logger.Named("sink")}
}

// Ingest logs the event at its own level. Fatal events are logged at error level.
func (h *LogSinkHandler) Ingest(_ context.Context, req *IngestLogRequest) (*struct{}, error) {
	event := req.Body

	h.logger.Log(zapLevel(event.Level), event.Message,
		zap.String("package", event.Package),
		zap.Time("timestamp", event.Timestamp),
		zap.String("stack", event.Stack),
	)

	return nil, nil
}

func zapLevel(level diagnostics.Level) zapcore.Level {
	switch level {
	case diagnostics.LevelDebug:
		return zapcore.DebugLevel
	case diagnostics.LevelWarn:
		return zapcore.WarnLevel
	case diagnostics.LevelError, diagnostics.LevelFatal:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
