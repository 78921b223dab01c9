package modules

import (
	"fmt"
	"log/slog"
)

// Logger records module diagnostics.
type Logger interface {
	Printf(format string, v ...any)
}

// StandardLogger implements Logger on top of slog at debug level.
type StandardLogger struct {
	logger *slog.Logger
}

// NewStandardLogger creates a StandardLogger writing to logger, or to the
// default slog logger when logger is nil.
func NewStandardLogger(logger *slog.Logger) *StandardLogger {
	if logger == nil {
		logger = slog.Default()
	}
	return &StandardLogger{logger: logger}
}

// Printf formats and records a debug message.
func (l *StandardLogger) Printf(format string, v ...any) {
	l.logger.Debug(fmt.Sprintf(format, v...))
}

type discardLogger struct{}

func (discardLogger) Printf(string, ...any) {}
