// Package log configures the application-wide slog logger and allows
// passing request-scoped loggers through a context.
package log

import (
	"context"
	"log/slog"
	"os"
)

// Debug is set by the CLI before InitializeDefaultLogger is called.
var Debug bool

type loggerCtxKey struct{}

// InitializeDefaultLogger sets the default slog logger. The log level
// depends on the Debug variable.
func InitializeDefaultLogger() {
	level := slog.LevelInfo
	if Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
}

func ContextWithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerCtxKey{}, logger)
}

func LoggerFromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerCtxKey{}).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}
