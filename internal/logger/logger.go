// Package logger configures the process-wide slog logger.
package logger

import (
	"log/slog"
	"os"
)

var Logger *slog.Logger

// Init sets up the default logger. Debug level when requested or DEBUG=true.
func Init(debug bool) {
	level := slog.LevelInfo
	if debug || os.Getenv("DEBUG") == "true" {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	Logger = slog.New(slog.NewTextHandler(os.Stdout, opts))
	slog.SetDefault(Logger)
}

func Info(msg string, args ...any) {
	slog.Info(msg, args...)
}

func Error(msg string, args ...any) {
	slog.Error(msg, args...)
}

func Debug(msg string, args ...any) {
	slog.Debug(msg, args...)
}

func Warn(msg string, args ...any) {
	slog.Warn(msg, args...)
}

// With returns a child logger carrying the given attrs.
func With(args ...any) *slog.Logger {
	if Logger == nil {
		Init(false)
	}
	return Logger.With(args...)
}
