package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Options controls the log level and the optional rotated file sink.
type Options struct {
	Level string
	File  string
}

// New constructs a JSON slog logger writing to stdout and, when a file is configured, to a rotated log file.
func New(opts Options) *slog.Logger {
	level := opts.Level
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		level = v
	}
	var out io.Writer = os.Stdout
	if file := strings.TrimSpace(opts.File); file != "" {
		out = io.MultiWriter(os.Stdout, newRotator(file))
	}
	handler := slog.NewJSONHandler(out, &slog.HandlerOptions{Level: parseLevel(level)})
	return slog.New(handler).With("service", "smart-wardrobe")
}

func newRotator(path string) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10, // megabytes
		MaxBackups: 5,
		MaxAge:     30, // days
		Compress:   true,
	}
}

func parseLevel(level string) slog.Leveler {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
