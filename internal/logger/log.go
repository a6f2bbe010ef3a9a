// Package logger configures the process-wide slog logger.
package logger

import (
	"io"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/terraincognita07/courtlog/internal/config"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Init installs a JSON slog handler writing to stdout and/or a rotating file
// and returns the writer so other middleware can share the sink.
func Init(cfg config.LogConfig) io.Writer {
	writer := Writer(cfg)
	handler := slog.NewJSONHandler(writer, &slog.HandlerOptions{Level: ParseLevel(cfg.Level)})
	slog.SetDefault(slog.New(handler))
	slog.Info("logger initialized", "level", cfg.Level, "file", cfg.File)
	return writer
}

func Writer(cfg config.LogConfig) io.Writer {
	var writers []io.Writer
	if cfg.Console {
		writers = append(writers, os.Stdout)
	}
	if cfg.File != "" {
		writers = append(writers, &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			LocalTime:  true,
		})
	}
	if len(writers) == 0 {
		writers = append(writers, os.Stdout)
	}
	return io.MultiWriter(writers...)
}

// StdLogger adapts the default slog handler for libraries that want a *log.Logger.
func StdLogger(level slog.Level) *log.Logger {
	return slog.NewLogLogger(slog.Default().Handler(), level)
}

func ParseLevel(raw string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
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
