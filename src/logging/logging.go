// Package logging builds the structured logger of the dashboard. The
// terminal belongs to the screen while the dashboard runs, so records go to
// a rotating file or nowhere.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Format of the log records
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// Config selects the sink and the verbosity of the logger
type Config struct {
	File   string
	Level  string
	Format string

	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// DefaultConfig logs warnings and errors as text, without a file
func DefaultConfig() Config {
	return Config{
		Level:      "warn",
		Format:     string(FormatText),
		MaxSizeMB:  10,
		MaxBackups: 3,
		MaxAgeDays: 7,
	}
}

// ParseLevel converts a level name into a slog level
func ParseLevel(value string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, errors.Errorf("invalid log level: %s", value)
}

// ParseFormat validates a format name
func ParseFormat(value string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(value))) {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	}
	return FormatText, errors.Errorf("invalid log format: %s", value)
}

// Validate reports the first invalid setting
func (c Config) Validate() error {
	if _, err := ParseLevel(c.Level); err != nil {
		return err
	}
	if _, err := ParseFormat(c.Format); err != nil {
		return err
	}
	return nil
}

// New returns the logger described by cfg and a function closing its sink
func New(cfg Config, version string) (*slog.Logger, func() error, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, err
	}
	format, err := ParseFormat(cfg.Format)
	if err != nil {
		return nil, nil, err
	}
	if cfg.File == "" {
		return slog.New(slog.DiscardHandler), func() error { return nil }, nil
	}

	path, err := filepath.Abs(cfg.File)
	if err != nil {
		return nil, nil, errors.Wrap(err, "invalid log file")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, errors.Wrap(err, "failed to create log directory")
	}
	sink := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
	}
	logger := slog.New(newHandler(sink, format, level)).With(
		slog.String("app", "lazydash"),
		slog.String("version", version))
	return logger, sink.Close, nil
}

func newHandler(w io.Writer, format Format, level slog.Level) slog.Handler {
	options := &slog.HandlerOptions{Level: level}
	if format == FormatJSON {
		return slog.NewJSONHandler(w, options)
	}
	return slog.NewTextHandler(w, options)
}
