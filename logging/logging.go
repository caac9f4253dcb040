package logging

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Output formats.
const (
	FormatJSON = "json"
	FormatText = "text"
)

// ErrUnknownLevel is returned by ValidateLevel for unrecognised level names.
var ErrUnknownLevel = errors.New("unknown log level")

// ErrUnknownFormat is returned by ValidateFormat for unrecognised format names.
var ErrUnknownFormat = errors.New("unknown log format")

// LoggerConfig holds configuration for the logger.
type LoggerConfig struct {
	Level  string
	Format string
}

// NewLogger creates a slog.Logger writing to w.
// Format selects the JSON or text handler, JSON when empty or unknown.
// The level defaults to INFO when empty or unknown.
func NewLogger(config LoggerConfig, w io.Writer) *slog.Logger {
	options := &slog.HandlerOptions{
		Level: ParseLevel(config.Level),
	}

	if strings.EqualFold(config.Format, FormatText) {
		return slog.New(slog.NewTextHandler(w, options))
	}

	return slog.New(slog.NewJSONHandler(w, options))
}

// ParseLevel maps a level name to a slog.Level, INFO when the name is unknown.
func ParseLevel(level string) slog.Level {
	parsed, err := lookupLevel(level)
	if err != nil {
		return slog.LevelInfo
	}

	return parsed
}

// ValidateLevel reports whether level names a known level. Empty is accepted.
func ValidateLevel(level string) error {
	_, err := lookupLevel(level)

	return err
}

// ValidateFormat reports whether format names a known output format. Empty is accepted.
func ValidateFormat(format string) error {
	switch strings.ToLower(format) {
	case "", FormatJSON, FormatText:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

func lookupLevel(level string) (slog.Level, error) {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return slog.LevelDebug, nil
	case "", "INFO":
		return slog.LevelInfo, nil
	case "WARN", "WARNING":
		return slog.LevelWarn, nil
	case "ERROR":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("%w: %q", ErrUnknownLevel, level)
	}
}
