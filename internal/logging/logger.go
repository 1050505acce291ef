package logging

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strings"

	"github.com/Cmaury/Meeting-Summary-Automation/internal/model"
)

// Standard attribute keys
const (
	FieldComponent = "component"
	FieldMeeting   = "meeting"
	FieldStage     = "stage"
	FieldWindow    = "window"
	FieldPair      = "pair"
	FieldRunID     = "run_id"
)

// Options describes logger construction parameters.
type Options struct {
	Level  string
	Format string    // text, json
	Writer io.Writer // defaults to stderr
}

// New constructs a slog logger using the provided options.
func New(opts Options) (*slog.Logger, error) {
	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}

	handlerOpts := &slog.HandlerOptions{Level: parseLevel(opts.Level)}

	switch strings.ToLower(strings.TrimSpace(opts.Format)) {
	case "", "text", "console":
		return slog.New(slog.NewTextHandler(w, handlerOpts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, handlerOpts)), nil
	default:
		return nil, fmt.Errorf("log format: unsupported value %q", opts.Format)
	}
}

// NewFromConfig creates a logger from the logging section of the config.
func NewFromConfig(cfg model.LoggingConfig, w io.Writer) (*slog.Logger, error) {
	return New(Options{Level: cfg.Level, Format: cfg.Format, Writer: w})
}

// NewNop returns a logger that drops everything.
func NewNop() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(math.MaxInt)}))
}

// NewComponentLogger tags logger with a component attribute.
// A nil logger yields a no-op logger.
func NewComponentLogger(logger *slog.Logger, component string) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	return logger.With(slog.String(FieldComponent, component))
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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
