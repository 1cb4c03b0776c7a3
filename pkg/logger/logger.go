package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	sentryslog "github.com/getsentry/sentry-go/slog"
)

// Config holds logger configuration.
type Config struct {
	Output            io.Writer
	Level             string
	SentryDSN         string
	SentryEnvironment string
}

// FlushFunc waits up to timeout for buffered Sentry events to be sent.
type FlushFunc func(timeout time.Duration) bool

// New creates a JSON logger writing to stdout (or cfg.Output) and, when a
// Sentry DSN is configured, to Sentry. If Sentry cannot be initialised the
// logger falls back to stdout only.
func New(cfg Config, extractors ...ContextExtractor) (*slog.Logger, FlushFunc) {
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}
	stdout := slog.NewJSONHandler(out, &slog.HandlerOptions{Level: ParseLevel(cfg.Level)})
	noFlush := func(time.Duration) bool { return true }

	if cfg.SentryDSN == "" {
		return slog.New(NewContextHandler(stdout, extractors...)), noFlush
	}

	env := cfg.SentryEnvironment
	if env == "" {
		env = "production"
	}
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.SentryDSN,
		Environment: env,
		EnableLogs:  true,
	}); err != nil {
		slog.New(stdout).Error("failed to initialize Sentry", slog.String("error", err.Error()))
		return slog.New(NewContextHandler(stdout, extractors...)), noFlush
	}

	toSentry := sentryslog.Option{
		EventLevel: []slog.Level{slog.LevelError},
		LogLevel:   []slog.Level{slog.LevelWarn, slog.LevelError},
	}.NewSentryHandler(context.Background())

	handler := newMultiHandler(stdout, toSentry)
	return slog.New(NewContextHandler(handler, extractors...)), sentry.Flush
}

// ParseLevel maps a level name to a slog.Level. Unknown names mean info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
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

// NewNope creates a logger that discards all output.
func NewNope() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
