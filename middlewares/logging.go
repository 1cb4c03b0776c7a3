package middlewares

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/folio-dev/folio/internal/app"
	"github.com/folio-dev/folio/pkg/logger"
)

// Logging writes one record per request after it completes.
// Health probes are logged at Debug. Log values added by inner layers,
// such as route middleware, are carried on the record.
func Logging() app.Middleware {
	return func(next app.HandlerFunc) app.HandlerFunc {
		return func(c app.Context) error {
			start := time.Now()
			c.SetContext(logger.WithScope(c.Request().Context()))
			err := next(c)

			status := http.StatusOK
			if rw, ok := c.Response().(*app.ResponseWriter); ok {
				status = rw.Status()
			}

			r := c.Request()
			level := slog.LevelInfo
			switch {
			case status >= http.StatusInternalServerError || err != nil:
				level = slog.LevelError
			case status >= http.StatusBadRequest:
				level = slog.LevelWarn
			case strings.HasPrefix(r.URL.Path, "/health/"):
				level = slog.LevelDebug
			}

			attrs := []slog.Attr{
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", status),
				slog.Duration("duration", time.Since(start)),
				slog.Bool("htmx", c.IsHTMX()),
			}
			if err != nil {
				attrs = append(attrs, slog.Any("error", err))
			}
			c.Logger().LogAttrs(r.Context(), level, "request", attrs...)
			return err
		}
	}
}
