package middlewares_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/folio-dev/folio/internal/app"
	"github.com/folio-dev/folio/middlewares"
	"github.com/folio-dev/folio/pkg/logger"
)

type routesFunc func(r app.Router)

func (f routesFunc) Routes(r app.Router) { f(r) }

func newLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(logger.NewContextHandler(
		slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}),
		middlewares.RequestIDExtractor(),
	))
}

func records(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var rec map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &rec))
		out = append(out, rec)
	}
	return out
}

func TestRecover(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	var handled error
	a := app.New(
		app.WithLogger(newLogger(&buf)),
		app.WithMiddleware(middlewares.Recover()),
		app.WithErrorHandler(func(c app.Context, err error) error {
			handled = err
			return c.String(http.StatusInternalServerError, "oops")
		}),
		app.WithHandlers(routesFunc(func(r app.Router) {
			r.GET("/panic", func(app.Context) error { panic("kaboom") })
			r.GET("/ok", func(c app.Context) error { return c.String(http.StatusOK, "fine") })
		})),
	)

	w := httptest.NewRecorder()
	a.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	pe, ok := middlewares.AsPanicError(handled)
	require.True(t, ok)
	assert.Equal(t, "kaboom", pe.Value)
	assert.NotEmpty(t, pe.Stack)
	assert.Contains(t, buf.String(), "panic recovered")

	w = httptest.NewRecorder()
	a.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))
	assert.Equal(t, "fine", w.Body.String())
}

func TestRequestID(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	var seen string
	a := app.New(
		app.WithLogger(newLogger(&buf)),
		app.WithMiddleware(middlewares.RequestID()),
		app.WithHandlers(routesFunc(func(r app.Router) {
			r.GET("/", func(c app.Context) error {
				seen = middlewares.GetRequestID(c)
				c.LogInfo("handled")
				return c.NoContent(http.StatusNoContent)
			})
		})),
	)

	t.Run("generates a uuid", func(t *testing.T) {
		buf.Reset()
		w := httptest.NewRecorder()
		a.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		id := w.Header().Get(middlewares.RequestIDHeader)
		_, err := uuid.Parse(id)
		require.NoError(t, err)
		assert.Equal(t, id, seen)

		recs := records(t, &buf)
		require.Len(t, recs, 1)
		assert.Equal(t, id, recs[0]["request_id"])
	})

	t.Run("reuses incoming header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(middlewares.RequestIDHeader, "upstream-123")
		w := httptest.NewRecorder()
		a.ServeHTTP(w, req)

		assert.Equal(t, "upstream-123", w.Header().Get(middlewares.RequestIDHeader))
		assert.Equal(t, "upstream-123", seen)
	})

	t.Run("replaces oversized header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(middlewares.RequestIDHeader, strings.Repeat("x", 200))
		w := httptest.NewRecorder()
		a.ServeHTTP(w, req)

		_, err := uuid.Parse(w.Header().Get(middlewares.RequestIDHeader))
		assert.NoError(t, err)
	})
}

func TestLogging(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	a := app.New(
		app.WithLogger(newLogger(&buf)),
		app.WithMiddleware(middlewares.RequestID(), middlewares.Logging()),
		app.WithHealthChecks(),
		app.WithHandlers(routesFunc(func(r app.Router) {
			r.POST("/contact/{id}/submit", func(c app.Context) error {
				return c.String(http.StatusUnprocessableEntity, "missing")
			})
		})),
	)

	a.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/contact/x/submit", nil))
	a.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health/live", nil))

	recs := records(t, &buf)
	require.Len(t, recs, 2)

	assert.Equal(t, "WARN", recs[0]["level"])
	assert.Equal(t, "/contact/x/submit", recs[0]["path"])
	assert.EqualValues(t, http.StatusUnprocessableEntity, recs[0]["status"])
	assert.NotEmpty(t, recs[0]["request_id"])

	assert.Equal(t, "DEBUG", recs[1]["level"])
	assert.Equal(t, "/health/live", recs[1]["path"])
}

func TestLogging_CarriesRouteLogValues(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := slog.New(logger.NewContextHandler(
		slog.NewJSONHandler(&buf, nil),
		middlewares.RequestIDExtractor(),
		logger.ValueExtractor("surface_id"),
	))
	a := app.New(
		app.WithLogger(log),
		app.WithMiddleware(middlewares.RequestID(), middlewares.Logging()),
		app.WithHandlers(routesFunc(func(r app.Router) {
			r.Route("/contact/{id}", func(r app.Router) {
				r.Use(func(next app.HandlerFunc) app.HandlerFunc {
					return func(c app.Context) error {
						c.SetContext(logger.WithValue(c.Request().Context(), "surface_id", c.Param("id")))
						return next(c)
					}
				})
				r.POST("/open", func(c app.Context) error {
					return c.String(http.StatusOK, "open")
				})
			})
		})),
	)

	a.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/contact/abc/open", nil))

	recs := records(t, &buf)
	require.Len(t, recs, 1)
	assert.Equal(t, "request", recs[0]["msg"])
	assert.Equal(t, "abc", recs[0]["surface_id"])
	assert.NotEmpty(t, recs[0]["request_id"])
}
