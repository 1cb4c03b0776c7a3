package middlewares

import (
	"github.com/google/uuid"

	"github.com/folio-dev/folio/internal/app"
	"github.com/folio-dev/folio/pkg/logger"
)

const (
	// RequestIDHeader carries the request ID in both directions.
	RequestIDHeader = "X-Request-ID"

	requestIDAttr = "request_id"
)

// RequestID reuses an incoming X-Request-ID or generates a UUID, echoes it
// in the response and makes it available to the logger.
func RequestID() app.Middleware {
	return func(next app.HandlerFunc) app.HandlerFunc {
		return func(c app.Context) error {
			id := c.Header(RequestIDHeader)
			if id == "" || len(id) > 128 {
				id = uuid.NewString()
			}

			c.SetContext(logger.WithValue(c.Request().Context(), requestIDAttr, id))
			c.SetHeader(RequestIDHeader, id)
			return next(c)
		}
	}
}

// GetRequestID returns the ID set by RequestID, or "".
func GetRequestID(c app.Context) string {
	if attr, ok := RequestIDExtractor()(c.Request().Context()); ok {
		return attr.Value.String()
	}
	return ""
}

// RequestIDExtractor adds "request_id" to every log record.
func RequestIDExtractor() logger.ContextExtractor {
	return logger.ValueExtractor(requestIDAttr)
}
