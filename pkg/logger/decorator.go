package logger

import (
	"context"
	"log/slog"
	"sync"
)

// ContextExtractor extracts a slog attribute from context.
type ContextExtractor func(ctx context.Context) (slog.Attr, bool)

// ContextHandler wraps a slog.Handler and adds attributes taken from the
// record's context. Extraction runs on every call so request-scoped values
// are always current.
type ContextHandler struct {
	next       slog.Handler
	extractors []ContextExtractor
}

// NewContextHandler wraps next with the given extractors. Nil extractors
// are ignored.
func NewContextHandler(next slog.Handler, extractors ...ContextExtractor) slog.Handler {
	h := &ContextHandler{next: next}
	for _, ex := range extractors {
		if ex != nil {
			h.extractors = append(h.extractors, ex)
		}
	}
	return h
}

func (h *ContextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *ContextHandler) Handle(ctx context.Context, rec slog.Record) error {
	for _, ex := range h.extractors {
		if attr, ok := ex(ctx); ok {
			rec.AddAttrs(attr)
		}
	}
	return h.next.Handle(ctx, rec)
}

func (h *ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ContextHandler{next: h.next.WithAttrs(attrs), extractors: h.extractors}
}

func (h *ContextHandler) WithGroup(name string) slog.Handler {
	return &ContextHandler{next: h.next.WithGroup(name), extractors: h.extractors}
}

type ctxKey struct{ name string }

type scopeKey struct{}

// scope holds values set anywhere below the point it was installed, so a
// record logged by an outer layer still sees them.
type scope struct {
	values map[string]string
	mu     sync.Mutex
}

func (s *scope) set(name, value string) {
	s.mu.Lock()
	s.values[name] = value
	s.mu.Unlock()
}

func (s *scope) get(name string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[name]
	return v, ok
}

// WithScope returns a context whose descendants share one set of values:
// [WithValue] on any derived context also records the value here.
// Middleware that logs after the handler returns installs it first.
func WithScope(ctx context.Context) context.Context {
	if _, ok := ctx.Value(scopeKey{}).(*scope); ok {
		return ctx
	}
	return context.WithValue(ctx, scopeKey{}, &scope{values: make(map[string]string)})
}

// WithValue stores a string attribute in ctx under name.
// Pair it with [ValueExtractor] to have it logged automatically.
func WithValue(ctx context.Context, name, value string) context.Context {
	if s, ok := ctx.Value(scopeKey{}).(*scope); ok {
		s.set(name, value)
	}
	return context.WithValue(ctx, ctxKey{name}, value)
}

// ValueExtractor returns an extractor for values stored with [WithValue].
// Values on ctx itself win over values recorded in its scope.
func ValueExtractor(name string) ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if v, ok := ctx.Value(ctxKey{name}).(string); ok && v != "" {
			return slog.String(name, v), true
		}
		if s, ok := ctx.Value(scopeKey{}).(*scope); ok {
			if v, ok := s.get(name); ok && v != "" {
				return slog.String(name, v), true
			}
		}
		return slog.Attr{}, false
	}
}
