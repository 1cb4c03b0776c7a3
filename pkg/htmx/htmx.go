package htmx

import (
	"net/http"
	"strings"
)

// Request headers.
const (
	HeaderHXRequest = "HX-Request"
	HeaderHXTarget  = "HX-Target"
)

// Response headers.
const (
	HeaderHXRetarget = "HX-Retarget"
	HeaderHXReswap   = "HX-Reswap"
	HeaderHXTrigger  = "HX-Trigger"
	HeaderHXRefresh  = "HX-Refresh"
)

// SwapStrategy is an hx-swap value.
type SwapStrategy string

const (
	SwapInnerHTML SwapStrategy = "innerHTML"
	SwapOuterHTML SwapStrategy = "outerHTML"
	SwapNone      SwapStrategy = "none"
)

// IsHTMX reports whether the request was issued by HTMX.
func IsHTMX(r *http.Request) bool {
	return r.Header.Get(HeaderHXRequest) == "true"
}

// Config holds response headers for an HTMX render.
type Config struct {
	Retarget string
	Reswap   SwapStrategy
	Triggers []string
	Refresh  bool
}

// RenderOption configures a Config.
type RenderOption func(*Config)

// NewConfig builds a Config from options.
func NewConfig(opts ...RenderOption) *Config {
	cfg := &Config{}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// ApplyHeaders writes the configured headers. Safe on a nil Config.
func (c *Config) ApplyHeaders(w http.ResponseWriter) {
	if c == nil {
		return
	}
	h := w.Header()
	if c.Retarget != "" {
		h.Set(HeaderHXRetarget, c.Retarget)
	}
	if c.Reswap != "" {
		h.Set(HeaderHXReswap, string(c.Reswap))
	}
	if len(c.Triggers) > 0 {
		h.Set(HeaderHXTrigger, strings.Join(c.Triggers, ", "))
	}
	if c.Refresh {
		h.Set(HeaderHXRefresh, "true")
	}
}

// WithRetarget changes the element the response is swapped into.
func WithRetarget(selector string) RenderOption {
	return func(c *Config) { c.Retarget = selector }
}

// WithReswap changes the swap strategy.
func WithReswap(s SwapStrategy) RenderOption {
	return func(c *Config) { c.Reswap = s }
}

// WithTrigger triggers client-side events after the response is received.
func WithTrigger(events ...string) RenderOption {
	return func(c *Config) { c.Triggers = append(c.Triggers, events...) }
}

// WithRefresh forces a full page refresh.
func WithRefresh() RenderOption {
	return func(c *Config) { c.Refresh = true }
}
