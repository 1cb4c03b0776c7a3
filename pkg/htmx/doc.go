// Package htmx provides helpers for serving HTMX requests.
//
// It detects HTMX requests and sets the response headers that steer the
// client: retargeting, swap strategy and triggered events.
//
//	if htmx.IsHTMX(r) {
//		htmx.NewConfig(htmx.WithTrigger("contact:sent")).ApplyHeaders(w)
//	}
package htmx
