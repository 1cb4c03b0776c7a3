package htmx_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/folio-dev/folio/pkg/htmx"
)

func TestIsHTMX(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.False(t, htmx.IsHTMX(r))

	r.Header.Set(htmx.HeaderHXRequest, "true")
	assert.True(t, htmx.IsHTMX(r))
}

func TestConfig_ApplyHeaders(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	htmx.NewConfig(
		htmx.WithRetarget("#contact-modal"),
		htmx.WithReswap(htmx.SwapOuterHTML),
		htmx.WithTrigger("contact:sent", "contact:closed"),
		htmx.WithRefresh(),
	).ApplyHeaders(w)

	assert.Equal(t, "#contact-modal", w.Header().Get(htmx.HeaderHXRetarget))
	assert.Equal(t, "outerHTML", w.Header().Get(htmx.HeaderHXReswap))
	assert.Equal(t, "contact:sent, contact:closed", w.Header().Get(htmx.HeaderHXTrigger))
	assert.Equal(t, "true", w.Header().Get(htmx.HeaderHXRefresh))
}

func TestConfig_ApplyHeaders_Nil(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	var cfg *htmx.Config
	cfg.ApplyHeaders(w)
	assert.Empty(t, w.Header())
}
