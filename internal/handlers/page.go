package handlers

import (
	"net/http"

	"github.com/folio-dev/folio/internal/app"
	"github.com/folio-dev/folio/internal/content"
	"github.com/folio-dev/folio/internal/views"
	"github.com/folio-dev/folio/pkg/contact"
)

// PageHandler serves the portfolio page. Every load gets its own contact
// surface.
type PageHandler struct {
	content  *content.Store
	registry *contact.Registry
}

// NewPageHandler creates a PageHandler.
func NewPageHandler(store *content.Store, registry *contact.Registry) *PageHandler {
	return &PageHandler{content: store, registry: registry}
}

// Routes implements app.Handler.
func (h *PageHandler) Routes(r app.Router) {
	r.GET("/", h.home)
}

func (h *PageHandler) home(c app.Context) error {
	id, _ := h.registry.Create()
	withSurface(c, id)
	c.LogDebug("contact surface created")

	c.SetHeader("Cache-Control", "no-store")
	return c.Render(http.StatusOK, views.Page(h.content.Current(), id))
}
