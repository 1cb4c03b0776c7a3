package handlers

import (
	"errors"
	"net/http"

	"github.com/folio-dev/folio/internal/app"
	"github.com/folio-dev/folio/internal/views"
	"github.com/folio-dev/folio/pkg/contact"
	"github.com/folio-dev/folio/pkg/htmx"
	"github.com/folio-dev/folio/pkg/logger"
)

const (
	uuidPattern = `[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}`
	surfaceAttr = "surface_id"
)

// SurfaceIDExtractor adds "surface_id" to log records of contact requests.
func SurfaceIDExtractor() logger.ContextExtractor {
	return logger.ValueExtractor(surfaceAttr)
}

func withSurface(c app.Context, id string) {
	c.SetContext(logger.WithValue(c.Request().Context(), surfaceAttr, id))
}

// ContactHandler drives the contact modal of one surface.
type ContactHandler struct {
	registry *contact.Registry
}

// NewContactHandler creates a ContactHandler.
func NewContactHandler(registry *contact.Registry) *ContactHandler {
	return &ContactHandler{registry: registry}
}

// Routes implements app.Handler.
func (h *ContactHandler) Routes(r app.Router) {
	r.Route("/contact/{id:"+uuidPattern+"}", func(r app.Router) {
		r.Use(h.loadSurface)
		r.POST("/open", h.open)
		r.POST("/dismiss", h.dismiss)
		r.POST("/fields/{field}", h.updateField)
		r.POST("/submit", h.submit)
		r.GET("/status", h.status)
		r.GET("/ws", h.watch)
	})
}

type submissionKey struct{}

// loadSurface resolves the surface once per request. Unknown or expired
// surfaces get the not-found fragment.
func (h *ContactHandler) loadSurface(next app.HandlerFunc) app.HandlerFunc {
	return func(c app.Context) error {
		id := c.Param("id")
		withSurface(c, id)

		sub, err := h.registry.Get(id)
		if errors.Is(err, contact.ErrSurfaceNotFound) {
			c.LogInfo("contact surface not found")
			return c.Render(http.StatusNotFound, views.NotFound(),
				htmx.WithRetarget("#"+views.ModalID),
				htmx.WithReswap(htmx.SwapInnerHTML),
			)
		}
		if err != nil {
			return err
		}

		c.Set(submissionKey{}, sub)
		return next(c)
	}
}

func submission(c app.Context) *contact.Submission {
	sub, _ := c.Get(submissionKey{}).(*contact.Submission)
	return sub
}

func (h *ContactHandler) open(c app.Context) error {
	sub := submission(c)
	sub.Open()
	return c.Render(http.StatusOK, views.Modal(c.Param("id"), sub.Snapshot()))
}

func (h *ContactHandler) dismiss(c app.Context) error {
	submission(c).Dismiss()
	return c.Render(http.StatusOK, views.Empty())
}

// updateField stores one field. The value is read from "value", or from
// the field's own input name as sent by hx-post on the input element.
func (h *ContactHandler) updateField(c app.Context) error {
	field, err := contact.ParseField(c.Param("field"))
	if err != nil {
		return c.Error(http.StatusBadRequest, "unknown field").WithCause(err)
	}

	value, ok := postedValue(c, "value")
	if !ok {
		value, _ = postedValue(c, string(field))
	}
	submission(c).UpdateField(field, value)
	return c.NoContent(http.StatusNoContent)
}

// submit applies the posted fields and starts a delivery. All fields must
// be non-empty; otherwise the form is re-rendered with a hint and nothing
// is sent. A submit while sending renders the current state.
func (h *ContactHandler) submit(c app.Context) error {
	id := c.Param("id")
	sub := submission(c)

	if sub.Status().IsSending() {
		return c.Render(http.StatusOK, views.ModalBody(id, sub.Snapshot(), nil))
	}

	for _, f := range contact.Fields {
		if v, ok := postedValue(c, string(f)); ok {
			sub.UpdateField(f, v)
		}
	}

	if missing := sub.Form().Missing(); len(missing) > 0 {
		return c.Render(http.StatusUnprocessableEntity, views.ModalBody(id, sub.Snapshot(), missing))
	}

	if _, started := sub.Submit(c.Request().Context()); started {
		c.LogInfo("contact submission started")
	}
	return c.Render(http.StatusOK, views.ModalBody(id, sub.Snapshot(), nil))
}

func (h *ContactHandler) status(c app.Context) error {
	return c.Render(http.StatusOK, views.ModalBody(c.Param("id"), submission(c).Snapshot(), nil))
}

func postedValue(c app.Context, name string) (string, bool) {
	r := c.Request()
	if err := r.ParseForm(); err != nil {
		return "", false
	}
	vs, ok := r.PostForm[name]
	if !ok || len(vs) == 0 {
		return "", false
	}
	return vs[0], true
}
