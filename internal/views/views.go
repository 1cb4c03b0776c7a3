// Package views renders the portfolio page and the contact modal.
//
// Every view is a templ.Component written against templ's runtime: text and
// attribute values go through templ.EscapeString and link targets through
// templ.URL, so handlers render them through app.Context.Render like any
// other component.
package views

import (
	"context"
	"embed"
	"io"
	"io/fs"

	"github.com/a-h/templ"

	"github.com/folio-dev/folio/internal/content"
	"github.com/folio-dev/folio/pkg/contact"
)

//go:embed static
var staticFiles embed.FS

// Static holds the stylesheet and other assets served under /static/.
var Static, _ = fs.Sub(staticFiles, "static")

// ModalID is the element the modal is swapped into.
const ModalID = "contact-modal"

// ModalBodyID is the element replaced by status updates.
const ModalBodyID = "contact-modal-body"

// component adapts a markup function to templ.Component.
func component(fn func(ctx context.Context, m *markup)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		m := &markup{w: w}
		fn(ctx, m)
		return m.err
	})
}

// Page renders the whole site for one surface.
func Page(c *content.Content, surfaceID string) templ.Component {
	return component(func(ctx context.Context, m *markup) {
		page(ctx, m, c, surfaceID)
	})
}

// Modal renders the open modal: overlay, close control and body.
func Modal(surfaceID string, snap contact.Snapshot) templ.Component {
	return component(func(_ context.Context, m *markup) {
		modal(m, newModalData(surfaceID, snap, nil))
	})
}

// ModalBody renders only the part of the modal that depends on the status.
// missing lists fields the visitor left empty on submit.
func ModalBody(surfaceID string, snap contact.Snapshot, missing []contact.Field) templ.Component {
	return component(func(_ context.Context, m *markup) {
		modalBody(m, newModalData(surfaceID, snap, missing))
	})
}

// Empty renders nothing. It clears the modal slot on dismiss.
func Empty() templ.Component {
	return templ.NopComponent
}

// NotFound renders the fragment shown for an unknown or expired surface.
func NotFound() templ.Component {
	return component(func(_ context.Context, m *markup) {
		m.raw(`<div class="overlay"><div class="modal">`)
		m.raw(`<p class="error">This page has expired. Reload to get in touch.</p>`)
		m.raw(`</div></div>`)
	})
}
