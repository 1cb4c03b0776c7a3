package views

import (
	"github.com/folio-dev/folio/pkg/contact"
)

type modalData struct {
	Missing     map[contact.Field]bool
	SurfaceID   string
	Error       string
	ButtonLabel string
	Hint        string
	Form        contact.Form
	Sent        bool
	Sending     bool
}

func newModalData(surfaceID string, snap contact.Snapshot, missing []contact.Field) modalData {
	d := modalData{
		SurfaceID:   surfaceID,
		Form:        snap.Form,
		Sent:        snap.Status.IsSent(),
		Sending:     snap.Status.IsSending(),
		Error:       snap.Status.Message,
		ButtonLabel: "Send Message",
	}
	if d.Sending {
		d.ButtonLabel = "Sending..."
	}
	if len(missing) > 0 {
		d.Missing = make(map[contact.Field]bool, len(missing))
		for _, f := range missing {
			d.Missing[f] = true
		}
		d.Hint = "Please fill in every field."
	}
	return d
}

func (d modalData) path(action string) string {
	return "/contact/" + d.SurfaceID + "/" + action
}

func modal(m *markup, d modalData) {
	m.raw(`<div class="overlay" hx-ext="ws"`)
	m.attr("ws-connect", d.path("ws"))
	m.raw(`><div class="modal" role="dialog" aria-modal="true" aria-labelledby="contact-title">`)

	m.raw(`<button class="close" aria-label="Close"`)
	m.attr("hx-post", d.path("dismiss"))
	m.attr("hx-target", "#"+ModalID)
	m.raw(` hx-swap="innerHTML">&times;</button>`)

	m.raw(`<h3 id="contact-title">Contact Me</h3>`)
	modalBody(m, d)
	m.raw(`</div></div>`)
}

func modalBody(m *markup, d modalData) {
	m.raw(`<div`)
	m.attr("id", ModalBodyID)
	if d.Sending {
		m.attr("hx-get", d.path("status"))
		m.raw(` hx-trigger="every 1s" hx-swap="outerHTML"`)
	}
	m.raw(`>`)

	if d.Sent {
		m.raw(`<p class="success">Thank you! Your message has been sent.</p></div>`)
		return
	}

	m.raw(`<form`)
	m.attr("hx-post", d.path("submit"))
	m.attr("hx-target", "#"+ModalBodyID)
	m.raw(` hx-swap="outerHTML">`)

	input(m, d, contact.FieldName, "text", "Your Name")
	input(m, d, contact.FieldEmail, "email", "Your Email")

	m.raw(`<textarea name="message" placeholder="Your Message" rows="4" required`)
	fieldAttrs(m, d, contact.FieldMessage)
	m.raw(`>`)
	m.text(d.Form.Message)
	m.raw(`</textarea>`)

	if d.Hint != "" {
		m.element("p", d.Hint, "class", "hint")
	}
	if d.Error != "" {
		m.element("p", d.Error, "class", "error")
	}

	m.raw(`<button type="submit"`)
	m.flag("disabled", d.Sending)
	m.raw(`>`)
	m.text(d.ButtonLabel)
	m.raw(`</button></form></div>`)
}

func input(m *markup, d modalData, field contact.Field, typ, placeholder string) {
	m.raw(`<input`)
	m.attr("type", typ)
	m.attr("name", string(field))
	m.attr("placeholder", placeholder)
	m.raw(` required`)
	m.attr("value", d.Form.Value(field))
	fieldAttrs(m, d, field)
	m.raw(`>`)
}

// fieldAttrs marks missing fields and binds the element to its field
// endpoint so every edit is stored as it is typed.
func fieldAttrs(m *markup, d modalData, field contact.Field) {
	if d.Missing[field] {
		m.raw(` aria-invalid="true"`)
	}
	m.attr("hx-post", d.path("fields/"+string(field)))
	m.raw(` hx-trigger="input changed delay:300ms" hx-swap="none"`)
}
