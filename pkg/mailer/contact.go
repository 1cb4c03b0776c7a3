package mailer

import (
	"context"
	"strings"

	"github.com/folio-dev/folio/pkg/contact"
	"github.com/folio-dev/folio/pkg/sanitizer"
)

// ContactDeliverer delivers contact form submissions to the site owner.
// It implements contact.Deliverer.
//
// The request's template identifier selects "<TemplateID>.md", the service
// identifier is attached as a "service" tag, and replies go to the visitor.
// The public key is not used: the Sender carries its own credentials.
type ContactDeliverer struct {
	mailer *Mailer
	to     []string
}

// NewContactDeliverer creates a deliverer sending to the given inboxes.
func NewContactDeliverer(m *Mailer, to ...string) *ContactDeliverer {
	return &ContactDeliverer{mailer: m, to: to}
}

// ContactData is the data passed to contact templates.
type ContactData struct {
	FromName  string
	FromEmail string
	Message   string
}

// Deliver implements contact.Deliverer.
func (d *ContactDeliverer) Deliver(ctx context.Context, req contact.Request) error {
	data := ContactData{
		FromName:  sanitizer.StripHTML(req.Params.FromName),
		FromEmail: sanitizer.StripHTML(req.Params.FromEmail),
		Message:   sanitizer.StripHTML(req.Params.Message),
	}

	var replyTo string
	if email := strings.TrimSpace(req.Params.FromEmail); email != "" {
		replyTo = Recipient(data.FromName, email)
	}

	tags := SimpleTags("contact")
	if req.ServiceID != "" {
		tags["service"] = req.ServiceID
	}

	return d.mailer.Send(ctx, SendParams{
		To:       d.to,
		Template: templateFile(req.TemplateID),
		Data:     data,
		ReplyTo:  replyTo,
		Tags:     tags,
	})
}

func templateFile(id string) string {
	if id == "" {
		id = "contact"
	}
	if strings.HasSuffix(id, ".md") {
		return id
	}
	return id + ".md"
}
