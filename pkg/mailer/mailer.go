package mailer

import (
	"bytes"
	"context"
	"errors"
	texttemplate "text/template"
)

// Mailer renders templates and hands the result to a Sender.
type Mailer struct {
	sender   Sender
	renderer *Renderer
	config   Config
}

// New creates a Mailer. Empty config fields fall back to defaults.
func New(sender Sender, renderer *Renderer, cfg Config) *Mailer {
	if cfg.FallbackSubject == "" {
		cfg.FallbackSubject = defaultFallbackSubject
	}
	if cfg.DefaultLayout == "" {
		cfg.DefaultLayout = defaultLayout
	}
	return &Mailer{sender: sender, renderer: renderer, config: cfg}
}

// SendParams describes a templated email.
type SendParams struct {
	Data     any
	Tags     Tags
	Template string
	Subject  string // overrides the template subject
	Layout   string // overrides the default layout
	ReplyTo  string
	To       []string
}

// Send renders params.Template and sends it.
// Subject precedence: params.Subject, then template "Subject" metadata,
// then the configured fallback. The subject itself is a text template.
func (m *Mailer) Send(ctx context.Context, params SendParams) error {
	if len(params.To) == 0 {
		return ErrNoRecipient
	}

	layout := params.Layout
	if layout == "" {
		layout = m.config.DefaultLayout
	}

	result, err := m.renderer.Render(layout, params.Template, params.Data)
	if err != nil {
		return errors.Join(ErrRenderFailed, err)
	}

	subject := params.Subject
	if subject == "" {
		subject, _ = result.Metadata["Subject"].(string)
	}
	if subject == "" {
		subject = m.config.FallbackSubject
	}
	subject, err = executeSubject(subject, params.Data)
	if err != nil {
		return errors.Join(ErrRenderFailed, err)
	}

	return m.SendRaw(ctx, &Email{
		To:      params.To,
		Subject: subject,
		HTML:    result.HTML,
		Text:    result.Text,
		ReplyTo: params.ReplyTo,
		Tags:    params.Tags,
	})
}

// SendRaw sends a prepared email without rendering.
func (m *Mailer) SendRaw(ctx context.Context, email *Email) error {
	if len(email.To) == 0 {
		return ErrNoRecipient
	}
	if email.Subject == "" {
		return ErrNoSubject
	}
	if err := m.sender.Send(ctx, email); err != nil {
		return errors.Join(ErrSendFailed, err)
	}
	return nil
}

func executeSubject(subject string, data any) (string, error) {
	tmpl, err := texttemplate.New("subject").Parse(subject)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
