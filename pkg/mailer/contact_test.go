package mailer

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/folio-dev/folio/pkg/contact"
)

func TestContactDeliverer_Deliver(t *testing.T) {
	t.Parallel()

	var sent *Email
	sender := &MockSender{}
	sender.On("Send", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { sent = args.Get(1).(*Email) }).
		Return(nil)

	m := New(sender, NewRenderer(DefaultTemplates), Config{})
	d := NewContactDeliverer(m, "owner@example.com")

	err := d.Deliver(context.Background(), contact.Request{
		ServiceID:  "service_sv",
		TemplateID: "contact",
		Params: contact.Params{
			FromName:  "Ann",
			FromEmail: "ann@x.com",
			Message:   "Hi <script>alert(1)</script>there",
		},
	})
	require.NoError(t, err)
	require.NotNil(t, sent)

	assert.Equal(t, []string{"owner@example.com"}, sent.To)
	assert.Equal(t, "New message from Ann", sent.Subject)
	assert.Equal(t, "Ann <ann@x.com>", sent.ReplyTo)
	assert.Equal(t, "service_sv", sent.Tags["service"])
	assert.Contains(t, sent.Tags, "contact")
	assert.Contains(t, sent.HTML, "Hi there")
	assert.False(t, strings.Contains(sent.HTML, "<script>"))
}

func TestContactDeliverer_UnknownTemplate(t *testing.T) {
	t.Parallel()

	sender := &MockSender{}
	m := New(sender, NewRenderer(DefaultTemplates), Config{})
	d := NewContactDeliverer(m, "owner@example.com")

	err := d.Deliver(context.Background(), contact.Request{TemplateID: "template_6sx7uas"})

	require.ErrorIs(t, err, ErrTemplateNotFound)
	sender.AssertNotCalled(t, "Send")
}

func TestTemplateFile(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "contact.md", templateFile(""))
	assert.Equal(t, "contact.md", templateFile("contact"))
	assert.Equal(t, "custom.md", templateFile("custom.md"))
}
