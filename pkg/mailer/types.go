package mailer

import (
	"context"
	"fmt"
)

// Sender delivers a fully prepared Email. Providers implement it.
type Sender interface {
	Send(ctx context.Context, email *Email) error
}

// Tags are provider tags attached to an email. Presence-only tags use
// struct{}{} as value.
type Tags map[string]any

// SimpleTags creates presence-only tags.
func SimpleTags(names ...string) Tags {
	t := make(Tags, len(names))
	for _, n := range names {
		t[n] = struct{}{}
	}
	return t
}

// Recipient formats a name and address as "Name <email>".
// The bare address is returned when name is empty.
func Recipient(name, email string) string {
	if name == "" {
		return email
	}
	return fmt.Sprintf("%s <%s>", name, email)
}

// Email is a message ready for sending.
type Email struct {
	Headers map[string]string
	Tags    Tags
	Subject string
	HTML    string
	Text    string
	From    string // overrides the provider's default sender
	ReplyTo string
	To      []string
}
