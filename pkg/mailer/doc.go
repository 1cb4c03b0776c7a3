// Package mailer sends contact notifications through a transactional email
// provider.
//
// Templates are markdown files with optional YAML frontmatter. The body is
// executed as a Go text template, converted to HTML with goldmark and wrapped
// in an HTML layout:
//
//	---
//	Subject: New message from {{.FromName}}
//	---
//
//	**{{.FromName}}** wrote:
//
//	{{.Message}}
//
// A [Mailer] combines a [Renderer] with a [Sender]. The resend subpackage
// provides a Sender backed by the Resend API.
//
// [ContactDeliverer] adapts a Mailer to contact.Deliverer so the contact form
// can deliver to the site owner's inbox instead of EmailJS:
//
//	sender := resend.New(resend.Config{APIKey: key, SenderEmail: "site@example.com"})
//	m := mailer.New(sender, mailer.NewRenderer(mailer.DefaultTemplates), mailer.Config{})
//	deliverer := mailer.NewContactDeliverer(m, "owner@example.com")
package mailer
