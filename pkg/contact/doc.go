// Package contact implements the contact-form submission workflow.
//
// A [Submission] owns the three form fields typed by a visitor, the modal
// visibility flag and the send status. It forwards a submission to a
// [Deliverer] (the transactional email collaborator) exactly once per
// attempt and translates the outcome into a visitor-facing [Status].
//
// # State machine
//
//	Idle -> Sending -> Sent | Failed
//	Sent -> Idle, Failed -> Idle (Dismiss or Open)
//
// Submit is a no-op while a delivery is in flight, so rapid double submits
// issue a single call. The form is cleared only after a successful delivery;
// a failure keeps the typed input and exposes the fixed [FailureMessage].
//
// # Stale responses
//
// Dismiss and Open bump a generation token. A delivery that resolves after
// the surface was dismissed or reopened is discarded and does not touch the
// status or the form the visitor currently sees.
//
// # Usage
//
//	sub := contact.NewSubmission(emailjsClient, contact.Config{
//		ServiceID:  "service_x",
//		TemplateID: "template_y",
//		PublicKey:  "public_key",
//	})
//
//	sub.UpdateField(contact.FieldName, "Ann")
//	sub.UpdateField(contact.FieldEmail, "ann@example.com")
//	sub.UpdateField(contact.FieldMessage, "Hi")
//
//	if done, ok := sub.Submit(ctx); ok {
//		outcome := <-done
//		_ = outcome.Status // Sent or Failed
//	}
//
// A [Registry] keeps one Submission per page load, keyed by a surface ID,
// and evicts surfaces that stay idle longer than the configured TTL.
package contact
