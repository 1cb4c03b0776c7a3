package emailjs

import "errors"

var (
	// ErrMissingIdentifier indicates an empty service, template or public key.
	ErrMissingIdentifier = errors.New("emailjs: service id, template id and public key are required")

	// ErrSendFailed indicates EmailJS did not accept the message.
	ErrSendFailed = errors.New("emailjs: failed to send email")
)
