// Package emailjs delivers contact messages through the EmailJS REST API.
//
// A Client posts the service identifier, template identifier, public key and
// template parameters to EmailJS, the same call the browser SDK makes. It
// implements contact.Deliverer:
//
//	client := emailjs.New(emailjs.Config{AccessToken: os.Getenv("EMAILJS_ACCESS_TOKEN")})
//	sub := contact.NewSubmission(client, contact.Config{
//		ServiceID:  "service_x",
//		TemplateID: "template_y",
//		PublicKey:  "public_key",
//	})
//
// Any non-200 response is a failed send. No timeout is applied unless the
// injected http.Client has one.
package emailjs
