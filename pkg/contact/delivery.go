package contact

import "context"

// Config holds the static routing identifiers and authorization token
// passed to the delivery collaborator on every attempt.
type Config struct {
	ServiceID  string `mapstructure:"service_id"`
	TemplateID string `mapstructure:"template_id"`
	PublicKey  string `mapstructure:"public_key"`
}

// Params is the message payload handed to the collaborator.
type Params struct {
	FromName  string `json:"from_name"`
	FromEmail string `json:"from_email"`
	Message   string `json:"message"`
}

// Request is one delivery attempt.
type Request struct {
	ServiceID  string
	TemplateID string
	PublicKey  string
	Params     Params
}

// Deliverer sends a contact message through an external service.
// Any returned error is treated as a failed delivery.
type Deliverer interface {
	Deliver(ctx context.Context, req Request) error
}

// DelivererFunc adapts a function to the Deliverer interface.
type DelivererFunc func(ctx context.Context, req Request) error

func (f DelivererFunc) Deliver(ctx context.Context, req Request) error {
	return f(ctx, req)
}

func newRequest(cfg Config, form Form) Request {
	return Request{
		ServiceID:  cfg.ServiceID,
		TemplateID: cfg.TemplateID,
		PublicKey:  cfg.PublicKey,
		Params: Params{
			FromName:  form.Name,
			FromEmail: form.Email,
			Message:   form.Message,
		},
	}
}
