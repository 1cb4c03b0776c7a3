package emailjs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/folio-dev/folio/pkg/contact"
)

const (
	sendPath = "/api/v1.0/email/send"

	// maxErrorBody bounds how much of a failed response ends up in the error.
	maxErrorBody = 1 << 10
)

// Client sends emails through the EmailJS REST API.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	accessToken string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// New creates a new EmailJS client.
func New(cfg Config, opts ...Option) *Client {
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}
	c := &Client{
		httpClient:  &http.Client{},
		baseURL:     base,
		accessToken: cfg.AccessToken,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SendRequest is the JSON body accepted by the send endpoint.
type SendRequest struct {
	TemplateParams any    `json:"template_params"`
	ServiceID      string `json:"service_id"`
	TemplateID     string `json:"template_id"`
	UserID         string `json:"user_id"`
	AccessToken    string `json:"accessToken,omitempty"`
}

// Send posts a templated email to EmailJS.
func (c *Client) Send(ctx context.Context, serviceID, templateID, publicKey string, params any) error {
	if serviceID == "" || templateID == "" || publicKey == "" {
		return ErrMissingIdentifier
	}

	body, err := json.Marshal(SendRequest{
		ServiceID:      serviceID,
		TemplateID:     templateID,
		UserID:         publicKey,
		TemplateParams: params,
		AccessToken:    c.accessToken,
	})
	if err != nil {
		return fmt.Errorf("%w: encode request: %v", ErrSendFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+sendPath, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: build request: %v", ErrSendFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return fmt.Errorf("%w: status %d: %s", ErrSendFailed, resp.StatusCode, strings.TrimSpace(string(detail)))
	}

	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// Deliver implements contact.Deliverer.
func (c *Client) Deliver(ctx context.Context, req contact.Request) error {
	return c.Send(ctx, req.ServiceID, req.TemplateID, req.PublicKey, req.Params)
}
