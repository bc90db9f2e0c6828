package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/goliatone/go-sitecontent/pkg/interfaces"
)

// HTTPProviderOptions configures the JSON mail relay provider.
type HTTPProviderOptions struct {
	Endpoint  string
	ServiceID string
	PublicKey string
	Client    *http.Client
}

// HTTPProvider posts messages to a hosted mail relay as JSON. The payload
// shape follows the common template-based relay APIs: a service id, a
// template id, and a flat map of template parameters.
type HTTPProvider struct {
	endpoint  string
	serviceID string
	publicKey string
	client    *http.Client
}

// NewHTTPProvider constructs the provider.
func NewHTTPProvider(opts HTTPProviderOptions) *HTTPProvider {
	client := opts.Client
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &HTTPProvider{
		endpoint:  opts.Endpoint,
		serviceID: opts.ServiceID,
		publicKey: opts.PublicKey,
		client:    client,
	}
}

type relayPayload struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id,omitempty"`
	TemplateParams map[string]string `json:"template_params"`
}

// Send posts the message and fails on any non-2xx response.
func (p *HTTPProvider) Send(ctx context.Context, msg interfaces.MailMessage) error {
	body, err := json.Marshal(relayPayload{
		ServiceID:      p.serviceID,
		TemplateID:     msg.TemplateID,
		UserID:         p.publicKey,
		TemplateParams: msg.Variables,
	})
	if err != nil {
		return fmt.Errorf("mailer: encode relay payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("mailer: build relay request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("mailer: relay request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("mailer: relay responded with status %d", resp.StatusCode)
	}
	return nil
}

// NoOpProvider drops every message. It stands in when mail delivery is
// disabled.
type NoOpProvider struct{}

// Send discards the message.
func (NoOpProvider) Send(context.Context, interfaces.MailMessage) error {
	return nil
}
