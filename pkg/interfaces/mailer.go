package interfaces

import "context"

// MailMessage is a templated transactional-email dispatch request.
type MailMessage struct {
	TemplateID string
	Variables  map[string]string
}

// MailProvider dispatches a templated message through an upstream
// transactional-email service. Implementations are fire-and-forget from the
// caller's perspective; failures surface once and are not retried.
type MailProvider interface {
	Send(ctx context.Context, msg MailMessage) error
}
