package mailer

import (
	"context"
	"errors"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/goliatone/go-sitecontent/internal/logging"
	"github.com/goliatone/go-sitecontent/pkg/interfaces"
)

var ErrProviderUnavailable = errors.New("mailer: mail provider not configured")

// ContactMessage is a visitor enquiry submitted through the contact form.
type ContactMessage struct {
	Name    string
	Email   string
	Phone   string
	Message string
}

// Validate ensures the enquiry carries a sender and a body.
func (m ContactMessage) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.Name, validation.Required),
		validation.Field(&m.Email, validation.Required, is.Email),
		validation.Field(&m.Message, validation.Required),
	)
}

// Service delivers contact enquiries through the configured mail provider.
type Service interface {
	SendContact(ctx context.Context, msg ContactMessage) error
}

// ServiceOption configures the service at construction time.
type ServiceOption func(*service)

// WithLogger overrides the service logger.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithTemplateID sets the provider template used for contact enquiries.
func WithTemplateID(templateID string) ServiceOption {
	return func(s *service) {
		if templateID != "" {
			s.templateID = templateID
		}
	}
}

type service struct {
	provider   interfaces.MailProvider
	logger     interfaces.Logger
	templateID string
}

// NewService constructs a mailer service over the given provider.
func NewService(provider interfaces.MailProvider, opts ...ServiceOption) Service {
	s := &service{
		provider:   provider,
		logger:     logging.NoOp(),
		templateID: "contact_form",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SendContact validates the enquiry and hands it to the provider.
func (s *service) SendContact(ctx context.Context, msg ContactMessage) error {
	if err := msg.Validate(); err != nil {
		return err
	}
	if s.provider == nil {
		return ErrProviderUnavailable
	}

	err := s.provider.Send(ctx, interfaces.MailMessage{
		TemplateID: s.templateID,
		Variables: map[string]string{
			"name":    msg.Name,
			"email":   msg.Email,
			"phone":   msg.Phone,
			"message": msg.Message,
		},
	})
	if err != nil {
		return fmt.Errorf("mailer: send contact enquiry: %w", err)
	}
	return nil
}
