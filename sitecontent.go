package sitecontent

import (
	"context"

	"github.com/goliatone/go-sitecontent/internal/auth"
	"github.com/goliatone/go-sitecontent/internal/domain"
	"github.com/goliatone/go-sitecontent/internal/di"
	"github.com/goliatone/go-sitecontent/internal/gallery"
	"github.com/goliatone/go-sitecontent/internal/mailer"
	"github.com/goliatone/go-sitecontent/internal/navigation"
	"github.com/goliatone/go-sitecontent/internal/sections"
	"github.com/goliatone/go-sitecontent/pkg/interfaces"
)

// SectionService exports the section document service contract.
type SectionService = sections.Service

// SectionRegistry exports the section default registry.
type SectionRegistry = sections.Registry

// EditSession exports the per-section edit session controller.
type EditSession = sections.EditSession

// SaveRequest exports the section save request DTO.
type SaveRequest = sections.SaveRequest

// GalleryService exports the gallery service contract.
type GalleryService = gallery.Service

// NavigationService exports the navigation service contract.
type NavigationService = navigation.Service

// NavigationEntry exports a single activity menu entry.
type NavigationEntry = navigation.Entry

// MailerService exports the contact mailer contract.
type MailerService = mailer.Service

// ContactMessage exports the contact enquiry DTO.
type ContactMessage = mailer.ContactMessage

// AuthService exports the identity-tracking auth service contract.
type AuthService = auth.Service

// Actor exports the resolved principal used for admin gating.
type Actor = domain.Actor

// Role exports the stored role type.
type Role = domain.Role

// Role values recognised by the module.
const (
	RoleAdmin = domain.RoleAdmin
	RoleUser  = domain.RoleUser
)

// Guard exports the admin route guard.
type Guard = auth.Guard

// Module represents the top level site content runtime façade.
type Module struct {
	container *di.Container
}

// New constructs a module using the provided configuration and optional DI
// overrides.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Module{container: di.NewContainer(cfg, opts...)}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Sections returns the configured section service.
func (m *Module) Sections() SectionService {
	return m.container.SectionService()
}

// Galleries returns the configured gallery service, nil when disabled.
func (m *Module) Galleries() GalleryService {
	return m.container.GalleryService()
}

// Navigation returns the configured navigation service, nil when disabled.
func (m *Module) Navigation() NavigationService {
	return m.container.NavigationService()
}

// Mailer returns the configured contact mailer, nil when disabled.
func (m *Module) Mailer() MailerService {
	return m.container.MailerService()
}

// Auth returns the identity-tracking auth service, nil without an identity
// provider.
func (m *Module) Auth() AuthService {
	return m.container.AuthService()
}

// AdminGuard returns the route guard over the auth service, nil without one.
func (m *Module) AdminGuard() *Guard {
	return m.container.Guard()
}

// Edit opens an edit session for the given section on behalf of the actor
// resolved by the auth service.
func (m *Module) Edit(ctx context.Context, key string) (*EditSession, error) {
	var actor Actor
	if svc := m.container.AuthService(); svc != nil {
		actor = svc.Actor()
	}
	return m.container.SectionService().Edit(ctx, key, actor)
}

// LoggerProvider returns the configured logger provider.
func (m *Module) LoggerProvider() interfaces.LoggerProvider {
	return m.container.LoggerProvider()
}
