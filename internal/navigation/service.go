package navigation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-sitecontent/internal/domain"
	"github.com/goliatone/go-sitecontent/internal/logging"
	"github.com/goliatone/go-sitecontent/internal/sections"
	"github.com/goliatone/go-sitecontent/pkg/interfaces"
	slug "github.com/goliatone/go-slug"
)

var (
	ErrEntryNameRequired = errors.New("navigation: entry name required")
	ErrNotAuthorized     = errors.New("navigation: actor is not allowed to modify entries")
)

// Service manages the activity entries stored in the navigation document.
type Service interface {
	Entries(ctx context.Context) []Entry
	AddEntry(ctx context.Context, name string, actor domain.Actor) (Entry, error)
	RemoveEntry(ctx context.Context, name string, actor domain.Actor) error
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

// WithPathResolver overrides how entry paths are built from slugs.
func WithPathResolver(resolver PathResolver) ServiceOption {
	return func(s *service) {
		if resolver != nil {
			s.resolver = resolver
		}
	}
}

// WithFallbackEntries overrides the static entries served when the document
// is empty or unreachable.
func WithFallbackEntries(entries []Entry) ServiceOption {
	return func(s *service) {
		s.fallback = append([]Entry(nil), entries...)
	}
}

type service struct {
	repo     sections.Repository
	resolver PathResolver
	logger   interfaces.Logger
	fallback []Entry
}

// NewService constructs a navigation service over the section document
// repository.
func NewService(repo sections.Repository, opts ...ServiceOption) Service {
	s := &service{
		repo:     repo,
		resolver: StaticResolver{Prefix: "/activities"},
		logger:   logging.NoOp(),
		fallback: []Entry{
			{Name: "Sports", Path: "/activities/sports"},
			{Name: "Annual Function", Path: "/activities/annual-function"},
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Entries returns the stored activity links, or the static fallback when the
// document is missing, empty, or unreachable. The menu is never blank.
func (s *service) Entries(ctx context.Context) []Entry {
	doc, err := s.repo.Get(ctx, sections.KeyNavigation)
	if err != nil {
		var notFound *sections.NotFoundError
		if !errors.As(err, &notFound) {
			s.logger.Warn("navigation document fetch failed, serving fallback entries", "error", err)
		}
		return append([]Entry(nil), s.fallback...)
	}
	entries := entriesFromDocument(doc.Data)
	if len(entries) == 0 {
		return append([]Entry(nil), s.fallback...)
	}
	return entries
}

// AddEntry slugs the name, resolves its path, and appends the entry to the
// document. Adding a name whose path already exists is a no-op returning the
// existing entry.
func (s *service) AddEntry(ctx context.Context, name string, actor domain.Actor) (Entry, error) {
	if !actor.IsAdmin() {
		return Entry{}, ErrNotAuthorized
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return Entry{}, ErrEntryNameRequired
	}

	normalized, err := slug.Normalize(name)
	if err != nil {
		return Entry{}, fmt.Errorf("navigation: slug entry name: %w", err)
	}
	path, err := s.resolver.Resolve(normalized)
	if err != nil {
		return Entry{}, err
	}
	entry := Entry{Name: name, Path: path}

	current, err := s.storedEntries(ctx)
	if err != nil {
		return Entry{}, err
	}
	for _, existing := range current {
		if existing.Path == entry.Path {
			return existing, nil
		}
	}

	updated := append(current, entry)
	if _, err := s.repo.Set(ctx, sections.KeyNavigation, entriesToDocument(updated), actor.UID); err != nil {
		return Entry{}, err
	}
	return entry, nil
}

// RemoveEntry drops every stored entry matching the name. Removing a name
// that is not present is a no-op.
func (s *service) RemoveEntry(ctx context.Context, name string, actor domain.Actor) error {
	if !actor.IsAdmin() {
		return ErrNotAuthorized
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEntryNameRequired
	}

	current, err := s.storedEntries(ctx)
	if err != nil {
		return err
	}

	remaining := make([]Entry, 0, len(current))
	for _, entry := range current {
		if !strings.EqualFold(entry.Name, name) {
			remaining = append(remaining, entry)
		}
	}
	if len(remaining) == len(current) {
		return nil
	}

	_, err = s.repo.Set(ctx, sections.KeyNavigation, entriesToDocument(remaining), actor.UID)
	return err
}

// storedEntries reads the raw document list without applying the fallback,
// so writes never persist the static table.
func (s *service) storedEntries(ctx context.Context) ([]Entry, error) {
	doc, err := s.repo.Get(ctx, sections.KeyNavigation)
	if err != nil {
		var notFound *sections.NotFoundError
		if errors.As(err, &notFound) {
			return nil, nil
		}
		return nil, err
	}
	return entriesFromDocument(doc.Data), nil
}
