package sections

import (
	"context"
	"errors"

	"github.com/goliatone/go-sitecontent/internal/domain"
	"github.com/goliatone/go-sitecontent/internal/logging"
	"github.com/goliatone/go-sitecontent/internal/merge"
	"github.com/goliatone/go-sitecontent/pkg/interfaces"
)

var (
	ErrSectionKeyRequired = errors.New("sections: section key is required")
	ErrDocumentRequired   = errors.New("sections: document payload is required")
	ErrNotAuthorized      = errors.New("sections: actor is not allowed to write content")
	ErrUploadUnavailable  = errors.New("sections: blob provider not configured")
)

// Service exposes the merge-edit-save use-cases for section documents.
type Service interface {
	// View returns the merged view for a section: defaults overlaid with the
	// remote document. Store failures degrade to the default table and are
	// never surfaced to the caller.
	View(ctx context.Context, key string) (map[string]any, error)
	// Defaults returns the registered default table for the key.
	Defaults(key string) map[string]any
	// Save merge-writes the document and refetches the durable merged view.
	Save(ctx context.Context, req SaveRequest) (map[string]any, error)
	// Edit opens an edit session for an admin actor.
	Edit(ctx context.Context, key string, actor domain.Actor) (*EditSession, error)
}

// SaveRequest captures a full-document merge-write.
type SaveRequest struct {
	Key      string
	Document map[string]any
	Actor    domain.Actor
}

// DocumentValidator inspects a document before it is written. Used to attach
// per-section schema validation.
type DocumentValidator func(key string, doc map[string]any) error

// ServiceOption configures the service at construction time.
type ServiceOption func(*service)

// WithLogger overrides the logger used for fallback diagnostics.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithBlobProvider wires the blob store used for image field uploads.
func WithBlobProvider(blobs interfaces.BlobProvider) ServiceOption {
	return func(s *service) {
		s.blobs = blobs
	}
}

// WithDocumentValidator attaches a pre-write document validator.
func WithDocumentValidator(validate DocumentValidator) ServiceOption {
	return func(s *service) {
		s.validate = validate
	}
}

type service struct {
	repo     Repository
	registry *Registry
	blobs    interfaces.BlobProvider
	logger   interfaces.Logger
	validate DocumentValidator
}

// NewService constructs a section service with the required dependencies.
func NewService(repo Repository, registry *Registry, opts ...ServiceOption) Service {
	if registry == nil {
		registry = NewRegistry()
	}
	s := &service{
		repo:     repo,
		registry: registry,
		logger:   logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) View(ctx context.Context, key string) (map[string]any, error) {
	key = NormalizeKey(key)
	if key == "" {
		return nil, ErrSectionKeyRequired
	}

	defaults := s.registry.Defaults(key)

	doc, err := s.repo.Get(ctx, key)
	if err != nil {
		var notFound *NotFoundError
		if !errors.As(err, &notFound) {
			s.logger.Warn("section fetch failed, serving defaults", "section", key, "error", err)
		}
		return merge.Clone(defaults), nil
	}
	return merge.Merge(defaults, doc.Data), nil
}

func (s *service) Defaults(key string) map[string]any {
	return s.registry.Defaults(key)
}

func (s *service) Save(ctx context.Context, req SaveRequest) (map[string]any, error) {
	key := NormalizeKey(req.Key)
	if key == "" {
		return nil, ErrSectionKeyRequired
	}
	if req.Document == nil {
		return nil, ErrDocumentRequired
	}
	if !req.Actor.IsAdmin() {
		return nil, ErrNotAuthorized
	}

	if s.validate != nil {
		if err := s.validate(key, req.Document); err != nil {
			return nil, err
		}
	}

	if _, err := s.repo.Set(ctx, key, req.Document, req.Actor.UID); err != nil {
		return nil, err
	}

	// Refetch so callers render durable state, not just the draft.
	return s.View(ctx, key)
}

func (s *service) Edit(ctx context.Context, key string, actor domain.Actor) (*EditSession, error) {
	key = NormalizeKey(key)
	if key == "" {
		return nil, ErrSectionKeyRequired
	}
	if !actor.IsAdmin() {
		return nil, ErrNotAuthorized
	}

	view, err := s.View(ctx, key)
	if err != nil {
		return nil, err
	}

	return &EditSession{
		svc:   s,
		key:   key,
		actor: actor,
		state: StateViewing,
		view:  view,
	}, nil
}
