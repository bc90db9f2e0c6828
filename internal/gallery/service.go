package gallery

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-sitecontent/internal/domain"
	"github.com/goliatone/go-sitecontent/internal/logging"
	"github.com/goliatone/go-sitecontent/pkg/interfaces"
	"github.com/google/uuid"
)

var (
	ErrItemIDRequired    = errors.New("gallery: item id required")
	ErrNotAuthorized     = errors.New("gallery: actor is not allowed to modify items")
	ErrUploadUnavailable = errors.New("gallery: blob provider not configured")
)

// Category pairs a display name with the stable value items are tagged with.
type Category struct {
	Name  string
	Value string
}

// CategoryProvider sources the selectable categories, typically from the
// navigation document.
type CategoryProvider interface {
	Categories(ctx context.Context) ([]Category, error)
}

// ListFilter narrows List results. The zero value returns every item.
type ListFilter struct {
	Category string
}

// CreateRequest captures a new gallery item. Upload is optional; when
// present the file is stored first and the whole create fails if the upload
// fails, so no record is left without its image.
type CreateRequest struct {
	Category string
	Title    string
	Location string
	Upload   *interfaces.Upload
	Actor    domain.Actor
}

// Validate ensures required fields are present before the service executes.
func (req CreateRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.Category, validation.Required),
		validation.Field(&req.Title, validation.Required),
	)
}

// UpdateRequest captures a partial item update. Nil fields are preserved; a
// new Upload replaces the image URL.
type UpdateRequest struct {
	ID       uuid.UUID
	Category *string
	Title    *string
	Location *string
	Upload   *interfaces.Upload
	Actor    domain.Actor
}

// CreateManyRequest fires one create per upload, all sharing the same
// metadata fields.
type CreateManyRequest struct {
	Category string
	Title    string
	Location string
	Uploads  []interfaces.Upload
	Actor    domain.Actor
}

// Validate ensures required fields are present before the service executes.
func (req CreateManyRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.Category, validation.Required),
		validation.Field(&req.Title, validation.Required),
		validation.Field(&req.Uploads, validation.Required),
	)
}

// CreateResult reports the outcome of one create within CreateMany. Each
// failure is independent; there is no batch rollback.
type CreateResult struct {
	Item *Item
	Err  error
}

// Service exposes CRUD over independently identified gallery items.
type Service interface {
	List(ctx context.Context, filter ListFilter) ([]*Item, error)
	Create(ctx context.Context, req CreateRequest) (*Item, error)
	CreateMany(ctx context.Context, req CreateManyRequest) []CreateResult
	Update(ctx context.Context, req UpdateRequest) (*Item, error)
	Delete(ctx context.Context, id uuid.UUID, actor domain.Actor) error
	Categories(ctx context.Context) []Category
}

// ServiceOption configures the service at construction time.
type ServiceOption func(*service)

// WithClock overrides the clock used to stamp records.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *service) {
		if clock != nil {
			s.now = clock
		}
	}
}

// IDGenerator mints item identifiers.
type IDGenerator func() uuid.UUID

// WithIDGenerator overrides the identifier generator.
func WithIDGenerator(generator IDGenerator) ServiceOption {
	return func(s *service) {
		if generator != nil {
			s.id = generator
		}
	}
}

// WithLogger overrides the service logger.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithBlobProvider wires the blob store used for item images.
func WithBlobProvider(blobs interfaces.BlobProvider) ServiceOption {
	return func(s *service) {
		s.blobs = blobs
	}
}

// WithCategoryProvider sources categories from the navigation document.
func WithCategoryProvider(provider CategoryProvider) ServiceOption {
	return func(s *service) {
		s.categories = provider
	}
}

// WithUploadFolder overrides the blob folder item images are stored under.
func WithUploadFolder(folder string) ServiceOption {
	return func(s *service) {
		if strings.TrimSpace(folder) != "" {
			s.folder = strings.TrimSpace(folder)
		}
	}
}

// WithFallbackCategories overrides the static category table used when the
// navigation document is empty or unreachable.
func WithFallbackCategories(categories []Category) ServiceOption {
	return func(s *service) {
		s.fallback = append([]Category(nil), categories...)
	}
}

type service struct {
	repo       Repository
	blobs      interfaces.BlobProvider
	categories CategoryProvider
	logger     interfaces.Logger
	fallback   []Category
	folder     string
	now        func() time.Time
	id         IDGenerator
}

// NewService constructs a gallery service with the required dependencies.
func NewService(repo Repository, opts ...ServiceOption) Service {
	s := &service{
		repo:   repo,
		logger: logging.NoOp(),
		folder: "gallery",
		now:    time.Now,
		id:     uuid.New,
		fallback: []Category{
			{Name: "Sports", Value: "sports"},
			{Name: "Annual Function", Value: "annual-function"},
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns all items, or only those whose category matches the filter.
// Insertion order is preserved.
func (s *service) List(ctx context.Context, filter ListFilter) ([]*Item, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	category := strings.TrimSpace(filter.Category)
	if category == "" {
		return items, nil
	}
	filtered := make([]*Item, 0, len(items))
	for _, item := range items {
		if item.Category == category {
			filtered = append(filtered, item)
		}
	}
	return filtered, nil
}

// Create uploads the image first, then inserts the record carrying the
// returned URL plus the metadata fields.
func (s *service) Create(ctx context.Context, req CreateRequest) (*Item, error) {
	if !req.Actor.IsAdmin() {
		return nil, ErrNotAuthorized
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	imageURL := ""
	if req.Upload != nil {
		url, err := s.uploadImage(ctx, *req.Upload)
		if err != nil {
			return nil, err
		}
		imageURL = url
	}

	now := s.now()
	created, err := s.repo.Insert(ctx, &Item{
		ID:        s.id(),
		Category:  strings.TrimSpace(req.Category),
		Title:     strings.TrimSpace(req.Title),
		Location:  strings.TrimSpace(req.Location),
		Image:     imageURL,
		CreatedBy: req.Actor.UID,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// CreateMany issues all uploads concurrently with no ordering guarantee on
// completion. Results are reported per upload in input order.
func (s *service) CreateMany(ctx context.Context, req CreateManyRequest) []CreateResult {
	if err := req.Validate(); err != nil {
		// with zero uploads the slice still carries one failed result so
		// the caller never mistakes a rejected batch for an empty success
		if len(req.Uploads) == 0 {
			return []CreateResult{{Err: err}}
		}
		results := make([]CreateResult, len(req.Uploads))
		for i := range results {
			results[i] = CreateResult{Err: err}
		}
		return results
	}

	results := make([]CreateResult, len(req.Uploads))

	var wg sync.WaitGroup
	for i := range req.Uploads {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			upload := req.Uploads[i]
			item, err := s.Create(ctx, CreateRequest{
				Category: req.Category,
				Title:    req.Title,
				Location: req.Location,
				Upload:   &upload,
				Actor:    req.Actor,
			})
			results[i] = CreateResult{Item: item, Err: err}
		}(i)
	}
	wg.Wait()
	return results
}

// Update merges partial fields into the existing record, replacing the image
// only when a new upload is supplied.
func (s *service) Update(ctx context.Context, req UpdateRequest) (*Item, error) {
	if !req.Actor.IsAdmin() {
		return nil, ErrNotAuthorized
	}
	if req.ID == uuid.Nil {
		return nil, ErrItemIDRequired
	}

	existing, err := s.repo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.Upload != nil {
		url, err := s.uploadImage(ctx, *req.Upload)
		if err != nil {
			return nil, err
		}
		existing.Image = url
	}
	if req.Category != nil {
		existing.Category = strings.TrimSpace(*req.Category)
	}
	if req.Title != nil {
		existing.Title = strings.TrimSpace(*req.Title)
	}
	if req.Location != nil {
		existing.Location = strings.TrimSpace(*req.Location)
	}
	existing.UpdatedAt = s.now()

	return s.repo.Update(ctx, existing)
}

// Delete removes the record. The underlying blob is intentionally left in
// place.
func (s *service) Delete(ctx context.Context, id uuid.UUID, actor domain.Actor) error {
	if !actor.IsAdmin() {
		return ErrNotAuthorized
	}
	if id == uuid.Nil {
		return ErrItemIDRequired
	}
	return s.repo.Delete(ctx, id)
}

// Categories returns the selectable categories, falling back to the static
// table when the navigation document is empty or unreachable so admins are
// never locked out of categorizing items.
func (s *service) Categories(ctx context.Context) []Category {
	if s.categories != nil {
		categories, err := s.categories.Categories(ctx)
		if err != nil {
			s.logger.Warn("category lookup failed, using fallback table", "error", err)
		} else if len(categories) > 0 {
			return categories
		}
	}
	return append([]Category(nil), s.fallback...)
}

func (s *service) uploadImage(ctx context.Context, upload interfaces.Upload) (string, error) {
	if s.blobs == nil {
		return "", ErrUploadUnavailable
	}
	url, err := s.blobs.Put(ctx, s.folder, upload)
	if err != nil {
		return "", fmt.Errorf("gallery: image upload failed: %w", err)
	}
	return url, nil
}
