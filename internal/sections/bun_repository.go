package sections

import (
	"context"
	"fmt"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/goliatone/go-sitecontent/internal/identity"
	"github.com/goliatone/go-sitecontent/internal/merge"
	"github.com/uptrace/bun"
)

// WriteGuard vets merge-writes before they reach the database. A nil guard
// allows every write.
type WriteGuard func(ctx context.Context) error

// BunRepository persists section documents through go-repository-bun.
type BunRepository struct {
	repo  repository.Repository[*Document]
	guard WriteGuard
	now   func() time.Time
}

// BunOption customizes a BunRepository.
type BunOption func(*BunRepository)

// WithWriteGuard installs a server-side check run before every Set.
func WithWriteGuard(guard WriteGuard) BunOption {
	return func(r *BunRepository) {
		r.guard = guard
	}
}

// NewBunRepository constructs the repository without caching.
func NewBunRepository(db *bun.DB, opts ...BunOption) *BunRepository {
	return NewBunRepositoryWithCache(db, nil, nil, opts...)
}

// NewBunRepositoryWithCache constructs the repository with optional read caching.
func NewBunRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer, opts ...BunOption) *BunRepository {
	base := NewDocumentRepository(db)
	repo := &BunRepository{
		repo: wrapWithCache(base, cacheService, keySerializer),
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(repo)
	}
	return repo
}

// Get retrieves a document by section key.
func (r *BunRepository) Get(ctx context.Context, key string) (*Document, error) {
	result, err := r.repo.GetByIdentifier(ctx, NormalizeKey(key))
	if err != nil {
		return nil, mapRepositoryError(err, "section", key)
	}
	return result, nil
}

// Set merge-writes the partial document, creating the record on first write.
func (r *BunRepository) Set(ctx context.Context, key string, partial map[string]any, updatedBy string) (*Document, error) {
	key = NormalizeKey(key)
	if r.guard != nil {
		if err := r.guard(ctx); err != nil {
			return nil, err
		}
	}
	now := r.now()

	existing, err := r.repo.GetByIdentifier(ctx, key)
	if err != nil {
		if !goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
			return nil, mapRepositoryError(err, "section", key)
		}
		created, createErr := r.repo.Create(ctx, &Document{
			ID:        identity.SectionUUID(key),
			Key:       key,
			Data:      merge.Apply(map[string]any{}, partial),
			UpdatedBy: updatedBy,
			CreatedAt: now,
			UpdatedAt: now,
		})
		if createErr != nil {
			return nil, mapRepositoryError(createErr, "section", key)
		}
		return created, nil
	}

	existing.Data = merge.Apply(existing.Data, partial)
	existing.UpdatedBy = updatedBy
	existing.UpdatedAt = now

	updated, err := r.repo.Update(ctx, existing)
	if err != nil {
		return nil, mapRepositoryError(err, "section", key)
	}
	return updated, nil
}

func mapRepositoryError(err error, resource, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{
			Resource: resource,
			Key:      key,
		}
	}
	return fmt.Errorf("%s repository error: %w", resource, err)
}

func wrapWithCache[T any](base repository.Repository[T], cacheService cache.CacheService, keySerializer cache.KeySerializer) repository.Repository[T] {
	if cacheService == nil || keySerializer == nil {
		return base
	}
	return repositorycache.New(base, cacheService, keySerializer)
}
