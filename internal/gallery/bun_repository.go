package gallery

import (
	"context"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// BunRepository persists gallery items through go-repository-bun.
type BunRepository struct {
	repo repository.Repository[*Item]
}

// NewBunRepository constructs the repository without caching.
func NewBunRepository(db *bun.DB) *BunRepository {
	return NewBunRepositoryWithCache(db, nil, nil)
}

// NewBunRepositoryWithCache constructs the repository with optional read caching.
func NewBunRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunRepository {
	base := NewItemRepository(db)
	if cacheService != nil && keySerializer != nil {
		base = repositorycache.New(base, cacheService, keySerializer)
	}
	return &BunRepository{repo: base}
}

// List returns all items ordered by insertion time.
func (r *BunRepository) List(ctx context.Context) ([]*Item, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Order("created_at ASC").Order("id ASC")
		}),
	)
	if err != nil {
		return nil, mapRepositoryError(err, uuid.Nil)
	}
	return records, nil
}

// GetByID retrieves an item by identifier.
func (r *BunRepository) GetByID(ctx context.Context, id uuid.UUID) (*Item, error) {
	result, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, id)
	}
	return result, nil
}

// Insert stores a new item.
func (r *BunRepository) Insert(ctx context.Context, item *Item) (*Item, error) {
	created, err := r.repo.Create(ctx, item)
	if err != nil {
		return nil, mapRepositoryError(err, item.ID)
	}
	return created, nil
}

// Update replaces the stored record.
func (r *BunRepository) Update(ctx context.Context, item *Item) (*Item, error) {
	updated, err := r.repo.Update(ctx, item)
	if err != nil {
		return nil, mapRepositoryError(err, item.ID)
	}
	return updated, nil
}

// Delete removes the record. The underlying blob is not cascaded.
func (r *BunRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.repo.Delete(ctx, &Item{ID: id}); err != nil {
		return mapRepositoryError(err, id)
	}
	return nil
}

func mapRepositoryError(err error, id uuid.UUID) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		key := ""
		if id != uuid.Nil {
			key = id.String()
		}
		return &NotFoundError{Resource: "gallery item", Key: key}
	}
	return fmt.Errorf("gallery repository error: %w", err)
}
