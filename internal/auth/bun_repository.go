package auth

import (
	"context"
	"fmt"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/goliatone/go-sitecontent/internal/identity"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// BunRepository persists user records through go-repository-bun.
type BunRepository struct {
	repo repository.Repository[*UserRecord]
	now  func() time.Time
}

// NewBunRepository constructs the repository without caching.
func NewBunRepository(db *bun.DB) *BunRepository {
	return NewBunRepositoryWithCache(db, nil, nil)
}

// NewBunRepositoryWithCache constructs the repository with optional read caching.
func NewBunRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunRepository {
	base := NewUserRecordRepository(db)
	if cacheService != nil && keySerializer != nil {
		base = repositorycache.New(base, cacheService, keySerializer)
	}
	return &BunRepository{
		repo: base,
		now:  time.Now,
	}
}

// GetByUID retrieves a user record by identity uid.
func (r *BunRepository) GetByUID(ctx context.Context, uid string) (*UserRecord, error) {
	result, err := r.repo.GetByIdentifier(ctx, uid)
	if err != nil {
		return nil, mapRepositoryError(err, "user", uid)
	}
	return result, nil
}

// Upsert writes the record, creating it on first write.
func (r *BunRepository) Upsert(ctx context.Context, user *UserRecord) (*UserRecord, error) {
	now := r.now()

	existing, err := r.repo.GetByIdentifier(ctx, user.UID)
	if err != nil {
		if !goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
			return nil, mapRepositoryError(err, "user", user.UID)
		}
		record := cloneUser(user)
		if record.ID == uuid.Nil {
			record.ID = identity.UserUUID(record.UID)
		}
		record.CreatedAt = now
		record.UpdatedAt = now
		created, createErr := r.repo.Create(ctx, record)
		if createErr != nil {
			return nil, mapRepositoryError(createErr, "user", user.UID)
		}
		return created, nil
	}

	existing.Email = user.Email
	existing.Role = user.Role
	existing.UpdatedAt = now

	updated, err := r.repo.Update(ctx, existing)
	if err != nil {
		return nil, mapRepositoryError(err, "user", user.UID)
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
