package auth

import (
	"context"
	"fmt"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// UserRepository looks up stored user profiles by their identity uid.
type UserRepository interface {
	GetByUID(ctx context.Context, uid string) (*UserRecord, error)
	Upsert(ctx context.Context, user *UserRecord) (*UserRecord, error)
}

// NotFoundError represents missing records from repository lookups.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}

// NewUserRecordRepository builds the generic bun repository for user records.
func NewUserRecordRepository(db *bun.DB) repository.Repository[*UserRecord] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*UserRecord]{
		NewRecord: func() *UserRecord { return &UserRecord{} },
		GetID: func(u *UserRecord) uuid.UUID {
			return u.ID
		},
		SetID: func(u *UserRecord, id uuid.UUID) {
			u.ID = id
		},
		GetIdentifier: func() string {
			return "uid"
		},
		GetIdentifierValue: func(u *UserRecord) string {
			return u.UID
		},
	})
}
