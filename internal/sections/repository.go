package sections

import (
	"context"
	"fmt"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Repository abstracts storage for section documents. Set performs a
// merge-write: nested records merge recursively, scalars and arrays from the
// partial replace the stored value, and the document is created on first
// write (upsert semantics).
type Repository interface {
	Get(ctx context.Context, key string) (*Document, error)
	Set(ctx context.Context, key string, partial map[string]any, updatedBy string) (*Document, error)
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

// NewDocumentRepository builds the generic bun repository for section documents.
func NewDocumentRepository(db *bun.DB) repository.Repository[*Document] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Document]{
		NewRecord: func() *Document { return &Document{} },
		GetID: func(d *Document) uuid.UUID {
			return d.ID
		},
		SetID: func(d *Document, id uuid.UUID) {
			d.ID = id
		},
		GetIdentifier: func() string {
			return "key"
		},
		GetIdentifierValue: func(d *Document) string {
			return d.Key
		},
	})
}
