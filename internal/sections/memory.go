package sections

import (
	"context"
	"sync"
	"time"

	"github.com/goliatone/go-sitecontent/internal/identity"
	"github.com/goliatone/go-sitecontent/internal/merge"
)

// MemoryRepository is an in-memory implementation for scaffolding and tests.
type MemoryRepository struct {
	mu   sync.RWMutex
	docs map[string]*Document
	now  func() time.Time

	// FailGets and FailSets force errors, letting tests exercise the
	// fallback and retry paths.
	FailGets error
	FailSets error
}

// NewMemoryRepository creates an empty in-memory section repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		docs: make(map[string]*Document),
		now:  time.Now,
	}
}

// Get retrieves a document by section key.
func (m *MemoryRepository) Get(_ context.Context, key string) (*Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.FailGets != nil {
		return nil, m.FailGets
	}
	doc, ok := m.docs[NormalizeKey(key)]
	if !ok {
		return nil, &NotFoundError{Resource: "section", Key: key}
	}
	return cloneDocument(doc), nil
}

// Set merge-writes the partial document, creating the record on first write.
func (m *MemoryRepository) Set(_ context.Context, key string, partial map[string]any, updatedBy string) (*Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailSets != nil {
		return nil, m.FailSets
	}

	key = NormalizeKey(key)
	now := m.now()
	existing, ok := m.docs[key]
	if !ok {
		created := &Document{
			ID:        identity.SectionUUID(key),
			Key:       key,
			Data:      merge.Apply(map[string]any{}, partial),
			UpdatedBy: updatedBy,
			CreatedAt: now,
			UpdatedAt: now,
		}
		m.docs[key] = created
		return cloneDocument(created), nil
	}

	existing.Data = merge.Apply(existing.Data, partial)
	existing.UpdatedBy = updatedBy
	existing.UpdatedAt = now
	return cloneDocument(existing), nil
}

func cloneDocument(src *Document) *Document {
	if src == nil {
		return nil
	}
	copied := *src
	copied.Data = merge.Clone(src.Data)
	return &copied
}
