package gallery

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemoryRepository is an in-memory implementation for scaffolding and tests.
// Insertion order is preserved for List.
type MemoryRepository struct {
	mu    sync.RWMutex
	order []uuid.UUID
	items map[uuid.UUID]*Item

	// FailInserts forces Insert to error so tests can exercise partial
	// multi-upload failures.
	FailInserts error
}

// NewMemoryRepository creates an empty in-memory item repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{items: make(map[uuid.UUID]*Item)}
}

// List returns all items in insertion order.
func (m *MemoryRepository) List(_ context.Context) ([]*Item, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Item, 0, len(m.order))
	for _, id := range m.order {
		if item, ok := m.items[id]; ok {
			out = append(out, cloneItem(item))
		}
	}
	return out, nil
}

// GetByID retrieves an item by identifier.
func (m *MemoryRepository) GetByID(_ context.Context, id uuid.UUID) (*Item, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	item, ok := m.items[id]
	if !ok {
		return nil, &NotFoundError{Resource: "gallery item", Key: id.String()}
	}
	return cloneItem(item), nil
}

// Insert appends the item.
func (m *MemoryRepository) Insert(_ context.Context, item *Item) (*Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailInserts != nil {
		return nil, m.FailInserts
	}
	copied := cloneItem(item)
	m.items[copied.ID] = copied
	m.order = append(m.order, copied.ID)
	return cloneItem(copied), nil
}

// Update replaces the stored record.
func (m *MemoryRepository) Update(_ context.Context, item *Item) (*Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.items[item.ID]; !ok {
		return nil, &NotFoundError{Resource: "gallery item", Key: item.ID.String()}
	}
	m.items[item.ID] = cloneItem(item)
	return cloneItem(item), nil
}

// Delete removes the record.
func (m *MemoryRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.items[id]; !ok {
		return &NotFoundError{Resource: "gallery item", Key: id.String()}
	}
	delete(m.items, id)
	for i, existing := range m.order {
		if existing == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}
