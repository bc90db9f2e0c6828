package auth

import (
	"context"
	"sync"
	"time"

	"github.com/goliatone/go-sitecontent/internal/identity"
	"github.com/google/uuid"
)

// MemoryRepository is an in-memory user store used in tests and when no
// database is configured.
type MemoryRepository struct {
	mu    sync.RWMutex
	users map[string]*UserRecord
	now   func() time.Time

	// FailGets forces lookups to error so tests can exercise the
	// fail-closed role resolution path.
	FailGets error
}

// NewMemoryRepository creates an empty in-memory user repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		users: make(map[string]*UserRecord),
		now:   time.Now,
	}
}

// GetByUID returns the stored record for the uid.
func (m *MemoryRepository) GetByUID(_ context.Context, uid string) (*UserRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.FailGets != nil {
		return nil, m.FailGets
	}
	user, ok := m.users[uid]
	if !ok {
		return nil, &NotFoundError{Resource: "user", Key: uid}
	}
	return cloneUser(user), nil
}

// Upsert stores the record, creating it on first write.
func (m *MemoryRepository) Upsert(_ context.Context, user *UserRecord) (*UserRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := cloneUser(user)
	now := m.now()
	if existing, ok := m.users[copied.UID]; ok {
		copied.ID = existing.ID
		copied.CreatedAt = existing.CreatedAt
	} else {
		if copied.ID == uuid.Nil {
			copied.ID = identity.UserUUID(copied.UID)
		}
		copied.CreatedAt = now
	}
	copied.UpdatedAt = now
	m.users[copied.UID] = copied
	return cloneUser(copied), nil
}
