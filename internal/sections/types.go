package sections

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-sitecontent/internal/merge"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Document is the persisted record for one section's editable content. The
// payload is loosely typed; each section defines its own shape through its
// default table.
type Document struct {
	bun.BaseModel `bun:"table:section_documents,alias:sd"`

	ID        uuid.UUID      `bun:",pk,type:uuid"                json:"id"`
	Key       string         `bun:"key,notnull,unique"           json:"key"`
	Data      map[string]any `bun:"data,type:jsonb,notnull"      json:"data"`
	UpdatedBy string         `bun:"updated_by"                   json:"updated_by,omitempty"`
	CreatedAt time.Time      `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time      `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// Registry holds the compile-time default table for every section. Every
// field a view ever reads must have a registry entry so partial remote
// documents never produce undefined fields after merge.
type Registry struct {
	mu       sync.RWMutex
	defaults map[string]map[string]any
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{defaults: make(map[string]map[string]any)}
}

// Register installs (or replaces) the default table for a section key.
func (r *Registry) Register(key string, defaults map[string]any) {
	key = NormalizeKey(key)
	if key == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.defaults[key] = merge.Clone(defaults)
}

// Defaults returns a copy of the default table for the key, or an empty
// document when the section was never registered.
func (r *Registry) Defaults(key string) map[string]any {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if defaults, ok := r.defaults[NormalizeKey(key)]; ok {
		return merge.Clone(defaults)
	}
	return map[string]any{}
}

// Known reports whether the key has a registered default table.
func (r *Registry) Known(key string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.defaults[NormalizeKey(key)]
	return ok
}

// Keys lists registered section keys in stable order.
func (r *Registry) Keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	keys := make([]string, 0, len(r.defaults))
	for key := range r.defaults {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// NormalizeKey canonicalizes a section key.
func NormalizeKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}
