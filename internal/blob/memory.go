package blob

import (
	"context"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-sitecontent/pkg/interfaces"
)

// MemoryProvider keeps uploads in memory. It is used in tests and when no
// storage backend is configured.
type MemoryProvider struct {
	mu      sync.Mutex
	objects map[string][]byte
	baseURL string
	now     func() time.Time

	// FailPuts forces Put to error so tests can exercise upload failures.
	FailPuts error
}

// MemoryProviderOption configures the in-memory provider.
type MemoryProviderOption func(*MemoryProvider)

// WithMemoryClock overrides the clock used to prefix stored filenames.
func WithMemoryClock(clock func() time.Time) MemoryProviderOption {
	return func(p *MemoryProvider) {
		if clock != nil {
			p.now = clock
		}
	}
}

// NewMemoryProvider creates an empty in-memory blob store.
func NewMemoryProvider(baseURL string, opts ...MemoryProviderOption) *MemoryProvider {
	p := &MemoryProvider{
		objects: make(map[string][]byte),
		baseURL: strings.TrimRight(baseURL, "/"),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Put stores the upload and returns its URL.
func (p *MemoryProvider) Put(_ context.Context, folder string, upload interfaces.Upload) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.FailPuts != nil {
		return "", p.FailPuts
	}
	name := StampName(p.now(), upload.Name)
	if name == "" {
		return "", ErrUploadNameRequired
	}

	content, err := io.ReadAll(upload.Content)
	if err != nil {
		return "", err
	}

	key := sanitizeFolder(folder) + "/" + name
	p.objects[key] = content
	return p.baseURL + "/" + key, nil
}

// Object returns the stored bytes for a key, for test assertions.
func (p *MemoryProvider) Object(key string) ([]byte, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	content, ok := p.objects[key]
	return content, ok
}

// Len reports how many objects are stored.
func (p *MemoryProvider) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.objects)
}
