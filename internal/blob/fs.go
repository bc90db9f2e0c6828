package blob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/goliatone/go-sitecontent/pkg/interfaces"
)

var ErrUploadNameRequired = errors.New("blob: upload name required")

// FSProviderOption configures the filesystem provider.
type FSProviderOption func(*FSProvider)

// WithClock overrides the clock used to prefix stored filenames.
func WithClock(clock func() time.Time) FSProviderOption {
	return func(p *FSProvider) {
		if clock != nil {
			p.now = clock
		}
	}
}

// FSProvider stores uploads under a root directory. Each file is prefixed
// with the upload timestamp in milliseconds so repeated uploads of the same
// filename never collide.
type FSProvider struct {
	root    string
	baseURL string
	now     func() time.Time
}

// NewFSProvider creates a provider rooted at dir, serving URLs under baseURL.
func NewFSProvider(root, baseURL string, opts ...FSProviderOption) *FSProvider {
	p := &FSProvider{
		root:    root,
		baseURL: strings.TrimRight(baseURL, "/"),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Put writes the upload and returns its public URL.
func (p *FSProvider) Put(ctx context.Context, folder string, upload interfaces.Upload) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	name := StampName(p.now(), upload.Name)
	if name == "" {
		return "", ErrUploadNameRequired
	}
	folder = sanitizeFolder(folder)

	dir := filepath.Join(p.root, filepath.FromSlash(folder))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("blob: create folder %q: %w", folder, err)
	}

	target := filepath.Join(dir, name)
	file, err := os.Create(target)
	if err != nil {
		return "", fmt.Errorf("blob: create file %q: %w", name, err)
	}
	if _, err := io.Copy(file, upload.Content); err != nil {
		file.Close()
		os.Remove(target)
		return "", fmt.Errorf("blob: write file %q: %w", name, err)
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("blob: close file %q: %w", name, err)
	}

	return p.url(folder, name), nil
}

func (p *FSProvider) url(folder, name string) string {
	if folder == "" {
		return p.baseURL + "/" + name
	}
	return p.baseURL + "/" + folder + "/" + name
}

// StampName builds the stored filename: the timestamp in milliseconds, an
// underscore, then the sanitized original name.
func StampName(now time.Time, original string) string {
	base := sanitizeName(original)
	if base == "" {
		return ""
	}
	return fmt.Sprintf("%d_%s", now.UnixMilli(), base)
}

// sanitizeName keeps only the final path element and drops separators that
// could escape the target folder.
func sanitizeName(name string) string {
	name = strings.TrimSpace(name)
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	if name == "." || name == "/" {
		return ""
	}
	return name
}

func sanitizeFolder(folder string) string {
	parts := strings.Split(strings.ReplaceAll(folder, "\\", "/"), "/")
	clean := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" || part == "." || part == ".." {
			continue
		}
		clean = append(clean, part)
	}
	return strings.Join(clean, "/")
}
