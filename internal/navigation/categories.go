package navigation

import (
	"context"
	"strings"

	"github.com/goliatone/go-sitecontent/internal/gallery"
	slug "github.com/goliatone/go-slug"
)

// CategorySource adapts navigation entries into gallery categories so the
// gallery picker tracks the activity menu.
type CategorySource struct {
	service Service
}

// NewCategorySource wraps a navigation service as a gallery category
// provider.
func NewCategorySource(service Service) *CategorySource {
	return &CategorySource{service: service}
}

// Categories maps each entry to a category keyed by its slug.
func (c *CategorySource) Categories(ctx context.Context) ([]gallery.Category, error) {
	entries := c.service.Entries(ctx)
	categories := make([]gallery.Category, 0, len(entries))
	for _, entry := range entries {
		value := entrySlug(entry)
		if value == "" {
			continue
		}
		categories = append(categories, gallery.Category{
			Name:  entry.Name,
			Value: value,
		})
	}
	return categories, nil
}

// entrySlug prefers the trailing path segment, which carries the slug the
// entry was created with, and falls back to slugging the display name.
func entrySlug(entry Entry) string {
	trimmed := strings.Trim(entry.Path, "/")
	if idx := strings.LastIndex(trimmed, "/"); idx >= 0 {
		trimmed = trimmed[idx+1:]
	}
	if trimmed != "" {
		return trimmed
	}
	normalized, err := slug.Normalize(entry.Name)
	if err != nil {
		return ""
	}
	return normalized
}
