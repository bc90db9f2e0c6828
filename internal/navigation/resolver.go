package navigation

import (
	"fmt"
	"strings"

	urlkit "github.com/goliatone/go-urlkit"
)

// PathResolver turns an entry slug into the path stored alongside the entry.
type PathResolver interface {
	Resolve(slug string) (string, error)
}

// StaticResolver joins a fixed prefix with the slug. It is the default when
// no route manager is configured.
type StaticResolver struct {
	Prefix string
}

// Resolve returns prefix/slug with duplicate separators trimmed.
func (r StaticResolver) Resolve(slug string) (string, error) {
	prefix := strings.TrimRight(r.Prefix, "/")
	if prefix == "" {
		prefix = "/activities"
	}
	return prefix + "/" + strings.TrimLeft(slug, "/"), nil
}

// URLKitResolverOptions configures the go-urlkit backed resolver.
type URLKitResolverOptions struct {
	Manager   *urlkit.RouteManager
	Group     string
	Route     string
	SlugParam string
}

// URLKitResolver resolves entry paths through a go-urlkit RouteManager.
type URLKitResolver struct {
	manager   *urlkit.RouteManager
	group     string
	route     string
	slugParam string
}

// NewURLKitResolver constructs a resolver backed by go-urlkit.
func NewURLKitResolver(opts URLKitResolverOptions) *URLKitResolver {
	if opts.Group == "" {
		opts.Group = "site"
	}
	if opts.Route == "" {
		opts.Route = "activity"
	}
	if opts.SlugParam == "" {
		opts.SlugParam = "slug"
	}
	return &URLKitResolver{
		manager:   opts.Manager,
		group:     opts.Group,
		route:     opts.Route,
		slugParam: opts.SlugParam,
	}
}

// Resolve builds the entry path using the configured route manager.
func (r *URLKitResolver) Resolve(slug string) (string, error) {
	if r == nil || r.manager == nil {
		return "", fmt.Errorf("navigation: route manager not configured")
	}
	group, err := lookupGroup(r.manager, r.group)
	if err != nil {
		return "", err
	}
	builder, err := safeBuilder(group, r.route)
	if err != nil {
		return "", err
	}
	builder.WithParam(r.slugParam, slug)
	return builder.Build()
}

func lookupGroup(manager *urlkit.RouteManager, name string) (group *urlkit.Group, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("navigation: route group %q not found", name)
		}
	}()
	group = manager.Group(name)
	return group, err
}

func safeBuilder(group *urlkit.Group, route string) (builder *urlkit.Builder, err error) {
	if group == nil {
		return nil, fmt.Errorf("navigation: urlkit group is nil")
	}
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("navigation: urlkit builder panic: %v", rec)
		}
	}()
	builder = group.Builder(route)
	return builder, err
}
