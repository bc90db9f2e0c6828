package di

import (
	"context"
	"strings"
	"time"

	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/goliatone/go-sitecontent/internal/auth"
	"github.com/goliatone/go-sitecontent/internal/blob"
	"github.com/goliatone/go-sitecontent/internal/gallery"
	"github.com/goliatone/go-sitecontent/internal/logging"
	"github.com/goliatone/go-sitecontent/internal/logging/gologger"
	"github.com/goliatone/go-sitecontent/internal/mailer"
	"github.com/goliatone/go-sitecontent/internal/navigation"
	"github.com/goliatone/go-sitecontent/internal/runtimeconfig"
	"github.com/goliatone/go-sitecontent/internal/sections"
	"github.com/goliatone/go-sitecontent/internal/validation"
	"github.com/goliatone/go-sitecontent/pkg/interfaces"
	urlkit "github.com/goliatone/go-urlkit"
	"github.com/uptrace/bun"
)

// Container wires module dependencies. Memory-backed defaults keep the
// module usable without a database; a bun handle upgrades storage in place.
type Container struct {
	Config runtimeconfig.Config

	bunDB         *bun.DB
	cacheTTL      time.Duration
	cacheService  repocache.CacheService
	keySerializer repocache.KeySerializer

	loggerProvider interfaces.LoggerProvider
	blobProvider   interfaces.BlobProvider
	identity       interfaces.IdentityProvider
	mailProvider   interfaces.MailProvider

	registry  *sections.Registry
	schemaSet *validation.SchemaSet

	sectionRepo sections.Repository
	galleryRepo gallery.Repository
	userRepo    auth.UserRepository

	routeManager *urlkit.RouteManager
	pathResolver navigation.PathResolver

	sectionSvc    sections.Service
	gallerySvc    gallery.Service
	navigationSvc navigation.Service
	mailerSvc     mailer.Service
	authSvc       auth.Service
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithBunDB binds relational storage for documents, gallery items, and users.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithCache overrides the default cache bindings.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithLoggerProvider overrides the default logger provider.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithBlobProvider overrides the default blob store.
func WithBlobProvider(provider interfaces.BlobProvider) Option {
	return func(c *Container) {
		c.blobProvider = provider
	}
}

// WithIdentityProvider binds the session source used for admin gating.
func WithIdentityProvider(provider interfaces.IdentityProvider) Option {
	return func(c *Container) {
		c.identity = provider
	}
}

// WithMailProvider overrides the default mail delivery binding.
func WithMailProvider(provider interfaces.MailProvider) Option {
	return func(c *Container) {
		c.mailProvider = provider
	}
}

// WithRegistry overrides the default section registry.
func WithRegistry(registry *sections.Registry) Option {
	return func(c *Container) {
		if registry != nil {
			c.registry = registry
		}
	}
}

// WithSchemaSet attaches per-section document validation.
func WithSchemaSet(set *validation.SchemaSet) Option {
	return func(c *Container) {
		c.schemaSet = set
	}
}

// WithSectionRepository overrides the default section document repository.
func WithSectionRepository(repo sections.Repository) Option {
	return func(c *Container) {
		if repo != nil {
			c.sectionRepo = repo
		}
	}
}

// WithGalleryRepository overrides the default gallery item repository.
func WithGalleryRepository(repo gallery.Repository) Option {
	return func(c *Container) {
		if repo != nil {
			c.galleryRepo = repo
		}
	}
}

// WithUserRepository overrides the default user record repository.
func WithUserRepository(repo auth.UserRepository) Option {
	return func(c *Container) {
		if repo != nil {
			c.userRepo = repo
		}
	}
}

// WithSectionService overrides the default section service binding.
func WithSectionService(svc sections.Service) Option {
	return func(c *Container) {
		c.sectionSvc = svc
	}
}

// WithGalleryService overrides the default gallery service binding.
func WithGalleryService(svc gallery.Service) Option {
	return func(c *Container) {
		c.gallerySvc = svc
	}
}

// WithNavigationService overrides the default navigation service binding.
func WithNavigationService(svc navigation.Service) Option {
	return func(c *Container) {
		c.navigationSvc = svc
	}
}

// WithMailerService overrides the default mailer service binding.
func WithMailerService(svc mailer.Service) Option {
	return func(c *Container) {
		c.mailerSvc = svc
	}
}

// NewContainer creates a container with the provided configuration.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) *Container {
	if err := cfg.Validate(); err != nil {
		panic(err)
	}

	cacheTTL := cfg.Cache.DefaultTTL
	if cacheTTL <= 0 {
		cacheTTL = time.Minute
	}

	c := &Container{
		Config:      cfg,
		cacheTTL:    cacheTTL,
		registry:    sections.DefaultRegistry(),
		sectionRepo: sections.NewMemoryRepository(),
		galleryRepo: gallery.NewMemoryRepository(),
		userRepo:    auth.NewMemoryRepository(),
	}

	for _, opt := range opts {
		opt(c)
	}

	c.configureLogging()
	c.configureCacheDefaults()
	c.configureRepositories()
	c.configureBlob()
	c.configureNavigation()

	if c.sectionSvc == nil {
		sectionOpts := []sections.ServiceOption{
			sections.WithLogger(c.loggerProvider.GetLogger("sections")),
		}
		if c.blobProvider != nil {
			sectionOpts = append(sectionOpts, sections.WithBlobProvider(c.blobProvider))
		}
		if c.schemaSet != nil {
			sectionOpts = append(sectionOpts, sections.WithDocumentValidator(c.schemaSet.DocumentValidator()))
		}
		c.sectionSvc = sections.NewService(c.sectionRepo, c.registry, sectionOpts...)
	}

	if c.navigationSvc == nil && c.Config.Features.Navigation {
		navOpts := []navigation.ServiceOption{
			navigation.WithLogger(c.loggerProvider.GetLogger("navigation")),
		}
		if c.pathResolver != nil {
			navOpts = append(navOpts, navigation.WithPathResolver(c.pathResolver))
		}
		c.navigationSvc = navigation.NewService(c.sectionRepo, navOpts...)
	}

	if c.gallerySvc == nil && c.Config.Features.Galleries {
		galleryOpts := []gallery.ServiceOption{
			gallery.WithLogger(c.loggerProvider.GetLogger("gallery")),
		}
		if c.blobProvider != nil {
			galleryOpts = append(galleryOpts, gallery.WithBlobProvider(c.blobProvider))
		}
		if c.navigationSvc != nil {
			galleryOpts = append(galleryOpts, gallery.WithCategoryProvider(navigation.NewCategorySource(c.navigationSvc)))
		}
		c.gallerySvc = gallery.NewService(c.galleryRepo, galleryOpts...)
	}

	if c.mailerSvc == nil && c.Config.Features.Mailer {
		provider := c.mailProvider
		if provider == nil {
			provider = mailer.NewHTTPProvider(mailer.HTTPProviderOptions{
				Endpoint:  c.Config.Mailer.Endpoint,
				ServiceID: c.Config.Mailer.ServiceID,
				PublicKey: c.Config.Mailer.PublicKey,
			})
		}
		mailerOpts := []mailer.ServiceOption{
			mailer.WithLogger(c.loggerProvider.GetLogger("mailer")),
		}
		if templateID := strings.TrimSpace(c.Config.Mailer.TemplateID); templateID != "" {
			mailerOpts = append(mailerOpts, mailer.WithTemplateID(templateID))
		}
		c.mailerSvc = mailer.NewService(provider, mailerOpts...)
	}

	if c.authSvc == nil && c.identity != nil {
		c.authSvc = auth.NewService(c.identity, c.userRepo,
			auth.WithLogger(c.loggerProvider.GetLogger("auth")))
	}

	return c
}

func (c *Container) configureLogging() {
	if c.loggerProvider != nil {
		return
	}
	if c.Config.Features.Logger {
		gcfg := gologger.Config{
			Level:     c.Config.Logging.Level,
			Format:    c.Config.Logging.Format,
			AddSource: c.Config.Logging.AddSource,
			Focus:     c.Config.Logging.Focus,
		}
		switch normalizeProvider(c.Config.Logging.Provider) {
		case "gologger":
		case "console":
			// console is the human-readable variant of the same adapter
			gcfg.Format = "console"
		default:
			c.loggerProvider = logging.NoOpProvider()
			return
		}
		provider, err := gologger.NewProvider(gcfg)
		if err == nil {
			c.loggerProvider = provider
			return
		}
	}
	c.loggerProvider = logging.NoOpProvider()
}

func (c *Container) configureCacheDefaults() {
	if !c.Config.Cache.Enabled {
		return
	}

	if c.cacheService == nil {
		cfg := repocache.DefaultConfig()
		if c.cacheTTL > 0 {
			cfg.TTL = c.cacheTTL
		}
		service, err := repocache.NewCacheService(cfg)
		if err == nil {
			c.cacheService = service
		}
	}

	if c.cacheService != nil && c.keySerializer == nil {
		c.keySerializer = repocache.NewDefaultKeySerializer()
	}
}

func (c *Container) configureRepositories() {
	if c.bunDB == nil {
		return
	}
	c.sectionRepo = sections.NewBunRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer,
		sections.WithWriteGuard(c.sectionWriteGuard))
	c.galleryRepo = gallery.NewBunRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
	c.userRepo = auth.NewBunRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
}

// sectionWriteGuard rejects database writes from non-admin identities. Without
// an identity provider the caller is trusted and writes pass through.
func (c *Container) sectionWriteGuard(ctx context.Context) error {
	if c.authSvc == nil {
		return nil
	}
	if err := c.authSvc.WaitResolved(ctx); err != nil {
		return err
	}
	if !c.authSvc.IsAdmin() {
		return sections.ErrNotAuthorized
	}
	return nil
}

func (c *Container) configureBlob() {
	if c.blobProvider != nil {
		return
	}
	blobCfg := c.Config.Blob
	switch normalizeProvider(blobCfg.Provider) {
	case "fs":
		c.blobProvider = blob.NewFSProvider(blobCfg.Root, blobCfg.BaseURL)
	case "memory":
		c.blobProvider = blob.NewMemoryProvider(blobCfg.BaseURL)
	}
}

func (c *Container) configureNavigation() {
	if c.pathResolver != nil {
		return
	}

	navCfg := c.Config.Navigation
	if navCfg.RouteConfig != nil {
		manager := urlkit.NewRouteManager(navCfg.RouteConfig)
		c.routeManager = manager
		c.pathResolver = navigation.NewURLKitResolver(navigation.URLKitResolverOptions{
			Manager:   manager,
			Group:     strings.TrimSpace(navCfg.URLKit.Group),
			Route:     strings.TrimSpace(navCfg.URLKit.Route),
			SlugParam: strings.TrimSpace(navCfg.URLKit.SlugParam),
		})
		return
	}
	if prefix := strings.TrimSpace(navCfg.PathPrefix); prefix != "" {
		c.pathResolver = navigation.StaticResolver{Prefix: prefix}
	}
}

// SectionService returns the configured section service.
func (c *Container) SectionService() sections.Service {
	return c.sectionSvc
}

// GalleryService returns the configured gallery service, nil when the
// feature is off.
func (c *Container) GalleryService() gallery.Service {
	return c.gallerySvc
}

// NavigationService returns the configured navigation service, nil when the
// feature is off.
func (c *Container) NavigationService() navigation.Service {
	return c.navigationSvc
}

// MailerService returns the configured mailer service, nil when the feature
// is off.
func (c *Container) MailerService() mailer.Service {
	return c.mailerSvc
}

// AuthService returns the configured auth service, nil without an identity
// provider.
func (c *Container) AuthService() auth.Service {
	return c.authSvc
}

// Guard returns a route guard over the auth service, nil without one.
func (c *Container) Guard() *auth.Guard {
	if c.authSvc == nil {
		return nil
	}
	return auth.NewGuard(c.authSvc)
}

// SectionRepository exposes the configured section repository.
func (c *Container) SectionRepository() sections.Repository {
	return c.sectionRepo
}

// GalleryRepository exposes the configured gallery repository.
func (c *Container) GalleryRepository() gallery.Repository {
	return c.galleryRepo
}

// UserRepository exposes the configured user repository.
func (c *Container) UserRepository() auth.UserRepository {
	return c.userRepo
}

// BlobProvider exposes the configured blob store.
func (c *Container) BlobProvider() interfaces.BlobProvider {
	return c.blobProvider
}

// LoggerProvider exposes the configured logger provider.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// Registry exposes the section registry.
func (c *Container) Registry() *sections.Registry {
	return c.registry
}

// RouteManager exposes the urlkit manager when navigation routing is
// configured.
func (c *Container) RouteManager() *urlkit.RouteManager {
	return c.routeManager
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}
