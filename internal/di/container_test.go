package di

import (
	"context"
	"testing"

	"github.com/goliatone/go-sitecontent/internal/blob"
	"github.com/goliatone/go-sitecontent/internal/domain"
	"github.com/goliatone/go-sitecontent/internal/logging"
	"github.com/goliatone/go-sitecontent/internal/runtimeconfig"
	"github.com/goliatone/go-sitecontent/internal/sections"
	"github.com/goliatone/go-sitecontent/pkg/interfaces"
	urlkit "github.com/goliatone/go-urlkit"
)

func memoryConfig() runtimeconfig.Config {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Storage.Provider = "memory"
	cfg.Blob.Provider = "memory"
	cfg.Blob.BaseURL = "https://cdn.test"
	return cfg
}

type staticIdentityProvider struct {
	session *interfaces.Session
}

func (p *staticIdentityProvider) Subscribe(fn func(session *interfaces.Session)) func() {
	fn(p.session)
	return func() {}
}

func TestNewContainerProvidesMemoryBackedServices(t *testing.T) {
	c := NewContainer(memoryConfig())

	if c.SectionService() == nil {
		t.Fatal("expected section service")
	}
	if c.GalleryService() == nil {
		t.Fatal("expected gallery service with galleries enabled")
	}
	if c.NavigationService() == nil {
		t.Fatal("expected navigation service with navigation enabled")
	}
	if c.BlobProvider() == nil {
		t.Fatal("expected memory blob provider")
	}

	view, err := c.SectionService().View(context.Background(), sections.KeyContactPage)
	if err != nil {
		t.Fatalf("view contact page: %v", err)
	}
	if len(view) == 0 {
		t.Fatal("expected registry defaults through the container wiring")
	}
}

func TestNewContainerFeatureFlagsDisableServices(t *testing.T) {
	cfg := memoryConfig()
	cfg.Features.Galleries = false
	cfg.Features.Navigation = false

	c := NewContainer(cfg)
	if c.GalleryService() != nil {
		t.Fatal("expected no gallery service when the feature is off")
	}
	if c.NavigationService() != nil {
		t.Fatal("expected no navigation service when the feature is off")
	}
	if c.MailerService() != nil {
		t.Fatal("expected no mailer service when the feature is off")
	}
}

func TestNewContainerPanicsOnInvalidConfig(t *testing.T) {
	cfg := memoryConfig()
	cfg.Features.AdvancedCache = true
	cfg.Cache.Enabled = false

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for invalid config")
		}
	}()
	NewContainer(cfg)
}

func TestNewContainerWiresIdentityIntoAuth(t *testing.T) {
	provider := &staticIdentityProvider{session: &interfaces.Session{UID: "uid-1"}}
	c := NewContainer(memoryConfig(), WithIdentityProvider(provider))

	svc := c.AuthService()
	if svc == nil {
		t.Fatal("expected auth service with an identity provider")
	}
	defer svc.Close()

	if svc.IsAdmin() {
		t.Fatal("expected fail-closed role without a stored user record")
	}
	if c.Guard() == nil {
		t.Fatal("expected a guard over the auth service")
	}
}

func TestNewContainerWithoutIdentityHasNoAuth(t *testing.T) {
	c := NewContainer(memoryConfig())
	if c.AuthService() != nil || c.Guard() != nil {
		t.Fatal("expected no auth wiring without an identity provider")
	}
}

func TestNewContainerHonorsBlobOverride(t *testing.T) {
	custom := blob.NewMemoryProvider("https://override.test")
	c := NewContainer(memoryConfig(), WithBlobProvider(custom))

	if c.BlobProvider() != interfaces.BlobProvider(custom) {
		t.Fatal("expected the injected blob provider")
	}
}

func TestNewContainerRouteConfigBuildsResolver(t *testing.T) {
	cfg := memoryConfig()
	cfg.Navigation.RouteConfig = &urlkit.Config{
		Groups: []urlkit.GroupConfig{
			{
				Name:    "site",
				BaseURL: "https://school.example.com",
				Paths: map[string]string{
					"activity": "/activities/:slug",
				},
			},
		},
	}

	c := NewContainer(cfg)
	if c.RouteManager() == nil {
		t.Fatal("expected route manager when route config is set")
	}

	entry, err := c.NavigationService().AddEntry(context.Background(), "Sports Meet",
		domain.Actor{UID: "admin-1", Role: domain.RoleAdmin})
	if err != nil {
		t.Fatalf("add entry: %v", err)
	}
	if entry.Path != "https://school.example.com/activities/sports-meet" {
		t.Fatalf("expected urlkit resolved path, got %q", entry.Path)
	}
}

func TestNewContainerGalleryCategoriesTrackNavigation(t *testing.T) {
	c := NewContainer(memoryConfig())
	ctx := context.Background()

	admin := domain.Actor{UID: "admin-1", Role: domain.RoleAdmin}
	if _, err := c.NavigationService().AddEntry(ctx, "Science Fair", admin); err != nil {
		t.Fatalf("add entry: %v", err)
	}

	categories := c.GalleryService().Categories(ctx)
	if len(categories) != 1 || categories[0].Value != "science-fair" {
		t.Fatalf("expected gallery categories to track navigation, got %+v", categories)
	}
}

func TestNewContainerBindsRealLoggerForSupportedProviders(t *testing.T) {
	for _, provider := range []string{"console", "gologger"} {
		cfg := memoryConfig()
		cfg.Features.Logger = true
		cfg.Logging.Provider = provider

		if err := cfg.Validate(); err != nil {
			t.Fatalf("provider %q: config invalid: %v", provider, err)
		}

		c := NewContainer(cfg)
		if c.LoggerProvider() == logging.NoOpProvider() {
			t.Fatalf("provider %q bound the no-op logger provider", provider)
		}
	}
}
