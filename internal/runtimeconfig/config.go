package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"

	urlkit "github.com/goliatone/go-urlkit"
)

var (
	ErrAdvancedCacheRequiresEnabledCache = errors.New("sitecontent config: advanced cache feature requires cache to be enabled")
	ErrBlobRootRequired                  = errors.New("sitecontent config: blob root directory is required for the fs provider")
	ErrMailerEndpointRequired            = errors.New("sitecontent config: mailer endpoint is required when mailer is enabled")
	ErrLoggingProviderRequired           = errors.New("sitecontent config: logging provider is required when logging feature is enabled")
	ErrLoggingProviderUnknown            = errors.New("sitecontent config: logging provider is invalid")
	ErrLoggingLevelInvalid               = errors.New("sitecontent config: logging level is invalid")
	ErrLoggingFormatInvalid              = errors.New("sitecontent config: logging format is invalid")
)

// Config aggregates feature flags and adapter bindings for the site content
// module. Fields intentionally use simple types so host applications can
// extend them later.
type Config struct {
	Enabled    bool
	Site       SiteConfig
	Storage    StorageConfig
	Cache      CacheConfig
	Navigation NavigationConfig
	Blob       BlobConfig
	Mailer     MailerConfig
	Logging    LoggingConfig
	Features   Features
}

// SiteConfig identifies the site the content belongs to.
type SiteConfig struct {
	Name    string
	BaseURL string
}

// StorageConfig lists identifiers for storage-related dependencies.
type StorageConfig struct {
	Provider string
}

// CacheConfig captures cache behaviour toggles.
type CacheConfig struct {
	Enabled    bool
	DefaultTTL time.Duration
}

// NavigationConfig captures routing configuration for activity entry paths.
type NavigationConfig struct {
	RouteConfig *urlkit.Config
	URLKit      URLKitResolverConfig
	PathPrefix  string
}

// URLKitResolverConfig configures the go-urlkit based path resolver.
type URLKitResolverConfig struct {
	Group     string
	Route     string
	SlugParam string
}

// BlobConfig captures where uploads are written and how they are served.
type BlobConfig struct {
	Provider string
	Root     string
	BaseURL  string
}

// MailerConfig captures the hosted mail relay binding.
type MailerConfig struct {
	Endpoint   string
	ServiceID  string
	PublicKey  string
	TemplateID string
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// Features toggles module functionality.
type Features struct {
	Galleries     bool
	Navigation    bool
	Mailer        bool
	AdvancedCache bool
	Logger        bool
}

// DefaultConfig returns opinionated defaults: everything on, memory-backed
// storage, uploads under ./uploads.
func DefaultConfig() Config {
	return Config{
		Enabled: true,
		Site: SiteConfig{
			Name: "site",
		},
		Storage: StorageConfig{
			Provider: "bun",
		},
		Cache: CacheConfig{
			Enabled:    true,
			DefaultTTL: time.Minute,
		},
		Navigation: NavigationConfig{
			PathPrefix: "/activities",
		},
		Blob: BlobConfig{
			Provider: "fs",
			Root:     "uploads",
			BaseURL:  "/uploads",
		},
		Mailer: MailerConfig{
			TemplateID: "contact_form",
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
		Features: Features{
			Galleries:  true,
			Navigation: true,
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if cfg.Features.AdvancedCache && !cfg.Cache.Enabled {
		return ErrAdvancedCacheRequiresEnabledCache
	}
	if normalizeProvider(cfg.Blob.Provider) == "fs" {
		if strings.TrimSpace(cfg.Blob.Root) == "" {
			return ErrBlobRootRequired
		}
	}
	if cfg.Features.Mailer {
		if strings.TrimSpace(cfg.Mailer.Endpoint) == "" {
			return ErrMailerEndpointRequired
		}
	}
	if cfg.Features.Logger {
		provider := normalizeProvider(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedProvider(provider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if provider == "gologger" {
			if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
				return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
			}
		}
	}
	return nil
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
