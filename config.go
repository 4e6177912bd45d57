package blogcrm

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"
)

// SiteConfig holds all configuration for the admin panel. Fields are read
// from the environment by LoadConfig.
type SiteConfig struct {
	Name string `env:"SITE_NAME"` // Header title (default "Blog CRM")
	Addr string `env:"ADDR"`      // Listen address (default ":3000")

	DatabaseDriver string        `env:"DATABASE_DRIVER"` // "sqlite" (default) or "postgres"
	DatabaseURL    string        `env:"DATABASE_URL"`    // SQLite path (default "data/blog.db") or Postgres DSN
	DBMaxOpenConns int           `env:"DB_MAX_OPEN_CONNS"`
	DBMaxIdleConns int           `env:"DB_MAX_IDLE_CONNS"`
	DBMaxLifetime  time.Duration `env:"DB_MAX_LIFETIME"`

	AdminEmail        string `env:"ADMIN_EMAIL"`
	AdminPassword     string `env:"ADMIN_PASSWORD"`
	AdminPasswordHash string `env:"ADMIN_PASSWORD_HASH"` // bcrypt; preferred over ADMIN_PASSWORD

	SessionSecret string        `env:"SESSION_SECRET"` // Required: cookie signing secret
	CookieSecure  bool          `env:"COOKIE_SECURE"`  // Set true for HTTPS
	JWTSecret     string        `env:"JWT_SECRET"`     // Required: API token signing secret
	TokenTTL      time.Duration `env:"TOKEN_TTL"`      // API token lifetime (default 12h)

	DefaultAuthor    string        `env:"DEFAULT_AUTHOR"`     // Prefilled author for new posts
	CategoryCacheTTL time.Duration `env:"CATEGORY_CACHE_TTL"` // Editor category list TTL (default 30s)

	LogLevel  string `env:"LOG_LEVEL"`  // debug, info, warn, error (default info)
	LogFormat string `env:"LOG_FORMAT"` // json (default) or console

	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT"` // default 10s
}

// LoadConfig parses SiteConfig from the environment and fills defaults.
func LoadConfig() (SiteConfig, error) {
	var cfg SiteConfig
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	cfg.setDefaults()
	return cfg, nil
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Blog CRM"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.DatabaseDriver == "" {
		c.DatabaseDriver = "sqlite"
	}
	if c.DatabaseURL == "" && c.DatabaseDriver == "sqlite" {
		c.DatabaseURL = "data/blog.db"
	}
	if c.TokenTTL == 0 {
		c.TokenTTL = 12 * time.Hour
	}
	if c.DefaultAuthor == "" {
		c.DefaultAuthor = "Dom Pogrzebowy Łódź"
	}
	if c.CategoryCacheTTL == 0 {
		c.CategoryCacheTTL = 30 * time.Second
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.LogFormat == "" {
		c.LogFormat = "json"
	}
	if c.ShutdownTimeout == 0 {
		c.ShutdownTimeout = 10 * time.Second
	}
}

func (c SiteConfig) validate() error {
	var missing []string
	if c.SessionSecret == "" {
		missing = append(missing, "SESSION_SECRET")
	}
	if c.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}
	if len(missing) > 0 {
		return fmt.Errorf("blogcrm: missing required config: %s", strings.Join(missing, ", "))
	}
	return nil
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback runs after the built-in routes are registered.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithAuthenticator replaces the config-based admin account.
func WithAuthenticator(auth Authenticator) Option {
	return func(a *App) {
		a.auth = auth
	}
}

// WithRepositories supplies the data store instead of opening one from
// config. The caller keeps ownership and closes it.
func WithRepositories(categories CategoryRepository, posts PostRepository) Option {
	return func(a *App) {
		a.categoryRepo = categories
		a.postRepo = posts
	}
}

// WithLogger sets the application logger.
func WithLogger(log zerolog.Logger) Option {
	return func(a *App) {
		a.Log = log
	}
}
