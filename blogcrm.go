// Package blogcrm is a small content-management admin panel for a blog,
// built with Go, Echo, and templ. It provides a login gate, a post list and
// editor, and a category list and editor over a SQLite or Postgres store.
//
// Callers provide the templ components through ViewFuncs; blogcrm handles
// routing, sessions, validation, and database access.
package blogcrm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/eringen/blogcrm/store"
)

// ViewFuncs holds the templ components the handlers render.
type ViewFuncs struct {
	Index       func(page IndexPage) templ.Component
	Login       func(page LoginPage) templ.Component
	Admin       func(page AdminPage) templ.Component
	NotFound    func() templ.Component
	ServerError func() templ.Component
}

// App wires together the store, accessors, handlers, and middleware.
type App struct {
	Config SiteConfig
	Echo   *echo.Echo
	Log    zerolog.Logger
	Views  ViewFuncs

	Categories    *Categories
	Posts         *Posts
	CategoryCache *CategoryCache

	auth         Authenticator
	tokens       *TokenIssuer
	loginLimiter *LoginLimiter
	signouts     *signouts
	categoryRepo CategoryRepository
	postRepo     PostRepository
	db           *store.DB
	customRoutes []func(*App)
	ready        bool
}

// New creates an App with the given configuration and views.
func New(cfg SiteConfig, views ViewFuncs, opts ...Option) *App {
	cfg.setDefaults()

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	a := &App{
		Config: cfg,
		Echo:   e,
		Log:    zerolog.Nop(),
		Views:  views,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Init validates config, opens the store if none was supplied, and
// registers middleware and routes. Start calls it when needed.
func (a *App) Init(ctx context.Context) error {
	if a.ready {
		return nil
	}
	if err := a.Config.validate(); err != nil {
		return err
	}

	if a.auth == nil {
		auth, err := NewStaticAuthenticator(a.Config.AdminEmail, a.Config.AdminPasswordHash, a.Config.AdminPassword)
		if err != nil {
			return fmt.Errorf("blogcrm: %w", err)
		}
		a.auth = auth
	}

	if a.categoryRepo == nil || a.postRepo == nil {
		db, err := store.Open(ctx, store.Config{
			Driver:       a.Config.DatabaseDriver,
			DSN:          a.Config.DatabaseURL,
			MaxOpenConns: a.Config.DBMaxOpenConns,
			MaxIdleConns: a.Config.DBMaxIdleConns,
			MaxLifetime:  a.Config.DBMaxLifetime,
		}, a.Log)
		if err != nil {
			return fmt.Errorf("blogcrm: init store: %w", err)
		}
		a.db = db
		a.categoryRepo = db.Categories()
		a.postRepo = db.Posts()
	}

	a.Categories = NewCategories(a.categoryRepo)
	a.Posts = NewPosts(a.postRepo, a.categoryRepo)
	a.CategoryCache = NewCategoryCache(a.Categories, a.Config.CategoryCacheTTL)
	a.tokens = NewTokenIssuer(a.Config.JWTSecret, a.Config.TokenTTL)
	a.loginLimiter = NewLoginLimiter(5, time.Minute)
	a.signouts = newSignouts()

	a.setupMiddleware()
	a.setupRoutes()
	for _, fn := range a.customRoutes {
		fn(a)
	}

	a.ready = true
	return nil
}

// Start initializes the app and serves until the server is shut down.
func (a *App) Start(ctx context.Context) error {
	if err := a.Init(ctx); err != nil {
		return err
	}
	a.Log.Info().Str("addr", a.Config.Addr).Msg("listening")
	if err := a.Echo.Start(a.Config.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests and waits for in-flight ones.
func (a *App) Shutdown(ctx context.Context) error {
	return a.Echo.Shutdown(ctx)
}

func (a *App) setupRoutes() {
	e := a.Echo

	e.GET("/", a.handleIndex)
	e.GET("/auth/", a.handleAuthPage)
	e.POST("/auth/login/", a.handleLogin)

	admin := e.Group("/admin", a.requireSession)
	admin.GET("/", a.handleAdmin)
	admin.POST("/logout/", a.handleLogout)
	admin.POST("/blogs/save/", a.handleSavePost)
	admin.POST("/blogs/:id/publish/", a.handlePublishPost)
	admin.POST("/blogs/:id/delete/", a.handleDeletePost)
	admin.POST("/categories/save/", a.handleSaveCategory)
	admin.POST("/categories/:id/delete/", a.handleDeleteCategory)

	e.POST("/api/token", a.handleAPIToken)
	api := e.Group("/api", a.requireToken)
	api.GET("/categories", a.handleAPIListCategories)
	api.POST("/categories", a.handleAPICreateCategory)
	api.GET("/categories/:id", a.handleAPIGetCategory)
	api.PUT("/categories/:id", a.handleAPIUpdateCategory)
	api.DELETE("/categories/:id", a.handleAPIDeleteCategory)
	api.GET("/posts", a.handleAPIListPosts)
	api.POST("/posts", a.handleAPICreatePost)
	api.GET("/posts/:id", a.handleAPIGetPost)
	api.PUT("/posts/:id", a.handleAPIUpdatePost)
	api.PATCH("/posts/:id/published", a.handleAPISetPublished)
	api.DELETE("/posts/:id", a.handleAPIDeletePost)
}

// Close releases the store (when App opened it) and background workers.
func (a *App) Close() error {
	if a.loginLimiter != nil {
		a.loginLimiter.Close()
	}
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}
