package main

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/diewo77/go-freelance/auth"
	"github.com/diewo77/go-freelance/httpx"
	"github.com/diewo77/go-freelance/internal/handlers"
	"github.com/diewo77/go-freelance/internal/metrics"
	"github.com/diewo77/go-freelance/internal/middleware"
	"github.com/diewo77/go-freelance/internal/notify"
	"github.com/diewo77/go-freelance/internal/policy"
	"github.com/diewo77/go-freelance/internal/services"
	"github.com/diewo77/go-freelance/internal/storage"
	"github.com/diewo77/go-freelance/view"
	"gorm.io/gorm"
)

// Options carries the collaborators picked by main from the configuration.
type Options struct {
	Files     storage.Files
	Mailer    notify.Mailer
	MaxUpload int64
	Logger    *slog.Logger
}

// App is the main application handler that sets up all routes.
type App struct {
	mux     *http.ServeMux
	handler http.Handler
	db      *gorm.DB
	files   storage.Files

	auth         *handlers.AuthHandler
	pages        *handlers.Pages
	profiles     *handlers.ProfileHandler
	projects     *handlers.ProjectHandler
	applications *handlers.ApplicationHandler
}

// NewApp wires services and handlers over db and registers every route.
func NewApp(db *gorm.DB, opts Options) *App {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Mailer == nil {
		opts.Mailer = notify.NewLogMailer(opts.Logger)
	}

	gate := policy.NewAuthGate()
	accounts := services.NewAccountService(db)
	profiles := services.NewProfileService(db, opts.Files, gate, opts.MaxUpload)
	catalog := services.NewCatalogService(db, opts.Files, opts.MaxUpload)
	applications := services.NewApplicationService(db, opts.Mailer, gate)
	contact := services.NewContactService(db)

	// Sessions of deleted users are dropped by RequireAuth.
	auth.SetUserVerifier(accounts.SessionValid)
	view.SetLangResolver(middleware.LangFrom)
	view.SetMediaResolver(opts.Files.URL)
	view.SetFlashResolver(func(w http.ResponseWriter, r *http.Request) any {
		return middleware.PopFlash(w, r)
	})

	app := &App{
		mux:          http.NewServeMux(),
		db:           db,
		files:        opts.Files,
		auth:         handlers.NewAuthHandler(accounts),
		pages:        handlers.NewPages(contact),
		profiles:     handlers.NewProfileHandler(profiles, opts.MaxUpload),
		projects:     handlers.NewProjectHandler(catalog, applications, opts.MaxUpload),
		applications: handlers.NewApplicationHandler(applications),
	}
	app.setupRoutes()
	// Logging and Metrics sit next to the mux so they see the matched pattern.
	app.handler = middleware.Chain(app.mux,
		middleware.Recover,
		middleware.RequestID,
		auth.Middleware,
		middleware.Prefs,
		middleware.Logging(opts.Logger),
		middleware.Metrics,
	)
	return app
}

// ServeHTTP implements http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.handler.ServeHTTP(w, r)
}

// setupRoutes configures all application routes.
func (a *App) setupRoutes() {
	// ─────────────────────────────────────────────────────────────────────────
	// Public routes
	// ─────────────────────────────────────────────────────────────────────────
	pg := a.pages
	a.mux.HandleFunc("GET /{$}", pg.Home)
	a.mux.HandleFunc("GET /about", pg.About)
	a.mux.HandleFunc("GET /chat", pg.Chat)
	a.mux.HandleFunc("GET /contact", pg.ContactForm)
	a.mux.HandleFunc("POST /contact", pg.Contact)

	ah := a.auth
	a.mux.HandleFunc("GET /register", ah.SignupForm)
	a.mux.HandleFunc("POST /register", ah.Signup)
	a.mux.HandleFunc("GET /login", ah.LoginForm)
	a.mux.HandleFunc("POST /login", ah.Login)
	a.mux.HandleFunc("POST /logout", ah.Logout)

	ph := a.projects
	a.mux.HandleFunc("GET /projects", ph.Search)
	a.mux.HandleFunc("GET /projects/{id}", ph.Detail)

	// ─────────────────────────────────────────────────────────────────────────
	// Authenticated routes
	// ─────────────────────────────────────────────────────────────────────────
	a.mux.Handle("GET /projects/new", a.requireAuth(ph.NewForm))
	a.mux.Handle("POST /projects/new", a.requireAuth(ph.Create))
	a.mux.Handle("GET /projects/mine", a.requireAuth(ph.Mine))
	a.mux.Handle("GET /projects/all", a.requireAuth(ph.All))
	a.mux.Handle("GET /projects/{id}/apply", a.requireAuth(ph.ApplyForm))
	a.mux.Handle("POST /projects/{id}/apply", a.requireAuth(ph.Apply))

	prh := a.profiles
	a.mux.Handle("GET /profile", a.requireAuth(prh.Show))
	a.mux.Handle("GET /profile/edit", a.requireAuth(prh.EditForm))
	a.mux.Handle("POST /profile/edit", a.requireAuth(prh.Edit))
	a.mux.Handle("GET /profile/experience", a.requireAuth(prh.ExperienceForm))
	a.mux.Handle("POST /profile/experience", a.requireAuth(prh.SaveExperience))
	a.mux.Handle("GET /profile/experience/{id}", a.requireAuth(prh.ExperienceForm))
	a.mux.Handle("POST /profile/experience/{id}", a.requireAuth(prh.SaveExperience))
	a.mux.Handle("POST /profile/experience/{id}/delete", a.requireAuth(prh.DeleteExperience))

	aph := a.applications
	a.mux.Handle("GET /applications/manage", a.requireAuth(aph.Manage))
	a.mux.Handle("GET /applications/mine", a.requireAuth(aph.Mine))
	a.mux.Handle("POST /applications/{id}/status/{status}", a.requireAuth(aph.UpdateStatus))

	// ─────────────────────────────────────────────────────────────────────────
	// Operations and files
	// ─────────────────────────────────────────────────────────────────────────
	a.mux.HandleFunc("GET /healthz", httpx.Health(func(ctx context.Context) error {
		sqlDB, err := a.db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	}))
	a.mux.Handle("GET /metrics", metrics.Handler())
	a.mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir("static"))))
	if local, ok := a.files.(*storage.Local); ok {
		a.mux.Handle("GET "+local.Prefix, local.Handler())
	}
	a.mux.HandleFunc("/", handlers.NotFound)
}

// requireAuth wraps a handler to require a signed-in user.
func (a *App) requireAuth(h http.HandlerFunc) http.Handler {
	return auth.RequireAuth(h)
}
