// Package api exposes the vault's operations over a local HTTP surface. The
// face-embedding model stays client-side and opaque: requests carry the
// extracted embedding vector, never an image.
package api

import (
	"log/slog"
	"os"
	"time"

	"github.com/go-chi/chi/v5"

	"facevault/backup"
	"facevault/credential"
	"facevault/faceid"
	"facevault/gate"
	"facevault/internal/logging"
	"facevault/session"
	"facevault/storage"
	"facevault/vault"
)

// API holds the dependencies needed by the REST handlers.
type API struct {
	store     storage.Store
	creds     *credential.Credentials
	templates *faceid.Templates
	sessions  *session.Manager
	enroller  *faceid.Enroller
	verifier  *faceid.Verifier
	updater   *faceid.Updater
	vault     *vault.Vault
	backups   *backup.Service
	gate      *gate.Gate

	clock session.Clock
	log   logging.Logger

	verifierOpts []faceid.VerifierOption
}

// Option configures the API instance.
type Option func(*API)

// WithLogger sets the structured logger. If not set, a default text logger
// writing to stderr is used.
func WithLogger(log logging.Logger) Option {
	return func(a *API) { a.log = log }
}

// WithClock sets the time source used for session checks and backup
// filenames.
func WithClock(c session.Clock) Option {
	return func(a *API) { a.clock = c }
}

// WithThreshold sets the verification match threshold.
func WithThreshold(threshold float64) Option {
	return func(a *API) {
		a.verifierOpts = append(a.verifierOpts, faceid.WithThreshold(threshold))
	}
}

// WithSessionDuration sets the duration of sessions opened by verification.
func WithSessionDuration(d time.Duration) Option {
	return func(a *API) {
		a.verifierOpts = append(a.verifierOpts, faceid.WithSessionDuration(d))
	}
}

// New creates a new API instance over the given store.
func New(store storage.Store, opts ...Option) *API {
	a := &API{store: store, clock: session.SystemClock()}
	for _, opt := range opts {
		opt(a)
	}
	if a.log == nil {
		a.log = logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	}

	a.creds = credential.New(store)
	a.templates = faceid.NewTemplates(store)
	a.sessions = session.NewManager(store, session.WithClock(a.clock))
	a.enroller = faceid.NewEnroller(a.templates)
	a.verifier = faceid.NewVerifier(a.templates, a.sessions, a.verifierOpts...)
	a.updater = faceid.NewUpdater(a.creds, a.enroller)
	a.vault = vault.New(store)
	a.backups = backup.NewService(store)
	a.gate = gate.New(a.creds, a.templates, a.sessions)
	return a
}

// Router returns a chi.Router with all API routes mounted.
func (a *API) Router() chi.Router {
	r := chi.NewRouter()

	r.Post("/setup", a.Setup)
	r.Get("/gate/{page}", a.GateCheck)

	r.Post("/enroll", a.Enroll)
	r.Post("/verify", a.Verify)
	r.Post("/face", a.UpdateFace)

	r.Get("/session", a.SessionStatus)
	r.Post("/logout", a.Logout)

	// Vault CRUD sits behind the session gate.
	r.Route("/vault/entries", func(r chi.Router) {
		r.Use(a.RequireSession)
		r.Get("/", a.ListEntries)
		r.Post("/", a.AddEntry)
		r.Put("/{entryID}", a.UpdateEntry)
		r.Delete("/{entryID}", a.RemoveEntry)
	})

	// Backup and restore operate on the raw store and do not pass through
	// the session gate. Inherited behavior, kept as is.
	r.Get("/backup", a.Backup)
	r.Post("/restore", a.Restore)

	return r
}
