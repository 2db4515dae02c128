// Package handler implements the HTTP handlers for the herbal catalog API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (health.go, herbs.go, import.go, etc.) but share the same Server
// struct so they can access its dependencies.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ayush-assistant/herbcatalog/internal/catalog"
	"github.com/ayush-assistant/herbcatalog/internal/domain"
	"github.com/ayush-assistant/herbcatalog/internal/middleware"
	"github.com/ayush-assistant/herbcatalog/internal/service"
)

// HerbServicer defines the single-record operations the herb handlers depend on.
// Defining the interface here (in the consumer package) lets handler tests
// inject a mock without touching the database or service layer.
type HerbServicer interface {
	Create(ctx context.Context, herb domain.Herb) (domain.Herb, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Herb, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// CatalogServicer serves searches from the in-memory catalog.
type CatalogServicer interface {
	Search(q catalog.Query, p domain.PaginationParams) service.SearchResult
	Categories() []string
}

// ImportServicer runs CSV imports.
type ImportServicer interface {
	Import(ctx context.Context, text string) (domain.ImportResult, error)
	Template() []byte
}

// ExportServicer produces full catalog exports.
type ExportServicer interface {
	Export(ctx context.Context) ([]domain.Herb, error)
	Records(ctx context.Context) ([][]string, error)
}

// ChatServicer answers chat messages that name a herb.
type ChatServicer interface {
	Intercept(ctx context.Context, message string) domain.ChatReply
}

// AuthServicer signs admins in and out and verifies their sessions.
type AuthServicer interface {
	SignIn(ctx context.Context, email, password string) (domain.Session, error)
	Verify(token string) (string, error)
	SignOut(token string) error
}

// Deps bundles the Server's dependencies. Nil servicers are allowed; their
// routes are simply not mounted.
type Deps struct {
	Herbs   HerbServicer
	Catalog CatalogServicer
	Imports ImportServicer
	Exports ExportServicer
	Chat    ChatServicer
	Auth    AuthServicer
	Logger  *slog.Logger
	// MaxUploadBytes caps the body of POST /herbs/import. Zero means 5 MiB.
	MaxUploadBytes int64
}

// Server holds the handlers for all API endpoints.
type Server struct {
	herbs     HerbServicer
	catalog   CatalogServicer
	imports   ImportServicer
	exports   ExportServicer
	chat      ChatServicer
	auth      AuthServicer
	logger    *slog.Logger
	maxUpload int64
}

// NewServer constructs the Server with all its dependencies.
func NewServer(d Deps) *Server {
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	if d.MaxUploadBytes <= 0 {
		d.MaxUploadBytes = 5 << 20
	}
	return &Server{
		herbs:     d.Herbs,
		catalog:   d.Catalog,
		imports:   d.Imports,
		exports:   d.Exports,
		chat:      d.Chat,
		auth:      d.Auth,
		logger:    d.Logger,
		maxUpload: d.MaxUploadBytes,
	}
}

// NewHealthHandler returns a Server for health-check-only use.
func NewHealthHandler() *Server {
	return NewServer(Deps{})
}

// Handler returns the chi router for the API. Cross-cutting middleware
// (request IDs, logging, recovery, CORS) is applied by the caller.
// Admin routes require a session verified by the AuthServicer.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)

	if s.auth != nil {
		r.Post("/auth/login", s.Login)
	}
	if s.catalog != nil {
		r.Get("/herbs", s.ListHerbs)
		r.Get("/categories", s.ListCategories)
	}
	if s.herbs != nil {
		r.Get("/herbs/{id}", s.GetHerb)
	}
	if s.imports != nil {
		r.Get("/herbs/import/template", s.GetImportTemplate)
	}
	if s.chat != nil {
		r.Post("/chat/intercept", s.InterceptChat)
	}

	if s.auth == nil {
		return r
	}

	r.Group(func(r chi.Router) {
		r.Use(middleware.NewRequireAdmin(s.auth))

		r.Post("/auth/logout", s.Logout)
		if s.herbs != nil {
			r.Post("/herbs", s.CreateHerb)
			r.Delete("/herbs/{id}", s.DeleteHerb)
		}
		if s.imports != nil {
			r.With(middleware.NewMaxBodySizeHandler(s.maxUpload)).Post("/herbs/import", s.ImportHerbs)
		}
		if s.exports != nil {
			r.Get("/herbs/export", s.ExportHerbs)
		}
	})
	return r
}
