package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/starford/ansuz/internal/postservice"
	"github.com/starford/ansuz/pkg/sectionnav"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// sseHandler, if non-nil, is mounted at GET /events inside the auth group.
func NewRouter(svc *postservice.Service, nav sectionnav.Config, authEnabled bool, token string, sseHandler http.Handler) chi.Router {
	h := NewHandler(svc, nav)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	// Listing query surface.
	r.Get("/posts", h.ListPosts)
	r.Get("/posts/{slug}", h.GetPost)
	r.Get("/posts/{slug}/connections", h.Connections)

	// Filter vocabularies.
	r.Get("/tags", h.Tags)
	r.Get("/categories", h.Categories)

	// Section navigator settings for UI clients.
	r.Get("/nav", h.NavSettings)

	// SSE endpoint (protected by same auth middleware).
	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}

// NewPageRouter creates the unauthenticated page routes: the listing root
// and the /<slug> detail path with its redirect semantics.
func NewPageRouter(svc *postservice.Service) chi.Router {
	p := NewPages(svc)

	r := chi.NewRouter()
	r.Get("/", p.Index)
	r.Get("/{slug}", p.Post)
	return r
}
