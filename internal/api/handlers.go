package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/starford/ansuz/internal/apperr"
	"github.com/starford/ansuz/internal/postservice"
	"github.com/starford/ansuz/internal/query"
	"github.com/starford/ansuz/pkg/sectionnav"
)

// Handler holds API route handlers.
type Handler struct {
	svc *postservice.Service
	nav sectionnav.Config
}

// NewHandler creates a new Handler.
func NewHandler(svc *postservice.Service, nav sectionnav.Config) *Handler {
	return &Handler{svc: svc, nav: nav}
}

// ListPosts handles GET /api/posts.
//
// Query parameters: q (fuzzy search), category (single-select), tags
// (comma-separated, AND semantics), sort (asc|desc), drafts (1 to include
// drafts when the server allows it). Composition order is fixed: search,
// category, tags, date sort. An empty result is a valid response, not an
// error.
func (h *Handler) ListPosts(w http.ResponseWriter, r *http.Request) {
	qp := r.URL.Query()

	lq := postservice.ListQuery{
		Query:         qp.Get("q"),
		Category:      qp.Get("category"),
		Order:         query.OrderDesc,
		IncludeDrafts: qp.Get("drafts") == "1",
	}
	if raw := qp.Get("tags"); raw != "" {
		for _, t := range strings.Split(raw, ",") {
			if t = strings.TrimSpace(t); t != "" {
				lq.Tags = append(lq.Tags, t)
			}
		}
	}
	if qp.Get("sort") == "asc" {
		lq.Order = query.OrderAsc
	}

	items, total := h.svc.ListPosts(r.Context(), lq)
	writeJSON(w, http.StatusOK, map[string]any{
		"posts": items,
		"total": total,
	})
}

// GetPost handles GET /api/posts/{slug}.
func (h *Handler) GetPost(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	post, err := h.svc.GetPost(r.Context(), slug)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not found")
		} else {
			slog.Error("get post failed", slog.String("slug", slug), slog.String("error", err.Error()))
			writeError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}
	w.Header().Set("ETag", `"`+post.Checksum+`"`)
	writeJSON(w, http.StatusOK, post)
}

// Connections handles GET /api/posts/{slug}/connections.
func (h *Handler) Connections(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	conns, err := h.svc.Connections(r.Context(), slug)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not found")
		} else {
			slog.Error("connections failed", slog.String("slug", slug), slog.String("error", err.Error()))
			writeError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}
	writeJSON(w, http.StatusOK, conns)
}

// Tags handles GET /api/tags. Tags come back in first-seen order, scoped to
// an optional category.
func (h *Handler) Tags(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"tags": h.svc.Tags(r.URL.Query().Get("category")),
	})
}

// Categories handles GET /api/categories.
func (h *Handler) Categories(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"categories": h.svc.Categories(),
	})
}

// NavSettings handles GET /api/nav. UI clients construct their section
// navigator from these values so click-scroll offsets and throttle windows
// match the server configuration.
func (h *Handler) NavSettings(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"header_offset":      h.nav.HeaderOffset,
		"scroll_throttle_ms": h.nav.Throttle.Milliseconds(),
	})
}
