package api

import (
	"errors"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/starford/ansuz/internal/apperr"
	"github.com/starford/ansuz/internal/postservice"
	"github.com/starford/ansuz/internal/query"
)

var postTmpl = template.Must(template.New("post").Parse(`<!doctype html>
<html lang="en">
<head><meta charset="utf-8"><title>{{.Title}}</title></head>
<body>
<main id="content">{{.HTML}}</main>
</body>
</html>
`))

var indexTmpl = template.Must(template.New("index").Parse(`<!doctype html>
<html lang="en">
<head><meta charset="utf-8"><title>Posts</title></head>
<body>
<ul>
{{range .Posts}}<li><a href="/{{.Slug}}">{{.Title}}</a></li>
{{end}}</ul>
</body>
</html>
`))

// Pages serves the minimal document pages and implements the routing
// convention: /<slug> is the detail path, unknown slugs redirect to the
// listing root, and case-insensitive matches redirect to the
// correctly-cased path.
type Pages struct {
	svc *postservice.Service
}

// NewPages creates the page handler set.
func NewPages(svc *postservice.Service) *Pages {
	return &Pages{svc: svc}
}

// Index handles GET /: the listing root, date-descending.
func (p *Pages) Index(w http.ResponseWriter, r *http.Request) {
	items, _ := p.svc.ListPosts(r.Context(), postservice.ListQuery{Order: query.OrderDesc})
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTmpl.Execute(w, map[string]any{"Posts": items}); err != nil {
		slog.Error("index render failed", slog.String("error", err.Error()))
	}
}

// Post handles GET /{slug}. A navigation miss is non-fatal: it redirects to
// the listing root rather than erroring.
func (p *Pages) Post(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	canonical, res := p.svc.ResolveSlug(slug)
	switch res {
	case postservice.ResolveCanonical:
		http.Redirect(w, r, "/"+canonical, http.StatusMovedPermanently)
		return
	case postservice.ResolveMiss:
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	detail, err := p.svc.GetPost(r.Context(), canonical)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			http.Redirect(w, r, "/", http.StatusFound)
			return
		}
		slog.Error("post render failed", slog.String("slug", slug), slog.String("error", err.Error()))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("ETag", `"`+detail.Checksum+`"`)
	if err := postTmpl.Execute(w, map[string]any{
		"Title": detail.Title,
		"HTML":  template.HTML(detail.HTML),
	}); err != nil {
		slog.Error("post render failed", slog.String("slug", slug), slog.String("error", err.Error()))
	}
}
