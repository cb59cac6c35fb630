// Package postservice assembles read-model responses from the document
// store, the query pipeline, and the renderer.
package postservice

import (
	"context"
	"time"

	"github.com/starford/ansuz/internal/apperr"
	"github.com/starford/ansuz/internal/models"
	"github.com/starford/ansuz/internal/parser"
	"github.com/starford/ansuz/internal/query"
	"github.com/starford/ansuz/internal/render"
	"github.com/starford/ansuz/internal/store"
)

// PostListItem is a lightweight item in listing responses.
type PostListItem struct {
	Slug     string    `json:"slug"`
	Title    string    `json:"title"`
	Date     time.Time `json:"date"`
	Summary  string    `json:"summary"`
	Tags     []string  `json:"tags"`
	Category string    `json:"category"`
}

// PostDetail is the full representation of one open document.
type PostDetail struct {
	Slug         string                    `json:"slug"`
	Title        string                    `json:"title"`
	Date         time.Time                 `json:"date"`
	Summary      string                    `json:"summary"`
	Tags         []string                  `json:"tags"`
	Category     string                    `json:"category"`
	Draft        bool                      `json:"draft"`
	Hidden       bool                      `json:"hidden"`
	Body         string                    `json:"body"`
	HTML         string                    `json:"html"`
	Headings     []models.Heading          `json:"headings"`
	Media        []models.MediaPlaceholder `json:"media"`
	OutgoingRefs []string                  `json:"outgoing_refs"`
	ReferencedBy []PostListItem            `json:"referenced_by"`
	HasConnected bool                      `json:"has_connected"`
	Checksum     string                    `json:"checksum"`
}

// Connections is the backlink view of one document: who it points at and
// who points back.
type Connections struct {
	Outgoing     []string       `json:"outgoing"` // derived target slugs
	ReferencedBy []PostListItem `json:"referenced_by"`
	HasConnected bool           `json:"has_connected"`
}

// ListQuery carries the listing query surface: search, category, tags, sort.
type ListQuery struct {
	Query         string
	Category      string
	Tags          []string
	Order         query.Order
	IncludeDrafts bool
}

// Resolution classifies a slug lookup for the page route.
type Resolution int

const (
	// ResolveExact means the slug matched as-is.
	ResolveExact Resolution = iota
	// ResolveCanonical means only a case-insensitive match exists; callers
	// should redirect to the canonical slug.
	ResolveCanonical
	// ResolveMiss means no document matched; callers redirect to the
	// listing root.
	ResolveMiss
)

// Service exposes the read API over the current store snapshot.
type Service struct {
	mgr           *store.Manager
	renderer      *render.Renderer
	minScore      float64
	includeDrafts bool
}

// NewService creates a post service. minScore tunes the fuzzy search floor;
// includeDrafts gates whether listing queries may request drafts at all.
func NewService(mgr *store.Manager, renderer *render.Renderer, minScore float64, includeDrafts bool) *Service {
	return &Service{
		mgr:           mgr,
		renderer:      renderer,
		minScore:      minScore,
		includeDrafts: includeDrafts,
	}
}

// ListPosts runs the search/filter/sort pipeline over the current snapshot.
// Recomputed on every call; results are deterministic for identical inputs.
func (s *Service) ListPosts(_ context.Context, q ListQuery) ([]PostListItem, int) {
	st := s.mgr.Current()

	p := query.New(s.minScore)
	p.SetQuery(q.Query)
	p.SetCategory(q.Category)
	p.SetTags(q.Tags)
	p.SetOrder(q.Order)

	posts := p.Run(st.Listing(q.IncludeDrafts && s.includeDrafts))

	items := make([]PostListItem, len(posts))
	for i, post := range posts {
		items[i] = listItem(post)
	}
	return items, len(items)
}

// GetPost returns the full detail for an exact slug, rendered HTML and
// connection data included. Drafts and hidden posts resolve here; direct
// access is intentional.
func (s *Service) GetPost(_ context.Context, slug string) (*PostDetail, error) {
	st := s.mgr.Current()
	post, ok := st.FindBySlug(slug)
	if !ok {
		return nil, apperr.ErrNotFound
	}

	html, err := s.renderer.HTML(post.Body)
	if err != nil {
		return nil, err
	}

	refBy := referencedBy(st, slug)
	return &PostDetail{
		Slug:         post.Slug,
		Title:        post.Metadata.Title,
		Date:         post.Metadata.Date,
		Summary:      post.Metadata.Summary,
		Tags:         post.Metadata.Tags,
		Category:     post.Metadata.Category,
		Draft:        post.Metadata.Draft,
		Hidden:       post.Metadata.Hidden,
		Body:         post.Body,
		HTML:         html,
		Headings:     s.renderer.Headings(post.Body),
		Media:        post.Media,
		OutgoingRefs: post.Metadata.OutgoingRefs,
		ReferencedBy: refBy,
		HasConnected: len(post.Metadata.OutgoingRefs) > 0 || len(refBy) > 0,
		Checksum:     post.Checksum,
	}, nil
}

// Connections returns the backlink view for a slug.
func (s *Service) Connections(_ context.Context, slug string) (*Connections, error) {
	st := s.mgr.Current()
	post, ok := st.FindBySlug(slug)
	if !ok {
		return nil, apperr.ErrNotFound
	}

	outgoing := make([]string, len(post.Metadata.OutgoingRefs))
	for i, ref := range post.Metadata.OutgoingRefs {
		outgoing[i] = parser.Slugify(ref)
	}
	refBy := referencedBy(st, slug)

	return &Connections{
		Outgoing:     outgoing,
		ReferencedBy: refBy,
		HasConnected: len(outgoing) > 0 || len(refBy) > 0,
	}, nil
}

// ResolveSlug classifies a navigation slug: exact hit, case-insensitive hit
// (redirect to canonical), or miss (redirect to listing root).
func (s *Service) ResolveSlug(slug string) (canonical string, res Resolution) {
	st := s.mgr.Current()
	if _, ok := st.FindBySlug(slug); ok {
		return slug, ResolveExact
	}
	if p, ok := st.FindBySlugFold(slug); ok {
		return p.Slug, ResolveCanonical
	}
	return "", ResolveMiss
}

// Tags returns all tags, optionally scoped to a category, first-seen order.
func (s *Service) Tags(category string) []string {
	return s.mgr.Current().AllTags(category)
}

// Categories returns all categories in first-seen order.
func (s *Service) Categories() []string {
	return s.mgr.Current().AllCategories()
}

func referencedBy(st *store.Store, slug string) []PostListItem {
	posts := st.ReferencedBy(slug)
	out := make([]PostListItem, len(posts))
	for i, p := range posts {
		out[i] = listItem(p)
	}
	return out
}

func listItem(p *models.Post) PostListItem {
	return PostListItem{
		Slug:     p.Slug,
		Title:    p.Metadata.Title,
		Date:     p.Metadata.Date,
		Summary:  p.Metadata.Summary,
		Tags:     p.Metadata.Tags,
		Category: p.Metadata.Category,
	}
}
