// Package store holds the resolved document collection and exposes its query
// primitives. A Store is immutable after construction; incoming edges are
// always computed on demand by scanning outgoing refs, never stored.
package store

import (
	"fmt"
	"sort"
	"strings"

	"github.com/starford/ansuz/internal/models"
	"github.com/starford/ansuz/internal/parser"
)

// Store is the resolved, read-only document collection. Posts keep their
// load order, which doubles as the tie-break for date sorting.
type Store struct {
	posts  []*models.Post
	bySlug map[string]*models.Post
}

// New builds a Store from posts in load order. Slugs must be unique.
func New(posts []*models.Post) (*Store, error) {
	bySlug := make(map[string]*models.Post, len(posts))
	for _, p := range posts {
		if _, dup := bySlug[p.Slug]; dup {
			return nil, fmt.Errorf("store: duplicate slug %q", p.Slug)
		}
		bySlug[p.Slug] = p
	}
	return &Store{posts: posts, bySlug: bySlug}, nil
}

// Len returns the total number of documents, drafts and hidden included.
func (s *Store) Len() int { return len(s.posts) }

// FindBySlug returns the document with the exact slug. Drafts and hidden
// documents are retrievable here; direct-link access is intentional.
func (s *Store) FindBySlug(slug string) (*models.Post, bool) {
	p, ok := s.bySlug[slug]
	return p, ok
}

// FindBySlugFold returns the first document whose slug matches
// case-insensitively. Fallback only, used for canonicalizing redirects;
// never the primary lookup.
func (s *Store) FindBySlugFold(slug string) (*models.Post, bool) {
	for _, p := range s.posts {
		if strings.EqualFold(p.Slug, slug) {
			return p, true
		}
	}
	return nil, false
}

// Listing returns the documents visible in listings, in load order. Hidden
// documents are always excluded; drafts only when includeDrafts is set.
func (s *Store) Listing(includeDrafts bool) []*models.Post {
	out := make([]*models.Post, 0, len(s.posts))
	for _, p := range s.posts {
		if p.Metadata.Hidden {
			continue
		}
		if p.Metadata.Draft && !includeDrafts {
			continue
		}
		out = append(out, p)
	}
	return out
}

// AllTags returns every tag across listed documents in first-seen order.
// A non-empty category scopes the scan to documents of that category.
func (s *Store) AllTags(category string) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, p := range s.Listing(false) {
		if category != "" && p.Metadata.Category != category {
			continue
		}
		for _, t := range p.Metadata.Tags {
			if _, dup := seen[t]; dup {
				continue
			}
			seen[t] = struct{}{}
			out = append(out, t)
		}
	}
	return out
}

// AllCategories returns every category across listed documents in
// first-seen order.
func (s *Store) AllCategories() []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, p := range s.Listing(false) {
		c := p.Metadata.Category
		if c == "" {
			continue
		}
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}

// ReferencedBy returns the listed documents whose outgoing refs resolve to
// slug, in load order. Drafts and hidden documents never surface here even
// when they carry a matching ref; their visibility rules extend to the
// connection graph. A document never references itself, even when its own
// refs contain its slug.
func (s *Store) ReferencedBy(slug string) []*models.Post {
	var out []*models.Post
	for _, p := range s.Listing(false) {
		if p.Slug == slug {
			continue
		}
		for _, ref := range p.Metadata.OutgoingRefs {
			if parser.Slugify(ref) == slug {
				out = append(out, p)
				break
			}
		}
	}
	return out
}

// SortedByDate returns the listed documents ordered by date. The sort is
// stable: equal dates keep their load order.
func (s *Store) SortedByDate(ascending bool) []*models.Post {
	return SortByDate(s.Listing(false), ascending)
}

// SortByDate stable-sorts posts by date into a new slice, leaving the input
// untouched. Ties keep their relative (load) order.
func SortByDate(posts []*models.Post, ascending bool) []*models.Post {
	out := make([]*models.Post, len(posts))
	copy(out, posts)
	sort.SliceStable(out, func(i, j int) bool {
		if ascending {
			return out[i].Metadata.Date.Before(out[j].Metadata.Date)
		}
		return out[i].Metadata.Date.After(out[j].Metadata.Date)
	})
	return out
}
