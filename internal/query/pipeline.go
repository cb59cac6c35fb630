// Package query implements the search/filter/sort pipeline over a document
// set. Composition order is fixed: fuzzy search, then category, then tags,
// then the stable date sort. Re-running with identical inputs is
// deterministic.
package query

import (
	"slices"

	"github.com/starford/ansuz/internal/models"
	"github.com/starford/ansuz/internal/store"
)

// Order is the date sort direction.
type Order string

const (
	OrderAsc  Order = "asc"
	OrderDesc Order = "desc"
)

// DefaultMinScore is the similarity floor for the fuzzy stage. Tunable via
// configuration; lower is looser.
const DefaultMinScore = 0.7

// Pipeline holds the three filter axes and the ordering axis. The zero
// values (no query, no category, no tags, descending) pass every document.
type Pipeline struct {
	minScore float64

	query    string
	category string
	tags     []string
	order    Order
}

// New creates a pipeline with the given fuzzy similarity floor. A
// non-positive floor falls back to DefaultMinScore.
func New(minScore float64) *Pipeline {
	if minScore <= 0 {
		minScore = DefaultMinScore
	}
	return &Pipeline{minScore: minScore, order: OrderDesc}
}

// SetQuery sets the free-text query. Empty disables the fuzzy stage.
func (p *Pipeline) SetQuery(q string) { p.query = q }

// SetCategory sets the single-select category filter. Empty disables it.
func (p *Pipeline) SetCategory(c string) { p.category = c }

// SetTags replaces the tag filter. A document must carry every tag.
func (p *Pipeline) SetTags(tags []string) { p.tags = slices.Clone(tags) }

// ToggleTag adds the tag to the filter, or removes it if already selected.
func (p *Pipeline) ToggleTag(tag string) {
	if i := slices.Index(p.tags, tag); i >= 0 {
		p.tags = slices.Delete(p.tags, i, i+1)
		return
	}
	p.tags = append(p.tags, tag)
}

// SetOrder sets the date sort direction. Anything but OrderAsc means
// descending.
func (p *Pipeline) SetOrder(o Order) { p.order = o }

// Run applies the pipeline stages to posts in their fixed order and returns
// the result, never nil. An empty result at any stage is valid and
// propagates; it is a "no results" signal, not an error.
func (p *Pipeline) Run(posts []*models.Post) []*models.Post {
	working := posts

	if p.query != "" {
		working = fuzzySearch(working, p.query, p.minScore)
	}

	if p.category != "" {
		working = filter(working, func(post *models.Post) bool {
			return post.Metadata.Category == p.category
		})
	}

	if len(p.tags) > 0 {
		working = filter(working, func(post *models.Post) bool {
			for _, t := range p.tags {
				if !slices.Contains(post.Metadata.Tags, t) {
					return false
				}
			}
			return true
		})
	}

	return store.SortByDate(working, p.order == OrderAsc)
}

func filter(posts []*models.Post, keep func(*models.Post) bool) []*models.Post {
	out := []*models.Post{}
	for _, p := range posts {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}
