// Package parser turns raw markdown files into resolved documents: it splits
// the frontmatter block from the body, applies metadata defaults, rewrites
// {{...}} reference markers into links, and extracts media placeholders.
package parser

import (
	"bytes"
	"fmt"
	"time"

	"github.com/adrg/frontmatter"

	"github.com/starford/ansuz/internal/models"
)

// ParseError marks a document whose metadata block is malformed. The loader
// skips such documents and keeps the batch going.
type ParseError struct {
	Slug string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parser: %s: %v", e.Slug, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Result holds the output of parsing one document.
type Result struct {
	Metadata models.Metadata
	RawBody  string
	Body     string
	Media    []models.MediaPlaceholder
}

// matter mirrors the supported frontmatter keys. Absent keys keep zero
// values and take documented defaults afterwards.
type matter struct {
	Title    string   `yaml:"title"`
	Date     string   `yaml:"date"`
	Summary  string   `yaml:"summary"`
	Tags     []string `yaml:"tags"`
	Category string   `yaml:"category"`
	Draft    bool     `yaml:"draft"`
	Hidden   bool     `yaml:"hidden"`
}

// dateLayouts are accepted frontmatter date formats, tried in order.
var dateLayouts = []string{"2006-01-02", time.RFC3339, "2006-01-02 15:04:05"}

// Parse resolves one raw document. The slug comes from the filename, never
// from content. now supplies the default date for posts without one.
func Parse(slug string, data []byte, now time.Time) (*Result, error) {
	var fm matter
	rest, err := frontmatter.Parse(bytes.NewReader(data), &fm)
	if err != nil {
		return nil, &ParseError{Slug: slug, Err: err}
	}

	rawBody := string(rest)

	// Fence detection before marker detection, both passes.
	fences := fenceRegions(rawBody)
	refs := extractRefs(rawBody, fences)
	body := rewriteRefs(rawBody, fences)

	// Rewriting shifts offsets, so media positions are taken from the
	// rewritten body. Media markers themselves are untouched by rewriting.
	media := extractMedia(body, fenceRegions(body))

	md := models.Metadata{
		Title:        fm.Title,
		Summary:      fm.Summary,
		Tags:         fm.Tags,
		Category:     fm.Category,
		Draft:        fm.Draft,
		Hidden:       fm.Hidden,
		OutgoingRefs: refs,
	}
	if md.Title == "" {
		md.Title = "Untitled"
	}
	if md.Category == "" {
		md.Category = "General"
	}
	if md.Tags == nil {
		md.Tags = []string{}
	}
	md.Date = parseDate(fm.Date, now)

	return &Result{
		Metadata: md,
		RawBody:  rawBody,
		Body:     body,
		Media:    media,
	}, nil
}

func parseDate(s string, now time.Time) time.Time {
	if s == "" {
		return now
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return now
}
