// Package models defines the domain types for Ansuz.
package models

import "time"

// Metadata holds a post's frontmatter fields with defaults applied at parse time.
type Metadata struct {
	Title    string    `json:"title"`
	Date     time.Time `json:"date"`
	Summary  string    `json:"summary"`
	Tags     []string  `json:"tags"`
	Category string    `json:"category"`
	Draft    bool      `json:"draft"`
	Hidden   bool      `json:"hidden"`
	// OutgoingRefs lists the display texts of {{...}} reference markers in
	// order of first appearance, duplicates collapsed. Targets are not
	// validated at parse time; a ref may name a post that does not exist.
	OutgoingRefs []string `json:"outgoing_refs"`
}

// Post is a fully resolved document. Posts are immutable after load.
type Post struct {
	// Slug is the unique identifier derived from the source filename.
	Slug string `json:"slug"`
	// RawBody is the markdown body before reference rewriting.
	RawBody string `json:"-"`
	// Body is the markdown body with {{...}} markers rewritten to links.
	Body     string             `json:"body"`
	Metadata Metadata           `json:"metadata"`
	Media    []MediaPlaceholder `json:"media,omitempty"`
	Checksum string             `json:"checksum"`
}

// MediaPlaceholder marks an embedded-media marker found in the body.
// A placeholder whose ResolvedID is empty renders as literal text.
type MediaPlaceholder struct {
	Position   int    `json:"position"` // byte offset in Body
	Kind       string `json:"kind"`     // currently always "video"
	SourceURL  string `json:"source_url"`
	ResolvedID string `json:"resolved_id,omitempty"`
}

// Heading is one entry of a post's table of contents.
type Heading struct {
	ID    string `json:"id"`
	Text  string `json:"text"`
	Level int    `json:"level"`
}
