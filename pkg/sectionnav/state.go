// Package sectionnav tracks which region of an open document is active for
// navigation highlighting: a body heading, the connected-posts block, or the
// comments block. State is derived from scroll position or set by explicit
// clicks, and resets whenever the open document changes.
package sectionnav

// Kind identifies the active region.
type Kind int

const (
	// None is the initial state on document open.
	None Kind = iota
	// Heading means a body heading is active; State.HeadingID says which.
	Heading
	// Connected means the connected-posts block is active.
	Connected
	// Comments means the comments block is active.
	Comments
)

func (k Kind) String() string {
	switch k {
	case Heading:
		return "heading"
	case Connected:
		return "connected"
	case Comments:
		return "comments"
	default:
		return "none"
	}
}

// State is the active section. HeadingID is set only for Kind Heading.
type State struct {
	Kind      Kind
	HeadingID string
}

// Flags is the {connected, comments} view the TOC UI consumes. Both flags
// exist independently so a click can set one true and the other false
// deterministically, not by inference.
type Flags struct {
	Connected bool `json:"connected"`
	Comments  bool `json:"comments"`
}

// Flags projects the state onto the two-flag view.
func (s State) Flags() Flags {
	return Flags{
		Connected: s.Kind == Connected,
		Comments:  s.Kind == Comments,
	}
}
