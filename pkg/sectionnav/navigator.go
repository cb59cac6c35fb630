package sectionnav

import (
	"sync/atomic"
	"time"
)

// ScrollFunc is the page adapter the Navigator notifies when an explicit
// click requires a smooth scroll to a target offset.
type ScrollFunc func(target float64)

// Config tunes a Navigator.
type Config struct {
	// HeaderOffset is subtracted from a heading's offset when scrolling to
	// it, compensating for the fixed page header.
	HeaderOffset float64
	// Throttle is the minimum spacing between scroll evaluations. Dropped
	// evaluations cost nothing: each tick reads current, not historical,
	// scroll position.
	Throttle time.Duration
	// Clock overrides time.Now, for tests.
	Clock func() time.Time
}

// Document describes the open document to the Navigator.
type Document struct {
	Slug string
	// Boundaries holds the recorded offsets of each heading, the
	// connected-posts block (if present), and the comments block, in
	// document order.
	Boundaries []Boundary
	// HasConnected gates the Connected state: true iff the document has
	// outgoing refs or a non-empty referenced-by set.
	HasConnected bool
}

type scrollEvent struct {
	gen      uint64
	offset   float64
	viewport float64
}

type clickEvent struct {
	state State
}

// Navigator is the section state machine. A single internal event loop owns
// all mutable state (one goroutine, channel requests, no mutexes), so an
// explicit click and a passive scroll evaluation can never race: the loop is
// the only writer, and a click's state stands until the next scroll tick
// re-evaluates.
type Navigator struct {
	cfg      Config
	scrollTo ScrollFunc

	openCh   chan Document
	clickCh  chan clickEvent
	scrollCh chan scrollEvent
	stateCh  chan chan State
	genCh    chan chan uint64

	stopCh  chan struct{}
	stopped chan struct{}
	closed  atomic.Bool
}

// NewNavigator creates and starts a Navigator. scrollTo may be nil when no
// page adapter is attached (headless use in tests).
func NewNavigator(cfg Config, scrollTo ScrollFunc) *Navigator {
	if cfg.Throttle <= 0 {
		cfg.Throttle = 150 * time.Millisecond
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	n := &Navigator{
		cfg:      cfg,
		scrollTo: scrollTo,
		openCh:   make(chan Document),
		clickCh:  make(chan clickEvent),
		scrollCh: make(chan scrollEvent),
		stateCh:  make(chan chan State),
		genCh:    make(chan chan uint64),
		stopCh:   make(chan struct{}),
		stopped:  make(chan struct{}),
	}
	go n.run()
	return n
}

func (n *Navigator) run() {
	defer close(n.stopped)

	var (
		doc      Document
		gen      uint64
		state    = State{Kind: None}
		lastEval time.Time
	)

	for {
		select {
		case <-n.stopCh:
			return

		case d := <-n.openCh:
			// Hard reset, unconditional. Bumping the generation discards
			// any scroll evaluation still queued against the previous
			// document.
			doc = d
			gen++
			state = State{Kind: None}
			lastEval = time.Time{}

		case c := <-n.clickCh:
			if c.state.Kind == Connected && !doc.HasConnected {
				continue
			}
			state = c.state
			// Cancel pending scroll-derived transitions.
			n.drainScroll()
			if n.scrollTo != nil {
				if target, ok := n.boundaryOffset(doc, c.state); ok {
					n.scrollTo(target - n.cfg.HeaderOffset)
				}
			}

		case ev := <-n.scrollCh:
			if ev.gen != gen {
				continue
			}
			now := n.cfg.Clock()
			if !lastEval.IsZero() && now.Sub(lastEval) < n.cfg.Throttle {
				continue
			}
			lastEval = now
			state = Derive(ev.offset, ev.viewport, doc.Boundaries)

		case resp := <-n.stateCh:
			resp <- state

		case resp := <-n.genCh:
			resp <- gen
		}
	}
}

func (n *Navigator) drainScroll() {
	for {
		select {
		case <-n.scrollCh:
		default:
			return
		}
	}
}

func (n *Navigator) boundaryOffset(doc Document, s State) (float64, bool) {
	for _, b := range doc.Boundaries {
		if b.State.Kind != s.Kind {
			continue
		}
		if s.Kind == Heading && b.State.HeadingID != s.HeadingID {
			continue
		}
		return b.Offset, true
	}
	return 0, false
}

// Open switches the Navigator to a new document and resets state to None.
func (n *Navigator) Open(doc Document) {
	select {
	case n.openCh <- doc:
	case <-n.stopped:
	}
}

// Generation returns the current document generation. Scroll events carry
// the generation they were observed under; stale ones are dropped.
func (n *Navigator) Generation() uint64 {
	resp := make(chan uint64, 1)
	select {
	case n.genCh <- resp:
		return <-resp
	case <-n.stopped:
		return 0
	}
}

// ClickHeading activates a TOC heading and asks the page to scroll to it,
// offset by the header height.
func (n *Navigator) ClickHeading(id string) {
	n.click(State{Kind: Heading, HeadingID: id})
}

// ClickConnected activates the connected-posts block. Ignored when the open
// document has no connections.
func (n *Navigator) ClickConnected() {
	n.click(State{Kind: Connected})
}

// ClickComments activates the comments block. Always reachable.
func (n *Navigator) ClickComments() {
	n.click(State{Kind: Comments})
}

func (n *Navigator) click(s State) {
	select {
	case n.clickCh <- clickEvent{state: s}:
	case <-n.stopped:
	}
}

// OnScroll submits one throttled scroll evaluation observed under gen.
// Evaluations for a stale generation are discarded.
func (n *Navigator) OnScroll(gen uint64, offset, viewport float64) {
	select {
	case n.scrollCh <- scrollEvent{gen: gen, offset: offset, viewport: viewport}:
	case <-n.stopped:
	}
}

// State returns the current section state.
func (n *Navigator) State() State {
	resp := make(chan State, 1)
	select {
	case n.stateCh <- resp:
		return <-resp
	case <-n.stopped:
		return State{Kind: None}
	}
}

// Flags returns the current {connected, comments} view.
func (n *Navigator) Flags() Flags {
	return n.State().Flags()
}

// Close stops the event loop.
func (n *Navigator) Close() {
	if n.closed.CompareAndSwap(false, true) {
		close(n.stopCh)
	}
	<-n.stopped
}
