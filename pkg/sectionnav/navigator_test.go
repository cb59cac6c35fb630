package sectionnav

import (
	"testing"
	"time"
)

// fakeClock is advanced manually so throttle behavior is deterministic.
type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestNavigator(t *testing.T, clock *fakeClock, scrollTo ScrollFunc) *Navigator {
	t.Helper()
	n := NewNavigator(Config{
		HeaderOffset: 80,
		Throttle:     150 * time.Millisecond,
		Clock:        clock.Now,
	}, scrollTo)
	t.Cleanup(n.Close)
	return n
}

func testDocument() Document {
	return Document{
		Slug:         "steam-deck",
		Boundaries:   docBoundaries(),
		HasConnected: true,
	}
}

func TestNavigator_OpenStartsAtNone(t *testing.T) {
	n := newTestNavigator(t, &fakeClock{}, nil)
	n.Open(testDocument())
	if got := n.State(); got.Kind != None {
		t.Errorf("state = %+v, want None", got)
	}
}

func TestNavigator_ScrollDerivesState(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1000, 0)}
	n := newTestNavigator(t, clock, nil)
	n.Open(testDocument())

	gen := n.Generation()
	n.OnScroll(gen, 500, 200)
	got := n.State()
	if got.Kind != Heading || got.HeadingID != "setup" {
		t.Errorf("state = %+v, want heading setup", got)
	}
}

func TestNavigator_ReopenResetsEvenAtSameOffset(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1000, 0)}
	n := newTestNavigator(t, clock, nil)
	n.Open(testDocument())
	n.OnScroll(n.Generation(), 500, 200)
	if n.State().Kind != Heading {
		t.Fatal("precondition: expected a heading state")
	}

	// Same document, same scroll position. The reset is unconditional.
	n.Open(testDocument())
	if got := n.State(); got.Kind != None {
		t.Errorf("state after reopen = %+v, want None", got)
	}
}

func TestNavigator_StaleGenerationDropped(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1000, 0)}
	n := newTestNavigator(t, clock, nil)
	n.Open(testDocument())
	stale := n.Generation()

	n.Open(testDocument())
	n.OnScroll(stale, 500, 200)
	if got := n.State(); got.Kind != None {
		t.Errorf("state = %+v, want None after stale scroll", got)
	}
}

func TestNavigator_ThrottleDropsRapidScrolls(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1000, 0)}
	n := newTestNavigator(t, clock, nil)
	n.Open(testDocument())
	gen := n.Generation()

	n.OnScroll(gen, 500, 200)
	if got := n.State(); got.HeadingID != "setup" {
		t.Fatalf("state = %+v, want setup", got)
	}

	// Too soon: the evaluation is dropped and state stands.
	clock.Advance(50 * time.Millisecond)
	n.OnScroll(gen, 1300, 400)
	if got := n.State(); got.HeadingID != "setup" {
		t.Errorf("throttled scroll changed state to %+v", got)
	}

	// Past the window the next tick lands.
	clock.Advance(150 * time.Millisecond)
	n.OnScroll(gen, 1300, 400)
	if got := n.State(); got.Kind != Comments {
		t.Errorf("state = %+v, want Comments", got)
	}
}

func TestNavigator_ClickIsAuthoritative(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1000, 0)}
	targets := make(chan float64, 1)
	n := newTestNavigator(t, clock, func(target float64) { targets <- target })
	n.Open(testDocument())

	n.OnScroll(n.Generation(), 500, 200)
	n.ClickComments()
	if got := n.State(); got.Kind != Comments {
		t.Fatalf("state = %+v, want Comments", got)
	}

	// Comments boundary sits at 1200; the header offset is subtracted.
	select {
	case target := <-targets:
		if target != 1120 {
			t.Errorf("scroll target = %v, want 1120", target)
		}
	default:
		t.Error("click did not request a scroll")
	}
}

func TestNavigator_ClickConnectedGated(t *testing.T) {
	n := newTestNavigator(t, &fakeClock{}, nil)
	doc := testDocument()
	doc.HasConnected = false
	n.Open(doc)

	n.ClickConnected()
	if got := n.State(); got.Kind != None {
		t.Errorf("state = %+v, want None for a document without connections", got)
	}

	doc.HasConnected = true
	n.Open(doc)
	n.ClickConnected()
	if got := n.State(); got.Kind != Connected {
		t.Errorf("state = %+v, want Connected", got)
	}
}

func TestNavigator_Flags(t *testing.T) {
	n := newTestNavigator(t, &fakeClock{}, nil)
	n.Open(testDocument())

	n.ClickConnected()
	f := n.Flags()
	if !f.Connected || f.Comments {
		t.Errorf("flags = %+v, want connected only", f)
	}

	n.ClickComments()
	f = n.Flags()
	if f.Connected || !f.Comments {
		t.Errorf("flags = %+v, want comments only", f)
	}
}

func TestNavigator_CloseIsIdempotent(t *testing.T) {
	n := NewNavigator(Config{}, nil)
	n.Close()
	n.Close()
	if got := n.State(); got.Kind != None {
		t.Errorf("state after close = %+v, want None", got)
	}
}
