package sectionnav

// Boundary records the vertical offset at which one section of the rendered
// document begins. Boundaries are supplied in document order.
type Boundary struct {
	State  State
	Offset float64
}

// Derive maps a scroll position to the active section: the furthest boundary
// at or above the viewport midpoint wins, and ties go to the later (lower)
// section. With no boundary at or above the midpoint the state is None.
//
// Derive is pure; the Navigator invokes it from its event loop, and tests
// call it directly without any scroll adapter.
func Derive(scrollOffset, viewportHeight float64, boundaries []Boundary) State {
	mid := scrollOffset + viewportHeight/2

	active := State{Kind: None}
	found := false
	best := 0.0
	for _, b := range boundaries {
		if b.Offset > mid {
			continue
		}
		if !found || b.Offset >= best {
			found = true
			best = b.Offset
			active = b.State
		}
	}
	return active
}
