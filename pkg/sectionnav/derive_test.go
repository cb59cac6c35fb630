package sectionnav

import "testing"

func docBoundaries() []Boundary {
	return []Boundary{
		{State: State{Kind: Heading, HeadingID: "intro"}, Offset: 100},
		{State: State{Kind: Heading, HeadingID: "setup"}, Offset: 400},
		{State: State{Kind: Connected}, Offset: 800},
		{State: State{Kind: Comments}, Offset: 1200},
	}
}

func TestDerive(t *testing.T) {
	cases := []struct {
		name     string
		offset   float64
		viewport float64
		want     State
	}{
		{"above first boundary", 0, 100, State{Kind: None}},
		{"midpoint exactly on boundary", 50, 100, State{Kind: Heading, HeadingID: "intro"}},
		{"between headings", 200, 100, State{Kind: Heading, HeadingID: "intro"}},
		{"second heading", 500, 200, State{Kind: Heading, HeadingID: "setup"}},
		{"connected block", 800, 200, State{Kind: Connected}},
		{"comments at bottom", 1300, 400, State{Kind: Comments}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Derive(tc.offset, tc.viewport, docBoundaries())
			if got != tc.want {
				t.Errorf("Derive(%v, %v) = %+v, want %+v", tc.offset, tc.viewport, got, tc.want)
			}
		})
	}
}

func TestDerive_TieGoesToLaterSection(t *testing.T) {
	boundaries := []Boundary{
		{State: State{Kind: Heading, HeadingID: "a"}, Offset: 100},
		{State: State{Kind: Heading, HeadingID: "b"}, Offset: 100},
	}
	got := Derive(100, 0, boundaries)
	if got.HeadingID != "b" {
		t.Errorf("tie resolved to %q, want b", got.HeadingID)
	}
}

func TestDerive_NoBoundaries(t *testing.T) {
	got := Derive(500, 800, nil)
	if got.Kind != None {
		t.Errorf("kind = %v, want None", got.Kind)
	}
}
