package query_test

import (
	"testing"
	"time"

	"github.com/starford/ansuz/internal/models"
	"github.com/starford/ansuz/internal/query"
)

func post(slug, title, category string, tags []string, date string) *models.Post {
	d, _ := time.Parse("2006-01-02", date)
	return &models.Post{
		Slug: slug,
		Body: title + " body text",
		Metadata: models.Metadata{
			Title:    title,
			Category: category,
			Tags:     tags,
			Date:     d,
		},
	}
}

func catalog() []*models.Post {
	return []*models.Post{
		post("steam-deck", "Steam Deck review", "Tech", []string{"gaming", "hardware"}, "2024-03-01"),
		post("steam-sale", "Steam sale picks", "Tech", []string{"gaming"}, "2024-01-15"),
		post("sourdough", "Sourdough bread guide", "Food", []string{"baking"}, "2024-02-10"),
		post("steam-engine", "Steam engine history", "History", []string{"machines"}, "2024-02-20"),
	}
}

func slugsOf(posts []*models.Post) []string {
	out := make([]string, len(posts))
	for i, p := range posts {
		out[i] = p.Slug
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestRun_QueryThenDateOrder(t *testing.T) {
	p := query.New(0)
	p.SetQuery("steam")
	got := slugsOf(p.Run(catalog()))
	// All three steam posts match; final order is by date descending, not
	// by relevance.
	want := []string{"steam-deck", "steam-engine", "steam-sale"}
	if !equal(got, want) {
		t.Errorf("run = %v, want %v", got, want)
	}
}

func TestRun_CategoryFilter(t *testing.T) {
	p := query.New(0)
	p.SetCategory("Tech")
	got := slugsOf(p.Run(catalog()))
	want := []string{"steam-deck", "steam-sale"}
	if !equal(got, want) {
		t.Errorf("run = %v, want %v", got, want)
	}
}

func TestRun_TagsAreConjunctive(t *testing.T) {
	p := query.New(0)
	p.SetTags([]string{"gaming", "hardware"})
	got := slugsOf(p.Run(catalog()))
	if !equal(got, []string{"steam-deck"}) {
		t.Errorf("run = %v, want [steam-deck]", got)
	}
}

func TestToggleTag(t *testing.T) {
	p := query.New(0)
	p.ToggleTag("gaming")
	p.ToggleTag("hardware")
	p.ToggleTag("gaming") // off again
	got := slugsOf(p.Run(catalog()))
	if !equal(got, []string{"steam-deck"}) {
		t.Errorf("run = %v, want [steam-deck]", got)
	}
}

func TestRun_CombinedAxes(t *testing.T) {
	p := query.New(0)
	p.SetQuery("steam")
	p.SetCategory("Tech")
	p.SetTags([]string{"gaming"})
	p.SetOrder(query.OrderAsc)
	got := slugsOf(p.Run(catalog()))
	want := []string{"steam-sale", "steam-deck"}
	if !equal(got, want) {
		t.Errorf("run = %v, want %v", got, want)
	}
}

func TestRun_EmptyResultIsNotNil(t *testing.T) {
	p := query.New(0)
	p.SetCategory("Nope")
	got := p.Run(catalog())
	if got == nil {
		t.Fatal("empty result must be non-nil")
	}
	if len(got) != 0 {
		t.Errorf("len = %d, want 0", len(got))
	}
}

func TestRun_Deterministic(t *testing.T) {
	p := query.New(0)
	p.SetQuery("steam")
	first := slugsOf(p.Run(catalog()))
	for i := 0; i < 5; i++ {
		if again := slugsOf(p.Run(catalog())); !equal(again, first) {
			t.Fatalf("run %d = %v, earlier = %v", i, again, first)
		}
	}
}

func TestRun_NoAxesPassesEverything(t *testing.T) {
	p := query.New(0)
	got := slugsOf(p.Run(catalog()))
	// Default order is date descending.
	want := []string{"steam-deck", "steam-engine", "sourdough", "steam-sale"}
	if !equal(got, want) {
		t.Errorf("run = %v, want %v", got, want)
	}
}
