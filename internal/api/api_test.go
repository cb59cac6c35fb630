package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/starford/ansuz/internal/api"
	"github.com/starford/ansuz/internal/postservice"
	"github.com/starford/ansuz/internal/render"
	"github.com/starford/ansuz/internal/store"
	"github.com/starford/ansuz/internal/testutil"
	"github.com/starford/ansuz/pkg/sectionnav"
)

var testNav = sectionnav.Config{HeaderOffset: 80, Throttle: 150 * time.Millisecond}

func newTestService(t *testing.T) *postservice.Service {
	t.Helper()
	st := testutil.LoadStore(t, map[string]string{
		"steam-deck.md": "---\ntitle: Steam Deck review\ndate: 2024-03-01\ntags: [gaming, hardware]\ncategory: Tech\nsummary: Handheld verdict\n---\n# Verdict\n\nGreat. See {{Steam Sale}}.\n",
		"steam-sale.md": "---\ntitle: Steam sale picks\ndate: 2024-01-15\ntags: [gaming]\ncategory: Tech\n---\nPicks.\n",
		"sourdough.md":  "---\ntitle: Sourdough bread guide\ndate: 2024-02-10\ntags: [baking]\ncategory: Food\n---\nKnead.\n",
		"draft.md":      "---\ntitle: WIP\ndate: 2024-04-01\ndraft: true\ncategory: Tech\n---\nSoon.\n",
	})
	return postservice.NewService(store.NewManager(st), render.New(), 0.7, true)
}

func newTestRouter(t *testing.T) http.Handler {
	return api.NewRouter(newTestService(t), testNav, false, "", nil)
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, into any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), into); err != nil {
		t.Fatalf("decode: %v\nbody: %s", err, w.Body.String())
	}
}

func TestListPosts(t *testing.T) {
	w := get(t, newTestRouter(t), "/posts")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var body struct {
		Posts []struct {
			Slug string `json:"slug"`
		} `json:"posts"`
		Total int `json:"total"`
	}
	decode(t, w, &body)
	if body.Total != 3 {
		t.Fatalf("total = %d, want 3 (draft excluded)", body.Total)
	}
	// Date descending by default.
	if body.Posts[0].Slug != "steam-deck" || body.Posts[2].Slug != "steam-sale" {
		t.Errorf("order = %v", body.Posts)
	}
}

func TestListPosts_Filters(t *testing.T) {
	r := newTestRouter(t)

	var body struct {
		Posts []struct {
			Slug string `json:"slug"`
		} `json:"posts"`
		Total int `json:"total"`
	}

	decode(t, get(t, r, "/posts?category=Food"), &body)
	if body.Total != 1 || body.Posts[0].Slug != "sourdough" {
		t.Errorf("category filter = %+v", body)
	}

	decode(t, get(t, r, "/posts?tags=gaming,hardware"), &body)
	if body.Total != 1 || body.Posts[0].Slug != "steam-deck" {
		t.Errorf("tags filter = %+v", body)
	}

	decode(t, get(t, r, "/posts?q=steam&sort=asc"), &body)
	if body.Total != 2 || body.Posts[0].Slug != "steam-sale" {
		t.Errorf("query+sort = %+v", body)
	}

	decode(t, get(t, r, "/posts?drafts=1"), &body)
	if body.Total != 4 {
		t.Errorf("drafts total = %d, want 4", body.Total)
	}

	decode(t, get(t, r, "/posts?category=Nope"), &body)
	if body.Total != 0 || body.Posts == nil {
		t.Errorf("empty result should be a valid non-null response: %+v", body)
	}
}

func TestGetPost(t *testing.T) {
	w := get(t, newTestRouter(t), "/posts/steam-deck")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var body struct {
		Slug         string   `json:"slug"`
		HTML         string   `json:"html"`
		OutgoingRefs []string `json:"outgoing_refs"`
		Headings     []struct {
			ID string `json:"id"`
		} `json:"headings"`
		HasConnected bool `json:"has_connected"`
	}
	decode(t, w, &body)
	if body.Slug != "steam-deck" {
		t.Errorf("slug = %q", body.Slug)
	}
	if !strings.Contains(body.HTML, `href="/steam-sale"`) {
		t.Errorf("rewritten ref missing from HTML: %s", body.HTML)
	}
	if len(body.OutgoingRefs) != 1 || body.OutgoingRefs[0] != "Steam Sale" {
		t.Errorf("outgoing refs = %v", body.OutgoingRefs)
	}
	if len(body.Headings) != 1 || body.Headings[0].ID != "verdict" {
		t.Errorf("headings = %+v", body.Headings)
	}
	if !body.HasConnected {
		t.Error("has_connected = false, want true")
	}

	if etag := w.Header().Get("ETag"); etag == "" || !strings.HasPrefix(etag, `"`) {
		t.Errorf("etag = %q, want quoted checksum", etag)
	}
}

func TestGetPost_NotFound(t *testing.T) {
	w := get(t, newTestRouter(t), "/posts/missing")
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestConnections(t *testing.T) {
	r := newTestRouter(t)

	var body struct {
		Outgoing     []string `json:"outgoing"`
		ReferencedBy []struct {
			Slug string `json:"slug"`
		} `json:"referenced_by"`
		HasConnected bool `json:"has_connected"`
	}

	decode(t, get(t, r, "/posts/steam-sale/connections"), &body)
	if len(body.ReferencedBy) != 1 || body.ReferencedBy[0].Slug != "steam-deck" {
		t.Errorf("referenced_by = %+v", body.ReferencedBy)
	}
	if !body.HasConnected {
		t.Error("has_connected = false, want true")
	}

	decode(t, get(t, r, "/posts/steam-deck/connections"), &body)
	if len(body.Outgoing) != 1 || body.Outgoing[0] != "steam-sale" {
		t.Errorf("outgoing = %v, want derived slugs", body.Outgoing)
	}

	decode(t, get(t, r, "/posts/sourdough/connections"), &body)
	if body.HasConnected {
		t.Error("sourdough has no connections")
	}
}

func TestTagsAndCategories(t *testing.T) {
	r := newTestRouter(t)

	var tags struct {
		Tags []string `json:"tags"`
	}
	decode(t, get(t, r, "/tags"), &tags)
	// First-seen across lexical load order: sourdough, steam-deck, steam-sale.
	want := []string{"baking", "gaming", "hardware"}
	if len(tags.Tags) != 3 || tags.Tags[0] != want[0] || tags.Tags[1] != want[1] || tags.Tags[2] != want[2] {
		t.Errorf("tags = %v, want %v", tags.Tags, want)
	}

	decode(t, get(t, r, "/tags?category=Food"), &tags)
	if len(tags.Tags) != 1 || tags.Tags[0] != "baking" {
		t.Errorf("scoped tags = %v", tags.Tags)
	}

	var cats struct {
		Categories []string `json:"categories"`
	}
	decode(t, get(t, r, "/categories"), &cats)
	if len(cats.Categories) != 2 || cats.Categories[0] != "Food" || cats.Categories[1] != "Tech" {
		t.Errorf("categories = %v, want [Food Tech]", cats.Categories)
	}
}

func TestNavSettings(t *testing.T) {
	w := get(t, newTestRouter(t), "/nav")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var body struct {
		HeaderOffset     float64 `json:"header_offset"`
		ScrollThrottleMS int64   `json:"scroll_throttle_ms"`
	}
	decode(t, w, &body)
	if body.HeaderOffset != 80 {
		t.Errorf("header_offset = %v, want 80", body.HeaderOffset)
	}
	if body.ScrollThrottleMS != 150 {
		t.Errorf("scroll_throttle_ms = %d, want 150", body.ScrollThrottleMS)
	}
}

func TestAuth(t *testing.T) {
	r := api.NewRouter(newTestService(t), testNav, true, "secret", nil)

	w := get(t, r, "/posts")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("no token: status = %d, want 401", w.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/posts", nil)
	req.Header.Set("Authorization", "Bearer wrong")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("bad token: status = %d, want 401", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/posts", nil)
	req.Header.Set("Authorization", "Bearer secret")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("good token: status = %d, want 200", w.Code)
	}
}

func TestPageRedirects(t *testing.T) {
	r := api.NewPageRouter(newTestService(t))

	// Case-insensitive hit redirects permanently to the canonical path.
	w := get(t, r, "/Steam-Deck")
	if w.Code != http.StatusMovedPermanently {
		t.Fatalf("status = %d, want 301", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/steam-deck" {
		t.Errorf("location = %q, want /steam-deck", loc)
	}

	// A miss is non-fatal: back to the listing root.
	w = get(t, r, "/no-such-post")
	if w.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/" {
		t.Errorf("location = %q, want /", loc)
	}
}

func TestPagePost(t *testing.T) {
	r := api.NewPageRouter(newTestService(t))
	w := get(t, r, "/steam-deck")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "<title>Steam Deck review</title>") {
		t.Errorf("title missing from page:\n%s", body)
	}
	if !strings.Contains(body, `href="/steam-sale"`) {
		t.Errorf("rewritten ref missing from page:\n%s", body)
	}
}

func TestPageIndex(t *testing.T) {
	r := api.NewPageRouter(newTestService(t))
	w := get(t, r, "/")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	body := w.Body.String()
	for _, want := range []string{`href="/steam-deck"`, `href="/steam-sale"`, `href="/sourdough"`} {
		if !strings.Contains(body, want) {
			t.Errorf("listing missing %s:\n%s", want, body)
		}
	}
	if strings.Contains(body, "WIP") {
		t.Error("draft leaked into the listing page")
	}
}
