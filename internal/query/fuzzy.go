package query

import (
	"sort"
	"strings"
	"unicode"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"

	"github.com/starford/ansuz/internal/models"
)

// scored pairs a post with its relevance and original position, so result
// ordering never depends on map iteration.
type scored struct {
	post  *models.Post
	score float64
	pos   int
}

// fuzzySearch scores every post against the query over title, summary, and
// body, and returns those at or above minScore, best first. Equal scores
// keep input order, so identical inputs always produce identical output.
func fuzzySearch(posts []*models.Post, query string, minScore float64) []*models.Post {
	qTokens := tokenize(query)
	if len(qTokens) == 0 {
		return posts
	}

	metric := metrics.NewJaroWinkler()

	var hits []scored
	for i, p := range posts {
		fields := [][]string{
			tokenize(p.Metadata.Title),
			tokenize(p.Metadata.Summary),
			tokenize(p.Body),
		}
		s := scoreAgainst(qTokens, fields, metric)
		if s >= minScore {
			hits = append(hits, scored{post: p, score: s, pos: i})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].score != hits[j].score {
			return hits[i].score > hits[j].score
		}
		return hits[i].pos < hits[j].pos
	})

	out := make([]*models.Post, len(hits))
	for i, h := range hits {
		out[i] = h.post
	}
	return out
}

// scoreAgainst averages, over the query tokens, the best match each token
// finds in any field. A substring hit counts as a full match, which keeps
// the matcher tolerant of partial words; everything else falls back to the
// similarity metric.
func scoreAgainst(qTokens []string, fields [][]string, metric strutil.StringMetric) float64 {
	total := 0.0
	for _, qt := range qTokens {
		best := 0.0
		for _, field := range fields {
			for _, ft := range field {
				var s float64
				if strings.Contains(ft, qt) {
					s = 1.0
				} else {
					s = strutil.Similarity(ft, qt, metric)
				}
				if s > best {
					best = s
				}
			}
			if best == 1.0 {
				break
			}
		}
		total += best
	}
	return total / float64(len(qTokens))
}

// tokenize lowercases s and splits it on non-alphanumeric runes.
func tokenize(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}
