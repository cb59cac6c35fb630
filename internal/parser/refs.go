package parser

import (
	"regexp"
	"strings"
)

// markerRe matches one {{...}} marker. The inner group excludes braces so
// nested or unbalanced markers never span each other.
var markerRe = regexp.MustCompile(`\{\{([^{}]*?)\}\}`)

// mediaPrefix is the reserved token that distinguishes a media marker from a
// reference marker. The check applies immediately inside the delimiters,
// before any trimming.
const mediaPrefix = "youtube."

// extractRefs collects reference display texts in order of first appearance,
// duplicates collapsed. Markers inside code fences and media markers are
// skipped.
func extractRefs(body string, fences []fenceRegion) []string {
	matches := markerRe.FindAllStringSubmatchIndex(body, -1)
	seen := make(map[string]struct{}, len(matches))
	var out []string
	for _, m := range matches {
		if inFence(fences, m[0]) {
			continue
		}
		inner := body[m[2]:m[3]]
		if strings.HasPrefix(inner, mediaPrefix) {
			continue
		}
		text := strings.TrimSpace(inner)
		if _, dup := seen[text]; dup {
			continue
		}
		seen[text] = struct{}{}
		out = append(out, text)
	}
	return out
}

// rewriteRefs replaces every reference marker outside code fences with a
// standard markdown link whose target is the slug derived from the display
// text. Media markers and fenced content are left verbatim.
func rewriteRefs(body string, fences []fenceRegion) string {
	matches := markerRe.FindAllStringSubmatchIndex(body, -1)
	if len(matches) == 0 {
		return body
	}

	var b strings.Builder
	b.Grow(len(body))
	last := 0
	for _, m := range matches {
		if inFence(fences, m[0]) {
			continue
		}
		inner := body[m[2]:m[3]]
		if strings.HasPrefix(inner, mediaPrefix) {
			continue
		}
		text := strings.TrimSpace(inner)
		b.WriteString(body[last:m[0]])
		b.WriteString("[")
		b.WriteString(text)
		b.WriteString("](/")
		b.WriteString(Slugify(text))
		b.WriteString(")")
		last = m[1]
	}
	b.WriteString(body[last:])
	return b.String()
}
