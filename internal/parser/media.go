package parser

import (
	"strings"

	"github.com/starford/ansuz/internal/models"
)

// extractMedia scans body for {{youtube.<url>}} markers outside code fences
// and records a placeholder per marker. Positions are byte offsets into the
// scanned body; callers scan the rewritten body so offsets match the render
// target. Markers whose URL resolves to no known identifier keep an empty
// ResolvedID and stay verbatim in the body.
func extractMedia(body string, fences []fenceRegion) []models.MediaPlaceholder {
	matches := markerRe.FindAllStringSubmatchIndex(body, -1)
	var out []models.MediaPlaceholder
	for _, m := range matches {
		if inFence(fences, m[0]) {
			continue
		}
		inner := body[m[2]:m[3]]
		if !strings.HasPrefix(inner, mediaPrefix) {
			continue
		}
		url := strings.TrimSpace(inner[len(mediaPrefix):])
		out = append(out, models.MediaPlaceholder{
			Position:   m[0],
			Kind:       "video",
			SourceURL:  url,
			ResolvedID: ExtractYouTubeID(url),
		})
	}
	return out
}
