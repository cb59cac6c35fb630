package parser

import (
	"regexp"
	"strings"
)

// Known YouTube URL shapes, each capturing an 11-character identifier token:
// watch pages, embed paths, shorts paths, /v/ paths, and the youtu.be
// short-link form.
var youtubePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:https?://)?(?:www\.)?youtube\.com/(?:watch\?v=|embed/|shorts/|v/|user/.+/|playlist\?.+list=)([^#&?]{11})`),
	regexp.MustCompile(`(?:https?://)?(?:www\.)?youtu\.be/([^#&?]{11})`),
}

// youtubeLegacyRe is a fallback for URL structures the shape patterns miss.
var youtubeLegacyRe = regexp.MustCompile(`(?:/|%3D|v=|vi=)([0-9A-Za-z_-]{11})(?:[%#?&]|$)`)

// ExtractYouTubeID resolves the 11-character video identifier from a YouTube
// URL, or returns "" when the URL matches no known shape. Callers treat an
// empty result as a resolution miss, never an error.
func ExtractYouTubeID(url string) string {
	if url == "" {
		return ""
	}

	var id string
	for _, re := range youtubePatterns {
		if m := re.FindStringSubmatch(url); m != nil && len(m[1]) == 11 {
			id = m[1]
			break
		}
	}

	if id == "" {
		if m := youtubeLegacyRe.FindStringSubmatch(url); m != nil && len(m[1]) == 11 {
			id = m[1]
		}
	}

	// Playlist tokens slip through the shape patterns.
	if id == "videoseries" || strings.Contains(id, "playlist") {
		return ""
	}
	return id
}
