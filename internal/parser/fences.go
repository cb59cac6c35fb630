package parser

import "strings"

// fenceRegion is a half-open byte range [Start, End) covering a fenced code
// block, fence lines included.
type fenceRegion struct {
	Start int
	End   int
}

// fenceRegions scans body line by line and returns the byte ranges of fenced
// code blocks (``` or ~~~). An unterminated fence extends to the end of the
// body. Fence detection runs before any marker detection so that code samples
// containing {{...}}-like text are passed through untouched.
func fenceRegions(body string) []fenceRegion {
	var regions []fenceRegion
	var open bool
	var openMarker string
	var start int

	offset := 0
	for offset <= len(body) {
		end := strings.IndexByte(body[offset:], '\n')
		var line string
		next := len(body) + 1
		if end >= 0 {
			line = body[offset : offset+end]
			next = offset + end + 1
		} else {
			line = body[offset:]
		}

		trimmed := strings.TrimSpace(line)
		switch {
		case !open && (strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~")):
			open = true
			openMarker = trimmed[:3]
			start = offset
		case open && closesFence(trimmed, openMarker):
			regions = append(regions, fenceRegion{Start: start, End: min(next, len(body))})
			open = false
		}

		offset = next
	}

	if open {
		regions = append(regions, fenceRegion{Start: start, End: len(body)})
	}
	return regions
}

// closesFence reports whether a trimmed line terminates an open fence. A
// closer is fence characters only; a line like "```go" carries an info
// string and is content, matching how the markdown renderer treats it.
func closesFence(trimmed, openMarker string) bool {
	if !strings.HasPrefix(trimmed, openMarker) {
		return false
	}
	return strings.TrimLeft(trimmed, openMarker[:1]) == ""
}

// inFence reports whether byte offset pos falls inside any of regions.
func inFence(regions []fenceRegion, pos int) bool {
	for _, r := range regions {
		if pos >= r.Start && pos < r.End {
			return true
		}
	}
	return false
}
