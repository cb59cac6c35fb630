package parser

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	nonSlugRe    = regexp.MustCompile(`[^a-z0-9-]`)
	hyphenRunRe  = regexp.MustCompile(`-{2,}`)
)

// Slugify derives the link target for a display text. The function is pure:
// identical input always yields identical output, independent of document or
// load order, so link targets resolve across documents without a lookup table.
//
// Rules: decompose and strip combining marks, lowercase, whitespace to
// hyphens, drop everything outside [a-z0-9-], collapse hyphen runs, trim
// edge hyphens. An empty result is accepted; such links never resolve.
func Slugify(text string) string {
	s := stripMarks(text)
	s = strings.ToLower(s)
	s = whitespaceRe.ReplaceAllString(s, "-")
	s = nonSlugRe.ReplaceAllString(s, "")
	s = hyphenRunRe.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// SlugFromFilename derives a post slug from its source filename. Running the
// stem through Slugify keeps filename-derived slugs and reference-derived
// slugs on the same alphabet, so a ref whose display text matches a filename
// stem always resolves.
func SlugFromFilename(name string) string {
	stem := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	return Slugify(stem)
}

// stripMarks NFKD-decomposes s and removes combining marks, degrading
// accented display text the same way a transliterated filename would.
func stripMarks(s string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
