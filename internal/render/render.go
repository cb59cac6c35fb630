// Package render converts resolved markdown bodies to HTML and extracts the
// heading set that feeds the table of contents.
package render

import (
	"bytes"
	"fmt"

	highlighting "github.com/yuin/goldmark-highlighting/v2"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	gparser "github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"

	"github.com/starford/ansuz/internal/models"
	"github.com/starford/ansuz/internal/parser"
)

// Renderer wraps a configured goldmark instance. Safe for concurrent use.
type Renderer struct {
	md goldmark.Markdown
}

// New creates a renderer with GFM, syntax highlighting, and auto heading IDs.
func New() *Renderer {
	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				highlighting.NewHighlighting(
					highlighting.WithStyle("github"),
				),
			),
			goldmark.WithParserOptions(
				gparser.WithAutoHeadingID(),
			),
			goldmark.WithRendererOptions(
				html.WithUnsafe(),
			),
		),
	}
}

// HTML renders a markdown body to HTML.
func (r *Renderer) HTML(body string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(body), &buf); err != nil {
		return "", fmt.Errorf("render: %w", err)
	}
	return buf.String(), nil
}

// Headings returns the heading set of a markdown body in document order.
// IDs match the anchors the HTML renderer emits.
func (r *Renderer) Headings(body string) []models.Heading {
	src := []byte(body)
	doc := r.md.Parser().Parse(text.NewReader(src))

	var out []models.Heading
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		txt := nodeText(h, src)
		id := headingID(h)
		if id == "" {
			id = parser.Slugify(txt)
		}
		out = append(out, models.Heading{ID: id, Text: txt, Level: h.Level})
		return ast.WalkSkipChildren, nil
	})
	return out
}

func headingID(h *ast.Heading) string {
	v, ok := h.AttributeString("id")
	if !ok {
		return ""
	}
	switch id := v.(type) {
	case []byte:
		return string(id)
	case string:
		return id
	}
	return ""
}

func nodeText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *ast.Text:
			buf.Write(t.Segment.Value(src))
		case *ast.String:
			buf.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return buf.String()
}
