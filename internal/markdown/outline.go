package markdown

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// OutlineItem is one heading of a report.
type OutlineItem struct {
	Level int
	Text  string
}

var outlineMarkdown = goldmark.New()

// Outline extracts the heading structure of a report in document order.
// This uses a CommonMark parse rather than the rendering dialect above:
// heading detection is the same for both, and the AST keeps cell/span noise
// out of the extracted titles.
func Outline(src string) []OutlineItem {
	source := []byte(src)
	doc := outlineMarkdown.Parser().Parse(text.NewReader(source))

	var items []OutlineItem
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		h, ok := n.(*ast.Heading)
		if !ok {
			continue
		}
		title := strings.TrimSpace(string(h.Text(source)))
		if title == "" {
			continue
		}
		items = append(items, OutlineItem{Level: h.Level, Text: title})
	}
	return items
}

// Title derives a display title for a report: the first top-level heading,
// else the first heading of any level, else the first non-empty line.
func Title(src string) string {
	items := Outline(src)
	for _, it := range items {
		if it.Level == 1 {
			return it.Text
		}
	}
	if len(items) > 0 {
		return items[0].Text
	}
	for _, line := range strings.Split(src, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		return strings.TrimLeft(line, "#> ")
	}
	return ""
}
