package markdown

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/net/html"
)

// Excerpt renders a report and flattens it to a single plain-text line no
// wider than width display columns, for history listings and previews.
func Excerpt(src string, width int) string {
	z := html.NewTokenizer(strings.NewReader(Render(src)))

	var sb strings.Builder
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			break
		}
		if tt != html.TextToken {
			continue
		}
		sb.WriteString(z.Token().Data)
		sb.WriteByte(' ')
	}

	flat := strings.Join(strings.Fields(sb.String()), " ")
	if width <= 0 {
		return flat
	}
	return runewidth.Truncate(flat, width, "…")
}
