package markdown

import (
	"fmt"
	"strings"
)

// Render converts report markdown into an HTML fragment: segment, classify,
// emit each block in source order. Pure; no state survives between blocks.
func Render(text string) string {
	blocks := Split(text)
	parts := make([]string, 0, len(blocks))
	for _, raw := range blocks {
		parts = append(parts, renderBlock(Classify(raw)))
	}
	return strings.Join(parts, "\n")
}

func renderBlock(b Block) string {
	var sb strings.Builder
	switch b.Kind {
	case KindTable:
		writeTable(&sb, b)
	case KindHeading:
		fmt.Fprintf(&sb, "<h%d>%s</h%d>", b.Level, Inline(b.Text), b.Level)
	case KindBlockquote:
		sb.WriteString("<blockquote>")
		sb.WriteString(Inline(strings.Join(b.Lines, " ")))
		sb.WriteString("</blockquote>")
	case KindUnorderedList:
		writeList(&sb, "ul", b.Items)
	case KindOrderedList:
		writeList(&sb, "ol", b.Items)
	default:
		sb.WriteString("<p>")
		sb.WriteString(strings.ReplaceAll(Inline(b.Raw), "\n", "<br>"))
		sb.WriteString("</p>")
	}
	return sb.String()
}

// Page wraps an HTML fragment in a minimal standalone document, styled to
// match the serve UI, for previewing renderer output in a browser.
func Page(title, body string) string {
	if title == "" {
		title = "vidbrief"
	}
	return fmt.Sprintf(pageShell, title, body)
}

const pageShell = `<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>%s</title>
<style>
  body { max-width: 760px; margin: 2rem auto; padding: 0 1rem;
         background: #282828; color: #ebdbb2;
         font: 16px/1.6 -apple-system, "Segoe UI", sans-serif; }
  h1, h2, h3, h4 { color: #b8bb26; }
  a { color: #83a598; }
  blockquote { border-left: 3px solid #504945; margin-left: 0;
               padding-left: 1rem; color: #bdae93; }
  table { border-collapse: collapse; }
  th, td { border: 1px solid #504945; padding: 0.3rem 0.6rem; text-align: left; }
</style>
</head>
<body>
%s
</body>
</html>`

func writeTable(sb *strings.Builder, b Block) {
	sb.WriteString("<table><thead><tr>")
	for _, cell := range b.Header {
		sb.WriteString("<th>")
		sb.WriteString(Inline(cell))
		sb.WriteString("</th>")
	}
	sb.WriteString("</tr></thead><tbody>")
	for _, row := range b.Rows {
		sb.WriteString("<tr>")
		for _, cell := range row {
			sb.WriteString("<td>")
			sb.WriteString(Inline(cell))
			sb.WriteString("</td>")
		}
		sb.WriteString("</tr>")
	}
	sb.WriteString("</tbody></table>")
}

func writeList(sb *strings.Builder, tag string, items []string) {
	sb.WriteString("<" + tag + ">")
	for _, item := range items {
		sb.WriteString("<li>")
		sb.WriteString(Inline(item))
		sb.WriteString("</li>")
	}
	sb.WriteString("</" + tag + ">")
}
