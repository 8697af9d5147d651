package markdown

import "strings"

// Inline rewrites markdown spans in a text run into HTML: **bold**, _italic_,
// [label](url) links, and bare http(s) URLs. The scan is a single left-to-right
// pass; a marker with no closing counterpart is emitted as literal text. Link
// construction consumes its URL characters outright, so the bare-URL rule can
// never see (and re-wrap) a URL that already became an href or a link label.
func Inline(text string) string {
	return inlineSpans(text, true)
}

// inlineSpans does the scanning. wrapURLs is false inside link labels, where
// a bare URL must stay plain text rather than nest another anchor.
func inlineSpans(text string, wrapURLs bool) string {
	var sb strings.Builder
	i := 0
	for i < len(text) {
		switch {
		case strings.HasPrefix(text[i:], "**"):
			if end := strings.Index(text[i+2:], "**"); end >= 0 {
				sb.WriteString("<strong>")
				sb.WriteString(inlineSpans(text[i+2:i+2+end], wrapURLs))
				sb.WriteString("</strong>")
				i += end + 4
				continue
			}

		case text[i] == '_':
			if end := strings.IndexByte(text[i+1:], '_'); end >= 0 {
				sb.WriteString("<em>")
				sb.WriteString(inlineSpans(text[i+1:i+1+end], wrapURLs))
				sb.WriteString("</em>")
				i += end + 2
				continue
			}

		case text[i] == '[':
			if label, url, rest, ok := scanLink(text[i:]); ok {
				writeAnchor(&sb, url, inlineSpans(label, false))
				i += len(text[i:]) - len(rest)
				continue
			}

		case wrapURLs && hasURLPrefix(text[i:]):
			end := i
			for end < len(text) && !isURLStop(text[end]) {
				end++
			}
			writeAnchor(&sb, text[i:end], text[i:end])
			i = end
			continue
		}

		sb.WriteByte(text[i])
		i++
	}
	return sb.String()
}

// scanLink parses [label](url) at the start of s. Label and url must be
// non-empty; the label may not contain ]. Returns the unconsumed remainder.
func scanLink(s string) (label, url, rest string, ok bool) {
	lb := strings.IndexByte(s, ']')
	if lb < 2 {
		return "", "", "", false
	}
	if lb+1 >= len(s) || s[lb+1] != '(' {
		return "", "", "", false
	}
	end := strings.IndexByte(s[lb+2:], ')')
	if end < 1 {
		return "", "", "", false
	}
	return s[1:lb], s[lb+2 : lb+2+end], s[lb+2+end+1:], true
}

func writeAnchor(sb *strings.Builder, url, label string) {
	sb.WriteString(`<a href="`)
	sb.WriteString(url)
	sb.WriteString(`" target="_blank" rel="noopener noreferrer">`)
	sb.WriteString(label)
	sb.WriteString("</a>")
}

func hasURLPrefix(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// isURLStop ends a bare URL at whitespace or a tag open. Trailing punctuation
// is swallowed into the URL, matching naive tokenization of provider output.
func isURLStop(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '<':
		return true
	}
	return false
}
