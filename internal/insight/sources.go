package insight

import (
	"fmt"
	"strings"
)

// FormatSources converts grounding citations into "[title](uri)" markdown
// entries. Citations with an empty URI are discarded, a missing title
// becomes "Source", and duplicate entries collapse to the first occurrence.
func FormatSources(sources []Source) []string {
	var entries []string
	for _, s := range sources {
		if s.URI == "" {
			continue
		}
		title := s.Title
		if title == "" {
			title = "Source"
		}
		entry := fmt.Sprintf("[%s](%s)", title, s.URI)
		if !containsString(entries, entry) {
			entries = append(entries, entry)
		}
	}
	return entries
}

// AppendSources appends a "## Sources" section listing the formatted
// citations. With no usable citations the markdown is returned unchanged.
func AppendSources(markdown string, sources []Source) string {
	entries := FormatSources(sources)
	if len(entries) == 0 {
		return markdown
	}

	var sb strings.Builder
	sb.WriteString(strings.TrimRight(markdown, "\n"))
	sb.WriteString("\n\n## Sources\n")
	for _, e := range entries {
		sb.WriteString("- ")
		sb.WriteString(e)
		sb.WriteString("\n")
	}
	return sb.String()
}

// DedupeSources filters citations the same way FormatSources does, but keeps
// them structured for API responses and history.
func DedupeSources(sources []Source) []Source {
	var out []Source
	var seen []string
	for _, s := range sources {
		if s.URI == "" {
			continue
		}
		title := s.Title
		if title == "" {
			title = "Source"
		}
		key := fmt.Sprintf("[%s](%s)", title, s.URI)
		if containsString(seen, key) {
			continue
		}
		seen = append(seen, key)
		out = append(out, Source{Title: title, URI: s.URI})
	}
	return out
}

func containsString(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
