package markdown

import (
	"strings"
	"testing"
)

func TestInline(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		contains []string
		absent   []string
	}{
		{
			name:     "bold",
			input:    "some **bold** text",
			contains: []string{"<strong>bold</strong>"},
			absent:   []string{"**"},
		},
		{
			name:     "italic",
			input:    "some _italic_ text",
			contains: []string{"<em>italic</em>"},
			absent:   []string{"_"},
		},
		{
			name:     "italic nested in bold",
			input:    "**bold _both_**",
			contains: []string{"<strong>bold <em>both</em></strong>"},
		},
		{
			name:     "bold nested in italic",
			input:    "_**both** italic_",
			contains: []string{"<em><strong>both</strong> italic</em>"},
		},
		{
			name:     "markdown link",
			input:    "see [the docs](https://example.com/docs) here",
			contains: []string{`<a href="https://example.com/docs" target="_blank" rel="noopener noreferrer">the docs</a>`},
			absent:   []string{"[the docs]"},
		},
		{
			name:     "bare url",
			input:    "visit https://example.com today",
			contains: []string{`<a href="https://example.com" target="_blank" rel="noopener noreferrer">https://example.com</a>`},
		},
		{
			name:     "bare http url",
			input:    "http://plain.example",
			contains: []string{`href="http://plain.example"`},
		},
		{
			name:     "unclosed bold stays literal",
			input:    "**unterminated",
			contains: []string{"**unterminated"},
			absent:   []string{"<strong>"},
		},
		{
			name:     "unclosed italic stays literal",
			input:    "_unterminated",
			contains: []string{"_unterminated"},
			absent:   []string{"<em>"},
		},
		{
			name:     "empty link label stays literal",
			input:    "[](https://example.com)",
			contains: []string{"[]("},
			absent:   []string{"<a href"},
		},
		{
			name:     "link without url stays literal",
			input:    "[label]()",
			contains: []string{"[label]()"},
			absent:   []string{"<a href"},
		},
		{
			name:     "bold inside link label",
			input:    "[**strong** label](https://example.com)",
			contains: []string{`<strong>strong</strong> label</a>`},
		},
		{
			name:     "plain text untouched",
			input:    "no markup at all",
			contains: []string{"no markup at all"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Inline(tc.input)
			for _, want := range tc.contains {
				if !strings.Contains(got, want) {
					t.Errorf("Inline(%q) = %q, missing %q", tc.input, got, want)
				}
			}
			for _, unwanted := range tc.absent {
				if strings.Contains(got, unwanted) {
					t.Errorf("Inline(%q) = %q, should not contain %q", tc.input, got, unwanted)
				}
			}
		})
	}
}

// A bare URL immediately after a converted link must become its own anchor,
// never a nested or doubled one.
func TestInlineBareURLAfterLink(t *testing.T) {
	got := Inline("[x](http://a.com) http://b.com")

	if n := strings.Count(got, "<a "); n != 2 {
		t.Fatalf("got %d anchors, want 2: %s", n, got)
	}
	if !strings.Contains(got, `href="http://a.com"`) {
		t.Errorf("missing anchor for http://a.com: %s", got)
	}
	if !strings.Contains(got, `href="http://b.com"`) {
		t.Errorf("missing anchor for http://b.com: %s", got)
	}
	if strings.Contains(got, "<a <") || strings.Contains(got, `href="<`) {
		t.Errorf("double-wrapped anchor: %s", got)
	}
}

// URLs that already belong to a link, as target or as label text, must not
// be wrapped again.
func TestInlineLinkURLsNotRewrapped(t *testing.T) {
	got := Inline("[http://a.com](http://b.com)")

	if n := strings.Count(got, "<a "); n != 1 {
		t.Fatalf("got %d anchors, want 1: %s", n, got)
	}
	if !strings.Contains(got, `<a href="http://b.com" target="_blank" rel="noopener noreferrer">http://a.com</a>`) {
		t.Errorf("unexpected rendering: %s", got)
	}
}

func TestInlineBareURLStopsAtWhitespace(t *testing.T) {
	got := Inline("https://a.example/path?q=1 trailing words")
	if !strings.Contains(got, `href="https://a.example/path?q=1"`) {
		t.Errorf("url not captured up to whitespace: %s", got)
	}
	if strings.Contains(got, `href="https://a.example/path?q=1 trailing`) {
		t.Errorf("url overran whitespace: %s", got)
	}
}
