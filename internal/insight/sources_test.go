package insight

import (
	"strings"
	"testing"
)

func TestFormatSources(t *testing.T) {
	tests := []struct {
		name    string
		sources []Source
		want    []string
	}{
		{
			name: "duplicates collapse and empty URIs drop",
			sources: []Source{
				{Title: "A", URI: "https://a.example"},
				{Title: "A", URI: "https://a.example"},
				{Title: "B", URI: ""},
			},
			want: []string{"[A](https://a.example)"},
		},
		{
			name: "missing title becomes Source",
			sources: []Source{
				{Title: "", URI: "https://x.example"},
			},
			want: []string{"[Source](https://x.example)"},
		},
		{
			name: "distinct entries keep input order",
			sources: []Source{
				{Title: "B", URI: "https://b.example"},
				{Title: "A", URI: "https://a.example"},
			},
			want: []string{"[B](https://b.example)", "[A](https://a.example)"},
		},
		{
			name:    "nothing usable",
			sources: []Source{{Title: "only title"}},
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatSources(tt.sources)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d entries %v, want %d", len(got), got, len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("entry %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestAppendSources(t *testing.T) {
	report := "# Title\n\nBody."

	got := AppendSources(report, []Source{
		{Title: "Docs", URI: "https://docs.example"},
		{Title: "Docs", URI: "https://docs.example"},
	})
	if !strings.Contains(got, "## Sources") {
		t.Errorf("missing Sources section:\n%s", got)
	}
	if strings.Count(got, "https://docs.example") != 1 {
		t.Errorf("duplicate source survived:\n%s", got)
	}
	if !strings.HasPrefix(got, report) {
		t.Errorf("report body altered:\n%s", got)
	}

	// No usable citations leaves the markdown untouched.
	if got := AppendSources(report, nil); got != report {
		t.Errorf("AppendSources(nil) changed output: %q", got)
	}
	if got := AppendSources(report, []Source{{Title: "X"}}); got != report {
		t.Errorf("empty-URI citation changed output: %q", got)
	}
}

func TestDedupeSources(t *testing.T) {
	got := DedupeSources([]Source{
		{Title: "A", URI: "https://a.example"},
		{Title: "", URI: "https://b.example"},
		{Title: "A", URI: "https://a.example"},
		{Title: "skip", URI: ""},
	})
	if len(got) != 2 {
		t.Fatalf("got %d sources %v, want 2", len(got), got)
	}
	if got[0].Title != "A" || got[0].URI != "https://a.example" {
		t.Errorf("first source = %+v", got[0])
	}
	if got[1].Title != "Source" || got[1].URI != "https://b.example" {
		t.Errorf("second source = %+v, want default title", got[1])
	}
}
