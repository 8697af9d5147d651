package cmd

import (
	"testing"
	"time"

	"github.com/mattn/go-runewidth"
)

func TestFormatRelativeTime(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name string
		t    time.Time
		want string
	}{
		{"just now", now.Add(-30 * time.Second), "just now"},
		{"minutes", now.Add(-5 * time.Minute), "5m ago"},
		{"hours", now.Add(-3 * time.Hour), "3h ago"},
		{"days", now.Add(-49 * time.Hour), "2d ago"},
	}

	for _, tt := range tests {
		if got := formatRelativeTime(tt.t); got != tt.want {
			t.Errorf("%s: formatRelativeTime = %q, want %q", tt.name, got, tt.want)
		}
	}

	old := time.Date(2024, 3, 9, 12, 0, 0, 0, time.UTC)
	if got := formatRelativeTime(old); got != "Mar 9" {
		t.Errorf("old date: formatRelativeTime = %q, want %q", got, "Mar 9")
	}
}

func TestPadCell(t *testing.T) {
	// All cells occupy exactly the requested display width.
	for _, s := range []string{"short", "a much longer title that will be truncated for sure", "日本語のタイトルです、長いものも含めて"} {
		if got := runewidth.StringWidth(padCell(s, 20)); got != 20 {
			t.Errorf("padCell(%q) width = %d, want 20", s, got)
		}
	}
}

func TestFormatTokens(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "0"},
		{820, "820"},
		{1200, "1.2k"},
		{15_500, "15.5k"},
		{3_400_000, "3.4M"},
	}
	for _, tt := range tests {
		if got := formatTokens(tt.n); got != tt.want {
			t.Errorf("formatTokens(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}
