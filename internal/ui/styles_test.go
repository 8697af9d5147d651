package ui

import (
	"strings"
	"testing"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		in     string
		maxLen int
		want   string
	}{
		{"short", 25, "short"},
		{"exactly-ten", 11, "exactly-ten"},
		{"a longer string that needs cutting", 10, "a longe..."},
		{"abc", 2, "ab"},
	}
	for _, tt := range tests {
		if got := Truncate(tt.in, tt.maxLen); got != tt.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.maxLen, got, tt.want)
		}
	}
}

func TestFormatResult(t *testing.T) {
	styles := DefaultStyles()

	ok := styles.FormatResult(true, "report saved")
	if !strings.Contains(ok, SuccessIcon) || !strings.Contains(ok, "report saved") {
		t.Errorf("success result missing icon or message: %q", ok)
	}

	fail := styles.FormatResult(false, "generation failed")
	if !strings.Contains(fail, FailIcon) || !strings.Contains(fail, "generation failed") {
		t.Errorf("failure result missing icon or message: %q", fail)
	}
}

func TestTerminalWidthFallback(t *testing.T) {
	// Test binaries run without a terminal on stdout.
	if got := TerminalWidth(); got != 100 {
		t.Errorf("TerminalWidth() = %d, want fallback 100", got)
	}
}

func TestRenderMarkdownReturnsContent(t *testing.T) {
	out := RenderMarkdown("# Title\n\nsome body text", 80)
	if !strings.Contains(out, "Title") || !strings.Contains(out, "some body text") {
		t.Errorf("rendered output lost content: %q", out)
	}
	if RenderMarkdown("", 80) != "" {
		t.Error("empty input should render to empty output")
	}
}
