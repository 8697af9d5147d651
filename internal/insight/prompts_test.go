package insight

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReportPromptSections(t *testing.T) {
	var o PromptOverrides
	for _, prompt := range []string{o.ReportPrompt(), o.TextReportPrompt()} {
		for _, section := range reportSections {
			if !strings.Contains(prompt, "## "+section) {
				t.Errorf("prompt missing section %q", section)
			}
		}
	}
}

func TestPromptOverrides(t *testing.T) {
	o := PromptOverrides{Report: "custom video prompt"}

	if got := o.ReportPrompt(); got != "custom video prompt" {
		t.Errorf("ReportPrompt=%q, want override verbatim", got)
	}
	if got := o.TextReportPrompt(); !strings.Contains(got, "content analyst") {
		t.Errorf("TextReportPrompt should stay built-in, got: %s", got[:40])
	}
}

func TestArticlePromptThinking(t *testing.T) {
	var o PromptOverrides

	plain := o.ArticlePrompt(false)
	deep := o.ArticlePrompt(true)
	if strings.Contains(plain, "Take your time") {
		t.Error("thinking rule present without thinking")
	}
	if !strings.Contains(deep, "Take your time") {
		t.Error("thinking rule missing with thinking enabled")
	}

	// An override is used verbatim; no rule gets appended.
	o.Article = "write it yourself"
	if got := o.ArticlePrompt(true); got != "write it yourself" {
		t.Errorf("override ArticlePrompt=%q, want verbatim", got)
	}
}

func TestLoadPromptOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prompts.yaml")
	content := "report: video prompt\ntext_report: text prompt\narticle: article prompt\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	o, err := LoadPromptOverrides(path)
	if err != nil {
		t.Fatalf("LoadPromptOverrides: %v", err)
	}
	if o.Report != "video prompt" || o.Text != "text prompt" || o.Article != "article prompt" {
		t.Errorf("unexpected overrides: %+v", o)
	}

	// Missing file keeps the built-ins without error.
	o, err = LoadPromptOverrides(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if o != (PromptOverrides{}) {
		t.Errorf("missing file should produce zero overrides: %+v", o)
	}
}

func TestUserPrompts(t *testing.T) {
	if got := VideoUserPrompt(""); got != "Analyze this video." {
		t.Errorf("VideoUserPrompt(\"\")=%q", got)
	}
	if got := VideoUserPrompt("focus on pricing"); !strings.Contains(got, "focus on pricing") {
		t.Errorf("instructions missing from %q", got)
	}

	got := TextUserPrompt("the transcript", "keep it short")
	if !strings.Contains(got, "the transcript") || !strings.Contains(got, "keep it short") {
		t.Errorf("TextUserPrompt missing content: %q", got)
	}

	if got := ArticleUserPrompt("# Report"); !strings.Contains(got, "# Report") {
		t.Errorf("ArticleUserPrompt missing report: %q", got)
	}
}
