package insight

import (
	"testing"

	"google.golang.org/genai"
)

func TestParseGeminiThinking(t *testing.T) {
	tests := []struct {
		model      string
		deep       bool
		wantBase   string
		wantLevel  genai.ThinkingLevel
		wantBudget *int32
	}{
		{model: "gemini-3-flash-preview", wantBase: "gemini-3-flash-preview", wantLevel: genai.ThinkingLevelMinimal},
		{model: "gemini-3-flash-preview", deep: true, wantBase: "gemini-3-flash-preview", wantLevel: genai.ThinkingLevelHigh},
		{model: "gemini-3-flash-preview-thinking", wantBase: "gemini-3-flash-preview", wantLevel: genai.ThinkingLevelHigh},
		{model: "gemini-3-pro-preview", wantBase: "gemini-3-pro-preview", wantLevel: genai.ThinkingLevelLow},
		{model: "gemini-3-pro-preview", deep: true, wantBase: "gemini-3-pro-preview", wantLevel: genai.ThinkingLevelHigh},
		{model: "gemini-2.5-flash", wantBase: "gemini-2.5-flash", wantBudget: int32Ptr(0)},
		{model: "gemini-2.5-flash", deep: true, wantBase: "gemini-2.5-flash", wantBudget: int32Ptr(8192)},
		{model: "some-future-model", wantBase: "some-future-model"},
	}

	for _, tt := range tests {
		base, thinking := parseGeminiThinking(tt.model, tt.deep)
		if base != tt.wantBase {
			t.Errorf("parseGeminiThinking(%q, %v) base=%q, want %q", tt.model, tt.deep, base, tt.wantBase)
		}
		if thinking.level != tt.wantLevel {
			t.Errorf("parseGeminiThinking(%q, %v) level=%q, want %q", tt.model, tt.deep, thinking.level, tt.wantLevel)
		}
		if (thinking.budget == nil) != (tt.wantBudget == nil) {
			t.Errorf("parseGeminiThinking(%q, %v) budget=%v, want %v", tt.model, tt.deep, thinking.budget, tt.wantBudget)
			continue
		}
		if thinking.budget != nil && *thinking.budget != *tt.wantBudget {
			t.Errorf("parseGeminiThinking(%q, %v) budget=%d, want %d", tt.model, tt.deep, *thinking.budget, *tt.wantBudget)
		}
	}
}

func int32Ptr(v int32) *int32 { return &v }

func TestNewGeminiProviderDefaults(t *testing.T) {
	p := NewGeminiProvider("key", "", "", PromptOverrides{}, false)
	if p.model != "gemini-3-flash-preview" {
		t.Errorf("default model=%q", p.model)
	}
	if p.articleModel != p.model {
		t.Errorf("article model should fall back to the report model, got %q", p.articleModel)
	}

	p = NewGeminiProvider("key", "gemini-3-flash-preview", "gemini-3-pro-preview", PromptOverrides{}, false)
	if p.articleModel != "gemini-3-pro-preview" {
		t.Errorf("configured article model lost: %q", p.articleModel)
	}
}
