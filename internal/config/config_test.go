package config

import (
	"path/filepath"
	"testing"
)

func TestApplyOverrides(t *testing.T) {
	cfg := &Config{
		Provider: "gemini",
		Gemini: GeminiConfig{
			Model: "gemini-3-flash-preview",
		},
		OpenAI: OpenAIConfig{
			Model: "gpt-5.2",
		},
		Anthropic: AnthropicConfig{
			Model: "claude-sonnet-4-5",
		},
	}

	cfg.ApplyOverrides("openai", "gpt-4o")
	if cfg.Provider != "openai" {
		t.Fatalf("provider=%q, want %q", cfg.Provider, "openai")
	}
	if cfg.OpenAI.Model != "gpt-4o" {
		t.Fatalf("openai model=%q, want %q", cfg.OpenAI.Model, "gpt-4o")
	}
	if cfg.Gemini.Model != "gemini-3-flash-preview" {
		t.Fatalf("gemini model changed unexpectedly: %q", cfg.Gemini.Model)
	}

	cfg.ApplyOverrides("", "gpt-5.2-mini")
	if cfg.Provider != "openai" {
		t.Fatalf("provider changed unexpectedly: %q", cfg.Provider)
	}
	if cfg.OpenAI.Model != "gpt-5.2-mini" {
		t.Fatalf("openai model=%q, want %q", cfg.OpenAI.Model, "gpt-5.2-mini")
	}
}

func TestExpandEnv(t *testing.T) {
	t.Setenv("VIDBRIEF_TEST_KEY", "sk-test")

	if got := expandEnv("${VIDBRIEF_TEST_KEY}"); got != "sk-test" {
		t.Errorf("expandEnv(${VIDBRIEF_TEST_KEY})=%q, want %q", got, "sk-test")
	}
	if got := expandEnv("$VIDBRIEF_TEST_KEY"); got != "sk-test" {
		t.Errorf("expandEnv($VIDBRIEF_TEST_KEY)=%q, want %q", got, "sk-test")
	}
	if got := expandEnv("literal-value"); got != "literal-value" {
		t.Errorf("expandEnv(literal-value)=%q, want it unchanged", got)
	}
	if got := expandEnv(""); got != "" {
		t.Errorf("expandEnv(\"\")=%q, want empty", got)
	}
}

func TestGetHistoryPath(t *testing.T) {
	cfg := &Config{History: HistoryConfig{Path: "/tmp/custom.db"}}
	path, err := cfg.GetHistoryPath()
	if err != nil {
		t.Fatalf("GetHistoryPath: %v", err)
	}
	if path != "/tmp/custom.db" {
		t.Fatalf("path=%q, want configured override", path)
	}

	t.Setenv("XDG_DATA_HOME", "/tmp/xdg-data")
	cfg = &Config{}
	path, err = cfg.GetHistoryPath()
	if err != nil {
		t.Fatalf("GetHistoryPath: %v", err)
	}
	want := filepath.Join("/tmp/xdg-data", "vidbrief", "history.db")
	if path != want {
		t.Fatalf("path=%q, want %q", path, want)
	}
}
