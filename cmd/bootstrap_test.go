package cmd

import (
	"testing"

	"github.com/samsaffron/vidbrief/internal/config"
)

func TestApplyProviderOverrides(t *testing.T) {
	cfg := &config.Config{Provider: "gemini"}
	cfg.Gemini.Model = "gemini-base"

	if err := applyProviderOverrides(cfg, "openai:gpt-5.2", ""); err != nil {
		t.Fatalf("provider override: %v", err)
	}
	if cfg.Provider != "openai" || cfg.OpenAI.Model != "gpt-5.2" {
		t.Errorf("after openai:gpt-5.2: provider=%q model=%q", cfg.Provider, cfg.OpenAI.Model)
	}

	// A bare --model applies to whichever provider is active.
	if err := applyProviderOverrides(cfg, "", "gpt-custom"); err != nil {
		t.Fatalf("model override: %v", err)
	}
	if cfg.OpenAI.Model != "gpt-custom" {
		t.Errorf("model override not applied: %q", cfg.OpenAI.Model)
	}
	if cfg.Gemini.Model != "gemini-base" {
		t.Errorf("model override leaked to inactive provider: %q", cfg.Gemini.Model)
	}

	if err := applyProviderOverrides(cfg, "cohere", ""); err == nil {
		t.Error("expected error for unknown provider")
	}

	before := *cfg
	if err := applyProviderOverrides(cfg, "", ""); err != nil {
		t.Fatalf("empty overrides: %v", err)
	}
	if *cfg != before {
		t.Error("config changed with no overrides set")
	}
}
