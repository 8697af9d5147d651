package insight

import (
	"fmt"
	"strings"

	"github.com/samsaffron/vidbrief/internal/config"
)

// ProviderNames lists the providers NewProvider accepts.
func ProviderNames() []string {
	return []string{"gemini", "openai", "anthropic"}
}

// ParseProviderModel parses a "provider" or "provider:model" flag value.
func ParseProviderModel(s string) (string, string, error) {
	parts := strings.SplitN(s, ":", 2)
	provider := strings.TrimSpace(parts[0])
	if provider == "" {
		return "", "", fmt.Errorf("invalid provider format: %q", s)
	}
	model := ""
	if len(parts) == 2 {
		model = strings.TrimSpace(parts[1])
	}

	for _, name := range ProviderNames() {
		if provider == name {
			return provider, model, nil
		}
	}
	return "", "", fmt.Errorf("unknown provider %q (valid: %s)", provider, strings.Join(ProviderNames(), ", "))
}

// NewProvider creates the analysis provider selected by the config.
func NewProvider(cfg *config.Config, debug bool) (Provider, error) {
	prompts, err := LoadPromptOverrides(cfg.Prompts)
	if err != nil {
		return nil, err
	}

	switch cfg.Provider {
	case "gemini":
		if cfg.Gemini.APIKey == "" {
			return nil, fmt.Errorf("gemini API key not set (set GEMINI_API_KEY or add gemini.api_key to the config)")
		}
		return NewGeminiProvider(cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.ArticleModel, prompts, debug), nil

	case "openai":
		if cfg.OpenAI.APIKey == "" {
			return nil, fmt.Errorf("openai API key not set (set OPENAI_API_KEY or add openai.api_key to the config)")
		}
		return NewOpenAIProvider(cfg.OpenAI.APIKey, cfg.OpenAI.Model, prompts, debug), nil

	case "anthropic":
		if cfg.Anthropic.APIKey == "" {
			return nil, fmt.Errorf("anthropic API key not set (set ANTHROPIC_API_KEY or add anthropic.api_key to the config)")
		}
		return NewAnthropicProvider(cfg.Anthropic.APIKey, cfg.Anthropic.Model, prompts, debug), nil

	default:
		return nil, fmt.Errorf("unknown provider: %s (valid: gemini, openai, anthropic)", cfg.Provider)
	}
}
