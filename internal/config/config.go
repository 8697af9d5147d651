package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Provider  string          `mapstructure:"provider"`
	Prompts   string          `mapstructure:"prompts"`
	Gemini    GeminiConfig    `mapstructure:"gemini"`
	OpenAI    OpenAIConfig    `mapstructure:"openai"`
	Anthropic AnthropicConfig `mapstructure:"anthropic"`
	History   HistoryConfig   `mapstructure:"history"`
	Serve     ServeConfig     `mapstructure:"serve"`
}

type GeminiConfig struct {
	APIKey       string `mapstructure:"api_key"`
	Model        string `mapstructure:"model"`
	ArticleModel string `mapstructure:"article_model"` // Override model for article generation
}

type OpenAIConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

type AnthropicConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

// HistoryConfig configures local generation history
type HistoryConfig struct {
	Path     string `mapstructure:"path"`     // Override default database location
	Disabled bool   `mapstructure:"disabled"` // Skip saving generations entirely
}

// ServeConfig configures the local web server
type ServeConfig struct {
	Addr  string `mapstructure:"addr"`  // Listen address (default 127.0.0.1:8787)
	Token string `mapstructure:"token"` // Bearer token; empty generates one per run
}

func Load() (*Config, error) {
	configPath, err := GetConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get config dir: %w", err)
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configPath)
	viper.AddConfigPath(".")

	// Set defaults
	viper.SetDefault("provider", "gemini")
	viper.SetDefault("gemini.model", "gemini-3-flash-preview")
	viper.SetDefault("gemini.article_model", "gemini-3-pro-preview")
	viper.SetDefault("openai.model", "gpt-5.2")
	viper.SetDefault("anthropic.model", "claude-sonnet-4-5")
	viper.SetDefault("serve.addr", "127.0.0.1:8787")

	// Read config file (optional - won't error if missing)
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	resolveGeminiCredentials(&cfg.Gemini)
	resolveOpenAICredentials(&cfg.OpenAI)
	resolveAnthropicCredentials(&cfg.Anthropic)
	cfg.Prompts = expandEnv(cfg.Prompts)
	cfg.History.Path = expandEnv(cfg.History.Path)
	cfg.Serve.Token = expandEnv(cfg.Serve.Token)

	return &cfg, nil
}

// ApplyOverrides applies provider and model overrides to the config.
// If provider is non-empty, it overrides the global provider.
// If model is non-empty, it overrides the model for the active provider.
func (c *Config) ApplyOverrides(provider, model string) {
	if provider != "" {
		c.Provider = provider
	}
	if model != "" {
		switch c.Provider {
		case "gemini":
			c.Gemini.Model = model
		case "openai":
			c.OpenAI.Model = model
		case "anthropic":
			c.Anthropic.Model = model
		}
	}
}

// resolveGeminiCredentials resolves Gemini API credentials
func resolveGeminiCredentials(cfg *GeminiConfig) {
	cfg.APIKey = expandEnv(cfg.APIKey)
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("GEMINI_API_KEY")
	}
}

// resolveOpenAICredentials resolves OpenAI API credentials
func resolveOpenAICredentials(cfg *OpenAIConfig) {
	cfg.APIKey = expandEnv(cfg.APIKey)
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("OPENAI_API_KEY")
	}
}

// resolveAnthropicCredentials resolves Anthropic API credentials
func resolveAnthropicCredentials(cfg *AnthropicConfig) {
	cfg.APIKey = expandEnv(cfg.APIKey)
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("ANTHROPIC_API_KEY")
	}
}

// expandEnv expands ${VAR} or $VAR in a string
func expandEnv(s string) string {
	if strings.HasPrefix(s, "${") && strings.HasSuffix(s, "}") {
		varName := s[2 : len(s)-1]
		return os.Getenv(varName)
	}
	if strings.HasPrefix(s, "$") {
		return os.Getenv(s[1:])
	}
	return s
}

// GetConfigDir returns the XDG config directory for vidbrief.
// Uses $XDG_CONFIG_HOME if set, otherwise ~/.config
func GetConfigDir() (string, error) {
	if xdgHome := os.Getenv("XDG_CONFIG_HOME"); xdgHome != "" {
		return filepath.Join(xdgHome, "vidbrief"), nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "vidbrief"), nil
}

// GetConfigPath returns the path where the config file should be located
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.yaml"), nil
}

// GetHistoryPath returns the path to the generation history database.
// Honors history.path when set, otherwise uses the XDG data directory
// ($XDG_DATA_HOME or ~/.local/share).
func (c *Config) GetHistoryPath() (string, error) {
	if c.History.Path != "" {
		return c.History.Path, nil
	}
	if xdgData := os.Getenv("XDG_DATA_HOME"); xdgData != "" {
		return filepath.Join(xdgData, "vidbrief", "history.db"), nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".local", "share", "vidbrief", "history.db"), nil
}

// Exists returns true if a config file exists
func Exists() bool {
	path, err := GetConfigPath()
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

// NeedsSetup returns true when interactive setup should run: no config file
// yet, or the selected provider has no usable credential.
func NeedsSetup() bool {
	if !Exists() {
		return true
	}
	cfg, err := Load()
	if err != nil {
		// Let the caller surface the load error instead.
		return false
	}
	switch cfg.Provider {
	case "openai":
		return cfg.OpenAI.APIKey == ""
	case "anthropic":
		return cfg.Anthropic.APIKey == ""
	default:
		return cfg.Gemini.APIKey == ""
	}
}

// Save writes the config to disk
func Save(cfg *Config) error {
	path, err := GetConfigPath()
	if err != nil {
		return err
	}

	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	content := fmt.Sprintf(`provider: %s

gemini:
  model: %s
  article_model: %s
  # api_key: or set GEMINI_API_KEY

openai:
  model: %s
  # api_key: or set OPENAI_API_KEY

anthropic:
  model: %s
  # api_key: or set ANTHROPIC_API_KEY

# prompts: path to a YAML file overriding the built-in prompts
# history:
#   path: override the default database location
#   disabled: true to skip saving generations
# serve:
#   addr: %s
#   token: bearer token for the web UI (one is generated per run when empty)
`, cfg.Provider, cfg.Gemini.Model, cfg.Gemini.ArticleModel, cfg.OpenAI.Model, cfg.Anthropic.Model, cfg.Serve.Addr)

	return os.WriteFile(path, []byte(content), 0600)
}
