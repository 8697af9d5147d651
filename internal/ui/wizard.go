package ui

import (
	"fmt"
	"os"

	"github.com/charmbracelet/huh"

	"github.com/samsaffron/vidbrief/internal/config"
)

// ShowError displays an error message
func ShowError(msg string) {
	fmt.Fprintf(os.Stderr, "Error: %s\n", msg)
}

// RunSetupWizard runs the first-time setup wizard and returns the config
func RunSetupWizard() (*config.Config, error) {
	// Use /dev/tty for output to bypass redirections
	tty, ttyErr := getTTY()
	if ttyErr == nil {
		defer tty.Close()
		fmt.Fprintln(tty, "Welcome to vidbrief! Let's get you set up.")
	} else {
		fmt.Fprintln(os.Stderr, "Welcome to vidbrief! Let's get you set up.")
	}

	var provider string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Which analysis provider do you want to use?").
				Description("Only Gemini can analyze video files; the others take pasted text.").
				Options(
					huh.NewOption("Gemini (video + text, web search)", "gemini"),
					huh.NewOption("OpenAI (text only)", "openai"),
					huh.NewOption("Anthropic (text only)", "anthropic"),
				).
				Value(&provider),
		),
	)

	if ttyErr == nil {
		tty2, _ := getTTY() // need fresh handle after form might close it
		defer tty2.Close()
		form = form.WithInput(tty2).WithOutput(tty2)
	}

	if err := form.Run(); err != nil {
		return nil, err
	}

	// Check for env var
	var envVar string
	switch provider {
	case "gemini":
		envVar = "GEMINI_API_KEY"
	case "openai":
		envVar = "OPENAI_API_KEY"
	case "anthropic":
		envVar = "ANTHROPIC_API_KEY"
	}
	if os.Getenv(envVar) == "" {
		return nil, fmt.Errorf("%s environment variable is not set\n\nPlease set it:\n  export %s=your-api-key", envVar, envVar)
	}

	cfg := &config.Config{
		Provider: provider,
		Gemini: config.GeminiConfig{
			Model:        "gemini-3-flash-preview",
			ArticleModel: "gemini-3-pro-preview",
		},
		OpenAI: config.OpenAIConfig{
			Model: "gpt-5.2",
		},
		Anthropic: config.AnthropicConfig{
			Model: "claude-sonnet-4-5",
		},
		Serve: config.ServeConfig{
			Addr: "127.0.0.1:8787",
		},
	}

	// Save the config
	if err := config.Save(cfg); err != nil {
		return nil, fmt.Errorf("failed to save config: %w", err)
	}

	path, _ := config.GetConfigPath()
	if tty, err := getTTY(); err == nil {
		fmt.Fprintf(tty, "Config saved to %s\n\n", path)
		tty.Close()
	} else {
		fmt.Fprintf(os.Stderr, "Config saved to %s\n\n", path)
	}

	// Reload to pick up the env var
	return config.Load()
}
