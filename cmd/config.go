package cmd

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/samsaffron/vidbrief/internal/config"
	"github.com/samsaffron/vidbrief/internal/ui"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage vidbrief configuration",
	Long: `Manage vidbrief configuration.

Examples:
  vidbrief config           # show current configuration
  vidbrief config init      # run the interactive setup wizard
  vidbrief config edit      # open the config file in $EDITOR
  vidbrief config path      # print the config file location`,
	RunE: runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Run the interactive setup wizard",
	RunE: func(cmd *cobra.Command, args []string) error {
		if config.Exists() {
			path, _ := config.GetConfigPath()
			fmt.Fprintf(cmd.ErrOrStderr(), "Reconfiguring existing config at %s\n", path)
		}
		if _, err := ui.RunSetupWizard(); err != nil {
			return fmt.Errorf("setup cancelled: %w", err)
		}
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current configuration",
	RunE:  runConfigShow,
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open the config file in your editor",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !config.Exists() {
			return fmt.Errorf("no config file found, run 'vidbrief config init' first")
		}
		path, err := config.GetConfigPath()
		if err != nil {
			return err
		}

		editor := os.Getenv("EDITOR")
		if editor == "" {
			editor = os.Getenv("VISUAL")
		}
		if editor == "" {
			editor = "vi"
		}

		edit := exec.Command(editor, path)
		edit.Stdin = os.Stdin
		edit.Stdout = os.Stdout
		edit.Stderr = os.Stderr
		return edit.Run()
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.GetConfigPath()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configEditCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

// runConfigShow prints the effective configuration. API keys are reported as
// present or missing, never echoed.
func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	path, _ := config.GetConfigPath()
	fmt.Fprintf(out, "Config file: %s\n", path)
	if !config.Exists() {
		fmt.Fprintln(out, "  (not created yet, run 'vidbrief config init')")
	}
	fmt.Fprintf(out, "Provider:    %s\n\n", cfg.Provider)

	fmt.Fprintf(out, "gemini:     model=%s article_model=%s  %s\n",
		cfg.Gemini.Model, cfg.Gemini.ArticleModel, keyStatus(cfg.Gemini.APIKey, "GEMINI_API_KEY"))
	fmt.Fprintf(out, "openai:     model=%s  %s\n",
		cfg.OpenAI.Model, keyStatus(cfg.OpenAI.APIKey, "OPENAI_API_KEY"))
	fmt.Fprintf(out, "anthropic:  model=%s  %s\n\n",
		cfg.Anthropic.Model, keyStatus(cfg.Anthropic.APIKey, "ANTHROPIC_API_KEY"))

	historyPath, err := cfg.GetHistoryPath()
	if err == nil {
		state := ""
		if cfg.History.Disabled {
			state = " (disabled)"
		}
		fmt.Fprintf(out, "history:    %s%s\n", historyPath, state)
	}
	addr := cfg.Serve.Addr
	if addr == "" {
		addr = "127.0.0.1:8787"
	}
	fmt.Fprintf(out, "serve:      %s\n", addr)
	return nil
}

func keyStatus(key, envVar string) string {
	if key != "" {
		return "[key set]"
	}
	return "[NO KEY - export " + envVar + "]"
}
