package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "vidbrief",
	Short: "Turn videos and pasted text into structured reports",
	Long: `vidbrief sends a video file or pasted text to a hosted AI provider and
returns a structured markdown analysis report: summary, key points, notable
quotes, and search-grounded sources when the provider supports them. Reports
can be expanded into long-form articles and rendered to HTML.

Examples:
  vidbrief analyze talk.mp4
  vidbrief analyze talk.mp4 --instructions "focus on the demo section"
  cat transcript.txt | vidbrief analyze
  vidbrief article                        # expand the most recent report
  vidbrief render report.md --full-page > report.html
  vidbrief history
  vidbrief serve`,
	SilenceUsage:  true,
	SilenceErrors: true,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
}

// Execute runs the root command. Errors are printed once here; commands
// return them rather than printing themselves.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
