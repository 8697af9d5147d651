package cmd

import (
	"fmt"
	"strings"

	"github.com/samsaffron/vidbrief/internal/input"
	"github.com/samsaffron/vidbrief/internal/markdown"
	"github.com/spf13/cobra"
)

var renderFullPage bool

var renderCmd = &cobra.Command{
	Use:   "render [file]",
	Short: "Convert report markdown to HTML",
	Long: `Convert report markdown (from a file or stdin) to HTML on stdout.

By default only the HTML fragment is printed; --full-page wraps it in a
standalone styled document.

Examples:
  vidbrief render report.md
  vidbrief render report.md --full-page > report.html
  vidbrief analyze talk.mp4 -o r.md && vidbrief render r.md`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().BoolVar(&renderFullPage, "full-page", false, "Wrap the fragment in a standalone HTML document")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	var src string
	if len(args) > 0 {
		content, err := input.ReadTextFile(args[0])
		if err != nil {
			return err
		}
		src = content
	} else if input.HasStdin() {
		content, err := input.ReadStdin()
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		src = content
	}
	if strings.TrimSpace(src) == "" {
		return fmt.Errorf("no markdown to render: pass a file or pipe to stdin")
	}

	html := markdown.Render(src)
	if renderFullPage {
		html = markdown.Page(markdown.Title(src), html)
	}
	fmt.Fprintln(cmd.OutOrStdout(), html)
	return nil
}
