package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/samsaffron/vidbrief/internal/config"
	"github.com/samsaffron/vidbrief/internal/input"
	"github.com/samsaffron/vidbrief/internal/insight"
	"github.com/samsaffron/vidbrief/internal/signal"
	"github.com/samsaffron/vidbrief/internal/store"
	"github.com/samsaffron/vidbrief/internal/ui"
	"github.com/spf13/cobra"
)

var (
	articleFrom     string
	articleThinking bool
	articleProvider string
	articleModel    string
	articleDebug    bool
	articleOutput   string
	articleNoSave   bool
	articlePlain    bool
)

var articleCmd = &cobra.Command{
	Use:   "article [report-id]",
	Short: "Expand a report into a long-form article",
	Long: `Expand an analysis report into a complete standalone article.

The report comes from a history id, a file, stdin, or (by default) the most
recently saved report.

Examples:
  vidbrief article                  # expand the latest report
  vidbrief article 12               # expand history entry 12
  vidbrief article --from report.md
  vidbrief analyze talk.mp4 -o r.md && vidbrief article --from r.md
  vidbrief article --thinking       # slower, deeper reasoning`,
	Args: cobra.MaximumNArgs(1),
	RunE: runArticle,
}

func init() {
	AddProviderFlag(articleCmd, &articleProvider)
	AddModelFlag(articleCmd, &articleModel)
	AddDebugFlag(articleCmd, &articleDebug)
	articleCmd.Flags().StringVar(&articleFrom, "from", "", "Read the report to expand from a file")
	articleCmd.Flags().BoolVar(&articleThinking, "thinking", false, "Use the provider's extended reasoning mode")
	articleCmd.Flags().StringVarP(&articleOutput, "output", "o", "", "Write the raw markdown article to a file")
	articleCmd.Flags().BoolVar(&articleNoSave, "no-save", false, "Skip saving the article to history")
	articleCmd.Flags().BoolVar(&articlePlain, "plain", false, "Print raw markdown even on a terminal")
	rootCmd.AddCommand(articleCmd)
}

// resolveReport finds the report text to expand: explicit history id, then
// --from file, then stdin, then the latest saved report.
func resolveReport(ctx context.Context, cfg *config.Config, args []string) (report, source string, err error) {
	if len(args) > 0 {
		id, perr := strconv.ParseInt(args[0], 10, 64)
		if perr != nil {
			return "", "", fmt.Errorf("invalid report id %q", args[0])
		}
		st, serr := openHistory(cfg)
		if serr != nil {
			return "", "", serr
		}
		defer st.Close()
		g, gerr := st.Get(ctx, id)
		if gerr != nil {
			return "", "", gerr
		}
		if g == nil {
			return "", "", fmt.Errorf("report %d not found in history", id)
		}
		return g.Markdown, fmt.Sprintf("report %d", id), nil
	}

	if articleFrom != "" {
		content, rerr := input.ReadTextFile(articleFrom)
		if rerr != nil {
			return "", "", rerr
		}
		return content, filepath.Base(articleFrom), nil
	}

	if input.HasStdin() {
		content, rerr := input.ReadStdin()
		if rerr != nil {
			return "", "", fmt.Errorf("failed to read stdin: %w", rerr)
		}
		return content, "stdin", nil
	}

	st, serr := openHistory(cfg)
	if serr != nil {
		return "", "", serr
	}
	defer st.Close()
	g, gerr := st.Latest(ctx, store.KindReport)
	if gerr != nil {
		return "", "", gerr
	}
	if g == nil {
		return "", "", fmt.Errorf("no report to expand, run analyze first")
	}
	return g.Markdown, fmt.Sprintf("report %d", g.ID), nil
}

func runArticle(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext()
	defer stop()

	cfg, err := loadConfigWithSetup()
	if err != nil {
		return err
	}
	if err := applyProviderOverrides(cfg, articleProvider, articleModel); err != nil {
		return err
	}

	report, source, err := resolveReport(ctx, cfg, args)
	if err != nil {
		return err
	}
	if strings.TrimSpace(report) == "" {
		return fmt.Errorf("the report to expand is empty")
	}

	provider, err := insight.NewProvider(cfg, articleDebug)
	if err != nil {
		return err
	}

	label := "Writing article"
	if articleThinking {
		label = "Writing article (extended thinking)"
	}
	result, err := ui.RunWithSpinner(ctx, label, articleDebug, func(ctx context.Context) (*insight.Result, error) {
		return provider.GenerateArticle(ctx, insight.ArticleRequest{
			Report:   report,
			Thinking: articleThinking,
		})
	})
	if err != nil {
		return finishGeneration(cmd, err, articleDebug)
	}

	return deliverResult(cmd, cfg, store.KindArticle, source, result, articleOutput, articleNoSave, articlePlain)
}
