package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/samsaffron/vidbrief/internal/config"
	"github.com/samsaffron/vidbrief/internal/insight"
	"github.com/samsaffron/vidbrief/internal/markdown"
	"github.com/samsaffron/vidbrief/internal/store"
	"github.com/samsaffron/vidbrief/internal/ui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// deliverResult saves a generation to history, prints the markdown (glamour
// on a terminal, raw when piped or with --plain, to a file with --output),
// and writes a one-line stats footer to stderr.
func deliverResult(cmd *cobra.Command, cfg *config.Config, kind, source string, result *insight.Result, outputPath string, noSave, plain bool) error {
	var savedID int64
	if !noSave {
		st, err := openHistory(cfg)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: history unavailable: %v\n", err)
		} else {
			g := &store.Generation{
				Kind:         kind,
				Title:        markdown.Title(result.Markdown),
				Source:       source,
				Provider:     result.Provider,
				Model:        result.Model,
				Markdown:     result.Markdown,
				Sources:      result.Sources,
				InputTokens:  int(result.Usage.InputTokens),
				OutputTokens: int(result.Usage.OutputTokens),
				DurationMs:   result.Duration.Milliseconds(),
			}
			if err := st.Save(context.Background(), g); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: failed to save to history: %v\n", err)
			} else {
				savedID = g.ID
			}
			st.Close()
		}
	}

	switch {
	case outputPath != "":
		if err := os.WriteFile(outputPath, []byte(result.Markdown), 0644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Written to: %s\n", outputPath)
	case !plain && term.IsTerminal(int(os.Stdout.Fd())):
		fmt.Fprintln(cmd.OutOrStdout(), ui.RenderMarkdown(result.Markdown, ui.TerminalWidth()))
	default:
		fmt.Fprintln(cmd.OutOrStdout(), result.Markdown)
	}

	printFooter(cmd, result, savedID)
	return nil
}

// printFooter writes the generation stats to stderr so piped stdout stays
// clean markdown.
func printFooter(cmd *cobra.Command, result *insight.Result, savedID int64) {
	parts := []string{result.Provider + " · " + result.Model}
	if result.Usage.TotalTokens > 0 {
		parts = append(parts, fmt.Sprintf("%s in / %s out",
			formatTokens(int64(result.Usage.InputTokens)),
			formatTokens(int64(result.Usage.OutputTokens))))
	}
	if result.Duration > 0 {
		parts = append(parts, fmt.Sprintf("%.1fs", result.Duration.Seconds()))
	}
	if savedID != 0 {
		parts = append(parts, fmt.Sprintf("saved as #%d", savedID))
	}
	fmt.Fprintln(cmd.ErrOrStderr(), ui.DefaultStyles().FormatResult(true, strings.Join(parts, " · ")))
}

// finishGeneration maps a failed generation to its user-facing error. A
// cancelled run exits quietly with status 0.
func finishGeneration(cmd *cobra.Command, err error, debug bool) error {
	if errors.Is(err, ui.ErrCancelled) || errors.Is(err, context.Canceled) {
		fmt.Fprintln(cmd.ErrOrStderr(), "Cancelled")
		return nil
	}
	var genErr *insight.GenerationError
	if errors.As(err, &genErr) {
		if debug {
			fmt.Fprintf(cmd.ErrOrStderr(), "debug: %v\n", err)
		}
		return errors.New(genErr.UserMessage())
	}
	return err
}

// formatTokens renders a token count compactly (820, 1.2k, 3.4M).
func formatTokens(n int64) string {
	switch {
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
	case n >= 1_000:
		return fmt.Sprintf("%.1fk", float64(n)/1_000)
	default:
		return fmt.Sprintf("%d", n)
	}
}
