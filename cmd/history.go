package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/samsaffron/vidbrief/internal/markdown"
	"github.com/samsaffron/vidbrief/internal/store"
	"github.com/samsaffron/vidbrief/internal/ui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	historyKind    string
	historyLimit   int
	historyOutline bool
	historyPlain   bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse saved reports and articles",
	Long: `Browse reports and articles saved by analyze and article.

Examples:
  vidbrief history
  vidbrief history --kind article
  vidbrief history show 12
  vidbrief history show 12 --outline
  vidbrief history delete 12`,
	RunE: runHistoryList,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved generations",
	RunE:  runHistoryList,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a saved generation",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

var historyDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a saved generation",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryDelete,
}

func init() {
	for _, c := range []*cobra.Command{historyCmd, historyListCmd} {
		c.Flags().StringVar(&historyKind, "kind", "", "Filter by kind (report or article)")
		c.Flags().IntVar(&historyLimit, "limit", 20, "Maximum entries to list")
	}
	historyShowCmd.Flags().BoolVar(&historyOutline, "outline", false, "Print only the heading outline")
	historyShowCmd.Flags().BoolVar(&historyPlain, "plain", false, "Print raw markdown even on a terminal")
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyDeleteCmd)
	rootCmd.AddCommand(historyCmd)
}

// getHistoryStore opens the history database for browsing. Unlike the save
// path, browsing a disabled history is an error rather than a silent no-op.
func getHistoryStore() (store.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if cfg.History.Disabled {
		return nil, fmt.Errorf("history is disabled in config")
	}
	path, err := cfg.GetHistoryPath()
	if err != nil {
		return nil, err
	}
	return store.NewStore(path, false)
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	if historyKind != "" && historyKind != store.KindReport && historyKind != store.KindArticle {
		return fmt.Errorf("invalid kind %q (valid: report, article)", historyKind)
	}

	st, err := getHistoryStore()
	if err != nil {
		return err
	}
	defer st.Close()

	sums, err := st.List(cmd.Context(), store.ListOptions{Kind: historyKind, Limit: historyLimit})
	if err != nil {
		return err
	}
	if len(sums) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No saved generations. Run 'vidbrief analyze' to create one.")
		return nil
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%-5s %-8s %s %-10s %s\n", "ID", "KIND", padCell("TITLE", 46), "PROVIDER", "AGE")
	fmt.Fprintln(out, strings.Repeat("-", 82))
	for _, s := range sums {
		title := s.Title
		if title == "" {
			title = s.Excerpt
		}
		if title == "" {
			title = "(untitled)"
		}
		fmt.Fprintf(out, "%-5d %-8s %s %-10s %s\n",
			s.ID, s.Kind, padCell(title, 46), s.Provider, formatRelativeTime(s.CreatedAt))
	}
	return nil
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid generation id %q", args[0])
	}

	st, err := getHistoryStore()
	if err != nil {
		return err
	}
	defer st.Close()

	g, err := st.Get(cmd.Context(), id)
	if err != nil {
		return err
	}
	if g == nil {
		return fmt.Errorf("generation %d not found", id)
	}

	out := cmd.OutOrStdout()
	if historyOutline {
		for _, item := range markdown.Outline(g.Markdown) {
			fmt.Fprintf(out, "%s%s\n", strings.Repeat("  ", item.Level-1), item.Text)
		}
		return nil
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "#%d · %s · %s · %s · %s\n\n",
		g.ID, g.Kind, g.Provider, g.Model, g.CreatedAt.Format("2006-01-02 15:04"))
	if !historyPlain && term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(out, ui.RenderMarkdown(g.Markdown, ui.TerminalWidth()))
	} else {
		fmt.Fprintln(out, g.Markdown)
	}
	return nil
}

func runHistoryDelete(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid generation id %q", args[0])
	}

	st, err := getHistoryStore()
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.Delete(cmd.Context(), id); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted generation %d\n", id)
	return nil
}

// padCell truncates and right-pads a table cell to width display columns so
// titles with wide characters keep the columns aligned.
func padCell(s string, width int) string {
	return runewidth.FillRight(runewidth.Truncate(s, width, "…"), width)
}

func formatRelativeTime(t time.Time) string {
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	default:
		return t.Format("Jan 2")
	}
}
