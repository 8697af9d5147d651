package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/samsaffron/vidbrief/internal/insight"
	"github.com/samsaffron/vidbrief/internal/serve"
	"github.com/samsaffron/vidbrief/internal/signal"
	"github.com/spf13/cobra"
)

var (
	serveAddr     string
	serveToken    string
	serveNoAuth   bool
	serveProvider string
	serveModel    string
	serveDebug    bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the web UI and JSON API",
	Long: `Start a local HTTP server with a single-page web UI for generating
reports and articles, plus a JSON API.

Endpoints:
  GET  /                     web UI
  POST /api/report           video upload (multipart) or JSON {text, instructions}
  POST /api/article          JSON {report_id, report, thinking}
  POST /api/render           JSON {markdown} -> {html}
  GET  /api/history          saved generations
  GET  /healthz              health check

API requests require "Authorization: Bearer <token>" unless --no-auth is
set; a token is generated per run when none is configured.

Examples:
  vidbrief serve
  vidbrief serve --addr 127.0.0.1:9000
  vidbrief serve --no-auth
  vidbrief serve --token "$VIDBRIEF_TOKEN"`,
	RunE: runServe,
}

func init() {
	AddProviderFlag(serveCmd, &serveProvider)
	AddModelFlag(serveCmd, &serveModel)
	AddDebugFlag(serveCmd, &serveDebug)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from config, 127.0.0.1:8787)")
	serveCmd.Flags().StringVar(&serveToken, "token", "", "Bearer token for API auth (default from config, else generated)")
	serveCmd.Flags().BoolVar(&serveNoAuth, "no-auth", false, "Disable auth entirely (loopback addresses only)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfigWithSetup()
	if err != nil {
		return err
	}
	if err := applyProviderOverrides(cfg, serveProvider, serveModel); err != nil {
		return err
	}

	addr := serveAddr
	if addr == "" {
		addr = cfg.Serve.Addr
	}
	if addr == "" {
		addr = "127.0.0.1:8787"
	}

	requireAuth := !serveNoAuth
	if !requireAuth && !serve.IsLoopbackAddr(addr) {
		return fmt.Errorf("--no-auth is only allowed on loopback addresses (got %q)", addr)
	}

	token := strings.TrimSpace(serveToken)
	if token == "" {
		token = strings.TrimSpace(cfg.Serve.Token)
	}
	if requireAuth && token == "" {
		token, err = serve.GenerateToken()
		if err != nil {
			return fmt.Errorf("failed to generate token: %w", err)
		}
	}

	provider, err := insight.NewProvider(cfg, serveDebug)
	if err != nil {
		return err
	}

	st, err := openHistory(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	srv := serve.NewServer(serve.Config{
		Addr:        addr,
		RequireAuth: requireAuth,
		Token:       token,
	}, provider, st, log)

	authSummary := "bearer required"
	if !requireAuth {
		authSummary = "disabled"
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "vidbrief serve listening on http://%s\n", addr)
	fmt.Fprintf(cmd.ErrOrStderr(), "auth: %s\n", authSummary)
	if requireAuth {
		fmt.Fprintf(cmd.ErrOrStderr(), "token: %s\n", token)
	}

	ctx, stop := signal.NotifyContext()
	defer stop()
	return srv.Run(ctx)
}
