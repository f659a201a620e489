package commands

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/reposql/internal/server"
)

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP parse API",
		Long: `Start an HTTP server exposing the parser as a JSON API.

Endpoints:
  GET  /healthz
  GET  /api/v1/dialects
  POST /api/v1/parse    (raw DDL body or {"sql": ...}; ?dialect= forces a grammar)
  POST /api/v1/score
  GET  /api/v1/runs
  GET  /api/v1/runs/{id}`,
		Example: `  reposql serve
  reposql serve --addr :9000
  curl --data-binary @schema.sql http://127.0.0.1:8080/api/v1/parse`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}

	// Flag values flow through the config loader (server.addr, server.max_body_bytes).
	cmd.Flags().String("addr", "", "Listen address (default: 127.0.0.1:8080)")
	cmd.Flags().Int64("max-body", 0, "Maximum request body size in bytes")

	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	cc, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(server.Config{
		Engine:       cc.Engine,
		Addr:         cc.Cfg.Server.Addr,
		MaxBodyBytes: cc.Cfg.Server.MaxBodyBytes,
		Logger:       cc.Logger,
	})

	cc.Logger.Info("starting parse API",
		slog.String("addr", cc.Cfg.Server.Addr),
		slog.Bool("history", cc.Engine.HasHistory()))
	cc.Renderer.Printf("Serving on http://%s\n", cc.Cfg.Server.Addr)
	cc.Renderer.Println("Press Ctrl+C to stop")

	return srv.Serve(ctx)
}
