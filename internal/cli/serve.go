package cli

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmreiter/planbook/internal/server"
)

func (a *App) serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		Long: `Start the planbook HTTP API.

The server exposes CRUD endpoints for events, resources and allocations,
plus conflict-checked scheduling, utilisation reports and iCalendar feeds.
It shuts down gracefully on SIGINT/SIGTERM.`,
		Example: `  planbook serve
  planbook serve --addr=:9090`,
		RunE: func(_ *cobra.Command, _ []string) error {
			logger := a.config.Logger()
			slog.SetDefault(logger)

			if addr == "" {
				addr = a.config.Server.Addr
			}
			grace := time.Duration(a.config.Server.ShutdownSeconds) * time.Second

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			srv := server.New(a.repo, logger)
			return srv.Run(ctx, addr, grace)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides config)")

	return cmd
}
