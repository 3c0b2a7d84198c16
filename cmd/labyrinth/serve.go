package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/aretw0/labyrinth/internal/cli"
	httpAdapter "github.com/aretw0/labyrinth/pkg/adapters/http"
	"github.com/aretw0/labyrinth/pkg/observability"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Serves mazes, one-shot solves and stepwise search sessions as a JSON API,
with Prometheus metrics on /metrics and session snapshots streamed over SSE.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}
		port, _ := cmd.Flags().GetInt("port")
		if port == 0 {
			port = app.Config.Server.Port
		}

		metrics := observability.NewMetrics(nil)
		hooks := observability.Combine(metrics.Hooks(), observability.LoggingHooks(app.Logger))

		sessions, closeStore, err := app.OpenSessions(metrics, hooks)
		if err != nil {
			return err
		}
		defer closeStore()

		handler := httpAdapter.NewHandler(sessions, app.Loader,
			httpAdapter.WithLifecycleHooks(hooks),
			httpAdapter.WithMetrics(metrics.Handler()),
			httpAdapter.WithLogger(app.Logger),
		)

		srv := &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			fmt.Fprintf(cmd.OutOrStdout(), "Starting Labyrinth Server on %s\n", srv.Addr)
			fmt.Fprintf(cmd.OutOrStdout(), "Serving mazes from: %s (sessions: %s)\n", app.Config.MazeDir, app.Config.Store.Kind)
			serverErrors <- srv.ListenAndServe()
		}()

		sigCtx := cli.NewSignalContext(cmd.Context())
		defer sigCtx.Cancel()

		// Blocking main and waiting for shutdown.
		select {
		case err := <-serverErrors:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return fmt.Errorf("server error: %w", err)

		case <-sigCtx.Done():
			fmt.Fprintf(cmd.OutOrStdout(), "\nStart shutdown... Signal: %v\n", sigCtx.Signal())

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			// Asking listener to shut down and shed load.
			if err := srv.Shutdown(ctx); err != nil {
				app.Logger.Warn("graceful shutdown did not complete", "timeout", 5*time.Second, "err", err)
				if err := srv.Close(); err != nil {
					return fmt.Errorf("error killing server: %w", err)
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Labyrinth Server stopped gracefully")
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 0, "Port to listen on (default from config: 8080)")
}
