package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/lehigh-university-libraries/hbw/internal/handlers"
	"github.com/spf13/cobra"
)

func newServeCmd(flags *globalFlags) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the web interface",
		Long: `Starts the corpus search page.

The page filters titles by date range and free text, shows the full
record of a selected row with Library of Congress and WorldCat links,
and offers the filtered view as a CSV download.`,
		Example: `  # Start server on the configured address (default :8888)
  hbw serve

  # Serve a different table on a custom address
  hbw serve --data ./metadata.parquet --addr :3000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.loadConfig()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Addr = addr
			}

			records, err := loadRecords(cfg)
			if err != nil {
				return err
			}

			handler, err := handlers.New(records, cfg)
			if err != nil {
				return err
			}

			server := &http.Server{
				Addr:    cfg.Addr,
				Handler: handler.Routes(),
			}

			// Expire idle sessions for as long as the server runs
			go func() {
				ticker := time.NewTicker(pruneInterval(cfg.SessionMaxAge))
				defer ticker.Stop()
				for {
					select {
					case <-cmd.Context().Done():
						return
					case <-ticker.C:
						handler.PruneSessions()
					}
				}
			}()

			// Start server in goroutine
			serverErr := make(chan error, 1)
			go func() {
				slog.Info("HBW interface available", "addr", cfg.Addr, "url", "http://localhost"+cfg.Addr)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serverErr <- err
				}
			}()

			// Wait for context cancellation (Ctrl+C) or server error
			select {
			case <-cmd.Context().Done():
				slog.Info("Shutting down server...")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := server.Shutdown(shutdownCtx); err != nil {
					slog.Error("Server shutdown failed", "err", err)
					return err
				}
				slog.Info("Server stopped")
				return nil
			case err := <-serverErr:
				return err
			}
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Address to listen on (default from config, :8888)")

	return cmd
}

// pruneInterval checks for idle sessions several times per max age, but
// no more than once a minute
func pruneInterval(maxAge time.Duration) time.Duration {
	return max(maxAge/4, time.Minute)
}
