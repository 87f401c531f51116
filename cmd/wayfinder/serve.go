package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/aretw0/wayfinder/internal/cli"
	"github.com/aretw0/wayfinder/internal/presentation/tui"
	httpAdapter "github.com/aretw0/wayfinder/pkg/adapters/http"
	"github.com/aretw0/wayfinder/pkg/inspect"
	"github.com/aretw0/wayfinder/pkg/observability"
	"github.com/aretw0/wayfinder/pkg/pathconfig"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the diagnostics HTTP server",
	Long: `Serves path configuration properties and route decisions as a JSON API,
with Prometheus metrics at /metrics and configuration updates as SSE at /events.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := commonOptions(cmd)
		port, _ := cmd.Flags().GetInt("port")
		refresh, _ := cmd.Flags().GetDuration("refresh")
		logger := cli.CreateLogger(opts.Debug)

		app, err := cli.AppConfiguration(opts)
		if err != nil {
			return err
		}

		streams := httpAdapter.NewStreamManager(logger)
		cfg, err := cli.NewConfiguration(cmd.Context(), opts, logger, pathconfig.WithOnUpdate(streams.ConfigurationUpdated))
		if cfg == nil {
			return err
		}
		if err != nil {
			logger.Warn("path configuration partially loaded", "err", err)
		}

		metrics := observability.NewMetrics(prometheus.NewRegistry())
		hooks := metrics.Hooks().Merge(observability.LoggingHooks(logger))
		inspector := cli.NewInspector(app, cfg, logger, inspect.WithLifecycleHooks(hooks))

		handler, err := httpAdapter.NewHandler(inspector,
			httpAdapter.WithLogger(logger),
			httpAdapter.WithStreams(streams),
			httpAdapter.WithMetrics(metrics.Handler()),
		)
		if err != nil {
			return fmt.Errorf("failed to build handler: %w", err)
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: handler,
		}

		sigCtx := cli.NewSignalContext(cmd.Context())
		defer sigCtx.Cancel()
		go cli.Refresh(sigCtx, cfg, refresh, cli.NewLocker(opts), logger)

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)
		go func() {
			tui.PrintBanner(os.Stdout)
			fmt.Printf("Starting Wayfinder Server on %s\n", srv.Addr)
			serverErrors <- srv.ListenAndServe()
		}()

		select {
		case err := <-serverErrors:
			return fmt.Errorf("server error: %w", err)
		case <-sigCtx.Done():
			fmt.Printf("\nStart shutdown... Signal: %v\n", sigCtx.Signal())

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				fmt.Printf("Graceful shutdown did not complete in %v: %v\n", 5*time.Second, err)
				if err := srv.Close(); err != nil {
					fmt.Printf("Error killing server: %v\n", err)
				}
			}
			fmt.Println("Wayfinder Server stopped gracefully")
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 8080, "Port to listen on")
	serveCmd.Flags().Duration("refresh", 0, "Reload path configuration sources at this interval (0 disables)")
}
