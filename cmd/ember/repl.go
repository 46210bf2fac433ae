package main

import (
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"

	"github.com/emberkv/ember/internal/repl"
	"github.com/emberkv/ember/pkg/store"
)

func replCmd() *cobra.Command {
	var (
		metricsAddr string
		tracing     bool
		verbose     bool
	)

	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive session",
		Long: `Start an interactive session against a fresh in-memory store.

Store commands are entered directly (set, get, lpush, hgetall, ...).
Meta-commands start with '.'; type .help for the list. With
--metrics-addr, Prometheus metrics for the session are served on
/metrics at the given address.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: level,
			}))

			opts := []store.Option{store.WithLogger(logger)}

			if metricsAddr != "" {
				registry := prometheus.NewRegistry()
				opts = append(opts, store.WithMetrics(
					store.NewMetrics(store.WithRegistry(registry)),
				))
				go serveMetrics(metricsAddr, registry, logger)
			}
			if tracing {
				opts = append(opts, store.WithTracer(otel.Tracer("ember")))
			}

			printBanner()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			s := store.New(opts...)
			return repl.New(s, os.Stdout, repl.WithLogger(logger)).Run(ctx, os.Stdin)
		},
	}

	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :9090)")
	cmd.Flags().BoolVar(&tracing, "tracing", false, "Emit OpenTelemetry spans for dispatched commands")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	return cmd
}

// serveMetrics exposes the session's registry on /metrics.
func serveMetrics(addr string, registry *prometheus.Registry, logger *slog.Logger) {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	logger.Info("metrics listening", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("metrics server failed", "err", err)
	}
}
