package main

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/localeops/localeops-mcp/internal/backend"
	"github.com/localeops/localeops-mcp/internal/config"
	"github.com/localeops/localeops-mcp/internal/dispatch"
	"github.com/localeops/localeops-mcp/internal/logging"
	"github.com/localeops/localeops-mcp/internal/metrics"
	"github.com/localeops/localeops-mcp/internal/ratelimit"
	"github.com/localeops/localeops-mcp/internal/server"
	"github.com/localeops/localeops-mcp/internal/tools"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// newLogger is replaced in tests.
var newLogger = logging.New

func newRootCmd() *cobra.Command {
	var configFile string

	root := &cobra.Command{
		Use:   "localeops-mcp",
		Short: "MCP server for LocaleOps translation management",
		Long: `localeops-mcp lets an AI assistant manage LocaleOps translation projects.

It speaks the Model Context Protocol on stdin/stdout (or HTTP with
--transport http) and forwards each tool call to the LocaleOps REST API.

The API key is read from LOCALEOPS_API_KEY.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configFile, cmd.Flags())
			if err != nil {
				return err
			}
			return runServe(cmd.Context(), cfg, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	root.PersistentFlags().StringVar(&configFile, "config", "", "Config file (YAML, JSON or TOML)")
	root.Flags().String("api-url", "", "Backend base URL (default "+config.DefaultBaseURL+")")
	root.Flags().String("log-level", "", "Log level: debug, info, warn, error")
	root.Flags().String("transport", "", "MCP channel: stdio or http")
	root.Flags().String("listen", "", "Listen address for the http transport")
	root.Flags().String("metrics-addr", "", "Serve Prometheus metrics on this address")

	root.AddCommand(newToolsCmd())
	root.AddCommand(newVersionCmd())
	return root
}

// runServe validates cfg and serves the MCP channel until stdin closes or a
// shutdown signal arrives. Nothing is written to out before validation passes.
func runServe(ctx context.Context, cfg config.Config, in io.Reader, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	log, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", zap.Error(err))
		return err
	}
	log.Info("starting localeops-mcp",
		zap.String("version", version),
		zap.Any("config", cfg.Redacted()))

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	client := backend.New(
		backend.Config{BaseURL: cfg.BaseURL, APIKey: cfg.APIKey},
		backend.WithLogger(log.Named("backend")),
		backend.WithObserver(m),
		backend.WithUserAgent("localeops-mcp/"+version),
	)
	d := dispatch.New(tools.NewRegistry(), client,
		dispatch.WithLogger(log.Named("dispatch")),
		dispatch.WithLimiter(ratelimit.PerMinute(cfg.MaxCallsPerMinute)),
		dispatch.WithRecorder(m),
	)
	h := server.NewHandler(d, version, log.Named("server"))

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	switch cfg.Transport {
	case config.TransportHTTP:
		g.Go(func() error {
			return server.ListenAndServe(gctx, cfg.Listen, server.NewHTTPHandler(h, metrics.Handler(reg), log.Named("http")), log.Named("http"))
		})
	default:
		g.Go(func() error {
			defer cancel()
			return serveStdio(gctx, h, in, out, cfg.MaxConcurrency, log)
		})
		if cfg.MetricsAddr != "" {
			g.Go(func() error {
				return server.ListenAndServe(gctx, cfg.MetricsAddr, metrics.Handler(reg), log.Named("metrics"))
			})
		}
	}

	if err := g.Wait(); err != nil {
		log.Error("server stopped", zap.Error(err))
		return fmt.Errorf("serve: %w", err)
	}
	log.Info("server stopped")
	return nil
}

// serveStdio returns when stdin closes or ctx is cancelled. A blocked stdin
// read cannot be interrupted, so on cancellation the reader is abandoned.
func serveStdio(ctx context.Context, h *server.Handler, in io.Reader, out io.Writer, maxConcurrency int, log *zap.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ServeStdio(ctx, h, in, out, maxConcurrency, log.Named("stdio"))
	}()
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		log.Info("shutdown requested")
		return nil
	}
}
