package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/ekisa-team/homeprice/internal/artifact"
	"github.com/ekisa-team/homeprice/internal/estimator"
	"github.com/ekisa-team/homeprice/internal/metrics"
	grpcserver "github.com/ekisa-team/homeprice/internal/server/grpc"
	httpserver "github.com/ekisa-team/homeprice/internal/server/http"
)

// serveOptions holds the port overrides. They are bound on both the root
// command and serve, since the root command serves by default.
type serveOptions struct {
	httpPort int
	grpcPort int
}

func (o *serveOptions) bindFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&o.httpPort, "http-port", 0, "HTTP port to listen on (overrides config)")
	cmd.Flags().IntVar(&o.grpcPort, "grpc-port", 0, "gRPC port to listen on (overrides config)")
}

func newServeCmd(opts *rootOptions, so *serveOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve estimates over HTTP and gRPC",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := setup(opts, nil)
			if err != nil {
				return err
			}
			if so.httpPort > 0 {
				cfg.Server.HTTPPort = so.httpPort
			}
			if so.grpcPort > 0 {
				cfg.Server.GRPCPort = so.grpcPort
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			prom, err := metrics.NewProm(prometheus.DefaultRegisterer)
			if err != nil {
				return fmt.Errorf("register metrics: %w", err)
			}

			est, paths, err := loadEstimator(cfg,
				estimator.WithCacheSize(cfg.Cache.CacheSize()),
				estimator.WithRecorder(prom),
			)
			if err != nil {
				return fmt.Errorf("load artifacts: %w", err)
			}

			grpcSrv := grpcserver.NewServer(cfg.Server.GRPCPort, est)
			httpSrv := httpserver.NewServer(cfg.Server.HTTPPort, httpserver.NewHandler(est, prometheus.DefaultGatherer))

			if cfg.Artifacts.Watch {
				watcher, err := artifact.NewWatcher(paths, func(a *artifact.Artifacts, err error) {
					if err != nil {
						prom.ObserveLoad(0, time.Time{}, err)
						slog.Error("Keeping previous artifacts", "error", err)
						return
					}
					est.Swap(a)
				})
				if err != nil {
					return fmt.Errorf("watch artifacts: %w", err)
				}
				defer watcher.Close()
			}

			slog.Info("Serving estimates",
				"http_port", cfg.Server.HTTPPort,
				"grpc_port", cfg.Server.GRPCPort,
				"watch", cfg.Artifacts.Watch,
			)

			return runServers(ctx, httpSrv.Run, grpcSrv.Run)
		},
	}

	so.bindFlags(cmd)

	return cmd
}

// runServers runs each server until ctx is done. The first failure cancels
// the others.
func runServers(ctx context.Context, servers ...func(context.Context) error) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, run := range servers {
		g.Go(func() error { return run(ctx) })
	}

	return g.Wait()
}
