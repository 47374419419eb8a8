package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	backend "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/aretw0/sonda"
	httpAdapter "github.com/aretw0/sonda/pkg/adapters/http"
	"github.com/aretw0/sonda/pkg/adapters/redis"
	"github.com/aretw0/sonda/pkg/config"
	"github.com/aretw0/sonda/pkg/domain"
	"github.com/aretw0/sonda/pkg/gate"
	"github.com/aretw0/sonda/pkg/ports"
	"github.com/aretw0/sonda/pkg/resolve"
	"github.com/aretw0/sonda/pkg/sink"
	"github.com/aretw0/sonda/pkg/stream"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the admin HTTP server",
	Long:  `Serves the gate controls, Prometheus metrics and a live record feed. With --redis, messages on the configured Redis channel are instrumented.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadSettings(cmd)
		if err != nil {
			return err
		}
		logger := newLogger(settings)
		slog.SetDefault(logger)

		addr, _ := cmd.Flags().GetString("addr")
		if addr == "" {
			addr = settings.Admin.Addr
		}

		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

		base, err := resolveSink(settings, logger)
		if err != nil {
			return err
		}
		streams := httpAdapter.NewStreamManager()
		metrics, err := sink.NewMetrics(reg, sink.NewMulti(base, streams))
		if err != nil {
			return err
		}
		probe := sonda.New(sonda.WithSink(metrics))

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if useRedis, _ := cmd.Flags().GetBool("redis"); useRedis {
			sub, err := watchRedis(ctx, probe, settings)
			if err != nil {
				return err
			}
			defer sub.Unsubscribe()
		}

		srv := &http.Server{
			Addr:    addr,
			Handler: httpAdapter.NewHandler(gate.Default(), reg, streams),
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)
		go func() {
			logger.Info("Starting admin server", "addr", srv.Addr)
			serverErrors <- srv.ListenAndServe()
		}()

		select {
		case err := <-serverErrors:
			return fmt.Errorf("server error: %w", err)

		case <-ctx.Done():
			logger.Info("Start shutdown")

			// Give outstanding requests a deadline for completion.
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Warn("Graceful shutdown did not complete", "timeout", 5*time.Second, "error", err)
				if err := srv.Close(); err != nil {
					logger.Error("Error killing server", "error", err)
				}
			}
			logger.Info("Admin server stopped gracefully")
		}
		return nil
	},
}

// watchRedis instruments the configured Redis channel with the "redis" probe
// profile, or an INFO profile tagged with the channel name.
func watchRedis(ctx context.Context, probe *sonda.Probe, settings config.Settings) (ports.Subscription, error) {
	cfg, err := redisProbe(settings)
	if err != nil {
		return nil, err
	}

	client := backend.NewClient(&backend.Options{Addr: settings.Redis.Addr})
	src := redis.Channel(ctx, client, settings.Redis.Channel)
	sub := sonda.Instrument(probe, src, cfg).Subscribe(stream.Observe[string](nil, func(err error) {
		slog.Error("Redis channel failed", "channel", settings.Redis.Channel, "error", err)
	}, nil))

	return stream.OnUnsubscribe(func() {
		sub.Unsubscribe()
		_ = client.Close()
	}), nil
}

func redisProbe(settings config.Settings) (domain.Config, error) {
	if _, ok := settings.Probes["redis"]; ok {
		return settings.Probe("redis")
	}
	return resolve.New(domain.SeverityInfo, "redis message",
		resolve.WithCallerTag(settings.Redis.Channel),
		resolve.OnSubscribe(),
		resolve.OnFinalize(),
	)
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", "", "Listen address (default from settings)")
	serveCmd.Flags().Bool("redis", false, "Instrument the configured Redis channel")
}
