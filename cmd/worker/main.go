package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/AndyMuloki/zen-spa/internal/config"
	"github.com/AndyMuloki/zen-spa/internal/email"
	"github.com/AndyMuloki/zen-spa/internal/repository/postgres"
	"github.com/AndyMuloki/zen-spa/pkg/logger"
	redisBroker "github.com/AndyMuloki/zen-spa/pkg/messaging/redis"
	"github.com/AndyMuloki/zen-spa/pkg/metrics"
	"github.com/AndyMuloki/zen-spa/pkg/worker"
)

// The standalone worker drains the Postgres outbox when the API runs with
// outbox.enabled=false. The memory driver has no shared outbox to drain.
func main() {
	configPath := flag.String("config", "", "path to config.yml")
	healthPort := flag.Int("health-port", 8081, "port for /health and /metrics")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.NewLogger(&logger.Config{
		Level:      logger.ParseLevel(cfg.Log.Level),
		TimeFormat: time.RFC3339,
		Output:     os.Stdout,
		Pretty:     cfg.Log.Pretty,
	})
	log.Logger = appLogger.Zerolog()

	if cfg.Storage.Driver != config.StoragePostgres {
		log.Fatal().Str("driver", cfg.Storage.Driver).Msg("worker requires the postgres storage driver")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	var handlers []worker.EventHandler
	if cfg.Redis.URL != "" {
		client, err := redisBroker.NewClient(ctx, redisBroker.Config{
			URL:          cfg.Redis.URL,
			MaxRetries:   cfg.Redis.MaxRetries,
			RetryBackoff: cfg.Redis.RetryBackoff,
			PoolSize:     cfg.Redis.PoolSize,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to Redis")
		}
		defer client.Close()
		handlers = append(handlers, worker.PublishHandler(redisBroker.NewRedisBroker(client, appLogger.Zerolog()), cfg.Outbox.Channel))
	}
	if cfg.SMTP.Enabled() {
		mailer := email.NewSMTPService(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.From, appLogger)
		handlers = append(handlers, worker.ConfirmationHandler(mailer))
	}
	if len(handlers) == 0 {
		log.Fatal().Msg("nothing to do: configure redis.url or smtp.host")
	}

	registry := prometheus.NewRegistry()
	m := metrics.NewMetrics(registry, "spa_worker")

	srv := setupHealthCheck(*healthPort, registry, func(ctx context.Context) error { return db.PingContext(ctx) })

	processor := worker.NewOutboxProcessor(postgres.NewOutboxRepository(postgres.NewBaseRepository(db)), worker.OutboxProcessorConfig{
		BatchSize:    cfg.Outbox.BatchSize,
		PollInterval: cfg.Outbox.PollInterval,
		MaxAttempts:  cfg.Outbox.MaxAttempts,
	}, appLogger, m, handlers...)

	log.Info().Int("handlers", len(handlers)).Msg("starting outbox worker")
	processor.Start(ctx)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("health server forced to shutdown")
	}
	log.Info().Msg("worker stopped")
}

func setupHealthCheck(port int, gatherer prometheus.Gatherer, ping func(context.Context) error) *http.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := ping(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("health server failed")
		}
	}()
	return srv
}
