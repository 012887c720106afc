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

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/time/rate"

	"github.com/AndyMuloki/zen-spa/internal/config"
	"github.com/AndyMuloki/zen-spa/internal/email"
	"github.com/AndyMuloki/zen-spa/internal/flash"
	adminHandler "github.com/AndyMuloki/zen-spa/internal/handler/admin"
	authHandler "github.com/AndyMuloki/zen-spa/internal/handler/auth"
	bookingHandler "github.com/AndyMuloki/zen-spa/internal/handler/booking"
	catalogHandler "github.com/AndyMuloki/zen-spa/internal/handler/catalog"
	"github.com/AndyMuloki/zen-spa/internal/handler/health"
	promHandler "github.com/AndyMuloki/zen-spa/internal/handler/prometheus"
	"github.com/AndyMuloki/zen-spa/internal/middleware"
	"github.com/AndyMuloki/zen-spa/internal/repository"
	"github.com/AndyMuloki/zen-spa/internal/repository/memory"
	"github.com/AndyMuloki/zen-spa/internal/repository/postgres"
	"github.com/AndyMuloki/zen-spa/internal/router"
	"github.com/AndyMuloki/zen-spa/internal/seed"
	adminService "github.com/AndyMuloki/zen-spa/internal/service/admin"
	authService "github.com/AndyMuloki/zen-spa/internal/service/auth"
	"github.com/AndyMuloki/zen-spa/internal/service/availability"
	bookingService "github.com/AndyMuloki/zen-spa/internal/service/booking"
	catalogService "github.com/AndyMuloki/zen-spa/internal/service/catalog"
	"github.com/AndyMuloki/zen-spa/pkg/auth"
	"github.com/AndyMuloki/zen-spa/pkg/logger"
	redisBroker "github.com/AndyMuloki/zen-spa/pkg/messaging/redis"
	"github.com/AndyMuloki/zen-spa/pkg/metrics"
	"github.com/AndyMuloki/zen-spa/pkg/security"
	"github.com/AndyMuloki/zen-spa/pkg/validator"
	"github.com/AndyMuloki/zen-spa/pkg/worker"
)

func main() {
	configPath := flag.String("config", "", "path to config.yml")
	flag.Parse()

	// Load configuration
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
	zerolog.SetGlobalLevel(logger.ParseLevel(cfg.Log.Level))
	gin.SetMode(gin.ReleaseMode)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize storage
	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Storage.Driver).Msg("failed to initialize storage")
	}
	defer closeStore()

	if cfg.Storage.Seed {
		seeded, err := seed.Run(ctx, store)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to seed catalog")
		}
		if seeded {
			log.Info().Msg("demo catalog seeded")
		}
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.NewMetrics(registry, "spa")

	checks := map[string]health.Check{"store": store.Health.Ping}

	// Initialize Redis when configured; flash falls back to process memory
	var (
		flashes    flash.Store
		redisCli   *goredis.Client
		outboxSubs []worker.EventHandler
	)
	if cfg.Redis.URL != "" {
		redisCli, err = redisBroker.NewClient(ctx, redisBroker.Config{
			URL:          cfg.Redis.URL,
			MaxRetries:   cfg.Redis.MaxRetries,
			RetryBackoff: cfg.Redis.RetryBackoff,
			PoolSize:     cfg.Redis.PoolSize,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to Redis")
		}
		defer redisCli.Close()

		flashes = flash.NewRedisStore(redisCli, cfg.Flash.TTL)
		broker := redisBroker.NewRedisBroker(redisCli, appLogger.Zerolog())
		outboxSubs = append(outboxSubs, worker.PublishHandler(broker, cfg.Outbox.Channel))
		checks["redis"] = func(ctx context.Context) error { return redisCli.Ping(ctx).Err() }
	} else {
		flashes = flash.NewMemoryStore(cfg.Flash.TTL, cfg.Cache.CleanupInterval)
	}

	if cfg.SMTP.Enabled() {
		mailer := email.NewSMTPService(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.From, appLogger)
		outboxSubs = append(outboxSubs, worker.ConfirmationHandler(mailer))
	}

	// Initialize services
	validate := validator.New()
	schedule := availability.NewSchedule(cfg.Booking.Slots, cfg.Booking.Weekdays())

	catalogSvc := catalogService.NewService(store, validate, catalogService.Config{
		CacheTTL:        cfg.Cache.CatalogTTL,
		CleanupInterval: cfg.Cache.CleanupInterval,
	}, appLogger)
	availabilitySvc := availability.NewService(store.Bookings, schedule)
	bookingSvc := bookingService.NewService(
		store.Bookings,
		bookingOutbox(cfg, store, len(outboxSubs)),
		flashes,
		schedule,
		validate,
		bookingService.Rules{
			ExclusiveOffering: cfg.Booking.ExclusiveOffering,
			StrictPhone:       cfg.Booking.StrictPhone,
		},
		m,
		appLogger,
	)
	gateway := adminService.NewGateway(catalogSvc, bookingSvc)

	authSvc, err := newAuthService(cfg.Admin, appLogger)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize admin auth")
	}
	if !authSvc.Enabled() {
		log.Warn().Msg("admin credentials not configured; admin login disabled")
	}

	// Start the outbox processor
	if runProcessor(cfg, len(outboxSubs)) {
		processor := worker.NewOutboxProcessor(store.Outbox, worker.OutboxProcessorConfig{
			BatchSize:    cfg.Outbox.BatchSize,
			PollInterval: cfg.Outbox.PollInterval,
			MaxAttempts:  cfg.Outbox.MaxAttempts,
		}, appLogger, m, outboxSubs...)
		go processor.Start(ctx)
	}

	// Setup router
	cors := middleware.DefaultCORSConfig()
	cors.AllowOrigins = cfg.CORS.AllowedOrigins

	r := router.NewRouter(
		middleware.NewAuthMiddleware(authSvc),
		router.Handlers{
			Catalog: catalogHandler.NewHandler(catalogSvc),
			Booking: bookingHandler.NewHandler(bookingSvc, availabilitySvc, m),
			Auth:    authHandler.NewHandler(authSvc, validate, cfg.Admin.CookieSecure),
			Admin:   adminHandler.NewHandler(gateway),
			Health:  health.NewHandler(checks),
			Metrics: promHandler.New(registry, m),
		},
		router.Config{
			RateLimitEnabled: cfg.RateLimit.Enabled,
			RateLimit:        rate.Limit(cfg.RateLimit.RequestsPerSecond),
			RateBurst:        cfg.RateLimit.Burst,
			RequestTimeout:   cfg.Server.RequestTimeout,
			CORSConfig:       cors,
			CookieSecure:     cfg.Admin.CookieSecure,
		},
	)
	r.Setup()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Str("storage", cfg.Storage.Driver).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}

func openStore(ctx context.Context, cfg *config.Config) (*repository.Store, func(), error) {
	if cfg.Storage.Driver == config.StorageMemory {
		return memory.NewStore(), func() {}, nil
	}

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		return nil, nil, err
	}
	if err := postgres.Migrate(ctx, db); err != nil {
		db.Close()
		return nil, nil, err
	}
	return postgres.NewStore(db), closeDB(db), nil
}

func runProcessor(cfg *config.Config, consumers int) bool {
	return cfg.Outbox.Enabled && consumers > 0
}

// bookingOutbox returns nil when no consumer will ever drain the outbox. Memory
// events are only drained by the in-process processor; postgres events are
// also drained by cmd/worker, so they are always recorded.
func bookingOutbox(cfg *config.Config, store *repository.Store, consumers int) repository.OutboxRepository {
	if cfg.Storage.Driver == config.StorageMemory && !runProcessor(cfg, consumers) {
		return nil
	}
	return store.Outbox
}

func closeDB(db *sqlx.DB) func() {
	return func() {
		if err := db.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close database")
		}
	}
}

// newAuthService hashes a plaintext admin password once at startup when no
// precomputed hash is configured.
func newAuthService(cfg config.AdminConfig, appLogger *logger.Logger) (*authService.Service, error) {
	hasher := security.NewBcryptHasher(bcrypt.DefaultCost)

	hash, err := security.ResolveHash(hasher, cfg.Password, cfg.PasswordHash)
	if err != nil {
		return nil, err
	}

	return authService.NewService(
		authService.Credentials{Username: cfg.Username, PasswordHash: hash},
		hasher,
		auth.NewJWTService(cfg.JWTSecret, cfg.TokenTTL),
		appLogger,
	), nil
}
