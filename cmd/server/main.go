// Command server runs the passport application portal API.
//
// main wires dependencies and keeps the server lifecycle small. Business
// logic lives in the internal service packages.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"passportal/internal/application/handler"
	appmetrics "passportal/internal/application/metrics"
	"passportal/internal/application/service"
	appstore "passportal/internal/application/store"
	"passportal/internal/application/wizard"
	"passportal/internal/auth"
	"passportal/internal/documents"
	httpapi "passportal/internal/http"
	"passportal/internal/jwtsession"
	"passportal/internal/notification"
	"passportal/internal/platform/config"
	"passportal/internal/platform/httpserver"
	"passportal/internal/platform/logger"
	"passportal/internal/platform/metrics"
	platformredis "passportal/internal/platform/redis"
	"passportal/internal/registry"
	"passportal/internal/tracking"
	"passportal/internal/verification"
	"passportal/pkg/platform/audit"
	"passportal/pkg/platform/audit/sink"
	auditmemory "passportal/pkg/platform/audit/store/memory"
)

func main() {
	cfg := config.FromEnv()
	log := logger.New()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.DemoMode {
		log.Warn("demo mode is enabled; verification bypass identifier is active")
	}

	healthers := map[string]func() error{}

	// Application store: Postgres when configured, JSON file otherwise.
	var applications appstore.Store
	if cfg.PostgresURL != "" {
		pg, err := appstore.NewPostgres(ctx, cfg.PostgresURL)
		if err != nil {
			log.Error("failed to connect to postgres", "error", err)
			os.Exit(1)
		}
		defer pg.Close()
		applications = pg
		healthers["postgres"] = func() error { return pg.Ping(context.Background()) }
		log.Info("application store backed by postgres")
	} else {
		file, err := appstore.NewFile(cfg.DataDir)
		if err != nil {
			log.Error("failed to open application file store", "error", err)
			os.Exit(1)
		}
		applications = file
		log.Info("application store backed by JSON file", "data_dir", cfg.DataDir)
	}

	registryStore, err := registry.LoadFromDir(cfg.DataDir)
	if err != nil {
		log.Error("failed to load registry fixtures", "error", err)
		os.Exit(1)
	}

	// Audit: always persisted in memory; mirrored to Kafka when configured.
	auditOpts := []audit.PublisherOption{audit.WithLogger(log)}
	var kafkaSink *sink.KafkaSink
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaSink, err = sink.NewKafkaSink(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		if err != nil {
			log.Error("failed to connect audit kafka sink", "error", err)
			os.Exit(1)
		}
		defer kafkaSink.Close()
		auditOpts = append(auditOpts, audit.WithSink(kafkaSink))
		log.Info("audit events mirrored to kafka", "topic", cfg.Kafka.Topic)
	}
	auditPublisher := audit.NewPublisher(auditmemory.NewInMemoryStore(), auditOpts...)

	// Optional Redis cache for the public tracking endpoint.
	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}
	var trackingOpts []tracking.Option
	if redisClient != nil {
		defer redisClient.Close()
		trackingOpts = append(trackingOpts,
			tracking.WithCache(tracking.NewRedisCache(redisClient.Client, log), config.TrackingCacheTTL))
		healthers["redis"] = func() error { return redisClient.Health(context.Background()) }
		log.Info("tracking snapshots cached in redis")
	}

	m := metrics.New()
	sessions := jwtsession.NewService(cfg.JWTSigningKey)
	preferences := notification.NewPreferencesStore()
	notifier := notification.New(preferences, log,
		notification.WithAuditPublisher(auditPublisher))

	appService := service.New(applications,
		service.WithLogger(log),
		service.WithAuditPublisher(auditPublisher),
		service.WithNotifier(notifier),
		service.WithMetrics(appmetrics.New()),
	)
	verificationService := verification.New(appService, registryStore, log,
		verification.WithAuditPublisher(auditPublisher),
		verification.WithDemoMode(cfg.DemoMode),
	)
	trackingService := tracking.New(applications, log, trackingOpts...)
	authService := auth.New(auth.SeedUsers(), sessions, log,
		auth.WithAuditPublisher(auditPublisher))

	applicationHandler := handler.New(appService, wizard.NewManager(), log)

	router := httpapi.NewRouter(httpapi.Deps{
		Logger:         log,
		Metrics:        m,
		JWTValidator:   sessions,
		AdminTokenHash: cfg.AdminTokenHash,
		Public: []httpapi.Registrar{
			auth.NewHandler(authService, log),
			tracking.NewHandler(trackingService, log),
			registry.NewHandler(registry.NewService(registryStore, log), log),
			documents.NewHandler(log),
		},
		Session: []httpapi.Registrar{
			applicationHandler,
			notification.NewHandler(notifier, preferences, log),
		},
		Admin: []httpapi.AdminRegistrar{
			applicationHandler,
			verification.NewHandler(verificationService, log),
		},
		Healthers: healthers,
	})

	srv := httpserver.New(cfg.Addr, router)
	log.Info("starting passportal", "addr", cfg.Addr)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
	log.Info("shutdown complete")
}
