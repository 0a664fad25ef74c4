package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/agencydesk/agencydesk-backend/internal/cron"
	"github.com/agencydesk/agencydesk-backend/internal/subscriptions"
	"github.com/agencydesk/agencydesk-backend/internal/tasks"
	"github.com/agencydesk/agencydesk-backend/pkg/config"
	"github.com/agencydesk/agencydesk-backend/pkg/db"
	"github.com/agencydesk/agencydesk-backend/pkg/logger"
	"github.com/agencydesk/agencydesk-backend/pkg/metrics"
	"github.com/agencydesk/agencydesk-backend/pkg/migrate"
	"github.com/agencydesk/agencydesk-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "taskgen-worker"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	cfg.Service.Kind = "taskgen-worker"

	logg = logger.New(logger.Options{
		ServiceName: "taskgen-worker",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, cfg.FeatureFlags, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	subsRepo := subscriptions.NewRepository(dbClient.DB())
	tasksRepo := tasks.NewRepository(dbClient.DB())

	generationJob, err := cron.NewTaskGenerationJob(cron.TaskGenerationJobParams{
		Logger:    logg,
		Subs:      subsRepo,
		TaskStore: tasksRepo,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create task generation job", err)
		os.Exit(1)
	}

	expiryJob, err := cron.NewSubscriptionExpiryJob(cron.SubscriptionExpiryJobParams{
		Logger:      logg,
		Subs:        subsRepo,
		WarningDays: cfg.Tasks.ExpiryWarningDays,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create subscription expiry job", err)
		os.Exit(1)
	}

	metricsCollector := metrics.NewCronJobMetrics(prometheus.DefaultRegisterer)
	lock, err := cron.NewRedisLock(redisClient, redisClient.LockKey("taskgen-worker"), cfg.Cron.LockTTL)
	if err != nil {
		logg.Error(context.Background(), "failed to create cron lock", err)
		os.Exit(1)
	}

	service, err := cron.NewService(cron.ServiceParams{
		Logger:   logg,
		Registry: cron.NewRegistry(generationJob, expiryJob),
		Lock:     lock,
		Metrics:  metricsCollector,
		Interval: cfg.Cron.Interval,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create cron service", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx = logg.WithFields(ctx, map[string]any{
		"env":         cfg.App.Env,
		"serviceKind": cfg.Service.Kind,
	})
	logg.Info(ctx, "starting taskgen worker")

	go serveMetrics(ctx, logg)

	if err := service.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logg.Error(ctx, "taskgen worker stopped unexpectedly", err)
		os.Exit(1)
	}

	logg.Info(ctx, "taskgen worker shutting down gracefully")
}

func serveMetrics(ctx context.Context, logg *logger.Logger) {
	addr := os.Getenv("AGENCYDESK_METRICS_ADDR")
	if addr == "" {
		addr = ":9091"
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	server := &http.Server{Addr: addr, Handler: mux}
	go func() {
		<-ctx.Done()
		_ = server.Close()
	}()

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "metrics server stopped unexpectedly", err)
	}
}
