package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/agencydesk/agencydesk-backend/api/routes"
	"github.com/agencydesk/agencydesk-backend/internal/auth"
	"github.com/agencydesk/agencydesk-backend/internal/catalog"
	"github.com/agencydesk/agencydesk-backend/internal/employees"
	"github.com/agencydesk/agencydesk-backend/internal/exports"
	"github.com/agencydesk/agencydesk-backend/internal/members"
	"github.com/agencydesk/agencydesk-backend/internal/statistics"
	"github.com/agencydesk/agencydesk-backend/internal/subscriptions"
	"github.com/agencydesk/agencydesk-backend/internal/tasks"
	"github.com/agencydesk/agencydesk-backend/internal/users"
	"github.com/agencydesk/agencydesk-backend/pkg/auth/session"
	"github.com/agencydesk/agencydesk-backend/pkg/config"
	"github.com/agencydesk/agencydesk-backend/pkg/db"
	"github.com/agencydesk/agencydesk-backend/pkg/logger"
	"github.com/agencydesk/agencydesk-backend/pkg/migrate"
	"github.com/agencydesk/agencydesk-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
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

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	exporter, err := exports.NewLogExporter(logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create exporter", err)
		os.Exit(1)
	}

	usersRepo := users.NewRepository(dbClient.DB())
	membersRepo := members.NewRepository(dbClient.DB())
	subsRepo := subscriptions.NewRepository(dbClient.DB())
	tasksRepo := tasks.NewRepository(dbClient.DB())
	employeesRepo := employees.NewRepository(dbClient.DB())
	catalogRepo := catalog.NewRepository(dbClient.DB())

	verifier, err := auth.NewDBVerifier(usersRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create credential verifier", err)
		os.Exit(1)
	}
	authService, err := auth.NewService(auth.ServiceParams{
		Verifier:       verifier,
		UserRepo:       usersRepo,
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	membersService, err := members.NewService(membersRepo, exporter)
	if err != nil {
		logg.Error(context.Background(), "failed to create members service", err)
		os.Exit(1)
	}

	subscriptionsService, err := subscriptions.NewService(subscriptions.ServiceParams{
		Repo:     subsRepo,
		Contacts: membersRepo,
		Exporter: exporter,
		Tasks:    cfg.Tasks,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create subscriptions service", err)
		os.Exit(1)
	}

	tasksService, err := tasks.NewService(tasks.ServiceParams{
		Repo:      tasksRepo,
		Contacts:  membersRepo,
		Employees: employeesRepo,
		Exporter:  exporter,
		Tasks:     cfg.Tasks,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create tasks service", err)
		os.Exit(1)
	}

	employeesService, err := employees.NewService(employeesRepo, usersRepo, cfg.Password)
	if err != nil {
		logg.Error(context.Background(), "failed to create employees service", err)
		os.Exit(1)
	}

	catalogService, err := catalog.NewService(catalogRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	statisticsService, err := statistics.NewService(subsRepo, nil)
	if err != nil {
		logg.Error(context.Background(), "failed to create statistics service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:         cfg,
			Logger:         logg,
			SessionChecker: sessionManager,
			Auth:           authService,
			Members:        membersService,
			Subscriptions:  subscriptionsService,
			Tasks:          tasksService,
			Employees:      employeesService,
			Catalog:        catalogService,
			Statistics:     statisticsService,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
