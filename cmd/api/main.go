package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	httptransport "github.com/interinest/marketplace/internal/api/http"
	"github.com/interinest/marketplace/internal/api/http/handlers"
	"github.com/interinest/marketplace/internal/auth"
	"github.com/interinest/marketplace/internal/config"
	"github.com/interinest/marketplace/internal/events"
	"github.com/interinest/marketplace/internal/identity"
	"github.com/interinest/marketplace/internal/observability"
	"github.com/interinest/marketplace/internal/persistence"
	"github.com/interinest/marketplace/internal/repository"
	"github.com/interinest/marketplace/internal/service"
	"github.com/interinest/marketplace/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.OpenPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to open postgres", zap.Error(err))
	}
	defer pg.Close()

	redis := persistence.OpenRedis(ctx, cfg.Redis, logger)
	defer redis.Close()

	dispatcher := events.NewInMemoryDispatcher(logger)
	var publisher *events.AMQPPublisher
	if cfg.Broker.URL != "" {
		publisher, err = events.NewAMQPPublisher(cfg.Broker.URL, cfg.Broker.Exchange, logger)
		if err != nil {
			logger.Warn("event broker unavailable, continuing without it", zap.Error(err))
			publisher = nil
		}
		defer publisher.Close()
	}
	worker.StartNotificationWorker(service.NewNotificationService(dispatcher, logger), dispatcher, publisher)

	pool := pg.Pool()
	credentialRepo := repository.NewCredentialRepository(pool)
	accountRepo := repository.NewAccountRepository(pool)
	projectRepo := repository.NewProjectRepository(pool)

	limiter := identity.NewRedisAttemptLimiter(redis.Client(), cfg.Auth.MaxLoginAttempts, cfg.Auth.LoginWindow())
	provider := identity.NewLocalProvider(credentialRepo, limiter, identity.Options{
		BcryptCost:        cfg.Auth.BcryptCost,
		MinPasswordLength: cfg.Auth.MinPasswordLength,
		SignupEnabled:     cfg.Auth.SignupEnabled,
	}, logger)

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.SessionTTL())
	gate := auth.NewGate(auth.DefaultRoutes()...)
	metrics := observability.NewMetrics()

	sessionService := service.NewSessionService(service.SessionDependencies{
		Provider:    provider,
		AccountRepo:    accountRepo,
		Tokens:      tokens,
		Dispatcher:  dispatcher,
		Logger:      logger,
	})
	accountService := service.NewAccountService(accountRepo, projectRepo, logger)
	projectService := service.NewProjectService(projectRepo, dispatcher, logger)
	adminService := service.NewAdminService(service.AdminDependencies{
		AccountRepo:    accountRepo,
		ProjectRepo:    projectRepo,
		CredentialRepo: credentialRepo,
		Dispatcher:     dispatcher,
		Logger:         logger,
	})

	app := httptransport.NewApp(cfg.App.Name)
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:   handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version,
			handlers.Probe{Name: "postgres", Target: pg},
			handlers.Probe{Name: "redis", Target: redis},
		),
		Auth:     handlers.NewAuthHandler(sessionService, gate, cfg.Auth.SessionTTL()),
		Designer: handlers.NewDesignerHandler(accountService, projectService),
		Admin:    handlers.NewAdminHandler(adminService),
		User:     handlers.NewUserHandler(accountService),
		Catalog:  handlers.NewCatalogHandler(accountService, projectService),
		Gate:     auth.NewGateMiddleware(gate, tokens, logger, metrics),
		Metrics:  metrics,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
