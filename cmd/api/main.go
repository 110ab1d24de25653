package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/user-directory/internal/api/http"
	"github.com/spec-kit/user-directory/internal/api/http/handlers"
	"github.com/spec-kit/user-directory/internal/auth"
	"github.com/spec-kit/user-directory/internal/config"
	"github.com/spec-kit/user-directory/internal/events"
	"github.com/spec-kit/user-directory/internal/observability"
	"github.com/spec-kit/user-directory/internal/persistence"
	"github.com/spec-kit/user-directory/internal/ratelimit"
	"github.com/spec-kit/user-directory/internal/repository"
	"github.com/spec-kit/user-directory/internal/service"
	"github.com/spec-kit/user-directory/internal/validation"
	"github.com/spec-kit/user-directory/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	if cfg.Auth.UsingFallbackSecret() {
		logger.Warn("AUTH_JWT_SECRET not set; using insecure development secret")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), cfg.Postgres.MigrationsDir, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	dispatcher := events.NewInMemoryDispatcher()
	worker.StartAuditWorker(dispatcher, logger)

	userRepo := repository.NewUserRepository(pg.PoolHandle())
	tokenMgr := auth.NewTokenManager(cfg.Auth)
	userService := service.NewUserService(userRepo, dispatcher, cfg.Auth.BcryptCost, logger)
	authService := service.NewAuthService(userService, tokenMgr)

	session := auth.NewSessionMiddleware(tokenMgr, cfg.Auth.CookieName, logger)
	limiter := ratelimit.NewLimiter(redis.ClientHandle(), cfg.RateLimit, logger)
	validate := validation.New()
	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:  handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:    handlers.NewAuthHandler(authService, validate, cfg.Auth.CookieName, cfg.App.IsProduction()),
		Users:   handlers.NewUsersHandler(userService, validate),
		Session: session,
		Limiter: limiter,
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
