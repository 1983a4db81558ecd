package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/troopbase/troopbase/internal/app"
	"github.com/troopbase/troopbase/internal/auth"
	"github.com/troopbase/troopbase/internal/events"
	"github.com/troopbase/troopbase/internal/eventtypes"
	"github.com/troopbase/troopbase/internal/notify"
	"github.com/troopbase/troopbase/internal/observability"
	"github.com/troopbase/troopbase/internal/permissions"
	"github.com/troopbase/troopbase/internal/platform/db"
	"github.com/troopbase/troopbase/internal/rbac"
	"github.com/troopbase/troopbase/internal/roles"
	"github.com/troopbase/troopbase/internal/shared"
	"github.com/troopbase/troopbase/internal/users"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Warn("redis ping", slog.Any("error", err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	sessionManager := shared.NewSessionManager(redisClient, cfg.SessionCookie, cfg.SessionTTL, cfg.IsProduction())

	asynqClient := asynq.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := asynqClient.Close(); err != nil {
			logger.Warn("asynq close", slog.Any("error", err))
		}
	}()
	notifier := notify.NewNotifier(asynqClient, cfg.WebhookURL, logger)

	metrics := observability.NewMetrics()

	usersRepo := users.NewRepository(pool)
	usersService := users.NewService(usersRepo, notifier)

	rolesRepo := roles.NewRepository(pool)
	rolesService := roles.NewService(rolesRepo, notifier)

	permissionsRepo := permissions.NewRepository(pool)
	permissionsService := permissions.NewService(permissionsRepo, notifier)

	assignments := rbac.NewAssignments(pool)
	engine := rbac.NewEngine(assignments, permissionsRepo, func(action rbac.Action, granted bool) {
		metrics.RecordAuthzDecision(string(action), granted)
	}, logger)
	resolver := rbac.NewResolver(assignments, permissionsRepo)
	rbacMiddleware := rbac.Middleware{Assignments: assignments, Logger: logger}

	eventTypesRepo := eventtypes.NewRepository(pool)
	eventTypesService := eventtypes.NewService(eventTypesRepo, notifier)

	eventsRepo := events.NewRepository(pool)
	eventsService := events.NewService(eventsRepo, engine, resolver, notifier)

	authService := auth.NewService(usersRepo)

	authHandler := auth.NewHandler(logger, authService, sessionManager)
	usersHandler := users.NewHandler(logger, usersService, rbacMiddleware)
	rolesHandler := roles.NewHandler(logger, rolesService, rbacMiddleware)
	eventTypesHandler := eventtypes.NewHandler(logger, eventTypesService, rbacMiddleware)
	eventsHandler := events.NewHandler(logger, eventsService, rbacMiddleware)
	permissionsHandler := permissions.NewHandler(logger, permissionsService, rbacMiddleware)
	rbacHandler := rbac.NewHandler(logger, assignments, resolver, notifier, rbacMiddleware)

	router := app.NewRouter(app.RouterParams{
		Logger:             logger,
		Config:             cfg,
		SessionManager:     sessionManager,
		AuthHandler:        authHandler,
		UsersHandler:       usersHandler,
		RolesHandler:       rolesHandler,
		EventTypesHandler:  eventTypesHandler,
		EventsHandler:      eventsHandler,
		PermissionsHandler: permissionsHandler,
		RBACHandler:        rbacHandler,
		Metrics:            metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("server", slog.Any("error", err))
		os.Exit(1)
	}
}
