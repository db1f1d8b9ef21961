package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"golang.org/x/sync/errgroup"

	"github.com/quayside-pos/quayside-pos/internal/app"
	"github.com/quayside-pos/quayside-pos/internal/audit"
	"github.com/quayside-pos/quayside-pos/internal/auth"
	"github.com/quayside-pos/quayside-pos/internal/invites"
	"github.com/quayside-pos/quayside-pos/internal/observability"
	"github.com/quayside-pos/quayside-pos/internal/platform/cache"
	"github.com/quayside-pos/quayside-pos/internal/platform/db"
	"github.com/quayside-pos/quayside-pos/internal/profiles"
	"github.com/quayside-pos/quayside-pos/internal/tenants"
	"github.com/quayside-pos/quayside-pos/jobs"
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

	redisClient := cache.NewClient(cfg.RedisAddr)
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Warn("redis ping", slog.Any("error", err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	metrics := observability.NewMetrics()
	recorder := audit.NewRecorder(audit.NewPgStore(pool), logger, metrics.AuditFailures)

	jobsClient, err := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	if err != nil {
		logger.Error("init jobs client", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := jobsClient.Close(); err != nil {
			logger.Warn("jobs client close", slog.Any("error", err))
		}
	}()

	profileRepo := profiles.NewRepository(pool)
	profileService := profiles.NewService(profileRepo)
	profilesHandler := profiles.NewHandler(logger, profileService)

	tenantService := tenants.NewService(tenants.NewRepository(pool), recorder, metrics.TenantsProvisioned)
	tenantsHandler := tenants.NewHandler(logger, tenantService)

	inviteService := invites.NewService(
		invites.NewRepository(pool),
		profileRepo,
		cache.NewLocker(redisClient),
		recorder,
		jobsClient,
		logger,
		invites.ValidityBounds{Default: cfg.InviteDefaultDays, Min: cfg.InviteMinDays, Max: cfg.InviteMaxDays},
		invites.Metrics{Created: metrics.InvitesCreated, Accepted: metrics.InvitesAccepted},
	)
	invitesHandler := invites.NewHandler(logger, inviteService)

	auditHandler := audit.NewHandler(logger, recorder, profileService)

	verifier := auth.NewJWTVerifier(cfg.AuthJWTSecret, cfg.AuthIssuer)

	router := app.NewRouter(app.RouterParams{
		Logger:          logger,
		Config:          cfg,
		AuthMiddleware:  auth.Middleware(verifier, logger),
		TenantsHandler:  tenantsHandler,
		InvitesHandler:  invitesHandler,
		ProfilesHandler: profilesHandler,
		AuditHandler:    auditHandler,
		Metrics:         metrics,
	})

	apiServer := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}
	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", metrics.Handler())
	metricsServer := &http.Server{
		Addr:         cfg.MetricsAddr,
		Handler:      metricsMux,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		logger.Info("api server listening", slog.String("addr", cfg.AppAddr))
		if err := apiServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		logger.Info("metrics server listening", slog.String("addr", cfg.MetricsAddr))
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := apiServer.Shutdown(shutdownCtx); err != nil {
			logger.Warn("api server shutdown", slog.Any("error", err))
		}
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			logger.Warn("metrics server shutdown", slog.Any("error", err))
		}
		return nil
	})

	if err := group.Wait(); err != nil {
		logger.Error("server exited", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("shutdown complete")
}
