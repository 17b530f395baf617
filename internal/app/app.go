package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/heartmarshall/chatvault/internal/config"
	"github.com/heartmarshall/chatvault/internal/service/retention"
	"github.com/heartmarshall/chatvault/internal/transport/middleware"
	"github.com/heartmarshall/chatvault/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, connects to
// the database, starts the retention scheduler and serves HTTP until ctx is
// cancelled, then shuts everything down in reverse order.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	c, err := NewContainer(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer c.Close()

	var scheduler *retention.Scheduler
	if cfg.Retention.ScheduleEnabled {
		scheduler, err = retention.NewScheduler(logger, c.Retention, cfg.Retention.Schedule, cfg.Retention.RunTimeout)
		if err != nil {
			return fmt.Errorf("create scheduler: %w", err)
		}
		scheduler.Start()
	}

	var limiter *middleware.RateLimiter
	if cfg.RateLimit.Enabled {
		limiter = middleware.NewRateLimiter(cfg.RateLimit.CleanupInterval)
		defer limiter.Stop()
	}

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      newHandler(c, scheduler, limiter),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	var serveErr error
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case serveErr = <-errCh:
		logger.Error("http server failed", slog.String("error", serveErr.Error()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown", slog.String("error", err.Error()))
	}
	if scheduler != nil {
		if err := scheduler.Stop(shutdownCtx); err != nil {
			logger.Error("scheduler shutdown", slog.String("error", err.Error()))
		}
	}

	logger.Info("application stopped")
	return serveErr
}

func newHandler(c *Container, scheduler *retention.Scheduler, limiter *middleware.RateLimiter) http.Handler {
	cfg := c.Config
	logger := c.Logger

	// A nil *Scheduler must not reach the interface.
	var health *rest.HealthHandler
	if scheduler != nil {
		health = rest.NewHealthHandler(c.Pool, scheduler, Version)
	} else {
		health = rest.NewHealthHandler(c.Pool, nil, Version)
	}

	authMW := middleware.Auth(logger, c.JWT, nil)
	if cfg.Auth.CheckUserActive {
		authMW = middleware.Auth(logger, c.JWT, c.Users)
	}

	deps := rest.RouterDeps{
		Health: health,
		Chats:  rest.NewChatHandler(c.Chat, logger),
		Data:   rest.NewDataHandler(c.SettingsSvc, c.Quota, c.Retention, c.Chat, logger),
		Global: middleware.Chain(
			middleware.RequestID(),
			middleware.Recovery(logger),
			middleware.ClientInfo(cfg.Server.TrustProxy),
			middleware.Logger(logger),
			middleware.CORS(cfg.CORS),
		),
		Auth:    authMW,
		Limiter: limiter,
		Limits: rest.RateLimits{
			API:     cfg.RateLimit.APIPerMinute,
			Batch:   cfg.RateLimit.BatchPerMinute,
			Cleanup: cfg.RateLimit.CleanupPerMinute,
		},
	}

	if c.Registry != nil {
		deps.Metrics = promhttp.HandlerFor(c.Registry, promhttp.HandlerOpts{Registry: c.Registry})
		deps.MetricsPath = cfg.Metrics.Path
		deps.HTTPStat = middleware.Metrics(c.Metrics)
	}

	return rest.NewRouter(deps)
}
