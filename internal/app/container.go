package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/heartmarshall/chatvault/internal/adapter/postgres"
	auditrepo "github.com/heartmarshall/chatvault/internal/adapter/postgres/audit"
	chatrepo "github.com/heartmarshall/chatvault/internal/adapter/postgres/chat"
	messagerepo "github.com/heartmarshall/chatvault/internal/adapter/postgres/message"
	settingsrepo "github.com/heartmarshall/chatvault/internal/adapter/postgres/settings"
	userrepo "github.com/heartmarshall/chatvault/internal/adapter/postgres/user"
	"github.com/heartmarshall/chatvault/internal/auth"
	"github.com/heartmarshall/chatvault/internal/config"
	"github.com/heartmarshall/chatvault/internal/metrics"
	"github.com/heartmarshall/chatvault/internal/service/batch"
	"github.com/heartmarshall/chatvault/internal/service/chat"
	"github.com/heartmarshall/chatvault/internal/service/quota"
	"github.com/heartmarshall/chatvault/internal/service/retention"
	"github.com/heartmarshall/chatvault/internal/service/settings"
)

// Container holds the database pool, repositories and services shared by the
// server and the command-line tools.
type Container struct {
	Config *config.Config
	Logger *slog.Logger
	Pool   *pgxpool.Pool

	// Registry is nil when metrics are disabled.
	Registry *prometheus.Registry
	Metrics  *metrics.Metrics

	Tx       *postgres.TxManager
	Chats    *chatrepo.Repo
	Messages *messagerepo.Repo
	Settings *settingsrepo.Repo
	Audit    *auditrepo.Repo
	Users    *userrepo.Repo

	Quota       *quota.Service
	Batch       *batch.Service
	Chat        *chat.Service
	SettingsSvc *settings.Service
	Retention   *retention.Service

	JWT *auth.JWTManager
}

// NewContainer connects to the database, applies migrations when
// cfg.Database.AutoMigrate is set and wires every service.
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if cfg.Database.AutoMigrate {
		if err := postgres.Migrate(ctx, cfg.Database.DSN, logger); err != nil {
			pool.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
	}

	c := &Container{
		Config: cfg,
		Logger: logger,
		Pool:   pool,
	}

	if cfg.Metrics.Enabled {
		c.Registry = prometheus.NewRegistry()
		c.Metrics = metrics.InitPrometheusMetrics(cfg.Metrics.Namespace, c.Registry, cfg.Metrics.RuntimeCollectors)
	}

	c.Tx = postgres.NewTxManager(pool)
	c.Chats = chatrepo.New(pool)
	c.Messages = messagerepo.New(pool)
	c.Settings = settingsrepo.New(pool)
	c.Audit = auditrepo.New(pool)
	c.Users = userrepo.New(pool)

	c.Quota = quota.NewService(logger, c.Chats, c.Settings, c.Metrics)
	c.Batch = batch.NewService(logger, c.Tx, c.Chats, c.Messages, c.Quota, c.Metrics, cfg.Chat.MaxBatchSize)
	c.Chat = chat.NewService(logger, c.Tx, c.Chats, c.Messages, c.Settings, c.Quota, c.Batch, c.Audit, chat.Options{
		DefaultTitle:    cfg.Chat.DefaultTitle,
		DefaultPageSize: cfg.Chat.DefaultPageSize,
		MaxPageSize:     cfg.Chat.MaxPageSize,
	})
	c.SettingsSvc = settings.NewService(logger, c.Settings, c.Audit, c.Tx)
	c.Retention = retention.NewService(logger, c.Tx, c.Chats, c.Messages, c.Settings, c.Batch, c.Audit, c.Metrics)

	c.JWT = auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)

	return c, nil
}

// Close releases the database pool.
func (c *Container) Close() {
	c.Pool.Close()
}
