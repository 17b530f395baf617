// Command cleanup runs one scheduled retention pass over every user with
// automatic cleanup enabled and exits. It is meant for deployments that
// disable the in-process scheduler and trigger cleanup from an external cron.
//
// Exit codes: 0 = success, 1 = error, 2 = finished with per-user failures.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/chatvault/internal/app"
	"github.com/heartmarshall/chatvault/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := runContext(context.Background(), cfg.Retention.RunTimeout)
	defer cancel()

	c, err := app.NewContainer(ctx, cfg, logger)
	if err != nil {
		logger.Error("init", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer c.Close()

	res, err := c.Retention.RunScheduledCleanup(ctx)
	if err != nil {
		logger.Error("scheduled cleanup failed", slog.String("error", err.Error()))
		c.Close()
		os.Exit(1)
	}

	logger.Info("scheduled cleanup completed",
		slog.Int("processed_users", res.ProcessedUsers),
		slog.Int("failed_users", res.FailedUsers),
		slog.Int("deleted_chats", res.DeletedChats),
		slog.Int("deleted_messages", res.DeletedMessages),
	)

	if res.FailedUsers > 0 {
		c.Close()
		os.Exit(2)
	}
}

// runContext bounds the run by timeout. Zero means no bound.
func runContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, timeout)
}
