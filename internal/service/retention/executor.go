package retention

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/chatvault/internal/domain"
	"github.com/heartmarshall/chatvault/internal/metrics"
	"github.com/heartmarshall/chatvault/pkg/ctxutil"
)

const scheduledRunKey = "scheduled-cleanup"

// CleanupResult is the outcome of a cleanup for one user.
type CleanupResult struct {
	DeletedChats    int
	DeletedMessages int
}

// ScheduledResult is the outcome of a cleanup pass over every user with
// automatic cleanup enabled.
type ScheduledResult struct {
	DeletedChats    int
	DeletedMessages int
	// ProcessedUsers counts every user the run attempted, failures included.
	ProcessedUsers int
	FailedUsers    int
}

// RunCleanup deletes userID's expired chats now. Settings are created with
// defaults if the user has none. The auto-cleanup flag is not consulted.
func (s *Service) RunCleanup(ctx context.Context, userID uuid.UUID) (CleanupResult, error) {
	start := time.Now()

	res, err := s.cleanupUser(ctx, userID, metrics.TriggerOnDemand)

	outcome := metrics.OutcomeSuccess
	if err != nil {
		outcome = metrics.OutcomeError
	}
	s.metrics.RecordCleanup(metrics.TriggerOnDemand, outcome, res.DeletedChats, res.DeletedMessages, time.Since(start))

	if err != nil {
		return CleanupResult{}, fmt.Errorf("retention.RunCleanup: %w", err)
	}
	return res, nil
}

// RunScheduledCleanup runs cleanup for every user with automatic cleanup
// enabled. A failure for one user is logged and counted and does not stop
// the run. Concurrent calls share a single run and its result.
func (s *Service) RunScheduledCleanup(ctx context.Context) (ScheduledResult, error) {
	v, err, shared := s.runs.Do(scheduledRunKey, func() (any, error) {
		return s.runScheduled(ctx)
	})
	if shared {
		s.log.DebugContext(ctx, "joined in-flight scheduled cleanup")
	}
	res, _ := v.(ScheduledResult)
	return res, err
}

func (s *Service) runScheduled(ctx context.Context) (ScheduledResult, error) {
	start := time.Now()
	var res ScheduledResult

	users, err := s.settings.ListAutoCleanupUsers(ctx)
	if err != nil {
		s.metrics.RecordCleanup(metrics.TriggerScheduled, metrics.OutcomeError, 0, 0, time.Since(start))
		return res, fmt.Errorf("retention.RunScheduledCleanup: list users: %w", err)
	}

	s.log.InfoContext(ctx, "scheduled cleanup started", slog.Int("users", len(users)))

	for _, userID := range users {
		if ctx.Err() != nil {
			break
		}
		res.ProcessedUsers++

		r, err := s.cleanupUser(ctx, userID, metrics.TriggerScheduled)
		if err != nil {
			res.FailedUsers++
			s.metrics.RecordUserFailure()
			s.log.WarnContext(ctx, "scheduled cleanup failed for user",
				slog.String("user_id", userID.String()),
				slog.String("error", err.Error()),
			)
			continue
		}
		res.DeletedChats += r.DeletedChats
		res.DeletedMessages += r.DeletedMessages
	}

	elapsed := time.Since(start)
	outcome := metrics.OutcomeSuccess
	if res.FailedUsers > 0 || ctx.Err() != nil {
		outcome = metrics.OutcomeError
	}
	s.metrics.RecordCleanup(metrics.TriggerScheduled, outcome, res.DeletedChats, res.DeletedMessages, elapsed)
	s.metrics.MarkScheduledRun(time.Now())

	s.log.InfoContext(ctx, "scheduled cleanup finished",
		slog.Int("processed_users", res.ProcessedUsers),
		slog.Int("failed_users", res.FailedUsers),
		slog.Int("deleted_chats", res.DeletedChats),
		slog.Int("deleted_messages", res.DeletedMessages),
		slog.Duration("duration", elapsed),
	)

	if err := ctx.Err(); err != nil {
		return res, fmt.Errorf("retention.RunScheduledCleanup: %w", err)
	}
	return res, nil
}

// cleanupUser evaluates and deletes for one user. The first evaluation runs
// outside any transaction so users with nothing to delete cost one read.
// Candidates are evaluated again under the per-user lock before deleting.
func (s *Service) cleanupUser(ctx context.Context, userID uuid.UUID, trigger string) (res CleanupResult, err error) {
	settings, ok, err := s.loadSettings(ctx, userID, trigger == metrics.TriggerOnDemand)
	if err != nil || !ok {
		return CleanupResult{}, err
	}

	ids, err := s.FindExpired(ctx, userID, settings.RetentionDays)
	if err != nil {
		return CleanupResult{}, err
	}
	if len(ids) == 0 {
		return CleanupResult{}, nil
	}

	tx, err := s.tx.Begin(ctx)
	if err != nil {
		return CleanupResult{}, err
	}
	defer domain.FinishTx(tx, &err)

	txCtx := tx.Context()
	if err = tx.Lock(domain.UserLockKey(userID)); err != nil {
		return CleanupResult{}, fmt.Errorf("lock user: %w", err)
	}

	// Settings may have changed while the lock was contended.
	settings, ok, err = s.loadSettings(txCtx, userID, false)
	if err != nil || !ok {
		return CleanupResult{}, err
	}
	if trigger == metrics.TriggerScheduled && !settings.AutoCleanupEnabled {
		return CleanupResult{}, nil
	}

	ids, err = s.FindExpired(txCtx, userID, settings.RetentionDays)
	if err != nil {
		return CleanupResult{}, err
	}
	if len(ids) == 0 {
		return CleanupResult{}, nil
	}

	pending, err := s.messages.CountByChatIDs(txCtx, ids)
	if err != nil {
		return CleanupResult{}, fmt.Errorf("count messages: %w", err)
	}
	s.log.DebugContext(ctx, "deleting expired chats",
		slog.String("user_id", userID.String()),
		slog.Int("chats", len(ids)),
		slog.Int("messages", pending),
		slog.Int("retention_days", settings.RetentionDays),
	)

	deleted, err := s.deleter.DeleteInTx(tx, userID, ids)
	if err != nil {
		if errors.Is(err, domain.ErrProtectedChat) {
			s.log.ErrorContext(ctx, "expiry candidates include a protected chat",
				slog.String("user_id", userID.String()),
				slog.String("error", err.Error()),
			)
			return CleanupResult{}, fmt.Errorf("%w: %w", domain.ErrPolicyInconsistency, err)
		}
		return CleanupResult{}, fmt.Errorf("delete expired chats: %w", err)
	}

	res = CleanupResult{DeletedChats: deleted.Affected, DeletedMessages: deleted.DeletedMessages}

	action := domain.AuditActionCleanup
	if trigger == metrics.TriggerScheduled {
		action = domain.AuditActionScheduled
	}
	client := ctxutil.ClientInfoFromCtx(ctx)
	if err = s.audit.Log(txCtx, domain.AuditRecord{
		UserID: userID,
		Action: action,
		Details: map[string]any{
			"deletedChats":    res.DeletedChats,
			"deletedMessages": res.DeletedMessages,
			"retentionDays":   settings.RetentionDays,
		},
		IPAddress: client.IP,
		UserAgent: client.UserAgent,
	}); err != nil {
		return CleanupResult{}, fmt.Errorf("write audit record: %w", err)
	}

	s.log.InfoContext(ctx, "expired chats deleted",
		slog.String("user_id", userID.String()),
		slog.String("trigger", trigger),
		slog.Int("deleted_chats", res.DeletedChats),
		slog.Int("deleted_messages", res.DeletedMessages),
	)
	return res, nil
}

// loadSettings returns the user's settings. With create set, a user without
// a record gets defaults; otherwise ok is false.
func (s *Service) loadSettings(ctx context.Context, userID uuid.UUID, create bool) (domain.UserRetentionSettings, bool, error) {
	if create {
		settings, err := s.settings.Ensure(ctx, userID)
		if err != nil {
			return domain.UserRetentionSettings{}, false, fmt.Errorf("ensure settings: %w", err)
		}
		return settings, true, nil
	}

	settings, err := s.settings.GetByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.UserRetentionSettings{}, false, nil
		}
		return domain.UserRetentionSettings{}, false, fmt.Errorf("get settings: %w", err)
	}
	return settings, true, nil
}
