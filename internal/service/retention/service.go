// Package retention decides which chats have outlived their owner's
// retention window and deletes them, on demand or on a schedule.
package retention

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/heartmarshall/chatvault/internal/domain"
	"github.com/heartmarshall/chatvault/internal/metrics"
	"github.com/heartmarshall/chatvault/internal/service/batch"
)

// chatRepo lists expiry candidates.
type chatRepo interface {
	ListExpired(ctx context.Context, userID uuid.UUID, cutoff time.Time) ([]uuid.UUID, error)
}

// messageCounter counts messages that a delete would remove.
type messageCounter interface {
	CountByChatIDs(ctx context.Context, chatIDs []uuid.UUID) (int, error)
}

// settingsRepo reads retention settings.
type settingsRepo interface {
	GetByUser(ctx context.Context, userID uuid.UUID) (domain.UserRetentionSettings, error)
	Ensure(ctx context.Context, userID uuid.UUID) (domain.UserRetentionSettings, error)
	ListAutoCleanupUsers(ctx context.Context) ([]uuid.UUID, error)
}

// chatDeleter removes chats and their messages inside a caller's transaction.
type chatDeleter interface {
	DeleteInTx(tx domain.Tx, userID uuid.UUID, ids []uuid.UUID) (batch.Result, error)
}

// auditLogger writes system log rows.
type auditLogger interface {
	Log(ctx context.Context, record domain.AuditRecord) error
}

// txManager opens explicitly scoped transactions.
type txManager interface {
	Begin(ctx context.Context) (domain.Tx, error)
}

// Service evaluates retention policy and runs cleanups.
type Service struct {
	log      *slog.Logger
	tx       txManager
	chats    chatRepo
	messages messageCounter
	settings settingsRepo
	deleter  chatDeleter
	audit    auditLogger
	metrics  *metrics.Metrics
	now      func() time.Time

	runs singleflight.Group
}

// NewService creates a new retention service.
func NewService(
	logger *slog.Logger,
	tx txManager,
	chats chatRepo,
	messages messageCounter,
	settings settingsRepo,
	deleter chatDeleter,
	audit auditLogger,
	m *metrics.Metrics,
) *Service {
	return &Service{
		log:      logger.With("service", "retention"),
		tx:       tx,
		chats:    chats,
		messages: messages,
		settings: settings,
		deleter:  deleter,
		audit:    audit,
		metrics:  m,
		now:      time.Now,
	}
}

// WithClock replaces the clock used to compute cutoffs.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}
