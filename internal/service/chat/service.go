// Package chat implements the chat and message lifecycle of the
// authenticated user: create, read, append, rename, flag and delete.
package chat

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/chatvault/internal/domain"
	"github.com/heartmarshall/chatvault/internal/service/batch"
)

// chatRepo defines the chat store operations needed by the service.
type chatRepo interface {
	GetByID(ctx context.Context, userID, chatID uuid.UUID) (*domain.Chat, error)
	List(ctx context.Context, userID uuid.UUID, filter domain.ChatFilter) ([]domain.Chat, int, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Chat, error)
	Create(ctx context.Context, c *domain.Chat) (*domain.Chat, error)
	UpdateTitle(ctx context.Context, userID, chatID uuid.UUID, title string) (*domain.Chat, error)
	UpdateFlags(ctx context.Context, userID uuid.UUID, ids []uuid.UUID, update domain.ChatFlagUpdate) (int, error)
	Touch(ctx context.Context, chatID uuid.UUID, n int, at time.Time) error
	LockForUpdate(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) ([]domain.ChatRef, error)
	LockAllForUser(ctx context.Context, userID uuid.UUID) ([]domain.ChatRef, error)
	DeleteByIDs(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (int, error)
}

// messageRepo defines the message store operations needed by the service.
type messageRepo interface {
	Create(ctx context.Context, m *domain.Message) (*domain.Message, error)
	ListByChat(ctx context.Context, chatID uuid.UUID, limit, offset int) ([]domain.Message, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Message, error)
	DeleteByUser(ctx context.Context, userID uuid.UUID) (int, error)
}

// settingsRepo defines the settings store operations needed by the service.
type settingsRepo interface {
	GetByUser(ctx context.Context, userID uuid.UUID) (domain.UserRetentionSettings, error)
	Upsert(ctx context.Context, s domain.UserRetentionSettings) (domain.UserRetentionSettings, error)
}

// quotaChecker evaluates per-user ceilings inside a locked transaction.
type quotaChecker interface {
	CheckCreate(ctx context.Context, userID uuid.UUID) error
	CheckProtect(ctx context.Context, userID uuid.UUID, additional int) error
}

// batchEngine applies multi-chat mutations inside a caller's transaction.
type batchEngine interface {
	ApplyInTx(tx domain.Tx, userID uuid.UUID, op domain.BatchOperation, ids []uuid.UUID, value bool) (batch.Result, error)
	DeleteInTx(tx domain.Tx, userID uuid.UUID, ids []uuid.UUID) (batch.Result, error)
}

// auditRepo defines the audit store operations needed by the service.
type auditRepo interface {
	Log(ctx context.Context, record domain.AuditRecord) error
}

// txManager opens explicitly scoped transactions.
type txManager interface {
	Begin(ctx context.Context) (domain.Tx, error)
}

// Options tunes the service.
type Options struct {
	// DefaultTitle names chats created without a title.
	DefaultTitle string
	// DefaultPageSize applies to listings without an explicit limit.
	DefaultPageSize int
	// MaxPageSize caps listing limits.
	MaxPageSize int
}

func (o Options) withDefaults() Options {
	if o.DefaultTitle == "" {
		o.DefaultTitle = "New chat"
	}
	if o.DefaultPageSize <= 0 {
		o.DefaultPageSize = 20
	}
	if o.MaxPageSize <= 0 {
		o.MaxPageSize = 100
	}
	return o
}

// Service implements chat lifecycle operations.
type Service struct {
	log      *slog.Logger
	tx       txManager
	chats    chatRepo
	messages messageRepo
	settings settingsRepo
	quota    quotaChecker
	batch    batchEngine
	audit    auditRepo
	opts     Options
	now      func() time.Time
}

// NewService creates a new chat service instance.
func NewService(
	logger *slog.Logger,
	tx txManager,
	chats chatRepo,
	messages messageRepo,
	settings settingsRepo,
	quota quotaChecker,
	batch batchEngine,
	audit auditRepo,
	opts Options,
) *Service {
	return &Service{
		log:      logger.With("service", "chat"),
		tx:       tx,
		chats:    chats,
		messages: messages,
		settings: settings,
		quota:    quota,
		batch:    batch,
		audit:    audit,
		opts:     opts.withDefaults(),
		now:      time.Now,
	}
}
