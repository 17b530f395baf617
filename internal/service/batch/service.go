// Package batch applies delete, favorite and protect mutations to a set of
// chats as one all-or-nothing operation.
package batch

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/chatvault/internal/domain"
	"github.com/heartmarshall/chatvault/internal/metrics"
)

// DefaultMaxBatchSize bounds the number of chats accepted per request when
// the configured value is not positive.
const DefaultMaxBatchSize = 200

// chatRepo defines the chat store operations needed by the engine.
type chatRepo interface {
	LockForUpdate(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) ([]domain.ChatRef, error)
	UpdateFlags(ctx context.Context, userID uuid.UUID, ids []uuid.UUID, update domain.ChatFlagUpdate) (int, error)
	DeleteByIDs(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (int, error)
}

// messageRepo defines the message store operations needed by the engine.
type messageRepo interface {
	DeleteByChatIDs(ctx context.Context, chatIDs []uuid.UUID) (int, error)
}

// quotaChecker evaluates the protected-chat ceiling.
type quotaChecker interface {
	CheckProtect(ctx context.Context, userID uuid.UUID, additional int) error
}

// txManager opens explicitly scoped transactions.
type txManager interface {
	Begin(ctx context.Context) (domain.Tx, error)
}

// Service is the batch mutation engine.
type Service struct {
	log          *slog.Logger
	tx           txManager
	chats        chatRepo
	messages     messageRepo
	quota        quotaChecker
	metrics      *metrics.Metrics
	maxBatchSize int
}

// NewService creates a new batch mutation engine.
func NewService(
	logger *slog.Logger,
	tx txManager,
	chats chatRepo,
	messages messageRepo,
	quota quotaChecker,
	m *metrics.Metrics,
	maxBatchSize int,
) *Service {
	if maxBatchSize <= 0 {
		maxBatchSize = DefaultMaxBatchSize
	}
	return &Service{
		log:          logger.With("service", "batch"),
		tx:           tx,
		chats:        chats,
		messages:     messages,
		quota:        quota,
		metrics:      m,
		maxBatchSize: maxBatchSize,
	}
}

// Result reports what a batch changed.
type Result struct {
	// Affected is the number of chats actually changed (deleted, or whose
	// flag value flipped).
	Affected int
	// DeletedMessages is set for delete operations only.
	DeletedMessages int
}
