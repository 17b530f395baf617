// Package quota enforces the per-user chat ceilings: max_chats for
// unprotected chats and protected_chats for protected ones.
package quota

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/chatvault/internal/domain"
	"github.com/heartmarshall/chatvault/internal/metrics"
)

// chatCounter defines the chat store counts needed by the enforcer.
type chatCounter interface {
	CountNonProtected(ctx context.Context, userID uuid.UUID) (int, error)
	CountProtected(ctx context.Context, userID uuid.UUID) (int, error)
}

// settingsRepo returns a user's settings, creating defaults on first access.
type settingsRepo interface {
	Ensure(ctx context.Context, userID uuid.UUID) (domain.UserRetentionSettings, error)
}

// Service evaluates create and protect operations against the user's ceilings.
//
// The Check* methods must run inside a transaction that already holds the
// user's lock (domain.UserLockKey); otherwise two concurrent callers may both
// pass the check. CanCreateChat and CanProtect are advisory reads.
type Service struct {
	log      *slog.Logger
	chats    chatCounter
	settings settingsRepo
	metrics  *metrics.Metrics
}

// NewService creates a new quota service.
func NewService(logger *slog.Logger, chats chatCounter, settings settingsRepo, m *metrics.Metrics) *Service {
	return &Service{
		log:      logger.With("service", "quota"),
		chats:    chats,
		settings: settings,
		metrics:  m,
	}
}

// Usage is a snapshot of a user's chat counts and ceilings.
type Usage struct {
	Chats        int
	MaxChats     int
	Protected    int
	MaxProtected int
}

// CanCreate reports whether one more unprotected chat fits.
func (u Usage) CanCreate() bool { return u.Chats < u.MaxChats }

// CanProtect reports whether one more chat may be protected.
func (u Usage) CanProtect() bool { return u.Protected < u.MaxProtected }
