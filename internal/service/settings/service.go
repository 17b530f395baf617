package settings

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/chatvault/internal/domain"
)

// settingsRepo defines the settings store operations needed by the service.
type settingsRepo interface {
	Ensure(ctx context.Context, userID uuid.UUID) (domain.UserRetentionSettings, error)
	Upsert(ctx context.Context, s domain.UserRetentionSettings) (domain.UserRetentionSettings, error)
}

// auditRepo defines the audit store operations needed by the service.
type auditRepo interface {
	Log(ctx context.Context, record domain.AuditRecord) error
}

// txManager defines the transaction manager interface needed by the service.
type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service implements retention settings read and update.
type Service struct {
	log      *slog.Logger
	settings settingsRepo
	audit    auditRepo
	tx       txManager
}

// NewService creates a new settings service instance.
func NewService(logger *slog.Logger, settings settingsRepo, audit auditRepo, tx txManager) *Service {
	return &Service{
		log:      logger.With("service", "settings"),
		settings: settings,
		audit:    audit,
		tx:       tx,
	}
}
