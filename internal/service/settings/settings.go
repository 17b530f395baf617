package settings

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/chatvault/internal/domain"
	"github.com/heartmarshall/chatvault/pkg/ctxutil"
)

// GetSettings returns the authenticated user's settings, creating the
// defaults on first access.
// Returns ErrUnauthorized if no userID is found in context.
func (s *Service) GetSettings(ctx context.Context) (domain.UserRetentionSettings, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.UserRetentionSettings{}, domain.ErrUnauthorized
	}

	settings, err := s.settings.Ensure(ctx, userID)
	if err != nil {
		return domain.UserRetentionSettings{}, fmt.Errorf("settings.GetSettings: %w", err)
	}

	return settings, nil
}

// UpdateSettings applies a partial update to the authenticated user's
// settings and records the changed fields in the system log.
// Lowering a limit below the current usage is allowed; it only blocks
// future creates and protects.
func (s *Service) UpdateSettings(ctx context.Context, input UpdateSettingsInput) (domain.UserRetentionSettings, error) {
	if err := input.Validate(); err != nil {
		return domain.UserRetentionSettings{}, err
	}

	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.UserRetentionSettings{}, domain.ErrUnauthorized
	}

	var updated domain.UserRetentionSettings

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		current, err := s.settings.Ensure(txCtx, userID)
		if err != nil {
			return fmt.Errorf("get current settings: %w", err)
		}

		next := applySettingsChanges(current, input)
		if err := next.Validate(); err != nil {
			return err
		}

		updated, err = s.settings.Upsert(txCtx, next)
		if err != nil {
			return fmt.Errorf("update settings: %w", err)
		}

		changes := buildSettingsChanges(current, next)
		if len(changes) == 0 {
			return nil
		}

		client := ctxutil.ClientInfoFromCtx(ctx)
		if err := s.audit.Log(txCtx, domain.AuditRecord{
			UserID:    userID,
			Action:    domain.AuditActionSettingsUpdate,
			Details:   map[string]any{"changes": changes},
			IPAddress: client.IP,
			UserAgent: client.UserAgent,
		}); err != nil {
			return fmt.Errorf("create audit record: %w", err)
		}
		return nil
	})
	if err != nil {
		return domain.UserRetentionSettings{}, fmt.Errorf("settings.UpdateSettings: %w", err)
	}

	s.log.InfoContext(ctx, "settings updated",
		slog.String("user_id", userID.String()),
		slog.Int("retention_days", updated.RetentionDays),
		slog.Bool("auto_cleanup", updated.AutoCleanupEnabled))

	return updated, nil
}

// applySettingsChanges merges the input changes into current settings.
func applySettingsChanges(current domain.UserRetentionSettings, input UpdateSettingsInput) domain.UserRetentionSettings {
	result := current

	if input.AutoCleanupEnabled != nil {
		result.AutoCleanupEnabled = *input.AutoCleanupEnabled
	}
	if input.RetentionDays != nil {
		result.RetentionDays = *input.RetentionDays
	}
	if input.MaxChats != nil {
		result.MaxChats = *input.MaxChats
	}
	if input.ProtectedChats != nil {
		result.ProtectedChats = *input.ProtectedChats
	}

	return result
}

// buildSettingsChanges creates a map of field changes for audit logging.
func buildSettingsChanges(old, new domain.UserRetentionSettings) map[string]any {
	changes := make(map[string]any)

	if old.AutoCleanupEnabled != new.AutoCleanupEnabled {
		changes["auto_cleanup_enabled"] = map[string]any{"old": old.AutoCleanupEnabled, "new": new.AutoCleanupEnabled}
	}
	if old.RetentionDays != new.RetentionDays {
		changes["retention_days"] = map[string]any{"old": old.RetentionDays, "new": new.RetentionDays}
	}
	if old.MaxChats != new.MaxChats {
		changes["max_chats"] = map[string]any{"old": old.MaxChats, "new": new.MaxChats}
	}
	if old.ProtectedChats != new.ProtectedChats {
		changes["protected_chats"] = map[string]any{"old": old.ProtectedChats, "new": new.ProtectedChats}
	}

	return changes
}
