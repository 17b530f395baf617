package quota

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/chatvault/internal/domain"
)

// CanCreateChat reports whether the user's unprotected chat count is strictly
// below max_chats.
func (s *Service) CanCreateChat(ctx context.Context, userID uuid.UUID) (bool, error) {
	settings, err := s.settings.Ensure(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("quota.CanCreateChat: %w", err)
	}
	current, err := s.chats.CountNonProtected(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("quota.CanCreateChat: %w", err)
	}
	return current < settings.MaxChats, nil
}

// CanProtect reports whether the user's protected chat count is strictly
// below protected_chats.
func (s *Service) CanProtect(ctx context.Context, userID uuid.UUID) (bool, error) {
	settings, err := s.settings.Ensure(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("quota.CanProtect: %w", err)
	}
	current, err := s.chats.CountProtected(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("quota.CanProtect: %w", err)
	}
	return current < settings.ProtectedChats, nil
}

// CheckCreate returns a *domain.QuotaExceededError if one more unprotected
// chat would exceed max_chats.
func (s *Service) CheckCreate(ctx context.Context, userID uuid.UUID) error {
	settings, err := s.settings.Ensure(ctx, userID)
	if err != nil {
		return fmt.Errorf("quota.CheckCreate: %w", err)
	}
	current, err := s.chats.CountNonProtected(ctx, userID)
	if err != nil {
		return fmt.Errorf("quota.CheckCreate: %w", err)
	}

	if current+1 > settings.MaxChats {
		return s.reject(ctx, userID, &domain.QuotaExceededError{
			Kind:      domain.QuotaKindChats,
			Limit:     settings.MaxChats,
			Current:   current,
			Requested: 1,
		})
	}
	return nil
}

// CheckProtect returns a *domain.QuotaExceededError if protecting additional
// more chats would exceed protected_chats. additional counts only chats that
// are not protected yet; zero always passes.
func (s *Service) CheckProtect(ctx context.Context, userID uuid.UUID, additional int) error {
	if additional <= 0 {
		return nil
	}

	settings, err := s.settings.Ensure(ctx, userID)
	if err != nil {
		return fmt.Errorf("quota.CheckProtect: %w", err)
	}
	current, err := s.chats.CountProtected(ctx, userID)
	if err != nil {
		return fmt.Errorf("quota.CheckProtect: %w", err)
	}

	if current+additional > settings.ProtectedChats {
		return s.reject(ctx, userID, &domain.QuotaExceededError{
			Kind:      domain.QuotaKindProtected,
			Limit:     settings.ProtectedChats,
			Current:   current,
			Requested: additional,
		})
	}
	return nil
}

// Usage returns the user's current counts and ceilings.
func (s *Service) Usage(ctx context.Context, userID uuid.UUID) (Usage, error) {
	settings, err := s.settings.Ensure(ctx, userID)
	if err != nil {
		return Usage{}, fmt.Errorf("quota.Usage: %w", err)
	}
	chats, err := s.chats.CountNonProtected(ctx, userID)
	if err != nil {
		return Usage{}, fmt.Errorf("quota.Usage: %w", err)
	}
	protected, err := s.chats.CountProtected(ctx, userID)
	if err != nil {
		return Usage{}, fmt.Errorf("quota.Usage: %w", err)
	}

	return Usage{
		Chats:        chats,
		MaxChats:     settings.MaxChats,
		Protected:    protected,
		MaxProtected: settings.ProtectedChats,
	}, nil
}

func (s *Service) reject(ctx context.Context, userID uuid.UUID, qe *domain.QuotaExceededError) error {
	s.metrics.RecordQuotaRejection(string(qe.Kind))
	s.log.InfoContext(ctx, "quota exceeded",
		slog.String("user_id", userID.String()),
		slog.String("kind", string(qe.Kind)),
		slog.Int("limit", qe.Limit),
		slog.Int("current", qe.Current),
		slog.Int("requested", qe.Requested),
	)
	return qe
}
