package retention

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/chatvault/internal/domain"
)

// Cutoff returns the start of the UTC day containing now, minus days.
// Every evaluation on the same UTC day yields the same cutoff.
func Cutoff(now time.Time, days int) time.Time {
	y, m, d := now.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -days)
}

// ExpiredChats returns the ids of chats that are past the retention window
// at now. Protected chats are never returned.
func ExpiredChats(chats []domain.Chat, retentionDays int, now time.Time) []uuid.UUID {
	cutoff := Cutoff(now, retentionDays)
	var ids []uuid.UUID
	for _, c := range chats {
		if c.ExpiredAt(cutoff) {
			ids = append(ids, c.ID)
		}
	}
	return ids
}

// FindExpired returns the ids of userID's chats that are older than
// retentionDays. It reads only.
func (s *Service) FindExpired(ctx context.Context, userID uuid.UUID, retentionDays int) ([]uuid.UUID, error) {
	if retentionDays < domain.MinRetentionDays {
		return nil, domain.NewValidationError("retention_days", fmt.Sprintf("must be at least %d", domain.MinRetentionDays))
	}

	ids, err := s.chats.ListExpired(ctx, userID, Cutoff(s.now(), retentionDays))
	if err != nil {
		return nil, fmt.Errorf("list expired chats: %w", err)
	}
	return ids, nil
}
