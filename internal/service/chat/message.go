package chat

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/chatvault/internal/domain"
	"github.com/heartmarshall/chatvault/pkg/ctxutil"
)

// AppendResult holds the stored user message and the generated reply.
type AppendResult struct {
	UserMessage      domain.Message
	AssistantMessage domain.Message
}

// GetMessages returns a page of a chat's messages in chronological order.
func (s *Service) GetMessages(ctx context.Context, chatID uuid.UUID, limit, offset int) ([]domain.Message, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if limit < 0 || offset < 0 {
		return nil, domain.NewValidationError("pagination", "limit and offset must not be negative")
	}
	if limit == 0 {
		limit = defaultMsgPage
	}
	limit = min(limit, maxMessagePage)

	if _, err := s.chats.GetByID(ctx, userID, chatID); err != nil {
		return nil, fmt.Errorf("chat.GetMessages: %w", err)
	}

	msgs, err := s.messages.ListByChat(ctx, chatID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("chat.GetMessages: %w", err)
	}
	return msgs, nil
}

// AppendMessage stores a user message and a generated assistant reply in
// one transaction and advances the chat's message counters.
func (s *Service) AppendMessage(ctx context.Context, input AppendMessageInput) (res AppendResult, err error) {
	if err := input.Validate(); err != nil {
		return AppendResult{}, err
	}

	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return AppendResult{}, domain.ErrUnauthorized
	}

	tx, err := s.tx.Begin(ctx)
	if err != nil {
		return AppendResult{}, fmt.Errorf("chat.AppendMessage: %w", err)
	}
	defer domain.FinishTx(tx, &err)

	txCtx := tx.Context()
	c, err := s.chats.GetByID(txCtx, userID, input.ChatID)
	if err != nil {
		return AppendResult{}, fmt.Errorf("chat.AppendMessage: %w", err)
	}

	now := s.now().UTC()
	userMsg, err := s.messages.Create(txCtx, &domain.Message{
		ID:        uuid.New(),
		ChatID:    c.ID,
		Role:      domain.MessageRoleUser,
		Content:   input.Content,
		CreatedAt: now,
	})
	if err != nil {
		return AppendResult{}, fmt.Errorf("chat.AppendMessage: user message: %w", err)
	}

	// The reply sorts after the user message even at equal clock readings.
	replyAt := now.Add(time.Microsecond)
	reply, err := s.messages.Create(txCtx, &domain.Message{
		ID:      uuid.New(),
		ChatID:  c.ID,
		Role:    domain.MessageRoleAssistant,
		Content: stubReply(c.AIType, input.Content),
		Metadata: map[string]any{
			"aiType":      c.AIType,
			"processedAt": replyAt.Format(time.RFC3339Nano),
		},
		CreatedAt: replyAt,
	})
	if err != nil {
		return AppendResult{}, fmt.Errorf("chat.AppendMessage: assistant message: %w", err)
	}

	if err = s.chats.Touch(txCtx, c.ID, 2, replyAt); err != nil {
		return AppendResult{}, fmt.Errorf("chat.AppendMessage: %w", err)
	}

	s.log.DebugContext(ctx, "message appended",
		slog.String("user_id", userID.String()),
		slog.String("chat_id", c.ID.String()),
		slog.Int("length", len(input.Content)))

	return AppendResult{UserMessage: *userMsg, AssistantMessage: *reply}, nil
}
