package chat

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/chatvault/internal/domain"
	"github.com/heartmarshall/chatvault/pkg/ctxutil"
)

// CreateChat creates a chat for the authenticated user if the max_chats
// ceiling allows it. The count and the insert run under the per-user lock.
func (s *Service) CreateChat(ctx context.Context, input CreateChatInput) (c *domain.Chat, err error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		title = s.opts.DefaultTitle
	}
	aiType := input.AIType
	if aiType == "" {
		aiType = domain.DefaultAIType
	}

	tx, err := s.tx.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("chat.CreateChat: %w", err)
	}
	defer domain.FinishTx(tx, &err)

	txCtx := tx.Context()
	if err = tx.Lock(domain.UserLockKey(userID)); err != nil {
		return nil, fmt.Errorf("chat.CreateChat: lock user: %w", err)
	}
	if err = s.quota.CheckCreate(txCtx, userID); err != nil {
		return nil, err
	}

	c, err = s.chats.Create(txCtx, &domain.Chat{
		ID:        uuid.New(),
		UserID:    userID,
		Title:     title,
		AIType:    aiType,
		Status:    domain.ChatStatusActive,
		CreatedAt: s.now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("chat.CreateChat: %w", err)
	}

	s.log.InfoContext(ctx, "chat created",
		slog.String("user_id", userID.String()),
		slog.String("chat_id", c.ID.String()),
		slog.String("ai_type", c.AIType))

	return c, nil
}

// ListChats returns a page of the authenticated user's chats and the total
// count matching the filter.
func (s *Service) ListChats(ctx context.Context, input ListChatsInput) ([]domain.Chat, int, error) {
	if err := input.Validate(); err != nil {
		return nil, 0, err
	}

	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, 0, domain.ErrUnauthorized
	}

	limit := input.Limit
	if limit == 0 {
		limit = s.opts.DefaultPageSize
	}
	limit = min(limit, s.opts.MaxPageSize)

	chats, total, err := s.chats.List(ctx, userID, domain.ChatFilter{
		Favorite:  input.Favorite,
		Protected: input.Protected,
		Status:    input.Status,
		Search:    strings.TrimSpace(input.Search),
		Limit:     limit,
		Offset:    input.Offset,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("chat.ListChats: %w", err)
	}
	return chats, total, nil
}

// GetChat returns one of the authenticated user's chats.
func (s *Service) GetChat(ctx context.Context, chatID uuid.UUID) (*domain.Chat, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	c, err := s.chats.GetByID(ctx, userID, chatID)
	if err != nil {
		return nil, fmt.Errorf("chat.GetChat: %w", err)
	}
	return c, nil
}

// RenameChat changes a chat's title.
func (s *Service) RenameChat(ctx context.Context, chatID uuid.UUID, title string) (*domain.Chat, error) {
	if err := validateTitle(title); err != nil {
		return nil, err
	}

	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	c, err := s.chats.UpdateTitle(ctx, userID, chatID, strings.TrimSpace(title))
	if err != nil {
		return nil, fmt.Errorf("chat.RenameChat: %w", err)
	}
	return c, nil
}

// DeleteChat deletes one chat and its messages. A protected chat is refused
// with a *domain.ProtectedChatConflictError.
func (s *Service) DeleteChat(ctx context.Context, chatID uuid.UUID) (err error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	tx, err := s.tx.Begin(ctx)
	if err != nil {
		return fmt.Errorf("chat.DeleteChat: %w", err)
	}
	defer domain.FinishTx(tx, &err)

	res, err := s.batch.DeleteInTx(tx, userID, []uuid.UUID{chatID})
	if err != nil {
		return fmt.Errorf("chat.DeleteChat: %w", err)
	}

	if err = s.writeAudit(tx.Context(), userID, domain.AuditActionChatDelete, map[string]any{
		"chatId":          chatID.String(),
		"deletedMessages": res.DeletedMessages,
	}); err != nil {
		return fmt.Errorf("chat.DeleteChat: %w", err)
	}

	s.log.InfoContext(ctx, "chat deleted",
		slog.String("user_id", userID.String()),
		slog.String("chat_id", chatID.String()))
	return nil
}

// ToggleFavorite flips the favorite flag of a chat and returns the new value.
func (s *Service) ToggleFavorite(ctx context.Context, chatID uuid.UUID) (bool, error) {
	return s.toggle(ctx, chatID, false)
}

// ToggleProtect flips the protected flag of a chat and returns the new
// value. Only the false to true transition is checked against the
// protected_chats ceiling.
func (s *Service) ToggleProtect(ctx context.Context, chatID uuid.UUID) (bool, error) {
	return s.toggle(ctx, chatID, true)
}

func (s *Service) toggle(ctx context.Context, chatID uuid.UUID, protect bool) (next bool, err error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return false, domain.ErrUnauthorized
	}

	tx, err := s.tx.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("chat.toggle: %w", err)
	}
	defer domain.FinishTx(tx, &err)

	txCtx := tx.Context()
	if err = tx.Lock(domain.UserLockKey(userID)); err != nil {
		return false, fmt.Errorf("chat.toggle: lock user: %w", err)
	}

	refs, err := s.chats.LockForUpdate(txCtx, userID, []uuid.UUID{chatID})
	if err != nil {
		return false, fmt.Errorf("chat.toggle: %w", err)
	}
	if len(refs) == 0 {
		return false, fmt.Errorf("chat %s: %w", chatID, domain.ErrNotFound)
	}

	var update domain.ChatFlagUpdate
	if protect {
		next = !refs[0].IsProtected
		if next {
			if err = s.quota.CheckProtect(txCtx, userID, 1); err != nil {
				return false, err
			}
		}
		update.Protected = &next
	} else {
		next = !refs[0].IsFavorite
		update.Favorite = &next
	}

	if _, err = s.chats.UpdateFlags(txCtx, userID, []uuid.UUID{chatID}, update); err != nil {
		return false, fmt.Errorf("chat.toggle: %w", err)
	}
	return next, nil
}

// writeAudit records an action together with the caller details in ctx.
func (s *Service) writeAudit(ctx context.Context, userID uuid.UUID, action domain.AuditAction, details map[string]any) error {
	client := ctxutil.ClientInfoFromCtx(ctx)
	if err := s.audit.Log(ctx, domain.AuditRecord{
		UserID:    userID,
		Action:    action,
		Details:   details,
		IPAddress: client.IP,
		UserAgent: client.UserAgent,
	}); err != nil {
		return fmt.Errorf("create audit record: %w", err)
	}
	return nil
}
