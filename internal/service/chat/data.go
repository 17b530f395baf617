package chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/chatvault/internal/domain"
	"github.com/heartmarshall/chatvault/internal/service/batch"
	"github.com/heartmarshall/chatvault/pkg/ctxutil"
)

// BatchOperation applies a delete, favorite or protect to several chats at
// once. Either every chat is changed or none is.
func (s *Service) BatchOperation(ctx context.Context, input BatchInput) (res batch.Result, err error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return batch.Result{}, domain.ErrUnauthorized
	}

	tx, err := s.tx.Begin(ctx)
	if err != nil {
		return batch.Result{}, fmt.Errorf("chat.BatchOperation: %w", err)
	}
	defer domain.FinishTx(tx, &err)

	res, err = s.batch.ApplyInTx(tx, userID, input.Operation, input.ChatIDs, input.Value)
	if err != nil {
		return batch.Result{}, err
	}

	details := map[string]any{
		"operation":     string(input.Operation),
		"chatCount":     len(input.ChatIDs),
		"affectedCount": res.Affected,
	}
	if input.Operation != domain.BatchOperationDelete {
		details["value"] = input.Value
	}
	if err = s.writeAudit(tx.Context(), userID, domain.AuditActionBatch, details); err != nil {
		return batch.Result{}, fmt.Errorf("chat.BatchOperation: %w", err)
	}

	return res, nil
}

// DeleteAllResult reports what DeleteAllData removed.
type DeleteAllResult struct {
	DeletedChats    int
	DeletedMessages int
}

// DeleteAllData removes every chat and message of the authenticated user,
// protected chats included, and resets the settings to defaults.
// confirm must equal DeleteAllConfirmText.
func (s *Service) DeleteAllData(ctx context.Context, confirm string) (res DeleteAllResult, err error) {
	if confirm != DeleteAllConfirmText {
		return DeleteAllResult{}, domain.NewValidationError("confirm_text", fmt.Sprintf("must be exactly %q", DeleteAllConfirmText))
	}

	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return DeleteAllResult{}, domain.ErrUnauthorized
	}

	tx, err := s.tx.Begin(ctx)
	if err != nil {
		return DeleteAllResult{}, fmt.Errorf("chat.DeleteAllData: %w", err)
	}
	defer domain.FinishTx(tx, &err)

	txCtx := tx.Context()
	if err = tx.Lock(domain.UserLockKey(userID)); err != nil {
		return DeleteAllResult{}, fmt.Errorf("chat.DeleteAllData: lock user: %w", err)
	}

	refs, err := s.chats.LockAllForUser(txCtx, userID)
	if err != nil {
		return DeleteAllResult{}, fmt.Errorf("chat.DeleteAllData: %w", err)
	}

	res.DeletedMessages, err = s.messages.DeleteByUser(txCtx, userID)
	if err != nil {
		return DeleteAllResult{}, fmt.Errorf("chat.DeleteAllData: %w", err)
	}
	res.DeletedChats, err = s.chats.DeleteByIDs(txCtx, userID, domain.ChatIDs(refs))
	if err != nil {
		return DeleteAllResult{}, fmt.Errorf("chat.DeleteAllData: %w", err)
	}

	if _, err = s.settings.Upsert(txCtx, domain.DefaultRetentionSettings(userID)); err != nil {
		return DeleteAllResult{}, fmt.Errorf("chat.DeleteAllData: reset settings: %w", err)
	}

	if err = s.writeAudit(txCtx, userID, domain.AuditActionDeleteAll, map[string]any{
		"deletedChats":    res.DeletedChats,
		"deletedMessages": res.DeletedMessages,
	}); err != nil {
		return DeleteAllResult{}, fmt.Errorf("chat.DeleteAllData: %w", err)
	}

	s.log.WarnContext(ctx, "all user data deleted",
		slog.String("user_id", userID.String()),
		slog.Int("deleted_chats", res.DeletedChats),
		slog.Int("deleted_messages", res.DeletedMessages))

	return res, nil
}

// DataExport is a full copy of a user's chats, messages and retention
// settings.
type DataExport struct {
	UserID     uuid.UUID
	ExportedAt time.Time
	Settings   domain.UserRetentionSettings
	Chats      []domain.Chat
	Messages   []domain.Message
	Summary    ExportSummary
}

// ExportSummary counts what a DataExport contains.
type ExportSummary struct {
	TotalChats     int
	TotalMessages  int
	FavoriteChats  int
	ProtectedChats int
}

// ExportData returns every chat and message of the authenticated user with
// the current settings. A user without a settings record gets the defaults.
// Messages whose chat is not in the export are left out.
func (s *Service) ExportData(ctx context.Context) (DataExport, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return DataExport{}, domain.ErrUnauthorized
	}

	chats, err := s.chats.ListByUser(ctx, userID)
	if err != nil {
		return DataExport{}, fmt.Errorf("chat.ExportData: %w", err)
	}
	msgs, err := s.messages.ListByUser(ctx, userID)
	if err != nil {
		return DataExport{}, fmt.Errorf("chat.ExportData: %w", err)
	}
	settings, err := s.settings.GetByUser(ctx, userID)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		settings = domain.DefaultRetentionSettings(userID)
	case err != nil:
		return DataExport{}, fmt.Errorf("chat.ExportData: %w", err)
	}

	out := DataExport{
		UserID:     userID,
		ExportedAt: s.now().UTC(),
		Settings:   settings,
		Chats:      chats,
		Messages:   make([]domain.Message, 0, len(msgs)),
	}

	known := make(map[uuid.UUID]struct{}, len(chats))
	for _, c := range chats {
		known[c.ID] = struct{}{}
		if c.IsFavorite {
			out.Summary.FavoriteChats++
		}
		if c.IsProtected {
			out.Summary.ProtectedChats++
		}
	}
	for _, m := range msgs {
		if _, ok := known[m.ChatID]; ok {
			out.Messages = append(out.Messages, m)
		}
	}
	out.Summary.TotalChats = len(out.Chats)
	out.Summary.TotalMessages = len(out.Messages)

	if err := s.writeAudit(ctx, userID, domain.AuditActionExport, map[string]any{
		"totalChats":    out.Summary.TotalChats,
		"totalMessages": out.Summary.TotalMessages,
	}); err != nil {
		return DataExport{}, fmt.Errorf("chat.ExportData: %w", err)
	}

	s.log.InfoContext(ctx, "user data exported",
		slog.String("user_id", userID.String()),
		slog.Int("chats", out.Summary.TotalChats),
		slog.Int("messages", out.Summary.TotalMessages))

	return out, nil
}
