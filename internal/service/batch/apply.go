package batch

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/chatvault/internal/domain"
	"github.com/heartmarshall/chatvault/internal/metrics"
)

// Apply runs op over ids for userID in its own transaction. value is the
// target flag for favorite and protect and is ignored for delete.
//
// Preconditions are checked before anything is written and a failing one
// rejects the whole batch:
//   - every id must belong to userID (*domain.ChatsNotFoundError),
//   - delete must not touch a protected chat (*domain.ProtectedChatConflictError),
//   - protect=true must fit protected_chats counting only chats not yet protected
//     (*domain.QuotaExceededError).
func (s *Service) Apply(ctx context.Context, userID uuid.UUID, op domain.BatchOperation, ids []uuid.UUID, value bool) (res Result, err error) {
	ids, err = s.normalize(op, ids)
	if err != nil {
		return Result{}, err
	}

	defer func() { s.record(op, res, err) }()

	tx, err := s.tx.Begin(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("batch.Apply: %w", err)
	}
	defer domain.FinishTx(tx, &err)

	res, err = s.applyLocked(tx, userID, op, ids, value)
	if err != nil {
		return Result{}, err
	}

	s.log.InfoContext(ctx, "batch applied",
		slog.String("user_id", userID.String()),
		slog.String("operation", string(op)),
		slog.Int("requested", len(ids)),
		slog.Int("affected", res.Affected),
		slog.Int("deleted_messages", res.DeletedMessages),
	)
	return res, nil
}

// ApplyInTx runs op inside a transaction owned by the caller. The caller
// commits or rolls back.
func (s *Service) ApplyInTx(tx domain.Tx, userID uuid.UUID, op domain.BatchOperation, ids []uuid.UUID, value bool) (res Result, err error) {
	ids, err = s.normalize(op, ids)
	if err != nil {
		return Result{}, err
	}
	defer func() { s.record(op, res, err) }()

	return s.applyLocked(tx, userID, op, ids, value)
}

func (s *Service) record(op domain.BatchOperation, res Result, err error) {
	outcome := metrics.OutcomeSuccess
	if err != nil {
		outcome = metrics.OutcomeError
	}
	s.metrics.RecordBatch(string(op), outcome, res.Affected)
}

// DeleteInTx deletes ids (messages first, then chats) inside the caller's
// transaction with the same preconditions as Apply. The batch size limit does
// not apply.
func (s *Service) DeleteInTx(tx domain.Tx, userID uuid.UUID, ids []uuid.UUID) (Result, error) {
	ids = dedupe(ids)
	if len(ids) == 0 {
		return Result{}, nil
	}
	return s.applyLocked(tx, userID, domain.BatchOperationDelete, ids, false)
}

func (s *Service) applyLocked(tx domain.Tx, userID uuid.UUID, op domain.BatchOperation, ids []uuid.UUID, value bool) (Result, error) {
	ctx := tx.Context()

	if err := tx.Lock(domain.UserLockKey(userID)); err != nil {
		return Result{}, fmt.Errorf("lock user: %w", err)
	}

	refs, err := s.chats.LockForUpdate(ctx, userID, ids)
	if err != nil {
		return Result{}, fmt.Errorf("lock chats: %w", err)
	}
	if missing := missingIDs(ids, refs); len(missing) > 0 {
		return Result{}, &domain.ChatsNotFoundError{MissingIDs: missing}
	}

	switch op {
	case domain.BatchOperationDelete:
		return s.deleteRefs(ctx, userID, refs)
	case domain.BatchOperationFavorite:
		n, err := s.chats.UpdateFlags(ctx, userID, ids, domain.ChatFlagUpdate{Favorite: &value})
		if err != nil {
			return Result{}, fmt.Errorf("update favorite: %w", err)
		}
		return Result{Affected: n}, nil
	case domain.BatchOperationProtect:
		if value {
			if err := s.quota.CheckProtect(ctx, userID, countUnprotected(refs)); err != nil {
				return Result{}, err
			}
		}
		n, err := s.chats.UpdateFlags(ctx, userID, ids, domain.ChatFlagUpdate{Protected: &value})
		if err != nil {
			return Result{}, fmt.Errorf("update protected: %w", err)
		}
		return Result{Affected: n}, nil
	}
	return Result{}, domain.NewValidationError("operation", "unsupported operation")
}

func (s *Service) deleteRefs(ctx context.Context, userID uuid.UUID, refs []domain.ChatRef) (Result, error) {
	var protected []uuid.UUID
	for _, r := range refs {
		if r.IsProtected {
			protected = append(protected, r.ID)
		}
	}
	if len(protected) > 0 {
		return Result{}, &domain.ProtectedChatConflictError{ChatIDs: protected}
	}

	ids := domain.ChatIDs(refs)

	deletedMessages, err := s.messages.DeleteByChatIDs(ctx, ids)
	if err != nil {
		return Result{}, fmt.Errorf("delete messages: %w", err)
	}
	deletedChats, err := s.chats.DeleteByIDs(ctx, userID, ids)
	if err != nil {
		return Result{}, fmt.Errorf("delete chats: %w", err)
	}

	return Result{Affected: deletedChats, DeletedMessages: deletedMessages}, nil
}

func (s *Service) normalize(op domain.BatchOperation, ids []uuid.UUID) ([]uuid.UUID, error) {
	var errs []domain.FieldError

	if !op.IsValid() {
		errs = append(errs, domain.FieldError{Field: "operation", Message: "must be one of delete, favorite, protect"})
	}

	ids = dedupe(ids)
	switch {
	case len(ids) == 0:
		errs = append(errs, domain.FieldError{Field: "chat_ids", Message: "required"})
	case len(ids) > s.maxBatchSize:
		errs = append(errs, domain.FieldError{Field: "chat_ids", Message: fmt.Sprintf("at most %d chats per batch", s.maxBatchSize)})
	}

	for _, id := range ids {
		if id == uuid.Nil {
			errs = append(errs, domain.FieldError{Field: "chat_ids", Message: "contains an empty id"})
			break
		}
	}

	if len(errs) > 0 {
		return nil, domain.NewValidationErrors(errs)
	}
	return ids, nil
}

// dedupe removes repeated ids keeping first-seen order.
func dedupe(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// missingIDs returns the ids that have no matching ref, in request order.
func missingIDs(ids []uuid.UUID, refs []domain.ChatRef) []uuid.UUID {
	found := make(map[uuid.UUID]struct{}, len(refs))
	for _, r := range refs {
		found[r.ID] = struct{}{}
	}
	var missing []uuid.UUID
	for _, id := range ids {
		if _, ok := found[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing
}

func countUnprotected(refs []domain.ChatRef) int {
	n := 0
	for _, r := range refs {
		if !r.IsProtected {
			n++
		}
	}
	return n
}
