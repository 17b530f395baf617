package batch

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/chatvault/internal/domain"
	"sync"
)

var _ chatRepo = &chatRepoMock{}

type chatRepoMock struct {
	DeleteByIDsFunc   func(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (int, error)
	LockForUpdateFunc func(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) ([]domain.ChatRef, error)
	UpdateFlagsFunc   func(ctx context.Context, userID uuid.UUID, ids []uuid.UUID, update domain.ChatFlagUpdate) (int, error)

	calls struct {
		DeleteByIDs []struct {
			Ctx    context.Context
			UserID uuid.UUID
			IDs    []uuid.UUID
		}
		LockForUpdate []struct {
			Ctx    context.Context
			UserID uuid.UUID
			IDs    []uuid.UUID
		}
		UpdateFlags []struct {
			Ctx    context.Context
			UserID uuid.UUID
			IDs    []uuid.UUID
			Update domain.ChatFlagUpdate
		}
	}
	lockDeleteByIDs   sync.RWMutex
	lockLockForUpdate sync.RWMutex
	lockUpdateFlags   sync.RWMutex
}

func (mock *chatRepoMock) DeleteByIDs(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (int, error) {
	if mock.DeleteByIDsFunc == nil {
		panic("chatRepoMock.DeleteByIDsFunc: method is nil but chatRepo.DeleteByIDs was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
		IDs    []uuid.UUID
	}{
		Ctx:    ctx,
		UserID: userID,
		IDs:    ids,
	}
	mock.lockDeleteByIDs.Lock()
	mock.calls.DeleteByIDs = append(mock.calls.DeleteByIDs, callInfo)
	mock.lockDeleteByIDs.Unlock()
	return mock.DeleteByIDsFunc(ctx, userID, ids)
}

func (mock *chatRepoMock) DeleteByIDsCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
	IDs    []uuid.UUID
} {
	mock.lockDeleteByIDs.RLock()
	calls := mock.calls.DeleteByIDs
	mock.lockDeleteByIDs.RUnlock()
	return calls
}

func (mock *chatRepoMock) LockForUpdate(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) ([]domain.ChatRef, error) {
	if mock.LockForUpdateFunc == nil {
		panic("chatRepoMock.LockForUpdateFunc: method is nil but chatRepo.LockForUpdate was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
		IDs    []uuid.UUID
	}{
		Ctx:    ctx,
		UserID: userID,
		IDs:    ids,
	}
	mock.lockLockForUpdate.Lock()
	mock.calls.LockForUpdate = append(mock.calls.LockForUpdate, callInfo)
	mock.lockLockForUpdate.Unlock()
	return mock.LockForUpdateFunc(ctx, userID, ids)
}

func (mock *chatRepoMock) LockForUpdateCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
	IDs    []uuid.UUID
} {
	mock.lockLockForUpdate.RLock()
	calls := mock.calls.LockForUpdate
	mock.lockLockForUpdate.RUnlock()
	return calls
}

func (mock *chatRepoMock) UpdateFlags(ctx context.Context, userID uuid.UUID, ids []uuid.UUID, update domain.ChatFlagUpdate) (int, error) {
	if mock.UpdateFlagsFunc == nil {
		panic("chatRepoMock.UpdateFlagsFunc: method is nil but chatRepo.UpdateFlags was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
		IDs    []uuid.UUID
		Update domain.ChatFlagUpdate
	}{
		Ctx:    ctx,
		UserID: userID,
		IDs:    ids,
		Update: update,
	}
	mock.lockUpdateFlags.Lock()
	mock.calls.UpdateFlags = append(mock.calls.UpdateFlags, callInfo)
	mock.lockUpdateFlags.Unlock()
	return mock.UpdateFlagsFunc(ctx, userID, ids, update)
}

func (mock *chatRepoMock) UpdateFlagsCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
	IDs    []uuid.UUID
	Update domain.ChatFlagUpdate
} {
	mock.lockUpdateFlags.RLock()
	calls := mock.calls.UpdateFlags
	mock.lockUpdateFlags.RUnlock()
	return calls
}
