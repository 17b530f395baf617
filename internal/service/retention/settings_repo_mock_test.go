package retention

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/chatvault/internal/domain"
	"sync"
)

var _ settingsRepo = &settingsRepoMock{}

type settingsRepoMock struct {
	EnsureFunc               func(ctx context.Context, userID uuid.UUID) (domain.UserRetentionSettings, error)
	GetByUserFunc            func(ctx context.Context, userID uuid.UUID) (domain.UserRetentionSettings, error)
	ListAutoCleanupUsersFunc func(ctx context.Context) ([]uuid.UUID, error)

	calls struct {
		Ensure []struct {
			Ctx    context.Context
			UserID uuid.UUID
		}
		GetByUser []struct {
			Ctx    context.Context
			UserID uuid.UUID
		}
		ListAutoCleanupUsers []struct {
			Ctx context.Context
		}
	}
	lockEnsure               sync.RWMutex
	lockGetByUser            sync.RWMutex
	lockListAutoCleanupUsers sync.RWMutex
}

func (mock *settingsRepoMock) Ensure(ctx context.Context, userID uuid.UUID) (domain.UserRetentionSettings, error) {
	if mock.EnsureFunc == nil {
		panic("settingsRepoMock.EnsureFunc: method is nil but settingsRepo.Ensure was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
	}{
		Ctx:    ctx,
		UserID: userID,
	}
	mock.lockEnsure.Lock()
	mock.calls.Ensure = append(mock.calls.Ensure, callInfo)
	mock.lockEnsure.Unlock()
	return mock.EnsureFunc(ctx, userID)
}

func (mock *settingsRepoMock) EnsureCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
} {
	mock.lockEnsure.RLock()
	calls := mock.calls.Ensure
	mock.lockEnsure.RUnlock()
	return calls
}

func (mock *settingsRepoMock) GetByUser(ctx context.Context, userID uuid.UUID) (domain.UserRetentionSettings, error) {
	if mock.GetByUserFunc == nil {
		panic("settingsRepoMock.GetByUserFunc: method is nil but settingsRepo.GetByUser was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
	}{
		Ctx:    ctx,
		UserID: userID,
	}
	mock.lockGetByUser.Lock()
	mock.calls.GetByUser = append(mock.calls.GetByUser, callInfo)
	mock.lockGetByUser.Unlock()
	return mock.GetByUserFunc(ctx, userID)
}

func (mock *settingsRepoMock) GetByUserCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
} {
	mock.lockGetByUser.RLock()
	calls := mock.calls.GetByUser
	mock.lockGetByUser.RUnlock()
	return calls
}

func (mock *settingsRepoMock) ListAutoCleanupUsers(ctx context.Context) ([]uuid.UUID, error) {
	if mock.ListAutoCleanupUsersFunc == nil {
		panic("settingsRepoMock.ListAutoCleanupUsersFunc: method is nil but settingsRepo.ListAutoCleanupUsers was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{
		Ctx: ctx,
	}
	mock.lockListAutoCleanupUsers.Lock()
	mock.calls.ListAutoCleanupUsers = append(mock.calls.ListAutoCleanupUsers, callInfo)
	mock.lockListAutoCleanupUsers.Unlock()
	return mock.ListAutoCleanupUsersFunc(ctx)
}

func (mock *settingsRepoMock) ListAutoCleanupUsersCalls() []struct {
	Ctx context.Context
} {
	mock.lockListAutoCleanupUsers.RLock()
	calls := mock.calls.ListAutoCleanupUsers
	mock.lockListAutoCleanupUsers.RUnlock()
	return calls
}
