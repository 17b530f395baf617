package chat

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/chatvault/internal/domain"
	"sync"
)

var _ settingsRepo = &settingsRepoMock{}

type settingsRepoMock struct {
	GetByUserFunc func(ctx context.Context, userID uuid.UUID) (domain.UserRetentionSettings, error)
	UpsertFunc    func(ctx context.Context, s domain.UserRetentionSettings) (domain.UserRetentionSettings, error)

	calls struct {
		GetByUser []struct {
			Ctx    context.Context
			UserID uuid.UUID
		}
		Upsert []struct {
			Ctx context.Context
			S   domain.UserRetentionSettings
		}
	}
	lockGetByUser sync.RWMutex
	lockUpsert    sync.RWMutex
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

func (mock *settingsRepoMock) Upsert(ctx context.Context, s domain.UserRetentionSettings) (domain.UserRetentionSettings, error) {
	if mock.UpsertFunc == nil {
		panic("settingsRepoMock.UpsertFunc: method is nil but settingsRepo.Upsert was just called")
	}
	callInfo := struct {
		Ctx context.Context
		S   domain.UserRetentionSettings
	}{
		Ctx: ctx,
		S:   s,
	}
	mock.lockUpsert.Lock()
	mock.calls.Upsert = append(mock.calls.Upsert, callInfo)
	mock.lockUpsert.Unlock()
	return mock.UpsertFunc(ctx, s)
}

func (mock *settingsRepoMock) UpsertCalls() []struct {
	Ctx context.Context
	S   domain.UserRetentionSettings
} {
	mock.lockUpsert.RLock()
	calls := mock.calls.Upsert
	mock.lockUpsert.RUnlock()
	return calls
}
