package quota

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/chatvault/internal/domain"
	"sync"
)

var _ settingsRepo = &settingsRepoMock{}

type settingsRepoMock struct {
	EnsureFunc func(ctx context.Context, userID uuid.UUID) (domain.UserRetentionSettings, error)

	calls struct {
		Ensure []struct {
			Ctx    context.Context
			UserID uuid.UUID
		}
	}
	lockEnsure sync.RWMutex
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
