package batch

import (
	"context"
	"github.com/google/uuid"
	"sync"
)

var _ quotaChecker = &quotaCheckerMock{}

type quotaCheckerMock struct {
	CheckProtectFunc func(ctx context.Context, userID uuid.UUID, additional int) error

	calls struct {
		CheckProtect []struct {
			Ctx        context.Context
			UserID     uuid.UUID
			Additional int
		}
	}
	lockCheckProtect sync.RWMutex
}

func (mock *quotaCheckerMock) CheckProtect(ctx context.Context, userID uuid.UUID, additional int) error {
	if mock.CheckProtectFunc == nil {
		panic("quotaCheckerMock.CheckProtectFunc: method is nil but quotaChecker.CheckProtect was just called")
	}
	callInfo := struct {
		Ctx        context.Context
		UserID     uuid.UUID
		Additional int
	}{
		Ctx:        ctx,
		UserID:     userID,
		Additional: additional,
	}
	mock.lockCheckProtect.Lock()
	mock.calls.CheckProtect = append(mock.calls.CheckProtect, callInfo)
	mock.lockCheckProtect.Unlock()
	return mock.CheckProtectFunc(ctx, userID, additional)
}

func (mock *quotaCheckerMock) CheckProtectCalls() []struct {
	Ctx        context.Context
	UserID     uuid.UUID
	Additional int
} {
	mock.lockCheckProtect.RLock()
	calls := mock.calls.CheckProtect
	mock.lockCheckProtect.RUnlock()
	return calls
}
