package chat

import (
	"context"
	"github.com/google/uuid"
	"sync"
)

var _ quotaChecker = &quotaCheckerMock{}

type quotaCheckerMock struct {
	CheckCreateFunc  func(ctx context.Context, userID uuid.UUID) error
	CheckProtectFunc func(ctx context.Context, userID uuid.UUID, additional int) error

	calls struct {
		CheckCreate []struct {
			Ctx    context.Context
			UserID uuid.UUID
		}
		CheckProtect []struct {
			Ctx        context.Context
			UserID     uuid.UUID
			Additional int
		}
	}
	lockCheckCreate  sync.RWMutex
	lockCheckProtect sync.RWMutex
}

func (mock *quotaCheckerMock) CheckCreate(ctx context.Context, userID uuid.UUID) error {
	if mock.CheckCreateFunc == nil {
		panic("quotaCheckerMock.CheckCreateFunc: method is nil but quotaChecker.CheckCreate was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
	}{
		Ctx:    ctx,
		UserID: userID,
	}
	mock.lockCheckCreate.Lock()
	mock.calls.CheckCreate = append(mock.calls.CheckCreate, callInfo)
	mock.lockCheckCreate.Unlock()
	return mock.CheckCreateFunc(ctx, userID)
}

func (mock *quotaCheckerMock) CheckCreateCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
} {
	mock.lockCheckCreate.RLock()
	calls := mock.calls.CheckCreate
	mock.lockCheckCreate.RUnlock()
	return calls
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
