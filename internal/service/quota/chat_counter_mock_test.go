package quota

import (
	"context"
	"github.com/google/uuid"
	"sync"
)

var _ chatCounter = &chatCounterMock{}

type chatCounterMock struct {
	CountNonProtectedFunc func(ctx context.Context, userID uuid.UUID) (int, error)
	CountProtectedFunc    func(ctx context.Context, userID uuid.UUID) (int, error)

	calls struct {
		CountNonProtected []struct {
			Ctx    context.Context
			UserID uuid.UUID
		}
		CountProtected []struct {
			Ctx    context.Context
			UserID uuid.UUID
		}
	}
	lockCountNonProtected sync.RWMutex
	lockCountProtected    sync.RWMutex
}

func (mock *chatCounterMock) CountNonProtected(ctx context.Context, userID uuid.UUID) (int, error) {
	if mock.CountNonProtectedFunc == nil {
		panic("chatCounterMock.CountNonProtectedFunc: method is nil but chatCounter.CountNonProtected was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
	}{
		Ctx:    ctx,
		UserID: userID,
	}
	mock.lockCountNonProtected.Lock()
	mock.calls.CountNonProtected = append(mock.calls.CountNonProtected, callInfo)
	mock.lockCountNonProtected.Unlock()
	return mock.CountNonProtectedFunc(ctx, userID)
}

func (mock *chatCounterMock) CountNonProtectedCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
} {
	mock.lockCountNonProtected.RLock()
	calls := mock.calls.CountNonProtected
	mock.lockCountNonProtected.RUnlock()
	return calls
}

func (mock *chatCounterMock) CountProtected(ctx context.Context, userID uuid.UUID) (int, error) {
	if mock.CountProtectedFunc == nil {
		panic("chatCounterMock.CountProtectedFunc: method is nil but chatCounter.CountProtected was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
	}{
		Ctx:    ctx,
		UserID: userID,
	}
	mock.lockCountProtected.Lock()
	mock.calls.CountProtected = append(mock.calls.CountProtected, callInfo)
	mock.lockCountProtected.Unlock()
	return mock.CountProtectedFunc(ctx, userID)
}

func (mock *chatCounterMock) CountProtectedCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
} {
	mock.lockCountProtected.RLock()
	calls := mock.calls.CountProtected
	mock.lockCountProtected.RUnlock()
	return calls
}
