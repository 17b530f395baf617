package retention

import (
	"context"
	"sync"
)

var _ scheduledRunner = &scheduledRunnerMock{}

type scheduledRunnerMock struct {
	RunScheduledCleanupFunc func(ctx context.Context) (ScheduledResult, error)

	calls struct {
		RunScheduledCleanup []struct {
			Ctx context.Context
		}
	}
	lockRunScheduledCleanup sync.RWMutex
}

func (mock *scheduledRunnerMock) RunScheduledCleanup(ctx context.Context) (ScheduledResult, error) {
	if mock.RunScheduledCleanupFunc == nil {
		panic("scheduledRunnerMock.RunScheduledCleanupFunc: method is nil but scheduledRunner.RunScheduledCleanup was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{
		Ctx: ctx,
	}
	mock.lockRunScheduledCleanup.Lock()
	mock.calls.RunScheduledCleanup = append(mock.calls.RunScheduledCleanup, callInfo)
	mock.lockRunScheduledCleanup.Unlock()
	return mock.RunScheduledCleanupFunc(ctx)
}

func (mock *scheduledRunnerMock) RunScheduledCleanupCalls() []struct {
	Ctx context.Context
} {
	mock.lockRunScheduledCleanup.RLock()
	calls := mock.calls.RunScheduledCleanup
	mock.lockRunScheduledCleanup.RUnlock()
	return calls
}
