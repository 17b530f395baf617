package retention

import (
	"context"
	"github.com/google/uuid"
	"sync"
)

var _ messageCounter = &messageCounterMock{}

type messageCounterMock struct {
	CountByChatIDsFunc func(ctx context.Context, chatIDs []uuid.UUID) (int, error)

	calls struct {
		CountByChatIDs []struct {
			Ctx     context.Context
			ChatIDs []uuid.UUID
		}
	}
	lockCountByChatIDs sync.RWMutex
}

func (mock *messageCounterMock) CountByChatIDs(ctx context.Context, chatIDs []uuid.UUID) (int, error) {
	if mock.CountByChatIDsFunc == nil {
		panic("messageCounterMock.CountByChatIDsFunc: method is nil but messageCounter.CountByChatIDs was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		ChatIDs []uuid.UUID
	}{
		Ctx:     ctx,
		ChatIDs: chatIDs,
	}
	mock.lockCountByChatIDs.Lock()
	mock.calls.CountByChatIDs = append(mock.calls.CountByChatIDs, callInfo)
	mock.lockCountByChatIDs.Unlock()
	return mock.CountByChatIDsFunc(ctx, chatIDs)
}

func (mock *messageCounterMock) CountByChatIDsCalls() []struct {
	Ctx     context.Context
	ChatIDs []uuid.UUID
} {
	mock.lockCountByChatIDs.RLock()
	calls := mock.calls.CountByChatIDs
	mock.lockCountByChatIDs.RUnlock()
	return calls
}
