package batch

import (
	"context"
	"github.com/google/uuid"
	"sync"
)

var _ messageRepo = &messageRepoMock{}

type messageRepoMock struct {
	DeleteByChatIDsFunc func(ctx context.Context, chatIDs []uuid.UUID) (int, error)

	calls struct {
		DeleteByChatIDs []struct {
			Ctx     context.Context
			ChatIDs []uuid.UUID
		}
	}
	lockDeleteByChatIDs sync.RWMutex
}

func (mock *messageRepoMock) DeleteByChatIDs(ctx context.Context, chatIDs []uuid.UUID) (int, error) {
	if mock.DeleteByChatIDsFunc == nil {
		panic("messageRepoMock.DeleteByChatIDsFunc: method is nil but messageRepo.DeleteByChatIDs was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		ChatIDs []uuid.UUID
	}{
		Ctx:     ctx,
		ChatIDs: chatIDs,
	}
	mock.lockDeleteByChatIDs.Lock()
	mock.calls.DeleteByChatIDs = append(mock.calls.DeleteByChatIDs, callInfo)
	mock.lockDeleteByChatIDs.Unlock()
	return mock.DeleteByChatIDsFunc(ctx, chatIDs)
}

func (mock *messageRepoMock) DeleteByChatIDsCalls() []struct {
	Ctx     context.Context
	ChatIDs []uuid.UUID
} {
	mock.lockDeleteByChatIDs.RLock()
	calls := mock.calls.DeleteByChatIDs
	mock.lockDeleteByChatIDs.RUnlock()
	return calls
}
