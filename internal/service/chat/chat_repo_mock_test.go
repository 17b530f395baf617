package chat

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/chatvault/internal/domain"
	"sync"
	"time"
)

var _ chatRepo = &chatRepoMock{}

type chatRepoMock struct {
	CreateFunc         func(ctx context.Context, c *domain.Chat) (*domain.Chat, error)
	DeleteByIDsFunc    func(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (int, error)
	GetByIDFunc        func(ctx context.Context, userID uuid.UUID, chatID uuid.UUID) (*domain.Chat, error)
	ListFunc           func(ctx context.Context, userID uuid.UUID, filter domain.ChatFilter) ([]domain.Chat, int, error)
	ListByUserFunc     func(ctx context.Context, userID uuid.UUID) ([]domain.Chat, error)
	LockAllForUserFunc func(ctx context.Context, userID uuid.UUID) ([]domain.ChatRef, error)
	LockForUpdateFunc  func(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) ([]domain.ChatRef, error)
	TouchFunc          func(ctx context.Context, chatID uuid.UUID, n int, at time.Time) error
	UpdateFlagsFunc    func(ctx context.Context, userID uuid.UUID, ids []uuid.UUID, update domain.ChatFlagUpdate) (int, error)
	UpdateTitleFunc    func(ctx context.Context, userID uuid.UUID, chatID uuid.UUID, title string) (*domain.Chat, error)

	calls struct {
		Create []struct {
			Ctx context.Context
			C   *domain.Chat
		}
		DeleteByIDs []struct {
			Ctx    context.Context
			UserID uuid.UUID
			IDs    []uuid.UUID
		}
		GetByID []struct {
			Ctx    context.Context
			UserID uuid.UUID
			ChatID uuid.UUID
		}
		List []struct {
			Ctx    context.Context
			UserID uuid.UUID
			Filter domain.ChatFilter
		}
		ListByUser []struct {
			Ctx    context.Context
			UserID uuid.UUID
		}
		LockAllForUser []struct {
			Ctx    context.Context
			UserID uuid.UUID
		}
		LockForUpdate []struct {
			Ctx    context.Context
			UserID uuid.UUID
			IDs    []uuid.UUID
		}
		Touch []struct {
			Ctx    context.Context
			ChatID uuid.UUID
			N      int
			At     time.Time
		}
		UpdateFlags []struct {
			Ctx    context.Context
			UserID uuid.UUID
			IDs    []uuid.UUID
			Update domain.ChatFlagUpdate
		}
		UpdateTitle []struct {
			Ctx    context.Context
			UserID uuid.UUID
			ChatID uuid.UUID
			Title  string
		}
	}
	lockCreate         sync.RWMutex
	lockDeleteByIDs    sync.RWMutex
	lockGetByID        sync.RWMutex
	lockList           sync.RWMutex
	lockListByUser     sync.RWMutex
	lockLockAllForUser sync.RWMutex
	lockLockForUpdate  sync.RWMutex
	lockTouch          sync.RWMutex
	lockUpdateFlags    sync.RWMutex
	lockUpdateTitle    sync.RWMutex
}

func (mock *chatRepoMock) Create(ctx context.Context, c *domain.Chat) (*domain.Chat, error) {
	if mock.CreateFunc == nil {
		panic("chatRepoMock.CreateFunc: method is nil but chatRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		C   *domain.Chat
	}{
		Ctx: ctx,
		C:   c,
	}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, c)
}

func (mock *chatRepoMock) CreateCalls() []struct {
	Ctx context.Context
	C   *domain.Chat
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
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

func (mock *chatRepoMock) GetByID(ctx context.Context, userID uuid.UUID, chatID uuid.UUID) (*domain.Chat, error) {
	if mock.GetByIDFunc == nil {
		panic("chatRepoMock.GetByIDFunc: method is nil but chatRepo.GetByID was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
		ChatID uuid.UUID
	}{
		Ctx:    ctx,
		UserID: userID,
		ChatID: chatID,
	}
	mock.lockGetByID.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, callInfo)
	mock.lockGetByID.Unlock()
	return mock.GetByIDFunc(ctx, userID, chatID)
}

func (mock *chatRepoMock) GetByIDCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
	ChatID uuid.UUID
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

func (mock *chatRepoMock) List(ctx context.Context, userID uuid.UUID, filter domain.ChatFilter) ([]domain.Chat, int, error) {
	if mock.ListFunc == nil {
		panic("chatRepoMock.ListFunc: method is nil but chatRepo.List was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
		Filter domain.ChatFilter
	}{
		Ctx:    ctx,
		UserID: userID,
		Filter: filter,
	}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx, userID, filter)
}

func (mock *chatRepoMock) ListCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
	Filter domain.ChatFilter
} {
	mock.lockList.RLock()
	calls := mock.calls.List
	mock.lockList.RUnlock()
	return calls
}

func (mock *chatRepoMock) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Chat, error) {
	if mock.ListByUserFunc == nil {
		panic("chatRepoMock.ListByUserFunc: method is nil but chatRepo.ListByUser was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
	}{
		Ctx:    ctx,
		UserID: userID,
	}
	mock.lockListByUser.Lock()
	mock.calls.ListByUser = append(mock.calls.ListByUser, callInfo)
	mock.lockListByUser.Unlock()
	return mock.ListByUserFunc(ctx, userID)
}

func (mock *chatRepoMock) ListByUserCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
} {
	mock.lockListByUser.RLock()
	calls := mock.calls.ListByUser
	mock.lockListByUser.RUnlock()
	return calls
}

func (mock *chatRepoMock) LockAllForUser(ctx context.Context, userID uuid.UUID) ([]domain.ChatRef, error) {
	if mock.LockAllForUserFunc == nil {
		panic("chatRepoMock.LockAllForUserFunc: method is nil but chatRepo.LockAllForUser was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
	}{
		Ctx:    ctx,
		UserID: userID,
	}
	mock.lockLockAllForUser.Lock()
	mock.calls.LockAllForUser = append(mock.calls.LockAllForUser, callInfo)
	mock.lockLockAllForUser.Unlock()
	return mock.LockAllForUserFunc(ctx, userID)
}

func (mock *chatRepoMock) LockAllForUserCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
} {
	mock.lockLockAllForUser.RLock()
	calls := mock.calls.LockAllForUser
	mock.lockLockAllForUser.RUnlock()
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

func (mock *chatRepoMock) Touch(ctx context.Context, chatID uuid.UUID, n int, at time.Time) error {
	if mock.TouchFunc == nil {
		panic("chatRepoMock.TouchFunc: method is nil but chatRepo.Touch was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		ChatID uuid.UUID
		N      int
		At     time.Time
	}{
		Ctx:    ctx,
		ChatID: chatID,
		N:      n,
		At:     at,
	}
	mock.lockTouch.Lock()
	mock.calls.Touch = append(mock.calls.Touch, callInfo)
	mock.lockTouch.Unlock()
	return mock.TouchFunc(ctx, chatID, n, at)
}

func (mock *chatRepoMock) TouchCalls() []struct {
	Ctx    context.Context
	ChatID uuid.UUID
	N      int
	At     time.Time
} {
	mock.lockTouch.RLock()
	calls := mock.calls.Touch
	mock.lockTouch.RUnlock()
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

func (mock *chatRepoMock) UpdateTitle(ctx context.Context, userID uuid.UUID, chatID uuid.UUID, title string) (*domain.Chat, error) {
	if mock.UpdateTitleFunc == nil {
		panic("chatRepoMock.UpdateTitleFunc: method is nil but chatRepo.UpdateTitle was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
		ChatID uuid.UUID
		Title  string
	}{
		Ctx:    ctx,
		UserID: userID,
		ChatID: chatID,
		Title:  title,
	}
	mock.lockUpdateTitle.Lock()
	mock.calls.UpdateTitle = append(mock.calls.UpdateTitle, callInfo)
	mock.lockUpdateTitle.Unlock()
	return mock.UpdateTitleFunc(ctx, userID, chatID, title)
}

func (mock *chatRepoMock) UpdateTitleCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
	ChatID uuid.UUID
	Title  string
} {
	mock.lockUpdateTitle.RLock()
	calls := mock.calls.UpdateTitle
	mock.lockUpdateTitle.RUnlock()
	return calls
}
