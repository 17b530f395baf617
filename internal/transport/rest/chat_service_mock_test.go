package rest

import (
	"context"
	"github.com/google/uuid"
	"sync"
	"github.com/heartmarshall/chatvault/internal/domain"
	"github.com/heartmarshall/chatvault/internal/service/chat"
	"github.com/heartmarshall/chatvault/internal/service/batch"
)

var _ chatService = &chatServiceMock{}

type chatServiceMock struct {
	CreateChatFunc     func(ctx context.Context, input chat.CreateChatInput) (*domain.Chat, error)
	ListChatsFunc      func(ctx context.Context, input chat.ListChatsInput) ([]domain.Chat, int, error)
	GetChatFunc        func(ctx context.Context, chatID uuid.UUID) (*domain.Chat, error)
	RenameChatFunc     func(ctx context.Context, chatID uuid.UUID, title string) (*domain.Chat, error)
	DeleteChatFunc     func(ctx context.Context, chatID uuid.UUID) error
	ToggleFavoriteFunc func(ctx context.Context, chatID uuid.UUID) (bool, error)
	ToggleProtectFunc  func(ctx context.Context, chatID uuid.UUID) (bool, error)
	GetMessagesFunc    func(ctx context.Context, chatID uuid.UUID, limit int, offset int) ([]domain.Message, error)
	AppendMessageFunc  func(ctx context.Context, input chat.AppendMessageInput) (chat.AppendResult, error)
	BatchOperationFunc func(ctx context.Context, input chat.BatchInput) (batch.Result, error)

	calls struct {
		CreateChat []struct {
			Ctx   context.Context
			Input chat.CreateChatInput
		}
		ListChats []struct {
			Ctx   context.Context
			Input chat.ListChatsInput
		}
		GetChat []struct {
			Ctx    context.Context
			ChatID uuid.UUID
		}
		RenameChat []struct {
			Ctx    context.Context
			ChatID uuid.UUID
			Title  string
		}
		DeleteChat []struct {
			Ctx    context.Context
			ChatID uuid.UUID
		}
		ToggleFavorite []struct {
			Ctx    context.Context
			ChatID uuid.UUID
		}
		ToggleProtect []struct {
			Ctx    context.Context
			ChatID uuid.UUID
		}
		GetMessages []struct {
			Ctx    context.Context
			ChatID uuid.UUID
			Limit  int
			Offset int
		}
		AppendMessage []struct {
			Ctx   context.Context
			Input chat.AppendMessageInput
		}
		BatchOperation []struct {
			Ctx   context.Context
			Input chat.BatchInput
		}
	}
	lockCreateChat     sync.RWMutex
	lockListChats      sync.RWMutex
	lockGetChat        sync.RWMutex
	lockRenameChat     sync.RWMutex
	lockDeleteChat     sync.RWMutex
	lockToggleFavorite sync.RWMutex
	lockToggleProtect  sync.RWMutex
	lockGetMessages    sync.RWMutex
	lockAppendMessage  sync.RWMutex
	lockBatchOperation sync.RWMutex
}

func (mock *chatServiceMock) CreateChat(ctx context.Context, input chat.CreateChatInput) (*domain.Chat, error) {
	if mock.CreateChatFunc == nil {
		panic("chatServiceMock.CreateChatFunc: method is nil but chatService.CreateChat was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input chat.CreateChatInput
	}{
		Ctx:   ctx,
		Input: input,
	}
	mock.lockCreateChat.Lock()
	mock.calls.CreateChat = append(mock.calls.CreateChat, callInfo)
	mock.lockCreateChat.Unlock()
	return mock.CreateChatFunc(ctx, input)
}

func (mock *chatServiceMock) CreateChatCalls() []struct {
	Ctx   context.Context
	Input chat.CreateChatInput
} {
	mock.lockCreateChat.RLock()
	calls := mock.calls.CreateChat
	mock.lockCreateChat.RUnlock()
	return calls
}

func (mock *chatServiceMock) ListChats(ctx context.Context, input chat.ListChatsInput) ([]domain.Chat, int, error) {
	if mock.ListChatsFunc == nil {
		panic("chatServiceMock.ListChatsFunc: method is nil but chatService.ListChats was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input chat.ListChatsInput
	}{
		Ctx:   ctx,
		Input: input,
	}
	mock.lockListChats.Lock()
	mock.calls.ListChats = append(mock.calls.ListChats, callInfo)
	mock.lockListChats.Unlock()
	return mock.ListChatsFunc(ctx, input)
}

func (mock *chatServiceMock) ListChatsCalls() []struct {
	Ctx   context.Context
	Input chat.ListChatsInput
} {
	mock.lockListChats.RLock()
	calls := mock.calls.ListChats
	mock.lockListChats.RUnlock()
	return calls
}

func (mock *chatServiceMock) GetChat(ctx context.Context, chatID uuid.UUID) (*domain.Chat, error) {
	if mock.GetChatFunc == nil {
		panic("chatServiceMock.GetChatFunc: method is nil but chatService.GetChat was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		ChatID uuid.UUID
	}{
		Ctx:    ctx,
		ChatID: chatID,
	}
	mock.lockGetChat.Lock()
	mock.calls.GetChat = append(mock.calls.GetChat, callInfo)
	mock.lockGetChat.Unlock()
	return mock.GetChatFunc(ctx, chatID)
}

func (mock *chatServiceMock) GetChatCalls() []struct {
	Ctx    context.Context
	ChatID uuid.UUID
} {
	mock.lockGetChat.RLock()
	calls := mock.calls.GetChat
	mock.lockGetChat.RUnlock()
	return calls
}

func (mock *chatServiceMock) RenameChat(ctx context.Context, chatID uuid.UUID, title string) (*domain.Chat, error) {
	if mock.RenameChatFunc == nil {
		panic("chatServiceMock.RenameChatFunc: method is nil but chatService.RenameChat was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		ChatID uuid.UUID
		Title  string
	}{
		Ctx:    ctx,
		ChatID: chatID,
		Title:  title,
	}
	mock.lockRenameChat.Lock()
	mock.calls.RenameChat = append(mock.calls.RenameChat, callInfo)
	mock.lockRenameChat.Unlock()
	return mock.RenameChatFunc(ctx, chatID, title)
}

func (mock *chatServiceMock) RenameChatCalls() []struct {
	Ctx    context.Context
	ChatID uuid.UUID
	Title  string
} {
	mock.lockRenameChat.RLock()
	calls := mock.calls.RenameChat
	mock.lockRenameChat.RUnlock()
	return calls
}

func (mock *chatServiceMock) DeleteChat(ctx context.Context, chatID uuid.UUID) error {
	if mock.DeleteChatFunc == nil {
		panic("chatServiceMock.DeleteChatFunc: method is nil but chatService.DeleteChat was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		ChatID uuid.UUID
	}{
		Ctx:    ctx,
		ChatID: chatID,
	}
	mock.lockDeleteChat.Lock()
	mock.calls.DeleteChat = append(mock.calls.DeleteChat, callInfo)
	mock.lockDeleteChat.Unlock()
	return mock.DeleteChatFunc(ctx, chatID)
}

func (mock *chatServiceMock) DeleteChatCalls() []struct {
	Ctx    context.Context
	ChatID uuid.UUID
} {
	mock.lockDeleteChat.RLock()
	calls := mock.calls.DeleteChat
	mock.lockDeleteChat.RUnlock()
	return calls
}

func (mock *chatServiceMock) ToggleFavorite(ctx context.Context, chatID uuid.UUID) (bool, error) {
	if mock.ToggleFavoriteFunc == nil {
		panic("chatServiceMock.ToggleFavoriteFunc: method is nil but chatService.ToggleFavorite was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		ChatID uuid.UUID
	}{
		Ctx:    ctx,
		ChatID: chatID,
	}
	mock.lockToggleFavorite.Lock()
	mock.calls.ToggleFavorite = append(mock.calls.ToggleFavorite, callInfo)
	mock.lockToggleFavorite.Unlock()
	return mock.ToggleFavoriteFunc(ctx, chatID)
}

func (mock *chatServiceMock) ToggleFavoriteCalls() []struct {
	Ctx    context.Context
	ChatID uuid.UUID
} {
	mock.lockToggleFavorite.RLock()
	calls := mock.calls.ToggleFavorite
	mock.lockToggleFavorite.RUnlock()
	return calls
}

func (mock *chatServiceMock) ToggleProtect(ctx context.Context, chatID uuid.UUID) (bool, error) {
	if mock.ToggleProtectFunc == nil {
		panic("chatServiceMock.ToggleProtectFunc: method is nil but chatService.ToggleProtect was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		ChatID uuid.UUID
	}{
		Ctx:    ctx,
		ChatID: chatID,
	}
	mock.lockToggleProtect.Lock()
	mock.calls.ToggleProtect = append(mock.calls.ToggleProtect, callInfo)
	mock.lockToggleProtect.Unlock()
	return mock.ToggleProtectFunc(ctx, chatID)
}

func (mock *chatServiceMock) ToggleProtectCalls() []struct {
	Ctx    context.Context
	ChatID uuid.UUID
} {
	mock.lockToggleProtect.RLock()
	calls := mock.calls.ToggleProtect
	mock.lockToggleProtect.RUnlock()
	return calls
}

func (mock *chatServiceMock) GetMessages(ctx context.Context, chatID uuid.UUID, limit int, offset int) ([]domain.Message, error) {
	if mock.GetMessagesFunc == nil {
		panic("chatServiceMock.GetMessagesFunc: method is nil but chatService.GetMessages was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		ChatID uuid.UUID
		Limit  int
		Offset int
	}{
		Ctx:    ctx,
		ChatID: chatID,
		Limit:  limit,
		Offset: offset,
	}
	mock.lockGetMessages.Lock()
	mock.calls.GetMessages = append(mock.calls.GetMessages, callInfo)
	mock.lockGetMessages.Unlock()
	return mock.GetMessagesFunc(ctx, chatID, limit, offset)
}

func (mock *chatServiceMock) GetMessagesCalls() []struct {
	Ctx    context.Context
	ChatID uuid.UUID
	Limit  int
	Offset int
} {
	mock.lockGetMessages.RLock()
	calls := mock.calls.GetMessages
	mock.lockGetMessages.RUnlock()
	return calls
}

func (mock *chatServiceMock) AppendMessage(ctx context.Context, input chat.AppendMessageInput) (chat.AppendResult, error) {
	if mock.AppendMessageFunc == nil {
		panic("chatServiceMock.AppendMessageFunc: method is nil but chatService.AppendMessage was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input chat.AppendMessageInput
	}{
		Ctx:   ctx,
		Input: input,
	}
	mock.lockAppendMessage.Lock()
	mock.calls.AppendMessage = append(mock.calls.AppendMessage, callInfo)
	mock.lockAppendMessage.Unlock()
	return mock.AppendMessageFunc(ctx, input)
}

func (mock *chatServiceMock) AppendMessageCalls() []struct {
	Ctx   context.Context
	Input chat.AppendMessageInput
} {
	mock.lockAppendMessage.RLock()
	calls := mock.calls.AppendMessage
	mock.lockAppendMessage.RUnlock()
	return calls
}

func (mock *chatServiceMock) BatchOperation(ctx context.Context, input chat.BatchInput) (batch.Result, error) {
	if mock.BatchOperationFunc == nil {
		panic("chatServiceMock.BatchOperationFunc: method is nil but chatService.BatchOperation was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input chat.BatchInput
	}{
		Ctx:   ctx,
		Input: input,
	}
	mock.lockBatchOperation.Lock()
	mock.calls.BatchOperation = append(mock.calls.BatchOperation, callInfo)
	mock.lockBatchOperation.Unlock()
	return mock.BatchOperationFunc(ctx, input)
}

func (mock *chatServiceMock) BatchOperationCalls() []struct {
	Ctx   context.Context
	Input chat.BatchInput
} {
	mock.lockBatchOperation.RLock()
	calls := mock.calls.BatchOperation
	mock.lockBatchOperation.RUnlock()
	return calls
}
