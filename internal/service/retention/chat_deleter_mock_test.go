package retention

import (
	"github.com/google/uuid"
	"github.com/heartmarshall/chatvault/internal/domain"
	"github.com/heartmarshall/chatvault/internal/service/batch"
	"sync"
)

var _ chatDeleter = &chatDeleterMock{}

type chatDeleterMock struct {
	DeleteInTxFunc func(tx domain.Tx, userID uuid.UUID, ids []uuid.UUID) (batch.Result, error)

	calls struct {
		DeleteInTx []struct {
			Tx     domain.Tx
			UserID uuid.UUID
			IDs    []uuid.UUID
		}
	}
	lockDeleteInTx sync.RWMutex
}

func (mock *chatDeleterMock) DeleteInTx(tx domain.Tx, userID uuid.UUID, ids []uuid.UUID) (batch.Result, error) {
	if mock.DeleteInTxFunc == nil {
		panic("chatDeleterMock.DeleteInTxFunc: method is nil but chatDeleter.DeleteInTx was just called")
	}
	callInfo := struct {
		Tx     domain.Tx
		UserID uuid.UUID
		IDs    []uuid.UUID
	}{
		Tx:     tx,
		UserID: userID,
		IDs:    ids,
	}
	mock.lockDeleteInTx.Lock()
	mock.calls.DeleteInTx = append(mock.calls.DeleteInTx, callInfo)
	mock.lockDeleteInTx.Unlock()
	return mock.DeleteInTxFunc(tx, userID, ids)
}

func (mock *chatDeleterMock) DeleteInTxCalls() []struct {
	Tx     domain.Tx
	UserID uuid.UUID
	IDs    []uuid.UUID
} {
	mock.lockDeleteInTx.RLock()
	calls := mock.calls.DeleteInTx
	mock.lockDeleteInTx.RUnlock()
	return calls
}
