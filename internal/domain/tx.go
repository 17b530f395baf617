package domain

import (
	"context"
	"errors"
	"fmt"
)

// Tx is an explicitly scoped store transaction.
//
// Context returns a context that routes store calls through the transaction.
// Every Tx must be finished with Commit or Rollback; FinishTx does that for a
// deferred call site.
type Tx interface {
	Context() context.Context
	// Lock takes a transaction-scoped exclusive lock on key. It is released
	// when the transaction ends.
	Lock(key string) error
	Commit() error
	Rollback() error
}

// UserLockKey is the lock key serializing quota and delete paths for one user.
func UserLockKey(userID fmt.Stringer) string {
	return "chat-user:" + userID.String()
}

// FinishTx commits tx when *errp is nil and rolls it back otherwise.
// A panic in the caller rolls back and is re-raised. Use it as
//
//	tx, err := txm.Begin(ctx)
//	if err != nil { return err }
//	defer domain.FinishTx(tx, &err)
func FinishTx(tx Tx, errp *error) {
	if p := recover(); p != nil {
		_ = tx.Rollback()
		panic(p)
	}
	if *errp != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			*errp = errors.Join(*errp, fmt.Errorf("rollback: %w", rbErr))
		}
		return
	}
	if err := tx.Commit(); err != nil {
		*errp = fmt.Errorf("commit transaction: %w", err)
	}
}
