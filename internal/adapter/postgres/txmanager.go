package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/heartmarshall/chatvault/internal/domain"
)

const advisoryLockSQL = `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`

// beginner is satisfied by *pgxpool.Pool and by pgxmock pools.
type beginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// TxManager opens explicitly scoped transactions.
// Isolation level: Read Committed (PostgreSQL default). Paths that check a
// count and then write take a per-user advisory lock with Tx.Lock.
type TxManager struct {
	db beginner
}

// NewTxManager creates a new TxManager.
func NewTxManager(db beginner) *TxManager {
	return &TxManager{db: db}
}

// Begin starts a transaction. The returned Tx carries a context that is
// detached from the caller's cancellation, so once started the transaction
// always reaches commit or rollback on the server.
func (m *TxManager) Begin(ctx context.Context) (domain.Tx, error) {
	tx, err := m.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", MapError(err))
	}
	return &scopedTx{tx: tx, ctx: withTx(context.WithoutCancel(ctx), tx)}, nil
}

// RunInTx executes fn within a transaction.
// On success: commits. On error from fn: rolls back and returns the error.
// On panic from fn: rolls back and re-panics.
func (m *TxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	tx, err := m.Begin(ctx)
	if err != nil {
		return err
	}
	defer domain.FinishTx(tx, &err)

	return fn(tx.Context())
}

type scopedTx struct {
	tx  pgx.Tx
	ctx context.Context
}

func (t *scopedTx) Context() context.Context { return t.ctx }

func (t *scopedTx) Lock(key string) error {
	if _, err := t.tx.Exec(t.ctx, advisoryLockSQL, key); err != nil {
		return fmt.Errorf("advisory lock %q: %w", key, MapError(err))
	}
	return nil
}

func (t *scopedTx) Commit() error {
	if err := t.tx.Commit(t.ctx); err != nil {
		return MapError(err)
	}
	return nil
}

func (t *scopedTx) Rollback() error {
	if err := t.tx.Rollback(t.ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return err
	}
	return nil
}
