// Package settings implements the per-user retention settings store.
package settings

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/chatvault/internal/adapter/postgres"
	"github.com/heartmarshall/chatvault/internal/domain"
)

// Repo provides retention settings persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
	psql sq.StatementBuilderType
}

// New creates a new settings repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{
		pool: pool,
		psql: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

const settingsColumns = `user_id, auto_cleanup_enabled, retention_days, max_chats, protected_chats, updated_at`

const (
	getByUserSQL = `SELECT ` + settingsColumns + ` FROM user_settings WHERE user_id = $1`

	// ensureSQL leaves an existing row untouched; GetByUser reads it back.
	ensureSQL = `
INSERT INTO user_settings (user_id, auto_cleanup_enabled, retention_days, max_chats, protected_chats)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (user_id) DO NOTHING`

	listAutoCleanupUsersSQL = `
SELECT user_id
FROM user_settings
WHERE auto_cleanup_enabled = true
ORDER BY user_id`
)

// GetByUser returns the settings row for userID.
// Returns domain.ErrNotFound if the user has no settings yet.
func (r *Repo) GetByUser(ctx context.Context, userID uuid.UUID) (domain.UserRetentionSettings, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	s, err := scanSettings(q.QueryRow(ctx, getByUserSQL, userID))
	if err != nil {
		return domain.UserRetentionSettings{}, postgres.MapEntityError(err, "user_settings", userID)
	}
	return s, nil
}

// Ensure returns the settings row for userID, creating it with defaults first
// if absent. Safe under concurrent first access.
func (r *Repo) Ensure(ctx context.Context, userID uuid.UUID) (domain.UserRetentionSettings, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)
	d := domain.DefaultRetentionSettings(userID)

	if _, err := q.Exec(ctx, ensureSQL,
		d.UserID, d.AutoCleanupEnabled, d.RetentionDays, d.MaxChats, d.ProtectedChats,
	); err != nil {
		return domain.UserRetentionSettings{}, postgres.MapEntityError(err, "user_settings", userID)
	}
	return r.GetByUser(ctx, userID)
}

// Upsert writes all fields of s, creating the row if needed.
func (r *Repo) Upsert(ctx context.Context, s domain.UserRetentionSettings) (domain.UserRetentionSettings, error) {
	query, args, err := r.psql.Insert("user_settings").
		Columns("user_id", "auto_cleanup_enabled", "retention_days", "max_chats", "protected_chats").
		Values(s.UserID, s.AutoCleanupEnabled, s.RetentionDays, s.MaxChats, s.ProtectedChats).
		Suffix(`ON CONFLICT (user_id) DO UPDATE SET
			auto_cleanup_enabled = EXCLUDED.auto_cleanup_enabled,
			retention_days = EXCLUDED.retention_days,
			max_chats = EXCLUDED.max_chats,
			protected_chats = EXCLUDED.protected_chats,
			updated_at = now()
		RETURNING ` + settingsColumns).
		ToSql()
	if err != nil {
		return domain.UserRetentionSettings{}, fmt.Errorf("build upsert settings: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	saved, err := scanSettings(q.QueryRow(ctx, query, args...))
	if err != nil {
		return domain.UserRetentionSettings{}, postgres.MapEntityError(err, "user_settings", s.UserID)
	}
	return saved, nil
}

// ListAutoCleanupUsers returns ids of every user that opted in to scheduled
// cleanup, whatever the account status.
func (r *Repo) ListAutoCleanupUsers(ctx context.Context) ([]uuid.UUID, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, listAutoCleanupUsersSQL)
	if err != nil {
		return nil, fmt.Errorf("list auto-cleanup users: %w", postgres.MapError(err))
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
	if err != nil {
		return nil, fmt.Errorf("scan auto-cleanup users: %w", postgres.MapError(err))
	}
	return ids, nil
}

func scanSettings(row pgx.Row) (domain.UserRetentionSettings, error) {
	var s domain.UserRetentionSettings
	err := row.Scan(&s.UserID, &s.AutoCleanupEnabled, &s.RetentionDays, &s.MaxChats, &s.ProtectedChats, &s.UpdatedAt)
	return s, err
}
