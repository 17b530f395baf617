// Package chat implements the chat store using PostgreSQL.
// Fixed queries are raw SQL; filtered listings and flag updates are built
// with squirrel.
package chat

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/chatvault/internal/adapter/postgres"
	"github.com/heartmarshall/chatvault/internal/domain"
)

// Repo provides chat persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
	psql sq.StatementBuilderType
}

// New creates a new chat repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{
		pool: pool,
		psql: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

const chatColumns = `id, user_id, title, ai_type, status, is_favorite, is_protected,
       message_count, last_message_at, created_at, updated_at`

const (
	createSQL = `
INSERT INTO chats (id, user_id, title, ai_type, status, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $6)
RETURNING ` + chatColumns

	getByIDSQL = `SELECT ` + chatColumns + ` FROM chats WHERE id = $1 AND user_id = $2`

	listByUserSQL = `SELECT ` + chatColumns + ` FROM chats WHERE user_id = $1 ORDER BY created_at, id`

	listExpiredSQL = `
SELECT id FROM chats
WHERE user_id = $1 AND is_protected = false AND created_at < $2
ORDER BY created_at, id`

	countNonProtectedSQL = `SELECT count(*) FROM chats WHERE user_id = $1 AND is_protected = false`
	countProtectedSQL    = `SELECT count(*) FROM chats WHERE user_id = $1 AND is_protected = true`

	lockForUpdateSQL = `
SELECT id, is_favorite, is_protected FROM chats
WHERE user_id = $1 AND id = ANY($2::uuid[])
ORDER BY id
FOR UPDATE`

	lockAllForUserSQL = `
SELECT id, is_favorite, is_protected FROM chats
WHERE user_id = $1
ORDER BY id
FOR UPDATE`

	deleteByIDsSQL = `DELETE FROM chats WHERE user_id = $1 AND id = ANY($2::uuid[])`

	updateTitleSQL = `
UPDATE chats SET title = $3
WHERE id = $1 AND user_id = $2
RETURNING ` + chatColumns

	touchSQL = `
UPDATE chats
SET message_count = message_count + $2, last_message_at = $3
WHERE id = $1`
)

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a chat owned by userID.
// Returns domain.ErrNotFound if the chat does not exist or belongs to another user.
func (r *Repo) GetByID(ctx context.Context, userID, chatID uuid.UUID) (*domain.Chat, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	c, err := scanChat(q.QueryRow(ctx, getByIDSQL, chatID, userID))
	if err != nil {
		return nil, postgres.MapEntityError(err, "chat", chatID)
	}
	return c, nil
}

// ListByUser returns every chat of a user ordered by creation time.
func (r *Repo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Chat, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, listByUserSQL, userID)
	if err != nil {
		return nil, fmt.Errorf("list chats by user: %w", postgres.MapError(err))
	}
	return collectChats(rows)
}

// List returns a filtered page of chats and the total count matching the filter.
// Ordering: favorites first, then most recent activity.
func (r *Repo) List(ctx context.Context, userID uuid.UUID, filter domain.ChatFilter) ([]domain.Chat, int, error) {
	f := newFilter(filter)
	q := postgres.QuerierFromCtx(ctx, r.pool)

	where := f.where(userID)

	countSQL, countArgs, err := r.psql.Select("count(*)").From("chats").Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count chats: %w", err)
	}
	var total int
	if err := q.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count chats: %w", postgres.MapError(err))
	}

	listSQL, listArgs, err := r.psql.Select(chatColumns).
		From("chats").
		Where(where).
		OrderBy("is_favorite DESC", "COALESCE(last_message_at, created_at) DESC", "id").
		Limit(uint64(f.limit)).
		Offset(uint64(f.offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list chats: %w", err)
	}

	rows, err := q.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("list chats: %w", postgres.MapError(err))
	}
	chats, err := collectChats(rows)
	if err != nil {
		return nil, 0, err
	}
	return chats, total, nil
}

// ListExpired returns ids of unprotected chats created strictly before cutoff.
func (r *Repo) ListExpired(ctx context.Context, userID uuid.UUID, cutoff time.Time) ([]uuid.UUID, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, listExpiredSQL, userID, cutoff)
	if err != nil {
		return nil, fmt.Errorf("list expired chats: %w", postgres.MapError(err))
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
	if err != nil {
		return nil, fmt.Errorf("scan expired chats: %w", postgres.MapError(err))
	}
	return ids, nil
}

// CountNonProtected returns the number of unprotected chats of a user.
func (r *Repo) CountNonProtected(ctx context.Context, userID uuid.UUID) (int, error) {
	return r.count(ctx, countNonProtectedSQL, userID, "count unprotected chats")
}

// CountProtected returns the number of protected chats of a user.
func (r *Repo) CountProtected(ctx context.Context, userID uuid.UUID) (int, error) {
	return r.count(ctx, countProtectedSQL, userID, "count protected chats")
}

func (r *Repo) count(ctx context.Context, query string, userID uuid.UUID, op string) (int, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var n int
	if err := q.QueryRow(ctx, query, userID).Scan(&n); err != nil {
		return 0, fmt.Errorf("%s: %w", op, postgres.MapError(err))
	}
	return n, nil
}

// LockForUpdate row-locks the chats among ids owned by userID and returns them
// ordered by id. Ids not owned by the user are simply absent from the result.
// Must run inside a transaction for the lock to outlive the statement.
func (r *Repo) LockForUpdate(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) ([]domain.ChatRef, error) {
	if len(ids) == 0 {
		return []domain.ChatRef{}, nil
	}
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, lockForUpdateSQL, userID, ids)
	if err != nil {
		return nil, fmt.Errorf("lock chats: %w", postgres.MapError(err))
	}
	return collectRefs(rows)
}

// LockAllForUser row-locks every chat of a user.
func (r *Repo) LockAllForUser(ctx context.Context, userID uuid.UUID) ([]domain.ChatRef, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, lockAllForUserSQL, userID)
	if err != nil {
		return nil, fmt.Errorf("lock user chats: %w", postgres.MapError(err))
	}
	return collectRefs(rows)
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a new chat and returns the persisted row.
func (r *Repo) Create(ctx context.Context, c *domain.Chat) (*domain.Chat, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	status := c.Status
	if status == "" {
		status = domain.ChatStatusActive
	}
	aiType := c.AIType
	if aiType == "" {
		aiType = domain.DefaultAIType
	}

	created, err := scanChat(q.QueryRow(ctx, createSQL,
		c.ID, c.UserID, c.Title, aiType, string(status), c.CreatedAt,
	))
	if err != nil {
		return nil, postgres.MapEntityError(err, "chat", c.ID)
	}
	return created, nil
}

// UpdateTitle renames a chat owned by userID.
func (r *Repo) UpdateTitle(ctx context.Context, userID, chatID uuid.UUID, title string) (*domain.Chat, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	c, err := scanChat(q.QueryRow(ctx, updateTitleSQL, chatID, userID, title))
	if err != nil {
		return nil, postgres.MapEntityError(err, "chat", chatID)
	}
	return c, nil
}

// UpdateFlags applies update to the given chats of userID in one statement.
// Only rows whose value actually changes are written; the count of those rows
// is returned.
func (r *Repo) UpdateFlags(ctx context.Context, userID uuid.UUID, ids []uuid.UUID, update domain.ChatFlagUpdate) (int, error) {
	if len(ids) == 0 || (update.Favorite == nil && update.Protected == nil) {
		return 0, nil
	}

	b := r.psql.Update("chats").
		Where(sq.Expr("user_id = ?", userID)).
		Where(sq.Expr("id = ANY(?::uuid[])", ids))

	changed := sq.Or{}
	if update.Favorite != nil {
		b = b.Set("is_favorite", *update.Favorite)
		changed = append(changed, sq.Expr("is_favorite IS DISTINCT FROM ?", *update.Favorite))
	}
	if update.Protected != nil {
		b = b.Set("is_protected", *update.Protected)
		changed = append(changed, sq.Expr("is_protected IS DISTINCT FROM ?", *update.Protected))
	}

	query, args, err := b.Where(changed).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build update chat flags: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("update chat flags: %w", postgres.MapError(err))
	}
	return int(tag.RowsAffected()), nil
}

// Touch records n new messages at time at on a chat.
func (r *Repo) Touch(ctx context.Context, chatID uuid.UUID, n int, at time.Time) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx, touchSQL, chatID, n, at)
	if err != nil {
		return postgres.MapEntityError(err, "chat", chatID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("chat %s: %w", chatID, domain.ErrNotFound)
	}
	return nil
}

// DeleteByIDs removes chats of userID. Messages must already be gone or are
// removed by the foreign key cascade. Returns the number of deleted chats.
func (r *Repo) DeleteByIDs(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx, deleteByIDsSQL, userID, ids)
	if err != nil {
		return 0, fmt.Errorf("delete chats: %w", postgres.MapError(err))
	}
	return int(tag.RowsAffected()), nil
}

// ---------------------------------------------------------------------------
// Mapping helpers
// ---------------------------------------------------------------------------

func scanChat(row pgx.Row) (*domain.Chat, error) {
	var (
		c      domain.Chat
		status string
	)
	err := row.Scan(
		&c.ID, &c.UserID, &c.Title, &c.AIType, &status, &c.IsFavorite, &c.IsProtected,
		&c.MessageCount, &c.LastMessageAt, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	c.Status = domain.ChatStatus(status)
	return &c, nil
}

func collectChats(rows pgx.Rows) ([]domain.Chat, error) {
	defer rows.Close()

	chats := make([]domain.Chat, 0)
	for rows.Next() {
		c, err := scanChat(rows)
		if err != nil {
			return nil, fmt.Errorf("scan chat: %w", err)
		}
		chats = append(chats, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate chats: %w", postgres.MapError(err))
	}
	return chats, nil
}

func collectRefs(rows pgx.Rows) ([]domain.ChatRef, error) {
	refs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.ChatRef, error) {
		var ref domain.ChatRef
		err := row.Scan(&ref.ID, &ref.IsFavorite, &ref.IsProtected)
		return ref, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan chat refs: %w", postgres.MapError(err))
	}
	return refs, nil
}
