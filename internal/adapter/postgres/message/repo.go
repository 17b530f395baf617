// Package message implements the message store using PostgreSQL.
package message

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/chatvault/internal/adapter/postgres"
	"github.com/heartmarshall/chatvault/internal/domain"
)

// Repo provides message persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new message repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const (
	createSQL = `
INSERT INTO messages (id, chat_id, role, content, metadata, created_at)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id, chat_id, role, content, metadata, created_at`

	listByChatSQL = `
SELECT id, chat_id, role, content, metadata, created_at
FROM messages
WHERE chat_id = $1
ORDER BY created_at, id
LIMIT $2 OFFSET $3`

	listByUserSQL = `
SELECT m.id, m.chat_id, m.role, m.content, m.metadata, m.created_at
FROM messages m
JOIN chats c ON c.id = m.chat_id
WHERE c.user_id = $1
ORDER BY m.created_at, m.id`

	countByChatIDsSQL  = `SELECT count(*) FROM messages WHERE chat_id = ANY($1::uuid[])`
	deleteByChatIDsSQL = `DELETE FROM messages WHERE chat_id = ANY($1::uuid[])`

	deleteByUserSQL = `
DELETE FROM messages m
USING chats c
WHERE m.chat_id = c.id AND c.user_id = $1`
)

// Create inserts a message.
func (r *Repo) Create(ctx context.Context, m *domain.Message) (*domain.Message, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	meta := m.Metadata
	if meta == nil {
		meta = map[string]any{}
	}
	metaJSON, err := json.Marshal(meta)
	if err != nil {
		return nil, fmt.Errorf("message marshal metadata: %w", err)
	}

	created, err := scanMessage(q.QueryRow(ctx, createSQL,
		m.ID, m.ChatID, string(m.Role), m.Content, metaJSON, m.CreatedAt,
	))
	if err != nil {
		return nil, fmt.Errorf("message %s: %w", m.ID, postgres.MapError(err))
	}
	return created, nil
}

// ListByChat returns a page of messages in chronological order.
func (r *Repo) ListByChat(ctx context.Context, chatID uuid.UUID, limit, offset int) ([]domain.Message, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, listByChatSQL, chatID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", postgres.MapError(err))
	}

	return collectMessages(rows)
}

// ListByUser returns every message in every chat of a user, oldest first.
func (r *Repo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Message, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, listByUserSQL, userID)
	if err != nil {
		return nil, fmt.Errorf("list user messages: %w", postgres.MapError(err))
	}
	return collectMessages(rows)
}

// CountByChatIDs returns the number of messages belonging to the given chats.
func (r *Repo) CountByChatIDs(ctx context.Context, chatIDs []uuid.UUID) (int, error) {
	if len(chatIDs) == 0 {
		return 0, nil
	}
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var n int
	if err := q.QueryRow(ctx, countByChatIDsSQL, chatIDs).Scan(&n); err != nil {
		return 0, fmt.Errorf("count messages: %w", postgres.MapError(err))
	}
	return n, nil
}

// DeleteByChatIDs removes every message of the given chats and returns how
// many were deleted.
func (r *Repo) DeleteByChatIDs(ctx context.Context, chatIDs []uuid.UUID) (int, error) {
	if len(chatIDs) == 0 {
		return 0, nil
	}
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx, deleteByChatIDsSQL, chatIDs)
	if err != nil {
		return 0, fmt.Errorf("delete messages: %w", postgres.MapError(err))
	}
	return int(tag.RowsAffected()), nil
}

// DeleteByUser removes every message in every chat of a user.
func (r *Repo) DeleteByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx, deleteByUserSQL, userID)
	if err != nil {
		return 0, fmt.Errorf("delete user messages: %w", postgres.MapError(err))
	}
	return int(tag.RowsAffected()), nil
}

func collectMessages(rows pgx.Rows) ([]domain.Message, error) {
	msgs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Message, error) {
		m, err := scanMessage(row)
		if err != nil {
			return domain.Message{}, err
		}
		return *m, nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan messages: %w", postgres.MapError(err))
	}
	return msgs, nil
}

func scanMessage(row pgx.Row) (*domain.Message, error) {
	var (
		m        domain.Message
		role     string
		metaJSON []byte
	)
	if err := row.Scan(&m.ID, &m.ChatID, &role, &m.Content, &metaJSON, &m.CreatedAt); err != nil {
		return nil, err
	}
	m.Role = domain.MessageRole(role)
	if len(metaJSON) > 0 {
		if err := json.Unmarshal(metaJSON, &m.Metadata); err != nil {
			return nil, fmt.Errorf("unmarshal metadata: %w", err)
		}
	}
	return &m, nil
}
