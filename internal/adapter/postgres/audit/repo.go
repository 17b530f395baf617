// Package audit implements the system log repository using PostgreSQL.
// It provides append-only operations for audit records.
package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/chatvault/internal/adapter/postgres"
	"github.com/heartmarshall/chatvault/internal/domain"
)

// Repo provides audit log persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new audit repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const (
	createSQL = `
INSERT INTO system_logs (id, user_id, action, details, ip_address, user_agent, created_at)
VALUES ($1, $2, $3, $4, NULLIF($5, '')::inet, NULLIF($6, ''), $7)
RETURNING id, user_id, action, details, COALESCE(host(ip_address), ''), COALESCE(user_agent, ''), created_at`

	getByUserSQL = `
SELECT id, user_id, action, details, COALESCE(host(ip_address), ''), COALESCE(user_agent, ''), created_at
FROM system_logs
WHERE user_id = $1
ORDER BY created_at DESC, id
LIMIT $2 OFFSET $3`
)

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a new audit record and returns the persisted domain.AuditRecord.
func (r *Repo) Create(ctx context.Context, record domain.AuditRecord) (domain.AuditRecord, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}
	details := record.Details
	if details == nil {
		details = map[string]any{}
	}
	detailsJSON, err := json.Marshal(details)
	if err != nil {
		return domain.AuditRecord{}, fmt.Errorf("audit_record marshal details: %w", err)
	}

	saved, err := scanRecord(q.QueryRow(ctx, createSQL,
		record.ID, nullableUUID(record.UserID), string(record.Action), detailsJSON,
		record.IPAddress, record.UserAgent, record.CreatedAt,
	))
	if err != nil {
		return domain.AuditRecord{}, fmt.Errorf("audit_record %s: %w", record.ID, postgres.MapError(err))
	}
	return saved, nil
}

// Log creates an audit record without returning it.
// Satisfies the auditLogger interfaces of the services.
func (r *Repo) Log(ctx context.Context, record domain.AuditRecord) error {
	_, err := r.Create(ctx, record)
	return err
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByUser returns audit records for a user, newest first, with pagination.
func (r *Repo) GetByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.AuditRecord, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, getByUserSQL, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("get audit_records by user: %w", postgres.MapError(err))
	}

	records, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.AuditRecord, error) {
		return scanRecord(row)
	})
	if err != nil {
		return nil, fmt.Errorf("scan audit_records: %w", err)
	}
	return records, nil
}

// ---------------------------------------------------------------------------
// Mapping helpers
// ---------------------------------------------------------------------------

func scanRecord(row pgx.Row) (domain.AuditRecord, error) {
	var (
		rec         domain.AuditRecord
		userID      pgtype.UUID
		action      string
		detailsJSON []byte
	)
	err := row.Scan(&rec.ID, &userID, &action, &detailsJSON, &rec.IPAddress, &rec.UserAgent, &rec.CreatedAt)
	if err != nil {
		return domain.AuditRecord{}, err
	}

	if userID.Valid {
		rec.UserID = uuid.UUID(userID.Bytes)
	}
	rec.Action = domain.AuditAction(action)

	if len(detailsJSON) > 0 {
		details := make(map[string]any)
		if err := json.Unmarshal(detailsJSON, &details); err != nil {
			return domain.AuditRecord{}, fmt.Errorf("audit_record %s unmarshal details: %w", rec.ID, err)
		}
		rec.Details = details
	}
	return rec, nil
}

// nullableUUID converts uuid.Nil to SQL NULL.
func nullableUUID(id uuid.UUID) pgtype.UUID {
	if id == uuid.Nil {
		return pgtype.UUID{}
	}
	return pgtype.UUID{Bytes: id, Valid: true}
}
