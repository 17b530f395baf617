// Package user implements the user lookups needed by authentication and the
// operator CLI.
package user

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/chatvault/internal/adapter/postgres"
	"github.com/heartmarshall/chatvault/internal/domain"
)

// Repo provides user persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new user repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const userColumns = `id, email, username, role, status, created_at, updated_at`

const (
	getByIDSQL    = `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	getByEmailSQL = `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	createSQL = `
INSERT INTO users (id, email, username, role)
VALUES ($1, $2, $3, $4)
RETURNING ` + userColumns

	isActiveSQL = `SELECT status = 'active' FROM users WHERE id = $1`
)

// GetByID returns a user by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	u, err := scanUser(q.QueryRow(ctx, getByIDSQL, id))
	if err != nil {
		return nil, fmt.Errorf("user %s: %w", id, postgres.MapError(err))
	}
	return u, nil
}

// GetByEmail returns a user by email address.
func (r *Repo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	u, err := scanUser(q.QueryRow(ctx, getByEmailSQL, email))
	if err != nil {
		return nil, fmt.Errorf("user %q: %w", email, postgres.MapError(err))
	}
	return u, nil
}

// Create inserts a new user and returns the persisted domain.User.
func (r *Repo) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	role := u.Role
	if role == "" {
		role = "user"
	}

	created, err := scanUser(q.QueryRow(ctx, createSQL, u.ID, u.Email, u.Username, role))
	if err != nil {
		return nil, fmt.Errorf("user %s: %w", u.ID, postgres.MapError(err))
	}
	return created, nil
}

// IsActive reports whether the user is not banned or suspended.
// A missing user yields domain.ErrNotFound.
func (r *Repo) IsActive(ctx context.Context, id uuid.UUID) (bool, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var ok bool
	if err := q.QueryRow(ctx, isActiveSQL, id).Scan(&ok); err != nil {
		return false, fmt.Errorf("user %s: %w", id, postgres.MapError(err))
	}
	return ok, nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	if err := row.Scan(&u.ID, &u.Email, &u.Username, &u.Role, &u.Status, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}
