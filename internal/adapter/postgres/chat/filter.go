package chat

import (
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/heartmarshall/chatvault/internal/domain"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

type filter struct {
	favorite  *bool
	protected *bool
	status    *domain.ChatStatus
	search    string
	limit     int
	offset    int
}

// newFilter applies defaults and clamps values.
func newFilter(in domain.ChatFilter) filter {
	f := filter{
		favorite:  in.Favorite,
		protected: in.Protected,
		status:    in.Status,
		search:    strings.TrimSpace(in.Search),
		limit:     in.Limit,
		offset:    in.Offset,
	}
	if f.limit <= 0 {
		f.limit = defaultLimit
	}
	if f.limit > maxLimit {
		f.limit = maxLimit
	}
	if f.offset < 0 {
		f.offset = 0
	}
	return f
}

func (f filter) where(userID uuid.UUID) sq.And {
	conds := sq.And{sq.Expr("user_id = ?", userID)}
	if f.favorite != nil {
		conds = append(conds, sq.Eq{"is_favorite": *f.favorite})
	}
	if f.protected != nil {
		conds = append(conds, sq.Eq{"is_protected": *f.protected})
	}
	if f.status != nil {
		conds = append(conds, sq.Eq{"status": string(*f.status)})
	}
	if f.search != "" {
		conds = append(conds, sq.ILike{"title": "%" + escapeLike(f.search) + "%"})
	}
	return conds
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
