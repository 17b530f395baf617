package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/chatvault/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedUser creates a user without a settings row.
func SeedUser(t *testing.T, pool *pgxpool.Pool) domain.User {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	u := domain.User{
		ID:       uuid.New(),
		Email:    "user-" + suffix + "@example.com",
		Username: "user-" + suffix,
		Role:     "user",
		Status:   "active",
	}

	err := pool.QueryRow(ctx,
		`INSERT INTO users (id, email, username) VALUES ($1, $2, $3)
		 RETURNING created_at, updated_at`,
		u.ID, u.Email, u.Username,
	).Scan(&u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		t.Fatalf("testhelper: SeedUser: %v", err)
	}
	return u
}

// SeedSettings inserts a settings row for userID.
func SeedSettings(t *testing.T, pool *pgxpool.Pool, s domain.UserRetentionSettings) domain.UserRetentionSettings {
	t.Helper()

	err := pool.QueryRow(context.Background(),
		`INSERT INTO user_settings (user_id, auto_cleanup_enabled, retention_days, max_chats, protected_chats)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING updated_at`,
		s.UserID, s.AutoCleanupEnabled, s.RetentionDays, s.MaxChats, s.ProtectedChats,
	).Scan(&s.UpdatedAt)
	if err != nil {
		t.Fatalf("testhelper: SeedSettings: %v", err)
	}
	return s
}

// ChatOpts customises SeedChat.
type ChatOpts struct {
	Title     string
	Age       time.Duration
	CreatedAt time.Time
	Protected bool
	Favorite  bool
	Messages  int
}

// SeedChat creates a chat for userID, optionally backdated and with messages.
func SeedChat(t *testing.T, pool *pgxpool.Pool, userID uuid.UUID, opts ChatOpts) domain.Chat {
	t.Helper()
	ctx := context.Background()

	createdAt := opts.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC().Add(-opts.Age)
	}
	title := opts.Title
	if title == "" {
		title = "chat-" + uniqueSuffix()
	}

	c := domain.Chat{
		ID:           uuid.New(),
		UserID:       userID,
		Title:        title,
		AIType:       domain.DefaultAIType,
		Status:       domain.ChatStatusActive,
		IsFavorite:   opts.Favorite,
		IsProtected:  opts.Protected,
		MessageCount: opts.Messages,
		CreatedAt:    createdAt,
		UpdatedAt:    createdAt,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO chats (id, user_id, title, is_favorite, is_protected, message_count, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $7)`,
		c.ID, c.UserID, c.Title, c.IsFavorite, c.IsProtected, c.MessageCount, createdAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedChat: %v", err)
	}

	for i := 0; i < opts.Messages; i++ {
		role := domain.MessageRoleUser
		if i%2 == 1 {
			role = domain.MessageRoleAssistant
		}
		_, err := pool.Exec(ctx,
			`INSERT INTO messages (chat_id, role, content, created_at) VALUES ($1, $2, $3, $4)`,
			c.ID, string(role), "message "+uniqueSuffix(), createdAt.Add(time.Duration(i)*time.Second),
		)
		if err != nil {
			t.Fatalf("testhelper: SeedChat message: %v", err)
		}
	}
	return c
}

// CountMessages returns how many messages reference chatID.
func CountMessages(t *testing.T, pool *pgxpool.Pool, chatID uuid.UUID) int {
	t.Helper()
	var n int
	if err := pool.QueryRow(context.Background(),
		`SELECT count(*) FROM messages WHERE chat_id = $1`, chatID,
	).Scan(&n); err != nil {
		t.Fatalf("testhelper: CountMessages: %v", err)
	}
	return n
}

// ChatExists reports whether a chat row exists.
func ChatExists(t *testing.T, pool *pgxpool.Pool, chatID uuid.UUID) bool {
	t.Helper()
	var exists bool
	if err := pool.QueryRow(context.Background(),
		`SELECT EXISTS(SELECT 1 FROM chats WHERE id = $1)`, chatID,
	).Scan(&exists); err != nil {
		t.Fatalf("testhelper: ChatExists: %v", err)
	}
	return exists
}
