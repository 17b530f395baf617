package domain

import (
	"time"

	"github.com/google/uuid"
)

// User represents an account that owns chats.
type User struct {
	ID        uuid.UUID
	Email     string
	Username  string
	Role      string
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Default retention settings applied when a user has no settings row.
const (
	DefaultRetentionDays  = 30
	DefaultMaxChats       = 100
	DefaultProtectedChats = 10
)

// Bounds accepted for retention settings.
const (
	MinRetentionDays  = 1
	MaxRetentionDays  = 365
	MinMaxChats       = 1
	MaxMaxChats       = 10000
	MinProtectedChats = 0
	MaxProtectedChats = 1000
)

// UserRetentionSettings holds per-user retention and quota configuration.
type UserRetentionSettings struct {
	UserID             uuid.UUID
	AutoCleanupEnabled bool
	RetentionDays      int
	MaxChats           int
	ProtectedChats     int
	UpdatedAt          time.Time
}

// DefaultRetentionSettings returns the settings a user gets on first access.
func DefaultRetentionSettings(userID uuid.UUID) UserRetentionSettings {
	return UserRetentionSettings{
		UserID:             userID,
		AutoCleanupEnabled: false,
		RetentionDays:      DefaultRetentionDays,
		MaxChats:           DefaultMaxChats,
		ProtectedChats:     DefaultProtectedChats,
	}
}

// Validate checks the settings against the accepted bounds.
func (s UserRetentionSettings) Validate() error {
	var errs []FieldError

	if s.RetentionDays < MinRetentionDays || s.RetentionDays > MaxRetentionDays {
		errs = append(errs, FieldError{Field: "retention_days", Message: "must be between 1 and 365"})
	}
	if s.MaxChats < MinMaxChats || s.MaxChats > MaxMaxChats {
		errs = append(errs, FieldError{Field: "max_chats", Message: "must be between 1 and 10000"})
	}
	if s.ProtectedChats < MinProtectedChats || s.ProtectedChats > MaxProtectedChats {
		errs = append(errs, FieldError{Field: "protected_chats", Message: "must be between 0 and 1000"})
	}

	if len(errs) > 0 {
		return NewValidationErrors(errs)
	}
	return nil
}
