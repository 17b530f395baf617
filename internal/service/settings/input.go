package settings

import (
	"fmt"

	"github.com/heartmarshall/chatvault/internal/domain"
)

// UpdateSettingsInput holds parameters for a settings update.
// All fields are optional (nil = don't change).
type UpdateSettingsInput struct {
	AutoCleanupEnabled *bool
	RetentionDays      *int
	MaxChats           *int
	ProtectedChats     *int
}

// IsEmpty reports whether the input changes nothing.
func (i UpdateSettingsInput) IsEmpty() bool {
	return i.AutoCleanupEnabled == nil && i.RetentionDays == nil && i.MaxChats == nil && i.ProtectedChats == nil
}

// Validate validates the update settings input.
func (i UpdateSettingsInput) Validate() error {
	var errs []domain.FieldError

	if i.IsEmpty() {
		errs = append(errs, domain.FieldError{Field: "settings", Message: "no fields to update"})
	}
	if i.RetentionDays != nil {
		errs = appendRange(errs, "retention_days", *i.RetentionDays, domain.MinRetentionDays, domain.MaxRetentionDays)
	}
	if i.MaxChats != nil {
		errs = appendRange(errs, "max_chats", *i.MaxChats, domain.MinMaxChats, domain.MaxMaxChats)
	}
	if i.ProtectedChats != nil {
		errs = appendRange(errs, "protected_chats", *i.ProtectedChats, domain.MinProtectedChats, domain.MaxProtectedChats)
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

func appendRange(errs []domain.FieldError, field string, v, lo, hi int) []domain.FieldError {
	switch {
	case v < lo:
		return append(errs, domain.FieldError{Field: field, Message: fmt.Sprintf("must be at least %d", lo)})
	case v > hi:
		return append(errs, domain.FieldError{Field: field, Message: fmt.Sprintf("must be at most %d", hi)})
	}
	return errs
}
