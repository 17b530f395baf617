package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrValidation    = errors.New("validation error")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrConflict      = errors.New("conflict")

	ErrQuotaExceeded       = errors.New("quota exceeded")
	ErrProtectedChat       = errors.New("protected chat conflict")
	ErrPolicyInconsistency = errors.New("retention policy inconsistency")
	ErrStoreUnavailable    = errors.New("store unavailable")
)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

// NewValidationErrors creates a ValidationError from multiple field errors.
func NewValidationErrors(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}

// QuotaKind names the ceiling that rejected an operation.
type QuotaKind string

const (
	QuotaKindChats     QuotaKind = "max_chats"
	QuotaKindProtected QuotaKind = "protected_chats"
)

// QuotaExceededError reports a create or protect rejected by a per-user ceiling.
type QuotaExceededError struct {
	Kind    QuotaKind
	Limit   int
	Current int
	// Requested is the number of additional slots the operation needed.
	Requested int
}

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("quota exceeded: %s limit %d, current %d, requested %d",
		e.Kind, e.Limit, e.Current, e.Requested)
}

func (e *QuotaExceededError) Unwrap() error { return ErrQuotaExceeded }

// ProtectedChatConflictError is returned when a delete touches protected chats.
// No chat in the request is deleted.
type ProtectedChatConflictError struct {
	ChatIDs []uuid.UUID
}

func (e *ProtectedChatConflictError) Error() string {
	return fmt.Sprintf("protected chat conflict: %s", joinIDs(e.ChatIDs))
}

func (e *ProtectedChatConflictError) Unwrap() error { return ErrProtectedChat }

// ChatsNotFoundError is returned when some requested chats do not exist or
// belong to another user. Both cases are reported identically.
type ChatsNotFoundError struct {
	MissingIDs []uuid.UUID
}

func (e *ChatsNotFoundError) Error() string {
	return fmt.Sprintf("chats not found: %s", joinIDs(e.MissingIDs))
}

func (e *ChatsNotFoundError) Unwrap() error { return ErrNotFound }

func joinIDs(ids []uuid.UUID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = id.String()
	}
	return strings.Join(parts, ",")
}
