package chat

import (
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/heartmarshall/chatvault/internal/domain"
)

const (
	maxTitleLength   = 255
	maxContentLength = 32000
	maxMessagePage   = 200
	defaultMsgPage   = 50
)

// DeleteAllConfirmText must be echoed back to wipe an account's data.
const DeleteAllConfirmText = "DELETE ALL MY DATA"

// CreateChatInput holds parameters for creating a chat.
type CreateChatInput struct {
	Title  string
	AIType string
}

// Validate validates the create chat input.
func (i CreateChatInput) Validate() error {
	var errs []domain.FieldError

	if utf8.RuneCountInString(i.Title) > maxTitleLength {
		errs = append(errs, domain.FieldError{Field: "title", Message: "too long"})
	}
	if i.AIType != "" && !domain.IsKnownAIType(i.AIType) {
		errs = append(errs, domain.FieldError{Field: "ai_type", Message: "unknown ai type"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ListChatsInput holds parameters for listing chats.
type ListChatsInput struct {
	Favorite  *bool
	Protected *bool
	Status    *domain.ChatStatus
	Search    string
	Limit     int
	Offset    int
}

// Validate validates the list chats input.
func (i ListChatsInput) Validate() error {
	var errs []domain.FieldError

	if i.Limit < 0 {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "must not be negative"})
	}
	if i.Offset < 0 {
		errs = append(errs, domain.FieldError{Field: "offset", Message: "must not be negative"})
	}
	if i.Status != nil && !i.Status.IsValid() {
		errs = append(errs, domain.FieldError{Field: "status", Message: "must be active or archived"})
	}
	if utf8.RuneCountInString(i.Search) > maxTitleLength {
		errs = append(errs, domain.FieldError{Field: "search", Message: "too long"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// AppendMessageInput holds parameters for posting a message.
type AppendMessageInput struct {
	ChatID  uuid.UUID
	Content string
}

// Validate validates the append message input.
func (i AppendMessageInput) Validate() error {
	var errs []domain.FieldError

	if i.ChatID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "chat_id", Message: "required"})
	}
	if strings.TrimSpace(i.Content) == "" {
		errs = append(errs, domain.FieldError{Field: "content", Message: "required"})
	} else if utf8.RuneCountInString(i.Content) > maxContentLength {
		errs = append(errs, domain.FieldError{Field: "content", Message: "too long"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// BatchInput holds parameters for a batch operation.
type BatchInput struct {
	Operation domain.BatchOperation
	ChatIDs   []uuid.UUID
	// Value is the target flag for favorite and protect.
	Value bool
}

func validateTitle(title string) error {
	title = strings.TrimSpace(title)
	switch {
	case title == "":
		return domain.NewValidationError("title", "required")
	case utf8.RuneCountInString(title) > maxTitleLength:
		return domain.NewValidationError("title", "too long")
	}
	return nil
}
