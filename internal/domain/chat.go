package domain

import (
	"time"

	"github.com/google/uuid"
)

// DefaultAIType is the ai_type assigned to chats created without one.
const DefaultAIType = "text_to_text"

// AI feature kinds a chat can be bound to.
const (
	AITypeTextToText   = "text_to_text"
	AITypeTextToImage  = "text_to_image"
	AITypeImageToText  = "image_to_text"
	AITypeVoiceToText  = "voice_to_text"
	AITypeTextToVoice  = "text_to_voice"
	AITypeFileAnalysis = "file_analysis"
)

// IsKnownAIType reports whether t is one of the AIType constants.
func IsKnownAIType(t string) bool {
	switch t {
	case AITypeTextToText, AITypeTextToImage, AITypeImageToText,
		AITypeVoiceToText, AITypeTextToVoice, AITypeFileAnalysis:
		return true
	}
	return false
}

// Chat is a conversation thread owned by a single user.
type Chat struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	Title         string
	AIType        string
	Status        ChatStatus
	IsFavorite    bool
	IsProtected   bool
	MessageCount  int
	LastMessageAt *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ExpiredAt reports whether the chat is past the retention cutoff.
// Protected chats never expire.
func (c Chat) ExpiredAt(cutoff time.Time) bool {
	return !c.IsProtected && c.CreatedAt.Before(cutoff)
}

// Message is a single entry in a chat.
type Message struct {
	ID        uuid.UUID
	ChatID    uuid.UUID
	Role      MessageRole
	Content   string
	Metadata  map[string]any
	CreatedAt time.Time
}

// ChatFilter narrows a chat listing.
type ChatFilter struct {
	Favorite  *bool
	Protected *bool
	Status    *ChatStatus
	Search    string
	Limit     int
	Offset    int
}

// ChatFlagUpdate sets chat flags. Nil fields are left unchanged.
type ChatFlagUpdate struct {
	Favorite  *bool
	Protected *bool
}

// ChatRef is the minimal projection used by the mutation paths.
type ChatRef struct {
	ID          uuid.UUID
	IsFavorite  bool
	IsProtected bool
}

// ChatIDs returns the ids of refs in order.
func ChatIDs(refs []ChatRef) []uuid.UUID {
	ids := make([]uuid.UUID, len(refs))
	for i, r := range refs {
		ids[i] = r.ID
	}
	return ids
}
