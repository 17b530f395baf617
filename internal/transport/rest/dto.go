package rest

import (
	"time"

	"github.com/heartmarshall/chatvault/internal/domain"
	"github.com/heartmarshall/chatvault/internal/service/chat"
	"github.com/heartmarshall/chatvault/internal/service/quota"
)

type chatResponse struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	AIType        string     `json:"aiType"`
	Status        string     `json:"status"`
	IsFavorite    bool       `json:"isFavorite"`
	IsProtected   bool       `json:"isProtected"`
	MessageCount  int        `json:"messageCount"`
	LastMessageAt *time.Time `json:"lastMessageAt,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

func toChatResponse(c *domain.Chat) chatResponse {
	return chatResponse{
		ID:            c.ID.String(),
		Title:         c.Title,
		AIType:        c.AIType,
		Status:        c.Status.String(),
		IsFavorite:    c.IsFavorite,
		IsProtected:   c.IsProtected,
		MessageCount:  c.MessageCount,
		LastMessageAt: c.LastMessageAt,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

type chatListResponse struct {
	Chats  []chatResponse `json:"chats"`
	Total  int            `json:"total"`
	Offset int            `json:"offset"`
}

type messageResponse struct {
	ID        string         `json:"id"`
	ChatID    string         `json:"chatId"`
	Role      string         `json:"role"`
	Content   string         `json:"content"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
}

func toMessageResponse(m *domain.Message) messageResponse {
	return messageResponse{
		ID:        m.ID.String(),
		ChatID:    m.ChatID.String(),
		Role:      m.Role.String(),
		Content:   m.Content,
		Metadata:  m.Metadata,
		CreatedAt: m.CreatedAt,
	}
}

type settingsResponse struct {
	AutoCleanupEnabled bool       `json:"autoCleanupEnabled"`
	RetentionDays      int        `json:"retentionDays"`
	MaxChats           int        `json:"maxChats"`
	ProtectedChats     int        `json:"protectedChats"`
	UpdatedAt          *time.Time `json:"updatedAt,omitempty"`
}

func toSettingsResponse(s domain.UserRetentionSettings) settingsResponse {
	resp := settingsResponse{
		AutoCleanupEnabled: s.AutoCleanupEnabled,
		RetentionDays:      s.RetentionDays,
		MaxChats:           s.MaxChats,
		ProtectedChats:     s.ProtectedChats,
	}
	if !s.UpdatedAt.IsZero() {
		t := s.UpdatedAt
		resp.UpdatedAt = &t
	}
	return resp
}

type quotaResponse struct {
	Chats         int  `json:"chats"`
	MaxChats      int  `json:"maxChats"`
	Protected     int  `json:"protectedChats"`
	MaxProtected  int  `json:"maxProtectedChats"`
	CanCreateChat bool `json:"canCreateChat"`
	CanProtect    bool `json:"canProtect"`
}

func toQuotaResponse(u quota.Usage) quotaResponse {
	return quotaResponse{
		Chats:         u.Chats,
		MaxChats:      u.MaxChats,
		Protected:     u.Protected,
		MaxProtected:  u.MaxProtected,
		CanCreateChat: u.CanCreate(),
		CanProtect:    u.CanProtect(),
	}
}

type exportSummary struct {
	TotalChats     int `json:"totalChats"`
	TotalMessages  int `json:"totalMessages"`
	FavoriteChats  int `json:"favoriteChats"`
	ProtectedChats int `json:"protectedChats"`
}

type exportResponse struct {
	ExportedAt time.Time         `json:"exportedAt"`
	UserID     string            `json:"userId"`
	Settings   settingsResponse  `json:"settings"`
	Chats      []chatResponse    `json:"chats"`
	Messages   []messageResponse `json:"messages"`
	Summary    exportSummary     `json:"summary"`
}

func toExportResponse(e chat.DataExport) exportResponse {
	resp := exportResponse{
		ExportedAt: e.ExportedAt,
		UserID:     e.UserID.String(),
		Settings:   toSettingsResponse(e.Settings),
		Chats:      make([]chatResponse, len(e.Chats)),
		Messages:   make([]messageResponse, len(e.Messages)),
		Summary: exportSummary{
			TotalChats:     e.Summary.TotalChats,
			TotalMessages:  e.Summary.TotalMessages,
			FavoriteChats:  e.Summary.FavoriteChats,
			ProtectedChats: e.Summary.ProtectedChats,
		},
	}
	for i := range e.Chats {
		resp.Chats[i] = toChatResponse(&e.Chats[i])
	}
	for i := range e.Messages {
		resp.Messages[i] = toMessageResponse(&e.Messages[i])
	}
	return resp
}
