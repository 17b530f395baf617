package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/chatvault/internal/domain"
	"github.com/heartmarshall/chatvault/internal/service/batch"
	"github.com/heartmarshall/chatvault/internal/service/chat"
)

type chatService interface {
	CreateChat(ctx context.Context, input chat.CreateChatInput) (*domain.Chat, error)
	ListChats(ctx context.Context, input chat.ListChatsInput) ([]domain.Chat, int, error)
	GetChat(ctx context.Context, chatID uuid.UUID) (*domain.Chat, error)
	RenameChat(ctx context.Context, chatID uuid.UUID, title string) (*domain.Chat, error)
	DeleteChat(ctx context.Context, chatID uuid.UUID) error
	ToggleFavorite(ctx context.Context, chatID uuid.UUID) (bool, error)
	ToggleProtect(ctx context.Context, chatID uuid.UUID) (bool, error)
	GetMessages(ctx context.Context, chatID uuid.UUID, limit, offset int) ([]domain.Message, error)
	AppendMessage(ctx context.Context, input chat.AppendMessageInput) (chat.AppendResult, error)
	BatchOperation(ctx context.Context, input chat.BatchInput) (batch.Result, error)
}

// ChatHandler serves /api/chats.
type ChatHandler struct {
	svc chatService
	log *slog.Logger
}

// NewChatHandler creates a ChatHandler.
func NewChatHandler(svc chatService, logger *slog.Logger) *ChatHandler {
	return &ChatHandler{svc: svc, log: logger.With("handler", "chat")}
}

type createChatRequest struct {
	Title  string `json:"title"`
	AIType string `json:"aiType"`
}

type renameChatRequest struct {
	Title string `json:"title"`
}

type appendMessageRequest struct {
	Content string `json:"content"`
}

type batchRequest struct {
	Operation string   `json:"operation"`
	ChatIDs   []string `json:"chatIds"`
	Value     *bool    `json:"value"`
}

type batchResponse struct {
	Operation       string `json:"operation"`
	AffectedCount   int    `json:"affectedCount"`
	DeletedMessages int    `json:"deletedMessages,omitempty"`
}

// Create handles POST /api/chats.
func (h *ChatHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createChatRequest
	if r.ContentLength != 0 {
		if err := decodeJSON(r, &req); err != nil {
			handleError(h.log, w, r, err)
			return
		}
	}

	c, err := h.svc.CreateChat(r.Context(), chat.CreateChatInput{Title: req.Title, AIType: req.AIType})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toChatResponse(c))
}

// List handles GET /api/chats?favorite=&protected=&status=&search=&limit=&offset=.
func (h *ChatHandler) List(w http.ResponseWriter, r *http.Request) {
	input, err := parseListChats(r)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	chats, total, err := h.svc.ListChats(r.Context(), input)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	resp := chatListResponse{Chats: make([]chatResponse, len(chats)), Total: total, Offset: input.Offset}
	for i := range chats {
		resp.Chats[i] = toChatResponse(&chats[i])
	}
	writeJSON(w, http.StatusOK, resp)
}

func parseListChats(r *http.Request) (chat.ListChatsInput, error) {
	var (
		input chat.ListChatsInput
		err   error
	)
	if input.Favorite, err = queryBool(r, "favorite"); err != nil {
		return input, err
	}
	if input.Protected, err = queryBool(r, "protected"); err != nil {
		return input, err
	}
	if v := r.URL.Query().Get("status"); v != "" {
		status := domain.ChatStatus(v)
		input.Status = &status
	}
	input.Search = r.URL.Query().Get("search")
	if input.Limit, err = queryInt(r, "limit", 0); err != nil {
		return input, err
	}
	if input.Offset, err = queryInt(r, "offset", 0); err != nil {
		return input, err
	}
	return input, nil
}

// Get handles GET /api/chats/{id}.
func (h *ChatHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	c, err := h.svc.GetChat(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toChatResponse(c))
}

// Rename handles PATCH /api/chats/{id}.
func (h *ChatHandler) Rename(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	var req renameChatRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	c, err := h.svc.RenameChat(r.Context(), id, req.Title)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toChatResponse(c))
}

// Delete handles DELETE /api/chats/{id}.
func (h *ChatHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	if err := h.svc.DeleteChat(r.Context(), id); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ToggleFavorite handles POST /api/chats/{id}/favorite.
func (h *ChatHandler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, "isFavorite", h.svc.ToggleFavorite)
}

// ToggleProtect handles POST /api/chats/{id}/protect.
func (h *ChatHandler) ToggleProtect(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, "isProtected", h.svc.ToggleProtect)
}

func (h *ChatHandler) toggle(w http.ResponseWriter, r *http.Request, field string, fn func(context.Context, uuid.UUID) (bool, error)) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	value, err := fn(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"id": id.String(), field: value})
}

// Messages handles GET /api/chats/{id}/messages?limit=&offset=.
func (h *ChatHandler) Messages(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	offset, err := queryInt(r, "offset", 0)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	msgs, err := h.svc.GetMessages(r.Context(), id, limit, offset)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	out := make([]messageResponse, len(msgs))
	for i := range msgs {
		out[i] = toMessageResponse(&msgs[i])
	}
	writeJSON(w, http.StatusOK, map[string]any{"messages": out})
}

// AppendMessage handles POST /api/chats/{id}/messages.
func (h *ChatHandler) AppendMessage(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	var req appendMessageRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	res, err := h.svc.AppendMessage(r.Context(), chat.AppendMessageInput{ChatID: id, Content: req.Content})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]messageResponse{
		"userMessage":      toMessageResponse(&res.UserMessage),
		"assistantMessage": toMessageResponse(&res.AssistantMessage),
	})
}

// Batch handles POST /api/chats/batch.
func (h *ChatHandler) Batch(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	input, err := req.toInput()
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	res, err := h.svc.BatchOperation(r.Context(), input)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, batchResponse{
		Operation:       req.Operation,
		AffectedCount:   res.Affected,
		DeletedMessages: res.DeletedMessages,
	})
}

func (req batchRequest) toInput() (chat.BatchInput, error) {
	op := domain.BatchOperation(req.Operation)
	input := chat.BatchInput{Operation: op, ChatIDs: make([]uuid.UUID, 0, len(req.ChatIDs))}

	var errs []domain.FieldError
	for _, s := range req.ChatIDs {
		id, err := uuid.Parse(s)
		if err != nil {
			errs = append(errs, domain.FieldError{Field: "chatIds", Message: "invalid UUID: " + s})
			break
		}
		input.ChatIDs = append(input.ChatIDs, id)
	}
	if op == domain.BatchOperationFavorite || op == domain.BatchOperationProtect {
		if req.Value == nil {
			errs = append(errs, domain.FieldError{Field: "value", Message: "required for " + req.Operation})
		} else {
			input.Value = *req.Value
		}
	}
	if len(errs) > 0 {
		return input, domain.NewValidationErrors(errs)
	}
	return input, nil
}
