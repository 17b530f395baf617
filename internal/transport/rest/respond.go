package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/heartmarshall/chatvault/internal/domain"
)

const maxBodyBytes = 1 << 20

type errorResponse struct {
	Error          string            `json:"error"`
	Fields         map[string]string `json:"fields,omitempty"`
	ConflictingIDs []string          `json:"conflictingIds,omitempty"`
	MissingIDs     []string          `json:"missingIds,omitempty"`
	Quota          *quotaDetails     `json:"quota,omitempty"`
}

type quotaDetails struct {
	Kind      string `json:"kind"`
	Limit     int    `json:"limit"`
	Current   int    `json:"current"`
	Requested int    `json:"requested"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// handleError maps a service error to an HTTP status and body.
func handleError(log *slog.Logger, w http.ResponseWriter, r *http.Request, err error) {
	var (
		ve *domain.ValidationError
		qe *domain.QuotaExceededError
		pe *domain.ProtectedChatConflictError
		ne *domain.ChatsNotFoundError
	)

	switch {
	case errors.As(err, &ve):
		resp := errorResponse{Error: "validation failed", Fields: make(map[string]string, len(ve.Errors))}
		for _, fe := range ve.Errors {
			resp.Fields[fe.Field] = fe.Message
		}
		writeJSON(w, http.StatusBadRequest, resp)
	case errors.As(err, &qe):
		writeJSON(w, http.StatusTooManyRequests, errorResponse{
			Error: quotaMessage(qe),
			Quota: &quotaDetails{Kind: string(qe.Kind), Limit: qe.Limit, Current: qe.Current, Requested: qe.Requested},
		})
	case errors.Is(err, domain.ErrPolicyInconsistency):
		log.ErrorContext(r.Context(), "retention policy inconsistency", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal server error")
	case errors.As(err, &pe):
		writeJSON(w, http.StatusConflict, errorResponse{
			Error:          "protected chats cannot be deleted",
			ConflictingIDs: idStrings(pe.ChatIDs),
		})
	case errors.As(err, &ne):
		writeJSON(w, http.StatusNotFound, errorResponse{
			Error:      "chats not found",
			MissingIDs: idStrings(ne.MissingIDs),
		})
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, "forbidden")
	case errors.Is(err, domain.ErrConflict), errors.Is(err, domain.ErrAlreadyExists):
		writeError(w, http.StatusConflict, "conflict")
	case errors.Is(err, domain.ErrStoreUnavailable):
		log.WarnContext(r.Context(), "store unavailable", slog.String("error", err.Error()))
		w.Header().Set("Retry-After", "5")
		writeError(w, http.StatusServiceUnavailable, "service temporarily unavailable")
	default:
		log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func quotaMessage(qe *domain.QuotaExceededError) string {
	switch qe.Kind {
	case domain.QuotaKindChats:
		return fmt.Sprintf("chat limit reached (%d)", qe.Limit)
	case domain.QuotaKindProtected:
		return fmt.Sprintf("protected chat limit reached (%d)", qe.Limit)
	}
	return "quota exceeded"
}

func idStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}

// decodeJSON reads a single JSON object into dst. Unknown fields are rejected.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return domain.NewValidationError("body", "invalid JSON: "+err.Error())
	}
	return nil
}

func pathID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(mux.Vars(r)[name])
	if err != nil {
		return uuid.Nil, domain.NewValidationError(name, "must be a UUID")
	}
	return id, nil
}

func queryInt(r *http.Request, name string, def int) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, domain.NewValidationError(name, "must be an integer")
	}
	return n, nil
}

func queryBool(r *http.Request, name string) (*bool, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return nil, domain.NewValidationError(name, "must be true or false")
	}
	return &b, nil
}
