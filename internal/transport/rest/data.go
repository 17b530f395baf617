package rest

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/chatvault/internal/domain"
	"github.com/heartmarshall/chatvault/internal/service/chat"
	"github.com/heartmarshall/chatvault/internal/service/quota"
	"github.com/heartmarshall/chatvault/internal/service/retention"
	"github.com/heartmarshall/chatvault/internal/service/settings"
	"github.com/heartmarshall/chatvault/pkg/ctxutil"
)

type settingsService interface {
	GetSettings(ctx context.Context) (domain.UserRetentionSettings, error)
	UpdateSettings(ctx context.Context, input settings.UpdateSettingsInput) (domain.UserRetentionSettings, error)
}

type quotaService interface {
	Usage(ctx context.Context, userID uuid.UUID) (quota.Usage, error)
}

type cleanupService interface {
	RunCleanup(ctx context.Context, userID uuid.UUID) (retention.CleanupResult, error)
}

type accountData interface {
	DeleteAllData(ctx context.Context, confirm string) (chat.DeleteAllResult, error)
	ExportData(ctx context.Context) (chat.DataExport, error)
}

// DataHandler serves /api/data: retention settings, quota usage, cleanup,
// export and account wipe.
type DataHandler struct {
	settings settingsService
	quota    quotaService
	cleanup  cleanupService
	account  accountData
	log      *slog.Logger
}

// NewDataHandler creates a DataHandler.
func NewDataHandler(
	settings settingsService,
	quota quotaService,
	cleanup cleanupService,
	account accountData,
	logger *slog.Logger,
) *DataHandler {
	return &DataHandler{
		settings: settings,
		quota:    quota,
		cleanup:  cleanup,
		account:  account,
		log:      logger.With("handler", "data"),
	}
}

type updateSettingsRequest struct {
	AutoCleanupEnabled *bool `json:"autoCleanupEnabled"`
	RetentionDays      *int  `json:"retentionDays"`
	MaxChats           *int  `json:"maxChats"`
	ProtectedChats     *int  `json:"protectedChats"`
}

type deleteAllRequest struct {
	ConfirmText string `json:"confirmText"`
}

type cleanupResponse struct {
	DeletedChats    int `json:"deletedChats"`
	DeletedMessages int `json:"deletedMessages"`
}

// GetSettings handles GET /api/data/settings.
func (h *DataHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	s, err := h.settings.GetSettings(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toSettingsResponse(s))
}

// UpdateSettings handles PUT /api/data/settings. Omitted fields keep their
// current value.
func (h *DataHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req updateSettingsRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	s, err := h.settings.UpdateSettings(r.Context(), settings.UpdateSettingsInput{
		AutoCleanupEnabled: req.AutoCleanupEnabled,
		RetentionDays:      req.RetentionDays,
		MaxChats:           req.MaxChats,
		ProtectedChats:     req.ProtectedChats,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toSettingsResponse(s))
}

// Quota handles GET /api/data/quota.
func (h *DataHandler) Quota(w http.ResponseWriter, r *http.Request) {
	userID, ok := ctxutil.UserIDFromCtx(r.Context())
	if !ok {
		handleError(h.log, w, r, domain.ErrUnauthorized)
		return
	}

	u, err := h.quota.Usage(r.Context(), userID)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toQuotaResponse(u))
}

// Cleanup handles POST /api/data/cleanup.
func (h *DataHandler) Cleanup(w http.ResponseWriter, r *http.Request) {
	userID, ok := ctxutil.UserIDFromCtx(r.Context())
	if !ok {
		handleError(h.log, w, r, domain.ErrUnauthorized)
		return
	}

	res, err := h.cleanup.RunCleanup(r.Context(), userID)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cleanupResponse{DeletedChats: res.DeletedChats, DeletedMessages: res.DeletedMessages})
}

// DeleteAll handles DELETE /api/data/all. The body must carry the exact
// confirmation phrase.
func (h *DataHandler) DeleteAll(w http.ResponseWriter, r *http.Request) {
	var req deleteAllRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	res, err := h.account.DeleteAllData(r.Context(), req.ConfirmText)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cleanupResponse{DeletedChats: res.DeletedChats, DeletedMessages: res.DeletedMessages})
}

// Export handles GET /api/data/export. The body is served as a file download.
func (h *DataHandler) Export(w http.ResponseWriter, r *http.Request) {
	exp, err := h.account.ExportData(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename="chatvault-export-%d.json"`, exp.ExportedAt.Unix()))
	writeJSON(w, http.StatusOK, toExportResponse(exp))
}
