package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/churchhub/apiserver/internal/services"
	"github.com/churchhub/apiserver/internal/store"
	"github.com/go-chi/chi/v5"
)

// SettingHandler provides HTTP handlers for the site-settings key/value
// store. Reads are public; writes require the admin role.
type SettingHandler struct {
	settingService *services.SettingService
}

func NewSettingHandler(settingService *services.SettingService) *SettingHandler {
	return &SettingHandler{settingService: settingService}
}

// SettingRouter registers site-setting routes on the given router.
func SettingRouter(r chi.Router, settingService *services.SettingService, authMiddleware func(http.Handler) http.Handler) {
	handler := NewSettingHandler(settingService)

	r.Get("/", handler.ListSettings)
	r.Get("/{key}", handler.GetSetting)
	r.With(authMiddleware, requireAdmin).Post("/", handler.UpsertSetting)
	r.With(authMiddleware, requireAdmin).Post("/batch", handler.BatchUpsertSettings)
}

func (h *SettingHandler) ListSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settingService.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list settings")
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

func (h *SettingHandler) GetSetting(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	setting, err := h.settingService.GetByKey(r.Context(), key)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "setting not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to fetch setting")
		return
	}
	writeJSON(w, http.StatusOK, setting)
}

type UpsertSettingRequest struct {
	Key   string `json:"key" validate:"required,min=1"`
	Value string `json:"value"`
}

// UpsertSetting creates the setting or updates it if the key already
// exists: 201 on create, 200 on update.
func (h *SettingHandler) UpsertSetting(w http.ResponseWriter, r *http.Request) {
	principal, err := principalFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req UpsertSettingRequest
	if !bind(w, r, &req) {
		return
	}

	setting, created, err := h.settingService.Upsert(r.Context(), req.Key, req.Value, principal.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to save setting")
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, setting)
}

// BatchUpsertResponse reports how many elements of a batch were applied.
type BatchUpsertResponse struct {
	Message string `json:"message"`
	Count   int    `json:"count"`
}

// BatchUpsertSettings upserts a list of {key, value} pairs. Elements
// without a key are skipped silently. The batch is not atomic: if an
// element fails partway through, the earlier upserts stay committed.
func (h *SettingHandler) BatchUpsertSettings(w http.ResponseWriter, r *http.Request) {
	principal, err := principalFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var reqs []UpsertSettingRequest
	if err := json.NewDecoder(r.Body).Decode(&reqs); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	count := 0
	for _, req := range reqs {
		if req.Key == "" {
			continue
		}
		if _, _, err := h.settingService.Upsert(r.Context(), req.Key, req.Value, principal.ID); err != nil {
			writeError(w, http.StatusInternalServerError, "failed to save settings")
			return
		}
		count++
	}

	writeJSON(w, http.StatusOK, BatchUpsertResponse{Message: "settings saved", Count: count})
}
