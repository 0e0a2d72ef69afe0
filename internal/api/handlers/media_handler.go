package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	apiContext "invitr/internal/api/context"
	"invitr/internal/engine/invites"
	"invitr/internal/pkg/errors"
	"invitr/internal/platform/audit"
)

type MediaHandler struct {
	service *invites.Service
	audit   *audit.Logger
}

func NewMediaHandler(service *invites.Service, auditLogger *audit.Logger) *MediaHandler {
	return &MediaHandler{
		service: service,
		audit:   auditLogger,
	}
}

type addMediaRequest struct {
	MediaType string `json:"media_type"`
	MediaURL  string `json:"media_url"`
	Caption   string `json:"caption"`
	Order     int    `json:"order"`
}

func (h *MediaHandler) Add(w http.ResponseWriter, r *http.Request) {
	params := r.Context().Value(apiContext.Params).(httprouter.Params)
	profileID := params.ByName("profile_id")

	var req addMediaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errors.WriteError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, "Invalid request body", nil)
		return
	}

	media, err := h.service.AddMedia(profileID, &invites.MediaInput{
		MediaType: req.MediaType,
		MediaURL:  req.MediaURL,
		Caption:   req.Caption,
		Order:     req.Order,
	})
	if err != nil {
		if err == invites.ErrProfileNotFound {
			errors.WriteError(w, http.StatusNotFound, errors.ErrCodeNotFound, "Profile not found", nil)
			return
		}
		errors.WriteError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, err.Error(), nil)
		return
	}

	h.audit.Log(r, "media.added", "media", media.ID, map[string]interface{}{"profile_id": profileID})

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(media)
}

func (h *MediaHandler) List(w http.ResponseWriter, r *http.Request) {
	params := r.Context().Value(apiContext.Params).(httprouter.Params)

	media, err := h.service.ListMedia(params.ByName("profile_id"))
	if err != nil {
		if err == invites.ErrProfileNotFound {
			errors.WriteError(w, http.StatusNotFound, errors.ErrCodeNotFound, "Profile not found", nil)
			return
		}
		errors.WriteError(w, http.StatusInternalServerError, errors.ErrCodeInternal, "Database error", nil)
		return
	}
	if media == nil {
		media = []*invites.Media{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(media)
}

func (h *MediaHandler) Delete(w http.ResponseWriter, r *http.Request) {
	params := r.Context().Value(apiContext.Params).(httprouter.Params)
	mediaID := params.ByName("media_id")

	if err := h.service.DeleteMedia(mediaID); err != nil {
		if err == invites.ErrMediaNotFound {
			errors.WriteError(w, http.StatusNotFound, errors.ErrCodeNotFound, "Media not found", nil)
			return
		}
		errors.WriteError(w, http.StatusInternalServerError, errors.ErrCodeInternal, "Database error", nil)
		return
	}

	h.audit.Log(r, "media.deleted", "media", mediaID, nil)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "Media deleted successfully"})
}
