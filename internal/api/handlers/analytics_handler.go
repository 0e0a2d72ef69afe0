package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"

	apiContext "invitr/internal/api/context"
	"invitr/internal/engine/analytics"
	"invitr/internal/engine/invites"
	"invitr/internal/pkg/errors"
)

type AnalyticsHandler struct {
	service    *analytics.Service
	profileSvc *invites.Service
}

func NewAnalyticsHandler(service *analytics.Service, profileSvc *invites.Service) *AnalyticsHandler {
	return &AnalyticsHandler{
		service:    service,
		profileSvc: profileSvc,
	}
}

// GetProfileViews returns a summary plus recent view history for a profile.
func (h *AnalyticsHandler) GetProfileViews(w http.ResponseWriter, r *http.Request) {
	params := r.Context().Value(apiContext.Params).(httprouter.Params)
	profileID := params.ByName("profile_id")

	if _, err := h.profileSvc.GetProfile(profileID); err != nil {
		if err == invites.ErrProfileNotFound {
			errors.WriteError(w, http.StatusNotFound, errors.ErrCodeNotFound, "Profile not found", nil)
			return
		}
		errors.WriteError(w, http.StatusInternalServerError, errors.ErrCodeInternal, "Database error", nil)
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 || limit > 500 {
		limit = 100
	}
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	if offset < 0 {
		offset = 0
	}

	summary, err := h.service.GetSummary(profileID)
	if err != nil {
		errors.WriteError(w, http.StatusInternalServerError, errors.ErrCodeInternal, "Database error", nil)
		return
	}

	views, err := h.service.GetViewHistory(profileID, limit, offset)
	if err != nil {
		errors.WriteError(w, http.StatusInternalServerError, errors.ErrCodeInternal, "Database error", nil)
		return
	}
	if views == nil {
		views = []analytics.ViewStat{}
	}

	response := struct {
		Summary *analytics.Summary   `json:"summary"`
		Views   []analytics.ViewStat `json:"views"`
	}{
		Summary: summary,
		Views:   views,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}
