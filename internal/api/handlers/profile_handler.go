package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"

	apiContext "invitr/internal/api/context"
	"invitr/internal/engine/invites"
	"invitr/internal/pkg/errors"
	"invitr/internal/platform/audit"
)

type ProfileHandler struct {
	service *invites.Service
	audit   *audit.Logger
}

func NewProfileHandler(service *invites.Service, auditLogger *audit.Logger) *ProfileHandler {
	return &ProfileHandler{
		service: service,
		audit:   auditLogger,
	}
}

type createProfileRequest struct {
	GroomName       string               `json:"groom_name"`
	BrideName       string               `json:"bride_name"`
	EventType       string               `json:"event_type"`
	EventDate       json.RawMessage      `json:"event_date"`
	Venue           string               `json:"venue"`
	Language        string               `json:"language"`
	SectionsEnabled invites.SectionFlags `json:"sections_enabled"`
	LinkExpiryType  string               `json:"link_expiry_type"`
	LinkExpiryValue json.RawMessage      `json:"link_expiry_value"`
}

func (h *ProfileHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errors.WriteError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, "Invalid request body", nil)
		return
	}

	eventDate, err := invites.ParseTimestamp(req.EventDate)
	if err != nil {
		errors.WriteError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, "event_date: "+err.Error(), nil)
		return
	}

	expiryType := req.LinkExpiryType
	if expiryType == "" {
		expiryType = invites.ExpiryPermanent
	}
	expiryValue, err := invites.ParseExpiryValue(expiryType, req.LinkExpiryValue)
	if err != nil {
		errors.WriteError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, err.Error(), nil)
		return
	}

	profile, err := h.service.CreateProfile(&invites.ProfileInput{
		GroomName:       req.GroomName,
		BrideName:       req.BrideName,
		EventType:       req.EventType,
		EventDate:       eventDate,
		Venue:           req.Venue,
		Language:        req.Language,
		SectionsEnabled: req.SectionsEnabled,
		LinkExpiryType:  expiryType,
		LinkExpiryValue: expiryValue,
	})
	if err != nil {
		if err == invites.ErrSlugExhausted {
			errors.WriteError(w, http.StatusInternalServerError, errors.ErrCodeInternal, err.Error(), nil)
			return
		}
		errors.WriteError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, err.Error(), nil)
		return
	}

	h.audit.Log(r, "profile.created", "profile", profile.ID, map[string]interface{}{"slug": profile.Slug})

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(profile)
}

func (h *ProfileHandler) List(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.service.ListProfiles()
	if err != nil {
		errors.WriteError(w, http.StatusInternalServerError, errors.ErrCodeInternal, "Database error", nil)
		return
	}
	if profiles == nil {
		profiles = []*invites.Profile{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(profiles)
}

func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	params := r.Context().Value(apiContext.Params).(httprouter.Params)

	profile, err := h.service.GetProfile(params.ByName("profile_id"))
	if err != nil {
		if err == invites.ErrProfileNotFound {
			errors.WriteError(w, http.StatusNotFound, errors.ErrCodeNotFound, "Profile not found", nil)
			return
		}
		errors.WriteError(w, http.StatusInternalServerError, errors.ErrCodeInternal, "Database error", nil)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(profile)
}

type updateProfileRequest struct {
	GroomName       *string              `json:"groom_name"`
	BrideName       *string              `json:"bride_name"`
	EventType       *string              `json:"event_type"`
	EventDate       json.RawMessage      `json:"event_date"`
	Venue           *string              `json:"venue"`
	Language        *string              `json:"language"`
	SectionsEnabled invites.SectionFlags `json:"sections_enabled"`
	LinkExpiryType  *string              `json:"link_expiry_type"`
	LinkExpiryValue json.RawMessage      `json:"link_expiry_value"`
}

func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	params := r.Context().Value(apiContext.Params).(httprouter.Params)
	profileID := params.ByName("profile_id")

	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errors.WriteError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, "Invalid request body", nil)
		return
	}

	upd := &invites.ProfileUpdate{
		GroomName:       req.GroomName,
		BrideName:       req.BrideName,
		EventType:       req.EventType,
		Venue:           req.Venue,
		Language:        req.Language,
		SectionsEnabled: req.SectionsEnabled,
		LinkExpiryType:  req.LinkExpiryType,
		LinkExpiryValue: req.LinkExpiryValue,
		ExpiryValueSet:  len(req.LinkExpiryValue) > 0,
	}

	if len(req.EventDate) > 0 {
		eventDate, err := invites.ParseTimestamp(req.EventDate)
		if err != nil {
			errors.WriteError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, "event_date: "+err.Error(), nil)
			return
		}
		upd.EventDate = &eventDate
	}

	profile, err := h.service.UpdateProfile(profileID, upd)
	if err != nil {
		if err == invites.ErrProfileNotFound {
			errors.WriteError(w, http.StatusNotFound, errors.ErrCodeNotFound, "Profile not found", nil)
			return
		}
		errors.WriteError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, err.Error(), nil)
		return
	}

	h.audit.Log(r, "profile.updated", "profile", profile.ID, nil)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(profile)
}

func (h *ProfileHandler) Delete(w http.ResponseWriter, r *http.Request) {
	params := r.Context().Value(apiContext.Params).(httprouter.Params)
	profileID := params.ByName("profile_id")

	if err := h.service.DeleteProfile(profileID); err != nil {
		if err == invites.ErrProfileNotFound {
			errors.WriteError(w, http.StatusNotFound, errors.ErrCodeNotFound, "Profile not found", nil)
			return
		}
		errors.WriteError(w, http.StatusInternalServerError, errors.ErrCodeInternal, "Database error", nil)
		return
	}

	h.audit.Log(r, "profile.deleted", "profile", profileID, nil)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "Profile deleted successfully"})
}

func (h *ProfileHandler) GetQRCode(w http.ResponseWriter, r *http.Request) {
	params := r.Context().Value(apiContext.Params).(httprouter.Params)

	profile, err := h.service.GetProfile(params.ByName("profile_id"))
	if err != nil {
		if err == invites.ErrProfileNotFound {
			errors.WriteError(w, http.StatusNotFound, errors.ErrCodeNotFound, "Profile not found", nil)
			return
		}
		errors.WriteError(w, http.StatusInternalServerError, errors.ErrCodeInternal, "Database error", nil)
		return
	}

	size, _ := strconv.Atoi(r.URL.Query().Get("size"))
	png, err := invites.GenerateQRCode(profile.InvitationLink, size)
	if err != nil {
		errors.WriteError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, err.Error(), nil)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}
