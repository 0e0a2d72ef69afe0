package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"

	apiContext "invitr/internal/api/context"
	"invitr/internal/engine/invites"
	"invitr/internal/pkg/errors"
)

// PublicHandler serves unauthenticated guests: invitation reads and greeting
// submissions, both keyed by slug.
type PublicHandler struct {
	resolver *invites.Resolver
}

func NewPublicHandler(resolver *invites.Resolver) *PublicHandler {
	return &PublicHandler{resolver: resolver}
}

// Resolve answers GET /api/invite/:slug. An unknown slug is 404; a slug whose
// link expired or was deleted is 410 with no profile content.
func (h *PublicHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	params := r.Context().Value(apiContext.Params).(httprouter.Params)
	slug := params.ByName("slug")

	view, err := h.resolver.Resolve(slug, invites.ViewContext{
		IPAddress:   r.RemoteAddr,
		UserAgent:   r.UserAgent(),
		Referrer:    r.Referer(),
		RequestTime: time.Now(),
	})
	if err != nil {
		writePublicError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(view)
}

type submitGreetingRequest struct {
	GuestName string `json:"guest_name"`
	Message   string `json:"message"`
}

func (h *PublicHandler) SubmitGreeting(w http.ResponseWriter, r *http.Request) {
	params := r.Context().Value(apiContext.Params).(httprouter.Params)
	slug := params.ByName("slug")

	var req submitGreetingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errors.WriteError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, "Invalid request body", nil)
		return
	}

	greeting, err := h.resolver.SubmitGreeting(slug, req.GuestName, req.Message)
	if err != nil {
		writePublicError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(greeting)
}

func writePublicError(w http.ResponseWriter, err error) {
	switch err {
	case invites.ErrSlugNotFound:
		errors.WriteError(w, http.StatusNotFound, errors.ErrCodeNotFound, "Invitation not found", nil)
	case invites.ErrLinkInactive:
		errors.WriteError(w, http.StatusGone, errors.ErrCodeGone, "This invitation link is no longer active", nil)
	default:
		errors.WriteError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, err.Error(), nil)
	}
}
