package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	apiContext "invitr/internal/api/context"
	"invitr/internal/engine/invites"
	"invitr/internal/pkg/errors"
)

type GreetingHandler struct {
	service *invites.Service
}

func NewGreetingHandler(service *invites.Service) *GreetingHandler {
	return &GreetingHandler{service: service}
}

// List returns a profile's greetings oldest first, for the admin surface.
func (h *GreetingHandler) List(w http.ResponseWriter, r *http.Request) {
	params := r.Context().Value(apiContext.Params).(httprouter.Params)

	greetings, err := h.service.ListGreetings(params.ByName("profile_id"))
	if err != nil {
		if err == invites.ErrProfileNotFound {
			errors.WriteError(w, http.StatusNotFound, errors.ErrCodeNotFound, "Profile not found", nil)
			return
		}
		errors.WriteError(w, http.StatusInternalServerError, errors.ErrCodeInternal, "Database error", nil)
		return
	}
	if greetings == nil {
		greetings = []*invites.Greeting{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(greetings)
}
