package http

import (
	"net/http"

	"github.com/MKhiriev/trip-keeper/internal/app"
	"github.com/MKhiriev/trip-keeper/internal/logger"
	"github.com/MKhiriev/trip-keeper/models"
)

// register creates an account. The response carries the user and a bearer
// token in the Authorization header, so the client is signed in right away.
func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	user, ok := h.readCredentials(w, r)
	if !ok {
		return
	}

	created, err := h.services.AuthService.RegisterUser(r.Context(), user)
	if err != nil {
		h.fail(w, r, err, "register", registerErrors, app.MsgRegistrationFailed)
		return
	}
	h.startSession(w, r, created)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	user, ok := h.readCredentials(w, r)
	if !ok {
		return
	}

	found, err := h.services.AuthService.Login(r.Context(), user)
	if err != nil {
		h.fail(w, r, err, "login", loginErrors, app.MsgLoginFailed)
		return
	}

	logger.FromRequest(r).Debug().Str("user_id", found.UserID).Msg("user logged in")
	h.startSession(w, r, found)
}

func (h *Handler) readCredentials(w http.ResponseWriter, r *http.Request) (models.User, bool) {
	var user models.User
	ok := h.decode(w, r, &user)
	return user, ok
}

func (h *Handler) startSession(w http.ResponseWriter, r *http.Request, user models.User) {
	token, err := h.services.AuthService.CreateToken(r.Context(), user)
	if err != nil {
		h.fail(w, r, err, "create token", nil, app.MsgInternalServerError)
		return
	}

	w.Header().Set("Authorization", "Bearer "+token.String())
	h.writeJSON(w, r, user, http.StatusOK)
}
