package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/trip-keeper/internal/app"
	"github.com/MKhiriev/trip-keeper/internal/logger"
	"github.com/MKhiriev/trip-keeper/internal/service"
	"github.com/MKhiriev/trip-keeper/internal/utils"
)

// auth admits requests with a valid bearer token. The caller's user ID goes
// into the context with utils.WithUserID, where the document access
// rules read it, and into the request logger as user_id.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		tokenString, err := utils.ParseBearerToken(r.Header.Get("Authorization"))
		if err != nil {
			log.Warn().Err(err).Str("path", r.URL.Path).Msg("rejected request without bearer token")
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}

		ctx := r.Context()
		token, err := h.services.AuthService.ParseToken(ctx, tokenString)
		if err != nil {
			msg := http.StatusText(http.StatusUnauthorized)
			if errors.Is(err, service.ErrTokenIsExpiredOrInvalid) {
				msg = app.MsgTokenIsExpiredOrInvalid
			}
			log.Warn().Err(err).Msg("rejected token")
			http.Error(w, msg, http.StatusUnauthorized)
			return
		}

		userLog := log.With().Str("user_id", token.UserID).Logger()
		ctx = utils.WithUserID(ctx, token.UserID)
		next.ServeHTTP(w, r.WithContext(userLog.WithContext(ctx)))
	})
}
