package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/trip-keeper/internal/app"
	"github.com/MKhiriev/trip-keeper/internal/docstore"
	"github.com/MKhiriev/trip-keeper/internal/service"
	"github.com/MKhiriev/trip-keeper/internal/store"
)

// errorRule maps a sentinel to the response sent for it. Rules are checked
// in order with errors.Is; the first match wins.
type errorRule struct {
	target  error
	status  int
	message string
}

type errorRules []errorRule

var documentErrors = errorRules{
	{service.ErrInvalidDataProvided, http.StatusBadRequest, app.MsgInvalidDataProvided},
	{service.ErrNoUserID, http.StatusUnauthorized, app.MsgNoUserIDProvided},
	{service.ErrTokenIsExpiredOrInvalid, http.StatusUnauthorized, app.MsgTokenIsExpiredOrInvalid},
	{docstore.ErrInvalidPath, http.StatusBadRequest, app.MsgInvalidPath},
	{docstore.ErrPermissionDenied, http.StatusForbidden, app.MsgAccessDenied},
	{docstore.ErrNotFound, http.StatusNotFound, app.MsgDocumentNotFound},
	{docstore.ErrAlreadyExists, http.StatusConflict, app.MsgDocumentAlreadyExists},
	{docstore.ErrWriteRejected, http.StatusUnprocessableEntity, app.MsgWriteRejected},
}

var registerErrors = errorRules{
	{service.ErrInvalidDataProvided, http.StatusBadRequest, app.MsgInvalidDataProvided},
	{store.ErrLoginAlreadyExists, http.StatusConflict, app.MsgLoginAlreadyExists},
}

// unknown login and wrong password get the same answer
var loginErrors = errorRules{
	{service.ErrInvalidDataProvided, http.StatusBadRequest, app.MsgInvalidDataProvided},
	{store.ErrUserNotFound, http.StatusUnauthorized, app.MsgInvalidLoginPassword},
	{service.ErrWrongPassword, http.StatusUnauthorized, app.MsgInvalidLoginPassword},
}

// match returns the rule for err. Unknown errors are a 500 with fallback as
// the body.
func (rules errorRules) match(err error, fallback string) errorRule {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			return rule
		}
	}
	return errorRule{target: err, status: http.StatusInternalServerError, message: fallback}
}
