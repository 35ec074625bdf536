package http

import (
	"encoding/json"
	"net/http"

	"github.com/MKhiriev/trip-keeper/internal/app"
	"github.com/MKhiriev/trip-keeper/internal/docstore"
	"github.com/MKhiriev/trip-keeper/internal/logger"
	"github.com/MKhiriev/trip-keeper/internal/utils"
	"github.com/go-chi/chi/v5"
)

// batchRequest is the body of POST /api/batch.
type batchRequest struct {
	Ops []docstore.WriteOp `json:"ops"`
}

// addResponse is returned by POST /api/collections/*.
type addResponse struct {
	ID string `json:"id"`
}

func (h *Handler) getDocument(w http.ResponseWriter, r *http.Request) {
	path := chi.URLParam(r, "*")

	doc, err := h.services.DocumentService.Get(r.Context(), path)
	if err != nil {
		h.writeError(w, r, err, "get document")
		return
	}

	h.writeJSON(w, r, doc, http.StatusOK)
}

func (h *Handler) listDocuments(w http.ResponseWriter, r *http.Request) {
	collection := chi.URLParam(r, "*")

	docs, err := h.services.DocumentService.List(r.Context(), collection)
	if err != nil {
		h.writeError(w, r, err, "list documents")
		return
	}

	h.writeJSON(w, r, docs, http.StatusOK)
}

func (h *Handler) addDocument(w http.ResponseWriter, r *http.Request) {
	collection := chi.URLParam(r, "*")

	var data json.RawMessage
	if !h.decode(w, r, &data) {
		return
	}

	id, err := h.services.DocumentService.Add(r.Context(), collection, data)
	if err != nil {
		h.writeError(w, r, err, "add document")
		return
	}

	h.writeJSON(w, r, addResponse{ID: id}, http.StatusCreated)
}

func (h *Handler) setDocument(w http.ResponseWriter, r *http.Request) {
	var data json.RawMessage
	if !h.decode(w, r, &data) {
		return
	}

	h.write(w, r, docstore.SetOp(chi.URLParam(r, "*"), data))
}

func (h *Handler) updateDocument(w http.ResponseWriter, r *http.Request) {
	var fields map[string]any
	if !h.decode(w, r, &fields) {
		return
	}

	h.write(w, r, docstore.UpdateOp(chi.URLParam(r, "*"), fields))
}

func (h *Handler) deleteDocument(w http.ResponseWriter, r *http.Request) {
	h.write(w, r, docstore.DeleteOp(chi.URLParam(r, "*")))
}

func (h *Handler) batchWrite(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if !h.decode(w, r, &req) {
		return
	}

	h.write(w, r, req.Ops...)
}

func (h *Handler) write(w http.ResponseWriter, r *http.Request, ops ...docstore.WriteOp) {
	if err := h.services.DocumentService.Write(r.Context(), ops); err != nil {
		h.writeError(w, r, err, "write documents")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// decode reads the JSON body into v and answers 400 when it cannot.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := utils.ReadJSON(w, r, v); err != nil {
		logger.FromRequest(r).Warn().Err(err).Str("path", chi.URLParam(r, "*")).Msg("bad request body")
		http.Error(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return false
	}
	return true
}

func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, data any, status int) {
	if _, err := utils.WriteJSON(w, data, status); err != nil {
		logger.FromRequest(r).Err(err).Msg("failed to write response")
	}
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error, action string) {
	h.fail(w, r, err, action, documentErrors, app.MsgInternalServerError)
}

// fail logs err at warn, or at error for 5xx, and answers with the matching
// rule.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error, action string, rules errorRules, fallback string) {
	rule := rules.match(err, fallback)

	log := logger.FromRequest(r)
	event := log.Warn()
	if rule.status >= http.StatusInternalServerError {
		event = log.Error()
	}
	event.Err(err).Str("path", chi.URLParam(r, "*")).Int("status", rule.status).Msg(action + " failed")

	http.Error(w, rule.message, rule.status)
}
