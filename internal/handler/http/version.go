package http

import (
	"net/http"
)

func (h *Handler) getServerVersion(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, r, h.services.AppInfoService.GetAppInfo(r.Context()), http.StatusOK)
}
