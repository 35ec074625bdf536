package http

import (
	"net/http"

	"github.com/google/uuid"
)

const (
	traceIDHeader     = "X-Trace-ID"
	maxTraceIDLength  = 64
	httpComponentName = "http"
)

// withTraceID attaches a request logger carrying trace_id. A client supplied
// ID is reused when it is short enough to be one.
func (h *Handler) withTraceID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := r.Header.Get(traceIDHeader)
		if traceID == "" || len(traceID) > maxTraceIDLength {
			traceID = uuid.NewString()
		}

		reqLog := h.logger.Component(httpComponentName).With().Str("trace_id", traceID).Logger()

		w.Header().Set(traceIDHeader, traceID)
		next.ServeHTTP(w, r.WithContext(reqLog.WithContext(r.Context())))
	})
}
