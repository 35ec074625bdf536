package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/MKhiriev/trip-keeper/internal/config"
	"github.com/MKhiriev/trip-keeper/internal/logger"
	"github.com/go-chi/chi/v5/middleware"
)

const readHeaderTimeout = 5 * time.Second

type httpServer struct {
	server *http.Server
	logger *logger.Logger
}

func newHTTPServer(handler http.Handler, cfg config.Server, log *logger.Logger) *httpServer {
	if cfg.RequestTimeout > 0 {
		handler = middleware.Timeout(cfg.RequestTimeout)(handler)
	}

	return &httpServer{
		server: &http.Server{
			Addr:              cfg.HTTPAddress,
			Handler:           handler,
			ReadHeaderTimeout: readHeaderTimeout,
		},
		logger: log,
	}
}

func (h *httpServer) name() string    { return "http" }
func (h *httpServer) address() string { return h.server.Addr }

func (h *httpServer) serve() error {
	if err := h.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (h *httpServer) shutdown(ctx context.Context) {
	if err := h.server.Shutdown(ctx); err != nil {
		h.logger.Error().Err(err).Msg("http shutdown")
	}
}
