// Package handler builds the inbound transports of the server: the REST API
// and the gRPC health service.
package handler

import (
	"github.com/MKhiriev/trip-keeper/internal/config"
	"github.com/MKhiriev/trip-keeper/internal/handler/grpc"
	"github.com/MKhiriev/trip-keeper/internal/handler/http"
	"github.com/MKhiriev/trip-keeper/internal/logger"
	"github.com/MKhiriev/trip-keeper/internal/service"
)

// Handlers has a non-nil field for every transport whose listen address is
// configured.
type Handlers struct {
	HTTP *http.Handler
	GRPC *grpc.Handler
}

func NewHandlers(services *service.Services, cfg config.Server, log *logger.Logger) (*Handlers, error) {
	if cfg.HTTPAddress == "" && cfg.GRPCAddress == "" {
		return nil, ErrNoTransport
	}

	var h Handlers
	if cfg.HTTPAddress != "" {
		h.HTTP = http.NewHandler(services, log)
	}
	if cfg.GRPCAddress != "" {
		h.GRPC = grpc.NewHandler(services, log)
	}

	log.Info().Str("http", cfg.HTTPAddress).Str("grpc", cfg.GRPCAddress).Msg("handlers created")
	return &h, nil
}
