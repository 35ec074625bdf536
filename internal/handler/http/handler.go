package http

import (
	"github.com/MKhiriev/trip-keeper/internal/logger"
	"github.com/MKhiriev/trip-keeper/internal/service"
)

// Handler serves the REST API on top of the server services.
type Handler struct {
	services *service.Services
	logger   *logger.Logger
}

func NewHandler(services *service.Services, log *logger.Logger) *Handler {
	return &Handler{services: services, logger: log}
}
