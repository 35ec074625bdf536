package service

import (
	"context"
	"time"

	"github.com/MKhiriev/trip-keeper/internal/config"
	"github.com/MKhiriev/trip-keeper/internal/logger"
	"github.com/MKhiriev/trip-keeper/models"
)

type appInfoService struct {
	info   models.ServerInfo
	logger *logger.Logger
}

// NewAppInfoService fixes the reported version and start time. A server
// without a configured version refuses to start.
func NewAppInfoService(cfg config.App, logger *logger.Logger) (AppInfoService, error) {
	if cfg.Version == "" {
		return nil, ErrVersionIsNotSpecified
	}

	return &appInfoService{
		info: models.ServerInfo{
			Version:   cfg.Version,
			StartedAt: time.Now().UTC().Truncate(time.Second),
		},
		logger: logger,
	}, nil
}

func (s *appInfoService) GetAppInfo(ctx context.Context) models.ServerInfo {
	return s.info
}
