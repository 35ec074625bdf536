package service

import (
	"fmt"

	"github.com/MKhiriev/trip-keeper/internal/config"
	"github.com/MKhiriev/trip-keeper/internal/logger"
	"github.com/MKhiriev/trip-keeper/internal/store"
	"github.com/MKhiriev/trip-keeper/internal/utils"
)

type Services struct {
	AuthService     AuthService
	DocumentService DocumentService
	AppInfoService  AppInfoService
}

// NewServices builds the server services. Document calls pass the access
// policy first, then validation, then reach the repository.
func NewServices(storages *store.Storages, cfg config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	ids := utils.NewUUIDGenerator()

	appInfoService, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating app info service: %w", err)
	}

	authService, err := NewAuthService(storages.UserRepository, ids, cfg.App, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating auth service: %w", err)
	}

	documents := NewDocumentService(storages.DocumentRepository, ids, logger)
	documents = NewDocumentValidationService().Wrap(documents)
	documents = NewDocumentAccessService(logger).Wrap(documents)

	return &Services{
		AuthService:     authService,
		DocumentService: documents,
		AppInfoService:  appInfoService,
	}, nil
}
