package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/trip-keeper/internal/adapter"
	"github.com/MKhiriev/trip-keeper/internal/logger"
	"github.com/MKhiriev/trip-keeper/models"
)

type clientAuthService struct {
	adapter adapter.ServerAdapter
	keys    ClientKeyManager
	logger  *logger.Logger
}

func NewClientAuthService(serverAdapter adapter.ServerAdapter, keys ClientKeyManager, log *logger.Logger) ClientAuthService {
	return &clientAuthService{adapter: serverAdapter, keys: keys, logger: log}
}

func (a *clientAuthService) Register(ctx context.Context, login, password string) (models.User, error) {
	creds, err := credentials(login, password)
	if err != nil {
		return models.User{}, err
	}

	user, err := a.adapter.Register(ctx, creds)
	if err != nil {
		return models.User{}, fmt.Errorf("register on server: %w", err)
	}

	return a.openSession(ctx, user)
}

func (a *clientAuthService) Login(ctx context.Context, login, password string) (models.User, error) {
	creds, err := credentials(login, password)
	if err != nil {
		return models.User{}, err
	}

	user, err := a.adapter.Login(ctx, creds)
	if err != nil {
		return models.User{}, fmt.Errorf("login on server: %w", err)
	}

	return a.openSession(ctx, user)
}

// openSession makes sure this device and the server agree on the user's
// master key before any trip is touched.
func (a *clientAuthService) openSession(ctx context.Context, user models.User) (models.User, error) {
	if _, err := a.keys.GetOrCreateMasterKey(ctx, user.UserID); err != nil {
		a.logger.Err(err).Str("func", "clientAuthService.openSession").Str("user_id", user.UserID).
			Msg("error resolving master key")
		return models.User{}, fmt.Errorf("resolve master key: %w", err)
	}

	a.logger.Info().Str("user_id", user.UserID).Str("login", user.Login).Msg("session opened")
	return user, nil
}

func credentials(login, password string) (models.User, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return models.User{}, ErrInvalidDataProvided
	}
	return models.User{Login: login, Password: password}, nil
}
