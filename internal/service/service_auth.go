package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/trip-keeper/internal/config"
	"github.com/MKhiriev/trip-keeper/internal/logger"
	"github.com/MKhiriev/trip-keeper/internal/store"
	"github.com/MKhiriev/trip-keeper/internal/utils"
	"github.com/MKhiriev/trip-keeper/internal/validators"
	"github.com/MKhiriev/trip-keeper/models"
)

// IDGenerator issues identifiers for new users and documents.
type IDGenerator interface {
	Generate() string
}

// authService keeps accounts in a UserRepository. Passwords are stored as
// HMAC-SHA256 under the configured hash key; sessions are HS256 JWTs whose
// subject is the user ID.
type authService struct {
	users     store.UserRepository
	ids       IDGenerator
	validator validators.Validator
	hashKey   string
	tokens    *utils.JWTSigner
}

func NewAuthService(users store.UserRepository, ids IDGenerator, cfg config.App, log *logger.Logger) (AuthService, error) {
	tokens, err := utils.NewJWTSigner(cfg.TokenSignKey, cfg.TokenIssuer, cfg.TokenDuration)
	if err != nil {
		return nil, fmt.Errorf("token signer: %w", err)
	}

	log.Component("auth").Debug().
		Str("issuer", cfg.TokenIssuer).
		Dur("token_duration", cfg.TokenDuration).
		Msg("auth service ready")

	return &authService{
		users:     users,
		ids:       ids,
		validator: validators.NewTripDataValidator(),
		hashKey:   cfg.PasswordHashKey,
		tokens:    tokens,
	}, nil
}

// RegisterUser assigns a new user ID and stores the account. The returned
// user never carries the password hash.
func (a *authService) RegisterUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, user); err != nil {
		log.Warn().Str("login", user.Login).Err(err).Msg("register: invalid user data")
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	user.UserID = a.ids.Generate()
	user.Password = a.hash(user.Password)

	created, err := a.users.CreateUser(ctx, user)
	if err != nil {
		log.Err(err).Str("login", user.Login).Msg("register: create user")
		return models.User{}, fmt.Errorf("create user: %w", err)
	}

	created.Password = ""
	return created, nil
}

// Login checks the password of an existing account. Unknown logins surface
// the repository error, a mismatch is ErrWrongPassword.
func (a *authService) Login(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, user); err != nil {
		log.Warn().Str("login", user.Login).Err(err).Msg("login: invalid user data")
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	found, err := a.users.FindUserByLogin(ctx, user.Login)
	if err != nil {
		log.Err(err).Str("login", user.Login).Msg("login: find user")
		return models.User{}, fmt.Errorf("find user by login: %w", err)
	}

	if !utils.HashMatches(found.Password, user.Password, a.hashKey) {
		log.Warn().Str("user_id", found.UserID).Msg("login: wrong password")
		return models.User{}, ErrWrongPassword
	}

	found.Password = ""
	return found, nil
}

func (a *authService) CreateToken(_ context.Context, user models.User) (models.Token, error) {
	token, err := a.tokens.Issue(user.UserID)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}
	return token, nil
}

// ParseToken maps every verification failure to ErrTokenIsExpiredOrInvalid.
func (a *authService) ParseToken(ctx context.Context, raw string) (models.Token, error) {
	token, err := a.tokens.Verify(raw)
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Msg("token rejected")
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}
	return token, nil
}

func (a *authService) hash(password string) string {
	return utils.HashString(password, a.hashKey)
}
