package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/trip-keeper/internal/logger"
	"github.com/MKhiriev/trip-keeper/models"
)

// userRepository keeps accounts in the "users" table. Login is unique.
type userRepository struct {
	*DB
	logger *logger.Logger
}

func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	return &userRepository{DB: db, logger: logger.Component("users")}
}

// CreateUser inserts user and returns the row with created_at filled in.
// A taken login is ErrLoginAlreadyExists. Inserts are not retried: a
// unique violation on a second attempt would hide the first insert.
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	query, args, err := buildCreateUserQuery(user.UserID, user.Login, user.Password)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	created, err := scanUser(r.DB.QueryRowContext(ctx, query, args...))
	switch {
	case err == nil:
		return created, nil
	case isUniqueViolation(err):
		logger.FromContext(ctx).Debug().Str("login", user.Login).Msg("login is taken")
		return models.User{}, ErrLoginAlreadyExists
	default:
		logger.FromContext(ctx).Err(err).Str("login", user.Login).Msg("insert user")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
}

// FindUserByLogin is retried on transient errors. No row is ErrUserNotFound.
func (r *userRepository) FindUserByLogin(ctx context.Context, login string) (models.User, error) {
	query, args, err := buildFindUserByLoginQuery(login)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var found models.User
	err = withRetry(ctx, r.errorClassificator, func() error {
		found, err = scanUser(r.DB.QueryRowContext(ctx, query, args...))
		return err
	})
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrUserNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("login", login).Msg("select user")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return found, nil
}

func scanUser(row *sql.Row) (models.User, error) {
	var u models.User
	err := row.Scan(&u.UserID, &u.Login, &u.Password, &u.CreatedAt)
	return u, err
}
