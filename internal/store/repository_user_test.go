package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/trip-keeper/internal/logger"
	"github.com/MKhiriev/trip-keeper/models"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var userColumns = []string{"user_id", "login", "password", "created_at"}

func newTestUserRepo(t *testing.T, classifier ErrorClassificator) (*userRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	l := logger.Nop()
	return &userRepository{DB: &DB{DB: db, logger: l, errorClassificator: classifier}, logger: l}, mock, db
}

func TestUserRepository_CreateUser(t *testing.T) {
	created := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	user := models.User{UserID: "u-1", Login: "john", Password: "hash"}

	tests := []struct {
		name    string
		setup   func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "inserted",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("INSERT INTO users").
					WithArgs("u-1", "john", "hash").
					WillReturnRows(sqlmock.NewRows(userColumns).AddRow("u-1", "john", "hash", created))
			},
		},
		{
			name: "login taken",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("INSERT INTO users").
					WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation})
			},
			wantErr: ErrLoginAlreadyExists,
		},
		{
			name: "driver error",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("INSERT INTO users").WillReturnError(errors.New("db network error"))
			},
			wantErr: ErrExecutingQuery,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, db := newTestUserRepo(t, nil)
			defer db.Close()
			tt.setup(mock)

			got, err := repo.CreateUser(context.Background(), user)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "john", got.Login)
				assert.True(t, got.CreatedAt.Equal(created))
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_FindUserByLogin(t *testing.T) {
	repo, mock, db := newTestUserRepo(t, nil)
	defer db.Close()

	mock.ExpectQuery("SELECT user_id, login, password, created_at FROM users").
		WithArgs("john").
		WillReturnRows(sqlmock.NewRows(userColumns).AddRow("u-1", "john", "hash", time.Now()))

	found, err := repo.FindUserByLogin(context.Background(), "john")
	require.NoError(t, err)
	assert.Equal(t, "u-1", found.UserID)
	assert.Equal(t, "hash", found.Password)
}

func TestUserRepository_FindUserByLogin_NotFound(t *testing.T) {
	repo, mock, db := newTestUserRepo(t, NewPostgresErrorClassifier())
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM users").
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows(userColumns))

	_, err := repo.FindUserByLogin(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindUserByLogin_RetriesConnectionLoss(t *testing.T) {
	repo, mock, db := newTestUserRepo(t, NewPostgresErrorClassifier())
	defer db.Close()

	// первая попытка падает на обрыве соединения, вторая проходит
	mock.ExpectQuery("SELECT (.+) FROM users").
		WillReturnError(&pgconn.PgError{Code: pgerrcode.ConnectionException})
	mock.ExpectQuery("SELECT (.+) FROM users").
		WillReturnRows(sqlmock.NewRows(userColumns).AddRow("u-1", "john", "hash", time.Now()))

	found, err := repo.FindUserByLogin(context.Background(), "john")
	require.NoError(t, err)
	assert.Equal(t, "u-1", found.UserID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindUserByLogin_DBError(t *testing.T) {
	repo, mock, db := newTestUserRepo(t, nil)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM users").WillReturnError(errors.New("boom"))

	_, err := repo.FindUserByLogin(context.Background(), "john")
	assert.ErrorIs(t, err, ErrExecutingQuery)
	assert.NotErrorIs(t, err, ErrUserNotFound)
}
