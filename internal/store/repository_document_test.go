package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/trip-keeper/internal/docstore"
	"github.com/MKhiriev/trip-keeper/internal/logger"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDocumentRepo(t *testing.T) (*documentRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	l := logger.Nop()
	return &documentRepository{DB: &DB{DB: db, logger: l}, logger: l}, mock, db
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

var documentRowColumns = []string{"path", "doc_id", "data", "created_at", "updated_at"}

func TestDocumentRepository_Get(t *testing.T) {
	repo, mock, db := newTestDocumentRepo(t)
	defer db.Close()

	created := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	mock.ExpectQuery("SELECT path, doc_id, data, created_at, updated_at FROM documents WHERE path = \\$1").
		WithArgs("trips/t1").
		WillReturnRows(sqlmock.NewRows(documentRowColumns).
			AddRow("trips/t1", "t1", []byte(`{"title":"Rome"}`), created, created))

	doc, err := repo.Get(context.Background(), "trips/t1")
	require.NoError(t, err)
	assert.Equal(t, "t1", doc.ID)
	assert.JSONEq(t, `{"title":"Rome"}`, string(doc.Data))
	assert.Equal(t, created, doc.CreateTime)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentRepository_GetNotFound(t *testing.T) {
	repo, mock, db := newTestDocumentRepo(t)
	defer db.Close()

	mock.ExpectQuery("FROM documents").
		WillReturnRows(sqlmock.NewRows(documentRowColumns))

	_, err := repo.Get(context.Background(), "trips/none")
	assert.ErrorIs(t, err, docstore.ErrNotFound)
}

func TestDocumentRepository_List(t *testing.T) {
	repo, mock, db := newTestDocumentRepo(t)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery("FROM documents WHERE collection = \\$1 ORDER BY created_at, path").
		WithArgs("trips/t1/itinerary").
		WillReturnRows(sqlmock.NewRows(documentRowColumns).
			AddRow("trips/t1/itinerary/a", "a", []byte(`{}`), now, now).
			AddRow("trips/t1/itinerary/b", "b", []byte(`{}`), now.Add(time.Millisecond), now))

	docs, err := repo.List(context.Background(), "trips/t1/itinerary")
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "b", docs[1].ID)
}

func TestDocumentRepository_ApplyCommits(t *testing.T) {
	repo, mock, db := newTestDocumentRepo(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO documents .+ ON CONFLICT \\(path\\) DO UPDATE").
		WithArgs("trips/t1/encryptionKeys/u1", "trips/t1/encryptionKeys", "u1", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO documents").
		WithArgs("trips/t1/encryptionKeys/_metadata", "trips/t1/encryptionKeys", "_metadata", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE documents SET data = data \\|\\| \\$1::jsonb").
		WithArgs(`{"encrypted":true}`, "trips/t1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM documents WHERE path = \\$1").
		WithArgs("trips/t1/itinerary/x").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := repo.Apply(context.Background(), []docstore.WriteOp{
		docstore.SetOp("trips/t1/encryptionKeys/u1", map[string]any{"wrappedKey": "k"}),
		docstore.CreateOp("trips/t1/encryptionKeys/_metadata", map[string]any{"enabled": true}),
		docstore.UpdateOp("trips/t1", map[string]any{"encrypted": true}),
		docstore.DeleteOp("trips/t1/itinerary/x"),
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentRepository_ApplyCreateConflictRollsBack(t *testing.T) {
	repo, mock, db := newTestDocumentRepo(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO documents").
		WillReturnError(pgError(pgerrcode.UniqueViolation))
	mock.ExpectRollback()

	err := repo.Apply(context.Background(), []docstore.WriteOp{
		docstore.CreateOp("trips/t1/encryptionKeys/_metadata", map[string]any{"enabled": true}),
	})
	assert.ErrorIs(t, err, docstore.ErrAlreadyExists)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentRepository_ApplyUpdateMissing(t *testing.T) {
	repo, mock, db := newTestDocumentRepo(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE documents").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.Apply(context.Background(), []docstore.WriteOp{
		docstore.UpdateOp("trips/t1", map[string]any{"title": "x"}),
	})
	assert.ErrorIs(t, err, docstore.ErrNotFound)
}

func TestDocumentRepository_ApplyRejectsNonObject(t *testing.T) {
	repo, mock, db := newTestDocumentRepo(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := repo.Apply(context.Background(), []docstore.WriteOp{
		docstore.SetOp("trips/t1", []string{"not", "object"}),
	})
	assert.ErrorIs(t, err, docstore.ErrWriteRejected)
}

func TestDocumentRepository_ApplyRetriesTransientErrors(t *testing.T) {
	repo, mock, db := newTestDocumentRepo(t)
	defer db.Close()
	repo.errorClassificator = NewPostgresErrorClassifier()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM documents").
		WillReturnError(pgError(pgerrcode.SerializationFailure))
	mock.ExpectRollback()
	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM documents").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Apply(context.Background(), []docstore.WriteOp{docstore.DeleteOp("trips/t1")})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentRepository_ApplyBeginError(t *testing.T) {
	repo, mock, db := newTestDocumentRepo(t)
	defer db.Close()

	mock.ExpectBegin().WillReturnError(errors.New("conn lost"))

	err := repo.Apply(context.Background(), []docstore.WriteOp{docstore.DeleteOp("trips/t1")})
	assert.ErrorIs(t, err, ErrBeginningTransaction)
}
