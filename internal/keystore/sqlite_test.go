package keystore

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/trip-keeper/internal/logger"
	"github.com/MKhiriev/trip-keeper/internal/store"
	"github.com/MKhiriev/trip-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockedKeyStore(t *testing.T) (*sqliteKeyStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return newSQLiteKeyStore(db, logger.Nop()), mock
}

func TestSQLiteKeyStore_SetReadsBack(t *testing.T) {
	ks, mock := newMockedKeyStore(t)
	key := []byte("0123456789abcdef0123456789abcdef")
	encoded := base64.StdEncoding.EncodeToString(key)

	mock.ExpectExec(`INSERT INTO device_keys \(scope,owner_id,key_b64\) VALUES \(\?,\?,\?\) ON CONFLICT`).
		WithArgs("trip", "t1", encoded).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery(`SELECT key_b64 FROM device_keys WHERE owner_id = \? AND scope = \?`).
		WithArgs("t1", "trip").
		WillReturnRows(sqlmock.NewRows([]string{"key_b64"}).AddRow(encoded))

	stored, err := ks.Set(context.Background(), models.ScopeTrip, "t1", key)
	require.NoError(t, err)
	assert.Equal(t, key, stored)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteKeyStore_GetNotFound(t *testing.T) {
	ks, mock := newMockedKeyStore(t)

	mock.ExpectQuery(`SELECT key_b64 FROM device_keys`).
		WillReturnRows(sqlmock.NewRows([]string{"key_b64"}))

	_, err := ks.Get(context.Background(), models.ScopeMaster, "u1")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestSQLiteKeyStore_GetCorrupted(t *testing.T) {
	ks, mock := newMockedKeyStore(t)

	mock.ExpectQuery(`SELECT key_b64 FROM device_keys`).
		WillReturnRows(sqlmock.NewRows([]string{"key_b64"}).AddRow("%%%"))

	_, err := ks.Get(context.Background(), models.ScopeMaster, "u1")
	assert.ErrorIs(t, err, ErrCorruptedKey)
}

func TestSQLiteKeyStore_WriteError(t *testing.T) {
	ks, mock := newMockedKeyStore(t)

	mock.ExpectExec(`INSERT INTO device_keys`).
		WillReturnError(errors.New("disk full"))

	_, err := ks.Set(context.Background(), models.ScopeMaster, "u1", []byte("k"))
	assert.ErrorIs(t, err, store.ErrExecutingStatement)
}

func TestSQLiteKeyStore_Delete(t *testing.T) {
	ks, mock := newMockedKeyStore(t)

	mock.ExpectExec(`DELETE FROM device_keys WHERE owner_id = \? AND scope = \?`).
		WithArgs("u1", "master").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, ks.Delete(context.Background(), models.ScopeMaster, "u1"))
	require.NoError(t, mock.ExpectationsWereMet())
}
