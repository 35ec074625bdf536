// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package keystore

import (
	"context"
	"database/sql"
	"encoding/base64"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/trip-keeper/internal/logger"
	"github.com/MKhiriev/trip-keeper/internal/store"
	"github.com/MKhiriev/trip-keeper/models"
)

const deviceKeysTable = "device_keys"

// sqliteKeyStore persists keys in the device_keys table of a local SQLite
// file. Keys are stored base64-encoded.
type sqliteKeyStore struct {
	db     *sql.DB
	logger *logger.Logger
}

// NewSQLiteKeyStore opens (creating if needed) the SQLite file at dsn,
// applies the key store schema and returns a [KeyStore] on top of it.
func NewSQLiteKeyStore(ctx context.Context, dsn string, log *logger.Logger) (KeyStore, func() error, error) {
	db, err := store.NewConnectSQLite(ctx, dsn, log)
	if err != nil {
		return nil, nil, err
	}

	if err := db.Migrate(ctx); err != nil {
		log.Err(err).Str("func", "NewSQLiteKeyStore").Msg("error migrating key store")
		db.Close()
		return nil, nil, err
	}

	return newSQLiteKeyStore(db.DB, log), db.Close, nil
}

func newSQLiteKeyStore(db *sql.DB, log *logger.Logger) *sqliteKeyStore {
	return &sqliteKeyStore{db: db, logger: log}
}

func (s *sqliteKeyStore) Get(ctx context.Context, scope models.KeyScope, ownerID string) ([]byte, error) {
	query, args, err := sq.Select("key_b64").
		From(deviceKeysTable).
		Where(sq.Eq{"scope": string(scope), "owner_id": ownerID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", store.ErrBuildingSQLQuery, err)
	}

	var encoded string
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&encoded)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		s.logger.Err(err).Str("func", "sqliteKeyStore.Get").Str("scope", string(scope)).Msg("failed to read key")
		return nil, fmt.Errorf("%w: %w", store.ErrExecutingQuery, err)
	}

	key, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil || len(key) == 0 {
		return nil, fmt.Errorf("%w: %s/%s", ErrCorruptedKey, scope, ownerID)
	}

	return key, nil
}

func (s *sqliteKeyStore) Set(ctx context.Context, scope models.KeyScope, ownerID string, key []byte) ([]byte, error) {
	if ownerID == "" || len(key) == 0 {
		return nil, ErrEmptyKey
	}

	query, args, err := sq.Insert(deviceKeysTable).
		Columns("scope", "owner_id", "key_b64").
		Values(string(scope), ownerID, base64.StdEncoding.EncodeToString(key)).
		Suffix("ON CONFLICT(scope, owner_id) DO UPDATE SET key_b64 = excluded.key_b64, updated_at = CURRENT_TIMESTAMP").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", store.ErrBuildingSQLQuery, err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		s.logger.Err(err).Str("func", "sqliteKeyStore.Set").Str("scope", string(scope)).Msg("failed to write key")
		return nil, fmt.Errorf("%w: %w", store.ErrExecutingStatement, err)
	}

	return s.Get(ctx, scope, ownerID)
}

func (s *sqliteKeyStore) Delete(ctx context.Context, scope models.KeyScope, ownerID string) error {
	query, args, err := sq.Delete(deviceKeysTable).
		Where(sq.Eq{"scope": string(scope), "owner_id": ownerID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", store.ErrBuildingSQLQuery, err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		s.logger.Err(err).Str("func", "sqliteKeyStore.Delete").Str("scope", string(scope)).Msg("failed to delete key")
		return fmt.Errorf("%w: %w", store.ErrExecutingStatement, err)
	}

	return nil
}
