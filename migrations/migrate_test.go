// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package migrations

import (
	"context"
	"io/fs"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUp_NilDB(t *testing.T) {
	applied, err := Up(context.Background(), nil, Postgres)
	assert.Nil(t, applied)
	assert.ErrorIs(t, err, ErrNilDB)
}

func TestUp_DBError(t *testing.T) {
	for _, schema := range []Schema{Postgres, SQLite} {
		t.Run(schema.String(), func(t *testing.T) {
			db, _, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			// sqlmock без ожиданий: первый же запрос goose к таблице версий падает
			applied, err := Up(context.Background(), db, schema)
			assert.Nil(t, applied)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "migrations "+schema.String())
		})
	}
}

func TestEmbeddedMigrations(t *testing.T) {
	for _, schema := range []Schema{Postgres, SQLite} {
		entries, err := fs.ReadDir(embedMigrations, schema.dir)
		require.NoError(t, err)
		require.NotEmpty(t, entries, schema.dir)

		for _, e := range entries {
			data, err := fs.ReadFile(embedMigrations, schema.dir+"/"+e.Name())
			require.NoError(t, err)
			assert.Contains(t, string(data), "-- +goose Up", e.Name())
		}
	}
}
