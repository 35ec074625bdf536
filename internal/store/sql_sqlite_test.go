package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/MKhiriev/trip-keeper/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t, ":memory:?"+sqliteDefaultParams, sqliteDSN(""))
	assert.Equal(t, "keys.db?"+sqliteDefaultParams, sqliteDSN("keys.db"))
	// свои параметры не трогаем
	assert.Equal(t, "keys.db?_journal_mode=WAL", sqliteDSN("keys.db?_journal_mode=WAL"))
}

func TestNewConnectSQLite_CreatesDirAndMigrates(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "nested", "keys.db")

	db, err := NewConnectSQLite(context.Background(), dsn, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, db.Migrate(context.Background()))
	_, err = os.Stat(dsn)
	assert.NoError(t, err)
}

func TestNewConnectSQLite_Memory(t *testing.T) {
	db, err := NewConnectSQLite(context.Background(), "", logger.Nop())
	require.NoError(t, err)
	defer db.Close()

	assert.Equal(t, dialectSQLite, db.dialect)
	assert.NoError(t, db.PingContext(context.Background()))
}
