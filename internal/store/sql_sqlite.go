package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/MKhiriev/trip-keeper/internal/logger"
)

const (
	sqliteMemory = ":memory:"
	// busy timeout in ms and foreign keys, appended when the DSN has no query
	sqliteDefaultParams = "_busy_timeout=5000&_foreign_keys=on"
)

// NewConnectSQLite opens the device-local SQLite database at dsn, creating
// its directory if needed. An empty dsn is an in-memory database.
func NewConnectSQLite(ctx context.Context, dsn string, log *logger.Logger) (*DB, error) {
	log = log.Component("sqlite")

	if err := ensureSQLiteDir(dsn); err != nil {
		return nil, err
	}

	conn, err := sql.Open("sqlite3", sqliteDSN(dsn))
	if err != nil {
		return nil, fmt.Errorf("open sqlite %q: %w", dsn, err)
	}
	// one connection: a single writer, and ":memory:" stays one database
	conn.SetMaxOpenConns(1)

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ping sqlite %q: %w", dsn, err)
	}

	log.Debug().Str("dsn", dsn).Msg("sqlite opened")
	return &DB{DB: conn, logger: log, dialect: dialectSQLite}, nil
}

func sqliteDSN(dsn string) string {
	if dsn == "" {
		dsn = sqliteMemory
	}
	if strings.Contains(dsn, "?") {
		return dsn
	}
	return dsn + "?" + sqliteDefaultParams
}

func ensureSQLiteDir(dsn string) error {
	if dsn == "" || strings.HasPrefix(dsn, sqliteMemory) || strings.HasPrefix(dsn, "file:") {
		return nil
	}

	dir := filepath.Dir(dsn)
	if dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create sqlite dir %q: %w", dir, err)
	}
	return nil
}
