package store

import (
	"context"
	"database/sql"

	"github.com/MKhiriev/trip-keeper/internal/logger"
	"github.com/MKhiriev/trip-keeper/migrations"
)

const (
	dialectPostgres = "postgres"
	dialectSQLite   = "sqlite"
)

// DB is a database handle shared by the repositories of one process.
type DB struct {
	*sql.DB
	errorClassificator ErrorClassificator
	logger             *logger.Logger
	dialect            string
}

// Migrate applies the embedded schema of the connection's dialect.
func (db *DB) Migrate(ctx context.Context) error {
	schema := migrations.Postgres
	if db.dialect == dialectSQLite {
		schema = migrations.SQLite
	}

	applied, err := migrations.Up(ctx, db.DB, schema)
	if err != nil {
		return err
	}
	if len(applied) > 0 {
		db.logger.Info().Str("schema", schema.String()).Ints64("versions", applied).Msg("migrations applied")
	}
	return nil
}
