// Package migrations embeds the SQL schema of the server database
// (PostgreSQL) and of the client key store (SQLite) and applies it with goose.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
)

//go:embed postgres/*.sql sqlite/*.sql
var embedMigrations embed.FS

// Schema is one embedded migration set and the dialect it is written for.
type Schema struct {
	dir     string
	dialect goose.Dialect
}

var (
	Postgres = Schema{dir: "postgres", dialect: goose.DialectPostgres}
	SQLite   = Schema{dir: "sqlite", dialect: goose.DialectSQLite3}
)

var ErrNilDB = errors.New("migrations: db is nil")

func (s Schema) String() string {
	return s.dir
}

// Up applies the pending migrations of schema and returns the versions it
// applied, oldest first.
func Up(ctx context.Context, db *sql.DB, schema Schema) ([]int64, error) {
	if db == nil {
		return nil, ErrNilDB
	}

	fsys, err := fs.Sub(embedMigrations, schema.dir)
	if err != nil {
		return nil, fmt.Errorf("migrations %s: %w", schema, err)
	}

	provider, err := goose.NewProvider(schema.dialect, db, fsys)
	if err != nil {
		return nil, fmt.Errorf("migrations %s: %w", schema, err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return nil, fmt.Errorf("migrations %s up: %w", schema, err)
	}

	applied := make([]int64, 0, len(results))
	for _, r := range results {
		applied = append(applied, r.Source.Version)
	}
	return applied, nil
}
