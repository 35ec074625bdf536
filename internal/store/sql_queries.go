package store

import (
	sq "github.com/Masterminds/squirrel"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const (
	documentsTable = "documents"
	usersTable     = "users"
)

var documentColumns = []string{"path", "doc_id", "data", "created_at", "updated_at"}

func buildGetDocumentQuery(path string) (string, []any, error) {
	return psql.Select(documentColumns...).
		From(documentsTable).
		Where(sq.Eq{"path": path}).
		ToSql()
}

func buildListDocumentsQuery(collection string) (string, []any, error) {
	return psql.Select(documentColumns...).
		From(documentsTable).
		Where(sq.Eq{"collection": collection}).
		OrderBy("created_at", "path").
		ToSql()
}

func buildInsertDocumentQuery(path, collection, id string, data []byte) (string, []any, error) {
	return psql.Insert(documentsTable).
		Columns("path", "collection", "doc_id", "data").
		Values(path, collection, id, string(data)).
		ToSql()
}

func buildUpsertDocumentQuery(path, collection, id string, data []byte) (string, []any, error) {
	return psql.Insert(documentsTable).
		Columns("path", "collection", "doc_id", "data").
		Values(path, collection, id, string(data)).
		Suffix("ON CONFLICT (path) DO UPDATE SET data = EXCLUDED.data, updated_at = clock_timestamp()").
		ToSql()
}

// buildUpdateDocumentQuery merges patch into the stored object (top-level keys).
func buildUpdateDocumentQuery(path string, patch []byte) (string, []any, error) {
	return psql.Update(documentsTable).
		Set("data", sq.Expr("data || ?::jsonb", string(patch))).
		Set("updated_at", sq.Expr("clock_timestamp()")).
		Where(sq.Eq{"path": path}).
		ToSql()
}

func buildDeleteDocumentQuery(path string) (string, []any, error) {
	return psql.Delete(documentsTable).
		Where(sq.Eq{"path": path}).
		ToSql()
}

func buildCreateUserQuery(userID, login, passwordHash string) (string, []any, error) {
	return psql.Insert(usersTable).
		Columns("user_id", "login", "password").
		Values(userID, login, passwordHash).
		Suffix("RETURNING user_id, login, password, created_at").
		ToSql()
}

func buildFindUserByLoginQuery(login string) (string, []any, error) {
	return psql.Select("user_id", "login", "password", "created_at").
		From(usersTable).
		Where(sq.Eq{"login": login}).
		ToSql()
}
