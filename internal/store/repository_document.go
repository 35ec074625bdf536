package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/trip-keeper/internal/docstore"
	"github.com/MKhiriev/trip-keeper/internal/logger"
)

// documentRepository stores documents in the "documents" table. Data is a
// JSONB object; timestamps come from clock_timestamp() so that every write
// gets its own server time.
type documentRepository struct {
	*DB
	logger *logger.Logger
}

// NewDocumentRepository constructs a [DocumentRepository] backed by db.
func NewDocumentRepository(db *DB, logger *logger.Logger) DocumentRepository {
	logger.Debug().Msg("creating document repository")
	return &documentRepository{
		DB:     db,
		logger: logger,
	}
}

type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (r *documentRepository) Get(ctx context.Context, path string) (docstore.Document, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildGetDocumentQuery(path)
	if err != nil {
		return docstore.Document{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	doc, err := scanDocument(r.DB.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return docstore.Document{}, fmt.Errorf("%w: %s", docstore.ErrNotFound, path)
	}
	if err != nil {
		log.Err(err).Str("func", "documentRepository.Get").Str("path", path).Msg("failed to get document")
		return docstore.Document{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return doc, nil
}

func (r *documentRepository) List(ctx context.Context, collection string) ([]docstore.Document, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListDocumentsQuery(collection)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "documentRepository.List").Str("collection", collection).Msg("failed to list documents")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	docs := make([]docstore.Document, 0)
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			log.Err(err).Str("func", "documentRepository.List").Str("collection", collection).Msg("failed to scan document")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return docs, nil
}

// Apply runs ops in one transaction and retries the whole transaction on
// transient errors (serialization failures, deadlocks, lost connections).
func (r *documentRepository) Apply(ctx context.Context, ops []docstore.WriteOp) error {
	return withRetry(ctx, r.errorClassificator, func() error {
		return r.apply(ctx, ops)
	})
}

func (r *documentRepository) apply(ctx context.Context, ops []docstore.WriteOp) error {
	log := logger.FromContext(ctx)

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "documentRepository.Apply").Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	for i, op := range ops {
		if err := applyOp(ctx, tx, op); err != nil {
			log.Err(err).
				Str("func", "documentRepository.Apply").
				Int("op_index", i).
				Str("kind", string(op.Kind)).
				Str("path", op.Path).
				Msg("failed to apply write")
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		log.Err(err).Str("func", "documentRepository.Apply").Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}

func applyOp(ctx context.Context, q queryer, op docstore.WriteOp) error {
	collection, id, err := docstore.SplitPath(op.Path)
	if err != nil {
		return err
	}

	var (
		query string
		args  []any
	)

	switch op.Kind {
	case docstore.OpSet, docstore.OpCreate:
		data, encErr := docstore.EncodeData(op.Data)
		if encErr != nil {
			return encErr
		}
		if op.Kind == docstore.OpCreate {
			query, args, err = buildInsertDocumentQuery(op.Path, collection, id, data)
		} else {
			query, args, err = buildUpsertDocumentQuery(op.Path, collection, id, data)
		}
	case docstore.OpUpdate:
		patch, encErr := docstore.EncodeData(op.Fields)
		if encErr != nil {
			return encErr
		}
		query, args, err = buildUpdateDocumentQuery(op.Path, patch)
	case docstore.OpDelete:
		query, args, err = buildDeleteDocumentQuery(op.Path)
	default:
		return fmt.Errorf("%w: unknown operation %q", docstore.ErrWriteRejected, op.Kind)
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", docstore.ErrAlreadyExists, op.Path)
		}
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if op.Kind == docstore.OpUpdate {
		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
		if affected == 0 {
			return fmt.Errorf("%w: %s", docstore.ErrNotFound, op.Path)
		}
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(row rowScanner) (docstore.Document, error) {
	var (
		doc  docstore.Document
		data []byte
	)
	if err := row.Scan(&doc.Path, &doc.ID, &data, &doc.CreateTime, &doc.UpdateTime); err != nil {
		return docstore.Document{}, err
	}
	doc.Data = data
	doc.CreateTime = doc.CreateTime.UTC()
	doc.UpdateTime = doc.UpdateTime.UTC()
	return doc, nil
}
