package store

import (
	"context"

	"github.com/MKhiriev/trip-keeper/internal/docstore"
	"github.com/MKhiriev/trip-keeper/models"
)

// ErrorClassificator decides whether a failed database operation may be
// retried.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}

// UserRepository stores accounts of the document server.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByLogin(ctx context.Context, login string) (models.User, error)
}

// DocumentRepository persists documents of the hosted document store.
// Errors use the docstore sentinels so that the HTTP layer can map them
// without knowing the database.
type DocumentRepository interface {
	Get(ctx context.Context, path string) (docstore.Document, error)
	List(ctx context.Context, collection string) ([]docstore.Document, error)
	// Apply executes ops in one transaction.
	Apply(ctx context.Context, ops []docstore.WriteOp) error
}
