package service

import (
	"context"
	"encoding/json"

	"github.com/MKhiriev/trip-keeper/internal/docstore"
	"github.com/MKhiriev/trip-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// DocumentService is the server side of the hosted document store. Every
// call runs on behalf of the user stored in the context.
type DocumentService interface {
	Get(ctx context.Context, path string) (docstore.Document, error)
	List(ctx context.Context, collection string) ([]docstore.Document, error)
	// Add creates a document with a server-assigned ID and returns the ID.
	Add(ctx context.Context, collection string, data json.RawMessage) (string, error)
	// Write applies ops atomically.
	Write(ctx context.Context, ops []docstore.WriteOp) error
}

type AuthService interface {
	RegisterUser(ctx context.Context, user models.User) (models.User, error)
	Login(ctx context.Context, user models.User) (models.User, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

type AppInfoService interface {
	GetAppInfo(ctx context.Context) models.ServerInfo
}

// DocumentServiceWrapper defines middleware composition for DocumentService.
// Implementations wrap an existing DocumentService to add behavior such as
// access control or validation.
type DocumentServiceWrapper interface {
	Wrap(DocumentService) DocumentService // returns a decorated DocumentService applying additional behavior
}
