package keys

import (
	"context"

	"github.com/MKhiriev/trip-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/keys_mock.go -package=mock

// RemoteKeys reads and writes the key documents of the remote store.
// Missing documents are reported with docstore.ErrNotFound.
type RemoteKeys interface {
	GetMasterKey(ctx context.Context, userID string) (models.MasterKeyRecord, error)
	SetMasterKey(ctx context.Context, record models.MasterKeyRecord) error

	GetTrip(ctx context.Context, tripID string) (models.Trip, error)

	GetWrappedKey(ctx context.Context, tripID, memberID string) (models.WrappedKeyRecord, error)
	SetWrappedKey(ctx context.Context, record models.WrappedKeyRecord) error
	// PutWrappedKeys writes several records in one batch.
	PutWrappedKeys(ctx context.Context, tripID string, records []models.WrappedKeyRecord) error

	GetEncryptionMetadata(ctx context.Context, tripID string) (models.EncryptionMetadata, error)

	// CommitTripKey atomically writes all wrapped records, creates the
	// metadata marker and flags the trip as encrypted. It fails with
	// docstore.ErrAlreadyExists when the marker already exists.
	CommitTripKey(ctx context.Context, tripID string, records []models.WrappedKeyRecord, meta models.EncryptionMetadata) error
}

// TripKeyProvider is the part of [Manager] used by the field-level
// services.
type TripKeyProvider interface {
	EnsureTripKey(ctx context.Context, tripID, userID string) ([]byte, error)
	GetTripEncryptionKey(ctx context.Context, tripID, userID string) ([]byte, error)
}
