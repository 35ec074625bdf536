package keystore

import (
	"context"

	"github.com/MKhiriev/trip-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/keystore_mock.go -package=mock

// KeyStore is the durable per-device store of raw key material, keyed by
// (scope, ownerID). Values never leave the device.
type KeyStore interface {
	// Get returns the stored key or [ErrKeyNotFound].
	Get(ctx context.Context, scope models.KeyScope, ownerID string) ([]byte, error)

	// Set stores key and returns the value read back from storage, so the
	// caller always continues with what is actually persisted.
	Set(ctx context.Context, scope models.KeyScope, ownerID string, key []byte) ([]byte, error)

	// Delete removes the key. Removing a missing key is not an error.
	Delete(ctx context.Context, scope models.KeyScope, ownerID string) error
}
