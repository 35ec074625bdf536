package keystore

import (
	"bytes"
	"context"
	"sync"

	"github.com/MKhiriev/trip-keeper/models"
)

type memoryKey struct {
	scope   models.KeyScope
	ownerID string
}

// memoryKeyStore keeps keys in process memory. Used by tests and by
// clients started without a key store file.
type memoryKeyStore struct {
	mu   sync.RWMutex
	keys map[memoryKey][]byte
}

// NewMemoryKeyStore returns an empty in-memory [KeyStore].
func NewMemoryKeyStore() KeyStore {
	return &memoryKeyStore{keys: make(map[memoryKey][]byte)}
}

func (m *memoryKeyStore) Get(ctx context.Context, scope models.KeyScope, ownerID string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	key, ok := m.keys[memoryKey{scope, ownerID}]
	if !ok {
		return nil, ErrKeyNotFound
	}
	return bytes.Clone(key), nil
}

func (m *memoryKeyStore) Set(ctx context.Context, scope models.KeyScope, ownerID string, key []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if ownerID == "" || len(key) == 0 {
		return nil, ErrEmptyKey
	}

	m.mu.Lock()
	m.keys[memoryKey{scope, ownerID}] = bytes.Clone(key)
	m.mu.Unlock()

	return m.Get(ctx, scope, ownerID)
}

func (m *memoryKeyStore) Delete(ctx context.Context, scope models.KeyScope, ownerID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	delete(m.keys, memoryKey{scope, ownerID})
	m.mu.Unlock()
	return nil
}
