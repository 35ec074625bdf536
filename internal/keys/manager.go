package keys

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/trip-keeper/internal/crypto"
	"github.com/MKhiriev/trip-keeper/internal/docstore"
	"github.com/MKhiriev/trip-keeper/internal/keystore"
	"github.com/MKhiriev/trip-keeper/internal/logger"
	"github.com/MKhiriev/trip-keeper/models"
)

// Manager resolves master and trip keys for one device. It keeps decrypted
// trip keys in memory in front of the device [keystore.KeyStore] and
// distributes trip keys to members through [RemoteKeys].
type Manager struct {
	codec  crypto.SymmetricCodec
	local  keystore.KeyStore
	remote RemoteKeys
	logger *logger.Logger
	now    func() time.Time

	mu       sync.Mutex
	tripKeys map[tripKeyID][]byte
}

// tripKeyID scopes a cached trip key to the user it was unwrapped for.
type tripKeyID struct {
	userID string
	tripID string
}

// NewManager returns a Manager with an empty trip-key cache.
func NewManager(codec crypto.SymmetricCodec, local keystore.KeyStore, remote RemoteKeys, log *logger.Logger) *Manager {
	return &Manager{
		codec:    codec,
		local:    local,
		remote:   remote,
		logger:   log,
		now:      time.Now,
		tripKeys: make(map[tripKeyID][]byte),
	}
}

// GetOrCreateMasterKey returns the user's master key. The remote copy wins,
// then the local one, and only when neither exists a new key is generated.
// Whatever source wins is mirrored to the other side.
func (m *Manager) GetOrCreateMasterKey(ctx context.Context, userID string) ([]byte, error) {
	log := m.logger.With().Str("func", "Manager.GetOrCreateMasterKey").Str("user_id", userID).Logger()

	var remoteErr error
	rec, err := m.remote.GetMasterKey(ctx, userID)
	switch {
	case err == nil:
		key, decodeErr := decodeKey(rec.Key)
		if decodeErr == nil {
			if _, setErr := m.local.Set(ctx, models.ScopeMaster, userID, key); setErr != nil {
				log.Warn().Err(setErr).Msg("error mirroring master key to device")
			}
			return key, nil
		}
		log.Warn().Err(decodeErr).Msg("remote master key is unreadable, falling back to device key")
	case errors.Is(err, docstore.ErrNotFound):
	default:
		remoteErr = err
	}

	key, err := m.local.Get(ctx, models.ScopeMaster, userID)
	switch {
	case err == nil:
		if remoteErr != nil {
			log.Warn().Err(remoteErr).Msg("remote is unreachable, using device master key")
			return key, nil
		}
		return m.publishMasterKey(ctx, userID, key)
	case errors.Is(err, keystore.ErrKeyNotFound), errors.Is(err, keystore.ErrCorruptedKey):
	default:
		return nil, fmt.Errorf("read device master key: %w", err)
	}

	// Generating while the remote is unreachable would fork the user's key.
	if remoteErr != nil {
		return nil, fmt.Errorf("%w: read remote master key: %w", ErrKeyUnavailable, remoteErr)
	}

	key, err = m.codec.GenerateKey()
	if err != nil {
		return nil, fmt.Errorf("generate master key: %w", err)
	}
	if key, err = m.local.Set(ctx, models.ScopeMaster, userID, key); err != nil {
		return nil, fmt.Errorf("store master key: %w", err)
	}
	log.Info().Msg("generated new master key")

	return m.publishMasterKey(ctx, userID, key)
}

// publishMasterKey writes key to the remote and reads it back. A different
// value read back means another device won; that value is adopted locally.
func (m *Manager) publishMasterKey(ctx context.Context, userID string, key []byte) ([]byte, error) {
	log := m.logger.With().Str("func", "Manager.publishMasterKey").Str("user_id", userID).Logger()

	record := models.MasterKeyRecord{
		UserID:    userID,
		Key:       base64.StdEncoding.EncodeToString(key),
		UpdatedAt: m.now().UTC(),
	}
	if err := m.remote.SetMasterKey(ctx, record); err != nil {
		log.Warn().Err(err).Msg("error publishing master key, keeping device key")
		return key, nil
	}

	stored, err := m.remote.GetMasterKey(ctx, userID)
	if err != nil {
		log.Warn().Err(err).Msg("error reading back master key")
		return key, nil
	}
	remoteKey, err := decodeKey(stored.Key)
	if err != nil {
		return key, nil
	}
	if string(remoteKey) == string(key) {
		return key, nil
	}

	log.Info().Msg("another device published a master key first, adopting it")
	adopted, err := m.local.Set(ctx, models.ScopeMaster, userID, remoteKey)
	if err != nil {
		return nil, fmt.Errorf("store adopted master key: %w", err)
	}
	return adopted, nil
}

// GetTripKey returns the trip key for userID or nil when it is not
// available yet: no wrapped record exists or the record is pending.
func (m *Manager) GetTripKey(ctx context.Context, tripID, userID string) ([]byte, error) {
	if key := m.cached(userID, tripID); key != nil {
		return key, nil
	}

	key, err := m.local.Get(ctx, models.ScopeTrip, models.TripKeyOwner(userID, tripID))
	switch {
	case err == nil:
		m.remember(userID, tripID, key)
		return key, nil
	case errors.Is(err, keystore.ErrKeyNotFound), errors.Is(err, keystore.ErrCorruptedKey):
	default:
		return nil, fmt.Errorf("read device trip key: %w", err)
	}

	rec, err := m.remote.GetWrappedKey(ctx, tripID, userID)
	if errors.Is(err, docstore.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read wrapped trip key: %w", err)
	}
	if rec.Pending || rec.WrappedKey == "" {
		return nil, nil
	}

	master, err := m.GetOrCreateMasterKey(ctx, userID)
	if err != nil {
		return nil, err
	}
	key, err = m.codec.Unwrap(rec.WrappedKey, master)
	if err != nil {
		return nil, fmt.Errorf("%w: unwrap trip key: %w", ErrKeyUnavailable, err)
	}

	if stored, setErr := m.local.Set(ctx, models.ScopeTrip, models.TripKeyOwner(userID, tripID), key); setErr != nil {
		m.logger.Warn().Err(setErr).Str("func", "Manager.GetTripKey").Str("trip_id", tripID).Msg("error storing trip key on device")
	} else {
		key = stored
	}
	m.remember(userID, tripID, key)
	return key, nil
}

// GetTripEncryptionKey is GetTripKey under the name field-level
// collaborators use.
func (m *Manager) GetTripEncryptionKey(ctx context.Context, tripID, userID string) ([]byte, error) {
	return m.GetTripKey(ctx, tripID, userID)
}

// GenerateAndShareTripKey creates the trip key and wraps it for every
// member in one batch. The create-if-absent write of the metadata marker
// decides concurrent callers: the loser reads the winner's key.
// On an already encrypted trip it retries distribution instead.
func (m *Manager) GenerateAndShareTripKey(ctx context.Context, tripID, ownerID string) ([]byte, error) {
	log := m.logger.With().Str("func", "Manager.GenerateAndShareTripKey").Str("trip_id", tripID).Logger()

	meta, err := m.remote.GetEncryptionMetadata(ctx, tripID)
	if err != nil && !errors.Is(err, docstore.ErrNotFound) {
		return nil, fmt.Errorf("read encryption metadata: %w", err)
	}
	if err == nil && meta.Enabled {
		if err := m.RetryDistribution(ctx, tripID, ownerID); err != nil && !errors.Is(err, ErrKeyUnavailable) {
			log.Warn().Err(err).Msg("error retrying key distribution")
		}
		return m.requireTripKey(ctx, tripID, ownerID)
	}

	trip, err := m.remote.GetTrip(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("read trip: %w", err)
	}
	if !trip.HasMember(ownerID) {
		return nil, ErrNotMember
	}

	tripKey, err := m.codec.GenerateKey()
	if err != nil {
		return nil, fmt.Errorf("generate trip key: %w", err)
	}

	records := make([]models.WrappedKeyRecord, 0, len(trip.Members))
	for _, member := range trip.Members {
		rec, err := m.wrapFor(ctx, tripKey, tripID, member, ownerID)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	meta = models.EncryptionMetadata{Enabled: true, EnabledBy: ownerID, EnabledAt: m.now().UTC()}
	err = m.remote.CommitTripKey(ctx, tripID, records, meta)
	if errors.Is(err, docstore.ErrAlreadyExists) {
		log.Info().Msg("trip key was generated concurrently, using the winner's key")
		return m.requireTripKey(ctx, tripID, ownerID)
	}
	if err != nil {
		return nil, fmt.Errorf("commit trip key: %w", err)
	}

	stored, err := m.local.Set(ctx, models.ScopeTrip, models.TripKeyOwner(ownerID, tripID), tripKey)
	if err != nil {
		return nil, fmt.Errorf("store trip key: %w", err)
	}
	m.remember(ownerID, tripID, stored)
	log.Info().Int("members", len(records)).Msg("trip key generated and shared")
	return stored, nil
}

// ShareTripKeyWithNewMember wraps the trip key for newMemberID. When the
// new member has no master key yet a pending record is written and
// [ErrKeyUnavailable] is returned; RetryDistribution finishes it later.
func (m *Manager) ShareTripKeyWithNewMember(ctx context.Context, tripID, newMemberID, sharerID string) error {
	tripKey, err := m.GetTripKey(ctx, tripID, sharerID)
	if err != nil {
		return err
	}
	if tripKey == nil {
		return ErrKeyUnavailable
	}

	existing, err := m.remote.GetWrappedKey(ctx, tripID, newMemberID)
	hasRecord := err == nil
	switch {
	case hasRecord && !existing.Pending:
		return nil
	case hasRecord, errors.Is(err, docstore.ErrNotFound):
	default:
		return fmt.Errorf("read wrapped trip key: %w", err)
	}

	rec, err := m.wrapFor(ctx, tripKey, tripID, newMemberID, sharerID)
	if err != nil {
		return err
	}
	if rec.Pending && hasRecord {
		return ErrKeyUnavailable
	}
	if err := m.remote.SetWrappedKey(ctx, rec); err != nil {
		return fmt.Errorf("write wrapped trip key: %w", err)
	}
	if rec.Pending {
		return ErrKeyUnavailable
	}
	return nil
}

// RetryDistribution wraps the trip key for members whose record is missing
// or pending and whose master key can now be read.
func (m *Manager) RetryDistribution(ctx context.Context, tripID, userID string) error {
	tripKey, err := m.GetTripKey(ctx, tripID, userID)
	if err != nil {
		return err
	}
	if tripKey == nil {
		return ErrKeyUnavailable
	}

	trip, err := m.remote.GetTrip(ctx, tripID)
	if err != nil {
		return fmt.Errorf("read trip: %w", err)
	}

	var records []models.WrappedKeyRecord
	for _, member := range trip.Members {
		existing, err := m.remote.GetWrappedKey(ctx, tripID, member)
		hasRecord := err == nil
		switch {
		case hasRecord && !existing.Pending:
			continue
		case hasRecord, errors.Is(err, docstore.ErrNotFound):
		default:
			return fmt.Errorf("read wrapped trip key: %w", err)
		}

		rec, err := m.wrapFor(ctx, tripKey, tripID, member, userID)
		if err != nil {
			return err
		}
		if rec.Pending && hasRecord {
			continue
		}
		records = append(records, rec)
	}

	if err := m.remote.PutWrappedKeys(ctx, tripID, records); err != nil {
		return fmt.Errorf("write wrapped trip keys: %w", err)
	}
	if len(records) > 0 {
		m.logger.Info().Str("func", "Manager.RetryDistribution").Str("trip_id", tripID).
			Int("records", len(records)).Msg("trip key redistributed")
	}
	return nil
}

// EnableTripEncryption turns encryption on for the trip. Calling it on an
// encrypted trip only retries distribution.
func (m *Manager) EnableTripEncryption(ctx context.Context, tripID, userID string) error {
	meta, err := m.remote.GetEncryptionMetadata(ctx, tripID)
	if err != nil && !errors.Is(err, docstore.ErrNotFound) {
		return fmt.Errorf("read encryption metadata: %w", err)
	}
	if err == nil && meta.Enabled {
		return m.RetryDistribution(ctx, tripID, userID)
	}
	_, err = m.GenerateAndShareTripKey(ctx, tripID, userID)
	return err
}

// EnsureTripKey is the single place deciding that a trip key is "not ready
// yet". It enables encryption at most once and reports [ErrKeyUnavailable]
// when the key still cannot be read.
func (m *Manager) EnsureTripKey(ctx context.Context, tripID, userID string) ([]byte, error) {
	key, err := m.GetTripKey(ctx, tripID, userID)
	if err != nil || key != nil {
		return key, err
	}

	// Publishing the master key lets other members finish a pending record.
	if _, err := m.GetOrCreateMasterKey(ctx, userID); err != nil {
		return nil, err
	}
	if err := m.EnableTripEncryption(ctx, tripID, userID); err != nil && !errors.Is(err, ErrKeyUnavailable) {
		return nil, err
	}
	return m.requireTripKey(ctx, tripID, userID)
}

// Forget drops the cached keys of tripID for every user, e.g. when a trip
// view is closed for good. The device store is left alone.
func (m *Manager) Forget(tripID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id := range m.tripKeys {
		if id.tripID == tripID {
			delete(m.tripKeys, id)
		}
	}
}

func (m *Manager) requireTripKey(ctx context.Context, tripID, userID string) ([]byte, error) {
	key, err := m.GetTripKey(ctx, tripID, userID)
	if err != nil {
		return nil, err
	}
	if key == nil {
		return nil, ErrKeyUnavailable
	}
	return key, nil
}

// wrapFor builds the wrapped record of memberID. The acting user's own
// master key may be created; other members are only looked up and get a
// pending record when they have none.
func (m *Manager) wrapFor(ctx context.Context, tripKey []byte, tripID, memberID, actorID string) (models.WrappedKeyRecord, error) {
	rec := models.WrappedKeyRecord{
		TripID:    tripID,
		MemberID:  memberID,
		SharedBy:  actorID,
		CreatedAt: m.now().UTC(),
	}

	var master []byte
	if memberID == actorID {
		key, err := m.GetOrCreateMasterKey(ctx, memberID)
		if err != nil {
			return models.WrappedKeyRecord{}, err
		}
		master = key
	} else {
		master = m.lookupMasterKey(ctx, memberID)
	}

	if master == nil {
		rec.Pending = true
		return rec, nil
	}

	wrapped, err := m.codec.Wrap(tripKey, master)
	if err != nil {
		return models.WrappedKeyRecord{}, fmt.Errorf("wrap trip key for %s: %w", memberID, err)
	}
	rec.WrappedKey = wrapped
	return rec, nil
}

// lookupMasterKey reads another user's published master key. Any failure
// means the member cannot be served yet.
func (m *Manager) lookupMasterKey(ctx context.Context, userID string) []byte {
	rec, err := m.remote.GetMasterKey(ctx, userID)
	if err != nil {
		if !errors.Is(err, docstore.ErrNotFound) {
			m.logger.Warn().Err(err).Str("func", "Manager.lookupMasterKey").Str("user_id", userID).Msg("error reading member master key")
		}
		return nil
	}
	key, err := decodeKey(rec.Key)
	if err != nil {
		return nil
	}
	return key
}

func (m *Manager) cached(userID, tripID string) []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tripKeys[tripKeyID{userID, tripID}]
}

func (m *Manager) remember(userID, tripID string, key []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tripKeys[tripKeyID{userID, tripID}] = key
}

func decodeKey(encoded string) ([]byte, error) {
	key, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil || len(key) != crypto.KeySize {
		return nil, ErrInvalidMasterKey
	}
	return key, nil
}
