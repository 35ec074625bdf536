package keys

import (
	"context"
	"fmt"

	"github.com/MKhiriev/trip-keeper/internal/docstore"
	"github.com/MKhiriev/trip-keeper/models"
)

// documentRemote implements [RemoteKeys] on a document store using the
// paths defined in models.
type documentRemote struct {
	store docstore.Store
}

// NewDocumentRemote returns [RemoteKeys] backed by store.
func NewDocumentRemote(store docstore.Store) RemoteKeys {
	return &documentRemote{store: store}
}

func (r *documentRemote) GetMasterKey(ctx context.Context, userID string) (models.MasterKeyRecord, error) {
	var rec models.MasterKeyRecord
	if err := r.get(ctx, models.MasterKeyPath(userID), &rec); err != nil {
		return models.MasterKeyRecord{}, err
	}
	rec.UserID = userID
	return rec, nil
}

func (r *documentRemote) SetMasterKey(ctx context.Context, record models.MasterKeyRecord) error {
	return r.store.Set(ctx, models.MasterKeyPath(record.UserID), record)
}

func (r *documentRemote) GetTrip(ctx context.Context, tripID string) (models.Trip, error) {
	var trip models.Trip
	if err := r.get(ctx, models.TripPath(tripID), &trip); err != nil {
		return models.Trip{}, err
	}
	trip.ID = tripID
	return trip, nil
}

func (r *documentRemote) GetWrappedKey(ctx context.Context, tripID, memberID string) (models.WrappedKeyRecord, error) {
	var rec models.WrappedKeyRecord
	if err := r.get(ctx, models.WrappedKeyPath(tripID, memberID), &rec); err != nil {
		return models.WrappedKeyRecord{}, err
	}
	rec.TripID, rec.MemberID = tripID, memberID
	return rec, nil
}

func (r *documentRemote) SetWrappedKey(ctx context.Context, record models.WrappedKeyRecord) error {
	return r.store.Set(ctx, models.WrappedKeyPath(record.TripID, record.MemberID), record)
}

func (r *documentRemote) PutWrappedKeys(ctx context.Context, tripID string, records []models.WrappedKeyRecord) error {
	if len(records) == 0 {
		return nil
	}
	ops := make([]docstore.WriteOp, 0, len(records))
	for _, rec := range records {
		ops = append(ops, docstore.SetOp(models.WrappedKeyPath(tripID, rec.MemberID), rec))
	}
	return r.store.BatchWrite(ctx, ops)
}

func (r *documentRemote) GetEncryptionMetadata(ctx context.Context, tripID string) (models.EncryptionMetadata, error) {
	var meta models.EncryptionMetadata
	if err := r.get(ctx, models.EncryptionMetadataPath(tripID), &meta); err != nil {
		return models.EncryptionMetadata{}, err
	}
	return meta, nil
}

func (r *documentRemote) CommitTripKey(ctx context.Context, tripID string, records []models.WrappedKeyRecord, meta models.EncryptionMetadata) error {
	ops := make([]docstore.WriteOp, 0, len(records)+2)
	for _, rec := range records {
		ops = append(ops, docstore.SetOp(models.WrappedKeyPath(tripID, rec.MemberID), rec))
	}
	ops = append(ops,
		docstore.CreateOp(models.EncryptionMetadataPath(tripID), meta),
		docstore.UpdateOp(models.TripPath(tripID), map[string]any{"encrypted": true}),
	)
	return r.store.BatchWrite(ctx, ops)
}

func (r *documentRemote) get(ctx context.Context, path string, v any) error {
	doc, err := r.store.Get(ctx, path)
	if err != nil {
		return err
	}
	if err := doc.DataTo(v); err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	return nil
}
