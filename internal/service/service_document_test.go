package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/MKhiriev/trip-keeper/internal/docstore"
	"github.com/MKhiriev/trip-keeper/internal/logger"
	"github.com/MKhiriev/trip-keeper/internal/mock"
	"github.com/MKhiriev/trip-keeper/internal/utils"
	"github.com/MKhiriev/trip-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// memoryDocuments serves DocumentService from a docstore.MemoryStore.
type memoryDocuments struct {
	store *docstore.MemoryStore
}

func (m memoryDocuments) Get(ctx context.Context, path string) (docstore.Document, error) {
	return m.store.Get(ctx, path)
}

func (m memoryDocuments) List(ctx context.Context, collection string) ([]docstore.Document, error) {
	return m.store.List(ctx, collection)
}

func (m memoryDocuments) Add(ctx context.Context, collection string, data json.RawMessage) (string, error) {
	return m.store.Add(ctx, collection, data)
}

func (m memoryDocuments) Write(ctx context.Context, ops []docstore.WriteOp) error {
	return m.store.BatchWrite(ctx, ops)
}

func asUser(userID string) context.Context {
	return utils.WithUserID(context.Background(), userID)
}

// newGuardedDocuments returns the access and validation chain over memory.
func newGuardedDocuments(t *testing.T) (DocumentService, *docstore.MemoryStore) {
	t.Helper()
	mem := docstore.NewMemoryStore()
	var svc DocumentService = memoryDocuments{store: mem}
	svc = NewDocumentValidationService().Wrap(svc)
	svc = NewDocumentAccessService(logger.Nop()).Wrap(svc)
	return svc, mem
}

func seedTrip(t *testing.T, mem *docstore.MemoryStore, tripID, owner string, members ...string) {
	t.Helper()
	require.NoError(t, mem.Set(context.Background(), models.TripPath(tripID), models.Trip{
		Title:   "Lisbon",
		OwnerID: owner,
		Members: members,
	}))
}

// ── documentService ──────────────────────────────────────────────────────────

func TestDocumentService_AddAssignsID(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockDocumentRepository(ctrl)
	svc := NewDocumentService(repo, fixedIDs{id: "doc-1"}, logger.Nop())

	data := json.RawMessage(`{"text":"hi"}`)
	repo.EXPECT().
		Apply(gomock.Any(), []docstore.WriteOp{docstore.CreateOp("trips/t1/messages/doc-1", data)}).
		Return(nil)

	id, err := svc.Add(context.Background(), "trips/t1/messages", data)
	require.NoError(t, err)
	assert.Equal(t, "doc-1", id)
}

func TestDocumentService_RejectsMalformedPaths(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockDocumentRepository(ctrl)
	svc := NewDocumentService(repo, fixedIDs{id: "doc-1"}, logger.Nop())
	ctx := context.Background()

	_, err := svc.Get(ctx, "trips")
	assert.ErrorIs(t, err, docstore.ErrInvalidPath)

	_, err = svc.List(ctx, "trips/t1")
	assert.ErrorIs(t, err, docstore.ErrInvalidPath)

	_, err = svc.Add(ctx, "trips/t1", json.RawMessage(`{}`))
	assert.ErrorIs(t, err, docstore.ErrInvalidPath)

	err = svc.Write(ctx, []docstore.WriteOp{docstore.DeleteOp("trips//x")})
	assert.ErrorIs(t, err, docstore.ErrInvalidPath)
}

func TestDocumentService_EmptyBatchIsNoop(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockDocumentRepository(ctrl)
	svc := NewDocumentService(repo, fixedIDs{}, logger.Nop())

	assert.NoError(t, svc.Write(context.Background(), nil))
}

// ── access policy ────────────────────────────────────────────────────────────

func TestDocumentAccess_RequiresUser(t *testing.T) {
	svc, _ := newGuardedDocuments(t)

	_, err := svc.Get(context.Background(), "users/u1/keys/master")
	assert.ErrorIs(t, err, ErrNoUserID)
}

func TestDocumentAccess_UserDocuments(t *testing.T) {
	svc, mem := newGuardedDocuments(t)
	require.NoError(t, mem.Set(context.Background(), models.MasterKeyPath("bob"), map[string]any{"key": "k"}))
	require.NoError(t, mem.Set(context.Background(), "users/bob/settings/profile", map[string]any{"name": "Bob"}))
	seedTrip(t, mem, "t1", "alice", "alice", "bob")

	tests := []struct {
		name    string
		userID  string
		path    string
		wantErr error
	}{
		{name: "owner reads own master key", userID: "bob", path: models.MasterKeyPath("bob")},
		// участник поездки читает мастер-ключ, чтобы обернуть для него ключ поездки
		{name: "co-member reads master key", userID: "alice", path: models.MasterKeyPath("bob")},
		{name: "stranger reads master key", userID: "eve", path: models.MasterKeyPath("bob"), wantErr: docstore.ErrPermissionDenied},
		{name: "stranger lists keys", userID: "eve", path: "users/bob/keys", wantErr: docstore.ErrPermissionDenied},
		{name: "stranger reads other user documents", userID: "eve", path: "users/bob/settings/profile"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var err error
			if docstore.ValidateDocumentPath(tt.path) == nil {
				_, err = svc.Get(asUser(tt.userID), tt.path)
			} else {
				_, err = svc.List(asUser(tt.userID), tt.path)
			}
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}

	err := svc.Write(asUser("alice"), []docstore.WriteOp{docstore.SetOp(models.MasterKeyPath("bob"), map[string]any{"key": "x"})})
	assert.ErrorIs(t, err, docstore.ErrPermissionDenied)

	err = svc.Write(asUser("bob"), []docstore.WriteOp{docstore.SetOp(models.MasterKeyPath("bob"), map[string]any{"key": "y"})})
	assert.NoError(t, err)
}

func TestDocumentAccess_TripMembersOnly(t *testing.T) {
	svc, mem := newGuardedDocuments(t)
	seedTrip(t, mem, "t1", "alice", "alice", "bob")

	_, err := svc.Get(asUser("bob"), models.TripPath("t1"))
	assert.NoError(t, err)

	_, err = svc.Get(asUser("eve"), models.TripPath("t1"))
	assert.ErrorIs(t, err, docstore.ErrPermissionDenied)

	_, err = svc.List(asUser("eve"), models.ItineraryPath("t1"))
	assert.ErrorIs(t, err, docstore.ErrPermissionDenied)

	_, err = svc.Add(asUser("eve"), models.MessagesPath("t1"), json.RawMessage(`{"kind":"chat","authorId":"eve","text":"hi"}`))
	assert.ErrorIs(t, err, docstore.ErrPermissionDenied)

	id, err := svc.Add(asUser("bob"), models.MessagesPath("t1"), json.RawMessage(`{"kind":"chat","authorId":"bob","text":"hi"}`))
	require.NoError(t, err)
	assert.NotEmpty(t, id)
}

func TestDocumentAccess_UnknownTripIsDenied(t *testing.T) {
	svc, _ := newGuardedDocuments(t)

	_, err := svc.Get(asUser("alice"), models.ItemPath("missing", "i1"))
	assert.ErrorIs(t, err, docstore.ErrPermissionDenied)
}

func TestDocumentAccess_UnknownTopLevelIsDenied(t *testing.T) {
	svc, _ := newGuardedDocuments(t)

	_, err := svc.List(asUser("alice"), "admin")
	assert.ErrorIs(t, err, docstore.ErrPermissionDenied)
}

func TestDocumentAccess_ListTripsFiltersByMembership(t *testing.T) {
	svc, mem := newGuardedDocuments(t)
	seedTrip(t, mem, "t1", "alice", "alice")
	seedTrip(t, mem, "t2", "bob", "bob", "alice")
	seedTrip(t, mem, "t3", "bob", "bob")

	docs, err := svc.List(asUser("alice"), models.TripsCollection)
	require.NoError(t, err)

	ids := make([]string, 0, len(docs))
	for _, d := range docs {
		ids = append(ids, d.ID)
	}
	assert.ElementsMatch(t, []string{"t1", "t2"}, ids)
}

func TestDocumentAccess_CreateTrip(t *testing.T) {
	svc, _ := newGuardedDocuments(t)

	_, err := svc.Add(asUser("alice"), models.TripsCollection, json.RawMessage(`{"title":"x","ownerId":"bob","members":["bob","alice"]}`))
	assert.ErrorIs(t, err, docstore.ErrPermissionDenied)

	_, err = svc.Add(asUser("alice"), models.TripsCollection, json.RawMessage(`{"title":"x","ownerId":"alice","members":["bob"]}`))
	assert.ErrorIs(t, err, docstore.ErrPermissionDenied)

	_, err = svc.Add(asUser("alice"), models.TripsCollection, json.RawMessage(`{"title":"x","ownerId":"alice","members":["alice","bob"]}`))
	assert.NoError(t, err)
}

func TestDocumentAccess_TripAndChildrenInOneBatch(t *testing.T) {
	svc, mem := newGuardedDocuments(t)
	ctx := asUser("alice")

	err := svc.Write(ctx, []docstore.WriteOp{
		docstore.CreateOp(models.TripPath("t9"), models.Trip{Title: "Rome", OwnerID: "alice", Members: []string{"alice"}}),
		docstore.SetOp(models.ItemPath("t9", "i1"), models.ItineraryItem{PlaceID: "p1", Day: 1, CreatedBy: "alice"}),
	})
	require.NoError(t, err)

	_, err = mem.Get(context.Background(), models.ItemPath("t9", "i1"))
	assert.NoError(t, err)
}

func TestDocumentAccess_OnlyOwnerDeletesTrip(t *testing.T) {
	svc, mem := newGuardedDocuments(t)
	seedTrip(t, mem, "t1", "alice", "alice", "bob")

	err := svc.Write(asUser("bob"), []docstore.WriteOp{docstore.DeleteOp(models.TripPath("t1"))})
	assert.ErrorIs(t, err, docstore.ErrPermissionDenied)

	err = svc.Write(asUser("alice"), []docstore.WriteOp{docstore.DeleteOp(models.TripPath("t1"))})
	assert.NoError(t, err)
}

func TestDocumentAccess_MemberCannotTakeOwnership(t *testing.T) {
	svc, mem := newGuardedDocuments(t)
	seedTrip(t, mem, "t1", "alice", "alice", "bob")

	err := svc.Write(asUser("bob"), []docstore.WriteOp{docstore.UpdateOp(models.TripPath("t1"), map[string]any{"ownerId": "bob"})})
	assert.ErrorIs(t, err, docstore.ErrPermissionDenied)

	err = svc.Write(asUser("bob"), []docstore.WriteOp{docstore.UpdateOp(models.TripPath("t1"), map[string]any{"members": []string{"alice", "bob", "carol"}})})
	assert.NoError(t, err)
}

func TestDocumentAccess_EncryptionCommitBatch(t *testing.T) {
	svc, mem := newGuardedDocuments(t)
	seedTrip(t, mem, "t1", "alice", "alice", "bob")

	ops := []docstore.WriteOp{
		docstore.SetOp(models.WrappedKeyPath("t1", "alice"), models.WrappedKeyRecord{WrappedKey: "w", SharedBy: "alice"}),
		docstore.SetOp(models.WrappedKeyPath("t1", "bob"), models.WrappedKeyRecord{SharedBy: "alice", Pending: true}),
		docstore.CreateOp(models.EncryptionMetadataPath("t1"), models.EncryptionMetadata{Enabled: true, EnabledBy: "alice"}),
		docstore.UpdateOp(models.TripPath("t1"), map[string]any{"encrypted": true}),
	}

	require.NoError(t, svc.Write(asUser("alice"), ops))

	err := svc.Write(asUser("bob"), ops)
	assert.ErrorIs(t, err, docstore.ErrAlreadyExists, "metadata is created once")
}

// ── validation ───────────────────────────────────────────────────────────────

func TestDocumentValidation_RejectsInvalidItems(t *testing.T) {
	svc, mem := newGuardedDocuments(t)
	seedTrip(t, mem, "t1", "alice", "alice", "bob")

	tests := []struct {
		name string
		item models.ItineraryItem
	}{
		{name: "no place", item: models.ItineraryItem{Day: 1, CreatedBy: "bob"}},
		{name: "day zero", item: models.ItineraryItem{PlaceID: "p1", CreatedBy: "bob"}},
		{name: "negative order", item: models.ItineraryItem{PlaceID: "p1", Day: 1, OrderIndex: -1, CreatedBy: "bob"}},
		{name: "foreign author", item: models.ItineraryItem{PlaceID: "p1", Day: 1, CreatedBy: "alice"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.Write(asUser("bob"), []docstore.WriteOp{docstore.SetOp(models.ItemPath("t1", "i1"), tt.item)})
			assert.ErrorIs(t, err, ErrInvalidDataProvided)
		})
	}
}

func TestDocumentValidation_UpdateChecksTouchedFieldsOnly(t *testing.T) {
	svc, mem := newGuardedDocuments(t)
	seedTrip(t, mem, "t1", "alice", "alice")
	ctx := asUser("alice")

	require.NoError(t, svc.Write(ctx, []docstore.WriteOp{
		docstore.SetOp(models.ItemPath("t1", "i1"), models.ItineraryItem{PlaceID: "p1", Day: 1, CreatedBy: "alice"}),
	}))

	err := svc.Write(ctx, []docstore.WriteOp{docstore.UpdateOp(models.ItemPath("t1", "i1"), map[string]any{"day": 2, "orderIndex": 3})})
	assert.NoError(t, err)

	err = svc.Write(ctx, []docstore.WriteOp{docstore.UpdateOp(models.ItemPath("t1", "i1"), map[string]any{"day": 0})})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestDocumentValidation_CommentNeedsItem(t *testing.T) {
	svc, mem := newGuardedDocuments(t)
	seedTrip(t, mem, "t1", "alice", "alice")

	_, err := svc.Add(asUser("alice"), models.MessagesPath("t1"), json.RawMessage(`{"kind":"comment","authorId":"alice","text":"nice"}`))
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}
