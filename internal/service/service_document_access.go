package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/trip-keeper/internal/docstore"
	"github.com/MKhiriev/trip-keeper/internal/logger"
	"github.com/MKhiriev/trip-keeper/internal/utils"
	"github.com/MKhiriev/trip-keeper/models"
)

// documentAccessService enforces who may touch which path:
//
//   - users/{uid}/** is writable by uid and readable by every signed-in
//     user, except users/{uid}/keys/**: the raw master key mirror is read
//     only by uid and by users who share a trip with uid.
//   - trips/{tid} and everything below it is open to trip members only.
//     A trip document may be created by its owner, who must be a member.
//     Only the owner deletes a trip.
//   - listing trips returns the caller's trips.
//
// Membership is taken from the stored trip document, or from the trip
// document written in the same batch.
type documentAccessService struct {
	inner  DocumentService
	logger *logger.Logger
}

func NewDocumentAccessService(logger *logger.Logger) DocumentServiceWrapper {
	return &documentAccessService{logger: logger}
}

func (s *documentAccessService) Wrap(inner DocumentService) DocumentService {
	s.inner = inner
	return s
}

func (s *documentAccessService) Get(ctx context.Context, path string) (docstore.Document, error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return docstore.Document{}, err
	}

	if err := s.checkRead(ctx, userID, path); err != nil {
		return docstore.Document{}, err
	}

	return s.inner.Get(ctx, path)
}

func (s *documentAccessService) List(ctx context.Context, collection string) ([]docstore.Document, error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}

	if collection != models.TripsCollection {
		if err := s.checkRead(ctx, userID, collection); err != nil {
			return nil, err
		}
		return s.inner.List(ctx, collection)
	}

	docs, err := s.inner.List(ctx, collection)
	if err != nil {
		return nil, err
	}

	visible := make([]docstore.Document, 0, len(docs))
	for _, doc := range docs {
		var trip models.Trip
		if err := doc.DataTo(&trip); err != nil {
			logger.FromContext(ctx).Warn().Err(err).Str("path", doc.Path).Msg("skipping undecodable trip")
			continue
		}
		if trip.HasMember(userID) {
			visible = append(visible, doc)
		}
	}

	return visible, nil
}

func (s *documentAccessService) Add(ctx context.Context, collection string, data json.RawMessage) (string, error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return "", err
	}

	segments := strings.Split(collection, "/")
	switch {
	case segments[0] == models.TripsCollection && len(segments) == 1:
		if err := checkNewTrip(userID, data); err != nil {
			return "", err
		}
	default:
		if err := s.checkWrite(ctx, userID, collection, nil); err != nil {
			return "", err
		}
	}

	return s.inner.Add(ctx, collection, data)
}

func (s *documentAccessService) Write(ctx context.Context, ops []docstore.WriteOp) error {
	userID, err := currentUser(ctx)
	if err != nil {
		return err
	}

	proposed, err := proposedTrips(ops)
	if err != nil {
		return err
	}

	for _, op := range ops {
		if err := s.checkOp(ctx, userID, op, proposed); err != nil {
			logger.FromContext(ctx).Warn().
				Str("user_id", userID).
				Str("kind", string(op.Kind)).
				Str("path", op.Path).
				Msg("write denied")
			return err
		}
	}

	return s.inner.Write(ctx, ops)
}

func (s *documentAccessService) checkOp(ctx context.Context, userID string, op docstore.WriteOp, proposed map[string]models.Trip) error {
	segments := strings.Split(op.Path, "/")
	if segments[0] != models.TripsCollection || len(segments) != 2 {
		return s.checkWrite(ctx, userID, op.Path, proposed)
	}

	stored, err := s.storedTrip(ctx, segments[1])
	if errors.Is(err, docstore.ErrNotFound) {
		switch op.Kind {
		case docstore.OpSet, docstore.OpCreate:
			return checkNewTrip(userID, op.Data)
		case docstore.OpDelete:
			return nil
		default:
			return fmt.Errorf("%w: %s", docstore.ErrNotFound, op.Path)
		}
	}
	if err != nil {
		return err
	}

	if !stored.HasMember(userID) {
		return deny(op.Path)
	}

	switch op.Kind {
	case docstore.OpDelete:
		if stored.OwnerID != userID {
			return deny(op.Path)
		}
	case docstore.OpSet:
		next, ok := proposed[segments[1]]
		if ok && next.OwnerID != stored.OwnerID {
			return deny(op.Path)
		}
	case docstore.OpUpdate:
		if owner, ok := op.Fields["ownerId"]; ok && owner != stored.OwnerID {
			return deny(op.Path)
		}
	}

	return nil
}

func (s *documentAccessService) checkRead(ctx context.Context, userID, path string) error {
	segments := strings.Split(path, "/")
	switch segments[0] {
	case models.UsersCollection:
		if len(segments) < 3 || segments[2] != models.KeysCollection || segments[1] == userID {
			return nil
		}
		shared, err := s.sharesTrip(ctx, userID, segments[1])
		if err != nil {
			return err
		}
		if !shared {
			return deny(path)
		}
		return nil
	case models.TripsCollection:
		if len(segments) < 2 {
			return deny(path)
		}
		trip, err := s.storedTrip(ctx, segments[1])
		if errors.Is(err, docstore.ErrNotFound) {
			return deny(path)
		}
		if err != nil {
			return err
		}
		if !trip.HasMember(userID) {
			return deny(path)
		}
		return nil
	default:
		return deny(path)
	}
}

// checkWrite covers every path except trip documents themselves.
func (s *documentAccessService) checkWrite(ctx context.Context, userID, path string, proposed map[string]models.Trip) error {
	segments := strings.Split(path, "/")
	switch segments[0] {
	case models.UsersCollection:
		if len(segments) < 2 || segments[1] != userID {
			return deny(path)
		}
		return nil
	case models.TripsCollection:
		if len(segments) < 3 {
			return deny(path)
		}
		if trip, ok := proposed[segments[1]]; ok {
			if !trip.HasMember(userID) {
				return deny(path)
			}
			return nil
		}
		return s.checkRead(ctx, userID, path)
	default:
		return deny(path)
	}
}

// sharesTrip reports whether some stored trip has both users as members.
func (s *documentAccessService) sharesTrip(ctx context.Context, userID, otherID string) (bool, error) {
	docs, err := s.inner.List(ctx, models.TripsCollection)
	if err != nil {
		return false, err
	}
	for _, doc := range docs {
		var trip models.Trip
		if err := doc.DataTo(&trip); err != nil {
			continue
		}
		if trip.HasMember(userID) && trip.HasMember(otherID) {
			return true, nil
		}
	}
	return false, nil
}

func (s *documentAccessService) storedTrip(ctx context.Context, tripID string) (models.Trip, error) {
	doc, err := s.inner.Get(ctx, models.TripPath(tripID))
	if err != nil {
		return models.Trip{}, err
	}

	var trip models.Trip
	if err := doc.DataTo(&trip); err != nil {
		return models.Trip{}, fmt.Errorf("%w: %w", docstore.ErrWriteRejected, err)
	}
	return trip, nil
}

// proposedTrips collects trip documents created or replaced by ops.
func proposedTrips(ops []docstore.WriteOp) (map[string]models.Trip, error) {
	trips := make(map[string]models.Trip)
	for _, op := range ops {
		if op.Kind != docstore.OpSet && op.Kind != docstore.OpCreate {
			continue
		}
		segments := strings.Split(op.Path, "/")
		if segments[0] != models.TripsCollection || len(segments) != 2 {
			continue
		}

		var trip models.Trip
		if err := decodeData(op.Data, &trip); err != nil {
			return nil, err
		}
		trips[segments[1]] = trip
	}
	return trips, nil
}

func checkNewTrip(userID string, data any) error {
	var trip models.Trip
	if err := decodeData(data, &trip); err != nil {
		return err
	}
	if trip.OwnerID != userID || !trip.HasMember(userID) {
		return fmt.Errorf("%w: new trip must be owned by its creator", docstore.ErrPermissionDenied)
	}
	return nil
}

func decodeData(data any, v any) error {
	raw, err := docstore.EncodeData(data)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	return nil
}

func currentUser(ctx context.Context) (string, error) {
	userID, ok := utils.UserIDFromContext(ctx)
	if !ok {
		return "", ErrNoUserID
	}
	return userID, nil
}

func deny(path string) error {
	return fmt.Errorf("%w: %s", docstore.ErrPermissionDenied, path)
}
