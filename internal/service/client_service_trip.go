package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/trip-keeper/internal/docstore"
	"github.com/MKhiriev/trip-keeper/internal/fieldcodec"
	"github.com/MKhiriev/trip-keeper/internal/keys"
	"github.com/MKhiriev/trip-keeper/internal/logger"
	"github.com/MKhiriev/trip-keeper/models"
)

type tripService struct {
	store  docstore.Store
	keys   ClientKeyManager
	codec  *fieldcodec.Codec
	ids    IDGenerator
	now    func() time.Time
	logger *logger.Logger
}

func NewTripService(store docstore.Store, keys ClientKeyManager, codec *fieldcodec.Codec, ids IDGenerator, log *logger.Logger) TripService {
	return &tripService{
		store:  store,
		keys:   keys,
		codec:  codec,
		ids:    ids,
		now:    time.Now,
		logger: log,
	}
}

// CreateTrip writes the trip with an empty title first: the trip key can
// only be generated for an existing member list, and the title must never
// reach the server in plaintext.
func (s *tripService) CreateTrip(ctx context.Context, ownerID, title string) (models.Trip, error) {
	title = strings.TrimSpace(title)
	if ownerID == "" || title == "" {
		return models.Trip{}, ErrInvalidDataProvided
	}

	trip := models.Trip{
		ID:        s.ids.Generate(),
		OwnerID:   ownerID,
		Members:   []string{ownerID},
		CreatedAt: s.now().UTC(),
	}
	log := s.logger.With().Str("func", "tripService.CreateTrip").Str("trip_id", trip.ID).Logger()

	if err := s.store.Set(ctx, models.TripPath(trip.ID), trip); err != nil {
		log.Err(err).Msg("error creating trip")
		return models.Trip{}, fmt.Errorf("create trip: %w", err)
	}

	key, err := s.keys.EnsureTripKey(ctx, trip.ID, ownerID)
	if err != nil {
		log.Err(err).Msg("error generating trip key")
		return models.Trip{}, fmt.Errorf("generate trip key: %w", err)
	}

	encrypted, err := s.codec.EncryptTrip(models.Trip{Title: title}, key)
	if err != nil {
		return models.Trip{}, fmt.Errorf("encrypt trip title: %w", err)
	}
	err = s.store.Update(ctx, models.TripPath(trip.ID), map[string]any{
		"title":          encrypted.Title,
		"encryptedTitle": encrypted.EncryptedTitle,
	})
	if err != nil {
		log.Err(err).Msg("error storing trip title")
		return models.Trip{}, fmt.Errorf("store trip title: %w", err)
	}

	trip.Title = title
	trip.Encrypted = true
	log.Info().Msg("trip created")
	return trip, nil
}

func (s *tripService) AddMember(ctx context.Context, tripID, memberID, sharerID string) error {
	memberID = strings.TrimSpace(memberID)
	if tripID == "" || memberID == "" {
		return ErrInvalidDataProvided
	}
	log := s.logger.With().Str("func", "tripService.AddMember").Str("trip_id", tripID).Str("member_id", memberID).Logger()

	trip, err := s.readTrip(ctx, tripID)
	if err != nil {
		return err
	}
	if !trip.HasMember(sharerID) {
		return keys.ErrNotMember
	}

	if !trip.HasMember(memberID) {
		members := append(trip.Members, memberID)
		if err := s.store.Update(ctx, models.TripPath(tripID), map[string]any{"members": members}); err != nil {
			log.Err(err).Msg("error adding member")
			return fmt.Errorf("add member: %w", err)
		}
	}

	if err := s.keys.ShareTripKeyWithNewMember(ctx, tripID, memberID, sharerID); err != nil {
		if errors.Is(err, keys.ErrKeyUnavailable) {
			log.Info().Msg("member added, trip key share is pending")
			return fmt.Errorf("member added, key share pending: %w", err)
		}
		log.Err(err).Msg("error sharing trip key")
		return fmt.Errorf("share trip key: %w", err)
	}

	log.Info().Msg("member added")
	return nil
}

func (s *tripService) ListTrips(ctx context.Context, userID string) ([]models.Trip, error) {
	trips, err := s.memberTrips(ctx, userID)
	if err != nil {
		return nil, err
	}

	for i, trip := range trips {
		trips[i] = s.decryptTrip(ctx, trip, userID)
	}
	return trips, nil
}

func (s *tripService) GetTrip(ctx context.Context, tripID, userID string) (models.Trip, error) {
	trip, err := s.readTrip(ctx, tripID)
	if err != nil {
		return models.Trip{}, err
	}
	if !trip.HasMember(userID) {
		return models.Trip{}, keys.ErrNotMember
	}
	return s.decryptTrip(ctx, trip, userID), nil
}

func (s *tripService) RetryPendingShares(ctx context.Context, userID string) error {
	trips, err := s.memberTrips(ctx, userID)
	if err != nil {
		return err
	}

	var errs []error
	for _, trip := range trips {
		if !trip.Encrypted {
			continue
		}
		err := s.keys.RetryDistribution(ctx, trip.ID, userID)
		if err == nil || errors.Is(err, keys.ErrKeyUnavailable) {
			continue
		}
		s.logger.Warn().Err(err).Str("func", "tripService.RetryPendingShares").Str("trip_id", trip.ID).
			Msg("error retrying key distribution")
		errs = append(errs, fmt.Errorf("trip %s: %w", trip.ID, err))
	}
	return errors.Join(errs...)
}

func (s *tripService) memberTrips(ctx context.Context, userID string) ([]models.Trip, error) {
	docs, err := s.store.List(ctx, models.TripsCollection)
	if err != nil {
		return nil, fmt.Errorf("list trips: %w", err)
	}

	trips := make([]models.Trip, 0, len(docs))
	for _, doc := range docs {
		trip, err := decodeTrip(doc)
		if err != nil {
			s.logger.Warn().Err(err).Str("path", doc.Path).Msg("skipping malformed trip")
			continue
		}
		if trip.HasMember(userID) {
			trips = append(trips, trip)
		}
	}
	return trips, nil
}

func (s *tripService) readTrip(ctx context.Context, tripID string) (models.Trip, error) {
	doc, err := s.store.Get(ctx, models.TripPath(tripID))
	if err != nil {
		return models.Trip{}, fmt.Errorf("read trip: %w", err)
	}
	return decodeTrip(doc)
}

// decryptTrip never fails: without a key the title degrades to its
// placeholder.
func (s *tripService) decryptTrip(ctx context.Context, trip models.Trip, userID string) models.Trip {
	var key []byte
	if trip.Encrypted || (trip.EncryptedTitle != nil && *trip.EncryptedTitle) {
		var err error
		key, err = s.keys.GetTripEncryptionKey(ctx, trip.ID, userID)
		if err != nil {
			s.logger.Debug().Err(err).Str("trip_id", trip.ID).Msg("trip key not readable")
		}
	}
	return s.codec.DecryptTrip(trip, key)
}
