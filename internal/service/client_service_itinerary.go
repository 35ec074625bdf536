package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/MKhiriev/trip-keeper/internal/config"
	"github.com/MKhiriev/trip-keeper/internal/docstore"
	"github.com/MKhiriev/trip-keeper/internal/fieldcodec"
	"github.com/MKhiriev/trip-keeper/internal/keys"
	"github.com/MKhiriev/trip-keeper/internal/logger"
	"github.com/MKhiriev/trip-keeper/internal/reconcile"
	"github.com/MKhiriev/trip-keeper/models"
)

var ErrStopNotSynced = errors.New("stop is not saved yet")

type itineraryService struct {
	store  docstore.Store
	keys   ClientKeyManager
	codec  *fieldcodec.Codec
	cfg    config.ClientSync
	logger *logger.Logger
}

func NewItineraryService(store docstore.Store, keys ClientKeyManager, codec *fieldcodec.Codec, cfg config.ClientSync, log *logger.Logger) ItineraryService {
	return &itineraryService{store: store, keys: keys, codec: codec, cfg: cfg, logger: log}
}

// Open resolves the trip key before subscribing: a view without a key
// would only show placeholders, so the caller gets keys.ErrKeyUnavailable
// instead and may try again.
func (s *itineraryService) Open(ctx context.Context, tripID, userID string, onChange func(reconcile.View)) (ItinerarySession, error) {
	log := s.logger.With().Str("trip_id", tripID).Str("user_id", userID).Logger()

	key, err := s.keys.EnsureTripKey(ctx, tripID, userID)
	if err != nil {
		log.Warn().Err(err).Str("func", "itineraryService.Open").Msg("trip key not available")
		return nil, err
	}

	// members who joined before their first login still wait for a key
	if err := s.keys.RetryDistribution(ctx, tripID, userID); err != nil && !errors.Is(err, keys.ErrKeyUnavailable) {
		log.Warn().Err(err).Str("func", "itineraryService.Open").Msg("error retrying key distribution")
	}

	sess := &itinerarySession{
		tripID: tripID,
		userID: userID,
		key:    key,
		store:  s.store,
		codec:  s.codec,
		logger: &logger.Logger{Logger: log},
	}
	sess.tracker = reconcile.NewTracker(reconcile.Config{
		LocalUserID:    userID,
		GraceWindow:    s.cfg.GraceWindow,
		RecentWindow:   s.cfg.RecentWindow,
		EventTTL:       s.cfg.EventTTL,
		PendingTimeout: s.cfg.PendingTimeout,
	}, onChange)

	subCtx, cancel := context.WithCancel(ctx)
	unsubscribe, err := s.store.Subscribe(subCtx, models.ItineraryPath(tripID), sess.applySnapshot)
	if err != nil {
		cancel()
		sess.tracker.Close()
		return nil, fmt.Errorf("subscribe to itinerary: %w", err)
	}
	sess.stop = func() {
		unsubscribe()
		cancel()
	}

	log.Debug().Msg("itinerary opened")
	return sess, nil
}

type itinerarySession struct {
	tripID string
	userID string
	key    []byte

	store   docstore.Store
	codec   *fieldcodec.Codec
	tracker *reconcile.Tracker
	logger  *logger.Logger

	stop      func()
	closeOnce sync.Once
}

func (s *itinerarySession) TripID() string {
	return s.tripID
}

func (s *itinerarySession) View() reconcile.View {
	return s.tracker.View()
}

// applySnapshot decrypts a snapshot before reconciliation, so that matching
// and change detection work on the same values the view shows.
func (s *itinerarySession) applySnapshot(docs []docstore.Document) {
	items := make([]models.ItineraryItem, 0, len(docs))
	for _, doc := range docs {
		item, err := decodeItem(doc)
		if err != nil {
			s.logger.Warn().Err(err).Str("path", doc.Path).Msg("skipping malformed stop")
			continue
		}
		items = append(items, item)
	}
	s.tracker.ApplySnapshot(s.codec.DecryptItems(items, s.key))
}

func (s *itinerarySession) AddStop(ctx context.Context, item models.ItineraryItem) error {
	item.PlaceID = strings.TrimSpace(item.PlaceID)
	if item.PlaceID == "" || item.Day < 1 {
		return ErrInvalidDataProvided
	}

	item.ID = ""
	item.CreatedBy = s.userID
	item.Pending = false
	item.OrderIndex = nextOrderIndex(s.tracker.View().Items, item.Day)

	encrypted, err := s.codec.EncryptItem(item, s.key)
	if err != nil {
		return fmt.Errorf("encrypt stop: %w", err)
	}

	clientID := s.tracker.AddPending(item)
	if _, err := s.store.Add(ctx, models.ItineraryPath(s.tripID), encrypted); err != nil {
		s.tracker.RemovePending(clientID)
		s.logger.Err(err).Str("func", "itinerarySession.AddStop").Str("place_id", item.PlaceID).Msg("error adding stop")
		return fmt.Errorf("add stop: %w", err)
	}
	return nil
}

func (s *itinerarySession) MoveStop(ctx context.Context, itemID string, day, orderIndex int) error {
	if day < 1 || orderIndex < 0 {
		return ErrInvalidDataProvided
	}
	if err := s.requireConfirmed(itemID); err != nil {
		return err
	}

	s.tracker.ApplyLocalMove(itemID, day, orderIndex)
	err := s.store.Update(ctx, models.ItemPath(s.tripID, itemID), map[string]any{
		"day":        day,
		"orderIndex": orderIndex,
	})
	if err != nil {
		s.tracker.RevertMove(itemID)
		s.logger.Err(err).Str("func", "itinerarySession.MoveStop").Str("item_id", itemID).Msg("error moving stop")
		return fmt.Errorf("move stop: %w", err)
	}
	return nil
}

func (s *itinerarySession) DeleteStop(ctx context.Context, itemID string) error {
	if err := s.requireConfirmed(itemID); err != nil {
		return err
	}

	if err := s.store.Delete(ctx, models.ItemPath(s.tripID, itemID)); err != nil {
		s.logger.Err(err).Str("func", "itinerarySession.DeleteStop").Str("item_id", itemID).Msg("error deleting stop")
		return fmt.Errorf("delete stop: %w", err)
	}
	return nil
}

func (s *itinerarySession) Close() {
	s.closeOnce.Do(func() {
		s.stop()
		s.tracker.Close()
		s.logger.Debug().Msg("itinerary closed")
	})
}

func (s *itinerarySession) requireConfirmed(itemID string) error {
	for _, item := range s.tracker.View().Items {
		if item.ID != itemID {
			continue
		}
		if item.Pending {
			return ErrStopNotSynced
		}
		return nil
	}
	return fmt.Errorf("%w: stop %s", docstore.ErrNotFound, itemID)
}

// nextOrderIndex appends to the end of the day.
func nextOrderIndex(items []models.ItineraryItem, day int) int {
	next := 0
	for _, item := range items {
		if item.Day == day && item.OrderIndex >= next {
			next = item.OrderIndex + 1
		}
	}
	return next
}
