package service

import (
	"context"
	"time"

	"github.com/MKhiriev/trip-keeper/internal/docstore"
	"github.com/MKhiriev/trip-keeper/internal/reconcile"
	"github.com/MKhiriev/trip-keeper/models"
)

// ClientKeyManager is the part of keys.Manager the client services use.
type ClientKeyManager interface {
	GetOrCreateMasterKey(ctx context.Context, userID string) ([]byte, error)
	EnsureTripKey(ctx context.Context, tripID, userID string) ([]byte, error)
	GetTripEncryptionKey(ctx context.Context, tripID, userID string) ([]byte, error)
	ShareTripKeyWithNewMember(ctx context.Context, tripID, newMemberID, sharerID string) error
	RetryDistribution(ctx context.Context, tripID, userID string) error
}

// ClientAuthService defines the client-side contract for registration and
// login. A successful call leaves the adapter holding a bearer token and the
// user's master key published, so other members can share trip keys with
// this user.
type ClientAuthService interface {
	// Register creates the account and returns the user with its
	// server-assigned ID.
	Register(ctx context.Context, login, password string) (models.User, error)

	// Login authenticates and returns the user.
	Login(ctx context.Context, login, password string) (models.User, error)
}

// TripService manages trips and their membership.
type TripService interface {
	// CreateTrip stores a new trip owned by ownerID, generates its trip key
	// and stores the title encrypted under it.
	CreateTrip(ctx context.Context, ownerID, title string) (models.Trip, error)

	// AddMember appends memberID to the trip and shares the trip key with
	// it. The member is added even when the key cannot be shared yet; the
	// error then wraps keys.ErrKeyUnavailable and the pending share is
	// completed by RetryPendingShares.
	AddMember(ctx context.Context, tripID, memberID, sharerID string) error

	// ListTrips returns the trips userID belongs to with decrypted titles.
	ListTrips(ctx context.Context, userID string) ([]models.Trip, error)

	// GetTrip returns one trip with its decrypted title.
	GetTrip(ctx context.Context, tripID, userID string) (models.Trip, error)

	// RetryPendingShares finishes pending trip-key shares of every trip of
	// userID. Trips whose key is not available to userID are skipped.
	RetryPendingShares(ctx context.Context, userID string) error
}

// ItineraryService opens live itinerary views.
type ItineraryService interface {
	// Open ensures the trip key, subscribes to the itinerary and reports
	// every reconciled view to onChange until the session is closed or ctx
	// is cancelled. onChange must not call back into the session
	// synchronously.
	Open(ctx context.Context, tripID, userID string, onChange func(reconcile.View)) (ItinerarySession, error)
}

// ItinerarySession is one open trip view.
type ItinerarySession interface {
	TripID() string

	// View returns the current merged stops and active change events.
	View() reconcile.View

	// AddStop shows the stop at once as pending and writes it. The stop is
	// appended to its day. On a failed write the pending entry is removed
	// and the error returned.
	AddStop(ctx context.Context, item models.ItineraryItem) error

	// MoveStop moves a confirmed stop. The new position is shown at once
	// and reverted if the write fails.
	MoveStop(ctx context.Context, itemID string, day, orderIndex int) error

	// DeleteStop deletes a confirmed stop.
	DeleteStop(ctx context.Context, itemID string) error

	Close()
}

// MessageService sends and reads the trip chat and stop comments.
type MessageService interface {
	Send(ctx context.Context, tripID, userID, text string) (models.Message, error)
	Comment(ctx context.Context, tripID, itemID, userID, text string) (models.Message, error)

	// List returns every message of the trip, oldest first, with text
	// decrypted or replaced by a placeholder.
	List(ctx context.Context, tripID, userID string) ([]models.Message, error)

	// Subscribe delivers decrypted message lists on every change.
	Subscribe(ctx context.Context, tripID, userID string, onChange func([]models.Message)) (docstore.Unsubscribe, error)
}

// ClientKeyJob periodically finishes pending trip-key shares for the
// signed-in user.
type ClientKeyJob interface {
	// Start launches the background goroutine. Any running job is stopped
	// first. A non-positive interval defaults to one minute.
	Start(ctx context.Context, userID string, interval time.Duration)

	// Stop cancels the goroutine and waits for it to exit.
	Stop()
}
