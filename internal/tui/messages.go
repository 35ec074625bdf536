package tui

import (
	"github.com/MKhiriev/trip-keeper/internal/reconcile"
	"github.com/MKhiriev/trip-keeper/internal/service"
	"github.com/MKhiriev/trip-keeper/models"
)

// NavigateTo switches the active page of [RootModel]. A non-nil Payload is
// delivered to the new page instead of its Init command.
type NavigateTo struct {
	Page    string
	Payload any
}

// LoginResult finishes the login or registration flow.
type LoginResult struct {
	Err  error
	User models.User
}

// quitRequested ends the login flow as if the user pressed ctrl+c.
type quitRequested struct{}

type tripsLoadedMsg struct {
	trips []models.Trip
	err   error
}

type tripSavedMsg struct {
	trip models.Trip
	err  error
}

type memberAddedMsg struct {
	memberID string
	err      error
}

type itineraryOpenedMsg struct {
	gen     int
	session service.ItinerarySession
	feed    *feed[itineraryUpdate]
	err     error
}

type itineraryUpdate struct {
	gen  int
	view reconcile.View
}

type chatOpenedMsg struct {
	gen  int
	stop func()
	feed *feed[chatUpdate]
	err  error
}

type chatUpdate struct {
	gen      int
	messages []models.Message
}

type stopWrittenMsg struct {
	action string
	err    error
}

type messageSentMsg struct {
	err error
}

type sharesRetriedMsg struct {
	err error
}

type copiedMsg struct{}

type clearStatusMsg struct{}
