package models

import (
	"strconv"
	"time"
)

// ChangeKind is the kind of a transient itinerary change notification.
type ChangeKind string

const (
	ChangeAdded   ChangeKind = "added"
	ChangeRemoved ChangeKind = "removed"
	ChangeMoved   ChangeKind = "moved"
)

// ChangeEvent is a short-lived notification about a remote change, used by
// views to highlight stops. It expires at ExpiresAt.
type ChangeEvent struct {
	Kind      ChangeKind
	ItemID    string
	Item      ItineraryItem
	At        time.Time
	ExpiresAt time.Time
}

// Key identifies the stop the event refers to: the storage ID, or the
// matching triple when the item has no ID.
func (e ChangeEvent) Key() string {
	if e.ItemID != "" {
		return e.ItemID
	}
	t := e.Item.Triple()
	return t.PlaceID + "|" + t.CreatedBy + "|" + strconv.Itoa(t.Day)
}
