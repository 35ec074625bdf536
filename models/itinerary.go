package models

import "time"

// ItineraryItem is one stop of a trip's itinerary.
//
// Name, Address and Notes hold either plaintext or an AEAD blob; the sibling
// Encrypted* flags tell which. A nil flag means the record predates the flag
// and the stored value has to be classified by shape.
type ItineraryItem struct {
	// ID is the storage identifier assigned by the document store. Pending
	// items carry their client-generated ID here until confirmed.
	ID string `json:"-"`

	PlaceID    string `json:"placeId"`
	Day        int    `json:"day"`
	OrderIndex int    `json:"orderIndex"`
	CreatedBy  string `json:"createdBy"`

	// CreatedAt is the server timestamp of the write.
	CreatedAt time.Time `json:"-"`

	Name             string `json:"name"`
	EncryptedName    *bool  `json:"encryptedName,omitempty"`
	Address          string `json:"address"`
	EncryptedAddress *bool  `json:"encryptedAddress,omitempty"`
	Notes            string `json:"notes,omitempty"`
	EncryptedNotes   *bool  `json:"encryptedNotes,omitempty"`

	// Pending marks a local optimistic entry that has not been confirmed
	// by the remote stream yet. Never stored remotely.
	Pending bool `json:"-"`
}

// Triple is the logical identity used to match a pending stop with the
// confirmed remote record.
type Triple struct {
	PlaceID   string
	Day       int
	CreatedBy string
}

// Triple returns the item's matching key.
func (i ItineraryItem) Triple() Triple {
	return Triple{PlaceID: i.PlaceID, Day: i.Day, CreatedBy: i.CreatedBy}
}
