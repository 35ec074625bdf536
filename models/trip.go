package models

import (
	"slices"
	"time"
)

// Trip is the shared trip document. Members is the authoritative list of
// user IDs that may read and write the trip's subcollections.
type Trip struct {
	ID string `json:"-"`

	// Title is either plaintext or an AEAD blob, see EncryptedTitle.
	Title          string `json:"title"`
	EncryptedTitle *bool  `json:"encryptedTitle,omitempty"`

	OwnerID string   `json:"ownerId"`
	Members []string `json:"members"`

	// Encrypted mirrors the trip's EncryptionMetadata marker so list views
	// can tell encrypted trips apart without reading the metadata document.
	Encrypted bool `json:"encrypted"`

	CreatedAt time.Time `json:"createdAt"`
}

// HasMember reports whether userID belongs to the trip.
func (t Trip) HasMember(userID string) bool {
	return slices.Contains(t.Members, userID)
}
