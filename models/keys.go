package models

import "time"

// KeyScope selects the namespace of a locally stored key.
type KeyScope string

const (
	// ScopeMaster holds a user's master key, owner is the user ID.
	ScopeMaster KeyScope = "master"
	// ScopeTrip holds a trip key, owner is TripKeyOwner(user, trip).
	ScopeTrip KeyScope = "trip"
)

// TripKeyOwner is the local owner ID of a trip key. Keys are held per user
// so that another account signing in on the same device does not inherit
// them.
func TripKeyOwner(userID, tripID string) string {
	return userID + "/" + tripID
}

// MasterKeyRecord is the remote mirror of a user's master key.
// Last writer wins.
type MasterKeyRecord struct {
	UserID    string    `json:"-"`
	Key       string    `json:"key"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// WrappedKeyRecord is a trip key wrapped under one member's master key.
// A pending record has no WrappedKey yet; it only ever moves to ready.
type WrappedKeyRecord struct {
	TripID     string    `json:"-"`
	MemberID   string    `json:"-"`
	WrappedKey string    `json:"wrappedKey,omitempty"`
	SharedBy   string    `json:"sharedBy"`
	CreatedAt  time.Time `json:"createdAt"`
	Pending    bool      `json:"pending"`
}

// EncryptionMetadata marks a trip as encrypted. It is created once and
// its creation is the commit point of trip-key generation.
type EncryptionMetadata struct {
	Enabled   bool      `json:"enabled"`
	EnabledBy string    `json:"enabledBy"`
	EnabledAt time.Time `json:"enabledAt"`
}
