package models

// Document layout of the remote store.
const (
	UsersCollection          = "users"
	TripsCollection          = "trips"
	KeysCollection           = "keys"
	MasterKeyDocID           = "master"
	ItineraryCollectionID    = "itinerary"
	MessagesCollectionID     = "messages"
	EncryptionKeysCollection = "encryptionKeys"
	EncryptionMetadataDocID  = "_metadata"
)

// MasterKeyPath is users/{uid}/keys/master.
func MasterKeyPath(userID string) string {
	return UsersCollection + "/" + userID + "/" + KeysCollection + "/" + MasterKeyDocID
}

// TripPath is trips/{tid}.
func TripPath(tripID string) string {
	return TripsCollection + "/" + tripID
}

// EncryptionKeysPath is trips/{tid}/encryptionKeys.
func EncryptionKeysPath(tripID string) string {
	return TripPath(tripID) + "/" + EncryptionKeysCollection
}

// WrappedKeyPath is trips/{tid}/encryptionKeys/{uid}.
func WrappedKeyPath(tripID, memberID string) string {
	return EncryptionKeysPath(tripID) + "/" + memberID
}

// EncryptionMetadataPath is trips/{tid}/encryptionKeys/_metadata.
func EncryptionMetadataPath(tripID string) string {
	return EncryptionKeysPath(tripID) + "/" + EncryptionMetadataDocID
}

// ItineraryPath is trips/{tid}/itinerary.
func ItineraryPath(tripID string) string {
	return TripPath(tripID) + "/" + ItineraryCollectionID
}

// ItemPath is trips/{tid}/itinerary/{itemId}.
func ItemPath(tripID, itemID string) string {
	return ItineraryPath(tripID) + "/" + itemID
}

// MessagesPath is trips/{tid}/messages.
func MessagesPath(tripID string) string {
	return TripPath(tripID) + "/" + MessagesCollectionID
}

// MessagePath is trips/{tid}/messages/{messageId}.
func MessagePath(tripID, messageID string) string {
	return MessagesPath(tripID) + "/" + messageID
}
