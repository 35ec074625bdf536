package fieldcodec

import (
	"github.com/MKhiriev/trip-keeper/models"
)

// EncryptItem encrypts name, address and notes of item and sets their
// flags.
func (c *Codec) EncryptItem(item models.ItineraryItem, key []byte) (models.ItineraryItem, error) {
	name, err := c.EncryptField(item.Name, key)
	if err != nil {
		return models.ItineraryItem{}, err
	}
	address, err := c.EncryptField(item.Address, key)
	if err != nil {
		return models.ItineraryItem{}, err
	}
	notes, err := c.EncryptField(item.Notes, key)
	if err != nil {
		return models.ItineraryItem{}, err
	}

	item.Name, item.EncryptedName = name.Value, name.Flag()
	item.Address, item.EncryptedAddress = address.Value, address.Flag()
	item.Notes, item.EncryptedNotes = notes.Value, notes.Flag()
	return item, nil
}

// DecryptItem returns item with displayable name, address and notes. Flags
// of the result are cleared.
func (c *Codec) DecryptItem(item models.ItineraryItem, key []byte) models.ItineraryItem {
	item.Name = c.DecryptField(item.Name, item.EncryptedName, key, RoleName)
	item.Address = c.DecryptField(item.Address, item.EncryptedAddress, key, RoleAddress)
	item.Notes = c.DecryptField(item.Notes, item.EncryptedNotes, key, RoleNotes)
	item.EncryptedName, item.EncryptedAddress, item.EncryptedNotes = nil, nil, nil
	return item
}

// DecryptItems decrypts every item of a list.
func (c *Codec) DecryptItems(items []models.ItineraryItem, key []byte) []models.ItineraryItem {
	out := make([]models.ItineraryItem, len(items))
	for i, item := range items {
		out[i] = c.DecryptItem(item, key)
	}
	return out
}

// EncryptMessage encrypts the text of a chat message or comment.
func (c *Codec) EncryptMessage(msg models.Message, key []byte) (models.Message, error) {
	text, err := c.EncryptField(msg.Text, key)
	if err != nil {
		return models.Message{}, err
	}
	msg.Text, msg.EncryptedText = text.Value, text.Flag()
	return msg, nil
}

// DecryptMessage returns msg with displayable text.
func (c *Codec) DecryptMessage(msg models.Message, key []byte) models.Message {
	msg.Text = c.DecryptField(msg.Text, msg.EncryptedText, key, RoleMessage)
	msg.EncryptedText = nil
	return msg
}

// EncryptTrip encrypts the trip title.
func (c *Codec) EncryptTrip(trip models.Trip, key []byte) (models.Trip, error) {
	title, err := c.EncryptField(trip.Title, key)
	if err != nil {
		return models.Trip{}, err
	}
	trip.Title, trip.EncryptedTitle = title.Value, title.Flag()
	return trip, nil
}

// DecryptTrip returns trip with a displayable title.
func (c *Codec) DecryptTrip(trip models.Trip, key []byte) models.Trip {
	trip.Title = c.DecryptField(trip.Title, trip.EncryptedTitle, key, RoleTripTitle)
	trip.EncryptedTitle = nil
	return trip
}
