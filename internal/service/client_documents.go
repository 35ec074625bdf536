package service

import (
	"github.com/MKhiriev/trip-keeper/internal/docstore"
	"github.com/MKhiriev/trip-keeper/models"
)

func decodeTrip(doc docstore.Document) (models.Trip, error) {
	var trip models.Trip
	if err := doc.DataTo(&trip); err != nil {
		return models.Trip{}, err
	}
	trip.ID = doc.ID
	if trip.CreatedAt.IsZero() {
		trip.CreatedAt = doc.CreateTime
	}
	return trip, nil
}

// decodeItem takes the storage ID and the server timestamp from the
// document, never from the payload.
func decodeItem(doc docstore.Document) (models.ItineraryItem, error) {
	var item models.ItineraryItem
	if err := doc.DataTo(&item); err != nil {
		return models.ItineraryItem{}, err
	}
	item.ID = doc.ID
	item.CreatedAt = doc.CreateTime
	return item, nil
}

func decodeMessage(tripID string, doc docstore.Document) (models.Message, error) {
	var msg models.Message
	if err := doc.DataTo(&msg); err != nil {
		return models.Message{}, err
	}
	msg.ID = doc.ID
	msg.TripID = tripID
	msg.CreatedAt = doc.CreateTime
	return msg, nil
}
