package service

import (
	"github.com/MKhiriev/trip-keeper/internal/adapter"
	"github.com/MKhiriev/trip-keeper/internal/config"
	"github.com/MKhiriev/trip-keeper/internal/fieldcodec"
	"github.com/MKhiriev/trip-keeper/internal/logger"
	"github.com/MKhiriev/trip-keeper/internal/utils"
)

// ClientServices groups the services of one signed-in client. All of them
// read and write through the same server adapter.
type ClientServices struct {
	AuthService      ClientAuthService
	TripService      TripService
	ItineraryService ItineraryService
	MessageService   MessageService
	KeyJob           ClientKeyJob
}

func NewClientServices(serverAdapter adapter.ServerAdapter, keyManager ClientKeyManager, codec *fieldcodec.Codec, syncCfg config.ClientSync, log *logger.Logger) *ClientServices {
	trips := NewTripService(serverAdapter, keyManager, codec, utils.NewUUIDGenerator(), log)

	return &ClientServices{
		AuthService:      NewClientAuthService(serverAdapter, keyManager, log),
		TripService:      trips,
		ItineraryService: NewItineraryService(serverAdapter, keyManager, codec, syncCfg, log),
		MessageService:   NewMessageService(serverAdapter, keyManager, codec, log),
		KeyJob:           NewClientKeyJob(trips, log),
	}
}
