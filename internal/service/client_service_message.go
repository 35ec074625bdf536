package service

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/MKhiriev/trip-keeper/internal/docstore"
	"github.com/MKhiriev/trip-keeper/internal/fieldcodec"
	"github.com/MKhiriev/trip-keeper/internal/logger"
	"github.com/MKhiriev/trip-keeper/models"
)

type messageService struct {
	store  docstore.Store
	keys   ClientKeyManager
	codec  *fieldcodec.Codec
	logger *logger.Logger
}

func NewMessageService(store docstore.Store, keys ClientKeyManager, codec *fieldcodec.Codec, log *logger.Logger) MessageService {
	return &messageService{store: store, keys: keys, codec: codec, logger: log}
}

func (s *messageService) Send(ctx context.Context, tripID, userID, text string) (models.Message, error) {
	return s.post(ctx, models.Message{
		TripID:   tripID,
		Kind:     models.MessageKindChat,
		AuthorID: userID,
		Text:     text,
	})
}

func (s *messageService) Comment(ctx context.Context, tripID, itemID, userID, text string) (models.Message, error) {
	if itemID == "" {
		return models.Message{}, ErrInvalidDataProvided
	}
	return s.post(ctx, models.Message{
		TripID:   tripID,
		ItemID:   itemID,
		Kind:     models.MessageKindComment,
		AuthorID: userID,
		Text:     text,
	})
}

func (s *messageService) post(ctx context.Context, msg models.Message) (models.Message, error) {
	msg.Text = strings.TrimSpace(msg.Text)
	if msg.TripID == "" || msg.Text == "" {
		return models.Message{}, ErrInvalidDataProvided
	}

	key, err := s.keys.EnsureTripKey(ctx, msg.TripID, msg.AuthorID)
	if err != nil {
		return models.Message{}, err
	}

	encrypted, err := s.codec.EncryptMessage(msg, key)
	if err != nil {
		return models.Message{}, fmt.Errorf("encrypt message: %w", err)
	}

	id, err := s.store.Add(ctx, models.MessagesPath(msg.TripID), encrypted)
	if err != nil {
		s.logger.Err(err).Str("func", "messageService.post").Str("trip_id", msg.TripID).Msg("error sending message")
		return models.Message{}, fmt.Errorf("send message: %w", err)
	}

	msg.ID = id
	return msg, nil
}

func (s *messageService) List(ctx context.Context, tripID, userID string) ([]models.Message, error) {
	docs, err := s.store.List(ctx, models.MessagesPath(tripID))
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return s.decrypt(ctx, tripID, userID, docs), nil
}

func (s *messageService) Subscribe(ctx context.Context, tripID, userID string, onChange func([]models.Message)) (docstore.Unsubscribe, error) {
	return s.store.Subscribe(ctx, models.MessagesPath(tripID), func(docs []docstore.Document) {
		onChange(s.decrypt(ctx, tripID, userID, docs))
	})
}

// decrypt degrades per message: a missing key or a broken blob shows the
// placeholder for that message only.
func (s *messageService) decrypt(ctx context.Context, tripID, userID string, docs []docstore.Document) []models.Message {
	key, err := s.keys.GetTripEncryptionKey(ctx, tripID, userID)
	if err != nil {
		s.logger.Debug().Err(err).Str("trip_id", tripID).Msg("trip key not readable")
	}

	msgs := make([]models.Message, 0, len(docs))
	for _, doc := range docs {
		msg, err := decodeMessage(tripID, doc)
		if err != nil {
			s.logger.Warn().Err(err).Str("path", doc.Path).Msg("skipping malformed message")
			continue
		}
		msgs = append(msgs, s.codec.DecryptMessage(msg, key))
	}
	slices.SortStableFunc(msgs, func(a, b models.Message) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	return msgs
}
