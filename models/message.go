package models

import "time"

// MessageKind tells trip chat messages apart from stop comments.
type MessageKind string

const (
	MessageKindChat    MessageKind = "chat"
	MessageKindComment MessageKind = "comment"
)

// Message is a chat message or a comment on an itinerary stop.
type Message struct {
	ID     string      `json:"-"`
	TripID string      `json:"-"`
	ItemID string      `json:"itemId,omitempty"`
	Kind   MessageKind `json:"kind"`

	AuthorID      string `json:"authorId"`
	Text          string `json:"text"`
	EncryptedText *bool  `json:"encryptedText,omitempty"`

	CreatedAt time.Time `json:"-"`
}
