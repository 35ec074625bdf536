package utils

import (
	"strings"

	"github.com/google/uuid"
)

// UUIDGenerator issues identifiers for users, trips, store-assigned document
// IDs and client IDs of pending stops. IDs are UUID v7, so lexical order
// follows creation order.
type UUIDGenerator struct {
	prefix string
}

// NewUUIDGenerator returns a generator of bare UUID strings.
func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// NewPrefixedUUIDGenerator returns a generator whose IDs start with prefix.
// An empty prefix is the same as NewUUIDGenerator.
func NewPrefixedUUIDGenerator(prefix string) *UUIDGenerator {
	return &UUIDGenerator{prefix: strings.TrimSpace(prefix)}
}

// Generate returns a new ID. If the v7 clock source fails a random v4 is used.
func (g *UUIDGenerator) Generate() string {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	if g.prefix == "" {
		return id.String()
	}
	return g.prefix + id.String()
}

// HasPrefix reports whether id was issued by a generator with this prefix.
func (g *UUIDGenerator) HasPrefix(id string) bool {
	return g.prefix != "" && strings.HasPrefix(id, g.prefix)
}
