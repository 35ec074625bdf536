package store

import "github.com/MKhiriev/trip-keeper/internal/logger"

// Storages groups the server repositories built on one database.
type Storages struct {
	UserRepository     UserRepository
	DocumentRepository DocumentRepository
}

// NewStorages wires all repositories to db.
func NewStorages(db *DB, log *logger.Logger) *Storages {
	return &Storages{
		UserRepository:     NewUserRepository(db, log),
		DocumentRepository: NewDocumentRepository(db, log),
	}
}
