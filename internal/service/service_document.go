package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/MKhiriev/trip-keeper/internal/docstore"
	"github.com/MKhiriev/trip-keeper/internal/logger"
	"github.com/MKhiriev/trip-keeper/internal/store"
)

// documentService is the innermost DocumentService: it checks path shapes
// and hands everything to the repository.
type documentService struct {
	repo   store.DocumentRepository
	ids    IDGenerator
	logger *logger.Logger
}

func NewDocumentService(repo store.DocumentRepository, ids IDGenerator, logger *logger.Logger) DocumentService {
	return &documentService{
		repo:   repo,
		ids:    ids,
		logger: logger,
	}
}

func (s *documentService) Get(ctx context.Context, path string) (docstore.Document, error) {
	if err := docstore.ValidateDocumentPath(path); err != nil {
		return docstore.Document{}, err
	}
	return s.repo.Get(ctx, path)
}

func (s *documentService) List(ctx context.Context, collection string) ([]docstore.Document, error) {
	if err := docstore.ValidateCollectionPath(collection); err != nil {
		return nil, err
	}
	return s.repo.List(ctx, collection)
}

func (s *documentService) Add(ctx context.Context, collection string, data json.RawMessage) (string, error) {
	if err := docstore.ValidateCollectionPath(collection); err != nil {
		return "", err
	}

	id := s.ids.Generate()
	if err := s.repo.Apply(ctx, []docstore.WriteOp{docstore.CreateOp(docstore.Join(collection, id), data)}); err != nil {
		logger.FromContext(ctx).Err(err).Str("collection", collection).Msg("failed to add document")
		return "", fmt.Errorf("add document to %s: %w", collection, err)
	}

	return id, nil
}

func (s *documentService) Write(ctx context.Context, ops []docstore.WriteOp) error {
	if len(ops) == 0 {
		return nil
	}

	for _, op := range ops {
		if err := docstore.ValidateDocumentPath(op.Path); err != nil {
			return err
		}
	}

	return s.repo.Apply(ctx, ops)
}
