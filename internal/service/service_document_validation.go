package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/MKhiriev/trip-keeper/internal/docstore"
	"github.com/MKhiriev/trip-keeper/internal/validators"
	"github.com/MKhiriev/trip-keeper/models"
)

// DocumentValidationService checks trip, itinerary and message payloads
// before they reach storage. Other documents pass through unchanged.
type DocumentValidationService struct {
	inner     DocumentService
	validator validators.Validator
}

func NewDocumentValidationService() DocumentServiceWrapper {
	return &DocumentValidationService{
		validator: validators.NewTripDataValidator(),
	}
}

func (v *DocumentValidationService) Wrap(inner DocumentService) DocumentService {
	v.inner = inner
	return v
}

func (v *DocumentValidationService) Get(ctx context.Context, path string) (docstore.Document, error) {
	return v.inner.Get(ctx, path)
}

func (v *DocumentValidationService) List(ctx context.Context, collection string) ([]docstore.Document, error) {
	return v.inner.List(ctx, collection)
}

func (v *DocumentValidationService) Add(ctx context.Context, collection string, data json.RawMessage) (string, error) {
	// the ID is not known yet, any placeholder gives the right path shape
	if err := v.validateData(ctx, docstore.Join(collection, "_"), data); err != nil {
		return "", err
	}
	return v.inner.Add(ctx, collection, data)
}

func (v *DocumentValidationService) Write(ctx context.Context, ops []docstore.WriteOp) error {
	for _, op := range ops {
		var err error
		switch op.Kind {
		case docstore.OpSet, docstore.OpCreate:
			err = v.validateData(ctx, op.Path, op.Data)
		case docstore.OpUpdate:
			err = v.validateFields(ctx, op.Path, op.Fields)
		}
		if err != nil {
			return err
		}
	}
	return v.inner.Write(ctx, ops)
}

// validateData checks a full document.
func (v *DocumentValidationService) validateData(ctx context.Context, path string, data any) error {
	target := documentModel(path)
	if target == nil {
		return nil
	}

	if err := decodeData(data, target); err != nil {
		return err
	}
	if err := v.validator.Validate(ctx, target); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidDataProvided, path, err)
	}
	return nil
}

// validateFields checks only the fields an update touches.
func (v *DocumentValidationService) validateFields(ctx context.Context, path string, fields map[string]any) error {
	target := documentModel(path)
	if target == nil || len(fields) == 0 {
		return nil
	}

	scoped := make([]string, 0, len(fields))
	for name := range fields {
		if field, ok := validatedFields[name]; ok {
			scoped = append(scoped, field)
		}
	}
	if len(scoped) == 0 {
		return nil
	}

	if err := decodeData(fields, target); err != nil {
		return err
	}
	if err := v.validator.Validate(ctx, target, scoped...); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidDataProvided, path, err)
	}
	return nil
}

// validatedFields maps JSON field names to validator field names.
var validatedFields = map[string]string{
	"ownerId":    validators.FieldOwnerID,
	"members":    validators.FieldMembers,
	"placeId":    validators.FieldPlaceID,
	"day":        validators.FieldDay,
	"orderIndex": validators.FieldOrderIndex,
	"text":       validators.FieldText,
}

// documentModel returns a pointer to the model stored at path, or nil for
// documents without a schema.
func documentModel(path string) any {
	segments := strings.Split(path, "/")
	if segments[0] != models.TripsCollection {
		return nil
	}

	switch {
	case len(segments) == 2:
		return &models.Trip{}
	case len(segments) == 4 && segments[2] == models.ItineraryCollectionID:
		return &models.ItineraryItem{}
	case len(segments) == 4 && segments[2] == models.MessagesCollectionID:
		return &models.Message{}
	default:
		return nil
	}
}
