package validators

import (
	"context"
	"slices"

	"github.com/MKhiriev/trip-keeper/internal/utils"
	"github.com/MKhiriev/trip-keeper/models"
)

// Field names accepted by [TripDataValidator.Validate].
const (
	FieldLogin    = "login"
	FieldPassword = "password"

	FieldOwnerID = "owner_id"
	FieldMembers = "members"

	FieldPlaceID    = "place_id"
	FieldDay        = "day"
	FieldOrderIndex = "order_index"
	FieldCreatedBy  = "created_by"

	FieldKind     = "kind"
	FieldAuthorID = "author_id"
	FieldText     = "text"
)

// TripDataValidator checks users, trips, itinerary items and messages.
//
// Author fields are compared with the user ID stored in the context by the
// auth middleware; without one only their presence is checked.
type TripDataValidator struct{}

func NewTripDataValidator() Validator {
	return &TripDataValidator{}
}

func (v *TripDataValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.User:
		return v.validateUser(value, fields...)
	case *models.User:
		return v.validateUser(*value, fields...)

	case models.Trip:
		return v.validateTrip(value, fields...)
	case *models.Trip:
		return v.validateTrip(*value, fields...)

	case models.ItineraryItem:
		return v.validateItem(ctx, value, fields...)
	case *models.ItineraryItem:
		return v.validateItem(ctx, *value, fields...)

	case models.Message:
		return v.validateMessage(ctx, value, fields...)
	case *models.Message:
		return v.validateMessage(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *TripDataValidator) validateUser(user models.User, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldLogin, FieldPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldLogin:
			if user.Login == "" {
				return ErrEmptyLogin
			}
		case FieldPassword:
			if user.Password == "" {
				return ErrEmptyPassword
			}
		default:
			return ErrUnknownField
		}
	}
	return nil
}

func (v *TripDataValidator) validateTrip(trip models.Trip, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldOwnerID, FieldMembers}
	}

	for _, f := range fields {
		switch f {
		case FieldOwnerID:
			if trip.OwnerID == "" {
				return ErrInvalidUserID
			}
			if !trip.HasMember(trip.OwnerID) {
				return ErrOwnerNotMember
			}
		case FieldMembers:
			if len(trip.Members) == 0 {
				return ErrEmptyMembers
			}
			if slices.Contains(trip.Members, "") {
				return ErrInvalidUserID
			}
			sorted := slices.Clone(trip.Members)
			slices.Sort(sorted)
			if len(slices.Compact(sorted)) != len(trip.Members) {
				return ErrDuplicateMember
			}
		default:
			return ErrUnknownField
		}
	}
	return nil
}

func (v *TripDataValidator) validateItem(ctx context.Context, item models.ItineraryItem, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldPlaceID, FieldDay, FieldOrderIndex, FieldCreatedBy}
	}

	for _, f := range fields {
		switch f {
		case FieldPlaceID:
			if item.PlaceID == "" {
				return ErrEmptyPlaceID
			}
		case FieldDay:
			if item.Day < 1 {
				return ErrInvalidDay
			}
		case FieldOrderIndex:
			if item.OrderIndex < 0 {
				return ErrInvalidOrderIndex
			}
		case FieldCreatedBy:
			if err := checkAuthor(ctx, item.CreatedBy); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}
	return nil
}

func (v *TripDataValidator) validateMessage(ctx context.Context, msg models.Message, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldKind, FieldAuthorID, FieldText}
	}

	for _, f := range fields {
		switch f {
		case FieldKind:
			switch msg.Kind {
			case models.MessageKindChat:
			case models.MessageKindComment:
				if msg.ItemID == "" {
					return ErrCommentWithoutItem
				}
			default:
				return ErrInvalidMessageKind
			}
		case FieldAuthorID:
			if err := checkAuthor(ctx, msg.AuthorID); err != nil {
				return err
			}
		case FieldText:
			if msg.Text == "" {
				return ErrEmptyText
			}
		default:
			return ErrUnknownField
		}
	}
	return nil
}

func checkAuthor(ctx context.Context, author string) error {
	if author == "" {
		return ErrInvalidUserID
	}
	if userID, ok := utils.UserIDFromContext(ctx); ok && userID != author {
		return ErrAuthorMismatch
	}
	return nil
}
