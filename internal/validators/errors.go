package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyLogin    = errors.New("login is required")
	ErrEmptyPassword = errors.New("password is required")

	ErrInvalidUserID   = errors.New("invalid user ID")
	ErrEmptyMembers    = errors.New("trip must have at least one member")
	ErrOwnerNotMember  = errors.New("trip owner must be a member")
	ErrDuplicateMember = errors.New("trip members must be unique")

	ErrEmptyPlaceID      = errors.New("place ID is required")
	ErrInvalidDay        = errors.New("day must be positive")
	ErrInvalidOrderIndex = errors.New("order index must not be negative")
	ErrAuthorMismatch    = errors.New("author must be the current user")

	ErrInvalidMessageKind = errors.New("invalid message kind")
	ErrEmptyText          = errors.New("message text is required")
	ErrCommentWithoutItem = errors.New("comment must reference an itinerary item")
)
