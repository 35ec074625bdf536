package fieldcodec

// Role is the semantic role of a field and selects its placeholder.
type Role int

const (
	RoleName Role = iota
	RoleAddress
	RoleNotes
	RoleTripTitle
	RoleMessage
)

// Placeholders shown instead of a field that cannot be decrypted.
const (
	NameUnavailable      = "[Name unavailable]"
	AddressUnavailable   = "[Address unavailable]"
	NotesUnavailable     = "[Notes unavailable]"
	TripTitleUnavailable = "[Trip name unavailable]"
	MessageUnavailable   = "[Message decryption failed]"
)

// Placeholder returns the fallback text for the role.
func (r Role) Placeholder() string {
	switch r {
	case RoleName:
		return NameUnavailable
	case RoleAddress:
		return AddressUnavailable
	case RoleNotes:
		return NotesUnavailable
	case RoleTripTitle:
		return TripTitleUnavailable
	default:
		return MessageUnavailable
	}
}
