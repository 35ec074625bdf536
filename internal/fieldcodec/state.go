package fieldcodec

import "strings"

// FieldState is the classified form of a stored field value.
type FieldState interface {
	fieldState()
}

// Plain is a value stored as plaintext (flag false).
type Plain struct{ Value string }

// Cipher is an AEAD blob (flag true).
type Cipher struct{ Blob string }

// Unknown is a value from an older record without the flag.
type Unknown struct{ Value string }

func (Plain) fieldState()   {}
func (Cipher) fieldState()  {}
func (Unknown) fieldState() {}

// Classify turns a stored value and its optional flag into a [FieldState].
func Classify(stored string, flag *bool) FieldState {
	switch {
	case flag == nil:
		return Unknown{Value: stored}
	case *flag:
		return Cipher{Blob: stored}
	default:
		return Plain{Value: stored}
	}
}

const minEncryptedLength = 20

// LooksLikeEncrypted guesses whether value is a base64 blob. It is only
// consulted for records that carry no flag.
func LooksLikeEncrypted(value string) bool {
	if len(value) < minEncryptedLength || len(value)%4 != 0 {
		return false
	}
	return strings.IndexFunc(value, func(r rune) bool {
		return !isBase64Rune(r)
	}) < 0
}

func isBase64Rune(r rune) bool {
	switch {
	case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z', r >= '0' && r <= '9':
		return true
	case r == '+', r == '/', r == '=':
		return true
	}
	return false
}
