package fieldcodec

import (
	"fmt"
	"html"
	"strings"

	"github.com/MKhiriev/trip-keeper/internal/crypto"
)

// Option configures a [Codec].
type Option func(*Codec)

// WithSanitizer installs a hook applied to every value handed to a view.
func WithSanitizer(sanitize func(string) string) Option {
	return func(c *Codec) { c.sanitize = sanitize }
}

// HTMLSanitizer escapes values for HTML-capable views.
func HTMLSanitizer(value string) string {
	return html.EscapeString(value)
}

// Codec encrypts and decrypts single fields.
type Codec struct {
	codec    crypto.SymmetricCodec
	sanitize func(string) string
}

// New returns a Codec on top of codec. Without options values pass to the
// view unchanged.
func New(codec crypto.SymmetricCodec, opts ...Option) *Codec {
	c := &Codec{
		codec:    codec,
		sanitize: func(s string) string { return s },
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// EncryptedField is a value ready to be stored together with its flag.
type EncryptedField struct {
	Value     string
	Encrypted bool
}

// Flag returns the value for the record's sibling flag.
func (f EncryptedField) Flag() *bool {
	encrypted := f.Encrypted
	return &encrypted
}

// EncryptField encrypts plaintext under key. Empty values are stored as is
// with the flag set to false. A non-empty value without a key fails with
// [ErrMissingKey].
func (c *Codec) EncryptField(plaintext string, key []byte) (EncryptedField, error) {
	if plaintext == "" {
		return EncryptedField{}, nil
	}
	if key == nil {
		return EncryptedField{}, ErrMissingKey
	}
	blob, err := c.codec.Encrypt([]byte(plaintext), key)
	if err != nil {
		return EncryptedField{}, fmt.Errorf("encrypt field: %w", err)
	}
	return EncryptedField{Value: blob, Encrypted: true}, nil
}

// DecryptField returns the displayable value of a stored field. It never
// returns ciphertext: anything that cannot be opened becomes the role's
// placeholder.
func (c *Codec) DecryptField(stored string, flag *bool, key []byte, role Role) string {
	switch state := Classify(stored, flag).(type) {
	case Plain:
		return c.sanitize(state.Value)
	case Cipher:
		return c.open(state.Blob, key, role)
	case Unknown:
		if !LooksLikeEncrypted(state.Value) {
			return c.sanitize(state.Value)
		}
		return c.open(state.Value, key, role)
	}
	return role.Placeholder()
}

func (c *Codec) open(blob string, key []byte, role Role) string {
	if key == nil {
		return role.Placeholder()
	}
	plaintext, err := c.codec.Decrypt(blob, key)
	if err != nil {
		return role.Placeholder()
	}
	value := string(plaintext)
	if strings.TrimSpace(value) == "" {
		return role.Placeholder()
	}
	return c.sanitize(value)
}
