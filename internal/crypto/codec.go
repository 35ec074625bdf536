// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

const (
	// KeySize is the size of every key handled by the codec (AES-256).
	KeySize = 32

	nonceSize = 12
	tagSize   = 16

	// wrapInfo domain-separates the key-wrapping subkey from the key
	// used for field encryption.
	wrapInfo = "trip-keeper/trip-key-wrap/v1"
)

// symmetricCodec is the private implementation of [SymmetricCodec].
type symmetricCodec struct {
	random io.Reader
}

// NewSymmetricCodec constructs a [SymmetricCodec] backed by AES-256-GCM and
// the OS CSPRNG.
func NewSymmetricCodec() SymmetricCodec {
	return &symmetricCodec{random: rand.Reader}
}

// GenerateKey implements [SymmetricCodec]. It reads 32 random bytes from
// the OS CSPRNG. Returns an error if the random read fails.
func (c *symmetricCodec) GenerateKey() ([]byte, error) {
	key := make([]byte, KeySize)
	if _, err := io.ReadFull(c.random, key); err != nil {
		return nil, fmt.Errorf("generate key: %w", err)
	}
	return key, nil
}

// Encrypt implements [SymmetricCodec].
func (c *symmetricCodec) Encrypt(plaintext, key []byte) (string, error) {
	if len(key) != KeySize {
		return "", ErrInvalidKeyLength
	}

	gcm, err := newGCM(key)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(c.random, nonce); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}

	// blob = nonce ‖ ciphertext ‖ tag
	blob := gcm.Seal(nonce, nonce, plaintext, nil)
	return base64.StdEncoding.EncodeToString(blob), nil
}

// Decrypt implements [SymmetricCodec].
func (c *symmetricCodec) Decrypt(blob string, key []byte) ([]byte, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: key must be %d bytes, got %d", ErrDecryption, KeySize, len(key))
	}

	raw, err := base64.StdEncoding.DecodeString(blob)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed base64: %w", ErrDecryption, err)
	}

	if len(raw) < nonceSize+tagSize {
		return nil, fmt.Errorf("%w: ciphertext too short", ErrDecryption)
	}

	gcm, err := newGCM(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecryption, err)
	}

	nonce, ciphertext := raw[:nonceSize], raw[nonceSize:]
	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecryption, err)
	}

	// gcm.Open returns nil for an empty plaintext
	if plaintext == nil {
		plaintext = []byte{}
	}

	return plaintext, nil
}

// Wrap implements [SymmetricCodec].
func (c *symmetricCodec) Wrap(key, wrappingKey []byte) (string, error) {
	if len(wrappingKey) != KeySize {
		return "", ErrInvalidKeyLength
	}

	subkey, err := deriveWrapKey(wrappingKey)
	if err != nil {
		return "", err
	}

	return c.Encrypt(key, subkey)
}

// Unwrap implements [SymmetricCodec].
func (c *symmetricCodec) Unwrap(blob string, wrappingKey []byte) ([]byte, error) {
	if len(wrappingKey) != KeySize {
		return nil, fmt.Errorf("%w: wrapping key must be %d bytes", ErrDecryption, KeySize)
	}

	subkey, err := deriveWrapKey(wrappingKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecryption, err)
	}

	key, err := c.Decrypt(blob, subkey)
	if err != nil {
		return nil, err
	}

	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: unwrapped key has %d bytes", ErrDecryption, len(key))
	}

	return key, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	return cipher.NewGCM(block)
}

func deriveWrapKey(wrappingKey []byte) ([]byte, error) {
	subkey := make([]byte, KeySize)
	r := hkdf.New(sha256.New, wrappingKey, nil, []byte(wrapInfo))
	if _, err := io.ReadFull(r, subkey); err != nil {
		return nil, fmt.Errorf("derive wrapping key: %w", err)
	}
	return subkey, nil
}
