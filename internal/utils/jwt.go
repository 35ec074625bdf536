package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/trip-keeper/models"
	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidSignerParams = errors.New("jwt signer needs a key, an issuer and a positive lifetime")
	ErrEmptySubject        = errors.New("token has no subject")
)

// JWTSigner issues and verifies HS256 tokens whose subject is a user ID.
type JWTSigner struct {
	key    []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

func NewJWTSigner(signKey, issuer string, ttl time.Duration) (*JWTSigner, error) {
	if signKey == "" || issuer == "" || ttl <= 0 {
		return nil, ErrInvalidSignerParams
	}
	return &JWTSigner{key: []byte(signKey), issuer: issuer, ttl: ttl, now: time.Now}, nil
}

// Issue signs a token for userID that expires after the signer's lifetime.
func (s *JWTSigner) Issue(userID string) (models.Token, error) {
	if userID == "" {
		return models.Token{}, ErrEmptySubject
	}

	now := s.now()
	expires := now.Add(s.ttl)
	claims := jwt.RegisteredClaims{
		Issuer:    s.issuer,
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expires),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
	if err != nil {
		return models.Token{}, fmt.Errorf("sign token: %w", err)
	}
	return models.Token{SignedString: signed, UserID: userID, ExpiresAt: expires.Truncate(time.Second)}, nil
}

// Verify checks the signature, issuer and expiry of raw.
func (s *JWTSigner) Verify(raw string) (models.Token, error) {
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(raw, &claims,
		func(*jwt.Token) (any, error) { return s.key, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return models.Token{}, fmt.Errorf("verify token: %w", err)
	}
	if claims.Subject == "" {
		return models.Token{}, ErrEmptySubject
	}

	return models.Token{SignedString: raw, UserID: claims.Subject, ExpiresAt: claims.ExpiresAt.Time}, nil
}

// UnverifiedSubject reads the subject of raw without checking the signature.
// The client uses it to learn its own user ID from the login response.
func UnverifiedSubject(raw string) (string, error) {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(raw, &claims); err != nil {
		return "", fmt.Errorf("parse token: %w", err)
	}
	if claims.Subject == "" {
		return "", ErrEmptySubject
	}
	return claims.Subject, nil
}
