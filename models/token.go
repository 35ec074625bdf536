package models

import "time"

// Token is a bearer token issued at login or verified on a request.
type Token struct {
	// SignedString is the compact JWS form sent in the Authorization header.
	SignedString string `json:"-"`

	// UserID is the "sub" claim.
	UserID string `json:"-"`

	ExpiresAt time.Time `json:"-"`
}

func (t Token) String() string {
	return t.SignedString
}
