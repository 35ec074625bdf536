package adapter

import "errors"

var (
	// ErrUnauthorized is returned on HTTP 401: the token is missing,
	// expired, or the credentials are wrong.
	ErrUnauthorized = errors.New("client unauthorized")

	// ErrInvalidAddress is returned for an unusable server address.
	ErrInvalidAddress = errors.New("invalid server address")
)
