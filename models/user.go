package models

import "time"

// User is an account. Trip member lists and key document paths refer to
// users by UserID.
type User struct {
	UserID string `json:"user_id"`
	Login  string `json:"login"`

	// Password is plaintext on the way in and the HMAC hash in storage.
	// It is cleared before a user leaves the auth service.
	Password string `json:"password,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
