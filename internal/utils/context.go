// Package utils holds small helpers shared by the server and the client:
// request user identity, password hashing, JSON bodies, bearer tokens,
// JWT signing and ID generation.
package utils

import "context"

type userIDKey struct{}

// WithUserID returns ctx carrying the authenticated user.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey{}, userID)
}

// UserIDFromContext returns the user set by WithUserID. An empty ID counts
// as absent.
func UserIDFromContext(ctx context.Context) (string, bool) {
	userID, _ := ctx.Value(userIDKey{}).(string)
	return userID, userID != ""
}
