// Package workers runs the background jobs of a signed-in client session.
//
// A session starts every registered [Worker] after login and stops them on
// logout or exit, so jobs never outlive the user they were started for.
package workers

import "context"

// Worker is a background job bound to one user session.
//
// Start must not block; long-running work belongs in a goroutine owned by
// the worker. Stop must wait for that goroutine to exit and be safe to call
// when the worker was never started.
type Worker interface {
	Start(ctx context.Context, userID string)
	Stop()
}
