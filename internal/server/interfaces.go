package server

import "context"

// Server runs every configured transport until ctx is cancelled or one of
// them fails, then shuts all of them down.
type Server interface {
	Run(ctx context.Context) error
}

// transport is one listening server (HTTP or gRPC).
type transport interface {
	name() string
	address() string
	// serve blocks; it returns nil after a graceful shutdown.
	serve() error
	shutdown(ctx context.Context)
}
