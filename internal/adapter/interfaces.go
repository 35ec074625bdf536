// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the client transport to the trip-keeper server.
//
// The primary abstraction is [ServerAdapter]: a [docstore.Store] backed by
// the server's REST API plus the account calls that obtain a bearer token.
// Subscriptions are served by polling, so the services above see the same
// snapshot semantics as with an in-process store.
//
// Error responses are mapped to the docstore sentinel errors by
// mapHTTPError so that callers can use [errors.Is] regardless of transport.
package adapter

import (
	"context"

	"github.com/MKhiriev/trip-keeper/internal/docstore"
	"github.com/MKhiriev/trip-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// ServerAdapter is the client view of the trip-keeper server.
type ServerAdapter interface {
	docstore.Store

	// SetToken stores the bearer token attached to every authenticated
	// request. Register and Login call it on success.
	SetToken(token string)

	// Token returns the bearer token currently stored, or an empty string.
	Token() string

	// Register creates an account and stores the returned token. The
	// returned user carries the server-assigned UserID.
	Register(ctx context.Context, user models.User) (models.User, error)

	// Login authenticates with login and password and stores the returned
	// token.
	Login(ctx context.Context, user models.User) (models.User, error)

	// ServerInfo returns the server version and start time.
	ServerInfo(ctx context.Context) (models.ServerInfo, error)
}
