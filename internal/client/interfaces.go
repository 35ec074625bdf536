// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"

	"github.com/MKhiriev/trip-keeper/models"
)

// UI is the interactive part of the client.
type UI interface {
	// LoginFlow returns the signed-in user, or tui.ErrUserQuit.
	LoginFlow(ctx context.Context) (models.User, error)
	// MainLoop shows the trip screens until the user quits or logs out.
	MainLoop(ctx context.Context, user models.User) (logout bool, err error)
}

// Server is the part of the server connection the app drives directly.
type Server interface {
	ServerInfo(ctx context.Context) (models.ServerInfo, error)
	// SetToken("") forgets the bearer token on logout.
	SetToken(token string)
}
