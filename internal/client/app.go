package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/trip-keeper/internal/logger"
	"github.com/MKhiriev/trip-keeper/internal/tui"
	"github.com/MKhiriev/trip-keeper/internal/workers"
	"github.com/MKhiriev/trip-keeper/models"
)

// App runs the login and session loop of the terminal client.
type App struct {
	ui      UI
	workers *workers.Workers
	server  Server
	logger  *logger.Logger
}

func NewApp(ui UI, ws *workers.Workers, server Server, log *logger.Logger) (*App, error) {
	if ui == nil {
		return nil, errors.New("ui is required")
	}
	if ws == nil {
		ws = workers.NewWorkers()
	}
	return &App{ui: ui, workers: ws, server: server, logger: log}, nil
}

// Run signs the user in, runs the background workers for the session and
// shows the trip screens. A logout starts over with the login flow.
func (a *App) Run(ctx context.Context) error {
	a.logServerInfo(ctx)

	for {
		user, err := a.ui.LoginFlow(ctx)
		if errors.Is(err, tui.ErrUserQuit) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("login flow: %w", err)
		}

		logout, err := a.runSession(ctx, user)
		if err != nil {
			return err
		}
		if !logout {
			return nil
		}

		a.logger.Info().Str("user_id", user.UserID).Msg("logged out")
		if a.server != nil {
			a.server.SetToken("")
		}
	}
}

func (a *App) runSession(ctx context.Context, user models.User) (bool, error) {
	sessionCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.workers.Start(sessionCtx, user.UserID)
	defer a.workers.Stop()

	logout, err := a.ui.MainLoop(sessionCtx, user)
	if err != nil {
		return false, fmt.Errorf("main loop: %w", err)
	}
	return logout, nil
}

// logServerInfo only records which server the client talks to. An
// unreachable server is reported later by the login screen.
func (a *App) logServerInfo(ctx context.Context) {
	if a.server == nil {
		return
	}
	info, err := a.server.ServerInfo(ctx)
	if err != nil {
		a.logger.Warn().Err(err).Msg("server info unavailable")
		return
	}
	a.logger.Info().
		Str("server_version", info.Version).
		Time("server_started_at", info.StartedAt).
		Msg("connected to server")
}
