// Package tui is the terminal interface of the trip-keeper client, built on
// Bubble Tea. The login flow and the session screens run as two separate
// programs so the client can go back to the login pages after a logout.
package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/trip-keeper/internal/logger"
	"github.com/MKhiriev/trip-keeper/internal/service"
	"github.com/MKhiriev/trip-keeper/models"
	tea "github.com/charmbracelet/bubbletea"
)

// ErrUserQuit is returned by LoginFlow when the user leaves without signing in.
var ErrUserQuit = errors.New("вышел из программы")

type TUI struct {
	services  *service.ClientServices
	buildInfo models.BuildInfo
	logger    *logger.Logger
}

func New(services *service.ClientServices, buildInfo models.BuildInfo, log *logger.Logger) (*TUI, error) {
	if services == nil {
		return nil, errors.New("client services are required")
	}
	return &TUI{services: services, buildInfo: buildInfo, logger: log.Component("tui")}, nil
}

// LoginFlow shows the menu, login and registration pages and returns the
// signed-in user.
func (t *TUI) LoginFlow(ctx context.Context) (models.User, error) {
	root := NewRootModel(map[string]tea.Model{
		"menu":     NewMenuModel(),
		"login":    NewLoginModel(ctx, t.services.AuthService),
		"register": NewRegisterModel(ctx, t.services.AuthService),
	}, "menu", t.buildInfo)

	final, err := runProgram(ctx, root)
	if err != nil {
		return models.User{}, err
	}
	if final.quitByUser || final.resultUser.UserID == "" {
		return models.User{}, ErrUserQuit
	}
	return final.resultUser, nil
}

// MainLoop runs the trip screens for user until quit or logout.
func (t *TUI) MainLoop(ctx context.Context, user models.User) (logout bool, err error) {
	final, err := runProgram(ctx, newMainLoopModel(ctx, t.services, user, t.logger))
	final.closeLive()
	if errors.Is(err, ErrUserQuit) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return final.logout, nil
}

// runProgram runs model full screen until it quits. A cancelled ctx ends the
// program with ErrUserQuit.
func runProgram[M tea.Model](ctx context.Context, model M) (M, error) {
	final, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()

	result, ok := final.(M)
	if !ok {
		result = model
	}

	switch {
	case ctx.Err() != nil:
		return result, ErrUserQuit
	case err != nil:
		return result, fmt.Errorf("run ui: %w", err)
	case !ok:
		return result, tea.ErrProgramKilled
	}
	return result, nil
}
