// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"strings"

	"github.com/MKhiriev/trip-keeper/internal/service"
	"github.com/MKhiriev/trip-keeper/models"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type submitCredentials func(ctx context.Context, login, password string) (models.User, error)

// CredentialsModel is the login page and, with a repeated password field,
// the registration page. Both end with a [LoginResult] that [RootModel]
// turns into the signed-in user; the master key of the device is resolved
// by then.
type CredentialsModel struct {
	ctx    context.Context
	submit submitCredentials

	title  string
	action string
	labels []string

	form       inputForm
	submitting bool
	errMsg     string
}

func NewLoginModel(ctx context.Context, auth service.ClientAuthService) *CredentialsModel {
	return &CredentialsModel{
		ctx:    ctx,
		submit: authFunc(auth, false),
		title:  "ВХОД",
		action: "Войти",
		labels: []string{"Логин", "Пароль"},
		form: newInputForm(
			newInput("login", 64, false),
			newInput("password", 256, true),
		),
	}
}

func NewRegisterModel(ctx context.Context, auth service.ClientAuthService) *CredentialsModel {
	return &CredentialsModel{
		ctx:    ctx,
		submit: authFunc(auth, true),
		title:  "РЕГИСТРАЦИЯ",
		action: "Зарегистрироваться",
		labels: []string{"Логин", "Пароль", "Повтор пароля"},
		form: newInputForm(
			newInput("login", 64, false),
			newInput("password", 256, true),
			newInput("repeat password", 256, true),
		),
	}
}

func authFunc(auth service.ClientAuthService, register bool) submitCredentials {
	if auth == nil {
		return nil
	}
	if register {
		return auth.Register
	}
	return auth.Login
}

func (m *CredentialsModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *CredentialsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case LoginResult:
		m.submitting = false
		if msg.Err != nil {
			m.errMsg = humanizeError(msg.Err)
		}
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.esc):
			m.submitting = false
			m.errMsg = ""
			m.form.reset()
			return m, emit(NavigateTo{Page: "menu"})
		case key.Matches(msg, keys.tab):
			m.form.focusNext()
			return m, nil
		case key.Matches(msg, keys.backtab):
			m.form.focusPrev()
			return m, nil
		case key.Matches(msg, keys.enter):
			return m, m.trySubmit()
		}
	}
	return m, m.form.update(msg)
}

// trySubmit checks the form and starts the request. A second enter while a
// request is in flight is ignored.
func (m *CredentialsModel) trySubmit() tea.Cmd {
	if m.submitting || m.submit == nil {
		return nil
	}

	login, pass := m.form.value(0), m.form.inputs[1].Value()
	switch {
	case login == "" || pass == "":
		m.errMsg = "Логин и пароль обязательны"
		return nil
	case len(m.form.inputs) > 2 && m.form.inputs[2].Value() != pass:
		m.errMsg = "Пароли не совпадают"
		return nil
	}

	m.errMsg = ""
	m.submitting = true
	ctx, submit := m.ctx, m.submit
	return func() tea.Msg {
		user, err := submit(ctx, login, pass)
		return LoginResult{User: user, Err: err}
	}
}

func (m *CredentialsModel) View() string {
	var b strings.Builder
	b.WriteString(m.form.table(m.labels))

	button := m.action
	if m.submitting {
		button += "..."
	}
	b.WriteString("\n[" + button + "]")

	if m.errMsg != "" {
		b.WriteString("\n\nОшибка: " + m.errMsg)
	}

	return renderPage(m.title, b.String(), "esc: назад │ tab: след. поле │ enter: подтвердить")
}
