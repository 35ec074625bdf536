package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type menuItem struct {
	title string
	page  string // empty page quits
}

// MenuModel is the start page of the login flow.
type MenuModel struct {
	items []menuItem
	idx   int
}

func NewMenuModel() *MenuModel {
	return &MenuModel{items: []menuItem{
		{title: "Войти", page: "login"},
		{title: "Зарегистрироваться", page: "register"},
		{title: "Выход"},
	}}
}

func (m *MenuModel) Init() tea.Cmd {
	return nil
}

func (m *MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.up):
		m.idx = max(m.idx-1, 0)
	case key.Matches(keyMsg, keys.down):
		m.idx = min(m.idx+1, len(m.items)-1)
	case key.Matches(keyMsg, keys.quit):
		return m, emit(quitRequested{})
	case key.Matches(keyMsg, keys.enter):
		if page := m.items[m.idx].page; page != "" {
			return m, emit(NavigateTo{Page: page})
		}
		return m, emit(quitRequested{})
	}
	return m, nil
}

func (m *MenuModel) View() string {
	width := len([]rune("Действие"))
	for _, item := range m.items {
		width = max(width, len([]rune(item.title)))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s │ %s\n", padRight("#", 4), "Действие")
	fmt.Fprintf(&b, "%s─┼─%s\n", strings.Repeat("─", 4), strings.Repeat("─", width))
	for i, item := range m.items {
		cursor := " "
		if i == m.idx {
			cursor = ">"
		}
		fmt.Fprintf(&b, "%s │ %s\n", padRight(fmt.Sprintf("%s %d", cursor, i+1), 4), item.title)
	}

	return renderPage("TRIP KEEPER", strings.TrimSuffix(b.String(), "\n"), "enter: выбрать │ ↑/↓: навигация │ v: версия")
}

func emit(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}
