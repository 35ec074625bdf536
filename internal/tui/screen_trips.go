package tui

import (
	"errors"
	"fmt"
	"strings"

	tripkeys "github.com/MKhiriev/trip-keeper/internal/keys"
	"github.com/MKhiriev/trip-keeper/models"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func (m mainLoopModel) currentTrip() (models.Trip, bool) {
	if len(m.trips) == 0 || m.tripIdx < 0 || m.tripIdx >= len(m.trips) {
		return models.Trip{}, false
	}
	return m.trips[m.tripIdx], true
}

func (m mainLoopModel) updateTrips(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.up):
		if m.tripIdx > 0 {
			m.tripIdx--
		}
	case key.Matches(keyMsg, keys.down):
		if m.tripIdx < len(m.trips)-1 {
			m.tripIdx++
		}
	case key.Matches(keyMsg, keys.quit):
		return m, tea.Quit
	case key.Matches(keyMsg, keys.logout):
		m.logout = true
		return m, tea.Quit
	case key.Matches(keyMsg, keys.refresh):
		m.loading = true
		return m, tea.Batch(m.spinner.Tick, m.cmdLoadTrips(), m.cmdRetryShares())
	case key.Matches(keyMsg, keys.newItem):
		m.tripForm = newInputForm(newInput("название поездки", 120, false))
		m.screen = screenTripForm
		return m, nil
	}

	trip, ok := m.currentTrip()
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.enter):
		m.closeLive()
		m.trip = trip
		m.stopIdx = 0
		m.screen = screenItinerary
		return m, m.cmdOpenItinerary(trip.ID)
	case key.Matches(keyMsg, keys.member):
		m.trip = trip
		m.memberForm = newInputForm(newInput("ID пользователя", 64, false))
		m.screen = screenMemberForm
	case key.Matches(keyMsg, keys.chat):
		m.closeLive()
		m.trip = trip
		return m.openChat("", "", screenTrips)
	case key.Matches(keyMsg, keys.copy):
		return m, cmdCopyToClipboard(trip.ID)
	}
	return m, nil
}

func (m mainLoopModel) viewTrips() string {
	var b strings.Builder
	b.WriteString("Вы: " + m.user.Login + " (" + m.user.UserID + ")\n\n")

	switch {
	case m.loading && len(m.trips) == 0:
		b.WriteString(m.spinner.View() + " Загрузка...\n")
	case len(m.trips) == 0:
		b.WriteString("Нет поездок\n")
	default:
		for i, trip := range m.trips {
			cursor := "  "
			if i == m.tripIdx {
				cursor = "> "
			}
			owner := ""
			if trip.OwnerID == m.user.UserID {
				owner = " ★"
			}
			b.WriteString(fmt.Sprintf("%s%s %s%s  (%d уч.)\n", cursor, tripIcon(trip), fitText(trip.Title, 40), owner, len(trip.Members)))
		}
	}

	if m.status != "" {
		b.WriteString("\n" + statusStyle.Render(m.status) + "\n")
	}

	return renderPage("ПОЕЗДКИ", strings.TrimRight(b.String(), "\n"),
		"enter: маршрут │ n: новая │ a: участник │ c: чат │ y: копир. ID │ r: обновить │ l: выйти │ q: выход")
}

func tripIcon(trip models.Trip) string {
	if trip.Encrypted {
		return "[E]"
	}
	return "[ ]"
}

func (m mainLoopModel) updateTripForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, keys.esc):
			m.screen = screenTrips
			return m, nil
		case key.Matches(keyMsg, keys.enter):
			if m.submitting {
				return m, nil
			}
			title := m.tripForm.value(0)
			if title == "" {
				m.showError("Название обязательно")
				return m, nil
			}
			m.submitting = true
			return m, m.cmdCreateTrip(title)
		}
	}
	return m, m.tripForm.update(msg)
}

func (m mainLoopModel) viewTripForm() string {
	body := m.tripForm.table([]string{"Название"})
	if m.submitting {
		body += "\n[Создание...]"
	}
	return renderPage("НОВАЯ ПОЕЗДКА", body, "esc: назад │ enter: создать")
}

func (m mainLoopModel) updateMemberForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, keys.esc):
			m.screen = screenTrips
			return m, nil
		case key.Matches(keyMsg, keys.enter):
			if m.submitting {
				return m, nil
			}
			memberID := m.memberForm.value(0)
			if memberID == "" {
				m.showError("Укажите ID пользователя")
				return m, nil
			}
			m.submitting = true
			return m, m.cmdAddMember(m.trip.ID, memberID)
		}
	}
	return m, m.memberForm.update(msg)
}

func (m mainLoopModel) viewMemberForm() string {
	var b strings.Builder
	b.WriteString("Поездка: " + m.trip.Title + "\n")
	b.WriteString("Участники: " + strings.Join(m.trip.Members, ", ") + "\n\n")
	b.WriteString(m.memberForm.table([]string{"Пользователь"}))
	if m.submitting {
		b.WriteString("\n[Добавление...]")
	}
	return renderPage("ДОБАВИТЬ УЧАСТНИКА", strings.TrimRight(b.String(), "\n"), "esc: назад │ enter: добавить")
}

// handleMemberAdded treats a pending key share as success: the member is
// in the trip and gets the key once they sign in.
func (m mainLoopModel) handleMemberAdded(msg memberAddedMsg) (tea.Model, tea.Cmd) {
	m.submitting = false
	switch {
	case msg.err == nil:
		m.status = "Участник " + msg.memberID + " добавлен"
	case errors.Is(msg.err, tripkeys.ErrKeyUnavailable):
		m.status = "Участник " + msg.memberID + " добавлен, ключ будет передан после его входа"
	default:
		m.showError(humanizeError(msg.err))
		return m, nil
	}
	m.screen = screenTrips
	m.loading = true
	return m, tea.Batch(m.spinner.Tick, m.cmdLoadTrips(), cmdClearStatus())
}

func (m mainLoopModel) cmdLoadTrips() tea.Cmd {
	ctx := m.ctx
	svc := m.services.TripService
	userID := m.user.UserID
	return func() tea.Msg {
		trips, err := svc.ListTrips(ctx, userID)
		return tripsLoadedMsg{trips: trips, err: err}
	}
}

func (m mainLoopModel) cmdCreateTrip(title string) tea.Cmd {
	ctx := m.ctx
	svc := m.services.TripService
	userID := m.user.UserID
	return func() tea.Msg {
		trip, err := svc.CreateTrip(ctx, userID, title)
		return tripSavedMsg{trip: trip, err: err}
	}
}

func (m mainLoopModel) cmdAddMember(tripID, memberID string) tea.Cmd {
	ctx := m.ctx
	svc := m.services.TripService
	userID := m.user.UserID
	return func() tea.Msg {
		err := svc.AddMember(ctx, tripID, memberID, userID)
		return memberAddedMsg{memberID: memberID, err: err}
	}
}

func (m mainLoopModel) cmdRetryShares() tea.Cmd {
	ctx := m.ctx
	svc := m.services.TripService
	userID := m.user.UserID
	return func() tea.Msg {
		return sharesRetriedMsg{err: svc.RetryPendingShares(ctx, userID)}
	}
}
