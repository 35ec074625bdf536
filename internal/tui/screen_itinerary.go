package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/MKhiriev/trip-keeper/internal/reconcile"
	"github.com/MKhiriev/trip-keeper/models"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func (m mainLoopModel) currentStop() (models.ItineraryItem, bool) {
	items := m.view.Items
	if len(items) == 0 || m.stopIdx < 0 || m.stopIdx >= len(items) {
		return models.ItineraryItem{}, false
	}
	return items[m.stopIdx], true
}

func (m mainLoopModel) handleItineraryOpened(msg itineraryOpenedMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.liveGen {
		if msg.session != nil {
			msg.session.Close()
		}
		msg.feed.close()
		return m, nil
	}
	if msg.err != nil {
		msg.feed.close()
		m.screen = screenTrips
		m.showError(humanizeError(msg.err))
		return m, nil
	}

	m.session = msg.session
	m.itinFeed = msg.feed
	m.view = msg.session.View()
	return m, m.itinFeed.next()
}

func (m mainLoopModel) updateItinerary(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.esc):
		m.closeLive()
		m.screen = screenTrips
		m.loading = true
		return m, tea.Batch(m.spinner.Tick, m.cmdLoadTrips())
	case key.Matches(keyMsg, keys.up):
		if m.stopIdx > 0 {
			m.stopIdx--
		}
		return m, nil
	case key.Matches(keyMsg, keys.down):
		if m.stopIdx < len(m.view.Items)-1 {
			m.stopIdx++
		}
		return m, nil
	case key.Matches(keyMsg, keys.chat):
		return m.openChat("", "", screenItinerary)
	}

	if m.session == nil {
		return m, nil
	}

	if key.Matches(keyMsg, keys.newItem) {
		day := 1
		if stop, ok := m.currentStop(); ok {
			day = stop.Day
		}
		m.stopForm = newInputForm(
			newInput("place id", 128, false),
			newInput("название", 120, false),
			newInput("адрес", 200, false),
			newInput("день", 3, false),
			newInput("заметки", 500, false),
		)
		m.stopForm.inputs[3].SetValue(strconv.Itoa(day))
		m.screen = screenStopForm
		return m, nil
	}

	stop, ok := m.currentStop()
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.enter):
		return m.openChat(stop.ID, stop.Name, screenItinerary)
	case key.Matches(keyMsg, keys.move):
		m.moveForm = newInputForm(
			newInput("день", 3, false),
			newInput("позиция", 3, false),
		)
		m.moveForm.inputs[0].SetValue(strconv.Itoa(stop.Day))
		m.moveForm.inputs[1].SetValue(strconv.Itoa(stop.OrderIndex + 1))
		m.screen = screenMoveForm
	case key.Matches(keyMsg, keys.delete):
		m.confirm = deleteStopOverlay(stop.Name)
		m.pendingDelete = stop.ID
	}
	return m, nil
}

func (m mainLoopModel) updateConfirm(keyMsg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(keyMsg, keys.yes):
		m.confirm = overlay{}
		itemID := m.pendingDelete
		m.pendingDelete = ""
		if itemID == "" || m.session == nil {
			return m, nil
		}
		return m, m.cmdDeleteStop(itemID)
	case key.Matches(keyMsg, keys.no), key.Matches(keyMsg, keys.esc):
		m.confirm = overlay{}
		m.pendingDelete = ""
	}
	return m, nil
}

func (m mainLoopModel) viewItinerary() string {
	var b strings.Builder
	b.WriteString("Поездка: " + m.trip.Title + "\n\n")

	if m.session == nil {
		b.WriteString("Открытие...\n")
		return renderPage("МАРШРУТ", strings.TrimRight(b.String(), "\n"), "esc: назад")
	}

	if len(m.view.Items) == 0 {
		b.WriteString("Маршрут пуст\n")
	}

	day := 0
	for i, item := range m.view.Items {
		if item.Day != day {
			day = item.Day
			b.WriteString(titleStyle.Render(fmt.Sprintf("День %d", day)) + "\n")
		}
		cursor := "  "
		if i == m.stopIdx {
			cursor = "> "
		}
		b.WriteString(cursor + renderStop(item, m.view) + "\n")
	}

	if removed := removedStops(m.view); len(removed) > 0 {
		b.WriteString("\n")
		for _, name := range removed {
			b.WriteString(removedStyle.Render("- "+name) + "\n")
		}
	}

	if m.status != "" {
		b.WriteString("\n" + statusStyle.Render(m.status) + "\n")
	}

	return renderPage("МАРШРУТ", strings.TrimRight(b.String(), "\n"),
		"n: добавить │ m: переместить │ d: удалить │ enter: комментарии │ c: чат │ esc: назад")
}

// renderStop marks pending stops and highlights recent remote changes.
func renderStop(item models.ItineraryItem, view reconcile.View) string {
	line := fmt.Sprintf("%d. %s", item.OrderIndex+1, fitText(item.Name, 40))
	if item.Address != "" {
		line += "  " + helpStyle.Render(fitText(item.Address, 40))
	}

	if item.Pending {
		return pendingStyle.Render(line + "  (сохраняется...)")
	}

	ev, ok := view.Event(item.ID)
	if !ok {
		return line
	}
	switch ev.Kind {
	case models.ChangeAdded:
		return addedStyle.Render("+ ") + line
	case models.ChangeMoved:
		return movedStyle.Render("~ ") + line
	}
	return line
}

func removedStops(view reconcile.View) []string {
	var names []string
	for _, ev := range view.Events {
		if ev.Kind == models.ChangeRemoved {
			names = append(names, ev.Item.Name)
		}
	}
	return names
}

func (m mainLoopModel) updateStopForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, keys.esc):
			m.screen = screenItinerary
			return m, nil
		case key.Matches(keyMsg, keys.tab):
			m.stopForm.focusNext()
			return m, nil
		case key.Matches(keyMsg, keys.backtab):
			m.stopForm.focusPrev()
			return m, nil
		case key.Matches(keyMsg, keys.enter):
			placeID := m.stopForm.value(0)
			name := m.stopForm.value(1)
			day, err := strconv.Atoi(m.stopForm.value(3))
			if placeID == "" || name == "" {
				m.showError("Place id и название обязательны")
				return m, nil
			}
			if err != nil || day < 1 {
				m.showError("День должен быть числом от 1")
				return m, nil
			}
			// the stop shows up as pending right away
			m.screen = screenItinerary
			return m, m.cmdAddStop(models.ItineraryItem{
				PlaceID: placeID,
				Name:    name,
				Address: m.stopForm.value(2),
				Day:     day,
				Notes:   m.stopForm.value(4),
			})
		}
	}
	return m, m.stopForm.update(msg)
}

func (m mainLoopModel) viewStopForm() string {
	body := m.stopForm.table([]string{"Place ID", "Название", "Адрес", "День", "Заметки"})
	return renderPage("НОВАЯ ОСТАНОВКА", body, "esc: назад │ tab: след. поле │ enter: добавить")
}

func (m mainLoopModel) updateMoveForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, keys.esc):
			m.screen = screenItinerary
			return m, nil
		case key.Matches(keyMsg, keys.tab):
			m.moveForm.focusNext()
			return m, nil
		case key.Matches(keyMsg, keys.backtab):
			m.moveForm.focusPrev()
			return m, nil
		case key.Matches(keyMsg, keys.enter):
			stop, ok := m.currentStop()
			if !ok {
				m.screen = screenItinerary
				return m, nil
			}
			day, errDay := strconv.Atoi(m.moveForm.value(0))
			pos, errPos := strconv.Atoi(m.moveForm.value(1))
			if errDay != nil || errPos != nil || day < 1 || pos < 1 {
				m.showError("День и позиция должны быть числами от 1")
				return m, nil
			}
			m.screen = screenItinerary
			return m, m.cmdMoveStop(stop.ID, day, pos-1)
		}
	}
	return m, m.moveForm.update(msg)
}

func (m mainLoopModel) viewMoveForm() string {
	var b strings.Builder
	if stop, ok := m.currentStop(); ok {
		b.WriteString("Остановка: " + stop.Name + "\n\n")
	}
	b.WriteString(m.moveForm.table([]string{"День", "Позиция"}))
	return renderPage("ПЕРЕМЕСТИТЬ", strings.TrimRight(b.String(), "\n"), "esc: назад │ tab: след. поле │ enter: переместить")
}

func (m mainLoopModel) cmdOpenItinerary(tripID string) tea.Cmd {
	ctx := m.ctx
	svc := m.services.ItineraryService
	userID := m.user.UserID
	gen := m.liveGen
	return func() tea.Msg {
		f := newFeed[itineraryUpdate]()
		session, err := svc.Open(ctx, tripID, userID, func(view reconcile.View) {
			f.push(itineraryUpdate{gen: gen, view: view})
		})
		return itineraryOpenedMsg{gen: gen, session: session, feed: f, err: err}
	}
}

func (m mainLoopModel) cmdAddStop(item models.ItineraryItem) tea.Cmd {
	ctx := m.ctx
	session := m.session
	return func() tea.Msg {
		return stopWrittenMsg{action: "Остановка добавлена", err: session.AddStop(ctx, item)}
	}
}

func (m mainLoopModel) cmdMoveStop(itemID string, day, orderIndex int) tea.Cmd {
	ctx := m.ctx
	session := m.session
	return func() tea.Msg {
		return stopWrittenMsg{action: "Остановка перемещена", err: session.MoveStop(ctx, itemID, day, orderIndex)}
	}
}

func (m mainLoopModel) cmdDeleteStop(itemID string) tea.Cmd {
	ctx := m.ctx
	session := m.session
	return func() tea.Msg {
		return stopWrittenMsg{action: "Остановка удалена", err: session.DeleteStop(ctx, itemID)}
	}
}
