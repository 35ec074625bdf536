package tui

import (
	"context"
	"time"

	"github.com/MKhiriev/trip-keeper/internal/logger"
	"github.com/MKhiriev/trip-keeper/internal/reconcile"
	"github.com/MKhiriev/trip-keeper/internal/service"
	"github.com/MKhiriev/trip-keeper/models"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type screen int

const (
	screenTrips screen = iota
	screenTripForm
	screenMemberForm
	screenItinerary
	screenStopForm
	screenMoveForm
	screenChat
)

type mainLoopModel struct {
	ctx      context.Context
	services *service.ClientServices
	user     models.User
	logger   *logger.Logger

	screen  screen
	status  string
	spinner spinner.Model
	logout  bool

	errOverlay overlay

	// trips
	trips      []models.Trip
	tripIdx    int
	loading    bool
	tripForm   inputForm
	memberForm inputForm
	submitting bool

	// open trip; liveGen tells updates of the current subscriptions from
	// stale ones
	trip     models.Trip
	liveGen  int
	session  service.ItinerarySession
	itinFeed *feed[itineraryUpdate]
	view     reconcile.View
	stopIdx  int
	stopForm inputForm
	moveForm inputForm

	confirm       overlay
	pendingDelete string

	// chat of the open trip, or the comments of one stop
	chatStop      func()
	chatFeed      *feed[chatUpdate]
	messages      []models.Message
	chatInput     textinput.Model
	commentItemID string
	commentTitle  string
	chatBack      screen
}

func newMainLoopModel(ctx context.Context, services *service.ClientServices, user models.User, log *logger.Logger) mainLoopModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot

	chatInput := newInput("сообщение", 500, false)
	chatInput.Width = 60

	return mainLoopModel{
		ctx:       ctx,
		services:  services,
		user:      user,
		logger:    log,
		screen:    screenTrips,
		spinner:   s,
		loading:   true,
		chatInput: chatInput,
	}
}

func (m mainLoopModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.cmdLoadTrips())
}

func (m mainLoopModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.errOverlay.visible() {
			if key.Matches(keyMsg, keys.enter) || key.Matches(keyMsg, keys.esc) {
				m.errOverlay = overlay{}
			}
			return m, nil
		}
		if m.confirm.visible() {
			return m.updateConfirm(keyMsg)
		}
	}

	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tripsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.showError(humanizeError(msg.err))
			return m, nil
		}
		m.trips = msg.trips
		m.tripIdx = clampIndex(m.tripIdx, len(m.trips))
		return m, nil
	case tripSavedMsg:
		m.submitting = false
		if msg.err != nil {
			m.showError(humanizeError(msg.err))
			return m, nil
		}
		m.screen = screenTrips
		m.status = "Поездка «" + msg.trip.Title + "» создана"
		m.loading = true
		return m, tea.Batch(m.spinner.Tick, m.cmdLoadTrips(), cmdClearStatus())
	case memberAddedMsg:
		return m.handleMemberAdded(msg)
	case sharesRetriedMsg:
		if msg.err != nil {
			m.logger.Warn().Err(msg.err).Msg("retry pending shares")
		}
		return m, nil
	case itineraryOpenedMsg:
		return m.handleItineraryOpened(msg)
	case itineraryUpdate:
		if msg.gen != m.liveGen || m.session == nil {
			return m, nil
		}
		m.view = msg.view
		m.stopIdx = clampIndex(m.stopIdx, len(m.view.Items))
		return m, m.itinFeed.next()
	case stopWrittenMsg:
		if msg.err != nil {
			m.showError(humanizeError(msg.err))
			return m, nil
		}
		m.status = msg.action
		return m, cmdClearStatus()
	case chatOpenedMsg:
		return m.handleChatOpened(msg)
	case chatUpdate:
		if msg.gen != m.liveGen || m.chatFeed == nil {
			return m, nil
		}
		m.messages = msg.messages
		return m, m.chatFeed.next()
	case messageSentMsg:
		if msg.err != nil {
			m.showError(humanizeError(msg.err))
		}
		return m, nil
	case copiedMsg:
		m.status = "ID поездки скопирован"
		return m, cmdClearStatus()
	case clearStatusMsg:
		m.status = ""
		return m, nil
	case tea.WindowSizeMsg:
		return m, nil
	}

	switch m.screen {
	case screenTrips:
		return m.updateTrips(msg)
	case screenTripForm:
		return m.updateTripForm(msg)
	case screenMemberForm:
		return m.updateMemberForm(msg)
	case screenItinerary:
		return m.updateItinerary(msg)
	case screenStopForm:
		return m.updateStopForm(msg)
	case screenMoveForm:
		return m.updateMoveForm(msg)
	case screenChat:
		return m.updateChat(msg)
	}
	return m, nil
}

func (m mainLoopModel) View() string {
	var body string
	switch m.screen {
	case screenTrips:
		body = m.viewTrips()
	case screenTripForm:
		body = m.viewTripForm()
	case screenMemberForm:
		body = m.viewMemberForm()
	case screenItinerary:
		body = m.viewItinerary()
	case screenStopForm:
		body = m.viewStopForm()
	case screenMoveForm:
		body = m.viewMoveForm()
	case screenChat:
		body = m.viewChat()
	}

	for _, o := range []overlay{m.confirm, m.errOverlay} {
		if o.visible() {
			body += "\n\n" + o.View()
		}
	}
	return appStyle.Render(body)
}

func (m *mainLoopModel) showError(message string) {
	m.errOverlay = errorOverlay(message)
}

// closeLive stops the itinerary and chat subscriptions of the open trip.
func (m *mainLoopModel) closeLive() {
	m.closeChat()
	if m.session != nil {
		m.session.Close()
		m.session = nil
	}
	if m.itinFeed != nil {
		m.itinFeed.close()
		m.itinFeed = nil
	}
	m.view = reconcile.View{}
	m.liveGen++
}

func (m *mainLoopModel) closeChat() {
	if m.chatStop != nil {
		m.chatStop()
		m.chatStop = nil
	}
	if m.chatFeed != nil {
		m.chatFeed.close()
		m.chatFeed = nil
	}
	m.messages = nil
}

func cmdCopyToClipboard(text string) tea.Cmd {
	return func() tea.Msg {
		if err := clipboard.WriteAll(text); err != nil {
			return stopWrittenMsg{err: err}
		}
		return copiedMsg{}
	}
}

func cmdClearStatus() tea.Cmd {
	return tea.Tick(2*time.Second, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}

func clampIndex(idx, n int) int {
	if idx >= n {
		idx = n - 1
	}
	if idx < 0 {
		idx = 0
	}
	return idx
}
