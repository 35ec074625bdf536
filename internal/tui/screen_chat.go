package tui

import (
	"strings"

	"github.com/MKhiriev/trip-keeper/models"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// chatHistory is how many messages the chat screen shows.
const chatHistory = 15

// openChat subscribes to the trip messages. A non-empty itemID shows the
// comments of that stop instead of the trip chat.
func (m mainLoopModel) openChat(itemID, itemName string, back screen) (tea.Model, tea.Cmd) {
	m.closeChat()
	m.commentItemID = itemID
	m.commentTitle = itemName
	m.chatBack = back
	m.chatInput.SetValue("")
	m.chatInput.Focus()
	m.screen = screenChat
	return m, tea.Batch(textinput.Blink, m.cmdOpenChat(m.trip.ID))
}

func (m mainLoopModel) handleChatOpened(msg chatOpenedMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.liveGen || m.screen != screenChat || m.chatFeed != nil {
		if msg.stop != nil {
			msg.stop()
		}
		msg.feed.close()
		return m, nil
	}
	if msg.err != nil {
		msg.feed.close()
		m.screen = m.chatBack
		m.showError(humanizeError(msg.err))
		return m, nil
	}

	m.chatStop = msg.stop
	m.chatFeed = msg.feed
	return m, m.chatFeed.next()
}

func (m mainLoopModel) updateChat(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, keys.esc):
			m.closeChat()
			m.chatInput.Blur()
			m.screen = m.chatBack
			return m, nil
		case key.Matches(keyMsg, keys.enter):
			text := strings.TrimSpace(m.chatInput.Value())
			if text == "" {
				return m, nil
			}
			m.chatInput.SetValue("")
			return m, m.cmdSendMessage(text)
		}
	}

	var cmd tea.Cmd
	m.chatInput, cmd = m.chatInput.Update(msg)
	return m, cmd
}

func (m mainLoopModel) visibleMessages() []models.Message {
	var out []models.Message
	for _, msg := range m.messages {
		if m.commentItemID == "" {
			if msg.Kind != models.MessageKindComment {
				out = append(out, msg)
			}
			continue
		}
		if msg.ItemID == m.commentItemID {
			out = append(out, msg)
		}
	}
	if len(out) > chatHistory {
		out = out[len(out)-chatHistory:]
	}
	return out
}

func (m mainLoopModel) viewChat() string {
	title := "ЧАТ: " + m.trip.Title
	if m.commentItemID != "" {
		title = "КОММЕНТАРИИ: " + m.commentTitle
	}

	var b strings.Builder
	msgs := m.visibleMessages()
	if len(msgs) == 0 {
		b.WriteString(helpStyle.Render("Сообщений пока нет") + "\n")
	}
	for _, msg := range msgs {
		author := fitText(msg.AuthorID, 8)
		if msg.AuthorID == m.user.UserID {
			author = "вы"
		}
		b.WriteString(msg.CreatedAt.Local().Format("15:04") + " " + authorStyle.Render(author) + ": " + msg.Text + "\n")
	}

	b.WriteString("\n> " + m.chatInput.View())
	return renderPage(title, b.String(), "enter: отправить │ esc: назад")
}

func (m mainLoopModel) cmdOpenChat(tripID string) tea.Cmd {
	ctx := m.ctx
	svc := m.services.MessageService
	userID := m.user.UserID
	gen := m.liveGen
	return func() tea.Msg {
		f := newFeed[chatUpdate]()
		stop, err := svc.Subscribe(ctx, tripID, userID, func(msgs []models.Message) {
			f.push(chatUpdate{gen: gen, messages: msgs})
		})
		return chatOpenedMsg{gen: gen, stop: stop, feed: f, err: err}
	}
}

func (m mainLoopModel) cmdSendMessage(text string) tea.Cmd {
	ctx := m.ctx
	svc := m.services.MessageService
	tripID, itemID, userID := m.trip.ID, m.commentItemID, m.user.UserID
	return func() tea.Msg {
		var err error
		if itemID == "" {
			_, err = svc.Send(ctx, tripID, userID, text)
		} else {
			_, err = svc.Comment(ctx, tripID, itemID, userID, text)
		}
		return messageSentMsg{err: err}
	}
}
