package components

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"tradedesk/internal/adapter/tui/theme"
)

// ChatViewModel is a viewport over a MessageListModel. It follows new
// messages while the operator is at the bottom and stops following once
// they scroll up.
type ChatViewModel struct {
	Viewport viewport.Model
	Messages MessageListModel
	// Waiting is shown under the last message while a reply is pending.
	Waiting  string
	ready    bool
	atBottom bool
}

// NewChatView creates a chat view. The viewport is created on the first
// SetSize.
func NewChatView() ChatViewModel {
	return ChatViewModel{
		Messages: NewMessageList(),
		atBottom: true,
	}
}

// SetMaxMessages sets the display cap.
func (m *ChatViewModel) SetMaxMessages(max int) {
	m.Messages.SetMaxMessages(max)
}

// SetSize sets the viewport dimensions and re-renders.
func (m *ChatViewModel) SetSize(w, h int) {
	m.Messages.SetWidth(w)
	if !m.ready {
		m.Viewport = viewport.New(w, h)
		m.Viewport.MouseWheelEnabled = true
		m.Viewport.MouseWheelDelta = 3
		m.ready = true
	} else {
		m.Viewport.Width = w
		m.Viewport.Height = h
	}
	m.Refresh()
}

// AddMessage appends a message and follows it if auto-scroll is active.
func (m *ChatViewModel) AddMessage(msg ChatMessage) {
	m.Messages.Add(msg)
	m.Refresh()
}

// SetWaiting sets or clears the pending line.
func (m *ChatViewModel) SetWaiting(s string) {
	m.Waiting = s
	m.Refresh()
}

// Update handles scrolling and tracks the auto-scroll state.
func (m ChatViewModel) Update(msg tea.Msg) (ChatViewModel, tea.Cmd) {
	if !m.ready {
		return m, nil
	}
	var cmd tea.Cmd
	m.Viewport, cmd = m.Viewport.Update(msg)
	m.atBottom = m.Viewport.AtBottom()
	return m, cmd
}

// View renders the viewport.
func (m ChatViewModel) View() string {
	if !m.ready {
		return "  Initializing" + theme.SymbolEllipsis
	}
	return m.Viewport.View()
}

// Refresh re-renders the content.
func (m *ChatViewModel) Refresh() {
	if !m.ready {
		return
	}
	content := m.Messages.View()
	if m.Waiting != "" {
		content += "\n\n  " + m.Waiting
	}
	m.Viewport.SetContent(content)
	if m.atBottom {
		m.Viewport.GotoBottom()
	}
}
