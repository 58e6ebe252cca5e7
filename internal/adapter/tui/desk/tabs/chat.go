package tabs

import (
	"context"
	"errors"
	"log/slog"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tradedesk/internal/adapter/tui/components"
	"tradedesk/internal/adapter/tui/theme"
	"tradedesk/internal/domain"
	"tradedesk/internal/usecase/chat"
)

// ChatModel is the free-text surface.
type ChatModel struct {
	ctx     context.Context
	session *chat.Session
	logger  *slog.Logger

	transcript components.ChatViewModel
	input      components.InputAreaModel
	spinner    spinner.Model
	width      int
	height     int
}

// NewChat creates the chat tab. maxMessages caps the display buffer.
func NewChat(ctx context.Context, session *chat.Session, logger *slog.Logger, maxMessages int) ChatModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(theme.ColorInfo)

	view := components.NewChatView()
	view.SetMaxMessages(maxMessages)

	return ChatModel{
		ctx:        ctx,
		session:    session,
		logger:     logger,
		transcript: view,
		input: components.NewInputArea(components.InputOptions{
			Placeholder: "Ask the desk" + theme.SymbolEllipsis,
			Height:      3,
		}),
		spinner: s,
	}
}

// Busy reports whether a reply is outstanding.
func (m ChatModel) Busy() bool { return m.session.Busy() }

// SetSize lays out the transcript above the input.
func (m *ChatModel) SetSize(w, h int) {
	m.width, m.height = w, h
	m.input.SetWidth(w)
	m.transcript.SetSize(w, max(h-m.input.Height()-1, 3))
}

// Focus enables or disables the input when the tab changes.
func (m *ChatModel) Focus(on bool) {
	m.input.SetEnabled(on)
}

// Update handles keys, submissions and replies.
func (m ChatModel) Update(msg tea.Msg) (ChatModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyPgUp, tea.KeyPgDown:
			var cmd tea.Cmd
			m.transcript, cmd = m.transcript.Update(msg)
			return m, cmd
		case tea.KeyEnter:
			if m.session.Busy() {
				return m, nil
			}
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.transcript, cmd = m.transcript.Update(msg)
		return m, cmd

	case components.InputSubmitMsg:
		return m.submit(msg.Value)

	case ChatReplyMsg:
		ex, err := m.session.Complete(msg.Result)
		if err != nil {
			m.logger.Debug("discarding chat reply", "error", err)
			return m, nil
		}
		m.transcript.AddMessage(components.ChatMessage{Exchange: ex, Failed: msg.Result.Response.Failed()})
		m.transcript.SetWaiting("")
		return m, nil

	case spinner.TickMsg:
		if !m.session.Busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.transcript.SetWaiting(m.waitingLine())
		return m, cmd
	}
	return m, nil
}

func (m ChatModel) submit(value string) (ChatModel, tea.Cmd) {
	p, err := m.session.Submit(value)
	switch {
	case errors.Is(err, domain.ErrSurfaceBusy):
		return m, nil
	case errors.Is(err, domain.ErrEmptyInput):
		m.addLast(false)
		return m, nil
	case err != nil:
		m.logger.Warn("chat submit failed", "error", err)
		return m, nil
	}

	m.addLast(false)
	m.transcript.SetWaiting(m.waitingLine())
	m.logger.Debug("chat request", "action", string(p.Action))
	return m, tea.Batch(replyCmd(m.ctx, p), m.spinner.Tick)
}

func (m *ChatModel) addLast(failed bool) {
	exchanges := m.session.Exchanges()
	if len(exchanges) == 0 {
		return
	}
	m.transcript.AddMessage(components.ChatMessage{Exchange: exchanges[len(exchanges)-1], Failed: failed})
}

func (m ChatModel) waitingLine() string {
	return m.spinner.View() + " " + theme.TextMuted.Render("checking"+theme.SymbolEllipsis)
}

// Hints are the tab's status bar hints.
func (m ChatModel) Hints() []components.KeyHint {
	return []components.KeyHint{
		{Key: "Enter", Desc: "Send"},
		{Key: "PgUp/PgDn", Desc: "Scroll"},
		{Key: "Ctrl+N", Desc: "Console"},
		{Key: "Ctrl+C", Desc: "Quit"},
	}
}

// View renders the transcript and input.
func (m ChatModel) View() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		m.transcript.View(),
		components.Divider(m.width),
		m.input.View(),
	)
}
