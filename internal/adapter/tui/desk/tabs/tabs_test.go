package tabs

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradedesk/internal/adapter/tui/components"
	"tradedesk/internal/domain"
	"tradedesk/internal/infra/logger"
	"tradedesk/internal/usecase/chat"
	"tradedesk/internal/usecase/console"
	"tradedesk/internal/usecase/dispatch"
	"tradedesk/internal/usecase/intent"
)

func agentsBackend() domain.Backend {
	return domain.BackendFunc(func(_ context.Context, r domain.Resource, _ map[string]string) (any, error) {
		if r == domain.ResourceAgentSummary {
			return map[string]any{"total_agents": 2.0, "active_agents": 2.0}, nil
		}
		return nil, domain.ErrBackendUnavailable
	})
}

// drain executes cmd, expanding batches, and returns every message.
func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, drain(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func newChatTab() (ChatModel, *chat.Session) {
	session := chat.NewSession(intent.NewDefault(), dispatch.New(agentsBackend(), logger.Discard()))
	m := NewChat(context.Background(), session, logger.Discard(), 100)
	m.SetSize(80, 24)
	return m, session
}

func TestChat_SubmitAndReply(t *testing.T) {
	m, session := newChatTab()

	m, cmd := m.Update(components.InputSubmitMsg{Value: "agent status"})
	require.True(t, m.Busy())
	assert.Equal(t, 1, session.Len())

	var reply *ChatReplyMsg
	for _, msg := range drain(cmd) {
		if r, ok := msg.(ChatReplyMsg); ok {
			reply = &r
		}
	}
	require.NotNil(t, reply)

	m, _ = m.Update(*reply)
	assert.False(t, m.Busy())
	assert.Equal(t, 2, session.Len())
	assert.Len(t, m.transcript.Messages.Messages, 2)
	assert.Contains(t, m.View(), "Total agents: 2")
}

func TestChat_SubmitWhileBusyIsIgnored(t *testing.T) {
	m, session := newChatTab()

	m, _ = m.Update(components.InputSubmitMsg{Value: "agent status"})
	m, cmd := m.Update(components.InputSubmitMsg{Value: "capital"})
	assert.Nil(t, cmd)
	assert.Equal(t, 1, session.Len())
	assert.True(t, m.Busy())
}

func TestChat_BlankGetsPrompt(t *testing.T) {
	m, session := newChatTab()

	m, cmd := m.Update(components.InputSubmitMsg{Value: "  "})
	assert.Nil(t, cmd)
	assert.False(t, m.Busy())
	require.Equal(t, 1, session.Len())
	assert.Equal(t, chat.EmptyInputText, session.Exchanges()[0].Text)
}

func TestChat_FailedReplyMarked(t *testing.T) {
	m, _ := newChatTab()

	m, cmd := m.Update(components.InputSubmitMsg{Value: "capital"})
	for _, msg := range drain(cmd) {
		if r, ok := msg.(ChatReplyMsg); ok {
			m, _ = m.Update(r)
		}
	}
	msgs := m.transcript.Messages.Messages
	require.Len(t, msgs, 2)
	assert.True(t, msgs[1].Failed)
	assert.Empty(t, msgs[1].Exchange.Navigate)
}

func newConsoleTab() (ConsoleModel, *console.Executor) {
	exec := console.NewExecutor(agentsBackend(), logger.Discard())
	m := NewConsole(context.Background(), exec, logger.Discard(), "$ ", 50)
	m.SetSize(80, 24)
	return m, exec
}

func runConsole(m ConsoleModel, line string) ConsoleModel {
	m, cmd := m.Update(components.InputSubmitMsg{Value: line})
	for _, msg := range drain(cmd) {
		if r, ok := msg.(CommandDoneMsg); ok {
			m, _ = m.Update(r)
		}
	}
	return m
}

func TestConsole_RunsCommand(t *testing.T) {
	m, exec := newConsoleTab()

	m = runConsole(m, "agents")
	assert.False(t, m.Busy())
	require.Len(t, exec.Entries(), 1)
	assert.Len(t, m.scrollback.Entries, 1)
	assert.Contains(t, m.View(), "Agents")
}

func TestConsole_BusyRejectsSecondCommand(t *testing.T) {
	m, exec := newConsoleTab()

	m, _ = m.Update(components.InputSubmitMsg{Value: "agents"})
	require.True(t, m.Busy())
	m, cmd := m.Update(components.InputSubmitMsg{Value: "greeks"})
	assert.Nil(t, cmd)
	assert.Equal(t, []string{"agents"}, exec.History())
}

func TestConsole_Recall(t *testing.T) {
	m, _ := newConsoleTab()
	m = runConsole(m, "help")
	m = runConsole(m, "agents")

	m, _ = m.Update(components.RecallMsg{Up: true})
	assert.Equal(t, "agents", m.input.Value())
	m, _ = m.Update(components.RecallMsg{Up: true})
	assert.Equal(t, "help", m.input.Value())
	m, _ = m.Update(components.RecallMsg{Up: true})
	assert.Equal(t, "help", m.input.Value())
	m, _ = m.Update(components.RecallMsg{Up: false})
	assert.Equal(t, "agents", m.input.Value())
	m, _ = m.Update(components.RecallMsg{Up: false})
	assert.Empty(t, m.input.Value())
}

func TestConsole_BlankIgnored(t *testing.T) {
	m, exec := newConsoleTab()
	m, cmd := m.Update(components.InputSubmitMsg{Value: ""})
	assert.Nil(t, cmd)
	assert.False(t, m.Busy())
	assert.Empty(t, exec.History())
}
