// Package desk is the root Bubble Tea model: a tab bar over the chat and
// console surfaces with a shared status bar.
package desk

import (
	"context"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tradedesk/internal/adapter/tui/components"
	"tradedesk/internal/adapter/tui/desk/tabs"
	"tradedesk/internal/adapter/tui/theme"
	"tradedesk/internal/usecase/chat"
	"tradedesk/internal/usecase/console"
	"tradedesk/internal/usecase/health"
)

var _ tea.Model = (*Model)(nil)

// Tab identifies the active surface.
type Tab int

const (
	TabChat Tab = iota
	TabConsole
)

// Deps are the model's collaborators.
type Deps struct {
	Chat        *chat.Session
	Console     *console.Executor
	Logger      *slog.Logger
	Backend     string          // shown in the status bar
	Health      *health.Monitor // optional; nil hides the reachability dot
	DeskName    string
	Prompt      string
	MaxMessages int
	MaxEntries  int
}

// Model is the root model.
type Model struct {
	deps Deps

	activeTab Tab
	tabBar    components.TabBarModel
	statusBar components.StatusBarModel

	chat    tabs.ChatModel
	console tabs.ConsoleModel

	width  int
	height int
}

// New creates the root model. ctx bounds every request the surfaces start.
func New(ctx context.Context, deps Deps) *Model {
	theme.SetDeskName(deps.DeskName)

	sb := components.NewStatusBar()
	sb.Backend = deps.Backend

	m := &Model{
		deps: deps,
		tabBar: components.NewTabBar([]components.Tab{
			{ID: "chat", Label: "Chat"},
			{ID: "console", Label: "Console"},
		}),
		statusBar: sb,
		chat:      tabs.NewChat(ctx, deps.Chat, deps.Logger, deps.MaxMessages),
		console:   tabs.NewConsole(ctx, deps.Console, deps.Logger, deps.Prompt, deps.MaxEntries),
	}
	m.console.Focus(false)
	return m
}

// healthRefresh is how often the status bar re-reads the monitor.
const healthRefresh = 2 * time.Second

type healthTickMsg struct{}

func healthTick() tea.Cmd {
	return tea.Tick(healthRefresh, func(time.Time) tea.Msg { return healthTickMsg{} })
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	if m.deps.Health == nil {
		return nil
	}
	return healthTick()
}

// Active returns the active tab.
func (m *Model) Active() Tab { return m.activeTab }

// Update routes input to the active surface and async results to their
// owner regardless of which tab is showing.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			return m, tea.Quit
		case tea.KeyCtrlN:
			m.tabBar.Next()
			m.setTab(Tab(m.tabBar.Active))
			return m, nil
		case tea.KeyCtrlP:
			m.tabBar.Prev()
			m.setTab(Tab(m.tabBar.Active))
			return m, nil
		}
		return m.toActive(msg)

	case healthTickMsg:
		m.syncHealth()
		return m, healthTick()

	case tabs.ChatReplyMsg:
		var cmd tea.Cmd
		m.chat, cmd = m.chat.Update(msg)
		m.syncBusy()
		return m, cmd

	case tabs.CommandDoneMsg:
		var cmd tea.Cmd
		m.console, cmd = m.console.Update(msg)
		m.syncBusy()
		return m, cmd
	}

	// Spinner ticks carry the spinner's ID, so each surface ignores the
	// other's.
	var chatCmd, consoleCmd tea.Cmd
	switch msg.(type) {
	case tea.MouseMsg, components.InputSubmitMsg, components.RecallMsg:
		return m.toActive(msg)
	default:
		m.chat, chatCmd = m.chat.Update(msg)
		m.console, consoleCmd = m.console.Update(msg)
	}
	m.syncBusy()
	return m, tea.Batch(chatCmd, consoleCmd)
}

func (m *Model) toActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.activeTab {
	case TabChat:
		m.chat, cmd = m.chat.Update(msg)
	case TabConsole:
		m.console, cmd = m.console.Update(msg)
	}
	m.syncBusy()
	return m, cmd
}

func (m *Model) syncHealth() {
	if m.deps.Health == nil {
		return
	}
	switch st := m.deps.Health.Status(); {
	case !st.Checked:
		m.statusBar.Link = components.LinkUnknown
	case st.Online:
		m.statusBar.Link = components.LinkUp
	default:
		m.statusBar.Link = components.LinkDown
	}
}

func (m *Model) syncBusy() {
	m.tabBar.SetBusy("chat", m.chat.Busy())
	m.tabBar.SetBusy("console", m.console.Busy())
}

// View renders the tab bar, the active surface and the status bar.
func (m *Model) View() string {
	if m.width == 0 {
		return "  Initializing" + theme.SymbolEllipsis
	}

	var content string
	state := "idle"
	switch m.activeTab {
	case TabChat:
		content = m.chat.View()
		m.statusBar.Hints = m.chat.Hints()
		if m.chat.Busy() {
			state = "waiting"
		}
	case TabConsole:
		content = m.console.View()
		m.statusBar.Hints = m.console.Hints()
		if m.console.Busy() {
			state = "running"
		}
	}
	m.statusBar.State = state

	return lipgloss.JoinVertical(lipgloss.Left,
		m.tabBar.View(),
		content,
		m.statusBar.View(),
	)
}

func (m *Model) layout() {
	contentH := max(m.height-2, 5)
	m.tabBar.SetWidth(m.width)
	m.statusBar.SetWidth(m.width)
	m.chat.SetSize(m.width, contentH)
	m.console.SetSize(m.width, contentH)
}

func (m *Model) setTab(t Tab) {
	m.activeTab = t
	m.tabBar.SetActive(int(t))
	m.chat.Focus(t == TabChat)
	m.console.Focus(t == TabConsole)
}
