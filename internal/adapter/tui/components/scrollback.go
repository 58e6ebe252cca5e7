package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"tradedesk/internal/adapter/tui/theme"
	"tradedesk/internal/domain"
)

// ScrollbackModel is a viewport over executed console entries plus the
// entry still running. Like ChatViewModel it follows new output only
// while the operator is at the bottom.
type ScrollbackModel struct {
	Viewport   viewport.Model
	Entries    []domain.TerminalEntry
	MaxEntries int
	Prompt     string
	// Running is the command in flight and Spinner its indicator.
	Running  string
	Spinner  string
	trimmed  int
	rendered []string
	width    int
	ready    bool
	atBottom bool
}

// NewScrollback creates an empty scrollback with the given prompt.
func NewScrollback(prompt string) ScrollbackModel {
	return ScrollbackModel{Prompt: prompt, atBottom: true}
}

// SetSize sets the viewport dimensions and re-renders every entry.
func (m *ScrollbackModel) SetSize(w, h int) {
	if !m.ready {
		m.Viewport = viewport.New(w, h)
		m.Viewport.MouseWheelEnabled = true
		m.Viewport.MouseWheelDelta = 3
		m.ready = true
	} else {
		m.Viewport.Width = w
		m.Viewport.Height = h
	}
	if w != m.width {
		m.width = w
		m.rendered = m.rendered[:0]
		for _, e := range m.Entries {
			m.rendered = append(m.rendered, m.renderEntry(e))
		}
	}
	m.Refresh()
}

// Add appends a finished entry, dropping the oldest past MaxEntries.
func (m *ScrollbackModel) Add(e domain.TerminalEntry) {
	m.Entries = append(m.Entries, e)
	m.rendered = append(m.rendered, m.renderEntry(e))
	if m.MaxEntries > 0 && len(m.Entries) > m.MaxEntries {
		excess := len(m.Entries) - m.MaxEntries
		m.Entries = m.Entries[excess:]
		m.rendered = m.rendered[excess:]
		m.trimmed += excess
	}
	m.Refresh()
}

// Clear empties the display.
func (m *ScrollbackModel) Clear() {
	m.Entries = nil
	m.rendered = nil
	m.trimmed = 0
	m.atBottom = true
	m.Refresh()
}

// Update handles scrolling.
func (m ScrollbackModel) Update(msg tea.Msg) (ScrollbackModel, tea.Cmd) {
	if !m.ready {
		return m, nil
	}
	var cmd tea.Cmd
	m.Viewport, cmd = m.Viewport.Update(msg)
	m.atBottom = m.Viewport.AtBottom()
	return m, cmd
}

// View renders the viewport.
func (m ScrollbackModel) View() string {
	if !m.ready {
		return "  Initializing" + theme.SymbolEllipsis
	}
	return m.Viewport.View()
}

// Refresh rebuilds the viewport content.
func (m *ScrollbackModel) Refresh() {
	if !m.ready {
		return
	}
	var parts []string
	if m.trimmed > 0 {
		parts = append(parts, theme.TextMuted.Render("(older output hidden)"))
	}
	parts = append(parts, m.rendered...)
	if m.Running != "" {
		parts = append(parts, m.promptLine(m.Running)+"\n"+m.Spinner+" "+theme.TextMuted.Render("running"+theme.SymbolEllipsis))
	}
	if len(parts) == 0 {
		parts = append(parts, theme.TextMuted.Render("Type 'help' for available commands."))
	}
	m.Viewport.SetContent(strings.Join(parts, "\n\n"))
	if m.atBottom {
		m.Viewport.GotoBottom()
	}
}

func (m *ScrollbackModel) promptLine(command string) string {
	prompt := strings.TrimRight(m.Prompt, " ")
	return theme.Prompt.Render(prompt) + m.Prompt[len(prompt):] + theme.Bold.Render(command)
}

func (m *ScrollbackModel) renderEntry(e domain.TerminalEntry) string {
	body := RenderBlocks(e.Blocks, m.width-2)
	return m.promptLine(e.Command) + "\n" + body
}
