package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"tradedesk/internal/adapter/tui/theme"
)

// KeyHint is one keybinding shown in the status bar.
type KeyHint struct {
	Key  string // e.g. "Enter"
	Desc string // e.g. "Send"
}

// Link is the last known backend reachability.
type Link int

const (
	LinkUnknown Link = iota
	LinkUp
	LinkDown
)

// StatusBarModel is the bottom line: key hints on the left, the backend
// and the surface state on the right.
type StatusBarModel struct {
	Hints   []KeyHint
	Backend string // backend base URL
	Link    Link
	State   string // e.g. "running"
	width   int
}

// NewStatusBar creates an empty status bar.
func NewStatusBar() StatusBarModel {
	return StatusBarModel{}
}

// SetWidth updates the available width.
func (m *StatusBarModel) SetWidth(w int) {
	m.width = w
}

// View renders the status bar as a single line.
func (m StatusBarModel) View() string {
	var hints []string
	for _, h := range m.Hints {
		hints = append(hints, theme.StatusKey.Render(h.Key)+": "+h.Desc)
	}
	left := strings.Join(hints, "  "+theme.Dim.Render("|")+"  ")

	var right string
	switch m.Link {
	case LinkUp:
		right = theme.TextGood.Render(theme.SymbolDot) + " "
	case LinkDown:
		right = theme.TextBad.Render(theme.SymbolDot) + " "
	}
	if m.Backend != "" {
		right += theme.TextMuted.Render(m.Backend)
	}
	if m.State != "" {
		if right != "" {
			right += "  "
		}
		right += theme.TextInfo.Render(m.State)
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return theme.StatusBar.Width(m.width).Render(left + strings.Repeat(" ", gap) + right)
}
