package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"tradedesk/internal/adapter/tui/theme"
)

// CommandDef is one completion candidate.
type CommandDef struct {
	Name        string // e.g. "recs"
	Usage       string // e.g. "recs [status]"; Name when empty
	Description string
}

func (c CommandDef) label() string {
	if c.Usage != "" {
		return c.Usage
	}
	return c.Name
}

// AutocompleteModel is a popup of the command names starting with the typed
// prefix. At most rows candidates show at once; the window follows the
// selection.
type AutocompleteModel struct {
	Commands []CommandDef
	Filtered []CommandDef
	Selected int
	Visible  bool

	prefix string
	offset int // first visible candidate
	rows   int
	width  int
}

// NewAutocomplete creates a hidden popup over commands.
func NewAutocomplete(commands []CommandDef) AutocompleteModel {
	return AutocompleteModel{Commands: commands, rows: 6}
}

func (m *AutocompleteModel) SetWidth(w int) { m.width = w }

// SetPrefix refilters the candidates, case-insensitively. A prefix that
// already names its only candidate hides the popup, leaving Enter to submit.
func (m *AutocompleteModel) SetPrefix(prefix string) {
	prefix = strings.ToLower(prefix)
	if prefix == m.prefix && m.Filtered != nil {
		return
	}
	m.prefix = prefix
	m.Filtered = nil
	for _, c := range m.Commands {
		if strings.HasPrefix(strings.ToLower(c.Name), prefix) {
			m.Filtered = append(m.Filtered, c)
		}
	}
	m.Selected, m.offset = 0, 0

	switch {
	case prefix == "", len(m.Filtered) == 0:
		m.Visible = false
	case len(m.Filtered) == 1 && strings.EqualFold(m.Filtered[0].Name, prefix):
		m.Visible = false
	default:
		m.Visible = true
	}
}

// Hide closes the popup and forgets the prefix.
func (m *AutocompleteModel) Hide() {
	*m = AutocompleteModel{Commands: m.Commands, rows: m.rows, width: m.width}
}

// SelectNext moves the selection down, wrapping to the top.
func (m *AutocompleteModel) SelectNext() { m.move(1) }

// SelectPrev moves the selection up, wrapping to the bottom.
func (m *AutocompleteModel) SelectPrev() { m.move(-1) }

func (m *AutocompleteModel) move(delta int) {
	n := len(m.Filtered)
	if n == 0 {
		return
	}
	m.Selected = ((m.Selected+delta)%n + n) % n
	switch {
	case m.Selected < m.offset:
		m.offset = m.Selected
	case m.Selected >= m.offset+m.rows:
		m.offset = m.Selected - m.rows + 1
	}
}

// Accept hides the popup and returns the selected name, or "" when nothing
// matches.
func (m *AutocompleteModel) Accept() string {
	if len(m.Filtered) == 0 {
		return ""
	}
	name := m.Filtered[m.Selected].Name
	m.Hide()
	return name
}

// Height is the number of lines View occupies.
func (m AutocompleteModel) Height() int {
	if !m.Visible {
		return 0
	}
	return min(len(m.Filtered), m.rows) + 2
}

// View renders the popup, or "" while hidden.
func (m AutocompleteModel) View() string {
	if !m.Visible || len(m.Filtered) == 0 {
		return ""
	}

	end := min(m.offset+m.rows, len(m.Filtered))
	window := m.Filtered[m.offset:end]

	labelW := 0
	for _, c := range window {
		labelW = max(labelW, lipgloss.Width(c.label()))
	}
	inner := max(m.width-4, 30)
	descW := max(inner-labelW-3, 0)

	var b strings.Builder
	for i, c := range window {
		if i > 0 {
			b.WriteByte('\n')
		}
		marker := "  "
		if m.offset+i == m.Selected {
			marker = theme.TextInfo.Render(theme.SymbolArrowR) + " "
		}
		b.WriteString(marker)
		b.WriteString(m.highlight(c.label()))
		b.WriteString(strings.Repeat(" ", labelW-lipgloss.Width(c.label())+1))
		b.WriteString(theme.TextMuted.Render(truncate(c.Description, descW)))
	}

	if more := len(m.Filtered) - end; more > 0 {
		b.WriteString("\n  " + theme.Dim.Render(theme.SymbolEllipsis))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.ColorInfo).
		Padding(0, 1).
		Render(b.String())
}

// highlight bolds the typed prefix within label.
func (m AutocompleteModel) highlight(label string) string {
	n := len(m.prefix)
	if n == 0 || n > len(label) {
		return label
	}
	return theme.Bold.Render(label[:n]) + label[n:]
}

func truncate(s string, w int) string {
	if w <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= w {
		return s
	}
	return string(r[:w-1]) + theme.SymbolEllipsis
}
