// Package components provides Bubble Tea sub-models shared by the desk's
// chat and console surfaces.
package components

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"tradedesk/internal/adapter/tui/theme"
)

// Tab is one surface in the tab bar.
type Tab struct {
	ID    string
	Label string
	Busy  bool // a request is in flight on this surface
}

// TabBarModel is a horizontal tab bar. The parent routes keys to Next/Prev.
type TabBarModel struct {
	Tabs      []Tab
	Active    int
	width     int
	collapsed bool
}

// NewTabBar creates a tab bar with the first tab active.
func NewTabBar(tabs []Tab) TabBarModel {
	return TabBarModel{Tabs: tabs}
}

// SetWidth updates the width; narrow terminals collapse to the active tab.
func (m *TabBarModel) SetWidth(w int) {
	m.width = w
	m.collapsed = w < theme.MinTabWidth
}

// Next advances to the next tab, wrapping around.
func (m *TabBarModel) Next() {
	if len(m.Tabs) == 0 {
		return
	}
	m.Active = (m.Active + 1) % len(m.Tabs)
}

// Prev moves to the previous tab, wrapping around.
func (m *TabBarModel) Prev() {
	if len(m.Tabs) == 0 {
		return
	}
	m.Active = (m.Active - 1 + len(m.Tabs)) % len(m.Tabs)
}

// SetActive selects a tab by index; out-of-range indexes are ignored.
func (m *TabBarModel) SetActive(i int) {
	if i >= 0 && i < len(m.Tabs) {
		m.Active = i
	}
}

// SetBusy flags the tab with the given ID.
func (m *TabBarModel) SetBusy(id string, busy bool) {
	for i := range m.Tabs {
		if m.Tabs[i].ID == id {
			m.Tabs[i].Busy = busy
		}
	}
}

// View renders the tab bar.
func (m TabBarModel) View() string {
	if len(m.Tabs) == 0 {
		return ""
	}

	if m.collapsed {
		t := m.Tabs[m.Active]
		counter := theme.Dim.Render("[" + strconv.Itoa(m.Active+1) + "/" + strconv.Itoa(len(m.Tabs)) + "]")
		return lipgloss.JoinHorizontal(lipgloss.Center, theme.TabActive.Render(t.Label), " ", counter)
	}

	var parts []string
	for i, t := range m.Tabs {
		label := t.Label
		if t.Busy {
			label += " " + theme.SymbolEllipsis
		}
		if i == m.Active {
			parts = append(parts, theme.TabActive.Render(label))
		} else {
			parts = append(parts, theme.TabNormal.Render(label))
		}
	}
	bar := lipgloss.JoinHorizontal(lipgloss.Center, parts...)

	if m.width > 0 {
		if remaining := m.width - lipgloss.Width(bar); remaining > 0 {
			bar += theme.TabNormal.UnsetPadding().Render(strings.Repeat(" ", remaining))
		}
	}
	return bar
}
