package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tradedesk/internal/adapter/tui/theme"
)

// InputSubmitMsg is sent when Enter is pressed. Value is untrimmed and may
// be blank; the surface decides what a blank submission means.
type InputSubmitMsg struct {
	Value string
}

// RecallMsg asks the owning surface for the previous (Up) or next entry
// of its input history.
type RecallMsg struct {
	Up bool
}

// InputOptions configures an InputAreaModel.
type InputOptions struct {
	Prompt      string
	Placeholder string
	Height      int
	// Commands feeds the completion popup. The popup is shown while the
	// first word is being typed.
	Commands []CommandDef
	// Recall turns Up/Down into RecallMsg instead of cursor movement.
	Recall bool
}

// InputAreaModel wraps a textarea with submit handling, optional command
// completion and optional history recall.
type InputAreaModel struct {
	Textarea     textarea.Model
	Autocomplete AutocompleteModel
	Enabled      bool
	recall       bool
	width        int
}

// NewInputArea creates a focused input area.
func NewInputArea(opts InputOptions) InputAreaModel {
	if opts.Prompt == "" {
		opts.Prompt = "> "
	}
	if opts.Height <= 0 {
		opts.Height = 1
	}

	ta := textarea.New()
	ta.Placeholder = opts.Placeholder
	ta.Prompt = opts.Prompt
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetHeight(opts.Height)
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.FocusedStyle.Prompt = theme.InputPrompt
	ta.FocusedStyle.Placeholder = theme.InputPlaceholder
	ta.Focus()

	return InputAreaModel{
		Textarea:     ta,
		Autocomplete: NewAutocomplete(opts.Commands),
		Enabled:      true,
		recall:       opts.Recall,
	}
}

// SetWidth updates the textarea width.
func (m *InputAreaModel) SetWidth(w int) {
	m.width = w
	m.Textarea.SetWidth(w - 2)
	m.Autocomplete.SetWidth(w)
}

// SetEnabled focuses or blurs the input.
func (m *InputAreaModel) SetEnabled(enabled bool) {
	m.Enabled = enabled
	if enabled {
		m.Textarea.Focus()
	} else {
		m.Textarea.Blur()
	}
}

// Reset clears the input.
func (m *InputAreaModel) Reset() {
	m.Textarea.Reset()
	m.Autocomplete.Hide()
}

// SetValue replaces the input and moves the cursor to the end.
func (m *InputAreaModel) SetValue(s string) {
	m.Textarea.SetValue(s)
	m.Textarea.CursorEnd()
	m.Autocomplete.Hide()
}

// Value returns the current input text.
func (m InputAreaModel) Value() string {
	return m.Textarea.Value()
}

// Height returns the lines the input occupies, popup included.
func (m InputAreaModel) Height() int {
	return m.Textarea.Height() + m.Autocomplete.Height()
}

// Update handles key events. While the popup is visible Tab and the arrow
// keys move the selection and Enter accepts it.
func (m InputAreaModel) Update(msg tea.Msg) (InputAreaModel, tea.Cmd) {
	if !m.Enabled {
		return m, nil
	}
	if _, ok := msg.(tea.MouseMsg); ok {
		return m, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if m.Autocomplete.Visible {
			switch keyMsg.Type {
			case tea.KeyTab, tea.KeyDown:
				m.Autocomplete.SelectNext()
				return m, nil
			case tea.KeyShiftTab, tea.KeyUp:
				m.Autocomplete.SelectPrev()
				return m, nil
			case tea.KeyEnter:
				if accepted := m.Autocomplete.Accept(); accepted != "" {
					m.Textarea.SetValue(accepted)
					m.Textarea.CursorEnd()
				}
				return m, nil
			case tea.KeyEsc:
				m.Autocomplete.Hide()
				return m, nil
			}
		}

		switch keyMsg.Type {
		case tea.KeyEnter:
			value := m.Textarea.Value()
			m.Reset()
			return m, func() tea.Msg { return InputSubmitMsg{Value: value} }
		case tea.KeyUp, tea.KeyDown:
			if m.recall {
				up := keyMsg.Type == tea.KeyUp
				return m, func() tea.Msg { return RecallMsg{Up: up} }
			}
		}
	}

	var cmd tea.Cmd
	m.Textarea, cmd = m.Textarea.Update(msg)

	value := strings.TrimLeft(m.Textarea.Value(), " ")
	if len(m.Autocomplete.Commands) > 0 && value != "" && !strings.Contains(value, " ") {
		m.Autocomplete.SetPrefix(value)
	} else {
		m.Autocomplete.Hide()
	}
	return m, cmd
}

// View renders the input with the popup above it.
func (m InputAreaModel) View() string {
	if popup := m.Autocomplete.View(); popup != "" {
		return popup + "\n" + m.Textarea.View()
	}
	return m.Textarea.View()
}
