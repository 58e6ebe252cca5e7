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
	"tradedesk/internal/usecase/console"
)

// ConsoleModel is the command surface.
type ConsoleModel struct {
	ctx      context.Context
	executor *console.Executor
	logger   *slog.Logger

	scrollback components.ScrollbackModel
	input      components.InputAreaModel
	spinner    spinner.Model
	width      int
	height     int
}

// NewConsole creates the console tab. maxEntries caps the display buffer.
func NewConsole(ctx context.Context, executor *console.Executor, logger *slog.Logger, prompt string, maxEntries int) ConsoleModel {
	s := spinner.New()
	s.Spinner = spinner.Line
	s.Style = lipgloss.NewStyle().Foreground(theme.ColorGood)

	var defs []components.CommandDef
	for _, c := range executor.Commands() {
		defs = append(defs, components.CommandDef{Name: c.Name, Usage: c.Usage, Description: c.Summary})
	}

	sb := components.NewScrollback(prompt)
	sb.MaxEntries = maxEntries

	return ConsoleModel{
		ctx:        ctx,
		executor:   executor,
		logger:     logger,
		scrollback: sb,
		input: components.NewInputArea(components.InputOptions{
			Prompt:   prompt,
			Height:   1,
			Commands: defs,
			Recall:   true,
		}),
		spinner: s,
	}
}

// Busy reports whether a command is running.
func (m ConsoleModel) Busy() bool { return m.executor.State() == console.StateRunning }

// SetSize lays out the scrollback above the input.
func (m *ConsoleModel) SetSize(w, h int) {
	m.width, m.height = w, h
	m.input.SetWidth(w)
	m.scrollback.SetSize(w, max(h-m.input.Height()-1, 3))
}

// Focus enables or disables the input when the tab changes.
func (m *ConsoleModel) Focus(on bool) {
	m.input.SetEnabled(on)
}

// Update handles keys, submissions, recall and finished commands.
func (m ConsoleModel) Update(msg tea.Msg) (ConsoleModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyPgUp, tea.KeyPgDown:
			var cmd tea.Cmd
			m.scrollback, cmd = m.scrollback.Update(msg)
			return m, cmd
		case tea.KeyCtrlL:
			m.scrollback.Clear()
			return m, nil
		case tea.KeyEnter:
			if m.Busy() && !m.input.Autocomplete.Visible {
				return m, nil
			}
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		m.executor.SetInput(m.input.Value())
		return m, cmd

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.scrollback, cmd = m.scrollback.Update(msg)
		return m, cmd

	case components.RecallMsg:
		if msg.Up {
			m.input.SetValue(m.executor.RecallUp())
		} else {
			m.input.SetValue(m.executor.RecallDown())
		}
		return m, nil

	case components.InputSubmitMsg:
		return m.submit(msg.Value)

	case CommandDoneMsg:
		entry, err := m.executor.Complete(msg.Result)
		if err != nil {
			m.logger.Debug("discarding console result", "error", err)
			return m, nil
		}
		m.scrollback.Running = ""
		m.scrollback.Add(entry)
		return m, nil

	case spinner.TickMsg:
		if !m.Busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.scrollback.Spinner = m.spinner.View()
		m.scrollback.Refresh()
		return m, cmd
	}
	return m, nil
}

func (m ConsoleModel) submit(value string) (ConsoleModel, tea.Cmd) {
	job, err := m.executor.Submit(value)
	switch {
	case errors.Is(err, domain.ErrSurfaceBusy), errors.Is(err, domain.ErrEmptyInput):
		return m, nil
	case err != nil:
		m.logger.Warn("console submit failed", "error", err)
		return m, nil
	}

	m.input.Reset()
	m.scrollback.Running = job.Command
	m.scrollback.Spinner = m.spinner.View()
	m.scrollback.Refresh()
	return m, tea.Batch(commandCmd(m.ctx, job), m.spinner.Tick)
}

// Hints are the tab's status bar hints.
func (m ConsoleModel) Hints() []components.KeyHint {
	return []components.KeyHint{
		{Key: "Enter", Desc: "Run"},
		{Key: "Up/Down", Desc: "History"},
		{Key: "Tab", Desc: "Complete"},
		{Key: "Ctrl+L", Desc: "Clear"},
		{Key: "Ctrl+P", Desc: "Chat"},
	}
}

// View renders the scrollback and prompt.
func (m ConsoleModel) View() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		m.scrollback.View(),
		components.Divider(m.width),
		m.input.View(),
	)
}
