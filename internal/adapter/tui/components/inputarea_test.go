package components

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func typeText(m InputAreaModel, s string) InputAreaModel {
	for _, r := range s {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func TestInputArea_EnterSubmitsAndClears(t *testing.T) {
	m := NewInputArea(InputOptions{})
	m.SetWidth(80)
	m = typeText(m, "agent status")

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, InputSubmitMsg{Value: "agent status"}, cmd())
	assert.Empty(t, m.Value())
}

func TestInputArea_BlankEnterStillSubmits(t *testing.T) {
	m := NewInputArea(InputOptions{})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, InputSubmitMsg{Value: ""}, cmd())
}

func TestInputArea_RecallKeys(t *testing.T) {
	m := NewInputArea(InputOptions{Recall: true})

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyUp})
	require.NotNil(t, cmd)
	assert.Equal(t, RecallMsg{Up: true}, cmd())

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	require.NotNil(t, cmd)
	assert.Equal(t, RecallMsg{Up: false}, cmd())
}

func TestInputArea_CompletesCommandNames(t *testing.T) {
	m := NewInputArea(InputOptions{Commands: []CommandDef{
		{Name: "greeks", Description: "Net Greeks"},
		{Name: "history", Description: "Past commands"},
	}})
	m.SetWidth(80)
	m = typeText(m, "gr")
	require.True(t, m.Autocomplete.Visible)

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Equal(t, "greeks", m.Value())
	assert.False(t, m.Autocomplete.Visible)
}

func TestInputArea_NoPopupAfterFirstWord(t *testing.T) {
	m := NewInputArea(InputOptions{Commands: []CommandDef{{Name: "recs"}}})
	m = typeText(m, "recs al")
	assert.False(t, m.Autocomplete.Visible)
}

func TestInputArea_DisabledIgnoresKeys(t *testing.T) {
	m := NewInputArea(InputOptions{})
	m.SetEnabled(false)
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.False(t, m.Enabled)
}
