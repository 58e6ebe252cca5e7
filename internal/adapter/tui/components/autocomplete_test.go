package components

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAutocomplete_Filtering(t *testing.T) {
	ac := NewAutocomplete([]CommandDef{{Name: "performance"}, {Name: "portfolios"}, {Name: "help"}})

	ac.SetPrefix("p")
	assert.True(t, ac.Visible)
	assert.Len(t, ac.Filtered, 2)

	ac.SetPrefix("PORT")
	assert.Len(t, ac.Filtered, 1)
	assert.Equal(t, "portfolios", ac.Filtered[0].Name)

	ac.SetPrefix("zzz")
	assert.False(t, ac.Visible)
}

func TestAutocomplete_ExactMatchHides(t *testing.T) {
	ac := NewAutocomplete([]CommandDef{{Name: "help"}, {Name: "history"}})
	ac.SetPrefix("help")
	assert.False(t, ac.Visible)
}

func TestAutocomplete_SelectionWraps(t *testing.T) {
	ac := NewAutocomplete([]CommandDef{{Name: "greeks"}, {Name: "gamma"}})
	ac.SetPrefix("g")
	ac.SelectPrev()
	assert.Equal(t, 1, ac.Selected)
	ac.SelectNext()
	assert.Equal(t, 0, ac.Selected)
	assert.Equal(t, "greeks", ac.Accept())
	assert.False(t, ac.Visible)
}

func TestAutocomplete_WindowFollowsSelection(t *testing.T) {
	var defs []CommandDef
	for _, n := range []string{"a1", "a2", "a3", "a4", "a5", "a6", "a7", "a8"} {
		defs = append(defs, CommandDef{Name: n})
	}
	ac := NewAutocomplete(defs)
	ac.SetWidth(60)
	ac.SetPrefix("a")
	assert.Equal(t, 8, ac.Height())
	assert.NotContains(t, ac.View(), "a7")

	for range 6 {
		ac.SelectNext()
	}
	assert.Equal(t, 6, ac.Selected)
	assert.Contains(t, ac.View(), "a7")
	assert.NotContains(t, ac.View(), "a1")

	ac.SelectNext()
	ac.SelectNext()
	assert.Equal(t, 0, ac.Selected)
	assert.Contains(t, ac.View(), "a1")
}

func TestAutocomplete_ShowsUsageAndDescription(t *testing.T) {
	ac := NewAutocomplete([]CommandDef{
		{Name: "recs", Usage: "recs [status]", Description: "Trade recommendations"},
		{Name: "help", Description: "List commands"},
	})
	ac.SetWidth(80)
	ac.SetPrefix("re")
	view := ac.View()
	assert.Contains(t, view, "recs [status]")
	assert.Contains(t, view, "Trade recommendations")
	assert.NotContains(t, view, "List commands")
}

func TestAutocomplete_HideKeepsCommands(t *testing.T) {
	ac := NewAutocomplete([]CommandDef{{Name: "greeks"}, {Name: "gamma"}})
	ac.SetPrefix("g")
	ac.Hide()
	assert.False(t, ac.Visible)
	assert.Empty(t, ac.View())
	assert.Len(t, ac.Commands, 2)
	ac.SetPrefix("ga")
	assert.True(t, ac.Visible)
}
