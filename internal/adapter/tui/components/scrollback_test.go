package components

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tradedesk/internal/domain"
)

func TestScrollback_TrimsDisplayOnly(t *testing.T) {
	sb := NewScrollback("$ ")
	sb.MaxEntries = 2
	sb.SetSize(80, 20)

	for _, c := range []string{"agents", "greeks", "capital"} {
		sb.Add(domain.TerminalEntry{Command: c, Blocks: []domain.Block{domain.NewText(c + " output")}})
	}

	assert.Len(t, sb.Entries, 2)
	assert.Equal(t, "greeks", sb.Entries[0].Command)
	view := sb.View()
	assert.Contains(t, view, "older output hidden")
	assert.Contains(t, view, "$ capital")
	assert.NotContains(t, view, "agents output")
}

func TestScrollback_ShowsRunningCommand(t *testing.T) {
	sb := NewScrollback("> ")
	sb.SetSize(80, 20)
	sb.Running = "workflow"
	sb.Refresh()
	assert.Contains(t, sb.View(), "> workflow")
	assert.Contains(t, sb.View(), "running")
}

func TestScrollback_EmptyHint(t *testing.T) {
	sb := NewScrollback("$ ")
	sb.SetSize(80, 10)
	assert.Contains(t, sb.View(), "help")
}
