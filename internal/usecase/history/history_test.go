package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUpClampsAtOldest(t *testing.T) {
	var l Log
	l.Append("agents")
	l.Append("greeks")
	l.Append("capital")

	assert.Equal(t, "capital", l.Up(""))
	assert.Equal(t, "greeks", l.Up("capital"))
	assert.Equal(t, "agents", l.Up("greeks"))
	assert.Equal(t, "agents", l.Up("agents"))
	assert.Equal(t, 0, l.Cursor())
}

func TestDownPastNewestClears(t *testing.T) {
	var l Log
	l.Append("agents")
	l.Append("greeks")

	l.Up("")
	l.Up("greeks")
	assert.Equal(t, "greeks", l.Down())
	assert.Equal(t, "", l.Down())
	assert.False(t, l.Recalling())
	assert.Equal(t, "", l.Down())
}

func TestDuplicatesKept(t *testing.T) {
	var l Log
	l.Append("recs")
	l.Append("recs")
	assert.Equal(t, []string{"recs", "recs"}, l.Entries())
	assert.Equal(t, "recs", l.Up(""))
	assert.Equal(t, "recs", l.Up("recs"))
	assert.Equal(t, 0, l.Cursor())
}

func TestRecallNeverMutatesLog(t *testing.T) {
	var l Log
	l.Append("a")
	l.Append("b")
	before := l.Entries()

	l.Up("typed")
	l.Up("b")
	l.Down()
	l.Down()
	l.Down()

	assert.Equal(t, before, l.Entries())
	assert.Equal(t, 2, l.Len())
}

func TestUpOnEmptyKeepsBuffer(t *testing.T) {
	var l Log
	assert.Equal(t, "half typed", l.Up("half typed"))
	assert.False(t, l.Recalling())
}

func TestAppendResetsRecall(t *testing.T) {
	var l Log
	l.Append("a")
	l.Up("draft")
	assert.Equal(t, "draft", l.Draft())
	assert.True(t, l.Recalling())

	l.Append("b")
	assert.False(t, l.Recalling())
	assert.Equal(t, "", l.Draft())
	assert.Equal(t, "b", l.Up(""))
}

func TestEntriesIsACopy(t *testing.T) {
	var l Log
	l.Append("a")
	got := l.Entries()
	got[0] = "mutated"
	assert.Equal(t, []string{"a"}, l.Entries())
}

func TestSeedPrecedesCurrent(t *testing.T) {
	var l Log
	l.Append("capital")
	l.Seed([]string{"agents", "greeks"})

	assert.Equal(t, []string{"agents", "greeks", "capital"}, l.Entries())
	assert.False(t, l.Recalling())
	assert.Equal(t, "capital", l.Up(""))
}
