package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// kindRecorder records which visitor method fired.
type kindRecorder struct {
	got []BlockKind
}

func (r *kindRecorder) VisitHeader(HeaderBlock)     { r.got = append(r.got, BlockHeader) }
func (r *kindRecorder) VisitKeyValue(KeyValueBlock) { r.got = append(r.got, BlockKeyValue) }
func (r *kindRecorder) VisitTable(TableBlock)       { r.got = append(r.got, BlockTable) }
func (r *kindRecorder) VisitText(TextBlock)         { r.got = append(r.got, BlockText) }
func (r *kindRecorder) VisitError(ErrorBlock)       { r.got = append(r.got, BlockError) }
func (r *kindRecorder) VisitSection(SectionBlock)   { r.got = append(r.got, BlockSection) }
func (r *kindRecorder) VisitStatus(StatusBlock)     { r.got = append(r.got, BlockStatus) }
func (r *kindRecorder) VisitList(ListBlock)         { r.got = append(r.got, BlockList) }

func TestBlockAcceptDispatchesByKind(t *testing.T) {
	blocks := []Block{
		NewHeader("h"),
		NewKeyValues(KeyValue{Key: "k", Value: "v"}),
		NewTable([]string{"a"}, nil),
		NewText("t"),
		NewError("e"),
		NewSection("s"),
		NewStatus("ok", "green"),
		NewList(ListPlain, "x"),
	}

	rec := &kindRecorder{}
	for _, b := range blocks {
		b.Accept(rec)
	}

	require.Len(t, rec.got, len(blocks))
	for i, b := range blocks {
		assert.Equal(t, b.Kind(), rec.got[i], "block %d", i)
	}
}

func TestParseStatusColor(t *testing.T) {
	tests := []struct {
		tag  string
		want Color
	}{
		{"green", ColorGreen},
		{"RED", ColorRed},
		{" yellow ", ColorYellow},
		{"cyan", ColorCyan},
		{"magenta", ColorGreen},
		{"", ColorGreen},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseStatusColor(tt.tag), "tag %q", tt.tag)
	}
}

func TestNewTableNormalisesRowWidth(t *testing.T) {
	tbl := NewTable([]string{"A", "B", "C"}, [][]string{
		{"1"},
		{"1", "2", "3"},
		{"1", "2", "3", "4"},
	})

	require.Len(t, tbl.Rows, 3)
	for _, row := range tbl.Rows {
		assert.Len(t, row, len(tbl.Headers))
	}
	assert.Equal(t, []string{"1", "", ""}, tbl.Rows[0])
	assert.Equal(t, []string{"1", "2", "3"}, tbl.Rows[2])
}

func TestNewTableCopiesInput(t *testing.T) {
	headers := []string{"A"}
	rows := [][]string{{"x"}}
	tbl := NewTable(headers, rows)

	headers[0] = "mutated"
	rows[0][0] = "mutated"

	assert.Equal(t, "A", tbl.Headers[0])
	assert.Equal(t, "x", tbl.Rows[0][0])
}

func TestParseListItem(t *testing.T) {
	state, text := ParseListItem("+ backend reachable")
	assert.Equal(t, ItemPass, state)
	assert.Equal(t, "backend reachable", text)

	state, text = ParseListItem("-market closed")
	assert.Equal(t, ItemFail, state)
	assert.Equal(t, "market closed", text)

	state, text = ParseListItem("note")
	assert.Equal(t, ItemNeutral, state)
	assert.Equal(t, "note", text)
}

func TestNewListDefaultsToPlain(t *testing.T) {
	assert.Equal(t, ListPlain, NewList("", "a").Style)
}

func TestTerminalEntryFailed(t *testing.T) {
	ok := TerminalEntry{Command: "agents", Blocks: []Block{NewHeader("Agents")}}
	bad := TerminalEntry{Command: "agents", Blocks: []Block{NewError("boom")}}
	assert.False(t, ok.Failed())
	assert.True(t, bad.Failed())
}

func TestActionSet(t *testing.T) {
	assert.Len(t, AllActions(), 12)
	for _, a := range AllActions() {
		assert.True(t, a.Valid(), string(a))
	}
	assert.False(t, ActionID("trade_now").Valid())
	assert.True(t, ActionHaltHint.IsHint())
	assert.False(t, ActionAgentSummary.IsHint())
}
