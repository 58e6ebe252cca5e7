package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"tradedesk/internal/adapter/tui/theme"
	"tradedesk/internal/domain"
)

// BlockView renders console blocks to styled text. It implements
// domain.BlockVisitor; a zero width disables wrapping.
type BlockView struct {
	width int
	lines []string
}

var _ domain.BlockVisitor = (*BlockView)(nil)

// NewBlockView creates a renderer for the given width.
func NewBlockView(width int) *BlockView {
	return &BlockView{width: width}
}

// RenderBlocks renders blocks in order, one block per paragraph.
func RenderBlocks(blocks []domain.Block, width int) string {
	v := NewBlockView(width)
	for _, b := range blocks {
		b.Accept(v)
	}
	return v.String()
}

// String returns everything rendered so far.
func (v *BlockView) String() string {
	return strings.Join(v.lines, "\n")
}

func (v *BlockView) emit(s string) {
	v.lines = append(v.lines, s)
}

func (v *BlockView) wrap(s string) string {
	if v.width <= 0 {
		return s
	}
	return wrapText(s, v.width)
}

func (v *BlockView) VisitHeader(b domain.HeaderBlock) {
	v.emit(theme.BlockHeader.Render(b.Title))
}

func (v *BlockView) VisitKeyValue(b domain.KeyValueBlock) {
	keyW := 0
	for _, kv := range b.Items {
		keyW = max(keyW, lipgloss.Width(kv.Key))
	}
	for _, kv := range b.Items {
		pad := strings.Repeat(" ", keyW-lipgloss.Width(kv.Key)+1)
		v.emit("  " + theme.BlockKey.Render(kv.Key+":") + pad + theme.ForColor(kv.Color).Render(kv.Value))
	}
}

func (v *BlockView) VisitTable(b domain.TableBlock) {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(theme.TableBorder).
		BorderColumn(false).
		Headers(b.Headers...).
		Rows(b.Rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return theme.TableHeader
			}
			return theme.TableCell
		})
	v.emit(t.Render())
}

func (v *BlockView) VisitText(b domain.TextBlock) {
	v.emit(v.wrap(b.Text))
}

func (v *BlockView) VisitError(b domain.ErrorBlock) {
	v.emit(theme.TextBad.Render(theme.SymbolFail + " " + v.wrap(b.Message)))
}

func (v *BlockView) VisitSection(b domain.SectionBlock) {
	title := theme.BlockSection.Render(b.Title)
	rule := 0
	if v.width > 0 {
		rule = v.width - lipgloss.Width(title) - 1
	}
	if rule > 0 {
		title += " " + theme.TableBorder.Render(strings.Repeat(theme.SymbolRule, min(rule, 40)))
	}
	v.emit(title)
}

func (v *BlockView) VisitStatus(b domain.StatusBlock) {
	style := theme.ForColor(b.Color)
	v.emit(style.Render(theme.SymbolDot) + " " + style.Render(b.Label))
}

func (v *BlockView) VisitList(b domain.ListBlock) {
	for _, item := range b.Items {
		if b.Style != domain.ListChecks {
			v.emit("  " + theme.SymbolBullet + " " + item)
			continue
		}
		state, text := domain.ParseListItem(item)
		switch state {
		case domain.ItemPass:
			v.emit("  " + theme.TextGood.Render(theme.SymbolPass) + " " + text)
		case domain.ItemFail:
			v.emit("  " + theme.TextBad.Render(theme.SymbolFail) + " " + text)
		default:
			v.emit("  " + theme.SymbolBullet + " " + text)
		}
	}
}
