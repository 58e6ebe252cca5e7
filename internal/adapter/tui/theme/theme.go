// Package theme holds the desk's palette, glyphs and lipgloss styles.
// Colors are adaptive so both light and dark terminals stay readable.
//
// lipgloss honours NO_COLOR through its profile detection, so setting it
// strips every style below down to plain text.
package theme

import (
	"github.com/charmbracelet/lipgloss"

	"tradedesk/internal/domain"
)

var (
	ColorGood    = lipgloss.AdaptiveColor{Light: "#2e7d32", Dark: "#66bb6a"}
	ColorBad     = lipgloss.AdaptiveColor{Light: "#c62828", Dark: "#ef5350"}
	ColorCaution = lipgloss.AdaptiveColor{Light: "#e65100", Dark: "#ffa726"}
	ColorCyan    = lipgloss.AdaptiveColor{Light: "#00838f", Dark: "#4dd0e1"}
	ColorInfo    = lipgloss.AdaptiveColor{Light: "#0277bd", Dark: "#4fc3f7"}
	ColorAccent  = lipgloss.AdaptiveColor{Light: "#6a1b9a", Dark: "#ce93d8"}
	ColorMuted   = lipgloss.AdaptiveColor{Light: "#757575", Dark: "#9e9e9e"}

	ColorBorder   = lipgloss.AdaptiveColor{Light: "#bdbdbd", Dark: "#616161"}
	ColorBgAlt    = lipgloss.AdaptiveColor{Light: "#f5f5f5", Dark: "#2d2d2d"}
	ColorFgDim    = lipgloss.AdaptiveColor{Light: "#9e9e9e", Dark: "#757575"}
	ColorTabBg    = lipgloss.AdaptiveColor{Light: "#e0e0e0", Dark: "#333333"}
	ColorTabFg    = lipgloss.AdaptiveColor{Light: "#616161", Dark: "#9e9e9e"}
	ColorTabActBg = lipgloss.AdaptiveColor{Light: "#1565c0", Dark: "#42a5f5"}
	ColorTabActFg = lipgloss.AdaptiveColor{Light: "#ffffff", Dark: "#1e1e1e"}
)

// Glyphs; InitSymbols swaps them for ASCII when the terminal needs it.
var (
	SymbolPass     = "✓"
	SymbolFail     = "✗"
	SymbolWarning  = "⚠"
	SymbolDot      = "●"
	SymbolArrowR   = "→"
	SymbolBullet   = "•"
	SymbolEllipsis = "…"
	SymbolRule     = "─"
	SymbolUser     = "You"
	SymbolDesk     = "Desk"
)

var (
	Bold = lipgloss.NewStyle().Bold(true)
	Dim  = lipgloss.NewStyle().Faint(true)

	TextGood    = lipgloss.NewStyle().Foreground(ColorGood).Bold(true)
	TextBad     = lipgloss.NewStyle().Foreground(ColorBad).Bold(true)
	TextCaution = lipgloss.NewStyle().Foreground(ColorCaution).Bold(true)
	TextCyan    = lipgloss.NewStyle().Foreground(ColorCyan)
	TextInfo    = lipgloss.NewStyle().Foreground(ColorInfo)
	TextAccent  = lipgloss.NewStyle().Foreground(ColorAccent)
	TextMuted   = lipgloss.NewStyle().Foreground(ColorMuted)
)

// Chat roles.
var (
	UserLabel = lipgloss.NewStyle().
			Foreground(ColorInfo).
			Bold(true)

	DeskLabel = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	NavigateHint = lipgloss.NewStyle().
			Foreground(ColorCyan).
			Italic(true)

	Timestamp = lipgloss.NewStyle().
			Foreground(ColorFgDim).
			Faint(true)
)

// Console blocks.
var (
	Prompt = lipgloss.NewStyle().
		Foreground(ColorGood).
		Bold(true)

	BlockHeader = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true).
			Underline(true)

	BlockSection = lipgloss.NewStyle().
			Foreground(ColorInfo).
			Bold(true)

	BlockKey = lipgloss.NewStyle().
			Foreground(ColorMuted)

	TableHeader = lipgloss.NewStyle().
			Foreground(ColorInfo).
			Bold(true).
			Padding(0, 1)

	TableCell = lipgloss.NewStyle().
			Padding(0, 1)

	TableBorder = lipgloss.NewStyle().
			Foreground(ColorBorder)
)

var (
	TabNormal = lipgloss.NewStyle().
			Foreground(ColorTabFg).
			Background(ColorTabBg).
			Padding(0, 2)

	TabActive = lipgloss.NewStyle().
			Foreground(ColorTabActFg).
			Background(ColorTabActBg).
			Bold(true).
			Padding(0, 2)
)

var (
	StatusBar = lipgloss.NewStyle().
			Foreground(ColorFgDim).
			Background(ColorBgAlt).
			Padding(0, 1)

	StatusKey = lipgloss.NewStyle().
			Foreground(ColorInfo).
			Bold(true)
)

var (
	InputPrompt = lipgloss.NewStyle().
			Foreground(ColorInfo).
			Bold(true)

	InputPlaceholder = lipgloss.NewStyle().
				Foreground(ColorFgDim)
)

// ForColor returns the text style for a block highlight color.
func ForColor(c domain.Color) lipgloss.Style {
	switch c {
	case domain.ColorGreen:
		return TextGood
	case domain.ColorRed:
		return TextBad
	case domain.ColorYellow:
		return TextCaution
	case domain.ColorCyan:
		return TextCyan
	default:
		return lipgloss.NewStyle()
	}
}

// MaxContentWidth caps the width of wrapped prose.
const MaxContentWidth = 100

// MinTabWidth is the narrowest terminal that still shows tab labels.
const MinTabWidth = 60

// Clamp returns v clamped to [lo, hi].
func Clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
