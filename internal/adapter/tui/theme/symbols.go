package theme

import (
	"os"
	"strings"
)

// SymbolSet is one complete set of glyphs.
type SymbolSet struct {
	Pass     string
	Fail     string
	Warning  string
	Dot      string
	ArrowR   string
	Bullet   string
	Ellipsis string
	Rule     string
}

var unicodeSymbols = SymbolSet{
	Pass:     "\u2713", // ✓
	Fail:     "\u2717", // ✗
	Warning:  "\u26A0", // ⚠
	Dot:      "\u25CF", // ●
	ArrowR:   "\u2192", // →
	Bullet:   "\u2022", // •
	Ellipsis: "\u2026", // …
	Rule:     "\u2500", // ─
}

var asciiSymbols = SymbolSet{
	Pass:     "[+]",
	Fail:     "[-]",
	Warning:  "[!]",
	Dot:      "*",
	ArrowR:   "->",
	Bullet:   "*",
	Ellipsis: "...",
	Rule:     "-",
}

// DetectUnicodeSupport reports whether the terminal likely renders Unicode.
// DESK_ASCII_SYMBOLS=1 forces ASCII regardless of locale.
func DetectUnicodeSupport() bool {
	if v := os.Getenv("DESK_ASCII_SYMBOLS"); v == "1" || strings.EqualFold(v, "true") {
		return false
	}
	for _, key := range []string{"LC_ALL", "LC_CTYPE", "LANG"} {
		val := strings.ToLower(os.Getenv(key))
		if strings.Contains(val, "utf-8") || strings.Contains(val, "utf8") {
			return true
		}
	}
	return true
}

// InitSymbols picks the glyph set for the current environment. init calls
// it once; tests call it again after changing the environment.
func InitSymbols() {
	set := unicodeSymbols
	if !DetectUnicodeSupport() {
		set = asciiSymbols
	}

	SymbolPass = set.Pass
	SymbolFail = set.Fail
	SymbolWarning = set.Warning
	SymbolDot = set.Dot
	SymbolArrowR = set.ArrowR
	SymbolBullet = set.Bullet
	SymbolEllipsis = set.Ellipsis
	SymbolRule = set.Rule
}

// SetDeskName sets the label shown on the desk's chat replies.
func SetDeskName(name string) {
	if strings.TrimSpace(name) != "" {
		SymbolDesk = name
	}
}

func init() {
	InitSymbols()
}
