package domain

import "strings"

// BlockKind tags a Block variant.
type BlockKind string

const (
	BlockHeader   BlockKind = "header"
	BlockKeyValue BlockKind = "keyvalue"
	BlockTable    BlockKind = "table"
	BlockText     BlockKind = "text"
	BlockError    BlockKind = "error"
	BlockSection  BlockKind = "section"
	BlockStatus   BlockKind = "status"
	BlockList     BlockKind = "list"
)

// Block is one typed, render-agnostic unit of console output.
//
// The variant set is sealed: only the types in this file implement Block.
// Renderers implement BlockVisitor, so adding a variant breaks every
// renderer at compile time until it handles the new case.
type Block interface {
	Kind() BlockKind
	Accept(v BlockVisitor)
	sealed()
}

// BlockVisitor handles every Block variant.
type BlockVisitor interface {
	VisitHeader(b HeaderBlock)
	VisitKeyValue(b KeyValueBlock)
	VisitTable(b TableBlock)
	VisitText(b TextBlock)
	VisitError(b ErrorBlock)
	VisitSection(b SectionBlock)
	VisitStatus(b StatusBlock)
	VisitList(b ListBlock)
}

// Color is a highlight tag understood by the render layer.
type Color string

const (
	ColorNone   Color = ""
	ColorGreen  Color = "green"
	ColorRed    Color = "red"
	ColorYellow Color = "yellow"
	ColorCyan   Color = "cyan"
)

// ParseStatusColor maps a free-form tag to a status color.
// Unrecognised tags fall back to green.
func ParseStatusColor(tag string) Color {
	switch Color(strings.ToLower(strings.TrimSpace(tag))) {
	case ColorRed:
		return ColorRed
	case ColorYellow:
		return ColorYellow
	case ColorCyan:
		return ColorCyan
	default:
		return ColorGreen
	}
}

// HeaderBlock titles an entry or a group of blocks.
type HeaderBlock struct {
	Title string
}

// KeyValue is one row of a KeyValueBlock. Color is optional.
type KeyValue struct {
	Key   string
	Value string
	Color Color
}

// KeyValueBlock is an ordered list of labelled values.
type KeyValueBlock struct {
	Items []KeyValue
}

// TableBlock holds display-formatted cells. Every row has len(Headers) cells.
type TableBlock struct {
	Headers []string
	Rows    [][]string
}

// TextBlock is free text.
type TextBlock struct {
	Text string
}

// ErrorBlock reports a failure inside an entry.
type ErrorBlock struct {
	Message string
}

// SectionBlock divides an entry.
type SectionBlock struct {
	Title string
}

// StatusBlock is a single highlighted status label.
type StatusBlock struct {
	Label string
	Color Color
}

// ListStyle selects how list items are decorated.
type ListStyle string

const (
	ListPlain  ListStyle = "plain"
	ListChecks ListStyle = "checks"
)

// ItemState is the pass/fail reading of a checks-style list item.
type ItemState int

const (
	ItemNeutral ItemState = iota
	ItemPass
	ItemFail
)

// ListBlock is an ordered list. In ListChecks style an item prefixed "+"
// is a pass and "-" a fail.
type ListBlock struct {
	Items []string
	Style ListStyle
}

func (HeaderBlock) Kind() BlockKind   { return BlockHeader }
func (KeyValueBlock) Kind() BlockKind { return BlockKeyValue }
func (TableBlock) Kind() BlockKind    { return BlockTable }
func (TextBlock) Kind() BlockKind     { return BlockText }
func (ErrorBlock) Kind() BlockKind    { return BlockError }
func (SectionBlock) Kind() BlockKind  { return BlockSection }
func (StatusBlock) Kind() BlockKind   { return BlockStatus }
func (ListBlock) Kind() BlockKind     { return BlockList }

func (b HeaderBlock) Accept(v BlockVisitor)   { v.VisitHeader(b) }
func (b KeyValueBlock) Accept(v BlockVisitor) { v.VisitKeyValue(b) }
func (b TableBlock) Accept(v BlockVisitor)    { v.VisitTable(b) }
func (b TextBlock) Accept(v BlockVisitor)     { v.VisitText(b) }
func (b ErrorBlock) Accept(v BlockVisitor)    { v.VisitError(b) }
func (b SectionBlock) Accept(v BlockVisitor)  { v.VisitSection(b) }
func (b StatusBlock) Accept(v BlockVisitor)   { v.VisitStatus(b) }
func (b ListBlock) Accept(v BlockVisitor)     { v.VisitList(b) }

func (HeaderBlock) sealed()   {}
func (KeyValueBlock) sealed() {}
func (TableBlock) sealed()    {}
func (TextBlock) sealed()     {}
func (ErrorBlock) sealed()    {}
func (SectionBlock) sealed()  {}
func (StatusBlock) sealed()   {}
func (ListBlock) sealed()     {}

// NewHeader builds a header block.
func NewHeader(title string) HeaderBlock {
	return HeaderBlock{Title: title}
}

// NewKeyValues builds a key-value block, copying items.
func NewKeyValues(items ...KeyValue) KeyValueBlock {
	return KeyValueBlock{Items: append([]KeyValue(nil), items...)}
}

// NewTable builds a table block. Rows are copied and padded with empty
// cells or truncated so each has exactly len(headers) cells.
func NewTable(headers []string, rows [][]string) TableBlock {
	width := len(headers)
	out := make([][]string, 0, len(rows))
	for _, row := range rows {
		cells := make([]string, width)
		copy(cells, row)
		out = append(out, cells)
	}
	return TableBlock{Headers: append([]string(nil), headers...), Rows: out}
}

// NewText builds a text block.
func NewText(text string) TextBlock {
	return TextBlock{Text: text}
}

// NewError builds an error block.
func NewError(message string) ErrorBlock {
	return ErrorBlock{Message: message}
}

// NewSection builds a section divider.
func NewSection(title string) SectionBlock {
	return SectionBlock{Title: title}
}

// NewStatus builds a status block; tag goes through ParseStatusColor.
func NewStatus(label, tag string) StatusBlock {
	return StatusBlock{Label: label, Color: ParseStatusColor(tag)}
}

// NewList builds a list block, copying items.
func NewList(style ListStyle, items ...string) ListBlock {
	if style == "" {
		style = ListPlain
	}
	return ListBlock{Items: append([]string(nil), items...), Style: style}
}

// ParseListItem splits a list item into its pass/fail state and display
// text. Only "+" and "-" prefixes carry meaning.
func ParseListItem(item string) (ItemState, string) {
	switch {
	case strings.HasPrefix(item, "+"):
		return ItemPass, strings.TrimSpace(item[1:])
	case strings.HasPrefix(item, "-"):
		return ItemFail, strings.TrimSpace(item[1:])
	default:
		return ItemNeutral, item
	}
}
