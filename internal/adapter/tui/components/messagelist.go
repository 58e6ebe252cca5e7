package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"tradedesk/internal/adapter/tui/theme"
	"tradedesk/internal/domain"
)

// ChatMessage is one exchange as displayed. Rendered caches the markdown
// output of desk replies and is cleared when the width changes.
type ChatMessage struct {
	Exchange domain.ChatExchange
	Failed   bool
	Rendered string
}

// MessageListModel is the display buffer of the chat surface. When
// MaxMessages is positive the oldest messages are dropped from the display
// only; the session keeps its full history.
type MessageListModel struct {
	Messages    []ChatMessage
	MaxMessages int
	trimCount   int
	width       int
	mdRenderer  *glamour.TermRenderer
}

// NewMessageList creates an empty message list.
func NewMessageList() MessageListModel {
	return MessageListModel{}
}

// SetWidth updates the rendering width and clears cached renders.
func (m *MessageListModel) SetWidth(w int) {
	if w == m.width {
		return
	}
	m.width = w
	m.mdRenderer = nil
	for i := range m.Messages {
		m.Messages[i].Rendered = ""
	}
}

// SetMaxMessages sets the display cap. 0 means unlimited.
func (m *MessageListModel) SetMaxMessages(max int) {
	m.MaxMessages = max
}

// TrimmedIndicator notes how many messages fell off the display.
func (m *MessageListModel) TrimmedIndicator() string {
	if m.trimCount == 0 {
		return ""
	}
	return fmt.Sprintf("(%s older messages hidden)", humanize.Comma(int64(m.trimCount)))
}

// Add appends a message, trimming the oldest past MaxMessages.
func (m *MessageListModel) Add(msg ChatMessage) {
	m.Messages = append(m.Messages, msg)
	if m.MaxMessages > 0 && len(m.Messages) > m.MaxMessages {
		excess := len(m.Messages) - m.MaxMessages
		m.Messages = m.Messages[excess:]
		m.trimCount += excess
	}
}

// Clear removes every displayed message.
func (m *MessageListModel) Clear() {
	m.Messages = nil
	m.trimCount = 0
}

// View renders all messages as a single string.
func (m *MessageListModel) View() string {
	if len(m.Messages) == 0 {
		return theme.TextMuted.Render("  Ask about agents, portfolios, Greeks, capital or recommendations. Type \"help\" for more.")
	}

	width := ContentWidth(m.width)

	var sb strings.Builder
	if indicator := m.TrimmedIndicator(); indicator != "" {
		sb.WriteString(theme.TextMuted.Render("  "+indicator) + "\n\n")
	}
	for i := range m.Messages {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(m.renderMessage(&m.Messages[i], width))
	}
	return sb.String()
}

func (m *MessageListModel) renderMessage(msg *ChatMessage, width int) string {
	ex := msg.Exchange
	header := roleLabel(ex.Role) + " " + theme.Timestamp.Render(RelativeTime(ex.Timestamp))

	var body string
	switch {
	case ex.Role == domain.RoleUser:
		body = "  " + wrapText(ex.Text, width-2)
	case msg.Failed:
		body = "  " + theme.TextBad.Render(wrapText(ex.Text, width-2))
	default:
		if msg.Rendered == "" {
			msg.Rendered = m.renderMarkdown(ex.Text, width)
		}
		body = strings.TrimRight(msg.Rendered, "\n")
	}

	out := header + "\n" + body
	if ex.Navigate != "" {
		out += "\n  " + theme.NavigateHint.Render(theme.SymbolArrowR+" open "+ex.Navigate)
	}
	return out
}

func roleLabel(role domain.Role) string {
	switch role {
	case domain.RoleUser:
		return theme.UserLabel.Render(theme.SymbolUser)
	case domain.RoleSystem:
		return theme.DeskLabel.Render(theme.SymbolDesk)
	default:
		return theme.TextMuted.Render(string(role))
	}
}

func (m *MessageListModel) renderMarkdown(content string, width int) string {
	if m.mdRenderer == nil {
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return "  " + wrapText(content, width-2)
		}
		m.mdRenderer = r
	}
	rendered, err := m.mdRenderer.Render(content)
	if err != nil {
		return "  " + wrapText(content, width-2)
	}
	return rendered
}

// RelativeTime renders t relative to now; anything under a minute is
// "just now".
func RelativeTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	if time.Since(t) < time.Minute {
		return "just now"
	}
	return humanize.Time(t)
}

// wrapText wraps s at width runes, indenting continuation lines by two
// spaces. Existing newlines are kept.
func wrapText(s string, width int) string {
	if width <= 0 {
		return s
	}
	var out []string
	for _, para := range strings.Split(s, "\n") {
		out = append(out, wrapLine(para, width)...)
	}
	return strings.Join(out, "\n  ")
}

func wrapLine(s string, width int) []string {
	runes := []rune(s)
	var lines []string
	for len(runes) > width {
		idx := -1
		for i := width - 1; i > 0; i-- {
			if runes[i] == ' ' {
				idx = i
				break
			}
		}
		if idx <= 0 {
			idx = width
		}
		lines = append(lines, string(runes[:idx]))
		runes = runes[idx:]
		for len(runes) > 0 && runes[0] == ' ' {
			runes = runes[1:]
		}
	}
	return append(lines, string(runes))
}

// ContentWidth is the readable width for a terminal width.
func ContentWidth(termWidth int) int {
	return theme.Clamp(termWidth-4, 40, theme.MaxContentWidth)
}

// Divider renders a horizontal rule.
func Divider(width int) string {
	if width < 1 {
		width = 1
	}
	return lipgloss.NewStyle().
		Foreground(theme.ColorBorder).
		Render(strings.Repeat(theme.SymbolRule, width))
}
