package components

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"tradedesk/internal/domain"
)

func TestMessageList_NavigateHint(t *testing.T) {
	ml := NewMessageList()
	ml.SetWidth(80)
	ml.Add(ChatMessage{Exchange: domain.ChatExchange{Role: domain.RoleUser, Text: "how do I halt trading", Timestamp: time.Now()}})
	ml.Add(ChatMessage{Exchange: domain.ChatExchange{Role: domain.RoleSystem, Text: "Use the Control page.", Timestamp: time.Now(), Navigate: "/control"}})

	out := ml.View()
	assert.Contains(t, out, "how do I halt trading")
	assert.Contains(t, out, "open /control")
}

func TestMessageList_RingBuffer(t *testing.T) {
	ml := NewMessageList()
	ml.SetMaxMessages(2)
	for i := 0; i < 5; i++ {
		ml.Add(ChatMessage{Exchange: domain.ChatExchange{Role: domain.RoleUser, Text: "m"}})
	}
	assert.Len(t, ml.Messages, 2)
	assert.Equal(t, "(3 older messages hidden)", ml.TrimmedIndicator())
}

func TestWrapText(t *testing.T) {
	out := wrapText("alpha beta gamma delta", 11)
	for _, line := range strings.Split(out, "\n") {
		assert.LessOrEqual(t, len(strings.TrimSpace(line)), 11)
	}
	assert.Equal(t, "a\n  b", wrapText("a\nb", 10))
}

func TestRelativeTime(t *testing.T) {
	assert.Empty(t, RelativeTime(time.Time{}))
	assert.Equal(t, "just now", RelativeTime(time.Now()))
	assert.Contains(t, RelativeTime(time.Now().Add(-2*time.Hour)), "hours ago")
}
