// Package tabs holds the desk's two surfaces as Bubble Tea sub-models.
package tabs

import (
	"tradedesk/internal/usecase/chat"
	"tradedesk/internal/usecase/console"
)

// ChatReplyMsg carries a finished chat reply back to the event loop.
type ChatReplyMsg struct {
	Result chat.Result
}

// CommandDoneMsg carries a finished console command back to the event loop.
type CommandDoneMsg struct {
	Result console.Result
}
