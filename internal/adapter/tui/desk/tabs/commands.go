package tabs

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"tradedesk/internal/usecase/chat"
	"tradedesk/internal/usecase/console"
)

// replyCmd runs a chat request off the event loop.
func replyCmd(ctx context.Context, p *chat.Pending) tea.Cmd {
	return func() tea.Msg {
		return ChatReplyMsg{Result: p.Run(ctx)}
	}
}

// commandCmd runs a console job off the event loop.
func commandCmd(ctx context.Context, j *console.Job) tea.Cmd {
	return func() tea.Msg {
		return CommandDoneMsg{Result: j.Run(ctx)}
	}
}
