package domain

import "time"

// Role identifies who produced a chat exchange.
type Role string

const (
	RoleUser   Role = "user"
	RoleSystem Role = "system"
)

// ChatExchange is one message on the chat surface. Exchanges are created
// once and never mutated.
type ChatExchange struct {
	ID        string
	Role      Role
	Text      string
	Timestamp time.Time
	Navigate  string // optional dashboard route, e.g. "/control"
}

// TerminalEntry is one executed console command and its output.
type TerminalEntry struct {
	Command string
	Blocks  []Block
}

// Failed reports whether the entry carries an error block.
func (e TerminalEntry) Failed() bool {
	for _, b := range e.Blocks {
		if b.Kind() == BlockError {
			return true
		}
	}
	return false
}
