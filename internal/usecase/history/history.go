// Package history keeps the raw commands submitted on a surface and walks
// them for recall. Recall only fills the input buffer; it never executes.
package history

// Log is an append-only list of submitted commands with a recall cursor.
// Duplicates are kept. The zero value is ready to use.
//
// The cursor is len(entries) when not recalling ("past newest").
type Log struct {
	entries []string
	cursor  int
	// draft is the buffer content saved when recall starts.
	draft string
}

// Append records a submission and resets recall.
func (l *Log) Append(command string) {
	l.entries = append(l.entries, command)
	l.Reset()
}

// Seed places prior submissions before the current ones and resets recall.
func (l *Log) Seed(prior []string) {
	l.entries = append(append([]string(nil), prior...), l.entries...)
	l.Reset()
}

// Entries returns a copy of all submissions, oldest first.
func (l *Log) Entries() []string {
	return append([]string(nil), l.entries...)
}

// Len returns the number of submissions.
func (l *Log) Len() int { return len(l.entries) }

// Recalling reports whether the cursor points at a past submission.
func (l *Log) Recalling() bool { return l.cursor < len(l.entries) }

// Cursor returns the recall index; Len() means not recalling.
func (l *Log) Cursor() int { return l.cursor }

// Reset moves the cursor past the newest entry.
func (l *Log) Reset() {
	l.cursor = len(l.entries)
	l.draft = ""
}

// Up moves toward older submissions and returns the buffer content to show.
// It clamps at the oldest entry. current is the buffer before the move.
func (l *Log) Up(current string) string {
	if len(l.entries) == 0 {
		return current
	}
	if !l.Recalling() {
		l.draft = current
	}
	if l.cursor > 0 {
		l.cursor--
	}
	return l.entries[l.cursor]
}

// Down moves toward newer submissions. Moving past the newest entry leaves
// recall and returns an empty buffer.
func (l *Log) Down() string {
	if !l.Recalling() {
		return ""
	}
	l.cursor++
	if !l.Recalling() {
		l.draft = ""
		return ""
	}
	return l.entries[l.cursor]
}

// Draft returns the buffer content saved when recall began.
func (l *Log) Draft() string { return l.draft }
