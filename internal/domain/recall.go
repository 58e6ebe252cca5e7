package domain

import "context"

// RecallStore persists the raw text submitted on a surface so recall
// survives restarts.
type RecallStore interface {
	Append(ctx context.Context, surface, text string) error
	// Recent returns up to limit submissions, oldest first. limit <= 0
	// returns everything.
	Recent(ctx context.Context, surface string, limit int) ([]string, error)
}
