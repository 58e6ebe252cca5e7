// Package uxerror turns raw errors into operator-facing messages with
// recovery hints.
package uxerror

import (
	"errors"
	"fmt"
	"strings"

	"tradedesk/internal/adapter/tui/theme"
	"tradedesk/internal/domain"
	"tradedesk/internal/infra/config"
)

// FriendlyError is an error as shown to the operator.
type FriendlyError struct {
	Title   string
	Message string
	Hints   []string
	Raw     string
}

// Render formats the error as indented plain text.
func (fe FriendlyError) Render() string {
	var sb strings.Builder
	sb.WriteString(fe.Title)
	if fe.Message != "" {
		sb.WriteString("\n  ")
		sb.WriteString(fe.Message)
	}
	if len(fe.Hints) > 0 {
		sb.WriteString("\n  Suggestions:")
		for _, h := range fe.Hints {
			sb.WriteString(fmt.Sprintf("\n    %s %s", theme.SymbolBullet, h))
		}
	}
	return sb.String()
}

type errorPattern struct {
	match   func(err error) bool
	produce func(err error) FriendlyError
}

// Sentinels go first so classification survives any amount of wrapping.
var patterns = []errorPattern{
	{
		match: func(err error) bool {
			var ve *config.ValidationError
			return errors.As(err, &ve)
		},
		produce: func(err error) FriendlyError {
			var ve *config.ValidationError
			errors.As(err, &ve)
			return FriendlyError{
				Title:   "Invalid Configuration",
				Message: "The config file has " + plural(len(ve.Errors), "problem") + ".",
				Hints:   append(append([]string(nil), ve.Errors...), "Pass --config or set DESK_CONFIG to use another file"),
				Raw:     err.Error(),
			}
		},
	},
	{
		match: is(domain.ErrCircuitOpen),
		produce: constantError("Backend Paused", "Recent requests kept failing, so the desk stopped calling the backend for a while.",
			[]string{"Wait for the breaker timeout and try again", "Check the backend logs"}),
	},
	{
		match: is(domain.ErrBackendAuth),
		produce: constantError("Backend Rejected Credentials", "The backend refused the request.",
			[]string{"Check that the backend allows this client"}),
	},
	{
		match: is(domain.ErrRateLimit),
		produce: constantError("Rate Limited", "Too many requests were sent to the backend.",
			[]string{"Wait a moment before retrying", "Lower backend.rate_limit.requests_per_second"}),
	},
	{
		match: is(domain.ErrTimeout),
		produce: constantError("Backend Timed Out", "The backend did not answer in time.",
			[]string{"Check that the backend is healthy", "Increase backend.timeout in config"}),
	},
	{
		match: is(domain.ErrUnknownResource),
		produce: constantError("Unknown Backend Route", "The backend has no route for a configured resource.",
			[]string{"Check backend.resources against the backend's API"}),
	},
	{
		match: is(domain.ErrMalformedPayload),
		produce: constantError("Unreadable Response", "The backend answered with something that is not JSON.",
			[]string{"Check that backend.base_url points at the API, not a web page"}),
	},
	{
		match: is(domain.ErrBackendUnavailable),
		produce: constantError("Backend Unreachable", "Could not reach the trading backend.",
			[]string{"Is the backend running?", "Verify backend.base_url or DESK_BACKEND_URL"}),
	},
	{
		match: containsAny("permission denied", "read-only file system"),
		produce: constantError("Cannot Write Log", "The log or trace output could not be opened.",
			[]string{"Set logger.output to a writable path", "Use DESK_LOGGER_OUTPUT=stderr"}),
	},
}

// Humanize converts a raw error into a FriendlyError.
func Humanize(err error) FriendlyError {
	if err == nil {
		return FriendlyError{Title: "Unknown Error", Raw: "nil"}
	}
	for _, p := range patterns {
		if p.match(err) {
			return p.produce(err)
		}
	}
	return FriendlyError{
		Title:   "Unexpected Error",
		Message: err.Error(),
		Hints:   []string{"Try again", "Run with DESK_LOGGER_LEVEL=debug for more details"},
		Raw:     err.Error(),
	}
}

func is(target error) func(error) bool {
	return func(err error) bool { return errors.Is(err, target) }
}

// containsAny matches when the error text contains any of substrs,
// ignoring case.
func containsAny(substrs ...string) func(error) bool {
	return func(err error) bool {
		lower := strings.ToLower(err.Error())
		for _, s := range substrs {
			if strings.Contains(lower, s) {
				return true
			}
		}
		return false
	}
}

func constantError(title, message string, hints []string) func(error) FriendlyError {
	return func(err error) FriendlyError {
		return FriendlyError{
			Title:   title,
			Message: message,
			Hints:   hints,
			Raw:     err.Error(),
		}
	}
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return fmt.Sprintf("%d %ss", n, word)
}
