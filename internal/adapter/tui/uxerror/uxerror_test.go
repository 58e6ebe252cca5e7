package uxerror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"tradedesk/internal/domain"
	"tradedesk/internal/infra/config"
)

func TestHumanize(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		title string
	}{
		{"unavailable", domain.NewDomainError("Backend.Query", domain.ErrBackendUnavailable, "dial tcp"), "Backend Unreachable"},
		{"timeout", fmt.Errorf("query: %w", domain.ErrTimeout), "Backend Timed Out"},
		{"breaker", domain.ErrCircuitOpen, "Backend Paused"},
		{"auth", errors.Join(domain.ErrBackendStatus, domain.ErrBackendAuth), "Backend Rejected Credentials"},
		{"rate", domain.ErrRateLimit, "Rate Limited"},
		{"route", errors.Join(domain.ErrBackendStatus, domain.ErrUnknownResource), "Unknown Backend Route"},
		{"payload", domain.ErrMalformedPayload, "Unreadable Response"},
		{"log", errors.New("open /var/log/desk.log: permission denied"), "Cannot Write Log"},
		{"other", errors.New("boom"), "Unexpected Error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fe := Humanize(tt.err)
			assert.Equal(t, tt.title, fe.Title)
			assert.Equal(t, tt.err.Error(), fe.Raw)
		})
	}
}

func TestHumanize_ConfigValidation(t *testing.T) {
	ve := &config.ValidationError{Errors: []string{"backend.timeout must be > 0", "logger.level is invalid"}}
	fe := Humanize(fmt.Errorf("config: %w", ve))
	assert.Equal(t, "Invalid Configuration", fe.Title)
	assert.Contains(t, fe.Message, "2 problems")
	assert.Contains(t, fe.Hints, "backend.timeout must be > 0")
}

func TestHumanize_Nil(t *testing.T) {
	assert.Equal(t, "Unknown Error", Humanize(nil).Title)
}

func TestRender(t *testing.T) {
	out := FriendlyError{Title: "T", Message: "M", Hints: []string{"a", "b"}}.Render()
	assert.Contains(t, out, "T\n  M")
	assert.Contains(t, out, "Suggestions:")
	assert.Contains(t, out, "a")
}
