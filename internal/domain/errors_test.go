package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainErrorFormat(t *testing.T) {
	err := NewDomainError("Backend.Query", ErrBackendStatus, "portfolios: 502")
	want := "Backend.Query: portfolios: 502: backend returned an error status"
	if err.Error() != want {
		t.Errorf("got %q, want %q", err.Error(), want)
	}
}

func TestDomainErrorFormatNoDetail(t *testing.T) {
	err := NewDomainError("Console.Submit", ErrSurfaceBusy, "")
	want := "Console.Submit: a request is already in flight"
	if err.Error() != want {
		t.Errorf("got %q, want %q", err.Error(), want)
	}
}

func TestDomainErrorUnwrap(t *testing.T) {
	err := NewDomainError("Backend.Query", ErrBackendUnavailable, "dial tcp")
	if !errors.Is(err, ErrBackendUnavailable) {
		t.Error("errors.Is should match ErrBackendUnavailable")
	}
}

func TestDomainErrorAs(t *testing.T) {
	err := fmt.Errorf("outer: %w", NewDomainError("Console.Run", ErrUnknownCommand, "frobnicate"))
	var de *DomainError
	if !errors.As(err, &de) {
		t.Fatal("errors.As should match *DomainError")
	}
	assert.Equal(t, "Console.Run", de.Op)
	assert.Equal(t, CodeUnknownCommand, de.Code())
}

func TestWrapOp(t *testing.T) {
	assert.NoError(t, WrapOp("op", nil))

	err := WrapOp("Dispatch", ErrTimeout)
	assert.EqualError(t, err, "Dispatch: operation timed out")
	assert.ErrorIs(t, err, ErrTimeout)
}

func TestErrorCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorCode
	}{
		{"nil", nil, CodeUnknown},
		{"unknown", errors.New("boom"), CodeUnknown},
		{"direct", ErrMalformedPayload, CodeMalformedPayload},
		{"wrapped", fmt.Errorf("ctx: %w", ErrRateLimit), CodeRateLimit},
		{"domain error", NewDomainError("op", ErrCircuitOpen, ""), CodeCircuitOpen},
		{"busy", ErrSurfaceBusy, CodeSurfaceBusy},
		{"status carrying kind", errors.Join(ErrBackendStatus, ErrUnknownResource), CodeUnknownResource},
		{"bare status", ErrBackendStatus, CodeBackendStatus},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ErrorCodeOf(tt.err))
		})
	}
}

func TestIsRetryableError(t *testing.T) {
	assert.True(t, IsRetryableError(fmt.Errorf("x: %w", ErrBackendUnavailable)))
	assert.True(t, IsRetryableError(ErrCircuitOpen))
	assert.False(t, IsRetryableError(ErrBackendAuth))
	assert.False(t, IsRetryableError(nil))
}
