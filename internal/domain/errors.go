package domain

import (
	"errors"
	"fmt"
)

// Category sentinels. Wrap them with NewDomainError or fmt.Errorf("%w") so
// callers can classify failures with errors.Is.
var (
	ErrTimeout      = fmt.Errorf("operation timed out")
	ErrInvalidInput = fmt.Errorf("invalid input")
	ErrRateLimit    = fmt.Errorf("rate limit exceeded")
)

// Sentinel errors for the interpretation layer and its backend port.
var (
	ErrBackendUnavailable = fmt.Errorf("backend unavailable")
	ErrBackendStatus      = fmt.Errorf("backend returned an error status")
	ErrBackendAuth        = fmt.Errorf("backend rejected credentials")
	ErrMalformedPayload   = fmt.Errorf("malformed backend payload")
	ErrUnknownResource    = fmt.Errorf("unknown backend resource")
	ErrUnknownCommand     = fmt.Errorf("unknown command")
	ErrSurfaceBusy        = fmt.Errorf("a request is already in flight")
	ErrEmptyInput         = fmt.Errorf("empty input")
	ErrCircuitOpen        = fmt.Errorf("backend circuit open")
)

// DomainError wraps a sentinel error with context.
type DomainError struct {
	Op     string // operation name (e.g., "Backend.Query")
	Err    error  // underlying sentinel or wrapped error
	Detail string // human-readable detail
}

func (e *DomainError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s: %s", e.Op, e.Detail, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Err)
}

func (e *DomainError) Unwrap() error { return e.Err }

// Code returns the ErrorCode of the wrapped sentinel.
func (e *DomainError) Code() ErrorCode { return ErrorCodeOf(e.Err) }

// NewDomainError creates a new DomainError.
func NewDomainError(op string, err error, detail string) *DomainError {
	return &DomainError{Op: op, Err: err, Detail: detail}
}

// WrapOp adds operation context to an error using fmt.Errorf wrapping.
// Returns nil if err is nil, enabling idiomatic use: return domain.WrapOp("op", err)
func WrapOp(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", op, err)
}

// IsRetryableError reports whether err is a transient error that may succeed on retry.
func IsRetryableError(err error) bool {
	return errors.Is(err, ErrRateLimit) ||
		errors.Is(err, ErrTimeout) ||
		errors.Is(err, ErrBackendUnavailable) ||
		errors.Is(err, ErrCircuitOpen)
}

// ErrorCode is a machine-parseable error category for logs.
type ErrorCode string

const (
	CodeUnknown            ErrorCode = "UNKNOWN"
	CodeTimeout            ErrorCode = "TIMEOUT"
	CodeInvalidInput       ErrorCode = "INVALID_INPUT"
	CodeRateLimit          ErrorCode = "RATE_LIMIT"
	CodeBackendUnavailable ErrorCode = "BACKEND_UNAVAILABLE"
	CodeBackendStatus      ErrorCode = "BACKEND_STATUS"
	CodeBackendAuth        ErrorCode = "BACKEND_AUTH"
	CodeMalformedPayload   ErrorCode = "MALFORMED_PAYLOAD"
	CodeUnknownResource    ErrorCode = "UNKNOWN_RESOURCE"
	CodeUnknownCommand     ErrorCode = "UNKNOWN_COMMAND"
	CodeSurfaceBusy        ErrorCode = "SURFACE_BUSY"
	CodeEmptyInput         ErrorCode = "EMPTY_INPUT"
	CodeCircuitOpen        ErrorCode = "CIRCUIT_OPEN"
)

// sentinelCodes is checked in order; the first errors.Is match wins. Status
// errors also wrap a more specific kind, so ErrBackendStatus comes after
// every kind it can carry.
var sentinelCodes = []struct {
	err  error
	code ErrorCode
}{
	{ErrCircuitOpen, CodeCircuitOpen},
	{ErrBackendAuth, CodeBackendAuth},
	{ErrUnknownResource, CodeUnknownResource},
	{ErrBackendUnavailable, CodeBackendUnavailable},
	{ErrMalformedPayload, CodeMalformedPayload},
	{ErrUnknownCommand, CodeUnknownCommand},
	{ErrSurfaceBusy, CodeSurfaceBusy},
	{ErrEmptyInput, CodeEmptyInput},
	{ErrTimeout, CodeTimeout},
	{ErrRateLimit, CodeRateLimit},
	{ErrBackendStatus, CodeBackendStatus},
	{ErrInvalidInput, CodeInvalidInput},
}

// ErrorCodeOf returns the ErrorCode for err, unwrapping as needed.
// Returns CodeUnknown for nil or unrecognised errors.
func ErrorCodeOf(err error) ErrorCode {
	if err == nil {
		return CodeUnknown
	}
	for _, sc := range sentinelCodes {
		if errors.Is(err, sc.err) {
			return sc.code
		}
	}
	return CodeUnknown
}
