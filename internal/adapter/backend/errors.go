package backend

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"

	"tradedesk/internal/domain"
)

// maxErrorBody caps how much of an error response is quoted in messages.
const maxErrorBody = 200

// StatusError is a non-2xx response from the backend. It matches
// domain.ErrBackendStatus and, where the status has a more specific
// meaning, the matching domain sentinel.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
	kind       error
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("%s %s: HTTP %d %s", e.Method, e.Path, e.StatusCode, http.StatusText(e.StatusCode))
	if body := strings.TrimSpace(e.Body); body != "" {
		if len(body) > maxErrorBody {
			body = body[:maxErrorBody] + "..."
		}
		msg += ": " + body
	}
	return msg
}

func (e *StatusError) Unwrap() []error {
	if e.kind == nil {
		return []error{domain.ErrBackendStatus}
	}
	return []error{domain.ErrBackendStatus, e.kind}
}

// mapHTTPError maps an HTTP status code + response body to a domain error.
func mapHTTPError(method, path string, statusCode int, body []byte) error {
	e := &StatusError{Method: method, Path: path, StatusCode: statusCode, Body: string(body)}
	switch {
	case statusCode == http.StatusTooManyRequests: // 429
		e.kind = domain.ErrRateLimit
	case statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden: // 401, 403
		e.kind = domain.ErrBackendAuth
	case statusCode == http.StatusNotFound: // 404
		e.kind = domain.ErrUnknownResource
	case statusCode == http.StatusRequestTimeout || statusCode == http.StatusGatewayTimeout: // 408, 504
		e.kind = domain.ErrTimeout
	case statusCode >= 500: // 500, 502, 503, etc.
		e.kind = domain.ErrBackendUnavailable
	}
	return e
}

// mapTransportError classifies a failed round trip.
func mapTransportError(ctx context.Context, method, path string, err error) error {
	op := method + " " + path
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return domain.NewDomainError(op, domain.ErrTimeout, "")
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return domain.NewDomainError(op, domain.ErrTimeout, "")
	}
	if errors.Is(err, context.Canceled) {
		return domain.WrapOp(op, context.Canceled)
	}
	return domain.NewDomainError(op, domain.ErrBackendUnavailable, unwrapURLError(err))
}

// unwrapURLError drops net/url's `Get "http://...":` prefix, which repeats
// the method and path already in the op.
func unwrapURLError(err error) string {
	var ue *url.Error
	if errors.As(err, &ue) && ue.Err != nil {
		return ue.Err.Error()
	}
	return err.Error()
}
