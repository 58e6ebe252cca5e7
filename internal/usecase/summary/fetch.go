package summary

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tradedesk/internal/domain"
)

// Query performs one backend query bounded by timeout (0 means only ctx
// bounds it). It always returns: a backend that ignores ctx is abandoned at
// the deadline, and a panicking backend is reported as ErrBackendUnavailable.
func Query(ctx context.Context, backend domain.Backend, timeout time.Duration, resource domain.Resource, params map[string]string) (any, error) {
	if backend == nil {
		return nil, domain.NewDomainError("Backend.Query", domain.ErrBackendUnavailable, "no backend configured")
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	type result struct {
		v   any
		err error
	}
	ch := make(chan result, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- result{err: domain.NewDomainError("Backend.Query", domain.ErrBackendUnavailable, fmt.Sprintf("%s: panic: %v", resource, r))}
			}
		}()
		v, err := backend.Query(ctx, resource, params)
		ch <- result{v: v, err: err}
	}()

	select {
	case r := <-ch:
		if r.err != nil && errors.Is(r.err, context.DeadlineExceeded) {
			return nil, domain.NewDomainError("Backend.Query", domain.ErrTimeout, string(resource))
		}
		return r.v, r.err
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, domain.NewDomainError("Backend.Query", domain.ErrTimeout, string(resource))
		}
		return nil, domain.WrapOp("Backend.Query", ctx.Err())
	}
}
