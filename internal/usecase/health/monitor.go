// Package health tracks whether the trading backend is answering.
package health

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"
)

// Pinger checks backend reachability.
type Pinger interface {
	Ping(ctx context.Context) (time.Duration, error)
}

// Status is the last observed reachability.
type Status struct {
	Checked bool // false until the first probe finishes
	Online  bool
	Latency time.Duration
	Err     error
	At      time.Time
}

// Monitor probes the backend on a fixed period.
type Monitor struct {
	pinger  Pinger
	period  time.Duration
	timeout time.Duration
	logger  *slog.Logger
	status  atomic.Pointer[Status]
}

// NewMonitor creates a Monitor. Each probe is bounded by timeout.
func NewMonitor(pinger Pinger, period, timeout time.Duration, logger *slog.Logger) *Monitor {
	m := &Monitor{
		pinger:  pinger,
		period:  period,
		timeout: timeout,
		logger:  logger,
	}
	m.status.Store(&Status{})
	return m
}

// Status returns the latest probe result.
func (m *Monitor) Status() Status {
	return *m.status.Load()
}

// Check runs one probe, records it and logs transitions.
func (m *Monitor) Check(ctx context.Context) Status {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	latency, err := m.pinger.Ping(ctx)
	next := Status{Checked: true, Online: err == nil, Latency: latency, Err: err, At: time.Now()}
	prev := m.status.Swap(&next)

	switch {
	case prev.Checked && !prev.Online && next.Online:
		m.logger.Info("backend reachable again", "latency", latency)
	case (!prev.Checked || prev.Online) && !next.Online:
		m.logger.Warn("backend unreachable", "error", err)
	}
	return next
}

// Start probes immediately and then every period until ctx ends. A
// non-positive period probes once.
func (m *Monitor) Start(ctx context.Context) {
	go func() {
		m.Check(ctx)
		if m.period <= 0 {
			return
		}
		ticker := time.NewTicker(m.period)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.Check(ctx)
			}
		}
	}()
}
