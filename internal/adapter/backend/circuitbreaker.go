package backend

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"

	"tradedesk/internal/domain"
	"tradedesk/internal/infra/config"
)

// Default circuit breaker settings.
const (
	defaultCBMaxFailures uint32        = 5
	defaultCBTimeout     time.Duration = 30 * time.Second
	defaultCBInterval    time.Duration = 60 * time.Second
)

// CircuitBreakerBackend wraps a Backend with circuit breaker protection.
// After repeated outages the circuit opens and queries fail fast with
// domain.ErrCircuitOpen until a probe succeeds.
type CircuitBreakerBackend struct {
	inner   domain.Backend
	breaker *gobreaker.CircuitBreaker[any]
	logger  *slog.Logger
}

// NewCircuitBreakerBackend wraps inner with a circuit breaker. Zero-valued
// settings fall back to defaults.
func NewCircuitBreakerBackend(inner domain.Backend, cfg config.CircuitBreakerConfig, logger *slog.Logger) *CircuitBreakerBackend {
	maxFailures := cfg.MaxFailures
	if maxFailures == 0 {
		maxFailures = defaultCBMaxFailures
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultCBTimeout
	}
	interval := cfg.Interval
	if interval == 0 {
		interval = defaultCBInterval
	}

	cb := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        "backend",
		MaxRequests: 1, // allow 1 probe in half-open state
		Interval:    interval,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state change",
				"breaker", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
		IsSuccessful: func(err error) bool {
			return err == nil || !tripsBreaker(err)
		},
	})

	return &CircuitBreakerBackend{inner: inner, breaker: cb, logger: logger}
}

// tripsBreaker reports whether err says the backend itself is unhealthy.
// Caller-side problems (unknown resource, auth, bad payload, cancellation)
// do not count.
func tripsBreaker(err error) bool {
	return errors.Is(err, domain.ErrBackendUnavailable) || errors.Is(err, domain.ErrTimeout)
}

// Query implements domain.Backend. Calls are routed through the circuit breaker.
func (b *CircuitBreakerBackend) Query(ctx context.Context, resource domain.Resource, params map[string]string) (any, error) {
	v, err := b.breaker.Execute(func() (any, error) {
		return b.inner.Query(ctx, resource, params)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, domain.NewDomainError("backend.Query", domain.ErrCircuitOpen, "too many recent failures, retrying shortly")
		}
		return nil, err
	}
	return v, nil
}

// State returns the current circuit breaker state for monitoring.
func (b *CircuitBreakerBackend) State() gobreaker.State {
	return b.breaker.State()
}

// Counts returns the current circuit breaker failure/success counts.
func (b *CircuitBreakerBackend) Counts() gobreaker.Counts {
	return b.breaker.Counts()
}

var _ domain.Backend = (*CircuitBreakerBackend)(nil)

// --- Connection Pooling ---

// Default connection pool settings: one host, few concurrent requests.
const (
	defaultMaxIdleConns    = 10
	defaultIdleConnTimeout = 90 * time.Second
	defaultConnTimeout     = 10 * time.Second
	defaultRespTimeout     = 30 * time.Second
)

// NewPooledTransport creates an http.Transport sized by pool.
func NewPooledTransport(connTimeout time.Duration, pool config.PoolConfig) *http.Transport {
	if connTimeout <= 0 {
		connTimeout = defaultConnTimeout
	}
	maxIdle := pool.MaxIdleConns
	if maxIdle <= 0 {
		maxIdle = defaultMaxIdleConns
	}
	idleTimeout := pool.IdleConnTimeout
	if idleTimeout <= 0 {
		idleTimeout = defaultIdleConnTimeout
	}

	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   connTimeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout: 10 * time.Second,
		MaxIdleConns:        maxIdle,
		MaxIdleConnsPerHost: maxIdle,
		IdleConnTimeout:     idleTimeout,
		ForceAttemptHTTP2:   true,
	}
}

// NewHTTPClient creates an *http.Client whose overall timeout matches the
// per-query bound. Context deadlines usually fire first.
func NewHTTPClient(timeout time.Duration, pool config.PoolConfig) *http.Client {
	if timeout <= 0 {
		timeout = defaultRespTimeout
	}
	return &http.Client{
		Transport: NewPooledTransport(timeout, pool),
		Timeout:   timeout,
	}
}

// New builds the production Backend from cfg: the HTTP client, inside a
// circuit breaker when enabled, inside a response cache when cache_ttl is
// set. The bare client is returned too for Ping.
func New(cfg config.BackendConfig, logger *slog.Logger) (domain.Backend, *Client, error) {
	client, err := NewClient(cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	var be domain.Backend = client
	if cfg.CircuitBreaker.Enabled {
		be = NewCircuitBreakerBackend(be, cfg.CircuitBreaker, logger)
	}
	if cfg.CacheTTL > 0 {
		be = NewCachingBackend(be, cfg.CacheTTL, logger)
	}
	return be, client, nil
}
