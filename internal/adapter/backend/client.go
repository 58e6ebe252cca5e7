// Package backend is the HTTP adapter for the trading backend's read-only
// JSON API. Each logical resource maps to one GET path.
package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"tradedesk/internal/domain"
	"tradedesk/internal/infra/config"
	"tradedesk/internal/infra/tracer"
)

// maxResponseBody is the maximum response body size we read from the backend.
const maxResponseBody = 10 * 1024 * 1024 // 10 MB

// Client queries the backend over HTTP.
type Client struct {
	baseURL string
	paths   map[domain.Resource]string
	http    *http.Client
	limiter *rate.Limiter // nil = unlimited
	logger  *slog.Logger
}

// NewClient builds a Client from cfg. Every known resource must have a path.
func NewClient(cfg config.BackendConfig, logger *slog.Logger) (*Client, error) {
	u, err := url.Parse(cfg.BaseURL)
	if err != nil || u.Host == "" {
		return nil, domain.NewDomainError("backend.NewClient", domain.ErrInvalidInput, fmt.Sprintf("bad base_url %q", cfg.BaseURL))
	}

	paths := make(map[domain.Resource]string, len(cfg.Resources))
	for _, r := range domain.AllResources() {
		p, ok := cfg.Resources[string(r)]
		if !ok || p == "" {
			return nil, domain.NewDomainError("backend.NewClient", domain.ErrUnknownResource, fmt.Sprintf("no path for %s", r))
		}
		paths[r] = p
	}

	var limiter *rate.Limiter
	if cfg.RateLimit.RequestsPerSecond > 0 {
		burst := cfg.RateLimit.Burst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit.RequestsPerSecond), burst)
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		paths:   paths,
		http:    NewHTTPClient(cfg.Timeout, cfg.Pool),
		limiter: limiter,
		logger:  logger,
	}, nil
}

// Query implements domain.Backend. The decoded body is returned as-is
// (maps, slices, float64, string, bool, nil); an empty body is nil.
func (c *Client) Query(ctx context.Context, resource domain.Resource, params map[string]string) (any, error) {
	path, ok := c.paths[resource]
	if !ok {
		return nil, domain.NewDomainError("backend.Query", domain.ErrUnknownResource, string(resource))
	}

	ctx, span := tracer.StartSpan(ctx, "backend.query",
		trace.WithAttributes(
			tracer.StringAttr("resource", string(resource)),
			tracer.StringAttr("http.path", path),
		),
	)
	defer span.End()

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			err = c.limitError(ctx, err)
			tracer.RecordError(span, err)
			return nil, err
		}
	}

	start := time.Now()
	v, status, err := c.get(ctx, path, params)
	span.SetAttributes(tracer.IntAttr("status", status))
	if err != nil {
		tracer.RecordError(span, err)
		c.logger.Debug("backend query failed",
			"resource", string(resource),
			"status", status,
			"error", err,
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return nil, err
	}
	tracer.SetOK(span)
	c.logger.Debug("backend query",
		"resource", string(resource),
		"status", status,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return v, nil
}

func (c *Client) limitError(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return domain.NewDomainError("backend.Query", domain.ErrTimeout, "waiting for rate limiter")
	}
	if ctx.Err() != nil {
		return domain.WrapOp("backend.Query", ctx.Err())
	}
	// Wait fails fast when the deadline cannot accommodate a token.
	return domain.NewDomainError("backend.Query", domain.ErrRateLimit, err.Error())
}

// get performs the GET and decodes the JSON body. It returns the HTTP status
// (0 when no response arrived).
func (c *Client) get(ctx context.Context, path string, params map[string]string) (any, int, error) {
	target := c.baseURL + path
	if len(params) > 0 {
		q := url.Values{}
		for k, v := range params {
			q.Set(k, v)
		}
		target += "?" + q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, mapTransportError(ctx, http.MethodGet, path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return nil, resp.StatusCode, mapTransportError(ctx, http.MethodGet, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, resp.StatusCode, mapHTTPError(http.MethodGet, path, resp.StatusCode, body)
	}

	if len(strings.TrimSpace(string(body))) == 0 {
		return nil, resp.StatusCode, nil
	}
	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return nil, resp.StatusCode, domain.NewDomainError("GET "+path, domain.ErrMalformedPayload, err.Error())
	}
	return v, resp.StatusCode, nil
}

// Ping checks reachability by querying the agent summary.
func (c *Client) Ping(ctx context.Context) (time.Duration, error) {
	start := time.Now()
	_, err := c.Query(ctx, domain.ResourceAgentSummary, nil)
	return time.Since(start), err
}

// Path returns the configured path of resource.
func (c *Client) Path(resource domain.Resource) string { return c.paths[resource] }

var _ domain.Backend = (*Client)(nil)
