// Package dispatch executes a classified chat action: at most one backend
// query, client-side aggregation, and a formatted text reply.
package dispatch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/trace"

	"tradedesk/internal/domain"
	"tradedesk/internal/infra/tracer"
	"tradedesk/internal/usecase/summary"
)

// DefaultTimeout bounds a dispatch when no WithTimeout option is given.
const DefaultTimeout = 15 * time.Second

// Response is the outcome of one dispatched action. Dispatch never fails:
// a backend failure is reported through Text with Err set and no Navigate.
type Response struct {
	Action   domain.ActionID
	Text     string
	Data     any    // typed summary from package summary; nil for static replies and failures
	Navigate string // dashboard route suggested alongside the reply
	Err      error
}

// Failed reports whether the backend query behind the response failed.
func (r Response) Failed() bool { return r.Err != nil }

// FailureText is the one reply shown for any backend failure.
func FailureText(err error) string {
	return fmt.Sprintf("Error fetching data: %s. Is the backend running?", err.Error())
}

// route binds a data action to its backend resource, navigation target and
// renderer.
type route struct {
	resource domain.Resource
	params   map[string]string
	navigate string
	render   func(d *Dispatcher, v any) (string, any)
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithResearchPrefix sets the portfolio id prefix that marks research
// portfolios, which are excluded from desk-level Greeks and totals.
func WithResearchPrefix(prefix string) Option {
	return func(d *Dispatcher) { d.researchPrefix = prefix }
}

// WithTimeout bounds each backend query.
func WithTimeout(timeout time.Duration) Option {
	return func(d *Dispatcher) {
		if timeout > 0 {
			d.timeout = timeout
		}
	}
}

// Dispatcher maps ActionIDs to backend queries and reply text.
type Dispatcher struct {
	backend        domain.Backend
	logger         *slog.Logger
	researchPrefix string
	timeout        time.Duration
	routes         map[domain.ActionID]route
}

// New creates a Dispatcher over backend.
func New(backend domain.Backend, logger *slog.Logger, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		backend: backend,
		logger:  logger,
		timeout: DefaultTimeout,
		routes:  defaultRoutes(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func defaultRoutes() map[domain.ActionID]route {
	return map[domain.ActionID]route{
		domain.ActionAgentSummary: {
			resource: domain.ResourceAgentSummary,
			navigate: "/agents",
			render:   (*Dispatcher).renderAgents,
		},
		domain.ActionGreeksSummary: {
			resource: domain.ResourcePortfolios,
			navigate: "/portfolios",
			render:   (*Dispatcher).renderGreeks,
		},
		domain.ActionPortfolioSummary: {
			resource: domain.ResourcePortfolios,
			navigate: "/portfolios",
			render:   (*Dispatcher).renderPortfolios,
		},
		domain.ActionCapitalSummary: {
			resource: domain.ResourceCapital,
			navigate: "/capital",
			render:   (*Dispatcher).renderCapital,
		},
		domain.ActionPendingRecs: {
			resource: domain.ResourceRecommendations,
			params:   map[string]string{"status": "pending"},
			navigate: "/recommendations",
			render:   (*Dispatcher).renderRecommendations,
		},
		domain.ActionWorkflowStatus: {
			resource: domain.ResourceWorkflowStatus,
			navigate: "/workflow",
			render:   (*Dispatcher).renderWorkflow,
		},
		domain.ActionPerformanceSummary: {
			resource: domain.ResourcePerformance,
			navigate: "/performance",
			render:   (*Dispatcher).renderPerformance,
		},
	}
}

// Dispatch runs action and returns its reply. Hint, help and unknown actions
// never touch the backend; every other action performs exactly one query.
func (d *Dispatcher) Dispatch(ctx context.Context, action domain.ActionID) Response {
	if reply, ok := staticReply(action); ok {
		return reply
	}
	rt, ok := d.routes[action]
	if !ok {
		reply, _ := staticReply(domain.ActionUnknown)
		return reply
	}

	ctx, span := tracer.StartSpan(ctx, "dispatch.action",
		trace.WithAttributes(
			tracer.StringAttr("action", string(action)),
			tracer.StringAttr("resource", string(rt.resource)),
		),
	)
	defer span.End()

	start := time.Now()
	v, err := summary.Query(ctx, d.backend, d.timeout, rt.resource, copyParams(rt.params))
	if err != nil {
		tracer.RecordError(span, err)
		if d.logger != nil {
			d.logger.Warn("dispatch failed",
				"action", string(action),
				"resource", string(rt.resource),
				"error", err,
				"code", string(domain.ErrorCodeOf(err)),
				"duration_ms", time.Since(start).Milliseconds(),
			)
		}
		return Response{Action: action, Text: FailureText(err), Err: err}
	}
	tracer.SetOK(span)

	text, data := rt.render(d, v)
	if d.logger != nil {
		d.logger.Debug("dispatch ok",
			"action", string(action),
			"resource", string(rt.resource),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
	return Response{Action: action, Text: text, Data: data, Navigate: rt.navigate}
}

func copyParams(p map[string]string) map[string]string {
	if p == nil {
		return nil
	}
	out := make(map[string]string, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}
