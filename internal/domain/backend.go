package domain

import "context"

// Resource is a logical backend collection the interpretation layer reads.
type Resource string

const (
	ResourceAgentSummary    Resource = "agent_summary"
	ResourcePortfolios      Resource = "portfolios"
	ResourceCapital         Resource = "capital"
	ResourceRecommendations Resource = "recommendations"
	ResourceWorkflowStatus  Resource = "workflow_status"
	ResourcePerformance     Resource = "performance"
)

// AllResources lists every Resource the backend adapter must map.
func AllResources() []Resource {
	return []Resource{
		ResourceAgentSummary,
		ResourcePortfolios,
		ResourceCapital,
		ResourceRecommendations,
		ResourceWorkflowStatus,
		ResourcePerformance,
	}
}

// Backend is the read-only query surface of the trading backend.
// Results are untyped decoded JSON (maps, slices, float64, string, bool, nil).
type Backend interface {
	Query(ctx context.Context, resource Resource, params map[string]string) (any, error)
}

// BackendFunc adapts a plain function to Backend.
type BackendFunc func(ctx context.Context, resource Resource, params map[string]string) (any, error)

// Query implements Backend.
func (f BackendFunc) Query(ctx context.Context, resource Resource, params map[string]string) (any, error) {
	return f(ctx, resource, params)
}
