package summary

import (
	"fmt"

	"github.com/kaptinlin/jsonschema"

	"tradedesk/internal/domain"
)

// listOf accepts a bare array of objects or an object wrapping one under
// any of keys.
func listOf(keys ...string) string {
	wrapped := ""
	for i, k := range keys {
		if i > 0 {
			wrapped += ","
		}
		wrapped += fmt.Sprintf(`{"required":[%q],"properties":{%q:{"type":"array","items":{"type":"object"}}}}`, k, k)
	}
	return `{"anyOf":[{"type":"array","items":{"type":"object"}},{"type":"object","anyOf":[` + wrapped + `]}]}`
}

// totalsOr also accepts an object carrying one of the totals fields.
func totalsOr(list string, fields ...string) string {
	alt := ""
	for i, f := range fields {
		if i > 0 {
			alt += ","
		}
		alt += fmt.Sprintf(`{"type":"object","required":[%q]}`, f)
	}
	return `{"anyOf":[` + list + `,` + alt + `]}`
}

var shapes = map[domain.Resource]string{
	domain.ResourceAgentSummary: totalsOr(listOf("agents", "items", "data"),
		"total_agents", "total", "active_agents", "active"),
	domain.ResourcePortfolios:      listOf("portfolios", "items", "data"),
	domain.ResourceCapital:         totalsOr(listOf("portfolios", "capital", "items", "data"), "total_capital", "total"),
	domain.ResourceRecommendations: listOf("recommendations", "recs", "items", "data"),
	domain.ResourceWorkflowStatus:  `{"type":"object"}`,
	domain.ResourcePerformance: totalsOr(listOf("metrics", "performance", "portfolios", "items", "data"),
		"wins", "winning_trades", "total_trades", "trades"),
}

// CheckShape reports whether v has a shape the summaries for r understand.
// Summaries still degrade to zero values on other shapes; this is for
// diagnostics.
func CheckShape(r domain.Resource, v any) error {
	raw, ok := shapes[r]
	if !ok {
		return domain.NewDomainError("summary.CheckShape", domain.ErrUnknownResource, string(r))
	}
	schema, err := jsonschema.NewCompiler().Compile([]byte(raw))
	if err != nil {
		return fmt.Errorf("invalid schema for %s: %w", r, err)
	}
	if result := schema.Validate(v); !result.IsValid() {
		return domain.NewDomainError("summary.CheckShape", domain.ErrMalformedPayload, result.Error())
	}
	return nil
}
