package console

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"tradedesk/internal/domain"
	"tradedesk/internal/usecase/summary"
)

// env is what a command may read while it runs off the event loop. It is a
// snapshot taken at submit time.
type env struct {
	query          func(ctx context.Context, r domain.Resource, params map[string]string) (any, error)
	researchPrefix string
	history        []string
	commands       []Command
}

// Command is one console command.
type Command struct {
	Name    string
	Usage   string
	Summary string
	MaxArgs int
	// Resource is the backend resource read, or "" for local commands.
	Resource domain.Resource
	run      func(ctx context.Context, e env, args []string) ([]domain.Block, error)
}

// Local reports whether the command runs without the backend.
func (c Command) Local() bool { return c.Resource == "" }

// fetchThen adapts a payload mapper into a command body that performs one
// query of resource.
func fetchThen(resource domain.Resource, params func(args []string) map[string]string, render func(e env, args []string, v any) []domain.Block) func(context.Context, env, []string) ([]domain.Block, error) {
	return func(ctx context.Context, e env, args []string) ([]domain.Block, error) {
		var p map[string]string
		if params != nil {
			p = params(args)
		}
		v, err := e.query(ctx, resource, p)
		if err != nil {
			return nil, err
		}
		if blocks, done := shapeBlocks(v); done {
			return blocks, nil
		}
		return render(e, args, v), nil
	}
}

// recsStatus reads the optional status argument; "all" disables filtering.
func recsStatus(args []string) string {
	if len(args) == 0 {
		return "pending"
	}
	s := strings.ToLower(args[0])
	if s == "all" {
		return ""
	}
	return s
}

// DefaultCommands returns the built-in command table in help order.
func DefaultCommands() []Command {
	return []Command{
		{
			Name: "help", Usage: "help", Summary: "List available commands",
			run: func(_ context.Context, e env, _ []string) ([]domain.Block, error) {
				return HelpBlocks(e.commands), nil
			},
		},
		{
			Name: "agents", Usage: "agents", Summary: "Agent counts and states",
			Resource: domain.ResourceAgentSummary,
			run: fetchThen(domain.ResourceAgentSummary, nil, func(_ env, _ []string, v any) []domain.Block {
				return AgentBlocks(summary.Agents(v))
			}),
		},
		{
			Name: "portfolios", Usage: "portfolios", Summary: "All portfolios with value and P&L",
			Resource: domain.ResourcePortfolios,
			run: fetchThen(domain.ResourcePortfolios, nil, func(e env, _ []string, v any) []domain.Block {
				return PortfolioBlocks(summary.Portfolio(v, e.researchPrefix))
			}),
		},
		{
			Name: "greeks", Usage: "greeks", Summary: "Net Greeks across live portfolios",
			Resource: domain.ResourcePortfolios,
			run: fetchThen(domain.ResourcePortfolios, nil, func(e env, _ []string, v any) []domain.Block {
				return GreeksBlocks(summary.Greeks(v, e.researchPrefix), summary.Portfolios(v, e.researchPrefix))
			}),
		},
		{
			Name: "capital", Usage: "capital", Summary: "Total, deployed and idle capital",
			Resource: domain.ResourceCapital,
			run: fetchThen(domain.ResourceCapital, nil, func(_ env, _ []string, v any) []domain.Block {
				return CapitalBlocks(summary.Capital(v))
			}),
		},
		{
			Name: "recs", Usage: "recs [status|all]", Summary: "Trade recommendations (default: pending)",
			MaxArgs:  1,
			Resource: domain.ResourceRecommendations,
			run: fetchThen(domain.ResourceRecommendations,
				func(args []string) map[string]string {
					if s := recsStatus(args); s != "" {
						return map[string]string{"status": s}
					}
					return nil
				},
				func(_ env, args []string, v any) []domain.Block {
					status := recsStatus(args)
					return RecommendationBlocks(summary.Recommendations(v, status), status)
				}),
		},
		{
			Name: "workflow", Usage: "workflow", Summary: "Trading workflow state and checks",
			Resource: domain.ResourceWorkflowStatus,
			run: fetchThen(domain.ResourceWorkflowStatus, nil, func(_ env, _ []string, v any) []domain.Block {
				return WorkflowBlocks(summary.Workflow(v))
			}),
		},
		{
			Name: "performance", Usage: "performance", Summary: "Win rate and realized P&L",
			Resource: domain.ResourcePerformance,
			run: fetchThen(domain.ResourcePerformance, nil, func(_ env, _ []string, v any) []domain.Block {
				return PerformanceBlocks(summary.Performance(v))
			}),
		},
		{
			Name: "history", Usage: "history", Summary: "Commands submitted this session",
			run: func(_ context.Context, e env, _ []string) ([]domain.Block, error) {
				return HistoryBlocks(e.history), nil
			},
		},
	}
}

// parse splits a command line into a lower-cased name and its arguments.
func parse(line string) (string, []string) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", nil
	}
	return strings.ToLower(fields[0]), fields[1:]
}

func unknownCommandBlocks(name string) []domain.Block {
	return []domain.Block{domain.NewError(fmt.Sprintf("Unknown command: %s. Type 'help' for available commands.", name))}
}

func usageBlocks(c Command) []domain.Block {
	return []domain.Block{domain.NewError(fmt.Sprintf("Usage: %s", c.Usage))}
}

// Suggest returns command names starting with prefix, sorted.
func Suggest(cmds []Command, prefix string) []string {
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	var out []string
	for _, c := range cmds {
		if strings.HasPrefix(c.Name, prefix) {
			out = append(out, c.Name)
		}
	}
	sort.Strings(out)
	return out
}
