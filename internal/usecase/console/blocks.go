package console

import (
	"fmt"
	"strconv"
	"strings"

	"tradedesk/internal/domain"
	"tradedesk/internal/usecase/summary"
)

// The mappers below are pure and total. Each always returns at least one
// block.

func signColor(v float64) domain.Color {
	switch {
	case v > 0:
		return domain.ColorGreen
	case v < 0:
		return domain.ColorRed
	default:
		return domain.ColorNone
	}
}

func countColor(n int, c domain.Color) domain.Color {
	if n == 0 {
		return domain.ColorNone
	}
	return c
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// shapeBlocks handles payloads no summary can read. ok is false when v is
// an object or list and should go through the command's mapper.
func shapeBlocks(v any) ([]domain.Block, bool) {
	switch t := v.(type) {
	case nil:
		return []domain.Block{domain.NewText("No data returned.")}, true
	case map[string]any, []any, []map[string]any:
		return nil, false
	case string:
		if strings.TrimSpace(t) == "" {
			return []domain.Block{domain.NewText("No data returned.")}, true
		}
		return []domain.Block{domain.NewText(t)}, true
	default:
		return []domain.Block{domain.NewText(fmt.Sprintf("Unexpected response: %v", t))}, true
	}
}

// AgentBlocks renders the agent summary.
func AgentBlocks(s summary.AgentSummary) []domain.Block {
	blocks := []domain.Block{
		domain.NewHeader("Agents"),
		domain.NewKeyValues(
			domain.KeyValue{Key: "Total", Value: summary.Count(s.Total)},
			domain.KeyValue{Key: "Active", Value: summary.Count(s.Active), Color: countColor(s.Active, domain.ColorGreen)},
			domain.KeyValue{Key: "Idle", Value: summary.Count(s.Idle), Color: countColor(s.Idle, domain.ColorYellow)},
			domain.KeyValue{Key: "Errored", Value: summary.Count(s.Errored), Color: countColor(s.Errored, domain.ColorRed)},
		),
	}
	if len(s.Agents) > 0 {
		rows := make([][]string, 0, len(s.Agents))
		for _, a := range s.Agents {
			rows = append(rows, []string{dash(a.Name), dash(a.Status), dash(a.Kind)})
		}
		blocks = append(blocks, domain.NewTable([]string{"Agent", "Status", "Type"}, rows))
	}
	return blocks
}

func portfolioKind(p summary.PortfolioRow) string {
	switch {
	case p.Research:
		return "research"
	case !p.Real:
		return "paper"
	default:
		return "live"
	}
}

// PortfolioBlocks renders every portfolio, live or not.
func PortfolioBlocks(s summary.PortfolioSummary) []domain.Block {
	if s.Count == 0 {
		return []domain.Block{domain.NewHeader("Portfolios"), domain.NewText("No portfolios found.")}
	}
	rows := make([][]string, 0, len(s.Rows))
	for _, p := range s.Rows {
		rows = append(rows, []string{
			dash(p.ID), dash(p.Name), portfolioKind(p),
			summary.Money(p.Value), summary.Money(p.PnL), summary.Greek(p.Delta),
		})
	}
	return []domain.Block{
		domain.NewHeader("Portfolios"),
		domain.NewKeyValues(
			domain.KeyValue{Key: "Portfolios", Value: strconv.Itoa(s.Count)},
			domain.KeyValue{Key: "Live", Value: strconv.Itoa(s.Live)},
			domain.KeyValue{Key: "Paper", Value: strconv.Itoa(s.Paper)},
			domain.KeyValue{Key: "Research", Value: strconv.Itoa(s.Research)},
			domain.KeyValue{Key: "Live value", Value: summary.Money(s.TotalValue)},
			domain.KeyValue{Key: "Unrealized P&L", Value: summary.Money(s.TotalPnL), Color: signColor(s.TotalPnL)},
		),
		domain.NewTable([]string{"ID", "Name", "Type", "Value", "P&L", "Delta"}, rows),
	}
}

// GreeksBlocks renders net Greeks plus a per-portfolio breakdown.
func GreeksBlocks(g summary.GreeksSummary, rows []summary.PortfolioRow) []domain.Block {
	if g.Portfolios == 0 {
		return []domain.Block{domain.NewHeader("Net Greeks"), domain.NewText("No live portfolios to aggregate Greeks over.")}
	}
	blocks := []domain.Block{
		domain.NewHeader("Net Greeks"),
		domain.NewKeyValues(
			domain.KeyValue{Key: "Live portfolios", Value: strconv.Itoa(g.Portfolios)},
			domain.KeyValue{Key: "Delta", Value: summary.Greek(g.Delta), Color: signColor(g.Delta)},
			domain.KeyValue{Key: "Gamma", Value: summary.Greek(g.Gamma), Color: signColor(g.Gamma)},
			domain.KeyValue{Key: "Theta", Value: summary.Greek(g.Theta), Color: signColor(g.Theta)},
			domain.KeyValue{Key: "Vega", Value: summary.Greek(g.Vega), Color: signColor(g.Vega)},
		),
		domain.NewSection("By portfolio"),
	}
	table := make([][]string, 0, len(rows))
	for _, p := range rows {
		if !p.Live() {
			continue
		}
		table = append(table, []string{
			dash(p.Name), summary.Greek(p.Delta), summary.Greek(p.Gamma), summary.Greek(p.Theta), summary.Greek(p.Vega),
		})
	}
	return append(blocks, domain.NewTable([]string{"Portfolio", "Delta", "Gamma", "Theta", "Vega"}, table))
}

// CapitalBlocks renders the capital split.
func CapitalBlocks(s summary.CapitalSummary) []domain.Block {
	blocks := []domain.Block{
		domain.NewHeader("Capital"),
		domain.NewKeyValues(
			domain.KeyValue{Key: "Total", Value: summary.Money(s.Total)},
			domain.KeyValue{Key: "Deployed", Value: summary.Money(s.Deployed), Color: domain.ColorCyan},
			domain.KeyValue{Key: "Idle", Value: summary.Money(s.Idle), Color: domain.ColorYellow},
			domain.KeyValue{Key: "Utilisation", Value: summary.Percent(s.Utilisation)},
		),
	}
	if len(s.Rows) > 0 {
		rows := make([][]string, 0, len(s.Rows))
		for _, r := range s.Rows {
			rows = append(rows, []string{dash(r.Name), summary.Money(r.Total), summary.Money(r.Deployed), summary.Money(r.Idle)})
		}
		blocks = append(blocks, domain.NewTable([]string{"Portfolio", "Total", "Deployed", "Idle"}, rows))
	}
	return blocks
}

// RecommendationBlocks renders recommendations filtered by status ("" = all).
func RecommendationBlocks(rows []summary.RecommendationRow, status string) []domain.Block {
	title := "Recommendations"
	if status != "" {
		title += " (" + status + ")"
	}
	if len(rows) == 0 {
		return []domain.Block{domain.NewHeader(title), domain.NewText("No recommendations.")}
	}
	table := make([][]string, 0, len(rows))
	for _, r := range rows {
		conf := "-"
		if r.Confidence > 0 {
			conf = summary.Percent(r.Confidence)
		}
		table = append(table, []string{dash(r.ID), dash(r.Symbol), dash(r.Action), dash(r.Status), conf, dash(r.PortfolioID)})
	}
	return []domain.Block{
		domain.NewHeader(title),
		domain.NewTable([]string{"ID", "Symbol", "Action", "Status", "Confidence", "Portfolio"}, table),
	}
}

// WorkflowBlocks renders the workflow state and its checks.
func WorkflowBlocks(w summary.WorkflowSummary) []domain.Block {
	blocks := []domain.Block{
		domain.NewHeader("Workflow"),
		domain.NewStatus(dash(w.Status), summary.ColorTag(w.Status)),
	}
	var kv []domain.KeyValue
	if w.Stage != "" {
		kv = append(kv, domain.KeyValue{Key: "Stage", Value: w.Stage})
	}
	if w.LastRun != "" {
		kv = append(kv, domain.KeyValue{Key: "Last run", Value: w.LastRun})
	}
	if len(kv) > 0 {
		blocks = append(blocks, domain.NewKeyValues(kv...))
	}
	if w.Message != "" {
		blocks = append(blocks, domain.NewText(w.Message))
	}
	if len(w.Checks) > 0 {
		items := make([]string, 0, len(w.Checks))
		for _, c := range w.Checks {
			mark := "-"
			if c.Passed {
				mark = "+"
			}
			items = append(items, mark+" "+dash(c.Name))
		}
		blocks = append(blocks,
			domain.NewSection(fmt.Sprintf("Checks (%d/%d passed)", w.Passed(), len(w.Checks))),
			domain.NewList(domain.ListChecks, items...),
		)
	}
	return blocks
}

// PerformanceBlocks renders trading results.
func PerformanceBlocks(p summary.PerformanceSummary) []domain.Block {
	blocks := []domain.Block{
		domain.NewHeader("Performance"),
		domain.NewKeyValues(
			domain.KeyValue{Key: "Trades", Value: summary.Count(p.Trades)},
			domain.KeyValue{Key: "Wins", Value: summary.Count(p.Wins), Color: countColor(p.Wins, domain.ColorGreen)},
			domain.KeyValue{Key: "Losses", Value: summary.Count(p.Losses), Color: countColor(p.Losses, domain.ColorRed)},
			domain.KeyValue{Key: "Win rate", Value: summary.Percent(p.WinRate)},
			domain.KeyValue{Key: "Realized P&L", Value: summary.Money(p.PnL), Color: signColor(p.PnL)},
		),
	}
	if len(p.Rows) > 0 {
		rows := make([][]string, 0, len(p.Rows))
		for _, r := range p.Rows {
			rows = append(rows, []string{
				dash(r.Name), strconv.Itoa(r.Trades), strconv.Itoa(r.Wins), strconv.Itoa(r.Losses),
				summary.Percent(r.WinRate), summary.Money(r.PnL),
			})
		}
		blocks = append(blocks, domain.NewTable([]string{"Name", "Trades", "Wins", "Losses", "Win rate", "P&L"}, rows))
	}
	return blocks
}

// HistoryBlocks lists previous submissions, oldest first.
func HistoryBlocks(entries []string) []domain.Block {
	if len(entries) == 0 {
		return []domain.Block{domain.NewText("No commands yet.")}
	}
	items := make([]string, 0, len(entries))
	for i, e := range entries {
		items = append(items, fmt.Sprintf("%3d  %s", i+1, e))
	}
	return []domain.Block{domain.NewHeader("History"), domain.NewList(domain.ListPlain, items...)}
}

// HelpBlocks lists the command table.
func HelpBlocks(cmds []Command) []domain.Block {
	rows := make([][]string, 0, len(cmds))
	for _, c := range cmds {
		rows = append(rows, []string{c.Usage, c.Summary})
	}
	return []domain.Block{
		domain.NewHeader("Commands"),
		domain.NewTable([]string{"Command", "Description"}, rows),
		domain.NewText("Use Up/Down to recall previous commands."),
	}
}
