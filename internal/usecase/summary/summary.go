// Package summary turns untyped backend payloads into typed desk summaries.
//
// Every function here is pure and total: missing fields count as zero and
// unexpected shapes yield an empty summary. Both the chat dispatcher and the
// console render from these types, so the two surfaces always agree on the
// numbers.
package summary

import (
	"sort"
	"strings"

	"tradedesk/internal/usecase/payload"
)

// AgentRow is one trading agent.
type AgentRow struct {
	Name   string
	Status string
	Kind   string
}

// AgentSummary counts agents by state.
type AgentSummary struct {
	Total   int
	Active  int
	Idle    int
	Errored int
	Agents  []AgentRow
}

// Agents summarises the agent_summary resource. The payload may be an object
// carrying counters and an optional "agents" list, or a bare list of agents
// whose counters are then derived from their statuses.
func Agents(v any) AgentSummary {
	obj := payload.Object(v)
	rows := payload.Records(v, "agents", "items", "data")

	var s AgentSummary
	for _, r := range rows {
		s.Agents = append(s.Agents, AgentRow{
			Name:   r.String("name", "agent_name", "id"),
			Status: r.String("status", "state"),
			Kind:   r.String("type", "agent_type", "strategy"),
		})
	}

	active, idle, errored := 0, 0, 0
	for _, a := range s.Agents {
		switch StatusTone(a.Status) {
		case ToneGood:
			active++
		case ToneWait:
			idle++
		case ToneBad:
			errored++
		}
	}

	s.Total = len(s.Agents)
	if obj.Has("total_agents", "total") {
		s.Total = obj.Int("total_agents", "total")
	}
	s.Active = active
	if obj.Has("active_agents", "active") {
		s.Active = obj.Int("active_agents", "active")
	}
	s.Idle = idle
	if obj.Has("idle_agents", "idle") {
		s.Idle = obj.Int("idle_agents", "idle")
	}
	s.Errored = errored
	if obj.Has("error_agents", "errored", "errors") {
		s.Errored = obj.Int("error_agents", "errored", "errors")
	}
	return s
}

// PortfolioRow is one portfolio with its risk and value figures.
type PortfolioRow struct {
	ID       string
	Name     string
	Real     bool
	Research bool
	Delta    float64
	Gamma    float64
	Theta    float64
	Vega     float64
	Value    float64
	PnL      float64
}

// Live reports whether the portfolio counts toward desk-level aggregates.
func (p PortfolioRow) Live() bool {
	return p.Real && !p.Research
}

// Portfolios decodes the portfolios resource. A missing real flag means the
// portfolio is real; an id carrying researchPrefix marks it as research.
func Portfolios(v any, researchPrefix string) []PortfolioRow {
	records := payload.Records(v, "portfolios", "items", "data")
	out := make([]PortfolioRow, 0, len(records))
	for _, r := range records {
		id := r.String("id", "portfolio_id")
		name := r.String("name", "portfolio_name")
		if name == "" {
			name = id
		}
		out = append(out, PortfolioRow{
			ID:       id,
			Name:     name,
			Real:     r.Bool(true, "is_real", "real"),
			Research: researchPrefix != "" && strings.HasPrefix(id, researchPrefix),
			Delta:    r.Float("delta", "net_delta"),
			Gamma:    r.Float("gamma", "net_gamma"),
			Theta:    r.Float("theta", "net_theta"),
			Vega:     r.Float("vega", "net_vega"),
			Value:    r.Float("value", "market_value", "equity", "total_value"),
			PnL:      r.Float("pnl", "unrealized_pnl", "total_pnl"),
		})
	}
	return out
}

// PortfolioSummary totals the portfolio list.
type PortfolioSummary struct {
	Count      int
	Live       int
	Research   int
	Paper      int
	TotalValue float64
	TotalPnL   float64
	Rows       []PortfolioRow
}

// Portfolio summarises the portfolios resource. Value and P&L totals cover
// live portfolios only.
func Portfolio(v any, researchPrefix string) PortfolioSummary {
	rows := Portfolios(v, researchPrefix)
	s := PortfolioSummary{Count: len(rows), Rows: rows}
	for _, p := range rows {
		switch {
		case p.Research:
			s.Research++
		case !p.Real:
			s.Paper++
		default:
			s.Live++
			s.TotalValue += p.Value
			s.TotalPnL += p.PnL
		}
	}
	return s
}

// GreeksSummary is the net exposure across live portfolios.
type GreeksSummary struct {
	Portfolios int
	Delta      float64
	Gamma      float64
	Theta      float64
	Vega       float64
}

// Greeks sums delta, gamma, theta and vega over live portfolios.
func Greeks(v any, researchPrefix string) GreeksSummary {
	var s GreeksSummary
	for _, p := range Portfolios(v, researchPrefix) {
		if !p.Live() {
			continue
		}
		s.Portfolios++
		s.Delta += p.Delta
		s.Gamma += p.Gamma
		s.Theta += p.Theta
		s.Vega += p.Vega
	}
	return s
}

// CapitalRow is the capital split of one portfolio.
type CapitalRow struct {
	Name     string
	Total    float64
	Idle     float64
	Deployed float64
}

// CapitalSummary is the desk-wide capital split.
type CapitalSummary struct {
	Total       float64
	Idle        float64
	Deployed    float64
	Utilisation float64 // deployed as a percentage of total
	Rows        []CapitalRow
}

// Capital summarises the capital resource. Deployed capital is always
// derived as total minus idle. Totals carried on the object win over the
// sums of its per-portfolio rows, field by field.
func Capital(v any) CapitalSummary {
	var s CapitalSummary
	for _, r := range payload.Records(v, "portfolios", "capital", "items", "data") {
		row := CapitalRow{
			Name:  r.String("name", "portfolio_name", "id", "portfolio_id"),
			Total: r.Float("total_capital", "total", "capital"),
			Idle:  r.Float("idle_capital", "idle", "cash"),
		}
		row.Deployed = row.Total - row.Idle
		s.Rows = append(s.Rows, row)
		s.Total += row.Total
		s.Idle += row.Idle
	}

	obj := payload.Object(v)
	if obj.Has("total_capital", "total") {
		s.Total = obj.Float("total_capital", "total")
	}
	if obj.Has("idle_capital", "idle") {
		s.Idle = obj.Float("idle_capital", "idle")
	}
	s.Deployed = s.Total - s.Idle
	if s.Total > 0 {
		s.Utilisation = s.Deployed / s.Total * 100
	}
	return s
}

// RecommendationRow is one trade recommendation.
type RecommendationRow struct {
	ID          string
	Symbol      string
	Action      string
	Status      string
	Confidence  float64 // 0-100
	PortfolioID string
}

// Recommendations decodes the recommendations resource. When status is
// non-empty, rows whose own status is set and differs are dropped, in case
// the backend ignores the filter. Confidence given as a fraction is scaled
// to a percentage.
func Recommendations(v any, status string) []RecommendationRow {
	var out []RecommendationRow
	for _, r := range payload.Records(v, "recommendations", "recs", "items", "data") {
		row := RecommendationRow{
			ID:          r.String("id", "recommendation_id"),
			Symbol:      r.String("symbol", "ticker", "underlying"),
			Action:      strings.ToUpper(r.String("action", "side", "type")),
			Status:      r.String("status", "state"),
			Confidence:  r.Float("confidence", "score"),
			PortfolioID: r.String("portfolio_id", "portfolio"),
		}
		if row.Confidence > 0 && row.Confidence <= 1 {
			row.Confidence *= 100
		}
		if status != "" && row.Status != "" && !strings.EqualFold(row.Status, status) {
			continue
		}
		out = append(out, row)
	}
	return out
}

// Check is one pass/fail gate of the trading workflow.
type Check struct {
	Name   string
	Passed bool
}

// WorkflowSummary is the state of the trading workflow.
type WorkflowSummary struct {
	Status  string
	Stage   string
	LastRun string
	Message string
	Checks  []Check
}

// Passed counts passing checks.
func (w WorkflowSummary) Passed() int {
	n := 0
	for _, c := range w.Checks {
		if c.Passed {
			n++
		}
	}
	return n
}

// Workflow summarises the workflow_status resource. Checks may be a list of
// objects or an object mapping check name to a boolean.
func Workflow(v any) WorkflowSummary {
	obj := payload.Object(v)
	s := WorkflowSummary{
		Status:  obj.String("status", "state"),
		Stage:   obj.String("stage", "current_step", "step"),
		LastRun: obj.String("last_run", "last_run_at", "updated_at"),
		Message: obj.String("message", "detail"),
	}
	for _, c := range obj.List("checks", "gates") {
		s.Checks = append(s.Checks, Check{
			Name:   c.String("name", "check", "id"),
			Passed: c.Bool(false, "passed", "ok", "success"),
		})
	}
	if len(s.Checks) == 0 {
		if m, ok := obj["checks"].(map[string]any); ok {
			names := make([]string, 0, len(m))
			for name := range m {
				names = append(names, name)
			}
			sort.Strings(names)
			flags := payload.Record(m)
			for _, name := range names {
				s.Checks = append(s.Checks, Check{Name: name, Passed: flags.Bool(false, name)})
			}
		}
	}
	return s
}

// PerformanceRow is the trading record of one portfolio or strategy.
type PerformanceRow struct {
	Name    string
	Wins    int
	Losses  int
	Trades  int
	PnL     float64
	WinRate float64 // 0-100
}

// PerformanceSummary aggregates trading results.
type PerformanceSummary struct {
	Wins    int
	Losses  int
	Trades  int
	PnL     float64
	WinRate float64 // wins / total trades, 0-100
	Rows    []PerformanceRow
}

func winRate(wins, trades int) float64 {
	if trades <= 0 {
		return 0
	}
	return float64(wins) / float64(trades) * 100
}

func performanceRow(r payload.Record) PerformanceRow {
	row := PerformanceRow{
		Name:   r.String("name", "portfolio_name", "strategy", "id", "portfolio_id"),
		Wins:   r.Int("wins", "winning_trades"),
		Losses: r.Int("losses", "losing_trades"),
		PnL:    r.Float("pnl", "realized_pnl", "total_pnl"),
	}
	row.Trades = r.Int("total_trades", "trades")
	if !r.Has("total_trades", "trades") {
		row.Trades = row.Wins + row.Losses
	}
	row.WinRate = winRate(row.Wins, row.Trades)
	return row
}

// Performance summarises the performance resource: a single record of
// totals, or a list of per-portfolio records which are summed.
func Performance(v any) PerformanceSummary {
	var s PerformanceSummary
	obj := payload.Object(v)
	if obj.Has("wins", "winning_trades", "total_trades", "trades") {
		row := performanceRow(obj)
		s.Wins, s.Losses, s.Trades, s.PnL = row.Wins, row.Losses, row.Trades, row.PnL
		s.WinRate = row.WinRate
		return s
	}
	for _, r := range payload.Records(v, "metrics", "performance", "portfolios", "items", "data") {
		row := performanceRow(r)
		s.Rows = append(s.Rows, row)
		s.Wins += row.Wins
		s.Losses += row.Losses
		s.Trades += row.Trades
		s.PnL += row.PnL
	}
	s.WinRate = winRate(s.Wins, s.Trades)
	return s
}

// Tone is the coarse reading of a free-form status string.
type Tone int

const (
	ToneUnknown Tone = iota
	ToneGood
	ToneWait
	ToneBad
)

// StatusTone classifies backend status words.
func StatusTone(status string) Tone {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "active", "running", "ok", "healthy", "completed", "complete", "success", "succeeded", "live", "approved":
		return ToneGood
	case "idle", "paused", "pending", "waiting", "queued", "scheduled", "stopped":
		return ToneWait
	case "error", "errored", "failed", "failure", "halted", "crashed", "rejected", "unhealthy":
		return ToneBad
	default:
		return ToneUnknown
	}
}

// ColorTag maps a status word to a block color tag. Unknown statuses return
// "", which the block model renders green.
func ColorTag(status string) string {
	switch StatusTone(status) {
	case ToneWait:
		return "yellow"
	case ToneBad:
		return "red"
	case ToneGood:
		return "green"
	default:
		return ""
	}
}
