package summary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAgentsFromCounters(t *testing.T) {
	s := Agents(map[string]any{
		"total_agents":  float64(5),
		"active_agents": float64(3),
		"idle_agents":   float64(1),
		"error_agents":  float64(1),
		"agents": []any{
			map[string]any{"name": "momentum", "status": "active"},
			map[string]any{"name": "theta-harvest", "status": "error"},
		},
	})
	assert.Equal(t, 5, s.Total)
	assert.Equal(t, 3, s.Active)
	assert.Equal(t, 1, s.Idle)
	assert.Equal(t, 1, s.Errored)
	require.Len(t, s.Agents, 2)
	assert.Equal(t, "theta-harvest", s.Agents[1].Name)
}

func TestAgentsDerivedFromBareList(t *testing.T) {
	s := Agents([]any{
		map[string]any{"name": "a", "status": "running"},
		map[string]any{"name": "b", "status": "idle"},
		map[string]any{"name": "c", "status": "failed"},
		map[string]any{"name": "d", "status": "mystery"},
	})
	assert.Equal(t, 4, s.Total)
	assert.Equal(t, 1, s.Active)
	assert.Equal(t, 1, s.Idle)
	assert.Equal(t, 1, s.Errored)
}

func TestAgentsMalformed(t *testing.T) {
	assert.Equal(t, AgentSummary{}, Agents("not json"))
	assert.Equal(t, AgentSummary{}, Agents(nil))
}

func TestGreeksGoldenCase(t *testing.T) {
	s := Greeks([]any{
		map[string]any{"id": "p1", "delta": 1.234},
		map[string]any{"id": "p2", "delta": -0.5},
	}, "research-")
	assert.Equal(t, 2, s.Portfolios)
	assert.InDelta(t, 0.734, s.Delta, 1e-9)
	assert.Contains(t, Greek(s.Delta), "+0.7")
}

func TestGreeksSkipsPaperAndResearch(t *testing.T) {
	s := Greeks(map[string]any{"portfolios": []any{
		map[string]any{"id": "live-1", "is_real": true, "delta": 10.0, "gamma": 1.0, "theta": -2.0, "vega": 3.0},
		map[string]any{"id": "paper-1", "is_real": false, "delta": 100.0},
		map[string]any{"id": "research-x", "is_real": true, "delta": 1000.0},
		map[string]any{"id": "live-2", "delta": "5", "vega": nil},
	}}, "research-")
	assert.Equal(t, 2, s.Portfolios)
	assert.InDelta(t, 15.0, s.Delta, 1e-9)
	assert.InDelta(t, 1.0, s.Gamma, 1e-9)
	assert.InDelta(t, -2.0, s.Theta, 1e-9)
	assert.InDelta(t, 3.0, s.Vega, 1e-9)
}

func TestGreeksEmptyPrefixDisablesResearchFilter(t *testing.T) {
	s := Greeks([]any{map[string]any{"id": "research-x", "delta": 1.0}}, "")
	assert.Equal(t, 1, s.Portfolios)
}

func TestPortfolioSummary(t *testing.T) {
	s := Portfolio([]any{
		map[string]any{"id": 7, "name": "Core", "market_value": 1000.0, "unrealized_pnl": 50.0},
		map[string]any{"id": "paper", "is_real": false, "value": 500.0},
		map[string]any{"id": "research-1", "value": 200.0},
	}, "research-")
	assert.Equal(t, 3, s.Count)
	assert.Equal(t, 1, s.Live)
	assert.Equal(t, 1, s.Paper)
	assert.Equal(t, 1, s.Research)
	assert.InDelta(t, 1000.0, s.TotalValue, 1e-9)
	assert.InDelta(t, 50.0, s.TotalPnL, 1e-9)
	assert.Equal(t, "7", s.Rows[0].ID)
	assert.Equal(t, "research-1", s.Rows[2].Name)
}

func TestCapitalDeployedIsTotalMinusIdle(t *testing.T) {
	s := Capital(map[string]any{"total_capital": 100000.0, "idle_capital": 25000.0})
	assert.InDelta(t, 75000.0, s.Deployed, 1e-9)
	assert.InDelta(t, 75.0, s.Utilisation, 1e-9)
}

func TestCapitalSumsRows(t *testing.T) {
	s := Capital([]any{
		map[string]any{"name": "A", "total_capital": 1000.0, "idle_capital": 400.0},
		map[string]any{"name": "B", "total": 500.0, "idle": 500.0},
	})
	require.Len(t, s.Rows, 2)
	assert.InDelta(t, 1500.0, s.Total, 1e-9)
	assert.InDelta(t, 900.0, s.Idle, 1e-9)
	assert.InDelta(t, 600.0, s.Deployed, 1e-9)
	assert.InDelta(t, 0.0, s.Rows[1].Deployed, 1e-9)
}

func TestCapitalObjectTotalsOverrideRowSums(t *testing.T) {
	row := map[string]any{"name": "A", "total_capital": 100.0, "idle_capital": 40.0}
	tests := []struct {
		name                  string
		in                    map[string]any
		total, idle, deployed float64
	}{
		{"total only", map[string]any{"portfolios": []any{row}, "total_capital": 100.0}, 100, 40, 60},
		{"idle only", map[string]any{"portfolios": []any{row}, "idle_capital": 10.0}, 100, 10, 90},
		{"both", map[string]any{"portfolios": []any{row}, "total": 200.0, "idle": 50.0}, 200, 50, 150},
		{"neither", map[string]any{"portfolios": []any{row}}, 100, 40, 60},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Capital(tt.in)
			require.Len(t, s.Rows, 1)
			assert.InDelta(t, tt.total, s.Total, 1e-9)
			assert.InDelta(t, tt.idle, s.Idle, 1e-9)
			assert.InDelta(t, tt.deployed, s.Deployed, 1e-9)
		})
	}
}

func TestCapitalZeroTotal(t *testing.T) {
	s := Capital(map[string]any{})
	assert.Zero(t, s.Utilisation)
	assert.Zero(t, s.Deployed)
}

func TestRecommendations(t *testing.T) {
	rows := Recommendations(map[string]any{"recommendations": []any{
		map[string]any{"id": "r1", "symbol": "SPY", "action": "buy", "status": "pending", "confidence": 0.82},
		map[string]any{"id": "r2", "symbol": "QQQ", "action": "sell", "status": "approved", "confidence": 64},
		map[string]any{"id": "r3", "ticker": "IWM", "side": "sell"},
	}}, "pending")
	require.Len(t, rows, 2)
	assert.Equal(t, "BUY", rows[0].Action)
	assert.InDelta(t, 82.0, rows[0].Confidence, 1e-9)
	assert.Equal(t, "IWM", rows[1].Symbol)

	all := Recommendations([]any{map[string]any{"status": "approved", "confidence": 64}}, "")
	require.Len(t, all, 1)
	assert.InDelta(t, 64.0, all[0].Confidence, 1e-9)
}

func TestWorkflowChecksList(t *testing.T) {
	w := Workflow(map[string]any{
		"status":   "running",
		"stage":    "scan",
		"last_run": "2026-10-15T09:30:00Z",
		"checks": []any{
			map[string]any{"name": "market open", "passed": true},
			map[string]any{"name": "risk limits", "passed": false},
		},
	})
	assert.Equal(t, "running", w.Status)
	assert.Equal(t, "scan", w.Stage)
	require.Len(t, w.Checks, 2)
	assert.Equal(t, 1, w.Passed())
}

func TestWorkflowChecksMap(t *testing.T) {
	w := Workflow(map[string]any{
		"state":  "idle",
		"checks": map[string]any{"broker": true, "api": false},
	})
	require.Len(t, w.Checks, 2)
	assert.Equal(t, Check{Name: "api", Passed: false}, w.Checks[0])
	assert.Equal(t, Check{Name: "broker", Passed: true}, w.Checks[1])
}

func TestPerformanceSingleRecord(t *testing.T) {
	p := Performance(map[string]any{"wins": 5.0, "losses": 3.0, "total_trades": 8.0, "realized_pnl": 1234.5})
	assert.Equal(t, 8, p.Trades)
	assert.InDelta(t, 62.5, p.WinRate, 1e-9)
	assert.InDelta(t, 1234.5, p.PnL, 1e-9)
}

func TestPerformanceRowsAndFallbackTrades(t *testing.T) {
	p := Performance(map[string]any{"metrics": []any{
		map[string]any{"name": "A", "wins": 3, "losses": 1},
		map[string]any{"name": "B", "wins": 1, "losses": 3, "pnl": -10},
	}})
	require.Len(t, p.Rows, 2)
	assert.Equal(t, 4, p.Rows[0].Trades)
	assert.Equal(t, 8, p.Trades)
	assert.InDelta(t, 50.0, p.WinRate, 1e-9)
	assert.InDelta(t, -10.0, p.PnL, 1e-9)
}

func TestPerformanceNoTrades(t *testing.T) {
	assert.Zero(t, Performance(nil).WinRate)
}

func TestColorTag(t *testing.T) {
	assert.Equal(t, "green", ColorTag("Running"))
	assert.Equal(t, "yellow", ColorTag("paused"))
	assert.Equal(t, "red", ColorTag("halted"))
	assert.Equal(t, "", ColorTag("something new"))
}
