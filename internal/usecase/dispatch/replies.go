package dispatch

import (
	"fmt"
	"strings"

	"tradedesk/internal/domain"
	"tradedesk/internal/usecase/summary"
)

const (
	haltHintText = "I can't halt trading from chat. Use the **Halt** control on the Control page " +
		"to stop all agents and block new orders."
	resumeHintText = "I can't resume trading from chat. Use the **Resume** control on the Control page " +
		"once you have reviewed open risk."
	recActionHintText = "Recommendations are approved or rejected on the Recommendations page, " +
		"where you can review each one before acting."

	unknownText = "I didn't understand that. Try asking:\n" +
		"- agent status\n" +
		"- show greeks\n" +
		"- how much capital is idle?\n" +
		"- pending recommendations\n\n" +
		"Type \"help\" to see everything I can answer."

	helpText = "Here's what I can answer:\n" +
		"- **Agents**: \"agent status\", \"are the bots running?\"\n" +
		"- **Greeks**: \"show greeks\", \"what's my delta exposure?\"\n" +
		"- **Portfolios**: \"portfolio summary\", \"how are my positions?\"\n" +
		"- **Capital**: \"how much capital is idle?\", \"buying power\"\n" +
		"- **Recommendations**: \"pending recommendations\", \"any new trade ideas?\"\n" +
		"- **Workflow**: \"workflow status\", \"is the pipeline running?\"\n" +
		"- **Performance**: \"win rate\", \"how's P&L?\"\n\n" +
		"Trading controls live on the dashboard; ask and I'll point you there."
)

// staticReply answers actions that never query the backend.
func staticReply(action domain.ActionID) (Response, bool) {
	switch action {
	case domain.ActionHaltHint:
		return Response{Action: action, Text: haltHintText, Navigate: "/control"}, true
	case domain.ActionResumeHint:
		return Response{Action: action, Text: resumeHintText, Navigate: "/control"}, true
	case domain.ActionRecActionHint:
		return Response{Action: action, Text: recActionHintText, Navigate: "/recommendations"}, true
	case domain.ActionHelp:
		return Response{Action: action, Text: helpText}, true
	case domain.ActionUnknown:
		return Response{Action: action, Text: unknownText}, true
	default:
		return Response{}, false
	}
}

// maxListed caps per-item lines in chat replies; the console shows everything.
const maxListed = 8

func (d *Dispatcher) renderAgents(v any) (string, any) {
	s := summary.Agents(v)
	var b strings.Builder
	fmt.Fprintf(&b, "Total agents: %s\n", summary.Count(s.Total))
	fmt.Fprintf(&b, "Active: %s | Idle: %s | Errored: %s",
		summary.Count(s.Active), summary.Count(s.Idle), summary.Count(s.Errored))
	for i, a := range s.Agents {
		if i == maxListed {
			fmt.Fprintf(&b, "\n- ...and %d more", len(s.Agents)-maxListed)
			break
		}
		fmt.Fprintf(&b, "\n- %s: %s", orDash(a.Name), orDash(a.Status))
	}
	return b.String(), s
}

func (d *Dispatcher) renderGreeks(v any) (string, any) {
	s := summary.Greeks(v, d.researchPrefix)
	if s.Portfolios == 0 {
		return "No live portfolios to aggregate Greeks over.", s
	}
	noun := "portfolios"
	if s.Portfolios == 1 {
		noun = "portfolio"
	}
	text := fmt.Sprintf("Net Greeks across %d live %s:\n"+
		"- Delta: %s\n- Gamma: %s\n- Theta: %s\n- Vega: %s",
		s.Portfolios, noun,
		summary.Greek(s.Delta), summary.Greek(s.Gamma), summary.Greek(s.Theta), summary.Greek(s.Vega))
	return text, s
}

func (d *Dispatcher) renderPortfolios(v any) (string, any) {
	s := summary.Portfolio(v, d.researchPrefix)
	if s.Count == 0 {
		return "No portfolios found.", s
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Portfolios: %d (%d live, %d paper, %d research)\n", s.Count, s.Live, s.Paper, s.Research)
	fmt.Fprintf(&b, "Total value: %s\n", summary.Money(s.TotalValue))
	fmt.Fprintf(&b, "Unrealized P&L: %s", summary.Money(s.TotalPnL))
	listed := 0
	for _, p := range s.Rows {
		if !p.Live() {
			continue
		}
		if listed == maxListed {
			b.WriteString("\n- ...")
			break
		}
		fmt.Fprintf(&b, "\n- %s: %s (P&L %s)", orDash(p.Name), summary.Money(p.Value), summary.Money(p.PnL))
		listed++
	}
	return b.String(), s
}

func (d *Dispatcher) renderCapital(v any) (string, any) {
	s := summary.Capital(v)
	text := fmt.Sprintf("Total capital: %s\nDeployed: %s (%s utilised)\nIdle: %s",
		summary.Money(s.Total), summary.Money(s.Deployed), summary.Percent(s.Utilisation), summary.Money(s.Idle))
	return text, s
}

func (d *Dispatcher) renderRecommendations(v any) (string, any) {
	rows := summary.Recommendations(v, "pending")
	if len(rows) == 0 {
		return "No pending recommendations.", rows
	}
	var b strings.Builder
	noun := "recommendations"
	if len(rows) == 1 {
		noun = "recommendation"
	}
	fmt.Fprintf(&b, "%d pending %s:", len(rows), noun)
	for i, r := range rows {
		if i == maxListed {
			fmt.Fprintf(&b, "\n- ...and %d more", len(rows)-maxListed)
			break
		}
		fmt.Fprintf(&b, "\n- %s %s", orDash(r.Action), orDash(r.Symbol))
		if r.Confidence > 0 {
			fmt.Fprintf(&b, " (%s confidence)", summary.Percent(r.Confidence))
		}
	}
	b.WriteString("\n\nApprove or reject them on the Recommendations page.")
	return b.String(), rows
}

func (d *Dispatcher) renderWorkflow(v any) (string, any) {
	s := summary.Workflow(v)
	var b strings.Builder
	fmt.Fprintf(&b, "Workflow status: %s", orDash(s.Status))
	if s.Stage != "" {
		fmt.Fprintf(&b, "\nStage: %s", s.Stage)
	}
	if s.LastRun != "" {
		fmt.Fprintf(&b, "\nLast run: %s", s.LastRun)
	}
	if s.Message != "" {
		fmt.Fprintf(&b, "\n%s", s.Message)
	}
	if len(s.Checks) > 0 {
		fmt.Fprintf(&b, "\nChecks: %d/%d passed", s.Passed(), len(s.Checks))
		for _, c := range s.Checks {
			mark := "FAIL"
			if c.Passed {
				mark = "ok"
			}
			fmt.Fprintf(&b, "\n- %s: %s", orDash(c.Name), mark)
		}
	}
	return b.String(), s
}

func (d *Dispatcher) renderPerformance(v any) (string, any) {
	s := summary.Performance(v)
	text := fmt.Sprintf("Trades: %s (%s wins, %s losses)\nWin rate: %s\nRealized P&L: %s",
		summary.Count(s.Trades), summary.Count(s.Wins), summary.Count(s.Losses),
		summary.Percent(s.WinRate), summary.Money(s.PnL))
	return text, s
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
