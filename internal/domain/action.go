package domain

// ActionID names one backend-fetching (or guidance) action a chat message can
// resolve to. The set is closed; see AllActions.
type ActionID string

const (
	ActionAgentSummary       ActionID = "agent_summary"
	ActionGreeksSummary      ActionID = "greeks_summary"
	ActionPortfolioSummary   ActionID = "portfolio_summary"
	ActionCapitalSummary     ActionID = "capital_summary"
	ActionPendingRecs        ActionID = "pending_recs"
	ActionWorkflowStatus     ActionID = "workflow_status"
	ActionPerformanceSummary ActionID = "performance_summary"
	ActionHaltHint           ActionID = "halt_hint"
	ActionResumeHint         ActionID = "resume_hint"
	ActionRecActionHint      ActionID = "rec_action_hint"
	ActionHelp               ActionID = "help"
	ActionUnknown            ActionID = "unknown"
)

// AllActions lists every ActionID in declaration order.
func AllActions() []ActionID {
	return []ActionID{
		ActionAgentSummary,
		ActionGreeksSummary,
		ActionPortfolioSummary,
		ActionCapitalSummary,
		ActionPendingRecs,
		ActionWorkflowStatus,
		ActionPerformanceSummary,
		ActionHaltHint,
		ActionResumeHint,
		ActionRecActionHint,
		ActionHelp,
		ActionUnknown,
	}
}

// Valid reports whether a belongs to the closed action set.
func (a ActionID) Valid() bool {
	for _, known := range AllActions() {
		if a == known {
			return true
		}
	}
	return false
}

// IsHint reports whether a only returns navigation guidance and never
// touches the backend.
func (a ActionID) IsHint() bool {
	switch a {
	case ActionHaltHint, ActionResumeHint, ActionRecActionHint:
		return true
	default:
		return false
	}
}
