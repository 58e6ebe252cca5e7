// Package intent maps free-form chat text to exactly one action.
//
// Classification is deterministic pattern matching over an ordered rule
// table. Rule order is the only disambiguation: when two patterns can fire
// on the same input, the earlier rule wins.
package intent

import (
	"fmt"
	"regexp"
	"strings"

	"tradedesk/internal/domain"
)

// Rule pairs a pattern with the action it selects.
type Rule struct {
	Pattern *regexp.Regexp
	Action  domain.ActionID
}

// NewRule compiles a case-insensitive pattern into a Rule. It panics on an
// invalid expression; rules are static program data.
func NewRule(pattern string, action domain.ActionID) Rule {
	return Rule{Pattern: regexp.MustCompile(`(?i)` + pattern), Action: action}
}

// DefaultRules is the production rule table. Ordering constraints:
//   - halt/resume/approve guidance precede data rules, so "stop all agents"
//     never reads as an agent summary;
//   - a halt verb needs whitespace or punctuation after it, so order types
//     such as "stop-loss" or "stop orders" are not halt requests;
//   - greeks precede portfolio ("portfolio delta");
//   - capital precedes portfolio ("portfolio capital");
//   - recommendations precede portfolio ("portfolio recommendations").
func DefaultRules() []Rule {
	return []Rule{
		NewRule(`^\s*(halt|kill|pause|stop|freeze)\s*!?\s*$|\b(halt|kill|pause|stop|freeze)[\s,:;!].*\b(trading|all|everything|bots?|agents?)\b|\bemergency\b|\bkill switch\b`, domain.ActionHaltHint),
		NewRule(`\b(resume|unhalt|unpause|restart)\b`, domain.ActionResumeHint),
		NewRule(`\b(approve|reject|accept|decline|execute)\b`, domain.ActionRecActionHint),
		NewRule(`\bgreeks?\b|\b(delta|gamma|theta|vega)\b|\bexposure\b`, domain.ActionGreeksSummary),
		NewRule(`\bcapital\b|\bidle\b|\bdeployed\b|\bbuying power\b|\bcash\b`, domain.ActionCapitalSummary),
		NewRule(`\brecs?\b|\brecommendations?\b|\bpending\b|\bsuggestions?\b|\btrade ideas?\b`, domain.ActionPendingRecs),
		NewRule(`\bworkflows?\b|\bpipelines?\b|\bscheduler\b|\bjobs?\b`, domain.ActionWorkflowStatus),
		NewRule(`\bperformance\b|\bwin ?rate\b|\bp&l\b|\bpnl\b|\bprofits?\b|\breturns?\b`, domain.ActionPerformanceSummary),
		NewRule(`\bportfolios?\b|\bpositions?\b|\bholdings?\b|\bbook\b`, domain.ActionPortfolioSummary),
		NewRule(`\bagents?\b|\bbots?\b|\bstrateg(y|ies)\b`, domain.ActionAgentSummary),
		NewRule(`^\s*(help|\?|commands)\s*$|\bwhat can you do\b|\bhow do i\b`, domain.ActionHelp),
	}
}

// Classifier evaluates an ordered rule table.
type Classifier struct {
	rules []Rule
}

// New creates a Classifier over rules. The slice is copied; later changes
// by the caller do not affect classification.
func New(rules []Rule) (*Classifier, error) {
	for i, r := range rules {
		if r.Pattern == nil {
			return nil, domain.NewDomainError("intent.New", domain.ErrInvalidInput, fmt.Sprintf("rule %d has no pattern", i))
		}
		if !r.Action.Valid() {
			return nil, domain.NewDomainError("intent.New", domain.ErrInvalidInput, fmt.Sprintf("rule %d has unknown action %q", i, r.Action))
		}
	}
	return &Classifier{rules: append([]Rule(nil), rules...)}, nil
}

// NewDefault creates a Classifier over DefaultRules.
func NewDefault() *Classifier {
	c, err := New(DefaultRules())
	if err != nil {
		panic(err)
	}
	return c
}

// Classify returns the action of the first rule matching the trimmed text,
// or ActionUnknown. It never fails. Empty input is ActionUnknown as well;
// surfaces short-circuit it before calling Classify.
func (c *Classifier) Classify(text string) domain.ActionID {
	action, _ := c.Match(text)
	return action
}

// Match is Classify that also reports the index of the winning rule
// (-1 when nothing matched).
func (c *Classifier) Match(text string) (domain.ActionID, int) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return domain.ActionUnknown, -1
	}
	for i, r := range c.rules {
		if r.Pattern.MatchString(trimmed) {
			return r.Action, i
		}
	}
	return domain.ActionUnknown, -1
}

// Rules returns a copy of the rule table.
func (c *Classifier) Rules() []Rule {
	return append([]Rule(nil), c.rules...)
}
