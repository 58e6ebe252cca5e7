package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"

	"tradedesk/internal/adapter/backend"
	"tradedesk/internal/adapter/recall"
	"tradedesk/internal/domain"
	"tradedesk/internal/infra/config"
	"tradedesk/internal/infra/logger"
	"tradedesk/internal/usecase/console"
	"tradedesk/internal/usecase/payload"
	"tradedesk/internal/usecase/summary"
)

// CheckStatus is the outcome class of a health check.
type CheckStatus string

const (
	StatusPass CheckStatus = "PASS"
	StatusWarn CheckStatus = "WARN"
	StatusFail CheckStatus = "FAIL"
)

// CheckResult is the outcome of one health check.
type CheckResult struct {
	Name    string
	Status  CheckStatus
	Message string
	Fix     string // optional
}

// Check is a named health check. cfg is nil when the config failed to load.
type Check struct {
	Name string
	Fn   func(ctx context.Context, cfg *config.Config) CheckResult
}

func runDoctor(ctx context.Context, w io.Writer) error {
	cfgPath := configPath()
	cfg, cfgErr := config.Load(cfgPath)

	checks := []Check{
		{Name: "Config file", Fn: checkConfigFile(cfgPath, cfgErr)},
		{Name: "Log output", Fn: checkLogOutput},
		{Name: "Console history", Fn: checkHistory},
	}
	for _, r := range domain.AllResources() {
		checks = append(checks, Check{Name: "Resource " + string(r), Fn: checkResource(r)})
	}

	fmt.Fprintln(w, "desk doctor")
	fmt.Fprintln(w, strings.Repeat("=", 50))
	fmt.Fprintln(w)

	var pass, warn, fail int
	for _, result := range runChecks(ctx, cfg, checks) {
		fmt.Fprintf(w, "  %s %s: %s\n", statusIcon(result.Status), result.Name, result.Message)
		if result.Fix != "" {
			fmt.Fprintf(w, "      Fix: %s\n", result.Fix)
		}

		switch result.Status {
		case StatusPass:
			pass++
		case StatusWarn:
			warn++
		case StatusFail:
			fail++
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, strings.Repeat("-", 50))
	fmt.Fprintf(w, "Results: %d passed, %d warnings, %d failed\n", pass, warn, fail)

	if fail > 0 {
		return fmt.Errorf("%d check(s) failed", fail)
	}
	return nil
}

// doctorParallelism bounds concurrent checks so a slow backend is probed
// a few routes at a time.
const doctorParallelism = 3

// runChecks runs checks concurrently and returns results in check order.
func runChecks(ctx context.Context, cfg *config.Config, checks []Check) []CheckResult {
	results := make([]CheckResult, len(checks))
	var g errgroup.Group
	g.SetLimit(doctorParallelism)
	for i, check := range checks {
		g.Go(func() error {
			r := check.Fn(ctx, cfg)
			r.Name = check.Name
			results[i] = r
			return nil
		})
	}
	_ = g.Wait() // checks report through results
	return results
}

func statusIcon(s CheckStatus) string {
	switch s {
	case StatusPass:
		return "[PASS]"
	case StatusWarn:
		return "[WARN]"
	case StatusFail:
		return "[FAIL]"
	default:
		return "[????]"
	}
}

func checkConfigFile(cfgPath string, cfgErr error) func(context.Context, *config.Config) CheckResult {
	return func(_ context.Context, _ *config.Config) CheckResult {
		if cfgErr != nil {
			return CheckResult{
				Status:  StatusFail,
				Message: fmt.Sprintf("config error: %v", cfgErr),
				Fix:     "Fix " + cfgPath + " or point DESK_CONFIG at a valid file",
			}
		}
		if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
			return CheckResult{
				Status:  StatusWarn,
				Message: fmt.Sprintf("no config at %s, using defaults", cfgPath),
				Fix:     "Create the file to pin backend.base_url",
			}
		}
		return CheckResult{
			Status:  StatusPass,
			Message: fmt.Sprintf("config loaded from %s", cfgPath),
		}
	}
}

func checkLogOutput(_ context.Context, cfg *config.Config) CheckResult {
	if cfg == nil {
		return CheckResult{Status: StatusWarn, Message: "skipped (no config)"}
	}
	_, closer, err := logger.OpenOutput(cfg.Logger.Output)
	if err != nil {
		return CheckResult{
			Status:  StatusFail,
			Message: err.Error(),
			Fix:     "Set logger.output to a writable path or to stderr",
		}
	}
	closer()
	return CheckResult{Status: StatusPass, Message: "writing to " + cfg.Logger.Output}
}

func checkHistory(ctx context.Context, cfg *config.Config) CheckResult {
	if cfg == nil {
		return CheckResult{Status: StatusWarn, Message: "skipped (no config)"}
	}
	if cfg.Console.HistoryFile == "" {
		return CheckResult{Status: StatusPass, Message: "in memory only (console.history_file is empty)"}
	}
	store, err := recall.NewSQLiteStore(cfg.Console.HistoryFile)
	if err != nil {
		return CheckResult{
			Status:  StatusWarn,
			Message: err.Error(),
			Fix:     "Set console.history_file to a writable path, or leave it empty to keep recall in memory",
		}
	}
	defer store.Close()
	prior, err := store.Recent(ctx, console.RecallSurface, 0)
	if err != nil {
		return CheckResult{Status: StatusWarn, Message: err.Error()}
	}
	return CheckResult{
		Status:  StatusPass,
		Message: fmt.Sprintf("%s stored commands in %s", humanize.Comma(int64(len(prior))), cfg.Console.HistoryFile),
	}
}

// checkResource queries one resource directly, without the circuit
// breaker, so every resource gets its own verdict.
func checkResource(r domain.Resource) func(context.Context, *config.Config) CheckResult {
	return func(ctx context.Context, cfg *config.Config) CheckResult {
		if cfg == nil {
			return CheckResult{Status: StatusWarn, Message: "skipped (no config)"}
		}
		client, err := backend.NewClient(cfg.Backend, logger.Discard())
		if err != nil {
			return CheckResult{Status: StatusFail, Message: err.Error()}
		}

		ctx, cancel := context.WithTimeout(ctx, cfg.Backend.Timeout)
		defer cancel()

		start := time.Now()
		v, err := client.Query(ctx, r, nil)
		elapsed := time.Since(start).Round(time.Millisecond)
		if err != nil {
			return CheckResult{
				Status:  StatusFail,
				Message: fmt.Sprintf("GET %s: %s", client.Path(r), domain.ErrorCodeOf(err)),
				Fix:     resourceFix(err),
			}
		}
		if err := summary.CheckShape(r, v); err != nil {
			return CheckResult{
				Status:  StatusWarn,
				Message: fmt.Sprintf("GET %s answered in %s with an unexpected shape (%s)", client.Path(r), elapsed, describePayload(v)),
				Fix:     "Summaries will show zeros; compare the route's JSON with what the desk reads",
			}
		}
		return CheckResult{
			Status:  StatusPass,
			Message: fmt.Sprintf("GET %s answered in %s (%s)", client.Path(r), elapsed, describePayload(v)),
		}
	}
}

func resourceFix(err error) string {
	switch domain.ErrorCodeOf(err) {
	case domain.CodeUnknownResource:
		return "Check backend.resources against the backend's routes"
	case domain.CodeBackendUnavailable, domain.CodeTimeout:
		return "Is the backend running at backend.base_url?"
	case domain.CodeMalformedPayload:
		return "The route did not return JSON"
	default:
		return ""
	}
}

func describePayload(v any) string {
	switch t := v.(type) {
	case nil:
		return "empty"
	case []any:
		return humanize.Comma(int64(len(t))) + " records"
	case map[string]any:
		if recs := payload.Records(t, "items", "data", "agents", "portfolios", "recommendations"); len(recs) > 0 {
			return humanize.Comma(int64(len(recs))) + " records"
		}
		return humanize.Comma(int64(len(t))) + " fields"
	default:
		return "scalar"
	}
}
