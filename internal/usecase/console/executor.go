// Package console runs explicit operator commands and renders their results
// as typed blocks.
//
// The Executor is a two-state machine (idle, running) owned by a single
// event loop. Submit opens a pending entry and hands back a Job; the Job runs
// off the loop; Complete appends the finished entry and returns to idle.
package console

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel/trace"

	"tradedesk/internal/domain"
	"tradedesk/internal/infra/tracer"
	"tradedesk/internal/usecase/dispatch"
	"tradedesk/internal/usecase/history"
	"tradedesk/internal/usecase/summary"
)

// DefaultTimeout bounds a command when no WithTimeout option is given.
const DefaultTimeout = 15 * time.Second

// State is the executor's run state.
type State int

const (
	StateIdle State = iota
	StateRunning
)

func (s State) String() string {
	if s == StateRunning {
		return "running"
	}
	return "idle"
}

// RecallSurface is the surface name console submissions are stored under.
const RecallSurface = "console"

// Job is a submitted command awaiting execution.
type Job struct {
	seq     uint64
	Command string
	env     env
	cmd     *Command
	args    []string
	logger  *slog.Logger
	recall  domain.RecallStore
}

// Result carries a finished command back to the event loop.
type Result struct {
	seq    uint64
	Blocks []domain.Block
	Err    error
}

// Run executes the command. It is safe to call off the event loop and always
// returns: failures and panics become a single error block.
func (j *Job) Run(ctx context.Context) (res Result) {
	res.seq = j.seq
	name, _ := parse(j.Command)

	ctx, span := tracer.StartSpan(ctx, "console.command",
		trace.WithAttributes(tracer.StringAttr("command", name)),
	)
	defer span.End()

	defer func() {
		if r := recover(); r != nil {
			err := domain.NewDomainError("console.Run", domain.ErrBackendUnavailable, fmt.Sprintf("panic: %v", r))
			tracer.RecordError(span, err)
			res.Blocks = []domain.Block{domain.NewError(dispatch.FailureText(err))}
			res.Err = err
		}
	}()

	if j.recall != nil {
		if err := j.recall.Append(ctx, RecallSurface, j.Command); err != nil && j.logger != nil {
			j.logger.Warn("console recall not saved", "error", err)
		}
	}

	if j.cmd == nil {
		res.Err = domain.NewDomainError("console.Run", domain.ErrUnknownCommand, name)
		res.Blocks = unknownCommandBlocks(name)
		tracer.RecordError(span, res.Err)
		return res
	}
	if len(j.args) > j.cmd.MaxArgs {
		res.Err = domain.NewDomainError("console.Run", domain.ErrInvalidInput, j.cmd.Usage)
		res.Blocks = usageBlocks(*j.cmd)
		tracer.RecordError(span, res.Err)
		return res
	}

	blocks, err := j.cmd.run(ctx, j.env, j.args)
	if err != nil {
		if j.logger != nil {
			j.logger.Warn("console command failed",
				"command", name,
				"resource", string(j.cmd.Resource),
				"error", err,
				"code", string(domain.ErrorCodeOf(err)),
			)
		}
		tracer.RecordError(span, err)
		res.Err = err
		res.Blocks = []domain.Block{domain.NewError(dispatch.FailureText(err))}
		return res
	}
	if len(blocks) == 0 {
		blocks = []domain.Block{domain.NewText("Done.")}
	}
	tracer.SetOK(span)
	res.Blocks = blocks
	return res
}

// Option configures an Executor.
type Option func(*Executor)

// WithTimeout bounds each backend query.
func WithTimeout(timeout time.Duration) Option {
	return func(e *Executor) {
		if timeout > 0 {
			e.timeout = timeout
		}
	}
}

// WithResearchPrefix sets the portfolio id prefix that marks research
// portfolios.
func WithResearchPrefix(prefix string) Option {
	return func(e *Executor) { e.researchPrefix = prefix }
}

// WithCommands replaces the command table.
func WithCommands(cmds []Command) Option {
	return func(e *Executor) { e.commands = append([]Command(nil), cmds...) }
}

// View is a read-only snapshot for renderers.
type View struct {
	Entries []domain.TerminalEntry
	Pending *domain.TerminalEntry // nil when idle
	Input   string
	Running bool
	Cursor  int // recall index; equals len(history) when not recalling
}

// Executor is the console surface state.
type Executor struct {
	backend        domain.Backend
	logger         *slog.Logger
	timeout        time.Duration
	researchPrefix string
	commands       []Command

	entries []domain.TerminalEntry
	pending *Job
	input   string
	history history.Log
	recall  domain.RecallStore
	seq     uint64
}

// NewExecutor creates an idle Executor with the default command table.
func NewExecutor(backend domain.Backend, logger *slog.Logger, opts ...Option) *Executor {
	e := &Executor{
		backend:  backend,
		logger:   logger,
		timeout:  DefaultTimeout,
		commands: DefaultCommands(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// State returns idle or running.
func (e *Executor) State() State {
	if e.pending != nil {
		return StateRunning
	}
	return StateIdle
}

// Submit starts command. It is accepted only while idle; otherwise it is a
// no-op returning ErrSurfaceBusy. Blank input is ignored with ErrEmptyInput.
// An accepted command is recorded for recall, the input buffer is cleared
// and a pending entry is opened.
func (e *Executor) Submit(command string) (*Job, error) {
	if e.pending != nil {
		return nil, domain.NewDomainError("console.Submit", domain.ErrSurfaceBusy, "")
	}
	trimmed := strings.TrimSpace(command)
	if trimmed == "" {
		return nil, domain.NewDomainError("console.Submit", domain.ErrEmptyInput, "")
	}

	e.history.Append(trimmed)
	e.input = ""
	e.seq++

	name, args := parse(trimmed)
	job := &Job{
		seq:     e.seq,
		Command: trimmed,
		args:    args,
		logger:  e.logger,
		recall:  e.recall,
		env: env{
			query:          e.query,
			researchPrefix: e.researchPrefix,
			history:        e.history.Entries(),
			commands:       append([]Command(nil), e.commands...),
		},
	}
	if c, ok := e.lookup(name); ok {
		job.cmd = &c
	}
	e.pending = job
	return job, nil
}

func (e *Executor) query(ctx context.Context, r domain.Resource, params map[string]string) (any, error) {
	return summary.Query(ctx, e.backend, e.timeout, r, params)
}

func (e *Executor) lookup(name string) (Command, bool) {
	for _, c := range e.commands {
		if c.Name == name {
			return c, true
		}
	}
	return Command{}, false
}

// Complete attaches the result to the pending entry, appends it to the
// scrollback and returns to idle. A result for anything other than the
// pending job is rejected and changes nothing.
func (e *Executor) Complete(res Result) (domain.TerminalEntry, error) {
	if e.pending == nil || res.seq != e.pending.seq {
		return domain.TerminalEntry{}, domain.NewDomainError("console.Complete", domain.ErrInvalidInput, "no matching command in flight")
	}
	blocks := res.Blocks
	if len(blocks) == 0 {
		blocks = []domain.Block{domain.NewText("Done.")}
	}
	entry := domain.TerminalEntry{Command: e.pending.Command, Blocks: append([]domain.Block(nil), blocks...)}
	e.entries = append(e.entries, entry)
	e.pending = nil
	return entry, nil
}

// Entries returns a copy of the scrollback, oldest first.
func (e *Executor) Entries() []domain.TerminalEntry {
	return append([]domain.TerminalEntry(nil), e.entries...)
}

// Pending returns the in-flight entry (command only, no blocks yet).
func (e *Executor) Pending() (domain.TerminalEntry, bool) {
	if e.pending == nil {
		return domain.TerminalEntry{}, false
	}
	return domain.TerminalEntry{Command: e.pending.Command}, true
}

// Input returns the input buffer.
func (e *Executor) Input() string { return e.input }

// SetInput replaces the input buffer as the operator types.
func (e *Executor) SetInput(s string) { e.input = s }

// RecallUp replaces the input buffer with the previous submission.
func (e *Executor) RecallUp() string {
	e.input = e.history.Up(e.input)
	return e.input
}

// RecallDown replaces the input buffer with the next submission, or clears
// it when moving past the newest.
func (e *Executor) RecallDown() string {
	e.input = e.history.Down()
	return e.input
}

// AttachRecall loads up to limit stored submissions ahead of this session's
// and saves every later submission to store. Call it before the first
// Submit.
func (e *Executor) AttachRecall(ctx context.Context, store domain.RecallStore, limit int) error {
	prior, err := store.Recent(ctx, RecallSurface, limit)
	if err != nil {
		return err
	}
	e.history.Seed(prior)
	e.recall = store
	return nil
}

// History returns every submitted command, duplicates included.
func (e *Executor) History() []string { return e.history.Entries() }

// Commands returns the command table.
func (e *Executor) Commands() []Command { return append([]Command(nil), e.commands...) }

// Suggest completes a command-name prefix.
func (e *Executor) Suggest(prefix string) []string { return Suggest(e.commands, prefix) }

// Snapshot returns the renderer view.
func (e *Executor) Snapshot() View {
	v := View{
		Entries: e.Entries(),
		Input:   e.input,
		Running: e.pending != nil,
		Cursor:  e.history.Cursor(),
	}
	if p, ok := e.Pending(); ok {
		v.Pending = &p
	}
	return v
}
