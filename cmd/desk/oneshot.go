package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"tradedesk/internal/adapter/tui/components"
	"tradedesk/internal/adapter/tui/theme"
	"tradedesk/internal/domain"
)

// plainWidth wraps one-shot output; lipgloss drops colors when stdout is
// not a terminal.
const plainWidth = 100

func runAsk(ctx context.Context, w io.Writer, text string) error {
	a, cleanup, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer cleanup()
	return ask(ctx, w, a, text)
}

func ask(ctx context.Context, w io.Writer, a *app, text string) error {
	p, err := a.session.Submit(text)
	if errors.Is(err, domain.ErrEmptyInput) {
		ex := a.session.Exchanges()
		fmt.Fprintln(w, ex[len(ex)-1].Text)
		return nil
	}
	if err != nil {
		return err
	}

	res := p.Run(ctx)
	ex, err := a.session.Complete(res)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, ex.Text)
	if ex.Navigate != "" {
		fmt.Fprintf(w, "%s open %s\n", theme.SymbolArrowR, ex.Navigate)
	}
	if res.Response.Failed() {
		return res.Response.Err
	}
	return nil
}

func runCommand(ctx context.Context, w io.Writer, line string) error {
	a, cleanup, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer cleanup()
	return command(ctx, w, a, line)
}

func command(ctx context.Context, w io.Writer, a *app, line string) error {
	job, err := a.executor.Submit(line)
	if errors.Is(err, domain.ErrEmptyInput) {
		return fmt.Errorf("usage: desk run COMMAND (try 'desk run help'): %w", err)
	}
	if err != nil {
		return err
	}

	res := job.Run(ctx)
	entry, err := a.executor.Complete(res)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, components.RenderBlocks(entry.Blocks, plainWidth))
	return res.Err
}

func runPing(ctx context.Context, w io.Writer) error {
	a, cleanup, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer cleanup()
	return ping(ctx, w, a)
}

func ping(ctx context.Context, w io.Writer, a *app) error {
	ctx, cancel := context.WithTimeout(ctx, a.cfg.Backend.Timeout)
	defer cancel()

	elapsed, err := a.client.Ping(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%s %s answered in %s\n", theme.SymbolPass, a.cfg.Backend.BaseURL, elapsed.Round(time.Millisecond))
	return nil
}
