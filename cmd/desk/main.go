package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"tradedesk/internal/adapter/tui/desk"
	"tradedesk/internal/adapter/tui/uxerror"
	"tradedesk/internal/usecase/health"
)

// configFlag holds --config; configPath falls back to DESK_CONFIG and the
// home directory.
var configFlag string

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "desk",
		Short: "Text operator interface for the trading dashboard",
		Long: `desk opens a chat tab for plain-language questions and a console tab
for explicit commands against the trading backend. With a subcommand it
runs once and prints plain text.

Environment: DESK_* variables override the config file. They are also
read from ./.env and ~/.tradedesk/.env; the real environment wins.
  DESK_CONFIG        Config file path when --config is not given
  DESK_BACKEND_URL   Backend base URL
  DESK_HISTORY_FILE  Console history database (unset keeps it in memory)`,
		Example: `  desk
  desk ask "how are my greeks"
  desk run recs all
  desk --config ./desk.yaml doctor`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd.Context())
		},
	}
	root.PersistentFlags().StringVar(&configFlag, "config", "", "config file (default ~/.tradedesk/config.yaml)")

	root.AddCommand(
		&cobra.Command{
			Use:   "ask TEXT...",
			Short: "Ask one chat question and print the reply",
			RunE: func(cmd *cobra.Command, args []string) error {
				return runAsk(cmd.Context(), cmd.OutOrStdout(), strings.Join(args, " "))
			},
		},
		&cobra.Command{
			Use:   "run COMMAND [ARGS...]",
			Short: "Run one console command and print its output",
			RunE: func(cmd *cobra.Command, args []string) error {
				return runCommand(cmd.Context(), cmd.OutOrStdout(), strings.Join(args, " "))
			},
		},
		&cobra.Command{
			Use:   "ping",
			Short: "Check that the backend answers",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runPing(cmd.Context(), cmd.OutOrStdout())
			},
		},
		&cobra.Command{
			Use:   "doctor",
			Short: "Check config, log output, console history and every backend resource",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runDoctor(cmd.Context(), cmd.OutOrStdout())
			},
		},
	)
	return root
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	root := newRootCmd()
	cmd, err := root.ExecuteContextC(ctx)
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "%s: %s\n", cmd.Name(), uxerror.Humanize(err).Render())
	os.Exit(1)
}

func runTUI(ctx context.Context) error {
	a, cleanup, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	a.log.Info("desk starting", "backend", a.cfg.Backend.BaseURL, "breaker", a.cfg.Backend.CircuitBreaker.Enabled)

	var mon *health.Monitor
	if a.cfg.Backend.HealthInterval > 0 {
		mon = health.NewMonitor(a.client, a.cfg.Backend.HealthInterval, a.cfg.Backend.Timeout, a.log)
		mon.Start(ctx)
	}

	model := desk.New(ctx, desk.Deps{
		Chat:        a.session,
		Console:     a.executor,
		Logger:      a.log,
		Backend:     a.cfg.Backend.BaseURL,
		Health:      mon,
		DeskName:    a.cfg.Chat.AgentName,
		Prompt:      a.cfg.Console.Prompt,
		MaxMessages: a.cfg.Chat.MaxMessages,
		MaxEntries:  a.cfg.Console.MaxEntries,
	})

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	_, err = p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
