package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"tradedesk/internal/adapter/backend"
	"tradedesk/internal/adapter/recall"
	"tradedesk/internal/domain"
	"tradedesk/internal/infra/config"
	"tradedesk/internal/infra/logger"
	"tradedesk/internal/infra/tracer"
	"tradedesk/internal/usecase/chat"
	"tradedesk/internal/usecase/console"
	"tradedesk/internal/usecase/dispatch"
	"tradedesk/internal/usecase/intent"
)

// app is everything a desk command needs, wired from one config.
type app struct {
	cfg      *config.Config
	log      *slog.Logger
	backend  domain.Backend
	client   *backend.Client
	session  *chat.Session
	executor *console.Executor
}

func configPath() string {
	if configFlag != "" {
		return configFlag
	}
	if p := os.Getenv("DESK_CONFIG"); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.yaml"
	}
	return filepath.Join(home, ".tradedesk", "config.yaml")
}

// dotEnvPaths lists the .env files read before config: the working
// directory first, then the desk home.
func dotEnvPaths() []string {
	paths := []string{".env"}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".tradedesk", ".env"))
	}
	return paths
}

// bootstrap loads config and wires logger, tracer, backend and both
// surfaces. cleanup flushes traces and closes the log.
func bootstrap(ctx context.Context) (*app, func(), error) {
	if err := config.LoadDotEnv(dotEnvPaths()...); err != nil {
		return nil, nil, fmt.Errorf("env: %w", err)
	}
	cfg, err := config.Load(configPath())
	if err != nil {
		return nil, nil, fmt.Errorf("config: %w", err)
	}

	log, logCloser, err := logger.New(cfg.Logger)
	if err != nil {
		return nil, nil, fmt.Errorf("logger: %w", err)
	}

	tracerShutdown, err := tracer.Setup(ctx, cfg.Tracer)
	if err != nil {
		logCloser()
		return nil, nil, fmt.Errorf("tracer: %w", err)
	}

	a, err := wire(cfg, log)
	if err != nil {
		tracerShutdown(context.Background())
		logCloser()
		return nil, nil, err
	}

	closeRecall := attachRecall(ctx, a)

	cleanup := func() {
		closeRecall()
		if err := tracerShutdown(context.Background()); err != nil {
			log.Warn("tracer shutdown", "error", err)
		}
		logCloser()
	}
	return a, cleanup, nil
}

// attachRecall opens the console history store. Recall falls back to
// memory when the store cannot be used; the desk still starts.
func attachRecall(ctx context.Context, a *app) func() {
	path := a.cfg.Console.HistoryFile
	if path == "" {
		return func() {}
	}
	store, err := recall.NewSQLiteStore(path)
	if err != nil {
		a.log.Warn("console history unavailable", "path", path, "error", err)
		return func() {}
	}
	if n, err := store.Prune(ctx, console.RecallSurface, a.cfg.Console.HistoryLimit); err != nil {
		a.log.Warn("console history prune failed", "error", err)
	} else if n > 0 {
		a.log.Debug("console history pruned", "removed", n)
	}
	if err := a.executor.AttachRecall(ctx, store, a.cfg.Console.HistoryLimit); err != nil {
		a.log.Warn("console history not loaded", "path", path, "error", err)
	}
	return func() {
		if err := store.Close(); err != nil {
			a.log.Warn("console history close", "error", err)
		}
	}
}

// wire builds the backend stack and both surfaces from cfg.
func wire(cfg *config.Config, log *slog.Logger) (*app, error) {
	be, client, err := backend.New(cfg.Backend, log)
	if err != nil {
		return nil, fmt.Errorf("backend: %w", err)
	}

	dispatcher := dispatch.New(be, log,
		dispatch.WithTimeout(cfg.Backend.Timeout),
		dispatch.WithResearchPrefix(cfg.Backend.ResearchPrefix),
	)
	executor := console.NewExecutor(be, log,
		console.WithTimeout(cfg.Backend.Timeout),
		console.WithResearchPrefix(cfg.Backend.ResearchPrefix),
	)

	return &app{
		cfg:      cfg,
		log:      log,
		backend:  be,
		client:   client,
		session:  chat.NewSession(intent.NewDefault(), dispatcher),
		executor: executor,
	}, nil
}
