package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradedesk/internal/domain"
	"tradedesk/internal/infra/config"
	"tradedesk/internal/infra/logger"
)

func newTestApp(t *testing.T, handler http.Handler) *app {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := config.Defaults()
	cfg.Backend.BaseURL = srv.URL
	cfg.Backend.RateLimit.RequestsPerSecond = 0

	a, err := wire(cfg, logger.Discard())
	require.NoError(t, err)
	return a
}

func agentsHandler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/agents/summary", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"total_agents":4,"active_agents":3,"idle_agents":1,"error_agents":0}`))
	})
	return mux
}

func TestAsk(t *testing.T) {
	a := newTestApp(t, agentsHandler())

	var out bytes.Buffer
	require.NoError(t, ask(context.Background(), &out, a, "agent status"))
	assert.Contains(t, out.String(), "Total agents: 4")
	assert.Contains(t, out.String(), "open /agents")
}

func TestAsk_Blank(t *testing.T) {
	a := newTestApp(t, agentsHandler())

	var out bytes.Buffer
	require.NoError(t, ask(context.Background(), &out, a, "   "))
	assert.Equal(t, "Please type a message.\n", out.String())
}

func TestAsk_BackendDown(t *testing.T) {
	a := newTestApp(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))

	var out bytes.Buffer
	err := ask(context.Background(), &out, a, "portfolio summary")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrBackendUnavailable)
	assert.Contains(t, out.String(), "Error fetching data")
	assert.NotContains(t, out.String(), "open /")
}

func TestCommand(t *testing.T) {
	a := newTestApp(t, agentsHandler())

	var out bytes.Buffer
	require.NoError(t, command(context.Background(), &out, a, "agents"))
	assert.Contains(t, out.String(), "Agents")
	assert.Contains(t, out.String(), "Total")
}

func TestCommand_Unknown(t *testing.T) {
	a := newTestApp(t, agentsHandler())

	var out bytes.Buffer
	err := command(context.Background(), &out, a, "frobnicate")
	assert.ErrorIs(t, err, domain.ErrUnknownCommand)
	assert.Contains(t, out.String(), "Unknown command: frobnicate")
}

func TestCommand_Blank(t *testing.T) {
	a := newTestApp(t, agentsHandler())

	err := command(context.Background(), &bytes.Buffer{}, a, "")
	assert.ErrorIs(t, err, domain.ErrEmptyInput)
}

func TestPing(t *testing.T) {
	a := newTestApp(t, agentsHandler())

	var out bytes.Buffer
	require.NoError(t, ping(context.Background(), &out, a))
	assert.Contains(t, out.String(), "answered in")
}

func TestRootCmd_RunWithConfigFlag(t *testing.T) {
	srv := httptest.NewServer(agentsHandler())
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "desk.yaml")
	cfg := "backend:\n  base_url: " + srv.URL + "\n" +
		"console:\n  history_file: \"\"\n" +
		"logger:\n  output: discard\n"
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0600))
	t.Cleanup(func() { configFlag = "" })

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetArgs([]string{"--config", path, "run", "agents"})
	require.NoError(t, root.ExecuteContext(context.Background()))
	assert.Contains(t, out.String(), "Total")
	assert.Equal(t, path, configPath())
}

func TestRootCmd_RejectsStrayArgs(t *testing.T) {
	t.Cleanup(func() { configFlag = "" })
	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"ping", "extra"})
	assert.Error(t, root.ExecuteContext(context.Background()))
}

func TestAttachRecall_PersistsAcrossRuns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	first := newTestApp(t, agentsHandler())
	first.cfg.Console.HistoryFile = path
	closeFirst := attachRecall(context.Background(), first)
	require.NoError(t, command(context.Background(), &bytes.Buffer{}, first, "agents"))
	closeFirst()

	second := newTestApp(t, agentsHandler())
	second.cfg.Console.HistoryFile = path
	closeSecond := attachRecall(context.Background(), second)
	defer closeSecond()

	assert.Equal(t, []string{"agents"}, second.executor.History())
	assert.Equal(t, "agents", second.executor.RecallUp())
}

func TestAttachRecall_Disabled(t *testing.T) {
	a := newTestApp(t, agentsHandler())
	a.cfg.Console.HistoryFile = ""
	attachRecall(context.Background(), a)()
	assert.Empty(t, a.executor.History())
}
