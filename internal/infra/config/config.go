package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"tradedesk/internal/domain"
)

// Config is the top-level application configuration.
type Config struct {
	Backend BackendConfig `yaml:"backend"`
	Chat    ChatConfig    `yaml:"chat"`
	Console ConsoleConfig `yaml:"console"`
	Logger  LoggerConfig  `yaml:"logger"`
	Tracer  TracerConfig  `yaml:"tracer"`
}

// BackendConfig describes the trading backend's JSON query API.
type BackendConfig struct {
	BaseURL        string               `yaml:"base_url"`
	Timeout        time.Duration        `yaml:"timeout"` // upper bound for one query, including queueing
	ResearchPrefix string               `yaml:"research_prefix"`
	Resources      map[string]string    `yaml:"resources"` // resource name -> path under base_url
	RateLimit      RateLimitConfig      `yaml:"rate_limit"`
	CircuitBreaker CircuitBreakerConfig `yaml:"circuit_breaker"`
	Pool           PoolConfig           `yaml:"pool"`
	HealthInterval time.Duration        `yaml:"health_interval"` // TUI reachability probe period; 0 disables
	CacheTTL       time.Duration        `yaml:"cache_ttl"`       // identical queries within this window reuse the response; 0 disables
}

// RateLimitConfig throttles outgoing backend requests. Zero disables it.
type RateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`
}

// CircuitBreakerConfig configures fail-fast behaviour after repeated backend failures.
type CircuitBreakerConfig struct {
	Enabled     bool          `yaml:"enabled"`
	MaxFailures uint32        `yaml:"max_failures"`
	Timeout     time.Duration `yaml:"timeout"`  // open -> half-open delay
	Interval    time.Duration `yaml:"interval"` // closed-state counter reset period
}

// PoolConfig sizes the HTTP connection pool.
type PoolConfig struct {
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	IdleConnTimeout time.Duration `yaml:"idle_conn_timeout"`
}

// ChatConfig holds chat surface settings.
type ChatConfig struct {
	AgentName   string `yaml:"agent_name"`
	MaxMessages int    `yaml:"max_messages"` // rendered messages kept on screen; 0 = unlimited
}

// ConsoleConfig holds console surface settings.
type ConsoleConfig struct {
	Prompt       string `yaml:"prompt"`
	MaxEntries   int    `yaml:"max_entries"`   // rendered entries kept on screen; 0 = unlimited
	HistoryFile  string `yaml:"history_file"`  // SQLite recall store; "" keeps recall in memory
	HistoryLimit int    `yaml:"history_limit"` // stored commands kept and reloaded; 0 = unlimited
}

// LoggerConfig holds logging settings.
type LoggerConfig struct {
	Level    string         `yaml:"level"`
	Format   string         `yaml:"format"`
	Output   string         `yaml:"output"`
	Rotation RotationConfig `yaml:"rotation"`
}

// RotationConfig rotates file log outputs. MaxSizeMB 0 disables rotation.
type RotationConfig struct {
	MaxSizeMB  int  `yaml:"max_size_mb"`
	MaxBackups int  `yaml:"max_backups"`
	MaxAgeDays int  `yaml:"max_age_days"`
	Compress   bool `yaml:"compress"`
}

// TracerConfig holds tracing settings.
type TracerConfig struct {
	Enabled     bool    `yaml:"enabled"`
	Exporter    string  `yaml:"exporter"`
	Output      string  `yaml:"output"`       // stdout exporter target: "stdout", "stderr" or a file path
	SampleRatio float64 `yaml:"sample_ratio"` // fraction of root spans kept, (0, 1]
}

// defaultLogPath keeps TUI log lines off the terminal.
func defaultLogPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "stderr"
	}
	return filepath.Join(home, ".tradedesk", "desk.log")
}

// DefaultResources maps each backend resource to its default path.
func DefaultResources() map[string]string {
	return map[string]string{
		string(domain.ResourceAgentSummary):    "/api/agents/summary",
		string(domain.ResourcePortfolios):      "/api/portfolios",
		string(domain.ResourceCapital):         "/api/capital",
		string(domain.ResourceRecommendations): "/api/recommendations",
		string(domain.ResourceWorkflowStatus):  "/api/workflow/status",
		string(domain.ResourcePerformance):     "/api/performance",
	}
}

// Defaults returns a Config with sensible defaults.
func Defaults() *Config {
	return &Config{
		Backend: BackendConfig{
			BaseURL:        "http://localhost:8000",
			Timeout:        15 * time.Second,
			ResearchPrefix: "research-",
			Resources:      DefaultResources(),
			RateLimit: RateLimitConfig{
				RequestsPerSecond: 5,
				Burst:             5,
			},
			CircuitBreaker: CircuitBreakerConfig{
				Enabled:     true,
				MaxFailures: 5,
				Timeout:     30 * time.Second,
				Interval:    60 * time.Second,
			},
			Pool: PoolConfig{
				MaxIdleConns:    10,
				IdleConnTimeout: 90 * time.Second,
			},
			HealthInterval: 30 * time.Second,
		},
		Chat: ChatConfig{
			AgentName:   "Desk",
			MaxMessages: 500,
		},
		Console: ConsoleConfig{
			Prompt:       "$ ",
			MaxEntries:   200,
			HistoryLimit: 1000,
		},
		Logger: LoggerConfig{
			Level:  "info",
			Format: "text",
			Output: defaultLogPath(),
			Rotation: RotationConfig{
				MaxSizeMB:  10,
				MaxBackups: 3,
				MaxAgeDays: 28,
			},
		},
		Tracer: TracerConfig{
			Enabled:     false,
			Exporter:    "noop",
			Output:      filepath.Join(filepath.Dir(defaultLogPath()), "traces.json"),
			SampleRatio: 1,
		},
	}
}

// Load reads a YAML config file and applies env var overrides.
// A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			ApplyEnvOverrides(cfg)
			if err := Validate(cfg); err != nil {
				return nil, err
			}
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	// Partial resource maps keep the defaults for unspecified resources.
	for name, path := range DefaultResources() {
		if _, ok := cfg.Backend.Resources[name]; !ok {
			if cfg.Backend.Resources == nil {
				cfg.Backend.Resources = map[string]string{}
			}
			cfg.Backend.Resources[name] = path
		}
	}

	ApplyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnvOverrides maps DESK_* env vars to config fields.
func ApplyEnvOverrides(cfg *Config) {
	if v := os.Getenv("DESK_BACKEND_URL"); v != "" {
		cfg.Backend.BaseURL = v
	}
	if v := os.Getenv("DESK_BACKEND_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.Backend.Timeout = d
		}
	}
	if v := os.Getenv("DESK_RESEARCH_PREFIX"); v != "" {
		cfg.Backend.ResearchPrefix = v
	}
	if v := os.Getenv("DESK_RATE_LIMIT_RPS"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 {
			cfg.Backend.RateLimit.RequestsPerSecond = f
		}
	}
	if v := os.Getenv("DESK_CIRCUIT_BREAKER_ENABLED"); v == "false" {
		cfg.Backend.CircuitBreaker.Enabled = false
	}
	if v := os.Getenv("DESK_CHAT_AGENT_NAME"); v != "" {
		cfg.Chat.AgentName = v
	}
	if v, ok := os.LookupEnv("DESK_HISTORY_FILE"); ok {
		cfg.Console.HistoryFile = v
	}
	if v := os.Getenv("DESK_LOGGER_LEVEL"); v != "" {
		cfg.Logger.Level = v
	}
	if v := os.Getenv("DESK_LOGGER_FORMAT"); v != "" {
		cfg.Logger.Format = v
	}
	if v := os.Getenv("DESK_LOGGER_OUTPUT"); v != "" {
		cfg.Logger.Output = v
	}
	if v := os.Getenv("DESK_TRACER_ENABLED"); v == "true" {
		cfg.Tracer.Enabled = true
	}
	if v := os.Getenv("DESK_TRACER_EXPORTER"); v != "" {
		cfg.Tracer.Exporter = v
	}
}
