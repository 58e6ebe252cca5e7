package config

import (
	"fmt"
	"net/url"
	"strings"

	"tradedesk/internal/domain"
)

// ValidationError accumulates config validation errors.
type ValidationError struct {
	Errors []string
}

func (v *ValidationError) Error() string {
	return "config validation failed:\n  - " + strings.Join(v.Errors, "\n  - ")
}

// HasErrors reports whether any validation errors have been recorded.
func (v *ValidationError) HasErrors() bool {
	return len(v.Errors) > 0
}

// Add records a formatted validation error.
func (v *ValidationError) Add(format string, args ...interface{}) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}

// Validate checks cfg for structural correctness. It returns a *ValidationError
// when one or more problems are found, allowing callers to inspect all issues.
func Validate(cfg *Config) error {
	ve := &ValidationError{}
	validateBackend(cfg, ve)
	validateSurfaces(cfg, ve)
	validateLogger(cfg, ve)
	validateTracer(cfg, ve)
	if ve.HasErrors() {
		return ve
	}
	return nil
}

func validateBackend(cfg *Config, ve *ValidationError) {
	b := cfg.Backend
	if b.BaseURL == "" {
		ve.Add("backend.base_url must not be empty")
	} else if u, err := url.Parse(b.BaseURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		ve.Add("backend.base_url must be an http(s) URL, got %q", b.BaseURL)
	}
	if b.Timeout <= 0 {
		ve.Add("backend.timeout must be > 0")
	}
	for _, r := range domain.AllResources() {
		path, ok := b.Resources[string(r)]
		switch {
		case !ok || path == "":
			ve.Add("backend.resources.%s must be set", r)
		case !strings.HasPrefix(path, "/"):
			ve.Add("backend.resources.%s must start with '/', got %q", r, path)
		}
	}
	for name := range b.Resources {
		if !isKnownResource(name) {
			ve.Add("backend.resources.%s is not a known resource", name)
		}
	}
	if b.RateLimit.RequestsPerSecond < 0 {
		ve.Add("backend.rate_limit.requests_per_second must be >= 0")
	}
	if b.RateLimit.RequestsPerSecond > 0 && b.RateLimit.Burst <= 0 {
		ve.Add("backend.rate_limit.burst must be > 0 when rate limiting is enabled")
	}
	if b.CircuitBreaker.Enabled {
		if b.CircuitBreaker.MaxFailures == 0 {
			ve.Add("backend.circuit_breaker.max_failures must be > 0 when enabled")
		}
		if b.CircuitBreaker.Timeout < 0 || b.CircuitBreaker.Interval < 0 {
			ve.Add("backend.circuit_breaker durations must be >= 0")
		}
	}
	if b.Pool.MaxIdleConns < 0 {
		ve.Add("backend.pool.max_idle_conns must be >= 0")
	}
	if b.HealthInterval < 0 {
		ve.Add("backend.health_interval must be >= 0")
	}
	if b.CacheTTL < 0 {
		ve.Add("backend.cache_ttl must be >= 0")
	}
}

func isKnownResource(name string) bool {
	for _, r := range domain.AllResources() {
		if string(r) == name {
			return true
		}
	}
	return false
}

func validateSurfaces(cfg *Config, ve *ValidationError) {
	if cfg.Chat.MaxMessages < 0 {
		ve.Add("chat.max_messages must be >= 0")
	}
	if cfg.Console.MaxEntries < 0 {
		ve.Add("console.max_entries must be >= 0")
	}
	if cfg.Console.HistoryLimit < 0 {
		ve.Add("console.history_limit must be >= 0")
	}
}

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "warning": true, "error": true,
}

var validLogFormats = map[string]bool{
	"text": true, "json": true,
}

func validateLogger(cfg *Config, ve *ValidationError) {
	if !validLogLevels[strings.ToLower(cfg.Logger.Level)] {
		ve.Add("logger.level %q is not one of debug, info, warn, error", cfg.Logger.Level)
	}
	if !validLogFormats[strings.ToLower(cfg.Logger.Format)] {
		ve.Add("logger.format %q is not one of text, json", cfg.Logger.Format)
	}
	if r := cfg.Logger.Rotation; r.MaxSizeMB < 0 || r.MaxBackups < 0 || r.MaxAgeDays < 0 {
		ve.Add("logger.rotation values must be >= 0")
	}
}

var validExporters = map[string]bool{
	"": true, "noop": true, "stdout": true,
}

func validateTracer(cfg *Config, ve *ValidationError) {
	if cfg.Tracer.Enabled && !validExporters[cfg.Tracer.Exporter] {
		ve.Add("tracer.exporter %q is not one of noop, stdout", cfg.Tracer.Exporter)
	}
	if r := cfg.Tracer.SampleRatio; cfg.Tracer.Enabled && (r <= 0 || r > 1) {
		ve.Add("tracer.sample_ratio must be in (0, 1], got %g", r)
	}
}
