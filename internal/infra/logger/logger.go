// Package logger builds the desk's slog logger. The TUI owns the terminal,
// so interactive sessions log to a rotated file.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"

	"tradedesk/internal/infra/config"
)

// New creates the configured logger. The returned closer flushes and
// closes file outputs.
func New(cfg config.LoggerConfig) (*slog.Logger, func() error, error) {
	writer, closer, err := openRotating(cfg.Output, cfg.Rotation)
	if err != nil {
		return nil, nil, fmt.Errorf("open log output: %w", err)
	}

	opts := &slog.HandlerOptions{Level: parseLevel(cfg.Level)}
	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		handler = slog.NewJSONHandler(writer, opts)
	} else {
		handler = slog.NewTextHandler(writer, opts)
	}
	return slog.New(handler).With("app", "tradedesk"), closer, nil
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func parseLevel(s string) slog.Level {
	var level slog.Level
	if strings.EqualFold(s, "warning") {
		s = "warn"
	}
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func isStream(output string) bool {
	switch strings.ToLower(output) {
	case "", "stdout", "stderr", "discard":
		return true
	}
	return false
}

// OpenOutput resolves output to a writer: "stdout", "stderr" (or empty),
// "discard", or a file path opened for append with its directory created.
func OpenOutput(output string) (io.Writer, func() error, error) {
	noop := func() error { return nil }

	switch strings.ToLower(output) {
	case "stdout":
		return os.Stdout, noop, nil
	case "stderr", "":
		return os.Stderr, noop, nil
	case "discard":
		return io.Discard, noop, nil
	}

	if err := os.MkdirAll(filepath.Dir(output), 0700); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(output, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

// openRotating is OpenOutput with size-based rotation for file outputs.
// The file is opened once up front so a bad path fails at startup rather
// than on the first log line.
func openRotating(output string, rot config.RotationConfig) (io.Writer, func() error, error) {
	if isStream(output) || rot.MaxSizeMB <= 0 {
		return OpenOutput(output)
	}

	_, closeProbe, err := OpenOutput(output)
	if err != nil {
		return nil, nil, err
	}
	if err := closeProbe(); err != nil {
		return nil, nil, err
	}

	l := &lumberjack.Logger{
		Filename:   output,
		MaxSize:    rot.MaxSizeMB,
		MaxBackups: rot.MaxBackups,
		MaxAge:     rot.MaxAgeDays,
		Compress:   rot.Compress,
	}
	return l, l.Close, nil
}
