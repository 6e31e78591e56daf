// File: internal/logger/logger.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Process-wide zerolog logger with level/format/output configuration.

package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Config holds logger configuration
type Config struct {
	Level  string `mapstructure:"level" validate:"omitempty,oneof=DEBUG INFO WARN ERROR debug info warn error"`
	Format string `mapstructure:"format" validate:"omitempty,oneof=text json"`
	Output string `mapstructure:"output"` // stdout, stderr, or file path
}

var (
	mu     sync.RWMutex
	output io.Writer = os.Stderr
	format           = "text"
	level            = zerolog.InfoLevel
	root   zerolog.Logger
)

// logFile is the file Init opened, closed when output is replaced.
var logFile *os.File

func init() {
	reconfigure()
}

// reconfigure rebuilds the root logger; callers hold no lock.
func reconfigure() {
	mu.Lock()
	defer mu.Unlock()
	w := output
	if format == "text" {
		w = zerolog.ConsoleWriter{Out: output, TimeFormat: time.RFC3339, NoColor: true}
	}
	root = zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// Init applies cfg. Empty fields keep their current value.
func Init(cfg Config) error {
	if cfg.Output != "" {
		switch strings.ToLower(cfg.Output) {
		case "stdout":
			setOutput(os.Stdout, nil)
		case "stderr":
			setOutput(os.Stderr, nil)
		default:
			f, err := os.OpenFile(cfg.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
			if err != nil {
				return fmt.Errorf("failed to open log file %q: %w", cfg.Output, err)
			}
			setOutput(f, f)
		}
	}
	if cfg.Level != "" {
		if err := SetLevel(cfg.Level); err != nil {
			return err
		}
	}
	if cfg.Format != "" {
		if err := SetFormat(cfg.Format); err != nil {
			return err
		}
	}
	reconfigure()
	return nil
}

// InitWithWriter points the logger at w. Used by tests.
func InitWithWriter(w io.Writer, lvl, fmtName string) {
	setOutput(w, nil)
	_ = SetLevel(lvl)
	_ = SetFormat(fmtName)
	reconfigure()
}

// setOutput swaps the writer and closes a log file opened by an earlier Init.
// The root logger still points at the old writer until reconfigure runs.
func setOutput(w io.Writer, f *os.File) {
	mu.Lock()
	prev := logFile
	output, logFile = w, f
	mu.Unlock()
	if prev != nil && prev != f {
		_ = prev.Close()
	}
}

// SetLevel sets the minimum log level (DEBUG, INFO, WARN, ERROR).
func SetLevel(lvl string) error {
	var l zerolog.Level
	switch strings.ToUpper(lvl) {
	case "DEBUG":
		l = zerolog.DebugLevel
	case "INFO":
		l = zerolog.InfoLevel
	case "WARN":
		l = zerolog.WarnLevel
	case "ERROR":
		l = zerolog.ErrorLevel
	default:
		return fmt.Errorf("logger: unknown level %q", lvl)
	}
	mu.Lock()
	level = l
	mu.Unlock()
	reconfigure()
	return nil
}

// SetFormat selects "text" (console) or "json" output.
func SetFormat(f string) error {
	f = strings.ToLower(f)
	if f != "text" && f != "json" {
		return fmt.Errorf("logger: unknown format %q", f)
	}
	mu.Lock()
	format = f
	mu.Unlock()
	reconfigure()
	return nil
}

// L returns the current root logger.
func L() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return root
}

// Component returns a child logger tagged with component=name.
func Component(name string) zerolog.Logger {
	return L().With().Str("component", name).Logger()
}
