// Package logging builds the zap loggers used by QS Desk. CLI subcommands log
// to stderr; the interactive TUI owns the terminal, so its logger writes to a
// file under the config directory instead.
package logging

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogFileName is the file the interactive session logs to.
const LogFileName = "qsdesk.log"

// NewCLI returns a production logger for non-interactive commands.
func NewCLI(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return cfg.Build()
}

// NewFile returns a logger appending JSON lines to dir/qsdesk.log. Any setup
// failure degrades to a Nop logger; the application never refuses to start
// because logging is unavailable.
func NewFile(dir string, verbose bool) *zap.Logger {
	if dir == "" {
		return zap.NewNop()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return zap.NewNop()
	}

	f, err := os.OpenFile(filepath.Join(dir, LogFileName), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return zap.NewNop()
	}

	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
		zapcore.Lock(f),
		level,
	)
	return zap.New(core)
}
