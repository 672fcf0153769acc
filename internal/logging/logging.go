// Package logging constructs the zap logger used for diagnostics.
//
// Logging is strictly observational: it never affects the digest content.
// Logs go to stderr so the output stream stays clean when writing to
// stdout-adjacent destinations.
package logging

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds logging configuration.
type Config struct {
	// Level is the minimum level to emit.
	Level zapcore.Level

	// Format selects the encoder: "console" or "json".
	Format string
}

// NewDefaultConfig returns console logging at info level; verbose runs
// lower the level to debug.
func NewDefaultConfig(verbose bool) Config {
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	return Config{Level: level, Format: "console"}
}

// New builds a logger from config.
func New(cfg Config) (*zap.Logger, error) {
	encoder, err := newEncoder(cfg.Format)
	if err != nil {
		return nil, err
	}

	core := zapcore.NewCore(encoder, zapcore.Lock(os.Stderr), cfg.Level)
	return zap.New(core), nil
}

func newEncoder(format string) (zapcore.Encoder, error) {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	switch format {
	case "", "console":
		encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		return zapcore.NewConsoleEncoder(encoderCfg), nil
	case "json":
		return zapcore.NewJSONEncoder(encoderCfg), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
}
