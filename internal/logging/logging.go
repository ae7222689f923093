// Package logging builds the file-backed zap logger; the terminal belongs to the UI so nothing goes to stdout.
package logging

import (
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"pixgrip/internal/config"
)

// New returns a logger writing JSON lines to a rotated file and a cleanup func that flushes it.
// An empty file name disables logging.
func New(cfg config.LogSettings) (*zap.Logger, func() error, error) {
	if cfg.File == "" {
		return zap.NewNop(), func() error { return nil }, nil
	}

	if dir := filepath.Dir(cfg.File); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, nil, err
		}
	}

	rotator := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   true,
		LocalTime:  true,
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(rotator),
		ParseLevel(cfg.Level),
	)
	logger := zap.New(core, zap.AddCaller())

	cleanup := func() error {
		_ = logger.Sync()
		return rotator.Close()
	}
	return logger, cleanup, nil
}

// ParseLevel maps a config string to a zap level, defaulting to info
func ParseLevel(s string) zapcore.Level {
	switch strings.ToLower(s) {
	case "debug":
		return zap.DebugLevel
	case "warn", "warning":
		return zap.WarnLevel
	case "error":
		return zap.ErrorLevel
	default:
		return zap.InfoLevel
	}
}
