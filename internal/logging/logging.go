// Package logging builds the zap loggers used by the command line tool.
package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config describes where log output goes and how much of it there is
type Config struct {
	// Level is one of debug, info, warn or error. Debug overrides it.
	Level string
	Debug bool

	// File, when set, receives the log instead of Stderr and is rotated
	// once it grows past MaxSizeMB megabytes.
	File       string
	MaxSizeMB  int
	MaxBackups int

	// Stderr defaults to os.Stderr
	Stderr io.Writer
}

// New builds a logger writing `[time] [LEVEL] message` lines
func New(cfg Config) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if cfg.Level != "" {
		if err := level.Set(cfg.Level); err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
		}
	}
	if cfg.Debug {
		level = zapcore.DebugLevel
	}

	var sink zapcore.WriteSyncer
	switch {
	case cfg.File != "":
		maxSize := cfg.MaxSizeMB
		if maxSize <= 0 {
			maxSize = 10
		}
		sink = zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    maxSize,
			MaxBackups: cfg.MaxBackups,
		})
	case cfg.Stderr != nil:
		sink = zapcore.AddSync(cfg.Stderr)
	default:
		sink = zapcore.Lock(os.Stderr)
	}

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig()), sink, level)
	return zap.New(core), nil
}

func encoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:          "time",
		LevelKey:         "level",
		MessageKey:       "msg",
		StacktraceKey:    "stacktrace",
		LineEnding:       zapcore.DefaultLineEnding,
		EncodeTime:       bracketTime,
		EncodeLevel:      bracketLevel,
		EncodeDuration:   zapcore.StringDurationEncoder,
		ConsoleSeparator: " ",
	}
}

func bracketTime(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString("[" + t.Format("2006-01-02 15:04:05") + "]")
}

func bracketLevel(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString("[" + l.CapitalString() + "]")
}
