package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps zap.Logger so components can be handed a named child.
type Logger struct {
	*zap.Logger
}

// Config selects the level, encoder and sinks.
type Config struct {
	Level       string // "debug", "info", "warn", "error"
	Development bool
	OutputPaths []string // defaults to stderr; stdout belongs to the operator console
}

// New builds a logger from cfg.
func New(cfg Config) (*Logger, error) {
	level, err := parseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	outputs := cfg.OutputPaths
	if len(outputs) == 0 {
		outputs = []string{"stderr"}
	}

	zapCfg := zap.Config{
		Level:             zap.NewAtomicLevelAt(level),
		Development:       cfg.Development,
		Encoding:          encodingFormat(cfg.Development),
		EncoderConfig:     encoderConfig(cfg.Development),
		OutputPaths:       outputs,
		ErrorOutputPaths:  []string{"stderr"},
		DisableStacktrace: !cfg.Development,
	}

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, err
	}
	return &Logger{Logger: logger}, nil
}

// NewNop returns a logger that discards everything.
func NewNop() *Logger {
	return &Logger{Logger: zap.NewNop()}
}

// Named returns a child logger scoped to a component.
func (l *Logger) Named(name string) *Logger {
	return &Logger{Logger: l.Logger.Named(name)}
}

// With returns a child logger carrying the given fields.
func (l *Logger) With(fields ...zap.Field) *Logger {
	return &Logger{Logger: l.Logger.With(fields...)}
}

func parseLevel(level string) (zapcore.Level, error) {
	var l zapcore.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return zapcore.InfoLevel, err
	}
	return l, nil
}

func encodingFormat(development bool) string {
	if development {
		return "console"
	}
	return "json"
}

// encoderConfig uses short keys and colour for a developer's terminal, and
// long keys with ISO8601 timestamps for log shipping.
func encoderConfig(development bool) zapcore.EncoderConfig {
	enc := zapcore.EncoderConfig{
		FunctionKey:    zapcore.OmitKey,
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
	}

	if development {
		enc.TimeKey, enc.LevelKey, enc.NameKey = "T", "L", "N"
		enc.CallerKey, enc.MessageKey, enc.StacktraceKey = "C", "M", "S"
		enc.EncodeLevel = zapcore.CapitalColorLevelEncoder
		enc.EncodeDuration = zapcore.StringDurationEncoder
		return enc
	}

	enc.TimeKey, enc.LevelKey, enc.NameKey = "timestamp", "level", "logger"
	enc.CallerKey, enc.MessageKey, enc.StacktraceKey = "caller", "message", "stacktrace"
	return enc
}
