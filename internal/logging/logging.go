package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const defaultLogFile = "mizu.log"

// Options controls where and how verbosely the shell logs.
type Options struct {
	FilePath    string
	Level       string // "debug", "info", "warn", "error"
	Development bool
}

var (
	mu           sync.RWMutex
	logger       = zap.NewNop()
	tracer       = zap.NewNop()
	traceEnabled bool
	logPath      = defaultLogFile
)

// Configure builds the shared loggers. Empty paths fall back to the default
// file and missing directories are created. The terminal belongs to the UI, so
// every sink is a file.
func Configure(opts Options) error {
	path := strings.TrimSpace(opts.FilePath)
	if path == "" {
		path = defaultLogFile
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create log directory: %w", err)
	}
	level, err := parseLevel(opts.Level)
	if err != nil {
		return err
	}
	base, err := build(path, zap.NewAtomicLevelAt(level), opts.Development)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	trace, err := build(path, zap.NewAtomicLevelAt(zapcore.DebugLevel), false)
	if err != nil {
		return fmt.Errorf("build tracer: %w", err)
	}
	mu.Lock()
	logger = base
	tracer = trace.Named("trace")
	logPath = path
	mu.Unlock()
	return nil
}

func build(path string, level zap.AtomicLevel, development bool) (*zap.Logger, error) {
	cfg := zap.Config{
		Level:             level,
		Development:       development,
		Encoding:          "json",
		EncoderConfig:     encoderConfig(),
		OutputPaths:       []string{path},
		ErrorOutputPaths:  []string{path},
		DisableStacktrace: !development,
	}
	return cfg.Build()
}

func parseLevel(level string) (zapcore.Level, error) {
	if strings.TrimSpace(level) == "" {
		return zapcore.InfoLevel, nil
	}
	var l zapcore.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return zapcore.InfoLevel, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return l, nil
}

func encoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
}

// Use swaps the shared logger, returning a func that restores the previous one.
// Tests pair it with zaptest/observer.
func Use(l *zap.Logger) func() {
	if l == nil {
		l = zap.NewNop()
	}
	mu.Lock()
	prevLogger, prevTracer := logger, tracer
	logger, tracer = l, l.Named("trace")
	mu.Unlock()
	return func() {
		mu.Lock()
		logger, tracer = prevLogger, prevTracer
		mu.Unlock()
	}
}

// L returns the shared logger.
func L() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// Path reports the active log file.
func Path() string {
	mu.RLock()
	defer mu.RUnlock()
	return logPath
}

// Error records err at error level. Nil errors are ignored.
func Error(err error, fields ...zap.Field) {
	if err == nil {
		return
	}
	L().Error(err.Error(), append(fields, zap.Error(err))...)
}

func Warn(msg string, fields ...zap.Field) {
	L().Warn(msg, fields...)
}

func Info(msg string, fields ...zap.Field) {
	L().Info(msg, fields...)
}

func Debug(msg string, fields ...zap.Field) {
	L().Debug(msg, fields...)
}

// Sync flushes buffered entries.
func Sync() {
	mu.RLock()
	l, t := logger, tracer
	mu.RUnlock()
	_ = l.Sync()
	_ = t.Sync()
}

// SetTraceEnabled toggles emission of structured trace entries.
func SetTraceEnabled(enabled bool) {
	mu.Lock()
	traceEnabled = enabled
	mu.Unlock()
}

// TraceEnabled reports whether trace entries are written.
func TraceEnabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return traceEnabled
}

// Trace appends a structured entry to the shared log when tracing is enabled.
func Trace(event string, payload interface{}) {
	mu.RLock()
	enabled, t := traceEnabled, tracer
	mu.RUnlock()
	if !enabled {
		return
	}
	if payload == nil {
		t.Debug(event)
		return
	}
	t.Debug(event, zap.Any("payload", payload))
}
