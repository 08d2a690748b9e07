package logger

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Leveled logger used across the donation service.
// - thin package-level API over a zap SugaredLogger
// - provides Debug/Info/Warn/Error/Fatal variants and Init(level)

var (
	mu    sync.RWMutex
	atom  = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	sugar = newSugar(zapcore.Lock(os.Stdout))
)

func newSugar(w zapcore.WriteSyncer) *zap.SugaredLogger {
	enc := zap.NewProductionEncoderConfig()
	enc.EncodeTime = zapcore.ISO8601TimeEncoder
	enc.EncodeLevel = zapcore.CapitalLevelEncoder
	enc.EncodeDuration = zapcore.StringDurationEncoder
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(enc), w, atom)
	return zap.New(core).Sugar()
}

// Init sets the global log level (case-insensitive: debug, info, warn, error, fatal).
// Call early during startup. Default level is Info.
func Init(l string) {
	s := strings.ToLower(strings.TrimSpace(l))
	switch s {
	case "debug":
		atom.SetLevel(zapcore.DebugLevel)
	case "warn", "warning":
		atom.SetLevel(zapcore.WarnLevel)
	case "error":
		atom.SetLevel(zapcore.ErrorLevel)
	case "fatal":
		atom.SetLevel(zapcore.FatalLevel)
	default:
		atom.SetLevel(zapcore.InfoLevel)
	}
}

func get() *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	return sugar
}

// setOutput swaps the sink; the level stays shared.
func setOutput(w zapcore.WriteSyncer) *zap.SugaredLogger {
	mu.Lock()
	defer mu.Unlock()
	prev := sugar
	sugar = newSugar(w)
	return prev
}

func Debugf(format string, v ...interface{}) { get().Debugf(format, v...) }
func Infof(format string, v ...interface{})  { get().Infof(format, v...) }
func Warnf(format string, v ...interface{})  { get().Warnf(format, v...) }
func Errorf(format string, v ...interface{}) { get().Errorf(format, v...) }

// Fatalf logs regardless of level and exits the process.
func Fatalf(format string, v ...interface{}) { get().Fatalf(format, v...) }

// Println kept for brief messages (maps to Info)
func Println(v ...interface{}) {
	get().Info(strings.TrimSuffix(fmt.Sprintln(v...), "\n"))
}

// Debug/Info/Warn/Error helpers that accept a single string
func Debug(v string) { Debugf("%s", v) }
func Info(v string)  { Infof("%s", v) }
func Warn(v string)  { Warnf("%s", v) }
func Error(v string) { Errorf("%s", v) }

// Sync flushes buffered entries; call before exit.
func Sync() { _ = get().Sync() }

// LevelString returns the current level as text.
func LevelString() string {
	return atom.Level().String()
}
