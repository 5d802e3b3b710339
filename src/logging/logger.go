package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogLevel represents severity.
type LogLevel = zapcore.Level

const (
	LevelDebug = zapcore.DebugLevel
	LevelInfo  = zapcore.InfoLevel
	LevelWarn  = zapcore.WarnLevel
	LevelError = zapcore.ErrorLevel
)

var levelNames = map[string]LogLevel{
	"debug":   LevelDebug,
	"info":    LevelInfo,
	"warn":    LevelWarn,
	"warning": LevelWarn,
	"error":   LevelError,
}

var level = zap.NewAtomicLevelAt(LevelInfo)

var base atomic.Pointer[zap.SugaredLogger]

func init() {
	base.Store(newLogger(zapcore.Lock(os.Stderr), "console"))
}

func newLogger(w zapcore.WriteSyncer, format string) *zap.SugaredLogger {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "ts"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	var enc zapcore.Encoder
	if format == "json" {
		enc = zapcore.NewJSONEncoder(encCfg)
	} else {
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		enc = zapcore.NewConsoleEncoder(encCfg)
	}
	return zap.New(zapcore.NewCore(enc, w, level)).Sugar()
}

// Init configures level and encoding ("console" or "json") of the global logger.
func Init(lvl, format string) error {
	format = strings.ToLower(strings.TrimSpace(format))
	switch format {
	case "", "console", "text":
		format = "console"
	case "json":
	default:
		return fmt.Errorf("unknown log format %q", format)
	}
	if _, ok := levelNames[strings.ToLower(strings.TrimSpace(lvl))]; !ok && strings.TrimSpace(lvl) != "" {
		return fmt.Errorf("unknown log level %q", lvl)
	}
	SetLogLevel(lvl)
	base.Store(newLogger(zapcore.Lock(os.Stderr), format))
	return nil
}

// SetOutput redirects the global logger to w using console encoding.
func SetOutput(w io.Writer) {
	base.Store(newLogger(zapcore.AddSync(w), "console"))
}

// SetLogLevel parses and sets global log level. Unknown names are ignored.
func SetLogLevel(s string) {
	l, ok := levelNames[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return
	}
	level.SetLevel(l)
}

// GetLogLevel returns current global log level.
func GetLogLevel() LogLevel { return level.Level() }

// L returns the underlying sugared logger.
func L() *zap.SugaredLogger { return base.Load() }

// With returns a child logger carrying the given key/value pairs.
func With(kv ...interface{}) *zap.SugaredLogger { return L().With(kv...) }

// Sync flushes buffered entries.
func Sync() { _ = L().Sync() }

// Without args the format is emitted as-is, so literal % survives.
func Debugf(format string, a ...interface{}) { L().Debugf(format, a...) }
func Infof(format string, a ...interface{})  { L().Infof(format, a...) }
func Warnf(format string, a ...interface{})  { L().Warnf(format, a...) }
func Errorf(format string, a ...interface{}) { L().Errorf(format, a...) }

// Timing helper for phases.
func TimeTrack(start time.Time, label string) {
	L().Debugw("phase done", "phase", label, "took", time.Since(start))
}
