package log

import (
	"context"
	"log/slog"
	"os"
	"sync"
)

// DefaultContextProvider supplies the context of the context-unaware
// logging functions and methods.
var DefaultContextProvider = context.TODO

var (
	defaultMu  sync.RWMutex
	defaultLog = Make(os.Stderr)
)

func current() Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()

	return defaultLog
}

// Default returns the package-level [Logger].
func Default() Logger { return current() }

// Config reconfigures the package-level [Logger] and returns it.
func Config(opts ...Option) Logger {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	defaultLog = defaultLog.Wrap(opts...)

	return defaultLog
}

// With returns the package-level [Logger] with attrs added to every record.
func With(attrs ...slog.Attr) Logger { return current().With(attrs...) }

func TraceContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	current().log(ctx, LevelTrace, msg, attrs...)
}

func Trace(msg string, attrs ...slog.Attr) {
	current().log(DefaultContextProvider(), LevelTrace, msg, attrs...)
}

func DebugContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	current().log(ctx, LevelDebug, msg, attrs...)
}

func Debug(msg string, attrs ...slog.Attr) {
	current().log(DefaultContextProvider(), LevelDebug, msg, attrs...)
}

func InfoContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	current().log(ctx, LevelInfo, msg, attrs...)
}

func Info(msg string, attrs ...slog.Attr) {
	current().log(DefaultContextProvider(), LevelInfo, msg, attrs...)
}

func WarnContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	current().log(ctx, LevelWarn, msg, attrs...)
}

func Warn(msg string, attrs ...slog.Attr) {
	current().log(DefaultContextProvider(), LevelWarn, msg, attrs...)
}

func ErrorContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	current().log(ctx, LevelError, msg, attrs...)
}

func Error(msg string, attrs ...slog.Attr) {
	current().log(DefaultContextProvider(), LevelError, msg, attrs...)
}
