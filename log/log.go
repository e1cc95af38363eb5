package log

import (
	"context"
	"io"
	"log/slog"
	"runtime"
	"time"
)

// Logger is a concurrency-safe [slog.Logger] with attribute-only level
// methods and a configuration that can be derived with [Logger.Wrap].
//
// The zero Logger discards everything.
type Logger struct {
	*slog.Logger
	config
}

// Make returns a [Logger] writing to w.
// Without options it uses [DefaultFormat], [DefaultLevel] and
// [DefaultTimeLayout], with caller info and pretty printing disabled.
func Make(w io.Writer, opts ...Option) Logger {
	// cfg is not shared yet; the options lock it themselves.
	cfg := makeConfig(w, opts...)

	return Logger{Logger: slog.New(cfg.handler()), config: cfg}
}

// Wrap returns a new [Logger] using the configuration of l overridden by
// opts. Attributes added with [Logger.With] are not carried over.
func (l Logger) Wrap(opts ...Option) Logger {
	if l.mutex == nil {
		return Make(nil, opts...)
	}

	l.mutex.RLock()
	cfg := l.clone()
	l.mutex.RUnlock()

	// the clone owns a new mutex, so opts never contend with l
	cfg = cfg.clone(opts...)

	return Logger{Logger: slog.New(cfg.handler()), config: cfg}
}

// With returns a [Logger] that adds attrs to every record.
func (l Logger) With(attrs ...slog.Attr) Logger {
	if l.Logger == nil {
		return l
	}

	l.mutex.RLock()
	cfg := l.clone()
	l.mutex.RUnlock()

	return Logger{
		Logger: slog.New(l.Handler().WithAttrs(attrs)),
		config: cfg,
	}
}

// Level returns the minimum level of emitted records.
func (l Logger) Level() Level {
	if l.Logger == nil || l.mutex == nil {
		return DefaultLevel
	}

	l.mutex.RLock()
	defer l.mutex.RUnlock()

	return l.level
}

// Format returns the record encoding.
func (l Logger) Format() Format {
	if l.Logger == nil || l.mutex == nil {
		return DefaultFormat
	}

	l.mutex.RLock()
	defer l.mutex.RUnlock()

	return l.format
}

func (l Logger) TraceContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.log(ctx, LevelTrace, msg, attrs...)
}

func (l Logger) Trace(msg string, attrs ...slog.Attr) {
	l.log(DefaultContextProvider(), LevelTrace, msg, attrs...)
}

func (l Logger) DebugContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.log(ctx, LevelDebug, msg, attrs...)
}

func (l Logger) Debug(msg string, attrs ...slog.Attr) {
	l.log(DefaultContextProvider(), LevelDebug, msg, attrs...)
}

func (l Logger) InfoContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.log(ctx, LevelInfo, msg, attrs...)
}

func (l Logger) Info(msg string, attrs ...slog.Attr) {
	l.log(DefaultContextProvider(), LevelInfo, msg, attrs...)
}

func (l Logger) WarnContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.log(ctx, LevelWarn, msg, attrs...)
}

func (l Logger) Warn(msg string, attrs ...slog.Attr) {
	l.log(DefaultContextProvider(), LevelWarn, msg, attrs...)
}

func (l Logger) ErrorContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.log(ctx, LevelError, msg, attrs...)
}

func (l Logger) Error(msg string, attrs ...slog.Attr) {
	l.log(DefaultContextProvider(), LevelError, msg, attrs...)
}

// log must be called directly by the exported method or function that the
// user called, so that the recorded source position is the user's.
func (l Logger) log(
	ctx context.Context,
	level Level,
	msg string,
	attrs ...slog.Attr,
) {
	if l.Logger == nil {
		return
	}

	if l.mutex != nil {
		l.mutex.RLock()
		defer l.mutex.RUnlock()
	}

	if !l.Enabled(ctx, slog.Level(level)) {
		return
	}

	var pcs [1]uintptr
	// runtime.Callers, log, exported wrapper
	runtime.Callers(3, pcs[:])

	r := slog.NewRecord(time.Now(), slog.Level(level), msg, pcs[0])
	r.AddAttrs(attrs...)
	_ = l.Handler().Handle(ctx, r)
}
