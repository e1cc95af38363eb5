// Package log is a small concurrency-safe layer over [log/slog].
//
// A [Logger] is made once with functional options and then derived with
// [Logger.Wrap] (new settings) or [Logger.With] (extra attributes):
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithFormat(log.FormatJSON),
//		log.WithTimeLayout("RFC3339Nano"))
//	logger.Debug("synthesized", slog.String("param", "var1"))
//
// The level methods accept only [slog.Attr] values. Each has a variant that
// takes a [context.Context]; the others use [DefaultContextProvider].
//
// The package-level functions log through a shared default logger that
// writes text records to standard error at [DefaultLevel]. [Config]
// reconfigures it.
//
// # Levels
//
// [LevelTrace] sits below [LevelDebug] and is rendered as TRACE.
//
// # Pretty output
//
// [WithPretty] selects handlers that color keys, values and levels. Color
// is only emitted when the output is a terminal.
package log
