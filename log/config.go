package log

//go:generate go tool stringer --linecomment --type Format --output config_string.go

import (
	"io"
	"iter"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/ardnew/ctorcli/pkg"
)

// Level is the severity of a log message.
type Level slog.Level

const levelTraceMask = -8

const (
	LevelTrace Level = Level(levelTraceMask)  // trace
	LevelDebug Level = Level(slog.LevelDebug) // debug
	LevelInfo  Level = Level(slog.LevelInfo)  // info
	LevelWarn  Level = Level(slog.LevelWarn)  // warn
	LevelError Level = Level(slog.LevelError) // error
)

// String returns the level name, or slog's offset form such as "DEBUG+2"
// between named levels.
func (l Level) String() string {
	switch l {
	case LevelTrace:
		return "trace"
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	}

	return slog.Level(l).String()
}

// DefaultLevel is the level of a logger made without [WithLevel].
const DefaultLevel = LevelWarn

var allLevels = [...]Level{LevelTrace, LevelDebug, LevelInfo, LevelWarn, LevelError}

// Levels yields the name of every defined level, most verbose first.
func Levels() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, level := range allLevels {
			if !yield(level.String()) {
				return
			}
		}
	}
}

// ParseLevel parses a level name such as "debug" or "WARN+2".
// Unrecognized input yields [DefaultLevel].
// See [slog.Level.UnmarshalText] for the offset syntax.
func ParseLevel(s string) Level {
	// slog does not know about trace
	if strings.EqualFold(strings.TrimSpace(s), LevelTrace.String()) {
		return LevelTrace
	}

	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return DefaultLevel
	}

	return Level(l)
}

// Format is the encoding of log records.
type Format int

const (
	FormatText Format = iota // text
	FormatJSON               // json
)

// DefaultFormat is the format of a logger made without [WithFormat].
const DefaultFormat = FormatText

// Formats yields the name of every defined format.
func Formats() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, format := range [...]Format{FormatText, FormatJSON} {
			if !yield(format.String()) {
				return
			}
		}
	}
}

// ParseFormat parses "text" or "json", case-insensitively.
// Unrecognized input yields [DefaultFormat].
func ParseFormat(s string) Format {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case FormatJSON.String():
		return FormatJSON
	case FormatText.String():
		return FormatText
	default:
		return DefaultFormat
	}
}

// FormatTime renders a record timestamp.
// An empty result drops the timestamp from the record.
type FormatTime func(time.Time) string

// DefaultTimeLayout is the layout used when no valid layout is provided.
const DefaultTimeLayout = time.RFC3339

const (
	DefaultCaller = false
	DefaultPretty = false
)

// Option configures a [Logger].
type Option = pkg.Option[config]

type config struct {
	mutex      *sync.RWMutex
	output     io.Writer
	formatTime FormatTime
	level      Level
	format     Format
	caller     bool
	pretty     bool
}

func makeConfig(w io.Writer, opts ...Option) config {
	c := config{mutex: &sync.RWMutex{}}

	return pkg.Apply(pkg.Apply(c, WithDefaults(w)), opts...)
}

// clone copies c with a fresh mutex, then applies opts to the copy.
func (c config) clone(opts ...Option) config {
	c.mutex = &sync.RWMutex{}

	return pkg.Apply(c, opts...)
}

// update returns an option that applies fn to the config while holding
// its write lock.
func update(fn func(*config)) Option {
	return func(c config) config {
		if c.mutex == nil {
			c.mutex = &sync.RWMutex{}
		}

		c.mutex.Lock()
		defer c.mutex.Unlock()

		fn(&c)

		return c
	}
}

func (c config) handlerOptions() *slog.HandlerOptions {
	return &slog.HandlerOptions{
		AddSource: c.caller,
		Level:     slog.Level(c.level),
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			switch a.Key {
			case slog.TimeKey:
				if t, ok := a.Value.Any().(time.Time); ok {
					s := c.formatTime(t)
					if s == "" {
						return slog.Attr{}
					}

					a.Value = slog.StringValue(s)
				}

			case slog.LevelKey:
				// TRACE rather than DEBUG-4
				if level, ok := a.Value.Any().(slog.Level); ok {
					a.Value = slog.StringValue(
						strings.ToUpper(Level(level).String()),
					)
				}
			}

			return a
		},
	}
}

func (c config) handler() slog.Handler {
	opts := c.handlerOptions()

	switch {
	case c.format == FormatJSON && c.pretty:
		return newPrettyJSONHandler(c.output, opts)
	case c.format == FormatJSON:
		return slog.NewJSONHandler(c.output, opts)
	case c.format == FormatText && c.pretty:
		return newPrettyTextHandler(c.output, opts)
	case c.format == FormatText:
		return slog.NewTextHandler(c.output, opts)
	default:
		return slog.DiscardHandler
	}
}

// WithDefaults resets every setting to its default and writes to w.
// A nil w discards all output.
func WithDefaults(w io.Writer) Option {
	return update(func(c *config) {
		if w == nil {
			w = io.Discard
		}

		c.output = w
		c.formatTime = makeFormatTimeFunc(DefaultTimeLayout)
		c.level = DefaultLevel
		c.format = DefaultFormat
		c.caller = DefaultCaller
		c.pretty = DefaultPretty
	})
}

// WithOutput sets the writer receiving log records.
// A nil w discards all output.
func WithOutput(w io.Writer) Option {
	return update(func(c *config) {
		if w == nil {
			w = io.Discard
		}

		c.output = w
	})
}

// WithLevel sets the minimum level of emitted records.
func WithLevel(level Level) Option {
	return update(func(c *config) { c.level = level })
}

// WithFormat sets the record encoding.
func WithFormat(format Format) Option {
	return update(func(c *config) { c.format = format })
}

// WithTimeLayout sets the timestamp layout.
//
// The layout is either the case-insensitive name of a layout constant from
// package [time] ("RFC3339", "Kitchen", "StampMilli", ...) or a literal
// layout passed to [time.Time.Format]. A blank layout or "none" drops the
// timestamp.
func WithTimeLayout(layout string) Option {
	format := makeFormatTimeFunc(layout)

	return update(func(c *config) { c.formatTime = format })
}

// WithCaller adds the source position of the logging call to each record.
func WithCaller(enable bool) Option {
	return update(func(c *config) { c.caller = enable })
}

// WithPretty selects the colorized handlers.
func WithPretty(enable bool) Option {
	return update(func(c *config) { c.pretty = enable })
}

var timeLayout = map[string]string{
	"rfc3339":     time.RFC3339,
	"rfc3339nano": time.RFC3339Nano,
	"ansic":       time.ANSIC,
	"unixdate":    time.UnixDate,
	"rubydate":    time.RubyDate,
	"rfc822":      time.RFC822,
	"rfc822z":     time.RFC822Z,
	"rfc850":      time.RFC850,
	"rfc1123":     time.RFC1123,
	"rfc1123z":    time.RFC1123Z,
	"kitchen":     time.Kitchen,
	"datetime":    time.DateTime,
	"dateonly":    time.DateOnly,
	"timeonly":    time.TimeOnly,
	"stamp":       time.Stamp,
	"stampmilli":  time.StampMilli,
	"stampmicro":  time.StampMicro,
	"stampnano":   time.StampNano,
	"ms":          time.StampMilli,
	"us":          time.StampMicro,
	"ns":          time.StampNano,
	"none":        "",
}

func makeFormatTimeFunc(layout string) FormatTime {
	// Only the lookup key is normalized; literal layouts are used verbatim.
	key := strings.Map(
		func(r rune) rune {
			if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
				return r
			}

			return -1
		},
		strings.ToLower(layout),
	)

	if strings.TrimSpace(layout) == "" {
		return func(time.Time) string { return "" }
	}

	if std, ok := timeLayout[key]; ok {
		if std == "" {
			return func(time.Time) string { return "" }
		}

		layout = std
	}

	return func(t time.Time) string { return t.Format(layout) }
}
