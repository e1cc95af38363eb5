package cli

import (
	"context"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/ctorcli/log"
)

// logLevel configures the logger as soon as kong decodes it, so messages
// logged while parsing use the requested level.
type logLevel string

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *logLevel) UnmarshalText(text []byte) error {
	*l = logLevel(text)
	log.Config(log.WithLevel(log.ParseLevel(string(text))))

	return nil
}

// logFormat is like logLevel for the record encoding.
type logFormat string

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *logFormat) UnmarshalText(text []byte) error {
	*f = logFormat(text)
	log.Config(log.WithFormat(log.ParseFormat(string(text))))

	return nil
}

type logConfig struct {
	Level      logLevel  `default:"${logLevel}"  enum:"${logLevels}"  help:"Set log level."`
	Format     logFormat `default:"${logFormat}" enum:"${logFormats}" help:"Set log format."`
	TimeLayout string    `default:"RFC3339"                          help:"Set timestamp layout (Go layout or constant name)."`
	Caller     bool      `help:"Include caller information."  negatable:""`
	Pretty     bool      `help:"Enable colorized output."     negatable:""`
}

func (*logConfig) vars() kong.Vars {
	return kong.Vars{
		"logLevel":   log.DefaultLevel.String(),
		"logLevels":  strings.Join(slices.Collect(log.Levels()), ","),
		"logFormat":  log.DefaultFormat.String(),
		"logFormats": strings.Join(slices.Collect(log.Formats()), ","),
	}
}

func (*logConfig) group() kong.Group {
	return kong.Group{Key: "log", Title: "Logging options"}
}

// start applies every parsed logging option.
func (f *logConfig) start(ctx context.Context) {
	log.Config(
		log.WithLevel(log.ParseLevel(string(f.Level))),
		log.WithFormat(log.ParseFormat(string(f.Format))),
		log.WithTimeLayout(f.TimeLayout),
		log.WithCaller(f.Caller),
		log.WithPretty(f.Pretty),
	)

	log.DebugContext(ctx, "logger initialized",
		slog.String("level", string(f.Level)),
		slog.String("format", string(f.Format)),
		slog.String("time", f.TimeLayout),
		slog.Bool("caller", f.Caller),
		slog.Bool("pretty", f.Pretty),
	)
}

// scan applies logging flags found in args before kong parses them. Boolean
// flags bypass UnmarshalText, and errors reported during parsing should
// already honor every logging flag regardless of its position.
func (f *logConfig) scan(args []string) {
	for i := 0; i < len(args); i++ {
		if args[i] == "--" {
			return
		}

		name, value, assigned := strings.Cut(args[i], "=")

		switch name {
		case "--log-level", "--log-format":
			if !assigned {
				if i+1 >= len(args) || strings.HasPrefix(args[i+1], "-") {
					continue
				}

				i++
				value = args[i]
			}

			if name == "--log-level" {
				_ = f.Level.UnmarshalText([]byte(value))
			} else {
				_ = f.Format.UnmarshalText([]byte(value))
			}

		case "--log-pretty", "--no-log-pretty", "--log-caller", "--no-log-caller":
			on := true

			if assigned {
				b, err := strconv.ParseBool(value)
				if err != nil {
					continue
				}

				on = b
			}

			if strings.HasPrefix(name, "--no-") {
				on = !on
			}

			if strings.HasSuffix(name, "pretty") {
				f.Pretty = on
				log.Config(log.WithPretty(on))
			} else {
				f.Caller = on
				log.Config(log.WithCaller(on))
			}
		}
	}
}
