package ctor

import (
	"io"
	"maps"
	"slices"

	"github.com/alecthomas/kong"

	"github.com/ardnew/ctorcli/log"
	"github.com/ardnew/ctorcli/pkg"
)

// Option configures a [Parser].
type Option = pkg.Option[config]

type config struct {
	name        string
	description string
	hasDesc     bool
	doc         string
	hasDoc      bool
	constructor string
	fn          any
	paramNames  []string
	defaults    map[string]any
	exit        func(int)
	stdout      io.Writer
	stderr      io.Writer
	configs     []string
	envPrefix   string
	kong        []kong.Option
	logger      *log.Logger
}

// WithName sets the program name shown in usage. It defaults to the base
// name of the running executable.
func WithName(name string) Option {
	return func(c config) config {
		c.name = name

		return c
	}
}

// WithDescription replaces the program description otherwise taken from
// the constructor's doc comment.
func WithDescription(desc string) Option {
	return func(c config) config {
		c.description, c.hasDesc = desc, true

		return c
	}
}

// WithDoc supplies the constructor's doc comment directly, for programs
// that do not register generated documentation.
func WithDoc(doc string) Option {
	return func(c config) config {
		c.doc, c.hasDoc = doc, true

		return c
	}
}

// WithConstructor selects a method of the target's struct type, by name,
// as the constructor. The method is called on a new zero value.
func WithConstructor(method string) Option {
	return func(c config) config {
		c.constructor, c.fn = method, nil

		return c
	}
}

// WithFunc selects fn as the constructor. See [Func].
func WithFunc(fn any) Option {
	return func(c config) config {
		c.fn, c.constructor = fn, ""

		return c
	}
}

// WithParamNames names the parameters of a function or method constructor
// in declaration order, excluding a leading [context.Context]. Names given
// here take precedence over generated documentation.
func WithParamNames(names ...string) Option {
	return func(c config) config {
		c.paramNames = slices.Clone(names)

		return c
	}
}

// WithDefault gives the named parameter a default value, which makes it
// optional. The value must be assignable to the parameter's type, or to its
// element type for sequences.
func WithDefault(name string, value any) Option {
	return func(c config) config {
		c.defaults = maps.Clone(c.defaults)
		if c.defaults == nil {
			c.defaults = map[string]any{}
		}

		c.defaults[name] = value

		return c
	}
}

// WithExit sets the function called after help is printed, and by
// MustParse on error. It defaults to [os.Exit].
func WithExit(exit func(int)) Option {
	return func(c config) config {
		c.exit = exit

		return c
	}
}

// WithWriters sets the writers receiving help and error output.
func WithWriters(stdout, stderr io.Writer) Option {
	return func(c config) config {
		c.stdout, c.stderr = stdout, stderr

		return c
	}
}

// WithConfig reads default flag values from configuration files. Files
// ending in ".json" are read as JSON and all others as YAML. Missing files
// are ignored.
func WithConfig(paths ...string) Option {
	return func(c config) config {
		c.configs = append(slices.Clip(c.configs), paths...)

		return c
	}
}

// WithEnvPrefix reads default flag values from environment variables named
// PREFIX_FLAG_NAME.
func WithEnvPrefix(prefix string) Option {
	return func(c config) config {
		c.envPrefix = prefix

		return c
	}
}

// WithKongOptions passes extra options to every [kong.New] call.
func WithKongOptions(opts ...kong.Option) Option {
	return func(c config) config {
		c.kong = append(slices.Clip(c.kong), opts...)

		return c
	}
}

// WithLogger sets the logger receiving diagnostics. It defaults to the
// package-level logger of package log.
func WithLogger(l log.Logger) Option {
	return func(c config) config {
		c.logger = &l

		return c
	}
}
