package ctor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/ctorcli/log"
	"github.com/ardnew/ctorcli/pkg"
)

// Parser reads command-line arguments into the parameters of a constructor
// and calls it to produce a T.
//
// A Parser is immutable once built. Each call to Parse builds a fresh kong
// grammar, so one Parser may parse any number of command lines in turn.
type Parser[T any] struct {
	cfg    config
	name   string
	desc   string
	target reflect.Type
	synth  reflect.Type
	bind   *binding
	logger log.Logger
}

// New builds a Parser for T.
//
// By default the constructor is T's struct initialization: each exported
// field of T, or of the struct T points to, is a parameter. Use
// [WithConstructor] or [WithFunc] to select another constructor.
func New[T any](opts ...Option) (*Parser[T], error) {
	cfg := pkg.Apply(config{}, opts...)

	logger := log.Default()
	if cfg.logger != nil {
		logger = *cfg.logger
	}

	p := &Parser[T]{
		cfg:    cfg,
		name:   cfg.name,
		target: reflect.TypeFor[T](),
		logger: logger,
	}

	if p.name == "" {
		p.name = filepath.Base(os.Args[0])
	}

	b, err := bind(p.target, cfg, logger)
	if err != nil {
		return nil, err
	}

	if err := b.compileChecks(); err != nil {
		return nil, err
	}

	p.bind = b

	p.desc = b.doc.Description()
	if cfg.hasDesc {
		p.desc = cfg.description
	}

	fields := make([]reflect.StructField, len(b.params))
	for i, param := range b.params {
		fields[i] = reflect.StructField{
			Name: fmt.Sprintf("P%d", i),
			Type: param.synth,
			Tag:  param.tag(),
		}
	}

	p.synth = reflect.StructOf(fields)

	if _, err := p.instance(); err != nil {
		return nil, ErrBadConstructor.Wrap(err)
	}

	logger.Debug("parser ready",
		slog.String("name", p.name),
		slog.String("constructor", b.kind.String()),
		slog.Int("params", len(b.params)))

	return p, nil
}

// Func builds a Parser for T that calls fn. The function must return T, or
// a value convertible to T, optionally followed by an error.
//
// A leading [context.Context] parameter receives the context given to
// [Parser.ParseContext]. A single struct parameter is expanded into its
// fields. Any other parameters are passed positionally.
func Func[T any](fn any, opts ...Option) (*Parser[T], error) {
	return New[T](append(slices.Clip(opts), WithFunc(fn))...)
}

// instance holds the state of one parse.
type instance struct {
	k      *kong.Kong
	target reflect.Value
	exited bool
	done   bool
	vals   []reflect.Value
}

func (p *Parser[T]) instance(extra ...kong.Option) (*instance, error) {
	in := &instance{target: reflect.New(p.synth)}

	exit := p.cfg.exit
	if exit == nil {
		exit = os.Exit
	}

	opts := []kong.Option{
		kong.Name(p.name),
		kong.Description(escape(p.desc)),
		kong.Exit(func(code int) {
			in.exited = true

			exit(code)
		}),
		kong.NamedMapper(nargsType, kong.MapperFunc(p.bind.nargs)),
		kong.ShortUsageOnError(),
		kong.WithAfterApply(func(kctx *kong.Context) error {
			// hooks registered as options run once per path element
			if in.done {
				return nil
			}

			in.done = true

			vals, err := p.values(in.target.Elem(), setter(kctx))
			in.vals = vals

			return err
		}),
	}

	if p.cfg.stdout != nil || p.cfg.stderr != nil {
		stdout, stderr := p.cfg.stdout, p.cfg.stderr
		if stdout == nil {
			stdout = os.Stdout
		}

		if stderr == nil {
			stderr = os.Stderr
		}

		opts = append(opts, kong.Writers(stdout, stderr))
	}

	for _, path := range p.cfg.configs {
		opts = append(opts, kong.Configuration(loader(path, p.name), path))
	}

	if p.cfg.envPrefix != "" {
		opts = append(opts, kong.DefaultEnvars(p.cfg.envPrefix))
	}

	opts = append(opts, p.cfg.kong...)
	opts = append(opts, extra...)

	k, err := kong.New(in.target.Interface(), opts...)
	if err != nil {
		return nil, err
	}

	in.k = k

	return in, nil
}

// setter reports whether the named value was given on the command line or
// by a resolver.
func setter(kctx *kong.Context) func(string) bool {
	values := map[string]*kong.Value{}
	for _, f := range kctx.Model.Flags {
		values[f.Name] = f.Value
	}

	for _, a := range kctx.Model.Positional {
		values[a.Name] = a
	}

	return func(name string) bool {
		v, ok := values[name]

		return ok && v.Set
	}
}

// values converts the parsed fields of target to constructor arguments,
// filling in defaults.
func (p *Parser[T]) values(target reflect.Value, set func(string) bool) ([]reflect.Value, error) {
	vals := make([]reflect.Value, len(p.bind.params))

	for i, param := range p.bind.params {
		v := target.Field(i)
		if !param.Required && param.HasDefault && !set(param.Name) {
			v = reflect.ValueOf(param.Default)
		}

		vals[i] = param.declared(v)
	}

	return vals, p.bind.validate(vals, set)
}

// Parse reads args and returns the constructed value. A nil args reads
// os.Args[1:].
func (p *Parser[T]) Parse(args []string) (T, error) {
	return p.ParseContext(context.Background(), args)
}

// ParseContext is like Parse, and passes ctx to constructors that accept
// a [context.Context].
func (p *Parser[T]) ParseContext(ctx context.Context, args []string) (T, error) {
	v, _, err := p.parse(ctx, args)

	return v, err
}

func (p *Parser[T]) parse(ctx context.Context, args []string) (T, *instance, error) {
	var zero T

	if args == nil {
		args = os.Args[1:]
	}

	in, err := p.instance()
	if err != nil {
		return zero, nil, ErrBadConstructor.Wrap(err)
	}

	_, err = in.k.Parse(p.bind.numericArgs(args))

	switch {
	case in.exited:
		return zero, in, ErrHelp
	case err != nil:
		return zero, in, ErrParse.Wrap(err)
	}

	p.logger.DebugContext(ctx, "parsed arguments",
		slog.String("name", p.name),
		slog.Any("args", args))

	out, err := p.bind.call(ctx, in.vals)
	if err != nil {
		return zero, in, err
	}

	v, _ := out.Interface().(T)

	return v, in, nil
}

// MustParse is like Parse, but on error prints a short usage and the error,
// then calls the exit function. The zero T is returned when the exit
// function returns, or after help is printed.
func (p *Parser[T]) MustParse(args []string) T {
	v, in, err := p.parse(context.Background(), args)

	switch {
	case err == nil, errors.Is(err, ErrHelp):
		return v
	case in == nil:
		stderr := p.cfg.stderr
		if stderr == nil {
			stderr = os.Stderr
		}

		fmt.Fprintf(stderr, "%s: error: %v\n", p.name, err)

		if p.cfg.exit != nil {
			p.cfg.exit(1)
		} else {
			os.Exit(1)
		}

		return v
	}

	var perr *kong.ParseError
	if errors.As(err, &perr) {
		in.k.FatalIfErrorf(perr)
	} else {
		in.k.FatalIfErrorf(err)
	}

	return v
}

// Help returns the full help text.
func (p *Parser[T]) Help() string {
	var sb strings.Builder

	_ = p.PrintHelp(&sb)

	return sb.String()
}

// PrintHelp writes the full help text to w.
func (p *Parser[T]) PrintHelp(w io.Writer) error {
	in, err := p.instance(kong.Writers(w, w))
	if err != nil {
		return err
	}

	kctx, err := kong.Trace(in.k, nil)
	if err != nil {
		return err
	}

	return kctx.PrintUsage(false)
}

// Params returns every command-line parameter in declaration order.
func (p *Parser[T]) Params() []Param { return slices.Clone(p.bind.params) }

// Mandatory returns the parameters read as positional arguments.
func (p *Parser[T]) Mandatory() []Param {
	return slices.DeleteFunc(p.Params(), func(q Param) bool { return !q.Required })
}

// Optional returns the parameters read as flags.
func (p *Parser[T]) Optional() []Param {
	return slices.DeleteFunc(p.Params(), func(q Param) bool { return q.Required })
}

// Positional returns the names of the parameters passed to the constructor
// positionally.
func (p *Parser[T]) Positional() []string {
	var names []string

	for _, q := range p.bind.params {
		if q.Positional {
			names = append(names, q.Name)
		}
	}

	return names
}

// Description returns the program description shown in help.
func (p *Parser[T]) Description() string { return p.desc }

// Name returns the program name shown in usage.
func (p *Parser[T]) Name() string { return p.name }

func (p *Parser[T]) String() string {
	t := p.target
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	return "<Parser<->" + typeName(t) + ">"
}
