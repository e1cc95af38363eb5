package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/ctorcli/gen"
)

// Inspect prints the parameters a parser would synthesize for a symbol.
type Inspect struct {
	Pattern string   `arg:"" help:"Package pattern holding the symbol."`
	Symbol  string   `arg:"" help:"Type, Type.Method or function name."`
	Dir     string   `default:"."     help:"Directory the pattern is resolved in." short:"C" type:"existingdir"`
	Tags    []string `help:"Build tags applied while loading packages." sep:","`
	Format  string   `default:"table" enum:"table,yaml,json" help:"Output format." short:"f"`
}

// Run executes the inspect command.
func (i *Inspect) Run(ctx context.Context) error {
	attrs := []slog.Attr{slog.String("pattern", i.Pattern), slog.String("symbol", i.Symbol)}

	pkgs, err := gen.LoadTags(ctx, i.Dir, i.Tags, i.Pattern)
	if err != nil {
		return ErrInspect.With(attrs...).Wrap(err)
	}

	if len(pkgs) != 1 {
		return ErrInspect.
			With(append(attrs, slog.Int("packages", len(pkgs)))...).
			Wrap(errPatternCount)
	}

	report, err := gen.Inspect(pkgs[0], i.Symbol)
	if err != nil {
		return ErrInspect.With(attrs...).Wrap(err)
	}

	if err := writeReport(stdout(ctx), i.Format, report); err != nil {
		return ErrFormat.With(slog.String("format", i.Format)).Wrap(err)
	}

	return nil
}

var errPatternCount = NewError("pattern must match exactly one package")
