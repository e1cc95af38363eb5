package cmd

import (
	"context"
	"log/slog"
	"strings"

	"github.com/ardnew/ctorcli/gen"
	"github.com/ardnew/ctorcli/log"
	"github.com/ardnew/ctorcli/pkg"
)

// Gen writes a doc registry file into each matched package.
type Gen struct {
	Patterns []string `arg:""  default:"."                 help:"Package patterns to document." optional:""`
	Dir      string   `default:"."                         help:"Directory patterns are resolved in." short:"C" type:"existingdir"`
	Output   string   `default:"${registryFile}"           help:"Name of the file written to each package directory." short:"o"`
	Tags     []string `help:"Build tags applied while loading packages." sep:","`
	DryRun   bool     `help:"Print the generated source instead of writing it." short:"n"`
}

// Run executes the gen command.
func (g *Gen) Run(ctx context.Context) error {
	pkgs, err := gen.LoadTags(ctx, g.Dir, g.Tags, g.Patterns...)
	if err != nil {
		return ErrGenerate.
			With(slog.String("dir", g.Dir), slog.Any("patterns", g.Patterns)).
			Wrap(err)
	}

	opts := []gen.RenderOption{gen.WithCommand(g.command())}

	for _, p := range pkgs {
		if g.DryRun {
			if err := gen.Render(stdout(ctx), p, opts...); err != nil {
				return ErrGenerate.With(slog.String("package", p.Path)).Wrap(err)
			}

			continue
		}

		path, err := gen.Write(p, g.Output, opts...)
		if err != nil {
			return ErrGenerate.With(slog.String("package", p.Path)).Wrap(err)
		}

		log.InfoContext(ctx, "wrote registry",
			slog.String("package", p.Path),
			slog.String("file", path),
			slog.Int("entries", len(p.Entries)),
		)
	}

	return nil
}

// command is the invocation recorded in generated file headers.
func (g *Gen) command() string {
	cmd := pkg.Name + " gen"
	if len(g.Tags) > 0 {
		cmd += " --tags=" + strings.Join(g.Tags, ",")
	}

	return cmd
}
