package cli

import (
	"context"

	"github.com/alecthomas/kong"

	"github.com/ardnew/ctorcli/cli/cmd"
	"github.com/ardnew/ctorcli/ctor"
	"github.com/ardnew/ctorcli/pkg"
	"github.com/ardnew/ctorcli/profile"
)

// CLI is the top-level command-line interface of ctorcli.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Version kong.VersionFlag `help:"Print version and exit." short:"V"`

	Gen     cmd.Gen     `cmd:"" default:"withargs" help:"Generate doc registry files."`
	Inspect cmd.Inspect `cmd:""                    help:"Show the parameters synthesized for a symbol."`
}

// Run executes the ctorcli command with the given arguments.
// exit is called by kong for --help, --version and usage errors.
func Run(ctx context.Context, exit func(code int), args ...string) error {
	var cli CLI

	if err := mkdirAllRequired(); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	cli.Log.scan(args)

	groups := []kong.Group{cli.Log.group()}
	if profile.Enabled {
		groups = append(groups, cli.Pprof.group())
	}

	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups(groups),
		kong.DefaultEnvars(pkg.EnvPrefix()),
		kong.BindSingletonProvider(func() context.Context { return ctx }),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			Summary:             true,
			NoExpandSubcommands: true,
		}),
		kong.Configuration(kong.JSON, configPath(baseConfig+".json")),
		kong.Configuration(ctor.YAML(pkg.Name), configPath(baseConfig+".yaml")),
		vars(&cli),
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	ctx = cmd.WithContext(ctx, ktx)

	cli.Log.start(ctx)

	defer cli.Pprof.start(ctx)()

	return ktx.Run(&cli)
}

func vars(cli *CLI) kong.Vars {
	return kong.Vars{
		"version":              pkg.Version,
		cmd.RegistryIdentifier: pkg.RegistryFile,
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())
}
