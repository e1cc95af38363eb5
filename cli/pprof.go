//go:build pprof

package cli

import (
	"context"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/ctorcli/log"
	"github.com/ardnew/ctorcli/pkg"
	"github.com/ardnew/ctorcli/profile"
)

type pprofConfig struct {
	Mode string `default:""            enum:",${pprofModes}" help:"Write a runtime profile of the given kind." placeholder:"MODE" short:"p"`
	Dir  string `default:"${pprofDir}"                       help:"Profile output directory."                                      type:"path"`
}

func (pprofConfig) vars() kong.Vars {
	return kong.Vars{
		"pprofModes": strings.Join(slices.Collect(profile.Modes()), ","),
		"pprofDir":   filepath.Join(pkg.CacheDir(), profile.Tag),
	}
}

func (pprofConfig) group() kong.Group {
	return kong.Group{Key: "pprof", Title: "Profiling (pprof)"}
}

// start begins profiling when a mode was selected.
func (f pprofConfig) start(ctx context.Context) (stop func()) {
	if f.Mode == "" {
		return func() {}
	}

	attrs := []slog.Attr{slog.String("mode", f.Mode), slog.String("dir", f.Dir)}

	log.DebugContext(ctx, "pprof start", attrs...)

	p := profile.New(
		profile.WithMode(f.Mode),
		profile.WithDir(f.Dir),
		profile.WithQuiet(true),
	).Start()

	return func() {
		p.Stop()
		log.DebugContext(ctx, "pprof stop", attrs...)
	}
}
