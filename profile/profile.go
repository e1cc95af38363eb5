package profile

import (
	"github.com/ardnew/ctorcli/pkg"
)

// Tag is the build tag that enables profiling. It also names the default
// output directory under the cache directory.
const Tag = "pprof"

// Profiler describes one profiling session.
type Profiler struct {
	Mode  string
	Dir   string
	Quiet bool
}

// Option configures a Profiler.
type Option = pkg.Option[Profiler]

// New returns a Profiler configured by opts.
func New(opts ...Option) Profiler { return pkg.Apply(Profiler{}, opts...) }

// WithMode selects the profile kind, one of [Modes].
func WithMode(mode string) Option {
	return func(p Profiler) Profiler {
		p.Mode = mode

		return p
	}
}

// WithDir sets the directory profiles are written to.
func WithDir(dir string) Option {
	return func(p Profiler) Profiler {
		p.Dir = dir

		return p
	}
}

// WithQuiet suppresses the profiler's own log output.
func WithQuiet(quiet bool) Option {
	return func(p Profiler) Profiler {
		p.Quiet = quiet

		return p
	}
}

// Start begins profiling. The returned value stops it; Stop is safe to call
// when profiling is disabled, p.Mode is empty, or the mode is unknown.
func (p Profiler) Start() interface{ Stop() } {
	if p.Mode == "" {
		return ignore{}
	}

	return start(p)
}

type ignore struct{}

func (ignore) Stop() {}
