//go:build !pprof

package profile

import "iter"

// Enabled reports whether profiling was compiled in.
const Enabled = false

// Modes yields nothing when profiling is not compiled in.
func Modes() iter.Seq[string] { return func(func(string) bool) {} }

func start(Profiler) interface{ Stop() } { return ignore{} }
