// Package profile starts runtime profiles for the ctorcli command.
//
// Profiling is compiled in only with the pprof build tag and is backed by
// [github.com/pkg/profile]. Without the tag every [Profiler] is a no-op and
// [Modes] yields nothing.
//
//	go build -tags pprof ./...
//	ctorcli --pprof-mode=cpu --pprof-dir=./profiles gen ./...
//	go tool pprof -http=: ./profiles/cpu.pprof
//
// The binary built with the tag also registers the [net/http/pprof]
// handlers.
package profile
