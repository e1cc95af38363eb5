package ctor

import "os"

// Main returns a function that parses its arguments into a T and passes
// the result to run. When called without arguments it reads os.Args[1:].
//
// It is intended to wrap a program's entry point:
//
//	var serve = ctor.Main(func(c Config) error {
//		return c.ListenAndServe()
//	})
//
//	func main() {
//		if err := serve(); err != nil {
//			os.Exit(1)
//		}
//	}
//
// The Parser is built on each call, so options that read the environment
// or configuration files observe their state at call time.
func Main[T any](run func(T) error, opts ...Option) func(args ...string) error {
	return func(args ...string) error {
		p, err := New[T](opts...)
		if err != nil {
			return err
		}

		if args == nil {
			args = os.Args[1:]
		}

		v, err := p.Parse(args)
		if err != nil {
			return err
		}

		return run(v)
	}
}
