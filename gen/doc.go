// Package gen extracts documentation from Go source so that parsers built
// by package ctor can describe themselves at run time.
//
// [Load] type-checks packages and collects the doc comments of their
// functions, methods and types. [Render] writes those comments as a Go
// file that registers them with package docstring from an init function:
//
//	//go:generate ctorcli gen
//
// [Inspect] reports the parameters a parser would synthesize for a
// symbol without running any code.
package gen
