// Package docstring extracts descriptions from documentation comments and
// keeps a registry of them for use at run time.
//
// Go discards comments and parameter names at compile time. The registry
// fills that gap: code generated by "ctorcli gen" calls [Register] from an
// init function with the doc comment of every exported function, method
// and struct type in a package, the parameter names of functions and
// methods, and the doc comment of every struct field. Constructors bound
// with package ctor read it back with [Lookup].
//
// # Comment syntax
//
// [Parse] understands the Go doc comment syntax of [go/doc/comment]. The
// first paragraph is the short description and the remaining blocks are
// the long description, except for a parameter section:
//
//	// NewServer returns a server listening on addr.
//	//
//	// # Parameters
//	//
//	//   - addr: the host:port to listen on
//	//   - workers: number of request workers
//
// Sections may also be written in the underlined style common to other
// languages' documentation tools, which is converted before parsing:
//
//	Parameters
//	----------
//	addr : string
//	    the host:port to listen on
package docstring
