// Package cli contains the command line interface for ctorcli.
//
// # Usage
//
//	ctorcli [flags] [gen] [patterns ...]
//	ctorcli [flags] inspect <pattern> <symbol>
//
// The gen command is the default. It writes a registry file into each
// package matched by patterns, so parsers built with package ctor can show
// the package's doc comments in their help:
//
//	//go:generate ctorcli gen
//
// The inspect command prints the parameters a parser would synthesize for
// a struct type, method or function, as a table, YAML or JSON.
//
// # Configuration
//
// Flag defaults are read from config.json and config.yaml in the user
// configuration directory (for example ~/.config/ctorcli), and from
// environment variables prefixed with CTORCLI_. A YAML file may nest its
// values under a "ctorcli" key:
//
//	ctorcli:
//	  log-level: debug
//
// # Logging Options
//
// The --log-* flags select the level, format, timestamp layout, caller
// and color of log output. They apply before any other flag is parsed.
//
// # Profiling Options
//
// Built with the pprof tag, --pprof-mode writes a runtime profile into
// --pprof-dir.
package cli
