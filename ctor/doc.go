// Package ctor turns constructors into command-line interfaces.
//
// A [Parser] inspects a constructor's parameters and synthesizes a
// [github.com/alecthomas/kong] grammar for them. Mandatory parameters
// become positional arguments and optional parameters become flags.
// Parsing the command line then calls the constructor with the values read.
//
// Three kinds of constructor are supported:
//
//   - the struct itself, whose exported fields are its parameters (the
//     default);
//   - a method of the struct type, selected with [WithConstructor];
//   - any function, selected with [Func] or [WithFunc].
//
// For example:
//
//	type Options struct {
//		Input   string            // read positionally
//		Retries int    `default:"3"`
//		Tags    []string          // --tags a b c
//	}
//
//	p, err := ctor.New[Options]()
//
// Go keeps neither comments nor parameter names at run time. Run
// "ctorcli gen" to compile them into the program, or supply them with
// [WithDoc] and [WithParamNames].
//
// # Struct tags
//
// Fields accept the kong tags name, help, short, env, hidden, placeholder,
// sep, mapsep, group, aliases, xor and and. In addition:
//
//	default:"v"    default value, which makes the field optional
//	optional:""    optional without a default
//	required:""    mandatory even for pointers, slices and maps
//	enum:"a,b"     restrict values, like implementing [Enum]
//	check:"expr"   an expr-lang expression that must be true
//	ctor:"-"       not a parameter
//
// Check expressions see every parameter by name, with hyphens replaced by
// underscores, and the checked parameter as "value".
//
// # Negative numbers
//
// Tokens such as "-5" and "-.5" are read as values, both as positional
// arguments and as flag values, unless a parameter has a digit for its
// short flag. Everything after "--" is read positionally in any case.
package ctor
