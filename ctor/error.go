package ctor

import "github.com/ardnew/ctorcli/pkg"

var (
	// ErrNotStruct is returned by [New] when no constructor was selected and
	// the target type is neither a struct nor a pointer to one.
	ErrNotStruct = pkg.MakeErrorf("target is not a struct")

	// ErrNoConstructor is returned when the method named by
	// [WithConstructor] does not exist.
	ErrNoConstructor = pkg.MakeErrorf("constructor not found")

	// ErrBadConstructor is returned when a constructor's signature cannot
	// produce the target type, or when an option refers to a parameter the
	// constructor does not have.
	ErrBadConstructor = pkg.MakeErrorf("invalid constructor")

	// ErrUnsupportedType is returned when a mandatory parameter has a type
	// that cannot be read from the command line.
	ErrUnsupportedType = pkg.MakeErrorf("unsupported parameter type")

	// ErrParse wraps every command-line parsing failure. The wrapped chain
	// includes the [*kong.ParseError].
	ErrParse = pkg.MakeErrorf("parse error")

	// ErrHelp is returned by Parse after help was printed and the exit
	// function returned.
	ErrHelp = pkg.MakeErrorf("help requested")

	// ErrInvalidChoice is returned when a value is not one of the choices of
	// an [Enum] parameter.
	ErrInvalidChoice = pkg.MakeErrorf("invalid choice")

	// ErrCheckFailed is returned when a check expression is invalid or
	// evaluates to false.
	ErrCheckFailed = pkg.MakeErrorf("check failed")

	// ErrConstruct wraps an error returned by the constructor itself.
	ErrConstruct = pkg.MakeErrorf("constructor failed")
)
