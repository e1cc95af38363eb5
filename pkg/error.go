package pkg

// Sentinel errors shared by the ctorcli packages. Test them with errors.Is;
// the concrete values are wrapped with context at the failure site.

import (
	"fmt"
	"reflect"
	"slices"
	"strings"
)

// Error represents a chain of errors, innermost first.
type Error []error

// ErrLoadPackage is returned when Go packages cannot be loaded for analysis.
//
// It is wrapped with the package loader error or with the list of errors
// reported by the type checker.
var ErrLoadPackage = MakeErrorf("failed to load package")

// ErrSymbolNotFound is returned when a requested function, method or type
// does not exist in the loaded package.
var ErrSymbolNotFound = MakeErrorf("symbol not found")

// ErrRender is returned when a generated source file cannot be produced.
var ErrRender = MakeErrorf("failed to render source")

// ErrWriteOutput is returned when a generated file cannot be written.
var ErrWriteOutput = MakeErrorf("failed to write output")

// ErrInvalidFormat is returned when an invalid output format is specified.
//
// It should be wrapped with the invalid format along with a list of valid
// formats.
var ErrInvalidFormat = MakeErrorf("invalid format")

// ErrJSONMarshal is returned when JSON marshaling fails.
var ErrJSONMarshal = MakeErrorf("JSON marshal error")

// ErrYAMLMarshal is returned when YAML marshaling fails.
var ErrYAMLMarshal = MakeErrorf("YAML marshal error")

// MakeError constructs an Error from the given errors.
// The first argument is the innermost error in the chain. Nil errors are
// dropped, and nil is returned if nothing remains.
func MakeError(errs ...error) Error {
	var e Error

	for _, err := range errs {
		if err != nil {
			e = append(e, UnwrapErrors(err)...)
		}
	}

	return e
}

// MakeErrorf constructs an Error from a formatted error message.
func MakeErrorf(format string, args ...any) Error {
	return MakeError(fmt.Errorf(format, args...))
}

// Error joins the messages of all errors in the chain with ": ",
// from innermost to outermost.
func (e Error) Error() string {
	var sb strings.Builder

	for i, err := range slices.All(e) {
		if i > 0 {
			sb.WriteString(": ")
		}

		sb.WriteString(err.Error())
	}

	return sb.String()
}

// Wrap returns a copy of the receiver with err appended.
func (e Error) Wrap(err ...error) Error {
	return append(slices.Clip(e), err...)
}

// Wrapf returns a copy of the receiver with a formatted error appended.
func (e Error) Wrapf(format string, args ...any) Error {
	return append(slices.Clip(e), fmt.Errorf(format, args...))
}

// Unwrap returns the errors contained in the receiver.
func (e Error) Unwrap() []error {
	return e
}

// Is reports whether target is an Error whose chain is a prefix of the
// receiver's chain. This lets a wrapped sentinel match the sentinel itself.
func (e Error) Is(target error) bool {
	t, ok := target.(Error)
	if !ok || len(t) == 0 || len(t) > len(e) {
		return false
	}

	for i := range t {
		if !sameError(e[i], t[i]) {
			return false
		}
	}

	return true
}

func sameError(a, b error) bool {
	if a == nil || b == nil {
		return a == b
	}

	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || !ta.Comparable() {
		return false
	}

	return a == b
}

// UnwrapErrors flattens an error tree into a chain, innermost first.
func UnwrapErrors(err error) Error {
	if err == nil {
		return nil
	}

	chain := Error{}

	switch e := err.(type) {
	case Error:
		return slices.Clone(e)
	case interface{ Unwrap() []error }:
		for _, wrapped := range e.Unwrap() {
			chain = append(chain, UnwrapErrors(wrapped)...)
		}
	case interface{ Unwrap() error }:
		chain = append(chain, UnwrapErrors(e.Unwrap())...)
	}

	return append(chain, err)
}
