package ctor

import (
	"reflect"
	"regexp"
	"slices"
	"strings"
	"unicode"
)

// negativeNumber matches tokens read as numbers rather than short flags.
var negativeNumber = regexp.MustCompile(`^-\d+$|^-\d*\.\d+$`)

func isNegative(arg string) bool { return negativeNumber.MatchString(arg) }

// numeric reports whether negative numbers on the command line are values.
// A short flag named by a digit makes them ambiguous, and they are then
// scanned as flags.
func (b *binding) numeric() bool {
	return !slices.ContainsFunc(b.params, func(q Param) bool {
		return !q.Required && unicode.IsDigit(q.Short)
	})
}

// numericArgs rewrites args so that kong reads negative numbers as values.
// A negative number following a flag that takes one value is joined to it,
// and the remaining ones are moved with the other positional arguments
// behind a "--". Flags keep their relative order.
func (b *binding) numericArgs(args []string) []string {
	if !b.numeric() || !slices.ContainsFunc(args, isNegative) {
		return args
	}

	var front, back []string

	for i := 0; i < len(args); i++ {
		arg := args[i]

		switch {
		case arg == "--":
			back = append(back, args[i+1:]...)
			i = len(args)

			continue

		case arg == "-", isNegative(arg), !strings.HasPrefix(arg, "-"):
			back = append(back, arg)

			continue
		}

		value, sequence := b.arity(arg)

		switch {
		case !value || i+1 == len(args):
			front = append(front, arg)

		case sequence:
			front = append(front, arg)

			for i+1 < len(args) && (isNegative(args[i+1]) || !strings.HasPrefix(args[i+1], "-")) {
				i++
				front = append(front, args[i])
			}

		case isNegative(args[i+1]):
			i++

			if strings.HasPrefix(arg, "--") {
				front = append(front, arg+"="+args[i])
			} else {
				front = append(front, arg+args[i])
			}

		default:
			i++
			front = append(front, arg, args[i])
		}
	}

	if len(back) == 0 {
		return front
	}

	return append(append(front, "--"), back...)
}

// arity reports whether the flag token arg reads the following token as its
// value, and whether it reads every value that follows.
func (b *binding) arity(arg string) (value, sequence bool) {
	var match func(Param) bool

	switch {
	case strings.Contains(arg, "="):
		return false, false
	case strings.HasPrefix(arg, "--"):
		name := arg[2:]
		match = func(q Param) bool { return q.Name == name }
	case len(arg) == 2:
		short := rune(arg[1])
		match = func(q Param) bool { return q.Short == short }
	default:
		return false, false
	}

	i := slices.IndexFunc(b.params, func(q Param) bool { return !q.Required && match(q) })
	if i < 0 {
		return false, false
	}

	t := b.params[i].synth
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	if t.Kind() == reflect.Bool {
		return false, false
	}

	return true, b.params[i].Sequence
}
