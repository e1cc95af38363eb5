package ctor

import (
	"reflect"
	"slices"
	"strings"

	"github.com/expr-lang/expr"
)

// checkName is the variable bound to the checked parameter's own value.
const checkName = "value"

// envName is the name of a parameter's variable in check expressions.
func envName(name string) string { return strings.ReplaceAll(name, "-", "_") }

// compileChecks compiles the check expression of every parameter against an
// environment of zero values.
func (b *binding) compileChecks() error {
	env := make(map[string]any, len(b.params)+1)
	for _, p := range b.params {
		env[envName(p.Name)] = zero(p)
	}

	for i := range b.params {
		p := &b.params[i]
		if p.Check == "" {
			continue
		}

		env[checkName] = zero(*p)

		program, err := expr.Compile(p.Check, expr.Env(env), expr.AsBool())
		if err != nil {
			return ErrCheckFailed.Wrapf("%s: %w", p.Name, err)
		}

		p.program = program
	}

	return nil
}

func zero(p Param) any {
	if p.goType.Kind() == reflect.Interface {
		return ""
	}

	return reflect.Zero(p.goType).Interface()
}

// validate verifies choices and check expressions of the final parameter
// values. Choices are not enforced on a flag that was neither given nor
// defaulted.
func (b *binding) validate(vals []reflect.Value, set func(string) bool) error {
	for i, p := range b.params {
		if len(p.Choices) == 0 || (!p.Required && !p.HasDefault && !set(p.Name)) {
			continue
		}

		for _, s := range elements(vals[i]) {
			if !slices.Contains(p.Choices, s) {
				return ErrInvalidChoice.Wrapf("%s: %q (choose from %s)",
					p.Name, s, strings.Join(p.Choices, ", "))
			}
		}
	}

	var env map[string]any

	for i, p := range b.params {
		if p.program == nil {
			continue
		}

		if env == nil {
			env = make(map[string]any, len(vals)+1)
			for j, q := range b.params {
				env[envName(q.Name)] = vals[j].Interface()
			}
		}

		env[checkName] = vals[i].Interface()

		out, err := expr.Run(p.program, env)
		if err != nil {
			return ErrCheckFailed.Wrapf("%s: %w", p.Name, err)
		}

		if ok, _ := out.(bool); !ok {
			return ErrCheckFailed.Wrapf("%s: %s", p.Name, p.Check)
		}
	}

	return nil
}

// elements returns the text form of each value held by v.
func elements(v reflect.Value) []string {
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return nil
		}

		if s, ok := formatted(v); ok {
			return []string{s}
		}

		v = v.Elem()
	}

	if isSequence(v.Type()) {
		out := make([]string, v.Len())
		for i := range out {
			out[i] = valueString(v.Index(i))
		}

		return out
	}

	return []string{valueString(v)}
}
