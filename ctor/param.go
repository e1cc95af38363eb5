package ctor

import (
	"encoding"
	"fmt"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/alecthomas/kong"
	"github.com/expr-lang/expr/vm"
	"github.com/iancoleman/strcase"
)

// Enum is implemented by types whose values are restricted to a fixed set.
// The choices are compared against the text form of a parsed value.
type Enum interface {
	Choices() []string
}

// Param describes one constructor parameter as it appears on the command
// line.
type Param struct {
	// Name is the flag or argument name.
	Name string
	// Type is the declared type, or its element type for sequences. It is
	// nil for untyped (empty interface) parameters.
	Type reflect.Type
	// Sequence reports whether the parameter accepts several values.
	Sequence bool
	// Required parameters are positional command-line arguments. All others
	// are flags.
	Required bool
	// Positional reports whether the value is passed to the constructor as
	// a positional argument rather than as a struct field.
	Positional bool
	// Default is the value used when an optional parameter is not given.
	Default    any
	HasDefault bool
	// Doc is the parameter documentation, without type or default.
	Doc     string
	Choices []string
	Short   rune
	Env     []string
	// Check is the source of an expression that must hold for the parsed
	// value. See [ErrCheckFailed].
	Check string

	goType  reflect.Type
	synth   reflect.Type
	field   string
	extra   []string
	program *vm.Program
}

// Help returns the help text shown for the parameter.
func (p Param) Help() string {
	var parts []string

	switch {
	case p.Type != nil:
		s := "[type: " + typeName(p.Type)
		if len(p.Choices) > 0 {
			s += " | choices: " + strings.Join(p.Choices, ", ")
		}

		parts = append(parts, s+"]")

	case len(p.Choices) > 0:
		parts = append(parts, "[choices: "+strings.Join(p.Choices, ", ")+"]")
	}

	if doc := strings.TrimSpace(p.Doc); doc != "" {
		parts = append(parts, doc)
	}

	if p.HasDefault && truthy(reflect.ValueOf(p.Default)) {
		parts = append(parts, "(default: "+valueString(reflect.ValueOf(p.Default))+")")
	}

	return strings.TrimSpace(strings.Join(parts, " "))
}

func (p Param) String() string { return p.Name }

func typeName(t reflect.Type) string {
	if n := t.Name(); n != "" {
		return n
	}

	return t.String()
}

// truthy mirrors the notion of an empty value: zero scalars, nil pointers
// and empty collections are not shown as defaults.
func truthy(v reflect.Value) bool {
	if !v.IsValid() {
		return false
	}

	switch v.Kind() {
	case reflect.Slice, reflect.Map, reflect.String:
		return v.Len() > 0
	case reflect.Interface, reflect.Pointer:
		return !v.IsNil()
	default:
		return !v.IsZero()
	}
}

var (
	textMarshaler   = reflect.TypeFor[encoding.TextMarshaler]()
	textUnmarshaler = reflect.TypeFor[encoding.TextUnmarshaler]()
	stringer        = reflect.TypeFor[fmt.Stringer]()
	mapperValue     = reflect.TypeFor[kong.MapperValue]()
	enumType        = reflect.TypeFor[Enum]()
	byteSlice       = reflect.TypeFor[[]byte]()
	stringSlice     = reflect.TypeFor[[]string]()
)

// valueString formats v for help output and choice comparison.
func valueString(v reflect.Value) string {
	if !v.IsValid() {
		return ""
	}

	for v.Kind() == reflect.Interface || v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return ""
		}

		if s, ok := formatted(v); ok {
			return s
		}

		v = v.Elem()
	}

	if s, ok := formatted(v); ok {
		return s
	}

	switch {
	case v.Type() == byteSlice:
		return string(v.Bytes())
	case v.Kind() == reflect.Slice:
		out := make([]string, v.Len())
		for i := range out {
			out[i] = valueString(v.Index(i))
		}

		return strings.Join(out, ",")
	}

	return fmt.Sprint(v.Interface())
}

func formatted(v reflect.Value) (string, bool) {
	if !v.CanInterface() {
		return "", false
	}

	switch {
	case v.Type().Implements(textMarshaler):
		if b, err := v.Interface().(encoding.TextMarshaler).MarshalText(); err == nil {
			return string(b), true
		}
	case v.Type().Implements(stringer):
		return v.Interface().(fmt.Stringer).String(), true
	}

	return "", false
}

func isUntyped(t reflect.Type) bool {
	return t.Kind() == reflect.Interface && t.NumMethod() == 0
}

func hasMapper(t reflect.Type) bool {
	pt := reflect.PointerTo(t)

	return t.Implements(mapperValue) || pt.Implements(mapperValue) ||
		pt.Implements(textUnmarshaler)
}

// scalar reports whether t decodes from a single command-line value.
func scalar(t reflect.Type) bool {
	if isUntyped(t) || t == byteSlice || hasMapper(t) {
		return true
	}

	switch t.Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}

// supported reports whether a parameter of type t can be read from the
// command line.
func supported(t reflect.Type) bool {
	if scalar(t) {
		return true
	}

	switch t.Kind() {
	case reflect.Pointer:
		return t.Elem().Kind() != reflect.Pointer && scalar(t.Elem())
	case reflect.Slice:
		return t.Elem() != byteSlice && scalar(t.Elem())
	case reflect.Map:
		return scalar(t.Key()) && !isUntyped(t.Key()) && scalar(t.Elem()) &&
			!isUntyped(t.Elem())
	default:
		return false
	}
}

func isSequence(t reflect.Type) bool {
	return t.Kind() == reflect.Slice && t != byteSlice && !hasMapper(t)
}

// synthType is the type kong decodes into for a parameter of type t.
func synthType(t reflect.Type) reflect.Type {
	switch {
	case isUntyped(t), t == byteSlice:
		return reflect.TypeFor[string]()
	case isSequence(t) && isUntyped(t.Elem()):
		return stringSlice
	}

	return t
}

// declared converts a value decoded by kong back to the parameter's type.
func (p Param) declared(v reflect.Value) reflect.Value {
	switch {
	case !v.IsValid():
		return reflect.Zero(p.goType)
	case v.Type() == p.goType:
		return v
	case p.goType.Kind() == reflect.Interface:
		out := reflect.New(p.goType).Elem()
		out.Set(v)

		return out
	case p.goType.Kind() == reflect.Slice && v.Kind() == reflect.Slice &&
		isUntyped(p.goType.Elem()):
		if v.IsNil() {
			return reflect.Zero(p.goType)
		}

		out := reflect.MakeSlice(p.goType, v.Len(), v.Len())
		for i := range v.Len() {
			out.Index(i).Set(v.Index(i))
		}

		return out
	}

	return v.Convert(p.goType)
}

// assignDefault stores value as the parameter's default. A single element
// is accepted for sequences.
func (p *Param) assignDefault(value any) error {
	dv := reflect.ValueOf(value)

	var out reflect.Value

	switch {
	case !dv.IsValid():
		out = reflect.Zero(p.goType)
	case dv.Type().AssignableTo(p.goType):
		out = reflect.New(p.goType).Elem()
		out.Set(dv)
	case dv.Kind() == p.goType.Kind() && dv.Type().ConvertibleTo(p.goType):
		out = dv.Convert(p.goType)
	case p.Sequence && dv.Type().AssignableTo(p.goType.Elem()):
		out = reflect.Append(reflect.MakeSlice(p.goType, 0, 1), dv)
	default:
		return ErrBadConstructor.Wrapf(
			"default for %q: %s is not assignable to %s", p.Name, dv.Type(), p.goType)
	}

	p.Default, p.HasDefault = out.Interface(), true

	return nil
}

// choices returns the fixed set of values allowed for t, if any.
func choices(t reflect.Type) []string {
	for t.Kind() == reflect.Pointer || isSequence(t) {
		t = t.Elem()
	}

	if t.Kind() == reflect.Interface {
		return nil
	}

	if t.Implements(enumType) {
		return reflect.Zero(t).Interface().(Enum).Choices()
	}

	if reflect.PointerTo(t).Implements(enumType) {
		return reflect.New(t).Interface().(Enum).Choices()
	}

	return nil
}

// FlagName returns the command-line name of a struct field: its name tag,
// or the field name in kebab case.
func FlagName(field string, tag reflect.StructTag) string {
	if name := tag.Get("name"); name != "" {
		return name
	}

	return kebab(field)
}

// kebab converts a Go identifier to a flag name. Digits stay attached to
// the word before them.
func kebab(name string) string {
	parts := strings.Split(strcase.ToKebab(name), "-")

	out := parts[:0]
	for _, part := range parts {
		if len(out) > 0 && part != "" && strings.Trim(part, "0123456789") == "" {
			out[len(out)-1] += part

			continue
		}

		out = append(out, part)
	}

	return strings.Join(out, "-")
}

// tags passed through from a struct field to the synthesized kong field.
var passTags = []string{
	"hidden", "placeholder", "sep", "mapsep", "group", "aliases", "xor", "and",
}

// fromField initializes the parameter's name and tag-driven attributes
// from struct field f. Types and defaults are handled separately.
func (p *Param) fromField(f reflect.StructField) {
	p.field = f.Name

	p.Name = FlagName(f.Name, f.Tag)

	p.Doc = f.Tag.Get("help")
	p.Check = f.Tag.Get("check")

	if s, ok := f.Tag.Lookup("short"); ok {
		p.Short, _ = utf8.DecodeRuneInString(s)
	}

	if s, ok := f.Tag.Lookup("env"); ok && s != "" {
		p.Env = splitList(s)
	}

	if s, ok := f.Tag.Lookup("enum"); ok && s != "" {
		p.Choices = splitList(s)
	}

	for _, key := range passTags {
		if v, ok := f.Tag.Lookup(key); ok {
			p.extra = append(p.extra, key+":"+strconv.Quote(v))
		}
	}
}

func splitList(s string) []string {
	out := strings.Split(s, ",")
	for i := range out {
		out[i] = strings.TrimSpace(out[i])
	}

	return slices.DeleteFunc(out, func(s string) bool { return s == "" })
}

// typed derives Type, Sequence and Choices from the declared type.
func (p *Param) typed(t reflect.Type) {
	p.goType = t
	p.synth = synthType(t)
	p.Sequence = isSequence(t)

	switch {
	case p.Sequence && isUntyped(t.Elem()), !p.Sequence && isUntyped(t):
		p.Type = nil
	case p.Sequence:
		p.Type = t.Elem()
	default:
		p.Type = t
	}

	if p.Choices == nil {
		p.Choices = choices(t)
	}
}

// classify decides whether the parameter is a positional argument or a
// flag. It must run after defaults are assigned.
func (p *Param) classify(optional, required bool) {
	switch t := p.goType; t.Kind() {
	case reflect.Pointer, reflect.Slice, reflect.Map:
		optional = optional || t != byteSlice
	case reflect.Bool:
		// bool values are never read positionally
		optional, required = true, false
	}

	p.Required = required || (!optional && !p.HasDefault)
}

// tag returns the struct tag of the synthesized kong field.
func (p Param) tag() reflect.StructTag {
	tags := []string{
		"name:" + strconv.Quote(p.Name),
		"help:" + strconv.Quote(escape(p.Help())),
	}

	if p.Required {
		tags = append(tags, `arg:""`)
	} else if p.Sequence {
		tags = append(tags, "type:"+strconv.Quote(nargsType))
	}

	if p.goType.Kind() == reflect.Bool && p.HasDefault && truthy(reflect.ValueOf(p.Default)) {
		tags = append(tags, `negatable:""`)
	}

	if p.Short != 0 && !p.Required {
		tags = append(tags, "short:"+strconv.Quote(string(p.Short)))
	}

	if len(p.Env) > 0 && !p.Required {
		tags = append(tags, "env:"+strconv.Quote(strings.Join(p.Env, ",")))
	}

	tags = append(tags, p.extra...)

	return reflect.StructTag(strings.Join(tags, " "))
}

// escape protects text from kong's variable interpolation.
func escape(s string) string { return strings.ReplaceAll(s, "$", "$$") }
