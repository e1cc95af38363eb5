package ctor

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"slices"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/ardnew/ctorcli/docstring"
	"github.com/ardnew/ctorcli/log"
)

type kind int

const (
	kindStruct kind = iota
	kindMethod
	kindFunc
)

func (k kind) String() string {
	switch k {
	case kindStruct:
		return "struct"
	case kindMethod:
		return "method"
	case kindFunc:
		return "func"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

var (
	contextType = reflect.TypeFor[context.Context]()
	errorType   = reflect.TypeFor[error]()
)

// slot is one value the constructor receives: a struct field, or a
// positional argument of a function.
type slot struct {
	param int // index into binding.params, or -1 when excluded
	typ   reflect.Type
	index []int
}

// binding is the resolved constructor of a Parser.
type binding struct {
	kind      kind
	target    reflect.Type
	fn        reflect.Value
	recv      reflect.Type
	key       string
	doc       docstring.Doc
	ctxArg    bool
	structIn  reflect.Type
	structPtr bool
	variadic  bool
	params    []Param
	slots     []slot

	logger log.Logger
}

func bind(target reflect.Type, cfg config, logger log.Logger) (*binding, error) {
	b := &binding{target: target, logger: logger}

	switch {
	case cfg.fn != nil:
		b.kind, b.fn, b.key = kindFunc, reflect.ValueOf(cfg.fn), docstring.FuncKey(cfg.fn)
		if b.fn.Kind() != reflect.Func || b.fn.IsNil() {
			return nil, ErrBadConstructor.Wrapf("%T is not a function", cfg.fn)
		}

	case cfg.constructor != "":
		s := target
		if s.Kind() == reflect.Pointer {
			s = s.Elem()
		}

		b.recv = reflect.PointerTo(s)

		m, ok := b.recv.MethodByName(cfg.constructor)
		if !ok {
			return nil, noMethod(b.recv, cfg.constructor)
		}

		b.kind, b.fn, b.key = kindMethod, m.Func, docstring.MethodKey(s, m.Name)

	default:
		b.kind, b.structIn = kindStruct, target
		if target.Kind() == reflect.Pointer {
			b.structIn = target.Elem()
		}

		if b.structIn.Kind() != reflect.Struct {
			return nil, ErrNotStruct.Wrapf("%s", target)
		}

		b.key = docstring.TypeKey(b.structIn)
	}

	entry, _ := docstring.Lookup(b.key)

	text := entry.Doc
	if cfg.hasDoc {
		text = cfg.doc
	}

	b.doc = docstring.Parse(text)

	if b.kind != kindStruct {
		if err := b.inputs(cfg, entry); err != nil {
			return nil, err
		}
	}

	if b.structIn != nil {
		if err := b.fields(b.structIn, nil, nil); err != nil {
			return nil, err
		}
	}

	if err := b.defaults(cfg.defaults); err != nil {
		return nil, err
	}

	return b, nil
}

func noMethod(t reflect.Type, name string) error {
	names := make([]string, 0, t.NumMethod())
	for i := range t.NumMethod() {
		names = append(names, t.Method(i).Name)
	}

	var hint []string
	for _, m := range fuzzy.Find(name, names) {
		hint = append(hint, m.Str)
	}

	switch {
	case len(hint) > 0:
		return ErrNoConstructor.Wrapf("%s.%s (did you mean %s?)",
			t.Elem(), name, strings.Join(hint, " or "))
	case len(names) > 0:
		return ErrNoConstructor.Wrapf("%s.%s (available: %s)",
			t.Elem(), name, strings.Join(names, ", "))
	default:
		return ErrNoConstructor.Wrapf("%s.%s", t.Elem(), name)
	}
}

// inputs resolves the parameters of a function or method constructor.
func (b *binding) inputs(cfg config, entry docstring.Entry) error {
	ft := b.fn.Type()

	if err := b.results(ft); err != nil {
		return err
	}

	first := 0
	if b.kind == kindMethod {
		first = 1
	}

	in := make([]reflect.Type, 0, ft.NumIn())
	for i := first; i < ft.NumIn(); i++ {
		in = append(in, ft.In(i))
	}

	// registry names follow the declaration, context included
	names := slices.Clone(entry.Params)

	if len(in) > 0 && in[0] == contextType {
		b.ctxArg = true
		in = in[1:]

		if len(names) > 0 {
			names = names[1:]
		}
	}

	for i, name := range cfg.paramNames {
		if i >= len(in) {
			return ErrBadConstructor.Wrapf(
				"%d parameter names given for %d parameters", len(cfg.paramNames), len(in))
		}

		if i < len(names) {
			names[i] = name
		} else {
			names = append(names, name)
		}
	}

	b.variadic = ft.IsVariadic()

	if len(in) == 1 && !b.variadic && structParam(in[0]) {
		b.structIn, b.structPtr = in[0], in[0].Kind() == reflect.Pointer
		if b.structPtr {
			b.structIn = in[0].Elem()
		}

		return nil
	}

	for i, t := range in {
		name := fmt.Sprintf("arg%d", i)
		if i < len(names) && names[i] != "" && names[i] != "_" {
			name = names[i]
		}

		p := Param{Name: name, Positional: true}
		p.typed(t)

		if b.variadic && i == len(in)-1 {
			p.classify(true, false)
		} else {
			p.classify(false, false)
		}

		if d, ok := b.doc.Param(name); ok {
			p.Doc = d
		}

		b.add(p, slot{typ: t}, false)
	}

	return nil
}

func structParam(t reflect.Type) bool {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	return t.Kind() == reflect.Struct && !hasMapper(t)
}

func (b *binding) results(ft reflect.Type) error {
	switch {
	case ft.NumOut() == 1:
	case ft.NumOut() == 2 && ft.Out(1) == errorType:
	default:
		return ErrBadConstructor.Wrapf("%s must return %s or (%s, error)", ft, b.target, b.target)
	}

	if !fits(ft.Out(0), b.target) {
		return ErrBadConstructor.Wrapf("%s result %s cannot produce %s", ft, ft.Out(0), b.target)
	}

	return nil
}

// fits reports whether a constructor result of type r can be converted to
// the target type.
func fits(r, target reflect.Type) bool {
	return r.AssignableTo(target) ||
		(r.Kind() == reflect.Pointer && r.Elem().AssignableTo(target)) ||
		(target.Kind() == reflect.Pointer && r.AssignableTo(target.Elem()))
}

// fields adds a parameter for each exported field of struct type t,
// flattening embedded structs.
func (b *binding) fields(t reflect.Type, index []int, docs map[string]string) error {
	if docs == nil {
		entry, _ := docstring.Lookup(docstring.TypeKey(t))
		docs = entry.Fields
	}

	for i := range t.NumField() {
		f := t.Field(i)
		if f.Tag.Get("ctor") == "-" {
			continue
		}

		path := append(slices.Clip(index), i)

		if f.Anonymous {
			ft, ptr := f.Type, f.Type.Kind() == reflect.Pointer
			if ptr {
				ft = ft.Elem()
			}

			if ft.Kind() == reflect.Struct && !hasMapper(ft) {
				// unexported embedded pointers cannot be allocated
				if ptr && !f.IsExported() {
					continue
				}

				if err := b.fields(ft, path, nil); err != nil {
					return err
				}

				continue
			}
		}

		if !f.IsExported() {
			continue
		}

		if err := b.field(f, path, docs); err != nil {
			return err
		}
	}

	return nil
}

func (b *binding) field(f reflect.StructField, index []int, docs map[string]string) error {
	var p Param

	p.fromField(f)

	_, required := f.Tag.Lookup("required")
	_, optional := f.Tag.Lookup("optional")

	if !supported(f.Type) {
		if required {
			return ErrUnsupportedType.Wrapf("%s: %s", p.Name, f.Type)
		}

		b.logger.Warn("ignoring parameter of unsupported type",
			slog.String("name", p.Name), slog.String("type", f.Type.String()))
		b.slots = append(b.slots, slot{param: -1, typ: f.Type, index: index})

		return nil
	}

	p.typed(f.Type)

	if raw, ok := f.Tag.Lookup("default"); ok {
		v, err := decodeValue(p.synth, raw)
		if err != nil {
			return ErrBadConstructor.Wrapf("default for %q: %w", p.Name, err)
		}

		if err := p.assignDefault(p.declared(v).Interface()); err != nil {
			return err
		}
	}

	p.classify(optional, required)

	if p.Doc == "" {
		p.Doc = docs[f.Name]
	}

	if p.Doc == "" {
		p.Doc, _ = b.doc.Param(p.Name)
	}

	if p.Doc == "" {
		p.Doc, _ = b.doc.Param(f.Name)
	}

	b.add(p, slot{typ: f.Type, index: index}, true)

	return nil
}

func (b *binding) add(p Param, s slot, tagged bool) {
	if !supported(p.goType) {
		b.logger.Warn("ignoring parameter of unsupported type",
			slog.String("name", p.Name), slog.String("type", p.goType.String()))

		s.param = -1
		b.slots = append(b.slots, s)

		return
	}

	b.logger.Debug("synthesized parameter",
		slog.String("name", p.Name),
		slog.String("field", p.field),
		slog.String("type", p.goType.String()),
		slog.Bool("required", p.Required),
		slog.Bool("tagged", tagged))

	s.param = len(b.params)
	b.params = append(b.params, p)
	b.slots = append(b.slots, s)
}

// defaults applies defaults given as options, which take precedence over
// struct tags and make their parameters optional.
func (b *binding) defaults(values map[string]any) error {
	for name, value := range values {
		i := slices.IndexFunc(b.params, func(p Param) bool { return p.Name == name })
		if i < 0 {
			return ErrBadConstructor.Wrapf("default for unknown parameter %q", name)
		}

		p := &b.params[i]
		if err := p.assignDefault(value); err != nil {
			return err
		}

		if p.goType.Kind() != reflect.Bool {
			p.Required = false
		}
	}

	return nil
}

// call invokes the constructor with one value per parameter.
func (b *binding) call(ctx context.Context, vals []reflect.Value) (reflect.Value, error) {
	var s reflect.Value

	if b.structIn != nil {
		s = reflect.New(b.structIn)
		for _, sl := range b.slots {
			if sl.param >= 0 {
				fieldAt(s.Elem(), sl.index).Set(vals[sl.param])
			}
		}
	}

	if b.kind == kindStruct {
		return convert(s, b.target)
	}

	var in []reflect.Value

	if b.recv != nil {
		in = append(in, reflect.New(b.recv.Elem()))
	}

	if b.ctxArg {
		if ctx == nil {
			ctx = context.Background()
		}

		in = append(in, reflect.ValueOf(&ctx).Elem())
	}

	switch {
	case b.structPtr:
		in = append(in, s)
	case b.structIn != nil:
		in = append(in, s.Elem())
	default:
		for _, sl := range b.slots {
			if sl.param < 0 {
				in = append(in, reflect.Zero(sl.typ))
			} else {
				in = append(in, vals[sl.param])
			}
		}
	}

	var out []reflect.Value
	if b.variadic {
		out = b.fn.CallSlice(in)
	} else {
		out = b.fn.Call(in)
	}

	if len(out) == 2 && !out[1].IsNil() {
		err, _ := out[1].Interface().(error)

		return reflect.Value{}, ErrConstruct.Wrap(err)
	}

	return convert(out[0], b.target)
}

// fieldAt returns the field of v at index, allocating nil embedded
// pointers along the way.
func fieldAt(v reflect.Value, index []int) reflect.Value {
	for i, x := range index {
		if i > 0 && v.Kind() == reflect.Pointer {
			if v.IsNil() {
				v.Set(reflect.New(v.Type().Elem()))
			}

			v = v.Elem()
		}

		v = v.Field(x)
	}

	return v
}

func convert(v reflect.Value, target reflect.Type) (reflect.Value, error) {
	switch t := v.Type(); {
	case t.AssignableTo(target):
		out := reflect.New(target).Elem()
		out.Set(v)

		return out, nil

	case t.Kind() == reflect.Pointer && t.Elem().AssignableTo(target):
		if v.IsNil() {
			return reflect.Value{}, ErrConstruct.Wrapf("constructor returned nil %s", t)
		}

		out := reflect.New(target).Elem()
		out.Set(v.Elem())

		return out, nil

	case target.Kind() == reflect.Pointer && t.AssignableTo(target.Elem()):
		out := reflect.New(target.Elem())
		out.Elem().Set(v)

		return out, nil
	}

	return reflect.Value{}, ErrBadConstructor.Wrapf("%s cannot produce %s", v.Type(), target)
}
