package gen

import (
	"go/types"
	"reflect"
	"strconv"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/ardnew/ctorcli/ctor"
	"github.com/ardnew/ctorcli/docstring"
	"github.com/ardnew/ctorcli/pkg"
)

// Report describes the command line a Parser would synthesize for a symbol,
// derived from source alone.
type Report struct {
	Symbol      string  `json:"symbol"                yaml:"symbol"`
	Key         string  `json:"key"                   yaml:"key"`
	Kind        Kind    `json:"kind"                  yaml:"kind"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty"`
	Params      []Param `json:"params"                yaml:"params"`
}

// Param describes one synthesized parameter.
type Param struct {
	Name       string `json:"name"                  yaml:"name"`
	Field      string `json:"field,omitempty"       yaml:"field,omitempty"`
	Type       string `json:"type"                  yaml:"type"`
	Required   bool   `json:"required"              yaml:"required"`
	Positional bool   `json:"positional"            yaml:"positional"`
	Sequence   bool   `json:"sequence"              yaml:"sequence"`
	Default    string `json:"default,omitempty"     yaml:"default,omitempty"`
	Doc        string `json:"doc,omitempty"         yaml:"doc,omitempty"`
	Skipped    bool   `json:"skipped,omitempty"     yaml:"skipped,omitempty"`
}

// Inspect reports the parameters of symbol, which names a struct type
// ("Options"), a method ("Options.FromCLI") or a function ("NewServer").
//
// Like [ctor.New], it fails with [ctor.ErrUnsupportedType] when a field of
// an unsupported type is tagged required.
func Inspect(p Package, symbol string) (Report, error) {
	if p.types == nil {
		return Report{}, pkg.ErrSymbolNotFound.Wrapf("%s: package not loaded", symbol)
	}

	r := Report{Symbol: symbol, Key: p.keyPath() + "." + symbol}

	entry, _ := p.Entry(symbol)
	r.Description = docstring.Parse(entry.Doc).Description()

	typ, method, isMethod := strings.Cut(symbol, ".")

	obj := p.types.Scope().Lookup(typ)
	if obj == nil {
		return Report{}, p.notFound(symbol)
	}

	if isMethod {
		tn, ok := obj.(*types.TypeName)
		if !ok {
			return Report{}, p.notFound(symbol)
		}

		m, _, _ := types.LookupFieldOrMethod(types.NewPointer(tn.Type()), true, p.types, method)

		fn, ok := m.(*types.Func)
		if !ok {
			return Report{}, p.notFound(symbol)
		}

		r.Kind = KindMethod

		params, err := p.signature(fn.Type().(*types.Signature), entry)
		if err != nil {
			return Report{}, err
		}

		r.Params = params

		return r, nil
	}

	var err error

	switch o := obj.(type) {
	case *types.Func:
		r.Kind = KindFunc
		r.Params, err = p.signature(o.Type().(*types.Signature), entry)

	case *types.TypeName:
		st, ok := o.Type().Underlying().(*types.Struct)
		if !ok {
			return Report{}, pkg.ErrSymbolNotFound.Wrapf("%s: not a struct type", symbol)
		}

		r.Kind = KindType
		r.Params, err = p.fields(st, entry.Fields, nil)

	default:
		return Report{}, p.notFound(symbol)
	}

	if err != nil {
		return Report{}, err
	}

	return r, nil
}

func (p Package) notFound(symbol string) error {
	var names []string

	for _, e := range p.Entries {
		names = append(names, e.Symbol)
	}

	if m := fuzzy.Find(symbol, names); len(m) > 0 {
		return pkg.ErrSymbolNotFound.Wrapf("%s (did you mean %s?)", symbol, m[0].Str)
	}

	return pkg.ErrSymbolNotFound.Wrapf("%s", symbol)
}

func (p Package) signature(sig *types.Signature, entry Entry) ([]Param, error) {
	params := sig.Params()

	start := 0
	if params.Len() > 0 && types.TypeString(params.At(0).Type(), nil) == "context.Context" {
		start = 1
	}

	doc := docstring.Parse(entry.Doc)

	if params.Len()-start == 1 && !sig.Variadic() {
		v := params.At(start)
		if st, ok := structOf(v.Type()); ok && !decodable(v.Type()) {
			var fields map[string]string
			if n := named(v.Type()); n != nil && n.Obj().Pkg() == p.types {
				e, _ := p.Entry(n.Obj().Name())
				fields = e.Fields
			}

			return p.fields(st, fields, &doc)
		}
	}

	var out []Param

	for i := start; i < params.Len(); i++ {
		v := params.At(i)

		name := v.Name()
		if name == "" || name == "_" {
			name = "arg" + strconv.Itoa(i-start)
		}

		t := v.Type()
		variadic := sig.Variadic() && i == params.Len()-1

		param := Param{Name: name, Positional: true}
		param.Doc, _ = doc.Param(name)
		param.describe(t)

		switch {
		case param.Skipped:
		case variadic:
			param.Required = false
		default:
			param.Required = !optionalType(t)
		}

		out = append(out, param)
	}

	return out, nil
}

// fields mirrors the way a Parser flattens the fields of a struct
// constructor or parameter.
func (p Package) fields(st *types.Struct, docs map[string]string, doc *docstring.Doc) ([]Param, error) {
	var out []Param

	for i := range st.NumFields() {
		f := st.Field(i)
		tag := reflect.StructTag(st.Tag(i))

		if tag.Get("ctor") == "-" {
			continue
		}

		if f.Embedded() {
			if inner, ok := structOf(f.Type()); ok && !decodable(f.Type()) {
				if _, isPtr := f.Type().(*types.Pointer); isPtr && !f.Exported() {
					continue
				}

				var innerDocs map[string]string
				if n := named(f.Type()); n != nil && n.Obj().Pkg() == p.types {
					e, _ := p.Entry(n.Obj().Name())
					innerDocs = e.Fields
				}

				params, err := p.fields(inner, innerDocs, doc)
				if err != nil {
					return nil, err
				}

				out = append(out, params...)

				continue
			}
		}

		if !f.Exported() {
			continue
		}

		param := Param{Name: ctor.FlagName(f.Name(), tag), Field: f.Name()}
		param.describe(f.Type())

		param.Doc = tag.Get("help")
		if param.Doc == "" {
			param.Doc = docs[f.Name()]
		}

		if param.Doc == "" && doc != nil {
			if text, ok := doc.Param(param.Name); ok {
				param.Doc = text
			} else {
				param.Doc, _ = doc.Param(f.Name())
			}
		}

		_, required := tag.Lookup("required")

		if param.Skipped {
			if required {
				return nil, ctor.ErrUnsupportedType.Wrapf("%s: %s", param.Name,
					types.TypeString(f.Type(), (*types.Package).Name))
			}

			out = append(out, param)

			continue
		}

		def, hasDefault := tag.Lookup("default")
		param.Default = def

		_, optional := tag.Lookup("optional")

		switch {
		case isBool(f.Type()):
			param.Required = false
		default:
			param.Required = required || (!optional && !hasDefault && !optionalType(f.Type()))
		}

		out = append(out, param)
	}

	return out, nil
}

func (p *Param) describe(t types.Type) {
	p.Skipped = !supportedType(t)
	p.Sequence = sequence(t)

	elem := t
	if p.Sequence {
		elem = t.Underlying().(*types.Slice).Elem()
	}

	p.Type = typeName(elem)
}

func typeName(t types.Type) string {
	t = types.Unalias(t)

	if n, ok := t.(*types.Named); ok {
		return n.Obj().Name()
	}

	if isEmptyInterface(t) {
		return ""
	}

	return types.TypeString(t, (*types.Package).Name)
}

func named(t types.Type) *types.Named {
	t = types.Unalias(t)
	if ptr, ok := t.(*types.Pointer); ok {
		t = types.Unalias(ptr.Elem())
	}

	n, _ := t.(*types.Named)

	return n
}

func structOf(t types.Type) (*types.Struct, bool) {
	if ptr, ok := t.Underlying().(*types.Pointer); ok {
		t = ptr.Elem()
	}

	st, ok := t.Underlying().(*types.Struct)

	return st, ok
}

func isEmptyInterface(t types.Type) bool {
	i, ok := t.Underlying().(*types.Interface)

	return ok && i.Empty()
}

func isBool(t types.Type) bool {
	b, ok := t.Underlying().(*types.Basic)

	return ok && b.Kind() == types.Bool
}

func isBytes(t types.Type) bool {
	s, ok := t.Underlying().(*types.Slice)

	return ok && types.Identical(s.Elem(), types.Typ[types.Byte])
}

// decodable reports whether *t implements one of the decoding interfaces
// recognized by the parser.
func decodable(t types.Type) bool {
	ptr := types.NewPointer(t)

	for _, name := range []string{"UnmarshalText", "Decode"} {
		if obj, _, _ := types.LookupFieldOrMethod(ptr, true, nil, name); obj != nil {
			if _, ok := obj.(*types.Func); ok {
				return true
			}
		}
	}

	return false
}

func scalarType(t types.Type) bool {
	if isEmptyInterface(t) || isBytes(t) || decodable(t) {
		return true
	}

	b, ok := t.Underlying().(*types.Basic)
	if !ok {
		return false
	}

	switch b.Kind() {
	case types.Bool, types.String,
		types.Int, types.Int8, types.Int16, types.Int32, types.Int64,
		types.Uint, types.Uint8, types.Uint16, types.Uint32, types.Uint64,
		types.Float32, types.Float64:
		return true
	default:
		return false
	}
}

func supportedType(t types.Type) bool {
	if scalarType(t) {
		return true
	}

	switch u := t.Underlying().(type) {
	case *types.Pointer:
		_, nested := u.Elem().Underlying().(*types.Pointer)

		return !nested && scalarType(u.Elem())
	case *types.Slice:
		return !isBytes(u.Elem()) && scalarType(u.Elem())
	case *types.Map:
		return scalarType(u.Key()) && !isEmptyInterface(u.Key()) &&
			scalarType(u.Elem()) && !isEmptyInterface(u.Elem())
	default:
		return false
	}
}

func sequence(t types.Type) bool {
	_, ok := t.Underlying().(*types.Slice)

	return ok && !isBytes(t) && !decodable(t)
}

// optionalType reports whether a parameter of type t may be omitted.
func optionalType(t types.Type) bool {
	if isBool(t) {
		return true
	}

	switch t.Underlying().(type) {
	case *types.Pointer, *types.Map:
		return true
	case *types.Slice:
		return !isBytes(t)
	default:
		return false
	}
}
