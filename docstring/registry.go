package docstring

import (
	"iter"
	"maps"
	"reflect"
	"runtime"
	"slices"
	"strings"
	"sync"
)

// Entry is the documentation recorded for one symbol.
type Entry struct {
	// Doc is the symbol's doc comment text.
	Doc string
	// Params holds the declared parameter names of a function or method,
	// in order. Unnamed and blank parameters are recorded as "_".
	Params []string
	// Fields maps the name of each documented field of a struct type to
	// its doc comment text.
	Fields map[string]string
}

// Parse parses the entry's doc comment.
func (e Entry) Parse() Doc { return Parse(e.Doc) }

var registry = struct {
	sync.RWMutex
	entries map[string]Entry
}{entries: map[string]Entry{}}

// Register records e under key, replacing any previous entry.
// Keys are formed by [FuncKey], [TypeKey] and [MethodKey].
func Register(key string, e Entry) {
	registry.Lock()
	defer registry.Unlock()

	registry.entries[key] = e
}

// Lookup returns the entry recorded under key.
func Lookup(key string) (Entry, bool) {
	registry.RLock()
	defer registry.RUnlock()

	e, ok := registry.entries[key]

	return e, ok
}

// Keys yields every registered key in lexical order.
func Keys() iter.Seq[string] {
	registry.RLock()
	keys := slices.Sorted(maps.Keys(registry.entries))
	registry.RUnlock()

	return slices.Values(keys)
}

// FuncKey returns the registry key of a function or method value.
//
// Method values and method expressions of a named type T are keyed as
// [MethodKey] would key them. Closures and instantiated generic functions
// yield keys that no generated entry uses.
func FuncKey(fn any) string {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func || v.IsNil() {
		return ""
	}

	f := runtime.FuncForPC(v.Pointer())
	if f == nil {
		return ""
	}

	name := strings.TrimSuffix(f.Name(), "-fm")

	// pkg/path.(*T).M -> pkg/path.T.M
	name = strings.NewReplacer("(*", "", ")", "").Replace(name)

	return stripTypeArgs(name)
}

// TypeKey returns the registry key of the named type t, or of the named
// type that t points to. Predeclared and unnamed types have no key.
func TypeKey(t reflect.Type) string {
	for t != nil && t.Kind() == reflect.Pointer && t.Name() == "" {
		t = t.Elem()
	}

	if t == nil || t.Name() == "" || t.PkgPath() == "" {
		return ""
	}

	return t.PkgPath() + "." + stripTypeArgs(t.Name())
}

// MethodKey returns the registry key of method name of type t.
func MethodKey(t reflect.Type, name string) string {
	k := TypeKey(t)
	if k == "" {
		return ""
	}

	return k + "." + name
}

// stripTypeArgs removes bracketed type arguments, including the "[...]"
// placeholder of shared generic code.
func stripTypeArgs(s string) string {
	var (
		sb    strings.Builder
		depth int
	)

	for _, r := range s {
		switch {
		case r == '[':
			depth++
		case r == ']' && depth > 0:
			depth--
		case depth == 0:
			sb.WriteRune(r)
		}
	}

	return sb.String()
}
