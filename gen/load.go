package gen

import (
	"context"
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/tools/go/packages"

	"github.com/ardnew/ctorcli/docstring"
	"github.com/ardnew/ctorcli/pkg"
)

// Kind classifies a documented symbol.
type Kind string

const (
	KindFunc   Kind = "func"
	KindMethod Kind = "method"
	KindType   Kind = "type"
)

// Entry is the documentation of one symbol, keyed the way the docstring
// registry keys it at run time.
type Entry struct {
	docstring.Entry

	Key    string
	Symbol string // Func, Type or Type.Method
	Kind   Kind
}

// Package is the documentation gathered from one Go package.
type Package struct {
	Name    string
	Path    string // import path
	Dir     string
	Entries []Entry

	types *types.Package
}

// Entry returns the entry of the named symbol.
func (p Package) Entry(symbol string) (Entry, bool) {
	i := slices.IndexFunc(p.Entries, func(e Entry) bool { return e.Symbol == symbol })
	if i < 0 {
		return Entry{}, false
	}

	return p.Entries[i], true
}

// keyPath is the package path used in registry keys. Symbols of a main
// package are reported by the runtime under "main".
func (p Package) keyPath() string {
	if p.Name == "main" {
		return "main"
	}

	return p.Path
}

const loadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes

// Load loads the packages matching patterns, relative to dir, and collects
// their documentation. With no patterns it loads the package in dir.
func Load(ctx context.Context, dir string, patterns ...string) ([]Package, error) {
	return LoadTags(ctx, dir, nil, patterns...)
}

// LoadTags is like Load, and applies the given build tags.
func LoadTags(ctx context.Context, dir string, tags []string, patterns ...string) ([]Package, error) {
	if len(patterns) == 0 {
		patterns = []string{"."}
	}

	cfg := &packages.Config{
		Context: ctx,
		Dir:     dir,
		Mode:    loadMode,
	}

	if len(tags) > 0 {
		cfg.BuildFlags = []string{"-tags=" + strings.Join(tags, ",")}
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, pkg.ErrLoadPackage.Wrap(err)
	}

	var (
		out  []Package
		errs []error
	)

	for _, p := range pkgs {
		for _, e := range p.Errors {
			errs = append(errs, fmt.Errorf("%s: %s error: %s", p.PkgPath, errorKindName(e.Kind), e.Msg))
		}

		if p.Types == nil || len(p.Errors) > 0 {
			continue
		}

		out = append(out, collect(p))
	}

	if len(errs) > 0 {
		return out, pkg.ErrLoadPackage.Wrap(errs...)
	}

	return out, nil
}

func errorKindName(kind packages.ErrorKind) string {
	switch kind {
	case packages.ListError:
		return "list"
	case packages.ParseError:
		return "parse"
	case packages.TypeError:
		return "type"
	default:
		return "unknown"
	}
}

func collect(p *packages.Package) Package {
	out := Package{
		Name:  p.Name,
		Path:  p.PkgPath,
		types: p.Types,
	}

	if len(p.GoFiles) > 0 {
		out.Dir = filepath.Dir(p.GoFiles[0])
	}

	for _, file := range p.Syntax {
		// skips registry files written by Render
		if ast.IsGenerated(file) {
			continue
		}

		for _, decl := range file.Decls {
			switch d := decl.(type) {
			case *ast.FuncDecl:
				if e, ok := out.funcEntry(d); ok {
					out.Entries = append(out.Entries, e)
				}

			case *ast.GenDecl:
				if d.Tok != token.TYPE {
					continue
				}

				for _, spec := range d.Specs {
					if e, ok := out.typeEntry(d, spec.(*ast.TypeSpec)); ok {
						out.Entries = append(out.Entries, e)
					}
				}
			}
		}
	}

	slices.SortFunc(out.Entries, func(a, b Entry) int { return strings.Compare(a.Key, b.Key) })

	return out
}

// visible reports whether a symbol is recorded. Unexported symbols are
// recorded only for main packages.
func (p Package) visible(name string) bool {
	return token.IsExported(name) || p.Name == "main"
}

func (p Package) funcEntry(d *ast.FuncDecl) (Entry, bool) {
	name := d.Name.Name
	if name == "init" || name == "main" || name == "_" {
		return Entry{}, false
	}

	e := Entry{Kind: KindFunc, Symbol: name}

	if d.Recv != nil && len(d.Recv.List) > 0 {
		recv := receiverName(d.Recv.List[0].Type)
		if recv == "" || !p.visible(recv) {
			return Entry{}, false
		}

		e.Kind, e.Symbol = KindMethod, recv+"."+name
	}

	if !p.visible(name) {
		return Entry{}, false
	}

	e.Key = p.keyPath() + "." + e.Symbol
	e.Doc = d.Doc.Text()
	e.Params = paramNames(d.Type.Params)

	if e.Doc == "" && len(e.Params) == 0 {
		return Entry{}, false
	}

	return e, true
}

// receiverName returns the base type name of a receiver expression such as
// T, *T or *T[K].
func receiverName(expr ast.Expr) string {
	for {
		switch x := expr.(type) {
		case *ast.StarExpr:
			expr = x.X
		case *ast.ParenExpr:
			expr = x.X
		case *ast.IndexExpr:
			expr = x.X
		case *ast.IndexListExpr:
			expr = x.X
		case *ast.SelectorExpr:
			return x.Sel.Name
		case *ast.Ident:
			return x.Name
		default:
			return ""
		}
	}
}

func paramNames(fields *ast.FieldList) []string {
	if fields == nil {
		return nil
	}

	var names []string

	for _, f := range fields.List {
		if len(f.Names) == 0 {
			names = append(names, "_")

			continue
		}

		for _, n := range f.Names {
			names = append(names, n.Name)
		}
	}

	return names
}

func (p Package) typeEntry(d *ast.GenDecl, spec *ast.TypeSpec) (Entry, bool) {
	name := spec.Name.Name
	if !p.visible(name) {
		return Entry{}, false
	}

	e := Entry{
		Kind:   KindType,
		Symbol: name,
		Key:    p.keyPath() + "." + name,
	}

	e.Doc = spec.Doc.Text()
	if e.Doc == "" && len(d.Specs) == 1 {
		e.Doc = d.Doc.Text()
	}

	if st, ok := spec.Type.(*ast.StructType); ok {
		e.Fields = fieldDocs(st)
	}

	if e.Doc == "" && len(e.Fields) == 0 {
		return Entry{}, false
	}

	return e, true
}

// fieldDocs maps field names to their doc or line comments. Embedded
// fields are keyed by their type name.
func fieldDocs(st *ast.StructType) map[string]string {
	var docs map[string]string

	for _, f := range st.Fields.List {
		text := strings.TrimSpace(f.Doc.Text())
		if text == "" {
			text = strings.TrimSpace(f.Comment.Text())
		}

		if text == "" {
			continue
		}

		names := make([]string, 0, len(f.Names))
		for _, n := range f.Names {
			names = append(names, n.Name)
		}

		if len(names) == 0 {
			names = append(names, receiverName(f.Type))
		}

		for _, n := range names {
			if n == "" || n == "_" {
				continue
			}

			if docs == nil {
				docs = map[string]string{}
			}

			docs[n] = text
		}
	}

	return docs
}
