package gen

import (
	"bytes"
	"context"
	"errors"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"testing"

	"github.com/ardnew/ctorcli/ctor"
	"github.com/ardnew/ctorcli/pkg"
)

const sampleSource = `package sample

import (
	"context"
	"time"
)

// Options configures the sample.
//
// It is read from the command line.
type Options struct {
	// Name to greet.
	Name    string
	Count   int  ` + "`default:\"3\"`" + `
	Verbose bool // chatty output
	Tags    []string
	Timeout time.Duration ` + "`name:\"wait\" help:\"how long to wait\"`" + `
	Ch      chan int
	Skip    int ` + "`ctor:\"-\"`" + `

	secret string
}

// FromCLI builds Options.
func (o *Options) FromCLI(name string, count int) Options {
	return Options{Name: name, Count: count, secret: o.secret}
}

// Greet returns a greeting.
//
// # Parameters
//
//   - name: who to greet
//   - extra: appended words
func Greet(ctx context.Context, name string, extra ...string) string {
	return name
}

type hidden struct{ A int }

func undocumented() {}
`

// sampleModule writes a module holding sampleSource and returns its
// directory.
func sampleModule(t *testing.T) string {
	t.Helper()

	return writeModule(t, sampleSource)
}

func writeModule(t *testing.T, src string) string {
	t.Helper()

	dir := t.TempDir()

	files := map[string]string{
		"go.mod":    "module example.com/sample\n\ngo 1.22\n",
		"sample.go": src,
	}

	for name, src := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(src), 0o600); err != nil {
			t.Fatal(err)
		}
	}

	return dir
}

func loadSample(t *testing.T) Package {
	t.Helper()

	pkgs, err := Load(context.Background(), sampleModule(t))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(pkgs) != 1 {
		t.Fatalf("Load() returned %d packages, want 1", len(pkgs))
	}

	return pkgs[0]
}

func TestLoad(t *testing.T) {
	p := loadSample(t)

	if p.Name != "sample" || p.Path != "example.com/sample" {
		t.Errorf("package = %s (%s)", p.Name, p.Path)
	}

	var keys []string
	for _, e := range p.Entries {
		keys = append(keys, e.Key)
	}

	want := []string{
		"example.com/sample.Greet",
		"example.com/sample.Options",
		"example.com/sample.Options.FromCLI",
	}

	if !reflect.DeepEqual(keys, want) {
		t.Errorf("keys = %q, want %q", keys, want)
	}

	opts, ok := p.Entry("Options")
	if !ok {
		t.Fatal("Entry(Options) not found")
	}

	if opts.Kind != KindType {
		t.Errorf("Kind = %s, want %s", opts.Kind, KindType)
	}

	if got, want := opts.Fields["Name"], "Name to greet."; got != want {
		t.Errorf("Fields[Name] = %q, want %q", got, want)
	}

	if got, want := opts.Fields["Verbose"], "chatty output"; got != want {
		t.Errorf("Fields[Verbose] = %q, want %q", got, want)
	}

	greet, _ := p.Entry("Greet")
	if got, want := greet.Params, []string{"ctx", "name", "extra"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Params = %q, want %q", got, want)
	}

	method, _ := p.Entry("Options.FromCLI")
	if method.Kind != KindMethod {
		t.Errorf("Kind = %s, want %s", method.Kind, KindMethod)
	}
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	if err := os.WriteFile(filepath.Join(dir, "go.mod"), []byte("module example.com/bad\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(filepath.Join(dir, "bad.go"), []byte("package bad\n\nfunc F() int { return \"\" }\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	_, err := Load(context.Background(), dir)
	if !errors.Is(err, pkg.ErrLoadPackage) {
		t.Fatalf("Load() error = %v, want %v", err, pkg.ErrLoadPackage)
	}
}

func TestRender(t *testing.T) {
	p := loadSample(t)

	var buf bytes.Buffer
	if err := Render(&buf, p, WithCommand("ctorcli gen --dir .")); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	src := buf.String()

	if !strings.HasPrefix(src, "// Code generated by ctorcli gen --dir .; DO NOT EDIT.") {
		t.Errorf("missing header:\n%s", src)
	}

	file, err := parser.ParseFile(token.NewFileSet(), "zz.go", src, parser.ParseComments)
	if err != nil {
		t.Fatalf("rendered source does not parse: %v\n%s", err, src)
	}

	if !ast.IsGenerated(file) {
		t.Error("rendered file not marked as generated")
	}

	if file.Name.Name != "sample" {
		t.Errorf("package = %s, want sample", file.Name.Name)
	}

	var keys []string

	ast.Inspect(file, func(n ast.Node) bool {
		call, ok := n.(*ast.CallExpr)
		if !ok {
			return true
		}

		if lit, ok := call.Args[0].(*ast.BasicLit); ok {
			key, _ := strconv.Unquote(lit.Value)
			keys = append(keys, key)
		}

		return true
	})

	if len(keys) != len(p.Entries) {
		t.Errorf("registered %q, want %d entries", keys, len(p.Entries))
	}
}

func TestRender_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, Package{Name: "empty"}); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	if strings.Contains(buf.String(), "import") {
		t.Errorf("empty registry imports packages:\n%s", buf.String())
	}
}

func TestWrite(t *testing.T) {
	p := loadSample(t)

	path, err := Write(p, "")
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	if filepath.Base(path) != pkg.RegistryFile {
		t.Errorf("path = %s, want base %s", path, pkg.RegistryFile)
	}

	if _, err := os.Stat(path); err != nil {
		t.Fatal(err)
	}

	// reloading skips the generated file
	pkgs, err := Load(context.Background(), p.Dir)
	if err != nil {
		t.Skipf("registry file requires module dependencies: %v", err)
	}

	if got := len(pkgs[0].Entries); got != len(p.Entries) {
		t.Errorf("reloaded %d entries, want %d", got, len(p.Entries))
	}
}

func TestInspect_Struct(t *testing.T) {
	p := loadSample(t)

	r, err := Inspect(p, "Options")
	if err != nil {
		t.Fatalf("Inspect() error = %v", err)
	}

	if r.Kind != KindType || r.Key != "example.com/sample.Options" {
		t.Errorf("report = %s %s", r.Kind, r.Key)
	}

	if got, want := r.Description, "Options configures the sample.\nIt is read from the command line."; got != want {
		t.Errorf("Description = %q, want %q", got, want)
	}

	want := []Param{
		{Name: "name", Field: "Name", Type: "string", Required: true, Doc: "Name to greet."},
		{Name: "count", Field: "Count", Type: "int", Default: "3"},
		{Name: "verbose", Field: "Verbose", Type: "bool", Doc: "chatty output"},
		{Name: "tags", Field: "Tags", Type: "string", Sequence: true},
		{Name: "wait", Field: "Timeout", Type: "Duration", Required: true, Doc: "how long to wait"},
		{Name: "ch", Field: "Ch", Type: "chan int", Skipped: true},
	}

	if !reflect.DeepEqual(r.Params, want) {
		t.Errorf("Params =\n%+v\nwant\n%+v", r.Params, want)
	}
}

func TestInspect_Func(t *testing.T) {
	p := loadSample(t)

	r, err := Inspect(p, "Greet")
	if err != nil {
		t.Fatalf("Inspect() error = %v", err)
	}

	want := []Param{
		{Name: "name", Type: "string", Required: true, Positional: true, Doc: "who to greet"},
		{Name: "extra", Type: "string", Positional: true, Sequence: true, Doc: "appended words"},
	}

	if !reflect.DeepEqual(r.Params, want) {
		t.Errorf("Params =\n%+v\nwant\n%+v", r.Params, want)
	}

	m, err := Inspect(p, "Options.FromCLI")
	if err != nil {
		t.Fatalf("Inspect() error = %v", err)
	}

	if m.Kind != KindMethod || len(m.Params) != 2 {
		t.Errorf("method report = %+v", m)
	}
}

func TestInspect_NotFound(t *testing.T) {
	p := loadSample(t)

	tests := []struct {
		symbol  string
		suggest string
	}{
		{"Optons", "Options"},
		{"Options.FromCL", ""},
		{"Missing", ""},
	}

	for _, tt := range tests {
		t.Run(tt.symbol, func(t *testing.T) {
			_, err := Inspect(p, tt.symbol)
			if !errors.Is(err, pkg.ErrSymbolNotFound) {
				t.Fatalf("Inspect() error = %v, want %v", err, pkg.ErrSymbolNotFound)
			}

			if tt.suggest != "" && !strings.Contains(err.Error(), "did you mean "+tt.suggest) {
				t.Errorf("error %q does not suggest %s", err, tt.suggest)
			}
		})
	}
}

func TestInspect_UnsupportedRequired(t *testing.T) {
	const src = `package sample

type Strict struct {
	Name string
	Fn   func() ` + "`required:\"\"`" + `
}

type Loose struct {
	Name string
	Fn   func()
}

func NewStrict(s Strict) Strict { return s }
`

	pkgs, err := Load(context.Background(), writeModule(t, src))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	for _, symbol := range []string{"Strict", "NewStrict"} {
		if _, err := Inspect(pkgs[0], symbol); !errors.Is(err, ctor.ErrUnsupportedType) {
			t.Errorf("Inspect(%s) error = %v, want %v", symbol, err, ctor.ErrUnsupportedType)
		}
	}

	r, err := Inspect(pkgs[0], "Loose")
	if err != nil {
		t.Fatalf("Inspect(Loose) error = %v", err)
	}

	if n := len(r.Params); n != 2 || !r.Params[1].Skipped {
		t.Errorf("Inspect(Loose) params = %+v, want fn skipped", r.Params)
	}
}
