package gen

import (
	"bytes"
	"fmt"
	"go/format"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strconv"

	"github.com/ardnew/ctorcli/pkg"
)

const docstringPath = "github.com/ardnew/ctorcli/docstring"

// RenderOption configures Render.
type RenderOption = pkg.Option[renderConfig]

type renderConfig struct {
	command string
}

// WithCommand sets the command named in the generated-code header.
func WithCommand(command string) RenderOption {
	return func(c renderConfig) renderConfig {
		c.command = command

		return c
	}
}

// Render writes a Go source file that registers every entry of p with the
// docstring registry when the package is initialized.
func Render(w io.Writer, p Package, opts ...RenderOption) error {
	cfg := pkg.Apply(renderConfig{command: pkg.Name + " gen"}, opts...)

	var buf bytes.Buffer

	fmt.Fprintf(&buf, "// Code generated by %s; DO NOT EDIT.\n\n", cfg.command)
	fmt.Fprintf(&buf, "package %s\n", p.Name)

	if len(p.Entries) > 0 {
		fmt.Fprintf(&buf, "\nimport %q\n\n", docstringPath)
		buf.WriteString("func init() {\n")
	}

	for _, e := range p.Entries {
		fmt.Fprintf(&buf, "docstring.Register(%s, docstring.Entry{\n", strconv.Quote(e.Key))

		if e.Doc != "" {
			fmt.Fprintf(&buf, "Doc: %s,\n", strconv.Quote(e.Doc))
		}

		if len(e.Params) > 0 {
			buf.WriteString("Params: []string{")

			for i, name := range e.Params {
				if i > 0 {
					buf.WriteString(", ")
				}

				buf.WriteString(strconv.Quote(name))
			}

			buf.WriteString("},\n")
		}

		if len(e.Fields) > 0 {
			buf.WriteString("Fields: map[string]string{\n")

			for _, name := range slices.Sorted(maps.Keys(e.Fields)) {
				fmt.Fprintf(&buf, "%s: %s,\n", strconv.Quote(name), strconv.Quote(e.Fields[name]))
			}

			buf.WriteString("},\n")
		}

		buf.WriteString("})\n")
	}

	if len(p.Entries) > 0 {
		buf.WriteString("}\n")
	}

	src, err := format.Source(buf.Bytes())
	if err != nil {
		return pkg.ErrRender.Wrap(err)
	}

	if _, err := w.Write(src); err != nil {
		return pkg.ErrWriteOutput.Wrap(err)
	}

	return nil
}

// Write renders p into the named file of the package directory and returns
// the file's path. An existing file is replaced.
func Write(p Package, name string, opts ...RenderOption) (string, error) {
	if name == "" {
		name = pkg.RegistryFile
	}

	path := name
	if !filepath.IsAbs(path) {
		path = filepath.Join(p.Dir, name)
	}

	var buf bytes.Buffer
	if err := Render(&buf, p, opts...); err != nil {
		return "", err
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil { //nolint:gosec
		return "", pkg.ErrWriteOutput.Wrap(err)
	}

	return path, nil
}
