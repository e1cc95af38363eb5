//nolint:gochecknoglobals
package pkg

import (
	_ "embed"
	"strings"
)

// version is the raw content of the embedded VERSION file.
//
//go:embed VERSION
var version string

// Version is the semantic version of the ctorcli module embedded at build
// time. It is printed by the CLI for the --version flag.
var Version = strings.TrimSpace(version)

const (
	// Name is the canonical command and module identifier. It appears in help
	// text, default config paths and environment variable prefixes.
	Name = "ctorcli"
	// Description is a short, human-readable summary of the project used in
	// help output.
	Description = "Bind Go constructors to command-line interfaces"
	// RegistryFile is the default name of generated doc registry files.
	RegistryFile = "zz_ctordoc.go"
)

// AuthorInfo represents an individual author's name and email address.
type AuthorInfo struct {
	// Name is the author's preferred name or handle.
	Name string
	// Email is the author's contact email address.
	Email string
}

// Author lists the primary author(s) of the project for display in metadata.
//
//nolint:gochecknoglobals
var Author = []AuthorInfo{
	{"ardnew", "andrew@ardnew.com"},
}
