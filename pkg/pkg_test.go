package pkg

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func TestName(t *testing.T) {
	if Name != "ctorcli" {
		t.Errorf("Expected Name to be %q, got %q", "ctorcli", Name)
	}
}

func TestVersion(t *testing.T) {
	buf, err := os.ReadFile("VERSION")
	if err != nil {
		t.Fatalf("Failed to read VERSION file: %v", err)
	}

	if content := strings.TrimSpace(string(buf)); Version != content {
		t.Errorf("Expected Version to be %q, got %q", content, Version)
	}
}

func TestAuthor(t *testing.T) {
	if !slices.ContainsFunc(Author, func(a AuthorInfo) bool {
		return a.Name == "ardnew" && a.Email == "andrew@ardnew.com"
	}) {
		t.Errorf("Expected Author to contain ardnew")
	}

	for i, author := range Author {
		if author.Name == "" && author.Email == "" {
			t.Errorf("Author[%d] must define at least Name or Email", i)
		}
	}
}

func TestErrorChain(t *testing.T) {
	cause := errors.New("no such file")
	err := ErrLoadPackage.Wrap(cause)

	if got, want := err.Error(), "failed to load package: no such file"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	if !errors.Is(err, ErrLoadPackage) {
		t.Error("expected wrapped error to match its sentinel")
	}

	if !errors.Is(err, cause) {
		t.Error("expected wrapped error to match its cause")
	}

	if errors.Is(err, ErrRender) {
		t.Error("did not expect wrapped error to match an unrelated sentinel")
	}

	outer := fmt.Errorf("generate: %w", err)
	if !errors.Is(outer, ErrLoadPackage) {
		t.Error("expected sentinel to match through fmt.Errorf wrapping")
	}

	if len(ErrLoadPackage) != 1 {
		t.Errorf("Wrap must not mutate the sentinel, len = %d", len(ErrLoadPackage))
	}
}

func TestMakeErrorDropsNil(t *testing.T) {
	if e := MakeError(nil, nil); e != nil {
		t.Errorf("MakeError(nil, nil) = %v, want nil", e)
	}

	e := MakeError(errors.New("a"), nil, errors.New("b"))
	if got := e.Error(); got != "a: b" {
		t.Errorf("Error() = %q, want %q", got, "a: b")
	}
}

func TestApply(t *testing.T) {
	add := func(n int) Option[int] { return func(v int) int { return v + n } }

	if got := Apply(1, add(2), nil, add(3)); got != 6 {
		t.Errorf("Apply = %d, want 6", got)
	}
}

func TestUserDirs(t *testing.T) {
	for name, dir := range map[string]string{
		"config": ConfigDir(),
		"cache":  CacheDir(),
	} {
		if filepath.Base(dir) != Prefix() {
			t.Errorf("%s dir %q does not end with prefix %q", name, dir, Prefix())
		}
	}

	if EnvPrefix() != strings.ToUpper(EnvPrefix()) {
		t.Errorf("EnvPrefix() = %q, want upper case", EnvPrefix())
	}
}
