package docstring

import (
	"reflect"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Doc
	}{
		{
			name: "empty",
			text: "",
			want: Doc{},
		},
		{
			name: "short only",
			text: "Foo does many very useful things.\n",
			want: Doc{Short: "Foo does many very useful things."},
		},
		{
			name: "go syntax",
			text: `NewServer returns a server listening on addr.

It accepts connections until ctx is done.

# Parameters

  - addr: the host:port to listen on
  - workers - number of request
    workers
  - (not a name): ignored
`,
			want: Doc{
				Short: "NewServer returns a server listening on addr.",
				Long:  "It accepts connections until ctx is done.",
				Params: []Param{
					{Name: "addr", Desc: "the host:port to listen on"},
					{Name: "workers", Desc: "number of request workers"},
				},
			},
		},
		{
			name: "typed list items",
			text: `Open opens a file.

# Arguments

  - path (string): file to open
  - *flags: open mode
`,
			want: Doc{
				Short: "Open opens a file.",
				Params: []Param{
					{Name: "path", Type: "string", Desc: "file to open"},
					{Name: "flags", Desc: "open mode"},
				},
			},
		},
		{
			name: "paragraph entries",
			text: `Dial connects.

# Fields

host: remote host
port: remote port
which must be open

# Notes

Retries are not attempted.
`,
			want: Doc{
				Short: "Dial connects.",
				Long:  "# Notes\n\nRetries are not attempted.",
				Params: []Param{
					{Name: "host", Desc: "remote host"},
					{Name: "port", Desc: "remote port which must be open"},
				},
			},
		},
		{
			name: "underlined sections",
			text: `Obtain a Foo instance by passing arguments from the CLI.
        Different default values apply.

        Parameters
        ----------
        var1 : str
            var1 description.
        var2
            var2 description
            continued.
        **kwargs
            passed through.
        `,
			want: Doc{
				Short: "Obtain a Foo instance by passing arguments from the CLI. " +
					"Different default values apply.",
				Params: []Param{
					{Name: "var1", Type: "str", Desc: "var1 description."},
					{Name: "var2", Desc: "var2 description continued."},
					{Name: "kwargs", Desc: "passed through."},
				},
			},
		},
		{
			name: "heading first",
			text: "# Parameters\n\n  - a: first\n",
			want: Doc{Params: []Param{{Name: "a", Desc: "first"}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Parse() =\n%#v\nwant\n%#v", got, tt.want)
			}
		})
	}
}

func TestDoc_Description(t *testing.T) {
	tests := []struct {
		doc  Doc
		want string
	}{
		{Doc{}, ""},
		{Doc{Short: "short."}, "short."},
		{Doc{Short: "short.", Long: "long."}, "short.\nlong."},
		{Doc{Long: "long."}, "long."},
	}

	for _, tt := range tests {
		if got := tt.doc.Description(); got != tt.want {
			t.Errorf("%#v.Description() = %q, want %q", tt.doc, got, tt.want)
		}
	}
}

func TestDoc_Param(t *testing.T) {
	d := Parse("F.\n\n# Parameters\n\n  - a: first\n  - b: second\n")

	if desc, ok := d.Param("b"); !ok || desc != "second" {
		t.Errorf("Param(b) = %q, %v", desc, ok)
	}

	if _, ok := d.Param("c"); ok {
		t.Error("Param(c) found")
	}

	if m := d.ParamDocs(); len(m) != 2 || m["a"] != "first" {
		t.Errorf("ParamDocs() = %v", m)
	}
}

func TestDedent(t *testing.T) {
	got := dedent("  first\n    a\n      b\n\n    c\n")
	want := "first\na\n  b\n\nc"

	if got != want {
		t.Errorf("dedent() = %q, want %q", got, want)
	}

	// no shared indentation leaves nested lines alone
	if got := dedent("p\n\n\tcode\nq\n"); got != "p\n\n    code\nq" {
		t.Errorf("dedent() = %q", got)
	}
}
