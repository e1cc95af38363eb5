package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/ardnew/ctorcli/ctor"
)

func TestGreeting(t *testing.T) {
	p, err := ctor.New[Options](ctor.WithName("greet"))
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		args []string
		want string
	}{
		{[]string{"ann"}, "hello, ann!"},
		{[]string{"bo", "--style", "howdy", "-s"}, "HOWDY, BO!"},
	}

	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			o, err := p.Parse(tt.args)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}

			if got := greeting(o); got != tt.want {
				t.Errorf("greeting() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHelp_Registry(t *testing.T) {
	var buf bytes.Buffer

	p, err := ctor.New[Options](ctor.WithName("greet"))
	if err != nil {
		t.Fatal(err)
	}

	if err := p.PrintHelp(&buf); err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{
		"Options selects who is greeted and how.",
		"Name of the person to greet.",
		"choices: hello, hi, howdy",
	} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("help missing %q:\n%s", want, buf.String())
		}
	}
}
