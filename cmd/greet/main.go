// Command greet prints a greeting. Its command line is synthesized from
// the Options type, and its help text from the doc comments below.
package main

//go:generate go run github.com/ardnew/ctorcli gen

import (
	"fmt"
	"os"
	"strings"

	"github.com/ardnew/ctorcli/ctor"
)

// Options selects who is greeted and how.
//
// Greetings are written to standard output, one per line.
type Options struct {
	// Name of the person to greet.
	Name string
	// Times repeats the greeting.
	Times int `check:"value > 0" default:"1" short:"n"`
	// Shout prints the greeting in upper case.
	Shout bool `short:"s"`
	// Style is the word used to greet.
	Style style `default:"hello"`
}

type style string

func (style) Choices() []string { return []string{"hello", "hi", "howdy"} }

func greeting(o Options) string {
	s := fmt.Sprintf("%s, %s!", o.Style, o.Name)
	if o.Shout {
		s = strings.ToUpper(s)
	}

	return s
}

func main() {
	p, err := ctor.New[Options](ctor.WithEnvPrefix("GREET"))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	o := p.MustParse(nil)

	for range o.Times {
		fmt.Println(greeting(o))
	}
}
