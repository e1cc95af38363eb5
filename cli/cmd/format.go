package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/ctorcli/gen"
	"github.com/ardnew/ctorcli/pkg"
)

const indent = 2

func writeReport(w io.Writer, format string, r gen.Report) error {
	switch format {
	case "json":
		b, err := json.MarshalIndent(r, "", "  ")
		if err != nil {
			return pkg.ErrJSONMarshal.Wrap(err)
		}

		_, err = fmt.Fprintf(w, "%s\n", b)

		return err

	case "yaml":
		b, err := yaml.MarshalWithOptions(r, yaml.Indent(indent), yaml.IndentSequence(true))
		if err != nil {
			return pkg.ErrYAMLMarshal.Wrap(err)
		}

		_, err = w.Write(b)

		return err

	case "table":
		return writeTable(w, r)

	default:
		return pkg.ErrInvalidFormat.Wrapf("%q", format)
	}
}

var tableHeaders = []string{"NAME", "TYPE", "MODE", "DEFAULT", "DOC"}

func writeTable(w io.Writer, r gen.Report) error {
	re := lipgloss.NewRenderer(w)

	var (
		title  = re.NewStyle().Bold(true)
		header = re.NewStyle().Bold(true).Padding(0, 1)
		cell   = re.NewStyle().Padding(0, 1)
		faint  = cell.Faint(true)
	)

	rows := make([][]string, 0, len(r.Params))
	for _, p := range r.Params {
		rows = append(rows, []string{p.Name, paramType(p), paramMode(p), p.Default, p.Doc})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(re.NewStyle().Faint(true)).
		Headers(tableHeaders...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return header
			case r.Params[row].Skipped:
				return faint
			default:
				return cell
			}
		})

	_, err := fmt.Fprintf(w, "%s (%s)\n%s\n", title.Render(r.Key), r.Kind, t.Render())
	if err != nil {
		return err
	}

	if r.Description != "" {
		_, err = fmt.Fprintf(w, "\n%s\n", r.Description)
	}

	return err
}

func paramType(p gen.Param) string {
	t := p.Type
	if t == "" {
		t = "any"
	}

	if p.Sequence {
		t = "..." + t
	}

	return t
}

// paramMode reports how a parameter is given on the command line.
func paramMode(p gen.Param) string {
	switch {
	case p.Skipped:
		return "skipped"
	case p.Required:
		return "argument"
	default:
		return "flag"
	}
}
