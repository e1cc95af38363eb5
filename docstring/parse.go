package docstring

import (
	"go/doc/comment"
	"slices"
	"strings"
	"unicode"
)

// Doc is the parsed form of a documentation comment.
type Doc struct {
	// Short is the first paragraph, joined into a single line.
	Short string
	// Long is every block after the first paragraph, except the parameter
	// section, rendered as plain text.
	Long string
	// Params lists the parameter section's entries in order.
	Params []Param
}

// Param documents one entry of a parameter section.
type Param struct {
	Name string
	Type string // optional
	Desc string
}

// Description returns the short and long descriptions separated by a
// newline, with surrounding whitespace removed.
func (d Doc) Description() string {
	if d.Long == "" {
		return strings.TrimSpace(d.Short)
	}

	return strings.TrimSpace(d.Short + "\n" + d.Long)
}

// Param returns the description of the named parameter.
func (d Doc) Param(name string) (string, bool) {
	i := slices.IndexFunc(d.Params, func(p Param) bool { return p.Name == name })
	if i < 0 {
		return "", false
	}

	return d.Params[i].Desc, true
}

// ParamDocs returns the parameter descriptions keyed by name.
func (d Doc) ParamDocs() map[string]string {
	m := make(map[string]string, len(d.Params))
	for _, p := range d.Params {
		m[p.Name] = p.Desc
	}

	return m
}

// paramSections are the lower-case headings that introduce a parameter
// section.
var paramSections = []string{
	"parameters", "params", "arguments", "args", "fields", "attributes",
}

func isParamSection(title string) bool {
	return slices.Contains(paramSections, strings.ToLower(strings.TrimSpace(title)))
}

// Parse parses text as a documentation comment.
// Text may be the result of [go/ast.CommentGroup.Text] or any indented
// multi-line string; common leading indentation is removed first.
func Parse(text string) Doc {
	var (
		p   comment.Parser
		doc = p.Parse(convertUnderlined(dedent(text)))
		d   Doc

		long    []comment.Block
		inParam bool
	)

	for i, block := range doc.Content {
		if h, ok := block.(*comment.Heading); ok {
			inParam = isParamSection(plain(h.Text))
			if !inParam {
				long = append(long, block)
			}

			continue
		}

		switch {
		case inParam:
			d.Params = appendParams(d.Params, block)
		case i == 0 && isParagraph(block):
			d.Short = render(block)
		default:
			long = append(long, block)
		}
	}

	d.Long = render(long...)

	return d
}

func isParagraph(b comment.Block) bool {
	_, ok := b.(*comment.Paragraph)

	return ok
}

// appendParams adds the entries documented by one block of a parameter
// section. List items and paragraph lines of the form "name: desc" or
// "name - desc" start entries; code blocks continue the previous one.
func appendParams(params []Param, block comment.Block) []Param {
	switch b := block.(type) {
	case *comment.List:
		for _, item := range b.Items {
			var text []string
			for _, c := range item.Content {
				text = append(text, render(c))
			}

			if p, ok := parseEntry(strings.Join(text, " ")); ok {
				params = append(params, p)
			}
		}

	case *comment.Paragraph:
		for line := range strings.Lines(plain(b.Text)) {
			line = strings.TrimLeft(strings.TrimSpace(line), "-*+• ")
			if p, ok := parseEntry(line); ok {
				params = append(params, p)
			} else if n := len(params); n > 0 && line != "" {
				params[n-1].Desc = joinWords(params[n-1].Desc, line)
			}
		}

	case *comment.Code:
		if n := len(params); n > 0 {
			params[n-1].Desc = joinWords(params[n-1].Desc, b.Text)
		}
	}

	return params
}

// parseEntry splits "name (type): desc", "name: desc" or "name - desc".
func parseEntry(s string) (Param, bool) {
	for _, sep := range []string{":", " - "} {
		name, desc, ok := strings.Cut(s, sep)
		if !ok {
			continue
		}

		name = strings.TrimSpace(name)

		var typ string
		if open := strings.IndexByte(name, '('); open > 0 && strings.HasSuffix(name, ")") {
			typ = strings.TrimSpace(name[open+1 : len(name)-1])
			name = strings.TrimSpace(name[:open])
		}

		name = strings.Trim(name, "`*")
		if isIdent(name) {
			return Param{Name: name, Type: typ, Desc: joinWords("", desc)}, true
		}
	}

	return Param{}, false
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}

	for i, r := range s {
		switch {
		case r == '_' || unicode.IsLetter(r):
		case i > 0 && (r == '-' || unicode.IsDigit(r)):
		default:
			return false
		}
	}

	return true
}

func joinWords(a, b string) string {
	return strings.Join(strings.Fields(a+" "+b), " ")
}

// render prints blocks as plain text without line wrapping.
func render(blocks ...comment.Block) string {
	if len(blocks) == 0 {
		return ""
	}

	pr := comment.Printer{TextWidth: -1}

	return strings.TrimSpace(string(pr.Text(&comment.Doc{Content: blocks})))
}

func plain(text []comment.Text) string {
	var sb strings.Builder

	for _, t := range text {
		switch t := t.(type) {
		case comment.Plain:
			sb.WriteString(string(t))
		case comment.Italic:
			sb.WriteString(string(t))
		case *comment.Link:
			sb.WriteString(plain(t.Text))
		case *comment.DocLink:
			sb.WriteString(plain(t.Text))
		}
	}

	return sb.String()
}

// dedent removes the indentation shared by every non-blank line after the
// first, and trims the first line.
func dedent(text string) string {
	lines := strings.Split(strings.ReplaceAll(text, "\t", "    "), "\n")

	indent := -1
	for _, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}

		n := len(line) - len(strings.TrimLeft(line, " "))
		if indent < 0 || n < indent {
			indent = n
		}
	}

	lines[0] = strings.TrimSpace(lines[0])

	for i := 1; indent > 0 && i < len(lines); i++ {
		if len(lines[i]) >= indent {
			lines[i] = lines[i][indent:]
		} else {
			lines[i] = strings.TrimLeft(lines[i], " ")
		}
	}

	return strings.Trim(strings.Join(lines, "\n"), "\n")
}

func isUnderline(line string) bool {
	line = strings.TrimSpace(line)

	return len(line) >= 3 && strings.Trim(line, "-=") == ""
}

// convertUnderlined rewrites underlined section titles as "# Title"
// headings, and the "name : type" entries of underlined parameter
// sections as list items.
func convertUnderlined(text string) string {
	var (
		lines   = strings.Split(text, "\n")
		out     = make([]string, 0, len(lines))
		entries []Param
		inParam bool
	)

	flush := func() {
		if len(entries) == 0 {
			return
		}

		for _, p := range entries {
			item := "  - " + p.Name
			if p.Type != "" {
				item += " (" + p.Type + ")"
			}

			out = append(out, item+": "+p.Desc)
		}

		out = append(out, "")
		entries = entries[:0]
	}

	for i := 0; i < len(lines); i++ {
		line := lines[i]
		title := strings.TrimSpace(line)

		if title != "" && i+1 < len(lines) && isUnderline(lines[i+1]) {
			flush()

			inParam = isParamSection(title)
			out = append(out, "", "# "+title, "")
			i++

			continue
		}

		if !inParam {
			out = append(out, line)

			continue
		}

		switch {
		case title == "":
		case line[0] != ' ':
			name, typ, _ := strings.Cut(title, ":")
			entries = append(entries, Param{
				Name: strings.TrimSpace(strings.TrimLeft(name, "*")),
				Type: strings.TrimSpace(typ),
			})
		case len(entries) > 0:
			n := len(entries) - 1
			entries[n].Desc = joinWords(entries[n].Desc, title)
		}
	}

	flush()

	return strings.Join(out, "\n")
}
