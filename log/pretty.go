package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// palette holds the styles of a pretty handler. Styles are bound to a
// renderer for the handler's writer, so color is only emitted when that
// writer is a terminal.
type palette struct {
	key, str, num, dur, tim lipgloss.Style
	yes, no, null           lipgloss.Style
	levels                  [4]lipgloss.Style // debug, info, warn, error
}

func newPalette(w io.Writer) *palette {
	r := lipgloss.NewRenderer(w)
	fg := func(c string) lipgloss.Style {
		return r.NewStyle().Foreground(lipgloss.Color(c))
	}

	return &palette{
		key:  fg("8"),
		str:  fg("6"),
		num:  fg("3"),
		dur:  fg("5"),
		tim:  fg("4"),
		yes:  fg("2"),
		no:   fg("1"),
		null: fg("8"),
		levels: [4]lipgloss.Style{
			fg("4"), fg("2"), fg("3").Bold(true), fg("1").Bold(true),
		},
	}
}

func (p *palette) level(s string, l slog.Level) string {
	switch {
	case l >= slog.LevelError:
		return p.levels[3].Render(s)
	case l >= slog.LevelWarn:
		return p.levels[2].Render(s)
	case l >= slog.LevelInfo:
		return p.levels[1].Render(s)
	default:
		return p.levels[0].Render(s)
	}
}

// prettyHandler writes one colorized line per record (text), or an
// indented object per record (JSON).
type prettyHandler struct {
	opts   slog.HandlerOptions
	json   bool
	mu     *sync.Mutex
	w      io.Writer
	pal    *palette
	prefix string // dotted group path
	attrs  []slog.Attr
}

func newPrettyTextHandler(w io.Writer, opts *slog.HandlerOptions) *prettyHandler {
	return &prettyHandler{opts: *opts, mu: &sync.Mutex{}, w: w, pal: newPalette(w)}
}

func newPrettyJSONHandler(w io.Writer, opts *slog.HandlerOptions) *prettyHandler {
	h := newPrettyTextHandler(w, opts)
	h.json = true

	return h
}

func (h *prettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	floor := slog.LevelInfo
	if h.opts.Level != nil {
		floor = h.opts.Level.Level()
	}

	return level >= floor
}

func (h *prettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := *h
	c.attrs = make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	c.attrs = append(c.attrs, h.attrs...)

	for _, a := range attrs {
		a.Key = h.prefix + a.Key
		c.attrs = append(c.attrs, a)
	}

	return &c
}

func (h *prettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	c := *h
	c.prefix = h.prefix + name + "."

	return &c
}

func (h *prettyHandler) Handle(_ context.Context, r slog.Record) error {
	var fields []slog.Attr

	add := func(a slog.Attr) {
		if h.opts.ReplaceAttr != nil && a.Value.Kind() != slog.KindGroup {
			a = h.opts.ReplaceAttr(nil, a)
		}

		if a.Key != "" {
			fields = append(fields, a)
		}
	}

	if !r.Time.IsZero() {
		add(slog.Time(slog.TimeKey, r.Time))
	}

	add(slog.Any(slog.LevelKey, r.Level))

	if h.opts.AddSource {
		if src := r.Source(); src != nil {
			add(slog.String(slog.SourceKey, fmt.Sprintf("%s:%d", src.File, src.Line)))
		}
	}

	add(slog.String(slog.MessageKey, r.Message))

	for _, a := range h.attrs {
		add(a)
	}

	r.Attrs(func(a slog.Attr) bool {
		a.Key = h.prefix + a.Key
		add(a)

		return true
	})

	var buf bytes.Buffer

	if h.json {
		buf.WriteString("{\n")
	}

	for i, a := range fields {
		h.writeAttr(&buf, i, a, r.Level)
	}

	if h.json {
		buf.WriteString("\n}")
	}

	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

func (h *prettyHandler) writeAttr(buf *bytes.Buffer, i int, a slog.Attr, l slog.Level) {
	if h.json {
		if i > 0 {
			buf.WriteString(",\n")
		}

		buf.WriteString("  ")
		buf.WriteString(h.pal.key.Render(strconv.Quote(a.Key)))
		buf.WriteString(": ")
	} else {
		if i > 0 {
			buf.WriteByte(' ')
		}

		buf.WriteString(h.pal.key.Render(a.Key))
		buf.WriteByte('=')
	}

	if a.Key == slog.LevelKey {
		buf.WriteString(h.pal.level(h.quote(a.Value.String()), l))

		return
	}

	buf.WriteString(h.value(a.Value.Resolve()))
}

func (h *prettyHandler) quote(s string) string {
	if h.json {
		return strconv.Quote(s)
	}

	return s
}

func (h *prettyHandler) value(v slog.Value) string {
	switch v.Kind() {
	case slog.KindString:
		return h.pal.str.Render(h.quote(v.String()))
	case slog.KindInt64:
		return h.pal.num.Render(strconv.FormatInt(v.Int64(), 10))
	case slog.KindUint64:
		return h.pal.num.Render(strconv.FormatUint(v.Uint64(), 10))
	case slog.KindFloat64:
		return h.pal.num.Render(strconv.FormatFloat(v.Float64(), 'g', -1, 64))
	case slog.KindBool:
		if v.Bool() {
			return h.pal.yes.Render("true")
		}

		return h.pal.no.Render("false")
	case slog.KindDuration:
		return h.pal.dur.Render(h.quote(v.Duration().String()))
	case slog.KindTime:
		return h.pal.tim.Render(h.quote(v.Time().Format(time.RFC3339Nano)))
	case slog.KindGroup:
		parts := make([]string, 0, len(v.Group()))
		for _, a := range v.Group() {
			parts = append(parts, a.Key+"="+a.Value.String())
		}

		return h.pal.str.Render(h.quote(strings.Join(parts, " ")))
	}

	if v.Any() == nil {
		return h.pal.null.Render("null")
	}

	if err, ok := v.Any().(error); ok {
		return h.pal.no.Render(h.quote(err.Error()))
	}

	return h.pal.str.Render(h.quote(v.String()))
}
