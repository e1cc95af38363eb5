package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

func decode(t *testing.T, b []byte) map[string]any {
	t.Helper()

	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatalf("invalid JSON record %q: %v", b, err)
	}

	return m
}

func TestMake_Defaults(t *testing.T) {
	l := Make(nil)

	if l.Level() != DefaultLevel {
		t.Errorf("Level() = %v, want %v", l.Level(), DefaultLevel)
	}

	if l.Format() != DefaultFormat {
		t.Errorf("Format() = %v, want %v", l.Format(), DefaultFormat)
	}

	if l.caller != DefaultCaller || l.pretty != DefaultPretty {
		t.Errorf("caller=%v pretty=%v", l.caller, l.pretty)
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	tests := []struct {
		level Level
		log   func(Logger)
		want  bool
	}{
		{LevelTrace, func(l Logger) { l.Trace("m") }, true},
		{LevelDebug, func(l Logger) { l.Trace("m") }, false},
		{LevelDebug, func(l Logger) { l.Debug("m") }, true},
		{LevelInfo, func(l Logger) { l.Debug("m") }, false},
		{LevelInfo, func(l Logger) { l.Info("m") }, true},
		{LevelWarn, func(l Logger) { l.Info("m") }, false},
		{LevelWarn, func(l Logger) { l.Warn("m") }, true},
		{LevelError, func(l Logger) { l.Warn("m") }, false},
		{LevelError, func(l Logger) { l.Error("m") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			var buf bytes.Buffer

			tt.log(Make(&buf, WithLevel(tt.level)))

			if got := buf.Len() > 0; got != tt.want {
				t.Errorf("emitted = %v, want %v: %q", got, tt.want, buf.String())
			}
		})
	}
}

func TestLogger_JSON(t *testing.T) {
	var buf bytes.Buffer

	l := Make(&buf, WithFormat(FormatJSON), WithLevel(LevelTrace))
	l.Trace("synthesized", slog.String("param", "var1"), slog.Int("n", 2))

	m := decode(t, buf.Bytes())

	if m["msg"] != "synthesized" || m["param"] != "var1" || m["n"] != float64(2) {
		t.Errorf("unexpected record: %v", m)
	}

	if m["level"] != "TRACE" {
		t.Errorf("level = %v, want TRACE", m["level"])
	}
}

func TestLogger_Text(t *testing.T) {
	var buf bytes.Buffer

	Make(&buf, WithLevel(LevelInfo)).Info("hello", slog.String("key", "value"))

	out := buf.String()
	for _, s := range []string{"level=INFO", "msg=hello", "key=value"} {
		if !strings.Contains(out, s) {
			t.Errorf("missing %q in %q", s, out)
		}
	}
}

func TestLogger_TimeLayoutNone_OmitsTime(t *testing.T) {
	var buf bytes.Buffer

	Make(&buf, WithFormat(FormatJSON), WithTimeLayout("none")).Warn("x")

	if _, ok := decode(t, buf.Bytes())["time"]; ok {
		t.Errorf("time present: %s", buf.String())
	}
}

func TestLogger_Caller(t *testing.T) {
	for _, enable := range []bool{true, false} {
		var buf bytes.Buffer

		Make(&buf, WithFormat(FormatJSON), WithCaller(enable)).Warn("x")

		src, ok := decode(t, buf.Bytes())["source"]
		if ok != enable {
			t.Fatalf("WithCaller(%v): source present = %v", enable, ok)
		}

		if enable {
			file, _ := src.(map[string]any)["file"].(string)
			if !strings.HasSuffix(file, "log_test.go") {
				t.Errorf("source file = %q, want this file", file)
			}
		}
	}
}

func TestLogger_With(t *testing.T) {
	var buf bytes.Buffer

	base := Make(&buf, WithFormat(FormatJSON))
	scoped := base.With(slog.String("component", "ctor"))

	scoped.Warn("one")

	if m := decode(t, buf.Bytes()); m["component"] != "ctor" {
		t.Errorf("attribute missing: %v", m)
	}

	buf.Reset()
	base.Warn("two")

	if m := decode(t, buf.Bytes()); m["component"] != nil {
		t.Errorf("With modified its source: %v", m)
	}
}

func TestLogger_Wrap(t *testing.T) {
	var buf bytes.Buffer

	base := Make(&buf, WithFormat(FormatJSON), WithLevel(LevelError))
	wrapped := base.Wrap(WithLevel(LevelDebug))

	if base.Level() != LevelError {
		t.Errorf("Wrap modified its source level: %v", base.Level())
	}

	if wrapped.Format() != FormatJSON {
		t.Errorf("Wrap dropped format: %v", wrapped.Format())
	}

	wrapped.Debug("kept")

	if m := decode(t, buf.Bytes()); m["msg"] != "kept" {
		t.Errorf("unexpected record: %v", m)
	}
}

func TestLogger_Zero(t *testing.T) {
	var l Logger

	l.Error("dropped")

	if l.Level() != DefaultLevel || l.Format() != DefaultFormat {
		t.Error("zero logger reports non-default settings")
	}

	if w := l.Wrap(WithLevel(LevelDebug)); w.Level() != LevelDebug {
		t.Errorf("Wrap of zero logger: level %v", w.Level())
	}
}

func TestLogger_Concurrent(t *testing.T) {
	var buf syncBuffer

	l := Make(&buf, WithFormat(FormatJSON))

	var wg sync.WaitGroup

	for range 8 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for range 50 {
				l.With(slog.Int("i", 1)).Warn("x")
				_ = l.Wrap(WithLevel(LevelDebug)).Level()
			}
		}()
	}

	wg.Wait()

	if got := strings.Count(buf.String(), "\n"); got != 8*50 {
		t.Errorf("records = %d, want %d", got, 8*50)
	}
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.String()
}
