package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestPackage_LogFunctions_UseDefaultLogger(t *testing.T) {
	original := defaultLog
	defer func() { defaultLog = original }()

	var buf bytes.Buffer

	defaultLog = Make(&buf, WithLevel(LevelTrace), WithFormat(FormatJSON))

	tests := []struct {
		name  string
		fn    func(string, ...slog.Attr)
		level string
	}{
		{"Trace", Trace, "TRACE"},
		{"Debug", Debug, "DEBUG"},
		{"Info", Info, "INFO"},
		{"Warn", Warn, "WARN"},
		{"Error", Error, "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			tt.fn("message", slog.String("key", "value"))

			m := decode(t, buf.Bytes())
			if m["level"] != tt.level || m["key"] != "value" {
				t.Errorf("unexpected record: %v", m)
			}
		})
	}
}

func TestPackage_Config(t *testing.T) {
	original := defaultLog
	defer func() { defaultLog = original }()

	var buf bytes.Buffer

	l := Config(WithOutput(&buf), WithLevel(LevelInfo), WithCaller(true))

	if Default().Level() != LevelInfo || l.Level() != LevelInfo {
		t.Fatalf("Config did not replace the default logger")
	}

	With(slog.String("k", "v")).Info("configured")

	out := buf.String()
	if !strings.Contains(out, "k=v") || !strings.Contains(out, "pkg_test.go") {
		t.Errorf("unexpected output %q", out)
	}
}
