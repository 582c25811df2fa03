package log

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestLoggerAddsComponent(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: slog.LevelInfo, Component: ComponentEngine, Output: &buf})

	l.Info("query done", FieldRows, 3)
	out := buf.String()
	if !strings.Contains(out, "component=engine") || !strings.Contains(out, "rows=3") {
		t.Fatalf("unexpected log line: %q", out)
	}

	buf.Reset()
	l.WithComponent(ComponentSource).Warn("slow load")
	if !strings.Contains(buf.String(), "component=source") {
		t.Fatalf("expected component=source, got %q", buf.String())
	}
	if strings.Count(buf.String(), "component=") != 1 {
		t.Fatalf("component should appear once: %q", buf.String())
	}
}

func TestLoggerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: slog.LevelWarn, Output: &buf})
	l.Info("hidden")
	l.Debug("hidden")
	if buf.Len() != 0 {
		t.Fatalf("expected no output below warn, got %q", buf.String())
	}
	l.Error("shown")
	if !strings.Contains(buf.String(), "component=app") {
		t.Fatalf("default component should be app: %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"", slog.LevelInfo, false},
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{" warn ", slog.LevelWarn, false},
		{"warning", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"verbose", slog.LevelInfo, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestLogFields(t *testing.T) {
	f := NewFields().
		WithOperation(OpLoad).
		WithTable("deposits", 4).
		WithError(errors.New("boom")).
		WithError(nil)
	if f[FieldOperation] != OpLoad || f[FieldTable] != "deposits" || f[FieldRows] != 4 || f[FieldError] != "boom" {
		t.Fatalf("unexpected fields: %v", f)
	}
	if len(f.ToSlice()) != 2*len(f) {
		t.Fatalf("ToSlice length mismatch: %v", f.ToSlice())
	}
}
