package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"go.opentelemetry.io/otel/trace"
)

func lines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]any
		if err := json.Unmarshal([]byte(line), &m); err != nil {
			t.Fatalf("log line is not JSON: %v (%s)", err, line)
		}
		out = append(out, m)
	}
	return out
}

func only(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	ls := lines(t, buf)
	if len(ls) != 1 {
		t.Fatalf("expected one log line, got %d: %q", len(ls), buf.String())
	}
	return ls[0]
}

func TestLoggerFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "debug", "stt").WithComponent("client")

	log.Info("transcribed",
		Fields(FieldModelID, "scribe_v1", FieldStatus, 200),
		MergeWithDuration(nil, 1500_000_000),
	)

	m := only(t, &buf)
	want := map[string]any{
		"message":      "transcribed",
		"level":        "info",
		FieldComponent: "client",
		FieldModelID:   "scribe_v1",
		FieldStatus:    float64(200),
		FieldDuration:  float64(1500),
	}
	for k, v := range want {
		if m[k] != v {
			t.Errorf("%s: expected %v, got %v", k, v, m[k])
		}
	}
}

func TestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "warn", "stt")

	log.Debug("hidden")
	log.Info("hidden")
	log.Warn("shown")
	log.WithError(errors.New("401 invalid api key")).Error("failed")

	ls := lines(t, &buf)
	if len(ls) != 2 {
		t.Fatalf("expected warn and error only, got %q", buf.String())
	}
	if ls[0]["level"] != "warn" || ls[1]["error"] != "401 invalid api key" {
		t.Errorf("unexpected lines %v", ls)
	}

	buf.Reset()
	NewWithWriter(&buf, "loud", "stt").Info("default level is info")
	if len(lines(t, &buf)) != 1 {
		t.Error("an unknown level should fall back to info")
	}
}

func TestWithContext(t *testing.T) {
	var buf bytes.Buffer
	base := NewWithWriter(&buf, "info", "stt")

	if got := base.WithContext(t.Context()); got != base {
		t.Error("expected the same logger when the context carries nothing")
	}

	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	ctx := trace.ContextWithSpanContext(t.Context(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID: traceID,
		SpanID:  spanID,
	}))
	ctx = ContextWithRequestID(ctx, "req-1")

	base.WithContext(ctx).Info("hello")
	m := only(t, &buf)
	if m[FieldRequestID] != "req-1" {
		t.Errorf("expected request_id=req-1, got %v", m[FieldRequestID])
	}
	if m[FieldTraceID] != "4bf92f3577b34da6a3ce929d0e0e4736" {
		t.Errorf("expected trace id, got %v", m[FieldTraceID])
	}
}

func TestRequestIDFromContext(t *testing.T) {
	if _, ok := RequestIDFromContext(context.Background()); ok {
		t.Error("expected no id")
	}
	if _, ok := RequestIDFromContext(ContextWithRequestID(context.Background(), "")); ok {
		t.Error("an empty id does not count")
	}
}

func TestGlobalAndNamed(t *testing.T) {
	var buf bytes.Buffer
	prev := GetGlobalLogger()
	t.Cleanup(func() { SetGlobalLogger(prev) })

	SetGlobalLogger(NewWithWriter(&buf, "debug", "stt-webhook"))
	Info("global")
	Get("archive").Warn("component")

	quiet := NewNop()
	Register("noisy-dependency", quiet)
	if Get("noisy-dependency") != quiet {
		t.Error("expected the registered logger")
	}

	ls := lines(t, &buf)
	if len(ls) != 2 {
		t.Fatalf("expected two lines, got %q", buf.String())
	}
	if ls[0]["message"] != "global" || ls[1][FieldComponent] != "archive" {
		t.Errorf("unexpected lines %v", ls)
	}
}

func TestNewFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("LOG_FORMAT", "json")
	if lvl := NewFromEnv("env-svc").Zerolog().GetLevel().String(); lvl != "error" {
		t.Errorf("expected level error, got %s", lvl)
	}
	if l := NewDefault("svc"); l.service != "svc" || l.Zerolog().GetLevel().String() != "info" {
		t.Errorf("unexpected default logger %+v", l)
	}
}

func TestConfig(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()
	if cfg.Level != "info" || cfg.Format != "console" || cfg.Output != "stderr" || !cfg.Timestamp {
		t.Errorf("unexpected defaults %+v", cfg)
	}

	tests := []struct {
		cfg    Config
		errKey string
	}{
		{Config{Level: "info", Format: "json", Output: "stdout"}, ""},
		{Config{Level: "debug", Format: "pretty", Output: "stderr"}, ""},
		{Config{Level: "bad", Format: "json", Output: "stdout"}, "logging.level"},
		{Config{Level: "info", Format: "xml", Output: "stdout"}, "logging.format"},
		{Config{Level: "info", Format: "json", Output: "file"}, "logging.output"},
	}
	for _, tt := range tests {
		err := tt.cfg.Validate()
		if tt.errKey == "" {
			if err != nil {
				t.Errorf("%+v: unexpected error %v", tt.cfg, err)
			}
			continue
		}
		if err == nil || !strings.HasPrefix(err.Error(), tt.errKey) {
			t.Errorf("%+v: expected %s error, got %v", tt.cfg, tt.errKey, err)
		}
	}
}

func TestFields(t *testing.T) {
	m := Fields("a", 1, 2, "ignored", "dangling")
	if len(m) != 1 || m["a"] != 1 {
		t.Errorf("expected only a=1, got %v", m)
	}
}
