package log

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" WARN ":  slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestLoggerAddsComponent(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Component: ComponentSession, Handler: slog.NewTextHandler(&buf, nil)})
	l.Info("hello", FieldStreak, 3)
	out := buf.String()
	if !strings.Contains(out, "component=session") || !strings.Contains(out, "streak=3") {
		t.Fatalf("unexpected log line %q", out)
	}
}

func TestFieldsBuilder(t *testing.T) {
	f := NewFields().
		WithTransaction(7, "expense", 1250, "Food").
		WithStreak(7, "continued", "weekly").
		WithError(nil)
	if f[FieldTxID] != int64(7) || f[FieldAmountCents] != int64(1250) || f[FieldMilestone] != "weekly" {
		t.Fatalf("unexpected fields %v", f)
	}
	if _, ok := f[FieldError]; ok {
		t.Fatalf("nil error must not add a field")
	}
	if len(f.ToSlice()) != 2*len(f) {
		t.Fatalf("slice length mismatch")
	}
}

func TestFromContext(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Component: ComponentTrace, Handler: slog.NewTextHandler(&buf, nil)}).
		With(FieldRequestID, "req_1")
	ctx := context.WithValue(context.Background(), LoggerContextKey, l)

	FromContext(ctx).Info("scoped")
	if !strings.Contains(buf.String(), "request_id=req_1") {
		t.Fatalf("expected request id in %q", buf.String())
	}
	if got := FromContext(context.Background()).Component(); got != "unknown" {
		t.Fatalf("fallback component = %q", got)
	}
}
