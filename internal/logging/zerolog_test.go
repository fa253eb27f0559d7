package logging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestConsoleLogger_WritesFields(t *testing.T) {
	var buf bytes.Buffer
	log, err := New("info", "console", &buf)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	log.With("module", "http").Info(context.Background(), "request", "status", 200, "err", errors.New("boom"))

	out := buf.String()
	for _, s := range []string{"INF", "request", "module=http", "status=200", "boom"} {
		if !strings.Contains(out, s) {
			t.Fatalf("expected %q in output, got:\n%s", s, out)
		}
	}
}

func TestConsoleLogger_LevelAndRedaction(t *testing.T) {
	var buf bytes.Buffer
	log := NewConsoleLogger(&buf, slog.LevelWarn)
	ctx := context.Background()

	log.Info(ctx, "hidden")
	log.With("token", "abc.def.ghi").Warn(ctx, "login", "password", "Secr3t!", "dangling")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info line must be filtered:\n%s", out)
	}
	if strings.Contains(out, "Secr3t!") || strings.Contains(out, "abc.def.ghi") {
		t.Fatalf("secret leaked:\n%s", out)
	}
	if !strings.Contains(out, "!BADKEY") {
		t.Fatalf("expected dangling value under !BADKEY:\n%s", out)
	}
}

func TestConsoleLogger_ContextAttributes(t *testing.T) {
	var buf bytes.Buffer
	log := NewConsoleLogger(&buf, slog.LevelInfo)

	ctx := ContextWith(context.Background(), "request_id", "r-1", "token", "abc.def.ghi")
	log.Info(ctx, "request", "status", 200)

	out := buf.String()
	for _, s := range []string{"request_id=r-1", "status=200"} {
		if !strings.Contains(out, s) {
			t.Fatalf("expected %q in output, got:\n%s", s, out)
		}
	}
	if strings.Contains(out, "abc.def.ghi") {
		t.Fatalf("secret leaked:\n%s", out)
	}
}
