package logger

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/goccy/go-json"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestCloudRunHandler_Shape(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewCloudRunHandlerWriter(slog.LevelInfo, &buf)).With("product", "vbr")

	log.Warn("layout version mismatch", "stored", 2, "error", errors.New("boom"))
	log.Debug("dropped")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d: %q", len(lines), buf.String())
	}

	var event struct {
		Severity string         `json:"severity"`
		Message  string         `json:"message"`
		Data     map[string]any `json:"data"`
	}
	if err := json.Unmarshal([]byte(lines[0]), &event); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if event.Severity != "WARNING" {
		t.Fatalf("expected WARNING, got %q", event.Severity)
	}
	if event.Message != "layout version mismatch" {
		t.Fatalf("unexpected message %q", event.Message)
	}
	if event.Data["product"] != "vbr" {
		t.Fatalf("expected product attr, got %v", event.Data)
	}
	if event.Data["error"] != "boom" {
		t.Fatalf("expected flattened error, got %v", event.Data["error"])
	}
}

func TestFromContext_Default(t *testing.T) {
	if FromContext(context.Background()) == nil {
		t.Fatal("expected default logger")
	}
	custom := slog.New(NewTestHandler(slog.LevelInfo))
	ctx := ToContext(context.Background(), custom)
	if FromContext(ctx) != custom {
		t.Fatal("expected stored logger")
	}
}
