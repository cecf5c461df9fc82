//go:build !integration

package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"telegram-announce-relay/internal/config"
)

func TestNewJSONRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := newWithOutput(config.LogConfig{Level: "warn", Format: "json"}, &buf)

	l.Info().Msg("hidden")
	l.Warn().Msg("shown")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	if len(lines) != 1 {
		t.Fatalf("expected exactly one line, got %d: %s", len(lines), buf.String())
	}
	var rec map[string]any
	if err := json.Unmarshal(lines[0], &rec); err != nil {
		t.Fatalf("expected JSON output: %v", err)
	}
	if rec["message"] != "shown" || rec["level"] != "warn" {
		t.Fatalf("unexpected record: %v", rec)
	}
}

func TestNewFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	l := newWithOutput(config.LogConfig{Level: "nonsense", Format: "json"}, &buf)
	l.Debug().Msg("debug")
	l.Info().Msg("info")
	if bytes.Contains(buf.Bytes(), []byte(`"debug"`)) {
		t.Fatalf("debug should be filtered at the default level: %s", buf.String())
	}
	if !bytes.Contains(buf.Bytes(), []byte(`"info"`)) {
		t.Fatalf("info should be logged: %s", buf.String())
	}
}

func TestWithAddsContextFields(t *testing.T) {
	var buf bytes.Buffer
	base := newWithOutput(config.LogConfig{Level: "info", Format: "json"}, &buf)

	ctx := WithChatID(WithTraceID(context.Background(), "t-1"), 77)
	With(ctx, base).Info().Msg("hello")

	var rec map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &rec); err != nil {
		t.Fatalf("expected JSON output: %v", err)
	}
	if rec["trace_id"] != "t-1" {
		t.Errorf("trace_id missing: %v", rec)
	}
	if rec["chat_id"] != float64(77) {
		t.Errorf("chat_id missing: %v", rec)
	}
}

func TestFileSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "relay.log")
	var buf bytes.Buffer
	l := newWithOutput(config.LogConfig{Level: "info", Format: "json", File: path, MaxSizeMB: 1}, &buf)
	l.Info().Msg("to file")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("log file not written: %v", err)
	}
	if !bytes.Contains(data, []byte("to file")) {
		t.Fatalf("log file missing record: %s", data)
	}
}
