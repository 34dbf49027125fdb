package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{" warn ", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelWarn},
		{"verbose", slog.LevelWarn},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestPackageLoggerFollowsInit(t *testing.T) {
	log := L("tree")

	var buf bytes.Buffer
	Init("json", "debug", &buf)
	defer Init("text", "warn", nil)

	log.Debug("built forest", KeyPID, 42)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log output is not JSON: %v (%q)", err, buf.String())
	}
	if entry[KeyComponent] != "tree" {
		t.Errorf("component = %v, want tree", entry[KeyComponent])
	}
	if entry["msg"] != "built forest" {
		t.Errorf("msg = %v", entry["msg"])
	}
}

func TestInitFiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	Init("text", "error", &buf)
	defer Init("text", "warn", nil)

	L("proc").Warn("dropped")
	L("proc").Error("kept")

	out := buf.String()
	if strings.Contains(out, "dropped") {
		t.Errorf("warn record written at error level: %q", out)
	}
	if !strings.Contains(out, "kept") {
		t.Errorf("error record missing: %q", out)
	}
}
