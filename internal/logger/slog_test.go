package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestSlogLogger_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	l := newSlogLogger(Config{Level: LevelInfo, Format: "json"}, &buf)

	l.Info("metric created", String("metric_id", "m1"), Int("display_order", 2))

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}
	if entry["msg"] != "metric created" {
		t.Errorf("msg = %v", entry["msg"])
	}
	if entry["metric_id"] != "m1" {
		t.Errorf("metric_id = %v", entry["metric_id"])
	}
}

func TestSlogLogger_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	l := newSlogLogger(Config{Level: LevelWarn, Format: "text"}, &buf)

	l.Info("dropped")
	l.Warn("kept")

	out := buf.String()
	if strings.Contains(out, "dropped") {
		t.Error("info line should be filtered at warn level")
	}
	if !strings.Contains(out, "kept") {
		t.Error("warn line missing")
	}
}

func TestSlogLogger_WithContext(t *testing.T) {
	var buf bytes.Buffer
	l := newSlogLogger(Config{Level: LevelInfo, Format: "json"}, &buf)

	ctx := WithRequestID(context.Background(), "req-42")
	l.WithContext(ctx).Info("handled")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if entry["request_id"] != "req-42" {
		t.Errorf("request_id = %v", entry["request_id"])
	}
}
