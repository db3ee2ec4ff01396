package logging_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"hourbook/logging"
)

func TestNewWithWriterJSON(t *testing.T) {
	var buf bytes.Buffer
	log := logging.NewWithWriter(&buf, "warn", "json")

	log.Info().Msg("hidden")
	log.Warn().Str("owner_id", "u1").Msg("visible")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d log lines, want 1: %q", len(lines), buf.String())
	}
	var record map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &record); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if record["message"] != "visible" || record["owner_id"] != "u1" || record["level"] != "warn" {
		t.Errorf("record = %v", record)
	}
}

func TestNewWithWriterDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	log := logging.NewWithWriter(&buf, "loud", "json")
	log.Debug().Msg("debug")
	log.Info().Msg("info")
	if strings.Contains(buf.String(), `"debug"`) || !strings.Contains(buf.String(), `"info"`) {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestNewWithWriterConsole(t *testing.T) {
	var buf bytes.Buffer
	log := logging.NewWithWriter(&buf, "info", "console")
	log.Info().Msg("hello")
	if strings.HasPrefix(buf.String(), "{") || !strings.Contains(buf.String(), "hello") {
		t.Errorf("console output = %q", buf.String())
	}
}
