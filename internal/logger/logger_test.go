package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestLogLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: WARN, Format: TextFormat, Output: &buf})

	log.Debug("debug message")
	log.Info("info message")
	log.Warn("warn message")
	log.Error("error message", nil)

	out := buf.String()
	if strings.Contains(out, "debug message") {
		t.Error("DEBUG message should have been filtered at WARN level")
	}
	if strings.Contains(out, "info message") {
		t.Error("INFO message should have been filtered at WARN level")
	}
	if !strings.Contains(out, "warn message") {
		t.Error("WARN message missing from output")
	}
	if !strings.Contains(out, "error message") {
		t.Error("ERROR message missing from output")
	}
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: DEBUG, Format: JSONFormat, Output: &buf})

	log.Info("chart generated", Fields{"filename": "chart.png", "chart_type": "line"})

	var entry LogEntry
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}
	if entry.Level != "INFO" {
		t.Errorf("Expected level INFO, got %s", entry.Level)
	}
	if entry.Message != "chart generated" {
		t.Errorf("Expected message 'chart generated', got %q", entry.Message)
	}
	if entry.Fields["filename"] != "chart.png" {
		t.Errorf("Expected filename field 'chart.png', got %v", entry.Fields["filename"])
	}
}

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: INFO, Format: TextFormat, Output: &buf})

	log.WithComponent("renderer").Info("rendering chart")

	if !strings.Contains(buf.String(), "[renderer]") {
		t.Errorf("Expected component tag in output, got %q", buf.String())
	}
}

func TestErrorField(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: INFO, Format: JSONFormat, Output: &buf})

	log.Error("write failed", errTest{})

	var entry LogEntry
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}
	if entry.Error != "disk full" {
		t.Errorf("Expected error 'disk full', got %q", entry.Error)
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]LogLevel{
		"debug":   DEBUG,
		"INFO":    INFO,
		"Warning": WARN,
		"error":   ERROR,
		"bogus":   INFO,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

type errTest struct{}

func (errTest) Error() string { return "disk full" }
