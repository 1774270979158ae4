package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"
	"time"
)

// captureLogOutput reinitialises the logger to write into a buffer for the
// duration of f.
func captureLogOutput(level Level, format Format, f func()) string {
	var buf bytes.Buffer

	oldLogger := defaultLogger
	InitLogger(&buf, level, format)

	f()

	defaultLogger = oldLogger

	return buf.String()
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{"INFO", LevelInfo, false},
		{"", LevelInfo, false},
		{"warning", LevelWarn, false},
		{"error", LevelError, false},
		{"trace", LevelInfo, true},
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

func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat("json"); err != nil || f != FormatJSON {
		t.Errorf("ParseFormat(json) = %v, %v", f, err)
	}
	if f, err := ParseFormat("text"); err != nil || f != FormatText {
		t.Errorf("ParseFormat(text) = %v, %v", f, err)
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("ParseFormat(xml) should fail")
	}
}

func TestLevelFiltering(t *testing.T) {
	output := captureLogOutput(LevelWarn, FormatText, func() {
		Debug("debug message")
		Info("info message")
		Warn("warn message")
		Error("error message")
	})

	if strings.Contains(output, "debug message") || strings.Contains(output, "info message") {
		t.Errorf("messages below warn were logged: %s", output)
	}
	if !strings.Contains(output, "warn message") || !strings.Contains(output, "error message") {
		t.Errorf("expected warn and error messages, got: %s", output)
	}
}

func TestJSONFormat(t *testing.T) {
	output := captureLogOutput(LevelDebug, FormatJSON, func() {
		Violations("stdin", 3, 2, "script", "iast")
	})

	var entry map[string]any
	if err := json.Unmarshal([]byte(output), &entry); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, output)
	}

	if entry["msg"] != "forbidden_letters" {
		t.Errorf("msg = %v", entry["msg"])
	}
	if entry["line"] != float64(3) || entry["violations"] != float64(2) || entry["script"] != "iast" {
		t.Errorf("unexpected attributes: %v", entry)
	}
	if _, err := time.Parse(time.RFC3339, entry["time"].(string)); err != nil {
		t.Errorf("time is not RFC3339: %v", entry["time"])
	}
}

func TestBatchDone(t *testing.T) {
	output := captureLogOutput(LevelInfo, FormatText, func() {
		BatchDone("verses.txt", 10, 1, 1500*time.Millisecond)
	})

	for _, want := range []string{"batch_done", "source=verses.txt", "lines=10", "invalid=1", "duration_ms=1500"} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q: %s", want, output)
		}
	}
}

func TestGetLogger(t *testing.T) {
	InitLogger(os.Stderr, LevelInfo, FormatText)

	if GetLogger() == nil {
		t.Fatal("GetLogger returned nil")
	}
}
