package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestTextFormat(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf, "INFO", "text", false)

	Info("file written", "path", "docs/readme.md", "size", 42)

	out := buf.String()
	if !strings.Contains(out, "[INFO]") {
		t.Errorf("expected level marker in output, got %q", out)
	}
	if !strings.Contains(out, "file written") {
		t.Errorf("expected message in output, got %q", out)
	}
	if !strings.Contains(out, "path=docs/readme.md") {
		t.Errorf("expected path attr in output, got %q", out)
	}
	if !strings.Contains(out, "size=42") {
		t.Errorf("expected size attr in output, got %q", out)
	}
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf, "INFO", "json", false)

	Info("backend ready", "backend", "memory")

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if record["msg"] != "backend ready" {
		t.Errorf("expected msg field, got %v", record["msg"])
	}
	if record["backend"] != "memory" {
		t.Errorf("expected backend field, got %v", record["backend"])
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf, "WARN", "text", false)

	Debug("dropped")
	Info("dropped too")
	Warn("kept")

	out := buf.String()
	if strings.Contains(out, "dropped") {
		t.Errorf("expected debug and info suppressed at WARN, got %q", out)
	}
	if !strings.Contains(out, "kept") {
		t.Errorf("expected warn message present, got %q", out)
	}
}

func TestSetLevelIgnoresInvalid(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf, "INFO", "text", false)

	SetLevel("VERBOSE")

	Info("still info")
	if !strings.Contains(buf.String(), "still info") {
		t.Errorf("invalid level should leave configuration untouched")
	}
}

func TestColorOutput(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf, "INFO", "text", true)

	Info("colored")

	if !strings.Contains(buf.String(), "\033[32m") {
		t.Errorf("expected ANSI color codes when color is enabled, got %q", buf.String())
	}
}

func TestErrAttr(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf, "INFO", "text", false)

	Error("operation failed", Err(errors.New("boom")))

	if !strings.Contains(buf.String(), "error=boom") {
		t.Errorf("expected error attr in output, got %q", buf.String())
	}

	// nil errors produce an empty attr that the handler drops
	buf.Reset()
	Error("no error", Err(nil))
	if strings.Contains(buf.String(), "error=") {
		t.Errorf("expected nil error to be dropped, got %q", buf.String())
	}
}

func TestWith(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf, "INFO", "text", false)

	log := With(Backend("fs"))
	log.Info("bound attrs")

	if !strings.Contains(buf.String(), "backend=fs") {
		t.Errorf("expected bound backend attr, got %q", buf.String())
	}
}
