package output

import (
	"bytes"
	"strings"
	"testing"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{"table", FormatTable, false},
		{"", FormatTable, false},
		{"json", FormatJSON, false},
		{"yaml", FormatYAML, false},
		{"yml", FormatYAML, false},
		{" JSON ", FormatJSON, false},
		{"xml", "", true},
	}

	for _, tt := range tests {
		got, err := ParseFormat(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseFormat(%q) expected error", tt.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseFormat(%q) unexpected error: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestPrinterSuccessColor(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf, FormatTable, true).Success("done")

	if !strings.Contains(buf.String(), "\033[32m") {
		t.Errorf("expected green escape code, got %q", buf.String())
	}

	buf.Reset()
	NewPrinter(&buf, FormatTable, false).Success("done")
	if strings.Contains(buf.String(), "\033[") {
		t.Errorf("expected no escape codes, got %q", buf.String())
	}
}

func TestPrintJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := PrintJSON(&buf, map[string]string{"path": "a.txt"}); err != nil {
		t.Fatalf("PrintJSON failed: %v", err)
	}
	if !strings.Contains(buf.String(), `"path": "a.txt"`) {
		t.Errorf("unexpected JSON output: %q", buf.String())
	}
}
