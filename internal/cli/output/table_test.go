package output

import (
	"bytes"
	"strings"
	"testing"
)

type listing struct{}

func (listing) Headers() []string { return []string{"NAME", "SIZE"} }
func (listing) Rows() [][]string {
	return [][]string{
		{"docs", "-"},
		{"readme.md", "120"},
	}
}

func TestPrintTable(t *testing.T) {
	var buf bytes.Buffer
	if err := PrintTable(&buf, listing{}); err != nil {
		t.Fatalf("PrintTable failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"NAME", "SIZE", "docs", "readme.md", "120"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in table output, got:\n%s", want, out)
		}
	}
}

func TestSimpleTable(t *testing.T) {
	var buf bytes.Buffer
	err := SimpleTable(&buf, [][2]string{
		{"Path", "docs/readme.md"},
		{"Size", "120"},
	})
	if err != nil {
		t.Fatalf("SimpleTable failed: %v", err)
	}

	if !strings.Contains(buf.String(), "docs/readme.md") {
		t.Errorf("expected value in output, got:\n%s", buf.String())
	}
}
