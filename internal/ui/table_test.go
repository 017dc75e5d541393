package ui

import (
	"strings"
	"testing"
)

func TestTable(t *testing.T) {
	var buf strings.Builder
	tbl := NewTable(&buf, "PACKAGE", "VERSION", "PRIVATE")
	tbl.Row("@org/a", "1.0.0", false)
	tbl.Row("@org/b", "1.0.0", true)
	if err := tbl.Flush(); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "PACKAGE") {
		t.Errorf("header line = %q", lines[0])
	}
	if !strings.Contains(lines[2], "true") {
		t.Errorf("row line = %q", lines[2])
	}
}
