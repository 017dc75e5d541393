package main

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/joblift/wsrelease/internal/testutil"
)

func statusFixture(t *testing.T) string {
	t.Helper()
	root := testutil.WriteRoot(t, "packages/*")
	testutil.WritePackage(t, root, "packages/a", testutil.Package{
		Name:    "@org/a",
		Version: "1.2.3",
	})
	testutil.WritePackage(t, root, "packages/b", testutil.Package{
		Name:    "@org/b",
		Version: "1.2.3",
		Private: true,
	})
	return root
}

func TestStatusCommand_table(t *testing.T) {
	out, _, err := execute(t, "--root", statusFixture(t), "status")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d lines:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "PACKAGE") {
		t.Errorf("missing header: %q", lines[0])
	}
	if !strings.Contains(out, "@org/a") || !strings.Contains(out, "@org/b") {
		t.Errorf("missing workspaces:\n%s", out)
	}
	if !strings.Contains(lines[2], "true") {
		t.Errorf("private flag not shown for @org/b: %q", lines[2])
	}
}

func TestStatusCommand_json(t *testing.T) {
	out, _, err := execute(t, "--root", statusFixture(t), "status", "--json")
	if err != nil {
		t.Fatalf("status --json: %v", err)
	}
	var got []workspaceStatus
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, out)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 workspaces, got %d", len(got))
	}
	if got[0].Name != "@org/a" || got[0].Version != "1.2.3" || got[0].Private {
		t.Errorf("unexpected first entry: %+v", got[0])
	}
	if got[1].Name != "@org/b" || !got[1].Private {
		t.Errorf("unexpected second entry: %+v", got[1])
	}
	if got[0].Path != "packages/a" {
		t.Errorf("unexpected path: %q", got[0].Path)
	}
}

func TestStatusCommand_notConfigured(t *testing.T) {
	_, _, err := execute(t, "--root", t.TempDir(), "status")
	if err == nil {
		t.Fatal("expected error for a directory without package.json")
	}
}
