// Package testutil builds throwaway monorepo fixtures for tests.
package testutil

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Package describes a workspace package.json to generate.
type Package struct {
	Name    string
	Version string
	Private bool
	Deps    map[string]string
	DevDeps map[string]string
}

// WriteRoot writes a root package.json declaring the given workspace globs
// and returns the monorepo root directory.
func WriteRoot(t *testing.T, globs ...string) string {
	t.Helper()
	root := t.TempDir()
	quoted := make([]string, len(globs))
	for i, g := range globs {
		quoted[i] = fmt.Sprintf("%q", g)
	}
	content := fmt.Sprintf("{\n  \"name\": \"monorepo\",\n  \"private\": true,\n  \"workspaces\": [%s]\n}\n",
		strings.Join(quoted, ", "))
	writeFile(t, filepath.Join(root, "package.json"), content)
	return root
}

// WritePackage writes a workspace package.json under root at the relative
// directory rel and returns the manifest path.
func WritePackage(t *testing.T, root, rel string, p Package) string {
	t.Helper()
	var b strings.Builder
	b.WriteString("{\n")
	fmt.Fprintf(&b, "  \"name\": %q,\n  \"version\": %q", p.Name, p.Version)
	if p.Private {
		b.WriteString(",\n  \"private\": true")
	}
	writeDeps(&b, "dependencies", p.Deps)
	writeDeps(&b, "devDependencies", p.DevDeps)
	b.WriteString("\n}\n")

	path := filepath.Join(root, filepath.FromSlash(rel), "package.json")
	writeFile(t, path, b.String())
	return path
}

func writeDeps(b *strings.Builder, group string, deps map[string]string) {
	if len(deps) == 0 {
		return
	}
	data, _ := json.MarshalIndent(deps, "  ", "  ")
	fmt.Fprintf(b, ",\n  %q: %s", group, data)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}
