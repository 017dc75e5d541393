package release

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/joblift/wsrelease/internal/manifest"
	"github.com/joblift/wsrelease/internal/testutil"
	"github.com/joblift/wsrelease/internal/version"
)

func TestResolveDistTag(t *testing.T) {
	tests := []struct {
		name     string
		ver      string
		explicit string
		want     string
	}{
		{"explicit wins", "1.0.0-beta.1", "next", "next"},
		{"explicit wins over stable", "1.0.0", "next", "next"},
		{"prerelease id", "1.0.0-beta.1", "", "beta"},
		{"stable default", "1.0.0", "", "latest"},
		{"numeric prerelease falls back", "1.0.0-2", "", "latest"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveDistTag(tt.ver, tt.explicit)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("ResolveDistTag(%q, %q) = %q, want %q", tt.ver, tt.explicit, got, tt.want)
			}
		})
	}
}

func TestResolveDistTag_invalidVersion(t *testing.T) {
	if _, err := ResolveDistTag("banana", ""); !errors.Is(err, version.ErrInvalid) {
		t.Fatalf("err = %v, want ErrInvalid", err)
	}
}

func loadManifest(t *testing.T, root, rel string) *manifest.Manifest {
	t.Helper()
	f, err := manifest.Load(filepath.Join(root, filepath.FromSlash(rel), "package.json"))
	if err != nil {
		t.Fatal(err)
	}
	return f.Manifest()
}

func TestBump_endToEnd(t *testing.T) {
	root := twoPackageRepo(t)
	r := newTestRunner(root, Config{Publish: true}, nil, nil)

	if err := r.Bump("2.0.0"); err != nil {
		t.Fatal(err)
	}

	a := loadManifest(t, root, "packages/a")
	b := loadManifest(t, root, "packages/b")
	if a.Version != "2.0.0" {
		t.Errorf("a.version = %q", a.Version)
	}
	if b.Version != "2.0.0" {
		t.Errorf("b.version = %q", b.Version)
	}
	if b.Dependencies["@org/a"] != "^2.0.0" {
		t.Errorf("b.dependencies[@org/a] = %q, want ^2.0.0", b.Dependencies["@org/a"])
	}
	if b.Dependencies["left-pad"] != "^1.3.0" {
		t.Errorf("non-workspace dependency was rewritten: %q", b.Dependencies["left-pad"])
	}
}

func TestBump_rewritesDevDependencies(t *testing.T) {
	root := testutil.WriteRoot(t, "packages/*")
	testutil.WritePackage(t, root, "packages/a", testutil.Package{Name: "a", Version: "1.0.0"})
	testutil.WritePackage(t, root, "packages/b", testutil.Package{
		Name: "b", Version: "1.0.0",
		DevDeps: map[string]string{"a": "~1.0.0"},
	})
	r := newTestRunner(root, Config{Publish: true}, nil, nil)

	if err := r.Bump("1.1.0"); err != nil {
		t.Fatal(err)
	}
	b := loadManifest(t, root, "packages/b")
	if b.DevDependencies["a"] != "~1.1.0" {
		t.Errorf("b.devDependencies[a] = %q, want ~1.1.0", b.DevDependencies["a"])
	}
}

func TestBump_sameVersionWarnsButPersists(t *testing.T) {
	root := twoPackageRepo(t)
	r := newTestRunner(root, Config{Publish: true}, nil, nil)

	if err := r.Bump("1.0.0"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(r.errOut.String(), "Warning: @org/a is already at version 1.0.0") {
		t.Errorf("missing warning, stderr: %q", r.errOut.String())
	}
	b := loadManifest(t, root, "packages/b")
	if b.Version != "1.0.0" {
		t.Errorf("b.version = %q", b.Version)
	}
	if b.Dependencies["@org/a"] != "^1.0.0" {
		t.Errorf("sibling rewrite skipped: %q", b.Dependencies["@org/a"])
	}
}

func TestBump_dryRunMutatesNothing(t *testing.T) {
	root := twoPackageRepo(t)
	before, err := os.ReadFile(filepath.Join(root, "packages", "a", "package.json"))
	if err != nil {
		t.Fatal(err)
	}
	r := newTestRunner(root, Config{Publish: true, DryRun: true}, nil, nil)

	if err := r.Bump("2.0.0"); err != nil {
		t.Fatal(err)
	}
	after, err := os.ReadFile(filepath.Join(root, "packages", "a", "package.json"))
	if err != nil {
		t.Fatal(err)
	}
	if string(before) != string(after) {
		t.Error("dry run modified a manifest")
	}
	if !strings.Contains(r.out.String(), "@org/a") || !strings.Contains(r.out.String(), "@org/b") {
		t.Errorf("dry run should list packages, got %q", r.out.String())
	}
}

func TestBump_invalidVersion(t *testing.T) {
	root := twoPackageRepo(t)
	r := newTestRunner(root, Config{Publish: true}, nil, nil)
	if err := r.Bump("not-a-version"); !errors.Is(err, version.ErrInvalid) {
		t.Fatalf("err = %v, want ErrInvalid", err)
	}
}

func TestBump_explicitDistTagSticksForRelease(t *testing.T) {
	root := twoPackageRepo(t)
	r := newTestRunner(root, Config{Publish: true, DistTag: "next"}, nil, nil)
	if err := r.Bump("2.0.0"); err != nil {
		t.Fatal(err)
	}
	if r.distTag != "next" {
		t.Errorf("distTag = %q, want next", r.distTag)
	}
}
