package workspace

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/tidwall/gjson"

	"github.com/joblift/wsrelease/internal/manifest"
)

// ErrNotConfigured indicates the root manifest declares no workspace globs.
var ErrNotConfigured = errors.New("workspaces are not configured")

// Workspace describes one discovered sub-package. Released is the only
// mutable field; it flips to true on the first successful publish and is read
// again when release URLs are reported.
type Workspace struct {
	Name     string
	Root     string // absolute package directory
	RelRoot  string // package directory relative to the monorepo root
	Private  bool
	Released bool
	Manifest *manifest.File
}

// ResolveGlobs extracts the workspace glob list from a root package.json.
// The workspaces field may be a plain array of globs or an object carrying a
// "packages" array (yarn's extended form).
func ResolveGlobs(root *manifest.File) ([]string, error) {
	field := gjson.GetBytes(root.Bytes(), "workspaces")
	packages := field
	if field.IsObject() {
		packages = field.Get("packages")
	}
	if !packages.IsArray() {
		return nil, fmt.Errorf("%w in %s", ErrNotConfigured, root.Path)
	}
	var globs []string
	for _, g := range packages.Array() {
		if s := g.String(); s != "" {
			globs = append(globs, s)
		}
	}
	if len(globs) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNotConfigured, root.Path)
	}
	return globs, nil
}

// Registry discovers and caches the workspace descriptors for one run. The
// cached slice is handed out by reference so Released flags set during
// publishing stay visible to later steps.
type Registry struct {
	root   string
	globs  []string
	cached []*Workspace
}

// NewRegistry creates a registry rooted at the monorepo root directory.
func NewRegistry(root string, globs []string) *Registry {
	return &Registry{root: root, globs: globs}
}

// Workspaces returns the discovered descriptors, discovering on first call.
func (r *Registry) Workspaces() ([]*Workspace, error) {
	if r.cached != nil {
		return r.cached, nil
	}
	found, err := discover(r.root, r.globs)
	if err != nil {
		return nil, err
	}
	r.cached = found
	return r.cached, nil
}

// FindByName returns the workspace with the given package name, or nil.
func (r *Registry) FindByName(name string) (*Workspace, error) {
	all, err := r.Workspaces()
	if err != nil {
		return nil, err
	}
	for _, w := range all {
		if w.Name == name {
			return w, nil
		}
	}
	return nil, nil
}

// Names returns the set of discovered package names.
func (r *Registry) Names() (map[string]bool, error) {
	all, err := r.Workspaces()
	if err != nil {
		return nil, err
	}
	names := make(map[string]bool, len(all))
	for _, w := range all {
		names[w.Name] = true
	}
	return names, nil
}

func discover(root string, globs []string) ([]*Workspace, error) {
	var found []*Workspace
	seen := make(map[string]bool)
	for _, glob := range globs {
		matches, err := doublestar.FilepathGlob(filepath.Join(root, filepath.FromSlash(glob), "package.json"))
		if err != nil {
			return nil, fmt.Errorf("workspace glob %q: %w", glob, err)
		}
		sort.Strings(matches)
		for _, path := range matches {
			dir := filepath.Dir(path)
			if seen[dir] {
				continue
			}
			seen[dir] = true

			file, err := manifest.Load(path)
			if err != nil {
				return nil, err
			}
			rel, err := filepath.Rel(root, dir)
			if err != nil {
				return nil, fmt.Errorf("resolving workspace path %s: %w", dir, err)
			}
			found = append(found, &Workspace{
				Name:     file.Manifest().Name,
				Root:     dir,
				RelRoot:  rel,
				Private:  file.Manifest().Private,
				Manifest: file,
			})
		}
	}
	if len(found) == 0 {
		return nil, fmt.Errorf("no workspace manifests matched %v under %s", globs, root)
	}
	return found, nil
}
