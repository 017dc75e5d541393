package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/tidwall/sjson"
)

var (
	// ErrNotFound indicates the manifest file does not exist on disk.
	ErrNotFound = errors.New("manifest not found")
	// ErrParse indicates the manifest file is not valid JSON.
	ErrParse = errors.New("manifest is not valid JSON")
)

// File wraps a package.json document on disk. Reads go through the parsed
// Manifest; mutations are spliced into the original bytes so that every byte
// outside the edited JSON value survives a load/write round trip: key order,
// indentation, line endings, and trailing whitespace all stay as found.
type File struct {
	Path string

	raw []byte
	doc Manifest
}

// Load reads and parses the package.json at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}
	var doc Manifest
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrParse, path, err)
	}
	return &File{Path: path, raw: data, doc: doc}, nil
}

// Manifest returns the parsed view of the document.
func (f *File) Manifest() *Manifest { return &f.doc }

// Bytes returns the current document bytes, including any pending mutations.
func (f *File) Bytes() []byte { return f.raw }

// SetVersion replaces the manifest's version field in place.
func (f *File) SetVersion(version string) error {
	raw, err := sjson.SetBytes(f.raw, "version", version)
	if err != nil {
		return fmt.Errorf("setting version in %s: %w", f.Path, err)
	}
	f.raw = raw
	f.doc.Version = version
	return nil
}

// SetDependency replaces the version specifier of a dependency in the given
// group. The group and dependency must already exist in the document.
func (f *File) SetDependency(group, name, spec string) error {
	deps := f.doc.DependenciesFor(group)
	if _, ok := deps[name]; !ok {
		return fmt.Errorf("%s has no %s entry %q", f.Path, group, name)
	}
	raw, err := sjson.SetBytes(f.raw, group+"."+escapeKey(name), spec)
	if err != nil {
		return fmt.Errorf("setting %s.%s in %s: %w", group, name, f.Path, err)
	}
	f.raw = raw
	deps[name] = spec
	return nil
}

// Write persists the current document bytes back to the original path. With
// no pending mutations this reproduces the loaded file exactly.
func (f *File) Write() error {
	if err := os.WriteFile(f.Path, f.raw, 0644); err != nil {
		return fmt.Errorf("writing manifest %s: %w", f.Path, err)
	}
	return nil
}

// escapeKey escapes characters that are path syntax to the JSON editor, so
// dependency names like "lodash.merge" address a single key.
func escapeKey(key string) string {
	var b strings.Builder
	for _, r := range key {
		switch r {
		case '.', '*', '?', '\\', '|', '#', '@':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
