// Package config loads the optional .wsrelease.yaml options file. Command
// line flags override anything set here.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the options file looked up in the monorepo root.
const FileName = ".wsrelease.yaml"

// Options holds the recognized release options.
type Options struct {
	// Workspaces overrides the glob list from the root package.json.
	Workspaces []string `yaml:"workspaces,omitempty"`
	// DistTag forces the distribution tag, skipping resolution from the version.
	DistTag string `yaml:"distTag,omitempty"`
	// OTP seeds the shared one-time password for publishing.
	OTP string `yaml:"otp,omitempty"`
	// SkipChecks bypasses the registry reachability and auth preflight.
	SkipChecks bool `yaml:"skipChecks,omitempty"`
	// Publish disables the publish step entirely when false.
	Publish *bool `yaml:"publish,omitempty"`
	// Registry is the registry URL to publish against.
	Registry string `yaml:"registry,omitempty"`
	// Access is the initial --access value passed to npm publish.
	Access string `yaml:"access,omitempty"`
}

// Load reads .wsrelease.yaml from root. A missing file yields zero Options.
func Load(root string) (Options, error) {
	var opts Options
	data, err := os.ReadFile(filepath.Join(root, FileName))
	if errors.Is(err, fs.ErrNotExist) {
		return opts, nil
	}
	if err != nil {
		return opts, fmt.Errorf("reading %s: %w", FileName, err)
	}
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return opts, fmt.Errorf("parsing %s: %w", FileName, err)
	}
	return opts, nil
}

// PublishEnabled reports the effective publish switch (default true).
func (o Options) PublishEnabled() bool {
	if o.Publish != nil {
		return *o.Publish
	}
	return true
}
