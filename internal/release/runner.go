// Package release drives the workspace release lifecycle: preflight checks,
// version bumping across all workspace manifests, sequential publishing with
// interactive recovery, and release URL reporting.
package release

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/joblift/wsrelease/internal/manifest"
	"github.com/joblift/wsrelease/internal/npm"
	"github.com/joblift/wsrelease/internal/workspace"
)

// Config holds the recognized release options after flags and the options
// file have been merged.
type Config struct {
	Root       string // monorepo root, absolute
	Workspaces []string
	DistTag    string
	OTP        string
	SkipChecks bool
	Publish    bool
	Registry   string
	Access     string
	DryRun     bool
}

// Prompter supplies interactive answers during publishing. The command layer
// implements it on top of a terminal; tests script it.
type Prompter interface {
	// OTP asks the user for a one-time password. reason explains why.
	OTP(reason string) (string, error)
	// Confirm asks a yes/no question.
	Confirm(question string) (bool, error)
}

// Publisher is the registry command boundary consumed by the engine.
// *npm.Client satisfies it.
type Publisher interface {
	Publish(ctx context.Context, dir string, opts npm.PublishOptions) error
	CheckRegistry(ctx context.Context, out io.Writer) error
	Registry() string
}

// Runner executes the release lifecycle hooks against one monorepo. Hooks
// are called in order: Init, Bump, Release, AfterRelease; Bump and Release
// may also run standalone.
type Runner struct {
	cfg      Config
	npm      Publisher
	prompter Prompter
	out      io.Writer
	errOut   io.Writer

	registry *workspace.Registry
	distTag  string
	version  string
}

// NewRunner wires a runner from its collaborators.
func NewRunner(cfg Config, pub Publisher, prompter Prompter, out, errOut io.Writer) *Runner {
	return &Runner{cfg: cfg, npm: pub, prompter: prompter, out: out, errOut: errOut}
}

// Available reports whether root looks releasable, i.e. carries a
// package.json.
func Available(root string) bool {
	info, err := os.Stat(filepath.Join(root, "package.json"))
	return err == nil && !info.IsDir()
}

// Init verifies the monorepo is workable and, unless disabled, that the
// registry is reachable and the user authenticated.
func (r *Runner) Init(ctx context.Context) error {
	if _, err := r.workspaces(); err != nil {
		return err
	}
	if r.cfg.SkipChecks {
		return nil
	}
	return r.npm.CheckRegistry(ctx, r.errOut)
}

// workspaces discovers the workspace descriptors on first use and returns
// the same cached slice afterwards.
func (r *Runner) workspaces() ([]*workspace.Workspace, error) {
	if r.registry == nil {
		rootFile, err := manifest.Load(filepath.Join(r.cfg.Root, "package.json"))
		if err != nil {
			return nil, err
		}
		globs := r.cfg.Workspaces
		if len(globs) == 0 {
			globs, err = workspace.ResolveGlobs(rootFile)
			if err != nil {
				return nil, err
			}
		}
		r.registry = workspace.NewRegistry(r.cfg.Root, globs)
	}
	return r.registry.Workspaces()
}
