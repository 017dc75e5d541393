package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/joblift/wsrelease/internal/config"
	"github.com/joblift/wsrelease/internal/npm"
	"github.com/joblift/wsrelease/internal/release"
)

// overrides carries flag values that take precedence over the options file.
// The *Set fields distinguish "flag passed" from "flag at default".
type overrides struct {
	tag           string
	tagSet        bool
	otp           string
	otpSet        bool
	registry      string
	registrySet   bool
	access        string
	accessSet     bool
	skipChecks    bool
	skipChecksSet bool
}

func collectOverrides(cmd *cobra.Command) overrides {
	f := cmd.Flags()
	var ov overrides
	if f.Changed("tag") {
		ov.tag, _ = f.GetString("tag")
		ov.tagSet = true
	}
	if f.Changed("otp") {
		ov.otp, _ = f.GetString("otp")
		ov.otpSet = true
	}
	if f.Changed("registry") {
		ov.registry, _ = f.GetString("registry")
		ov.registrySet = true
	}
	if f.Changed("access") {
		ov.access, _ = f.GetString("access")
		ov.accessSet = true
	}
	if f.Changed("skip-checks") {
		ov.skipChecks, _ = f.GetBool("skip-checks")
		ov.skipChecksSet = true
	}
	return ov
}

// mergeConfig combines the options file with flag overrides.
func mergeConfig(root string, dryRun bool, opts config.Options, ov overrides) release.Config {
	cfg := release.Config{
		Root:       root,
		Workspaces: opts.Workspaces,
		DistTag:    opts.DistTag,
		OTP:        opts.OTP,
		SkipChecks: opts.SkipChecks,
		Publish:    opts.PublishEnabled(),
		Registry:   opts.Registry,
		Access:     opts.Access,
		DryRun:     dryRun,
	}
	if ov.tagSet {
		cfg.DistTag = ov.tag
	}
	if ov.otpSet {
		cfg.OTP = ov.otp
	}
	if ov.registrySet {
		cfg.Registry = ov.registry
	}
	if ov.accessSet {
		cfg.Access = ov.access
	}
	if ov.skipChecksSet {
		cfg.SkipChecks = ov.skipChecks
	}
	return cfg
}

func buildConfig(cmd *cobra.Command) (release.Config, error) {
	rootFlag, _ := cmd.Flags().GetString("root")
	root, err := filepath.Abs(rootFlag)
	if err != nil {
		return release.Config{}, fmt.Errorf("resolving root directory: %w", err)
	}
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	opts, err := config.Load(root)
	if err != nil {
		return release.Config{}, err
	}
	return mergeConfig(root, dryRun, opts, collectOverrides(cmd)), nil
}

func newReleaseRunner(cmd *cobra.Command, cfg release.Config) *release.Runner {
	var prompter release.Prompter = terminalPrompter{}
	if yes, _ := cmd.Flags().GetBool("yes"); yes {
		prompter = autoConfirm{inner: prompter}
	}
	client := npm.NewClient(cfg.Registry)
	return release.NewRunner(cfg, client, prompter, cmd.OutOrStdout(), cmd.ErrOrStderr())
}
