package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/joblift/wsrelease/internal/manifest"
	"github.com/joblift/wsrelease/internal/npm"
	"github.com/joblift/wsrelease/internal/release"
	"github.com/joblift/wsrelease/internal/workspace"
)

func newDoctorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose environment for common release issues",
		RunE:  runDoctor,
	}
	cmd.Flags().String("registry", "", "Registry URL to check against")
	cmd.Flags().Bool("skip-checks", false, "Skip the registry reachability and auth checks")
	return cmd
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	ok := true

	// Check npm.
	fmt.Fprint(out, "Checking npm... ")
	if !npm.IsInstalled() {
		fmt.Fprintln(out, "NOT FOUND")
		fmt.Fprintln(out, "  npm is required. Install it from https://nodejs.org/")
		ok = false
	} else if ver, err := npm.Version(cmd.Context()); err != nil {
		fmt.Fprintf(out, "ERROR (%v)\n", err)
		ok = false
	} else {
		fmt.Fprintf(out, "found version %s\n", ver)
	}

	// Check the monorepo layout.
	fmt.Fprint(out, "Checking monorepo... ")
	if !release.Available(cfg.Root) {
		fmt.Fprintln(out, "no package.json at the root")
		fmt.Fprintln(out, "\nSome checks failed. See above for details.")
		return fmt.Errorf("doctor checks failed")
	}
	if err := reportWorkspaces(cmd, cfg.Root, cfg.Workspaces); err != nil {
		fmt.Fprintf(out, "%v\n", err)
		ok = false
	}

	// Check the registry unless asked not to.
	if skip, _ := cmd.Flags().GetBool("skip-checks"); !skip && npm.IsInstalled() {
		client := npm.NewClient(cfg.Registry)
		fmt.Fprintf(out, "Checking registry %s... ", client.Registry())
		if err := client.Ping(cmd.Context(), cmd.ErrOrStderr()); err != nil {
			fmt.Fprintf(out, "UNREACHABLE (%v)\n", err)
			ok = false
		} else {
			fmt.Fprintln(out, "OK")
		}
		fmt.Fprint(out, "Checking authentication... ")
		if err := client.Whoami(cmd.Context(), cmd.ErrOrStderr()); err != nil {
			fmt.Fprintf(out, "FAILED (%v)\n", err)
			ok = false
		} else {
			fmt.Fprintln(out, "OK")
		}
	}

	if ok {
		fmt.Fprintln(out, "\nAll checks passed.")
		return nil
	}
	fmt.Fprintln(out, "\nSome checks failed. See above for details.")
	return fmt.Errorf("doctor checks failed")
}

func reportWorkspaces(cmd *cobra.Command, root string, globs []string) error {
	out := cmd.OutOrStdout()

	if len(globs) == 0 {
		rootFile, err := manifest.Load(filepath.Join(root, "package.json"))
		if err != nil {
			return err
		}
		globs, err = workspace.ResolveGlobs(rootFile)
		if err != nil {
			return err
		}
	}

	all, err := workspace.NewRegistry(root, globs).Workspaces()
	if err != nil {
		return err
	}
	private := 0
	for _, w := range all {
		if w.Private {
			private++
		}
	}
	fmt.Fprintf(out, "found %d workspaces (%d private)\n", len(all), private)
	for _, w := range all {
		marker := ""
		if w.Private {
			marker = " (private, will be skipped)"
		}
		fmt.Fprintf(out, "  %s@%s%s\n", w.Name, w.Manifest.Manifest().Version, marker)
	}
	return nil
}
