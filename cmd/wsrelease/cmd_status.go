package main

import (
	"encoding/json"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/joblift/wsrelease/internal/manifest"
	"github.com/joblift/wsrelease/internal/ui"
	"github.com/joblift/wsrelease/internal/workspace"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "List the discovered workspaces",
		RunE:  runStatus,
	}
	cmd.Flags().Bool("json", false, "Output as JSON")
	return cmd
}

type workspaceStatus struct {
	Name     string `json:"name"`
	Version  string `json:"version"`
	Private  bool   `json:"private"`
	Path     string `json:"path"`
	Registry string `json:"registry,omitempty"`
}

func runStatus(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	globs := cfg.Workspaces
	if len(globs) == 0 {
		rootFile, err := manifest.Load(filepath.Join(cfg.Root, "package.json"))
		if err != nil {
			return err
		}
		globs, err = workspace.ResolveGlobs(rootFile)
		if err != nil {
			return err
		}
	}

	all, err := workspace.NewRegistry(cfg.Root, globs).Workspaces()
	if err != nil {
		return err
	}

	statuses := make([]workspaceStatus, 0, len(all))
	for _, w := range all {
		statuses = append(statuses, workspaceStatus{
			Name:     w.Name,
			Version:  w.Manifest.Manifest().Version,
			Private:  w.Private,
			Path:     w.RelRoot,
			Registry: w.Manifest.Manifest().PublishConfig.Registry,
		})
	}

	out := cmd.OutOrStdout()

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(statuses)
	}

	tbl := ui.NewTable(out, "PACKAGE", "VERSION", "PRIVATE", "PATH")
	for _, s := range statuses {
		tbl.Row(s.Name, s.Version, s.Private, s.Path)
	}
	return tbl.Flush()
}
