package main

import (
	"github.com/spf13/cobra"
)

func newBumpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bump <version>",
		Short: "Rewrite every workspace manifest to the target version",
		Long: `Bump sets the version field of every workspace package.json to the target
version and rewrites dependency entries that reference sibling workspaces,
keeping their range operators. File formatting is preserved byte for byte.`,
		Args: cobra.ExactArgs(1),
		RunE: runBump,
	}
	cmd.Flags().String("tag", "", "Distribution tag override (default derives from the version)")
	return cmd
}

func runBump(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	return newReleaseRunner(cmd, cfg).Bump(args[0])
}
