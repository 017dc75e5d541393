package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "wsrelease",
		Short:   "Bump and publish monorepo workspace packages in lockstep",
		Version: version,
	}

	cmd.PersistentFlags().String("root", ".", "Monorepo root directory")
	cmd.PersistentFlags().Bool("dry-run", false, "Report intended actions without mutating or publishing")

	cmd.AddCommand(
		newBumpCmd(),
		newPublishCmd(),
		newReleaseCmd(),
		newStatusCmd(),
		newDoctorCmd(),
	)

	return cmd
}
