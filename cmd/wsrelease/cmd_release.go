package main

import (
	"github.com/spf13/cobra"
)

func newReleaseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "release <version>",
		Short: "Bump all workspaces to the target version and publish them",
		Args:  cobra.ExactArgs(1),
		RunE:  runRelease,
	}
	addPublishFlags(cmd)
	return cmd
}

func runRelease(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	r := newReleaseRunner(cmd, cfg)
	ctx := cmd.Context()

	if err := r.Init(ctx); err != nil {
		return err
	}
	if err := r.Bump(args[0]); err != nil {
		return err
	}
	if err := r.Release(ctx); err != nil {
		return err
	}
	return r.AfterRelease()
}
