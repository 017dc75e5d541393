package main

import (
	"github.com/spf13/cobra"
)

func newPublishCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Publish every non-private workspace at its current version",
		RunE:  runPublish,
	}
	addPublishFlags(cmd)
	return cmd
}

func addPublishFlags(cmd *cobra.Command) {
	cmd.Flags().String("tag", "", "Distribution tag override (default derives from the version)")
	cmd.Flags().String("otp", "", "One-time password for the registry")
	cmd.Flags().String("access", "", "Initial npm publish access (public or restricted)")
	cmd.Flags().String("registry", "", "Registry URL to publish against")
	cmd.Flags().Bool("skip-checks", false, "Skip the registry reachability and auth preflight")
	cmd.Flags().Bool("yes", false, "Answer yes to the publish confirmation")
}

func runPublish(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	r := newReleaseRunner(cmd, cfg)
	ctx := cmd.Context()

	if err := r.Init(ctx); err != nil {
		return err
	}
	if err := r.Release(ctx); err != nil {
		return err
	}
	return r.AfterRelease()
}
