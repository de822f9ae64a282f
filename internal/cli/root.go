package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/cvstools/cvs-operator/internal/auth"
	"github.com/cvstools/cvs-operator/internal/config"
	"github.com/cvstools/cvs-operator/internal/cvs"
)

// NewRootCmd returns the root cobra command for the cvsops CLI.
func NewRootCmd(stdout, stderr io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "cvsops",
		Short:         "Manage Cloud Volumes Service resources on GCP",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	// Global flags; env vars (CVS_*) provide the defaults.
	cmd.PersistentFlags().String("region", "", `GCP region ("-" for all regions)`)
	cmd.PersistentFlags().String("project", "", "project id or number")
	cmd.PersistentFlags().String("credentials", "", "service account key file, base64 key, or principal email")

	cmd.AddCommand(newVersionCmd(stdout))
	cmd.AddCommand(newVolumesCmd(stdout))
	cmd.AddCommand(newPoolsCmd(stdout))
	cmd.AddCommand(newBackupsCmd(stdout))
	cmd.AddCommand(newSnapshotsCmd(stdout))
	cmd.AddCommand(newReplicationCmd(stdout))

	return cmd
}

// connect builds an authenticated client from env config plus flag
// overrides. Seam for tests.
var connect = func(cmd *cobra.Command) (*cvs.Client, config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, cfg, err
	}
	if v, _ := cmd.Flags().GetString("credentials"); v != "" {
		cfg.ServiceAccount = v
	}
	if v, _ := cmd.Flags().GetString("project"); v != "" {
		cfg.Project = v
	}
	if v, _ := cmd.Flags().GetString("region"); v != "" {
		cfg.Region = v
	}

	ctx := cmd.Context()
	src, err := auth.NewTokenSource(ctx, cfg.ServiceAccount)
	if err != nil {
		return nil, cfg, err
	}
	project := cfg.Project
	if project == "" {
		project = src.ProjectID
	}
	if project == "" {
		return nil, cfg, fmt.Errorf("no project configured: set CVS_PROJECT or use a key file carrying project_id")
	}
	number, err := auth.ProjectNumber(ctx, src.TokenSource, project)
	if err != nil {
		return nil, cfg, err
	}

	client, err := cvs.New(cvs.Options{
		APIURL:        cfg.APIURL,
		ProjectNumber: number,
		Transport:     cvs.NewTransport(ctx, src.TokenSource),
		WriteBudget:   cfg.WriteBudget(),
	})
	return client, cfg, err
}
