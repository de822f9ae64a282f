package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cvstools/cvs-operator/internal/cvs"
	"github.com/cvstools/cvs-operator/internal/rotation"
)

func newBackupsCmd(stdout io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backups",
		Short: "List, create, rotate, and delete volume backups",
	}

	var volumeID string
	list := &cobra.Command{
		Use:   "list",
		Short: "List backups in the region, or of one volume",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, cfg, err := connect(cmd)
			if err != nil {
				return err
			}
			var backups []cvs.Backup
			if volumeID != "" {
				backups, err = client.VolumeBackups(cmd.Context(), cfg.Region, volumeID)
			} else {
				backups, err = client.Backups(cmd.Context(), cfg.Region)
			}
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tVOLUME\tSTATE\tCREATED")
			for _, b := range backups {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
					b.BackupID, b.Name, b.VolumeID, b.LifeCycleState, b.Created)
			}
			return tw.Flush()
		},
	}
	list.Flags().StringVar(&volumeID, "volume", "", "restrict to one volume id")

	create := &cobra.Command{
		Use:   "create <volume-id> <name>",
		Short: "Create a backup and wait until it is available",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, cfg, err := connect(cmd)
			if err != nil {
				return err
			}
			b, err := client.CreateBackup(cmd.Context(), cfg.Region, args[0], args[1], cfg.BackupWindow)
			if err != nil {
				return err
			}
			fmt.Fprintf(stdout, "backup %s (%s) available\n", b.BackupID, b.Name)
			return nil
		},
	}

	var keep int
	rotate := &cobra.Command{
		Use:   "rotate <volume-id>",
		Short: "Create a fresh backup, then prune old rotation backups",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, cfg, err := connect(cmd)
			if err != nil {
				return err
			}
			out, err := rotation.Rotate(cmd.Context(), client, rotation.Plan{
				Region:   cfg.Region,
				VolumeID: args[0],
				Keep:     keep,
				Window:   cfg.BackupWindow,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(stdout, "created %s (%s), pruned %d backup(s)\n", out.BackupID, out.BackupName, out.Pruned)
			for _, f := range out.Failures {
				fmt.Fprintf(stdout, "prune failed for %s (%s): %v\n", f.BackupID, f.Name, f.Err)
			}
			return nil
		},
	}
	rotate.Flags().IntVar(&keep, "keep", 7, "number of rotation backups to retain (1-30)")

	del := &cobra.Command{
		Use:   "delete <backup-id>",
		Short: "Delete a backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, cfg, err := connect(cmd)
			if err != nil {
				return err
			}
			return client.DeleteBackup(cmd.Context(), cfg.Region, args[0])
		},
	}

	cmd.AddCommand(list, create, rotate, del)
	return cmd
}
