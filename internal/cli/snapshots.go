package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newSnapshotsCmd(stdout io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshots",
		Short: "List and delete volume snapshots",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List snapshots in the region",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, cfg, err := connect(cmd)
			if err != nil {
				return err
			}
			snaps, err := client.Snapshots(cmd.Context(), cfg.Region)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tVOLUME\tSTATE\tCREATED")
			for _, s := range snaps {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
					s.SnapshotID, s.Name, s.VolumeID, s.LifeCycleState, s.Created)
			}
			return tw.Flush()
		},
	}

	del := &cobra.Command{
		Use:   "delete <snapshot-id>",
		Short: "Delete a snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, cfg, err := connect(cmd)
			if err != nil {
				return err
			}
			return client.DeleteSnapshot(cmd.Context(), cfg.Region, args[0])
		},
	}

	cmd.AddCommand(list, del)
	return cmd
}
