package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newReplicationCmd(stdout io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "replication",
		Short: "Manage volume replication relationships",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List replication relationships in the region",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, cfg, err := connect(cmd)
			if err != nil {
				return err
			}
			rels, err := client.Replications(cmd.Context(), cfg.Region)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tSTATE\tMIRROR\tSTATUS\tSCHEDULE\tSOURCE\tDESTINATION")
			for _, r := range rels {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
					r.Name, r.LifeCycleState, r.MirrorState, r.RelationshipStatus,
					r.ReplicationSchedule, r.SourceVolumeUUID, r.DestinationVolumeUUID)
			}
			return tw.Flush()
		},
	}

	var force bool
	brk := &cobra.Command{
		Use:   "break <relationship-id>",
		Short: "Break a relationship and wait until it settles",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, cfg, err := connect(cmd)
			if err != nil {
				return err
			}
			rel, err := client.BreakReplication(cmd.Context(), cfg.Region, args[0], force)
			if err != nil {
				return err
			}
			fmt.Fprintf(stdout, "relationship %s broken (mirror %s)\n", rel.Name, rel.MirrorState)
			return nil
		},
	}
	brk.Flags().BoolVar(&force, "force", false, "force the break")

	resync := &cobra.Command{
		Use:   "resync <relationship-id>",
		Short: "Resync a broken relationship in its original direction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, cfg, err := connect(cmd)
			if err != nil {
				return err
			}
			return client.ResyncReplication(cmd.Context(), cfg.Region, args[0])
		},
	}

	reverse := &cobra.Command{
		Use:   "reverse <relationship-id>",
		Short: "Create a reversed relationship (requires broken + idle)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, cfg, err := connect(cmd)
			if err != nil {
				return err
			}
			_, err = client.ReverseReplication(cmd.Context(), cfg.Region, args[0])
			return err
		},
	}

	del := &cobra.Command{
		Use:   "delete <relationship-id>",
		Short: "Delete a relationship",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, cfg, err := connect(cmd)
			if err != nil {
				return err
			}
			return client.DeleteReplication(cmd.Context(), cfg.Region, args[0])
		},
	}

	cmd.AddCommand(list, brk, resync, reverse, del)
	return cmd
}
