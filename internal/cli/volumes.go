package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newVolumesCmd(stdout io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "volumes",
		Short: "List and manage volumes",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List volumes in the region",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, cfg, err := connect(cmd)
			if err != nil {
				return err
			}
			vols, err := client.Volumes(cmd.Context(), cfg.Region)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tREGION\tSTATE\tSERVICE LEVEL\tQUOTA")
			for _, v := range vols {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%d\n",
					v.VolumeID, v.Name, v.Region, v.LifeCycleState, v.ServiceLevel, v.QuotaInBytes)
			}
			return tw.Flush()
		},
	}

	var newSize int64
	resize := &cobra.Command{
		Use:   "resize <volume-id>",
		Short: "Set a volume's quota in bytes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if newSize <= 0 {
				return fmt.Errorf("--size must be > 0")
			}
			client, cfg, err := connect(cmd)
			if err != nil {
				return err
			}
			v, err := client.ResizeVolume(cmd.Context(), cfg.Region, args[0], newSize)
			if err != nil {
				return err
			}
			fmt.Fprintf(stdout, "volume %s quota now %d bytes\n", v.VolumeID, v.QuotaInBytes)
			return nil
		},
	}
	resize.Flags().Int64Var(&newSize, "size", 0, "new quota in bytes")

	setLevel := &cobra.Command{
		Use:   "set-service-level <volume-id> <standard|premium|extreme>",
		Short: "Change a volume's service level (UI names)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, cfg, err := connect(cmd)
			if err != nil {
				return err
			}
			return client.SetServiceLevel(cmd.Context(), cfg.Region, args[0], args[1])
		},
	}

	del := &cobra.Command{
		Use:   "delete <volume-id>",
		Short: "Delete a volume",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, cfg, err := connect(cmd)
			if err != nil {
				return err
			}
			return client.DeleteVolume(cmd.Context(), cfg.Region, args[0])
		},
	}

	cmd.AddCommand(list, resize, setLevel, del)
	return cmd
}
