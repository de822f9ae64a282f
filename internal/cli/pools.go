package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newPoolsCmd(stdout io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pools",
		Short: "List and manage storage pools",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List storage pools in the region",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, cfg, err := connect(cmd)
			if err != nil {
				return err
			}
			pools, err := client.Pools(cmd.Context(), cfg.Region)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tREGION\tSTATE\tSERVICE LEVEL\tSIZE")
			for _, p := range pools {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%d\n",
					p.PoolID, p.Name, p.Region, p.State, p.ServiceLevel, p.SizeInBytes)
			}
			return tw.Flush()
		},
	}

	var newSize int64
	resize := &cobra.Command{
		Use:   "resize <pool-id>",
		Short: "Set a pool's size in bytes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if newSize <= 0 {
				return fmt.Errorf("--size must be > 0")
			}
			client, cfg, err := connect(cmd)
			if err != nil {
				return err
			}
			p, err := client.ResizePool(cmd.Context(), cfg.Region, args[0], newSize)
			if err != nil {
				return err
			}
			fmt.Fprintf(stdout, "pool %s size now %d bytes\n", p.PoolID, p.SizeInBytes)
			return nil
		},
	}
	resize.Flags().Int64Var(&newSize, "size", 0, "new size in bytes")

	del := &cobra.Command{
		Use:   "delete <pool-id>",
		Short: "Delete a storage pool",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, cfg, err := connect(cmd)
			if err != nil {
				return err
			}
			return client.DeletePool(cmd.Context(), cfg.Region, args[0])
		},
	}

	cmd.AddCommand(list, resize, del)
	return cmd
}
