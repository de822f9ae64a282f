package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/cvstools/cvs-operator/internal/version"
)

func newVersionCmd(stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(stdout, "cvsops %s\n", version.Info())
		},
	}
}
