package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tomblancdev/runpod-go"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "runpodctl %s\n", runpod.Version)
			fmt.Fprintf(out, "REST API %s (supports %s)\n", runpod.APIVersion, runpod.APIVersionRange)
		},
	}
}
