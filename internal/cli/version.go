package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is the frontdesk release.
const Version = "0.1.0"

const modulePath = "github.com/mesh-intelligence/frontdesk"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the frontdesk version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.jsonMode {
				return writeJSON(cmd.OutOrStdout(), map[string]string{"version": Version, "module": modulePath})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "frontdesk v%s\nmodule: %s\n", Version, modulePath)
			return nil
		},
	}
}
