package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/marketplace/pkg/marketplace"
)

const modulePath = "github.com/mesh-intelligence/marketplace"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the marketplace version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "marketplace v%s\nmodule: %s\n", marketplace.Version, modulePath)
			return nil
		},
	}
}
