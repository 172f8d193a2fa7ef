package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/marketplace/internal/sqlite"
)

func newExportCmd(a *app) *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write users, items and messages to JSONL files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if dir == "" {
				return usageErrorf("--dir is required")
			}
			return a.withMarketplace(cmd, func(ctx context.Context, b *sqlite.Backend) error {
				stats, err := b.Export(ctx, dir)
				if err != nil {
					return err
				}
				return a.printStats(cmd, "Exported", stats)
			})
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "output directory")
	return cmd
}

func newImportCmd(a *app) *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Load users, items and messages from JSONL files",
		Long:  "Import keeps record ids. Malformed lines and rows that collide with existing data are skipped.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if dir == "" {
				return usageErrorf("--dir is required")
			}
			return a.withMarketplace(cmd, func(ctx context.Context, b *sqlite.Backend) error {
				stats, err := b.Import(ctx, dir)
				if err != nil {
					return err
				}
				return a.printStats(cmd, "Imported", stats)
			})
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "input directory")
	return cmd
}

func (a *app) printStats(cmd *cobra.Command, verb string, stats sqlite.TransferStats) error {
	out := cmd.OutOrStdout()
	if a.jsonMode {
		return printJSON(out, stats)
	}
	fmt.Fprintf(out, "%s %d users, %d listings, %d messages", verb, stats.Users, stats.Listings, stats.Messages)
	if stats.Skipped > 0 {
		fmt.Fprintf(out, " (%d skipped)", stats.Skipped)
	}
	fmt.Fprintln(out)
	return nil
}
