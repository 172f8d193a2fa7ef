package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/marketplace/internal/paths"
	"github.com/mesh-intelligence/marketplace/internal/sqlite"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize marketplace storage",
		Long:  "Create the configuration and data directories, write a default config.yaml, and create the database schema.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := a.backendConfig()
			if err != nil {
				return err
			}
			// Attach creates the data directory and the schema.
			b, err := a.attach()
			if err != nil {
				return err
			}
			if err := b.Detach(); err != nil {
				return fmt.Errorf("close marketplace: %w", err)
			}

			result := struct {
				ConfigFile string `json:"config_file"`
				DataDir    string `json:"data_dir"`
				Database   string `json:"database"`
			}{
				ConfigFile: paths.ConfigFile(a.resolvedConfigDir),
				DataDir:    cfg.DataDir,
				Database:   filepath.Join(cfg.DataDir, sqlite.DatabaseFile),
			}
			out := cmd.OutOrStdout()
			if a.jsonMode {
				return printJSON(out, result)
			}
			fmt.Fprintln(out, "Marketplace initialized")
			fmt.Fprintf(out, "config:   %s\n", result.ConfigFile)
			fmt.Fprintf(out, "database: %s\n", result.Database)
			return nil
		},
	}
}
