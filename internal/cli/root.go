// Package cli implements the marketplace command-line interface.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mesh-intelligence/marketplace/internal/logging"
	"github.com/mesh-intelligence/marketplace/internal/paths"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// app holds everything one invocation needs. Commands receive it through
// closures; there is no package-level state.
type app struct {
	// Global flags.
	configDir string
	dataDir   string
	jsonMode  bool
	verbose   bool

	// Set by PersistentPreRunE.
	resolvedConfigDir string
	cfg               *viper.Viper
	log               logging.Logger

	stderr io.Writer
}

// NewRootCmd creates the top-level "marketplace" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	return newRootCmd(&app{stderr: os.Stderr})
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "marketplace",
		Short: "A local community marketplace",
		Long: "Marketplace lets neighbours register, list items for sale or trade,\n" +
			"search listings, and message each other about a listing.",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	root.PersistentFlags().StringVar(&a.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	root.PersistentFlags().StringVar(&a.dataDir, "data-dir", "", "data directory (default: platform data dir)")
	root.PersistentFlags().BoolVar(&a.jsonMode, "json", false, "output as JSON")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "debug logging on stderr")

	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &usageError{err: err}
	})

	root.AddCommand(
		newVersionCmd(),
		newInitCmd(a),
		newRegisterCmd(a),
		newLoginCmd(a),
		newListingCmd(a),
		newMessageCmd(a),
		newInboxCmd(a),
		newExportCmd(a),
		newImportCmd(a),
	)
	return root
}

// setup resolves the config directory, loads config.yaml and builds the
// logger. It runs before every subcommand.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if cmd.Name() == "version" {
		return nil
	}

	configDir, err := paths.ResolveConfigDir(a.configDir)
	if err != nil {
		return fmt.Errorf("resolve config dir: %w", err)
	}
	cfg, err := loadConfig(configDir)
	if err != nil {
		return err
	}

	level := cfg.GetString(cfgKeyLogLevel)
	if a.verbose {
		level = "debug"
	}
	log, err := logging.New(a.stderr, level)
	if err != nil {
		return &usageError{err: fmt.Errorf("config %s: %w", cfgKeyLogLevel, err)}
	}

	a.resolvedConfigDir = configDir
	a.cfg = cfg
	a.log = log
	return nil
}

// Execute runs the root command against the process arguments and exits
// with the matching code.
func Execute() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes one invocation and returns its exit code.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	a := &app{stderr: stderr}
	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	if err == nil {
		return exitSuccess
	}
	fmt.Fprintln(stderr, "Error:", err)
	return exitCode(err)
}
