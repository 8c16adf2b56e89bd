package commands

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/servr-dev/servr/pkg/appctx"
	"github.com/servr-dev/servr/pkg/config"
	"github.com/servr-dev/servr/pkg/logging"
)

const cliExecutable = "servr"

// NewCommand constructs the top-level servr CLI command, wiring global flags,
// configuration loading, and logging setup.
func NewCommand() *cobra.Command {
	var (
		configFile     string
		debug          bool
		verbosityCount int
	)

	cmd := &cobra.Command{
		Use:   cliExecutable,
		Short: "Servr serves a local directory over HTTP",
		Long: `Servr is a launcher for a local static-file server. Point it at a
directory and it finds a free port, serves the directory on localhost, and
optionally opens your browser. Recently served directories are remembered
across runs.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			manager := config.NewManager()
			if err := manager.Load(cmd.Flags(), configFile); err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}

			cfg := manager.Get()
			level := cfg.Log.Level
			if debug || verbosityCount > 0 {
				level = "debug"
			}
			if err := logging.ConfigureGlobalLogging(level); err != nil {
				return fmt.Errorf("configure logging: %w", err)
			}

			ctx := appctx.WithConfig(cmd.Context(), manager)
			cmd.SetContext(ctx)
			if root := cmd.Root(); root != nil && root != cmd {
				root.SetContext(ctx)
			}
			log.Debug().Str("config_file", configFile).Msg("configuration loaded")
			return nil
		},
	}

	cmd.SilenceUsage = true

	cmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Configuration file path")
	cmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
	cmd.PersistentFlags().CountVarP(&verbosityCount, "verbosity", "v", "Increase logging verbosity (repeatable)")
	cmd.PersistentFlags().String("output", "table", "Output mode: table | json")
	cmd.PersistentFlags().Bool("quiet", false, "Suppress non-essential output")
	cmd.PersistentFlags().Bool("no-color", false, "Disable colored output")

	config.BindServerFlags(cmd.PersistentFlags())

	cmd.AddCommand(newServeCommand())
	cmd.AddCommand(newBrowseCommand())
	cmd.AddCommand(newRecentCommand())
	cmd.AddCommand(newConfigCommand())
	cmd.AddCommand(newVersionCommand())

	return cmd
}
