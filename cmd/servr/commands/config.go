package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/servr-dev/servr/cmd/servr/internal/format"
	"github.com/servr-dev/servr/pkg/appctx"
	"github.com/servr-dev/servr/pkg/config"
)

// newConfigCommand creates the 'servr config' command, which prints the
// effective configuration after all sources (defaults, file, environment,
// flags) have been merged.
func newConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := format.FromCommand(cmd)

			cfgMgr, ok := appctx.Config(cmd.Context())
			if !ok {
				return fmt.Errorf("configuration unavailable in command context")
			}
			cfg := cfgMgr.Get()

			if flag := cmd.Flags().Lookup("output"); flag != nil && format.ParseMode(flag.Value.String()) == format.ModeJSON {
				return formatter.PrintJSON(cfg)
			}

			out, err := yaml.Marshal(cfg)
			if err != nil {
				return fmt.Errorf("render configuration: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}

	defaults := &cobra.Command{
		Use:   "defaults",
		Short: "Show the built-in default configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := yaml.Marshal(config.DefaultConfig())
			if err != nil {
				return fmt.Errorf("render configuration: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}

	cmd.AddCommand(defaults)

	return cmd
}
