package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/servr-dev/servr/cmd/servr/internal/format"
	"github.com/servr-dev/servr/pkg/version"
)

// newVersionCommand creates the 'servr version' command.
func newVersionCommand() *cobra.Command {
	var (
		short bool
		check bool
	)

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := format.FromCommand(cmd)

			info := version.Get()
			if flag := cmd.Flags().Lookup("output"); flag != nil && format.ParseMode(flag.Value.String()) == format.ModeJSON {
				return formatter.PrintJSON(info)
			}

			out := cmd.OutOrStdout()
			if short {
				fmt.Fprintln(out, info.Version)
			} else {
				fmt.Fprintln(out, version.Info())
			}

			if check {
				version.CheckNewVersion()
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&short, "short", "s", false, "Print only the version number")
	cmd.Flags().BoolVar(&check, "check", false, "Check whether a newer release is available")

	return cmd
}
