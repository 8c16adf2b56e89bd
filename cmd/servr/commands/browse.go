package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/servr-dev/servr/cmd/servr/internal/format"
	"github.com/servr-dev/servr/pkg/server"
	"github.com/servr-dev/servr/pkg/site"
)

// newBrowseCommand creates the 'servr browse' command, a dry-run view of
// what a directory would serve: its entries, their kinds, and the index
// file that would answer the root URL.
func newBrowseCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "browse [directory]",
		Short: "List what a directory would serve",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := format.FromCommand(cmd)

			dir := "."
			if len(args) == 1 {
				dir = args[0]
			} else if wd, err := os.Getwd(); err == nil {
				dir = wd
			}

			if err := site.ValidateRoot(dir); err != nil {
				wrapped := server.WrapDirectoryInvalid(err)
				formatter.PrintFailure("browse directory", wrapped, server.ErrorCode(wrapped), server.Suggestions(wrapped))
				return silence(wrapped)
			}

			entries, err := site.List(dir)
			if err != nil {
				wrapped := server.WrapDirectoryInvalid(err)
				formatter.PrintFailure("browse directory", wrapped, server.ErrorCode(wrapped), server.Suggestions(wrapped))
				return silence(wrapped)
			}

			rows := make([][]string, 0, len(entries))
			for _, e := range entries {
				kind := string(e.Kind)
				size := fmt.Sprintf("%d", e.Size)
				if e.Dir {
					kind = "dir"
					size = "-"
				}
				rows = append(rows, []string{e.Name, kind, size})
			}

			if err := formatter.PrintTable([]string{"Name", "Kind", "Size"}, rows); err != nil {
				return err
			}

			if index, ok := site.FindIndexFile(dir); ok {
				return formatter.PrintSummary(fmt.Sprintf("Index: %s", index))
			}
			return formatter.PrintSummary("Index: none (directory listing would be served)")
		},
	}

	return cmd
}
