package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/servr-dev/servr/cmd/servr/internal/format"
	"github.com/servr-dev/servr/pkg/appctx"
	"github.com/servr-dev/servr/pkg/recent"
)

// newRecentCommand creates the 'servr recent' command group for the
// persisted list of recently served directories.
func newRecentCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recent",
		Short: "Manage recently served directories",
		RunE:  runRecentList,
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List recently served directories",
		RunE:  runRecentList,
	}

	prune := &cobra.Command{
		Use:   "prune",
		Short: "Drop recent entries whose directories no longer exist",
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := format.FromCommand(cmd)
			store, err := openRecentStore(cmd)
			if err != nil {
				return err
			}
			before := len(store.List())
			if err := store.Prune(); err != nil {
				return fmt.Errorf("prune recent list: %w", err)
			}
			removed := before - len(store.List())
			return formatter.PrintSummary(fmt.Sprintf("Pruned %d stale entries.", removed))
		},
	}

	clear := &cobra.Command{
		Use:   "clear",
		Short: "Remove all recent entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := format.FromCommand(cmd)
			store, err := openRecentStore(cmd)
			if err != nil {
				return err
			}
			if err := store.Clear(); err != nil {
				return fmt.Errorf("clear recent list: %w", err)
			}
			return formatter.PrintSummary("Recent list cleared.")
		},
	}

	cmd.AddCommand(list)
	cmd.AddCommand(prune)
	cmd.AddCommand(clear)

	return cmd
}

func runRecentList(cmd *cobra.Command, args []string) error {
	formatter := format.FromCommand(cmd)
	store, err := openRecentStore(cmd)
	if err != nil {
		return err
	}

	entries := store.List()
	if len(entries) == 0 {
		return formatter.PrintSummary("No recently served directories.")
	}

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		lastUsed := ""
		if !e.LastUsed.IsZero() {
			lastUsed = e.LastUsed.Format("2006-01-02 15:04")
		}
		rows = append(rows, []string{e.Path, strconv.Itoa(e.Count), lastUsed})
	}
	return formatter.PrintTable([]string{"Path", "Served", "Last Used"}, rows)
}

func openRecentStore(cmd *cobra.Command) (*recent.Store, error) {
	cfgMgr, ok := appctx.Config(cmd.Context())
	if !ok {
		return nil, fmt.Errorf("configuration unavailable in command context")
	}
	cfg := cfgMgr.Get()

	store := recent.NewStore(cfg.Recent.File, cfg.Recent.Limit)
	if err := store.Load(); err != nil {
		return nil, fmt.Errorf("load recent list: %w", err)
	}
	return store, nil
}
