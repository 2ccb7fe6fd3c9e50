package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"ezpanso/internal/adapters/sqlite"
	"ezpanso/internal/adapters/yamlstore"
)

var syncFull bool

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Refresh the search index",
	RunE: func(cmd *cobra.Command, args []string) error {
		idx := sqlite.NewIndex(yamlstore.NewStore())
		if err := idx.Open(matchDir); err != nil {
			return err
		}
		defer idx.Close()

		if syncFull || idx.NeedsFullRebuild() {
			stats, err := idx.SyncFull()
			if err != nil {
				return err
			}
			fmt.Printf("Full sync: %d files scanned, %d indexed, %d matches in %v\n",
				stats.FilesScanned, stats.FilesIndexed, stats.MatchesIndexed,
				stats.Duration.Round(time.Millisecond))
			return nil
		}

		stats, err := idx.SyncIncremental()
		if err != nil {
			return err
		}
		fmt.Printf("Incremental sync: %d files scanned, %d re-indexed, %d removed in %v\n",
			stats.FilesScanned, stats.FilesIndexed, stats.FilesRemoved,
			stats.Duration.Round(time.Millisecond))
		return nil
	},
}

func init() {
	syncCmd.Flags().BoolVar(&syncFull, "full", false, "rebuild the index from scratch")
	rootCmd.AddCommand(syncCmd)
}
