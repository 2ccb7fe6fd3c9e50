package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"ezpanso/internal/adapters/sqlite"
	"ezpanso/internal/adapters/yamlstore"
	"ezpanso/internal/domain"
	"ezpanso/internal/ports"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search every match file by keyword",
	Long: `Search triggers and replacements across all match files,
case-insensitively, using the on-disk index.

The index is refreshed before searching, so results reflect the
current files.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		idx, err := openIndex()
		if err != nil {
			return err
		}
		defer idx.Close()

		results, err := idx.Search(args[0])
		if err != nil {
			return err
		}
		if len(results) == 0 {
			fmt.Println("No results.")
			return nil
		}

		for _, r := range results {
			fmt.Printf("%-20s %-24s %s\n",
				r.FileName,
				domain.DisplayValue(r.Trigger),
				domain.Preview(r.Replace, 60),
			)
		}
		return nil
	},
}

// openIndex opens the snippet index for the match directory and brings it
// up to date.
func openIndex() (ports.SnippetIndex, error) {
	idx := sqlite.NewIndex(yamlstore.NewStore())
	if err := idx.Open(matchDir); err != nil {
		return nil, err
	}

	var err error
	if idx.NeedsFullRebuild() {
		_, err = idx.SyncFull()
	} else {
		_, err = idx.SyncIncremental()
	}
	if err != nil {
		idx.Close()
		return nil, err
	}
	return idx, nil
}

func init() {
	rootCmd.AddCommand(searchCmd)
}
