package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"ezpanso/internal/application"
)

var lsCmd = &cobra.Command{
	Use:   "ls [files|matches] [file]",
	Short: "List match files or the matches of one file",
	Long: `List the loaded match files, or the matches inside one file.

Examples:
  ezpanso-cli ls files
  ezpanso-cli ls matches base
  ezpanso-cli ls matches "my-pkg (package)"`,
}

var lsFilesCmd = &cobra.Command{
	Use:   "files",
	Short: "List all match files",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess := GetSession()
		for _, f := range sess.Files() {
			fmt.Printf("%-30s %3d matches  %s\n", f.DisplayName(), len(f.Matches), f.Path)
		}
		return nil
	},
}

var lsMatchesCmd = &cobra.Command{
	Use:   "matches <file>",
	Short: "List the matches of a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess := GetSession()
		file := sess.FileByDisplayName(args[0])
		if file == nil {
			return fmt.Errorf("file %q: %w", args[0], application.ErrNotFound)
		}
		if err := sess.SetActive(file.Path); err != nil {
			return err
		}

		for _, r := range sess.Rows("") {
			flag := ""
			if r.Complex {
				flag = "  [complex]"
			}
			fmt.Printf("%-24s %s%s\n", r.Trigger, r.Replace, flag)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(lsCmd)
	lsCmd.AddCommand(lsFilesCmd)
	lsCmd.AddCommand(lsMatchesCmd)
}
