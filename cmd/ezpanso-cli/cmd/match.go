package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"ezpanso/internal/application/commands"
)

var matchFile string

var addCmd = &cobra.Command{
	Use:   "add <trigger> <replace>",
	Short: "Add a match and save",
	Long: `Add a simple trigger/replace match and write the file back.

Examples:
  ezpanso-cli add ":sig" "Best regards,\nMe"
  ezpanso-cli add --file work ":standup" "Today I will..."`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		addCmd := commands.NewAddMatchCommand(GetSession(), matchFile, args[0], args[1])
		result, err := addCmd.Execute(ctx)
		if err != nil {
			return err
		}
		if err := saveAll(); err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

var setCmd = &cobra.Command{
	Use:   "set <trigger> <new-trigger> <new-replace>",
	Short: "Update a match and save",
	Long: `Update a simple match, located by its current trigger, and write
the file back. Matches carrying extra YAML fields (vars, word, ...) are
refused; edit those in the YAML directly.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		updateCmd := commands.NewUpdateMatchCommand(GetSession(), matchFile, args[0], args[1], args[2])
		result, err := updateCmd.Execute(ctx)
		if err != nil {
			return err
		}
		if err := saveAll(); err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

var rmCmd = &cobra.Command{
	Use:   "rm <trigger>...",
	Short: "Delete matches and save",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		deleteCmd := commands.NewDeleteMatchesCommand(GetSession(), matchFile, args)
		result, err := deleteCmd.Execute(ctx)
		if err != nil {
			return err
		}
		if err := saveAll(); err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{addCmd, setCmd, rmCmd} {
		c.Flags().StringVarP(&matchFile, "file", "f", "", "target file display name (defaults to the first file)")
		rootCmd.AddCommand(c)
	}
}
