package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"ezpanso/internal/application/commands"
)

var newFileCmd = &cobra.Command{
	Use:   "new-file <name>",
	Short: "Create a new match file",
	Long: `Create a new match file under the match directory, seeded with a
template match. The .yml extension is appended when none is given.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		createCmd := commands.NewNewFileCommand(GetSession(), args[0])
		result, err := createCmd.Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

var rmFileCmd = &cobra.Command{
	Use:   "rm-file <file>",
	Short: "Delete a match file from disk",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		deleteCmd := commands.NewDeleteFileCommand(GetSession(), args[0])
		result, err := deleteCmd.Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(newFileCmd)
	rootCmd.AddCommand(rmFileCmd)
}
