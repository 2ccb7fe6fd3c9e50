package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ezpanso/internal/adapters/yamlstore"
	"ezpanso/internal/application"
	"ezpanso/internal/config"
	"ezpanso/internal/logging"
)

var (
	matchDir  string
	verbosity int
	session   *application.Session
)

var rootCmd = &cobra.Command{
	Use:   "ezpanso-cli",
	Short: "CLI for editing Espanso match files",
	Long: `ezpanso-cli is a command-line interface for Espanso's YAML match files.

It provides commands to list, search, add, update, and remove text-expansion
matches without hand-editing the YAML. Files keep their unrelated top-level
keys when rewritten. Use \n and \t in triggers and replacements for newlines
and tabs.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		logging.Setup(verbosity)
		session = application.NewSession(yamlstore.NewStore())
		if err := session.Load(matchDir); err != nil {
			return fmt.Errorf("loading %s: %w", matchDir, err)
		}
		return nil
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&matchDir, "dir", "d", config.MatchDir(), "path to the Espanso match directory")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "increase log verbosity (-v, -vv)")
}

// GetSession returns the loaded session
func GetSession() *application.Session {
	return session
}

// saveAll persists every dirty file, reporting partial failures
func saveAll() error {
	result := GetSession().SaveAll()
	if len(result.Failed) > 0 {
		for _, f := range result.Failed {
			fmt.Fprintf(os.Stderr, "failed to save %s: %v\n", f.Path, f.Err)
		}
		return fmt.Errorf("%d file(s) failed to save", len(result.Failed))
	}
	return nil
}
