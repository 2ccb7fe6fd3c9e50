package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"ezpanso/internal/adapters/tui"
	"ezpanso/internal/adapters/yamlstore"
	"ezpanso/internal/application"
	"ezpanso/internal/config"
	"ezpanso/internal/logging"
)

func main() {
	dirFlag := flag.String("dir", "", "path to the Espanso match directory")
	verbosity := flag.Int("v", 0, "log verbosity (0=warn, 1=info, 2=debug)")
	flag.Parse()

	logging.SetupFileOnly(*verbosity)
	log := logging.GetLogger("main")

	prefs := config.LoadPrefs()
	dir := *dirFlag
	if dir == "" {
		dir = prefs.LastDir
	}
	if dir == "" {
		dir = config.MatchDir()
	}

	session := application.NewSession(yamlstore.NewStore())
	if err := session.Load(dir); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	log.Info().Str("dir", dir).Int("files", len(session.Files())).Msg("session loaded")

	app := tui.NewApp(session)
	app.SetSkipPackageWarning(prefs.SkipPackageWarning)

	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	prefs.LastDir = dir
	if active := session.ActiveFile(); active != nil {
		prefs.LastFile = active.Path
	}
	if err := config.SavePrefs(prefs); err != nil {
		log.Warn().Err(err).Msg("could not save preferences")
	}
}
