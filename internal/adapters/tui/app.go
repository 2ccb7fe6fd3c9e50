package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"ezpanso/internal/adapters/tui/views"
	"ezpanso/internal/application"
	"ezpanso/internal/application/commands"
)

// ViewState represents the current view
type ViewState int

const (
	ViewEditor ViewState = iota
	ViewFiles
	ViewForm
	ViewNewFile
	ViewConfirmDelete
	ViewConfirmDeleteFile
	ViewConfirmSave
	ViewConfirmQuit
	ViewHelp
)

// App is the main TUI application model
type App struct {
	session *application.Session

	state      ViewState
	editor     *views.EditorModel
	files      *views.FilesModel
	form       *views.FormModel
	newFile    *views.NewFileModel
	delMatches *views.DeleteMatchesModel
	delFile    *views.DeleteFileModel
	save       *views.SaveModel
	quit       *views.QuitModel
	help       *views.HelpModel

	width  int
	height int
}

// NewApp creates a new TUI application
func NewApp(session *application.Session) *App {
	return &App{
		session:    session,
		state:      ViewEditor,
		editor:     views.NewEditorModel(session),
		files:      views.NewFilesModel(session),
		form:       views.NewFormModel(session),
		newFile:    views.NewNewFileModel(session),
		delMatches: views.NewDeleteMatchesModel(session),
		delFile:    views.NewDeleteFileModel(session),
		save:       views.NewSaveModel(session),
		quit:       views.NewQuitModel(session),
		help:       views.NewHelpModel(),
	}
}

// SetSkipPackageWarning disables the warning shown before the first edit of
// a package-owned file.
func (a *App) SetSkipPackageWarning(skip bool) {
	a.editor.SetSkipPackageWarning(skip)
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	return a.editor.Init()
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.editor.Update(msg)
		a.files.Update(msg)
		a.form.Update(msg)
		a.newFile.Update(msg)
		a.delMatches.Update(msg)
		a.delFile.Update(msg)
		a.save.Update(msg)
		a.quit.Update(msg)
		a.help.Update(msg)
		return a, nil

	// View switching messages
	case views.SwitchToEditorMsg:
		a.state = ViewEditor
		a.editor.Refresh()
		if msg.Err != nil {
			a.editor.SetMessage(msg.Err.Error(), true)
		} else if msg.Message != "" {
			a.editor.SetMessage(msg.Message, false)
		}
		return a, nil

	case views.SwitchToFilesMsg:
		a.state = ViewFiles
		return a, a.files.Init()

	case views.SwitchToFormMsg:
		a.state = ViewForm
		a.form.SetRow(msg.Row)
		return a, a.form.Init()

	case views.SwitchToNewFileMsg:
		a.state = ViewNewFile
		return a, a.newFile.Init()

	case views.SwitchToHelpMsg:
		a.state = ViewHelp
		return a, nil

	case views.ConfirmDeleteMsg:
		a.state = ViewConfirmDelete
		a.delMatches.SetTargets(msg.Triggers)
		return a, nil

	case views.ConfirmDeleteFileMsg:
		a.state = ViewConfirmDeleteFile
		a.delFile.SetTarget(a.session.FileByDisplayName(msg.FileName))
		return a, nil

	case views.ConfirmSaveMsg:
		a.state = ViewConfirmSave
		return a, nil

	case views.ConfirmQuitMsg:
		a.state = ViewConfirmQuit
		return a, nil

	case views.SaveAndQuitMsg:
		result, err := commands.NewSaveAllCommand(a.session).Execute(context.Background())
		if err == nil && len(result.Result.Failed) == 0 {
			return a, tea.Quit
		}
		// A failed write keeps the session open rather than losing edits
		a.state = ViewEditor
		a.editor.Refresh()
		if err != nil {
			a.editor.SetMessage(err.Error(), true)
		} else {
			a.editor.SetMessage(result.Message, true)
		}
		return a, nil

	case views.ForceQuitMsg:
		return a, tea.Quit
	}

	// Delegate to current view
	var cmd tea.Cmd
	switch a.state {
	case ViewEditor:
		_, cmd = a.editor.Update(msg)
	case ViewFiles:
		_, cmd = a.files.Update(msg)
	case ViewForm:
		_, cmd = a.form.Update(msg)
	case ViewNewFile:
		_, cmd = a.newFile.Update(msg)
	case ViewConfirmDelete:
		_, cmd = a.delMatches.Update(msg)
	case ViewConfirmDeleteFile:
		_, cmd = a.delFile.Update(msg)
	case ViewConfirmSave:
		_, cmd = a.save.Update(msg)
	case ViewConfirmQuit:
		_, cmd = a.quit.Update(msg)
	case ViewHelp:
		_, cmd = a.help.Update(msg)
	}

	return a, cmd
}

// View renders the current view
func (a *App) View() string {
	switch a.state {
	case ViewFiles:
		return a.files.View()
	case ViewForm:
		return a.form.View()
	case ViewNewFile:
		return a.newFile.View()
	case ViewConfirmDelete:
		return a.delMatches.View()
	case ViewConfirmDeleteFile:
		return a.delFile.View()
	case ViewConfirmSave:
		return a.save.View()
	case ViewConfirmQuit:
		return a.quit.View()
	case ViewHelp:
		return a.help.View()
	default:
		return a.editor.View()
	}
}
