package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"ezpanso/internal/adapters/tui/styles"
	"ezpanso/internal/application"
	"ezpanso/internal/application/commands"
	"ezpanso/internal/domain"
)

// ConfirmKeyMap defines key bindings for confirmation views
type ConfirmKeyMap struct {
	Confirm key.Binding
	Cancel  key.Binding
}

// DefaultConfirmKeys returns the default confirmation key bindings
var DefaultConfirmKeys = ConfirmKeyMap{
	Confirm: key.NewBinding(
		key.WithKeys("y", "enter"),
		key.WithHelp("y", "confirm"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("n", "esc"),
		key.WithHelp("n/esc", "cancel"),
	),
}

// ConfirmationModel provides a base for confirmation-style views
type ConfirmationModel struct {
	ViewState
	Keys ConfirmKeyMap
}

// NewConfirmationModel creates a new confirmation model with default keys
func NewConfirmationModel() ConfirmationModel {
	return ConfirmationModel{
		Keys: DefaultConfirmKeys,
	}
}

// HandleKeyMsg processes key messages for confirmation views.
// Returns (handled, cmd) where handled is true if the key was processed.
func (m *ConfirmationModel) HandleKeyMsg(msg tea.KeyMsg, onConfirm, onCancel func() tea.Msg) (bool, tea.Cmd) {
	switch {
	case key.Matches(msg, m.Keys.Cancel):
		return true, func() tea.Msg { return onCancel() }
	case key.Matches(msg, m.Keys.Confirm):
		return true, func() tea.Msg { return onConfirm() }
	}
	return false, nil
}

// RenderConfirmPrompt renders the standard confirmation prompt
func RenderConfirmPrompt(question string) string {
	var b strings.Builder
	b.WriteString(question)
	b.WriteString(" ")
	b.WriteString(styles.HelpKey.Render("y"))
	b.WriteString(styles.HelpDesc.Render(" to confirm, "))
	b.WriteString(styles.HelpKey.Render("n"))
	b.WriteString(styles.HelpDesc.Render(" to cancel"))
	return b.String()
}

// DeleteMatchesModel asks before deleting the marked matches.
type DeleteMatchesModel struct {
	ConfirmationModel
	session  *application.Session
	triggers []string
}

// NewDeleteMatchesModel creates a new delete confirmation model
func NewDeleteMatchesModel(session *application.Session) *DeleteMatchesModel {
	return &DeleteMatchesModel{
		ConfirmationModel: NewConfirmationModel(),
		session:           session,
	}
}

// SetTargets sets the displayed triggers queued for deletion
func (m *DeleteMatchesModel) SetTargets(triggers []string) {
	m.triggers = triggers
}

// Init initializes the view
func (m *DeleteMatchesModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the delete confirmation
func (m *DeleteMatchesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		handled, cmd := m.HandleKeyMsg(msg,
			func() tea.Msg { return m.doDelete() },
			func() tea.Msg { return SwitchToEditorMsg{} },
		)
		if handled {
			return m, cmd
		}
	}

	return m, nil
}

func (m *DeleteMatchesModel) doDelete() tea.Msg {
	cmd := commands.NewDeleteMatchesCommand(m.session, "", m.triggers)
	result, err := cmd.Execute(context.Background())
	if err != nil {
		return SwitchToEditorMsg{Err: err}
	}
	return SwitchToEditorMsg{Message: result.Message}
}

// View renders the delete confirmation
func (m *DeleteMatchesModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Delete Matches"))
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("Delete %d match(es)?", len(m.triggers)))
	b.WriteString("\n\n")
	for _, t := range m.triggers {
		b.WriteString("  ")
		b.WriteString(styles.WarningMsg.Render(t))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("The file is not written until you save."))
	b.WriteString("\n\n")

	b.WriteString(RenderConfirmPrompt("Are you sure?"))

	return styles.App.Render(b.String())
}

// DeleteFileModel asks before deleting a whole match file from disk.
type DeleteFileModel struct {
	ConfirmationModel
	session *application.Session
	target  *domain.FileEntry
}

// NewDeleteFileModel creates a new file delete confirmation model
func NewDeleteFileModel(session *application.Session) *DeleteFileModel {
	return &DeleteFileModel{
		ConfirmationModel: NewConfirmationModel(),
		session:           session,
	}
}

// SetTarget sets the file queued for deletion
func (m *DeleteFileModel) SetTarget(file *domain.FileEntry) {
	m.target = file
}

// Init initializes the view
func (m *DeleteFileModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the file delete confirmation
func (m *DeleteFileModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		handled, cmd := m.HandleKeyMsg(msg,
			func() tea.Msg { return m.doDelete() },
			func() tea.Msg { return SwitchToEditorMsg{} },
		)
		if handled {
			return m, cmd
		}
	}

	return m, nil
}

func (m *DeleteFileModel) doDelete() tea.Msg {
	if m.target == nil {
		return SwitchToEditorMsg{Err: fmt.Errorf("no file selected")}
	}
	cmd := commands.NewDeleteFileCommand(m.session, m.target.DisplayName())
	result, err := cmd.Execute(context.Background())
	if err != nil {
		return SwitchToEditorMsg{Err: err}
	}
	return SwitchToEditorMsg{Message: result.Message}
}

// View renders the file delete confirmation
func (m *DeleteFileModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Delete File"))
	b.WriteString("\n\n")

	b.WriteString(styles.ErrorMsg.Render("This removes the file from disk immediately!"))
	b.WriteString("\n\n")

	if m.target != nil {
		b.WriteString(styles.InputLabel.Render("Delete file:"))
		b.WriteString("\n  ")
		b.WriteString(m.target.DisplayName())
		b.WriteString(styles.MutedText.Render(fmt.Sprintf("  (%d matches)", len(m.target.Matches))))
		b.WriteString("\n\n")
		if m.target.IsPackage() {
			b.WriteString(styles.WarningMsg.Render("  This file belongs to an installed package."))
			b.WriteString("\n\n")
		}
	}

	b.WriteString(RenderConfirmPrompt("Are you sure?"))

	return styles.App.Render(b.String())
}

// SaveModel asks before overwriting the files with unsaved changes.
type SaveModel struct {
	ConfirmationModel
	session *application.Session
}

// NewSaveModel creates a new save confirmation model
func NewSaveModel(session *application.Session) *SaveModel {
	return &SaveModel{
		ConfirmationModel: NewConfirmationModel(),
		session:           session,
	}
}

// Init initializes the view
func (m *SaveModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the save confirmation
func (m *SaveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		handled, cmd := m.HandleKeyMsg(msg,
			func() tea.Msg { return m.doSave() },
			func() tea.Msg { return SwitchToEditorMsg{} },
		)
		if handled {
			return m, cmd
		}
	}

	return m, nil
}

func (m *SaveModel) doSave() tea.Msg {
	result, err := commands.NewSaveAllCommand(m.session).Execute(context.Background())
	if err != nil {
		return SwitchToEditorMsg{Err: err}
	}
	if len(result.Result.Failed) > 0 {
		return SwitchToEditorMsg{Err: fmt.Errorf("%s: %v", result.Message, result.Result.Failed[0].Err)}
	}
	return SwitchToEditorMsg{Message: result.Message}
}

// View renders the save confirmation
func (m *SaveModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Save Changes"))
	b.WriteString("\n\n")

	dirty := m.session.DirtyFiles()
	b.WriteString(fmt.Sprintf("You have %d file(s) with changes. Save?", len(dirty)))
	b.WriteString("\n")
	for _, f := range dirty {
		b.WriteString("  ")
		b.WriteString(styles.Dirty.Render("● "))
		b.WriteString(f.DisplayName())
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(RenderConfirmPrompt("Write these files?"))

	return styles.App.Render(b.String())
}

// QuitKeyMap defines key bindings for the quit confirmation
type QuitKeyMap struct {
	Save    key.Binding
	Discard key.Binding
	Cancel  key.Binding
}

var QuitKeys = QuitKeyMap{
	Save: key.NewBinding(
		key.WithKeys("s", "y"),
		key.WithHelp("s", "save and quit"),
	),
	Discard: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "discard and quit"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("n", "esc"),
		key.WithHelp("esc", "cancel"),
	),
}

// SaveAndQuitMsg asks the app to save everything and exit.
type SaveAndQuitMsg struct{}

// ForceQuitMsg asks the app to exit without saving.
type ForceQuitMsg struct{}

// QuitModel asks what to do with unsaved changes before quitting.
type QuitModel struct {
	ViewState
	session *application.Session
}

// NewQuitModel creates a new quit confirmation model
func NewQuitModel(session *application.Session) *QuitModel {
	return &QuitModel{session: session}
}

// Init initializes the view
func (m *QuitModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the quit confirmation
func (m *QuitModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, QuitKeys.Save):
			return m, func() tea.Msg { return SaveAndQuitMsg{} }
		case key.Matches(msg, QuitKeys.Discard):
			return m, func() tea.Msg { return ForceQuitMsg{} }
		case key.Matches(msg, QuitKeys.Cancel):
			return m, func() tea.Msg { return SwitchToEditorMsg{} }
		}
	}

	return m, nil
}

// View renders the quit confirmation
func (m *QuitModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Unsaved Changes"))
	b.WriteString("\n\n")

	dirty := m.session.DirtyFiles()
	b.WriteString(fmt.Sprintf("%d file(s) have unsaved changes:", len(dirty)))
	b.WriteString("\n")
	for _, f := range dirty {
		b.WriteString("  ")
		b.WriteString(styles.Dirty.Render("● "))
		b.WriteString(f.DisplayName())
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(RenderHelpLine(QuitKeys.Save, QuitKeys.Discard, QuitKeys.Cancel))

	return styles.App.Render(b.String())
}
