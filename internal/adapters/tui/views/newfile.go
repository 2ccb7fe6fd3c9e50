package views

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"ezpanso/internal/adapters/tui/styles"
	"ezpanso/internal/application"
	"ezpanso/internal/application/commands"
)

// NewFileModel prompts for the name of a new match file.
type NewFileModel struct {
	ViewState
	session *application.Session
	form    *InputForm
}

// NewNewFileModel creates a new file prompt model
func NewNewFileModel(session *application.Session) *NewFileModel {
	form := NewInputForm(
		NewInputField("File name:", "my-snippets", 80),
	)
	return &NewFileModel{
		session: session,
		form:    form,
	}
}

// Init initializes the prompt
func (m *NewFileModel) Init() tea.Cmd {
	m.form.Reset()
	m.ClearMessage()
	return m.form.Init()
}

// Update handles messages for the prompt
func (m *NewFileModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case errMsg:
		m.SetMessage(msg.err.Error(), true)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.form.Keys.Cancel):
			return m, func() tea.Msg { return SwitchToEditorMsg{} }

		case key.Matches(msg, m.form.Keys.Submit):
			return m, m.create
		}
	}

	_, cmd := m.form.Update(msg)
	return m, cmd
}

func (m *NewFileModel) create() tea.Msg {
	cmd := commands.NewNewFileCommand(m.session, m.form.Value(0))
	result, err := cmd.Execute(context.Background())
	if err != nil {
		return errMsg{err}
	}
	return SwitchToEditorMsg{Message: result.Message}
}

// View renders the prompt
func (m *NewFileModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("New Match File"))
	b.WriteString("\n")
	b.WriteString(styles.Subtitle.Render("created under " + m.session.Root()))
	b.WriteString("\n\n")

	b.WriteString(m.form.RenderField(0))
	b.WriteString("\n\n")

	if m.Message != "" {
		b.WriteString(RenderMessage(m.Message, m.MessageErr))
		b.WriteString("\n\n")
	}

	b.WriteString(m.form.RenderHelp("create"))

	return styles.App.Render(b.String())
}
