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

const (
	fieldTrigger = iota
	fieldReplace
)

// FormModel is the form for adding a match or editing a simple one.
// Values are taken as displayed: \n and \t stand for newline and tab.
type FormModel struct {
	ViewState
	session *application.Session
	form    *InputForm
	editing *application.Row // nil when adding
}

// NewFormModel creates a new match form model
func NewFormModel(session *application.Session) *FormModel {
	form := NewInputForm(
		NewInputField("Trigger:", ":trigger", 100),
		NewInputField("Replace:", "replacement text, \\n for newline", 0),
	)
	return &FormModel{
		session: session,
		form:    form,
	}
}

// SetRow prefills the form. A nil row switches the form to add mode.
func (m *FormModel) SetRow(row *application.Row) {
	m.editing = row
	m.form.Reset()
	m.ClearMessage()
	if row != nil {
		m.form.SetValue(fieldTrigger, row.Trigger)
		m.form.SetValue(fieldReplace, row.Replace)
	}
}

// Init initializes the form
func (m *FormModel) Init() tea.Cmd {
	return m.form.Init()
}

// Update handles messages for the form
func (m *FormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			return m, m.submit
		}
	}

	_, cmd := m.form.Update(msg)
	return m, cmd
}

func (m *FormModel) submit() tea.Msg {
	trigger := m.form.Value(fieldTrigger)
	replace := m.form.Value(fieldReplace)
	ctx := context.Background()

	if m.editing != nil {
		cmd := commands.NewUpdateMatchCommand(m.session, "", m.editing.Trigger, trigger, replace)
		result, err := cmd.Execute(ctx)
		if err != nil {
			return errMsg{err}
		}
		return SwitchToEditorMsg{Message: result.Message}
	}

	cmd := commands.NewAddMatchCommand(m.session, "", trigger, replace)
	result, err := cmd.Execute(ctx)
	if err != nil {
		return errMsg{err}
	}
	return SwitchToEditorMsg{Message: result.Message}
}

// View renders the form
func (m *FormModel) View() string {
	var b strings.Builder

	title := "Add Match"
	if m.editing != nil {
		title = "Edit Match"
	}
	b.WriteString(styles.Title.Render(title))
	b.WriteString("\n")
	if file := m.session.ActiveFile(); file != nil {
		b.WriteString(styles.Subtitle.Render(file.DisplayName()))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(m.form.RenderField(fieldTrigger))
	b.WriteString("\n\n")
	b.WriteString(m.form.RenderField(fieldReplace))
	b.WriteString("\n\n")

	if m.Message != "" {
		b.WriteString(RenderMessage(m.Message, m.MessageErr))
		b.WriteString("\n\n")
	}

	submitText := "add"
	if m.editing != nil {
		submitText = "save"
	}
	b.WriteString(m.form.RenderHelp(submitText))

	return styles.App.Render(b.String())
}
