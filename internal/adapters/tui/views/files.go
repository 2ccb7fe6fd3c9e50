package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"ezpanso/internal/adapters/tui/styles"
	"ezpanso/internal/application"
)

// FilesKeyMap defines key bindings for the file list
type FilesKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	New    key.Binding
	Delete key.Binding
	Close  key.Binding
}

var FilesKeys = FilesKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "open"),
	),
	New: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "new file"),
	),
	Delete: key.NewBinding(
		key.WithKeys("X"),
		key.WithHelp("X", "delete file"),
	),
	Close: key.NewBinding(
		key.WithKeys("esc", "q", "f"),
		key.WithHelp("esc", "back"),
	),
}

// FilesModel lists the loaded match files.
type FilesModel struct {
	ViewState
	session *application.Session
	cursor  int
}

// NewFilesModel creates a new file list model
func NewFilesModel(session *application.Session) *FilesModel {
	return &FilesModel{session: session}
}

// Init initializes the file list, placing the cursor on the active file
func (m *FilesModel) Init() tea.Cmd {
	m.cursor = 0
	active := m.session.ActiveFile()
	for i, f := range m.session.Files() {
		if f == active {
			m.cursor = i
			break
		}
	}
	return nil
}

// Update handles messages for the file list
func (m *FilesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		files := m.session.Files()
		switch {
		case key.Matches(msg, FilesKeys.Close):
			return m, func() tea.Msg { return SwitchToEditorMsg{} }

		case key.Matches(msg, FilesKeys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil

		case key.Matches(msg, FilesKeys.Down):
			if m.cursor < len(files)-1 {
				m.cursor++
			}
			return m, nil

		case key.Matches(msg, FilesKeys.Select):
			if m.cursor < len(files) {
				if err := m.session.SetActive(files[m.cursor].Path); err != nil {
					return m, func() tea.Msg { return SwitchToEditorMsg{Err: err} }
				}
			}
			return m, func() tea.Msg { return SwitchToEditorMsg{} }

		case key.Matches(msg, FilesKeys.New):
			return m, func() tea.Msg { return SwitchToNewFileMsg{} }

		case key.Matches(msg, FilesKeys.Delete):
			if m.cursor < len(files) {
				name := files[m.cursor].DisplayName()
				return m, func() tea.Msg { return ConfirmDeleteFileMsg{FileName: name} }
			}
			return m, nil
		}
	}

	return m, nil
}

// View renders the file list
func (m *FilesModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Match Files"))
	b.WriteString("\n")
	b.WriteString(styles.Subtitle.Render(m.session.Root()))
	b.WriteString("\n\n")

	files := m.session.Files()
	if len(files) == 0 {
		b.WriteString(styles.MutedText.Render("no match files, press n to create one"))
		b.WriteString("\n")
	}

	for i, f := range files {
		detail := fmt.Sprintf("%d matches", len(f.Matches))
		if mtime := m.session.ModTime(f.Path); mtime != "" {
			detail += "  " + mtime
		}
		line := fmt.Sprintf("%-30s %s", f.DisplayName(), styles.MutedText.Render(detail))
		if f.Dirty {
			line = styles.Dirty.Render("● ") + line
		} else {
			line = "  " + line
		}
		if i == m.cursor {
			line = styles.RowSelected.Render("▸ ") + line
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(RenderHelpLine(FilesKeys.Select, FilesKeys.New, FilesKeys.Delete, FilesKeys.Close))

	return styles.App.Render(b.String())
}
