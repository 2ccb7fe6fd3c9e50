package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"ezpanso/internal/adapters/tui/styles"
)

// HelpKeyMap defines key bindings for the help view
type HelpKeyMap struct {
	Close key.Binding
}

var HelpKeys = HelpKeyMap{
	Close: key.NewBinding(
		key.WithKeys("esc", "q", "?"),
		key.WithHelp("esc/q/?", "close"),
	),
}

// HelpModel is the model for the help view
type HelpModel struct {
	ViewState
}

// NewHelpModel creates a new help view model
func NewHelpModel() *HelpModel {
	return &HelpModel{}
}

// Init initializes the help view
func (m *HelpModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the help view
func (m *HelpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, HelpKeys.Close) {
			return m, func() tea.Msg {
				return SwitchToEditorMsg{}
			}
		}
	}

	return m, nil
}

// View renders the help view
func (m *HelpModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("EZpanso Help"))
	b.WriteString("\n\n")

	b.WriteString(styles.Subtitle.Render("Espanso match file editor"))
	b.WriteString("\n\n")

	b.WriteString(styles.InputLabel.Render("Navigation"))
	b.WriteString("\n")
	b.WriteString(helpLine("j / k / ↑ / ↓", "Move up/down"))
	b.WriteString(helpLine("h / l", "Previous/next file"))
	b.WriteString(helpLine("f", "File list"))
	b.WriteString(helpLine("/", "Filter matches"))
	b.WriteString("\n")

	b.WriteString(styles.InputLabel.Render("Editing"))
	b.WriteString("\n")
	b.WriteString(helpLine("enter / e", "Edit the selected match"))
	b.WriteString(helpLine("a", "Add a match"))
	b.WriteString(helpLine("space", "Mark for deletion"))
	b.WriteString(helpLine("d", "Delete selected/marked matches"))
	b.WriteString(helpLine("u / ctrl+r", "Undo / redo"))
	b.WriteString("\n")

	b.WriteString(styles.InputLabel.Render("Files"))
	b.WriteString("\n")
	b.WriteString(helpLine("s", "Save all changed files"))
	b.WriteString(helpLine("n", "New match file"))
	b.WriteString(helpLine("X", "Delete the current file"))
	b.WriteString("\n")

	b.WriteString(styles.InputLabel.Render("Clipboard"))
	b.WriteString("\n")
	b.WriteString(helpLine("y / Y", "Copy trigger / replacement"))
	b.WriteString("\n")

	b.WriteString(styles.MutedText.Render("Matches with extra YAML fields (vars, word, ...) are shown dimmed"))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("and cannot be edited here. Use \\n and \\t for newlines and tabs."))
	b.WriteString("\n\n")

	b.WriteString(RenderHelpLine(HelpKeys.Close))

	return styles.App.Render(b.String())
}

func helpLine(keys, desc string) string {
	return fmt.Sprintf("  %s  %s\n",
		styles.HelpKey.Render(fmt.Sprintf("%-14s", keys)),
		styles.HelpDesc.Render(desc),
	)
}
