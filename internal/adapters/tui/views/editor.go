package views

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"ezpanso/internal/adapters/tui/styles"
	"ezpanso/internal/application"
	"ezpanso/internal/domain"
)

// EditorKeyMap defines key bindings for the match table
type EditorKeyMap struct {
	Up          key.Binding
	Down        key.Binding
	PrevFile    key.Binding
	NextFile    key.Binding
	Files       key.Binding
	Filter      key.Binding
	Edit        key.Binding
	Add         key.Binding
	Mark        key.Binding
	Delete      key.Binding
	Undo        key.Binding
	Redo        key.Binding
	Save        key.Binding
	NewFile     key.Binding
	DeleteFile  key.Binding
	CopyTrigger key.Binding
	CopyReplace key.Binding
	Help        key.Binding
	Quit        key.Binding
}

var EditorKeys = EditorKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	PrevFile: key.NewBinding(
		key.WithKeys("h", "["),
		key.WithHelp("h", "previous file"),
	),
	NextFile: key.NewBinding(
		key.WithKeys("l", "]"),
		key.WithHelp("l", "next file"),
	),
	Files: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "files"),
	),
	Filter: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "filter"),
	),
	Edit: key.NewBinding(
		key.WithKeys("enter", "e"),
		key.WithHelp("enter", "edit"),
	),
	Add: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "add"),
	),
	Mark: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("space", "mark"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "delete"),
	),
	Undo: key.NewBinding(
		key.WithKeys("u"),
		key.WithHelp("u", "undo"),
	),
	Redo: key.NewBinding(
		key.WithKeys("ctrl+r"),
		key.WithHelp("ctrl+r", "redo"),
	),
	Save: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "save all"),
	),
	NewFile: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "new file"),
	),
	DeleteFile: key.NewBinding(
		key.WithKeys("X"),
		key.WithHelp("X", "delete file"),
	),
	CopyTrigger: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy trigger"),
	),
	CopyReplace: key.NewBinding(
		key.WithKeys("Y"),
		key.WithHelp("Y", "copy replace"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// chrome rows around the table: title, header, filter, message, help
const editorChrome = 8

// EditorModel is the match table, the main view.
type EditorModel struct {
	ViewState
	session *application.Session

	rows   []application.Row
	marked map[string]bool // displayed trigger -> marked for deletion
	pager  *Paginator

	filterInput textinput.Model
	filtering   bool

	skipPackageWarning bool
	packageWarned      map[string]bool // file path -> warning already shown
}

// NewEditorModel creates a new editor model
func NewEditorModel(session *application.Session) *EditorModel {
	filter := textinput.New()
	filter.Placeholder = "filter triggers and replacements"
	filter.CharLimit = 100

	return &EditorModel{
		session:       session,
		marked:        make(map[string]bool),
		pager:         NewPaginator(20),
		filterInput:   filter,
		packageWarned: make(map[string]bool),
	}
}

// SetSkipPackageWarning disables the first-edit warning for package files.
func (m *EditorModel) SetSkipPackageWarning(skip bool) {
	m.skipPackageWarning = skip
}

// warnPackageFile shows a one-time warning before the first edit of a file
// that belongs to an installed package. Returns true when the edit should be
// held back for this keypress.
func (m *EditorModel) warnPackageFile() bool {
	file := m.session.ActiveFile()
	if file == nil || !file.IsPackage() || m.skipPackageWarning {
		return false
	}
	if m.packageWarned[file.Path] {
		return false
	}
	m.packageWarned[file.Path] = true
	m.SetMessage("This file belongs to an installed package; a package update may overwrite your change. Press again to edit.", true)
	return true
}

// Init initializes the editor
func (m *EditorModel) Init() tea.Cmd {
	m.Refresh()
	return nil
}

// Refresh re-reads the rows for the active file, pruning stale marks
func (m *EditorModel) Refresh() {
	m.rows = m.session.Rows(m.filterInput.Value())
	m.pager.SetTotal(len(m.rows))

	present := make(map[string]bool, len(m.rows))
	for _, r := range m.rows {
		present[r.Trigger] = true
	}
	for t := range m.marked {
		if !present[t] {
			delete(m.marked, t)
		}
	}
}

// SelectedRow returns the row under the cursor, or nil
func (m *EditorModel) SelectedRow() *application.Row {
	i := m.pager.Cursor()
	if i < 0 || i >= len(m.rows) {
		return nil
	}
	return &m.rows[i]
}

// Update handles messages for the editor
func (m *EditorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		m.pager.SetPageSize(max(msg.Height-editorChrome, 3))
		return m, nil

	case tea.KeyMsg:
		if m.filtering {
			return m.updateFiltering(msg)
		}
		return m.updateKeys(msg)
	}

	return m, nil
}

func (m *EditorModel) updateFiltering(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.filtering = false
		m.filterInput.SetValue("")
		m.filterInput.Blur()
		m.Refresh()
		return m, nil
	case "enter":
		m.filtering = false
		m.filterInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	m.Refresh()
	return m, cmd
}

func (m *EditorModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.ClearMessage()

	switch {
	case key.Matches(msg, EditorKeys.Quit):
		if m.session.HasUnsavedChanges() {
			return m, func() tea.Msg {
				return ConfirmQuitMsg{DirtyCount: len(m.session.DirtyFiles())}
			}
		}
		return m, tea.Quit

	case key.Matches(msg, EditorKeys.Up):
		m.pager.CursorUp()
		return m, nil

	case key.Matches(msg, EditorKeys.Down):
		m.pager.CursorDown()
		return m, nil

	case key.Matches(msg, EditorKeys.PrevFile):
		m.stepFile(-1)
		return m, nil

	case key.Matches(msg, EditorKeys.NextFile):
		m.stepFile(1)
		return m, nil

	case key.Matches(msg, EditorKeys.Files):
		return m, func() tea.Msg { return SwitchToFilesMsg{} }

	case key.Matches(msg, EditorKeys.Filter):
		m.filtering = true
		m.filterInput.Focus()
		return m, textinput.Blink

	case key.Matches(msg, EditorKeys.Edit):
		row := m.SelectedRow()
		if row == nil {
			return m, nil
		}
		if row.Complex {
			m.SetMessage(fmt.Sprintf("%s has extra fields, edit the YAML directly", row.Trigger), true)
			return m, nil
		}
		if m.warnPackageFile() {
			return m, nil
		}
		return m, func() tea.Msg { return SwitchToFormMsg{Row: row} }

	case key.Matches(msg, EditorKeys.Add):
		if m.session.ActiveFile() == nil {
			m.SetMessage("no file loaded", true)
			return m, nil
		}
		if m.warnPackageFile() {
			return m, nil
		}
		return m, func() tea.Msg { return SwitchToFormMsg{Row: nil} }

	case key.Matches(msg, EditorKeys.Mark):
		if row := m.SelectedRow(); row != nil {
			if m.marked[row.Trigger] {
				delete(m.marked, row.Trigger)
			} else {
				m.marked[row.Trigger] = true
			}
			m.pager.CursorDown()
		}
		return m, nil

	case key.Matches(msg, EditorKeys.Delete):
		triggers := m.deletionTargets()
		if len(triggers) == 0 {
			return m, nil
		}
		return m, func() tea.Msg { return ConfirmDeleteMsg{Triggers: triggers} }

	case key.Matches(msg, EditorKeys.Undo):
		if desc, ok := m.session.Undo(); ok {
			m.SetMessage("Undid "+desc, false)
			m.Refresh()
		} else {
			m.SetMessage("Nothing to undo", true)
		}
		return m, nil

	case key.Matches(msg, EditorKeys.Redo):
		if desc, ok := m.session.Redo(); ok {
			m.SetMessage("Redid "+desc, false)
			m.Refresh()
		} else {
			m.SetMessage("Nothing to redo", true)
		}
		return m, nil

	case key.Matches(msg, EditorKeys.Save):
		if !m.session.HasUnsavedChanges() {
			m.SetMessage("Nothing to save", false)
			return m, nil
		}
		return m, func() tea.Msg {
			return ConfirmSaveMsg{DirtyCount: len(m.session.DirtyFiles())}
		}

	case key.Matches(msg, EditorKeys.NewFile):
		return m, func() tea.Msg { return SwitchToNewFileMsg{} }

	case key.Matches(msg, EditorKeys.DeleteFile):
		if file := m.session.ActiveFile(); file != nil {
			return m, func() tea.Msg {
				return ConfirmDeleteFileMsg{FileName: file.DisplayName()}
			}
		}
		return m, nil

	case key.Matches(msg, EditorKeys.CopyTrigger):
		m.copyToClipboard(func(match *domain.Match) string { return match.Trigger })
		return m, nil

	case key.Matches(msg, EditorKeys.CopyReplace):
		m.copyToClipboard(func(match *domain.Match) string { return match.Replace })
		return m, nil

	case key.Matches(msg, EditorKeys.Help):
		return m, func() tea.Msg { return SwitchToHelpMsg{} }
	}

	return m, nil
}

// deletionTargets returns the marked triggers, or the selected one
func (m *EditorModel) deletionTargets() []string {
	if len(m.marked) > 0 {
		targets := make([]string, 0, len(m.marked))
		for _, r := range m.rows {
			if m.marked[r.Trigger] {
				targets = append(targets, r.Trigger)
			}
		}
		return targets
	}
	if row := m.SelectedRow(); row != nil {
		return []string{row.Trigger}
	}
	return nil
}

func (m *EditorModel) stepFile(delta int) {
	files := m.session.Files()
	active := m.session.ActiveFile()
	if len(files) == 0 || active == nil {
		return
	}
	for i, f := range files {
		if f == active {
			next := (i + delta + len(files)) % len(files)
			if err := m.session.SetActive(files[next].Path); err != nil {
				m.SetMessage(err.Error(), true)
				return
			}
			m.marked = make(map[string]bool)
			m.pager.Reset()
			m.Refresh()
			return
		}
	}
}

func (m *EditorModel) copyToClipboard(pick func(*domain.Match) string) {
	row := m.SelectedRow()
	if row == nil {
		return
	}
	if err := clipboard.WriteAll(pick(row.Match)); err != nil {
		m.SetMessage("clipboard unavailable: "+err.Error(), true)
		return
	}
	m.SetMessage("Copied", false)
}

// View renders the match table
func (m *EditorModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("EZpanso"))
	b.WriteString("\n")
	b.WriteString(m.renderFileLine())
	b.WriteString("\n\n")

	if m.filtering || m.filterInput.Value() != "" {
		b.WriteString(styles.HelpKey.Render("/ "))
		b.WriteString(m.filterInput.View())
		b.WriteString("\n")
	}

	b.WriteString(m.renderTable())

	if m.Message != "" {
		b.WriteString("\n")
		b.WriteString(RenderMessage(m.Message, m.MessageErr))
	}
	if status := m.pager.PageStatus(); status != "" {
		b.WriteString("\n")
		b.WriteString(styles.MutedText.Render(status))
	}

	b.WriteString("\n")
	b.WriteString(RenderHelpLine(
		EditorKeys.Edit, EditorKeys.Add, EditorKeys.Delete,
		EditorKeys.Undo, EditorKeys.Save, EditorKeys.Files,
		EditorKeys.Help, EditorKeys.Quit,
	))

	return styles.App.Render(b.String())
}

func (m *EditorModel) renderFileLine() string {
	file := m.session.ActiveFile()
	if file == nil {
		return styles.Subtitle.Render("no match files loaded")
	}

	files := m.session.Files()
	pos := 0
	for i, f := range files {
		if f == file {
			pos = i + 1
			break
		}
	}

	var b strings.Builder
	b.WriteString(styles.Subtitle.Render(file.DisplayName()))
	if file.Dirty {
		b.WriteString(styles.Dirty.Render(" ●"))
	}
	b.WriteString(styles.MutedText.Render(fmt.Sprintf("  %d/%d files, %d matches", pos, len(files), len(file.Matches))))
	return b.String()
}

func (m *EditorModel) renderTable() string {
	if len(m.rows) == 0 {
		if m.filterInput.Value() != "" {
			return styles.MutedText.Render("no matches for this filter")
		}
		return styles.MutedText.Render("no matches in this file, press a to add one")
	}

	triggerWidth := 24
	replaceWidth := max(m.Width-triggerWidth-10, 20)

	var b strings.Builder
	b.WriteString(styles.TableHeader.Render(fmt.Sprintf("  %-*s %s", triggerWidth, "Trigger", "Replace")))
	b.WriteString("\n")

	start, end := m.pager.VisibleRange()
	for i := start; i < end; i++ {
		b.WriteString(m.renderRow(m.rows[i], i == m.pager.Cursor(), triggerWidth, replaceWidth))
		b.WriteString("\n")
	}
	return b.String()
}

func (m *EditorModel) renderRow(row application.Row, selected bool, triggerWidth, replaceWidth int) string {
	marker := "  "
	if m.marked[row.Trigger] {
		marker = styles.RowMarked.Render("✗ ")
	}

	// Preview escapes the raw values itself; row.Trigger/Replace are
	// already escaped and would come out doubled.
	trigger := domain.Preview(row.Match.Trigger, triggerWidth)
	replace := domain.Preview(row.Match.Replace, replaceWidth)
	text := fmt.Sprintf("%-*s %s", triggerWidth, trigger, replace)
	if row.Complex {
		text += " [complex]"
	}

	switch {
	case selected:
		return marker + styles.RowSelected.Render(text)
	case row.Complex:
		return marker + styles.RowComplex.Render(text)
	default:
		return marker + styles.RowSimple.Render(text)
	}
}
