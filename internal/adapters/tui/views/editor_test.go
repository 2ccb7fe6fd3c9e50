package views

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"ezpanso/internal/application"
	"ezpanso/internal/domain"
)

type memStore struct {
	entries []*domain.FileEntry
}

func (s *memStore) LoadDirectory(root string) ([]*domain.FileEntry, error) { return s.entries, nil }
func (s *memStore) LoadFile(path string) ([]*domain.Match, error)         { return nil, nil }
func (s *memStore) SaveFile(path string, matches []*domain.Match) error   { return nil }
func (s *memStore) CreateFile(path string) error                          { return nil }
func (s *memStore) DeleteFile(path string) error                          { return nil }
func (s *memStore) ModTime(path string) string                            { return "" }

func editorSession(t *testing.T) *application.Session {
	t.Helper()
	store := &memStore{entries: []*domain.FileEntry{
		{
			Path: "/m/base.yml",
			Matches: []*domain.Match{
				{Trigger: ":hi", Replace: "Hello"},
				{Trigger: ":sig", Replace: "Best,\nMe", Extra: []domain.ExtraField{{Key: "word", Value: true}}},
				{Trigger: ":addr", Replace: "1 Main St"},
			},
		},
		{
			Path:    "/m/work.yml",
			Matches: []*domain.Match{{Trigger: ":standup", Replace: "notes"}},
		},
	}}
	sess := application.NewSession(store)
	if err := sess.Load("/m"); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	return sess
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestEditorRefresh_SortsSimpleBeforeComplex(t *testing.T) {
	m := NewEditorModel(editorSession(t))
	m.Init()

	if len(m.rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(m.rows))
	}
	if m.rows[0].Trigger != ":addr" || m.rows[1].Trigger != ":hi" {
		t.Errorf("simple matches should sort first: %v, %v", m.rows[0].Trigger, m.rows[1].Trigger)
	}
	if !m.rows[2].Complex || m.rows[2].Trigger != ":sig" {
		t.Errorf("complex match should sort last, got %+v", m.rows[2])
	}
}

func TestEditorMarkAndDeletionTargets(t *testing.T) {
	m := NewEditorModel(editorSession(t))
	m.Init()

	// No marks: the selected row is the target
	targets := m.deletionTargets()
	if len(targets) != 1 || targets[0] != ":addr" {
		t.Fatalf("expected selected row as target, got %v", targets)
	}

	// Mark two rows; marks win over the cursor
	m.Update(keyMsg(" "))
	m.Update(keyMsg(" "))
	targets = m.deletionTargets()
	if len(targets) != 2 {
		t.Fatalf("expected 2 marked targets, got %v", targets)
	}
	if targets[0] != ":addr" || targets[1] != ":hi" {
		t.Errorf("targets should follow display order, got %v", targets)
	}
}

func TestEditorRefresh_PrunesStaleMarks(t *testing.T) {
	sess := editorSession(t)
	m := NewEditorModel(sess)
	m.Init()

	m.Update(keyMsg(" ")) // mark :addr
	match, _, err := sess.FindByDisplayedTrigger(":addr")
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if _, err := sess.DeleteMatches([]*domain.Match{match}); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	m.Refresh()
	if len(m.marked) != 0 {
		t.Errorf("marks on deleted rows should be pruned, got %v", m.marked)
	}
}

func TestEditorFilter_NarrowsRows(t *testing.T) {
	m := NewEditorModel(editorSession(t))
	m.Init()

	m.filterInput.SetValue("addr")
	m.Refresh()
	if len(m.rows) != 1 || m.rows[0].Trigger != ":addr" {
		t.Errorf("filter should narrow to :addr, got %+v", m.rows)
	}

	m.filterInput.SetValue("")
	m.Refresh()
	if len(m.rows) != 3 {
		t.Errorf("clearing the filter should restore all rows, got %d", len(m.rows))
	}
}

func TestEditorStepFile_WrapsAround(t *testing.T) {
	sess := editorSession(t)
	m := NewEditorModel(sess)
	m.Init()

	first := sess.ActiveFile()
	m.stepFile(1)
	if sess.ActiveFile() == first {
		t.Fatal("next file should change the active file")
	}
	m.stepFile(1)
	if sess.ActiveFile() != first {
		t.Error("stepping past the last file should wrap to the first")
	}
	m.stepFile(-1)
	m.stepFile(-1)
	if sess.ActiveFile() != first {
		t.Error("stepping back twice should return to the first file")
	}
}

func TestEditorSaveAsksForConfirmation(t *testing.T) {
	sess := editorSession(t)
	m := NewEditorModel(sess)
	m.Init()

	// Nothing dirty: no confirmation, just a status message
	_, cmd := m.Update(keyMsg("s"))
	if cmd != nil {
		t.Fatal("save with no changes should not emit a command")
	}
	if m.Message != "Nothing to save" {
		t.Errorf("expected a nothing-to-save message, got %q", m.Message)
	}

	if _, err := sess.AddMatch(":new", "value"); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	_, cmd = m.Update(keyMsg("s"))
	if cmd == nil {
		t.Fatal("save with changes should ask for confirmation")
	}
	msg, ok := cmd().(ConfirmSaveMsg)
	if !ok {
		t.Fatalf("expected ConfirmSaveMsg, got %T", cmd())
	}
	if msg.DirtyCount != 1 {
		t.Errorf("confirmation should name 1 dirty file, got %d", msg.DirtyCount)
	}
}

func TestSaveModelConfirmWritesFiles(t *testing.T) {
	sess := editorSession(t)
	if _, err := sess.AddMatch(":new", "value"); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	m := NewSaveModel(sess)
	_, cmd := m.Update(keyMsg("y"))
	if cmd == nil {
		t.Fatal("confirming should run the save")
	}
	switched, ok := cmd().(SwitchToEditorMsg)
	if !ok {
		t.Fatalf("expected SwitchToEditorMsg, got %T", cmd())
	}
	if switched.Err != nil {
		t.Fatalf("save should succeed, got %v", switched.Err)
	}
	if sess.HasUnsavedChanges() {
		t.Error("confirmed save should clear the dirty flags")
	}
}

func TestSaveModelCancelKeepsChanges(t *testing.T) {
	sess := editorSession(t)
	if _, err := sess.AddMatch(":new", "value"); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	m := NewSaveModel(sess)
	_, cmd := m.Update(keyMsg("n"))
	if cmd == nil {
		t.Fatal("cancelling should return to the editor")
	}
	if _, ok := cmd().(SwitchToEditorMsg); !ok {
		t.Fatalf("expected SwitchToEditorMsg, got %T", cmd())
	}
	if !sess.HasUnsavedChanges() {
		t.Error("cancelling must not write anything")
	}
}

func TestEditorRenderRow_EscapesValuesOnce(t *testing.T) {
	m := NewEditorModel(editorSession(t))
	m.Init()

	var sig application.Row
	for _, r := range m.rows {
		if r.Match.Trigger == ":sig" {
			sig = r
		}
	}
	if sig.Match == nil {
		t.Fatal("expected a :sig row")
	}

	out := m.renderRow(sig, false, 24, 40)
	if !strings.Contains(out, `Best,\nMe`) {
		t.Errorf("newline should render as a single \\n escape, got %q", out)
	}
	if strings.Contains(out, `\\n`) {
		t.Errorf("replacement must not be escaped twice, got %q", out)
	}
}

func TestEditorPackageFileWarnsOnce(t *testing.T) {
	store := &memStore{entries: []*domain.FileEntry{
		{
			Path:    "/m/packages/greet/package.yml",
			Matches: []*domain.Match{{Trigger: ":hello", Replace: "Hello!"}},
		},
	}}
	sess := application.NewSession(store)
	if err := sess.Load("/m"); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	m := NewEditorModel(sess)
	m.Init()

	_, cmd := m.Update(keyMsg("e"))
	if cmd != nil {
		t.Fatal("first edit of a package file should be held back")
	}
	if !m.MessageErr {
		t.Error("first edit of a package file should warn")
	}

	_, cmd = m.Update(keyMsg("e"))
	if cmd == nil {
		t.Error("second edit should open the form")
	}
}

func TestEditorPackageWarningSuppressed(t *testing.T) {
	store := &memStore{entries: []*domain.FileEntry{
		{
			Path:    "/m/packages/greet/package.yml",
			Matches: []*domain.Match{{Trigger: ":hello", Replace: "Hello!"}},
		},
	}}
	sess := application.NewSession(store)
	if err := sess.Load("/m"); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	m := NewEditorModel(sess)
	m.Init()
	m.SetSkipPackageWarning(true)

	_, cmd := m.Update(keyMsg("e"))
	if cmd == nil {
		t.Error("suppressed warning should open the form immediately")
	}
}

func TestEditorEditComplexMatchRefused(t *testing.T) {
	m := NewEditorModel(editorSession(t))
	m.Init()

	// Move the cursor onto the complex row
	m.Update(keyMsg("j"))
	m.Update(keyMsg("j"))
	row := m.SelectedRow()
	if row == nil || !row.Complex {
		t.Fatalf("cursor should sit on the complex row, got %+v", row)
	}

	_, cmd := m.Update(keyMsg("e"))
	if cmd != nil {
		t.Error("editing a complex match should not open the form")
	}
	if !m.MessageErr {
		t.Error("editing a complex match should set an error message")
	}
}
