package application

import (
	"errors"
	"fmt"
	"testing"

	"ezpanso/internal/domain"
)

// fakeStore is an in-memory SnippetStore. Paths listed in failWrites reject
// saves, for partial-failure tests.
type fakeStore struct {
	entries    []*domain.FileEntry
	saved      map[string][]*domain.Match
	failWrites map[string]bool
	created    []string
	deleted    []string
}

func newFakeStore(entries ...*domain.FileEntry) *fakeStore {
	return &fakeStore{
		entries:    entries,
		saved:      make(map[string][]*domain.Match),
		failWrites: make(map[string]bool),
	}
}

func (s *fakeStore) LoadDirectory(root string) ([]*domain.FileEntry, error) {
	return s.entries, nil
}

func (s *fakeStore) LoadFile(path string) ([]*domain.Match, error) {
	for _, e := range s.entries {
		if e.Path == path {
			return e.Matches, nil
		}
	}
	return nil, nil
}

func (s *fakeStore) SaveFile(path string, matches []*domain.Match) error {
	if s.failWrites[path] {
		return fmt.Errorf("simulated write failure for %s", path)
	}
	clones := make([]*domain.Match, len(matches))
	for i, m := range matches {
		clones[i] = m.Clone()
	}
	s.saved[path] = clones
	return nil
}

func (s *fakeStore) CreateFile(path string) error {
	s.created = append(s.created, path)
	return nil
}

func (s *fakeStore) DeleteFile(path string) error {
	s.deleted = append(s.deleted, path)
	return nil
}

func (s *fakeStore) ModTime(path string) string { return "" }

func loadedSession(t *testing.T, store *fakeStore) *Session {
	t.Helper()
	sess := NewSession(store)
	if err := sess.Load("/espanso/match"); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	return sess
}

func baseFile() *domain.FileEntry {
	return &domain.FileEntry{
		Path: "/espanso/match/base.yml",
		Matches: []*domain.Match{
			{Trigger: ":hi", Replace: "Hello"},
			{Trigger: ":bye", Replace: "Bye"},
		},
	}
}

func TestLoad_SelectsFirstFileByDisplayName(t *testing.T) {
	sess := loadedSession(t, newFakeStore(
		&domain.FileEntry{Path: "/m/zeta.yml", Matches: []*domain.Match{{Trigger: ":z"}}},
		&domain.FileEntry{Path: "/m/alpha.yml", Matches: []*domain.Match{{Trigger: ":a"}}},
	))

	active := sess.ActiveFile()
	if active == nil || active.DisplayName() != "alpha" {
		t.Fatalf("expected alpha active, got %+v", active)
	}
	files := sess.Files()
	if len(files) != 2 || files[0].DisplayName() != "alpha" || files[1].DisplayName() != "zeta" {
		t.Errorf("files not in display-name order: %+v", files)
	}
}

func TestRows_SortsAndEscapes(t *testing.T) {
	sess := loadedSession(t, newFakeStore(&domain.FileEntry{
		Path: "/m/base.yml",
		Matches: []*domain.Match{
			{Trigger: ":sig", Replace: "Line one\nLine two"},
			{Trigger: ":Complex", Replace: "x", Extra: []domain.ExtraField{{Key: "word", Value: true}}},
			{Trigger: ":addr", Replace: "Street"},
		},
	}))

	rows := sess.Rows("")
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if rows[0].Trigger != ":addr" || rows[1].Trigger != ":sig" || rows[2].Trigger != ":Complex" {
		t.Errorf("unexpected row order: %q %q %q", rows[0].Trigger, rows[1].Trigger, rows[2].Trigger)
	}
	if rows[1].Replace != `Line one\nLine two` {
		t.Errorf("replace not display-escaped: %q", rows[1].Replace)
	}
	if !rows[2].Complex {
		t.Error("complex flag not set on complex row")
	}
}

func TestRows_FilterHidesRows(t *testing.T) {
	sess := loadedSession(t, newFakeStore(baseFile()))

	rows := sess.Rows("hello")
	if len(rows) != 1 || rows[0].Trigger != ":hi" {
		t.Fatalf("expected only :hi, got %+v", rows)
	}

	// Underlying data is untouched.
	if len(sess.ActiveFile().Matches) != 2 {
		t.Error("filter must hide rows, not remove matches")
	}
}

func TestFindByDisplayedTrigger(t *testing.T) {
	file := &domain.FileEntry{
		Path:    "/m/base.yml",
		Matches: []*domain.Match{{Trigger: "multi\nline", Replace: "x"}},
	}
	sess := loadedSession(t, newFakeStore(file))

	m, idx, err := sess.FindByDisplayedTrigger(`multi\nline`)
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if m != file.Matches[0] || idx != 0 {
		t.Errorf("resolved wrong match: %+v at %d", m, idx)
	}

	if _, _, err := sess.FindByDisplayedTrigger(":gone"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateMatch_EditsInPlaceAndMarksDirty(t *testing.T) {
	sess := loadedSession(t, newFakeStore(baseFile()))
	file := sess.ActiveFile()
	m, _ := file.FindTrigger(":bye")

	if err := sess.UpdateMatch(m, ":bye", "Goodbye"); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if m.Replace != "Goodbye" {
		t.Errorf("replace not updated: %q", m.Replace)
	}
	if !file.Dirty || !sess.HasUnsavedChanges() {
		t.Error("file should be dirty after edit")
	}
}

func TestUpdateMatch_DuplicateTriggerRejected(t *testing.T) {
	sess := loadedSession(t, newFakeStore(baseFile()))
	file := sess.ActiveFile()
	m, _ := file.FindTrigger(":bye")

	err := sess.UpdateMatch(m, ":hi", "Bye")
	var dup *DuplicateTriggerError
	if !errors.As(err, &dup) {
		t.Fatalf("expected DuplicateTriggerError, got %v", err)
	}
	if m.Trigger != ":bye" || m.Replace != "Bye" {
		t.Error("rejected edit must not mutate the match")
	}
	if file.Dirty {
		t.Error("rejected edit must not dirty the file")
	}
	if sess.CanUndo() {
		t.Error("rejected edit must not push a snapshot")
	}
}

func TestUpdateMatch_ComplexRejected(t *testing.T) {
	file := &domain.FileEntry{
		Path: "/m/base.yml",
		Matches: []*domain.Match{
			{Trigger: ":date", Replace: "{{d}}", Extra: []domain.ExtraField{{Key: "vars", Value: []any{}}}},
		},
	}
	sess := loadedSession(t, newFakeStore(file))

	err := sess.UpdateMatch(file.Matches[0], ":date2", "other")
	var complexErr *ComplexMatchError
	if !errors.As(err, &complexErr) {
		t.Fatalf("expected ComplexMatchError, got %v", err)
	}
	if file.Matches[0].Trigger != ":date" || file.Matches[0].Replace != "{{d}}" {
		t.Error("complex match must stay unchanged")
	}
}

func TestUpdateMatch_NoChangeIsNoOp(t *testing.T) {
	sess := loadedSession(t, newFakeStore(baseFile()))
	m, _ := sess.ActiveFile().FindTrigger(":hi")

	if err := sess.UpdateMatch(m, ":hi", "Hello"); err != nil {
		t.Fatalf("no-op update errored: %v", err)
	}
	if sess.ActiveFile().Dirty || sess.CanUndo() {
		t.Error("no-op update must not dirty the file or push a snapshot")
	}
}

func TestAddMatch_EmptyAndDuplicateRejected(t *testing.T) {
	sess := loadedSession(t, newFakeStore(baseFile()))

	if _, err := sess.AddMatch("   ", "x"); err == nil {
		t.Error("empty trigger should be rejected")
	}
	_, err := sess.AddMatch(":hi", "again")
	var dup *DuplicateTriggerError
	if !errors.As(err, &dup) {
		t.Errorf("expected DuplicateTriggerError, got %v", err)
	}
	if len(sess.ActiveFile().Matches) != 2 {
		t.Error("rejected add must not grow the match list")
	}
}

func TestAddMatch_AppendsAndMarksDirty(t *testing.T) {
	sess := loadedSession(t, newFakeStore(baseFile()))

	m, err := sess.AddMatch(":new", "fresh")
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	file := sess.ActiveFile()
	if file.Matches[len(file.Matches)-1] != m {
		t.Error("new match should be appended to storage order")
	}
	if !file.Dirty {
		t.Error("add should dirty the file")
	}
}

func TestDeleteMatches_BatchWithMissingItems(t *testing.T) {
	sess := loadedSession(t, newFakeStore(baseFile()))
	file := sess.ActiveFile()
	hi, _ := file.FindTrigger(":hi")
	gone := &domain.Match{Trigger: ":never"}

	removed, err := sess.DeleteMatches([]*domain.Match{hi, gone})
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if removed != 1 {
		t.Errorf("expected 1 removal, got %d", removed)
	}
	if len(file.Matches) != 1 || file.Matches[0].Trigger != ":bye" {
		t.Errorf("unexpected matches after delete: %+v", file.Matches)
	}
	if !file.Dirty {
		t.Error("delete should dirty the file")
	}
}

func TestUndoRedo_InverseLaw(t *testing.T) {
	sess := loadedSession(t, newFakeStore(baseFile()))
	file := sess.ActiveFile()
	m, _ := file.FindTrigger(":bye")

	if err := sess.UpdateMatch(m, ":bye", "Goodbye"); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	if _, ok := sess.Undo(); !ok {
		t.Fatal("undo should apply")
	}
	restored, _ := file.FindTrigger(":bye")
	if restored == nil || restored.Replace != "Bye" {
		t.Errorf("undo did not restore pre-edit state: %+v", restored)
	}
	if file.Dirty {
		t.Error("undo should restore the clean dirty flag")
	}
	if sess.HasUnsavedChanges() {
		t.Error("session dirtiness should follow the per-file flags")
	}

	if _, ok := sess.Redo(); !ok {
		t.Fatal("redo should apply")
	}
	redone, _ := file.FindTrigger(":bye")
	if redone == nil || redone.Replace != "Goodbye" {
		t.Errorf("redo did not restore post-edit state: %+v", redone)
	}
	if !file.Dirty {
		t.Error("redo should restore the dirty flag")
	}
}

func TestUndo_EmptyStackIsNoOp(t *testing.T) {
	sess := loadedSession(t, newFakeStore(baseFile()))
	if _, ok := sess.Undo(); ok {
		t.Error("undo on empty stack should be a no-op")
	}
	if _, ok := sess.Redo(); ok {
		t.Error("redo on empty stack should be a no-op")
	}
}

func TestMutation_ClearsRedoStack(t *testing.T) {
	sess := loadedSession(t, newFakeStore(baseFile()))
	file := sess.ActiveFile()
	m, _ := file.FindTrigger(":bye")

	sess.UpdateMatch(m, ":bye", "one")
	sess.Undo()
	if !sess.CanRedo() {
		t.Fatal("redo stack should be populated by undo")
	}
	if _, err := sess.AddMatch(":other", "x"); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if sess.CanRedo() {
		t.Error("new mutation must clear the redo stack")
	}
}

func TestUndoDepth_IsBounded(t *testing.T) {
	sess := loadedSession(t, newFakeStore(baseFile()))

	for i := 0; i < MaxUndoDepth+10; i++ {
		if _, err := sess.AddMatch(fmt.Sprintf(":gen%d", i), "v"); err != nil {
			t.Fatalf("add %d failed: %v", i, err)
		}
	}
	undone := 0
	for {
		if _, ok := sess.Undo(); !ok {
			break
		}
		undone++
	}
	if undone != MaxUndoDepth {
		t.Errorf("expected %d undo steps, got %d", MaxUndoDepth, undone)
	}
}

func TestSaveAll_PartialFailureKeepsDirty(t *testing.T) {
	good := &domain.FileEntry{Path: "/m/good.yml", Dirty: true,
		Matches: []*domain.Match{{Trigger: ":g", Replace: "ok"}}}
	bad := &domain.FileEntry{Path: "/m/bad.yml", Dirty: true,
		Matches: []*domain.Match{{Trigger: ":b", Replace: "no"}}}
	clean := &domain.FileEntry{Path: "/m/clean.yml",
		Matches: []*domain.Match{{Trigger: ":c", Replace: "c"}}}

	store := newFakeStore(good, bad, clean)
	store.failWrites["/m/bad.yml"] = true
	sess := loadedSession(t, store)

	result := sess.SaveAll()

	if len(result.Saved) != 1 || result.Saved[0] != "/m/good.yml" {
		t.Errorf("unexpected saved list: %v", result.Saved)
	}
	if len(result.Failed) != 1 || result.Failed[0].Path != "/m/bad.yml" {
		t.Errorf("unexpected failed list: %+v", result.Failed)
	}
	if good.Dirty {
		t.Error("saved file should be clean")
	}
	if !bad.Dirty {
		t.Error("failed file must stay dirty for retry")
	}
	if _, touched := store.saved["/m/clean.yml"]; touched {
		t.Error("clean file must not be written")
	}
	if !sess.HasUnsavedChanges() {
		t.Error("session should still report unsaved changes")
	}
}

func TestSaveAll_NothingDirty(t *testing.T) {
	sess := loadedSession(t, newFakeStore(baseFile()))
	result := sess.SaveAll()
	if len(result.Saved) != 0 || len(result.Failed) != 0 {
		t.Errorf("expected empty result on clean session, got %+v", result)
	}
}

func TestDeleteFile_PurgesSnapshotsAndReselects(t *testing.T) {
	a := baseFile()
	b := &domain.FileEntry{Path: "/espanso/match/extra.yml",
		Matches: []*domain.Match{{Trigger: ":x", Replace: "x"}}}
	store := newFakeStore(a, b)
	sess := loadedSession(t, store)

	sess.SetActive(b.Path)
	if _, err := sess.AddMatch(":y", "y"); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	if err := sess.DeleteFile(b.Path); err != nil {
		t.Fatalf("delete file failed: %v", err)
	}
	if len(store.deleted) != 1 || store.deleted[0] != b.Path {
		t.Errorf("store should be asked to delete %s, got %v", b.Path, store.deleted)
	}
	if sess.ActiveFile() == nil || sess.ActiveFile().Path != a.Path {
		t.Error("selection should fall back to the remaining file")
	}
	if _, ok := sess.Undo(); ok {
		t.Error("snapshots for the deleted file must be purged")
	}
}

func TestNewFile_CreatesTemplateAndSelects(t *testing.T) {
	store := newFakeStore(baseFile())
	sess := loadedSession(t, store)

	entry, err := sess.NewFile("/espanso/match/fresh.yml")
	if err != nil {
		t.Fatalf("new file failed: %v", err)
	}
	if len(store.created) != 1 {
		t.Error("store should create the file")
	}
	if sess.ActiveFile() != entry {
		t.Error("new file should become active")
	}
	if len(entry.Matches) != 1 || entry.Matches[0].Trigger != ":test" {
		t.Errorf("new file should hold the template match, got %+v", entry.Matches)
	}
}
