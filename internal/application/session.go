package application

import (
	"fmt"
	"sort"
	"strings"

	"ezpanso/internal/domain"
	"ezpanso/internal/ports"
)

// MaxUndoDepth bounds the snapshot history; the oldest snapshot is dropped
// when the stack is full.
const MaxUndoDepth = 50

// Row is the transient projection of one match for table display. Rows are
// derived data: edits never mutate a Row, they flow back into the match the
// row was derived from.
type Row struct {
	Match   *domain.Match
	Trigger string // display-escaped trigger
	Replace string // display-escaped replacement
	Complex bool
}

// SaveResult reports the outcome of a batch save. A batch is not atomic
// across files: failures are collected per path and the rest continue.
type SaveResult struct {
	Saved  []string
	Failed []SaveFailure
}

// Session owns the editor state: every loaded file, the active selection and
// the undo/redo history. UI layers hold a handle to it; nothing is global.
type Session struct {
	store ports.SnippetStore

	root   string
	files  map[string]*domain.FileEntry
	order  []string
	active string

	undo []domain.Snapshot
	redo []domain.Snapshot
}

// NewSession creates an empty session backed by the given store.
func NewSession(store ports.SnippetStore) *Session {
	return &Session{
		store: store,
		files: make(map[string]*domain.FileEntry),
	}
}

// Load discards all state and loads every match file under root. The first
// file (by display name) becomes active.
func (s *Session) Load(root string) error {
	entries, err := s.store.LoadDirectory(root)
	if err != nil {
		return err
	}

	s.root = root
	s.files = make(map[string]*domain.FileEntry, len(entries))
	s.order = s.order[:0]
	s.active = ""
	s.undo = nil
	s.redo = nil

	for _, entry := range entries {
		s.files[entry.Path] = entry
		s.order = append(s.order, entry.Path)
	}
	s.sortOrder()

	if len(s.order) > 0 {
		s.active = s.order[0]
	}
	return nil
}

// Root returns the loaded directory, empty before the first Load.
func (s *Session) Root() string {
	return s.root
}

// Files returns all loaded files ordered by display name.
func (s *Session) Files() []*domain.FileEntry {
	files := make([]*domain.FileEntry, 0, len(s.order))
	for _, path := range s.order {
		files = append(files, s.files[path])
	}
	return files
}

// File returns the entry for path, or nil.
func (s *Session) File(path string) *domain.FileEntry {
	return s.files[path]
}

// FileByDisplayName resolves a file by its display name.
func (s *Session) FileByDisplayName(name string) *domain.FileEntry {
	for _, path := range s.order {
		if s.files[path].DisplayName() == name {
			return s.files[path]
		}
	}
	return nil
}

// ModTime returns the on-disk modification time of path for status display,
// or an empty string when the file cannot be inspected.
func (s *Session) ModTime(path string) string {
	return s.store.ModTime(path)
}

// ActiveFile returns the currently selected file, or nil when none is loaded.
func (s *Session) ActiveFile() *domain.FileEntry {
	if s.active == "" {
		return nil
	}
	return s.files[s.active]
}

// SetActive switches the selection to path.
func (s *Session) SetActive(path string) error {
	if _, ok := s.files[path]; !ok {
		return fmt.Errorf("%s: %w", path, ErrNotFound)
	}
	s.active = path
	return nil
}

// Rows projects the active file's matches for display: simple matches before
// complex ones, case-insensitive trigger order within each group, then a
// case-insensitive substring filter over trigger and replacement. Filtered
// rows are hidden, not removed.
func (s *Session) Rows(filter string) []Row {
	file := s.ActiveFile()
	if file == nil {
		return nil
	}

	visible := domain.FilterMatches(domain.SortForDisplay(file.Matches), filter)
	rows := make([]Row, len(visible))
	for i, m := range visible {
		rows[i] = Row{
			Match:   m,
			Trigger: domain.DisplayValue(m.Trigger),
			Replace: domain.DisplayValue(m.Replace),
			Complex: m.IsComplex(),
		}
	}
	return rows
}

// FindByDisplayedTrigger resolves a row back to its match by the trigger
// value the table displayed. Row indexes are useless for identity once the
// table is sorted or filtered, so the displayed trigger is the row key.
func (s *Session) FindByDisplayedTrigger(displayTrigger string) (*domain.Match, int, error) {
	file := s.ActiveFile()
	if file == nil {
		return nil, -1, ErrNoActiveFile
	}
	for i, m := range file.Matches {
		if domain.DisplayValue(m.Trigger) == displayTrigger {
			return m, i, nil
		}
	}
	return nil, -1, fmt.Errorf("match %q: %w", displayTrigger, ErrNotFound)
}

// UpdateMatch applies an edit to a match of the active file. The new values
// are raw strings (escape sequences already parsed). Validation happens
// before any mutation: complex matches are rejected outright, and a trigger
// collision rejects the whole edit.
func (s *Session) UpdateMatch(m *domain.Match, newTrigger, newReplace string) error {
	file, err := s.owningActiveFile(m)
	if err != nil {
		return err
	}
	if err := ValidateEditable(m); err != nil {
		return err
	}
	if newTrigger == m.Trigger && newReplace == m.Replace {
		return nil
	}
	if err := ValidateTrigger(newTrigger, file, m); err != nil {
		return err
	}

	s.pushSnapshot(file, fmt.Sprintf("edit %s", m.Trigger))
	m.Trigger = newTrigger
	m.Replace = newReplace
	file.Dirty = true
	return nil
}

// AddMatch appends a new simple match to the active file.
func (s *Session) AddMatch(trigger, replace string) (*domain.Match, error) {
	file := s.ActiveFile()
	if file == nil {
		return nil, ErrNoActiveFile
	}
	if err := ValidateTrigger(trigger, file, nil); err != nil {
		return nil, err
	}

	s.pushSnapshot(file, fmt.Sprintf("add %s", trigger))
	m := &domain.Match{Trigger: trigger, Replace: replace}
	file.Matches = append(file.Matches, m)
	file.Dirty = true
	return m, nil
}

// DeleteMatches removes the given matches from the active file under a
// single snapshot. Matches already gone are skipped, not errors. Returns the
// number actually removed.
func (s *Session) DeleteMatches(matches []*domain.Match) (int, error) {
	file := s.ActiveFile()
	if file == nil {
		return 0, ErrNoActiveFile
	}
	if len(matches) == 0 {
		return 0, nil
	}

	s.pushSnapshot(file, fmt.Sprintf("delete %d match(es)", len(matches)))
	removed := 0
	for _, m := range matches {
		if file.Remove(m) {
			removed++
		}
	}
	if removed > 0 {
		file.Dirty = true
	} else {
		// Nothing was actually there; the snapshot is meaningless.
		s.undo = s.undo[:len(s.undo)-1]
	}
	return removed, nil
}

// Undo restores the most recent snapshot, pushing the current state onto the
// redo stack first. It reports the snapshot's description and whether
// anything happened.
func (s *Session) Undo() (string, bool) {
	return s.popAndRestore(&s.undo, &s.redo)
}

// Redo reverses the most recent Undo.
func (s *Session) Redo() (string, bool) {
	return s.popAndRestore(&s.redo, &s.undo)
}

// CanUndo reports whether the undo stack is non-empty.
func (s *Session) CanUndo() bool { return len(s.undo) > 0 }

// CanRedo reports whether the redo stack is non-empty.
func (s *Session) CanRedo() bool { return len(s.redo) > 0 }

// HasUnsavedChanges reports whether any file is dirty.
func (s *Session) HasUnsavedChanges() bool {
	for _, f := range s.files {
		if f.Dirty {
			return true
		}
	}
	return false
}

// DirtyFiles returns the dirty files in stable (path) order.
func (s *Session) DirtyFiles() []*domain.FileEntry {
	var dirty []*domain.FileEntry
	for _, f := range s.files {
		if f.Dirty {
			dirty = append(dirty, f)
		}
	}
	sort.Slice(dirty, func(i, j int) bool { return dirty[i].Path < dirty[j].Path })
	return dirty
}

// SaveAll persists every dirty file. A file's dirty flag is cleared only
// when its write succeeded; failures are reported per path and the batch
// continues, so a retry saves just the leftovers.
func (s *Session) SaveAll() SaveResult {
	var result SaveResult
	for _, file := range s.DirtyFiles() {
		if err := s.store.SaveFile(file.Path, file.Matches); err != nil {
			result.Failed = append(result.Failed, SaveFailure{Path: file.Path, Err: err})
			continue
		}
		file.Dirty = false
		result.Saved = append(result.Saved, file.Path)
	}
	return result
}

// NewFile creates a template match file under the loaded root and selects it.
func (s *Session) NewFile(path string) (*domain.FileEntry, error) {
	if s.root == "" {
		return nil, ErrNotLoaded
	}
	if _, exists := s.files[path]; exists {
		return nil, &ValidationError{Field: "file", Message: fmt.Sprintf("%s is already loaded", path)}
	}
	if err := s.store.CreateFile(path); err != nil {
		return nil, err
	}

	entry := &domain.FileEntry{
		Path:    path,
		Matches: []*domain.Match{{Trigger: ":test", Replace: "result"}},
	}
	s.files[path] = entry
	s.order = append(s.order, path)
	s.sortOrder()
	s.active = path
	return entry, nil
}

// DeleteFile removes a loaded file from disk and memory. Snapshots that
// reference it are purged; restoring state for a file that no longer exists
// would resurrect it half-way.
func (s *Session) DeleteFile(path string) error {
	if _, ok := s.files[path]; !ok {
		return fmt.Errorf("%s: %w", path, ErrNotFound)
	}
	if err := s.store.DeleteFile(path); err != nil {
		return err
	}

	delete(s.files, path)
	for i, p := range s.order {
		if p == path {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	s.undo = purgeSnapshots(s.undo, path)
	s.redo = purgeSnapshots(s.redo, path)

	if s.active == path {
		s.active = ""
		if len(s.order) > 0 {
			s.active = s.order[0]
		}
	}
	return nil
}

func (s *Session) owningActiveFile(m *domain.Match) (*domain.FileEntry, error) {
	file := s.ActiveFile()
	if file == nil {
		return nil, ErrNoActiveFile
	}
	for _, candidate := range file.Matches {
		if candidate == m {
			return file, nil
		}
	}
	return nil, fmt.Errorf("match %q: %w", m.Trigger, ErrNotFound)
}

// pushSnapshot records the file's pre-mutation state. Every new mutation
// clears the redo stack.
func (s *Session) pushSnapshot(file *domain.FileEntry, description string) {
	snap := domain.TakeSnapshot(file, description)
	s.undo = append(s.undo, snap)
	if len(s.undo) > MaxUndoDepth {
		s.undo = s.undo[1:]
	}
	s.redo = nil
}

func (s *Session) popAndRestore(from, to *[]domain.Snapshot) (string, bool) {
	for len(*from) > 0 {
		snap := (*from)[len(*from)-1]
		*from = (*from)[:len(*from)-1]

		file, ok := s.files[snap.Path]
		if !ok {
			// File vanished since the snapshot was taken; drop it.
			continue
		}

		current := domain.TakeSnapshot(file, snap.Description)
		*to = append(*to, current)

		file.Matches = snap.Matches
		file.Dirty = snap.Dirty
		s.active = snap.Path
		return snap.Description, true
	}
	return "", false
}

func (s *Session) sortOrder() {
	sort.Slice(s.order, func(i, j int) bool {
		ni := strings.ToLower(s.files[s.order[i]].DisplayName())
		nj := strings.ToLower(s.files[s.order[j]].DisplayName())
		if ni != nj {
			return ni < nj
		}
		return s.order[i] < s.order[j]
	})
}

func purgeSnapshots(stack []domain.Snapshot, path string) []domain.Snapshot {
	kept := stack[:0]
	for _, snap := range stack {
		if snap.Path != path {
			kept = append(kept, snap)
		}
	}
	return kept
}
