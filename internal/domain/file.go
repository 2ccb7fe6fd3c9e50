package domain

import (
	"path/filepath"
	"strings"
)

// FileEntry is the in-memory representation of one match file: its path, the
// ordered list of matches, and whether the list differs from the last save.
// Matches keep the order they were loaded in; sorting is a display concern.
type FileEntry struct {
	Path    string
	Matches []*Match
	Dirty   bool
}

// DisplayName derives the name shown for the file. A file literally named
// package.yml is named after its parent directory with a "(package)" suffix;
// every other file is shown by its filename with the extension stripped.
func (f *FileEntry) DisplayName() string {
	return DisplayNameForPath(f.Path)
}

// DisplayNameForPath implements the display naming rule for any path.
func DisplayNameForPath(path string) string {
	filename := filepath.Base(path)
	if strings.EqualFold(filename, "package.yml") {
		parent := filepath.Base(filepath.Dir(path))
		return parent + " (package)"
	}
	return strings.TrimSuffix(filename, filepath.Ext(filename))
}

// IsPackage reports whether the file is an installed package definition.
func (f *FileEntry) IsPackage() bool {
	return strings.EqualFold(filepath.Base(f.Path), "package.yml")
}

// CloneMatches returns deep copies of the file's matches.
func (f *FileEntry) CloneMatches() []*Match {
	if f.Matches == nil {
		return nil
	}
	clones := make([]*Match, len(f.Matches))
	for i, m := range f.Matches {
		clones[i] = m.Clone()
	}
	return clones
}

// FindTrigger locates a match by its exact (case-sensitive) trigger.
// The second return value is the match's position in storage order, or -1.
func (f *FileEntry) FindTrigger(trigger string) (*Match, int) {
	for i, m := range f.Matches {
		if m.Trigger == trigger {
			return m, i
		}
	}
	return nil, -1
}

// HasTrigger reports whether any match other than exclude uses the trigger.
// Uniqueness is case-sensitive and spans the whole file.
func (f *FileEntry) HasTrigger(trigger string, exclude *Match) bool {
	for _, m := range f.Matches {
		if m != exclude && m.Trigger == trigger {
			return true
		}
	}
	return false
}

// Remove deletes the given match from the file. Removing a match that is no
// longer present is a no-op and reports false.
func (f *FileEntry) Remove(match *Match) bool {
	for i, m := range f.Matches {
		if m == match {
			f.Matches = append(f.Matches[:i], f.Matches[i+1:]...)
			return true
		}
	}
	return false
}
