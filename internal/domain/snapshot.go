package domain

// Snapshot is an immutable copy of one file's state taken before a mutating
// operation, used for undo/redo. It captures the match list and the file's
// dirty flag; any cross-file state is recomputed after a restore.
type Snapshot struct {
	Path        string
	Matches     []*Match
	Dirty       bool
	Description string
}

// TakeSnapshot copies the file's current state.
func TakeSnapshot(f *FileEntry, description string) Snapshot {
	return Snapshot{
		Path:        f.Path,
		Matches:     f.CloneMatches(),
		Dirty:       f.Dirty,
		Description: description,
	}
}
