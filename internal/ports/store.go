package ports

import "ezpanso/internal/domain"

// SnippetStore defines the interface for reading and writing Espanso match
// files on disk.
type SnippetStore interface {
	// LoadDirectory walks root recursively and returns one FileEntry per
	// parseable YAML file that holds at least one match. Files whose name
	// starts with "_" are skipped; unparseable files are skipped and logged,
	// never returned as errors.
	LoadDirectory(root string) ([]*domain.FileEntry, error)

	// LoadFile parses a single match file. A file with no matches returns
	// an empty slice and no error.
	LoadFile(path string) ([]*domain.Match, error)

	// SaveFile writes the matches back to path, preserving unrelated
	// top-level keys of the existing document when it can still be parsed.
	SaveFile(path string, matches []*domain.Match) error

	// CreateFile creates a new match file seeded with a template match.
	CreateFile(path string) error

	// DeleteFile removes a match file from disk.
	DeleteFile(path string) error

	// ModTime returns the file's modification time as a display string,
	// or an empty string when the file cannot be inspected.
	ModTime(path string) string
}
