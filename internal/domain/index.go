package domain

import "time"

// IndexedMatch is a cached row of the search index: one match plus the file
// it came from.
type IndexedMatch struct {
	FilePath string
	FileName string // display name of the owning file
	Trigger  string
	Replace  string
	Complex  bool
}

// SyncStats holds statistics from an index sync run.
type SyncStats struct {
	FilesScanned   int
	FilesIndexed   int
	FilesRemoved   int
	MatchesIndexed int
	Duration       time.Duration
}
