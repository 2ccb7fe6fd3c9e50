package ports

import "ezpanso/internal/domain"

// SnippetIndex provides cached search across every match file under a root
// directory, so lookups do not re-parse the whole tree.
type SnippetIndex interface {
	// Lifecycle
	Open(root string) error
	Close() error

	// Sync operations
	NeedsFullRebuild() bool
	SyncFull() (*domain.SyncStats, error)
	SyncIncremental() (*domain.SyncStats, error)

	// Search returns matches whose trigger or replacement contains the
	// query, case-insensitively.
	Search(query string) ([]domain.IndexedMatch, error)

	// ListFiles returns the indexed file paths in sorted order.
	ListFiles() ([]string, error)

	// Batch updates
	BeginTx() (IndexTx, error)
}

// IndexTx represents a transaction for atomic index updates.
type IndexTx interface {
	UpsertFile(path string, mtime int64) error
	DeleteFile(path string) error
	ReplaceMatches(path string, matches []domain.IndexedMatch) error

	Commit() error
	Rollback() error
}
