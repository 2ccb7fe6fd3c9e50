package sqlite

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"ezpanso/internal/domain"
)

// SyncFull performs a complete rebuild of the index
func (idx *Index) SyncFull() (*domain.SyncStats, error) {
	start := time.Now()
	stats := &domain.SyncStats{}

	// Clear existing data
	if _, err := idx.db.Exec(`DELETE FROM files`); err != nil {
		return nil, err
	}
	if _, err := idx.db.Exec(`DELETE FROM matches`); err != nil {
		return nil, err
	}

	// Walk the match directory
	err := filepath.Walk(idx.root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // Skip errors
		}

		// Skip hidden directories
		if info.IsDir() && strings.HasPrefix(info.Name(), ".") {
			return filepath.SkipDir
		}
		if info.IsDir() || !isMatchFile(info.Name()) {
			return nil
		}

		stats.FilesScanned++
		if n, ok := idx.indexFile(path, info.ModTime().Unix()); ok {
			stats.FilesIndexed++
			stats.MatchesIndexed += n
		}
		return nil
	})

	if err != nil {
		return stats, err
	}

	// Update last sync time
	idx.db.Exec(`INSERT OR REPLACE INTO meta (key, value) VALUES ('last_sync_time', ?)`,
		time.Now().Unix())

	stats.Duration = time.Since(start)
	return stats, nil
}

// SyncIncremental updates only files that changed since they were indexed
func (idx *Index) SyncIncremental() (*domain.SyncStats, error) {
	start := time.Now()
	stats := &domain.SyncStats{}

	// Mtimes of everything currently indexed, to detect changes and deletions
	indexed := make(map[string]int64)
	rows, err := idx.db.Query(`SELECT path, mtime FROM files`)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var path string
		var mtime int64
		rows.Scan(&path, &mtime)
		indexed[path] = mtime
	}
	rows.Close()

	// Track paths we've seen during this walk
	seen := make(map[string]bool)

	err = filepath.Walk(idx.root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}

		if info.IsDir() && strings.HasPrefix(info.Name(), ".") {
			return filepath.SkipDir
		}
		if info.IsDir() || !isMatchFile(info.Name()) {
			return nil
		}

		seen[path] = true
		stats.FilesScanned++

		mtime := info.ModTime().Unix()
		old, known := indexed[path]
		if known && old == mtime {
			return nil
		}

		if n, ok := idx.indexFile(path, mtime); ok {
			stats.FilesIndexed++
			stats.MatchesIndexed += n
		}
		return nil
	})

	if err != nil {
		return stats, err
	}

	// Drop files that no longer exist
	for path := range indexed {
		if !seen[path] {
			idx.db.Exec(`DELETE FROM files WHERE path = ?`, path)
			idx.db.Exec(`DELETE FROM matches WHERE file_path = ?`, path)
			stats.FilesRemoved++
		}
	}

	// Update last sync time
	idx.db.Exec(`INSERT OR REPLACE INTO meta (key, value) VALUES ('last_sync_time', ?)`,
		time.Now().Unix())

	stats.Duration = time.Since(start)
	return stats, nil
}

// indexFile parses one match file and replaces its rows. Unparseable and
// empty files are dropped from the index rather than treated as errors.
func (idx *Index) indexFile(path string, mtime int64) (int, bool) {
	matches, err := idx.store.LoadFile(path)
	if err != nil || len(matches) == 0 {
		idx.db.Exec(`DELETE FROM files WHERE path = ?`, path)
		idx.db.Exec(`DELETE FROM matches WHERE file_path = ?`, path)
		return 0, false
	}

	tx, err := idx.BeginTx()
	if err != nil {
		return 0, false
	}
	if err := tx.UpsertFile(path, mtime); err != nil {
		tx.Rollback()
		return 0, false
	}
	rows := make([]domain.IndexedMatch, len(matches))
	for i, m := range matches {
		rows[i] = domain.IndexedMatch{
			FilePath: path,
			Trigger:  m.Trigger,
			Replace:  m.Replace,
			Complex:  m.IsComplex(),
		}
	}
	if err := tx.ReplaceMatches(path, rows); err != nil {
		tx.Rollback()
		return 0, false
	}
	if err := tx.Commit(); err != nil {
		return 0, false
	}
	return len(rows), true
}

// isMatchFile reports whether a filename is an indexable match file.
// Underscore-prefixed files are package manifests, not match files.
func isMatchFile(name string) bool {
	if strings.HasPrefix(name, "_") {
		return false
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yml", ".yaml":
		return true
	}
	return false
}
