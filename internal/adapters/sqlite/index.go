// Package sqlite caches every match under a root directory in a SQLite
// database, so search across hundreds of files does not re-parse YAML.
package sqlite

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	_ "github.com/mattn/go-sqlite3"

	"ezpanso/internal/domain"
	"ezpanso/internal/ports"
)

const schemaVersion = "1"

// Index implements ports.SnippetIndex using SQLite
type Index struct {
	db     *sql.DB
	root   string
	dbPath string
	store  ports.SnippetStore
}

// Ensure Index implements SnippetIndex
var _ ports.SnippetIndex = (*Index)(nil)

// NewIndex creates a new SQLite index. The store is used to re-parse match
// files during sync.
func NewIndex(store ports.SnippetStore) *Index {
	return &Index{store: store}
}

// Open initializes the index for the given match directory
func (idx *Index) Open(root string) error {
	// Expand ~ in path
	if len(root) > 0 && root[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		root = filepath.Join(home, root[1:])
	}

	idx.root = root
	idx.dbPath = databasePath(root)

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(idx.dbPath), 0755); err != nil {
		return fmt.Errorf("failed to create index directory: %w", err)
	}

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite3", idx.dbPath+"?_journal_mode=WAL")
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	idx.db = db

	// Performance pragmas + schema in single batch (reduces round-trips)
	_, err = db.Exec(`
		PRAGMA synchronous = NORMAL;
		PRAGMA cache_size = -64000;
		PRAGMA temp_store = MEMORY;
		PRAGMA busy_timeout = 5000;

		CREATE TABLE IF NOT EXISTS files (
			path TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			mtime INTEGER NOT NULL
		);
		CREATE TABLE IF NOT EXISTS matches (
			file_path TEXT NOT NULL,
			trigger TEXT NOT NULL,
			replace TEXT NOT NULL,
			complex INTEGER NOT NULL DEFAULT 0
		);
		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_matches_file ON matches(file_path);
		CREATE INDEX IF NOT EXISTS idx_matches_trigger ON matches(trigger);
	`)
	if err != nil {
		db.Close()
		return fmt.Errorf("failed to setup database: %w", err)
	}

	// Update metadata
	if err := idx.updateMeta(); err != nil {
		db.Close()
		return fmt.Errorf("failed to update metadata: %w", err)
	}

	return nil
}

// Close closes the database connection
func (idx *Index) Close() error {
	if idx.db != nil {
		return idx.db.Close()
	}
	return nil
}

// NeedsFullRebuild returns true if the index should be fully rebuilt
func (idx *Index) NeedsFullRebuild() bool {
	var version, rootHash string

	idx.db.QueryRow("SELECT value FROM meta WHERE key = 'schema_version'").Scan(&version)
	idx.db.QueryRow("SELECT value FROM meta WHERE key = 'root_path_hash'").Scan(&rootHash)

	expectedHash := hashRootPath(idx.root)

	return version != schemaVersion || rootHash != expectedHash
}

// databasePath returns the path for the SQLite database
func databasePath(root string) string {
	// Hash root path for unique DB name
	hash := hashRootPath(root)

	return filepath.Join(xdg.DataHome, "ezpanso", hash+".db")
}

// hashRootPath returns a short hash of the root path
func hashRootPath(root string) string {
	h := sha256.Sum256([]byte(root))
	return hex.EncodeToString(h[:8]) // First 8 bytes = 16 hex chars
}

// updateMeta updates the schema version and root path hash
func (idx *Index) updateMeta() error {
	_, err := idx.db.Exec(`
		INSERT OR REPLACE INTO meta (key, value) VALUES ('schema_version', ?);
		INSERT OR REPLACE INTO meta (key, value) VALUES ('root_path_hash', ?);
	`, schemaVersion, hashRootPath(idx.root))
	return err
}

// Search returns every indexed match whose trigger or replacement contains
// the query, case-insensitively. An empty query returns everything.
func (idx *Index) Search(query string) ([]domain.IndexedMatch, error) {
	pattern := "%" + escapeLike(query) + "%"

	rows, err := idx.db.Query(`
		SELECT m.file_path, f.name, m.trigger, m.replace, m.complex
		FROM matches m JOIN files f ON f.path = m.file_path
		WHERE m.trigger LIKE ? ESCAPE '\' OR m.replace LIKE ? ESCAPE '\'
		ORDER BY f.name, m.trigger
	`, pattern, pattern)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.IndexedMatch
	for rows.Next() {
		var m domain.IndexedMatch
		var isComplex int
		if err := rows.Scan(&m.FilePath, &m.FileName, &m.Trigger, &m.Replace, &isComplex); err != nil {
			return nil, err
		}
		m.Complex = isComplex != 0
		results = append(results, m)
	}

	return results, rows.Err()
}

// escapeLike escapes LIKE wildcards so queries match them literally
func escapeLike(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '%', '_', '\\':
			out = append(out, '\\')
		}
		out = append(out, s[i])
	}
	return string(out)
}

// ListFiles returns the indexed file paths in sorted order
func (idx *Index) ListFiles() ([]string, error) {
	rows, err := idx.db.Query(`SELECT path FROM files ORDER BY path`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var paths []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		paths = append(paths, p)
	}

	return paths, rows.Err()
}

// BeginTx starts a new transaction
func (idx *Index) BeginTx() (ports.IndexTx, error) {
	tx, err := idx.db.Begin()
	if err != nil {
		return nil, err
	}
	return &indexTx{tx: tx}, nil
}
