package sqlite

import (
	"database/sql"

	"ezpanso/internal/domain"
	"ezpanso/internal/ports"
)

// indexTx implements ports.IndexTx
type indexTx struct {
	tx *sql.Tx
}

// Ensure indexTx implements IndexTx
var _ ports.IndexTx = (*indexTx)(nil)

// UpsertFile inserts or updates a file row
func (t *indexTx) UpsertFile(path string, mtime int64) error {
	_, err := t.tx.Exec(`
		INSERT OR REPLACE INTO files (path, name, mtime)
		VALUES (?, ?, ?)
	`, path, domain.DisplayNameForPath(path), mtime)
	return err
}

// DeleteFile removes a file and its matches
func (t *indexTx) DeleteFile(path string) error {
	if _, err := t.tx.Exec(`DELETE FROM files WHERE path = ?`, path); err != nil {
		return err
	}
	_, err := t.tx.Exec(`DELETE FROM matches WHERE file_path = ?`, path)
	return err
}

// ReplaceMatches swaps out every indexed match for a file
func (t *indexTx) ReplaceMatches(path string, matches []domain.IndexedMatch) error {
	if _, err := t.tx.Exec(`DELETE FROM matches WHERE file_path = ?`, path); err != nil {
		return err
	}

	stmt, err := t.tx.Prepare(`
		INSERT INTO matches (file_path, trigger, replace, complex)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, m := range matches {
		isComplex := 0
		if m.Complex {
			isComplex = 1
		}
		if _, err := stmt.Exec(path, m.Trigger, m.Replace, isComplex); err != nil {
			return err
		}
	}
	return nil
}

// Commit commits the transaction
func (t *indexTx) Commit() error {
	return t.tx.Commit()
}

// Rollback aborts the transaction
func (t *indexTx) Rollback() error {
	return t.tx.Rollback()
}
