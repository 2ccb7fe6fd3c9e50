package application

import "ezpanso/internal/domain"

// Re-export domain types for use by adapters
type (
	Match        = domain.Match
	ExtraField   = domain.ExtraField
	FileEntry    = domain.FileEntry
	Snapshot     = domain.Snapshot
	IndexedMatch = domain.IndexedMatch
)

// DisplayValue re-exports the table escaping transform.
func DisplayValue(s string) string {
	return domain.DisplayValue(s)
}

// ParseEscapes re-exports the inverse transform applied to typed input.
func ParseEscapes(s string) string {
	return domain.ParseEscapes(s)
}
