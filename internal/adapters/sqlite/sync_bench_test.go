package sqlite

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/adrg/xdg"

	"ezpanso/internal/adapters/yamlstore"
)

// BenchmarkSyncFull benchmarks just the sync operation (DB already open)
func BenchmarkSyncFull(b *testing.B) {
	matchDir := os.Getenv("MATCH_DIR")
	if matchDir == "" {
		b.Skip("MATCH_DIR not set")
	}

	idx := NewIndex(yamlstore.NewStore())
	if err := idx.Open(matchDir); err != nil {
		b.Fatalf("failed to open index: %v", err)
	}
	defer func() {
		if err := idx.Close(); err != nil {
			b.Fatalf("failed to close index: %v", err)
		}
	}()

	b.ResetTimer()
	for b.Loop() {
		_, err := idx.SyncFull()
		if err != nil {
			b.Fatalf("sync failed: %v", err)
		}
	}
}

// BenchmarkFullStartup benchmarks cold startup: open + full sync + close (no existing DB)
func BenchmarkFullStartup(b *testing.B) {
	matchDir := os.Getenv("MATCH_DIR")
	if matchDir == "" {
		b.Skip("MATCH_DIR not set")
	}

	// Use a temp DB path for each run
	tmpDir := b.TempDir()

	b.Setenv("XDG_DATA_HOME", tmpDir)
	xdg.Reload()

	b.ResetTimer()
	for b.Loop() {
		idx := NewIndex(yamlstore.NewStore())
		if err := idx.Open(matchDir); err != nil {
			b.Fatalf("failed to open index: %v", err)
		}

		_, err := idx.SyncFull()
		if err != nil {
			b.Fatalf("sync failed: %v", err)
		}

		if err := idx.Close(); err != nil {
			b.Fatalf("failed to close index: %v", err)
		}

		// Clean up for next iteration
		if err := os.RemoveAll(filepath.Join(tmpDir, "ezpanso")); err != nil {
			b.Fatalf("failed to clean up: %v", err)
		}
	}
}

// BenchmarkWarmStartup benchmarks warm startup: open + incremental sync (DB exists, no changes)
func BenchmarkWarmStartup(b *testing.B) {
	matchDir := os.Getenv("MATCH_DIR")
	if matchDir == "" {
		b.Skip("MATCH_DIR not set")
	}

	tmpDir := b.TempDir()
	b.Setenv("XDG_DATA_HOME", tmpDir)
	xdg.Reload()

	// Prime the database once
	idx := NewIndex(yamlstore.NewStore())
	if err := idx.Open(matchDir); err != nil {
		b.Fatalf("failed to open index: %v", err)
	}
	if _, err := idx.SyncFull(); err != nil {
		b.Fatalf("initial sync failed: %v", err)
	}
	if err := idx.Close(); err != nil {
		b.Fatalf("failed to close index: %v", err)
	}

	b.ResetTimer()
	for b.Loop() {
		idx := NewIndex(yamlstore.NewStore())
		if err := idx.Open(matchDir); err != nil {
			b.Fatalf("failed to open index: %v", err)
		}

		stats, err := idx.SyncIncremental()
		if err != nil {
			b.Fatalf("incremental sync failed: %v", err)
		}
		if stats.Duration > time.Second {
			b.Logf("warm sync unexpectedly slow: %v", stats.Duration)
		}

		if err := idx.Close(); err != nil {
			b.Fatalf("failed to close index: %v", err)
		}
	}
}
