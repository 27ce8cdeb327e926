// Package genstore keeps one generation counter per recipe ID. The export
// cache records the generations it observed before loading a recipe and
// treats an entry as stale as soon as any of them moves.
package genstore

import (
	"context"
	"time"
)

// GenStore abstracts where generations live.
// Use LocalGenStore (default) for a single process, RedisGenStore when
// several replicas share one cache provider.
type GenStore interface {
	// Snapshot returns the current generation; missing => 0.
	Snapshot(ctx context.Context, id string) (uint64, error)
	// SnapshotMany returns gens for many IDs; missing => 0.
	SnapshotMany(ctx context.Context, ids []string) (map[string]uint64, error)
	// Bump atomically increments and returns the new generation.
	Bump(ctx context.Context, id string) (uint64, error)
	// Cleanup prunes old metadata if applicable (no-op for Redis).
	Cleanup(retention time.Duration)
	// Close releases resources (no-op ok).
	Close(context.Context) error
}
