package genstore

import (
	"context"
	"sync"
	"time"
)

type localEntry struct {
	gen     uint64
	touched time.Time
}

// LocalGenStore keeps generations in-process. When both cleanupInterval and
// retention are positive a background loop forgets IDs not bumped within
// retention; a forgotten ID reads as 0, which only makes older cache
// entries look stale.
type LocalGenStore struct {
	mu   sync.RWMutex
	gens map[string]localEntry

	cancel    context.CancelFunc
	done      chan struct{}
	closeOnce sync.Once
}

var _ GenStore = (*LocalGenStore)(nil)

func NewLocalGenStore(cleanupInterval, retention time.Duration) *LocalGenStore {
	s := &LocalGenStore{gens: make(map[string]localEntry)}
	if cleanupInterval <= 0 || retention <= 0 {
		return s
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.done = make(chan struct{})
	go func() {
		defer close(s.done)
		t := time.NewTicker(cleanupInterval)
		defer t.Stop()
		for {
			select {
			case <-t.C:
				s.Cleanup(retention)
			case <-ctx.Done():
				return
			}
		}
	}()
	return s
}

func (s *LocalGenStore) Snapshot(_ context.Context, id string) (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.gens[id].gen, nil
}

// SnapshotMany reads all IDs under one read lock so the result is a
// consistent view.
func (s *LocalGenStore) SnapshotMany(_ context.Context, ids []string) (map[string]uint64, error) {
	out := make(map[string]uint64, len(ids))
	s.mu.RLock()
	for _, id := range ids {
		out[id] = s.gens[id].gen
	}
	s.mu.RUnlock()
	return out, nil
}

func (s *LocalGenStore) Bump(_ context.Context, id string) (uint64, error) {
	now := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.gens[id]
	e.gen++
	e.touched = now
	s.gens[id] = e
	return e.gen, nil
}

func (s *LocalGenStore) Cleanup(retention time.Duration) {
	if retention <= 0 {
		return
	}
	cutoff := time.Now().Add(-retention)
	s.mu.Lock()
	for id, e := range s.gens {
		if e.touched.Before(cutoff) {
			delete(s.gens, id)
		}
	}
	s.mu.Unlock()
}

// Close stops the cleanup loop. Safe to call more than once.
func (s *LocalGenStore) Close(_ context.Context) error {
	s.closeOnce.Do(func() {
		if s.cancel != nil {
			s.cancel()
			<-s.done
		}
	})
	return nil
}
