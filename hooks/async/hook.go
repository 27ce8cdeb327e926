// usage:
//
//	raw := sloghooks.New(slog.Default(), sloghooks.Options{
//	    FallbackEvery: 10, // sample logs: ~every 10th field fallback
//	})
//
//	hooks := asynchook.New(raw, 1, 1000) // 1 worker; queue 1000 events
//	defer hooks.Close()
//
//	c := brewxml.New(brewxml.Options{Hooks: hooks})
package asynchook

import (
	"sync"
	"sync/atomic"

	"github.com/unkn0wn-root/brewxml"
)

// Hooks moves event delivery off the decode path. When the queue is full
// events are dropped and counted.
type Hooks struct {
	inner   brewxml.Hooks
	q       chan func()
	wg      sync.WaitGroup
	once    sync.Once
	dropped atomic.Uint64
}

var _ brewxml.Hooks = (*Hooks)(nil)

func New(inner brewxml.Hooks, workers, qlen int) *Hooks {
	if workers <= 0 {
		workers = 1
	}
	if qlen <= 0 {
		qlen = 1024
	}

	h := &Hooks{inner: inner, q: make(chan func(), qlen)}
	h.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer h.wg.Done()
			for f := range h.q {
				f()
			}
		}()
	}
	return h
}

// Close drains queued events and stops the workers. Events raised after
// Close are dropped.
func (h *Hooks) Close() {
	h.once.Do(func() {
		close(h.q)
		h.wg.Wait()
	})
}

// Dropped reports how many events were discarded.
func (h *Hooks) Dropped() uint64 { return h.dropped.Load() }

func (h *Hooks) try(f func()) {
	defer func() {
		// send on closed queue
		if recover() != nil {
			h.dropped.Add(1)
		}
	}()
	select {
	case h.q <- f:
	default:
		h.dropped.Add(1)
	}
}

func (h *Hooks) AdditionSkipped(kind string, ri, i int, err error) {
	h.try(func() { h.inner.AdditionSkipped(kind, ri, i, err) })
}
func (h *Hooks) RecipeSkipped(i int, name string, err error) {
	h.try(func() { h.inner.RecipeSkipped(i, name, err) })
}
func (h *Hooks) FieldFallback(el, f, raw string) { h.try(func() { h.inner.FieldFallback(el, f, raw) }) }
func (h *Hooks) CacheSelfHeal(k, r string)       { h.try(func() { h.inner.CacheSelfHeal(k, r) }) }
func (h *Hooks) CacheSetRejected(k string)       { h.try(func() { h.inner.CacheSetRejected(k) }) }
func (h *Hooks) GenBumpError(k string, err error) {
	h.try(func() { h.inner.GenBumpError(k, err) })
}
func (h *Hooks) GenSnapshotError(n int, err error) {
	h.try(func() { h.inner.GenSnapshotError(n, err) })
}
