package doccache

import (
	"context"
	"fmt"
	"time"

	"github.com/unkn0wn-root/brewxml"
	"github.com/unkn0wn-root/brewxml/internal/util"
	pr "github.com/unkn0wn-root/brewxml/provider"
)

// store is the provider plumbing shared by both caches.
type store struct {
	ns       string
	provider pr.Provider
	codec    *brewxml.Codec
	log      brewxml.Logger
	hooks    brewxml.Hooks
	ttl      time.Duration
	enabled  bool
}

func newStore(opts Options) (store, error) {
	if opts.Provider == nil {
		return store{}, fmt.Errorf("doccache: provider is required")
	}
	if opts.Namespace == "" {
		return store{}, fmt.Errorf("doccache: namespace is required")
	}
	s := store{
		ns:       opts.Namespace,
		provider: opts.Provider,
		log:      coalesce[brewxml.Logger](opts.Logger, brewxml.NopLogger{}),
		hooks:    coalesce[brewxml.Hooks](opts.Hooks, brewxml.NopHooks{}),
		ttl:      coalesce(opts.TTL, defaultTTL),
		enabled:  !opts.Disabled,
	}
	s.codec = opts.Codec
	if s.codec == nil {
		s.codec = brewxml.New(brewxml.Options{Logger: s.log, Hooks: s.hooks})
	}
	return s, nil
}

// get returns the raw frame; provider errors count as a miss.
func (s *store) get(ctx context.Context, k string) ([]byte, bool) {
	raw, ok, err := s.provider.Get(ctx, k)
	if err != nil {
		s.log.Warn("cache get failed", brewxml.Fields{"key": util.Redact(k), "err": err})
		return nil, false
	}
	return raw, ok
}

func (s *store) set(ctx context.Context, k string, frame []byte) {
	ok, err := s.provider.Set(ctx, k, frame, int64(len(frame)), s.ttl)
	if err != nil {
		s.log.Warn("cache set failed", brewxml.Fields{"key": util.Redact(k), "err": err})
		return
	}
	if !ok {
		s.hooks.CacheSetRejected(k)
		s.log.Debug("cache set rejected by provider (pressure)", brewxml.Fields{"key": util.Redact(k)})
	}
}

func (s *store) heal(ctx context.Context, k, reason string) {
	_ = s.provider.Del(ctx, k)
	s.hooks.CacheSelfHeal(k, reason)
	s.log.Debug("cache entry dropped", brewxml.Fields{"key": util.Redact(k), "reason": reason})
}
