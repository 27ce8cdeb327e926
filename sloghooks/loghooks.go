// Package sloghooks reports brewxml events through log/slog.
package sloghooks

import (
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"sync/atomic"

	"github.com/unkn0wn-root/brewxml"
)

type Options struct {
	// Sampling to avoid floods; 0/1 = log all.
	FallbackEvery uint64
	SelfHealEvery uint64
	// Optional key redactor. Defaults to SHA-256 prefix.
	Redact func(string) string
}

type Hooks struct {
	l    *slog.Logger
	opts Options

	fallbackCtr atomic.Uint64
	selfHealCtr atomic.Uint64
}

var _ brewxml.Hooks = (*Hooks)(nil)

func New(l *slog.Logger, opts Options) *Hooks {
	return &Hooks{l: l, opts: opts}
}

func (h *Hooks) redact(k string) string {
	if h.opts.Redact != nil {
		return h.opts.Redact(k)
	}
	sum := sha256.Sum256([]byte(k))
	return hex.EncodeToString(sum[:8])
}

func sample(n uint64, ctr *atomic.Uint64) bool {
	if n == 0 || n == 1 {
		return true
	}
	return ctr.Add(1)%n == 0
}

func (h *Hooks) AdditionSkipped(kind string, recipeIndex, index int, err error) {
	if h.l == nil {
		return
	}
	h.l.Warn("brewxml.addition_skipped",
		"kind", kind,
		"recipe", recipeIndex,
		"index", index,
		"err", err)
}

func (h *Hooks) RecipeSkipped(index int, name string, err error) {
	if h.l == nil {
		return
	}
	h.l.Warn("brewxml.recipe_skipped",
		"index", index,
		"name", name,
		"err", err)
}

func (h *Hooks) FieldFallback(element, field, raw string) {
	if h.l == nil || !sample(h.opts.FallbackEvery, &h.fallbackCtr) {
		return
	}
	h.l.Debug("brewxml.field_fallback",
		"element", element,
		"field", field,
		"raw", raw)
}

func (h *Hooks) CacheSelfHeal(storageKey, reason string) {
	if h.l == nil || !sample(h.opts.SelfHealEvery, &h.selfHealCtr) {
		return
	}
	h.l.Debug("brewxml.cache_self_heal",
		"key", h.redact(storageKey),
		"reason", reason)
}

func (h *Hooks) CacheSetRejected(storageKey string) {
	if h.l == nil {
		return
	}
	h.l.Warn("brewxml.cache_set_rejected",
		"key", h.redact(storageKey))
}

func (h *Hooks) GenSnapshotError(count int, err error) {
	if h.l == nil {
		return
	}
	h.l.Warn("brewxml.gen_snapshot_error",
		"count", count,
		"err", err)
}

func (h *Hooks) GenBumpError(id string, err error) {
	if h.l == nil {
		return
	}
	h.l.Error("brewxml.gen_bump_error",
		"id", id,
		"err", err)
}
