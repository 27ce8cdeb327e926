package doccache

import (
	"context"
	"fmt"

	"github.com/samber/lo"

	"github.com/unkn0wn-root/brewxml"
	"github.com/unkn0wn-root/brewxml/codec"
	"github.com/unkn0wn-root/brewxml/genstore"
	"github.com/unkn0wn-root/brewxml/internal/util"
	"github.com/unkn0wn-root/brewxml/internal/wire"
)

// LoadFunc fetches the recipes for ids, in that order. ExportCache passes
// the IDs sorted and de-duplicated.
type LoadFunc func(ctx context.Context, ids []string) ([]brewxml.Recipe, error)

// ExportCache memoizes encoded documents for sets of recipe IDs.
type ExportCache struct {
	store
	gen  genstore.GenStore
	docs codec.Codec[[]byte]
}

func NewExportCache(opts Options) (*ExportCache, error) {
	s, err := newStore(opts)
	if err != nil {
		return nil, err
	}
	c := &ExportCache{store: s, gen: opts.GenStore, docs: opts.Documents}
	if c.docs == nil {
		c.docs = codec.Bytes{}
	}
	if c.gen == nil {
		c.gen = genstore.NewLocalGenStore(
			coalesce(opts.CleanupInterval, defaultSweep),
			coalesce(opts.GenRetention, defaultGenRetention),
		)
	}
	return c, nil
}

func (c *ExportCache) key(sorted []string, pretty bool) string {
	mode := "c"
	if pretty {
		mode = "p"
	}
	return util.SetKeySorted("export:"+c.ns+":"+mode, sorted)
}

// Export returns the BeerXML document for ids. The document lists recipes in
// sorted ID order, so any permutation of the same IDs shares one entry.
func (c *ExportCache) Export(ctx context.Context, ids []string, pretty bool, load LoadFunc) ([]byte, error) {
	sorted := util.SortedUnique(ids)
	if len(sorted) == 0 {
		return nil, &brewxml.EncodeError{Index: -1, Err: brewxml.ErrNoRecipes}
	}
	if !c.enabled {
		return c.build(ctx, sorted, pretty, load)
	}

	k := c.key(sorted, pretty)
	if raw, ok := c.get(ctx, k); ok {
		if doc, ok := c.fromFrame(ctx, k, raw); ok {
			return doc, nil
		}
	}

	observed, err := c.gen.SnapshotMany(ctx, sorted)
	if err != nil {
		// Without a snapshot there is nothing to validate a write against.
		c.hooks.GenSnapshotError(len(sorted), err)
		c.log.Warn("gen snapshot failed; export not cached", brewxml.Fields{"count": len(sorted), "err": err})
		return c.build(ctx, sorted, pretty, load)
	}

	doc, err := c.build(ctx, sorted, pretty, load)
	if err != nil {
		return nil, err
	}

	current, err := c.gen.SnapshotMany(ctx, sorted)
	if err != nil {
		c.hooks.GenSnapshotError(len(sorted), err)
		return doc, nil
	}
	if moved := lo.Filter(sorted, func(id string, _ int) bool { return current[id] != observed[id] }); len(moved) > 0 {
		c.log.Debug("export write skipped (gen moved)", brewxml.Fields{"key": util.Redact(k), "moved": moved})
		return doc, nil
	}

	members := lo.Map(sorted, func(id string, _ int) wire.Member {
		return wire.Member{Key: id, Gen: observed[id]}
	})
	stored, err := c.docs.Encode(doc)
	if err != nil {
		c.log.Warn("export document encode failed", brewxml.Fields{"key": util.Redact(k), "err": err})
		return doc, nil
	}
	frame, err := wire.Encode(members, stored)
	if err != nil {
		c.log.Warn("export frame encode failed", brewxml.Fields{"key": util.Redact(k), "err": err})
		return doc, nil
	}
	c.set(ctx, k, frame)
	return doc, nil
}

// Invalidate marks recipe id as changed. Every cached document containing it
// is treated as stale from now on.
func (c *ExportCache) Invalidate(ctx context.Context, id string) error {
	if !c.enabled {
		return nil
	}
	g, err := c.gen.Bump(ctx, id)
	if err != nil {
		c.hooks.GenBumpError(id, err)
		c.log.Error("gen bump failed", brewxml.Fields{"id": id, "err": err})
		return err
	}
	c.log.Debug("invalidated recipe", brewxml.Fields{"id": id, "newGen": g})
	return nil
}

func (c *ExportCache) build(ctx context.Context, sorted []string, pretty bool, load LoadFunc) ([]byte, error) {
	rs, err := load(ctx, sorted)
	if err != nil {
		return nil, fmt.Errorf("doccache: load %d recipes: %w", len(sorted), err)
	}
	return c.codec.Encode(rs, pretty)
}

// fromFrame validates every member generation against the store. The
// document codec must not alias payload; providers may hand out shared
// buffers.
func (c *ExportCache) fromFrame(ctx context.Context, k string, raw []byte) ([]byte, bool) {
	members, payload, err := wire.Decode(raw)
	if err != nil || len(members) == 0 {
		c.heal(ctx, k, "corrupt")
		return nil, false
	}
	ids := lo.Map(members, func(m wire.Member, _ int) string { return m.Key })
	gens, err := c.gen.SnapshotMany(ctx, ids)
	if err != nil {
		c.hooks.GenSnapshotError(len(ids), err)
		return nil, false
	}
	for _, m := range members {
		if gens[m.Key] != m.Gen {
			c.heal(ctx, k, "gen_mismatch")
			return nil, false
		}
	}
	doc, err := c.docs.Decode(payload)
	if err != nil {
		c.heal(ctx, k, "value_decode")
		return nil, false
	}
	return doc, true
}

// Close closes the gen store and then the provider.
func (c *ExportCache) Close(ctx context.Context) error {
	if c.gen != nil {
		_ = c.gen.Close(ctx)
	}
	return c.provider.Close(ctx)
}
