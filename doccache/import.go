package doccache

import (
	"context"

	"github.com/unkn0wn-root/brewxml"
	"github.com/unkn0wn-root/brewxml/codec"
	"github.com/unkn0wn-root/brewxml/internal/util"
	"github.com/unkn0wn-root/brewxml/internal/wire"
)

// ImportCache memoizes decoding by document content.
type ImportCache struct {
	store
	payload codec.Codec[[]brewxml.Recipe]
	zstd    *codec.Zstd[[]brewxml.Recipe] // owned; closed on Close
}

func NewImportCache(opts Options) (*ImportCache, error) {
	s, err := newStore(opts)
	if err != nil {
		return nil, err
	}
	c := &ImportCache{store: s, payload: opts.Payload}
	if c.payload == nil {
		z, err := codec.NewZstd[[]brewxml.Recipe](codec.Msgpack[[]brewxml.Recipe]{}, 0)
		if err != nil {
			return nil, err
		}
		c.payload, c.zstd = z, z
	}
	return c, nil
}

func (c *ImportCache) key(doc []byte) string { return util.ContentKey("import:"+c.ns, doc) }

// Decode returns the recipes in doc, from cache when the same bytes were
// decoded before. Errors match brewxml.Codec.Decode.
func (c *ImportCache) Decode(ctx context.Context, doc []byte) ([]brewxml.Recipe, error) {
	if !c.enabled {
		return c.codec.Decode(doc)
	}

	k := c.key(doc)
	if raw, ok := c.get(ctx, k); ok {
		if rs, ok := c.fromFrame(ctx, k, raw); ok {
			return rs, nil
		}
	}

	rs, err := c.codec.Decode(doc)
	if err != nil {
		return nil, err
	}

	payload, err := c.payload.Encode(rs)
	if err != nil {
		c.log.Warn("import payload encode failed", brewxml.Fields{"key": util.Redact(k), "err": err})
		return rs, nil
	}
	frame, err := wire.Encode(nil, payload)
	if err != nil {
		c.log.Warn("import frame encode failed", brewxml.Fields{"key": util.Redact(k), "err": err})
		return rs, nil
	}
	c.set(ctx, k, frame)
	return rs, nil
}

// Forget drops the entry for doc, if any.
func (c *ImportCache) Forget(ctx context.Context, doc []byte) error {
	if !c.enabled {
		return nil
	}
	return c.provider.Del(ctx, c.key(doc))
}

func (c *ImportCache) fromFrame(ctx context.Context, k string, raw []byte) ([]brewxml.Recipe, bool) {
	members, payload, err := wire.Decode(raw)
	if err != nil || len(members) != 0 {
		c.heal(ctx, k, "corrupt")
		return nil, false
	}
	rs, err := c.payload.Decode(payload)
	if err != nil {
		c.heal(ctx, k, "value_decode")
		return nil, false
	}
	return rs, true
}

func (c *ImportCache) Close(ctx context.Context) error {
	if c.zstd != nil {
		c.zstd.Close()
	}
	return c.provider.Close(ctx)
}
